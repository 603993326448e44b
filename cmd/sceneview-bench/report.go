package main

import (
	"io"
	"runtime"
	"slices"
	"strings"
	"text/template"
	"time"

	"github.com/plus3/sceneview/ecs"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Preset   string
	Model    string
	Rotators int
	Systems  int

	// Results
	Frames          int
	TotalTime       time.Duration
	FrameTime       Stats
	Storage         ecs.StorageStats
	Stages          []*ecs.SchedulerStats
	Overlay         []string
	DiagnosticLines int
	AssetState      string
	MemStatsStart   runtime.MemStats
	MemStatsEnd     runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	P99     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))

	sorted := make([]time.Duration, len(s.Samples))
	copy(sorted, s.Samples)
	slices.Sort(sorted)
	s.P99 = sorted[(len(sorted)-1)*99/100]
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Scene Viewer Benchmark Report

## Configuration
- **Run Duration:** {{.Duration}}
- **Preset:** {{.Preset}}
- **Model:** {{.Model}} ({{.AssetState}})
- **Extra Rotators:** {{.Rotators}}
- **Per-frame Systems:** {{.Systems}}

## Frame Time
- **Frames:** {{.Frames}}
- **Total Time:** {{.TotalTime}}
- **Avg:** {{.FrameTime.Avg}}
- **P99:** {{.FrameTime.P99}}
- **Min:** {{.FrameTime.Min}}
- **Max:** {{.FrameTime.Max}}

## Storage
{{range .Overlay}}- {{.}}
{{end}}
| Archetype | Entities | Components |
|---|---|---|
{{range .Storage.ArchetypeBreakdown}}| 0x{{printf "%X" .ID}} | {{.EntityCount}} | {{join .ComponentTypes ", "}} |
{{end}}
## Systems
| System | Runs | Avg | Max |
|---|---|---|---|
{{range .Stages}}{{range .Systems}}| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{end}}{{end}}
## Input
- **Diagnostic lines written:** {{.DiagnosticLines}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
- Total GC Pause: {{.MemStatsEnd.PauseTotalNs | ns}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
		"join": strings.Join,
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
