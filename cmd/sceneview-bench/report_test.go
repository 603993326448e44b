package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/plus3/sceneview/ecs"
	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFinalize(t *testing.T) {
	stats := Stats{}
	for i := 1; i <= 100; i++ {
		stats.Samples = append(stats.Samples, time.Duration(i)*time.Millisecond)
	}
	stats.Finalize()

	assert.Equal(t, time.Millisecond, stats.Min)
	assert.Equal(t, 100*time.Millisecond, stats.Max)
	assert.Equal(t, 50500*time.Microsecond, stats.Avg)
	assert.Equal(t, 99*time.Millisecond, stats.P99)

	empty := Stats{}
	empty.Finalize()
	assert.Zero(t, empty.Max)
}

func TestReportGenerate(t *testing.T) {
	report := &Report{
		Duration: time.Second,
		Preset:   "whole",
		Model:    "synthetic.gltf",
		Frames:   3,
		Storage: ecs.StorageStats{ArchetypeBreakdown: []ecs.ArchetypeStats{
			{ID: 0xAB, ComponentTypes: []string{"scene.Transform", "viewer.Rotates"}, EntityCount: 9},
		}},
		Stages: []*ecs.SchedulerStats{{Systems: []ecs.SystemStats{{Name: "RotatorSystem", ExecutionCount: 3}}}},
		Overlay: []string{"Total Entities: 9"},
	}

	var out bytes.Buffer
	require.NoError(t, report.Generate(&out))
	assert.Contains(t, out.String(), "| 0xAB | 9 | scene.Transform, viewer.Rotates |")
	assert.Contains(t, out.String(), "| RotatorSystem | 3 |")
	assert.Contains(t, out.String(), "- Total Entities: 9")
}

func TestWriteSyntheticModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synthetic.gltf")
	require.NoError(t, writeSyntheticModel(path, 10))

	_, err := os.Stat(path)
	require.NoError(t, err)

	doc, err := gltf.Open(path)
	require.NoError(t, err)
	assert.Len(t, doc.Nodes, 10)
	assert.Equal(t, []int{0, 4, 8}, doc.Scenes[0].Nodes)
	assert.Equal(t, []int{2}, doc.Nodes[1].Children)
}
