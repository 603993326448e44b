package debugui

import (
	"fmt"
	"time"

	"github.com/plus3/sceneview/ecs"
)

// PerformanceStats keeps a ring of recent frame times in milliseconds.
type PerformanceStats struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
	recorded      int
}

func NewPerformanceStats(historyFrames int) *PerformanceStats {
	if historyFrames <= 0 {
		historyFrames = 120
	}
	return &PerformanceStats{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

// Record adds a frame of deltaTime seconds.
func (ps *PerformanceStats) Record(deltaTime float32) {
	ps.frameHistory[ps.frameIndex] = deltaTime * 1000.0
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
	ps.recorded = min(ps.recorded+1, ps.historyFrames)
}

// RecordDuration adds a frame measured as a time.Duration.
func (ps *PerformanceStats) RecordDuration(d time.Duration) {
	ps.Record(float32(d.Seconds()))
}

// Capacity returns the number of frames the history holds.
func (ps *PerformanceStats) Capacity() int {
	return ps.historyFrames
}

// Average returns the mean recorded frame time in milliseconds.
func (ps *PerformanceStats) Average() float32 {
	if ps.recorded == 0 {
		return 0
	}
	var total float32
	for _, ft := range ps.History() {
		total += ft
	}
	return total / float32(ps.recorded)
}

// Max returns the longest recorded frame time in milliseconds.
func (ps *PerformanceStats) Max() float32 {
	var longest float32
	for _, ft := range ps.History() {
		longest = max(longest, ft)
	}
	return longest
}

// History returns the recorded frame times, oldest first.
func (ps *PerformanceStats) History() []float32 {
	history := make([]float32, 0, ps.recorded)
	start := ps.frameIndex - ps.recorded
	if start < 0 {
		start += ps.historyFrames
	}
	for i := range ps.recorded {
		history = append(history, ps.frameHistory[(start+i)%ps.historyFrames])
	}
	return history
}

// Lines summarizes the storage and the frame times as text.
func (ps *PerformanceStats) Lines(stats ecs.StorageStats) []string {
	avgFrameTime := ps.Average()
	fps := float32(0)
	if avgFrameTime > 0 {
		fps = 1000.0 / avgFrameTime
	}

	return []string{
		fmt.Sprintf("Total Entities: %d", stats.TotalEntityCount),
		fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount),
		fmt.Sprintf("Singletons: %d", stats.SingletonCount),
		fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, fps),
		fmt.Sprintf("Max Frame Time: %.2f ms", ps.Max()),
	}
}
