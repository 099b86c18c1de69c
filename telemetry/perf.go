package telemetry

import (
	"sort"
	"time"
)

// Phase names for the demo loop.
const (
	PhaseGenerate  = "generate"
	PhaseReconcile = "reconcile"
	PhasePhysics   = "physics"
	PhaseTelemetry = "telemetry"
	PhaseRender    = "render"
)

// PerfCollector tracks per-phase timings over a rolling window of ticks.
type PerfCollector struct {
	windowSize  int
	samples     []map[string]time.Duration
	totals      []time.Duration
	writeIndex  int
	sampleCount int

	current    map[string]time.Duration
	tickStart  time.Time
	phaseStart time.Time
	lastPhase  string
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize: windowSize,
		samples:    make([]map[string]time.Duration, windowSize),
		totals:     make([]time.Duration, windowSize),
	}
}

// StartTick begins timing a new tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a phase, closing the previous one.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.current[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndTick closes the current tick and records its sample.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	if p.lastPhase != "" {
		p.current[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.samples[p.writeIndex] = p.current
	p.totals[p.writeIndex] = now.Sub(p.tickStart)
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// Avg returns the average duration of a phase over the window.
func (p *PerfCollector) Avg(phase string) time.Duration {
	if p.sampleCount == 0 {
		return 0
	}
	var sum time.Duration
	for i := 0; i < p.sampleCount; i++ {
		sum += p.samples[i][phase]
	}
	return sum / time.Duration(p.sampleCount)
}

// Total returns the average tick duration over the window.
func (p *PerfCollector) Total() time.Duration {
	if p.sampleCount == 0 {
		return 0
	}
	var sum time.Duration
	for i := 0; i < p.sampleCount; i++ {
		sum += p.totals[i]
	}
	return sum / time.Duration(p.sampleCount)
}

// SortedNames returns all recorded phase names, sorted.
func (p *PerfCollector) SortedNames() []string {
	seen := make(map[string]bool)
	for i := 0; i < p.sampleCount; i++ {
		for name := range p.samples[i] {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
