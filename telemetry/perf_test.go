package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollectorPhases(t *testing.T) {
	p := NewPerfCollector(4)

	p.StartTick()
	p.StartPhase(PhaseGenerate)
	time.Sleep(time.Millisecond)
	p.StartPhase(PhaseRender)
	time.Sleep(time.Millisecond)
	p.EndTick()

	if p.Avg(PhaseGenerate) <= 0 {
		t.Error("generate phase recorded no time")
	}
	if p.Avg(PhaseRender) <= 0 {
		t.Error("render phase recorded no time")
	}
	if p.Total() < p.Avg(PhaseGenerate) {
		t.Error("total tick time should cover phase time")
	}

	names := p.SortedNames()
	if len(names) != 2 || names[0] != PhaseGenerate || names[1] != PhaseRender {
		t.Errorf("sorted names = %v", names)
	}
}

func TestPerfCollectorWindowWraps(t *testing.T) {
	p := NewPerfCollector(2)
	for i := 0; i < 5; i++ {
		p.StartTick()
		p.StartPhase(PhaseGenerate)
		p.EndTick()
	}
	// After wrapping, the sample count stays at the window size.
	if p.sampleCount != 2 {
		t.Errorf("sample count = %d, want 2", p.sampleCount)
	}
}
