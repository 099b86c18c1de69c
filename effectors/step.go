package effectors

import (
	"math"

	"github.com/pthm-cable/cloner/easing"
)

// evalStep applies an index-driven weight: progress runs 0..1 across the
// clone sequence, optionally phase-shifted and shaped as a ramp or a hump.
func evalStep(e *Effector, index, count int, d *Delta) {
	p := e.Step

	denom := count - 1
	if denom < 1 {
		denom = 1
	}
	progress := float64(index) / float64(denom)

	if p.PhaseOffset != 0 {
		progress += p.PhaseOffset
		progress -= math.Floor(progress) // wrap to [0,1)
	}

	ease := easing.ByName(p.Ease)
	switch p.Profile {
	case "hump":
		progress = ease(math.Sin(progress * math.Pi))
	default: // "ramp"
		progress = ease(progress)
	}

	d.addWeighted(e, progress*e.strength())
}
