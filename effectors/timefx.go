package effectors

import (
	"math"

	"github.com/pthm-cable/cloner/easing"
)

// evalTime applies a clock-driven weight. Raw progress advances with the
// clock, shifted per clone by CloneOffset, then loops and eases.
func evalTime(e *Effector, index int, clock float64, d *Delta) {
	p := e.Time
	duration := p.Duration
	if duration <= 0 {
		return
	}

	progress := (clock*p.Speed + p.Offset + float64(index)*p.CloneOffset) / duration
	progress = applyLoop(progress, p.Loop)
	progress = easing.ByName(p.Ease)(progress)

	d.addWeighted(e, progress*e.strength())
}

// applyLoop folds raw progress into [0,1] per the loop mode.
func applyLoop(p float64, mode string) float64 {
	switch mode {
	case "loop":
		p -= math.Floor(p)
		return p
	case "pingpong":
		// Triangle wave: reflect every other unit interval.
		p = math.Mod(p, 2)
		if p < 0 {
			p += 2
		}
		if p > 1 {
			p = 2 - p
		}
		return p
	default: // "none"
		return clamp01(p)
	}
}
