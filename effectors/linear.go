package effectors

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/cloner/easing"
)

// evalLinear computes the linear falloff field weight for one clone and
// scales the effector's channels by it.
//
// The clone position is first transformed into field-local space: translate
// by -FieldPosition, then undo the field rotation in Z, Y, X order. Progress
// along the chosen axis runs from 0 at (center - size/2) to 1 at
// (center + size/2).
func evalLinear(e *Effector, local rl.Vector3, d *Delta) {
	p := e.Linear
	if p.Size <= 0 {
		// Degenerate span, treat as a no-op rather than dividing by zero.
		return
	}

	fl := rl.Vector3Subtract(local, p.FieldPosition)
	fl = rotateZ(fl, -p.FieldRotation.Z)
	fl = rotateY(fl, -p.FieldRotation.Y)
	fl = rotateX(fl, -p.FieldRotation.X)

	var axis float64
	switch p.Axis {
	case "y":
		axis = float64(fl.Y)
	case "z":
		axis = float64(fl.Z)
	default:
		axis = float64(fl.X)
	}

	progress := (axis - (p.Center - p.Size/2)) / p.Size
	if p.Invert {
		progress = 1 - progress
	}

	weight := progress
	if p.Remap.Enabled {
		w, ok := remap(progress, p.Remap, p.Contour)
		if !ok {
			return
		}
		weight = w
	}

	weight *= e.strength()
	if weight == 0 {
		return
	}
	d.addWeighted(e, weight)

	if e.Hidden && weight >= e.HideThreshold {
		d.setHidden(true)
	}
	if weight > 0 && e.Color.IsSet() {
		d.setColor(e.Color.Sample(clamp01(weight)))
	}
	if weight > 0 {
		for name, spec := range e.MaterialColors {
			d.setMaterialColor(name, spec.Sample(clamp01(weight)))
		}
	}
}

// remap rescales raw progress into [Min,Max] and applies the contour. Returns
// ok=false when the remap span is degenerate.
func remap(progress float64, r RemapParams, c ContourParams) (float64, bool) {
	span := 1 - r.InnerOffset
	if span <= 0 {
		return 0, false
	}
	progress = (progress - r.InnerOffset) / span
	progress = r.Min + progress*(r.Max-r.Min)
	if r.ClampMin && progress < r.Min {
		progress = r.Min
	}
	if r.ClampMax && progress > r.Max {
		progress = r.Max
	}
	return contour(progress, c), true
}

// contour applies the configured shaping function and multiplier.
func contour(v float64, c ContourParams) float64 {
	switch c.Kind {
	case "", "none":
		// passthrough
	case "quadratic":
		v = math.Copysign(v*v, v)
	case "step":
		if v >= 0.5 {
			v = 1
		} else {
			v = 0
		}
	case "quantize":
		steps := c.Steps
		if steps < 1 {
			steps = 1
		}
		v = math.Round(v*float64(steps)) / float64(steps)
	default:
		// Named easing curves are defined on [0,1].
		v = easing.ByName(c.Kind)(clamp01(v))
	}
	return v * c.Multiplier
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// 2D plane rotations, one per Euler axis.

func rotateX(v rl.Vector3, angle float32) rl.Vector3 {
	s, c := sincos(angle)
	return rl.Vector3{X: v.X, Y: v.Y*c - v.Z*s, Z: v.Y*s + v.Z*c}
}

func rotateY(v rl.Vector3, angle float32) rl.Vector3 {
	s, c := sincos(angle)
	return rl.Vector3{X: v.X*c + v.Z*s, Y: v.Y, Z: -v.X*s + v.Z*c}
}

func rotateZ(v rl.Vector3, angle float32) rl.Vector3 {
	s, c := sincos(angle)
	return rl.Vector3{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c, Z: v.Z}
}

func sincos(angle float32) (s, c float32) {
	sf, cf := math.Sincos(float64(angle))
	return float32(sf), float32(cf)
}
