package effectors

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Fixed per-channel sample offsets. Each channel samples the same noise field
// at a large constant offset, giving quasi-independent values from one
// generator. Changing these breaks scene reproducibility.
var (
	noiseOffsetPosition = [3]float64{11.31, 7.77, 3.19}
	noiseOffsetRotation = [3]float64{29.41, 13.13, 5.71}
	noiseOffsetScale    = [3]float64{47.91, 19.19, 9.83}
)

// evalNoise applies a seeded 3D noise field. The base sample gates hide and
// color; additional offset samples drive the transform channels.
func evalNoise(e *Effector, gen opensimplex.Noise, local rl.Vector3, clock float64, d *Delta) {
	strength := e.strength()
	p := e.Noise

	px := float64(local.X)*p.Frequency + float64(p.StaticOffset.X) + float64(p.Position.X) + float64(p.PositionSpeed.X)*clock
	py := float64(local.Y)*p.Frequency + float64(p.StaticOffset.Y) + float64(p.Position.Y) + float64(p.PositionSpeed.Y)*clock
	pz := float64(local.Z)*p.Frequency + float64(p.StaticOffset.Z) + float64(p.Position.Z) + float64(p.PositionSpeed.Z)*clock

	base := gen.Eval3(px, py, pz)
	base01 := (base + 1) / 2

	sample := func(off [3]float64) float64 {
		return gen.Eval3(px+off[0], py+off[1], pz+off[2])
	}

	if e.Position.X != 0 || e.Position.Y != 0 || e.Position.Z != 0 {
		w := float32(sample(noiseOffsetPosition) * strength)
		d.Position = rl.Vector3Add(d.Position, rl.Vector3Scale(e.Position, w))
	}
	if e.Rotation.X != 0 || e.Rotation.Y != 0 || e.Rotation.Z != 0 {
		w := float32(sample(noiseOffsetRotation) * strength)
		d.Rotation = rl.Vector3Add(d.Rotation, rl.Vector3Scale(e.Rotation, w))
	}
	if e.Scale.X != 0 || e.Scale.Y != 0 || e.Scale.Z != 0 {
		w := float32(sample(noiseOffsetScale) * strength)
		d.Scale = rl.Vector3Add(d.Scale, rl.Vector3Scale(e.Scale, w))
	}

	// Hide/color only fire inside the strength window of the base sample.
	if e.Hidden && base01 <= strength*e.HideThreshold {
		d.setHidden(true)
	}
	if base01 <= strength {
		if e.Color.IsSet() {
			d.setColor(e.Color.Sample(clamp01(base01)))
		}
		for name, spec := range e.MaterialColors {
			d.setMaterialColor(name, spec.Sample(clamp01(base01)))
		}
	}
}
