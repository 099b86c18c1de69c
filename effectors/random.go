package effectors

import rl "github.com/gen2brain/raylib-go/raylib"

// evalRandom applies seeded per-clone jitter. Every channel draws from its
// own (seed, flatIndex, effectorIndex, salt) tuple; see hash.go for the salt
// assignment. Identical inputs always produce bit-identical deltas.
func evalRandom(e *Effector, index, effIndex int, materials []string, d *Delta) {
	strength := e.strength()
	seed := e.Seed

	draw := func(salt int) float64 { return Hash01(seed, index, effIndex, salt) }
	signed := func(salt int) float64 { return HashSigned(seed, index, effIndex, salt) }

	w := float32(strength)
	if e.Position.X != 0 || e.Position.Y != 0 || e.Position.Z != 0 {
		d.Position = rl.Vector3Add(d.Position, rl.Vector3{
			X: e.Position.X * float32(signed(saltPosX)) * w,
			Y: e.Position.Y * float32(signed(saltPosY)) * w,
			Z: e.Position.Z * float32(signed(saltPosZ)) * w,
		})
	}
	if e.Rotation.X != 0 || e.Rotation.Y != 0 || e.Rotation.Z != 0 {
		d.Rotation = rl.Vector3Add(d.Rotation, rl.Vector3{
			X: e.Rotation.X * float32(signed(saltRotX)) * w,
			Y: e.Rotation.Y * float32(signed(saltRotY)) * w,
			Z: e.Rotation.Z * float32(signed(saltRotZ)) * w,
		})
	}
	if e.Scale.X != 0 || e.Scale.Y != 0 || e.Scale.Z != 0 {
		d.Scale = rl.Vector3Add(d.Scale, rl.Vector3{
			X: e.Scale.X * float32(signed(saltSclX)) * w,
			Y: e.Scale.Y * float32(signed(saltSclY)) * w,
			Z: e.Scale.Z * float32(signed(saltSclZ)) * w,
		})
	}

	// Hide: either the unconditional flag gated by a strength Bernoulli
	// draw, or an independent hideProbability draw.
	if e.Hidden {
		if draw(saltHide) < strength {
			d.setHidden(true)
		}
	} else if p := e.Random.HideProbability * strength; p > 0 && draw(saltHideProb) < p {
		d.setHidden(true)
	}

	if e.Color.IsSet() {
		if len(e.Color.Palette) > 0 {
			d.setColor(e.Color.Sample(draw(saltColorIdx)))
		} else if draw(saltColorOn) < strength {
			d.setColor(*e.Color.Scalar)
		}
	}

	for i, name := range materials {
		spec := e.MaterialColors[name]
		salt := saltMaterialBase + 2*i
		if len(spec.Palette) > 0 {
			d.setMaterialColor(name, spec.Sample(draw(salt)))
		} else if spec.Scalar != nil && draw(salt+1) < strength {
			d.setMaterialColor(name, *spec.Scalar)
		}
	}
}
