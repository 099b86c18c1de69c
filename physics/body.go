package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/cloner/collider"
)

// Gravity used by the demo body integrator, world units per second squared.
const Gravity = -9.81

// ContactsGround reports whether a collider placed at pos intersects the
// ground plane at y=0. This is the contact test the demo uses to trigger
// collision activation for kinematic and sensor bodies.
func ContactsGround(c collider.Collider, pos rl.Vector3) bool {
	center := rl.Vector3Add(pos, c.Offset)
	var half float32
	switch c.Shape {
	case collider.Ball:
		half = c.Radius
	case collider.Cylinder:
		half = c.HalfHeight
	default:
		half = c.HalfExtents.Y
	}
	return center.Y-half <= 0
}

// Body is the minimal dynamic body the demo runs once a clone has been
// collision-activated and frozen. A real deployment would hand the frozen
// transform to the physics engine instead.
type Body struct {
	Velocity rl.Vector3
	Params   BodyParams
	Resting  bool
}

// Step integrates one frame of gravity and ground contact, mutating pos.
// Returns true while the body is in ground contact.
func (b *Body) Step(dt float32, pos *rl.Vector3, half float32) bool {
	if b.Resting {
		return true
	}
	b.Velocity.Y += Gravity * dt
	pos.X += b.Velocity.X * dt
	pos.Y += b.Velocity.Y * dt
	pos.Z += b.Velocity.Z * dt

	if pos.Y-half <= 0 {
		pos.Y = half
		// Damped bounce; friction bleeds off lateral motion.
		b.Velocity.Y *= -0.3
		damp := 1 - b.Params.Friction*dt
		if damp < 0 {
			damp = 0
		}
		b.Velocity.X *= damp
		b.Velocity.Z *= damp
		if b.Velocity.Y < 0.05 && b.Velocity.Y > -0.05 {
			b.Velocity = rl.Vector3{}
			b.Resting = true
		}
		return true
	}
	return false
}
