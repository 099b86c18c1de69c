// Package camera provides a 3D orbit camera for viewing the generated grid.
package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Camera orbits a target point at a yaw/pitch/distance pose.
type Camera struct {
	Target   rl.Vector3
	Distance float32
	Yaw      float32 // radians, around Y
	Pitch    float32 // radians, above the horizon
	FOVY     float32 // degrees

	MinDistance, MaxDistance float32
	MinPitch, MaxPitch       float32
}

// New creates an orbit camera looking at target.
func New(target rl.Vector3, distance, yaw, pitch, fovy float32) *Camera {
	c := &Camera{
		Target:      target,
		Distance:    distance,
		Yaw:         yaw,
		Pitch:       pitch,
		FOVY:        fovy,
		MinDistance: 2,
		MaxDistance: 200,
		MinPitch:    -1.4,
		MaxPitch:    1.4,
	}
	c.clampPose()
	return c
}

// Position returns the camera's world position for the current pose.
func (c *Camera) Position() rl.Vector3 {
	cp := float32(math.Cos(float64(c.Pitch)))
	return rl.Vector3{
		X: c.Target.X + c.Distance*cp*float32(math.Sin(float64(c.Yaw))),
		Y: c.Target.Y + c.Distance*float32(math.Sin(float64(c.Pitch))),
		Z: c.Target.Z + c.Distance*cp*float32(math.Cos(float64(c.Yaw))),
	}
}

// Raylib returns the rl.Camera3D for the current pose.
func (c *Camera) Raylib() rl.Camera3D {
	return rl.Camera3D{
		Position:   c.Position(),
		Target:     c.Target,
		Up:         rl.Vector3{Y: 1},
		Fovy:       c.FOVY,
		Projection: rl.CameraPerspective,
	}
}

// Orbit rotates the pose by the given yaw/pitch deltas.
func (c *Camera) Orbit(dYaw, dPitch float32) {
	c.Yaw += dYaw
	c.Pitch += dPitch
	c.clampPose()
}

// Dolly moves the camera towards or away from the target. Positive amounts
// zoom in.
func (c *Camera) Dolly(amount float32) {
	c.Distance -= amount
	c.clampPose()
}

// HandleInput applies mouse drag and wheel input. Returns true if the pose
// changed.
func (c *Camera) HandleInput() bool {
	changed := false
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			c.Orbit(-delta.X*0.005, delta.Y*0.005)
			changed = true
		}
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		c.Dolly(wheel * c.Distance * 0.1)
		changed = true
	}
	return changed
}

func (c *Camera) clampPose() {
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
	if c.Pitch < c.MinPitch {
		c.Pitch = c.MinPitch
	}
	if c.Pitch > c.MaxPitch {
		c.Pitch = c.MaxPitch
	}
	const twoPi = 2 * math.Pi
	for c.Yaw < 0 {
		c.Yaw += twoPi
	}
	for c.Yaw >= twoPi {
		c.Yaw -= twoPi
	}
}
