// Package components holds the plain data types shared between the cloner
// core, the physics attachment layer, and the ECS scene.
package components

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// CloneKey identifies a clone across frames. For grid clones it holds the
// grid coordinates; for fracture children it holds (childIndex, 0, 0).
type CloneKey struct {
	X, Y, Z int
}

// CloneTransform is the per-instance output of one generator tick.
// It is recomputed every tick unless the key is frozen.
type CloneTransform struct {
	Key   CloneKey
	Index int // flat sequence number in iteration order

	// TemplateIndex selects which template child this clone renders.
	TemplateIndex int

	// LocalPosition is the pre-effector grid (or declared) position.
	LocalPosition rl.Vector3

	// Post-effector transform, relative to the cloner's parent space.
	Position rl.Vector3
	Rotation rl.Vector3 // XYZ Euler, radians
	Scale    rl.Vector3

	Hidden bool

	// HasColor reports whether an effector resolved a color this tick.
	HasColor bool
	Color    float64

	MaterialColors map[string]float64

	EntityID   string
	Carrier    bool
	Infectable bool
}

// Clone returns a deep copy. Frozen cache entries must not alias the live
// transform, so the material color map is copied as well.
func (t CloneTransform) Clone() CloneTransform {
	c := t
	if t.MaterialColors != nil {
		c.MaterialColors = make(map[string]float64, len(t.MaterialColors))
		for k, v := range t.MaterialColors {
			c.MaterialColors[k] = v
		}
	}
	return c
}

// CloneMeta is the ECS component tying a scene entity back to its clone key.
// Source disambiguates grid and fracture entities that share a key value.
type CloneMeta struct {
	Key           CloneKey
	Source        int
	Index         int
	TemplateIndex int
	Hidden        bool
	Frozen        bool
	HasColor      bool
	Color         float64
	EntityID      string
}
