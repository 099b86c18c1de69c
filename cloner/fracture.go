package cloner

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/cloner/components"
	"github.com/pthm-cable/cloner/effectors"
)

// Fracture applies the effector stack to a fixed list of direct children
// instead of synthesizing a grid. Each child's declared transform is the
// base the effectors perturb, and its declared position is the local
// position used for field evaluation. Fracture has no freeze cache and no
// physics attachment of its own.
type Fracture struct {
	Enabled bool

	stack    *effectors.Stack
	children []TemplateChild
}

// NewFracture wraps an ordered child list with an effector stack.
func NewFracture(effs []effectors.Effector, children []TemplateChild) *Fracture {
	return &Fracture{
		Enabled:  true,
		stack:    effectors.NewStack(effs),
		children: children,
	}
}

// Stack exposes the effector stack for UI editing.
func (f *Fracture) Stack() *effectors.Stack { return f.stack }

// Children returns the wrapped child list.
func (f *Fracture) Children() []TemplateChild { return f.children }

// NeedsClock reports whether any active effector depends on the clock.
func (f *Fracture) NeedsClock() bool { return f.stack.NeedsClock() }

// Apply re-poses every child for the given clock. When disabled, children
// keep their original declared transforms.
func (f *Fracture) Apply(clock float64) []components.CloneTransform {
	count := len(f.children)
	out := make([]components.CloneTransform, 0, count)

	for i, child := range f.children {
		t := components.CloneTransform{
			Key:           components.CloneKey{X: i},
			Index:         i,
			TemplateIndex: i,
			LocalPosition: child.Position,
			Position:      child.Position,
			Rotation:      child.Rotation,
			Scale:         child.Scale,
			HasColor:      child.HasColor,
			Color:         child.ColorIndex,
			Carrier:       child.Carrier,
			Infectable:    child.Infectable,
		}

		if f.Enabled {
			d := f.stack.Apply(child.Position, i, count, clock)
			t.Position = rl.Vector3Add(t.Position, d.Position)
			t.Rotation = rl.Vector3Add(t.Rotation, d.Rotation)
			t.Scale = rl.Vector3Add(t.Scale, d.Scale)
			t.Hidden = d.HiddenSet && d.Hidden
			if d.ColorSet {
				t.HasColor = true
				t.Color = d.Color
			}
			if d.MaterialColors != nil {
				t.MaterialColors = d.MaterialColors
			}
		}

		out = append(out, t)
	}
	return out
}
