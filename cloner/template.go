package cloner

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/cloner/collider"
)

// TemplateChild is one entry of the configured child set: a primitive
// descriptor plus its derived collider and contagion flags. Built once when
// children are parsed; immutable afterwards.
type TemplateChild struct {
	Kind  string
	Props collider.Props

	// Declared local transform of the child.
	Position rl.Vector3
	Rotation rl.Vector3
	Scale    rl.Vector3

	HasColor   bool
	ColorIndex float64

	Carrier    bool
	Infectable bool

	Collider collider.Collider
	// Known is false when the primitive kind was not recognized and the
	// collider fell back to a unit cuboid.
	Known bool
}

// ChildSpec is the configuration shape a template child is parsed from.
type ChildSpec struct {
	Kind  string         `yaml:"kind"`
	Props collider.Props `yaml:"props"`

	Position rl.Vector3 `yaml:"position"`
	Rotation rl.Vector3 `yaml:"rotation"`
	Scale    rl.Vector3 `yaml:"scale"`

	Color      *float64 `yaml:"color"`
	Carrier    *bool    `yaml:"carrier"`
	Infectable *bool    `yaml:"infectable"`
}

// NewTemplateChild derives a template child from its spec: collider
// inference, base color, and contagion defaults (infectable unless declared
// otherwise). Unknown primitive kinds are logged, never fatal.
func NewTemplateChild(spec ChildSpec) TemplateChild {
	col, known := collider.Infer(spec.Kind, spec.Props)
	if !known {
		slog.Warn("unknown primitive kind, using unit cuboid collider", "kind", spec.Kind)
	}

	t := TemplateChild{
		Kind:       spec.Kind,
		Props:      spec.Props,
		Position:   spec.Position,
		Rotation:   spec.Rotation,
		Scale:      normalizeScale(spec.Scale),
		Infectable: true,
		Collider:   col,
		Known:      known,
	}
	if spec.Color != nil {
		t.HasColor = true
		t.ColorIndex = *spec.Color
	}
	if spec.Carrier != nil {
		t.Carrier = *spec.Carrier
	}
	if spec.Infectable != nil {
		t.Infectable = *spec.Infectable
	}
	return t
}

// NewTemplateChildren parses an ordered child list.
func NewTemplateChildren(specs []ChildSpec) []TemplateChild {
	out := make([]TemplateChild, 0, len(specs))
	for _, s := range specs {
		out = append(out, NewTemplateChild(s))
	}
	return out
}

// normalizeScale treats an all-zero declared scale as identity.
func normalizeScale(s rl.Vector3) rl.Vector3 {
	if s.X == 0 && s.Y == 0 && s.Z == 0 {
		return rl.Vector3{X: 1, Y: 1, Z: 1}
	}
	return s
}
