// Package cloner implements the procedural instancing pipeline: the grid
// cloner synthesizes positioned clones from template children and folds the
// effector stack over each of them; fracture applies the same stack to a
// fixed child list.
package cloner

import (
	"fmt"
	"log/slog"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/cloner/collider"
	"github.com/pthm-cable/cloner/components"
	"github.com/pthm-cable/cloner/effectors"
	"github.com/pthm-cable/cloner/physics"
)

// TransformMode selects where the per-clone transform is applied: baked into
// each child, or into a wrapping transform with the child reset to identity.
type TransformMode string

const (
	TransformChild  TransformMode = "child"
	TransformCloner TransformMode = "cloner"
)

// Distribution selects how template children are assigned to clones.
type Distribution string

const (
	DistributeIterate Distribution = "iterate"
	DistributeRandom  Distribution = "random"
)

// GridUnit multiplies spacing and offset. In YAML it is either a scalar or a
// preset name.
type GridUnit float64

var gridUnitPresets = map[string]float64{
	"quarter": 0.25,
	"half":    0.5,
	"unit":    1,
	"double":  2,
	"large":   4,
}

// UnmarshalYAML accepts a number or a preset name.
func (u *GridUnit) UnmarshalYAML(value *yaml.Node) error {
	var scalar float64
	if err := value.Decode(&scalar); err == nil {
		*u = GridUnit(scalar)
		return nil
	}
	var name string
	if err := value.Decode(&name); err != nil {
		return fmt.Errorf("decoding grid unit: %w", err)
	}
	v, ok := gridUnitPresets[name]
	if !ok {
		return fmt.Errorf("unknown grid unit preset %q", name)
	}
	*u = GridUnit(v)
	return nil
}

// GridParams configure grid synthesis.
type GridParams struct {
	Count    [3]float64 `yaml:"count"` // floored, clamped to >= 1 per axis
	Spacing  rl.Vector3 `yaml:"spacing"`
	Offset   rl.Vector3 `yaml:"offset"`
	Position rl.Vector3 `yaml:"position"`
	Rotation rl.Vector3 `yaml:"rotation"`
	Scale    rl.Vector3 `yaml:"scale"`
	Centered bool       `yaml:"centered"`

	TransformMode TransformMode `yaml:"transform_mode"`
	Distribution  Distribution  `yaml:"distribution"`
	Seed          int           `yaml:"seed"`
	GridUnit      GridUnit      `yaml:"grid_unit"`

	EntityPrefix string `yaml:"entity_prefix"`
	Carrier      *bool  `yaml:"carrier"`
	Infectable   *bool  `yaml:"infectable"`
}

// counts returns the per-axis clone counts, floored and clamped to 1.
func (p *GridParams) counts() (cx, cy, cz int) {
	clamp := func(v float64) int {
		n := int(math.Floor(v))
		if n < 1 {
			return 1
		}
		return n
	}
	return clamp(p.Count[0]), clamp(p.Count[1]), clamp(p.Count[2])
}

// GridCloner synthesizes clones on a 3D grid and owns the frozen clone
// cache. All methods are single-threaded; the only cross-boundary input is
// the activation event channel fed by physics attachments.
type GridCloner struct {
	Params  GridParams
	Enabled bool

	stack     *effectors.Stack
	templates []TemplateChild

	mode physics.Mode
	body physics.BodyParams

	// frozen pins a clone's transform after its first collision. A key
	// either has no entry (live) or exactly one immutable entry.
	frozen map[components.CloneKey]components.CloneTransform

	// rendered holds the previous tick's output per key, the value a
	// freeze event deep-copies.
	rendered map[components.CloneKey]components.CloneTransform

	events chan physics.Activation
}

// New creates a grid cloner over the given effector stack and templates.
func New(params GridParams, effs []effectors.Effector, templates []TemplateChild) *GridCloner {
	params.Scale = normalizeScale(params.Scale)
	if params.GridUnit == 0 {
		params.GridUnit = 1
	}
	return &GridCloner{
		Params:    params,
		Enabled:   true,
		stack:     effectors.NewStack(effs),
		templates: templates,
		frozen:    make(map[components.CloneKey]components.CloneTransform),
		rendered:  make(map[components.CloneKey]components.CloneTransform),
		events:    make(chan physics.Activation, 256),
	}
}

// Stack exposes the effector stack for UI editing.
func (g *GridCloner) Stack() *effectors.Stack { return g.stack }

// Templates returns the parsed template children.
func (g *GridCloner) Templates() []TemplateChild { return g.templates }

// Events is the send side handed to physics attachments.
func (g *GridCloner) Events() chan<- physics.Activation { return g.events }

// PhysicsMode returns the active physics mode.
func (g *GridCloner) PhysicsMode() physics.Mode { return g.mode }

// BodyParams returns the configured per-body physics properties.
func (g *GridCloner) BodyParams() physics.BodyParams { return g.body }

// SetPhysics switches the physics mode. Leaving a collision-activated mode
// clears the frozen cache in full and discards pending activations.
func (g *GridCloner) SetPhysics(mode physics.Mode, body physics.BodyParams) {
	g.body = body
	if g.mode == mode {
		return
	}
	g.mode = mode
	if !mode.CollisionActivated() {
		g.frozen = make(map[components.CloneKey]components.CloneTransform)
		for {
			select {
			case <-g.events:
			default:
				return
			}
		}
	}
}

// PendingActivations returns the number of undrained activation events.
func (g *GridCloner) PendingActivations() int { return len(g.events) }

// FrozenCount returns the number of frozen clones.
func (g *GridCloner) FrozenCount() int { return len(g.frozen) }

// IsFrozen reports whether a key has a frozen cache entry.
func (g *GridCloner) IsFrozen(key components.CloneKey) bool {
	_, ok := g.frozen[key]
	return ok
}

// Attachment builds the physics attachment for one generated clone, with the
// template collider scaled by the clone's own scale.
func (g *GridCloner) Attachment(t components.CloneTransform) *physics.Attachment {
	tmpl := g.templates[t.TemplateIndex]
	col := tmpl.Collider
	if t.Scale != (rl.Vector3{X: 1, Y: 1, Z: 1}) {
		col = collider.Scale(col, t.Scale)
	}
	return physics.NewAttachment(t.Key, col, g.body, g.mode, g.events)
}

// NeedsClock reports whether any active effector depends on the clock.
func (g *GridCloner) NeedsClock() bool { return g.stack.NeedsClock() }

// Generate recomputes every clone for the given clock. Frozen keys keep
// their cached transform; everything else is re-evaluated from scratch.
func (g *GridCloner) Generate(clock float64) []components.CloneTransform {
	g.drainActivations()

	if !g.Enabled {
		return g.passthrough()
	}
	if len(g.templates) == 0 {
		return nil
	}

	cx, cy, cz := g.Params.counts()
	total := cx * cy * cz
	out := make([]components.CloneTransform, 0, total)

	unit := float32(g.Params.GridUnit)
	step := rl.Vector3Scale(g.Params.Spacing, unit)
	off := rl.Vector3Scale(g.Params.Offset, unit)

	var start rl.Vector3
	if g.Params.Centered {
		start = rl.Vector3{
			X: -float32(cx-1) * step.X / 2,
			Y: -float32(cy-1) * step.Y / 2,
			Z: -float32(cz-1) * step.Z / 2,
		}
	}

	// Iteration order is a contract: Y outer, Z middle, X inner. Step
	// phases and random salts depend on the resulting flat index.
	flat := 0
	for y := 0; y < cy; y++ {
		for z := 0; z < cz; z++ {
			for x := 0; x < cx; x++ {
				key := components.CloneKey{X: x, Y: y, Z: z}
				local := rl.Vector3{
					X: start.X + float32(x)*step.X + off.X,
					Y: start.Y + float32(y)*step.Y + off.Y,
					Z: start.Z + float32(z)*step.Z + off.Z,
				}

				t := g.evaluate(key, flat, total, local, clock)

				if ft, ok := g.frozen[key]; ok {
					// Frozen keys keep their pinned transform. A frozen
					// entry whose template child no longer exists renders
					// nothing.
					if ft.TemplateIndex >= len(g.templates) {
						flat++
						continue
					}
					out = append(out, ft.Clone())
					flat++
					continue
				}

				g.rendered[key] = t
				out = append(out, t)
				flat++
			}
		}
	}
	return out
}

// evaluate folds the effector stack over one clone.
func (g *GridCloner) evaluate(key components.CloneKey, flat, total int, local rl.Vector3, clock float64) components.CloneTransform {
	d := g.stack.Apply(local, flat, total, clock)

	ti := g.templateIndex(flat)
	tmpl := &g.templates[ti]

	t := components.CloneTransform{
		Key:           key,
		Index:         flat,
		TemplateIndex: ti,
		LocalPosition: local,
		Position:      rl.Vector3Add(rl.Vector3Add(g.Params.Position, local), d.Position),
		Rotation:      rl.Vector3Add(g.Params.Rotation, d.Rotation),
		Scale:         rl.Vector3Add(g.Params.Scale, d.Scale),
		Hidden:        d.HiddenSet && d.Hidden,
		HasColor:      tmpl.HasColor,
		Color:         tmpl.ColorIndex,
		Carrier:       tmpl.Carrier,
		Infectable:    tmpl.Infectable,
	}
	if d.ColorSet {
		t.HasColor = true
		t.Color = d.Color
	}
	if d.MaterialColors != nil {
		t.MaterialColors = d.MaterialColors
	}
	if g.Params.Carrier != nil {
		t.Carrier = *g.Params.Carrier
	}
	if g.Params.Infectable != nil {
		t.Infectable = *g.Params.Infectable
	}
	if g.Params.EntityPrefix != "" {
		t.EntityID = fmt.Sprintf("%s::%d,%d,%d", g.Params.EntityPrefix, key.X, key.Y, key.Z)
	}
	return t
}

// templateIndex selects the template child for a flat index.
func (g *GridCloner) templateIndex(flat int) int {
	n := len(g.templates)
	if n <= 1 {
		return 0
	}
	if g.Params.Distribution == DistributeRandom {
		return effectors.HashIndex(g.Params.Seed, flat, effectors.SaltDistributeA, effectors.SaltDistributeB, n)
	}
	return flat % n
}

// passthrough renders the template children unmodified (cloner disabled).
func (g *GridCloner) passthrough() []components.CloneTransform {
	out := make([]components.CloneTransform, 0, len(g.templates))
	for i, tmpl := range g.templates {
		out = append(out, components.CloneTransform{
			Key:           components.CloneKey{X: i},
			Index:         i,
			TemplateIndex: i,
			LocalPosition: tmpl.Position,
			Position:      rl.Vector3Add(g.Params.Position, tmpl.Position),
			Rotation:      tmpl.Rotation,
			Scale:         tmpl.Scale,
			HasColor:      tmpl.HasColor,
			Color:         tmpl.ColorIndex,
			Carrier:       tmpl.Carrier,
			Infectable:    tmpl.Infectable,
		})
	}
	return out
}

// drainActivations moves pending collision activations into the frozen
// cache. First writer wins; an already-frozen key is a no-op.
func (g *GridCloner) drainActivations() {
	for {
		select {
		case ev := <-g.events:
			if !g.mode.CollisionActivated() {
				continue
			}
			if _, ok := g.frozen[ev.Key]; ok {
				continue
			}
			t, ok := g.rendered[ev.Key]
			if !ok {
				slog.Warn("activation for unknown clone key", "key", ev.Key)
				continue
			}
			g.frozen[ev.Key] = t.Clone()
		default:
			return
		}
	}
}
