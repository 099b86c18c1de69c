// Package effectors implements the field effector stack: composable rules
// that perturb clone transforms, visibility and color as a function of local
// position, flat index and time.
package effectors

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

// Kind discriminates the effector union.
type Kind string

const (
	KindLinear Kind = "linear"
	KindRandom Kind = "random"
	KindNoise  Kind = "noise"
	KindTime   Kind = "time"
	KindStep   Kind = "step"
)

// ColorSpec is either a single palette index or a palette array to sample
// from. In YAML it is written as a bare number or a sequence.
type ColorSpec struct {
	Scalar  *float64
	Palette []float64
}

// IsSet reports whether the spec holds any value.
func (c *ColorSpec) IsSet() bool {
	return c.Scalar != nil || len(c.Palette) > 0
}

// Sample resolves the spec against a draw in [0,1). Arrays index by the draw,
// scalars pass through.
func (c *ColorSpec) Sample(draw float64) float64 {
	if n := len(c.Palette); n > 0 {
		idx := int(draw * float64(n))
		if idx >= n {
			idx = n - 1
		}
		if idx < 0 {
			idx = 0
		}
		return c.Palette[idx]
	}
	if c.Scalar != nil {
		return *c.Scalar
	}
	return 0
}

// UnmarshalYAML accepts either a scalar or a sequence.
func (c *ColorSpec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var v float64
		if err := value.Decode(&v); err != nil {
			return fmt.Errorf("decoding color scalar: %w", err)
		}
		c.Scalar = &v
		c.Palette = nil
		return nil
	case yaml.SequenceNode:
		var vs []float64
		if err := value.Decode(&vs); err != nil {
			return fmt.Errorf("decoding color palette: %w", err)
		}
		c.Scalar = nil
		c.Palette = vs
		return nil
	default:
		return fmt.Errorf("color: expected scalar or sequence, got yaml kind %d", value.Kind)
	}
}

// LinearParams configures the linear falloff field.
type LinearParams struct {
	FieldPosition rl.Vector3 `yaml:"field_position"`
	FieldRotation rl.Vector3 `yaml:"field_rotation"` // XYZ Euler, radians
	Axis          string     `yaml:"axis"`           // "x", "y" or "z"
	Center        float64    `yaml:"center"`
	Size          float64    `yaml:"size"`
	Invert        bool       `yaml:"invert"`

	Remap   RemapParams   `yaml:"remap"`
	Contour ContourParams `yaml:"contour"`
}

// RemapParams re-scales the raw linear progress before contour shaping.
type RemapParams struct {
	Enabled     bool    `yaml:"enabled"`
	InnerOffset float64 `yaml:"inner_offset"` // consumed span before remapping, in [0,1)
	Min         float64 `yaml:"min"`
	Max         float64 `yaml:"max"`
	ClampMin    bool    `yaml:"clamp_min"`
	ClampMax    bool    `yaml:"clamp_max"`
}

// ContourParams shapes a normalized progress value. Kind is one of "none",
// "quadratic", "step", "quantize", or any easing curve name.
type ContourParams struct {
	Kind       string  `yaml:"kind"`
	Steps      int     `yaml:"steps"`      // quantize levels
	Multiplier float64 `yaml:"multiplier"` // defaulted to 1 by config load
}

// RandomParams configures the seeded jitter effector.
type RandomParams struct {
	HideProbability float64 `yaml:"hide_probability"`
}

// NoiseParams configures the seeded 3D noise effector.
type NoiseParams struct {
	Frequency     float64    `yaml:"frequency"`
	StaticOffset  rl.Vector3 `yaml:"static_offset"`
	Position      rl.Vector3 `yaml:"position"`       // field translation
	PositionSpeed rl.Vector3 `yaml:"position_speed"` // field drift per second
}

// TimeParams configures the clock-driven effector.
type TimeParams struct {
	Speed       float64 `yaml:"speed"`
	Offset      float64 `yaml:"offset"`
	CloneOffset float64 `yaml:"clone_offset"` // per-index phase shift
	Duration    float64 `yaml:"duration"`
	Loop        string  `yaml:"loop"` // "none", "loop", "pingpong"
	Ease        string  `yaml:"ease"`
}

// StepParams configures the index-driven effector.
type StepParams struct {
	PhaseOffset float64 `yaml:"phase_offset"`
	Profile     string  `yaml:"profile"` // "ramp" or "hump"
	Ease        string  `yaml:"ease"`
}

// Effector is one entry of the effector stack: a tagged union over the five
// evaluator kinds plus the channels shared by all of them.
type Effector struct {
	Kind     Kind    `yaml:"kind"`
	Enabled  bool    `yaml:"enabled"`
	Strength float64 `yaml:"strength"` // clamped to [0,1]

	// Additive channels. A zero vector contributes nothing.
	Position rl.Vector3 `yaml:"position"`
	Rotation rl.Vector3 `yaml:"rotation"` // XYZ Euler, radians
	Scale    rl.Vector3 `yaml:"scale"`

	Hidden        bool    `yaml:"hidden"`
	HideThreshold float64 `yaml:"hide_threshold"`

	Color          ColorSpec            `yaml:"color"`
	MaterialColors map[string]ColorSpec `yaml:"material_colors"`

	Seed int `yaml:"seed"`

	Linear LinearParams `yaml:"linear"`
	Random RandomParams `yaml:"random"`
	Noise  NoiseParams  `yaml:"noise"`
	Time   TimeParams   `yaml:"time"`
	Step   StepParams   `yaml:"step"`
}

// strength returns the effective strength, clamped to [0,1].
func (e *Effector) strength() float64 {
	if e.Strength < 0 {
		return 0
	}
	if e.Strength > 1 {
		return 1
	}
	return e.Strength
}

// Delta accumulates effector contributions for one clone. Transform channels
// add across effectors; hidden/color use last-writer-wins.
type Delta struct {
	Position rl.Vector3
	Rotation rl.Vector3
	Scale    rl.Vector3

	HiddenSet bool
	Hidden    bool

	ColorSet bool
	Color    float64

	MaterialColors map[string]float64
}

// addWeighted adds the effector's channel vectors scaled by weight. A weight
// of exactly zero must not touch the accumulator.
func (d *Delta) addWeighted(e *Effector, weight float64) {
	if weight == 0 {
		return
	}
	w := float32(weight)
	d.Position = rl.Vector3Add(d.Position, rl.Vector3Scale(e.Position, w))
	d.Rotation = rl.Vector3Add(d.Rotation, rl.Vector3Scale(e.Rotation, w))
	d.Scale = rl.Vector3Add(d.Scale, rl.Vector3Scale(e.Scale, w))
}

func (d *Delta) setHidden(h bool) {
	d.HiddenSet = true
	d.Hidden = h
}

func (d *Delta) setColor(c float64) {
	d.ColorSet = true
	d.Color = c
}

func (d *Delta) setMaterialColor(name string, c float64) {
	if d.MaterialColors == nil {
		d.MaterialColors = make(map[string]float64, 4)
	}
	d.MaterialColors[name] = c
}
