package effectors

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestHash01Range(t *testing.T) {
	for i := 0; i < 1000; i++ {
		v := Hash01(42, i, 3, 7)
		if v < 0 || v >= 1 {
			t.Fatalf("Hash01 out of range at i=%d: %v", i, v)
		}
		s := HashSigned(42, i, 3, 7)
		if s < -1 || s >= 1 {
			t.Fatalf("HashSigned out of range at i=%d: %v", i, s)
		}
	}
}

func TestHashDeterministic(t *testing.T) {
	a := Hash01(7, 12, 2, saltPosX)
	b := Hash01(7, 12, 2, saltPosX)
	if a != b {
		t.Errorf("same tuple produced %v and %v", a, b)
	}
	// Different salts must decorrelate the lanes.
	if Hash01(7, 12, 2, saltPosX) == Hash01(7, 12, 2, saltPosY) {
		t.Error("distinct salts produced identical draws")
	}
}

func TestHashIndexBounds(t *testing.T) {
	for i := 0; i < 200; i++ {
		idx := HashIndex(5, i, SaltDistributeA, SaltDistributeB, 3)
		if idx < 0 || idx >= 3 {
			t.Fatalf("HashIndex out of bounds: %d", idx)
		}
	}
}

func TestLinearZeroStrengthIsIdentity(t *testing.T) {
	stack := NewStack([]Effector{{
		Kind:     KindLinear,
		Enabled:  true,
		Strength: 0,
		Position: rl.Vector3{X: 100, Y: 100, Z: 100},
		Rotation: rl.Vector3{X: 1, Y: 1, Z: 1},
		Scale:    rl.Vector3{X: 2, Y: 2, Z: 2},
		Hidden:   true,
		Linear:   LinearParams{Axis: "x", Size: 10},
	}})

	d := stack.Apply(rl.Vector3{X: 5}, 0, 1, 0)
	if d.Position != (rl.Vector3{}) || d.Rotation != (rl.Vector3{}) || d.Scale != (rl.Vector3{}) {
		t.Errorf("zero strength touched transform channels: %+v", d)
	}
	if d.HiddenSet || d.ColorSet {
		t.Error("zero strength touched hidden/color")
	}
}

func TestLinearProgress(t *testing.T) {
	e := Effector{
		Kind:     KindLinear,
		Enabled:  true,
		Strength: 1,
		Position: rl.Vector3{Y: 1},
		Linear:   LinearParams{Axis: "x", Center: 0, Size: 10},
	}
	stack := NewStack([]Effector{e})

	// Axis value 0 sits at the field center: progress (0 - (-5)) / 10 = 0.5.
	d := stack.Apply(rl.Vector3{}, 0, 1, 0)
	if math.Abs(float64(d.Position.Y)-0.5) > 1e-6 {
		t.Errorf("center progress = %v, want 0.5", d.Position.Y)
	}

	// At the field's far edge progress reaches 1.
	d = stack.Apply(rl.Vector3{X: 5}, 0, 1, 0)
	if math.Abs(float64(d.Position.Y)-1) > 1e-6 {
		t.Errorf("edge progress = %v, want 1", d.Position.Y)
	}
}

func TestLinearInvert(t *testing.T) {
	e := Effector{
		Kind:     KindLinear,
		Enabled:  true,
		Strength: 1,
		Position: rl.Vector3{Y: 1},
		Linear:   LinearParams{Axis: "x", Center: 0, Size: 10, Invert: true},
	}
	stack := NewStack([]Effector{e})
	d := stack.Apply(rl.Vector3{X: 5}, 0, 1, 0)
	if math.Abs(float64(d.Position.Y)) > 1e-6 {
		t.Errorf("inverted edge progress = %v, want 0", d.Position.Y)
	}
}

func TestLinearDegenerateSizeIsNoop(t *testing.T) {
	e := Effector{
		Kind:     KindLinear,
		Enabled:  true,
		Strength: 1,
		Position: rl.Vector3{Y: 1},
		Linear:   LinearParams{Axis: "x", Size: 0},
	}
	stack := NewStack([]Effector{e})
	d := stack.Apply(rl.Vector3{X: 3}, 0, 1, 0)
	if d.Position != (rl.Vector3{}) {
		t.Errorf("zero size should be a no-op, got %+v", d.Position)
	}
}

func TestLinearFieldRotation(t *testing.T) {
	// Rotate the field 90 degrees around Z: the clone's Y coordinate becomes
	// the field-local X axis value.
	e := Effector{
		Kind:     KindLinear,
		Enabled:  true,
		Strength: 1,
		Position: rl.Vector3{Y: 1},
		Linear: LinearParams{
			Axis:          "x",
			Center:        0,
			Size:          10,
			FieldRotation: rl.Vector3{Z: math.Pi / 2},
		},
	}
	stack := NewStack([]Effector{e})
	d := stack.Apply(rl.Vector3{Y: 5}, 0, 1, 0)
	if math.Abs(float64(d.Position.Y)-1) > 1e-5 {
		t.Errorf("rotated field progress = %v, want 1", d.Position.Y)
	}
}

func TestContourShapes(t *testing.T) {
	tests := []struct {
		name string
		c    ContourParams
		in   float64
		want float64
	}{
		{"none passthrough", ContourParams{Kind: "none", Multiplier: 1}, 0.3, 0.3},
		{"quadratic", ContourParams{Kind: "quadratic", Multiplier: 1}, 0.5, 0.25},
		{"quadratic sign", ContourParams{Kind: "quadratic", Multiplier: 1}, -0.5, -0.25},
		{"step low", ContourParams{Kind: "step", Multiplier: 1}, 0.49, 0},
		{"step high", ContourParams{Kind: "step", Multiplier: 1}, 0.5, 1},
		{"quantize", ContourParams{Kind: "quantize", Steps: 4, Multiplier: 1}, 0.3, 0.25},
		{"easing", ContourParams{Kind: "smoothstep", Multiplier: 1}, 0.5, 0.5},
		{"multiplier", ContourParams{Kind: "none", Multiplier: 2}, 0.4, 0.8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := contour(tt.in, tt.c)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("contour(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRandomDeterminism(t *testing.T) {
	e := []Effector{{
		Kind:     KindRandom,
		Enabled:  true,
		Strength: 1,
		Seed:     99,
		Position: rl.Vector3{X: 2, Y: 2, Z: 2},
		Rotation: rl.Vector3{X: 1, Y: 1, Z: 1},
		Scale:    rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5},
	}}

	a := NewStack(e).Apply(rl.Vector3{}, 7, 10, 0)
	b := NewStack(e).Apply(rl.Vector3{}, 7, 10, 0)
	if a.Position != b.Position || a.Rotation != b.Rotation || a.Scale != b.Scale {
		t.Errorf("identical inputs produced different deltas: %+v vs %+v", a, b)
	}

	// A different flat index must move at least the position draw.
	c := NewStack(e).Apply(rl.Vector3{}, 8, 10, 0)
	if a.Position == c.Position {
		t.Error("different flat index produced identical position delta")
	}
}

func TestRandomPaletteColor(t *testing.T) {
	e := []Effector{{
		Kind:     KindRandom,
		Enabled:  true,
		Strength: 1,
		Seed:     3,
		Color:    ColorSpec{Palette: []float64{10, 20, 30}},
	}}
	d := NewStack(e).Apply(rl.Vector3{}, 0, 1, 0)
	if !d.ColorSet {
		t.Fatal("palette color should always be sampled")
	}
	if d.Color != 10 && d.Color != 20 && d.Color != 30 {
		t.Errorf("sampled color %v not in palette", d.Color)
	}
}

func TestTimePingpong(t *testing.T) {
	tests := []struct {
		raw  float64
		want float64
	}{
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{1.5, 0.5}, // triangle reflection
		{2, 0},
		{2.25, 0.25},
		{-0.5, 0.5},
	}
	for _, tt := range tests {
		if got := applyLoop(tt.raw, "pingpong"); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("pingpong(%v) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestTimeLoopModes(t *testing.T) {
	if got := applyLoop(1.25, "loop"); math.Abs(got-0.25) > 1e-9 {
		t.Errorf("loop(1.25) = %v, want 0.25", got)
	}
	if got := applyLoop(1.25, "none"); got != 1 {
		t.Errorf("none(1.25) = %v, want 1 (clamped)", got)
	}
	if got := applyLoop(-0.25, "none"); got != 0 {
		t.Errorf("none(-0.25) = %v, want 0 (clamped)", got)
	}
}

func TestTimeEffector(t *testing.T) {
	e := []Effector{{
		Kind:     KindTime,
		Enabled:  true,
		Strength: 1,
		Position: rl.Vector3{Y: 10},
		Time:     TimeParams{Speed: 1, Duration: 2, Loop: "none"},
	}}
	// clock 1s over a 2s duration: progress 0.5, delta 5.
	d := NewStack(e).Apply(rl.Vector3{}, 0, 1, 1)
	if math.Abs(float64(d.Position.Y)-5) > 1e-6 {
		t.Errorf("time delta = %v, want 5", d.Position.Y)
	}
}

func TestStepRampEndpoints(t *testing.T) {
	e := []Effector{{
		Kind:     KindStep,
		Enabled:  true,
		Strength: 1,
		Position: rl.Vector3{Y: 1},
		Step:     StepParams{Profile: "ramp"},
	}}
	stack := NewStack(e)

	d := stack.Apply(rl.Vector3{}, 0, 5, 0)
	if d.HiddenSet || d.Position.Y != 0 {
		t.Errorf("index 0 of 5: delta %v, want 0", d.Position.Y)
	}
	d = stack.Apply(rl.Vector3{}, 4, 5, 0)
	if math.Abs(float64(d.Position.Y)-1) > 1e-6 {
		t.Errorf("index 4 of 5: delta %v, want 1", d.Position.Y)
	}
}

func TestStepHumpSymmetry(t *testing.T) {
	e := []Effector{{
		Kind:     KindStep,
		Enabled:  true,
		Strength: 1,
		Position: rl.Vector3{Y: 1},
		Step:     StepParams{Profile: "hump"},
	}}
	stack := NewStack(e)

	// Endpoints of the hump sit at sin(0) and sin(pi).
	d0 := stack.Apply(rl.Vector3{}, 0, 3, 0)
	d2 := stack.Apply(rl.Vector3{}, 2, 3, 0)
	if math.Abs(float64(d0.Position.Y)) > 1e-6 || math.Abs(float64(d2.Position.Y)) > 1e-6 {
		t.Errorf("hump endpoints = %v, %v, want 0, 0", d0.Position.Y, d2.Position.Y)
	}
	// Midpoint peaks at sin(pi/2) = 1.
	d1 := stack.Apply(rl.Vector3{}, 1, 3, 0)
	if math.Abs(float64(d1.Position.Y)-1) > 1e-6 {
		t.Errorf("hump midpoint = %v, want 1", d1.Position.Y)
	}
}

func TestNoiseDeterminismAndMemoization(t *testing.T) {
	e := []Effector{{
		Kind:     KindNoise,
		Enabled:  true,
		Strength: 1,
		Seed:     11,
		Position: rl.Vector3{X: 1, Y: 1, Z: 1},
		Noise:    NoiseParams{Frequency: 0.3},
	}}
	stack := NewStack(e)

	a := stack.Apply(rl.Vector3{X: 1, Y: 2, Z: 3}, 0, 1, 0)
	b := stack.Apply(rl.Vector3{X: 1, Y: 2, Z: 3}, 0, 1, 0)
	if a.Position != b.Position {
		t.Errorf("noise not stable across ticks: %+v vs %+v", a.Position, b.Position)
	}

	// The generator is memoized per effector index, keyed by seed.
	stack.noiseGen(0, 11)
	if len(stack.noiseGens) != 1 {
		t.Fatalf("expected one cached generator, got %d", len(stack.noiseGens))
	}
	if stack.noiseGens[0].seed != 11 {
		t.Errorf("cached seed = %d, want 11", stack.noiseGens[0].seed)
	}
	stack.noiseGen(0, 12)
	if stack.noiseGens[0].seed != 12 {
		t.Error("seed change must rebuild the cached generator")
	}
}

func TestNeedsClock(t *testing.T) {
	if NewStack([]Effector{{Kind: KindRandom, Enabled: true, Strength: 1}}).NeedsClock() {
		t.Error("random-only stack should not need the clock")
	}
	if !NewStack([]Effector{{Kind: KindTime, Enabled: true, Strength: 1}}).NeedsClock() {
		t.Error("time effector needs the clock")
	}
	moving := []Effector{{
		Kind: KindNoise, Enabled: true, Strength: 1,
		Noise: NoiseParams{PositionSpeed: rl.Vector3{X: 0.5}},
	}}
	if !NewStack(moving).NeedsClock() {
		t.Error("drifting noise needs the clock")
	}
	static := []Effector{{Kind: KindNoise, Enabled: true, Strength: 1}}
	if NewStack(static).NeedsClock() {
		t.Error("static noise should not need the clock")
	}
}

func TestDisabledEffectorSkipped(t *testing.T) {
	e := []Effector{{
		Kind:     KindRandom,
		Enabled:  false,
		Strength: 1,
		Position: rl.Vector3{X: 10, Y: 10, Z: 10},
	}}
	d := NewStack(e).Apply(rl.Vector3{}, 0, 1, 0)
	if d.Position != (rl.Vector3{}) {
		t.Errorf("disabled effector contributed %+v", d.Position)
	}
}

func TestStackAccumulatesAcrossEffectors(t *testing.T) {
	e := []Effector{
		{
			Kind: KindStep, Enabled: true, Strength: 1,
			Position: rl.Vector3{Y: 1},
			Step:     StepParams{Profile: "ramp"},
		},
		{
			Kind: KindTime, Enabled: true, Strength: 1,
			Position: rl.Vector3{Y: 2},
			Time:     TimeParams{Speed: 1, Duration: 1, Loop: "none"},
		},
	}
	// index 1 of 2 -> step 1; clock 1 over duration 1 -> time 1, delta 2.
	d := NewStack(e).Apply(rl.Vector3{}, 1, 2, 1)
	if math.Abs(float64(d.Position.Y)-3) > 1e-6 {
		t.Errorf("accumulated delta = %v, want 3", d.Position.Y)
	}
}
