package collider

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestInferKnownKinds(t *testing.T) {
	tests := []struct {
		name  string
		kind  string
		props Props
		shape Shape
	}{
		{"box", "box", Props{Size: rl.Vector3{X: 2, Y: 4, Z: 2}}, Cuboid},
		{"sphere", "sphere", Props{Radius: 1.5}, Ball},
		{"cylinder", "cylinder", Props{Radius: 1, Height: 3}, Cylinder},
		{"cone bounds as cylinder", "cone", Props{Radius: 1, Height: 2}, Cylinder},
		{"dome bounds as ball", "dome", Props{Radius: 2}, Ball},
		{"wedge bounds as cuboid", "wedge", Props{Size: rl.Vector3{X: 1, Y: 1, Z: 1}}, Cuboid},
		{"block preset", "block", Props{Preset: "tall"}, Cuboid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := Infer(tt.kind, tt.props)
			if !ok {
				t.Fatalf("kind %q should be known", tt.kind)
			}
			if c.Shape != tt.shape {
				t.Errorf("shape = %v, want %v", c.Shape, tt.shape)
			}
		})
	}
}

func TestInferDimensions(t *testing.T) {
	c, _ := Infer("box", Props{Size: rl.Vector3{X: 2, Y: 4, Z: 6}})
	want := rl.Vector3{X: 1, Y: 2, Z: 3}
	if c.HalfExtents != want {
		t.Errorf("half extents = %+v, want %+v", c.HalfExtents, want)
	}

	c, _ = Infer("cylinder", Props{Radius: 1.5, Height: 4})
	if c.HalfHeight != 2 || c.Radius != 1.5 {
		t.Errorf("cylinder = %+v, want halfHeight 2, radius 1.5", c)
	}
}

func TestInferUnknownKindDefaultsToUnitCuboid(t *testing.T) {
	c, ok := Infer("teapot", Props{})
	if ok {
		t.Error("teapot should be unknown")
	}
	want := rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5}
	if c.Shape != Cuboid || c.HalfExtents != want {
		t.Errorf("fallback = %+v, want unit cuboid", c)
	}
}

func TestAlignOffset(t *testing.T) {
	c, _ := Infer("box", Props{Size: rl.Vector3{X: 1, Y: 2, Z: 1}, Align: "bottom"})
	if c.Offset.Y != 1 {
		t.Errorf("bottom-aligned box offset = %v, want 1", c.Offset.Y)
	}
	c, _ = Infer("sphere", Props{Radius: 0.75, Align: "bottom"})
	if c.Offset.Y != 0.75 {
		t.Errorf("bottom-aligned sphere offset = %v, want 0.75", c.Offset.Y)
	}
	c, _ = Infer("cylinder", Props{Height: 2, Align: "top"})
	if c.Offset.Y != -1 {
		t.Errorf("top-aligned cylinder offset = %v, want -1", c.Offset.Y)
	}
}

func TestScaleRules(t *testing.T) {
	s := rl.Vector3{X: 2, Y: 3, Z: 0.5}

	cuboid := Collider{Shape: Cuboid, HalfExtents: rl.Vector3{X: 1, Y: 1, Z: 1}}
	got := Scale(cuboid, s)
	if got.HalfExtents != (rl.Vector3{X: 2, Y: 3, Z: 0.5}) {
		t.Errorf("cuboid scale = %+v", got.HalfExtents)
	}

	// Balls take the max axis to stay conservative.
	ball := Collider{Shape: Ball, Radius: 1}
	if got := Scale(ball, s); got.Radius != 3 {
		t.Errorf("ball scale = %v, want 3", got.Radius)
	}

	// Cylinders split Y from the radial axes.
	cyl := Collider{Shape: Cylinder, HalfHeight: 1, Radius: 1}
	got = Scale(cyl, s)
	if got.HalfHeight != 3 {
		t.Errorf("cylinder half height = %v, want 3", got.HalfHeight)
	}
	if got.Radius != 2 {
		t.Errorf("cylinder radius = %v, want 2 (max of X/Z)", got.Radius)
	}

	// Offsets scale per axis regardless of shape.
	off := Collider{Shape: Ball, Radius: 1, Offset: rl.Vector3{Y: 1}}
	if got := Scale(off, s); math.Abs(float64(got.Offset.Y)-3) > 1e-6 {
		t.Errorf("offset scale = %v, want 3", got.Offset.Y)
	}
}
