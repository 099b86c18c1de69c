// Package collider infers approximate physics collider shapes from primitive
// descriptors. The inference is intentionally coarse: every primitive kind
// maps to a cuboid, ball or cylinder bound anchored at the primitive's
// visual anchor point.
package collider

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Shape is the collider geometry class.
type Shape int

const (
	Cuboid Shape = iota
	Ball
	Cylinder
)

// String returns the shape name for logs and CSV output.
func (s Shape) String() string {
	switch s {
	case Ball:
		return "ball"
	case Cylinder:
		return "cylinder"
	default:
		return "cuboid"
	}
}

// Props are the declared primitive properties consumed by inference.
// Zero values fall back to per-kind defaults.
type Props struct {
	Size   rl.Vector3 `yaml:"size"`
	Radius float32    `yaml:"radius"`
	Height float32    `yaml:"height"`
	Align  string     `yaml:"align"`  // "center" (default), "bottom", "top"
	Preset string     `yaml:"preset"` // block presets: "unit", "half", "tall", "plane"
}

// Collider is an inferred collider: cuboid half-extents, ball radius, or
// cylinder half-height plus radius, with a local offset anchoring it to the
// primitive's visual anchor.
type Collider struct {
	Shape       Shape
	HalfExtents rl.Vector3 // cuboid
	Radius      float32    // ball, cylinder
	HalfHeight  float32    // cylinder
	Offset      rl.Vector3
}

type inferFunc func(Props) Collider

// registry maps primitive kind tags to their inference rule.
var registry = map[string]inferFunc{
	"box":      inferBox,
	"wedge":    inferBox,
	"steps":    inferBox,
	"pyramid":  inferBox,
	"arch":     inferBox,
	"sphere":   inferSphere,
	"dome":     inferDome,
	"cylinder": inferCylinder,
	"cone":     inferCylinder,
	"capsule":  inferCylinder,
	"disc":     inferDisc,
	"torus":    inferTorus,
	"block":    inferBlock,
}

// Kinds returns the registered primitive kind tags. The result is not sorted.
func Kinds() []string {
	kinds := make([]string, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	return kinds
}

// Infer resolves a primitive kind and props to a collider. Unknown kinds
// return a unit cuboid and ok=false so the caller can log and continue.
func Infer(kind string, props Props) (Collider, bool) {
	fn, ok := registry[kind]
	if !ok {
		return Collider{Shape: Cuboid, HalfExtents: rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5}}, false
	}
	c := fn(props)
	c.Offset = alignOffset(c, props.Align)
	return c, true
}

// alignOffset anchors the collider to the primitive's visual anchor point.
// "bottom" primitives sit on their origin, so the collider center moves up.
func alignOffset(c Collider, align string) rl.Vector3 {
	half := c.HalfExtents.Y
	switch c.Shape {
	case Ball:
		half = c.Radius
	case Cylinder:
		half = c.HalfHeight
	}
	switch align {
	case "bottom":
		return rl.Vector3{Y: half}
	case "top":
		return rl.Vector3{Y: -half}
	default:
		return rl.Vector3{}
	}
}

// Scale applies a clone's scale to the collider. Cuboids scale per axis,
// balls take the maximum axis to stay conservative, cylinders split the
// Y axis from the radial axes.
func Scale(c Collider, s rl.Vector3) Collider {
	out := c
	out.Offset = rl.Vector3{X: c.Offset.X * s.X, Y: c.Offset.Y * s.Y, Z: c.Offset.Z * s.Z}
	switch c.Shape {
	case Cuboid:
		out.HalfExtents = rl.Vector3{X: c.HalfExtents.X * s.X, Y: c.HalfExtents.Y * s.Y, Z: c.HalfExtents.Z * s.Z}
	case Ball:
		out.Radius = c.Radius * max3(s.X, s.Y, s.Z)
	case Cylinder:
		out.HalfHeight = c.HalfHeight * s.Y
		out.Radius = c.Radius * maxf(s.X, s.Z)
	}
	return out
}

func inferBox(p Props) Collider {
	size := p.Size
	if size.X == 0 && size.Y == 0 && size.Z == 0 {
		size = rl.Vector3{X: 1, Y: 1, Z: 1}
	}
	return Collider{Shape: Cuboid, HalfExtents: rl.Vector3Scale(size, 0.5)}
}

func inferSphere(p Props) Collider {
	r := p.Radius
	if r == 0 {
		r = 0.5
	}
	return Collider{Shape: Ball, Radius: r}
}

// A dome is bounded by the sphere it was cut from.
func inferDome(p Props) Collider {
	return inferSphere(p)
}

func inferCylinder(p Props) Collider {
	r := p.Radius
	if r == 0 {
		r = 0.5
	}
	h := p.Height
	if h == 0 {
		h = 1
	}
	return Collider{Shape: Cylinder, HalfHeight: h / 2, Radius: r}
}

func inferDisc(p Props) Collider {
	c := inferCylinder(p)
	if p.Height == 0 {
		c.HalfHeight = 0.05
	}
	return c
}

func inferTorus(p Props) Collider {
	r := p.Radius
	if r == 0 {
		r = 0.5
	}
	return Collider{Shape: Cylinder, HalfHeight: r * 0.25, Radius: r}
}

// Block presets come from the level authoring palette: a handful of fixed
// cuboid dimensions selected by name.
func inferBlock(p Props) Collider {
	var size rl.Vector3
	switch p.Preset {
	case "half":
		size = rl.Vector3{X: 1, Y: 0.5, Z: 1}
	case "tall":
		size = rl.Vector3{X: 1, Y: 2, Z: 1}
	case "plane":
		size = rl.Vector3{X: 4, Y: 0.1, Z: 4}
	default: // "unit"
		size = rl.Vector3{X: 1, Y: 1, Z: 1}
	}
	if p.Height != 0 {
		size.Y = p.Height
	}
	return Collider{Shape: Cuboid, HalfExtents: rl.Vector3Scale(size, 0.5)}
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func max3(a, b, c float32) float32 {
	return maxf(maxf(a, b), c)
}
