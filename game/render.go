package game

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/cloner/cloner"
	"github.com/pthm-cable/cloner/collider"
	"github.com/pthm-cable/cloner/components"
)

// palette indexed by the resolved clone color value.
var palette = []rl.Color{
	{R: 230, G: 126, B: 34, A: 255},
	{R: 52, G: 152, B: 219, A: 255},
	{R: 46, G: 204, B: 113, A: 255},
	{R: 155, G: 89, B: 182, A: 255},
	{R: 241, G: 196, B: 15, A: 255},
	{R: 231, G: 76, B: 60, A: 255},
	{R: 26, G: 188, B: 156, A: 255},
	{R: 236, G: 240, B: 241, A: 255},
}

var defaultCloneColor = rl.Color{R: 190, G: 195, B: 200, A: 255}

// Draw renders the 3D scene, the HUD and the control panel.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 24, G: 26, B: 32, A: 255})

	rl.BeginMode3D(g.cam.Raylib())
	rl.DrawGrid(40, 1)

	query := g.cloneFilter.Query()
	for query.Next() {
		pos, rot, scl, meta := query.Get()
		if meta.Hidden {
			continue
		}
		tmpl := g.template(meta)
		if tmpl == nil {
			continue
		}
		g.drawClone(tmpl, meta, pos, rot, scl)
	}
	rl.EndMode3D()

	g.drawHUD()
	if g.panel.Draw(g.grid.Stack(), g.grid.PhysicsMode().String(), g.grid.FrozenCount()) {
		g.MarkDirty()
	}

	rl.EndDrawing()
}

// template resolves the template child a scene entity renders.
func (g *Game) template(meta *components.CloneMeta) *cloner.TemplateChild {
	var ts []cloner.TemplateChild
	switch meta.Source {
	case sourceGrid:
		ts = g.grid.Templates()
	case sourceFracture:
		if g.fracture == nil {
			return nil
		}
		ts = g.fracture.Children()
	}
	if meta.TemplateIndex >= len(ts) {
		return nil
	}
	return &ts[meta.TemplateIndex]
}

// drawClone applies the clone transform and draws the template primitive.
// In child transform mode the child's declared transform stays composed
// underneath the per-clone one; in cloner mode the child renders as if reset
// to identity. Fracture children already carry their declared transform in
// the clone pose.
func (g *Game) drawClone(tmpl *cloner.TemplateChild, meta *components.CloneMeta, pos *components.Position, rot *components.Rotation, scl *components.Scale) {
	rl.PushMatrix()
	rl.Translatef(pos.X, pos.Y, pos.Z)
	rl.Rotatef(deg(rot.Z), 0, 0, 1)
	rl.Rotatef(deg(rot.Y), 0, 1, 0)
	rl.Rotatef(deg(rot.X), 1, 0, 0)
	rl.Scalef(scl.X, scl.Y, scl.Z)

	if meta.Source == sourceGrid && g.grid.Params.TransformMode == cloner.TransformChild {
		rl.Translatef(tmpl.Position.X, tmpl.Position.Y, tmpl.Position.Z)
		rl.Rotatef(deg(tmpl.Rotation.Z), 0, 0, 1)
		rl.Rotatef(deg(tmpl.Rotation.Y), 0, 1, 0)
		rl.Rotatef(deg(tmpl.Rotation.X), 1, 0, 0)
		rl.Scalef(tmpl.Scale.X, tmpl.Scale.Y, tmpl.Scale.Z)
	}

	color := cloneColor(meta)
	if meta.Frozen {
		color = darken(color)
	}
	drawPrimitive(tmpl, color)

	rl.PopMatrix()
}

// drawPrimitive draws the template's primitive at the current matrix origin,
// sized from its inferred collider.
func drawPrimitive(tmpl *cloner.TemplateChild, color rl.Color) {
	col := tmpl.Collider
	switch col.Shape {
	case collider.Ball:
		rl.DrawSphere(col.Offset, col.Radius, color)

	case collider.Cylinder:
		switch tmpl.Kind {
		case "cone":
			rl.DrawCylinder(cylinderBase(col), 0, col.Radius, col.HalfHeight*2, 16, color)
		case "capsule":
			span := col.HalfHeight - col.Radius
			if span < 0 {
				span = 0
			}
			start := rl.Vector3{X: col.Offset.X, Y: col.Offset.Y - span, Z: col.Offset.Z}
			end := rl.Vector3{X: col.Offset.X, Y: col.Offset.Y + span, Z: col.Offset.Z}
			rl.DrawCapsule(start, end, col.Radius, 8, 8, color)
		default:
			rl.DrawCylinder(cylinderBase(col), col.Radius, col.Radius, col.HalfHeight*2, 16, color)
		}

	default:
		if tmpl.Kind == "pyramid" {
			r := col.HalfExtents.X
			if col.HalfExtents.Z > r {
				r = col.HalfExtents.Z
			}
			base := rl.Vector3{X: col.Offset.X, Y: col.Offset.Y - col.HalfExtents.Y, Z: col.Offset.Z}
			rl.DrawCylinder(base, 0, r, col.HalfExtents.Y*2, 4, color)
			return
		}
		size := rl.Vector3{X: col.HalfExtents.X * 2, Y: col.HalfExtents.Y * 2, Z: col.HalfExtents.Z * 2}
		rl.DrawCubeV(col.Offset, size, color)
	}
}

func cylinderBase(col collider.Collider) rl.Vector3 {
	return rl.Vector3{X: col.Offset.X, Y: col.Offset.Y - col.HalfHeight, Z: col.Offset.Z}
}

// drawHUD renders the status line and key hints.
func (g *Game) drawHUD() {
	w := int32(g.cfg.Screen.Width)

	status := fmt.Sprintf("tick %d  clones %d  frozen %d  fps %d",
		g.tick, len(g.lastClones), g.grid.FrozenCount(), rl.GetFPS())
	if g.paused {
		status += "  [paused]"
	}
	tw := rl.MeasureText(status, 14)
	rl.DrawText(status, w-tw-10, 10, 14, rl.LightGray)

	hints := "space pause  tab panel  p physics  rmb orbit  wheel zoom"
	hw := rl.MeasureText(hints, 12)
	rl.DrawText(hints, w-hw-10, 30, 12, rl.Gray)
}

func cloneColor(meta *components.CloneMeta) rl.Color {
	if !meta.HasColor {
		return defaultCloneColor
	}
	idx := int(math.Round(meta.Color))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(palette) {
		idx = len(palette) - 1
	}
	return palette[idx]
}

func darken(c rl.Color) rl.Color {
	return rl.Color{
		R: uint8(float32(c.R) * 0.55),
		G: uint8(float32(c.G) * 0.55),
		B: uint8(float32(c.B) * 0.55),
		A: c.A,
	}
}

func deg(rad float32) float32 {
	return rad * 180 / math.Pi
}
