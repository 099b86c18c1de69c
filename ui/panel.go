// Package ui renders the raygui control panel for live effector editing.
package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/cloner/effectors"
)

// Panel is the left-side effector panel. Toggled with Tab.
type Panel struct {
	x, y    float32
	width   float32
	visible bool
}

// NewPanel creates the panel at the given screen position.
func NewPanel(x, y, width float32) *Panel {
	return &Panel{x: x, y: y, width: width, visible: true}
}

// IsVisible returns whether the panel is shown.
func (p *Panel) IsVisible() bool {
	return p.visible
}

// Toggle switches panel visibility.
func (p *Panel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// Draw renders the panel and applies any edits to the stack in place.
// Returns true when a control changed, so the caller can regenerate.
func (p *Panel) Draw(stack *effectors.Stack, modeLabel string, frozen int) bool {
	if !p.visible {
		return false
	}

	effs := stack.Effectors()
	height := int32(len(effs))*44 + 80

	rl.DrawRectangle(int32(p.x)-6, int32(p.y)-6, int32(p.width)+12, height, rl.Color{R: 20, G: 22, B: 28, A: 210})

	x, y := p.x, p.y
	rl.DrawText("Effectors", int32(x), int32(y), 16, rl.White)
	y += 24

	edited := false
	for i := range effs {
		e := &effs[i]

		label := fmt.Sprintf("%s #%d", e.Kind, i)
		enabled := gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 14, Height: 14}, label, e.Enabled)
		if enabled != e.Enabled {
			e.Enabled = enabled
			edited = true
		}
		y += 20

		cur := float32(e.Strength)
		next := gui.SliderBar(rl.Rectangle{X: x + 20, Y: y, Width: p.width - 80, Height: 14}, "", "", cur, 0, 1)
		if next != cur {
			e.Strength = float64(next)
			edited = true
		}
		rl.DrawText(fmt.Sprintf("%.2f", e.Strength), int32(x+p.width-52), int32(y), 12, rl.LightGray)
		y += 24
	}

	y += 6
	rl.DrawText(fmt.Sprintf("physics: %s", modeLabel), int32(x), int32(y), 12, rl.Gray)
	y += 16
	rl.DrawText(fmt.Sprintf("frozen: %d", frozen), int32(x), int32(y), 12, rl.Gray)

	return edited
}
