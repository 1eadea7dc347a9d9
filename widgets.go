package main

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	widgetColor   = rl.Color{70, 70, 70, 255}
	widgetHover   = rl.Color{80, 80, 80, 255}
	widgetActive  = rl.Color{100, 100, 150, 255}
	widgetBorder  = rl.Color{90, 90, 90, 255}
	panelColor    = rl.Color{50, 50, 50, 255}
	topBarColor   = rl.Color{60, 60, 60, 255}
	sliderTrack   = rl.Color{60, 60, 60, 255}
	backdropColor = rl.Color{40, 40, 40, 255}
)

// GUI Control types
type Button struct {
	rect     rl.Rectangle
	text     string
	tooltip  string
	hover    bool
	selected bool
}

// Update refreshes the hover state and reports a click.
func (b *Button) Update(mouse rl.Vector2) bool {
	b.hover = rl.CheckCollisionPointRec(mouse, b.rect)
	return b.hover && rl.IsMouseButtonPressed(rl.MouseLeftButton)
}

func (b *Button) Draw() {
	color := widgetColor
	if b.selected {
		color = widgetActive
	} else if b.hover {
		color = widgetHover
	}
	rl.DrawRectangleRec(b.rect, color)
	rl.DrawRectangleLinesEx(b.rect, 1, widgetBorder)

	textW := rl.MeasureText(b.text, fontSize)
	textX := int32(b.rect.X + b.rect.Width/2 - float32(textW)/2)
	textY := int32(b.rect.Y + b.rect.Height/2 - fontSize/2)
	rl.DrawText(b.text, textX, textY, fontSize, rl.White)
}

// DrawTooltip labels a hovered button next to the mouse.
func (b *Button) DrawTooltip(mouse rl.Vector2) {
	if b.hover && b.tooltip != "" {
		rl.DrawText(b.tooltip, int32(mouse.X+12), int32(mouse.Y), fontSize, rl.Yellow)
	}
}

type Slider struct {
	rect  rl.Rectangle
	value float32
	min   float32
	max   float32
	step  float32
	label string
}

// Update drags the knob while the left button is held over the track and
// reports whether the value changed.
func (s *Slider) Update(mouse rl.Vector2) bool {
	if !rl.CheckCollisionPointRec(mouse, s.rect) || !rl.IsMouseButtonDown(rl.MouseLeftButton) {
		return false
	}
	relX := mouse.X - s.rect.X
	v := s.min + (relX/s.rect.Width)*(s.max-s.min)
	if s.step > 0 {
		v = float32(int(v/s.step+0.5)) * s.step
	}
	v = clamp(v, s.min, s.max)
	if v == s.value {
		return false
	}
	s.value = v
	return true
}

func (s *Slider) Draw() {
	rl.DrawText(s.label, int32(s.rect.X), int32(s.rect.Y-12), fontSize, rl.LightGray)
	rl.DrawRectangleRec(s.rect, sliderTrack)
	pos := s.rect.X + (s.value-s.min)/(s.max-s.min)*s.rect.Width
	rl.DrawRectangle(int32(pos-2), int32(s.rect.Y), 4, int32(s.rect.Height), rl.White)
	rl.DrawText(fmt.Sprintf("%.0f PX", s.value), int32(s.rect.X), int32(s.rect.Y+s.rect.Height+4), fontSize, rl.White)
}

type CheckBox struct {
	rect    rl.Rectangle
	checked bool
	label   string
}

// Update toggles the box on click and reports the toggle.
func (c *CheckBox) Update(mouse rl.Vector2) bool {
	if rl.CheckCollisionPointRec(mouse, c.rect) && rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		c.checked = !c.checked
		return true
	}
	return false
}

func (c *CheckBox) Draw() {
	rl.DrawRectangleRec(c.rect, backdropColor)
	rl.DrawRectangleLinesEx(c.rect, 1, rl.White)
	if c.checked {
		inner := rl.Rectangle{X: c.rect.X + 3, Y: c.rect.Y + 3, Width: c.rect.Width - 6, Height: c.rect.Height - 6}
		rl.DrawRectangleRec(inner, rl.White)
	}
	rl.DrawText(c.label, int32(c.rect.X+c.rect.Width+6), int32(c.rect.Y+c.rect.Height/2-fontSize/2), fontSize, rl.LightGray)
}

func clamp(value, min, max float32) float32 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
