// Package tool turns pointer events into canvas edits.
//
// The Controller is a two-state machine. A pointer-down starts a stroke with
// the active tool. Freehand tools commit as the pointer moves, shape tools
// only emit a Preview until pointer-up commits them, and fill and the sampler
// finish on the spot. A tool that writes pixels asks the canvas for exactly
// one history checkpoint, before its first write, so a whole stroke undoes as
// a unit.
package tool

import (
	"image"

	"github.com/ha1tch/pixelpad/internal/pixbuf"
	"github.com/ha1tch/pixelpad/internal/raster"
)

// Canvas is what the controller edits.
type Canvas interface {
	// Buffer returns the live pixels.
	Buffer() *pixbuf.Buffer
	// Checkpoint records the live pixels for undo.
	Checkpoint()
	// Discard drops the newest checkpoint.
	Discard()
}

// Result reports what a pointer event did.
type Result struct {
	Preview *Preview // non-nil while a shape stroke is in progress
	Changed bool     // pixels were written
	Sampled bool     // the foreground color was picked from the canvas
}

// Controller drives one canvas from pointer events.
type Controller struct {
	canvas Canvas
	state  *State

	active  bool
	stroke  Tool
	anchor  image.Point
	last    image.Point
	preview *Preview
}

// NewController creates an idle controller.
func NewController(c Canvas, s *State) *Controller {
	return &Controller{canvas: c, state: s}
}

// State returns the tool configuration the controller reads.
func (c *Controller) State() *State {
	return c.state
}

// Active reports whether a stroke is in progress.
func (c *Controller) Active() bool {
	return c.active
}

// Stroke returns the tool of the stroke in progress.
func (c *Controller) Stroke() (Tool, bool) {
	return c.stroke, c.active
}

// Preview returns the current shape preview, if any.
func (c *Controller) Preview() *Preview {
	return c.preview
}

// Down starts a stroke at p. A stroke still in progress is abandoned first.
func (c *Controller) Down(p image.Point) (Result, error) {
	if c.active {
		c.Cancel()
	}
	t := c.state.Tool()
	buf := c.canvas.Buffer()

	// Fill and the sampler read the seed pixel; reject a bad one before any
	// history is taken.
	if (t == Fill || t == Sampler) && !buf.InBounds(p.X, p.Y) {
		_, err := buf.Get(p.X, p.Y)
		return Result{}, err
	}

	if t.Mutates() {
		c.canvas.Checkpoint()
	}

	switch t {
	case Pencil, Eraser:
		raster.Stamp(buf, float64(p.X), float64(p.Y), c.state.Width/2, c.inkFor(t))
		c.begin(t, p)
		return Result{Changed: true}, nil

	case Fill:
		n, err := raster.FloodFill(buf, p.X, p.Y, c.state.Color)
		if err != nil {
			return Result{}, err
		}
		return Result{Changed: n > 0}, nil

	case Sampler:
		picked, err := buf.Get(p.X, p.Y)
		if err != nil {
			return Result{}, err
		}
		c.state.Color = picked.Opaque()
		c.state.SetTool(c.state.LastTool())
		return Result{Sampled: true}, nil

	default:
		c.begin(t, p)
		c.preview = c.previewTo(p)
		return Result{Preview: c.preview}, nil
	}
}

// Move continues the stroke to p. It does nothing when idle.
func (c *Controller) Move(p image.Point) (Result, error) {
	if !c.active {
		return Result{}, nil
	}
	switch c.stroke {
	case Pencil, Eraser:
		raster.Line(c.canvas.Buffer(), c.last.X, c.last.Y, p.X, p.Y, c.state.Width, c.inkFor(c.stroke))
		c.last = p
		return Result{Changed: true}, nil
	default:
		c.preview = c.previewTo(p)
		return Result{Preview: c.preview}, nil
	}
}

// Up ends the stroke at p, committing a shape. It does nothing when idle.
func (c *Controller) Up(p image.Point) (Result, error) {
	if !c.active {
		return Result{}, nil
	}
	defer c.end()

	if !c.stroke.Shape() {
		// Freehand pixels were committed while moving.
		return Result{}, nil
	}
	drawShape(c.canvas.Buffer(), c.stroke, c.anchor, p, c.state.Width, c.state.Filled, c.state.Color)
	return Result{Changed: true}, nil
}

// Cancel abandons the stroke without committing a shape. A shape stroke has
// written nothing, so its checkpoint is discarded. Freehand pixels already
// drawn stay and can be undone.
func (c *Controller) Cancel() {
	if c.active && c.stroke.Shape() {
		c.canvas.Discard()
	}
	c.end()
}

func (c *Controller) begin(t Tool, p image.Point) {
	c.active = true
	c.stroke = t
	c.anchor = p
	c.last = p
}

func (c *Controller) end() {
	c.active = false
	c.preview = nil
}

func (c *Controller) previewTo(p image.Point) *Preview {
	return &Preview{
		Kind:   c.stroke,
		From:   c.anchor,
		To:     p,
		Width:  c.state.Width,
		Filled: c.state.Filled,
		Color:  c.state.Color,
	}
}

func (c *Controller) inkFor(t Tool) pixbuf.Color {
	if t == Eraser {
		return pixbuf.Transparent
	}
	return c.state.Color
}
