package tool

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ha1tch/pixelpad/internal/pixbuf"
)

// Tool types
type Tool int

const (
	Pencil Tool = iota
	Eraser
	Fill
	Line
	Rect
	Ellipse
	Sampler
)

var toolNames = []string{"pencil", "eraser", "fill", "line", "rect", "ellipse", "sampler"}

// Aliases accepted by ParseTool, as used by the keyboard shortcuts and scripts.
var toolAliases = map[string]Tool{
	"pen":        Pencil,
	"freehand":   Pencil,
	"bucket":     Fill,
	"rectangle":  Rect,
	"oval":       Ellipse,
	"circle":     Ellipse,
	"eyedropper": Sampler,
	"picker":     Sampler,
}

func (t Tool) String() string {
	if t >= 0 && int(t) < len(toolNames) {
		return toolNames[t]
	}
	return fmt.Sprintf("tool(%d)", int(t))
}

// ParseTool maps a tool name to a Tool.
func ParseTool(name string) (Tool, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range toolNames {
		if n == name {
			return Tool(i), nil
		}
	}
	if t, ok := toolAliases[name]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("unknown tool %q", name)
}

// Mutates reports whether the tool writes pixels. Such tools take a history
// snapshot on pointer-down.
func (t Tool) Mutates() bool {
	return t != Sampler
}

// Shape reports whether the tool drags out a previewed shape.
func (t Tool) Shape() bool {
	return t == Line || t == Rect || t == Ellipse
}

// State is the user-facing tool configuration.
type State struct {
	Color  pixbuf.Color
	Width  float64 // stroke diameter and border width
	Filled bool    // rectangles and ellipses

	tool Tool
	last Tool
}

// NewState returns the editor defaults: black pencil, width 1, outlined shapes.
func NewState() *State {
	return &State{
		Color: pixbuf.Black,
		Width: 1,
		tool:  Pencil,
		last:  Pencil,
	}
}

// Tool returns the active tool.
func (s *State) Tool() Tool {
	return s.tool
}

// LastTool returns the tool the sampler hands control back to.
func (s *State) LastTool() Tool {
	return s.last
}

// SetTool activates t. The previous tool is remembered only when switching to
// the sampler from another tool, so repeated sampler selections keep the
// original tool.
func (s *State) SetTool(t Tool) {
	if t == Sampler && s.tool != Sampler {
		s.last = s.tool
	}
	s.tool = t
}

// SetWidth sets the stroke width. Non-positive widths are ignored.
func (s *State) SetWidth(w float64) {
	if w > 0 {
		s.Width = w
	}
}

var shortcuts = map[rune]Tool{
	'p': Pencil,
	'e': Eraser,
	'f': Fill,
	'l': Line,
	'r': Rect,
	'o': Ellipse,
	'i': Sampler,
}

// ForKey returns the tool bound to a single-letter keyboard shortcut.
func ForKey(r rune) (Tool, bool) {
	t, ok := shortcuts[unicode.ToLower(r)]
	return t, ok
}
