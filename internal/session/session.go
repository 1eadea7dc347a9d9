// Package session owns one editing document: the pixel buffer, the tool
// state and the undo history.
//
// A Session is the only thing a front end talks to. It is not safe for
// concurrent use; a host with several goroutines must serialize calls.
package session

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ha1tch/pixelpad/internal/history"
	"github.com/ha1tch/pixelpad/internal/pixbuf"
	"github.com/ha1tch/pixelpad/internal/resize"
	"github.com/ha1tch/pixelpad/internal/tool"
)

// ErrBadScale is returned by ExportSnapshot for a scale below 1.
var ErrBadScale = errors.New("session: export scale must be at least 1")

// ChangeKind says why the canvas changed.
type ChangeKind int

const (
	ChangeEdit ChangeKind = iota
	ChangeUndo
	ChangeRedo
	ChangeResize
	ChangeClear
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeEdit:
		return "edit"
	case ChangeUndo:
		return "undo"
	case ChangeRedo:
		return "redo"
	case ChangeResize:
		return "resize"
	case ChangeClear:
		return "clear"
	}
	return fmt.Sprintf("change(%d)", int(k))
}

// Change is passed to OnChange listeners after the canvas pixels change.
type Change struct {
	Kind ChangeKind
}

// Snapshot is a copy of the canvas handed to an encoder.
type Snapshot struct {
	Width  int
	Height int
	Scale  int     // requested upscale factor, applied by the encoder
	Pix    []uint8 // row-major RGBA, Width*Height*4 bytes
}

// Image wraps the snapshot pixels without copying them.
func (s Snapshot) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    s.Pix,
		Stride: s.Width * 4,
		Rect:   image.Rect(0, 0, s.Width, s.Height),
	}
}

// Session is one editing document.
type Session struct {
	id    string
	log   *slog.Logger
	buf   *pixbuf.Buffer
	tools *tool.State
	hist  *history.Store
	ctl   *tool.Controller

	listeners []func(Change)
}

// New creates a session with a transparent width x height canvas.
func New(width, height int, opts ...Option) *Session {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.id == "" {
		o.id = uuid.NewString()
	}
	if o.logger == nil {
		o.logger = Logger()
	}

	s := &Session{
		id:    o.id,
		log:   o.logger.With("session", o.id),
		buf:   pixbuf.New(width, height),
		tools: tool.NewState(),
		hist:  history.New(history.WithLimit(o.historyLimit)),
	}
	s.ctl = tool.NewController(s, s.tools)
	s.log.Info("session created", "width", width, "height", height)
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Buffer returns the live canvas. The pointer changes on undo, redo and
// resize, so callers should not keep it across those calls.
func (s *Session) Buffer() *pixbuf.Buffer {
	return s.buf
}

// Tools returns the tool state edited by the UI.
func (s *Session) Tools() *tool.State {
	return s.tools
}

// History returns the undo and redo depths.
func (s *Session) History() (undo, redo int) {
	return s.hist.Len()
}

// Checkpoint records the live canvas for undo. The tool controller calls it
// before the first write of a stroke.
func (s *Session) Checkpoint() {
	s.hist.Save(s.buf)
}

// Discard drops the checkpoint of a stroke that was abandoned before writing.
func (s *Session) Discard() {
	s.hist.Drop()
}

// OnChange registers fn to run after every committed change. Preview-only
// pointer moves do not fire it.
func (s *Session) OnChange(fn func(Change)) {
	s.listeners = append(s.listeners, fn)
}

// Stroking reports whether a pointer stroke is in progress.
func (s *Session) Stroking() bool {
	return s.ctl.Active()
}

// PointerDown starts a stroke at p, in canvas coordinates.
func (s *Session) PointerDown(p image.Point) (*tool.Preview, error) {
	t := s.tools.Tool()
	res, err := s.ctl.Down(p)
	if err != nil {
		s.log.Warn("pointer down rejected", "tool", t, "x", p.X, "y", p.Y, "err", err)
		return nil, err
	}
	s.log.Debug("pointer down", "tool", t, "x", p.X, "y", p.Y, "changed", res.Changed)
	if res.Sampled {
		s.log.Debug("color sampled", "color", s.tools.Color.Hex(), "tool", s.tools.Tool())
	}
	s.settle(res)
	return res.Preview, nil
}

// PointerMove continues the stroke to p.
func (s *Session) PointerMove(p image.Point) (*tool.Preview, error) {
	res, err := s.ctl.Move(p)
	if err != nil {
		return nil, err
	}
	s.settle(res)
	return res.Preview, nil
}

// PointerUp ends the stroke at p. It never returns a preview.
func (s *Session) PointerUp(p image.Point) (*tool.Preview, error) {
	t, active := s.ctl.Stroke()
	res, err := s.ctl.Up(p)
	if err != nil {
		return nil, err
	}
	if active {
		s.log.Debug("pointer up", "tool", t, "x", p.X, "y", p.Y, "changed", res.Changed)
	}
	s.settle(res)
	return nil, nil
}

// CancelStroke abandons the stroke in progress.
func (s *Session) CancelStroke() {
	s.ctl.Cancel()
}

// Undo restores the state before the last committed action and reports
// whether anything changed.
func (s *Session) Undo() bool {
	s.ctl.Cancel()
	prev, ok := s.hist.Undo(s.buf)
	if !ok {
		return false
	}
	s.buf = prev
	s.log.Debug("undo")
	s.notify(ChangeUndo)
	return true
}

// Redo reapplies the last undone action and reports whether anything changed.
func (s *Session) Redo() bool {
	s.ctl.Cancel()
	next, ok := s.hist.Redo(s.buf)
	if !ok {
		return false
	}
	s.buf = next
	s.log.Debug("redo")
	s.notify(ChangeRedo)
	return true
}

// ResizeCanvas replaces the canvas with a width x height one, keeping the
// top-left overlap when preserve is set. History is discarded, also when the
// size does not change. Range clamping is the caller's job.
func (s *Session) ResizeCanvas(width, height int, preserve bool) *pixbuf.Buffer {
	s.ctl.Cancel()
	s.buf = resize.Resize(s.buf, width, height, preserve)
	s.hist.Reset()
	s.log.Info("canvas resized", "width", width, "height", height, "preserve", preserve)
	s.notify(ChangeResize)
	return s.buf
}

// ClearCanvas makes the canvas transparent and discards history.
func (s *Session) ClearCanvas() {
	s.ctl.Cancel()
	s.buf.Clear()
	s.hist.Reset()
	s.log.Info("canvas cleared")
	s.notify(ChangeClear)
}

// ExportSnapshot copies the canvas for an encoder that upscales it by scale.
func (s *Session) ExportSnapshot(scale int) (Snapshot, error) {
	if scale < 1 {
		return Snapshot{}, fmt.Errorf("%w: got %d", ErrBadScale, scale)
	}
	img := s.buf.ToNRGBA()
	s.log.Info("snapshot exported", "width", s.buf.Width(), "height", s.buf.Height(), "scale", scale)
	return Snapshot{
		Width:  s.buf.Width(),
		Height: s.buf.Height(),
		Scale:  scale,
		Pix:    img.Pix,
	}, nil
}

func (s *Session) settle(res tool.Result) {
	if res.Changed {
		s.notify(ChangeEdit)
	}
}

func (s *Session) notify(kind ChangeKind) {
	for _, fn := range s.listeners {
		fn(Change{Kind: kind})
	}
}
