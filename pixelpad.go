package main

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"
	"path/filepath"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/ha1tch/pixelpad/internal/export"
	"github.com/ha1tch/pixelpad/internal/pixbuf"
	"github.com/ha1tch/pixelpad/internal/resize"
	"github.com/ha1tch/pixelpad/internal/session"
	"github.com/ha1tch/pixelpad/internal/tool"
	"github.com/ha1tch/pixelpad/internal/viewport"
)

const (
	screenWidth  = 1280
	screenHeight = 800
	fontSize     = 10
	leftPanel    = 100
	rightPanel   = 200
	topBar       = 50
	statusTTL    = 3 // seconds
)

// canvasArea is the part of the window the canvas is drawn in.
var canvasArea = viewport.Rect{
	X: leftPanel,
	Y: topBar,
	W: screenWidth - leftPanel - rightPanel,
	H: screenHeight - topBar,
}

var defaultPalette = []string{
	"#000000", "#1d2b53", "#7e2553",
	"#008751", "#ab5236", "#5f574f",
	"#c2c3c7", "#fff1e8", "#ff004d",
	"#ffa300", "#ffec27", "#00e436",
	"#29adff", "#83769c", "#ff77a8",
	"#ffccaa", "#ffffff", "#808080",
}

// Right panel actions, in button order.
const (
	actionUndo = iota
	actionRedo
	actionClear
	actionResize
	actionExport
)

// Application state
type App struct {
	cfg     *Config
	log     *slog.Logger
	session *session.Session

	// View
	view      viewport.View
	isPanning bool
	panStart  rl.Vector2

	// Canvas textures, mirrored from the session buffer
	canvasTex   rl.Texture2D
	overlayTex  rl.Texture2D
	overlay     *pixbuf.Buffer
	pixels      []color.RGBA
	overlayPix  []color.RGBA
	dirty       bool
	preview     *tool.Preview
	lastPixel   image.Point
	hoverPixel  image.Point
	hoverCanvas bool

	// UI
	toolButtons   []Button
	actionButtons []Button
	sizeButtons   []Button
	palette       []pixbuf.Color
	strokeSlider  Slider
	fillBox       CheckBox
	keepBox       CheckBox
	newWidth      int
	newHeight     int

	status    string
	statusTTL float32
}

// NewApp creates the editor around a fresh session. It must run after the
// window is open, since it allocates textures.
func NewApp(cfg *Config, log *slog.Logger) *App {
	app := &App{
		cfg: cfg,
		log: log,
		session: session.New(cfg.Width, cfg.Height,
			session.WithLogger(log),
			session.WithHistoryLimit(cfg.HistoryLimit)),
		newWidth:  cfg.Width,
		newHeight: cfg.Height,
	}
	app.session.OnChange(func(session.Change) { app.dirty = true })
	app.session.Tools().SetWidth(cfg.Stroke)

	for _, hex := range defaultPalette {
		c, err := pixbuf.ParseHex(hex)
		if err != nil {
			panic(err)
		}
		app.palette = append(app.palette, c)
	}

	// Initialize tool buttons
	for i := tool.Pencil; i <= tool.Sampler; i++ {
		name := strings.ToUpper(i.String())
		app.toolButtons = append(app.toolButtons, Button{
			rect:    rl.Rectangle{X: 10 + float32(i%2)*40, Y: 50 + float32(i/2)*40, Width: 36, Height: 36},
			text:    name[:1],
			tooltip: name,
		})
	}

	app.strokeSlider = Slider{
		rect:  rl.Rectangle{X: 10, Y: 230, Width: 76, Height: 20},
		value: float32(cfg.Stroke),
		min:   1,
		max:   16,
		step:  1,
		label: "STROKE",
	}
	app.fillBox = CheckBox{rect: rl.Rectangle{X: 10, Y: 285, Width: 14, Height: 14}, label: "FILL"}

	rx := float32(screenWidth - rightPanel + 10)
	for i, text := range []string{"UNDO", "REDO", "CLEAR", "RESIZE", "EXPORT"} {
		app.actionButtons = append(app.actionButtons, Button{
			rect: rl.Rectangle{X: rx, Y: 200 + float32(i)*40, Width: rightPanel - 20, Height: 30},
			text: text,
		})
	}
	// width -, width +, height -, height +
	for i, text := range []string{"-", "+", "-", "+"} {
		app.sizeButtons = append(app.sizeButtons, Button{
			rect: rl.Rectangle{X: rx + 100 + float32(i%2)*40, Y: 90 + float32(i/2)*30, Width: 36, Height: 24},
			text: text,
		})
	}
	app.keepBox = CheckBox{rect: rl.Rectangle{X: rx, Y: 155, Width: 14, Height: 14}, checked: true, label: "KEEP CONTENT"}

	app.fitView()
	app.syncTextures()
	return app
}

// Unload releases the GPU textures.
func (app *App) Unload() {
	rl.UnloadTexture(app.canvasTex)
	rl.UnloadTexture(app.overlayTex)
}

func (app *App) fitView() {
	buf := app.session.Buffer()
	if app.cfg.Zoom > 0 {
		app.view = viewport.Centre(buf.Width(), buf.Height(), canvasArea, float32(app.cfg.Zoom))
		return
	}
	app.view = viewport.Fit(buf.Width(), buf.Height(), canvasArea)
}

// syncTextures uploads the buffer, reallocating both textures when the
// canvas size changed.
func (app *App) syncTextures() {
	buf := app.session.Buffer()
	w, h := buf.Width(), buf.Height()
	if app.canvasTex.Width != int32(w) || app.canvasTex.Height != int32(h) {
		if app.canvasTex.ID != 0 {
			rl.UnloadTexture(app.canvasTex)
			rl.UnloadTexture(app.overlayTex)
		}
		app.canvasTex = newCanvasTexture(w, h)
		app.overlayTex = newCanvasTexture(w, h)
		app.overlay = pixbuf.New(w, h)
		app.pixels, app.overlayPix = nil, nil
	}
	app.pixels = rgbaPixels(buf.Pix(), app.pixels)
	rl.UpdateTexture(app.canvasTex, app.pixels)
	app.dirty = false
}

func (app *App) syncOverlay() {
	app.overlay.Clear()
	if app.preview != nil {
		app.preview.Render(app.overlay)
	}
	app.overlayPix = rgbaPixels(app.overlay.Pix(), app.overlayPix)
	rl.UpdateTexture(app.overlayTex, app.overlayPix)
}

func newCanvasTexture(w, h int) rl.Texture2D {
	img := rl.GenImageColor(w, h, rl.Blank)
	defer rl.UnloadImage(img)
	tex := rl.LoadTextureFromImage(img)
	rl.SetTextureFilter(tex, rl.FilterPoint)
	return tex
}

// rgbaPixels reinterprets packed RGBA bytes as raylib colors, reusing dst
// when it is large enough.
func rgbaPixels(pix []uint8, dst []color.RGBA) []color.RGBA {
	n := len(pix) / 4
	if cap(dst) < n {
		dst = make([]color.RGBA, n)
	}
	dst = dst[:n]
	for i := range dst {
		dst[i] = color.RGBA{pix[i*4], pix[i*4+1], pix[i*4+2], pix[i*4+3]}
	}
	return dst
}

func (app *App) flash(format string, args ...any) {
	app.status = fmt.Sprintf(format, args...)
	app.statusTTL = statusTTL
}

// Undo and Redo also serve the keyboard shortcuts.
func (app *App) Undo() {
	app.preview = nil
	if !app.session.Undo() {
		app.flash("NOTHING TO UNDO")
	}
}

func (app *App) Redo() {
	app.preview = nil
	if !app.session.Redo() {
		app.flash("NOTHING TO REDO")
	}
}

// Resize applies the size chosen in the right panel.
func (app *App) Resize() {
	w, h := resize.Clamp(app.newWidth), resize.Clamp(app.newHeight)
	app.newWidth, app.newHeight = w, h
	buf := app.session.Buffer()
	if w == buf.Width() && h == buf.Height() {
		return
	}
	app.preview = nil
	app.session.ResizeCanvas(w, h, app.keepBox.checked)
	app.fitView()
	app.flash("RESIZED TO %dX%d", w, h)
}

// Export writes the canvas into the export folder.
func (app *App) Export() {
	snap, err := app.session.ExportSnapshot(app.cfg.Scale)
	if err != nil {
		app.log.Error("export failed", "error", err)
		app.flash("EXPORT FAILED")
		return
	}
	name := filepath.Join(app.cfg.Export, export.FileName(snap.Width, snap.Height, snap.Scale, app.cfg.format))
	if err := export.WriteFile(name, snap.Image(), snap.Scale); err != nil {
		app.log.Error("export failed", "file", name, "error", err)
		app.flash("EXPORT FAILED")
		return
	}
	app.log.Info("exported", "file", name)
	app.flash("SAVED %s", filepath.Base(name))
}

// Update application
func (app *App) Update() {
	mousePos := rl.GetMousePosition()
	st := app.session.Tools()

	if app.statusTTL > 0 {
		app.statusTTL -= rl.GetFrameTime()
	}

	// Handle keyboard shortcuts
	ctrl := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) ||
		rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)
	shift := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
	if ctrl {
		if rl.IsKeyPressed(rl.KeyZ) {
			if shift {
				app.Redo()
			} else {
				app.Undo()
			}
		}
		if rl.IsKeyPressed(rl.KeyY) {
			app.Redo()
		}
		if rl.IsKeyPressed(rl.KeyE) {
			app.Export()
		}
	}
	for ch := rl.GetCharPressed(); ch > 0; ch = rl.GetCharPressed() {
		if t, ok := tool.ForKey(rune(ch)); ok && !ctrl && !app.session.Stroking() {
			st.SetTool(t)
		}
	}
	if rl.IsKeyPressed(rl.KeyEscape) && app.session.Stroking() {
		app.session.CancelStroke()
		app.preview = nil
		app.dirty = true
	}

	// Handle space+drag and middle button panning
	if rl.IsKeyDown(rl.KeySpace) && rl.IsMouseButtonPressed(rl.MouseLeftButton) && !app.session.Stroking() {
		app.isPanning = true
		app.panStart = mousePos
	}
	if app.isPanning && rl.IsMouseButtonDown(rl.MouseLeftButton) {
		app.view = app.view.Pan(mousePos.X-app.panStart.X, mousePos.Y-app.panStart.Y)
		app.panStart = mousePos
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) || !rl.IsKeyDown(rl.KeySpace) {
		app.isPanning = false
	}
	if rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		delta := rl.GetMouseDelta()
		app.view = app.view.Pan(delta.X, delta.Y)
	}
	if app.isPanning {
		return
	}

	// Handle zoom with mouse wheel
	if wheel := rl.GetMouseWheelMove(); wheel != 0 && canvasArea.Contains(mousePos.X, mousePos.Y) {
		app.view = app.view.ZoomAt(mousePos.X, mousePos.Y, 1+wheel*0.1)
	}

	// Handle left panel
	for i := range app.toolButtons {
		btn := &app.toolButtons[i]
		if btn.Update(mousePos) && !app.session.Stroking() {
			st.SetTool(tool.Tool(i))
		}
		btn.selected = tool.Tool(i) == st.Tool()
	}
	if app.strokeSlider.Update(mousePos) {
		st.SetWidth(float64(app.strokeSlider.value))
	}
	if app.fillBox.Update(mousePos) {
		st.Filled = app.fillBox.checked
	}
	paletteY := float32(330)
	for i, c := range app.palette {
		rect := rl.Rectangle{X: float32(10 + (i%3)*25), Y: paletteY + float32(i/3)*25, Width: 20, Height: 20}
		if rl.CheckCollisionPointRec(mousePos, rect) && rl.IsMouseButtonPressed(rl.MouseLeftButton) {
			st.Color = c
		}
	}

	// Handle right panel
	step := 1
	if shift {
		step = 10
	}
	for i := range app.sizeButtons {
		if !app.sizeButtons[i].Update(mousePos) {
			continue
		}
		delta := step
		if i%2 == 0 {
			delta = -step
		}
		if i < 2 {
			app.newWidth = resize.Clamp(app.newWidth + delta)
		} else {
			app.newHeight = resize.Clamp(app.newHeight + delta)
		}
	}
	app.keepBox.Update(mousePos)
	for i := range app.actionButtons {
		if !app.actionButtons[i].Update(mousePos) {
			continue
		}
		switch i {
		case actionUndo:
			app.Undo()
		case actionRedo:
			app.Redo()
		case actionClear:
			app.preview = nil
			app.session.ClearCanvas()
		case actionResize:
			app.Resize()
		case actionExport:
			app.Export()
		}
	}
	buf := app.session.Buffer()

	// Handle drawing on canvas
	app.hoverCanvas = canvasArea.Contains(mousePos.X, mousePos.Y) && app.view.Inside(mousePos.X, mousePos.Y, buf.Width(), buf.Height())
	p := app.view.ToCanvas(mousePos.X, mousePos.Y, buf.Width(), buf.Height())
	app.hoverPixel = p

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && app.hoverCanvas {
		pv, err := app.session.PointerDown(p)
		if err != nil {
			app.flash("%s", strings.ToUpper(err.Error()))
		}
		app.preview = pv
		app.lastPixel = p
		app.syncOverlay()
	} else if app.session.Stroking() && rl.IsMouseButtonDown(rl.MouseLeftButton) && p != app.lastPixel {
		pv, err := app.session.PointerMove(p)
		if err == nil {
			app.preview = pv
			app.lastPixel = p
			app.syncOverlay()
		}
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) && app.session.Stroking() {
		if _, err := app.session.PointerUp(p); err != nil {
			app.log.Warn("pointer up failed", "error", err)
		}
		app.preview = nil
	}

	if app.dirty {
		app.syncTextures()
	}
}

// Draw application
func (app *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(backdropColor)

	mousePos := rl.GetMousePosition()
	st := app.session.Tools()
	buf := app.session.Buffer()
	w, h := buf.Width(), buf.Height()

	app.drawCanvas(w, h)

	// Draw left toolbar
	rl.DrawRectangle(0, 0, leftPanel, screenHeight, panelColor)
	rl.DrawText("PIXELPAD", 10, 10, fontSize, rl.White)
	rl.DrawText("TOOLS", 10, 35, fontSize, rl.LightGray)
	for i := range app.toolButtons {
		app.toolButtons[i].Draw()
	}
	app.strokeSlider.Draw()
	app.fillBox.Draw()

	rl.DrawText("COLORS", 10, 315, fontSize, rl.LightGray)
	paletteY := float32(330)
	for i, c := range app.palette {
		rect := rl.Rectangle{X: float32(10 + (i%3)*25), Y: paletteY + float32(i/3)*25, Width: 20, Height: 20}
		rl.DrawRectangleRec(rect, rlColor(c))
		if st.Color == c {
			rl.DrawRectangleLinesEx(rect, 2, rl.White)
		} else {
			rl.DrawRectangleLinesEx(rect, 1, widgetColor)
		}
	}
	rl.DrawRectangle(10, 490, 40, 30, rlColor(st.Color))
	rl.DrawRectangleLines(10, 490, 40, 30, rl.White)
	rl.DrawText(strings.ToUpper(st.Color.Hex()), 10, 526, fontSize, rl.White)

	// Draw right panel
	rx := int32(screenWidth - rightPanel + 10)
	rl.DrawRectangle(screenWidth-rightPanel, 0, rightPanel, screenHeight, panelColor)
	rl.DrawText("CANVAS", rx, 10, fontSize, rl.White)
	rl.DrawText(fmt.Sprintf("SIZE: %d X %d", w, h), rx, 40, fontSize, rl.LightGray)
	rl.DrawText("NEW SIZE", rx, 70, fontSize, rl.LightGray)
	rl.DrawText(fmt.Sprintf("WIDTH  %d", app.newWidth), rx, 97, fontSize, rl.White)
	rl.DrawText(fmt.Sprintf("HEIGHT %d", app.newHeight), rx, 127, fontSize, rl.White)
	for i := range app.sizeButtons {
		app.sizeButtons[i].Draw()
	}
	app.keepBox.Draw()
	undo, redo := app.session.History()
	app.actionButtons[actionUndo].text = fmt.Sprintf("UNDO (%d)", undo)
	app.actionButtons[actionRedo].text = fmt.Sprintf("REDO (%d)", redo)
	for i := range app.actionButtons {
		app.actionButtons[i].Draw()
	}
	rl.DrawText(fmt.Sprintf("%s X%d", strings.ToUpper(string(app.cfg.format)), app.cfg.Scale), rx, 405, fontSize, rl.LightGray)
	if app.statusTTL > 0 {
		rl.DrawText(app.status, rx, screenHeight-30, fontSize, rl.Yellow)
	}

	// Draw top bar
	rl.DrawRectangle(leftPanel, 0, screenWidth-leftPanel-rightPanel, topBar, topBarColor)
	info := fmt.Sprintf("ZOOM: %.0f%% | SIZE: %dX%d | TOOL: %s | WIDTH: %.0f",
		app.view.Zoom*100, w, h, strings.ToUpper(st.Tool().String()), st.Width)
	if app.hoverCanvas {
		info += fmt.Sprintf(" | PIXEL: %d,%d", app.hoverPixel.X, app.hoverPixel.Y)
	}
	if app.isPanning {
		info += " | PANNING"
	}
	rl.DrawText(info, leftPanel+10, 20, fontSize, rl.White)

	for i := range app.toolButtons {
		app.toolButtons[i].DrawTooltip(mousePos)
	}

	rl.EndDrawing()
}

func (app *App) drawCanvas(w, h int) {
	rl.BeginScissorMode(int32(canvasArea.X), int32(canvasArea.Y), int32(canvasArea.W), int32(canvasArea.H))
	defer rl.EndScissorMode()

	bounds := app.view.Bounds(w, h)
	dst := rl.Rectangle{X: bounds.X, Y: bounds.Y, Width: bounds.W, Height: bounds.H}

	// Checkerboard behind transparent pixels
	const tile = 8
	for y := float32(0); y < bounds.H; y += tile {
		for x := float32(0); x < bounds.W; x += tile {
			c := rl.Color{150, 150, 150, 255}
			if (int(x/tile)+int(y/tile))%2 == 0 {
				c = rl.Color{110, 110, 110, 255}
			}
			rl.DrawRectangleRec(rl.Rectangle{
				X: bounds.X + x, Y: bounds.Y + y,
				Width: min(tile, bounds.W-x), Height: min(tile, bounds.H-y),
			}, c)
		}
	}

	src := rl.Rectangle{X: 0, Y: 0, Width: float32(w), Height: float32(h)}
	rl.DrawTexturePro(app.canvasTex, src, dst, rl.Vector2{}, 0, rl.White)
	if app.preview != nil {
		rl.DrawTexturePro(app.overlayTex, src, dst, rl.Vector2{}, 0, rl.White)
	}

	// Pixel grid once cells are large enough to see
	if app.view.Zoom >= 8 {
		grid := rl.Color{0, 0, 0, 24}
		for x := 0; x <= w; x++ {
			sx, _ := app.view.ToScreen(image.Pt(x, 0))
			rl.DrawLine(int32(sx), int32(bounds.Y), int32(sx), int32(bounds.Y+bounds.H), grid)
		}
		for y := 0; y <= h; y++ {
			_, sy := app.view.ToScreen(image.Pt(0, y))
			rl.DrawLine(int32(bounds.X), int32(sy), int32(bounds.X+bounds.W), int32(sy), grid)
		}
	}
	rl.DrawRectangleLinesEx(rl.Rectangle{X: dst.X - 2, Y: dst.Y - 2, Width: dst.Width + 4, Height: dst.Height + 4}, 2, rl.Color{100, 100, 100, 255})

	// Draw cursor
	if app.hoverCanvas && !app.isPanning {
		st := app.session.Tools()
		size := float32(1)
		if t := st.Tool(); t == tool.Pencil || t == tool.Eraser {
			size = float32(math.Max(1, math.Ceil(st.Width)))
		}
		sx, sy := app.view.ToScreen(app.hoverPixel)
		half := (size - 1) / 2 * app.view.Zoom
		rl.DrawRectangleLinesEx(rl.Rectangle{
			X: sx - half, Y: sy - half,
			Width: size * app.view.Zoom, Height: size * app.view.Zoom,
		}, 1, rl.White)
	}

	if rl.IsKeyDown(rl.KeySpace) && !app.isPanning {
		mousePos := rl.GetMousePosition()
		rl.DrawText("CLICK AND DRAG TO PAN", int32(mousePos.X+10), int32(mousePos.Y+10), fontSize, rl.Yellow)
	}
}

func rlColor(c pixbuf.Color) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
