package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/ha1tch/pixelpad/internal/export"
	"github.com/ha1tch/pixelpad/internal/resize"
	"github.com/ha1tch/pixelpad/internal/session"
)

type Config struct {
	Width        int     `help:"Canvas width in pixels (5-1024)" default:"32"`
	Height       int     `help:"Canvas height in pixels (5-1024)" default:"32"`
	Zoom         float64 `help:"Initial zoom. 0 fits the canvas to the window" default:"0"`
	Stroke       float64 `help:"Initial stroke width in pixels" default:"1"`
	Export       string  `help:"Folder exported images are written to" type:"path" default:"."`
	Format       string  `help:"Export format" enum:"png,jpeg,bmp,tiff,pdf" default:"png"`
	Scale        int     `help:"Export upscale factor" default:"10"`
	HistoryLimit int     `help:"Maximum undo depth. 0 keeps everything" default:"0"`
	LogLevel     string  `help:"Log level" enum:"debug,info,warn,error" default:"info"`

	format export.Format `kong:"-"`
}

func (c *Config) Validate() error {
	c.Width, c.Height = resize.Clamp(c.Width), resize.Clamp(c.Height)
	switch {
	case c.Zoom < 0:
		return fmt.Errorf("invalid zoom: %v", c.Zoom)
	case c.Stroke <= 0:
		return fmt.Errorf("invalid stroke width: %v", c.Stroke)
	case c.Scale < 1:
		return fmt.Errorf("invalid export scale: %d", c.Scale)
	case c.HistoryLimit < 0:
		return fmt.Errorf("invalid history limit: %d", c.HistoryLimit)
	}
	info, err := os.Stat(c.Export)
	if err == nil && !info.IsDir() {
		err = fmt.Errorf("not a directory")
	}
	if err != nil {
		return fmt.Errorf("invalid export path %q: %w", c.Export, err)
	}
	c.format, err = export.ParseFormat(c.Format)
	return err
}

func main() {
	var cfg Config
	kctx := kong.Parse(&cfg,
		kong.Name("pixelpad"),
		kong.Description("A small pixel art editor."),
		kong.UsageOnError(),
	)

	var level slog.Level
	kctx.FatalIfErrorf(level.UnmarshalText([]byte(cfg.LogLevel)))
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	session.SetLogger(log)

	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(screenWidth, screenHeight, "PixelPad")
	rl.SetExitKey(0)
	rl.SetTargetFPS(60)

	app := NewApp(&cfg, log)
	for !rl.WindowShouldClose() {
		app.Update()
		app.Draw()
	}

	// Clean up
	app.Unload()
	rl.CloseWindow()
}
