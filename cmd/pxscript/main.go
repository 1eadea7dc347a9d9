// Command pxscript replays a drawing script headlessly and exports the
// resulting canvas.
//
//	pxscript run heart.px --scale 16 -o heart.png
//	pxscript formats
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/ha1tch/pixelpad/internal/export"
	"github.com/ha1tch/pixelpad/internal/script"
	"github.com/ha1tch/pixelpad/internal/session"
)

type CLI struct {
	LogLevel string `help:"Log level" enum:"debug,info,warn,error" default:"info"`

	Run     RunCmd     `cmd:"" help:"Replay a script and export the canvas"`
	Formats FormatsCmd `cmd:"" help:"List supported export formats"`
}

type RunCmd struct {
	Script string `arg:"" help:"Script file to replay" type:"existingfile"`
	Out    string `help:"Output file. Defaults to pixel-art-WxHxS.<ext> in the current folder" short:"o"`
	Format string `help:"Output format when --out is not given" enum:"png,jpeg,bmp,tiff,pdf" default:"png"`
	Scale  int    `help:"Integer upscale factor" default:"10"`

	format export.Format `kong:"-"`
}

func (c *RunCmd) Validate(kctx *kong.Context) error {
	if c.Scale < 1 {
		return fmt.Errorf("invalid scale: %d", c.Scale)
	}
	var err error
	if c.Out != "" {
		c.format, err = export.FormatFromPath(c.Out)
	} else {
		c.format, err = export.ParseFormat(c.Format)
	}
	return err
}

func (c *RunCmd) Run(log *slog.Logger) error {
	f, err := os.Open(c.Script)
	if err != nil {
		return fmt.Errorf("could not open script %q: %w", c.Script, err)
	}
	sc, err := script.Parse(f)
	if cerr := f.Close(); cerr != nil {
		log.Error("could not close script", "name", c.Script, "error", cerr)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", c.Script, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info("replaying", "script", c.Script, "width", sc.Width, "height", sc.Height, "commands", len(sc.Commands))
	s, err := script.Run(ctx, sc, session.WithLogger(log))
	if err != nil {
		return fmt.Errorf("%s: %w", c.Script, err)
	}

	snap, err := s.ExportSnapshot(c.Scale)
	if err != nil {
		return err
	}
	out := c.Out
	if out == "" {
		out = export.FileName(snap.Width, snap.Height, snap.Scale, c.format)
	}
	if err := export.WriteFile(out, snap.Image(), snap.Scale); err != nil {
		return fmt.Errorf("could not export %q: %w", out, err)
	}
	log.Info("exported", "file", out, "format", c.format, "scale", snap.Scale)
	return nil
}

type FormatsCmd struct{}

func (FormatsCmd) Run() error {
	for _, f := range export.Formats {
		fmt.Printf("%-5s .%s\n", f, f.Ext())
	}
	return nil
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("pxscript"),
		kong.Description("Replay pixel art scripts and export the result."),
		kong.UsageOnError(),
	)

	var level slog.Level
	if err := level.UnmarshalText([]byte(cli.LogLevel)); err != nil {
		kctx.FatalIfErrorf(err)
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	session.SetLogger(log)

	err := kctx.Run(log)
	if err != nil {
		log.Error("pxscript failed", "error", err)
	}
	kctx.FatalIfErrorf(err)
}
