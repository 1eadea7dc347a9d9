// Package script parses and replays line-oriented editing scripts.
//
// A script is a sequence of commands, one per line:
//
//	# a word starting with # begins a comment
//	size 16 16
//	tool ellipse
//	color #ff8800
//	width 2
//	fill on
//	drag 2 2 13 9
//	undo
//
// The replayer drives a session.Session exactly as the editor window does,
// so a script reproduces an interactive drawing pixel for pixel.
package script

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"strconv"
	"strings"

	"github.com/ha1tch/pixelpad/internal/pixbuf"
	"github.com/ha1tch/pixelpad/internal/resize"
	"github.com/ha1tch/pixelpad/internal/session"
	"github.com/ha1tch/pixelpad/internal/tool"
)

// ErrSyntax is wrapped by every parse error.
var ErrSyntax = errors.New("script: syntax error")

// Op identifies a command.
type Op int

const (
	OpTool Op = iota
	OpColor
	OpWidth
	OpFill
	OpDown
	OpMove
	OpUp
	OpClick
	OpDrag
	OpUndo
	OpRedo
	OpResize
	OpClear
)

var opNames = map[string]Op{
	"tool":   OpTool,
	"color":  OpColor,
	"width":  OpWidth,
	"fill":   OpFill,
	"down":   OpDown,
	"move":   OpMove,
	"up":     OpUp,
	"click":  OpClick,
	"drag":   OpDrag,
	"undo":   OpUndo,
	"redo":   OpRedo,
	"resize": OpResize,
	"clear":  OpClear,
}

// Command is one parsed line. Only the fields used by Op are set.
type Command struct {
	Line  int
	Op    Op
	Tool  tool.Tool
	Color pixbuf.Color
	Width float64
	Flag  bool  // fill on, resize keep
	Args  []int // coordinates or dimensions
}

// Script is a parsed script.
type Script struct {
	Width    int
	Height   int
	Commands []Command
}

// Parse reads a script. The canvas defaults to resize.DefaultSize square
// unless the first command is size.
func Parse(r io.Reader) (*Script, error) {
	sc := &Script{Width: resize.DefaultSize, Height: resize.DefaultSize}
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := stripComment(strings.Fields(scanner.Text()))
		if len(fields) == 0 {
			continue
		}
		name, args := strings.ToLower(fields[0]), fields[1:]

		if name == "size" {
			if len(sc.Commands) > 0 {
				return nil, syntaxErr(line, "size must come before any other command")
			}
			dims, err := ints(line, args, 2)
			if err != nil {
				return nil, err
			}
			sc.Width, sc.Height = resize.Clamp(dims[0]), resize.Clamp(dims[1])
			continue
		}

		op, ok := opNames[name]
		if !ok {
			return nil, syntaxErr(line, "unknown command %q", fields[0])
		}
		cmd, err := parseCommand(line, op, args)
		if err != nil {
			return nil, err
		}
		sc.Commands = append(sc.Commands, cmd)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("script: read: %w", err)
	}
	return sc, nil
}

// stripComment drops every field from the first one starting with '#',
// except the argument of a color command.
func stripComment(fields []string) []string {
	for i, f := range fields {
		if !strings.HasPrefix(f, "#") {
			continue
		}
		if i == 1 && strings.EqualFold(fields[0], "color") {
			continue
		}
		return fields[:i]
	}
	return fields
}

func parseCommand(line int, op Op, args []string) (Command, error) {
	cmd := Command{Line: line, Op: op}
	var err error
	switch op {
	case OpTool:
		if err = arity(line, args, 1); err == nil {
			if cmd.Tool, err = tool.ParseTool(args[0]); err != nil {
				err = syntaxErr(line, "%v", err)
			}
		}
	case OpColor:
		if err = arity(line, args, 1); err == nil {
			if cmd.Color, err = pixbuf.ParseHex(args[0]); err != nil {
				err = syntaxErr(line, "%v", err)
			}
		}
	case OpWidth:
		if err = arity(line, args, 1); err == nil {
			cmd.Width, err = strconv.ParseFloat(args[0], 64)
			if err != nil || cmd.Width <= 0 {
				err = syntaxErr(line, "width must be a positive number, got %q", args[0])
			}
		}
	case OpFill:
		if err = arity(line, args, 1); err == nil {
			switch strings.ToLower(args[0]) {
			case "on", "true", "yes":
				cmd.Flag = true
			case "off", "false", "no":
			default:
				err = syntaxErr(line, "fill takes on or off, got %q", args[0])
			}
		}
	case OpDown, OpMove, OpUp, OpClick:
		cmd.Args, err = ints(line, args, 2)
	case OpDrag:
		cmd.Args, err = ints(line, args, 4)
	case OpUndo, OpRedo, OpClear:
		err = arity(line, args, 0)
	case OpResize:
		if len(args) == 3 {
			if !strings.EqualFold(args[2], "keep") {
				return cmd, syntaxErr(line, "resize option must be keep, got %q", args[2])
			}
			cmd.Flag = true
			args = args[:2]
		}
		cmd.Args, err = ints(line, args, 2)
	}
	return cmd, err
}

func arity(line int, args []string, n int) error {
	if len(args) != n {
		return syntaxErr(line, "want %d arguments, got %d", n, len(args))
	}
	return nil
}

func ints(line int, args []string, n int) ([]int, error) {
	if err := arity(line, args, n); err != nil {
		return nil, err
	}
	out := make([]int, n)
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, syntaxErr(line, "bad integer %q", a)
		}
		out[i] = v
	}
	return out, nil
}

func syntaxErr(line int, format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrSyntax, line, fmt.Sprintf(format, args...))
}

// Run creates a session sized for sc and applies its commands in order. It
// stops at the first failing command or when ctx is done, returning the
// session in its state at that point.
func Run(ctx context.Context, sc *Script, opts ...session.Option) (*session.Session, error) {
	s := session.New(sc.Width, sc.Height, opts...)
	for _, cmd := range sc.Commands {
		if err := ctx.Err(); err != nil {
			return s, err
		}
		if err := Apply(s, cmd); err != nil {
			return s, fmt.Errorf("line %d: %w", cmd.Line, err)
		}
	}
	return s, nil
}

// Apply executes one command against s.
func Apply(s *session.Session, cmd Command) error {
	st := s.Tools()
	pt := func(i int) image.Point { return image.Pt(cmd.Args[i], cmd.Args[i+1]) }

	var err error
	switch cmd.Op {
	case OpTool:
		st.SetTool(cmd.Tool)
	case OpColor:
		st.Color = cmd.Color
	case OpWidth:
		st.SetWidth(cmd.Width)
	case OpFill:
		st.Filled = cmd.Flag
	case OpDown:
		_, err = s.PointerDown(pt(0))
	case OpMove:
		_, err = s.PointerMove(pt(0))
	case OpUp:
		_, err = s.PointerUp(pt(0))
	case OpClick:
		if _, err = s.PointerDown(pt(0)); err == nil {
			_, err = s.PointerUp(pt(0))
		}
	case OpDrag:
		if _, err = s.PointerDown(pt(0)); err != nil {
			break
		}
		if _, err = s.PointerMove(pt(2)); err != nil {
			break
		}
		_, err = s.PointerUp(pt(2))
	case OpUndo:
		s.Undo()
	case OpRedo:
		s.Redo()
	case OpResize:
		s.ResizeCanvas(resize.Clamp(cmd.Args[0]), resize.Clamp(cmd.Args[1]), cmd.Flag)
	case OpClear:
		s.ClearCanvas()
	default:
		err = fmt.Errorf("script: unknown op %d", cmd.Op)
	}
	return err
}
