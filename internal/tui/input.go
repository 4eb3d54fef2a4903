package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/vancomm/minefield/internal/difficulty"
	"github.com/vancomm/minefield/internal/session"
)

// Mouse buttons per action.
var actionButtons = [...]tcell.ButtonMask{
	session.Primary:   tcell.Button1,
	session.Secondary: tcell.Button2,
	session.Tertiary:  tcell.Button3,
}

const allButtons = tcell.Button1 | tcell.Button2 | tcell.Button3

// frame is one tick of input, built from a single terminal event.
type frame struct {
	pressed, released, held [3]bool

	x, y  int
	hover bool
}

func (f frame) Pressed(a session.Action) bool  { return f.pressed[a] }
func (f frame) Released(a session.Action) bool { return f.released[a] }
func (f frame) Held(a session.Action) bool     { return f.held[a] }

func (f frame) Hovered() (x, y int, ok bool) {
	return f.x, f.y, f.hover
}

type commandKind uint8

const (
	cmdNone commandKind = iota
	cmdRestart
	cmdDifficulty
	cmdMarks
	cmdSave
	cmdQuit
)

type command struct {
	kind  commandKind
	level difficulty.Level
}

// Input turns terminal events into ticks. Terminals report the mouse button
// state rather than transitions, so presses and releases are found by
// diffing against the previous state. Keys press and release their action
// within one tick.
type Input struct {
	buttons          tcell.ButtonMask
	cursorX, cursorY int
}

func (in *Input) Cursor() (x, y int) { return in.cursorX, in.cursorY }

func (in *Input) held() (held [3]bool) {
	for a, b := range actionButtons {
		held[a] = in.buttons&b != 0
	}
	return
}

func (in *Input) clampCursor(l Layout) {
	in.cursorX = max(0, min(in.cursorX, l.Width-1))
	in.cursorY = max(0, min(in.cursorY, l.Height-1))
}

func (in *Input) mouse(ev *tcell.EventMouse, l Layout) frame {
	now := ev.Buttons() & allButtons
	var f frame
	for a, b := range actionButtons {
		f.pressed[a] = now&b != 0 && in.buttons&b == 0
		f.released[a] = now&b == 0 && in.buttons&b != 0
		f.held[a] = now&b != 0
	}
	in.buttons = now

	f.x, f.y, f.hover = l.TileAt(ev.Position())
	if f.hover {
		in.cursorX, in.cursorY = f.x, f.y
	}
	return f
}

func (in *Input) key(ev *tcell.EventKey, l Layout) (frame, command) {
	in.clampCursor(l)
	f := frame{held: in.held(), x: in.cursorX, y: in.cursorY, hover: l.Width > 0 && l.Height > 0}
	tap := func(a session.Action) (frame, command) {
		f.pressed[a], f.released[a] = true, true
		return f, command{}
	}
	idle := frame{held: f.held}

	switch ev.Key() {
	case tcell.KeyUp:
		in.cursorY = max(0, in.cursorY-1)
		return idle, command{}
	case tcell.KeyDown:
		in.cursorY = min(l.Height-1, in.cursorY+1)
		return idle, command{}
	case tcell.KeyLeft:
		in.cursorX = max(0, in.cursorX-1)
		return idle, command{}
	case tcell.KeyRight:
		in.cursorX = min(l.Width-1, in.cursorX+1)
		return idle, command{}
	case tcell.KeyEnter:
		return tap(session.Primary)
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return idle, command{kind: cmdQuit}
	case tcell.KeyRune:
	default:
		return idle, command{}
	}

	switch r := ev.Rune(); r {
	case ' ':
		return tap(session.Primary)
	case 'f', 'F':
		return tap(session.Secondary)
	case 'd', 'D':
		return tap(session.Tertiary)
	case 'r', 'R':
		return idle, command{kind: cmdRestart}
	case 'm', 'M':
		return idle, command{kind: cmdMarks}
	case 's', 'S':
		return idle, command{kind: cmdSave}
	case 'q', 'Q':
		return idle, command{kind: cmdQuit}
	case '1', '2', '3', '4', '5':
		return idle, command{kind: cmdDifficulty, level: levelKeys[r-'1']}
	}
	return idle, command{}
}

// Number keys in menu order.
var levelKeys = [...]difficulty.Level{
	difficulty.Beginner,
	difficulty.Intermediate,
	difficulty.Expert,
	difficulty.Auto,
	difficulty.Custom,
}
