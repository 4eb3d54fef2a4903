package session

import "github.com/vancomm/minefield/internal/mines"

type Action uint8

const (
	Primary   Action = iota // open
	Secondary               // cycle flag
	Tertiary                // chord
)

// Input is the state of the three actions during one tick. Held reports the
// state at the end of the tick, so an action pressed and released within the
// same tick is pressed, released and not held.
type Input interface {
	Pressed(a Action) bool
	Released(a Action) bool
	Held(a Action) bool
	// Hovered is the tile under the pointer or cursor, if any.
	Hovered() (x, y int, ok bool)
}

type arm uint8

const (
	armNone arm = iota
	armOpen
	armChord
)

// Tick resolves one tick of input into tile actions. Presses are handled
// before releases.
func (s *Session) Tick(in Input) {
	x, y, hover := in.Hovered()
	hover = hover && s.board.PointInBounds(x, y)

	if in.Pressed(Primary) && hover {
		if in.Held(Secondary) {
			s.arm = armChord
		} else {
			s.arm = armOpen
		}
	}
	if in.Pressed(Secondary) {
		if in.Held(Primary) {
			if hover {
				s.arm = armChord
			}
		} else if hover {
			s.Flag(x, y)
		}
	}

	if in.Released(Primary) && hover {
		switch s.arm {
		case armChord:
			s.Chord(x, y)
		case armOpen:
			s.Open(x, y)
		}
		s.arm = armNone
	}
	if in.Released(Tertiary) && hover {
		s.Chord(x, y)
	}
	if in.Released(Secondary) && s.arm == armChord && hover {
		s.Chord(x, y)
		s.arm = armNone
	}
	if !in.Held(Primary) {
		s.arm = armNone
	}

	s.pressed = false
	if hover && s.arm == armOpen && s.Status() == mines.Playing {
		if t, _ := s.board.Tile(x, y); t.Openable() {
			s.pressed = true
			s.pressX, s.pressY = x, y
		}
	}
}
