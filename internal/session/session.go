package session

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vancomm/minefield/internal/difficulty"
	"github.com/vancomm/minefield/internal/mines"
)

var Log = logrus.New()

// MaxTime caps the elapsed time shown to the player.
const MaxTime = 99999

// Session runs rounds of the game: it owns the current board, the difficulty
// policy and the round clock. It is not safe for concurrent use.
type Session struct {
	board  *mines.Board
	policy *difficulty.Policy
	clock  Clock
	rnd    mines.Rand
	marks  bool

	firstClickPending bool
	roundID           uuid.UUID
	log               *logrus.Entry

	arm            arm
	pressed        bool
	pressX, pressY int
}

// New creates a session and starts its first round.
func New(policy *difficulty.Policy, clock Clock, rnd mines.Rand, marks bool) *Session {
	s := &Session{
		policy: policy,
		clock:  clock,
		rnd:    rnd,
		marks:  marks,
	}
	s.StartRound()
	return s
}

// StartRound replaces the board with a closed one sized by the policy. Mines
// are placed on the first open.
func (s *Session) StartRound() {
	params := s.policy.Next()
	s.board = mines.NewBoard(params, s.marks)
	s.clock.Stop()
	s.clock.Reset()
	s.firstClickPending = true
	s.arm = armNone
	s.pressed = false

	s.roundID = uuid.New()
	s.log = Log.WithField("round", s.roundID.String())
	s.log.WithFields(logrus.Fields{
		"level":  s.policy.Level().String(),
		"params": params.Seed(),
	}).Debug("round started")
}

func (s *Session) Restart() { s.StartRound() }

// Open opens the tile at x, y. The first open of a round places the mines and
// starts the clock.
func (s *Session) Open(x, y int) mines.Status {
	if s.board.Status() != mines.Playing {
		return s.board.Status()
	}
	if s.firstClickPending {
		t, ok := s.board.Tile(x, y)
		if !ok || !t.Openable() {
			return s.board.Status()
		}
		s.board.Generate(x, y, s.rnd)
		s.firstClickPending = false
		s.clock.Start()
	}
	return s.settle(s.board.Open(x, y))
}

// Flag cycles the flag on the tile at x, y.
func (s *Session) Flag(x, y int) {
	s.board.CycleFlag(x, y)
}

// Chord opens the neighbours of the numbered tile at x, y when its flags
// account for all its mines.
func (s *Session) Chord(x, y int) mines.Status {
	if s.board.Status() != mines.Playing {
		return s.board.Status()
	}
	return s.settle(s.board.Chord(x, y))
}

func (s *Session) settle(status mines.Status) mines.Status {
	switch status {
	case mines.Won:
		s.clock.Stop()
		s.policy.RecordWin(s.clock.Elapsed())
	case mines.Lost:
		s.clock.Stop()
		s.board.RevealMines()
		s.policy.RecordLoss()
	default:
		return status
	}

	ratio := s.policy.MineRatio()
	w, h := s.policy.AutoField()
	s.log.WithFields(logrus.Fields{
		"status":     status.String(),
		"elapsed":    s.clock.Elapsed(),
		"params":     s.board.Seed(),
		"mine_ratio": ratio,
		"auto_field": mines.GameParams{Width: w, Height: h}.Seed(),
	}).Info("round over")
	return status
}

// SetDifficulty switches level and starts a new round.
func (s *Session) SetDifficulty(l difficulty.Level) {
	s.policy.SetLevel(l)
	s.log.WithField("level", s.policy.Level().String()).Info("difficulty changed")
	s.StartRound()
}

// SetCustom switches to the Custom level with the given field (clamped) and
// starts a new round.
func (s *Session) SetCustom(width, height, mineCount int) {
	s.policy.SetCustom(width, height, mineCount)
	s.SetDifficulty(difficulty.Custom)
}

func (s *Session) SetMarks(enabled bool) {
	s.marks = enabled
	s.board.SetMarks(enabled)
}

func (s *Session) Marks() bool { return s.marks }

func (s *Session) Policy() *difficulty.Policy { return s.policy }

func (s *Session) RoundID() uuid.UUID { return s.roundID }

func (s *Session) Status() mines.Status { return s.board.Status() }

func (s *Session) Params() mines.GameParams { return s.board.GameParams }

func (s *Session) Width() int { return s.board.Width }

func (s *Session) Height() int { return s.board.Height }

// MinesLeft is the flag-based counter shown to the player.
func (s *Session) MinesLeft() int { return s.board.MinesLeft() }

// Elapsed is the round time, saturating at [MaxTime].
func (s *Session) Elapsed() int { return min(s.clock.Elapsed(), MaxTime) }

func (s *Session) Tile(x, y int) (mines.Tile, bool) { return s.board.Tile(x, y) }

func (s *Session) Grid() mines.Grid { return s.board.Grid() }

// Pressed returns the tile drawn sunken while an open is armed over it.
func (s *Session) Pressed() (x, y int, ok bool) {
	if !s.pressed {
		return -1, -1, false
	}
	return s.pressX, s.pressY, true
}

// Started reports whether the mines of the current round have been placed.
func (s *Session) Started() bool { return !s.firstClickPending }
