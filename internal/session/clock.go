package session

import "time"

// Clock times a round in whole time units.
type Clock interface {
	Start()
	Stop()
	Reset()
	Elapsed() int
}

// Stopwatch is a [Clock] counting wall-clock seconds.
type Stopwatch struct {
	now       func() time.Time
	startedAt time.Time
	endedAt   time.Time
	running   bool
}

func NewStopwatch() *Stopwatch {
	return &Stopwatch{now: time.Now}
}

func (s *Stopwatch) Start() {
	if s.running {
		return
	}
	s.startedAt = s.now()
	s.endedAt = time.Time{}
	s.running = true
}

func (s *Stopwatch) Stop() {
	if !s.running {
		return
	}
	s.endedAt = s.now()
	s.running = false
}

func (s *Stopwatch) Reset() {
	s.startedAt = time.Time{}
	s.endedAt = time.Time{}
	s.running = false
}

func (s *Stopwatch) Elapsed() int {
	switch {
	case s.running:
		return int(s.now().Sub(s.startedAt) / time.Second)
	case s.startedAt.IsZero():
		return 0
	default:
		return int(s.endedAt.Sub(s.startedAt) / time.Second)
	}
}
