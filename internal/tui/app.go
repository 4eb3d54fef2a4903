package tui

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"github.com/vancomm/minefield/internal/session"
)

var Log = logrus.New()

// App is the terminal front-end of a session.
type App struct {
	screen  tcell.Screen
	session *session.Session
	input   Input
	save    func() error
	message string
}

// New returns an App drawing to an initialised screen. save is called on the
// save key; it may be nil.
func New(screen tcell.Screen, s *session.Session, save func() error) *App {
	screen.EnableMouse()
	screen.HideCursor()
	return &App{screen: screen, session: s, save: save}
}

// NewScreen creates and initialises a terminal screen.
func NewScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return screen, nil
}

// Tick wakes the event loop so the clock is redrawn.
func (a *App) Tick() error {
	return a.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

func (a *App) layout() Layout {
	sw, sh := a.screen.Size()
	return layoutFor(sw, sh, a.session.Width(), a.session.Height())
}

// Run handles events until the player quits, the screen is finalised or ctx
// is done. Cancelling ctx takes effect on the next event; see [App.Tick].
func (a *App) Run(ctx context.Context) error {
	a.draw()
	for ctx.Err() == nil {
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			a.screen.Sync()
		case *tcell.EventMouse:
			l := a.layout()
			f := a.input.mouse(ev, l)
			if f.released[session.Primary] && l.OnFace(ev.Position()) {
				a.session.Restart()
				break
			}
			a.session.Tick(f)
		case *tcell.EventKey:
			f, cmd := a.input.key(ev, a.layout())
			if cmd.kind == cmdQuit {
				return nil
			}
			a.exec(cmd)
			a.session.Tick(f)
		}
		a.draw()
	}
	return nil
}

func (a *App) exec(cmd command) {
	switch cmd.kind {
	case cmdRestart:
		a.session.Restart()
		a.message = ""
	case cmdDifficulty:
		a.session.SetDifficulty(cmd.level)
		a.message = ""
	case cmdMarks:
		a.session.SetMarks(!a.session.Marks())
	case cmdSave:
		if a.save == nil {
			return
		}
		if err := a.save(); err != nil {
			Log.WithError(err).Error("unable to save settings")
			a.message = "unable to save settings"
		} else {
			a.message = "settings saved"
		}
	}
}
