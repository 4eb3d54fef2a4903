package main

import (
	"context"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/session"
	"github.com/vancomm/minefield/internal/settings"
	"github.com/vancomm/minefield/internal/store"
	"github.com/vancomm/minefield/internal/tui"
)

var log = logrus.New()

func setupLogging(cfg *config.Config) {
	logLevel := logrus.InfoLevel
	if cfg.Development {
		logLevel = logrus.DebugLevel
	}
	log.SetLevel(logLevel)
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   cfg.LogFile,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Level:      logLevel,
		Formatter:  &logrus.TextFormatter{DisableColors: true, FullTimestamp: true},
	})
	if err != nil {
		log.Warn("unable to open log file: ", err)
	} else {
		log.AddHook(hook)
	}

	mines.Log = log
	session.Log = log
	settings.Log = log
	tui.Log = log
}

func newRand(cfg *config.Config) *rand.Rand {
	seed := rand.Uint64()
	if cfg.HasSeed {
		seed = cfg.Seed
	}
	log.WithField("seed", seed).Debug("mine placement seeded")
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func main() {
	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatal("unable to load config: ", err)
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatalf("unable to create data dir %s: %s", cfg.DataDir, err)
	}

	setupLogging(cfg)

	log.Info("starting up")
	log.WithFields(cfg.Fields()).Debug("config")

	db, err := store.Open(cfg.DatabasePath())
	if err != nil {
		log.Fatal("unable to open settings database: ", err)
	}
	defer db.Close()

	kv, err := store.New(db, "settings")
	if err != nil {
		log.Fatal("unable to create settings store: ", err)
	}

	st, err := settings.Load(kv)
	if err != nil {
		log.Warn("using default settings: ", err)
	}

	sess := session.New(
		st.Policy(cfg.AutoBounds), session.NewStopwatch(), newRand(cfg), st.MarksEnabled,
	)
	save := func() error {
		return settings.Save(kv, settings.Capture(sess.Policy(), sess.Marks()))
	}

	screen, err := tui.NewScreen()
	if err != nil {
		log.Fatal("unable to initialise screen: ", err)
	}
	app := tui.New(screen, sess, save)

	// the screen owns the terminal until Fini
	log.SetOutput(io.Discard)

	g, gCtx := errgroup.WithContext(mainCtx)
	runCtx, cancel := context.WithCancel(gCtx)
	g.Go(func() error {
		defer cancel()
		return app.Run(runCtx)
	})
	g.Go(func() error {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-runCtx.Done():
				// wake the event loop so it sees the cancellation
				app.Tick()
				return nil
			case <-ticker.C:
				if err := app.Tick(); err != nil {
					log.Debug("clock tick dropped: ", err)
				}
			}
		}
	})

	err = g.Wait()
	screen.Fini()
	log.SetOutput(os.Stderr)
	if err != nil {
		log.Printf("exit reason: %s\n", err)
	}

	if err := save(); err != nil {
		log.Error("unable to save settings: ", err)
	}
	log.Info("bye")
}
