package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/difficulty"
	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/session"
)

var (
	log = logrus.New()

	scriptPath string
	levelName  string
)

func init() {
	flag.StringVar(&scriptPath, "script", "", "run commands from file and exit")
	flag.StringVar(&levelName, "level", "beginner", "difficulty level")
}

func setupLogging(cfg *config.Config) {
	logLevel := logrus.InfoLevel
	if cfg.Development {
		logLevel = logrus.DebugLevel
	}
	log.SetLevel(logLevel)
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	mines.Log = log
	session.Log = log
}

func main() {
	flag.Parse()

	cfg, err := config.Load(nil)
	if err != nil {
		log.Fatal("unable to load config: ", err)
	}
	setupLogging(cfg)

	level, err := difficulty.ParseLevel(levelName)
	if err != nil {
		log.Fatal(err)
	}

	seed := rand.Uint64()
	if cfg.HasSeed {
		seed = cfg.Seed
	}
	s := session.New(
		difficulty.NewPolicy(level, cfg.AutoBounds),
		session.NewStopwatch(),
		rand.New(rand.NewPCG(seed, 2)),
		true,
	)

	if scriptPath != "" {
		script, err := os.ReadFile(scriptPath)
		if err != nil {
			log.Fatalf("unable to read script %s: %s", scriptPath, err)
		}
		if line, err := runScript(s, string(script)); err != nil && !errors.Is(err, errQuit) {
			log.Fatalf("line %d: %s", line+1, err)
		}
		printState(os.Stdout, s)
		return
	}

	printState(os.Stdout, s)
	scanner := bufio.NewScanner(os.Stdin)
	for fmt.Print("> "); scanner.Scan(); fmt.Print("> ") {
		err := executeCommand(s, scanner.Text())
		if errors.Is(err, errQuit) {
			return
		}
		if err != nil {
			fmt.Println(err)
			continue
		}
		printState(os.Stdout, s)
	}
}
