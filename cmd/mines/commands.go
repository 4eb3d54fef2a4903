package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vancomm/minefield/internal/difficulty"
	"github.com/vancomm/minefield/internal/session"
)

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"g": 0,
	"o": 2,
	"f": 2,
	"c": 2,
	"r": 0,
	"d": 1,
	"s": 3,
	"m": 0,
}

var errQuit = errors.New("quit")

func parseInts(strs []string) ([]int, error) {
	ints := make([]int, len(strs))
	for i, s := range strs {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("argument %d must be an int", i+1)
		}
		ints[i] = n
	}
	return ints, nil
}

func parseXY(s *session.Session, twoStrings []string) (x int, y int, err error) {
	xy, err := parseInts(twoStrings)
	if err != nil {
		return
	}
	x, y = xy[0], xy[1]
	if !s.Params().PointInBounds(x, y) {
		err = errors.New("invalid square coordinates")
	}
	return
}

func executeCommand(s *session.Session, c string) error {
	parts := strings.Fields(c)
	if len(parts) == 0 {
		return nil
	}
	if parts[0] == "q" {
		return errQuit
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return errors.New("unknown command")
	}
	if nargs != len(parts)-1 {
		return errors.New("invalid number of arguments")
	}

	switch parts[0] {
	case "g":
		return nil
	case "o", "f", "c":
		x, y, err := parseXY(s, parts[1:])
		if err != nil {
			return err
		}
		switch parts[0] {
		case "o":
			s.Open(x, y)
		case "f":
			s.Flag(x, y)
		case "c":
			s.Chord(x, y)
		}
		return nil
	case "r":
		s.Restart()
		return nil
	case "d":
		level, err := difficulty.ParseLevel(parts[1])
		if err != nil {
			return err
		}
		s.SetDifficulty(level)
		return nil
	case "s":
		whm, err := parseInts(parts[1:])
		if err != nil {
			return err
		}
		s.SetCustom(whm[0], whm[1], whm[2])
		return nil
	case "m":
		s.SetMarks(!s.Marks())
		return nil
	}
	return errors.New("invalid command")
}
