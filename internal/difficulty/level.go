package difficulty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vancomm/minefield/internal/mines"
)

type Level uint8

// The order is persisted, do not reorder.
const (
	Beginner Level = iota
	Intermediate
	Expert
	Auto
	Custom
)

var levelNames = [...]string{
	Beginner:     "beginner",
	Intermediate: "intermediate",
	Expert:       "expert",
	Auto:         "auto",
	Custom:       "custom",
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "invalid"
}

func (l Level) Valid() bool {
	return int(l) < len(levelNames)
}

// ParseLevel accepts a level name (any case, prefixes allowed) or its number.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("empty difficulty level")
	}
	if n, err := strconv.Atoi(s); err == nil {
		if l := Level(n); n >= 0 && l.Valid() {
			return l, nil
		}
		return 0, fmt.Errorf("difficulty level %d out of range", n)
	}
	for i, name := range levelNames {
		if strings.HasPrefix(name, s) {
			return Level(i), nil
		}
	}
	return 0, fmt.Errorf("unknown difficulty level %q", s)
}

var presets = map[Level]mines.GameParams{
	Beginner:     {Width: 10, Height: 10, MineCount: 10},
	Intermediate: {Width: 16, Height: 16, MineCount: 40},
	Expert:       {Width: 30, Height: 16, MineCount: 99},
}

// Preset returns the fixed field of a preset level.
func Preset(l Level) (mines.GameParams, bool) {
	p, ok := presets[l]
	return p, ok
}
