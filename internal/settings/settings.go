package settings

import (
	"errors"
	"fmt"

	"github.com/gorilla/schema"
	"github.com/sirupsen/logrus"
	"github.com/vancomm/minefield/internal/difficulty"
)

var (
	Log = logrus.New()

	decoder = schema.NewDecoder()
	encoder = schema.NewEncoder()
)

func init() {
	decoder.IgnoreUnknownKeys(true)
}

// Settings is what survives between runs. Keys are stored under the schema
// tag names.
type Settings struct {
	Difficulty   int     `schema:"Difficulty"`
	MarksEnabled bool    `schema:"MarksEnabled"`
	CustomWidth  int     `schema:"CustomWidth"`
	CustomHeight int     `schema:"CustomHeight"`
	CustomMines  int     `schema:"CustomMines"`
	MineRatio    float64 `schema:"MineRatio"`
	FieldWidth   int     `schema:"FieldWidth"`
	FieldHeight  int     `schema:"FieldHeight"`
}

func Default() Settings {
	return Settings{
		Difficulty:   int(difficulty.Auto),
		MarksEnabled: true,
		CustomWidth:  difficulty.DefaultCustom.Width,
		CustomHeight: difficulty.DefaultCustom.Height,
		CustomMines:  difficulty.DefaultCustom.MineCount,
		MineRatio:    difficulty.DefaultMineRatio,
		FieldWidth:   difficulty.DefaultAutoWidth,
		FieldHeight:  difficulty.DefaultAutoHeight,
	}
}

// Policy builds a difficulty policy from the settings. Out-of-range values
// are clamped by the policy.
func (s Settings) Policy(bounds difficulty.Bounds) *difficulty.Policy {
	level := difficulty.Level(s.Difficulty)
	if s.Difficulty < 0 || !level.Valid() {
		level = difficulty.Auto
	}
	p := difficulty.NewPolicy(level, bounds)
	p.SetCustom(s.CustomWidth, s.CustomHeight, s.CustomMines)
	p.SetAuto(s.MineRatio, s.FieldWidth, s.FieldHeight)
	return p
}

// Capture returns the settings describing p and the marks option.
func Capture(p *difficulty.Policy, marks bool) Settings {
	custom := p.Custom()
	w, h := p.AutoField()
	return Settings{
		Difficulty:   int(p.Level()),
		MarksEnabled: marks,
		CustomWidth:  custom.Width,
		CustomHeight: custom.Height,
		CustomMines:  custom.MineCount,
		MineRatio:    p.MineRatio(),
		FieldWidth:   w,
		FieldHeight:  h,
	}
}

func (s Settings) Fields() logrus.Fields {
	return logrus.Fields{
		"difficulty":    difficulty.Level(s.Difficulty).String(),
		"marks_enabled": s.MarksEnabled,
		"custom":        fmt.Sprintf("%d:%d:%d", s.CustomWidth, s.CustomHeight, s.CustomMines),
		"mine_ratio":    s.MineRatio,
		"field":         fmt.Sprintf("%d:%d", s.FieldWidth, s.FieldHeight),
	}
}

// KV is the flat key/value storage settings are kept in.
type KV interface {
	All() (map[string]string, error)
	SetAll(values map[string]string) error
}

// Load reads settings from kv on top of the defaults. Values that fail to
// parse are logged and left at their defaults.
func Load(kv KV) (Settings, error) {
	s := Default()
	values, err := kv.All()
	if err != nil {
		return s, fmt.Errorf("unable to read settings: %w", err)
	}

	src := make(map[string][]string, len(values))
	for k, v := range values {
		src[k] = []string{v}
	}

	if err := decoder.Decode(&s, src); err != nil {
		var multi schema.MultiError
		if !errors.As(err, &multi) {
			return Default(), fmt.Errorf("unable to decode settings: %w", err)
		}
		defaults := Default()
		for key, keyErr := range multi {
			Log.WithField("key", key).Warn("malformed setting: ", keyErr)
			resetField(&s, &defaults, key)
		}
	}

	Log.WithFields(s.Fields()).Info("settings loaded")
	return s, nil
}

// Save writes every setting to kv.
func Save(kv KV, s Settings) error {
	dst := make(map[string][]string)
	if err := encoder.Encode(s, dst); err != nil {
		return fmt.Errorf("unable to encode settings: %w", err)
	}

	values := make(map[string]string, len(dst))
	for k, v := range dst {
		if len(v) > 0 {
			values[k] = v[0]
		}
	}
	if err := kv.SetAll(values); err != nil {
		return fmt.Errorf("unable to write settings: %w", err)
	}

	Log.WithFields(s.Fields()).Info("settings saved")
	return nil
}

func resetField(s, defaults *Settings, key string) {
	switch key {
	case "Difficulty":
		s.Difficulty = defaults.Difficulty
	case "MarksEnabled":
		s.MarksEnabled = defaults.MarksEnabled
	case "CustomWidth":
		s.CustomWidth = defaults.CustomWidth
	case "CustomHeight":
		s.CustomHeight = defaults.CustomHeight
	case "CustomMines":
		s.CustomMines = defaults.CustomMines
	case "MineRatio":
		s.MineRatio = defaults.MineRatio
	case "FieldWidth":
		s.FieldWidth = defaults.FieldWidth
	case "FieldHeight":
		s.FieldHeight = defaults.FieldHeight
	}
}
