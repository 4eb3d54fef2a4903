package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/vancomm/minefield/internal/difficulty"
)

const (
	appName        = "Minefield"
	logFileName    = "Minefield.log"
	databaseName   = "Minefield.db"
	defaultEnvFile = ".env"
)

const (
	envDataDir       = "MINEFIELD_DATA_DIR"
	envLogFile       = "MINEFIELD_LOG_FILE"
	envSeed          = "MINEFIELD_SEED"
	envAutoMinWidth  = "MINEFIELD_AUTO_MIN_WIDTH"
	envAutoMaxWidth  = "MINEFIELD_AUTO_MAX_WIDTH"
	envAutoMinHeight = "MINEFIELD_AUTO_MIN_HEIGHT"
	envAutoMaxHeight = "MINEFIELD_AUTO_MAX_HEIGHT"
)

type Config struct {
	Development bool
	DataDir     string
	LogFile     string

	// Seed fixes the mine layout source when HasSeed is set.
	Seed    uint64
	HasSeed bool

	AutoBounds difficulty.Bounds
}

// Load reads the configuration from the environment and then args, which
// take precedence. envFiles are loaded into the environment first, without
// overriding variables that are already set; missing files are skipped. With
// no envFiles, ".env" is tried.
func Load(args []string, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{defaultEnvFile}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("unable to load %s: %w", f, err)
		}
	}

	c := &Config{
		Development: Development(),
		AutoBounds:  difficulty.DefaultBounds(),
	}

	if dir, ok := os.LookupEnv(envDataDir); ok && dir != "" {
		c.DataDir = dir
	} else {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("no %s set; %w", envDataDir, err)
		}
		c.DataDir = filepath.Join(base, appName)
	}

	if seed, ok := os.LookupEnv(envSeed); ok && seed != "" {
		if err := c.setSeed(seed); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", envSeed, err)
		}
	}

	for _, b := range []struct {
		key string
		dst *int
	}{
		{envAutoMinWidth, &c.AutoBounds.MinWidth},
		{envAutoMaxWidth, &c.AutoBounds.MaxWidth},
		{envAutoMinHeight, &c.AutoBounds.MinHeight},
		{envAutoMaxHeight, &c.AutoBounds.MaxHeight},
	} {
		v, ok := os.LookupEnv(b.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("unable to convert %s to int: %w", b.key, err)
		}
		*b.dst = n
	}
	c.AutoBounds = c.AutoBounds.Normalize()

	logFile, hasLogFile := os.LookupEnv(envLogFile)

	fset := flag.NewFlagSet(appName, flag.ContinueOnError)
	fset.StringVar(&c.DataDir, "data", c.DataDir, "directory for settings and logs")
	seed := fset.String("seed", "", "fixed seed for mine placement")
	if err := fset.Parse(args); err != nil {
		return nil, err
	}
	if *seed != "" {
		if err := c.setSeed(*seed); err != nil {
			return nil, fmt.Errorf("invalid -seed: %w", err)
		}
	}

	c.LogFile = filepath.Join(c.DataDir, logFileName)
	if hasLogFile && logFile != "" {
		c.LogFile = logFile
	}
	return c, nil
}

func (c *Config) setSeed(s string) error {
	seed, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return err
	}
	c.Seed, c.HasSeed = seed, true
	return nil
}

// DatabasePath is the sqlite file settings are kept in.
func (c Config) DatabasePath() string {
	return filepath.Join(c.DataDir, databaseName)
}

func (c Config) Fields() logrus.Fields {
	fields := logrus.Fields{
		"development":     c.Development,
		"data_dir":        c.DataDir,
		"log_file":        c.LogFile,
		"auto_min_width":  c.AutoBounds.MinWidth,
		"auto_max_width":  c.AutoBounds.MaxWidth,
		"auto_min_height": c.AutoBounds.MinHeight,
		"auto_max_height": c.AutoBounds.MaxHeight,
	}
	if c.HasSeed {
		fields["seed"] = c.Seed
	}
	return fields
}
