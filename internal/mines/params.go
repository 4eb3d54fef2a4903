package mines

import (
	"fmt"
	"strings"
)

// Supported field ceiling. The board arena is preallocated to this size.
const (
	MaxWidth  = 70
	MaxHeight = 35
)

type GameParams struct {
	Width, Height, MineCount int
}

func (p GameParams) Unpack() (w int, h int, mc int) {
	return p.Width, p.Height, p.MineCount
}

func (p GameParams) Seed() string {
	return fmt.Sprintf("%d:%d:%d", p.Width, p.Height, p.MineCount)
}

func ParseSeed(seed string) (*GameParams, error) {
	p := &GameParams{}
	sseed := strings.ReplaceAll(seed, ":", " ")
	n, err := fmt.Sscanf(sseed, "%d %d %d", &p.Width, &p.Height, &p.MineCount)
	if n != 3 || err != nil {
		return nil, fmt.Errorf(
			`invalid game params seed (sseed = "%s", n = %d, err = %w)`,
			sseed, n, err,
		)
	}
	return p, nil
}

func (p GameParams) PointInBounds(x, y int) bool {
	return 0 <= x && x < p.Width && 0 <= y && y < p.Height
}

// Normalize fits the params into the arena and keeps at least one safe cell.
func (p GameParams) Normalize() GameParams {
	p.Width = clamp(p.Width, 1, MaxWidth)
	p.Height = clamp(p.Height, 1, MaxHeight)
	p.MineCount = clamp(p.MineCount, 0, p.Width*p.Height-1)
	return p
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
