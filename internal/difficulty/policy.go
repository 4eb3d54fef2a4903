package difficulty

import (
	"math"

	"github.com/vancomm/minefield/internal/mines"
)

// Field limits for Custom and Auto.
const (
	MinWidth  = 10
	MaxWidth  = mines.MaxWidth
	MinHeight = 10
	MaxHeight = mines.MaxHeight
	MinMines  = 10
)

// Auto tuning.
const (
	DefaultMineRatio    = 0.15
	MinMineRatio        = 0.05
	MaxMineRatio        = 0.25
	MineRatioStep       = 0.005
	DesiredDuration     = 300
	LossStreakThreshold = 3

	DefaultAutoWidth  = 25
	DefaultAutoHeight = 22
)

// Custom field used until the player sets one.
var DefaultCustom = mines.GameParams{Width: 30, Height: 20, MineCount: 145}

// Bounds limits the field size Auto may drift to.
type Bounds struct {
	MinWidth, MaxWidth   int
	MinHeight, MaxHeight int
}

func DefaultBounds() Bounds {
	return Bounds{MinWidth: 22, MaxWidth: 50, MinHeight: 18, MaxHeight: 30}
}

// Normalize keeps the bounds inside the supported field range with min <= max.
func (b Bounds) Normalize() Bounds {
	b.MinWidth = clamp(b.MinWidth, MinWidth, MaxWidth)
	b.MaxWidth = clamp(b.MaxWidth, b.MinWidth, MaxWidth)
	b.MinHeight = clamp(b.MinHeight, MinHeight, MaxHeight)
	b.MaxHeight = clamp(b.MaxHeight, b.MinHeight, MaxHeight)
	return b
}

// Policy decides the field of the next round. In Auto mode it tunes the mine
// ratio and the field size from round outcomes; the other levels are fixed.
type Policy struct {
	level  Level
	custom mines.GameParams
	bounds Bounds

	mineRatio     float64
	width, height int
	lossStreak    int
}

func NewPolicy(level Level, bounds Bounds) *Policy {
	p := &Policy{
		bounds:    bounds.Normalize(),
		custom:    DefaultCustom,
		mineRatio: DefaultMineRatio,
	}
	p.SetLevel(level)
	p.SetAuto(DefaultMineRatio, DefaultAutoWidth, DefaultAutoHeight)
	return p
}

func (p *Policy) Level() Level { return p.level }

// SetLevel switches level; an unknown level falls back to Auto.
func (p *Policy) SetLevel(l Level) {
	if !l.Valid() {
		l = Auto
	}
	p.level = l
}

func (p *Policy) Custom() mines.GameParams { return p.custom }

// SetCustom stores custom field parameters, clamped to the supported range.
func (p *Policy) SetCustom(width, height, mineCount int) {
	width = clamp(width, MinWidth, MaxWidth)
	height = clamp(height, MinHeight, MaxHeight)
	p.custom = mines.GameParams{
		Width:     width,
		Height:    height,
		MineCount: clamp(mineCount, MinMines, width*height-1),
	}
}

func (p *Policy) Bounds() Bounds { return p.bounds }

func (p *Policy) MineRatio() float64 { return p.mineRatio }

func (p *Policy) AutoField() (width, height int) { return p.width, p.height }

func (p *Policy) LossStreak() int { return p.lossStreak }

// SetAuto restores Auto state, e.g. from saved settings. Values are clamped.
func (p *Policy) SetAuto(mineRatio float64, width, height int) {
	if math.IsNaN(mineRatio) {
		mineRatio = DefaultMineRatio
	}
	p.mineRatio = math.Min(math.Max(mineRatio, MinMineRatio), MaxMineRatio)
	p.width = clamp(width, p.bounds.MinWidth, p.bounds.MaxWidth)
	p.height = clamp(height, p.bounds.MinHeight, p.bounds.MaxHeight)
}

// Next returns the field for the next round at the current level.
func (p *Policy) Next() mines.GameParams {
	switch p.level {
	case Custom:
		return p.custom
	case Auto:
		area := p.width * p.height
		mineCount := int(math.Round(float64(area) * p.mineRatio))
		if mineCount >= area {
			mineCount = area - 1
		}
		return mines.GameParams{Width: p.width, Height: p.height, MineCount: mineCount}
	default:
		return presets[p.level]
	}
}

// RecordWin makes the next Auto round denser, and larger when the round was
// finished quicker than [DesiredDuration], smaller otherwise.
func (p *Policy) RecordWin(elapsed int) {
	if p.level != Auto {
		return
	}
	p.lossStreak = 0
	p.mineRatio = math.Min(p.mineRatio+MineRatioStep, MaxMineRatio)
	delta := 1
	if elapsed >= DesiredDuration {
		delta = -1
	}
	p.width = clamp(p.width+delta, p.bounds.MinWidth, p.bounds.MaxWidth)
	p.height = clamp(p.height+delta, p.bounds.MinHeight, p.bounds.MaxHeight)
}

// RecordLoss lowers the Auto mine ratio after [LossStreakThreshold]
// consecutive losses.
func (p *Policy) RecordLoss() {
	if p.level != Auto {
		return
	}
	p.lossStreak++
	if p.lossStreak < LossStreakThreshold {
		return
	}
	p.lossStreak = 0
	p.mineRatio = math.Max(p.mineRatio-MineRatioStep, MinMineRatio)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
