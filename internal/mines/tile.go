package mines

type Kind uint8

const (
	Empty Kind = iota
	Mined
)

type Visibility uint8

const (
	Closed Visibility = iota
	Open
	Flagged
	Questioned
)

func (v Visibility) String() string {
	switch v {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case Flagged:
		return "flagged"
	case Questioned:
		return "questioned"
	default:
		return "invalid"
	}
}

// Tile is a single cell of the field. Only [Board] changes its state.
type Tile struct {
	kind       Kind
	visibility Visibility
	adjacent   int

	// set by [Board.RevealMines] after a loss; visibility is left as is
	revealed   bool
	crossedOut bool
}

func (t *Tile) Reset() {
	*t = Tile{}
}

func (t Tile) Kind() Kind { return t.kind }
func (t Tile) Visibility() Visibility { return t.visibility }
func (t Tile) AdjacentMines() int { return t.adjacent }
func (t Tile) Revealed() bool { return t.revealed }
func (t Tile) CrossedOut() bool { return t.crossedOut }
func (t Tile) Mined() bool { return t.kind == Mined }

// Openable reports whether an open action may change this tile.
func (t Tile) Openable() bool {
	return t.visibility == Closed || t.visibility == Questioned
}

// MineRevealError reports whether the tile must be disclosed when the round
// is lost: a mine without a flag, or a flag without a mine.
func (t Tile) MineRevealError() bool {
	return (t.kind == Mined && t.visibility != Flagged) ||
		(t.kind != Mined && t.visibility == Flagged)
}

// Blank reports a safe tile with no mined neighbours.
func (t Tile) Blank() bool {
	return t.kind == Empty && t.adjacent == 0
}
