package mines

import (
	"iter"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

type Status uint8

const (
	Playing Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "invalid"
	}
}

// Rand is the source used to draw mine locations: a uniform integer in [0, n).
type Rand interface {
	IntN(n int) int
}

// Board is a field of tiles. The tile array is sized to [MaxWidth] x
// [MaxHeight]; only the first Width*Height entries are in use.
//
// Every tile-targeted method treats out-of-bounds coordinates and actions that
// don't apply to the tile's current state as no-ops. Once the round is won or
// lost the board is frozen.
type Board struct {
	GameParams
	tiles     [MaxWidth * MaxHeight]Tile
	status    Status
	generated bool
	marks     bool

	shownMinesLeft int // flag-count based, shown to the player
	minesLeft      int // only moves when a mined tile is (un)flagged

	boomX, boomY int
}

// NewBoard returns a closed board with no mines placed. Mines are placed by
// [Board.Generate] once the first tile to open is known.
func NewBoard(params GameParams, marks bool) *Board {
	params = params.Normalize()
	return &Board{
		GameParams:     params,
		marks:          marks,
		shownMinesLeft: params.MineCount,
		minesLeft:      params.MineCount,
		boomX:          -1,
		boomY:          -1,
	}
}

func (b *Board) Status() Status { return b.status }

func (b *Board) Generated() bool { return b.generated }

func (b *Board) Marks() bool { return b.marks }

func (b *Board) SetMarks(enabled bool) { b.marks = enabled }

// MinesLeft is the counter shown to the player: mines minus placed flags.
func (b *Board) MinesLeft() int { return b.shownMinesLeft }

// TrueMinesLeft is the number of mines that are not flagged.
func (b *Board) TrueMinesLeft() int { return b.minesLeft }

// Detonation returns the mine that ended a lost round.
func (b *Board) Detonation() (x, y int, ok bool) {
	if b.status != Lost {
		return -1, -1, false
	}
	return b.boomX, b.boomY, true
}

// Tile returns a copy of the tile at x, y.
func (b *Board) Tile(x, y int) (Tile, bool) {
	if !b.PointInBounds(x, y) {
		return Tile{}, false
	}
	return *b.at(x, y), true
}

func (b *Board) at(x, y int) *Tile {
	return &b.tiles[y*b.Width+x]
}

// neighbors yields the in-bounds 8-neighbourhood of x, y.
func (b *Board) neighbors(x, y int) iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				if !b.PointInBounds(x+dx, y+dy) {
					continue
				}
				if !yield(x+dx, y+dy) {
					return
				}
			}
		}
	}
}

// Generate places the mines so that the tile at x, y is safe. When the field
// can spare it, the whole 3x3 block around x, y is kept free of mines as well.
func (b *Board) Generate(x, y int, r Rand) {
	if b.generated || !b.PointInBounds(x, y) {
		return
	}
	width, height, mineCount := b.Unpack()
	excludeNeighborhood := width*height-mineCount >= 9

	candidates := make([]int, 0, width*height)
	for yy := range height {
		for xx := range width {
			if excludeNeighborhood {
				if absDiff(x, xx) <= 1 && absDiff(y, yy) <= 1 {
					continue
				}
			} else if xx == x && yy == y {
				continue
			}
			candidates = append(candidates, yy*width+xx)
		}
	}

	k := len(candidates)
	for range mineCount {
		i := r.IntN(k)
		b.tiles[candidates[i]].kind = Mined
		k--
		candidates[i] = candidates[k]
	}

	b.countAdjacentMines()
	b.generated = true

	Log.WithFields(logrus.Fields{
		"params":              b.Seed(),
		"x":                   x,
		"y":                   y,
		"excludeNeighborhood": excludeNeighborhood,
	}).Debug("field generated")
}

func (b *Board) countAdjacentMines() {
	for y := range b.Height {
		for x := range b.Width {
			t := b.at(x, y)
			if t.kind == Mined {
				continue
			}
			n := 0
			for nx, ny := range b.neighbors(x, y) {
				if b.at(nx, ny).kind == Mined {
					n++
				}
			}
			t.adjacent = n
		}
	}
}

// Open opens the tile at x, y and returns the resulting round status.
func (b *Board) Open(x, y int) Status {
	if b.status != Playing || !b.PointInBounds(x, y) {
		return b.status
	}
	t := b.at(x, y)
	if !t.Openable() {
		return b.status
	}

	t.visibility = Open
	if t.kind == Mined {
		b.status = Lost
		b.boomX, b.boomY = x, y
		return b.status
	}

	if t.Blank() {
		b.floodFill(x, y)
	}

	if !b.hasUnopenedSafeTiles() {
		b.status = Won
		b.flagClosedMines()
	}
	return b.status
}

// floodFill opens everything reachable from the blank tile at x, y through
// blank tiles. Flags swept up on the way are given back to the counter.
func (b *Board) floodFill(x, y int) {
	queue := []int{y*b.Width + x}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		for nx, ny := range b.neighbors(i%b.Width, i/b.Width) {
			n := b.at(nx, ny)
			if n.kind == Mined || n.visibility == Open {
				continue
			}
			if n.visibility == Flagged {
				b.shownMinesLeft++
			}
			n.visibility = Open
			if n.Blank() {
				queue = append(queue, ny*b.Width+nx)
			}
		}
	}
}

func (b *Board) hasUnopenedSafeTiles() bool {
	for i := range b.Width * b.Height {
		if b.tiles[i].kind == Empty && b.tiles[i].visibility != Open {
			return true
		}
	}
	return false
}

func (b *Board) flagClosedMines() {
	for i := range b.Width * b.Height {
		t := &b.tiles[i]
		if t.kind != Mined || t.visibility == Open || t.visibility == Flagged {
			continue
		}
		t.visibility = Flagged
		b.shownMinesLeft--
		b.minesLeft--
	}
}

// Chord opens every neighbour of the numbered open tile at x, y, provided the
// number of flags around it equals its mine count exactly.
func (b *Board) Chord(x, y int) Status {
	if b.status != Playing || !b.PointInBounds(x, y) {
		return b.status
	}
	t := b.at(x, y)
	if t.visibility != Open || t.kind == Mined || t.adjacent == 0 {
		return b.status
	}

	flags := 0
	for nx, ny := range b.neighbors(x, y) {
		if b.at(nx, ny).visibility == Flagged {
			flags++
		}
	}
	if flags != t.adjacent {
		return b.status
	}

	for nx, ny := range b.neighbors(x, y) {
		b.Open(nx, ny)
	}
	return b.status
}

// CycleFlag steps the tile at x, y through closed, flagged and, when marks
// are enabled, questioned.
func (b *Board) CycleFlag(x, y int) {
	if b.status != Playing || !b.PointInBounds(x, y) {
		return
	}
	t := b.at(x, y)
	switch t.visibility {
	case Closed:
		t.visibility = Flagged
		b.shownMinesLeft--
		if t.kind == Mined {
			b.minesLeft--
		}
	case Flagged:
		if b.marks {
			t.visibility = Questioned
		} else {
			t.visibility = Closed
		}
		b.shownMinesLeft++
		if t.kind == Mined {
			b.minesLeft++
		}
	case Questioned:
		t.visibility = Closed
	}
}

// RevealMines discloses unflagged mines and crosses out flags placed on safe
// tiles. Visibility is not changed.
func (b *Board) RevealMines() {
	for i := range b.Width * b.Height {
		t := &b.tiles[i]
		if !t.MineRevealError() {
			continue
		}
		t.revealed = true
		if t.kind != Mined {
			t.crossedOut = true
		}
	}
}
