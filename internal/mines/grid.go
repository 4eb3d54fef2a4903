package mines

import (
	"fmt"
	"strconv"
	"strings"
)

type CellStatus int8

const (
	Question      CellStatus = -3
	Unknown       CellStatus = -2
	Flag          CellStatus = -1
	ExplodedMine  CellStatus = 65 // post-game-over
	WrongFlag     CellStatus = 66
	UnflaggedMine CellStatus = 67
	// 0-8 for an open tile with the given number of mined neighbours
)

func (s CellStatus) String() string {
	switch s {
	case Question:
		return "?"
	case Unknown:
		return " "
	case Flag:
		return "*"
	case 0, 1, 2, 3, 4, 5, 6, 7, 8:
		return strconv.Itoa(int(s))
	case ExplodedMine:
		return "X"
	case WrongFlag:
		return "x"
	case UnflaggedMine:
		return "@"
	default:
		return "!"
	}
}

// Grid is a row-major snapshot of what the player may see.
type Grid []CellStatus

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			i := y*width + x
			if i >= len(g) {
				break
			}
			fmt.Fprint(&b, g[i].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}

// Grid returns the player's view of the board. Mines only show up once the
// round is lost and [Board.RevealMines] has run.
func (b *Board) Grid() Grid {
	g := make(Grid, b.Width*b.Height)
	for i := range g {
		g[i] = b.cellStatus(i)
	}
	return g
}

func (b *Board) cellStatus(i int) CellStatus {
	t := b.tiles[i]
	if b.status == Lost && i == b.boomY*b.Width+b.boomX {
		return ExplodedMine
	}
	if t.revealed {
		if t.crossedOut {
			return WrongFlag
		}
		return UnflaggedMine
	}
	switch t.visibility {
	case Open:
		return CellStatus(t.adjacent)
	case Flagged:
		return Flag
	case Questioned:
		if b.status == Playing {
			return Question
		}
		return Unknown
	default:
		return Unknown
	}
}
