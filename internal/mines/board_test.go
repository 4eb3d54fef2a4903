package mines

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Log.SetLevel(logrus.DebugLevel)
	Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	m.Run()
}

// boardWithMines returns a generated board with mines at exactly the given
// coordinates.
func boardWithMines(w, h int, marks bool, mines ...[2]int) *Board {
	b := NewBoard(GameParams{Width: w, Height: h, MineCount: len(mines)}, marks)
	for _, m := range mines {
		b.at(m[0], m[1]).kind = Mined
	}
	b.countAdjacentMines()
	b.generated = true
	return b
}

func countMines(b *Board) (n int) {
	for y := range b.Height {
		for x := range b.Width {
			if t, _ := b.Tile(x, y); t.Mined() {
				n++
			}
		}
	}
	return
}

func TestNewBoardIsClosed(t *testing.T) {
	b := NewBoard(GameParams{Width: 10, Height: 10, MineCount: 10}, true)

	assert.False(t, b.Generated())
	assert.Equal(t, Playing, b.Status())
	assert.Equal(t, 10, b.MinesLeft())
	for y := range 10 {
		for x := range 10 {
			tile, ok := b.Tile(x, y)
			require.True(t, ok)
			assert.Equal(t, Closed, tile.Visibility())
			assert.Equal(t, Empty, tile.Kind())
			assert.Equal(t, 0, tile.AdjacentMines())
		}
	}
}

func TestNewBoardKeepsOneSafeTile(t *testing.T) {
	tests := []struct {
		params GameParams
		want   GameParams
	}{
		{GameParams{10, 10, 100}, GameParams{10, 10, 99}},
		{GameParams{10, 10, 500}, GameParams{10, 10, 99}},
		{GameParams{100, 100, 10}, GameParams{MaxWidth, MaxHeight, 10}},
		{GameParams{0, -3, 5}, GameParams{1, 1, 0}},
		{GameParams{5, 5, -1}, GameParams{5, 5, 0}},
	}
	for _, test := range tests {
		t.Run(test.params.Seed(), func(t *testing.T) {
			b := NewBoard(test.params, false)
			assert.Equal(t, test.want, b.GameParams)
			assert.Less(t, b.MineCount, b.Width*b.Height)
		})
	}
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params GameParams
	}{
		{name: "10x10(10)", params: GameParams{Width: 10, Height: 10, MineCount: 10}},
		{name: "16x16(40)", params: GameParams{Width: 16, Height: 16, MineCount: 40}},
		{name: "30x16(99)", params: GameParams{Width: 30, Height: 16, MineCount: 99}},
		{name: "10x10(91)", params: GameParams{Width: 10, Height: 10, MineCount: 91}},
		{name: "10x10(92)", params: GameParams{Width: 10, Height: 10, MineCount: 92}},
		{name: "3x3(8)", params: GameParams{Width: 3, Height: 3, MineCount: 8}},
		{name: "70x35(2449)", params: GameParams{Width: 70, Height: 35, MineCount: 2449}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			r := rand.New(rand.NewPCG(1, 2))
			w, h, n := test.params.Unpack()
			wholeNeighborhood := w*h-n >= 9

			for sx := range w {
				for sy := range h {
					b := NewBoard(test.params, false)
					b.Generate(sx, sy, r)
					require.True(t, b.Generated())
					require.Equal(t, n, countMines(b), "%s @ %d:%d", test.name, sx, sy)

					for y := range h {
						for x := range w {
							tile, _ := b.Tile(x, y)
							near := absDiff(x, sx) <= 1 && absDiff(y, sy) <= 1
							if (x == sx && y == sy) || (wholeNeighborhood && near) {
								require.False(t, tile.Mined(), "mine at %d:%d after click at %d:%d", x, y, sx, sy)
							}
							if tile.Mined() {
								continue
							}
							want := 0
							for nx, ny := range b.neighbors(x, y) {
								if n, _ := b.Tile(nx, ny); n.Mined() {
									want++
								}
							}
							require.Equal(t, want, tile.AdjacentMines())
						}
					}

					if test.params.Width*test.params.Height > 400 {
						break
					}
				}
			}
		})
	}
}

func TestGenerateOnce(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	b := NewBoard(GameParams{Width: 10, Height: 10, MineCount: 10}, false)
	b.Generate(-1, 0, r)
	assert.False(t, b.Generated())

	b.Generate(0, 0, r)
	before := b.Grid()
	mined := make([]bool, 0, 100)
	for i := range 100 {
		mined = append(mined, b.tiles[i].Mined())
	}

	b.Generate(9, 9, r)
	for i := range 100 {
		assert.Equal(t, mined[i], b.tiles[i].Mined())
	}
	assert.Equal(t, before, b.Grid())
}

func TestFirstClickCorner(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for range 50 {
		b := NewBoard(GameParams{Width: 10, Height: 10, MineCount: 10}, false)
		b.Generate(0, 0, r)
		for _, p := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
			tile, _ := b.Tile(p[0], p[1])
			require.False(t, tile.Mined())
		}
		assert.True(t, b.at(0, 0).Blank())
		assert.NotEqual(t, Lost, b.Open(0, 0))
	}
}

func TestOpenSingleMineWins(t *testing.T) {
	b := boardWithMines(8, 8, true, [2]int{5, 5})

	assert.Equal(t, Won, b.Open(0, 0))
	for y := range 8 {
		for x := range 8 {
			tile, _ := b.Tile(x, y)
			if x == 5 && y == 5 {
				assert.Equal(t, Flagged, tile.Visibility())
				continue
			}
			assert.Equal(t, Open, tile.Visibility(), "%d:%d", x, y)
		}
	}
	assert.Equal(t, 0, b.MinesLeft())
	assert.Equal(t, 0, b.TrueMinesLeft())
}

func TestOpenMineLoses(t *testing.T) {
	b := boardWithMines(5, 5, true, [2]int{2, 2})

	assert.Equal(t, Lost, b.Open(2, 2))
	x, y, ok := b.Detonation()
	assert.True(t, ok)
	assert.Equal(t, [2]int{2, 2}, [2]int{x, y})

	// frozen
	assert.Equal(t, Lost, b.Open(0, 0))
	tile, _ := b.Tile(0, 0)
	assert.Equal(t, Closed, tile.Visibility())
	b.CycleFlag(0, 0)
	tile, _ = b.Tile(0, 0)
	assert.Equal(t, Closed, tile.Visibility())
}

func TestOpenIgnoresFlagsAndOpenTiles(t *testing.T) {
	b := boardWithMines(5, 5, true, [2]int{0, 0}, [2]int{4, 4})

	b.CycleFlag(0, 0)
	assert.Equal(t, Playing, b.Open(0, 0))
	tile, _ := b.Tile(0, 0)
	assert.Equal(t, Flagged, tile.Visibility())

	assert.Equal(t, Playing, b.Open(1, 0))
	assert.Equal(t, Playing, b.Open(1, 0))
	tile, _ = b.Tile(1, 0)
	assert.Equal(t, Open, tile.Visibility())
}

func TestOpenQuestioned(t *testing.T) {
	b := boardWithMines(5, 5, true, [2]int{0, 0}, [2]int{4, 4})
	b.CycleFlag(1, 0)
	b.CycleFlag(1, 0)
	tile, _ := b.Tile(1, 0)
	require.Equal(t, Questioned, tile.Visibility())

	b.Open(1, 0)
	tile, _ = b.Tile(1, 0)
	assert.Equal(t, Open, tile.Visibility())
}

// fixedPointFill is the whole-board rescan the flood fill must agree with.
func fixedPointFill(b *Board) []Visibility {
	w, h := b.Width, b.Height
	vis := make([]Visibility, w*h)
	for i := range vis {
		vis[i] = b.tiles[i].visibility
	}
	for done := false; !done; {
		done = true
		for y := range h {
			for x := range w {
				i := y*w + x
				if b.tiles[i].kind == Mined || vis[i] == Open {
					continue
				}
				for nx, ny := range b.neighbors(x, y) {
					j := ny*w + nx
					if vis[j] == Open && b.tiles[j].Blank() {
						vis[i] = Open
						done = false
						break
					}
				}
			}
		}
	}
	return vis
}

func TestFloodFillMatchesRescan(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewPCG(1, 2))

	for round := range 200 {
		params := GameParams{
			Width:     10 + r.IntN(20),
			Height:    10 + r.IntN(15),
			MineCount: 10 + r.IntN(60),
		}
		t.Run(fmt.Sprintf("%d/%s", round, params.Seed()), func(t *testing.T) {
			b := NewBoard(params, false)
			b.Generate(r.IntN(params.Width), r.IntN(params.Height), r)

			var bx, by int
			for i := range params.Width * params.Height {
				if b.tiles[i].Blank() {
					bx, by = i%params.Width, i/params.Width
					break
				}
			}

			b.at(bx, by).visibility = Open
			want := fixedPointFill(b)
			b.at(bx, by).visibility = Closed

			b.Open(bx, by)
			for i := range params.Width * params.Height {
				if b.tiles[i].Mined() {
					require.NotEqual(t, Open, b.tiles[i].visibility)
					continue
				}
				require.Equal(t, want[i], b.tiles[i].visibility, "tile %d", i)
			}
		})
	}
}

func TestFloodFillReturnsFlags(t *testing.T) {
	b := boardWithMines(6, 6, false, [2]int{5, 5})
	b.CycleFlag(2, 2) // wrong flag on a safe tile
	require.Equal(t, 0, b.MinesLeft())

	assert.Equal(t, Won, b.Open(0, 0))
	tile, _ := b.Tile(2, 2)
	assert.Equal(t, Open, tile.Visibility())
	// the swept flag comes back, then the mine is auto-flagged on win
	assert.Equal(t, 0, b.MinesLeft())
}

func TestChord(t *testing.T) {
	t.Run("mismatch leaves neighbours alone", func(t *testing.T) {
		b := boardWithMines(5, 5, true, [2]int{0, 0}, [2]int{4, 4})
		require.Equal(t, Playing, b.Open(1, 1))
		before := b.Grid()

		assert.Equal(t, Playing, b.Chord(1, 1))
		assert.Equal(t, before, b.Grid())

		b.CycleFlag(0, 0)
		b.CycleFlag(2, 2)
		before = b.Grid()
		assert.Equal(t, Playing, b.Chord(1, 1))
		assert.Equal(t, before, b.Grid())
	})

	t.Run("matching flags open neighbours and can win", func(t *testing.T) {
		b := boardWithMines(5, 5, true, [2]int{0, 0}, [2]int{4, 4})
		require.Equal(t, Playing, b.Open(1, 1))
		b.CycleFlag(0, 0)

		assert.Equal(t, Won, b.Chord(1, 1))
		tile, _ := b.Tile(4, 4)
		assert.Equal(t, Flagged, tile.Visibility())
		assert.Equal(t, 0, b.MinesLeft())
	})

	t.Run("misplaced flag loses", func(t *testing.T) {
		b := boardWithMines(5, 5, true, [2]int{0, 0}, [2]int{4, 4})
		require.Equal(t, Playing, b.Open(1, 1))
		b.CycleFlag(2, 2)

		assert.Equal(t, Lost, b.Chord(1, 1))
		x, y, ok := b.Detonation()
		assert.True(t, ok)
		assert.Equal(t, [2]int{0, 0}, [2]int{x, y})
	})

	t.Run("blank and closed tiles do nothing", func(t *testing.T) {
		b := boardWithMines(5, 5, true, [2]int{0, 0}, [2]int{4, 4})
		before := b.Grid()
		assert.Equal(t, Playing, b.Chord(1, 1))
		assert.Equal(t, Playing, b.Chord(-1, 7))
		assert.Equal(t, before, b.Grid())
	})
}

func TestCycleFlag(t *testing.T) {
	tests := []struct {
		name    string
		marks   bool
		x, y    int
		visits  []Visibility
		shown   []int
		trueCnt []int
	}{
		{
			name:    "marks on a mine",
			marks:   true,
			x:       0,
			y:       0,
			visits:  []Visibility{Flagged, Questioned, Closed, Flagged},
			shown:   []int{0, 1, 1, 0},
			trueCnt: []int{0, 1, 1, 0},
		},
		{
			name:    "no marks on a mine",
			marks:   false,
			x:       0,
			y:       0,
			visits:  []Visibility{Flagged, Closed, Flagged, Closed},
			shown:   []int{0, 1, 0, 1},
			trueCnt: []int{0, 1, 0, 1},
		},
		{
			name:    "marks on a safe tile",
			marks:   true,
			x:       3,
			y:       3,
			visits:  []Visibility{Flagged, Questioned, Closed},
			shown:   []int{0, 1, 1},
			trueCnt: []int{1, 1, 1},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b := boardWithMines(4, 4, test.marks, [2]int{0, 0})
			for i, want := range test.visits {
				b.CycleFlag(test.x, test.y)
				tile, _ := b.Tile(test.x, test.y)
				assert.Equal(t, want, tile.Visibility(), "step %d", i)
				assert.Equal(t, test.shown[i], b.MinesLeft(), "shown counter, step %d", i)
				assert.Equal(t, test.trueCnt[i], b.TrueMinesLeft(), "true counter, step %d", i)
			}
		})
	}
}

func TestCycleFlagOpenTile(t *testing.T) {
	b := boardWithMines(4, 4, true, [2]int{0, 0})
	b.Open(1, 0)
	b.CycleFlag(1, 0)
	tile, _ := b.Tile(1, 0)
	assert.Equal(t, Open, tile.Visibility())
	assert.Equal(t, 1, b.MinesLeft())
}

func TestRevealMines(t *testing.T) {
	b := boardWithMines(5, 5, false, [2]int{0, 0}, [2]int{4, 0}, [2]int{0, 4})
	b.CycleFlag(4, 0) // correct
	b.CycleFlag(2, 4) // wrong
	require.Equal(t, Lost, b.Open(0, 0))
	b.RevealMines()

	g := b.Grid()
	assert.Equal(t, ExplodedMine, g[0])
	assert.Equal(t, Flag, g[4])
	assert.Equal(t, UnflaggedMine, g[4*5+0])
	assert.Equal(t, WrongFlag, g[4*5+2])
	assert.Equal(t, Unknown, g[2*5+2])

	tile, _ := b.Tile(2, 4)
	assert.True(t, tile.CrossedOut())
	assert.Equal(t, Flagged, tile.Visibility())
	tile, _ = b.Tile(0, 4)
	assert.True(t, tile.Revealed())
	assert.Equal(t, Closed, tile.Visibility())
}

func TestGridHidesMines(t *testing.T) {
	b := boardWithMines(3, 3, true, [2]int{0, 0})
	require.Equal(t, Playing, b.Open(1, 1))
	b.CycleFlag(2, 0)
	b.CycleFlag(2, 0)
	b.CycleFlag(0, 2)

	g := b.Grid()
	assert.Equal(t, Grid{
		Unknown, Unknown, Question,
		Unknown, 1, Unknown,
		Flag, Unknown, Unknown,
	}, g)
	assert.Equal(t, "    ? \n  1   \n*     \n", g.ToString(3))
}
