package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/vancomm/minefield/internal/mines"
)

var (
	styleBase    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	styleClosed  = tcell.StyleDefault.Background(tcell.ColorGray)
	styleOpen    = tcell.StyleDefault.Background(tcell.ColorSilver)
	stylePressed = tcell.StyleDefault.Background(tcell.ColorDarkGray)
	styleDim     = styleBase.Foreground(tcell.ColorGray)
	styleCounter = styleBase.Foreground(tcell.ColorRed).Bold(true)
)

var numberColors = [...]tcell.Color{
	1: tcell.ColorBlue,
	2: tcell.ColorGreen,
	3: tcell.ColorRed,
	4: tcell.ColorNavy,
	5: tcell.ColorMaroon,
	6: tcell.ColorTeal,
	7: tcell.ColorBlack,
	8: tcell.ColorDimGray,
}

// glyph returns what a tile looks like.
func glyph(s mines.CellStatus) (string, tcell.Style) {
	switch s {
	case mines.Unknown:
		return "", styleClosed
	case mines.Flag:
		return "🚩", styleClosed
	case mines.Question:
		return "❓", styleClosed
	case mines.ExplodedMine:
		return "💥", styleOpen.Background(tcell.ColorRed)
	case mines.UnflaggedMine:
		return "💣", styleOpen
	case mines.WrongFlag:
		return "❌", styleClosed
	case 0:
		return "", styleOpen
	case 1, 2, 3, 4, 5, 6, 7, 8:
		return fmt.Sprint(int(s)), styleOpen.Foreground(numberColors[s]).Bold(true)
	default:
		return "?", styleBase
	}
}

func face(status mines.Status, pressed bool) string {
	switch {
	case status == mines.Won:
		return "😎"
	case status == mines.Lost:
		return "😵"
	case pressed:
		return "😮"
	default:
		return "🙂"
	}
}

// putGlyph draws glyph in a tile-wide cell at x, y, padding narrow glyphs.
func putGlyph(scr tcell.Screen, x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		runes = []rune{' '}
	}
	scr.SetContent(x, y, runes[0], runes[1:], style)
	for i := runewidth.StringWidth(string(runes)); i < cellWidth; i++ {
		scr.SetContent(x+i, y, ' ', nil, style)
	}
}

// putText writes s starting at x, y and returns the column after it.
func putText(scr tcell.Screen, x, y int, s string, style tcell.Style) int {
	sw, _ := scr.Size()
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if x+w > sw {
			break
		}
		scr.SetContent(x, y, r, nil, style)
		x += max(w, 1)
	}
	return x
}

// putCentered writes s centred on the screen row y.
func putCentered(scr tcell.Screen, y int, s string, style tcell.Style) {
	sw, _ := scr.Size()
	putText(scr, max(0, (sw-runewidth.StringWidth(s))/2), y, s, style)
}

func (a *App) draw() {
	scr := a.screen
	scr.SetStyle(styleBase)
	scr.Clear()

	s := a.session
	l := a.layout()
	px, py, pressed := s.Pressed()

	// header: mines left, face, time
	hy := l.headerRow()
	putText(scr, l.OriginX, hy, fmt.Sprintf("%03d", max(-99, s.MinesLeft())), styleCounter)
	putGlyph(scr, l.faceX(), hy, face(s.Status(), pressed), styleBase)
	elapsed := fmt.Sprintf("%03d", s.Elapsed())
	putText(scr, l.OriginX+l.Width*cellWidth-runewidth.StringWidth(elapsed), hy, elapsed, styleCounter)

	grid := s.Grid()
	cx, cy := a.input.Cursor()
	for y := range l.Height {
		for x := range l.Width {
			g, style := glyph(grid[y*l.Width+x])
			if pressed && x == px && y == py {
				g, style = "", stylePressed
			}
			if x == cx && y == cy {
				style = style.Underline(true).Bold(true)
				if g == "" {
					g = "·"
				}
			}
			sx, sy := l.ScreenPos(x, y)
			putGlyph(scr, sx, sy, g, style)
		}
	}

	fy := l.footerRow()
	marks := "off"
	if s.Marks() {
		marks = "on"
	}
	putCentered(scr, fy, fmt.Sprintf("%s %s  marks %s", s.Policy().Level(), s.Params().Seed(), marks), styleDim)
	putCentered(scr, fy+1, "space open  f flag  d chord  r restart  1-5 level  m marks  s save  q quit", styleDim)
	if a.message != "" {
		putCentered(scr, fy+2, a.message, styleBase)
	}
	scr.Show()
}
