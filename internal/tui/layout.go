package tui

// Each tile is drawn two columns wide so emoji glyphs fit.
const (
	cellWidth    = 2
	headerHeight = 2
	footerHeight = 4
)

// Layout places a board of Width x Height tiles on the screen.
type Layout struct {
	OriginX, OriginY int
	Width, Height    int
	ScreenWidth      int
}

func layoutFor(screenW, screenH, boardW, boardH int) Layout {
	ox := max(0, (screenW-boardW*cellWidth)/2)
	oy := max(headerHeight, (screenH-boardH-footerHeight)/2)
	return Layout{
		OriginX:     ox,
		OriginY:     oy,
		Width:       boardW,
		Height:      boardH,
		ScreenWidth: screenW,
	}
}

// TileAt maps a screen cell to the tile drawn there.
func (l Layout) TileAt(sx, sy int) (x, y int, ok bool) {
	if sx < l.OriginX || sy < l.OriginY {
		return -1, -1, false
	}
	x, y = (sx-l.OriginX)/cellWidth, sy-l.OriginY
	if x >= l.Width || y >= l.Height {
		return -1, -1, false
	}
	return x, y, true
}

// ScreenPos is the leftmost screen cell of the tile at x, y.
func (l Layout) ScreenPos(x, y int) (sx, sy int) {
	return l.OriginX + x*cellWidth, l.OriginY + y
}

func (l Layout) headerRow() int { return l.OriginY - headerHeight }

func (l Layout) footerRow() int { return l.OriginY + l.Height + 1 }

// faceX is the column of the restart face in the header.
func (l Layout) faceX() int { return l.OriginX + l.Width*cellWidth/2 - 1 }

// OnFace reports whether the screen cell holds the restart face.
func (l Layout) OnFace(sx, sy int) bool {
	fx := l.faceX()
	return sy == l.headerRow() && (sx == fx || sx == fx+1)
}
