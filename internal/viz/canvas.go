package viz

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Braille cells hold 2x4 dots:
// 1 4
// 2 5
// 3 6
// 7 8
const blank rune = 0x2800

var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille dot raster. Each cell keeps the colour of the last
// dot drawn into it.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]color.RGBA
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Colors: make([][]color.RGBA, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]color.RGBA, w)
	}
	c.Clear()
	return c
}

// Dots is the canvas size in dots.
func (c *Canvas) Dots() (int, int) { return c.Width * 2, c.Height * 4 }

// Set lights the dot at (x, y) in dot coordinates.
func (c *Canvas) Set(x, y int, col color.RGBA) {
	if x < 0 || y < 0 {
		return
	}
	cx, cy := x/2, y/4
	if cx >= c.Width || cy >= c.Height {
		return
	}
	if !isBraille(c.Grid[cy][cx]) {
		return
	}
	c.Grid[cy][cx] |= pixelMap[y%4][x%2]
	c.Colors[cy][cx] = col
}

// Lit reports whether the dot at (x, y) is set.
func (c *Canvas) Lit(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	r := c.Grid[y/4][x/2]
	return isBraille(r) && r&pixelMap[y%4][x%2] != 0
}

func isBraille(r rune) bool { return r >= blank && r <= blank+0xff }

// Text writes s into the cells of row y/4, centred on column x/2.
func (c *Canvas) Text(x, y int, s string, col color.RGBA) {
	runes := []rune(s)
	cy := y / 4
	if y < 0 || cy >= c.Height {
		return
	}
	start := x/2 - len(runes)/2
	for i, r := range runes {
		cx := start + i
		if cx < 0 || cx >= c.Width {
			continue
		}
		c.Grid[cy][cx] = r
		c.Colors[cy][cx] = col
	}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = color.RGBA{}
		}
	}
}

// DrawLine draws with Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col color.RGBA) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		c.Set(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// String is the plain braille text, one line per cell row.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Styled renders the canvas with each run of equally coloured cells in
// its colour.
func (c *Canvas) Styled() string {
	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.Colors[i][j] == c.Colors[i][start] {
				continue
			}
			run := string(row[start:j])
			if col := c.Colors[i][start]; col.A != 0 {
				run = lipgloss.NewStyle().Foreground(lipgloss.Color(hex(col))).Render(run)
			}
			b.WriteString(run)
			start = j
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Image rasterises the canvas with cell pixels per cell width and twice
// that per cell height, dots drawn as filled squares over bg.
func (c *Canvas) Image(cell int, bg color.RGBA) *image.RGBA {
	if cell < 2 {
		cell = 2
	}
	dotW, dotH := cell/2, cell/2
	img := image.NewRGBA(image.Rect(0, 0, c.Width*cell, c.Height*cell*2))
	for i := range img.Pix {
		switch i % 4 {
		case 0:
			img.Pix[i] = bg.R
		case 1:
			img.Pix[i] = bg.G
		case 2:
			img.Pix[i] = bg.B
		default:
			img.Pix[i] = 255
		}
	}
	w, h := c.Dots()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !c.Lit(x, y) {
				continue
			}
			col := c.Colors[y/4][x/2]
			col.A = 255
			for py := 0; py < dotH; py++ {
				for px := 0; px < dotW; px++ {
					img.SetRGBA(x*dotW+px, y*dotH+py, col)
				}
			}
		}
	}
	return img
}

func hex(c color.RGBA) string {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
