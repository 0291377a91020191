package render

import (
	uv "github.com/charmbracelet/ultraviolet"
)

// TerminalSize returns the framebuffer size that fills a terminal of the
// given cell size. Each cell shows two vertically stacked pixels.
func TerminalSize(cols, rows int) (width, height int) {
	return cols, rows * 2
}

// Draw converts the framebuffer to half-block cells and draws them on the
// screen. Framebuffer row 2r is the foreground of terminal row r and row
// 2r+1 its background.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < fb.Width; col++ {
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: HexToRGBA(fb.At(col, topY)),
					Bg: HexToRGBA(fb.At(col, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}
