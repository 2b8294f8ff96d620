package world

import (
	"bufio"
	"io"

	"anttrail/internal/trail"
)

var antGlyphs = [...]byte{North: '^', East: '>', South: 'v', West: '<'}

// Render draws the grid row by row, north at the top: '.' is an empty cell,
// '*' is food and the ant is drawn as an arrow along its heading.
func (w *World) Render(out io.Writer) error {
	bw := bufio.NewWriter(out)
	for y := 0; y < w.cfg.Height; y++ {
		for x := 0; x < w.cfg.Width; x++ {
			p := trail.Position{X: x, Y: y}
			switch {
			case p == w.pos:
				bw.WriteByte(antGlyphs[w.heading])
			case w.food.Contains(p):
				bw.WriteByte('*')
			default:
				bw.WriteByte('.')
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
