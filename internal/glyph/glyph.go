// Package glyph converts between 12x15 pixel grids and network vectors.
//
// A grid is stored row-major: cell (x, y) is input index y*Width + x.
package glyph

import (
	"bufio"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

const (
	Width  = 12
	Height = 15
	// Size is the length of the network input vector for one grid.
	Size = Width * Height
)

// Alphabet maps output indices to letters.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

const (
	on  = '#'
	off = '.'
)

// Grid is a black and white pixel grid.
type Grid [Size]bool

// Set paints or erases cell (x, y). Cells outside the grid are ignored.
func (g *Grid) Set(x, y int, painted bool) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return
	}
	g[y*Width+x] = painted
}

// At reports whether cell (x, y) is painted.
func (g *Grid) At(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return g[y*Width+x]
}

// Clear erases every cell.
func (g *Grid) Clear() {
	*g = Grid{}
}

// Input returns the grid as a network input vector of 0s and 1s.
func (g *Grid) Input() []float64 {
	v := make([]float64, Size)
	for i, painted := range g {
		if painted {
			v[i] = 1
		}
	}
	return v
}

// String renders the grid as Height lines of Width characters.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((Width + 1) * Height)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if g.At(x, y) {
				sb.WriteByte(on)
			} else {
				sb.WriteByte(off)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FromInput builds a grid from a network input vector. Values of 0.5 and
// above are painted.
func FromInput(v []float64) (Grid, error) {
	var g Grid
	if len(v) != Size {
		return g, errors.Errorf("glyph: input has %d values, want %d", len(v), Size)
	}
	for i, x := range v {
		g[i] = x >= 0.5
	}
	return g, nil
}

// Parse reads a text grid. Each line is one row; '#', 'X', '*' and '1' paint
// a cell, '.', '0', '-' and spaces leave it blank. Short rows and missing
// trailing rows are blank.
func Parse(r io.Reader) (Grid, error) {
	var g Grid
	scanner := bufio.NewScanner(r)
	lines := make([]string, 0, Height)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRightFunc(scanner.Text(), unicode.IsSpace))
	}
	if err := scanner.Err(); err != nil {
		return g, errors.Wrap(err, "glyph: failed to read grid")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) > Height {
		return g, errors.Errorf("glyph: grid has %d rows, want at most %d", len(lines), Height)
	}

	for y, line := range lines {
		row := []rune(line)
		if len(row) > Width {
			return g, errors.Errorf("glyph: row %d has %d columns, want at most %d", y+1, len(row), Width)
		}
		for x, c := range row {
			switch c {
			case '#', 'X', 'x', '*', '1':
				g.Set(x, y, true)
			case '.', '0', '-', ' ':
			default:
				return g, errors.Errorf("glyph: row %d column %d: unexpected character %q", y+1, x+1, c)
			}
		}
	}
	return g, nil
}

// ParseFile reads a text grid from filename.
func ParseFile(filename string) (Grid, error) {
	file, err := os.Open(filename)
	if err != nil {
		return Grid{}, errors.Wrap(err, "glyph: failed to open grid")
	}
	defer file.Close()
	return Parse(file)
}

// OneHot returns the target vector for letter: 1 at its alphabet index and
// 0 elsewhere. Lower case letters are accepted.
func OneHot(letter rune) ([]float64, error) {
	i := strings.IndexRune(Alphabet, unicode.ToUpper(letter))
	if i < 0 {
		return nil, errors.Errorf("glyph: %q is not a letter of the alphabet", letter)
	}
	v := make([]float64, len(Alphabet))
	v[i] = 1
	return v, nil
}
