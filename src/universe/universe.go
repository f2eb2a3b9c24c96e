package universe

import (
	"fmt"
	"strings"
)

//Universe is the toroidal field where cells are living
//cells are stored row-major in one flat buffer, index = row*width + col
type Universe struct {
	width  int
	height int
	cells  []Cell
	next   []Cell //scratch buffer for the next generation
}

//New creates the universe with all cells dead
func New(width int, height int) (*Universe, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Universe{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
		next:   make([]Cell, width*height),
	}, nil
}

//MustNew is like New but panics on invalid dimensions
func MustNew(width int, height int) *Universe {
	u, err := New(width, height)
	if err != nil {
		panic(err)
	}
	return u
}

func (u *Universe) Width() int {
	return u.width
}

func (u *Universe) Height() int {
	return u.height
}

//Cells returns a copy of the current generation
func (u *Universe) Cells() []Cell {
	c := make([]Cell, len(u.cells))
	copy(c, u.cells)
	return c
}

//Contains reports whether row, col addresses a cell of the universe
func (u *Universe) Contains(row int, col int) bool {
	return row >= 0 && col >= 0 && row < u.height && col < u.width
}

//index panics if row, col is outside the universe
func (u *Universe) index(row int, col int) int {
	if !u.Contains(row, col) {
		panic(outOfBounds(row, col, u.width, u.height))
	}
	return row*u.width + col
}

//Cell returns the state of the cell at row, col
func (u *Universe) Cell(row int, col int) Cell {
	return u.cells[u.index(row, col)]
}

//Bless makes the cell at row, col alive
func (u *Universe) Bless(row int, col int) {
	u.Set(row, col, Alive)
}

//Set stores the cell state at row, col
func (u *Universe) Set(row int, col int, c Cell) {
	u.cells[u.index(row, col)] = c
}

//Clear kills all cells
func (u *Universe) Clear() {
	for i := range u.cells {
		u.cells[i] = Dead
	}
}

//LiveCells returns the count of live cells
func (u *Universe) LiveCells() int {
	n := 0
	for _, c := range u.cells {
		if c == Alive {
			n++
		}
	}
	return n
}

//Clone returns an independent copy of the universe
func (u *Universe) Clone() *Universe {
	c := MustNew(u.width, u.height)
	copy(c.cells, u.cells)
	return c
}

//NeighborCount counts live cells among the 8 neighbours of row, col
//the edges wrap, so on a 1-wide or 1-tall universe the same cell may be counted more than once
func (u *Universe) NeighborCount(row int, col int) int {
	u.index(row, col)
	count := 0
	for dr := -1; dr < 2; dr++ {
		for dc := -1; dc < 2; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r := wrapOffset(row, u.height, dr)
			c := wrapOffset(col, u.width, dc)
			count += int(u.cells[r*u.width+c])
		}
	}
	return count
}

//Tick advances the universe by one generation
func (u *Universe) Tick() {
	u.Evolve()
}

//Evolve advances the universe by one generation and reports
//the live cells count of the new generation and whether any cell has changed
//every cell is computed from the current buffer into the scratch buffer, then the buffers are swapped
func (u *Universe) Evolve() (live int, changed bool) {
	for row := 0; row < u.height; row++ {
		for col := 0; col < u.width; col++ {
			i := row*u.width + col
			cur := u.cells[i]
			nxt := nextState(cur, u.NeighborCount(row, col))
			if nxt == Alive {
				live++
			}
			changed = changed || nxt != cur
			u.next[i] = nxt
		}
	}
	u.cells, u.next = u.next, u.cells
	return
}

//nextState applies the B3/S23 rule
func nextState(c Cell, liveNeighbours int) Cell {
	switch {
	case c == Alive && liveNeighbours < 2:
		return Dead
	case c == Alive && (liveNeighbours == 2 || liveNeighbours == 3):
		return Alive
	case c == Alive && liveNeighbours > 3:
		return Dead
	case c == Dead && liveNeighbours == 3:
		return Alive
	}
	return c
}

//Render returns the universe as text, one line per row, each line terminated by '\n'
func (u *Universe) Render() string {
	var b strings.Builder
	b.Grow(u.height * (u.width*len(string(AliveGlyph)) + 1))
	for row := 0; row < u.height; row++ {
		for _, c := range u.cells[row*u.width : (row+1)*u.width] {
			b.WriteRune(c.Glyph())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (u *Universe) String() string {
	return u.Render()
}
