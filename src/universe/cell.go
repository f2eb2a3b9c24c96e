package universe

//Cell is the state of one universe cell
type Cell uint8

const (
	Dead  Cell = 0
	Alive Cell = 1
)

//glyphs used by Render
const (
	DeadGlyph  = ' '
	AliveGlyph = '⯀'
)

//Glyph returns the rune the cell is rendered with
func (c Cell) Glyph() rune {
	if c == Alive {
		return AliveGlyph
	}
	return DeadGlyph
}

func (c Cell) String() string {
	if c == Alive {
		return "alive"
	}
	return "dead"
}
