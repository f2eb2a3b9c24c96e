package universe

import (
	"errors"
	"fmt"
)

var (
	//ErrInvalidDimensions is returned when a universe is requested with width or height below 1
	ErrInvalidDimensions = errors.New("universe dimensions must be at least 1x1")
	//ErrIndexOutOfBounds is the panic value (wrapped) for coordinates outside the universe
	ErrIndexOutOfBounds = errors.New("index out of bounds")
	//ErrEmptySeed is returned when the seed text has no cells at all
	ErrEmptySeed = errors.New("empty seed")
	//ErrMalformedSeed is returned when the seed is not plain text
	ErrMalformedSeed = errors.New("malformed seed")
)

func outOfBounds(row int, col int, width int, height int) error {
	return fmt.Errorf("%w: row %d, col %d outside %dx%d universe", ErrIndexOutOfBounds, row, col, width, height)
}
