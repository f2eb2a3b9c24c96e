package universe

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

//Parse creates the universe from seed text
//the width is the longest line, the height is the lines count,
//every 'X' or 'x' is a live cell, anything else is dead
func Parse(r io.Reader) (*Universe, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	if !utf8.Valid(data) || bytes.IndexByte(data, 0) >= 0 {
		return nil, fmt.Errorf("%w: not a text seed", ErrMalformedSeed)
	}

	var (
		height  int
		width   int
		toBless [][2]int
	)
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 4096), len(data)+1)
	for sc.Scan() {
		col := 0
		for _, ch := range sc.Text() {
			if ch == 'X' || ch == 'x' {
				toBless = append(toBless, [2]int{height, col})
			}
			col++
		}
		if col > width {
			width = col
		}
		height++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSeed, err)
	}
	if width == 0 || height == 0 {
		return nil, ErrEmptySeed
	}

	u, err := New(width, height)
	if err != nil {
		return nil, err
	}
	for _, c := range toBless {
		u.Bless(c[0], c[1])
	}
	return u, nil
}

//ParseString is Parse for in-memory seeds
func ParseString(s string) (*Universe, error) {
	return Parse(strings.NewReader(s))
}

//Load reads the seed file at path
func Load(path string) (*Universe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed: %w", err)
	}
	defer f.Close()
	u, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("seed %s: %w", path, err)
	}
	return u, nil
}
