package universe

import "sort"

//Template represents the seeding template which can be used to settle the universe with predefined data
type Template struct {
	Name        string   //template name
	Descr       string   //template descr
	Width       int      //the smallest universe width the template fits in
	Height      int      //the smallest universe height the template fits in
	Coordinates [][2]int //array of [row, col] coordinates
}

var builtinTemplates = map[string]Template{
	"oscillator": {
		Name:        "oscillator",
		Descr:       "horizontal blinker, period 2",
		Width:       5,
		Height:      5,
		Coordinates: [][2]int{{3, 1}, {3, 2}, {3, 3}},
	},
	"block": {
		Name:        "block",
		Descr:       "2x2 still life",
		Width:       4,
		Height:      4,
		Coordinates: [][2]int{{1, 1}, {1, 2}, {2, 1}, {2, 2}},
	},
	"glider": {
		Name:        "glider",
		Descr:       "glider moving south-east across the torus",
		Width:       8,
		Height:      8,
		Coordinates: [][2]int{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}},
	},
	"sample": {
		Name:        "sample",
		Descr:       "the test sample with 3 patterns",
		Width:       40,
		Height:      15,
		Coordinates: [][2]int{{1, 1}, {2, 1}, {1, 2}, {2, 2}, {3, 3}, {2, 4}, {3, 4}, {3, 5}, {7, 10}, {7, 11}, {7, 12}},
	},
}

//Templates returns the built-in templates sorted by name
func Templates() []Template {
	t := make([]Template, 0, len(builtinTemplates))
	for _, v := range builtinTemplates {
		t = append(t, v)
	}
	sort.Slice(t, func(i, j int) bool { return t[i].Name < t[j].Name })
	return t
}

//LookupTemplate finds the built-in template by name
func LookupTemplate(name string) (Template, bool) {
	t, ok := builtinTemplates[name]
	return t, ok
}

//Universe creates the universe of the template size settled with the template
func (t Template) Universe() *Universe {
	u := MustNew(t.Width, t.Height)
	for _, c := range t.Coordinates {
		u.Bless(c[0], c[1])
	}
	return u
}

//Apply blesses the template cells in u
//all coordinates are checked first, so the universe is untouched when any of them is out of range
func (t Template) Apply(u *Universe) error {
	for _, c := range t.Coordinates {
		if !u.Contains(c[0], c[1]) {
			return outOfBounds(c[0], c[1], u.width, u.height)
		}
	}
	for _, c := range t.Coordinates {
		u.Bless(c[0], c[1])
	}
	return nil
}
