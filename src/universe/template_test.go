package universe

import (
	"errors"
	"testing"
)

func TestTemplates(t *testing.T) {
	list := Templates()
	if len(list) != len(builtinTemplates) {
		t.Fatalf("got %d templates, want %d", len(list), len(builtinTemplates))
	}
	for i, tmpl := range list {
		if i > 0 && list[i-1].Name >= tmpl.Name {
			t.Errorf("templates are not sorted: %q before %q", list[i-1].Name, tmpl.Name)
		}
		u := tmpl.Universe()
		if u.LiveCells() != len(tmpl.Coordinates) {
			t.Errorf("%s: %d live cells, want %d", tmpl.Name, u.LiveCells(), len(tmpl.Coordinates))
		}
	}
	if _, ok := LookupTemplate("nope"); ok {
		t.Error("unknown template found")
	}
}

func TestTemplateApply(t *testing.T) {
	tmpl, _ := LookupTemplate("oscillator")
	u := MustNew(10, 10)
	if err := tmpl.Apply(u); err != nil {
		t.Fatal(err)
	}
	for _, c := range tmpl.Coordinates {
		if u.Cell(c[0], c[1]) != Alive {
			t.Errorf("cell %v should be alive", c)
		}
	}

	small := MustNew(3, 3)
	if err := tmpl.Apply(small); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Fatalf("err = %v, want ErrIndexOutOfBounds", err)
	}
	if small.LiveCells() != 0 {
		t.Error("failed apply must not settle any cell")
	}
}
