package view

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"gol/src/engine"
	"gol/src/universe"
)

func oscillatorEngine(t *testing.T, mod func(o *engine.Options)) *engine.Engine {
	t.Helper()
	tmpl, ok := universe.LookupTemplate("oscillator")
	if !ok {
		t.Fatal("oscillator template is missing")
	}
	o := engine.DefaultOptions
	o.Interval = 0
	if mod != nil {
		mod(&o)
	}
	return engine.New(tmpl.Universe(), &o, make(chan engine.Status, 1000))
}

func TestScreenDraw(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatal(err)
	}
	defer sim.Fini()
	sim.SetSize(8, 6)

	e := oscillatorEngine(t, nil)
	defer e.Close()
	sc := NewScreen(sim)
	sc.started = true //sim is initialized above
	e.RegisterViewer(sc)
	sc.Refresh()

	cells, w, h := sim.GetContents()
	if w != 8 || h != 6 {
		t.Fatalf("screen size %dx%d", w, h)
	}
	runeAt := func(x, y int) rune {
		c := cells[y*w+x]
		if len(c.Runes) == 0 {
			return ' '
		}
		return c.Runes[0]
	}
	if got := runeAt(1, 3); got != universe.AliveGlyph {
		t.Errorf("cell (3, 1) = %q, want alive glyph", got)
	}
	if got := runeAt(0, 0); got != '·' {
		t.Errorf("cell (0, 0) = %q, want dead glyph", got)
	}
	var status strings.Builder
	for x := 0; x < w; x++ {
		status.WriteRune(runeAt(x, h-1))
	}
	if !strings.HasPrefix(status.String(), " step 0") {
		t.Errorf("status line = %q", status.String())
	}
}

func TestScreenRefreshBeforeStart(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	e := oscillatorEngine(t, nil)
	defer e.Close()
	sc := NewScreen(sim)
	e.RegisterViewer(sc)

	//a settle queued before Start refreshes the viewer on an uninitialized screen
	e.SettleWithRandomData()
	e.Sync()
	sc.Refresh()
	if sc.started {
		t.Error("screen reported started before Start")
	}
}

func TestScreenStartQuits(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	e := oscillatorEngine(t, func(o *engine.Options) {
		o.Interval = 10 * time.Millisecond
		o.MaxSteps = 0
	})
	defer e.Close()
	sc := NewScreen(sim)
	e.RegisterViewer(sc)

	done := make(chan struct{})
	go func() {
		sc.Start()
		close(done)
	}()

	timeout := time.After(5 * time.Second)
	for running := false; !running; {
		select {
		case st := <-e.StateCh():
			running = st.RunningMode == engine.RunningStateRun
		case <-timeout:
			t.Fatal("simulation did not start")
		}
	}
	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("screen did not quit on q")
	}
}

func TestModeName(t *testing.T) {
	tests := map[engine.RunningState]string{
		engine.RunningStateManual:   "waiting",
		engine.RunningStateStep:     "step",
		engine.RunningStateRun:      "running",
		engine.RunningStateFinished: "finished",
	}
	for m, want := range tests {
		if got := modeName(m); got != want {
			t.Errorf("modeName(%v) = %q, want %q", m, got, want)
		}
	}
}
