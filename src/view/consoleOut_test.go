package view

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"gol/src/engine"
	"gol/src/universe"
)

//runToFinish runs the engine until it reports the finish
//viewers are refreshed before that status is sent
func runToFinish(t *testing.T, e *engine.Engine) {
	t.Helper()
	timeout := time.After(5 * time.Second)
	e.Run()
	for {
		select {
		case st := <-e.StateCh():
			if st.RunningMode == engine.RunningStateFinished {
				return
			}
		case <-timeout:
			t.Fatal("timeout waiting for the finish")
		}
	}
}

func blinkerPhases() (horizontal string, vertical string) {
	tmpl, _ := universe.LookupTemplate("oscillator")
	u := tmpl.Universe()
	horizontal = u.Render()
	u.Tick()
	return horizontal, u.Render()
}

func TestConsoleOut(t *testing.T) {
	horizontal, vertical := blinkerPhases()
	e := oscillatorEngine(t, func(o *engine.Options) { o.MaxSteps = 2 })
	defer e.Close()

	var buf bytes.Buffer
	c := NewConsoleOut(&buf, false, false)
	e.RegisterViewer(c)
	if buf.Len() != 0 {
		t.Fatalf("non verbose register printed %q", buf.String())
	}
	c.Start()
	runToFinish(t, e)

	out := buf.String()
	//2 steps show generations 0 and 1, the computed generation 2 is only counted
	if !strings.HasPrefix(out, horizontal+vertical+"Finished:\n") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	for _, s := range []string{"Last iteration: 2", "Live cells: 3", "Total time:"} {
		if !strings.Contains(out, s) {
			t.Errorf("summary misses %q:\n%s", s, out)
		}
	}
	if strings.Contains(out, "\x1B[") {
		t.Error("escape sequences written with ansi disabled")
	}
}

func TestConsoleOutVerbose(t *testing.T) {
	e := oscillatorEngine(t, func(o *engine.Options) {
		o.MaxSteps = 3
		o.Advanced = map[string]interface{}{"Pattern": "oscillator"}
	})
	defer e.Close()

	var buf bytes.Buffer
	c := NewConsoleOut(&buf, true, true)
	e.RegisterViewer(c)
	for _, s := range []string{"Running configuration:", "Dimension: 5 x 5", "Max iterations: 3 steps", "Pattern"} {
		if !strings.Contains(buf.String(), s) {
			t.Errorf("configuration misses %q:\n%s", s, buf.String())
		}
	}
	c.Start()
	runToFinish(t, e)

	out := buf.String()
	if got := strings.Count(out, clearScreen); got != 3 {
		t.Errorf("screen cleared %d times, want 3", got)
	}
	for i := 1; i <= 3; i++ {
		if !strings.Contains(out, "Generation "+string(rune('0'+i))+" of 3") {
			t.Errorf("missing generation %d header", i)
		}
	}
	if strings.Contains(out, "Generation 4") {
		t.Error("printed a frame beyond the iterations count")
	}
}

func TestConsoleOutIgnoresRefreshBeforeStart(t *testing.T) {
	e := oscillatorEngine(t, nil)
	defer e.Close()

	var buf bytes.Buffer
	c := NewConsoleOut(&buf, false, false)
	e.RegisterViewer(c)
	if err := e.SettleTemplate("block"); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("printed before start: %q", buf.String())
	}
}

func TestConsoleOutFramesWithoutMaxSteps(t *testing.T) {
	tmpl, _ := universe.LookupTemplate("block")
	o := engine.DefaultOptions
	o.Interval = 0
	o.MaxSteps = 0
	o.StopWhenStable = true
	e := engine.New(tmpl.Universe(), &o, make(chan engine.Status, 100))
	defer e.Close()

	var buf bytes.Buffer
	c := NewConsoleOut(&buf, false, false)
	e.RegisterViewer(c)
	c.Start()
	runToFinish(t, e)

	//a stable finish still shows the generation it stopped at
	frame := e.Render()
	if !strings.HasPrefix(buf.String(), frame+frame+"Finished:\n") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}
