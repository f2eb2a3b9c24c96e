package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/integrii/flaggy"
	"github.com/logrusorgru/aurora"

	"gol/src/engine"
	"gol/src/universe"
	"gol/src/view"
)

const (
	modeConsole     = "console"
	modeScreen      = "screen"
	modeInteractive = "interactive"
)

var modes = []string{modeConsole, modeScreen, modeInteractive}

type EnvOptions struct {
	file       string
	pattern    string
	mode       string
	benchmark  bool
	verbose    bool
	randomData bool
}

func main() {
	eo, uo := initOptions()

	logger := log.New(io.Discard, "", 0)
	if eo.verbose {
		logger = log.New(os.Stderr, "gol: ", log.LstdFlags)
	}
	uo.Logger = logger

	u, err := loadUniverse(eo)
	if err != nil {
		log.Fatalf("cannot seed the universe: %v", err)
	}
	logger.Printf("universe %dx%d with %d live cells", u.Width(), u.Height(), u.LiveCells())

	if eo.benchmark {
		runBenchmark(os.Stdout, u, uo.MaxSteps, eo.verbose)
		return
	}

	var stateCh chan engine.Status
	if eo.mode == modeConsole {
		stateCh = make(chan engine.Status, 10) //the buffered channel to getting the engine status
	}
	e := engine.New(u, uo, stateCh)
	defer e.Close()

	var v engine.Viewer
	switch eo.mode {
	case modeInteractive:
		v = view.NewConsoleUI()
	case modeScreen:
		s, err := tcell.NewScreen()
		if err != nil {
			log.Fatalf("cannot open the screen: %v", err)
		}
		v = view.NewScreen(s)
	default:
		v = view.NewConsoleOut(os.Stdout, true, eo.verbose)
	}
	//viewers go first, so they see the random settle
	e.RegisterViewer(v)
	if eo.randomData {
		e.SettleWithRandomData()
	}

	if eo.mode == modeConsole {
		runConsole(e, v, stateCh)
	} else {
		v.Start()
	}
}

//runConsole prints the simulation until it is finished
//the engine refreshes its viewers before it reports RunningStateFinished,
//so the last generation and the summary are printed when this returns
func runConsole(e *engine.Engine, v engine.Viewer, stateCh chan engine.Status) {
	v.Start()
	e.Run()
	for st := range stateCh {
		if st.RunningMode == engine.RunningStateFinished {
			break
		}
	}
}

//loadUniverse reads the seed file, or creates the universe from the template when there is no file
func loadUniverse(eo *EnvOptions) (*universe.Universe, error) {
	if eo.file != "" {
		return universe.Load(eo.file)
	}
	tmpl, ok := universe.LookupTemplate(eo.pattern)
	if !ok {
		return nil, fmt.Errorf("unknown pattern %q", eo.pattern)
	}
	return tmpl.Universe(), nil
}

//runBenchmark advances the universe without rendering and sleeping and prints the measured time
func runBenchmark(w io.Writer, u *universe.Universe, iterations int, verbose bool) {
	fmt.Fprintf(w, "Running benchmark with %d iterations\n", iterations)
	if verbose {
		fmt.Fprintln(w, "Initial state:")
		fmt.Fprint(w, u.Render())
	}
	d := engine.Benchmark(u, iterations)
	if verbose {
		fmt.Fprintln(w, "End state:")
		fmt.Fprint(w, u.Render())
	}
	fmt.Fprintf(w, "Run %d iterations in %v\n", iterations, aurora.Bold(d))
}

func templateNames() []string {
	t := universe.Templates()
	names := make([]string, 0, len(t))
	for _, tmpl := range t {
		names = append(names, tmpl.Name)
	}
	return names
}

func initOptions() (eo *EnvOptions, uo *engine.Options) {
	o := engine.DefaultOptions
	uo = &o
	eo = &EnvOptions{pattern: "oscillator", mode: modeConsole}

	flaggy.SetName("gol")
	flaggy.SetDescription("Conway's Game of Life on a torus")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.AddPositionalValue(&eo.file, "file", 1, false, "File to seed the universe with, 'X' or 'x' is a live cell")
	flaggy.Duration(&uo.Interval, "i", "interval", "Time to sleep between renderings, for example 150ms")
	flaggy.Int(&uo.MaxSteps, "t", "iterations", "Number of iterations to run, 0 runs forever")
	flaggy.Bool(&eo.benchmark, "b", "benchmark", "Runs a benchmark (no rendering, no sleeping)")
	flaggy.Bool(&eo.verbose, "v", "verbose", "Be verbose")
	flaggy.Bool(&uo.StopWhenStable, "s", "stop-stable", "Stop when the universe dies out or stops changing")
	flaggy.Bool(&eo.randomData, "r", "random", "Settle with random data")
	flaggy.Int64(&uo.Seed, "e", "seed", "Random data seed, 0 seeds from the clock")
	flaggy.String(&eo.pattern, "p", "pattern", "Seed pattern when no file is given ["+strings.Join(templateNames(), "|")+"]")
	flaggy.String(&eo.mode, "m", "mode", "Output mode ["+strings.Join(modes, "|")+"]")

	flaggy.Parse()

	if !validMode(eo.mode) {
		flaggy.ShowHelpAndExit("unknown mode " + eo.mode)
	}
	if _, ok := universe.LookupTemplate(eo.pattern); !ok && eo.file == "" {
		flaggy.ShowHelpAndExit("unknown pattern " + eo.pattern)
	}
	if uo.MaxSteps < 0 {
		flaggy.ShowHelpAndExit("iterations must not be negative")
	}

	uo.Advanced = map[string]interface{}{"Mode": eo.mode}
	if eo.file != "" {
		uo.Advanced["Pattern"] = eo.file
	} else {
		uo.Advanced["Pattern"] = eo.pattern
	}
	return
}

func validMode(m string) bool {
	for _, v := range modes {
		if v == m {
			return true
		}
	}
	return false
}
