package view

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/logrusorgru/aurora"

	"gol/src/engine"
)

//clearScreen moves the cursor home and erases the terminal
const clearScreen = "\x1B[2J\x1B[H"

//ConsoleOut prints every generation to the writer, clearing the screen before each of them
type ConsoleOut struct {
	sync.Mutex
	e         *engine.Engine
	w         io.Writer
	au        aurora.Aurora
	verbose   bool
	clear     bool
	started   bool
	printed   int //last printed iteration
	finished  bool
	startTime time.Time
}

//NewConsoleOut creates the console viewer
//ansi enables colors and the screen clearing between generations
func NewConsoleOut(w io.Writer, ansi bool, verbose bool) *ConsoleOut {
	return &ConsoleOut{
		w:       w,
		au:      aurora.NewAurora(ansi),
		verbose: verbose,
		clear:   ansi,
		printed: -1,
	}
}

func (c *ConsoleOut) Register(e *engine.Engine) {
	c.e = e
	if !c.verbose {
		return
	}
	o := e.Options()
	w, h := e.Size()
	fmt.Fprintln(c.w, c.au.Bold("Running configuration:"))
	fmt.Fprintf(c.w, "  Dimension: %v x %v\n", w, h)
	fmt.Fprintf(c.w, "  Interval: %v\n", o.Interval)
	fmt.Fprintf(c.w, "  Max iterations: %v steps\n", o.MaxSteps)
	c.printHashData(o.Advanced)
}

//Start prints the initial generation, later generations are printed on Refresh
//commands queued before Start (settling) are applied first
func (c *ConsoleOut) Start() {
	c.e.Sync()
	c.Lock()
	defer c.Unlock()
	c.startTime = time.Now()
	c.started = true
	c.printFrame(c.e.Status())
}

func (c *ConsoleOut) Refresh() {
	c.Lock()
	defer c.Unlock()
	if !c.started || c.finished {
		return
	}
	st := c.e.Status()
	if st.IterationNum != c.printed && !c.beyondLast(st) {
		c.printFrame(st)
	}
	if st.RunningMode == engine.RunningStateFinished {
		c.finished = true
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		resultData := map[string]interface{}{
			"Last iteration": st.IterationNum,
			"Total time":     totalTime,
			"Live cells":     st.LiveCells,
		}
		fmt.Fprintln(c.w, c.au.Red("Finished:"))
		c.printHashData(resultData)
	}
}

//beyondLast reports whether st is the generation computed after the last shown one:
//with N max steps the generations 0..N-1 are printed, N is only counted in the summary
func (c *ConsoleOut) beyondLast(st engine.Status) bool {
	max := c.e.Options().MaxSteps
	return st.RunningMode == engine.RunningStateFinished && max > 0 && st.IterationNum >= max
}

func (c *ConsoleOut) printFrame(st engine.Status) {
	if c.clear {
		fmt.Fprint(c.w, clearScreen)
	}
	if c.verbose {
		header := fmt.Sprintf("Generation %d", st.IterationNum+1)
		if max := c.e.Options().MaxSteps; max > 0 {
			header += fmt.Sprintf(" of %d", max)
		}
		fmt.Fprintln(c.w, c.au.Green(header))
	}
	fmt.Fprint(c.w, c.e.Render())
	c.printed = st.IterationNum
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		fmt.Fprintf(c.w, "  %s: %v\n", c.au.Cyan(propName), d[propName])
	}
}
