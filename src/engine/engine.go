package engine

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"sync"
	"time"

	"gol/src/universe"
)

//Options represents the Engine's configurable options
type Options struct {
	Interval       time.Duration
	MaxSteps       int  //0 means unlimited
	StopWhenStable bool //finish when all cells are dead or a step changes nothing
	Seed           int64
	Logger         *log.Logger
	Advanced       map[string]interface{} //advanced options (shown by viewers)
}

//Status represents the status of the Engine at concrete moment
type Status struct {
	IterationNum  int
	RunningMode   RunningState
	LiveCells     int
	IterationTime time.Duration
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
type Viewer interface {
	Refresh()
	Register(e *Engine)
	Start()
}

//The engine running status at the concrete moment
type RunningState int

//default options
const (
	DefSimulationInterval = time.Millisecond * 500
	DefMaxSteps           = 30
)

const (
	RunningStateManual   RunningState = 0x0
	RunningStateStep     RunningState = 0x1
	RunningStateRun      RunningState = 0x2
	RunningStateFinished RunningState = 0x3
)

//ErrUnknownTemplate is returned by SettleTemplate for a name that is neither added nor built-in
var ErrUnknownTemplate = errors.New("unknown template")

var DefaultOptions = Options{
	Interval: DefSimulationInterval,
	MaxSteps: DefMaxSteps,
}

//Engine drives one universe
//it is the only owner of the universe: every mutation is executed by the main loop goroutine
type Engine struct {
	options Options
	state   struct {
		Status
		sync.Mutex
	}
	area struct {
		*universe.Universe
		sync.Mutex
	}
	seed      *universe.Universe
	stateCh   chan Status
	views     struct {
		list []Viewer
		sync.Mutex
	}
	templates map[string]universe.Template
	controlCh chan func()
	closeCh   chan bool
	rnd       *rand.Rand
	log       *log.Logger
}

//New creates the Engine instance and starts its main loop
//the engine takes the ownership of u, the caller should not touch it afterwards
//stateCh may be nil if nobody listens to the status updates
func New(u *universe.Universe, o *Options, stateCh chan Status) *Engine {
	if o == nil {
		d := DefaultOptions
		o = &d
	}
	seed := o.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	e := Engine{
		options:   *o,
		controlCh: make(chan func(), 1),
		closeCh:   make(chan bool, 1),
		stateCh:   stateCh,
		templates: map[string]universe.Template{},
		seed:      u.Clone(),
		rnd:       rand.New(rand.NewSource(seed)),
		log:       o.Logger,
	}
	if e.log == nil {
		e.log = log.New(io.Discard, "", 0)
	}
	e.options.Seed = seed
	e.options.Advanced = make(map[string]interface{}, len(o.Advanced))
	for k, v := range o.Advanced {
		e.options.Advanced[k] = v
	}
	e.area.Universe = u
	e.state.LiveCells = u.LiveCells()
	go e.mainLoop()
	return &e
}

//AddTemplate adds the seeding template to the internal storage
//the universe can be populated with this template by call SettleTemplate
func (e *Engine) AddTemplate(tmpl universe.Template) {
	e.templates[tmpl.Name] = tmpl
}

//Settle settles the universe with data
//vc - array of row, col coordinates
func (e *Engine) Settle(vc [][2]int) error {
	return e.settle(universe.Template{Coordinates: vc})
}

//SettleTemplate populates the universe with the seeding template
//built-in templates are found even if they were not added
func (e *Engine) SettleTemplate(name string) error {
	tmpl, ok := e.templates[name]
	if !ok {
		if tmpl, ok = universe.LookupTemplate(name); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
		}
	}
	return e.settle(tmpl)
}

func (e *Engine) settle(tmpl universe.Template) error {
	e.area.Lock()
	err := tmpl.Apply(e.area.Universe)
	live := e.area.LiveCells()
	e.area.Unlock()
	if err != nil {
		return err
	}
	e.setLiveCells(live)
	e.refreshView()
	return nil
}

//SettleWithRandomData clears the universe and populates it with random data, returns immediately
//ignored while the simulation is running
func (e *Engine) SettleWithRandomData() {
	if mode := e.mode(); mode == RunningStateManual || mode == RunningStateFinished {
		e.controlCh <- e.clear
		e.controlCh <- func() {
			e.area.Lock()
			w, h := e.area.Width(), e.area.Height()
			for i := 0; i < w*h/3; i++ {
				e.area.Bless(e.rnd.Intn(h), e.rnd.Intn(w))
			}
			live := e.area.LiveCells()
			e.area.Unlock()
			e.setLiveCells(live)
			e.refreshView()
		}
	}
}

//InverseCell inverses the cell state at row, col, returns immediately
//coordinates outside the universe are ignored
func (e *Engine) InverseCell(row int, col int) {
	e.controlCh <- func() {
		e.area.Lock()
		if !e.area.Contains(row, col) {
			e.area.Unlock()
			return
		}
		if e.area.Cell(row, col) == universe.Alive {
			e.area.Set(row, col, universe.Dead)
		} else {
			e.area.Set(row, col, universe.Alive)
		}
		live := e.area.LiveCells()
		e.area.Unlock()
		e.setLiveCells(live)
		e.refreshView()
	}
}

//RegisterViewer registers the viewer - the engine will call the viewer when the state is changed
//the viewer is registered before it is refreshed for the first time
func (e *Engine) RegisterViewer(v Viewer) {
	v.Register(e)
	e.views.Lock()
	e.views.list = append(e.views.list, v)
	e.views.Unlock()
}

//StateCh returns the channel with the engine's status updates
func (e *Engine) StateCh() chan Status {
	return e.stateCh
}

//Status returns current engine status represented by Status struct
func (e *Engine) Status() Status {
	e.state.Lock()
	defer e.state.Unlock()
	return e.state.Status
}

//Options returns current engine configuration represented by Options struct
func (e *Engine) Options() Options {
	return e.options
}

//Size returns the universe width and height
func (e *Engine) Size() (width int, height int) {
	e.area.Lock()
	defer e.area.Unlock()
	return e.area.Width(), e.area.Height()
}

//Render returns the current generation as text
func (e *Engine) Render() string {
	e.area.Lock()
	defer e.area.Unlock()
	return e.area.Render()
}

//Cells returns a copy of the current generation with its width
func (e *Engine) Cells() (width int, cells []universe.Cell) {
	e.area.Lock()
	defer e.area.Unlock()
	return e.area.Width(), e.area.Cells()
}

//Run starts the simulation, returns immediately
func (e *Engine) Run() {
	e.controlCh <- e.run
}

//Stop stops the simulation, returns immediately
//the Status struct will be written the stateCh on finish
func (e *Engine) Stop() {
	e.controlCh <- e.stop
}

//Step do one simulation step, returns immediately
//the Status struct will be written to the stateCh on start and on finish
func (e *Engine) Step() {
	e.controlCh <- e.step
}

//Clear clears the universe (kill all cells and reset all counters), returns immediately
//the Status struct will be written to the stateCh on finish
func (e *Engine) Clear() {
	e.controlCh <- e.clear
}

//Reset restores the generation the engine was created with and resets all counters, returns immediately
func (e *Engine) Reset() {
	e.controlCh <- func() {
		e.clear()
		e.area.Lock()
		e.area.Universe = e.seed.Clone()
		live := e.area.LiveCells()
		e.area.Unlock()
		e.setLiveCells(live)
		e.refreshView()
	}
}

//Sync blocks until every command queued before it has been executed
func (e *Engine) Sync() {
	done := make(chan struct{})
	e.controlCh <- func() { close(done) }
	<-done
}

//Close stops the main loop, returns immediately
func (e *Engine) Close() {
	e.closeCh <- true
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (e *Engine) mainLoop() {
	var c = false
	for !c {
		select {
		case cmd := <-e.controlCh:
			cmd()
		case c = <-e.closeCh:
		}
	}
}

func (e *Engine) mode() RunningState {
	e.state.Lock()
	defer e.state.Unlock()
	return e.state.RunningMode
}

func (e *Engine) setLiveCells(n int) {
	e.state.Lock()
	e.state.LiveCells = n
	e.state.Unlock()
}

//switchRunningState switch the state of the engine to RunningState
//also writes the new state to the stateCh to signal upper control software
func (e *Engine) switchRunningState(to RunningState) {
	e.publish(e.setRunningState(to))
}

func (e *Engine) setRunningState(to RunningState) Status {
	e.state.Lock()
	defer e.state.Unlock()
	e.state.RunningMode = to
	return e.state.Status
}

func (e *Engine) publish(st Status) {
	if e.stateCh != nil {
		e.stateCh <- st
	}
}

//run starts the simulation
//simulation will stop on Stop() calling or when the boundary conditions are reached
func (e *Engine) run() {
	if mode := e.mode(); mode == RunningStateRun || mode == RunningStateFinished {
		return
	}
	e.switchRunningState(RunningStateRun)
	go func() {
		done := make(chan bool)
		for e.mode() == RunningStateRun {
			e.controlCh <- func() {
				if e.mode() == RunningStateRun {
					e.step()
				}
				done <- true
			}
			<-done
			if e.mode() == RunningStateRun && e.options.Interval > 0 {
				time.Sleep(e.options.Interval)
			}
		}
	}()
}

//stop stops the running cycle
func (e *Engine) stop() {
	if e.mode() == RunningStateRun {
		e.switchRunningState(RunningStateManual)
	}
}

//step calculates the next generation for the entire universe
func (e *Engine) step() {
	rm := e.mode()
	if rm == RunningStateFinished {
		return
	}

	e.state.Lock()
	e.state.IterationNum++
	iter := e.state.IterationNum
	e.state.Unlock()

	e.switchRunningState(RunningStateStep)

	e.area.Lock()
	start := time.Now()
	live, changed := e.area.Evolve()
	elapsed := time.Since(start)
	e.area.Unlock()

	e.state.Lock()
	e.state.LiveCells = live
	e.state.IterationTime = elapsed
	e.state.Unlock()

	finished := false
	switch {
	case e.options.MaxSteps > 0 && iter >= e.options.MaxSteps:
		e.log.Printf("reached %d steps", iter)
		finished = true
	case e.options.StopWhenStable && live == 0:
		e.log.Printf("all cells are dead at step %d", iter)
		finished = true
	case e.options.StopWhenStable && !changed:
		e.log.Printf("universe is stable at step %d", iter)
		finished = true
	}

	to := rm
	if finished {
		to = RunningStateFinished
	}
	//viewers are refreshed before the status goes out, so a listener waiting for
	//RunningStateFinished sees the last generation already displayed
	st := e.setRunningState(to)
	e.refreshView()
	e.publish(st)
}

//clear kills all cells, reset all counters
func (e *Engine) clear() {
	e.state.Lock()
	e.area.Lock()

	e.state.IterationNum = 0
	e.state.LiveCells = 0
	e.state.IterationTime = 0
	e.area.Clear()

	e.area.Unlock()
	e.state.Unlock()
	st := e.setRunningState(RunningStateManual)
	e.refreshView()
	e.publish(st)
}

//refreshView calls Refresh event for all registered views
func (e *Engine) refreshView() {
	e.views.Lock()
	views := make([]Viewer, len(e.views.list))
	copy(views, e.views.list)
	e.views.Unlock()
	for _, v := range views {
		v.Refresh()
	}
}
