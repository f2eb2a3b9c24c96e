package view

import (
	"fmt"
	"log"
	"sync"

	"github.com/gdamore/tcell/v2"

	"gol/src/engine"
	"gol/src/universe"
)

var (
	liveStyle   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Background(tcell.ColorBlack)
	deadStyle   = tcell.StyleDefault.Foreground(tcell.ColorDarkGray).Background(tcell.ColorBlack)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorTeal)
)

//Screen draws the universe on a full-screen terminal and runs the simulation until it is quit
//q, Esc or Ctrl-C quits
type Screen struct {
	mu      sync.Mutex
	e       *engine.Engine
	s       tcell.Screen
	started bool //refreshes are dropped until the screen is initialized
}

//NewScreen creates the viewer on top of s, the screen is initialized by Start
func NewScreen(s tcell.Screen) *Screen {
	return &Screen{s: s}
}

func (sc *Screen) Register(e *engine.Engine) {
	sc.e = e
}

//Start runs the simulation and blocks until the user quits
func (sc *Screen) Start() {
	sc.mu.Lock()
	if err := sc.s.Init(); err != nil {
		sc.mu.Unlock()
		log.Panicln(err)
	}
	sc.started = true
	sc.s.Clear()
	sc.mu.Unlock()
	defer sc.fini()
	sc.Refresh()
	sc.e.Run()
	for {
		switch ev := sc.s.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			sc.s.Sync()
			sc.Refresh()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				sc.e.Stop()
				return
			}
		}
	}
}

func (sc *Screen) fini() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.started = false
	sc.s.Fini()
}

func (sc *Screen) Refresh() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if !sc.started {
		return
	}
	sc.draw()
	sc.s.Show()
}

//draw puts the cells and the status line on the screen
//cells that do not fit in the screen are not drawn
func (sc *Screen) draw() {
	maxW, maxH := sc.s.Size()
	width, cells := sc.e.Cells()
	for i, c := range cells {
		row, col := i/width, i%width
		if row >= maxH-1 || col >= maxW {
			continue
		}
		if c == universe.Alive {
			sc.s.SetContent(col, row, universe.AliveGlyph, nil, liveStyle)
		} else {
			sc.s.SetContent(col, row, '·', nil, deadStyle)
		}
	}

	st := sc.e.Status()
	line := fmt.Sprintf(" step %d  live %d  %s  q: quit", st.IterationNum, st.LiveCells, modeName(st.RunningMode))
	for x := 0; x < maxW; x++ {
		r := ' '
		if x < len(line) {
			r = rune(line[x])
		}
		sc.s.SetContent(x, maxH-1, r, nil, statusStyle)
	}
}

func modeName(m engine.RunningState) string {
	switch m {
	case engine.RunningStateStep:
		return "step"
	case engine.RunningStateRun:
		return "running"
	case engine.RunningStateFinished:
		return "finished"
	}
	return "waiting"
}
