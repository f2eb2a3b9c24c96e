package view

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"

	"gol/src/engine"
	"gol/src/universe"
)

//gocui view names
const (
	headerView   = "header"
	configView   = "configuration"
	statusView   = "status"
	universeView = "universe"
	helpView     = "help"
)

type keyBinding struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

//ConsoleUI is the interactive terminal UI
type ConsoleUI struct {
	e          *engine.Engine
	g          *gocui.Gui
	k          []keyBinding
	liveFiller string
	deadFiller string
}

var (
	runningStateDescr = map[engine.RunningState]string{
		engine.RunningStateManual:   aurora.Colorize("waiting", aurora.BlueFg).String(),
		engine.RunningStateStep:     "do the step",
		engine.RunningStateRun:      aurora.Colorize("running", aurora.CyanFg).String(),
		engine.RunningStateFinished: aurora.Colorize("finished", aurora.RedFg).String(),
	}
)

func NewConsoleUI() *ConsoleUI {
	var err error
	t := ConsoleUI{
		liveFiller: aurora.Green(string(universe.AliveGlyph)).BgBrightGreen().String(),
		deadFiller: "░",
	}

	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		log.Panicln(err)
	}
	t.g.Mouse = true
	t.k = t.keyBindings()
	t.g.SetManagerFunc(t.layout)
	for _, kb := range t.k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(_ *gocui.Gui, v *gocui.View) error { return h(v) }); err != nil {
			log.Panicln(err)
		}
	}
	return &t
}

func (t *ConsoleUI) keyBindings() []keyBinding {
	return []keyBinding{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{'n', "N", "Next step", t.cmdStep, ""},
		{'r', "R", "Run", t.cmdRun, ""},
		{'s', "S", "Stop", t.cmdStop, ""},
		{'c', "C", "Clear", t.cmdClear, ""},
		{'o', "O", "Reset to seed", t.cmdReset, ""},
		{'w', "W", "Settle with random", t.cmdSettleWithRandom, ""},
		{gocui.MouseLeft, "MOUSE", "Toggle the cell", t.cmdMouseClick, universeView},
	}
}

func (t *ConsoleUI) Register(e *engine.Engine) {
	t.e = e
}

//Start runs the UI main loop, blocks until exit
func (t *ConsoleUI) Start() {
	defer t.g.Close()
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		log.Panicln(err)
	}
}

func (t *ConsoleUI) Refresh() {
	//Update is required when called from the engine goroutine
	t.g.Update(func(g *gocui.Gui) error {
		t.renderUniverse(g)
		t.renderConfiguration(g)
		t.renderStatus(g)
		return nil
	})
}

//renderUniverse redraws the entire universe, the part that does not fit in the view is cropped
func (t *ConsoleUI) renderUniverse(g *gocui.Gui) {
	v, err := g.View(universeView)
	if err != nil {
		return
	}
	v.Clear()

	width, cells := t.e.Cells()
	height := len(cells) / width
	maxW, maxH := v.Size()
	crop := width > maxW || height > maxH

	var b bytes.Buffer
	for row := 0; row < height && row < maxH; row++ {
		if row != 0 {
			b.WriteByte('\n')
		}
		if crop && row == maxH-1 {
			b.WriteString(aurora.Red("The universe is larger than the viewing area").BgBlack().String())
			break
		}
		for col := 0; col < width && col < maxW; col++ {
			if cells[row*width+col] == universe.Alive {
				b.WriteString(t.liveFiller)
			} else {
				b.WriteString(t.deadFiller)
			}
		}
	}
	_, _ = fmt.Fprint(v, b.String())
}

func (t *ConsoleUI) renderStatus(g *gocui.Gui) {
	v, err := g.View(statusView)
	if err != nil {
		return
	}
	s := t.e.Status()
	v.Clear()
	_, _ = fmt.Fprintln(v, renderProp("Step", "%v", s.IterationNum))
	_, _ = fmt.Fprintln(v, renderProp("Live Cells", "%v", s.LiveCells))
	_, _ = fmt.Fprintln(v, renderProp("Evaluation time", "%v", s.IterationTime.Round(time.Microsecond)))
	_, _ = fmt.Fprintln(v, renderProp("Mode", "%v", runningStateDescr[s.RunningMode]))
}

func (t *ConsoleUI) renderConfiguration(g *gocui.Gui) {
	v, err := g.View(configView)
	if err != nil {
		return
	}
	c := t.e.Options()
	w, h := t.e.Size()
	v.Clear()
	_, _ = fmt.Fprintln(v, renderProp("Dimension", "%v x %v", w, h))
	_, _ = fmt.Fprintln(v, renderProp("Interval", "%v", c.Interval))
	_, _ = fmt.Fprintln(v, renderProp("Iterations", "%v steps", c.MaxSteps))
	for k, val := range c.Advanced {
		_, _ = fmt.Fprintln(v, renderProp(k, "%v", val))
	}
}

func renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

//helpLine lists the key bindings
func helpLine(k []keyBinding) string {
	b := strings.Builder{}
	b.WriteString("KEYBINDINGS: ")
	for i, kb := range k {
		if i != 0 {
			b.WriteString(", ")
		}
		b.WriteString(aurora.Green(kb.name).String())
		b.WriteString(": ")
		b.WriteString(kb.descr)
	}
	return b.String()
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	leftColumnWidth := 28
	minWindowHeight := 20

	if maxY < minWindowHeight {
		if _, err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil && err != gocui.ErrUnknownView {
			return err
		}
		for _, name := range []string{configView, statusView, universeView, helpView} {
			_ = g.DeleteView(name)
		}
		return nil
	}
	if _, err := t.headerLayout(g, 3, "\"The Life\" on a torus"); err != nil && err != gocui.ErrUnknownView {
		return err
	}

	middle := 3 + (maxY-5-3)/2
	panes := []struct {
		name, title    string
		x0, y0, x1, y1 int
	}{
		{configView, "Configuration", 0, 3, leftColumnWidth, middle},
		{statusView, "Status", 0, middle + 1, leftColumnWidth, maxY - 5},
		{universeView, "Universe", leftColumnWidth + 1, 3, maxX - 1, maxY - 5},
	}
	for _, p := range panes {
		v, err := g.SetView(p.name, p.x0, p.y0, p.x1, p.y1)
		if err != nil {
			if err != gocui.ErrUnknownView || v == nil {
				return err
			}
			v.Title = p.title
			v.Frame = true
		}
	}
	t.renderConfiguration(g)
	t.renderStatus(g)
	t.renderUniverse(g)

	if v, err := g.SetView(helpView, -1, maxY-5, maxX, maxY-3); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		_, _ = fmt.Fprintln(v, helpLine(t.k))
	}
	return nil
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView(headerView, -1, -1, maxX+1, height); err != nil {
		if err == gocui.ErrUnknownView && v != nil {
			v.Frame = false
			v.BgColor = gocui.ColorCyan
			v.FgColor = gocui.ColorBlack
		}
	}
	if v != nil {
		v.Clear()
		pad := 0
		if maxX > len(text) {
			pad = (maxX - len(text)) / 2
		}
		_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2+1)+strings.Repeat(" ", pad)+text)
	}
	return
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	t.e.Stop()
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdStep(_ *gocui.View) error {
	t.e.Step()
	return nil
}

func (t *ConsoleUI) cmdRun(_ *gocui.View) error {
	t.e.Run()
	return nil
}

func (t *ConsoleUI) cmdStop(_ *gocui.View) error {
	t.e.Stop()
	return nil
}

func (t *ConsoleUI) cmdClear(_ *gocui.View) error {
	t.e.Clear()
	return nil
}

func (t *ConsoleUI) cmdReset(_ *gocui.View) error {
	t.e.Reset()
	return nil
}

func (t *ConsoleUI) cmdSettleWithRandom(_ *gocui.View) error {
	t.e.SettleWithRandomData()
	return nil
}

//cmdMouseClick toggles the clicked cell, the cursor x is the column and y is the row
func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	t.e.InverseCell(cy, cx)
	return nil
}
