package viz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/lorenzdac/internal/calib"
	"github.com/san-kum/lorenzdac/internal/dac"
	"github.com/san-kum/lorenzdac/internal/driver"
)

const (
	scopeWidth      = 40
	scopeHeight     = 20
	historyCapacity = 120
	feedCapacity    = 4096
	frameInterval   = time.Second / 60
	persistence     = 90 // frames before the trace is wiped
)

type TickMsg time.Time

// doneMsg carries the driver loop's return value.
type doneMsg struct{ err error }

// feed buffers frames between the driver goroutine and the UI.
type feed struct {
	mu     sync.Mutex
	frames []driver.Frame
	seen   int
}

func (f *feed) OnTick(fr driver.Frame) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen++
	if len(f.frames) >= feedCapacity {
		f.frames = f.frames[1:]
	}
	f.frames = append(f.frames, fr)
}

func (f *feed) drain() ([]driver.Frame, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.frames
	f.frames = nil
	return out, f.seen
}

// Monitor shows a running Driver as an XY scope. The driver keeps its own
// loop, so each write is still followed by one interval sleep; the UI only
// drains the frames produced since the last redraw.
type Monitor struct {
	drv    *driver.Driver
	ctx    context.Context
	cancel context.CancelFunc
	feed   *feed
	box    calib.Box

	canvas  *Canvas
	history [2][]float64
	last    driver.Frame
	ticks   int
	prev    [2]int
	hasPrev bool
	frames  int
	frozen  bool
	theme   int
	styles  styles
	err     error
}

// NewMonitor calibrates drv if needed and attaches the monitor to it. The
// driver loop starts with the program and stops when ctx is done or the
// user quits.
func NewMonitor(ctx context.Context, drv *driver.Driver) (Monitor, error) {
	if drv.Phase() == driver.Calibrating {
		if _, err := drv.Calibrate(); err != nil {
			return Monitor{}, err
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	f := &feed{}
	drv.AddObserver(f)

	return Monitor{
		drv:    drv,
		ctx:    ctx,
		cancel: cancel,
		feed:   f,
		box:    drv.Box(),
		canvas: NewCanvas(scopeWidth, scopeHeight),
		styles: newStyles(Themes[0]),
	}, nil
}

// WithTheme selects the named theme, falling back to the first.
func (m Monitor) WithTheme(name string) Monitor {
	t := GetTheme(name)
	for i := range Themes {
		if Themes[i].Name == t.Name {
			m.theme = i
		}
	}
	m.styles = newStyles(t)
	return m
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// drive runs the driver loop on a command goroutine.
func (m Monitor) drive() tea.Cmd {
	return func() tea.Msg {
		return doneMsg{err: m.drv.Run(m.ctx)}
	}
}

func (m Monitor) Init() tea.Cmd {
	return tea.Batch(m.drive(), tick())
}

// Stop cancels the driver loop.
func (m Monitor) Stop() { m.cancel() }

// Update handles input events and drains the driver's frames.
func (m Monitor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancel()
			return m, tea.Quit
		case " ":
			m.frozen = !m.frozen
		case "c":
			m.canvas.Clear()
			m.hasPrev = false
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
			m.styles = newStyles(Themes[m.theme])
		}
	case TickMsg:
		m.refresh()
		return m, tick()
	case doneMsg:
		m.refresh()
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) && !errors.Is(msg.err, context.DeadlineExceeded) {
			m.err = msg.err
		}
		m.cancel()
		return m, tea.Quit
	}
	return m, nil
}

func (m *Monitor) refresh() {
	frames, seen := m.feed.drain()
	m.ticks = seen
	if m.frozen {
		return
	}

	m.frames++
	if m.frames%persistence == 0 {
		m.canvas.Clear()
		m.hasPrev = false
	}
	for _, f := range frames {
		m.plot(f)
	}
}

func (m *Monitor) plot(f driver.Frame) {
	x, y := m.canvas.Project(f.Codes[0], f.Codes[1], dac.MaxCode)
	if m.hasPrev {
		m.canvas.DrawLine(m.prev[0], m.prev[1], x, y)
	} else {
		m.canvas.Set(x, y)
	}
	m.prev = [2]int{x, y}
	m.hasPrev = true
	m.last = f

	for ch := 0; ch < 2; ch++ {
		m.history[ch] = append(m.history[ch], float64(f.Codes[ch]))
		if len(m.history[ch]) > historyCapacity {
			m.history[ch] = m.history[ch][1:]
		}
	}
}

// Err returns the write error that stopped the driver, if any.
func (m Monitor) Err() error { return m.err }

// Ticks is the number of ticks the driver has completed so far.
func (m Monitor) Ticks() int { return m.ticks }

func (m Monitor) View() string {
	st := m.styles
	scope := st.panel.Render(st.trace.Render(m.canvas.String()))

	var s strings.Builder
	status := "RUNNING"
	if m.frozen {
		status = "FROZEN"
	}
	s.WriteString(st.header.Render("LORENZ DAC  "+status) + "\n")

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("tick", fmt.Sprintf("%d", m.ticks))
	row("state", m.last.State.String())
	row("ch0", bar(m.last.Codes[0])+fmt.Sprintf(" %3d", m.last.Codes[0]))
	row("ch1", bar(m.last.Codes[1])+fmt.Sprintf(" %3d", m.last.Codes[1]))

	row("x range", fmt.Sprintf("%.2f .. %.2f", m.box.X.Min, m.box.X.Max))
	row("y range", fmt.Sprintf("%.2f .. %.2f", m.box.Y.Min, m.box.Y.Max))
	row("z range", fmt.Sprintf("%.2f .. %.2f", m.box.Z.Min, m.box.Z.Max))

	if len(m.history[0]) > 1 {
		chart := asciigraph.PlotMany(m.history[:],
			asciigraph.Height(6),
			asciigraph.Width(40),
			asciigraph.LowerBound(0),
			asciigraph.UpperBound(dac.MaxCode),
			asciigraph.SeriesColors(asciigraph.Green, asciigraph.Yellow),
			asciigraph.Caption("ch0 / ch1"))
		s.WriteString("\n" + chart + "\n")
	}

	if m.err != nil {
		s.WriteString("\n" + st.err.Render(m.err.Error()) + "\n")
	}
	s.WriteString(st.muted.Render("\nSP:Freeze C:Clear T:Theme(" + Themes[m.theme].Name + ") Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, scope, st.panel.Render(s.String()))
}

func bar(code uint8) string {
	const width = 16
	filled := int(code) * width / dac.MaxCode
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "]"
}
