package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"github.com/wippyai/canvas-host/canvas"
	"github.com/wippyai/canvas-host/host"
	"github.com/wippyai/canvas-host/input"
	"github.com/wippyai/canvas-host/session"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	statStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// hudLines is the number of terminal rows above and below the canvas.
const hudLines = 2

// controlWidth is the fraction of the canvas width each scroll control
// covers at the left and right edge.
const controlWidth = 5

type keyMap struct {
	Quit  key.Binding
	Orbit key.Binding
	Zoom  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Orbit, k.Zoom, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Quit:  key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	Orbit: key.NewBinding(key.WithKeys("left", "right", "a", "d"), key.WithHelp("←/→", "orbit")),
	Zoom:  key.NewBinding(key.WithKeys("up", "down", "w", "s"), key.WithHelp("↑/↓", "zoom")),
}

type frameMsg time.Time

type sessionMsg started

type interactiveModel struct {
	err     error
	loop    *host.Loop
	surface *canvas.Surface
	session *session.Session
	start   chan started
	help    help.Model
	layout  input.Layout
	pressed input.Direction
	cols    int
	rows    int
	fps     int
}

func newInteractiveModel(loop *host.Loop, surface *canvas.Surface, start chan started, fps int) *interactiveModel {
	return &interactiveModel{
		loop:    loop,
		surface: surface,
		start:   start,
		help:    help.New(),
		fps:     max(fps, 1),
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return tea.Batch(m.waitSession, m.nextFrame())
}

func (m *interactiveModel) waitSession() tea.Msg {
	return sessionMsg(<-m.start)
}

func (m *interactiveModel) nextFrame() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionMsg:
		m.session, m.err = msg.session, msg.err
		return m, nil

	case frameMsg:
		return m, m.nextFrame()

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.BlurMsg:
		m.pressed = input.DirNone
		m.loop.Dispatch(host.Blur())
		return m, nil

	case tea.FocusMsg:
		m.loop.Dispatch(host.Visible())
		return m, nil

	case tea.MouseMsg:
		m.mouse(msg)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}
		if events, ok := keyTap(msg); ok {
			for _, ev := range events {
				m.loop.Dispatch(host.KeyEvent(ev))
			}
		}
		return m, nil
	}
	return m, nil
}

// resize measures the canvas in half-block pixels: two per terminal row.
func (m *interactiveModel) resize(width, height int) {
	m.cols = width
	m.rows = max(height-hudLines, 1)
	edge := max(width/controlWidth, 1)
	m.layout = input.Layout{
		{Direction: input.DirLeft, X: 0, Y: 0, Width: edge, Height: m.rows},
		{Direction: input.DirRight, X: width - edge, Y: 0, Width: edge, Height: m.rows},
	}
	m.loop.Resize(canvas.Size{Width: m.cols, Height: m.rows * 2})
}

// mouse turns terminal mouse reports into control region events.
func (m *interactiveModel) mouse(msg tea.MouseMsg) {
	// Canvas rows start below the title line.
	dir := m.layout.HitTest(msg.X, msg.Y-1)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || dir == input.DirNone {
			return
		}
		m.pressed = dir
		m.point(input.MouseDown, dir)
	case tea.MouseActionRelease:
		if m.pressed != input.DirNone {
			m.point(input.MouseUp, m.pressed)
			m.pressed = input.DirNone
		}
	case tea.MouseActionMotion:
		if m.pressed != input.DirNone && dir != m.pressed {
			m.point(input.MouseLeave, m.pressed)
			m.pressed = input.DirNone
		}
	}
}

func (m *interactiveModel) point(typ input.PointerType, dir input.Direction) {
	m.loop.Dispatch(host.PointerEvent(input.PointerEvent{Type: typ, Target: dir}))
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Engine failed to start: %v", m.err)) + "\n\n" +
			helpStyle.Render("Press q to quit")
	}
	if m.session == nil || m.cols == 0 {
		return "Starting engine..."
	}

	st := m.session.Stats()
	var b strings.Builder
	b.WriteString(titleStyle.Render("canvas-host"))
	b.WriteString(" ")
	b.WriteString(statStyle.Render(fmt.Sprintf("%s  %s  frames %d  ticks %d  tick %.1f  delay %s",
		st.Backend, st.Size, st.Frames, st.Ticks, st.LastTick, st.LastDelay.Round(time.Microsecond))))
	if st.Input.Left {
		b.WriteString(" " + activeStyle.Render("◀"))
	}
	if st.Input.Right {
		b.WriteString(" " + activeStyle.Render("▶"))
	}
	if st.Errors > 0 {
		b.WriteString(" " + errorStyle.Render(fmt.Sprintf("errors %d", st.Errors)))
	}
	b.WriteString("\n")
	b.WriteString(halfBlock(m.surface.Snapshot(), m.cols, m.rows))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(keys) + " • hold the screen edges to scroll"))
	return b.String()
}

func runInteractive(opts options, logger *zap.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	size := windowSize(opts, int(os.Stdout.Fd()))
	size.Height = max(size.Height-hudLines, 1) * 2
	surface := canvas.NewSurface(canvas.Size{})

	mod, err := loadEngine(ctx, opts, surface, logger)
	if err != nil {
		return err
	}
	defer mod.Close(context.Background())

	probe, err := newProbe(opts.backend, termenv.ColorProfile(), logger)
	if err != nil {
		return err
	}

	loop := host.NewLoop(host.WithRefreshRate(opts.fps), host.WithWindowSize(size), host.WithLogger(logger.Named("loop")))
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	start := make(chan started, 1)
	var s *session.Session
	loop.Post(func() {
		var err error
		s, err = session.Initialize(ctx, loop, surface, probe, mod, session.WithRate(opts.rate))
		start <- started{session: s, err: err}
	})

	model := newInteractiveModel(loop, surface, start, min(opts.fps, 30))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithReportFocus())
	_, runErr := p.Run()

	cancel()
	<-done
	if s != nil {
		if err := s.Close(context.Background()); err != nil && runErr == nil {
			runErr = err
		}
	}
	return runErr
}
