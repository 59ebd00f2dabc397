// Package tui provides the BubbleTea terminal desktop the bouncing window lives on.
package tui

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"

	"github.com/jmylchreest/bouncy/internal/config"
	"github.com/jmylchreest/bouncy/internal/model"
	"github.com/jmylchreest/bouncy/internal/physics"
)

// tossSpan is the gesture length synthesized for a keyboard toss.
const tossSpan = time.Second

// session holds the mutable simulation shared by copies of Model.
type session struct {
	engine  *physics.Engine
	desktop *desktop
	start   time.Time
	now     func() time.Time

	// drag offset from the window origin to the pointer, in pixels
	grab model.Point

	lastSample model.Point
	bounces    int64

	// spring-smoothed speed for the status bar
	speedSpring harmonica.Spring
	speedShown  float64
	speedVel    float64
}

// timestamp returns milliseconds on the monotonic clock since start.
func (s *session) timestamp() int64 {
	return s.now().Sub(s.start).Milliseconds()
}

// Model is the main TUI model.
type Model struct {
	cfg    *config.Config
	logger *slog.Logger
	s      *session

	keys KeyMap
	help help.Model

	width  int
	height int
	ready  bool
}

// Options configure a new Model.
type Options struct {
	Config *config.Config
	Logger *slog.Logger
	// OnBounce receives every edge collision, e.g. to play a sound.
	OnBounce func(model.Bounce)
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// New creates a new TUI model.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	d := newDesktop(cfg.Terminal.CellWidth, cfg.Terminal.CellHeight, cfg.Window.Width, cfg.Window.Height)
	d.SetPosition(cfg.Window.StartX, cfg.Window.StartY)

	s := &session{
		desktop:     d,
		start:       now(),
		now:         now,
		speedSpring: harmonica.NewSpring(harmonica.FPS(fps(cfg.TickInterval())), 6.0, 1.0),
	}

	engineOpts := cfg.EngineOptions()
	engineOpts.Start = d.pos
	engineOpts.Logger = logger
	engineOpts.Hooks = physics.Hooks{
		OnSample: func(x, y int) {
			s.lastSample = model.Point{X: x, Y: y}
		},
		OnBounce: func(b model.Bounce) {
			s.bounces++
			if opts.OnBounce != nil {
				opts.OnBounce(b)
			}
		},
	}
	s.engine = physics.NewEngine(d, engineOpts)

	m := Model{
		cfg:    cfg,
		logger: logger,
		s:      s,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
	d.reserve(m.reservedRows())
	return m
}

func fps(interval time.Duration) int {
	if interval <= 0 {
		return 60
	}
	return max(1, int(time.Second/interval))
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.tickCmd(),
		tea.SetWindowTitle(m.cfg.Terminal.Title),
	)
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.s.engine.TickInterval(), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.s.desktop.resize(msg.Width, msg.Height)
		m.ready = true
		return m, nil

	case tickMsg:
		m.tick()
		return m, m.tickCmd()

	case configReloadedMsg:
		m.applyConfig(msg.cfg)
		return m, tea.SetWindowTitle(m.cfg.Terminal.Title)
	}

	return m, nil
}

// tick advances the simulation once the terminal size is known.
func (m *Model) tick() {
	if !m.ready {
		return
	}
	m.s.engine.HandleEvent(physics.TickEvent{})

	body := m.s.engine.Body()
	m.s.speedShown, m.s.speedVel = m.s.speedSpring.Update(m.s.speedShown, m.s.speedVel, body.Speed())
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.s.desktop.reserve(m.reservedRows())
		return m, nil

	case key.Matches(msg, m.keys.Toss):
		m.toss(rand.Intn(81)-40, -60-rand.Intn(31))
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		m.reset()
		return m, nil
	}

	return m, nil
}

// handleMouse turns left-button presses, motion and releases on the
// window into a drag gesture.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	d := m.s.desktop
	engine := m.s.engine

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !d.hit(msg.X, msg.Y) {
			return
		}
		// snap to where the window is drawn so the grab point is under the pointer
		col, row := d.windowCell()
		d.SetPosition(col*d.cellW, row*d.cellH)
		p := d.toPixels(msg.X, msg.Y)
		m.s.grab = model.Point{X: p.X - d.pos.X, Y: p.Y - d.pos.Y}
		engine.HandleEvent(physics.DragStartEvent{})

	case tea.MouseActionMotion:
		if engine.State() != physics.StateDragging {
			return
		}
		p := d.toPixels(msg.X, msg.Y)
		d.SetPosition(p.X-m.s.grab.X, p.Y-m.s.grab.Y)
		engine.HandleEvent(physics.SampleEvent{X: d.pos.X, Y: d.pos.Y, TimestampMs: m.s.timestamp()})

	case tea.MouseActionRelease:
		if engine.State() != physics.StateDragging {
			return
		}
		engine.HandleEvent(physics.DragEndEvent{X: d.pos.X, Y: d.pos.Y})
	}
}

// toss throws the window as if it had been dragged by (dx, dy) pixels
// over tossSpan.
func (m *Model) toss(dx, dy int) {
	engine := m.s.engine
	pos := m.s.desktop.pos
	ts := m.s.timestamp()

	engine.HandleEvent(physics.DragStartEvent{})
	engine.HandleEvent(physics.SampleEvent{X: pos.X, Y: pos.Y, TimestampMs: ts})
	engine.HandleEvent(physics.SampleEvent{X: pos.X + dx, Y: pos.Y + dy, TimestampMs: ts + tossSpan.Milliseconds()})
	engine.HandleEvent(physics.DragEndEvent{X: pos.X, Y: pos.Y})
}

// reset puts the window back at its start position, at rest.
func (m *Model) reset() {
	start := model.Point{X: m.cfg.Window.StartX, Y: m.cfg.Window.StartY}
	m.s.desktop.SetPosition(start.X, start.Y)
	m.s.engine.HandleEvent(physics.DragStartEvent{})
	m.s.engine.HandleEvent(physics.DragEndEvent{X: start.X, Y: start.Y})
	m.s.bounces = 0
}

// applyConfig applies the settings that can change at runtime. Physics
// constants are fixed for the lifetime of the engine.
func (m *Model) applyConfig(cfg *config.Config) {
	if cfg.Physics != m.cfg.Physics || cfg.Gesture != m.cfg.Gesture || cfg.Simulation != m.cfg.Simulation {
		m.logger.Info("physics settings changed; restart to apply")
	}

	next := *m.cfg
	next.Terminal = cfg.Terminal
	next.Audio = cfg.Audio
	// cell size is part of the geometry the engine has already seen
	next.Terminal.CellWidth = m.cfg.Terminal.CellWidth
	next.Terminal.CellHeight = m.cfg.Terminal.CellHeight
	m.cfg = &next
	m.s.desktop.reserve(m.reservedRows())
}

// Body returns the simulated window state.
func (m Model) Body() physics.BodyState {
	return m.s.engine.Body()
}

// Run starts the TUI with the given options.
func Run(opts RunOptions) error {
	m := New(Options{
		Config:   opts.Config,
		Logger:   opts.Logger,
		OnBounce: opts.OnBounce,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if opts.ConfigPath != "" {
		watcher, err := config.NewWatcher(opts.ConfigPath, func(cfg *config.Config) {
			p.Send(configReloadedMsg{cfg: cfg})
			if opts.OnConfig != nil {
				opts.OnConfig(cfg)
			}
		}, opts.Logger)
		if err != nil {
			m.logger.Warn("failed to create config watcher", "error", err)
		} else {
			if err := watcher.Start(); err != nil {
				m.logger.Warn("failed to start config watcher", "error", err)
			}
			defer func() { _ = watcher.Stop() }()
		}
	}

	_, err := p.Run()
	return err
}

// RunOptions configures the TUI.
type RunOptions struct {
	Config     *config.Config
	ConfigPath string // Config file to watch for changes (empty = no watching)
	Logger     *slog.Logger
	OnBounce   func(model.Bounce)
	OnConfig   func(*config.Config) // Called after a successful reload
}
