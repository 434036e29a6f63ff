package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Round is the engine surface the platform drives: one Step per tick with
// the keys gathered since the previous tick.
type Round interface {
	ID() string
	Reset(cfg core.RuntimeConfig)
	Step(now time.Time, in core.InputFrame) core.StepResult
	Render(dst *core.Screen)
	Frame() []string
	State() core.GameState
	Elapsed() time.Duration
}

// Options configure the play model. Zero values are usable.
type Options struct {
	Store   *storage.Store // nil disables score saving
	Logger  *log.Logger    // nil discards logs
	Keys    KeyMap
	Runtime core.RuntimeConfig

	// FrameW and FrameH are the smallest screen the round fits on.
	FrameW, FrameH int
}

// Model is the Bubble Tea model for running a round.
type Model struct {
	round  Round
	screen *core.Screen
	store  *storage.Store
	logger *log.Logger
	keys   KeyMap
	help   help.Model
	config core.RuntimeConfig

	frameW, frameH int

	input      core.InputFrame
	state      core.GameState
	highScore  int
	scoreSaved bool // Whether the finished round has been recorded
	tooSmall   bool
	autoPaused bool // Paused by a shrinking window, not the player
	quitting   bool
	notice     string
}

// NewModel creates a new Bubble Tea model for the given round.
func NewModel(round Round, opts Options) Model {
	cfg := opts.Runtime
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	keys := opts.Keys
	if len(keys.Exit.Keys()) == 0 {
		keys = DefaultKeyMap()
	}

	m := Model{
		round:  round,
		screen: core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpHeight, 0)),
		store:  opts.Store,
		logger: logger,
		keys:   keys,
		help:   help.New(),
		config: cfg,
		frameW: opts.FrameW,
		frameH: opts.FrameH,
		input:  core.NewInputFrame(),
	}
	m.tooSmall = !m.fits(cfg.ScreenW, cfg.ScreenH)

	if m.store != nil {
		if hs, err := m.store.HighScore(round.ID()); err == nil {
			m.highScore = hs
		} else {
			m.logger.Warn("cannot read high score", "err", err)
		}
	}

	return m
}

// helpHeight is the number of rows below the playfield: status and help.
const helpHeight = 2

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.round.Reset(m.config)
	m.logger.Info("round started", "game", m.round.ID(), "seed", m.config.Seed)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey queues the action for the next tick. Keys arrive between ticks
// and are applied in arrival order.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action := m.keys.Action(msg)
	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionExit:
		// A finished round has nothing left to step.
		if !m.state.Running() {
			m.quitting = true
			return m, tea.Quit
		}
	case core.ActionTogglePause:
		m.autoPaused = false
	}

	m.input.Push(action)
	return m, nil
}

// handleResize processes window resize events. The round keeps its state.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-helpHeight, 0))
	m.help.Width = msg.Width

	m.tooSmall = !m.fits(msg.Width, msg.Height)
	return m, nil
}

// syncPause pauses the round while the window is too small and resumes it
// once the window grows back, unless the player paused it themselves.
func (m *Model) syncPause() {
	if !m.state.Running() {
		return
	}
	switch {
	case m.tooSmall && !m.state.Paused && !m.input.Has(core.ActionTogglePause):
		m.input.Push(core.ActionTogglePause)
		m.autoPaused = true
		m.logger.Debug("window too small, pausing", "w", m.config.ScreenW, "h", m.config.ScreenH)
	case !m.tooSmall && m.state.Paused && m.autoPaused && !m.input.Has(core.ActionTogglePause):
		m.input.Push(core.ActionTogglePause)
		m.autoPaused = false
	}
}

func (m Model) fits(w, h int) bool {
	return w >= m.frameW && h >= m.frameH+helpHeight
}

// handleTick steps the round with the queued actions.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.input.Has(core.ActionRestart) && !m.state.Running() && !m.state.Exited {
		m.restart()
		return m, tickCmd(m.config.TickRate)
	}

	m.syncPause()
	result := m.round.Step(now, m.input)
	m.state = result.State
	m.input.Clear()

	if result.Cleared > 0 {
		m.logger.Debug("lines cleared", "lines", result.Cleared,
			"total", m.state.Lines, "level", m.state.Level, "score", m.state.Score)
	}

	if m.state.Exited {
		m.logger.Info("round abandoned", "score", m.state.Score, "lines", m.state.Lines)
		m.quitting = true
		return m, tea.Quit
	}

	if m.state.GameOver && !m.scoreSaved {
		m.recordRound()
	}

	return m, tickCmd(m.config.TickRate)
}

// restart begins a new round with a fresh seed.
func (m *Model) restart() {
	m.config.Seed = time.Now().UnixNano()
	m.round.Reset(m.config)
	m.state = m.round.State()
	m.scoreSaved = false
	m.notice = ""
	m.input.Clear()
	m.logger.Info("round restarted", "seed", m.config.Seed)
}

// recordRound saves the finished round once. Storage failures are logged
// and never end the program.
func (m *Model) recordRound() {
	m.scoreSaved = true
	m.logger.Info("game over", "score", m.state.Score, "level", m.state.Level,
		"lines", m.state.Lines, "time", m.round.Elapsed().Round(time.Second))

	if m.state.Score > m.highScore {
		m.highScore = m.state.Score
		m.notice = "New high score!"
	}

	if m.store == nil || m.state.Score == 0 {
		return
	}
	saved, err := m.store.SaveRound(storage.Round{
		GameID:   m.round.ID(),
		Score:    m.state.Score,
		Level:    m.state.Level,
		Lines:    m.state.Lines,
		Duration: m.round.Elapsed(),
	})
	if err != nil {
		m.logger.Warn("cannot save round", "err", err)
		return
	}
	m.logger.Debug("round saved", "round", saved.RoundID)
}

// saveScreenshot writes the current frame as plain text under ~/.tetris/screenshots.
func (m *Model) saveScreenshot() {
	dir := filepath.Join(config.UserDir(), "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "err", err)
		return
	}

	filename := fmt.Sprintf("%s_%s.txt", m.round.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	data := strings.Join(m.round.Frame(), "\n") + "\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	m.notice = "Saved " + filename
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.tooSmall {
		msg := warnStyle.Render("Window too small") + "\n" +
			dimStyle.Render(fmt.Sprintf("Need %dx%d, have %dx%d",
				m.frameW, m.frameH+helpHeight, m.config.ScreenW, m.config.ScreenH))
		return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, msg)
	}

	m.round.Render(m.screen)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(centerText(m.statusLine(), m.config.ScreenW))
	b.WriteString("\n")
	b.WriteString(centerText(m.help.View(m.keys), m.config.ScreenW))
	return b.String()
}

func (m Model) statusLine() string {
	status := dimStyle.Render(fmt.Sprintf("Best: %d", max(m.highScore, m.state.Score)))
	if m.state.GameOver {
		status += "  " + titleStyle.Render("Press "+m.keys.Restart.Help().Key+" to play again")
	}
	if m.notice != "" {
		status += "  " + warnStyle.Render(m.notice)
	}
	return status
}

// Quitting reports whether the model has finished.
func (m Model) Quitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program with the given round.
func Run(round Round, opts Options) error {
	model := NewModel(round, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
