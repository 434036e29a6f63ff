package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// menuItem indexes the rows of the start menu.
type menuItem int

const (
	itemPlay menuItem = iota
	itemLevel
	itemPreview
	itemScores
	itemQuit
	itemCount
)

// MenuModel is the Bubble Tea model for the start menu: pick a start level,
// toggle the preview, open the scoreboard or start a round.
type MenuModel struct {
	cursor     menuItem
	startLevel int
	showNext   bool
	highScore  int
	width      int
	height     int
	config     core.RuntimeConfig

	quitting       bool
	play           bool
	openScoreboard bool
}

// NewMenuModel creates a new menu model seeded from the round config.
func NewMenuModel(store *storage.Store, tc config.TetrisConfig, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		startLevel: tc.StartLevel,
		showNext:   tc.ShowNext,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		config:     cfg,
	}
	if store != nil {
		if hs, err := store.HighScore(gameID); err == nil {
			m.highScore = hs
		}
	}
	return m
}

// gameID is the score table key of the round.
const gameID = "tetris"

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(MapKeyToMenuAction(msg))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < itemCount-1 {
			m.cursor++
		}

	case MenuActionLeft:
		m.adjust(-1)

	case MenuActionRight:
		m.adjust(1)

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit

	case MenuActionSelect:
		switch m.cursor {
		case itemPlay:
			m.play = true
			return m, tea.Quit
		case itemLevel:
			m.adjust(1)
		case itemPreview:
			m.showNext = !m.showNext
		case itemScores:
			m.openScoreboard = true
			return m, tea.Quit
		case itemQuit:
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// adjust changes the value under the cursor. Levels wrap around.
func (m *MenuModel) adjust(delta int) {
	switch m.cursor {
	case itemLevel:
		n := config.MaxStartLevel + 1
		m.startLevel = ((m.startLevel+delta)%n + n) % n
	case itemPreview:
		m.showNext = !m.showNext
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("  T E T R I S  ", m.width)))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(centerText(fmt.Sprintf("Best: %d", m.highScore), m.width)))
	b.WriteString("\n\n")

	preview := "on"
	if !m.showNext {
		preview = "off"
	}
	labels := [itemCount]string{
		itemPlay:    "Play",
		itemLevel:   fmt.Sprintf("Start level  < %2d >", m.startLevel),
		itemPreview: "Next piece   " + preview,
		itemScores:  "High scores",
		itemQuit:    "Quit",
	}

	for i, label := range labels {
		line := "  " + label
		if menuItem(i) == m.cursor {
			line = titleStyle.Render("> " + label)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Change  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(dimStyle.Render(centerText(controls, m.width)))
	b.WriteString("\n")

	return b.String()
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	StartLevel      int
	ShowNext        bool
	Config          core.RuntimeConfig
	Play            bool
	WantsScoreboard bool
	Quit            bool
}

// Result reports what the player chose.
func (m MenuModel) Result() MenuResult {
	return MenuResult{
		StartLevel:      m.startLevel,
		ShowNext:        m.showNext,
		Config:          m.config,
		Play:            m.play,
		WantsScoreboard: m.openScoreboard,
		Quit:            m.quitting || (!m.play && !m.openScoreboard),
	}
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, tc config.TetrisConfig, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, tc, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.Result(), nil
}
