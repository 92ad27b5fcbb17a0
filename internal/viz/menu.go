package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/swarmform/internal/particle"
)

// BuildFunc creates the engine and view options for a named preset.
type BuildFunc func(preset string) (*particle.Engine, Options, error)

// Menu lists presets and hands off to a Model once one is picked.
type Menu struct {
	presets []string
	cursor  int
	build   BuildFunc
	live    *Model
	size    *tea.WindowSizeMsg
	err     error
}

func NewMenu(presets []string, build BuildFunc) Menu {
	return Menu{presets: presets, build: build}
}

func (m Menu) Init() tea.Cmd { return nil }

func (m Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.live != nil {
		next, cmd := m.live.Update(msg)
		live := next.(Model)
		m.live = &live
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.size = &msg
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.presets)-1 {
				m.cursor++
			}
		case "enter", " ":
			return m.start()
		}
	}
	return m, nil
}

func (m Menu) start() (tea.Model, tea.Cmd) {
	if len(m.presets) == 0 {
		return m, nil
	}
	engine, opts, err := m.build(m.presets[m.cursor])
	if err != nil {
		m.err = err
		return m, nil
	}
	if opts.Title == "" {
		opts.Title = m.presets[m.cursor]
	}
	live := NewModel(engine, opts)
	if m.size != nil {
		next, _ := live.Update(*m.size)
		live = next.(Model)
	}
	m.live = &live
	return m, live.Init()
}

func (m Menu) View() string {
	if m.live != nil {
		return m.live.View()
	}

	h := lipgloss.NewStyle().Foreground(ThemeEvergreen.Primary).Bold(true)
	sub := lipgloss.NewStyle().Foreground(ThemeEvergreen.Muted)
	sel := lipgloss.NewStyle().Foreground(ThemeEvergreen.Accent).Bold(true)
	key := lipgloss.NewStyle().Foreground(ThemeEvergreen.Secondary).Bold(true)

	var b strings.Builder
	b.WriteString("\n\n    " + h.Render("SWARMFORM") + "\n    " + sub.Render("particle morph") + "\n    " + sub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s\n", sel.Render("▸"), sel.Render(name)))
		} else {
			b.WriteString(fmt.Sprintf("      %s\n", sub.Render(name)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + lipgloss.NewStyle().Foreground(ThemeEvergreen.Error).Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + key.Render("j/k") + sub.Render(" navigate  ") + key.Render("enter") + sub.Render(" select  ") + key.Render("q") + sub.Render(" quit") + "\n")
	return b.String()
}

func RunMenu(presets []string, build BuildFunc) error {
	_, err := tea.NewProgram(NewMenu(presets, build), tea.WithAltScreen()).Run()
	return err
}
