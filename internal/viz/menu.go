package viz

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/stochsim/internal/config"
	"github.com/san-kum/stochsim/internal/experiment"
)

var processInfo = map[string]string{
	"markov":   "discrete-time state chain",
	"brownian": "gaussian increments in 1-3D",
	"poisson":  "exponential inter-arrivals",
	"walk":     "lattice random walk in 1-3D",
}

const (
	stateProcess = iota
	statePreset
	statePlay
)

// Menu lets the user pick a process and preset, then plays the result.
type Menu struct {
	state    int
	cursor   int
	procs    []string
	presets  []string
	selected string
	registry *experiment.Registry
	log      *slog.Logger
	theme    string
	player   Player
	notice   string
	err      error
}

func NewMenu(registry *experiment.Registry, log *slog.Logger, theme string) Menu {
	if registry == nil {
		registry = experiment.NewRegistry()
	}
	if log == nil {
		log = slog.Default()
	}
	return Menu{procs: registry.ListProcesses(), registry: registry, log: log, theme: theme}
}

func (m Menu) Init() tea.Cmd { return nil }

func (m Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == statePlay {
		if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
			if m.player.recording {
				m.player.stopRecording()
				m.notice = m.player.status
			}
			m.state = statePreset
			return m, nil
		}
		next, cmd := m.player.Update(msg)
		m.player = next.(Player)
		return m, cmd
	}
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch k.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		m.cursor = max(m.cursor-1, 0)
	case "down", "j":
		m.cursor = min(m.cursor+1, len(m.items())-1)
	case "esc", "backspace":
		if m.state == statePreset {
			m.state, m.cursor = stateProcess, 0
		}
	case "enter", " ", "space":
		return m.choose()
	}
	return m, nil
}

func (m Menu) items() []string {
	if m.state == statePreset {
		return m.presets
	}
	return m.procs
}

func (m Menu) choose() (Menu, tea.Cmd) {
	items := m.items()
	if len(items) == 0 {
		return m, nil
	}
	if m.state == stateProcess {
		m.selected = items[m.cursor]
		m.presets = config.ListPresets(m.selected)
		m.state, m.cursor, m.err = statePreset, 0, nil
		return m, nil
	}

	name := items[m.cursor]
	cfg := config.GetPreset(m.selected, name)
	if cfg == nil {
		m.err = fmt.Errorf("unknown preset %s/%s", m.selected, name)
		return m, nil
	}
	cfg.Render.Theme = m.theme
	res, err := experiment.New(cfg, m.registry, m.log).Run(context.Background())
	if err != nil {
		m.err = err
		return m, nil
	}
	p, err := NewPlayer(res, PlayerOptions{
		Title: m.selected + " / " + name,
		FPS:   cfg.Render.FPS,
		Theme: m.theme,
	})
	if err != nil {
		m.err = err
		return m, nil
	}
	m.player, m.state, m.err, m.notice = p, statePlay, nil, ""
	return m, p.Init()
}

func (m Menu) View() string {
	if m.state == statePlay {
		return m.player.View()
	}
	t := GetTheme(m.theme)
	head := lipgloss.NewStyle().Foreground(t.Secondary).Bold(true)
	sub := lipgloss.NewStyle().Foreground(t.Muted)
	cur := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	desc := lipgloss.NewStyle().Foreground(t.Primary)

	var b strings.Builder
	title, caption := "STOCHSIM", "stochastic process explorer"
	if m.state == statePreset {
		title, caption = strings.ToUpper(m.selected), processInfo[m.selected]
	}
	b.WriteString("\n\n    " + head.Render(title) + "\n    " + sub.Render(caption) + "\n    " + sub.Render(Separator(25)) + "\n\n")
	for i, name := range m.items() {
		info := ""
		if m.state == stateProcess {
			info = processInfo[name]
		}
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", cur.Render("▸"), cur.Render(fmt.Sprintf("%-10s", name)), desc.Render(info)))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", sub.Render(fmt.Sprintf("%-10s", name)), sub.Render(info)))
		}
	}
	if m.notice != "" {
		b.WriteString("\n    " + desc.Render(m.notice) + "\n")
	}
	if m.err != nil {
		b.WriteString("\n    " + lipgloss.NewStyle().Foreground(t.Recording).Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + sub.Render("j/k navigate  enter select  esc back  q quit") + "\n")
	return b.String()
}

// RunMenu starts the interactive explorer.
func RunMenu(m Menu) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
