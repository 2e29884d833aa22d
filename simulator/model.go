package main

import (
	"context"
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rook-computer/sysdeck/internal/screen"
)

const refreshEvery = 100 * time.Millisecond

var keyMap = map[string]screen.Key{
	"up":    screen.Up,
	"down":  screen.Down,
	"left":  screen.Left,
	"right": screen.Right,
	"enter": screen.Press,
	"o":     screen.Ok,
	"m":     screen.Main,
	"esc":   screen.Cancel,
	"c":     screen.Cancel,
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// keyHandler is the part of the app the model drives.
type keyHandler interface {
	HandleKey(k screen.Key)
}

// cellGrid is the text display the app draws into.
type cellGrid interface {
	Rows() []string
	Background(row int) color.Color
}

type tickMsg time.Time

type model struct {
	keys    keyHandler
	grid    cellGrid
	cancel  context.CancelFunc
	text    lipgloss.Color
	lastKey string
}

func newModel(keys keyHandler, grid cellGrid, cancel context.CancelFunc, textColor string) model {
	return model{keys: keys, grid: grid, cancel: cancel, text: lipgloss.Color(textColor)}
}

func tick() tea.Cmd {
	return tea.Tick(refreshEvery, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Init() tea.Cmd { return tick() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
		if k, ok := keyMap[msg.String()]; ok {
			m.keys.HandleKey(k)
			m.lastKey = k.String()
		}
		return m, nil
	case tickMsg:
		return m, tick()
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	for i, row := range m.grid.Rows() {
		style := lipgloss.NewStyle().Foreground(m.text)
		if bg := m.grid.Background(i); bg != nil {
			style = style.Background(lipgloss.Color(hexColor(bg)))
		}
		b.WriteString(style.Render(row))
		b.WriteByte('\n')
	}
	help := "arrows/enter: keys  o: ok  m: main  esc/c: cancel  q: quit"
	if m.lastKey != "" {
		help += "  last: " + m.lastKey
	}
	b.WriteString(helpStyle.Render(help))
	return b.String()
}

func hexColor(c color.Color) string {
	r, g, bl, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, bl>>8)
}
