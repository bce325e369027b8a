package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type view int

const (
	dashboardView view = iota
	nodesView
	splitsView
	graphView
	rankView
	viewCount
)

var tabNames = []string{"Dashboard", "Nodes", "Splits", "Graph", "Rank"}

type keyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Enter    key.Binding
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev view"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "inspect node"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Enter, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Enter},
		{k.Up, k.Down},
		{k.Quit},
	}
}

type model struct {
	name        string
	load        tea.Cmd
	spinner     spinner.Model
	data        *loadedMsg
	currentView view
	nodeTable   table.Model
	selected    int
	hops        []int
	help        help.Model
	keys        keyMap
	width       int
	height      int
	message     string
	messageErr  bool
}

func initialModel(name string, load tea.Cmd) model {
	columns := []table.Column{
		{Title: "#", Width: 8},
		{Title: "txId", Width: 14},
		{Title: "Class", Width: 9},
		{Title: "Time", Width: 6},
		{Title: "Degree", Width: 8},
		{Title: "Split", Width: 7},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(14),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#00FFFF")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#FF00FF")).
		Bold(false)
	t.SetStyles(s)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF00FF"))

	return model{
		name:        name,
		load:        load,
		spinner:     sp,
		currentView: dashboardView,
		nodeTable:   t,
		help:        help.New(),
		keys:        keys,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case spinner.TickMsg:
		if m.data != nil {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadErrMsg:
		m.message = msg.err.Error()
		m.messageErr = true
		return m, nil

	case loadedMsg:
		m.data = &msg
		if msg.buildErr != nil {
			m.message = msg.buildErr.Error()
			m.messageErr = true
			return m, nil
		}
		train, val, test := msg.adapter.Masks()
		rows, err := nodeRows(msg.general, train, val, test)
		if err != nil {
			m.message = err.Error()
			m.messageErr = true
			return m, nil
		}
		m.nodeTable.SetRows(rows)
		m.selectNode(0)
		m.message = fmt.Sprintf("Loaded %d transactions and %d edges in %s",
			msg.stats.Nodes, msg.stats.Edges, msg.elapsed.Round(time.Millisecond))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Tab):
			m.currentView = (m.currentView + 1) % viewCount
			return m, nil

		case key.Matches(msg, m.keys.ShiftTab):
			m.currentView = (m.currentView + viewCount - 1) % viewCount
			return m, nil

		case key.Matches(msg, m.keys.Enter):
			if m.currentView == nodesView && m.data != nil {
				m.selectNode(m.nodeTable.Cursor())
				m.currentView = graphView
			}
			return m, nil
		}
	}

	if m.currentView == nodesView {
		m.nodeTable, cmd = m.nodeTable.Update(msg)
	}
	return m, cmd
}

// selectNode focuses the Graph tab on node i and computes hop distances
// from it.
func (m *model) selectNode(i int) {
	m.selected = i
	m.hops = nil
	if m.data == nil || m.data.analytics == nil || m.data.adapter.NumNodes() == 0 {
		return
	}
	dist, err := m.data.analytics.BFS(i)
	if err != nil {
		m.message = err.Error()
		m.messageErr = true
		return
	}
	m.hops = dist
}

func (m model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render("fraudnet · " + m.name))
	s.WriteString("\n\n")

	if m.data == nil && !m.messageErr {
		s.WriteString(contentStyle.Render(m.spinner.View() + " Loading dataset..."))
	} else if m.data != nil && m.data.buildErr == nil {
		s.WriteString(m.renderTabs())
		s.WriteString("\n\n")
		switch m.currentView {
		case dashboardView:
			s.WriteString(m.renderDashboard())
		case nodesView:
			s.WriteString(m.renderNodes())
		case splitsView:
			s.WriteString(m.renderSplits())
		case graphView:
			s.WriteString(m.renderGraph())
		case rankView:
			s.WriteString(m.renderRank())
		}
	}

	if m.message != "" {
		s.WriteString("\n\n")
		if m.messageErr {
			s.WriteString(errorStyle.Render("✗ " + m.message))
		} else {
			s.WriteString(successStyle.Render("✓ " + m.message))
		}
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	return s.String()
}

func (m model) renderTabs() string {
	rendered := make([]string, 0, len(tabNames))
	for i, tab := range tabNames {
		if view(i) == m.currentView {
			rendered = append(rendered, activeTabStyle.Render(tab))
		} else {
			rendered = append(rendered, inactiveTabStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
