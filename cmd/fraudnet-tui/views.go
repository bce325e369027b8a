package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-fraudnet/pkg/labels"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#FF00FF")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2).
			MarginRight(2)

	graphBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#FFFF00")).
			Padding(1, 2)

	illicitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F87"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

const rule = "━━━━━━━━━━━━━━━━━━"

func (m model) renderDashboard() string {
	st := m.data.stats
	direction := "undirected"
	if st.Directed {
		direction = "directed"
	}
	_, largest := m.data.cc.Largest()

	network := fmt.Sprintf(`Network
%s
Transactions: %d
Edges:        %d (%s)
Self loops:   %d
Features:     %d
Components:   %d
Largest:      %d
Max out/in:   %d / %d`,
		rule, st.Nodes, st.Edges, direction, st.SelfLoops,
		st.FeatureColumns, m.data.cc.Count(), largest, m.data.maxOut, m.data.maxIn)

	var classes strings.Builder
	classes.WriteString("Classes\n" + rule)
	for _, c := range labels.All {
		n := st.Classes[c.String()]
		classes.WriteString(fmt.Sprintf("\n%-8s %7d  %5.1f%%", c, n, percent(n, st.Nodes)))
	}

	var load strings.Builder
	load.WriteString("Rows read\n" + rule)
	for _, name := range []string{"features", "edges", "classes"} {
		load.WriteString(fmt.Sprintf("\n%-9s %9.0f", name, m.data.tableRows[name]))
	}

	return contentStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top,
		statsBoxStyle.Render(network),
		statsBoxStyle.Render(classes.String()),
		statsBoxStyle.Render(load.String()),
	))
}

func (m model) renderNodes() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("Transactions"))
	s.WriteString("\n\n")
	s.WriteString(m.nodeTable.View())
	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("Navigate with ↑/↓ • Press enter to inspect the neighbourhood"))
	return contentStyle.Render(s.String())
}

func (m model) renderSplits() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("Temporal Splits"))
	s.WriteString("\n\n")

	train, val, test := m.data.adapter.Masks()
	if train == nil && val == nil && test == nil {
		s.WriteString("No split masks were derived for this dataset")
		return contentStyle.Render(s.String())
	}

	frame := m.data.adapter.Frame()
	boxes := make([]string, 0, 3)
	for _, split := range []struct {
		name string
		mask []bool
	}{{"Train", train}, {"Validation", val}, {"Test", test}} {
		if split.mask == nil {
			continue
		}
		counts, total, err := splitCounts(frame, split.mask)
		if err != nil {
			boxes = append(boxes, statsBoxStyle.Render(split.name+"\n"+errorStyle.Render(err.Error())))
			continue
		}
		body := fmt.Sprintf("%s\n%s\nTotal:   %d\nLicit:   %d\nIllicit: %d (%.1f%%)",
			split.name, rule, total,
			counts[labels.Licit], counts[labels.Illicit], percent(counts[labels.Illicit], total))
		boxes = append(boxes, statsBoxStyle.Render(body))
	}

	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	return contentStyle.Render(s.String())
}

func (m model) renderGraph() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("Neighbourhood"))
	s.WriteString("\n\n")
	s.WriteString(graphBoxStyle.Render(m.neighbourhood(m.selected)))
	return contentStyle.Render(s.String())
}

func (m model) neighbourhood(idx int) string {
	if m.data.adapter.NumNodes() == 0 {
		return "No transactions to visualize"
	}
	g := m.data.general
	id := uint64(idx)
	node, err := g.GetNode(id)
	if err != nil {
		return err.Error()
	}
	info, err := readNode(node)
	if err != nil {
		return err.Error()
	}

	var s strings.Builder
	s.WriteString(fmt.Sprintf("◉ tx %s  %s  t=%s  %d features\n",
		info.key, classLabel(info.class), formatTime(info.time, info.hasTime), info.features))

	const maxDisplay = 12
	edges, _ := g.GetOutgoingEdges(id)
	if !g.Directed() {
		in, _ := g.GetIncomingEdges(id)
		edges = append(edges, in...)
	}
	shown := 0
	for _, e := range edges {
		if shown == maxDisplay {
			s.WriteString(fmt.Sprintf("  ... and %d more\n", len(edges)-shown))
			break
		}
		other := e.Other(id)
		peer, err := g.GetNode(other)
		if err != nil {
			continue
		}
		pi, err := readNode(peer)
		if err != nil {
			continue
		}
		arrow := "→"
		if e.ToNodeID == id && !e.IsSelfLoop() {
			arrow = "←"
		}
		s.WriteString(fmt.Sprintf("  └─[%s]%s tx %s  %s\n", e.Type, arrow, pi.key, classLabel(pi.class)))
		shown++
	}
	if len(edges) == 0 {
		s.WriteString("  (isolated)\n")
	}

	if hc := hopCounts(m.hops); len(hc) > 0 {
		s.WriteString("\nReachable by hops\n")
		for _, h := range hc {
			s.WriteString(fmt.Sprintf("  %2d hop(s): %d\n", h.hops, h.nodes))
		}
	}
	return s.String()
}

func classLabel(c labels.Class) string {
	if c == labels.Illicit {
		return illicitStyle.Render(c.String())
	}
	return c.String()
}

func (m model) renderRank() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("PageRank"))
	s.WriteString("\n\n")

	r := m.data.rank
	s.WriteString(statsBoxStyle.Render(fmt.Sprintf("Iterations:  %d\nConverged:   %v\nNodes:       %d",
		r.Iterations, r.Converged, len(r.Scores))))
	s.WriteString("\n\n")

	if len(r.TopNodes) == 0 {
		return contentStyle.Render(s.String())
	}
	a := m.data.adapter
	classes := a.Classes()
	top := r.TopNodes[0].Score
	for i, rn := range r.TopNodes {
		width := 0
		if top > 0 {
			width = int(rn.Score / top * 30)
		}
		s.WriteString(fmt.Sprintf("  %2d. %-14s %.6f %-30s %s\n",
			i+1, a.IDs().Key(rn.Node), rn.Score, strings.Repeat("█", width), classLabel(classes[rn.Node])))
	}
	return contentStyle.Render(s.String())
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
