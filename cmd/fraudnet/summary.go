package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-fraudnet/pkg/analytics"
	"github.com/dd0wney/cluso-fraudnet/pkg/graph"
	"github.com/dd0wney/cluso-fraudnet/pkg/labels"
	"github.com/dd0wney/cluso-fraudnet/pkg/logging"
	"github.com/dd0wney/cluso-fraudnet/pkg/network"
	"github.com/dd0wney/cluso-fraudnet/pkg/tensor"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")).
			MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")).
			Width(22)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)
)

type row struct {
	key   string
	value string
}

type section struct {
	title string
	rows  []row
}

func render(name string, sections []section) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("fraudnet · " + name))
	b.WriteString("\n")
	for _, s := range sections {
		var body strings.Builder
		for i, r := range s.rows {
			if i > 0 {
				body.WriteString("\n")
			}
			body.WriteString(keyStyle.Render(r.key) + r.value)
		}
		b.WriteString(headerStyle.Render(s.title))
		b.WriteString("\n")
		b.WriteString(boxStyle.Render(body.String()))
		b.WriteString("\n")
	}
	return b.String()
}

func statsSection(s network.Stats) section {
	direction := "undirected"
	if s.Directed {
		direction = "directed"
	}
	rows := []row{
		{"transactions", fmt.Sprint(s.Nodes)},
		{"edges", fmt.Sprintf("%d (%s)", s.Edges, direction)},
		{"self loops", fmt.Sprint(s.SelfLoops)},
		{"feature columns", fmt.Sprint(s.FeatureColumns)},
	}
	for _, c := range labels.All {
		rows = append(rows, row{"class " + c.String(), fmt.Sprint(s.Classes[c.String()])})
	}
	if s.HasMasks {
		rows = append(rows, row{"train / val / test", fmt.Sprintf("%d / %d / %d", s.Train, s.Val, s.Test)})
	}
	return section{title: "Dataset", rows: rows}
}

func generalSection(a *network.Adapter) (section, error) {
	g, err := a.ToGeneralGraph()
	if err != nil {
		return section{}, err
	}
	st := g.GetStatistics()

	maxDeg, labelled := 0, 0
	var maxNode *graph.Node
	for _, id := range g.NodeIDs() {
		node, err := g.GetNode(id)
		if err != nil {
			return section{}, err
		}
		if known, err := node.Properties[network.PropLabelled].AsBool(); err == nil && known {
			labelled++
		}
		d, err := g.Degree(id)
		if err != nil {
			return section{}, err
		}
		if maxNode == nil || d > maxDeg {
			maxDeg, maxNode = d, node
		}
	}

	rows := []row{
		{"nodes", fmt.Sprint(st.NodeCount)},
		{"labelled nodes", fmt.Sprint(labelled)},
		{"edges", fmt.Sprint(st.EdgeCount)},
		{"self loops", fmt.Sprint(st.SelfLoopCount)},
	}
	if maxNode != nil {
		key, err := maxNode.Properties[network.PropKey].AsString()
		if err != nil {
			return section{}, err
		}
		rows = append(rows, row{"max degree", fmt.Sprintf("%d (tx %s)", maxDeg, key)})
	}
	return section{title: "General graph", rows: rows}, nil
}

func analyticsSection(a *network.Adapter, top int) (section, error) {
	g, err := a.ToAnalyticsGraph()
	if err != nil {
		return section{}, err
	}

	cc := g.ConnectedComponents()
	_, largest := cc.Largest()
	tri := g.CountTriangles()

	opts := analytics.DefaultPageRankOptions()
	opts.TopN = top
	pr := g.PageRank(opts)

	rows := []row{
		{"max out / in degree", fmt.Sprintf("%d / %d", maxOf(g.OutDegrees()), maxOf(g.InDegrees()))},
		{"components", fmt.Sprint(cc.Count())},
		{"largest component", fmt.Sprint(largest)},
		{"triangles", fmt.Sprint(tri.GlobalCount)},
		{"pagerank iterations", fmt.Sprintf("%d (converged=%v)", pr.Iterations, pr.Converged)},
	}
	classes := a.Classes()
	for i, rn := range pr.TopNodes {
		rows = append(rows, row{
			fmt.Sprintf("rank %d", i+1),
			fmt.Sprintf("tx %s  %.6f  %s", a.IDs().Key(rn.Node), rn.Score, classes[rn.Node]),
		})
	}
	return section{title: "Analytics graph", rows: rows}, nil
}

func tensorSection(a *network.Adapter, device string) (section, error) {
	data, err := a.ToTensorGraph()
	if err != nil {
		return section{}, err
	}
	xr, xc := data.X.Shape()
	er, ec := data.EdgeIndex.Shape()
	rows := []row{
		{"x", fmt.Sprintf("%d x %d float32", xr, xc)},
		{"y", fmt.Sprintf("%d int64", data.Y.Len())},
		{"edge_index", fmt.Sprintf("%d x %d int64", er, ec)},
	}

	train, _, test := a.Masks()
	if train == nil || test == nil {
		logging.Warn("no split masks, intrinsic split skipped", logging.Dataset(a.Name()))
	} else {
		split, err := a.IntrinsicSplit(train, test, tensor.Device(device))
		if err != nil {
			return section{}, err
		}
		rows = append(rows,
			row{"x_train", fmt.Sprintf("%d x %d on %s", split.XTrain.Rows, split.XTrain.Cols, split.XTrain.Device)},
			row{"x_test", fmt.Sprintf("%d x %d on %s", split.XTest.Rows, split.XTest.Cols, split.XTest.Device)},
		)
	}
	return section{title: "Tensor graph", rows: rows}, nil
}

func maxOf(xs []int) int {
	m := 0
	for _, x := range xs {
		if x > m {
			m = x
		}
	}
	return m
}
