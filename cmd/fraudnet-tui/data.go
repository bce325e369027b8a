package main

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dd0wney/cluso-fraudnet/pkg/analytics"
	"github.com/dd0wney/cluso-fraudnet/pkg/graph"
	"github.com/dd0wney/cluso-fraudnet/pkg/labels"
	"github.com/dd0wney/cluso-fraudnet/pkg/metrics"
	"github.com/dd0wney/cluso-fraudnet/pkg/network"
	tabular "github.com/dd0wney/cluso-fraudnet/pkg/table"
)

// loadedMsg carries everything the views need, computed once off the UI loop.
type loadedMsg struct {
	adapter   *network.Adapter
	stats     network.Stats
	general   *graph.Graph
	analytics *analytics.Graph
	rank      *analytics.PageRankResult
	cc        *analytics.ComponentsResult
	maxOut    int
	maxIn     int
	tableRows map[string]float64
	elapsed   time.Duration
	buildErr  error
}

type loadErrMsg struct{ err error }

func newLoadedMsg(a *network.Adapter, reg *metrics.Registry) tea.Msg {
	start := time.Now()
	msg := loadedMsg{adapter: a, stats: a.Stats(), tableRows: tableRows(reg)}

	g, err := a.ToGeneralGraph()
	if err != nil {
		msg.buildErr = err
		return msg
	}
	msg.general = g

	ag, err := a.ToAnalyticsGraph()
	if err != nil {
		msg.buildErr = err
		return msg
	}
	msg.analytics = ag
	msg.maxOut = maxOf(ag.OutDegrees())
	msg.maxIn = maxOf(ag.InDegrees())

	opts := analytics.DefaultPageRankOptions()
	opts.TopN = 15
	msg.rank = ag.PageRank(opts)
	msg.cc = ag.ConnectedComponents()
	msg.elapsed = time.Since(start)
	return msg
}

// tableRows reads the per-table row counters recorded during the load.
func tableRows(reg *metrics.Registry) map[string]float64 {
	out := make(map[string]float64)
	if reg == nil {
		return out
	}
	families, err := reg.GetPrometheusRegistry().Gather()
	if err != nil {
		return out
	}
	for _, f := range families {
		if f.GetName() != "fraudnet_load_rows_total" {
			continue
		}
		for _, m := range f.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "table" {
					out[lp.GetValue()] = m.GetCounter().GetValue()
				}
			}
		}
	}
	return out
}

// nodeInfo is one transaction as stored on the general graph.
type nodeInfo struct {
	key      string
	class    labels.Class
	time     float64
	hasTime  bool
	features int
	labelled bool
}

func readNode(n *graph.Node) (nodeInfo, error) {
	var info nodeInfo
	var err error
	if info.key, err = n.Properties[network.PropKey].AsString(); err != nil {
		return info, err
	}
	c, err := n.Properties[network.PropClass].AsInt()
	if err != nil {
		return info, err
	}
	info.class = labels.Class(c)
	if info.labelled, err = n.Properties[network.PropLabelled].AsBool(); err != nil {
		return info, err
	}
	vec, err := n.Properties[network.PropFeatures].AsVector()
	if err != nil {
		return info, err
	}
	info.features = len(vec)
	if v, ok := n.GetProperty(network.PropTime); ok {
		if info.time, err = v.AsFloat(); err != nil {
			return info, err
		}
		info.hasTime = true
	}
	return info, nil
}

func nodeRows(g *graph.Graph, train, val, test []bool) ([]table.Row, error) {
	ids := g.NodeIDs()
	rows := make([]table.Row, 0, len(ids))
	for _, id := range ids {
		n, err := g.GetNode(id)
		if err != nil {
			return nil, err
		}
		info, err := readNode(n)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", id, err)
		}
		deg, err := g.Degree(id)
		if err != nil {
			return nil, err
		}
		rows = append(rows, table.Row{
			fmt.Sprint(id),
			info.key,
			info.class.String(),
			formatTime(info.time, info.hasTime),
			fmt.Sprint(deg),
			splitName(int(id), train, val, test),
		})
	}
	return rows, nil
}

func formatTime(t float64, ok bool) string {
	if !ok || math.IsNaN(t) {
		return "-"
	}
	return fmt.Sprintf("%.0f", t)
}

func splitName(i int, train, val, test []bool) string {
	switch {
	case i < len(train) && train[i]:
		return "train"
	case i < len(val) && val[i]:
		return "val"
	case i < len(test) && test[i]:
		return "test"
	}
	return "-"
}

// splitCounts filters the feature frame by mask and counts classes among the
// selected rows.
func splitCounts(f *tabular.Frame, mask []bool) (map[labels.Class]int, int, error) {
	sub, err := f.Filter(mask)
	if err != nil {
		return nil, 0, err
	}
	col, err := sub.Column(network.LabelColumn)
	if err != nil {
		return nil, 0, err
	}
	counts := make(map[labels.Class]int)
	for _, v := range col {
		counts[labels.Class(int64(v))]++
	}
	return counts, sub.Len(), nil
}

// hopCount is how many nodes sit at one BFS distance.
type hopCount struct {
	hops  int
	nodes int
}

// hopCounts groups BFS distances, unreachable nodes (-1) and the source
// excluded.
func hopCounts(dist []int) []hopCount {
	byHop := make(map[int]int)
	for _, d := range dist {
		if d > 0 {
			byHop[d]++
		}
	}
	out := make([]hopCount, 0, len(byHop))
	for h, n := range byHop {
		out = append(out, hopCount{hops: h, nodes: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].hops < out[j].hops })
	return out
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
