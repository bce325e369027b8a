package main

import (
	"math"
	"testing"

	"github.com/charmbracelet/bubbles/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-fraudnet/pkg/labels"
	"github.com/dd0wney/cluso-fraudnet/pkg/metrics"
	"github.com/dd0wney/cluso-fraudnet/pkg/network"
	tabular "github.com/dd0wney/cluso-fraudnet/pkg/table"
)

func testAdapter(t *testing.T, reg *metrics.Registry) *network.Adapter {
	t.Helper()
	f, err := tabular.NewFrame("txId", []string{"10", "20", "30"}, []tabular.Column{
		{Name: "time_step", Values: []float64{5, 35, math.NaN()}},
		{Name: "2", Values: []float64{0.1, 0.2, 0.3}},
		{Name: network.LabelColumn, Values: []float64{1, 0, 2}},
	})
	require.NoError(t, err)
	edges, err := tabular.NewEdgeList([]string{"10"}, []string{"20"})
	require.NoError(t, err)

	a, err := network.New(f, edges,
		network.WithMasks([]bool{true, false, false}, []bool{false, true, false}, nil),
		network.WithMetrics(reg),
	)
	require.NoError(t, err)
	return a
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		name string
		t    float64
		ok   bool
		want string
	}{
		{"integral step", 35, true, "35"},
		{"rounded", 4.6, true, "5"},
		{"missing column", 12, false, "-"},
		{"empty cell", math.NaN(), true, "-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatTime(tt.t, tt.ok))
		})
	}
}

func TestSplitName(t *testing.T) {
	train := []bool{true, false, false, false}
	val := []bool{false, true, false, false}
	test := []bool{false, false, true, false}

	tests := []struct {
		i    int
		want string
	}{
		{0, "train"},
		{1, "val"},
		{2, "test"},
		{3, "-"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, splitName(tt.i, train, val, test), "node %d", tt.i)
	}
	assert.Equal(t, "-", splitName(0, nil, nil, nil), "absent masks select nothing")
}

func TestNodeRows(t *testing.T) {
	a := testAdapter(t, nil)
	g, err := a.ToGeneralGraph()
	require.NoError(t, err)

	train, val, test := a.Masks()
	rows, err := nodeRows(g, train, val, test)
	require.NoError(t, err)

	assert.Equal(t, []table.Row{
		{"0", "10", "illicit", "5", "2", "train"},
		{"1", "20", "licit", "35", "2", "val"},
		{"2", "30", "unknown", "-", "0", "-"},
	}, rows)
}

func TestReadNode(t *testing.T) {
	g, err := testAdapter(t, nil).ToGeneralGraph()
	require.NoError(t, err)

	n, err := g.GetNode(1)
	require.NoError(t, err)
	info, err := readNode(n)
	require.NoError(t, err)

	assert.Equal(t, "20", info.key)
	assert.Equal(t, labels.Licit, info.class)
	assert.True(t, info.labelled)
	assert.True(t, info.hasTime)
	assert.Equal(t, 35.0, info.time)
	assert.Equal(t, 2, info.features, "time_step and one feature column")
}

func TestSplitCounts(t *testing.T) {
	a := testAdapter(t, nil)
	train, _, _ := a.Masks()

	counts, total, err := splitCounts(a.Frame(), train)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, 1, counts[labels.Illicit])

	_, _, err = splitCounts(a.Frame(), []bool{true})
	assert.ErrorIs(t, err, tabular.ErrMaskLength)
}

func TestHopCounts(t *testing.T) {
	got := hopCounts([]int{0, 1, 2, 1, -1, 3})
	assert.Equal(t, []hopCount{{1, 2}, {2, 1}, {3, 1}}, got)
	assert.Empty(t, hopCounts(nil))
}

func TestNewLoadedMsg(t *testing.T) {
	reg := metrics.NewRegistry()
	reg.RecordTableLoad("features", 3, 0)
	a := testAdapter(t, reg)

	msg, ok := newLoadedMsg(a, reg).(loadedMsg)
	require.True(t, ok)
	require.NoError(t, msg.buildErr)

	assert.Equal(t, 3, msg.general.NodeCount())
	assert.Equal(t, 2, msg.analytics.NumEdges())
	assert.Equal(t, 1, msg.maxOut)
	assert.Equal(t, 1, msg.maxIn)
	assert.Equal(t, 2, msg.cc.Count())
	assert.Equal(t, 3.0, msg.tableRows["features"])

	dist, err := msg.analytics.BFS(0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, -1}, dist)
}
