package network

import (
	"fmt"
	"time"

	"github.com/dd0wney/cluso-fraudnet/pkg/analytics"
	"github.com/dd0wney/cluso-fraudnet/pkg/graph"
	"github.com/dd0wney/cluso-fraudnet/pkg/labels"
	"github.com/dd0wney/cluso-fraudnet/pkg/table"
	"github.com/dd0wney/cluso-fraudnet/pkg/tensor"
)

const (
	FormatGeneral   = "general"
	FormatAnalytics = "analytics"
	FormatTensor    = "tensor"
	FormatSplit     = "split"

	NodeLabel = "Transaction"
	EdgeType  = "FLOW"

	// Property keys on general graph nodes.
	PropKey      = "tx_id"
	PropClass    = "class"
	PropTime     = "time_step"
	PropFeatures = "features"
	PropLabelled = "labelled"
)

// ToGeneralGraph builds a property multigraph. Node IDs are dense indices;
// each node carries its external identifier, canonical class, whether that
// class is known, its time step (when the frame has one) and its feature row
// as laid out in the tensor view.
func (a *Adapter) ToGeneralGraph() (g *graph.Graph, err error) {
	start := time.Now()
	defer func() { a.observe(FormatGeneral, len(a.edges), start, err) }()

	x := a.features.Without(LabelColumn)
	width := x.Width()
	rows := x.Float32Rows()
	times, _ := a.features.Column(PropTime)

	g = graph.New(a.directed)
	for i, c := range a.classes {
		props := map[string]graph.Value{
			PropKey:      graph.StringValue(a.ids.Key(i)),
			PropClass:    graph.IntValue(int64(c)),
			PropLabelled: graph.BoolValue(c.Known()),
			PropFeatures: graph.VectorValue(rows[i*width : (i+1)*width]),
		}
		if times != nil {
			props[PropTime] = graph.FloatValue(times[i])
		}
		if _, err := g.AddNode(uint64(i), []string{NodeLabel, c.String()}, props); err != nil {
			return nil, opError("ToGeneralGraph", err)
		}
	}
	for _, p := range a.edges {
		if _, err := g.AddEdge(uint64(p.Src), uint64(p.Dst), EdgeType, nil, 1); err != nil {
			return nil, opError("ToGeneralGraph", err)
		}
	}
	return g, nil
}

// ToAnalyticsGraph builds a fixed-size integer graph, adding edges one at a
// time in order.
func (a *Adapter) ToAnalyticsGraph() (g *analytics.Graph, err error) {
	start := time.Now()
	defer func() { a.observe(FormatAnalytics, len(a.edges), start, err) }()

	g = analytics.New(a.ids.Len(), a.directed)
	for _, p := range a.edges {
		if err := g.AddEdge(p.Src, p.Dst); err != nil {
			return nil, opError("ToAnalyticsGraph", err)
		}
	}
	return g, nil
}

// ToTensorGraph builds the graph-learning view. X holds every value column
// except the label; a frame with no such column yields an N x 1 matrix of
// ones. Masks are nil when none were supplied.
func (a *Adapter) ToTensorGraph() (data *tensor.GraphData, err error) {
	start := time.Now()
	defer func() { a.observe(FormatTensor, len(a.edges), start, err) }()

	x, err := a.matrix(a.features.Without(LabelColumn))
	if err != nil {
		return nil, opError("ToTensorGraph", err)
	}
	if x.Cols == 0 {
		x = tensor.Ones(a.ids.Len(), 1)
	}

	src := make([]int64, len(a.edges))
	dst := make([]int64, len(a.edges))
	weight := make([]float32, len(a.edges))
	for i, p := range a.edges {
		src[i] = int64(p.Src)
		dst[i] = int64(p.Dst)
		weight[i] = 1
	}

	return &tensor.GraphData{
		X:          x,
		Y:          a.labelVector(),
		EdgeIndex:  &tensor.EdgeIndex{Src: src, Dst: dst},
		EdgeWeight: weight,
		TrainMask:  cloneMask(a.train),
		ValMask:    cloneMask(a.val),
		TestMask:   cloneMask(a.test),
	}, nil
}

// Features selects the feature columns. With a schema window the window's
// canonical columns are returned, widened when isFull is set; otherwise
// every value column except the label, and isFull is ignored.
func (a *Adapter) Features(isFull bool) (*table.Frame, error) {
	if a.hasWindow {
		f, err := a.features.Select(a.window.Columns(isFull)...)
		if err != nil {
			return nil, opError("Features", err)
		}
		return f, nil
	}
	return a.features.Without(LabelColumn), nil
}

// FeaturesTensor returns Features(isFull) as a float32 matrix.
func (a *Adapter) FeaturesTensor(isFull bool) (*tensor.Matrix, error) {
	f, err := a.Features(isFull)
	if err != nil {
		return nil, err
	}
	m, err := a.matrix(f)
	if err != nil {
		return nil, opError("FeaturesTensor", err)
	}
	return m, nil
}

// IntrinsicSplit applies the masks to Features(false) and the labels and
// places both sides on device.
func (a *Adapter) IntrinsicSplit(trainMask, testMask []bool, device tensor.Device) (split *tensor.Split, err error) {
	start := time.Now()
	defer func() { a.observe(FormatSplit, 0, start, err) }()

	dev, err := tensor.ParseDevice(string(device))
	if err != nil {
		return nil, opError("IntrinsicSplit", err)
	}
	n := a.ids.Len()
	if len(trainMask) != n {
		return nil, opError("IntrinsicSplit", fmt.Errorf("%w: train mask has %d entries, %d nodes", ErrMaskLength, len(trainMask), n))
	}
	if len(testMask) != n {
		return nil, opError("IntrinsicSplit", fmt.Errorf("%w: test mask has %d entries, %d nodes", ErrMaskLength, len(testMask), n))
	}

	x, err := a.FeaturesTensor(false)
	if err != nil {
		return nil, err
	}
	y := a.labelVector()

	xTrain, err := x.SelectRows(trainMask)
	if err != nil {
		return nil, opError("IntrinsicSplit", err)
	}
	xTest, err := x.SelectRows(testMask)
	if err != nil {
		return nil, opError("IntrinsicSplit", err)
	}
	yTrain, err := y.Select(trainMask)
	if err != nil {
		return nil, opError("IntrinsicSplit", err)
	}
	yTest, err := y.Select(testMask)
	if err != nil {
		return nil, opError("IntrinsicSplit", err)
	}

	split = &tensor.Split{}
	if split.XTrain, err = xTrain.To(dev); err != nil {
		return nil, opError("IntrinsicSplit", err)
	}
	if split.XTest, err = xTest.To(dev); err != nil {
		return nil, opError("IntrinsicSplit", err)
	}
	if split.YTrain, err = yTrain.To(dev); err != nil {
		return nil, opError("IntrinsicSplit", err)
	}
	if split.YTest, err = yTest.To(dev); err != nil {
		return nil, opError("IntrinsicSplit", err)
	}
	return split, nil
}

func (a *Adapter) matrix(f *table.Frame) (*tensor.Matrix, error) {
	return tensor.NewMatrix(f.Len(), f.Width(), f.Float32Rows())
}

func (a *Adapter) labelVector() *tensor.Vector {
	y := make([]int64, len(a.classes))
	for i, c := range a.classes {
		y[i] = int64(c)
	}
	return tensor.NewVector(y)
}

// Stats summarizes the network.
type Stats struct {
	Name           string
	Directed       bool
	Nodes          int
	Edges          int
	SelfLoops      int
	FeatureColumns int
	Classes        map[string]int
	Train          int
	Val            int
	Test           int
	HasMasks       bool
}

// Stats computes node, edge, class and split counts.
func (a *Adapter) Stats() Stats {
	s := Stats{
		Name:           a.name,
		Directed:       a.directed,
		Nodes:          a.ids.Len(),
		Edges:          len(a.edges),
		FeatureColumns: a.features.Without(LabelColumn).Width(),
		Classes:        labels.Histogram(a.classes),
		Train:          countTrue(a.train),
		Val:            countTrue(a.val),
		Test:           countTrue(a.test),
		HasMasks:       a.train != nil || a.val != nil || a.test != nil,
	}
	for _, p := range a.edges {
		if p.Src == p.Dst {
			s.SelfLoops++
		}
	}
	return s
}

// Publish pushes Stats into the metrics registry, if one is set.
func (a *Adapter) Publish() {
	if a.metrics == nil {
		return
	}
	s := a.Stats()
	a.metrics.SetDatasetShape(s.Nodes, s.Edges, s.FeatureColumns)
	a.metrics.SetSplitSizes(s.Train, s.Val, s.Test)
	a.metrics.SetClassSizes(s.Classes)
}

func countTrue(m []bool) int {
	n := 0
	for _, v := range m {
		if v {
			n++
		}
	}
	return n
}
