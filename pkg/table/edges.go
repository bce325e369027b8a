package table

import "fmt"

// EdgeList is an ordered list of (source, target) external identifiers.
// Duplicates and self edges are kept.
type EdgeList struct {
	src []string
	dst []string
}

// NewEdgeList builds an EdgeList from parallel columns.
func NewEdgeList(src, dst []string) (*EdgeList, error) {
	if len(src) != len(dst) {
		return nil, fmt.Errorf("%w: %d sources, %d targets", ErrShape, len(src), len(dst))
	}
	return &EdgeList{src: src, dst: dst}, nil
}

// Len returns the number of edges.
func (e *EdgeList) Len() int { return len(e.src) }

// Edge returns edge i.
func (e *EdgeList) Edge(i int) (src, dst string) { return e.src[i], e.dst[i] }

// Reversed returns the list with every edge flipped.
func (e *EdgeList) Reversed() *EdgeList {
	return &EdgeList{src: e.dst, dst: e.src}
}

// Concat appends other after e.
func (e *EdgeList) Concat(other *EdgeList) *EdgeList {
	src := make([]string, 0, len(e.src)+len(other.src))
	dst := make([]string, 0, len(e.dst)+len(other.dst))
	src = append(append(src, e.src...), other.src...)
	dst = append(append(dst, e.dst...), other.dst...)
	return &EdgeList{src: src, dst: dst}
}
