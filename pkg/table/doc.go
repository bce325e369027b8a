// Package table holds the immutable tabular snapshots passed from the
// dataset loader to the network adapter.
//
// A Frame is a key column of external identifiers plus named float64
// columns. Every operation returns a new Frame; column slices are shared
// between frames but never written after construction, so a Frame can be
// handed to other goroutines without copying.
//
// An EdgeList is a pair of parallel identifier columns. Records is the raw
// string grid produced by ReadCSV before columns are typed.
package table
