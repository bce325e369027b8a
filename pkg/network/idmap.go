package network

import "fmt"

// IDMap is a bijection between external transaction identifiers and dense
// node indices [0, Len()). It is immutable once built.
type IDMap struct {
	keys  []string
	index map[string]int
}

// NewIDMap assigns indices to keys in order. Keys must be unique.
func NewIDMap(keys []string) (*IDMap, error) {
	m := &IDMap{
		keys:  make([]string, len(keys)),
		index: make(map[string]int, len(keys)),
	}
	copy(m.keys, keys)
	for i, k := range keys {
		if j, dup := m.index[k]; dup {
			return nil, fmt.Errorf("identifier %q appears at rows %d and %d", k, j, i)
		}
		m.index[k] = i
	}
	return m, nil
}

// Index returns the dense index of key.
func (m *IDMap) Index(key string) (int, bool) {
	i, ok := m.index[key]
	return i, ok
}

// Key returns the external identifier at index i.
func (m *IDMap) Key(i int) string { return m.keys[i] }

// Len returns the number of identifiers.
func (m *IDMap) Len() int { return len(m.keys) }

// Keys returns the identifiers in index order.
func (m *IDMap) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Pair is a remapped edge.
type Pair struct {
	Src int
	Dst int
}
