package graph

import (
	"encoding/binary"
	"fmt"
	"math"
)

// ValueType represents the type of a property value
type ValueType uint8

const (
	TypeString ValueType = iota
	TypeInt
	TypeFloat
	TypeBool
	TypeVector
)

func (t ValueType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	case TypeVector:
		return "vector"
	default:
		return fmt.Sprintf("type(%d)", uint8(t))
	}
}

// Value is a typed property value in its little-endian encoding.
type Value struct {
	Type ValueType
	Data []byte
}

func StringValue(s string) Value {
	return Value{Type: TypeString, Data: []byte(s)}
}

func IntValue(i int64) Value {
	data := make([]byte, 8)
	binary.LittleEndian.PutUint64(data, uint64(i))
	return Value{Type: TypeInt, Data: data}
}

func FloatValue(f float64) Value {
	data := make([]byte, 8)
	binary.LittleEndian.PutUint64(data, math.Float64bits(f))
	return Value{Type: TypeFloat, Data: data}
}

func BoolValue(b bool) Value {
	data := []byte{0}
	if b {
		data[0] = 1
	}
	return Value{Type: TypeBool, Data: data}
}

// VectorValue encodes a feature row as [uint32 length][float32...].
func VectorValue(vec []float32) Value {
	data := make([]byte, 4+len(vec)*4)
	binary.LittleEndian.PutUint32(data[0:4], uint32(len(vec)))
	for i, f := range vec {
		binary.LittleEndian.PutUint32(data[4+i*4:8+i*4], math.Float32bits(f))
	}
	return Value{Type: TypeVector, Data: data}
}

func (v Value) typeError(want ValueType) error {
	return fmt.Errorf("%w: value is %s, not %s", ErrValueType, v.Type, want)
}

func (v Value) AsString() (string, error) {
	if v.Type != TypeString {
		return "", v.typeError(TypeString)
	}
	return string(v.Data), nil
}

func (v Value) AsInt() (int64, error) {
	if v.Type != TypeInt {
		return 0, v.typeError(TypeInt)
	}
	return int64(binary.LittleEndian.Uint64(v.Data)), nil
}

func (v Value) AsFloat() (float64, error) {
	if v.Type != TypeFloat {
		return 0, v.typeError(TypeFloat)
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(v.Data)), nil
}

func (v Value) AsBool() (bool, error) {
	if v.Type != TypeBool {
		return false, v.typeError(TypeBool)
	}
	return v.Data[0] == 1, nil
}

func (v Value) AsVector() ([]float32, error) {
	if v.Type != TypeVector {
		return nil, v.typeError(TypeVector)
	}
	if len(v.Data) < 4 {
		return nil, fmt.Errorf("invalid vector data: too short")
	}

	dims := binary.LittleEndian.Uint32(v.Data[0:4])
	expectedLen := 4 + int(dims)*4
	if len(v.Data) != expectedLen {
		return nil, fmt.Errorf("invalid vector data: expected %d bytes, got %d", expectedLen, len(v.Data))
	}

	vec := make([]float32, dims)
	for i := uint32(0); i < dims; i++ {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(v.Data[4+i*4 : 8+i*4]))
	}
	return vec, nil
}

// Node is a transaction vertex. ID is the dense node index.
type Node struct {
	ID         uint64
	Labels     []string
	Properties map[string]Value
}

// Edge is a transaction flow. ID is the position in insertion order.
type Edge struct {
	ID         uint64
	FromNodeID uint64
	ToNodeID   uint64
	Type       string
	Properties map[string]Value
	Weight     float64
}

// Clone creates a deep copy of a node
func (n *Node) Clone() *Node {
	clone := &Node{
		ID:         n.ID,
		Labels:     make([]string, len(n.Labels)),
		Properties: make(map[string]Value, len(n.Properties)),
	}
	copy(clone.Labels, n.Labels)
	for k, v := range n.Properties {
		clone.Properties[k] = v
	}
	return clone
}

// HasLabel checks if node has a specific label
func (n *Node) HasLabel(label string) bool {
	for _, l := range n.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// GetProperty gets a property value
func (n *Node) GetProperty(key string) (Value, bool) {
	val, ok := n.Properties[key]
	return val, ok
}

// Clone creates a deep copy of an edge
func (e *Edge) Clone() *Edge {
	clone := *e
	clone.Properties = make(map[string]Value, len(e.Properties))
	for k, v := range e.Properties {
		clone.Properties[k] = v
	}
	return &clone
}

// Other returns the endpoint opposite id.
func (e *Edge) Other(id uint64) uint64 {
	if e.FromNodeID == id {
		return e.ToNodeID
	}
	return e.FromNodeID
}

// IsSelfLoop reports whether both endpoints are the same node.
func (e *Edge) IsSelfLoop() bool {
	return e.FromNodeID == e.ToNodeID
}
