// Package jsontree is the boundary between ljson and the JSON text library.
// It holds a small document tree that keeps the integer/real distinction of
// numbers, and reads and writes it with json-iterator.
//
// Strings are byte-transparent in both directions: invalid UTF-8 is neither
// rejected nor replaced.
package jsontree

type Kind uint8

const (
	Null Kind = iota
	Bool
	Int  // signed integer
	Uint // unsigned integer above math.MaxInt64
	Real
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Uint:
		return "uint"
	case Real:
		return "real"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	}
	return "invalid"
}

// Node is one element of a JSON document.
type Node struct {
	Kind    Kind
	Bool    bool
	Int     int64
	Uint    uint64
	Real    float64
	Str     string
	Elems   []*Node  // Array
	Members []Member // Object, in document order
}

type Member struct {
	Key   string
	Value *Node
}

func NewNull() *Node              { return &Node{Kind: Null} }
func NewBool(b bool) *Node        { return &Node{Kind: Bool, Bool: b} }
func NewInt(i int64) *Node        { return &Node{Kind: Int, Int: i} }
func NewUint(u uint64) *Node      { return &Node{Kind: Uint, Uint: u} }
func NewReal(f float64) *Node     { return &Node{Kind: Real, Real: f} }
func NewString(s string) *Node    { return &Node{Kind: String, Str: s} }
func NewArray(n int) *Node        { return &Node{Kind: Array, Elems: make([]*Node, 0, n)} }
func NewObject(n int) *Node       { return &Node{Kind: Object, Members: make([]Member, 0, n)} }
func (n *Node) Append(e *Node)    { n.Elems = append(n.Elems, e) }
func (n *Node) Len() int          { return len(n.Elems) + len(n.Members) }
func (n *Node) IsContainer() bool { return n.Kind == Array || n.Kind == Object }

// Add appends a member without checking for duplicate keys.
func (n *Node) Add(key string, v *Node) {
	n.Members = append(n.Members, Member{Key: key, Value: v})
}
