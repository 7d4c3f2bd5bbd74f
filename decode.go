package ljson

import (
	"github.com/unkn0wn-root/ljson/internal/jsontree"
)

// decoder holds the per-call state of one Decode. A maxDepth of 0 leaves
// nesting bounded only by the parser.
type decoder struct {
	maxDepth int
}

func (d *decoder) decode(n *jsontree.Node, depth int) (Value, error) {
	switch n.Kind {
	case jsontree.Bool:
		return Bool(n.Bool), nil
	case jsontree.Int:
		return Int(n.Int), nil
	case jsontree.Uint:
		// reinterpreted as two's complement, as the host's integer type has no unsigned form
		return Int(int64(n.Uint)), nil
	case jsontree.Real:
		return Float(n.Real), nil
	case jsontree.String:
		return String(n.Str), nil
	case jsontree.Array, jsontree.Object:
		depth++
		if d.maxDepth > 0 {
			if err := checkDepth(depth, d.maxDepth); err != nil {
				return Nil, err
			}
		}
		if n.Kind == jsontree.Array {
			return d.array(n, depth)
		}
		return d.object(n, depth)
	}
	return Nil, nil
}

func (d *decoder) array(n *jsontree.Node, depth int) (Value, error) {
	t := NewTable(len(n.Elems))
	for _, e := range n.Elems {
		v, err := d.decode(e, depth)
		if err != nil {
			return Nil, err
		}
		t.Append(v)
	}
	return TableValue(t), nil
}

func (d *decoder) object(n *jsontree.Node, depth int) (Value, error) {
	t := NewTable(len(n.Members))
	for _, m := range n.Members {
		v, err := d.decode(m.Value, depth)
		if err != nil {
			return Nil, err
		}
		t.Set(ParseKey(m.Key), v)
	}
	return TableValue(t), nil
}
