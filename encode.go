package ljson

import (
	"strconv"

	"github.com/unkn0wn-root/ljson/internal/jsontree"
)

// encoder holds the per-call state of one Encode. It is never shared.
type encoder struct {
	maxDepth  int
	collision KeyCollision
	log       Logger
}

func (e *encoder) encode(v Value, depth int) (*jsontree.Node, error) {
	switch v.kind {
	case KindNil:
		return jsontree.NewNull(), nil
	case KindBool:
		return jsontree.NewBool(v.Bool()), nil
	case KindInt:
		return jsontree.NewInt(v.Int()), nil
	case KindFloat:
		return jsontree.NewReal(v.Float()), nil
	case KindString:
		return jsontree.NewString(v.s), nil
	case KindTable:
		return e.table(v.t, depth+1)
	}
	return nil, ErrUnsupportedValue
}

func (e *encoder) table(t *Table, depth int) (*jsontree.Node, error) {
	if err := checkDepth(depth, e.maxDepth); err != nil {
		return nil, err
	}
	if t.IsArray() {
		return e.array(t, depth)
	}
	obj := jsontree.NewObject(t.Len())
	var pos map[string]int // only built once a numeric key could collide
	for _, ent := range t.entries {
		key, err := KeyString(ent.key)
		if err != nil {
			return nil, within(err, "["+ent.key.kind.String()+" key]")
		}
		val, err := e.encode(ent.val, depth)
		if err != nil {
			return nil, within(err, segment(key))
		}
		if ent.key.kind != KindString || pos != nil {
			if pos == nil {
				pos = make(map[string]int, t.Len())
				for i, m := range obj.Members {
					pos[m.Key] = i
				}
			}
			if i, dup := pos[key]; dup {
				if e.collision == CollisionError {
					return nil, within(ErrKeyCollision, segment(key))
				}
				e.log.Debug("object key collision, later entry wins", Fields{"key": key})
				obj.Members[i].Value = val
				continue
			}
			pos[key] = len(obj.Members)
		}
		obj.Add(key, val)
	}
	return obj, nil
}

// array emits the elements of a table whose keys are exactly 1..n in key
// order, whatever the insertion order was.
func (e *encoder) array(t *Table, depth int) (*jsontree.Node, error) {
	n := t.Len()
	elems := make([]*jsontree.Node, n)
	for _, ent := range t.entries {
		i := ent.key.Int()
		val, err := e.encode(ent.val, depth)
		if err != nil {
			return nil, within(err, "["+strconv.FormatInt(i, 10)+"]")
		}
		elems[i-1] = val
	}
	arr := jsontree.NewArray(n)
	arr.Elems = append(arr.Elems, elems...)
	return arr, nil
}

func segment(key string) string {
	if isIdent(key) {
		return "." + key
	}
	return "[" + strconv.Quote(key) + "]"
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (i > 0 && c >= '0' && c <= '9') {
			continue
		}
		return false
	}
	return true
}
