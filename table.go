package ljson

import "math"

type entry struct {
	key Value
	val Value
}

// Table is the host's single aggregate type: an ordered mapping that serves
// both as a sequence (keys 1..N) and as an associative map.
// Iteration follows insertion order. A Table is not safe for concurrent writes.
type Table struct {
	entries []entry
	index   map[Value]int
}

func NewTable(capacity int) *Table {
	return &Table{
		entries: make([]entry, 0, capacity),
		index:   make(map[Value]int, capacity),
	}
}

// Array builds a sequence table with keys 1..len(vs).
func Array(vs ...Value) *Table {
	t := NewTable(len(vs))
	for _, v := range vs {
		t.Append(v)
	}
	return t
}

// normKey applies the host's key rules: float keys holding an exact integer
// become integer keys. Nil and NaN cannot index a table.
func normKey(k Value) Value {
	switch k.kind {
	case KindNil:
		panic("ljson: table index is nil")
	case KindFloat:
		f := k.Float()
		if math.IsNaN(f) {
			panic("ljson: table index is NaN")
		}
		if f == math.Trunc(f) && f >= -(1<<63) && f < 1<<63 {
			return Int(int64(f))
		}
	}
	return k
}

// Set stores v under k, replacing an existing entry in place.
// A nil v is stored as an explicit nil entry; use Delete to remove keys.
func (t *Table) Set(k, v Value) {
	k = normKey(k)
	if i, ok := t.index[k]; ok {
		t.entries[i].val = v
		return
	}
	if t.index == nil {
		t.index = make(map[Value]int)
	}
	t.index[k] = len(t.entries)
	t.entries = append(t.entries, entry{key: k, val: v})
}

func (t *Table) Get(k Value) (Value, bool) {
	if t == nil || k.kind == KindNil {
		return Nil, false
	}
	i, ok := t.index[normKeyLookup(k)]
	if !ok {
		return Nil, false
	}
	return t.entries[i].val, true
}

func normKeyLookup(k Value) Value {
	if k.kind == KindFloat && math.IsNaN(k.Float()) {
		return k
	}
	return normKey(k)
}

// Delete removes k and reports whether it was present.
func (t *Table) Delete(k Value) bool {
	if t == nil || k.kind == KindNil {
		return false
	}
	k = normKeyLookup(k)
	i, ok := t.index[k]
	if !ok {
		return false
	}
	copy(t.entries[i:], t.entries[i+1:])
	t.entries = t.entries[:len(t.entries)-1]
	delete(t.index, k)
	for j := i; j < len(t.entries); j++ {
		t.index[t.entries[j].key] = j
	}
	return true
}

// Append stores v under the integer key Len()+1.
func (t *Table) Append(v Value) {
	t.Set(Int(int64(t.Len()+1)), v)
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Range calls fn for each entry in insertion order until fn returns false.
func (t *Table) Range(fn func(k, v Value) bool) {
	if t == nil {
		return
	}
	for _, e := range t.entries {
		if !fn(e.key, e.val) {
			return
		}
	}
}

// IsArray reports whether t encodes as a JSON array: it is non-empty and its
// keys are exactly the integers 1..Len(). Empty tables are objects.
// The answer is derived on every call; nothing is cached on the table.
func (t *Table) IsArray() bool {
	n := t.Len()
	if n == 0 {
		return false
	}
	seen := 0
	for _, e := range t.entries {
		if e.key.kind != KindInt {
			return false
		}
		if i := e.key.Int(); i < 1 || i > int64(n) {
			return false
		}
		seen++
	}
	// keys are unique, so n in-range integer keys cover 1..n
	return seen == n
}

func (t *Table) equal(o *Table) bool {
	if t == o {
		return true
	}
	if t.Len() != o.Len() {
		return false
	}
	for _, e := range t.entries {
		ov, ok := o.Get(e.key)
		if !ok || !e.val.Equal(ov) {
			return false
		}
	}
	return true
}
