package ljson

import (
	"math"
	"strconv"
	"strings"

	"github.com/unkn0wn-root/ljson/internal/jsontree"
)

// Kind identifies the dynamic type of a Value.
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindTable
	// Host-only kinds. They can be stored in tables but no codec supports them.
	KindFunction
	KindUserdata
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "boolean"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindTable:
		return "table"
	case KindFunction:
		return "function"
	case KindUserdata:
		return "userdata"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Handle is an opaque host reference carried by function and userdata values.
type Handle struct {
	Ref any
}

// Value is a dynamic value as seen by the host runtime.
// The zero Value is nil. Values are comparable and can be used as table keys.
type Value struct {
	kind Kind
	n    uint64 // bool, int64 or float64 bits
	s    string
	t    *Table
	h    *Handle
}

var Nil = Value{}

func Bool(b bool) Value {
	v := Value{kind: KindBool}
	if b {
		v.n = 1
	}
	return v
}

func Int(i int64) Value     { return Value{kind: KindInt, n: uint64(i)} }
func Float(f float64) Value { return Value{kind: KindFloat, n: math.Float64bits(f)} }

// String wraps raw bytes; s does not need to be valid UTF-8.
func String(s string) Value { return Value{kind: KindString, s: s} }

func TableValue(t *Table) Value {
	if t == nil {
		return Nil
	}
	return Value{kind: KindTable, t: t}
}

// Function wraps an opaque host function reference.
func Function(ref any) Value { return Value{kind: KindFunction, h: &Handle{Ref: ref}} }

// Userdata wraps an opaque host object reference.
func Userdata(ref any) Value { return Value{kind: KindUserdata, h: &Handle{Ref: ref}} }

func (v Value) Kind() Kind     { return v.kind }
func (v Value) IsNil() bool    { return v.kind == KindNil }
func (v Value) Bool() bool     { return v.kind == KindBool && v.n == 1 }
func (v Value) Int() int64     { return int64(v.n) }
func (v Value) Float() float64 { return math.Float64frombits(v.n) }
func (v Value) Str() string    { return v.s }
func (v Value) Table() *Table  { return v.t }

// Handle returns the opaque reference of a function or userdata value.
func (v Value) Handle() *Handle { return v.h }

// Number returns the numeric value of an int or float as float64.
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.Int()), true
	case KindFloat:
		return v.Float(), true
	}
	return 0, false
}

// Equal reports deep equality. Tables are equal when they hold equal entries
// regardless of insertion order; floats compare by value (NaN != NaN).
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNil:
		return true
	case KindBool, KindInt:
		return v.n == o.n
	case KindFloat:
		return v.Float() == o.Float()
	case KindString:
		return v.s == o.s
	case KindTable:
		return v.t.equal(o.t)
	default:
		return v.h == o.h
	}
}

// String renders v in a compact, host-like literal form for debugging.
func (v Value) String() string {
	var b strings.Builder
	v.format(&b, 0)
	return b.String()
}

func (v Value) format(b *strings.Builder, depth int) {
	switch v.kind {
	case KindNil:
		b.WriteString("nil")
	case KindBool:
		b.WriteString(strconv.FormatBool(v.Bool()))
	case KindInt:
		b.WriteString(strconv.FormatInt(v.Int(), 10))
	case KindFloat:
		b.WriteString(formatFloat(v.Float()))
	case KindString:
		b.WriteString(strconv.Quote(v.s))
	case KindTable:
		if depth > MaxEncodeDepth {
			b.WriteString("{...}")
			return
		}
		b.WriteByte('{')
		arr := v.t.IsArray()
		i := 0
		v.t.Range(func(k, e Value) bool {
			if i > 0 {
				b.WriteString(", ")
			}
			i++
			if !arr {
				b.WriteByte('[')
				k.format(b, depth+1)
				b.WriteString("] = ")
			}
			e.format(b, depth+1)
			return true
		})
		b.WriteByte('}')
	default:
		b.WriteString(v.kind.String())
	}
}

// formatFloat is the shortest text that parses back to f, always carrying a
// fraction or exponent so it never reads as an integer.
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	return jsontree.FormatReal(f)
}
