package jsontree

import (
	"errors"
	"io"
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

// api is the frozen json-iterator configuration shared by reader and writer.
// Its iterator and stream pools provide the per-call scratch state.
var api = jsoniter.Config{}.Froze()

// MaxDepth is json-iterator's own nesting limit for arrays and objects.
const MaxDepth = 10000

// Parse reads exactly one JSON document from data.
// Content after the document other than whitespace is an error.
func Parse(data []byte) (*Node, error) {
	iter := api.BorrowIterator(data)
	defer api.ReturnIterator(iter)

	root := readNode(iter)
	if !more(iter) {
		return nil, iter.Error
	}
	// the whole input must be consumed; WhatIsNext sets io.EOF at the end
	if iter.WhatIsNext(); iter.Error == nil {
		iter.ReportError("Parse", "unexpected content after document")
	}
	if iter.Error != io.EOF {
		return nil, iter.Error
	}
	return root, nil
}

// more reports whether parsing may continue. io.EOF is set by the iterator
// whenever a token ends exactly at the end of input, which is not an error
// by itself; a truncated container reports its own error afterwards.
func more(iter *jsoniter.Iterator) bool {
	return iter.Error == nil || errors.Is(iter.Error, io.EOF)
}

func readNode(iter *jsoniter.Iterator) *Node {
	switch iter.WhatIsNext() {
	case jsoniter.NilValue:
		iter.ReadNil()
		return NewNull()
	case jsoniter.BoolValue:
		return NewBool(iter.ReadBool())
	case jsoniter.NumberValue:
		return readNumber(iter)
	case jsoniter.StringValue:
		return NewString(iter.ReadString())
	case jsoniter.ArrayValue:
		arr := NewArray(0)
		iter.ReadArrayCB(func(iter *jsoniter.Iterator) bool {
			arr.Append(readNode(iter))
			return more(iter)
		})
		return arr
	case jsoniter.ObjectValue:
		obj := NewObject(0)
		iter.ReadMapCB(func(iter *jsoniter.Iterator, key string) bool {
			obj.Add(key, readNode(iter))
			return more(iter)
		})
		return obj
	default:
		if iter.Error == io.EOF {
			iter.ReportError("readNode", "unexpected end of input")
		} else {
			iter.ReportError("readNode", "expect value")
		}
		return NewNull()
	}
}

// readNumber keeps the numeric subtype of the literal: integers become Int,
// or Uint above math.MaxInt64; fractions, exponents and integers too large
// for uint64 become Real. Reals that overflow float64 are rejected.
func readNumber(iter *jsoniter.Iterator) *Node {
	lit := string(iter.ReadNumber())
	if !more(iter) {
		return NewNull()
	}
	integral, ok := scanNumber(lit)
	if !ok {
		iter.ReportError("readNumber", "invalid number "+strconv.Quote(lit))
		return NewNull()
	}
	if integral {
		if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return NewInt(i)
		}
		if u, err := strconv.ParseUint(lit, 10, 64); err == nil {
			return NewUint(u)
		}
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		// only overflow to ±Inf is possible here; JSON has no infinity
		iter.ReportError("readNumber", "number out of range "+strconv.Quote(lit))
		return NewNull()
	}
	return NewReal(f)
}

// scanNumber validates lit against the JSON number grammar
// -?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)? and reports whether it has
// neither fraction nor exponent.
func scanNumber(lit string) (integral, ok bool) {
	i, n := 0, len(lit)
	if i < n && lit[i] == '-' {
		i++
	}
	switch {
	case i < n && lit[i] == '0':
		i++
	case i < n && lit[i] >= '1' && lit[i] <= '9':
		for i < n && isDigit(lit[i]) {
			i++
		}
	default:
		return false, false
	}
	integral = true
	if i < n && lit[i] == '.' {
		integral = false
		i++
		start := i
		for i < n && isDigit(lit[i]) {
			i++
		}
		if i == start {
			return false, false
		}
	}
	if i < n && (lit[i] == 'e' || lit[i] == 'E') {
		integral = false
		i++
		if i < n && (lit[i] == '+' || lit[i] == '-') {
			i++
		}
		start := i
		for i < n && isDigit(lit[i]) {
			i++
		}
		if i == start {
			return false, false
		}
	}
	return integral, i == n
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
