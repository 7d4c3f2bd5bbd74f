package jsontree

import (
	"bytes"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// Write serializes n as compact JSON text. Strings and keys are written
// byte for byte (invalid UTF-8 passes through). Non-finite reals cannot be
// represented and fail the whole write.
func Write(n *Node) ([]byte, error) {
	stream := api.BorrowStream(nil)
	defer api.ReturnStream(stream)

	if err := writeNode(stream, n); err != nil {
		return nil, err
	}
	if stream.Error != nil {
		return nil, fmt.Errorf("jsontree: %w", stream.Error)
	}
	out := make([]byte, stream.Buffered())
	copy(out, stream.Buffer())
	return out, nil
}

func writeNode(s *jsoniter.Stream, n *Node) error {
	switch n.Kind {
	case Null:
		s.WriteNil()
	case Bool:
		s.WriteBool(n.Bool)
	case Int:
		s.WriteInt64(n.Int)
	case Uint:
		s.WriteUint64(n.Uint)
	case Real:
		writeReal(s, n.Real)
	case String:
		s.WriteString(n.Str)
	case Array:
		s.WriteArrayStart()
		for i, e := range n.Elems {
			if i > 0 {
				s.WriteMore()
			}
			if err := writeNode(s, e); err != nil {
				return err
			}
		}
		s.WriteArrayEnd()
	case Object:
		s.WriteObjectStart()
		for i, m := range n.Members {
			if i > 0 {
				s.WriteMore()
			}
			s.WriteObjectField(m.Key)
			if err := writeNode(s, m.Value); err != nil {
				return err
			}
		}
		s.WriteObjectEnd()
	default:
		return fmt.Errorf("jsontree: invalid node kind %d", n.Kind)
	}
	return nil
}

// writeReal writes f with WriteFloat64 and adds a ".0" fraction when the
// text would otherwise read back as an integer. Non-finite values set
// s.Error.
func writeReal(s *jsoniter.Stream, f float64) {
	start := s.Buffered()
	s.WriteFloat64(f)
	if s.Error == nil && bytes.IndexAny(s.Buffer()[start:], ".e") < 0 {
		s.WriteRaw(".0")
	}
}

// FormatReal returns the text Write uses for a finite real, e.g. "7.0",
// "0.5" or "1e+21".
func FormatReal(f float64) string {
	stream := api.BorrowStream(nil)
	defer api.ReturnStream(stream)
	writeReal(stream, f)
	return string(stream.Buffer())
}
