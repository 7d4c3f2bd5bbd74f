package codec

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"

	"github.com/unkn0wn-root/ljson"
)

// Msgpack is a Codec that writes ljson values as MessagePack using
// vmihailenco/msgpack/v5. The zero value is ready to use.
//
// Unlike JSON, msgpack maps carry typed keys, so integer and float keys
// survive a round trip without normalization or rehydration. Array-shaped
// tables become msgpack arrays. Strings are written as str without UTF-8
// checks; bin payloads decode to strings; ext types are rejected.
type Msgpack struct{}

var _ Codec[ljson.Value] = Msgpack{}

func (Msgpack) Encode(v ljson.Value) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.GetEncoder()
	defer msgpack.PutEncoder(enc)
	enc.Reset(&buf)

	if err := encodeMsgpack(enc, v, 0); err != nil {
		return nil, fmt.Errorf("codec: msgpack: %w", err)
	}
	return buf.Bytes(), nil
}

func (Msgpack) Decode(b []byte) (ljson.Value, error) {
	r := bytes.NewReader(b)
	dec := msgpack.GetDecoder()
	defer msgpack.PutDecoder(dec)
	dec.Reset(r)

	v, err := decodeMsgpack(dec, r, 0)
	if err != nil {
		return ljson.Nil, fmt.Errorf("codec: msgpack: %w", err)
	}
	if r.Len() > 0 {
		return ljson.Nil, fmt.Errorf("codec: msgpack: %d trailing bytes", r.Len())
	}
	return v, nil
}

func (Msgpack) Format() Format { return FormatMsgpack }

func encodeMsgpack(enc *msgpack.Encoder, v ljson.Value, depth int) error {
	switch v.Kind() {
	case ljson.KindNil:
		return enc.EncodeNil()
	case ljson.KindBool:
		return enc.EncodeBool(v.Bool())
	case ljson.KindInt:
		return enc.EncodeInt(v.Int())
	case ljson.KindFloat:
		return enc.EncodeFloat64(v.Float())
	case ljson.KindString:
		return enc.EncodeString(v.Str())
	case ljson.KindTable:
	default:
		return fmt.Errorf("%w: %s", ljson.ErrUnsupportedValue, v.Kind())
	}

	depth++
	if depth > ljson.MaxEncodeDepth {
		return ljson.ErrDepthExceeded
	}
	t := v.Table()
	if t.IsArray() {
		if err := enc.EncodeArrayLen(t.Len()); err != nil {
			return err
		}
		for i := 1; i <= t.Len(); i++ {
			e, _ := t.Get(ljson.Int(int64(i)))
			if err := encodeMsgpack(enc, e, depth); err != nil {
				return err
			}
		}
		return nil
	}
	if err := enc.EncodeMapLen(t.Len()); err != nil {
		return err
	}
	var err error
	t.Range(func(k, e ljson.Value) bool {
		switch k.Kind() {
		case ljson.KindInt, ljson.KindFloat, ljson.KindString:
			err = encodeMsgpack(enc, k, depth)
		default:
			err = fmt.Errorf("%w: %s", ljson.ErrUnsupportedKey, k.Kind())
		}
		if err == nil {
			err = encodeMsgpack(enc, e, depth)
		}
		return err == nil
	})
	return err
}

func decodeMsgpack(dec *msgpack.Decoder, r *bytes.Reader, depth int) (ljson.Value, error) {
	c, err := dec.PeekCode()
	if err != nil {
		return ljson.Nil, err
	}
	switch {
	case c == msgpcode.Nil:
		return ljson.Nil, dec.DecodeNil()
	case c == msgpcode.True || c == msgpcode.False:
		b, err := dec.DecodeBool()
		return ljson.Bool(b), err
	case c == msgpcode.Float || c == msgpcode.Double:
		f, err := dec.DecodeFloat64()
		return ljson.Float(f), err
	case msgpcode.IsFixedNum(c), c >= msgpcode.Uint8 && c <= msgpcode.Int64:
		// uint64 above math.MaxInt64 wraps, like the JSON path
		i, err := dec.DecodeInt64()
		return ljson.Int(i), err
	case msgpcode.IsString(c):
		s, err := dec.DecodeString()
		return ljson.String(s), err
	case msgpcode.IsBin(c):
		b, err := dec.DecodeBytes()
		return ljson.String(string(b)), err
	case msgpcode.IsFixedArray(c), c == msgpcode.Array16, c == msgpcode.Array32:
		n, err := dec.DecodeArrayLen()
		if err != nil {
			return ljson.Nil, err
		}
		if depth+1 > ljson.MaxEncodeDepth {
			return ljson.Nil, ljson.ErrDepthExceeded
		}
		t := ljson.NewTable(min(n, r.Len()))
		for i := 0; i < n; i++ {
			e, err := decodeMsgpack(dec, r, depth+1)
			if err != nil {
				return ljson.Nil, err
			}
			t.Append(e)
		}
		return ljson.TableValue(t), nil
	case msgpcode.IsFixedMap(c), c == msgpcode.Map16, c == msgpcode.Map32:
		n, err := dec.DecodeMapLen()
		if err != nil {
			return ljson.Nil, err
		}
		if depth+1 > ljson.MaxEncodeDepth {
			return ljson.Nil, ljson.ErrDepthExceeded
		}
		t := ljson.NewTable(min(n, r.Len()/2))
		for i := 0; i < n; i++ {
			k, err := decodeMsgpack(dec, r, depth+1)
			if err != nil {
				return ljson.Nil, err
			}
			if !validKey(k) {
				return ljson.Nil, fmt.Errorf("%w: %s", ljson.ErrUnsupportedKey, k.Kind())
			}
			e, err := decodeMsgpack(dec, r, depth+1)
			if err != nil {
				return ljson.Nil, err
			}
			t.Set(k, e)
		}
		return ljson.TableValue(t), nil
	}
	return ljson.Nil, fmt.Errorf("%w: msgpack code %#x", ljson.ErrUnsupportedValue, c)
}

// validKey reports whether k can index a table decoded from a binary format.
func validKey(k ljson.Value) bool {
	switch k.Kind() {
	case ljson.KindInt, ljson.KindString:
		return true
	case ljson.KindFloat:
		f := k.Float()
		return f == f
	}
	return false
}
