package codec

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/fxamacker/cbor/v2"

	"github.com/unkn0wn-root/ljson"
)

// CBOR is a Codec that writes ljson values as CBOR using fxamacker/cbor.
// The zero value is NOT ready to use. Construct with NewCBOR or MustCBOR.
//
// Array-shaped tables become CBOR arrays, other tables maps with typed keys.
// Map entry order is not kept: deterministic=true sorts keys per RFC 8949
// Core Deterministic Encoding, otherwise the order is unspecified. Decoded
// maps are rebuilt in a stable order (integers, then floats, then strings).
// Text strings with invalid UTF-8 are accepted on decode.
type CBOR struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

var _ Codec[ljson.Value] = CBOR{}

// NewCBOR constructs a CBOR codec.
//   - deterministic: CoreDetEncOptions (RFC 8949), byte-for-byte stable output.
//   - otherwise: PreferredUnsortedEncOptions (smaller/faster defaults).
func NewCBOR(deterministic bool) (CBOR, error) {
	var eo cbor.EncOptions
	if deterministic {
		eo = cbor.CoreDetEncOptions()
	} else {
		eo = cbor.PreferredUnsortedEncOptions()
	}
	em, err := eo.EncMode()
	if err != nil {
		return CBOR{}, err
	}
	dm, err := cbor.DecOptions{
		DefaultMapType:  reflect.TypeOf(map[any]any(nil)),
		UTF8:            cbor.UTF8DecodeInvalid,
		MaxNestedLevels: ljson.MaxEncodeDepth,
	}.DecMode()
	if err != nil {
		return CBOR{}, err
	}
	return CBOR{enc: em, dec: dm}, nil
}

// MustCBOR is like NewCBOR but panics on error.
// Handy for package-level variables in tests and examples.
func MustCBOR(deterministic bool) CBOR {
	c, err := NewCBOR(deterministic)
	if err != nil {
		panic(err)
	}
	return c
}

func (c CBOR) Encode(v ljson.Value) ([]byte, error) {
	native, err := toNative(v, 0)
	if err != nil {
		return nil, fmt.Errorf("codec: cbor: %w", err)
	}
	return c.enc.Marshal(native)
}

func (c CBOR) Decode(b []byte) (ljson.Value, error) {
	var native any
	if err := c.dec.Unmarshal(b, &native); err != nil {
		return ljson.Nil, fmt.Errorf("codec: cbor: %w", err)
	}
	v, err := fromNative(native)
	if err != nil {
		return ljson.Nil, fmt.Errorf("codec: cbor: %w", err)
	}
	return v, nil
}

func (CBOR) Format() Format { return FormatCBOR }

// toNative maps a value onto the Go types the CBOR encoder understands:
// []any for array tables and map[any]any with typed keys for the rest.
func toNative(v ljson.Value, depth int) (any, error) {
	switch v.Kind() {
	case ljson.KindNil:
		return nil, nil
	case ljson.KindBool:
		return v.Bool(), nil
	case ljson.KindInt:
		return v.Int(), nil
	case ljson.KindFloat:
		return v.Float(), nil
	case ljson.KindString:
		return v.Str(), nil
	case ljson.KindTable:
	default:
		return nil, fmt.Errorf("%w: %s", ljson.ErrUnsupportedValue, v.Kind())
	}

	depth++
	if depth > ljson.MaxEncodeDepth {
		return nil, ljson.ErrDepthExceeded
	}
	t := v.Table()
	if t.IsArray() {
		out := make([]any, t.Len())
		var err error
		t.Range(func(k, e ljson.Value) bool {
			out[k.Int()-1], err = toNative(e, depth)
			return err == nil
		})
		return out, err
	}
	out := make(map[any]any, t.Len())
	var err error
	t.Range(func(k, e ljson.Value) bool {
		var nk any
		switch k.Kind() {
		case ljson.KindInt:
			nk = k.Int()
		case ljson.KindFloat:
			nk = k.Float()
		case ljson.KindString:
			nk = k.Str()
		default:
			err = fmt.Errorf("%w: %s", ljson.ErrUnsupportedKey, k.Kind())
			return false
		}
		out[nk], err = toNative(e, depth)
		return err == nil
	})
	return out, err
}

func fromNative(x any) (ljson.Value, error) {
	switch x := x.(type) {
	case nil:
		return ljson.Nil, nil
	case bool:
		return ljson.Bool(x), nil
	case uint64:
		return ljson.Int(int64(x)), nil
	case int64:
		return ljson.Int(x), nil
	case float64:
		return ljson.Float(x), nil
	case float32:
		return ljson.Float(float64(x)), nil
	case string:
		return ljson.String(x), nil
	case []byte:
		return ljson.String(string(x)), nil
	case cbor.ByteString:
		return ljson.String(string(x)), nil
	case []any:
		t := ljson.NewTable(len(x))
		for _, e := range x {
			v, err := fromNative(e)
			if err != nil {
				return ljson.Nil, err
			}
			t.Append(v)
		}
		return ljson.TableValue(t), nil
	case map[any]any:
		keys := make([]ljson.Value, 0, len(x))
		vals := make(map[ljson.Value]any, len(x))
		for k, e := range x {
			kv, err := fromNative(k)
			if err != nil {
				return ljson.Nil, err
			}
			if !validKey(kv) {
				return ljson.Nil, fmt.Errorf("%w: %s", ljson.ErrUnsupportedKey, kv.Kind())
			}
			keys = append(keys, kv)
			vals[kv] = e
		}
		sortKeys(keys)
		t := ljson.NewTable(len(keys))
		for _, k := range keys {
			v, err := fromNative(vals[k])
			if err != nil {
				return ljson.Nil, err
			}
			t.Set(k, v)
		}
		return ljson.TableValue(t), nil
	}
	return ljson.Nil, fmt.Errorf("%w: cbor %T", ljson.ErrUnsupportedValue, x)
}

// sortKeys orders integers, then floats, then strings, each ascending.
func sortKeys(keys []ljson.Value) {
	rank := func(k ljson.Value) int {
		switch k.Kind() {
		case ljson.KindInt:
			return 0
		case ljson.KindFloat:
			return 1
		}
		return 2
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if ra, rb := rank(a), rank(b); ra != rb {
			return ra < rb
		}
		switch a.Kind() {
		case ljson.KindInt:
			return a.Int() < b.Int()
		case ljson.KindFloat:
			return a.Float() < b.Float()
		}
		return a.Str() < b.Str()
	})
}
