package codec

import (
	"fmt"
	"math"
	"sort"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/unkn0wn-root/ljson"
)

// maxExactInt is the largest magnitude a float64 holds without rounding.
const maxExactInt = 1 << 53

// Protobuf is a Codec that carries ljson values as google.protobuf.Value
// (structpb) messages. The zero value is ready to use.
//
// Struct has a single number type, so integers must fit in ±2^53 and any
// integral number decodes as Int: Float(7) comes back as Int(7). Object keys
// follow the JSON rules (KeyString on encode, ParseKey on decode).
// Strings must be valid UTF-8, as proto3 requires.
type Protobuf struct {
	// KeyCollision applies when two table keys share a normalized form.
	KeyCollision ljson.KeyCollision
}

var _ Codec[ljson.Value] = Protobuf{}

func (c Protobuf) Encode(v ljson.Value) ([]byte, error) {
	pv, err := c.toProto(v, 0)
	if err != nil {
		return nil, fmt.Errorf("codec: protobuf: %w", err)
	}
	return proto.MarshalOptions{Deterministic: true}.Marshal(pv)
}

func (Protobuf) Decode(b []byte) (ljson.Value, error) {
	var pv structpb.Value
	if err := proto.Unmarshal(b, &pv); err != nil {
		return ljson.Nil, fmt.Errorf("codec: protobuf: %w", err)
	}
	return fromProto(&pv, 0)
}

func (Protobuf) Format() Format { return FormatProtobuf }

func (c Protobuf) toProto(v ljson.Value, depth int) (*structpb.Value, error) {
	switch v.Kind() {
	case ljson.KindNil:
		return structpb.NewNullValue(), nil
	case ljson.KindBool:
		return structpb.NewBoolValue(v.Bool()), nil
	case ljson.KindInt:
		if i := v.Int(); i > maxExactInt || i < -maxExactInt {
			return nil, fmt.Errorf("%w: integer %d exceeds float64 precision", ljson.ErrUnsupportedValue, i)
		}
		return structpb.NewNumberValue(float64(v.Int())), nil
	case ljson.KindFloat:
		return structpb.NewNumberValue(v.Float()), nil
	case ljson.KindString:
		return structpb.NewStringValue(v.Str()), nil
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
		list := &structpb.ListValue{Values: make([]*structpb.Value, t.Len())}
		var err error
		t.Range(func(k, e ljson.Value) bool {
			list.Values[k.Int()-1], err = c.toProto(e, depth)
			return err == nil
		})
		if err != nil {
			return nil, err
		}
		return structpb.NewListValue(list), nil
	}
	st := &structpb.Struct{Fields: make(map[string]*structpb.Value, t.Len())}
	var err error
	t.Range(func(k, e ljson.Value) bool {
		var key string
		if key, err = ljson.KeyString(k); err != nil {
			return false
		}
		if _, dup := st.Fields[key]; dup && c.KeyCollision == ljson.CollisionError {
			err = fmt.Errorf("%w: %q", ljson.ErrKeyCollision, key)
			return false
		}
		st.Fields[key], err = c.toProto(e, depth)
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	return structpb.NewStructValue(st), nil
}

func fromProto(pv *structpb.Value, depth int) (ljson.Value, error) {
	switch k := pv.GetKind().(type) {
	case nil, *structpb.Value_NullValue:
		return ljson.Nil, nil
	case *structpb.Value_BoolValue:
		return ljson.Bool(k.BoolValue), nil
	case *structpb.Value_NumberValue:
		n := k.NumberValue
		if n == math.Trunc(n) && math.Abs(n) <= maxExactInt {
			return ljson.Int(int64(n)), nil
		}
		return ljson.Float(n), nil
	case *structpb.Value_StringValue:
		return ljson.String(k.StringValue), nil
	case *structpb.Value_ListValue:
		if depth+1 > ljson.MaxEncodeDepth {
			return ljson.Nil, ljson.ErrDepthExceeded
		}
		vals := k.ListValue.GetValues()
		t := ljson.NewTable(len(vals))
		for _, e := range vals {
			v, err := fromProto(e, depth+1)
			if err != nil {
				return ljson.Nil, err
			}
			t.Append(v)
		}
		return ljson.TableValue(t), nil
	case *structpb.Value_StructValue:
		if depth+1 > ljson.MaxEncodeDepth {
			return ljson.Nil, ljson.ErrDepthExceeded
		}
		fields := k.StructValue.GetFields()
		keys := make([]string, 0, len(fields))
		for key := range fields {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		t := ljson.NewTable(len(keys))
		for _, key := range keys {
			v, err := fromProto(fields[key], depth+1)
			if err != nil {
				return ljson.Nil, err
			}
			t.Set(ljson.ParseKey(key), v)
		}
		return ljson.TableValue(t), nil
	}
	return ljson.Nil, fmt.Errorf("%w: %T", ljson.ErrUnsupportedValue, pv.GetKind())
}
