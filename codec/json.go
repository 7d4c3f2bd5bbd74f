package codec

import "github.com/unkn0wn-root/ljson"

// JSON is a Codec for ljson values backed by an ljson.Converter.
// The zero value uses the default converter options.
type JSON struct {
	Converter *ljson.Converter
}

var _ Codec[ljson.Value] = JSON{}

func (c JSON) Encode(v ljson.Value) ([]byte, error) {
	if c.Converter == nil {
		return ljson.Encode(v)
	}
	return c.Converter.Encode(v)
}

func (c JSON) Decode(b []byte) (ljson.Value, error) {
	if c.Converter == nil {
		return ljson.Decode(b)
	}
	return c.Converter.Decode(b)
}

func (JSON) Format() Format { return FormatJSON }
