// Package codec serializes ljson values. JSON is the primary format; msgpack,
// CBOR and protobuf carry the same value model in binary form.
package codec

// Codec encodes/decodes values V to []byte.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

// Format identifies the encoding that produced a payload. It is recorded in
// the store's wire header so a payload is never decoded with the wrong codec.
type Format byte

const (
	FormatUnknown Format = iota
	FormatJSON
	FormatMsgpack
	FormatCBOR
	FormatProtobuf
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatMsgpack:
		return "msgpack"
	case FormatCBOR:
		return "cbor"
	case FormatProtobuf:
		return "protobuf"
	}
	return "unknown"
}

// FormatOf returns the Format of c, or FormatUnknown when c does not report one.
func FormatOf(c any) Format {
	if f, ok := c.(interface{ Format() Format }); ok {
		return f.Format()
	}
	return FormatUnknown
}
