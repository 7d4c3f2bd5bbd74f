// Package ljson converts the dynamic values of an embedded scripting host
// (nil, booleans, integers, floats, byte strings and tables) to JSON text and
// back.
//
// Mapping rules:
//   - A table is a JSON array iff it is non-empty and its keys are exactly the
//     integers 1..n; every other table, including the empty one, is an object.
//   - Integers stay integers and floats stay floats: Int(7) is written as 7,
//     Float(7) as 7.0, and decoding keeps the distinction.
//   - Object keys: strings as is, integers and floats in decimal form; other
//     key types fail. Decoding turns keys that read as numbers back into
//     numeric keys, so {"1":"x"} decodes to a table keyed by Int(1).
//   - Strings are raw bytes; invalid UTF-8 is passed through in both directions.
//   - Tables nested deeper than MaxEncodeDepth fail to encode.
//
// Usage:
//
//	t := ljson.NewTable(2)
//	t.Set(ljson.String("name"), ljson.String("ada"))
//	t.Set(ljson.String("tags"), ljson.TableValue(ljson.Array(ljson.String("x"))))
//	b, err := ljson.Encode(ljson.TableValue(t)) // {"name":"ada","tags":["x"]}
//
//	v, err := ljson.Decode(b)
//
// The codec package offers the same value model over msgpack, CBOR and
// protobuf, and the store package persists values in a byte cache.
package ljson
