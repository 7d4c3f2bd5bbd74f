package ljson

import (
	"fmt"

	"github.com/unkn0wn-root/ljson/internal/jsontree"
	"github.com/unkn0wn-root/ljson/internal/util"
)

// KeyCollision selects what Encode does when two table keys normalize to the
// same JSON object key, e.g. Int(1) and String("1").
type KeyCollision uint8

const (
	// CollisionOverwrite keeps the first key's position and the last value.
	CollisionOverwrite KeyCollision = iota
	// CollisionError fails the encode with ErrKeyCollision.
	CollisionError
)

// Options tune a Converter. The zero value gives the default behavior.
type Options struct {
	MaxDepth       int          // deepest table nesting on encode; 0 => MaxEncodeDepth
	MaxDecodeDepth int          // deepest nesting on decode; 0 => parser limit only
	KeyCollision   KeyCollision // default CollisionOverwrite
	Logger         Logger       // if nil, NopLogger is used
}

// Converter converts between Values and JSON text. It holds no mutable state
// and is safe for concurrent use; each call works on its own trees.
type Converter struct {
	maxDepth       int
	maxDecodeDepth int
	collision      KeyCollision
	log            Logger
}

func New(opts Options) *Converter {
	return &Converter{
		maxDepth:       util.Coalesce(opts.MaxDepth, MaxEncodeDepth),
		maxDecodeDepth: opts.MaxDecodeDepth,
		collision:      opts.KeyCollision,
		log:            util.Coalesce[Logger](opts.Logger, NopLogger{}),
	}
}

var defaultConverter = New(Options{})

// Encode converts v to JSON text with the default options.
func Encode(v Value) ([]byte, error) { return defaultConverter.Encode(v) }

// Decode parses JSON text into a Value with the default options.
func Decode(data []byte) (Value, error) { return defaultConverter.Decode(data) }

// Encode converts v to JSON text. Tables with keys exactly 1..n become
// arrays, all other tables objects. On error no output is produced.
func (c *Converter) Encode(v Value) ([]byte, error) {
	e := encoder{maxDepth: c.maxDepth, collision: c.collision, log: c.log}
	root, err := e.encode(v, 0)
	if err != nil {
		return nil, newError("encode", err)
	}
	b, err := jsontree.Write(root)
	if err != nil {
		return nil, &Error{Op: "encode", Err: fmt.Errorf("%w: %w", ErrWriteFailure, err)}
	}
	return b, nil
}

// Decode parses data into a Value. Arrays become tables keyed 1..n and
// object keys that read as numbers become numeric keys.
func (c *Converter) Decode(data []byte) (Value, error) {
	root, err := jsontree.Parse(data)
	if err != nil {
		return Nil, &Error{Op: "decode", Err: fmt.Errorf("%w: %w", ErrMalformedInput, err)}
	}
	d := decoder{maxDepth: c.maxDecodeDepth}
	v, err := d.decode(root, 0)
	if err != nil {
		return Nil, newError("decode", err)
	}
	return v, nil
}
