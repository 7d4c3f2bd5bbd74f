package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const (
	version byte = 1
	hdrLen       = 4 + 1 + 1 + 4
)

var (
	ErrCorrupt = errors.New("ljson: corrupt entry")
	magic4     = [...]byte{'L', 'J', 'S', 'N'}
)

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// Encode frames a payload written by the codec identified by format.
//
//	magic(4) | ver(1) | format(1) | vlen(u32 be) | payload(vlen)
func Encode(format byte, payload []byte) []byte {
	buf := make([]byte, hdrLen, hdrLen+len(payload))
	copy(buf, magic4[:])
	buf[4] = version
	buf[5] = format
	binary.BigEndian.PutUint32(buf[6:hdrLen], uint32(len(payload)))
	return append(buf, payload...)
}

// Decode validates a frame and returns its format byte and payload.
// The payload aliases b.
func Decode(b []byte) (format byte, payload []byte, err error) {
	if len(b) < hdrLen || !hasMagic(b) || b[4] != version {
		return 0, nil, ErrCorrupt
	}
	vlen := int(binary.BigEndian.Uint32(b[6:hdrLen]))
	if vlen != len(b)-hdrLen {
		return 0, nil, ErrCorrupt
	}
	return b[5], b[hdrLen:], nil
}
