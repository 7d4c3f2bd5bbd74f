package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func mustDecode(t *testing.T, b []byte) (byte, []byte) {
	t.Helper()
	f, p, err := Decode(b)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	return f, p
}

func TestRoundTripEmptyAndNonEmpty(t *testing.T) {
	cases := []struct {
		format  byte
		payload []byte
	}{
		{1, nil},
		{2, []byte(`{"a":1}`)},
		{0xFF, []byte{0, 1, 2, 3, 4}},
	}
	for _, tc := range cases {
		enc := Encode(tc.format, tc.payload)
		f, p := mustDecode(t, enc)
		if f != tc.format {
			t.Fatalf("format mismatch: got %d want %d", f, tc.format)
		}
		if !bytes.Equal(p, tc.payload) {
			t.Fatalf("payload mismatch: got %x want %x", p, tc.payload)
		}
	}
}

func TestRejectsTrailingBytes(t *testing.T) {
	enc := Encode(1, []byte("x"))
	enc = append(enc, 0xDE, 0xAD)
	if _, _, err := Decode(enc); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("want ErrCorrupt on trailing bytes, got %v", err)
	}
}

func TestCorruptHeadersAndLengths(t *testing.T) {
	enc := Encode(1, []byte("abc"))

	badMagic := append([]byte(nil), enc...)
	badMagic[0] = 'X'
	if _, _, err := Decode(badMagic); err == nil {
		t.Fatalf("expected error on bad magic")
	}

	badVer := append([]byte(nil), enc...)
	badVer[4] = version + 1
	if _, _, err := Decode(badVer); err == nil {
		t.Fatalf("expected error on bad version")
	}

	long := append([]byte(nil), enc...)
	binary.BigEndian.PutUint32(long[6:10], 1<<31)
	if _, _, err := Decode(long); err == nil {
		t.Fatalf("expected error on oversized vlen")
	}

	if _, _, err := Decode(enc[:len(enc)-1]); err == nil {
		t.Fatalf("expected error on truncated payload")
	}
	if _, _, err := Decode(enc[:hdrLen-1]); err == nil {
		t.Fatalf("expected error on truncated header")
	}
	if _, _, err := Decode(nil); err == nil {
		t.Fatalf("expected error on empty input")
	}
}

func TestForeignBytesAreCorrupt(t *testing.T) {
	// a raw JSON document written by someone else under our key
	if _, _, err := Decode([]byte(`{"not":"framed"}`)); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("want ErrCorrupt, got %v", err)
	}
}

func TestPayloadAliasesInput(t *testing.T) {
	enc := Encode(3, []byte("hey"))
	_, p := mustDecode(t, enc)
	enc[hdrLen] = 'H'
	if string(p) != "Hey" {
		t.Fatalf("payload should alias frame, got %q", p)
	}
}
