package jsontree

import (
	"math"
	"strings"
	"testing"
)

func mustParse(t *testing.T, s string) *Node {
	t.Helper()
	n, err := Parse([]byte(s))
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return n
}

func TestParseNumberSubtypes(t *testing.T) {
	cases := []struct {
		in   string
		kind Kind
	}{
		{"0", Int},
		{"-0", Int},
		{"123", Int},
		{"-9223372036854775808", Int},
		{"9223372036854775808", Uint},
		{"18446744073709551615", Uint},
		{"18446744073709551616", Real},
		{"1.0", Real},
		{"1e5", Real},
		{"-1E-5", Real},
	}
	for _, tc := range cases {
		n := mustParse(t, tc.in)
		if n.Kind != tc.kind {
			t.Errorf("Parse(%s): kind %s want %s", tc.in, n.Kind, tc.kind)
		}
	}
	if n := mustParse(t, "18446744073709551615"); n.Uint != math.MaxUint64 {
		t.Fatalf("uint value: %d", n.Uint)
	}
}

func TestScanNumber(t *testing.T) {
	valid := map[string]bool{
		"0": true, "-0": true, "10": true, "1.5": false, "1e3": false, "1E+3": false, "-0.0e-0": false,
	}
	for lit, integral := range valid {
		got, ok := scanNumber(lit)
		if !ok || got != integral {
			t.Errorf("scanNumber(%q) = %v, %v; want %v, true", lit, got, ok, integral)
		}
	}
	for _, lit := range []string{"", "-", "+1", "01", "-01", "1.", ".1", "1e", "1e+", "1.2.3", "1-2", "e5"} {
		if _, ok := scanNumber(lit); ok {
			t.Errorf("scanNumber(%q) accepted", lit)
		}
	}
}

func TestParseContainersKeepOrder(t *testing.T) {
	n := mustParse(t, ` { "b" : [1, {"x":null}], "a" : true } `)
	if n.Kind != Object || len(n.Members) != 2 {
		t.Fatalf("got %+v", n)
	}
	if n.Members[0].Key != "b" || n.Members[1].Key != "a" {
		t.Fatalf("member order lost: %q %q", n.Members[0].Key, n.Members[1].Key)
	}
	arr := n.Members[0].Value
	if arr.Kind != Array || arr.Len() != 2 || arr.Elems[1].Members[0].Value.Kind != Null {
		t.Fatalf("nested array: %+v", arr)
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "[", "{", `{"a"}`, "[1 2]", "1 2", "--1", "1e999", `"\x"`} {
		if _, err := Parse([]byte(in)); err == nil {
			t.Errorf("Parse(%q): expected error", in)
		}
	}
	deep := strings.Repeat("[", MaxDepth+1) + strings.Repeat("]", MaxDepth+1)
	if _, err := Parse([]byte(deep)); err == nil {
		t.Fatalf("expected nesting error past MaxDepth")
	}
}

func TestWriteCompact(t *testing.T) {
	obj := NewObject(3)
	obj.Add("a", NewInt(-1))
	arr := NewArray(3)
	arr.Append(NewUint(math.MaxUint64))
	arr.Append(NewReal(2))
	arr.Append(NewNull())
	obj.Add("b", arr)
	obj.Add("c\n", NewBool(false))
	obj.Add("d", NewObject(0))
	obj.Add("e", NewArray(0))

	b, err := Write(obj)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"a":-1,"b":[18446744073709551615,2.0,null],"c\n":false,"d":{},"e":[]}`
	if string(b) != want {
		t.Fatalf("got  %s\nwant %s", b, want)
	}
}

func TestWriteRejectsNonFinite(t *testing.T) {
	for _, f := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		arr := NewArray(2)
		arr.Append(NewReal(f))
		arr.Append(NewInt(1))
		if out, err := Write(arr); err == nil {
			t.Fatalf("Write(%v): expected error, got %s", f, out)
		}
	}
}

func TestWriteOutputIsNotShared(t *testing.T) {
	a, _ := Write(NewString("first"))
	b, _ := Write(NewString("second"))
	if string(a) != `"first"` || string(b) != `"second"` {
		t.Fatalf("pooled buffers leaked between calls: %s %s", a, b)
	}
}

func TestFormatReal(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{math.Copysign(0, -1), "-0.0"},
		{1, "1.0"},
		{-3, "-3.0"},
		{0.5, "0.5"},
		{123.456, "123.456"},
		{1e-6, "0.000001"},
		{1e-7, "1e-07"},
		{1e20, "100000000000000000000.0"},
		{1e21, "1e+21"},
		{1.5e300, "1.5e+300"},
		{math.Pi, "3.141592653589793"},
		{-2.25e-10, "-2.25e-10"},
		{math.MaxFloat64, "1.7976931348623157e+308"},
		{5e-324, "5e-324"},
	}
	for _, tc := range cases {
		if got := FormatReal(tc.in); got != tc.want {
			t.Errorf("FormatReal(%v) = %s; want %s", tc.in, got, tc.want)
		}
	}
}

func TestWriteRealInDocument(t *testing.T) {
	arr := NewArray(3)
	arr.Append(NewReal(7))
	arr.Append(NewReal(2.5))
	arr.Append(NewInt(7))
	out, err := Write(arr)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if string(out) != "[7.0,2.5,7]" {
		t.Fatalf("Write = %s", out)
	}
}

func TestWriteStrings(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", `""`},
		{"plain", `"plain"`},
		{"q\"b\\", `"q\"b\\"`},
		{"\n\r\t", `"\n\r\t"`},
		{"\b\f", `"\u0008\u000c"`},
		{"\x00\x1f", `"\u0000\u001f"`},
		{"ü€😀", `"ü€😀"`},
		{"bad\xffbytes", "\"bad\xffbytes\""},
		{"a\xfe\xff<>&", "\"a\xfe\xff<>&\""},
		{"</script>", `"</script>"`},
	}
	for _, tc := range cases {
		if got, err := Write(NewString(tc.in)); err != nil || string(got) != tc.want {
			t.Errorf("Write(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
		obj := NewObject(1)
		obj.Add(tc.in, NewNull())
		if got, err := Write(obj); err != nil || string(got) != "{"+tc.want+":null}" {
			t.Errorf("Write({%q: null}) = %q, %v", tc.in, got, err)
		}
	}
}
