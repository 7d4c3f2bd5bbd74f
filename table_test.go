package ljson

import (
	"math"
	"testing"
)

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestTableSetGetKeepsInsertionOrder(t *testing.T) {
	tbl := NewTable(0)
	tbl.Set(String("b"), Int(1))
	tbl.Set(String("a"), Int(2))
	tbl.Set(Int(10), Int(3))
	tbl.Set(String("b"), Int(4)) // replace in place

	var keys []Value
	tbl.Range(func(k, _ Value) bool {
		keys = append(keys, k)
		return true
	})
	want := []Value{String("b"), String("a"), Int(10)}
	if len(keys) != len(want) {
		t.Fatalf("keys: got %v want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("key %d: got %v want %v", i, keys[i], want[i])
		}
	}
	if v, _ := tbl.Get(String("b")); v.Int() != 4 {
		t.Fatalf("replaced value: got %v", v)
	}
}

func TestTableIntegralFloatKeysBecomeInts(t *testing.T) {
	tbl := NewTable(0)
	tbl.Set(Float(2.0), String("two"))
	if v, ok := tbl.Get(Int(2)); !ok || v.Str() != "two" {
		t.Fatalf("Float(2) key should be stored as Int(2)")
	}
	tbl.Set(Float(math.Copysign(0, -1)), String("zero"))
	if v, ok := tbl.Get(Int(0)); !ok || v.Str() != "zero" {
		t.Fatalf("Float(-0) key should be stored as Int(0)")
	}
	tbl.Set(Float(2.5), String("half"))
	if _, ok := tbl.Get(Int(2)); !ok || tbl.Len() != 3 {
		t.Fatalf("Float(2.5) must stay a distinct float key")
	}
}

func TestTableRejectsNilAndNaNKeys(t *testing.T) {
	tbl := NewTable(0)
	mustPanic(t, "nil key", func() { tbl.Set(Nil, Int(1)) })
	mustPanic(t, "NaN key", func() { tbl.Set(Float(math.NaN()), Int(1)) })

	if _, ok := tbl.Get(Nil); ok {
		t.Fatalf("Get(nil) should miss")
	}
	if _, ok := tbl.Get(Float(math.NaN())); ok {
		t.Fatalf("Get(NaN) should miss")
	}
}

func TestTableStoresExplicitNil(t *testing.T) {
	tbl := Array(Int(1), Nil, Int(3))
	if tbl.Len() != 3 {
		t.Fatalf("Len: got %d want 3", tbl.Len())
	}
	if v, ok := tbl.Get(Int(2)); !ok || !v.IsNil() {
		t.Fatalf("explicit nil entry missing")
	}
}

func TestTableDeleteReindexes(t *testing.T) {
	tbl := Array(String("a"), String("b"), String("c"))
	if !tbl.Delete(Int(2)) {
		t.Fatalf("Delete existing key reported false")
	}
	if tbl.Delete(Int(2)) {
		t.Fatalf("Delete missing key reported true")
	}
	if v, ok := tbl.Get(Int(3)); !ok || v.Str() != "c" {
		t.Fatalf("entry after deleted one lost: %v", v)
	}
	tbl.Set(Int(3), String("C"))
	if tbl.Len() != 2 {
		t.Fatalf("Set after Delete should replace, Len=%d", tbl.Len())
	}
	if tbl.IsArray() {
		t.Fatalf("{1,3} is not an array")
	}
}

func TestIsArray(t *testing.T) {
	build := func(keys ...Value) *Table {
		tbl := NewTable(len(keys))
		for _, k := range keys {
			tbl.Set(k, Bool(true))
		}
		return tbl
	}
	cases := []struct {
		name string
		t    *Table
		want bool
	}{
		{"empty", NewTable(0), false},
		{"nil table", nil, false},
		{"1..3", build(Int(1), Int(2), Int(3)), true},
		{"out of order", build(Int(3), Int(1), Int(2)), true},
		{"gap", build(Int(1), Int(2), Int(4)), false},
		{"far key", build(Int(1), Int(2), Int(100)), false},
		{"zero", build(Int(0), Int(1)), false},
		{"negative", build(Int(-1), Int(1)), false},
		{"string key", build(Int(1), String("2")), false},
		{"float key", build(Int(1), Float(1.5)), false},
		{"integral float keys", build(Float(1), Float(2)), true},
	}
	for _, tc := range cases {
		if got := tc.t.IsArray(); got != tc.want {
			t.Errorf("%s: IsArray=%v want %v", tc.name, got, tc.want)
		}
	}
}

func TestValueEqual(t *testing.T) {
	a := NewTable(0)
	a.Set(String("x"), Int(1))
	a.Set(String("y"), TableValue(Array(Float(1.5))))
	b := NewTable(0)
	b.Set(String("y"), TableValue(Array(Float(1.5))))
	b.Set(String("x"), Int(1))

	if !TableValue(a).Equal(TableValue(b)) {
		t.Fatalf("tables with same entries in different order should be equal")
	}
	if Int(1).Equal(Float(1)) {
		t.Fatalf("Int(1) and Float(1) must differ")
	}
	if Float(math.NaN()).Equal(Float(math.NaN())) {
		t.Fatalf("NaN must not equal NaN")
	}
	f := Function("f")
	if !f.Equal(f) || f.Equal(Function("f")) {
		t.Fatalf("handles compare by identity")
	}
}

func TestValueString(t *testing.T) {
	tbl := NewTable(0)
	tbl.Set(String("k"), TableValue(Array(Int(1), Float(2), String("s"), Nil, Bool(false))))
	got := TableValue(tbl).String()
	want := `{["k"] = {1, 2.0, "s", nil, false}}`
	if got != want {
		t.Fatalf("String: got %s want %s", got, want)
	}
	if s := Float(math.Inf(-1)).String(); s != "-inf" {
		t.Fatalf("inf: got %s", s)
	}
}
