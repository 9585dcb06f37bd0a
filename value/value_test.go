package value_test

import (
	"errors"
	"testing"

	"github.com/dbohdan/memdb/value"
)

func TestIntArithmetic(t *testing.T) {
	a := value.NewInt32(10)
	b := value.NewInt32(3)

	if v, err := value.Add(a, b); err != nil || mustInt32(t, v) != 13 {
		t.Errorf("Add: got %v, %v", v, err)
	}
	if v, err := value.Sub(a, b); err != nil || mustInt32(t, v) != 7 {
		t.Errorf("Sub: got %v, %v", v, err)
	}
	if v, err := value.Mul(a, b); err != nil || mustInt32(t, v) != 30 {
		t.Errorf("Mul: got %v, %v", v, err)
	}
	if v, err := value.Div(a, b); err != nil || mustInt32(t, v) != 3 {
		t.Errorf("Div: got %v, %v", v, err)
	}
	if v, err := value.Mod(a, b); err != nil || mustInt32(t, v) != 1 {
		t.Errorf("Mod: got %v, %v", v, err)
	}
}

func TestDivByZero(t *testing.T) {
	if _, err := value.Div(value.NewInt32(1), value.NewInt32(0)); err == nil {
		t.Error("expected an error dividing by zero")
	}
}

func TestStringConcat(t *testing.T) {
	v, err := value.Add(value.NewString("foo"), value.NewString("bar"))
	if err != nil {
		t.Fatal(err)
	}
	s, _ := v.Str()
	if s != "foobar" {
		t.Errorf("got %q, want foobar", s)
	}
}

func TestTypeMismatch(t *testing.T) {
	if _, err := value.Add(value.NewInt32(1), value.NewString("x")); err == nil {
		t.Error("expected a mismatch error")
	}
	var mismatch *value.MismatchError
	_, err := value.Add(value.NewInt32(1), value.NewString("x"))
	if !errors.As(err, &mismatch) {
		t.Errorf("expected *MismatchError, got %T", err)
	}
}

func TestUnsupportedOperator(t *testing.T) {
	if _, err := value.Add(value.NewBool(true), value.NewBool(false)); err == nil {
		t.Error("expected bool + bool to be unsupported")
	}
}

func TestLogic(t *testing.T) {
	tt, ff := value.NewBool(true), value.NewBool(false)
	if v, _ := value.And(tt, ff); mustBool(t, v) != false {
		t.Error("true && false should be false")
	}
	if v, _ := value.Or(tt, ff); mustBool(t, v) != true {
		t.Error("true || false should be true")
	}
	if v, _ := value.Xor(tt, tt); mustBool(t, v) != false {
		t.Error("true ^^ true should be false")
	}
	if v, _ := value.Not(ff); mustBool(t, v) != true {
		t.Error("!false should be true")
	}
}

func TestCompare(t *testing.T) {
	c, err := value.Compare(value.NewInt32(1), value.NewInt32(2))
	if err != nil || c >= 0 {
		t.Errorf("Compare(1,2) = %d, %v", c, err)
	}
	c, err = value.Compare(value.NewString("a"), value.NewString("b"))
	if err != nil || c >= 0 {
		t.Errorf("Compare(a,b) = %d, %v", c, err)
	}
}

func TestEqual(t *testing.T) {
	if !value.Equal(value.NewInt32(5), value.NewInt32(5)) {
		t.Error("5 should equal 5")
	}
	if value.Equal(value.NewInt32(5), value.NewString("5")) {
		t.Error("differently-typed values should never be equal")
	}
}

func TestBytesFromHex(t *testing.T) {
	b, err := value.BytesFromHex("0xDEADBEEF")
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	if len(b) != len(want) {
		t.Fatalf("got %v, want %v", b, want)
	}
	for i := range want {
		if b[i] != want[i] {
			t.Fatalf("got %v, want %v", b, want)
		}
	}
}

func TestRefRoundTrip(t *testing.T) {
	v := value.NewInt32(42)
	ref := value.NewRef(value.Int32, v.Raw())
	got, err := ref.Int32()
	if err != nil || got != 42 {
		t.Errorf("Ref round-trip: got %d, %v", got, err)
	}
}

func mustInt32(t *testing.T, v value.Value) int32 {
	t.Helper()
	i, err := v.Int32()
	if err != nil {
		t.Fatalf("expected int32: %v", err)
	}
	return i
}

func mustBool(t *testing.T, v value.Value) bool {
	t.Helper()
	b, err := v.Bool()
	if err != nil {
		t.Fatalf("expected bool: %v", err)
	}
	return b
}
