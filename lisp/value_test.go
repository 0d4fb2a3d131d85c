package lisp_test

import (
	"math"
	"testing"

	"github.com/xlxs4/yordle/lisp"
)

func TestValuePredicates(t *testing.T) {
	if !lisp.Nil.IsNil() {
		t.Error("Nil.IsNil() == false")
	}
	if !lisp.Num(1).IsNum() {
		t.Error("Num(1).IsNum() == false")
	}
	if lisp.Nil.IsNum() {
		t.Error("Nil.IsNum() == true")
	}
}

func TestNumRoundTrip(t *testing.T) {
	for _, f := range []float64{0, 1, -1, 3.5, -1e9, 1e9, math.Pi} {
		v := lisp.Num(f)
		if !v.IsNum() {
			t.Fatalf("Num(%v).IsNum() == false", f)
		}
		if got := v.Float(); got != f {
			t.Errorf("round trip %v: got %v", f, got)
		}
	}
}

func TestEq(t *testing.T) {
	if !lisp.Eq(lisp.Num(1), lisp.Num(1)) {
		t.Error("Eq(1, 1) == false")
	}
	if lisp.Eq(lisp.Num(1), lisp.Num(2)) {
		t.Error("Eq(1, 2) == true")
	}
	if lisp.Eq(lisp.Num(0), lisp.Num(math.Copysign(0, -1))) {
		t.Error("Eq(0.0, -0.0) == true")
	}
}
