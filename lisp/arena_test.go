package lisp_test

import (
	"testing"

	"github.com/xlxs4/yordle/lisp"
)

func TestArenaConsCarCdr(t *testing.T) {
	a := lisp.NewArena(64)
	p, err := a.Cons(lisp.Num(1), lisp.Num(2))
	if err != nil {
		t.Fatalf("Cons: %+v", err)
	}
	if car, err := a.Car(p); err != nil || car.Float() != 1 {
		t.Errorf("Car: got %v, %v", car, err)
	}
	if cdr, err := a.Cdr(p); err != nil || cdr.Float() != 2 {
		t.Errorf("Cdr: got %v, %v", cdr, err)
	}
}

func TestArenaSetCarCdr(t *testing.T) {
	a := lisp.NewArena(64)
	p, err := a.Cons(lisp.Num(1), lisp.Num(2))
	if err != nil {
		t.Fatalf("Cons: %+v", err)
	}
	if err := a.SetCar(p, lisp.Num(9)); err != nil {
		t.Fatalf("SetCar: %+v", err)
	}
	if err := a.SetCdr(p, lisp.Num(8)); err != nil {
		t.Fatalf("SetCdr: %+v", err)
	}
	if car, _ := a.Car(p); car.Float() != 9 {
		t.Errorf("Car after SetCar: got %v", car)
	}
	if cdr, _ := a.Cdr(p); cdr.Float() != 8 {
		t.Errorf("Cdr after SetCdr: got %v", cdr)
	}
}

func TestArenaCarOfNonPair(t *testing.T) {
	a := lisp.NewArena(64)
	_, err := a.Car(lisp.Num(5))
	if code, ok := lisp.CodeOf(err); !ok || code != lisp.ErrCodeInvCarOrCdr {
		t.Errorf("got %v (code %v, ok %v), want ErrCodeInvCarOrCdr", err, code, ok)
	}
}

func TestArenaOutOfMemory(t *testing.T) {
	a := lisp.NewArena(2)
	if _, err := a.Cons(lisp.Num(1), lisp.Num(2)); err != nil {
		t.Fatalf("first Cons should fit: %+v", err)
	}
	if _, err := a.Cons(lisp.Num(1), lisp.Num(2)); err == nil {
		t.Fatal("second Cons should fail, arena is exhausted")
	} else if code, ok := lisp.CodeOf(err); !ok || code != lisp.ErrCodeOutOfMemory {
		t.Errorf("got %v, want ErrCodeOutOfMemory", err)
	}
}

func TestAtomInterning(t *testing.T) {
	a := lisp.NewArena(64)
	x1, err := a.Atom("hello")
	if err != nil {
		t.Fatalf("Atom: %+v", err)
	}
	x2, err := a.Atom("hello")
	if err != nil {
		t.Fatalf("Atom: %+v", err)
	}
	if !lisp.Eq(x1, x2) {
		t.Error("interning the same name twice produced different Values")
	}
	y, err := a.Atom("world")
	if err != nil {
		t.Fatalf("Atom: %+v", err)
	}
	if lisp.Eq(x1, y) {
		t.Error("interning different names produced the same Value")
	}
	if got := a.AtomName(x1); got != "hello" {
		t.Errorf("AtomName: got %q, want %q", got, "hello")
	}
}

func TestFreeCells(t *testing.T) {
	a := lisp.NewArena(64)
	before := a.FreeCells()
	if _, err := a.Cons(lisp.Num(1), lisp.Num(2)); err != nil {
		t.Fatalf("Cons: %+v", err)
	}
	if after := a.FreeCells(); after != before-2 {
		t.Errorf("FreeCells after one Cons: got %d, want %d", after, before-2)
	}
}
