package lisp

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

const (
	// DefaultCells is the default arena capacity, in 8-byte cells, shared
	// between the upward-growing symbol heap and the downward-growing
	// cons/closure stack.
	DefaultCells = 4096
	cellBytes    = 8
)

// Arena is the fixed-capacity region backing both the symbol-name heap
// and the pair stack. A CONS(i)/CLOS(i)/MACR(i) value refers to cells i
// (cdr) and i+1 (car); the stack only ever grows downward and is reset
// wholesale by the reclaimer, so pair indices stay stable between
// reclamations. heapTop (a byte offset) and stackTop (a cell index) share
// the same backing array, so a single bound, heapTop <= stackTop*8,
// polices both halves.
type Arena struct {
	mem      []byte
	heapTop  int
	stackTop int
}

// NewArena allocates an Arena with the given capacity in cells. A
// non-positive size is replaced by DefaultCells.
func NewArena(cells int) *Arena {
	if cells <= 0 {
		cells = DefaultCells
	}
	return &Arena{
		mem:      make([]byte, cells*cellBytes),
		stackTop: cells,
	}
}

func (a *Arena) cells() int { return len(a.mem) / cellBytes }

func (a *Arena) getCell(i int) Value {
	return Value(binary.LittleEndian.Uint64(a.mem[i*cellBytes:]))
}

func (a *Arena) setCell(i int, v Value) {
	binary.LittleEndian.PutUint64(a.mem[i*cellBytes:], uint64(v))
}

// FreeCells returns the number of cells still available between the top
// of the symbol heap and the top of the pair stack. This is the quantity
// the REPL's "<free_cells>>" prompt reports.
func (a *Arena) FreeCells() int {
	return a.stackTop - a.heapTop/cellBytes
}

func (a *Arena) fits() bool {
	return a.heapTop <= a.stackTop*cellBytes
}

// Cons allocates a new pair, pushing cdr then car onto the stack and
// decrementing stackTop by two. Returns ErrOutOfMemory if doing so would
// violate the heap/stack bound.
func (a *Arena) Cons(car, cdr Value) (Value, error) {
	if a.stackTop-2 < 0 || a.heapTop > (a.stackTop-2)*cellBytes {
		return Nil, errors.Wrap(ErrOutOfMemory, "cons")
	}
	a.stackTop -= 2
	a.setCell(a.stackTop, cdr)
	a.setCell(a.stackTop+1, car)
	return mkCons(a.stackTop), nil
}

// Car returns the car of a CONS, CLOS or MACR value. Any other tag
// signals ErrInvCarOrCdr.
func (a *Arena) Car(v Value) (Value, error) {
	if !v.isPairLike() {
		return Nil, errors.Wrap(ErrInvCarOrCdr, "car")
	}
	return a.getCell(v.Index() + 1), nil
}

// Cdr returns the cdr of a CONS, CLOS or MACR value. Any other tag
// signals ErrInvCarOrCdr.
func (a *Arena) Cdr(v Value) (Value, error) {
	if !v.isPairLike() {
		return Nil, errors.Wrap(ErrInvCarOrCdr, "cdr")
	}
	return a.getCell(v.Index()), nil
}

// SetCar mutates the car of a CONS value in place. Only valid on CONS;
// CLOS and MACR cells are not mutable through this entry point.
func (a *Arena) SetCar(p, v Value) error {
	if !p.IsCons() {
		return errors.Wrap(ErrInvCarOrCdr, "set-car!")
	}
	a.setCell(p.Index()+1, v)
	return nil
}

// SetCdr mutates the cdr of a CONS value in place.
func (a *Arena) SetCdr(p, v Value) error {
	if !p.IsCons() {
		return errors.Wrap(ErrInvCarOrCdr, "set-cdr!")
	}
	a.setCell(p.Index(), v)
	return nil
}
