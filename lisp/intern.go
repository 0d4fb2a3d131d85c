package lisp

import "github.com/pkg/errors"

// Atom interns name in the symbol heap: a linear scan over
// null-terminated byte strings packed upward from offset 0. Two calls
// with equal strings always return bit-identical Values. Appending a new
// name checks the same heap/stack bound as Cons and signals
// ErrOutOfMemory on violation.
func (a *Arena) Atom(name string) (Value, error) {
	off := 0
	for off < a.heapTop {
		end := off
		for end < a.heapTop && a.mem[end] != 0 {
			end++
		}
		if string(a.mem[off:end]) == name {
			return mkAtom(off), nil
		}
		off = end + 1
	}
	newTop := a.heapTop + len(name) + 1
	if newTop > a.stackTop*cellBytes {
		return Nil, errors.Wrap(ErrOutOfMemory, "atom")
	}
	copy(a.mem[a.heapTop:], name)
	a.mem[a.heapTop+len(name)] = 0
	a.heapTop = newTop
	return mkAtom(off), nil
}

// AtomName returns the interned name for an ATOM value.
func (a *Arena) AtomName(v Value) string {
	off := v.Index()
	end := off
	for end < len(a.mem) && a.mem[end] != 0 {
		end++
	}
	return string(a.mem[off:end])
}
