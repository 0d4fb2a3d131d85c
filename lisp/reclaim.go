package lisp

// Reclaim runs the between-REPL-iteration compaction pass. It must never
// be called mid-evaluation. It:
//
//  1. Resets the pair stack to the cell index stored in the global
//     environment's outermost CONS payload -- the global env anchors
//     everything still reachable, and every cons cell below that index
//     was only ever pushed while evaluating the top-level form that just
//     finished.
//  2. Scans cells from the new stack top to the end of the arena,
//     tracking the highest symbol-heap offset seen in any cell tagged
//     ATOM.
//  3. Truncates the symbol heap to just past that name, discarding
//     symbol text no longer referenced from anything reachable.
//
// This is sound because closures and bindings captured by define live
// further down the stack than the global-env cell that names them, and
// atom offsets are monotonic in insertion order, so the highest
// reachable offset upper-bounds the live region of the heap.
func (in *Interp) Reclaim() {
	if !in.globalEnv.IsCons() {
		return
	}
	in.arena.stackTop = in.globalEnv.Index()

	maxOffset := -1
	maxLen := 0
	for i := in.arena.stackTop; i < in.arena.cells(); i++ {
		v := in.arena.getCell(i)
		if !v.IsAtom() {
			continue
		}
		off := v.Index()
		if off > maxOffset {
			maxOffset = off
			maxLen = len(in.arena.AtomName(v))
		}
	}
	if maxOffset < 0 {
		in.arena.heapTop = 0
		return
	}
	in.arena.heapTop = maxOffset + maxLen + 1
}
