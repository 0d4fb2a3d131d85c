package lisp

import "strconv"

// Sprint renders v as the reader would need to read it back (modulo the
// <name> form for primitives, which reads back as a plain atom, and the
// unreadable {i} forms for closures and macros, which have no literal
// syntax of their own).
func (in *Interp) Sprint(v Value) string {
	switch {
	case v.IsNil():
		return "()"
	case v.IsAtom():
		return in.arena.AtomName(v)
	case v.IsPrim():
		return "<" + in.primName(v) + ">"
	case v.IsClos():
		return "{" + strconv.Itoa(v.Index()) + "}"
	case v.IsMacr():
		return "{" + strconv.Itoa(v.Index()) + "}"
	case v.IsCons():
		return in.sprintCons(v)
	default:
		return formatNum(v.Float())
	}
}

func (in *Interp) primName(v Value) string {
	idx := v.Index()
	if idx < 0 || idx >= len(primitiveTable) {
		return "?"
	}
	return primitiveTable[idx].name
}

func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'g', 10, 64)
}

// sprintCons renders a cons chain as "(e1 e2 ... eN)", or
// "(e1 e2 ... . tail)" if the chain's final cdr is not Nil.
func (in *Interp) sprintCons(v Value) string {
	out := "("
	first := true
	cur := v
	for cur.IsCons() {
		if !first {
			out += " "
		}
		first = false
		car, err := in.arena.Car(cur)
		if err != nil {
			return out + ")"
		}
		out += in.Sprint(car)
		cur, err = in.arena.Cdr(cur)
		if err != nil {
			return out + ")"
		}
	}
	if !cur.IsNil() {
		out += " . " + in.Sprint(cur)
	}
	return out + ")"
}

// Print writes v to the interpreter's output with no trailing newline.
func (in *Interp) Print(v Value) error {
	_, err := in.output.Write([]byte(in.Sprint(v)))
	return err
}

// Println writes v to the interpreter's output followed by a newline.
func (in *Interp) Println(v Value) error {
	_, err := in.output.Write([]byte(in.Sprint(v) + "\n"))
	return err
}
