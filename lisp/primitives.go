package lisp

import (
	"io"

	"github.com/pkg/errors"
)

// primFunc is the signature every primitive implements: given the
// unevaluated argument list and the caller's environment, produce a
// value or an error. Whether and how args get evaluated is entirely up
// to the primitive -- quote, cond, if and the let/lambda/macro/define
// family all depend on seeing their operands unevaluated.
type primFunc func(in *Interp, args, env Value) (Value, error)

type primDef struct {
	name string
	fn   primFunc
}

// primitiveTable lists every built-in in bootstrap order. A PRIM value's
// payload is an index into this slice. The order itself is significant:
// it is also the order bootstrap binds names into the global
// environment, nearer names shadowing farther ones on a naming
// collision (there are none here, but Assoc's linear scan means the
// last-bound entry is found first).
var primitiveTable = []primDef{
	{"eval", (*Interp).fEval},
	{"quote", (*Interp).fQuote},
	{"cons", (*Interp).fCons},
	{"car", (*Interp).fCar},
	{"cdr", (*Interp).fCdr},
	{"+", (*Interp).fAdd},
	{"-", (*Interp).fSub},
	{"*", (*Interp).fMul},
	{"/", (*Interp).fDiv},
	{"int", (*Interp).fInt},
	{"<", (*Interp).fLt},
	{"eq?", (*Interp).fEqP},
	{"or", (*Interp).fOr},
	{"and", (*Interp).fAnd},
	{"not", (*Interp).fNot},
	{"cond", (*Interp).fCond},
	{"if", (*Interp).fIf},
	{"let*", (*Interp).fLetStar},
	{"let", (*Interp).fLet},
	{"letrec*", (*Interp).fLetrecStar},
	{"lambda", (*Interp).fLambda},
	{"macro", (*Interp).fMacro},
	{"define", (*Interp).fDefine},
	{"assoc", (*Interp).fAssoc},
	{"env", (*Interp).fEnv},
	{"setq", (*Interp).fSetq},
	{"set-car!", (*Interp).fSetCar},
	{"set-cdr!", (*Interp).fSetCdr},
	{"read", (*Interp).fRead},
	{"print", (*Interp).fPrint},
	{"println", (*Interp).fPrintln},
	{"catch", (*Interp).fCatch},
	{"throw", (*Interp).fThrow},
	{"trace", (*Interp).fTrace},
}

// bootstrap builds the initial global environment: #t bound to itself
// first, then every primitive bound by name, outermost (and therefore
// found first by Assoc) last. ERR is interned up front since catch
// conses it onto every trapped error.
func (in *Interp) bootstrap() error {
	t, err := in.arena.Atom("#t")
	if err != nil {
		return err
	}
	in.True = t
	env, err := in.Pair(in.True, in.True, Nil)
	if err != nil {
		return err
	}
	in.globalEnv = env

	if in.errAtom, err = in.arena.Atom("ERR"); err != nil {
		return err
	}

	for i, def := range primitiveTable {
		name, err := in.arena.Atom(def.name)
		if err != nil {
			return err
		}
		in.globalEnv, err = in.Pair(name, mkPrim(i), in.globalEnv)
		if err != nil {
			return err
		}
	}
	return nil
}

// values collects the elements of a proper list into a slice, for
// primitives that want random access to their (already evaluated)
// operands rather than walking cons cells by hand.
func (in *Interp) values(list Value) ([]Value, error) {
	var out []Value
	for list.IsCons() {
		v, err := in.arena.Car(list)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		list, err = in.arena.Cdr(list)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// findEntry walks env for the nearest (symbol . value) entry whose key
// is eq? to sym, returning the entry cons itself so callers can mutate
// its cdr in place.
func (in *Interp) findEntry(sym, env Value) (Value, error) {
	for env.IsCons() {
		entry, err := in.arena.Car(env)
		if err != nil {
			return Nil, err
		}
		key, err := in.arena.Car(entry)
		if err != nil {
			return Nil, err
		}
		if Eq(key, sym) {
			return entry, nil
		}
		env, err = in.arena.Cdr(env)
		if err != nil {
			return Nil, err
		}
	}
	return Nil, errors.Wrapf(ErrSymNotFound, "%s", in.arena.AtomName(sym))
}

func (in *Interp) fEval(args, env Value) (Value, error) {
	x, err := in.arena.Car(args)
	if err != nil {
		return Nil, err
	}
	v, err := in.Eval(x, env)
	if err != nil {
		return Nil, err
	}
	return in.Eval(v, env)
}

func (in *Interp) fQuote(args, env Value) (Value, error) {
	return in.arena.Car(args)
}

func (in *Interp) fCons(args, env Value) (Value, error) {
	ev, err := in.evlis(args, env)
	if err != nil {
		return Nil, err
	}
	vs, err := in.values(ev)
	if err != nil {
		return Nil, err
	}
	return in.arena.Cons(vs[0], vs[1])
}

func (in *Interp) fCar(args, env Value) (Value, error) {
	ev, err := in.evlis(args, env)
	if err != nil {
		return Nil, err
	}
	v, err := in.arena.Car(ev)
	if err != nil {
		return Nil, err
	}
	return in.arena.Car(v)
}

func (in *Interp) fCdr(args, env Value) (Value, error) {
	ev, err := in.evlis(args, env)
	if err != nil {
		return Nil, err
	}
	v, err := in.arena.Car(ev)
	if err != nil {
		return Nil, err
	}
	return in.arena.Cdr(v)
}

func (in *Interp) fAdd(args, env Value) (Value, error) {
	vs, err := in.evalOperands(args, env)
	if err != nil {
		return Nil, err
	}
	if len(vs) == 0 {
		return Num(0), nil
	}
	acc := vs[0].Float()
	for _, v := range vs[1:] {
		acc += v.Float()
	}
	return Num(acc), nil
}

// fSub left-folds its operands starting from the first. A single
// operand is returned unchanged -- there is no unary negation, matching
// the reference implementation this one is descended from.
func (in *Interp) fSub(args, env Value) (Value, error) {
	vs, err := in.evalOperands(args, env)
	if err != nil {
		return Nil, err
	}
	if len(vs) == 0 {
		return Num(0), nil
	}
	acc := vs[0].Float()
	for _, v := range vs[1:] {
		acc -= v.Float()
	}
	return Num(acc), nil
}

func (in *Interp) fMul(args, env Value) (Value, error) {
	vs, err := in.evalOperands(args, env)
	if err != nil {
		return Nil, err
	}
	if len(vs) == 0 {
		return Num(1), nil
	}
	acc := vs[0].Float()
	for _, v := range vs[1:] {
		acc *= v.Float()
	}
	return Num(acc), nil
}

// fDiv left-folds its operands starting from the first. A single
// operand is returned unchanged -- there is no unary reciprocal,
// matching the reference implementation this one is descended from.
func (in *Interp) fDiv(args, env Value) (Value, error) {
	vs, err := in.evalOperands(args, env)
	if err != nil {
		return Nil, err
	}
	if len(vs) == 0 {
		return Num(1), nil
	}
	acc := vs[0].Float()
	for _, v := range vs[1:] {
		acc /= v.Float()
	}
	return Num(acc), nil
}

func (in *Interp) evalOperands(args, env Value) ([]Value, error) {
	ev, err := in.evlis(args, env)
	if err != nil {
		return nil, err
	}
	return in.values(ev)
}

// fInt truncates its operand towards zero, within a fixed +-1e9 bound;
// outside that bound it returns the operand unchanged rather than
// overflowing an int64 cast. The bound is arbitrary but preserved from
// the reference implementation this one is descended from.
func (in *Interp) fInt(args, env Value) (Value, error) {
	vs, err := in.evalOperands(args, env)
	if err != nil {
		return Nil, err
	}
	n := vs[0].Float()
	if n-1e9 < 0 && n+1e9 > 0 {
		return Num(float64(int64(n))), nil
	}
	return Num(n), nil
}

func (in *Interp) fLt(args, env Value) (Value, error) {
	vs, err := in.evalOperands(args, env)
	if err != nil {
		return Nil, err
	}
	if vs[0].Float() < vs[1].Float() {
		return in.True, nil
	}
	return Nil, nil
}

func (in *Interp) fEqP(args, env Value) (Value, error) {
	vs, err := in.evalOperands(args, env)
	if err != nil {
		return Nil, err
	}
	if Eq(vs[0], vs[1]) {
		return in.True, nil
	}
	return Nil, nil
}

// fOr evaluates its operands left to right, short-circuiting on the
// first non-nil value and returning it. Unlike +, -, * and /, or cannot
// pre-evaluate with evlis because it must not evaluate operands past
// the first truthy one.
func (in *Interp) fOr(args, env Value) (Value, error) {
	cur := args
	for cur.IsCons() {
		x, err := in.arena.Car(cur)
		if err != nil {
			return Nil, err
		}
		v, err := in.Eval(x, env)
		if err != nil {
			return Nil, err
		}
		if !v.IsNil() {
			return v, nil
		}
		cur, err = in.arena.Cdr(cur)
		if err != nil {
			return Nil, err
		}
	}
	return Nil, nil
}

// fAnd evaluates its operands left to right, short-circuiting to Nil on
// the first nil value; otherwise it returns the last value evaluated,
// or #t if there were no operands.
func (in *Interp) fAnd(args, env Value) (Value, error) {
	cur := args
	result := in.True
	for cur.IsCons() {
		x, err := in.arena.Car(cur)
		if err != nil {
			return Nil, err
		}
		v, err := in.Eval(x, env)
		if err != nil {
			return Nil, err
		}
		if v.IsNil() {
			return Nil, nil
		}
		result = v
		cur, err = in.arena.Cdr(cur)
		if err != nil {
			return Nil, err
		}
	}
	return result, nil
}

func (in *Interp) fNot(args, env Value) (Value, error) {
	x, err := in.arena.Car(args)
	if err != nil {
		return Nil, err
	}
	v, err := in.Eval(x, env)
	if err != nil {
		return Nil, err
	}
	if v.IsNil() {
		return in.True, nil
	}
	return Nil, nil
}

// fCond walks (test expr) clauses in order, evaluating each test in
// turn; the first one that comes back non-nil has its expr evaluated
// and returned. No matching clause yields Nil.
func (in *Interp) fCond(args, env Value) (Value, error) {
	cur := args
	for cur.IsCons() {
		clause, err := in.arena.Car(cur)
		if err != nil {
			return Nil, err
		}
		test, err := in.arena.Car(clause)
		if err != nil {
			return Nil, err
		}
		tv, err := in.Eval(test, env)
		if err != nil {
			return Nil, err
		}
		if !tv.IsNil() {
			rest, err := in.arena.Cdr(clause)
			if err != nil {
				return Nil, err
			}
			expr, err := in.arena.Car(rest)
			if err != nil {
				return Nil, err
			}
			return in.Eval(expr, env)
		}
		cur, err = in.arena.Cdr(cur)
		if err != nil {
			return Nil, err
		}
	}
	return Nil, nil
}

func (in *Interp) fIf(args, env Value) (Value, error) {
	test, err := in.arena.Car(args)
	if err != nil {
		return Nil, err
	}
	rest, err := in.arena.Cdr(args)
	if err != nil {
		return Nil, err
	}
	thenExpr, err := in.arena.Car(rest)
	if err != nil {
		return Nil, err
	}
	tv, err := in.Eval(test, env)
	if err != nil {
		return Nil, err
	}
	if !tv.IsNil() {
		return in.Eval(thenExpr, env)
	}
	rest2, err := in.arena.Cdr(rest)
	if err != nil {
		return Nil, err
	}
	if !rest2.IsCons() {
		return Nil, nil
	}
	elseExpr, err := in.arena.Car(rest2)
	if err != nil {
		return Nil, err
	}
	return in.Eval(elseExpr, env)
}

// fLetStar binds each (name expr) node in turn, evaluating expr in the
// environment built up so far -- so later bindings see earlier ones --
// then evaluates the trailing body in the fully extended environment.
func (in *Interp) fLetStar(args, env Value) (Value, error) {
	nodes, err := in.values(args)
	if err != nil {
		return Nil, err
	}
	if len(nodes) == 0 {
		return Nil, nil
	}
	cur := env
	for _, binding := range nodes[:len(nodes)-1] {
		name, err := in.arena.Car(binding)
		if err != nil {
			return Nil, err
		}
		rest, err := in.arena.Cdr(binding)
		if err != nil {
			return Nil, err
		}
		expr, err := in.arena.Car(rest)
		if err != nil {
			return Nil, err
		}
		v, err := in.Eval(expr, cur)
		if err != nil {
			return Nil, err
		}
		cur, err = in.Pair(name, v, cur)
		if err != nil {
			return Nil, err
		}
	}
	return in.Eval(nodes[len(nodes)-1], cur)
}

// fLet evaluates every binding's expr in the outer environment env
// before extending it with any of them, so bindings cannot see each
// other -- the parallel-binding counterpart to let*.
func (in *Interp) fLet(args, env Value) (Value, error) {
	nodes, err := in.values(args)
	if err != nil {
		return Nil, err
	}
	if len(nodes) == 0 {
		return Nil, nil
	}
	bindings := nodes[:len(nodes)-1]
	body := nodes[len(nodes)-1]

	names := make([]Value, len(bindings))
	vals := make([]Value, len(bindings))
	for i, binding := range bindings {
		name, err := in.arena.Car(binding)
		if err != nil {
			return Nil, err
		}
		rest, err := in.arena.Cdr(binding)
		if err != nil {
			return Nil, err
		}
		expr, err := in.arena.Car(rest)
		if err != nil {
			return Nil, err
		}
		v, err := in.Eval(expr, env)
		if err != nil {
			return Nil, err
		}
		names[i], vals[i] = name, v
	}

	newEnv := env
	for i := range names {
		newEnv, err = in.Pair(names[i], vals[i], newEnv)
		if err != nil {
			return Nil, err
		}
	}
	return in.Eval(body, newEnv)
}

// fLetrecStar pre-binds every name to Nil in one extended environment,
// then evaluates each expr -- in that same environment, so a binding's
// expr can already see its own and later names -- and patches the real
// value in by mutating the entry's cdr. This is what lets mutually
// recursive local functions close over each other.
func (in *Interp) fLetrecStar(args, env Value) (Value, error) {
	nodes, err := in.values(args)
	if err != nil {
		return Nil, err
	}
	if len(nodes) == 0 {
		return Nil, nil
	}
	bindings := nodes[:len(nodes)-1]
	body := nodes[len(nodes)-1]

	newEnv := env
	entries := make([]Value, 0, len(bindings))
	for _, binding := range bindings {
		name, err := in.arena.Car(binding)
		if err != nil {
			return Nil, err
		}
		entry, err := in.arena.Cons(name, Nil)
		if err != nil {
			return Nil, err
		}
		newEnv, err = in.arena.Cons(entry, newEnv)
		if err != nil {
			return Nil, err
		}
		entries = append(entries, entry)
	}
	for i, binding := range bindings {
		rest, err := in.arena.Cdr(binding)
		if err != nil {
			return Nil, err
		}
		expr, err := in.arena.Car(rest)
		if err != nil {
			return Nil, err
		}
		v, err := in.Eval(expr, newEnv)
		if err != nil {
			return Nil, err
		}
		if err := in.arena.SetCdr(entries[i], v); err != nil {
			return Nil, err
		}
	}
	return in.Eval(body, newEnv)
}

func (in *Interp) fLambda(args, env Value) (Value, error) {
	params, err := in.arena.Car(args)
	if err != nil {
		return Nil, err
	}
	rest, err := in.arena.Cdr(args)
	if err != nil {
		return Nil, err
	}
	body, err := in.arena.Car(rest)
	if err != nil {
		return Nil, err
	}
	return in.closure(params, body, env)
}

func (in *Interp) fMacro(args, env Value) (Value, error) {
	params, err := in.arena.Car(args)
	if err != nil {
		return Nil, err
	}
	rest, err := in.arena.Cdr(args)
	if err != nil {
		return Nil, err
	}
	body, err := in.arena.Car(rest)
	if err != nil {
		return Nil, err
	}
	return in.macro(params, body)
}

// fDefine evaluates expr in the caller's environment and binds it to
// name at the front of the global environment, returning name. Defines
// inside a lambda body still land in the global environment; there is
// no notion of a local define.
func (in *Interp) fDefine(args, env Value) (Value, error) {
	name, err := in.arena.Car(args)
	if err != nil {
		return Nil, err
	}
	rest, err := in.arena.Cdr(args)
	if err != nil {
		return Nil, err
	}
	expr, err := in.arena.Car(rest)
	if err != nil {
		return Nil, err
	}
	v, err := in.Eval(expr, env)
	if err != nil {
		return Nil, err
	}
	in.globalEnv, err = in.Pair(name, v, in.globalEnv)
	if err != nil {
		return Nil, err
	}
	return name, nil
}

// fAssoc looks up key in alist by eq?, independently of the evaluator's
// own environment representation -- alist need not be an environment at
// all, just a list of (key . value) pairs.
func (in *Interp) fAssoc(args, env Value) (Value, error) {
	vs, err := in.evalOperands(args, env)
	if err != nil {
		return Nil, err
	}
	key, lst := vs[0], vs[1]
	for lst.IsCons() {
		entry, err := in.arena.Car(lst)
		if err != nil {
			return Nil, err
		}
		k, err := in.arena.Car(entry)
		if err != nil {
			return Nil, err
		}
		if Eq(k, key) {
			return entry, nil
		}
		lst, err = in.arena.Cdr(lst)
		if err != nil {
			return Nil, err
		}
	}
	return Nil, nil
}

func (in *Interp) fEnv(args, env Value) (Value, error) {
	return env, nil
}

// fSetq mutates an existing binding in place rather than creating a new
// one; it signals ErrSymNotFound through findEntry if name is not
// already bound anywhere in env's chain.
func (in *Interp) fSetq(args, env Value) (Value, error) {
	name, err := in.arena.Car(args)
	if err != nil {
		return Nil, err
	}
	rest, err := in.arena.Cdr(args)
	if err != nil {
		return Nil, err
	}
	expr, err := in.arena.Car(rest)
	if err != nil {
		return Nil, err
	}
	v, err := in.Eval(expr, env)
	if err != nil {
		return Nil, err
	}
	entry, err := in.findEntry(name, env)
	if err != nil {
		return Nil, err
	}
	if err := in.arena.SetCdr(entry, v); err != nil {
		return Nil, err
	}
	return v, nil
}

func (in *Interp) fSetCar(args, env Value) (Value, error) {
	vs, err := in.evalOperands(args, env)
	if err != nil {
		return Nil, err
	}
	if err := in.arena.SetCar(vs[0], vs[1]); err != nil {
		return Nil, err
	}
	return vs[1], nil
}

func (in *Interp) fSetCdr(args, env Value) (Value, error) {
	vs, err := in.evalOperands(args, env)
	if err != nil {
		return Nil, err
	}
	if err := in.arena.SetCdr(vs[0], vs[1]); err != nil {
		return Nil, err
	}
	return vs[1], nil
}

func (in *Interp) fRead(args, env Value) (Value, error) {
	return in.Read()
}

func (in *Interp) fPrint(args, env Value) (Value, error) {
	return in.writeAll(args, env, false)
}

func (in *Interp) fPrintln(args, env Value) (Value, error) {
	return in.writeAll(args, env, true)
}

// writeAll evaluates args and writes them space-separated to the
// interpreter's output, returning the last value written (or Nil if
// there were none).
func (in *Interp) writeAll(args, env Value, newline bool) (Value, error) {
	vs, err := in.evalOperands(args, env)
	if err != nil {
		return Nil, err
	}
	for i, v := range vs {
		if i > 0 {
			if _, err := io.WriteString(in.output, " "); err != nil {
				return Nil, errors.Wrap(err, "print")
			}
		}
		if _, err := io.WriteString(in.output, in.Sprint(v)); err != nil {
			return Nil, errors.Wrap(err, "print")
		}
	}
	if newline {
		if _, err := io.WriteString(in.output, "\n"); err != nil {
			return Nil, errors.Wrap(err, "print")
		}
	}
	if len(vs) == 0 {
		return Nil, nil
	}
	return vs[len(vs)-1], nil
}

// fTrace sets the trace mode (0: off, 1: print each evaluated form,
// 2: also block for a keystroke between steps) and returns the
// previous value, evaluating its single operand first.
func (in *Interp) fTrace(args, env Value) (Value, error) {
	prev := in.trace
	vs, err := in.evalOperands(args, env)
	if err != nil {
		return Nil, err
	}
	if len(vs) > 0 {
		in.trace = int(vs[0].Float())
	}
	return Num(float64(prev)), nil
}
