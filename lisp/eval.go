package lisp

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
)

// Eval evaluates expression x in environment env and returns its value.
// It is a thin trace wrapper around step: when trace mode is off (the
// common case) it adds nothing beyond the call itself.
func (in *Interp) Eval(x, env Value) (Value, error) {
	v, err := in.step(x, env)
	if err != nil || in.trace == 0 {
		return v, err
	}
	fmt.Fprintf(os.Stderr, "%s => %s\n", in.Sprint(x), in.Sprint(v))
	if in.trace == 2 && in.keypress != nil {
		if kerr := in.keypress(); kerr != nil {
			return v, kerr
		}
	}
	return v, nil
}

// step is the evaluator's single-dispatch core. Atoms resolve through the
// environment chain; a cons is treated as an application of its evaluated
// car to its unevaluated cdr; anything else (a number, NIL, a primitive,
// closure or macro value) self-evaluates.
func (in *Interp) step(x, env Value) (Value, error) {
	switch {
	case x.IsAtom():
		return in.Assoc(x, env)
	case x.IsCons():
		op, err := in.arena.Car(x)
		if err != nil {
			return Nil, err
		}
		f, err := in.Eval(op, env)
		if err != nil {
			return Nil, err
		}
		args, err := in.arena.Cdr(x)
		if err != nil {
			return Nil, err
		}
		return in.Apply(f, args, env)
	default:
		return x, nil
	}
}

// evlis evaluates each element of a proper list left to right into a
// freshly consed list. If the list's tail is an atom rather than NIL (an
// improper list terminated by a symbol), that atom is looked up via
// Assoc and spliced in as the final tail.
func (in *Interp) evlis(list, env Value) (Value, error) {
	switch {
	case list.IsCons():
		head, err := in.arena.Car(list)
		if err != nil {
			return Nil, err
		}
		hv, err := in.Eval(head, env)
		if err != nil {
			return Nil, err
		}
		tail, err := in.arena.Cdr(list)
		if err != nil {
			return Nil, err
		}
		tv, err := in.evlis(tail, env)
		if err != nil {
			return Nil, err
		}
		return in.arena.Cons(hv, tv)
	case list.IsAtom():
		return in.Assoc(list, env)
	default:
		return Nil, nil
	}
}

// Apply dispatches f (a PRIM, CLOS or MACR value) against the unevaluated
// argument list args in the caller's environment env. Any other value
// for f signals ErrInvFunType.
func (in *Interp) Apply(f, args, env Value) (Value, error) {
	switch {
	case f.IsPrim():
		idx := f.Index()
		if idx < 0 || idx >= len(primitiveTable) {
			return Nil, errors.Wrap(ErrInvFunType, "apply")
		}
		return primitiveTable[idx].fn(in, args, env)
	case f.IsClos():
		return in.reduce(f, args, env)
	case f.IsMacr():
		return in.expandMacro(f, args, env)
	default:
		return Nil, errors.Wrap(ErrInvFunType, "apply")
	}
}

// closure builds a CLOS value from params, body and the lexical
// environment in effect at creation time. If env is the current global
// environment, NIL is stored instead: a sentinel meaning "use the global
// environment at call time", which is what makes forward references and
// mutual recursion work at the top level.
func (in *Interp) closure(params, body, env Value) (Value, error) {
	captured := env
	if Eq(env, in.globalEnv) {
		captured = Nil
	}
	pb, err := in.arena.Cons(params, body)
	if err != nil {
		return Nil, err
	}
	whole, err := in.arena.Cons(pb, captured)
	if err != nil {
		return Nil, err
	}
	return mkClos(whole.Index()), nil
}

// macro builds a MACR value from params and body: (params . body), with
// no captured environment. Macros do not capture lexical scope.
func (in *Interp) macro(params, body Value) (Value, error) {
	pb, err := in.arena.Cons(params, body)
	if err != nil {
		return Nil, err
	}
	return mkMacr(pb.Index()), nil
}

// reduce invokes closure f: evaluates args in the caller's env, then
// evaluates the closure's body in an environment extending the captured
// environment (or the current global, if NIL was stored) with the
// parameters bound to the evaluated arguments. There is no tail-call
// elimination; recursion depth is bounded by the Go call stack on top of
// whatever the arena's available cells allow.
func (in *Interp) reduce(f, args, env Value) (Value, error) {
	pb, err := in.arena.Car(f)
	if err != nil {
		return Nil, err
	}
	captured, err := in.arena.Cdr(f)
	if err != nil {
		return Nil, err
	}
	params, err := in.arena.Car(pb)
	if err != nil {
		return Nil, err
	}
	body, err := in.arena.Cdr(pb)
	if err != nil {
		return Nil, err
	}
	evArgs, err := in.evlis(args, env)
	if err != nil {
		return Nil, err
	}
	calleeEnv := captured
	if captured.IsNil() {
		calleeEnv = in.globalEnv
	}
	bound, err := in.Bind(params, evArgs, calleeEnv)
	if err != nil {
		return Nil, err
	}
	return in.Eval(body, bound)
}

// expandMacro binds params against the unevaluated args in the global
// environment, evaluates body there to obtain an expanded form, then
// evaluates that expansion in the caller's env.
func (in *Interp) expandMacro(f, args, env Value) (Value, error) {
	params, err := in.arena.Car(f)
	if err != nil {
		return Nil, err
	}
	body, err := in.arena.Cdr(f)
	if err != nil {
		return Nil, err
	}
	bound, err := in.Bind(params, args, in.globalEnv)
	if err != nil {
		return Nil, err
	}
	expansion, err := in.Eval(body, bound)
	if err != nil {
		return Nil, err
	}
	return in.Eval(expansion, env)
}
