package lisp

// fCatch evaluates its single argument, unevaluated. If evaluation
// completes normally its value is returned as-is. If it fails with an
// internal error or a user throw, control returns from catch with
// (ERR . n), where ERR is the interned error atom. A non-Lisp error (for
// example an I/O failure from a read or print primitive) is not a code a
// catch frame recognizes, so it keeps propagating.
func (in *Interp) fCatch(args, env Value) (Value, error) {
	expr, err := in.arena.Car(args)
	if err != nil {
		return Nil, err
	}
	result, evalErr := in.Eval(expr, env)
	if evalErr == nil {
		return result, nil
	}
	code, ok := CodeOf(evalErr)
	if !ok {
		return Nil, evalErr
	}
	return in.arena.Cons(in.errAtom, Num(float64(code)))
}

// fThrow raises a non-local transfer carrying the evaluated integer code,
// caught by the nearest enclosing catch or the REPL's top-level handler.
func (in *Interp) fThrow(args, env Value) (Value, error) {
	v, err := in.evlis(args, env)
	if err != nil {
		return Nil, err
	}
	code, err := in.arena.Car(v)
	if err != nil {
		return Nil, err
	}
	return Nil, &LispError{Code: ErrorCode(int64(code.Float()))}
}
