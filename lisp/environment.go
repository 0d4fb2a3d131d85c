package lisp

import "github.com/pkg/errors"

// Assoc walks the (symbol . value) chain env, returning the value bound
// to the first entry whose symbol is eq? to sym. Signals ErrSymNotFound
// if env is exhausted without a match.
func (in *Interp) Assoc(sym, env Value) (Value, error) {
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
			return in.arena.Cdr(entry)
		}
		env, err = in.arena.Cdr(env)
		if err != nil {
			return Nil, err
		}
	}
	return Nil, errors.Wrapf(ErrSymNotFound, "%s", in.arena.AtomName(sym))
}

// Pair extends env with a new (name . value) binding at the front of the
// chain.
func (in *Interp) Pair(name, value, env Value) (Value, error) {
	entry, err := in.arena.Cons(name, value)
	if err != nil {
		return Nil, err
	}
	return in.arena.Cons(entry, env)
}

// Bind extends env according to the shape of params: NIL leaves env
// unchanged; a dotted-pair params binds elementwise against the
// corresponding elements of args, recursing on the tails; a bare atom
// binds that atom to the entire args list (a rest-arg).
func (in *Interp) Bind(params, args, env Value) (Value, error) {
	switch {
	case params.IsNil():
		return env, nil
	case params.IsCons():
		p, err := in.arena.Car(params)
		if err != nil {
			return Nil, err
		}
		a, err := in.arena.Car(args)
		if err != nil {
			return Nil, err
		}
		extended, err := in.Pair(p, a, env)
		if err != nil {
			return Nil, err
		}
		restParams, err := in.arena.Cdr(params)
		if err != nil {
			return Nil, err
		}
		restArgs, err := in.arena.Cdr(args)
		if err != nil {
			return Nil, err
		}
		return in.Bind(restParams, restArgs, extended)
	default:
		return in.Pair(params, args, env)
	}
}
