// Package lisp implements the evaluation core of yordle: a NaN-boxed
// tagged-value model sharing one fixed-capacity arena between an
// upward-growing symbol heap and a downward-growing cons/closure stack,
// together with the environment chain, the evaluator, the primitive
// dispatch table, and the between-iteration reclaimer.
//
// Everything in this package is single-threaded and process-wide: an
// *Interp owns one Arena, one global environment and one current
// character source/sink. Callers (see package repl) are expected to call
// Reclaim between top-level evaluations, never mid-evaluation.
package lisp
