// Command yordle is the interactive Lisp REPL: it loads an optional
// prelude file, switches the terminal to raw mode for single-keystroke
// trace-mode stepping, and runs the read-eval-print loop until EOF.
package main
