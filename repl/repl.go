// Package repl drives the top-level read-eval-print loop: it owns the
// prelude/interactive character source handoff, the free-cells prompt,
// and the between-iteration reclamation pass. None of this is part of
// the evaluator itself -- spec.md calls out line editing, terminal
// buffering, file-opening and the REPL loop as external collaborators.
package repl

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/xlxs4/yordle/lisp"
)

// Config selects the REPL's input/output and the file to load before
// falling back to the interactive source.
type Config struct {
	PreludePath string // empty: no prelude is loaded
	Output      io.Writer
	Interactive io.Reader
	ArenaCells  int
	Keypress    func() error
}

// Run loads cfg.PreludePath (if any), then repeatedly reads, evaluates
// and prints top-level forms from cfg.Interactive, reclaiming the arena
// between iterations. It returns nil on a clean EOF. Evaluation errors
// that carry a Lisp error code are printed as "ERR <code>" and the loop
// continues. Every other failure ends the loop with a non-nil error:
// bootstrap failing, the prelude file failing to open, a reader error
// other than EOF (including a syntax error such as a stray ")"), an
// evaluation error with no Lisp code, or a failed print. Except when
// bootstrap itself fails (then it is nil), the *lisp.Interp is returned
// alongside the error, so a caller can Dump it for postmortem
// diagnostics the way the teacher's atExit inspects a live *vm.Instance.
func Run(cfg Config) (*lisp.Interp, error) {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	printPrompt := func(depth int) {
		if depth > 0 {
			fmt.Fprint(out, "?")
		}
	}

	in, err := lisp.New(
		lisp.ArenaSize(cfg.ArenaCells),
		lisp.Output(out),
		lisp.Keypress(cfg.Keypress),
		lisp.Prompt(printPrompt),
	)
	if err != nil {
		return nil, errors.Wrap(err, "bootstrap")
	}

	in.PushInput(cfg.Interactive)
	if cfg.PreludePath != "" {
		f, err := os.Open(cfg.PreludePath)
		if err != nil {
			return in, errors.Wrapf(err, "open prelude %s", cfg.PreludePath)
		}
		in.PushInput(f)
	}

	for {
		fmt.Fprint(out, "<", in.Arena().FreeCells(), ">> ")
		x, err := in.Read()
		if err != nil {
			if errors.Cause(err) == io.EOF {
				return in, nil
			}
			return in, errors.Wrap(err, "read")
		}
		v, err := in.Eval(x, in.GlobalEnv())
		if err != nil {
			code, ok := lisp.CodeOf(err)
			if !ok {
				return in, errors.Wrap(err, "eval")
			}
			fmt.Fprintf(out, "ERR %d\n", code)
		} else if err := in.Println(v); err != nil {
			return in, errors.Wrap(err, "print")
		}
		in.Reclaim()
	}
}
