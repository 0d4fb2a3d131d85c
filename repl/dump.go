package repl

import (
	"io"
	"strconv"

	"github.com/xlxs4/yordle/internal/xio"
	"github.com/xlxs4/yordle/lisp"
)

// Dump writes a plain-text snapshot of the interpreter's global
// environment and arena occupancy to w, for post-mortem debugging of a
// wedged or crashed session. It is not a persistent image format --
// spec.md's Non-goals rule that out -- just a diagnostic dump. Every
// write goes through a single ErrWriter so the first failure short-
// circuits the rest without individually checked returns cluttering the
// sequence.
func Dump(in *lisp.Interp, w io.Writer) error {
	ew := xio.NewErrWriter(w)
	io.WriteString(ew, "free cells: ")
	io.WriteString(ew, strconv.Itoa(in.Arena().FreeCells()))
	io.WriteString(ew, "\nglobal env: ")
	io.WriteString(ew, in.Sprint(in.GlobalEnv()))
	io.WriteString(ew, "\n")
	return ew.Err
}
