package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/xlxs4/yordle/lisp"
	"github.com/xlxs4/yordle/repl"
)

func atExit(in *lisp.Interp, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "\n%+v\n", err)
	if in != nil {
		repl.Dump(in, os.Stderr)
	}
	os.Exit(1)
}

func main() {
	var err error
	var in *lisp.Interp

	defer func() { atExit(in, err) }()

	prelude := ""
	if len(os.Args) > 1 {
		prelude = os.Args[1]
		if prelude == "p" {
			prelude = "prelude.lisp"
		}
	}

	var interactive = bufio.NewReader(os.Stdin)
	tearDown, rawErr := setRawIO()
	if rawErr == nil {
		defer tearDown()
	}

	in, err = repl.Run(repl.Config{
		PreludePath: prelude,
		Output:      os.Stdout,
		Interactive: interactive,
		ArenaCells:  lispArenaCells,
		Keypress:    readKey,
	})
}

const lispArenaCells = 4096
