package main

import "github.com/pkg/errors"

// setRawIO is not implemented on Windows; the REPL falls back to a
// buffered stdin reader and trace mode 2 behaves like mode 1.
func setRawIO() (func(), error) {
	return nil, errors.New("raw IO not supported")
}

func readKey() error {
	return nil
}
