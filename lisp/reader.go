package lisp

import (
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// TokenBufferSize bounds the length of a single non-paren, non-quote
// token, mirroring a fixed-size C token buffer: a token holds at most
// TokenBufferSize-1 bytes, and the rest of a longer run is left unread
// and becomes the start of the next token.
const TokenBufferSize = 256

// nextToken reads the next token from the interpreter's current
// character source. Whitespace (any byte in the range (0, ' ']) ends the
// previous token and is otherwise skipped; ';' begins a line comment
// terminated by '\n'; '(', ')' and '\'' are always single-character
// tokens; any other run of non-whitespace, non-paren, non-quote bytes up
// to TokenBufferSize-1 is one token.
func (in *Interp) nextToken() (string, error) {
	var b byte
	var err error
	for {
		b, err = in.input.ReadByte()
		if err != nil {
			return "", err
		}
		if b == ';' {
			for b != '\n' {
				b, err = in.input.ReadByte()
				if err != nil {
					return "", err
				}
			}
			if in.prompt != nil {
				in.prompt(in.parenDepth)
			}
			continue
		}
		if b == '\n' && in.prompt != nil {
			in.prompt(in.parenDepth)
		}
		if b > ' ' {
			break
		}
	}
	if b == '(' || b == ')' || b == '\'' {
		return string(b), nil
	}
	buf := make([]byte, 1, TokenBufferSize)
	buf[0] = b
	for len(buf) < TokenBufferSize-1 {
		b, err = in.input.ReadByte()
		if err != nil {
			if err == io.EOF {
				break
			}
			return "", err
		}
		if b <= ' ' || b == '(' || b == ')' || b == '\'' {
			in.input.UnreadByte()
			break
		}
		buf = append(buf, b)
	}
	return string(buf), nil
}

// parseNumber parses tok as a binary64 number, succeeding only if the
// whole token is consumed -- the Go equivalent of checking that
// scanf("%lg%n") matched the full token rather than a numeric prefix of
// it. A token like "1x" is therefore not a number; it is interned as an
// atom instead.
func parseNumber(tok string) (float64, bool) {
	n, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Read parses the next complete expression from the interpreter's
// current character source.
func (in *Interp) Read() (Value, error) {
	tok, err := in.nextToken()
	if err != nil {
		return Nil, err
	}
	return in.readExpr(tok)
}

func (in *Interp) readExpr(tok string) (Value, error) {
	switch tok {
	case "(":
		return in.readList()
	case "'":
		x, err := in.Read()
		if err != nil {
			return Nil, err
		}
		quote, err := in.arena.Atom("quote")
		if err != nil {
			return Nil, err
		}
		tail, err := in.arena.Cons(x, Nil)
		if err != nil {
			return Nil, err
		}
		return in.arena.Cons(quote, tail)
	case ")":
		return Nil, errors.New("reader: unexpected )")
	default:
		if n, ok := parseNumber(tok); ok {
			return Num(n), nil
		}
		return in.arena.Atom(tok)
	}
}

// readList reads the elements of a list up to its matching ')'. A
// literal "." token introduces an explicit dotted tail: the next full
// expression, after which a closing ')' is required.
func (in *Interp) readList() (Value, error) {
	in.parenDepth++
	defer func() { in.parenDepth-- }()
	tok, err := in.nextToken()
	if err != nil {
		return Nil, err
	}
	switch tok {
	case ")":
		return Nil, nil
	case ".":
		tail, err := in.Read()
		if err != nil {
			return Nil, err
		}
		closeTok, err := in.nextToken()
		if err != nil {
			return Nil, err
		}
		if closeTok != ")" {
			return Nil, errors.New("reader: expected ) after dotted tail")
		}
		return tail, nil
	default:
		head, err := in.readExpr(tok)
		if err != nil {
			return Nil, err
		}
		rest, err := in.readList()
		if err != nil {
			return Nil, err
		}
		return in.arena.Cons(head, rest)
	}
}
