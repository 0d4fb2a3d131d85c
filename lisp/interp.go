package lisp

import (
	"bufio"
	"io"
)

// Interp ties together the arena, the global environment, the primitive
// table, the current character source/sink and the trace mode: the
// process-wide state a Lisp REPL iteration operates on.
type Interp struct {
	arena      *Arena
	globalEnv  Value
	True       Value
	errAtom    Value
	input      byteSource
	output     io.Writer
	trace      int
	keypress   func() error
	parenDepth int
	prompt     func(depth int)
}

// Option configures an Interp at construction time.
type Option func(*Interp) error

// ArenaSize overrides the arena's default capacity, in cells.
func ArenaSize(cells int) Option {
	return func(in *Interp) error { in.arena = NewArena(cells); return nil }
}

// Input pushes r as the interpreter's initial character source.
func Input(r io.Reader) Option {
	return func(in *Interp) error { in.PushInput(r); return nil }
}

// Output sets the sink the print/println primitives write to.
func Output(w io.Writer) Option {
	return func(in *Interp) error { in.output = w; return nil }
}

// Keypress supplies the callback trace mode 2 uses to block for a single
// keystroke between evaluation steps. Without one, mode 2 behaves like
// mode 1.
func Keypress(f func() error) Option {
	return func(in *Interp) error { in.keypress = f; return nil }
}

// Prompt supplies the callback the reader invokes every time it crosses
// a newline while reading: depth is the reader's current nesting level
// inside an unfinished list, 0 meaning a fresh top-level read. A REPL
// uses this to print "<free_cells>>" at depth 0 and "?" at any deeper
// depth, matching the continuation-line prompt spec.md describes.
func Prompt(f func(depth int)) Option {
	return func(in *Interp) error { in.prompt = f; return nil }
}

// New creates an Interp with a fresh arena (or the one ArenaSize
// supplies) and a bootstrapped global environment: #t bound to itself,
// ERR interned, and every primitive bound by name.
func New(opts ...Option) (*Interp, error) {
	in := &Interp{globalEnv: Nil}
	for _, opt := range opts {
		if err := opt(in); err != nil {
			return nil, err
		}
	}
	if in.arena == nil {
		in.arena = NewArena(DefaultCells)
	}
	if in.output == nil {
		in.output = io.Discard
	}
	if err := in.bootstrap(); err != nil {
		return nil, err
	}
	return in, nil
}

// Arena exposes the interpreter's backing arena, mainly for tests and the
// REPL's free-cells prompt.
func (in *Interp) Arena() *Arena { return in.arena }

// GlobalEnv returns the current global environment value.
func (in *Interp) GlobalEnv() Value { return in.globalEnv }

// TraceMode returns the current trace mode (0, 1 or 2).
func (in *Interp) TraceMode() int { return in.trace }

// byteSource is the minimal character-source contract the reader needs:
// one byte at a time, with one byte of pushback for lookahead.
type byteSource interface {
	io.ByteScanner
}

func newByteSource(r io.Reader) byteSource {
	if bs, ok := r.(byteSource); ok {
		return bs
	}
	br := bufio.NewReader(r)
	if c, ok := r.(io.Closer); ok {
		return struct {
			*bufio.Reader
			io.Closer
		}{br, c}
	}
	return br
}

// multiSource chains character sources: the file currently loading, then
// whatever source was active before it. When the front source hits EOF it
// is dropped (and closed, if possible) and the next one takes over. This
// is how a loaded prelude file hands off to the interactive source.
type multiSource struct {
	sources []byteSource
}

func (m *multiSource) ReadByte() (byte, error) {
	for len(m.sources) > 0 {
		b, err := m.sources[0].ReadByte()
		if err != io.EOF {
			return b, err
		}
		if cl, ok := m.sources[0].(io.Closer); ok {
			cl.Close()
		}
		m.sources = m.sources[1:]
	}
	return 0, io.EOF
}

func (m *multiSource) UnreadByte() error {
	if len(m.sources) == 0 {
		return io.EOF
	}
	return m.sources[0].UnreadByte()
}

func (m *multiSource) push(r io.Reader) {
	m.sources = append([]byteSource{newByteSource(r)}, m.sources...)
}

// PushInput sets r as the current character source. When it reaches EOF,
// reading falls back to whatever source was active before it.
func (in *Interp) PushInput(r io.Reader) {
	switch src := in.input.(type) {
	case nil:
		in.input = newByteSource(r)
	case *multiSource:
		src.push(r)
	default:
		m := &multiSource{sources: []byteSource{src}}
		m.push(r)
		in.input = m
	}
}
