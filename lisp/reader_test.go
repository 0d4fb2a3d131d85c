package lisp_test

import (
	"strings"
	"testing"

	"github.com/xlxs4/yordle/lisp"
)

var readPrintTests = []struct {
	name string
	src  string
	want string
}{
	{"number", "42", "42"},
	{"negative", "-3.5", "-3.5"},
	{"atom", "foo", "foo"},
	{"nil", "()", "()"},
	{"list", "(1 2 3)", "(1 2 3)"},
	{"nested", "(1 (2 3) 4)", "(1 (2 3) 4)"},
	{"dotted", "(1 . 2)", "(1 . 2)"},
	{"quote-sugar", "'foo", "(quote foo)"},
	{"quote-nested", "'(a b)", "(quote (a b))"},
	{"comment-skipped", "; a comment\n42", "42"},
	{"extra-whitespace", "  (  1   2 )  ", "(1 2)"},
}

func TestReadPrintRoundTrip(t *testing.T) {
	for _, tt := range readPrintTests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			in, err := lisp.New(lisp.Input(strings.NewReader(tt.src)))
			if err != nil {
				t.Fatalf("New: %+v", err)
			}
			x, err := in.Read()
			if err != nil {
				t.Fatalf("Read(%q): %+v", tt.src, err)
			}
			if got := in.Sprint(x); got != tt.want {
				t.Errorf("Read(%q): got %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestReadMultipleForms(t *testing.T) {
	in, err := lisp.New(lisp.Input(strings.NewReader("1 2 3")))
	if err != nil {
		t.Fatalf("New: %+v", err)
	}
	var got []string
	for {
		x, err := in.Read()
		if err != nil {
			break
		}
		got = append(got, in.Sprint(x))
	}
	want := []string{"1", "2", "3"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("form %d: got %q, want %q", i, got[i], want[i])
		}
	}
}
