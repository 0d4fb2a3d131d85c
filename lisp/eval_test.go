package lisp_test

import (
	"strings"
	"testing"

	"github.com/xlxs4/yordle/lisp"
)

// run evaluates every top-level form in src against a fresh interpreter
// and returns the printed representation of the last one.
func run(t *testing.T, src string) string {
	t.Helper()
	in, err := lisp.New(lisp.Input(strings.NewReader(src)))
	if err != nil {
		t.Fatalf("New: %+v", err)
	}
	var last lisp.Value
	for {
		x, err := in.Read()
		if err != nil {
			break
		}
		last, err = in.Eval(x, in.GlobalEnv())
		if err != nil {
			t.Fatalf("eval %q: %+v", src, err)
		}
	}
	return in.Sprint(last)
}

// runErr is like run but expects evaluation of the last form to fail,
// returning the error code it carries.
func runErr(t *testing.T, src string) lisp.ErrorCode {
	t.Helper()
	in, err := lisp.New(lisp.Input(strings.NewReader(src)))
	if err != nil {
		t.Fatalf("New: %+v", err)
	}
	var lastErr error
	for {
		x, err := in.Read()
		if err != nil {
			break
		}
		_, lastErr = in.Eval(x, in.GlobalEnv())
		if lastErr != nil {
			break
		}
	}
	code, ok := lisp.CodeOf(lastErr)
	if !ok {
		t.Fatalf("expected a LispError, got %+v", lastErr)
	}
	return code
}

var evalTests = []struct {
	name string
	src  string
	want string
}{
	{"self-eval-num", "42", "42"},
	{"quote", "(quote (1 2 3))", "(1 2 3)"},
	{"cons-car-cdr", "(car (cons 1 2))", "1"},
	{"cdr", "(cdr (cons 1 2))", "2"},
	{"add-fold", "(+ 1 2 3 4)", "10"},
	{"add-empty", "(+)", "0"},
	{"sub-unary", "(- 5)", "5"},
	{"sub-fold", "(- 10 2 3)", "5"},
	{"mul-fold", "(* 2 3 4)", "24"},
	{"div-unary", "(/ 4)", "4"},
	{"div-fold", "(/ 100 5 2)", "10"},
	{"int-in-bound", "(int 3.7)", "3"},
	{"int-out-of-bound", "(int 1e12)", "1e+12"},
	{"lt-true", "(< 1 2)", "#t"},
	{"lt-false", "(< 2 1)", "()"},
	{"eqp-same-atom", "(eq? (quote a) (quote a))", "#t"},
	{"eqp-diff", "(eq? 1 2)", "()"},
	{"or-shortcircuit", "(or () 5 (car 1))", "5"},
	{"and-shortcircuit", "(and 1 () (car 1))", "()"},
	{"not", "(not ())", "#t"},
	{"if-then", "(if 1 10 20)", "10"},
	{"if-else", "(if () 10 20)", "20"},
	{"if-no-else", "(if () 10)", "()"},
	{"cond", "(cond (() 1) (1 2) (1 3))", "2"},
	{"lambda-apply", "((lambda (x y) (+ x y)) 3 4)", "7"},
	{"define-then-use", "(define x 5) (+ x 1)", "6"},
	{"letstar-sequential", "(let* (x 1) (y (+ x 1)) (+ x y))", "3"},
	{"let-parallel", "(define z 1) (let (z 2) (w z) w)", "1"},
	{"letrecstar-mutual", `
		(letrec* (even? (lambda (n) (if (eq? n 0) #t (odd? (- n 1)))))
		         (odd? (lambda (n) (if (eq? n 0) () (even? (- n 1)))))
		         (even? 10))`, "#t"},
	{"macro-expansion", "(define m (macro (a) (cons (quote quote) (cons a ())))) (m (1 2))", "(1 2)"},
	{"setq-mutates", "(define x 1) (setq x 2) x", "2"},
	{"set-car", "(define p (cons 1 2)) (set-car! p 9) (car p)", "9"},
	{"set-cdr", "(define p (cons 1 2)) (set-cdr! p 9) (cdr p)", "9"},
	{"assoc-found", "(assoc (quote b) (quote ((a . 1) (b . 2))))", "(b . 2)"},
	{"assoc-missing", "(assoc (quote z) (quote ((a . 1))))", "()"},
	{"catch-no-error", "(catch 42)", "42"},
	{"catch-catches-throw", "(catch (throw 7))", "(ERR . 7)"},
	{"catch-catches-internal", "(catch (car 1))", "(ERR . 1)"},
	{"recursive-closure-at-toplevel", `
		(define fact (lambda (n) (if (eq? n 0) 1 (* n (fact (- n 1))))))
		(fact 5)`, "120"},
	{"trace-returns-previous", "(trace 1) (trace 0)", "1"},
}

func TestEval(t *testing.T) {
	for _, tt := range evalTests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := run(t, tt.src); got != tt.want {
				t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestTraceModeTwoBlocksOnKeypress(t *testing.T) {
	presses := 0
	in, err := lisp.New(
		lisp.Input(strings.NewReader("(trace 2) (+ 1 2)")),
		lisp.Keypress(func() error { presses++; return nil }),
	)
	if err != nil {
		t.Fatalf("New: %+v", err)
	}
	for {
		x, rerr := in.Read()
		if rerr != nil {
			break
		}
		if _, eerr := in.Eval(x, in.GlobalEnv()); eerr != nil {
			t.Fatalf("eval: %+v", eerr)
		}
	}
	if presses == 0 {
		t.Error("trace mode 2 never invoked the keypress hook")
	}
}

func TestEvalErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		code lisp.ErrorCode
	}{
		{"unbound-symbol", "nosuchsymbol", lisp.ErrCodeSymNotFound},
		{"car-of-number", "(car 5)", lisp.ErrCodeInvCarOrCdr},
		{"apply-number", "(5 1 2)", lisp.ErrCodeInvFunType},
		{"uncaught-throw", "(throw 3)", 3},
	}
	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := runErr(t, tt.src); got != tt.code {
				t.Errorf("%s: got code %d, want %d", tt.name, got, tt.code)
			}
		})
	}
}

func TestForwardReferenceAtTopLevel(t *testing.T) {
	// A closure defined at the top level with the global-env-NIL
	// sentinel sees later defines, enabling forward references.
	src := `
		(define f (lambda (n) (if (eq? n 0) 1 (g (- n 1)))))
		(define g (lambda (n) (if (eq? n 0) 2 (f (- n 1)))))
		(f 4)`
	if got := run(t, src); got != "1" {
		t.Errorf("got %q, want %q", got, "1")
	}
}
