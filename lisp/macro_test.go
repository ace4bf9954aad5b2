package lisp_test

import (
	"testing"

	"github.com/chrysalisp-go/lisp/lisptest"
)

func TestMacroExpansionFixedPoint(t *testing.T) {
	tests := lisptest.TestSuite{
		{"single expansion", lisptest.TestSequence{
			{"(defmacro double (x) `(+ ,x ,x))", `double`},
			{`(double 21)`, `42`},
		}},
		{"macro expanding to another macro call", lisptest.TestSequence{
			{"(defmacro sq (x) `(* ,x ,x))", `sq`},
			{"(defmacro sqsq (x) `(sq (sq ,x)))", `sqsq`},
			{`(sqsq 2)`, `16`},
		}},
		{"quote blocks descent", lisptest.TestSequence{
			{"(defmacro boom (x) `(+ ,x 1))", `boom`},
			{`(quote (boom 1))`, `(boom 1)`},
		}},
	}
	lisptest.RunTestSuite(t, tests)
}
