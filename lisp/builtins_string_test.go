package lisp_test

import (
	"testing"

	"github.com/chrysalisp-go/lisp/lisptest"
)

func TestStringOps(t *testing.T) {
	tests := lisptest.TestSuite{
		{"cmp", lisptest.TestSequence{
			{`(cmp "abc" "abd")`, `-1`},
			{`(cmp "abc" "abc")`, `0`},
			{`(cmp "abd" "abc")`, `1`},
		}},
		{"code/char round-trip", lisptest.TestSequence{
			{`(code "a")`, `97`},
			{`(char 97)`, `"a"`},
			{`(code "ab" 2)`, `25185`},
			{`(char 25185 2)`, `"ab"`},
		}},
		{"str", lisptest.TestSequence{
			{`(str "a" 1 'b)`, `"a1b"`},
			{`(str (list 1 2))`, `"(1 2)"`},
		}},
		{"str reads back a string-stream's bytes", lisptest.TestSequence{
			{`(defq s (string-stream ""))`, `<ostream>`},
			{`(write s "hi")`, `<ostream>`},
			{`(str s)`, "\"hi\n\""},
		}},
	}
	lisptest.RunTestSuite(t, tests)
}
