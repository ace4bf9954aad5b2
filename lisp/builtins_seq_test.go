package lisp_test

import (
	"testing"

	"github.com/chrysalisp-go/lisp/lisp"
	"github.com/chrysalisp-go/lisp/lisptest"
)

func TestSequenceOps(t *testing.T) {
	tests := lisptest.TestSuite{
		{"length", lisptest.TestSequence{
			{`(length (list 1 2 3))`, `3`},
			{`(length "abcdef")`, `6`},
		}},
		{"elem", lisptest.TestSequence{
			{`(elem 0 (list 1 2 3))`, `1`},
			{`(elem -2 (list 1 2 3))`, `3`},
			{`(elem 1 "abc")`, `"b"`},
		}},
		{"slice", lisptest.TestSequence{
			{`(slice 1 -1 "abcdef")`, `"bcdef"`},
			{`(slice 0 2 (list 1 2 3))`, `(1 2)`},
			{`(slice 2 2 (list 1 2 3))`, `()`},
		}},
		{"cat", lisptest.TestSequence{
			{`(cat (list 1 2) (list 3 4))`, `(1 2 3 4)`},
			{`(cat "ab" "cd")`, `"abcd"`},
		}},
		{"push-pop-clear", lisptest.TestSequence{
			{`(defq xs (list 1 2))`, `(1 2)`},
			{`(push xs 3 4)`, `(1 2 3 4)`},
			{`xs`, `(1 2 3 4)`},
			{`(pop xs)`, `4`},
			{`xs`, `(1 2 3)`},
			{`(clear xs)`, `()`},
			{`xs`, `()`},
		}},
		{"elem-set shares identity", lisptest.TestSequence{
			{`(defq xs (list 1 2 3))`, `(1 2 3)`},
			{`(defq ys xs)`, `(1 2 3)`},
			{`(elem-set 1 xs 99)`, `99`},
			{`ys`, `(1 99 3)`},
		}},
		{"find/find-rev", lisptest.TestSequence{
			{`(find 2 (list 1 2 3 2))`, `1`},
			{`(find-rev 2 (list 1 2 3 2))`, `3`},
			{`(find 9 (list 1 2 3))`, `nil`},
		}},
		{"merge", lisptest.TestSequence{
			{`(merge (list 'a 'b) (list 'b 'c))`, `(a b c)`},
		}},
		{"split", lisptest.TestSequence{
			{`(split "a b  c" " ")`, `("a" "b" "c")`},
			{`(length (split {a "b c" d} " "))`, `3`},
			{`(elem 0 (split {a "b c" d} " "))`, `"a"`},
			{`(elem 1 (split {a "b c" d} " "))`, `""b c""`},
			{`(elem 2 (split {a "b c" d} " "))`, `"d"`},
		}},
		{"match? (position-wise identity, not value equality)", lisptest.TestSequence{
			{`(match? (list 'a 'b 'c) (list 'a 'b 'c))`, `t`},
			{`(match? (list 'a 'b 'c) (list 'a "_" 'c))`, `t`},
			{`(match? (list 'a 'b) (list 'a 'b 'c))`, `nil`},
			{`(match? (list 'a 'b) (list 'a 'c))`, `nil`},
		}},
		{"copy", lisptest.TestSequence{
			{`(defq xs (list 1 (list 2 3)))`, `(1 (2 3))`},
			{`(defq ys (copy xs))`, `(1 (2 3))`},
			{`(elem-set 0 (elem 1 ys) 99)`, `99`},
			{`xs`, `(1 (2 3))`},
		}},
	}
	lisptest.RunTestSuite(t, tests)
}

func TestSequenceOpErrors(t *testing.T) {
	env := lisptest.NewEnv(t)
	lisptest.AssertEvalError(t, env, `(slice 0 10 (list 1 2 3))`, lisp.ErrNotValidIndex)
	lisptest.AssertEvalError(t, env, `(cat (list 1) "a")`, lisp.ErrNotAllLists)
	lisptest.AssertEvalError(t, env, `(elem 10 (list 1 2 3))`, lisp.ErrNotValidIndex)
	lisptest.AssertEvalError(t, env, `(elem -1 (list 1 2 3))`, lisp.ErrNotValidIndex)
}

func TestPartition(t *testing.T) {
	env := lisptest.NewEnv(t)
	lisptest.AssertEvalString(t, env,
		`(defq xs (list 3 1 4 1 5))`, `(3 1 4 1 5)`)
	lisptest.AssertEvalString(t, env,
		`(partition (lambda (a b) (- a b)) xs 0 5)`, `2`)
}
