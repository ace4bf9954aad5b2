package lisp_test

import (
	"testing"

	"github.com/chrysalisp-go/lisp/lisp"
	"github.com/chrysalisp-go/lisp/lisptest"
)

func TestArithmetic(t *testing.T) {
	tests := lisptest.TestSuite{
		{"basic", lisptest.TestSequence{
			{`(+ 1 2 3)`, `6`},
			{`(- 10 3 2)`, `5`},
			{`(* 2 3 4)`, `24`},
			{`(/ 20 2 5)`, `2`},
			{`(% 10 3)`, `1`},
			{`(max 1 9 3)`, `9`},
			{`(min 1 9 3)`, `1`},
		}},
		{"fixed point", lisptest.TestSequence{
			{`(fmul 131072 65536)`, `131072`}, // 2.0 * 1.0 = 2.0 in 16.16
			{`(fdiv 131072 65536)`, `131072`}, // 2.0 / 1.0 = 2.0 in 16.16
		}},
		{"bitwise", lisptest.TestSequence{
			{`(logand 12 10)`, `8`},
			{`(logior 12 10)`, `14`},
			{`(logxor 12 10)`, `6`},
			{`(shl 1 4)`, `16`},
			{`(shr -1 60)`, `15`},
			{`(asr -16 2)`, `-4`},
		}},
		{"comparison", lisptest.TestSequence{
			{`(= 1 1 1)`, `t`},
			{`(= 1 1 2)`, `nil`},
			{`(/= 1 2 3)`, `t`},
			{`(/= 1 2 1)`, `nil`},
			{`(< 1 2 3)`, `t`},
			{`(< 1 3 2)`, `nil`},
			{`(> 3 2 1)`, `t`},
			{`(<= 1 1 2)`, `t`},
			{`(>= 2 2 1)`, `t`},
		}},
		{"eql", lisptest.TestSequence{
			{`(eql (list 1 2) (list 1 2))`, `t`},
			{`(eql "ab" "ab")`, `t`},
			{`(eql 1 2)`, `nil`},
		}},
	}
	lisptest.RunTestSuite(t, tests)
}

func TestArithmeticErrors(t *testing.T) {
	env := lisptest.NewEnv(t)
	lisptest.AssertEvalError(t, env, `(/ 1 0)`, lisp.ErrGeneric)
	lisptest.AssertEvalError(t, env, `(+ 1 "a")`, lisp.ErrNotAllNums)
	lisptest.AssertEvalError(t, env, `(+ 1)`, lisp.ErrWrongNumOfArgs)
}

// Error contagion: any primitive receiving an Error argument returns it
// unchanged (spec.md §8 property 4).
func TestErrorContagion(t *testing.T) {
	env := lisptest.NewEnv(t)
	lisptest.AssertEvalString(t, env,
		`(defq e (catch (/ 1 0) nil))`, `test:1: (/ num num ...) generic-error: 0`)
	lisptest.AssertEvalError(t, env, `(+ (catch (/ 1 0) nil) 1)`, lisp.ErrGeneric)
	lisptest.AssertEvalError(t, env, `(length (catch (/ 1 0) nil))`, lisp.ErrGeneric)
}
