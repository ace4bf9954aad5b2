package lisp_test

import (
	"testing"

	"github.com/chrysalisp-go/lisp/lisptest"
)

func TestEachAndSome(t *testing.T) {
	tests := lisptest.TestSuite{
		{"each! always runs to completion", lisptest.TestSequence{
			{`(defq acc (list))`, `()`},
			{`(each! 0 3 (lambda (x) (push acc x)) (list (list 10 20 30)))`, `(10 20 30)`},
			{`acc`, `(10 20 30)`},
		}},
		{"each! binds the loop index to _", lisptest.TestSequence{
			{`(defq acc (list))`, `()`},
			{`(each! 0 3 (lambda (x) (push acc _)) (list (list 10 20 30)))`, `(0 1 2)`},
			{`acc`, `(0 1 2)`},
		}},
		{"each! descends when start > end", lisptest.TestSequence{
			{`(defq acc (list))`, `()`},
			{`(each! 3 0 (lambda (x) (push acc x)) (list (list 10 20 30)))`, `(30 20 10)`},
			{`acc`, `(30 20 10)`},
		}},
		{"some! short-circuits on the first non-nil result", lisptest.TestSequence{
			{`(defq seen (list))`, `()`},
			{`(some! 0 5 nil (lambda (x) (push seen x) (eql x 2)) (list (list 0 1 2 3 4)))`, `t`},
			{`seen`, `(0 1 2)`},
		}},
		{"some! runs to the end when mode never transitions", lisptest.TestSequence{
			{`(some! 0 3 nil (lambda (x) nil) (list (list 1 2 3)))`, `nil`},
		}},
	}
	lisptest.RunTestSuite(t, tests)
}
