package lisp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrysalisp-go/lisp/lisp"
	"github.com/chrysalisp-go/lisp/lisptest"
)

func TestEnvInsertFindSetErase(t *testing.T) {
	env := lisptest.NewEnv(t)
	x := env.Intern("x")
	y := env.Intern("y")

	env.Insert(x, lisp.Int64(1))
	v, ok := env.Find(x)
	require.True(t, ok)
	assert.Equal(t, int64(1), v.Int)

	_, ok = env.Find(y)
	assert.False(t, ok)

	assert.True(t, env.Set(x, lisp.Int64(2)))
	v, _ = env.Find(x)
	assert.Equal(t, int64(2), v.Int)

	assert.False(t, env.Set(y, lisp.Int64(0)), "setting an unbound symbol must fail")

	env.Erase(x)
	_, ok = env.Find(x)
	assert.False(t, ok, "erase removes the binding from the current frame")
}

func TestEnvChildShadowsParent(t *testing.T) {
	env := lisptest.NewEnv(t)
	x := env.Intern("x")
	env.Insert(x, lisp.Int64(1))

	child := env.Push()
	child.Insert(x, lisp.Int64(2))
	v, ok := child.Find(x)
	require.True(t, ok)
	assert.Equal(t, int64(2), v.Int, "child frame shadows the parent binding")

	v, ok = env.Find(x)
	require.True(t, ok)
	assert.Equal(t, int64(1), v.Int, "the parent frame is untouched by the child's insert")

	// Set walks the chain and mutates whichever frame holds the symbol.
	assert.True(t, child.Set(x, lisp.Int64(3)))
	v, _ = child.Find(x)
	assert.Equal(t, int64(3), v.Int)
	v, _ = env.Find(x)
	assert.Equal(t, int64(1), v.Int, "Set from the child only reaches the child's own binding")
}

func TestEnvResizeRehashesEveryEntry(t *testing.T) {
	env := lisptest.NewEnv(t)
	syms := make([]*lisp.Value, 0, 50)
	for i := 0; i < 50; i++ {
		s := env.Intern(string(rune('a'+i%26)) + itoaTest(i))
		syms = append(syms, s)
		env.Insert(s, lisp.Int64(int64(i)))
	}
	env.Resize(4)
	for i, s := range syms {
		v, ok := env.Find(s)
		require.True(t, ok, "symbol %d missing after resize", i)
		assert.Equal(t, int64(i), v.Int)
	}
}

func itoaTest(n int) string {
	if n == 0 {
		return "0"
	}
	var buf []byte
	for n > 0 {
		buf = append([]byte{byte('0' + n%10)}, buf...)
		n /= 10
	}
	return string(buf)
}

func TestBindDestructuring(t *testing.T) {
	tests := lisptest.TestSuite{
		{"rest", lisptest.TestSequence{
			{`(defq f (lambda (a &rest b) (list a b)))`, `(lambda (a &rest b) (list a b))`},
			{`(f 1 2 3)`, `(1 (2 3))`},
		}},
		{"optional", lisptest.TestSequence{
			{`(defq f (lambda (a &optional b) (list a b)))`, `(lambda (a &optional b) (list a b))`},
			{`(f 1)`, `(1 nil)`},
		}},
		{"nested pattern", lisptest.TestSequence{
			{`(defq f (lambda ((a b) c) (list a b c)))`, `(lambda ((a b) c) (list a b c))`},
			{`(f (list 1 2) 3)`, `(1 2 3)`},
		}},
	}
	lisptest.RunTestSuite(t, tests)
}

func TestBindErrors(t *testing.T) {
	env := lisptest.NewEnv(t)
	lisptest.AssertEvalString(t, env, `(defq f (lambda (a b) (list a b)))`, `(lambda (a b) (list a b))`)
	lisptest.AssertEvalError(t, env, `(f 1)`, lisp.ErrWrongNumOfArgs)
	lisptest.AssertEvalError(t, env, `(f 1 2 3)`, lisp.ErrWrongNumOfArgs)
}
