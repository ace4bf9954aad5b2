// Package lisptest is this repo's test harness, grounded on
// elpstest/lisptest.go: a table of expression/expected-print sequences run
// against fresh, isolated environments.
package lisptest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrysalisp-go/lisp/lisp"
	"github.com/chrysalisp-go/lisp/parser"
)

// TestSequence is a sequence of expressions evaluated one after another in
// a single environment, each checked against its expected printed result.
type TestSequence []struct {
	Expr   string // a lisp expression
	Result string // its expected machine-form print
}

// TestSuite is a named set of TestSequences, each run on its own fresh
// environment.
type TestSuite []struct {
	Name string
	TestSequence
}

// NewEnv builds a fresh root environment with the built-in library
// installed and the recursive-descent reader configured, mirroring
// Runner.NewEnv.
func NewEnv(t testing.TB) *lisp.Env {
	env, lerr := lisp.NewEnv(lisp.WithReader(parser.New()))
	require.Nil(t, lerr, "environment construction failed: %v", lerr)
	return env
}

// ReadOne parses exactly one form out of src, failing the test immediately
// if src contains zero or more than one top-level form.
func ReadOne(t testing.TB, env *lisp.Env, src string) *lisp.Value {
	in := lisp.NewBufferInStream("test", src)
	form, ok, lerr := env.Runtime().Reader.ReadForm(env, in)
	require.Nil(t, lerr, "parse error: %v", lerr)
	require.True(t, ok, "no expression parsed from %q", src)
	_, more, lerr := env.Runtime().Reader.ReadForm(env, in)
	require.Nil(t, lerr, "parse error after the first expression in %q: %v", src, lerr)
	require.False(t, more, "more than one expression parsed from %q", src)
	return form
}

// evalOne reads exactly one form out of src, expands macros, and evaluates
// it, mirroring the read-expand-eval sequence repl.RunStream drives.
func evalOne(t testing.TB, env *lisp.Env, src string) *lisp.Value {
	form := ReadOne(t, env, src)
	// ReadOne's ReadForm call restores *stream-name*/*stream-line* once
	// parsing finishes; rebind them here so a runtime Error from expansion
	// or evaluation still carries this source's location (spec.md §7),
	// matching the rebind repl.Run/RunStream do around their own Eval.
	root := env.Root()
	root.Insert(root.Intern(lisp.SymStreamName), lisp.NewString("test"))
	root.Insert(root.Intern(lisp.SymStreamLine), lisp.Int64(1))
	expanded, lerr := lisp.ExpandMacros(env, form)
	require.Nil(t, lerr, "macro expansion of %q failed: %v", src, lerr)
	return lisp.Eval(env, expanded)
}

// RunTestSuite runs every TestSequence in tests on its own isolated
// environment, asserting each expression's printed result in turn.
// Assertion failures inside one sequence do not stop the others from
// running.
func RunTestSuite(t *testing.T, tests TestSuite) {
	for i, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			env := NewEnv(t)
			for j, expr := range test.TestSequence {
				result := evalOne(t, env, expr.Expr)
				assert.Equal(t, expr.Result, result.String(),
					"test %d %q: expr %d: %s", i, test.Name, j, expr.Expr)
			}
		})
	}
}

// AssertEvalString evaluates src (which must parse to exactly one form) in
// env and asserts its machine-form print equals want.
func AssertEvalString(t testing.TB, env *lisp.Env, src, want string) {
	got := evalOne(t, env, src).String()
	assert.Equal(t, want, got, "eval %q", src)
}

// AssertEvalError evaluates src and asserts the result is an Error of the
// given kind.
func AssertEvalError(t testing.TB, env *lisp.Env, src string, kind lisp.ErrKind) {
	got := evalOne(t, env, src)
	if !assert.True(t, got.IsError(), "eval %q: expected an error, got %s", src, got.String()) {
		return
	}
	assert.Equal(t, kind.String(), got.ErrKind().String(), "eval %q", src)
}

// TrimSource removes leading indentation from a multi-line literal
// embedded in a test table, a small convenience for longer programs.
func TrimSource(src string) string {
	return strings.TrimSpace(src)
}
