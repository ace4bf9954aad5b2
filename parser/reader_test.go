package parser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrysalisp-go/lisp/lisp"
	"github.com/chrysalisp-go/lisp/parser"
)

func newEnv(t *testing.T) *lisp.Env {
	env, lerr := lisp.NewEnv(lisp.WithReader(parser.New()))
	require.Nil(t, lerr)
	return env
}

func readOne(t *testing.T, env *lisp.Env, src string) *lisp.Value {
	in := lisp.NewBufferInStream("test", src)
	form, ok, lerr := env.Runtime().Reader.ReadForm(env, in)
	require.Nil(t, lerr, "parse error on %q: %v", src, lerr)
	require.True(t, ok, "no form parsed from %q", src)
	return form
}

func TestReadAtoms(t *testing.T) {
	env := newEnv(t)
	cases := []struct{ src, want string }{
		{"foo", "foo"},
		{"-foo", "-foo"},
		{"0", "0"},
		{"42", "42"},
		{"-42", "-42"},
		{"0x1A", "26"},
		{"0o17", "15"},
		{"0b101", "5"},
		{`"abc"`, `"abc"`},
		{"{abc}", `"abc"`},
		{`{has "quotes" in it}`, `"has "quotes" in it"`},
	}
	for _, c := range cases {
		got := readOne(t, env, c.src).String()
		assert.Equal(t, c.want, got, "read %q", c.src)
	}
}

func TestReadFixedPointNumbers(t *testing.T) {
	env := newEnv(t)
	// 16.16 fixed point: 1.5 scales to 1.5*65536.
	got := readOne(t, env, "1.5")
	require.Equal(t, lisp.TInt, got.Tag())
	assert.Equal(t, int64(98304), got.Int)

	neg := readOne(t, env, "-1.5")
	require.Equal(t, lisp.TInt, neg.Tag())
	assert.Equal(t, int64(-98304), neg.Int)
}

func TestReadLists(t *testing.T) {
	env := newEnv(t)
	cases := []struct{ src, want string }{
		{"()", "()"},
		{"(1 2 3)", "(1 2 3)"},
		{"(1 (2 3) 4)", "(1 (2 3) 4)"},
		{"( 1   2 )", "(1 2)"},
	}
	for _, c := range cases {
		got := readOne(t, env, c.src).String()
		assert.Equal(t, c.want, got, "read %q", c.src)
	}
}

func TestReaderMacrosExpandToCanonicalForms(t *testing.T) {
	env := newEnv(t)
	cases := []struct{ src, want string }{
		{"'foo", "(quote foo)"},
		{"`foo", "(quasi-quote foo)"},
		{",foo", "(unquote foo)"},
		{"~foo", "(unquote-splicing foo)"},
		{"`(a ,b ~c)", "(quasi-quote (a (unquote b) (unquote-splicing c)))"},
	}
	for _, c := range cases {
		got := readOne(t, env, c.src).String()
		assert.Equal(t, c.want, got, "read %q", c.src)
	}
}

func TestReadSkipsCommentsAndWhitespace(t *testing.T) {
	env := newEnv(t)
	src := "; a leading comment\n   (+ 1 2) ; trailing\n"
	got := readOne(t, env, src).String()
	assert.Equal(t, "(+ 1 2)", got)
}

func TestReaderMultipleTopLevelForms(t *testing.T) {
	env := newEnv(t)
	forms, lerr := env.Runtime().Reader.Read(env, "test", strings.NewReader("1 2 (+ 1 2)"))
	require.Nil(t, lerr)
	require.Len(t, forms, 3)
	assert.Equal(t, "1", forms[0].String())
	assert.Equal(t, "2", forms[1].String())
	assert.Equal(t, "(+ 1 2)", forms[2].String())
}

func TestReaderReportsEndOfInput(t *testing.T) {
	env := newEnv(t)
	in := lisp.NewBufferInStream("test", "   \n  ")
	form, ok, lerr := env.Runtime().Reader.ReadForm(env, in)
	assert.Nil(t, lerr)
	assert.False(t, ok)
	assert.Nil(t, form)
}

func TestReadUnterminatedListIsAnError(t *testing.T) {
	env := newEnv(t)
	in := lisp.NewBufferInStream("test", "(1 2")
	_, _, lerr := env.Runtime().Reader.ReadForm(env, in)
	require.NotNil(t, lerr)
	assert.True(t, lerr.IsError())
}

func TestReadUnterminatedStringIsAnError(t *testing.T) {
	env := newEnv(t)
	in := lisp.NewBufferInStream("test", `"abc`)
	_, _, lerr := env.Runtime().Reader.ReadForm(env, in)
	require.NotNil(t, lerr)
	assert.True(t, lerr.IsError())
}

func TestReadUnexpectedCloseParenIsAnError(t *testing.T) {
	env := newEnv(t)
	in := lisp.NewBufferInStream("test", ")")
	_, _, lerr := env.Runtime().Reader.ReadForm(env, in)
	require.NotNil(t, lerr)
	assert.True(t, lerr.IsError())
}

func TestReadInternsSymbolsAcrossCalls(t *testing.T) {
	env := newEnv(t)
	a := readOne(t, env, "widget")
	b := readOne(t, env, "widget")
	assert.Same(t, a, b, "two reads of the same symbol name must share one interned object")
}

func TestStreamLineAdvancesAcrossNewlines(t *testing.T) {
	in := lisp.NewBufferInStream("test", "a\nb\nc")
	assert.Equal(t, 1, in.Line)
	for i := 0; i < 2; i++ {
		in.ReadByte()
	}
	assert.Equal(t, 2, in.Line, "reading past the first newline must advance Line")
}

func TestReadFormBindsAndRestoresStreamLocation(t *testing.T) {
	env := newEnv(t)
	root := env.Root()
	nameSym := root.Intern(lisp.SymStreamName)

	_, had := root.Find(nameSym)
	require.False(t, had, "no *stream-name* binding before any read")

	readOne(t, env, "(+ 1 2)")

	_, had = root.Find(nameSym)
	assert.False(t, had, "ReadForm must restore the prior (absent) *stream-name* binding")
}
