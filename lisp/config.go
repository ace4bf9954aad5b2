package lisp

import (
	"io"
)

// Reader abstracts a parser implementation so it can live in a separate
// package (parser) and be swapped out in tests, grounded on the
// lisp.Reader/parser.go split.
type Reader interface {
	// Read parses the contents of r (a source stream named name, for
	// diagnostics) and returns the top-level forms it contains, or an
	// Error value on a malformed stream.
	Read(env *Env, name string, r io.Reader) ([]*Value, *Value)

	// ReadForm parses exactly one top-level form from in, incrementally,
	// for the `read` built-in and an interactive REPL reading one
	// expression at a time. ok is false at end of stream.
	ReadForm(env *Env, in *InStream) (form *Value, ok bool, lerr *Value)
}

// Runtime holds the mutable, cross-cutting state shared by every Env
// descended from the same root: the call stack, the configured Reader and
// the stream used for diagnostic output. It plays the role of
// LEnv.Runtime, trimmed to what this core actually needs.
type Runtime struct {
	Stack         *CallStack
	MaxStackDepth int
	Reader        Reader
	Stdout        io.Writer
	Stderr        io.Writer
	gensymCounter int64
}

// Config configures a root environment at construction time, mirroring
// the functional-options Config type pattern (lisp/config.go).
type Config func(env *Env) *Value

// WithMaximumStackDepth returns a Config that makes env report
// ErrGeneric ("stack depth exceeded") once the call stack would grow past
// n frames. n <= 0 disables the check.
func WithMaximumStackDepth(n int) Config {
	return func(env *Env) *Value {
		env.Root().runtime.MaxStackDepth = n
		return env.Intern(SymNil)
	}
}

// WithReader returns a Config that installs r as env's source-stream
// parser. There is no default Reader; cmd/repl must supply one.
func WithReader(r Reader) Config {
	return func(env *Env) *Value {
		env.Root().runtime.Reader = r
		return env.Intern(SymNil)
	}
}

// WithStderr returns a Config that redirects diagnostic output to w
// instead of the default os.Stderr.
func WithStderr(w io.Writer) Config {
	return func(env *Env) *Value {
		env.Root().runtime.Stderr = w
		return env.Intern(SymNil)
	}
}

// WithStdout returns a Config that redirects `prin`/`print` output to w
// instead of the default os.Stdout.
func WithStdout(w io.Writer) Config {
	return func(env *Env) *Value {
		env.Root().runtime.Stdout = w
		return env.Intern(SymNil)
	}
}

// NewEnv builds a fresh root environment and applies opts in order,
// returning the first Error any of them produce (and skipping the rest),
// or the configured environment.
func NewEnv(opts ...Config) (*Env, *Value) {
	env := NewRootEnv()
	InstallBuiltins(env)
	for _, opt := range opts {
		if v := opt(env); v != nil && v.IsError() {
			return env, v
		}
	}
	return env, nil
}
