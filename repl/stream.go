package repl

import (
	"fmt"

	"github.com/chrysalisp-go/lisp/lisp"
)

// RunStream drives a non-interactive read-expand-eval loop over in,
// printing any Error at the top level to env's diagnostic stream and
// returning it (spec.md §7's "terminates the current stream" behavior).
// A clean end-of-input returns nil.
func RunStream(env *lisp.Env, in *lisp.InStream) *lisp.Value {
	for {
		form, ok, lerr := env.Runtime().Reader.ReadForm(env, in)
		if lerr != nil {
			fmt.Fprintln(env.Stderr(), lerr.String())
			return lerr
		}
		if !ok {
			return nil
		}
		// ReadForm restores *stream-name*/*stream-line* to whatever they
		// were before parsing this form (so a nested `read` from another
		// stream doesn't leak its location into the caller); rebind them
		// here so an Error raised during expansion or evaluation of this
		// form still carries this stream's location (spec.md §7).
		root := env.Root()
		root.Insert(root.Intern(lisp.SymStreamName), lisp.NewString(in.Name))
		root.Insert(root.Intern(lisp.SymStreamLine), lisp.Int64(int64(in.Line)))
		expanded, lerr := lisp.ExpandMacros(env, form)
		if lerr != nil {
			fmt.Fprintln(env.Stderr(), lerr.String())
			return lerr
		}
		result := lisp.Eval(env, expanded)
		if result.IsError() {
			fmt.Fprintln(env.Stderr(), result.String())
			return result
		}
	}
}
