// Package repl implements an interactive read-expand-eval-print loop over
// a readline-backed terminal: lines are accumulated until a complete form
// parses, with a continuation prompt while a form spans multiple lines.
package repl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/chrysalisp-go/lisp/lisp"
)

// Run starts an interactive loop against env, prompting with prompt and
// printing every top-level result to stdout.
func Run(env *lisp.Env, prompt string) error {
	rl, err := readline.New(prompt)
	if err != nil {
		return err
	}
	defer rl.Close()
	contPrompt := strings.Repeat(" ", len(prompt))

	var buf []byte
	var exitErr error
	for {
		line, rerr := rl.ReadSlice()
		if rerr != nil && rerr != readline.ErrInterrupt {
			exitErr = rerr
			break
		}
		if rerr == readline.ErrInterrupt {
			buf = nil
			rl.SetPrompt(prompt)
			continue
		}
		if len(buf) != 0 {
			buf = append(buf, '\n')
			buf = append(buf, line...)
		} else {
			buf = append([]byte{}, line...)
		}
		if len(strings.TrimSpace(string(buf))) == 0 {
			buf = nil
			rl.SetPrompt(prompt)
			continue
		}
		in := lisp.NewBufferInStream("*stdin*", string(buf))
		form, ok, lerr := env.Runtime().Reader.ReadForm(env, in)
		if lerr != nil {
			if incomplete(lerr) {
				rl.SetPrompt(contPrompt)
				continue
			}
			errln(lerr.String())
			buf = nil
			rl.SetPrompt(prompt)
			continue
		}
		buf = nil
		rl.SetPrompt(prompt)
		if !ok {
			continue
		}
		// Rebind the stream location ReadForm just restored, so a
		// runtime Error from expansion/evaluation still blames this
		// input line rather than whatever it was before parsing.
		root := env.Root()
		root.Insert(root.Intern(lisp.SymStreamName), lisp.NewString(in.Name))
		root.Insert(root.Intern(lisp.SymStreamLine), lisp.Int64(int64(in.Line)))
		expanded, lerr := lisp.ExpandMacros(env, form)
		if lerr != nil {
			errln(lerr.String())
			continue
		}
		result := lisp.Eval(env, expanded)
		fmt.Println(result.String())
	}
	if exitErr != io.EOF {
		return exitErr
	}
	return nil
}

// incomplete reports whether lerr signals that the buffered input so far
// is a syntactically valid prefix of a longer form (an unterminated list
// or string) rather than a genuine syntax error, so the repl should keep
// accumulating lines instead of reporting it.
func incomplete(lerr *lisp.Value) bool {
	msg := lerr.String()
	return strings.Contains(msg, "unterminated") || strings.Contains(msg, "unexpected end of input")
}

func errln(v ...interface{}) {
	fmt.Fprintln(os.Stderr, v...)
}
