// Package parser implements lisp.Reader with a hand-written recursive
// descent over raw bytes, grounded on read/read_list/read_string/
// read_symbol/read_number/read_rmacro (repl.cpp). It deliberately does not use a combinator/lexer-token
// library: the numeric-literal state (base prefix, fractional
// accumulator, 16.16 scaling) and the stream-line bookkeeping are a
// byte-at-a-time state machine that a token-regex grammar cannot express
// directly.
package parser

import (
	"io"

	"github.com/chrysalisp-go/lisp/lisp"
)

// Reader is the default lisp.Reader implementation.
type Reader struct{}

// New returns a lisp.Reader backed by this package's recursive-descent
// implementation.
func New() lisp.Reader {
	return &Reader{}
}

// Read implements lisp.Reader: parses every top-level form out of r.
func (rd *Reader) Read(env *lisp.Env, name string, r io.Reader) ([]*lisp.Value, *lisp.Value) {
	in := lisp.NewInStream(name, r)
	var forms []*lisp.Value
	for {
		form, ok, lerr := rd.ReadForm(env, in)
		if lerr != nil {
			return nil, lerr
		}
		if !ok {
			return forms, nil
		}
		forms = append(forms, form)
	}
}

// ReadForm implements lisp.Reader: parses exactly one top-level form,
// surfacing *stream-name*/*stream-line* in env's root frame for the
// duration of the read and restoring whatever was bound there before
// (spec.md §4.3).
func (rd *Reader) ReadForm(env *lisp.Env, in *lisp.InStream) (*lisp.Value, bool, *lisp.Value) {
	root := env.Root()
	nameSym := root.Intern(lisp.SymStreamName)
	lineSym := root.Intern(lisp.SymStreamLine)
	oldName, hadName := root.Find(nameSym)
	oldLine, hadLine := root.Find(lineSym)
	root.Insert(nameSym, lisp.NewString(in.Name))
	root.Insert(lineSym, lisp.Int64(int64(in.Line)))
	defer func() {
		if hadName {
			root.Insert(nameSym, oldName)
		} else {
			root.Erase(nameSym)
		}
		if hadLine {
			root.Insert(lineSym, oldLine)
		} else {
			root.Erase(lineSym)
		}
	}()
	return readOne(env, in)
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isLetter(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }

// skipIgnored consumes whitespace and `;`-to-end-of-line comments,
// leaving the stream positioned at the next significant byte (or at
// end-of-input).
func skipIgnored(in *lisp.InStream) {
	for {
		b, ok := in.Peek(1)
		if !ok {
			return
		}
		switch {
		case isSpace(b[0]):
			in.ReadByte()
		case b[0] == ';':
			for {
				c, ok := in.ReadByte()
				if !ok || c == '\n' {
					break
				}
			}
		default:
			return
		}
	}
}

func syncLine(env *lisp.Env, in *lisp.InStream) {
	root := env.Root()
	root.Insert(root.Intern(lisp.SymStreamLine), lisp.Int64(int64(in.Line)))
}

// readOne reads exactly one form, or reports end-of-input with ok=false.
func readOne(env *lisp.Env, in *lisp.InStream) (*lisp.Value, bool, *lisp.Value) {
	skipIgnored(in)
	syncLine(env, in)
	peek, ok := in.Peek(1)
	if !ok {
		return nil, false, nil
	}
	c := peek[0]
	switch {
	case c == ')' || c == '}':
		in.ReadByte()
		return nil, false, env.Errorf(lisp.ErrGeneric, "unexpected "+string(c), nil)
	case c == '(':
		return readList(env, in)
	case c == '"':
		return readQuotedString(env, in, '"')
	case c == '{':
		return readQuotedString(env, in, '}')
	case c == '-':
		if two, ok2 := in.Peek(2); ok2 && isDigit(two[1]) {
			return readNumber(env, in)
		}
		return readSymbol(env, in)
	case isDigit(c):
		return readNumber(env, in)
	case c == '\'':
		return readMacro(env, in, lisp.SymQuote)
	case c == '`':
		return readMacro(env, in, lisp.SymQuasiQuote)
	case c == ',':
		return readMacro(env, in, lisp.SymUnquote)
	case c == '~':
		return readMacro(env, in, lisp.SymUnquoteSplicing)
	default:
		return readSymbol(env, in)
	}
}

// readRequired reads one form and turns end-of-input into an Error, used
// anywhere a form's syntax demands a subform (inside a list, after a
// reader macro).
func readRequired(env *lisp.Env, in *lisp.InStream, hint string) (*lisp.Value, *lisp.Value) {
	form, ok, lerr := readOne(env, in)
	if lerr != nil {
		return nil, lerr
	}
	if !ok {
		return nil, env.Errorf(lisp.ErrGeneric, hint+": unexpected end of input", nil)
	}
	return form, nil
}

func readList(env *lisp.Env, in *lisp.InStream) (*lisp.Value, bool, *lisp.Value) {
	in.ReadByte() // '('
	var items []*lisp.Value
	for {
		skipIgnored(in)
		syncLine(env, in)
		peek, ok := in.Peek(1)
		if !ok {
			return nil, false, env.Errorf(lisp.ErrGeneric, "(list ...): unterminated list", nil)
		}
		if peek[0] == ')' {
			in.ReadByte()
			return lisp.List(items...), true, nil
		}
		form, lerr := readRequired(env, in, "(list ...)")
		if lerr != nil {
			return nil, false, lerr
		}
		items = append(items, form)
	}
}

func readQuotedString(env *lisp.Env, in *lisp.InStream, term byte) (*lisp.Value, bool, *lisp.Value) {
	in.ReadByte() // opening delimiter
	var buf []byte
	for {
		b, ok := in.ReadByte()
		if !ok {
			return nil, false, env.Errorf(lisp.ErrGeneric, "unterminated string", nil)
		}
		if b == term {
			return lisp.NewString(string(buf)), true, nil
		}
		buf = append(buf, b)
	}
}

func readSymbol(env *lisp.Env, in *lisp.InStream) (*lisp.Value, bool, *lisp.Value) {
	var buf []byte
	for {
		peek, ok := in.Peek(1)
		if !ok || isSpace(peek[0]) || peek[0] == '(' || peek[0] == ')' {
			break
		}
		b, _ := in.ReadByte()
		buf = append(buf, b)
	}
	return env.Intern(string(buf)), true, nil
}

func readMacro(env *lisp.Env, in *lisp.InStream, sym string) (*lisp.Value, bool, *lisp.Value) {
	in.ReadByte() // the macro character
	form, lerr := readRequired(env, in, "(reader-macro form)")
	if lerr != nil {
		return nil, false, lerr
	}
	return lisp.List(env.Intern(sym), form), true, nil
}

// readNumber parses a numeric literal (spec.md §4.3): an optional leading
// `-`, then a run of digits/`.`/letters; an optional `0x`/`0o`/`0b` prefix
// selects the digit base, and a `.` anywhere in the run switches the
// literal into a 16.16 fixed-point value scaled by the accumulated
// fractional base power, grounded on read_number (repl.cpp).
func readNumber(env *lisp.Env, in *lisp.InStream) (*lisp.Value, bool, *lisp.Value) {
	sign := int64(1)
	if peek, ok := in.Peek(1); ok && peek[0] == '-' {
		sign = -1
		in.ReadByte()
	}
	var buf []byte
	for {
		peek, ok := in.Peek(1)
		if !ok {
			break
		}
		b := peek[0]
		if b == '.' || isDigit(b) || isLetter(b) {
			in.ReadByte()
			buf = append(buf, b)
			continue
		}
		break
	}
	base := int64(10)
	start := 0
	if len(buf) > 1 {
		switch buf[1] {
		case 'x':
			base, start = 16, 2
		case 'o':
			base, start = 8, 2
		case 'b':
			base, start = 2, 2
		}
	}
	var value, frac int64
	for i := start; i < len(buf); i++ {
		c := buf[i]
		if c == '.' {
			frac = 1
			continue
		}
		var digit int64
		switch {
		case c >= 'a' && c <= 'z':
			digit = int64(c-'a') + 10
		case c >= 'A' && c <= 'Z':
			digit = int64(c-'A') + 10
		default:
			digit = int64(c - '0')
		}
		value = value*base + digit
		if frac != 0 {
			frac *= base
		}
	}
	if frac != 0 {
		value = (value << 16) / frac
	}
	return lisp.Int64(sign * value), true, nil
}
