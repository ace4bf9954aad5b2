// Package lisp implements the value model, environment chain, macro
// expander, evaluator, applier and built-in library of a tree-walking Lisp
// interpreter.
package lisp

import (
	"bytes"
	"fmt"
	"strconv"
)

// Tag is the closed set of runtime value variants.
type Tag uint8

// Possible Tag values.
const (
	TInvalid Tag = iota
	TInt
	TString
	TSymbol
	TList
	TFunction
	TEnv
	TIStream
	TOStream
	TError
)

var tagStrings = []string{
	TInvalid:  "invalid",
	TInt:      "integer",
	TString:   "string",
	TSymbol:   "symbol",
	TList:     "list",
	TFunction: "function",
	TEnv:      "env",
	TIStream:  "istream",
	TOStream:  "ostream",
	TError:    "error",
}

func (t Tag) String() string {
	if int(t) >= len(tagStrings) {
		return tagStrings[TInvalid]
	}
	return tagStrings[t]
}

// Kind is a bitmask used for subtype/capability tests (spec.md's "mask
// test" predicates, e.g. (is? x Sequence)).
type Kind uint16

// Possible Kind bits. Sequence, String and Symbol overlap the way spec.md
// §3's subtype relations require: Symbol is-a String, String and List are
// both Sequences.
const (
	KindInt Kind = 1 << iota
	KindString
	KindSymbol
	KindList
	KindFunction
	KindEnv
	KindIStream
	KindOStream
	KindError
	KindSequence
)

// Builtin is a native function bound to a symbol. Raw builtins receive
// their argument list unevaluated (spec.md §3 invariant 5); evaluated-args
// builtins receive arguments already reduced by the evaluator.
type Builtin struct {
	Name string
	Raw  bool
	Fn   func(env *Env, args []*Value) *Value
}

// Value is a runtime object. Exactly one of the type-specific fields below
// is meaningful, selected by Tag.
type Value struct {
	tag Tag

	Int int64 // TInt

	str     string // TString, TSymbol: the byte sequence
	hash    uint64
	hasHash bool

	Items []*Value // TList

	Builtin *Builtin // TFunction

	Env *Env // TEnv

	In  *InStream  // TIStream
	Out *OutStream // TOStream

	errv *errorInfo // TError
}

// Tag returns the variant of v.
func (v *Value) Tag() Tag { return v.tag }

// Int64 makes an Integer value.
func Int64(x int64) *Value { return &Value{tag: TInt, Int: x} }

// NewString makes a String value from raw bytes s.
func NewString(s string) *Value { return &Value{tag: TString, str: s} }

// List makes a List value from items. The slice is taken by reference; the
// caller should not mutate it afterward unless mutation is intended to be
// observed by the returned Value (lists are the language's primary
// mutable, structurally-shared state mechanism — spec.md §5).
func List(items ...*Value) *Value { return &Value{tag: TList, Items: items} }

// EmptyList returns a fresh empty list.
func EmptyList() *Value { return &Value{tag: TList} }

// Fun wraps a native Go function as a Builtin value.
func Fun(name string, raw bool, fn func(env *Env, args []*Value) *Value) *Value {
	return &Value{tag: TFunction, Builtin: &Builtin{Name: name, Raw: raw, Fn: fn}}
}

// EnvValue wraps an environment so it can be passed as a first-class value
// (spec.md §4.6's (env) special and the def/set builtins which target an
// explicit environment).
func EnvValue(e *Env) *Value { return &Value{tag: TEnv, Env: e} }

// Is reports whether v belongs to the given Kind, honoring the subtype
// relations of spec.md §3: Symbol is-a String, String and List are both
// Sequence.
func (v *Value) Is(k Kind) bool {
	switch v.tag {
	case TInt:
		return k&KindInt != 0
	case TString:
		return k&(KindString|KindSequence) != 0
	case TSymbol:
		return k&(KindSymbol|KindString|KindSequence) != 0
	case TList:
		return k&(KindList|KindSequence) != 0
	case TFunction:
		return k&KindFunction != 0
	case TEnv:
		return k&KindEnv != 0
	case TIStream:
		return k&KindIStream != 0
	case TOStream:
		return k&KindOStream != 0
	case TError:
		return k&KindError != 0
	}
	return false
}

// IsSequence reports whether v is a String or a List.
func (v *Value) IsSequence() bool { return v.tag == TString || v.tag == TSymbol || v.tag == TList }

// IsNil reports whether v is the distinguished nil symbol.
func (v *Value) IsNil() bool { return v.tag == TSymbol && v.str == SymNil }

// IsError reports whether v is an Error value.
func (v *Value) IsError() bool { return v.tag == TError }

// Str returns the underlying byte sequence of a String or Symbol value.
// It panics if v is neither, which indicates an implementation bug rather
// than a user-facing condition (callers must check Tag()/Is() first).
func (v *Value) Str() string {
	if v.tag != TString && v.tag != TSymbol {
		panic(fmt.Sprintf("lisp: Str() called on a %s value", v.tag))
	}
	return v.str
}

// SeqLen returns the length of a String or List value.
func (v *Value) SeqLen() int {
	switch v.tag {
	case TString, TSymbol:
		return len(v.str)
	case TList:
		return len(v.Items)
	}
	panic(fmt.Sprintf("lisp: SeqLen() called on a %s value", v.tag))
}

// hashBytes returns the cached unsigned byte hash of a String/Symbol value,
// computing it on first use (spec.md §4.1: "hashing for strings").
func (v *Value) hashBytes() uint64 {
	if !v.hasHash {
		var h uint64 = 14695981039346656037 // FNV-1a offset basis
		for i := 0; i < len(v.str); i++ {
			h ^= uint64(v.str[i])
			h *= 1099511628211
		}
		v.hash = h
		v.hasHash = true
	}
	return v.hash
}

// Eql implements spec.md §4.1's structural equality: same variant plus
// equal payload, recursively for lists. Everything else at the value
// level (env lookup, macro-marker checks) uses identity equality, which for
// interned symbols is Go pointer equality.
func Eql(a, b *Value) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.tag != b.tag {
		return false
	}
	switch a.tag {
	case TInt:
		return a.Int == b.Int
	case TString, TSymbol:
		return a.str == b.str
	case TList:
		if len(a.Items) != len(b.Items) {
			return false
		}
		for i := range a.Items {
			if !Eql(a.Items[i], b.Items[i]) {
				return false
			}
		}
		return true
	case TError:
		return a.errv == b.errv
	default:
		// Functions, Envs and streams are compared by identity only; a.tag
		// == b.tag with a != b means they are distinct objects.
		return false
	}
}

// CmpBytes returns -1, 0 or 1 comparing the unsigned byte sequences of two
// String/Symbol values lexicographically (spec.md §4.7 "cmp").
func CmpBytes(a, b *Value) int {
	return bytes.Compare([]byte(a.str), []byte(b.str))
}

// String renders v in machine (read-back) form.
func (v *Value) String() string {
	switch v.tag {
	case TInt:
		return strconv.FormatInt(v.Int, 10)
	case TString:
		return quoteString(v.str)
	case TSymbol:
		return v.str
	case TList:
		return listString(v, func(c *Value) string { return c.String() })
	case TFunction:
		return fmt.Sprintf("<builtin %s>", v.Builtin.Name)
	case TEnv:
		return fmt.Sprintf("<env %p>", v.Env)
	case TIStream:
		return fmt.Sprintf("<istream %s>", v.In.Name)
	case TOStream:
		return "<ostream>"
	case TError:
		return v.errv.String()
	default:
		return "<invalid>"
	}
}

// Display renders v in human-readable (print) form: strings are
// unquoted, everything else matches String(). Used by the `str`, `prin`
// and `print` builtins (spec.md §4.7 "str"); the REPL prints results with
// String().
func (v *Value) Display() string {
	if v.tag == TString {
		return v.str
	}
	return v.String()
}

func quoteString(s string) string {
	var buf bytes.Buffer
	buf.WriteByte('"')
	buf.WriteString(s)
	buf.WriteByte('"')
	return buf.String()
}

func listString(v *Value, elemString func(*Value) string) string {
	var buf bytes.Buffer
	buf.WriteByte('(')
	for i, c := range v.Items {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(elemString(c))
	}
	buf.WriteByte(')')
	return buf.String()
}
