package lisp

import (
	"bytes"
	"fmt"
)

// ErrKind is one of the fixed ordered set of error kinds from spec.md §7.
type ErrKind int

// Possible ErrKind values, in the order spec.md §7 lists them.
const (
	ErrGeneric ErrKind = iota
	ErrNotACanvas
	ErrNotAClass
	ErrNotAFilename
	ErrNotALambda
	ErrNotAList
	ErrNotANumber
	ErrNotAPipe
	ErrNotASequence
	ErrNotAStream
	ErrNotAString
	ErrNotASymbol
	ErrNotAllLists
	ErrNotAllNums
	ErrNotAllStrings
	ErrNotAnEnvironment
	ErrNotValidIndex
	ErrOpenError
	ErrSymbolNotBound
	ErrWrongNumOfArgs
	ErrWrongTypes
)

var errKindTokens = []string{
	ErrGeneric:          "generic-error",
	ErrNotACanvas:       "not-a-canvas",
	ErrNotAClass:        "not-a-class",
	ErrNotAFilename:     "not-a-filename",
	ErrNotALambda:       "not-a-lambda",
	ErrNotAList:         "not-a-list",
	ErrNotANumber:       "not-a-number",
	ErrNotAPipe:         "not-a-pipe",
	ErrNotASequence:     "not-a-sequence",
	ErrNotAStream:       "not-a-stream",
	ErrNotAString:       "not-a-string",
	ErrNotASymbol:       "not-a-symbol",
	ErrNotAllLists:      "not-all-lists",
	ErrNotAllNums:       "not-all-nums",
	ErrNotAllStrings:    "not-all-strings",
	ErrNotAnEnvironment: "not-an-environment",
	ErrNotValidIndex:    "not-valid-index",
	ErrOpenError:        "open-error",
	ErrSymbolNotBound:   "symbol-not-bound",
	ErrWrongNumOfArgs:   "wrong-num-of-args",
	ErrWrongTypes:       "wrong-types",
}

func (k ErrKind) String() string {
	if int(k) >= len(errKindTokens) {
		return errKindTokens[ErrGeneric]
	}
	return errKindTokens[k]
}

// errorInfo carries the payload of an Error value: a short human-readable
// operation hint, the error kind's token, a source location and the
// offending form (spec.md §7).
type errorInfo struct {
	Hint     string
	Kind     ErrKind
	File     string
	Line     int
	Offender *Value
}

func (e *errorInfo) String() string {
	var buf bytes.Buffer
	if e.File != "" {
		fmt.Fprintf(&buf, "%s:%d: ", e.File, e.Line)
	}
	if e.Hint != "" {
		buf.WriteString(e.Hint)
		buf.WriteByte(' ')
	}
	buf.WriteString(e.Kind.String())
	if e.Offender != nil {
		fmt.Fprintf(&buf, ": %s", e.Offender.String())
	}
	return buf.String()
}

// NewError builds an Error value. file/line are the current reader
// location, typically supplied via Env.stream location bindings
// (*stream-name*/*stream-line*); offender is the value that triggered the
// failure, or nil.
func NewError(kind ErrKind, hint string, file string, line int, offender *Value) *Value {
	return &Value{tag: TError, errv: &errorInfo{
		Hint:     hint,
		Kind:     kind,
		File:     file,
		Line:     line,
		Offender: offender,
	}}
}

// Errorf is a convenience constructor used throughout the builtins: it
// attaches the env's current stream location automatically.
func (env *Env) Errorf(kind ErrKind, hint string, offender *Value) *Value {
	name, line := env.streamLocation()
	return NewError(kind, hint, name, line, offender)
}

// ErrKind returns the kind of an Error value. Calling it on a non-Error
// value is a programming error.
func (v *Value) ErrKind() ErrKind {
	if v.tag != TError {
		panic("lisp: ErrKind() called on a non-error value")
	}
	return v.errv.Kind
}

// ErrOffender returns the offending form recorded in an Error value.
func (v *Value) ErrOffender() *Value {
	if v.tag != TError {
		panic("lisp: ErrOffender() called on a non-error value")
	}
	return v.errv.Offender
}
