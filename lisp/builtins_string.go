package lisp

import "strings"

// String built-ins (spec.md §4.7), grounded on cmp/code/lchar
// (seq.cpp/math.cpp).

func builtinCmp(env *Env, args []*Value) *Value {
	hint := "(cmp str str)"
	if len(args) != 2 || !isStringy(args[0]) || !isStringy(args[1]) {
		return env.Errorf(ErrWrongTypes, hint, List(args...))
	}
	return Int64(int64(CmpBytes(args[0], args[1])))
}

func isStringy(v *Value) bool { return v.tag == TString || v.tag == TSymbol }

// builtinCode implements `code` (spec.md §4.7): read width bytes as a
// little-endian integer at byte index (defaults width=1, index=0),
// grounded on code (seq.cpp).
func builtinCode(env *Env, args []*Value) *Value {
	hint := "(code str [width index])"
	if len(args) < 1 || len(args) > 3 || !isStringy(args[0]) {
		return env.Errorf(ErrWrongTypes, hint, List(args...))
	}
	s := args[0].str
	width := int64(1)
	index := int64(0)
	if len(args) > 1 {
		if args[1].tag != TInt {
			return env.Errorf(ErrWrongTypes, hint, List(args...))
		}
		width = args[1].Int
	}
	if len(args) > 2 {
		if args[2].tag != TInt {
			return env.Errorf(ErrWrongTypes, hint, List(args...))
		}
		index = args[2].Int
	}
	index = rebase(index, int64(len(s)))
	if width < 1 || width > 8 || index < 0 || index+width > int64(len(s)) {
		return env.Errorf(ErrNotValidIndex, hint, List(args...))
	}
	var code int64
	for i := int64(0); i < width; i++ {
		code |= int64(s[index+i]) << (8 * uint(i))
	}
	return Int64(code)
}

// builtinChar implements `char` (spec.md §4.7): inverse of code — pack
// the low `width` bytes of an integer into a string, width clamped to
// 1..8 exactly as lchar (seq.cpp) clamps
// it via `((width - 1) & 7) + 1`.
func builtinChar(env *Env, args []*Value) *Value {
	hint := "(char num [width])"
	if len(args) < 1 || len(args) > 2 || args[0].tag != TInt {
		return env.Errorf(ErrNotANumber, hint, List(args...))
	}
	width := int64(1)
	if len(args) == 2 {
		if args[1].tag != TInt {
			return env.Errorf(ErrNotANumber, hint, List(args...))
		}
		width = ((args[1].Int - 1) & 7) + 1
	}
	n := args[0].Int
	buf := make([]byte, width)
	for i := int64(0); i < width; i++ {
		buf[i] = byte(n >> (8 * uint(i)))
	}
	return NewString(string(buf))
}

// builtinStr implements `str` (spec.md §4.7): prints every argument into
// a freshly built string, using display form for strings (unquoted) and
// machine form for everything else. An OStream built by `string-stream`
// contributes its accumulated bytes unquoted, grounded on str's
// lisp_type_string_stream case (seq.cpp).
func builtinStr(env *Env, args []*Value) *Value {
	var b strings.Builder
	for _, a := range args {
		if a.tag == TOStream && a.Out.buf != nil {
			b.WriteString(a.Out.String())
			continue
		}
		b.WriteString(a.Display())
	}
	return NewString(b.String())
}
