package lisp

// Miscellaneous control and symbol built-ins (spec.md §4.6/§4.7), grounded
// on lambda/progn/apply/sym/gensym/bind/defined/type/throw (control.cpp,
// env.cpp).

// builtinLambdaMarker implements both `lambda` and `macro`: a raw builtin
// that returns its own form unchanged, so `(lambda (params) body...)`
// evaluates to the marker-headed list the evaluator recognizes as a
// closure. Grounded on the C++ source, where both names are
// bound to the same raw `list` builtin (lisp.cpp).
func builtinLambdaMarker(env *Env, form []*Value) *Value {
	return List(form...)
}

// builtinProgn implements `progn`: a plain (evaluated-args) builtin, so by
// the time it runs every argument has already been evaluated in order with
// short-circuit on Error; it need only return the last one. Grounded on
// progn (control.cpp), which does exactly this.
func builtinProgn(env *Env, args []*Value) *Value {
	if len(args) == 0 {
		return env.Intern(SymNil)
	}
	return args[len(args)-1]
}

// builtinEval implements `eval form [env]`: a plain (evaluated-args)
// builtin, so the generic dispatcher already evaluated form once (e.g.
// unwrapping a `quote`) before this body runs; it evaluates the result a
// second time, grounded on `Lisp::eval` (lisp.cpp), which is registered
// without the raw flag and whose body likewise runs a single further
// `repl_eval` on its already-evaluated argument.
func builtinEval(env *Env, args []*Value) *Value {
	hint := "(eval form [env])"
	switch len(args) {
	case 1:
		return Eval(env, args[0])
	case 2:
		if args[1].tag != TEnv {
			return env.Errorf(ErrNotAnEnvironment, hint, List(args...))
		}
		return Eval(args[1].Env, args[0])
	default:
		return env.Errorf(ErrWrongNumOfArgs, hint, List(args...))
	}
}

// builtinApply implements `apply lambda list`.
func builtinApply(env *Env, args []*Value) *Value {
	hint := "(apply lambda list)"
	if len(args) != 2 || args[1].tag != TList {
		return env.Errorf(ErrWrongTypes, hint, List(args...))
	}
	result, lerr := Apply(env, args[0], args[1].Items)
	if lerr != nil {
		return lerr
	}
	return result
}

// builtinSym implements `sym form`: string (or symbol) to interned symbol.
func builtinSym(env *Env, args []*Value) *Value {
	hint := "(sym form)"
	if len(args) != 1 {
		return env.Errorf(ErrWrongNumOfArgs, hint, List(args...))
	}
	if args[0].tag == TSymbol {
		return args[0]
	}
	if args[0].tag != TString {
		return env.Errorf(ErrNotAString, hint, List(args...))
	}
	return env.Intern(args[0].str)
}

// builtinGensym implements `gensym`: a fresh uninterned-feeling symbol
// `G<n>`, n drawn from a per-Runtime counter.
func builtinGensym(env *Env, args []*Value) *Value {
	hint := "(gensym)"
	if len(args) != 0 {
		return env.Errorf(ErrWrongTypes, hint, List(args...))
	}
	rt := env.Runtime()
	rt.gensymCounter++
	return env.Intern("G" + itoa(rt.gensymCounter))
}

func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// builtinBind implements `bind params seq`: destructures seq against
// params directly into the caller's current frame.
func builtinBind(env *Env, args []*Value) *Value {
	hint := "(bind params seq)"
	if len(args) != 2 || args[0].tag != TList || args[1].tag != TList {
		return env.Errorf(ErrWrongTypes, hint, List(args...))
	}
	if lerr := Bind(env, args[0], args[1].Items); lerr != nil {
		return lerr
	}
	return args[1]
}

// builtinDefined implements `def? sym`.
func builtinDefined(env *Env, args []*Value) *Value {
	hint := "(def? sym)"
	if len(args) != 1 || args[0].tag != TSymbol {
		return env.Errorf(ErrWrongTypes, hint, List(args...))
	}
	if v, ok := env.Find(args[0]); ok {
		return v
	}
	return env.Intern(SymNil)
}

// builtinType implements `type? obj`: the variant's numeric tag.
func builtinType(env *Env, args []*Value) *Value {
	hint := "(type? obj)"
	if len(args) != 1 {
		return env.Errorf(ErrWrongNumOfArgs, hint, List(args...))
	}
	return Int64(int64(args[0].tag))
}

// builtinThrow implements `throw str form`: constructs an Error carrying
// str as its hint and form as the offending value.
func builtinThrow(env *Env, args []*Value) *Value {
	hint := "(throw str form)"
	if len(args) != 2 || args[0].tag != TString {
		return env.Errorf(ErrWrongTypes, hint, List(args...))
	}
	return env.Errorf(ErrGeneric, args[0].str, args[1])
}

// builtinDef implements `def env sym1 form1 ...`: a plain (evaluated-args)
// builtin targeting an explicit environment. Because the generic
// dispatcher already evaluated every argument — including each sym
// position, which the caller must therefore quote — the value forms are
// evaluated by the calling convention rather than by this body, grounded
// on `Lisp::def` (lisp.cpp), registered without the raw flag alongside
// `set`/`add`/`list`.
func builtinDef(env *Env, args []*Value) *Value {
	hint := "(def env sym form ...)"
	if len(args) < 3 || len(args)%2 != 1 || args[0].tag != TEnv {
		return env.Errorf(ErrWrongTypes, hint, List(args...))
	}
	target := args[0].Env
	result := env.Intern(SymNil)
	for i := 1; i < len(args); i += 2 {
		sym := args[i]
		if sym.tag != TSymbol {
			return env.Errorf(ErrWrongTypes, hint, List(args...))
		}
		val := args[i+1]
		target.Insert(sym, val)
		result = val
	}
	return result
}

// builtinSet implements `set env sym1 form1 ...`: like builtinDef but
// mutates via lookup, failing if a symbol isn't already bound in target.
func builtinSet(env *Env, args []*Value) *Value {
	hint := "(set env sym form ...)"
	if len(args) < 3 || len(args)%2 != 1 || args[0].tag != TEnv {
		return env.Errorf(ErrWrongTypes, hint, List(args...))
	}
	target := args[0].Env
	result := env.Intern(SymNil)
	for i := 1; i < len(args); i += 2 {
		sym := args[i]
		if sym.tag != TSymbol {
			return env.Errorf(ErrWrongTypes, hint, List(args...))
		}
		val := args[i+1]
		if !target.Set(sym, val) {
			return env.Errorf(ErrSymbolNotBound, hint, sym)
		}
		result = val
	}
	return result
}
