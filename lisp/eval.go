package lisp

// Eval evaluates form in env (spec.md §4.6 / "C6").
//
// Symbols resolve through the environment chain. A non-empty list first
// evaluates its head: if the head is a raw built-in, the whole original
// form (head included) is handed to it unevaluated; otherwise the tail is
// evaluated left to right, short-circuiting on the first Error, and the
// result is passed to Apply. Anything else (Integer, String, the empty
// list, a Function/Env/Stream/Error value encountered directly) evaluates
// to itself.
func Eval(env *Env, form *Value) *Value {
	switch form.tag {
	case TSymbol:
		return env.Get(form)
	case TList:
		if len(form.Items) == 0 {
			return form
		}
		return evalList(env, form)
	default:
		return form
	}
}

func evalList(env *Env, form *Value) *Value {
	if sym := form.Items[0]; sym.tag == TSymbol {
		if special, ok := controlSpecials[sym.str]; ok {
			return special(env, form)
		}
	}
	head := Eval(env, form.Items[0])
	if head.IsError() {
		return head
	}
	if head.tag == TFunction && head.Builtin.Raw {
		return head.Builtin.Fn(env, form.Items)
	}
	args := make([]*Value, len(form.Items)-1)
	for i, a := range form.Items[1:] {
		v := Eval(env, a)
		if v.IsError() {
			return v
		}
		args[i] = v
	}
	result, lerr := Apply(env, head, args)
	if lerr != nil {
		return lerr
	}
	return result
}

// Apply invokes callee with already-evaluated (or, for macro expansion,
// deliberately unevaluated) args and returns its result (spec.md §4.6).
func Apply(env *Env, callee *Value, args []*Value) (*Value, *Value) {
	if callee.tag == TFunction {
		return callee.Builtin.Fn(env, args), nil
	}
	if (isLambda(env, callee) || isMacro(env, callee)) && len(callee.Items) >= 2 {
		params := callee.Items[1]
		body := callee.Items[2:]
		if params.tag != TList {
			return nil, env.Errorf(ErrNotALambda, "(apply lambda args)", callee)
		}
		call := env.Push()
		if lerr := Bind(call, params, args); lerr != nil {
			return nil, lerr
		}
		stack := env.Stack()
		stack.Push(calleeName(callee), "", 0)
		defer stack.Pop()
		if len(stack.Frames) > maxEffectiveDepth(env) {
			return nil, env.Errorf(ErrGeneric, "stack depth exceeded", callee)
		}
		result := env.Intern(SymNil)
		for _, b := range body {
			result = Eval(call, b)
			if result.IsError() {
				return result, nil
			}
		}
		return result, nil
	}
	return nil, env.Errorf(ErrNotALambda, "(apply lambda args)", callee)
}

func maxEffectiveDepth(env *Env) int {
	if n := env.Runtime().MaxStackDepth; n > 0 {
		return n
	}
	return 1 << 30
}

func calleeName(callee *Value) string {
	if callee.tag == TFunction {
		return callee.Builtin.Name
	}
	if len(callee.Items) > 0 {
		return callee.Items[0].String()
	}
	return "?"
}

type specialFn func(env *Env, form *Value) *Value

// controlSpecials dispatches on the head symbol's name rather than its
// interned identity: a process may construct many independent root
// environments (each test in the lisptest harness gets its own), and a
// pointer-keyed table would only ever match the symbols owned by whichever
// interner built it.
var controlSpecials map[string]specialFn

func init() {
	controlSpecials = map[string]specialFn{
		SymQuote:      specialQuote,
		SymQuasiQuote: specialQuasiQuote,
		"cond":        specialCond,
		"while":       specialWhile,
		"catch":       specialCatch,
		"defq":        specialDefq,
		"setq":        specialSetq,
		"defmacro":    specialDefmacro,
		"env":         specialEnv,
	}
}

// specialQuote implements `(quote x)` → x unchanged.
func specialQuote(env *Env, form *Value) *Value {
	if len(form.Items) != 2 {
		return env.Errorf(ErrWrongNumOfArgs, "(quote form)", form)
	}
	return form.Items[1]
}

// specialCond implements `(cond (test body...) ...)`.
func specialCond(env *Env, form *Value) *Value {
	result := env.Intern(SymNil)
	for _, clause := range form.Items[1:] {
		if clause.tag != TList {
			return env.Errorf(ErrNotAList, "(cond (tst body) ...)", form)
		}
		if len(clause.Items) == 0 {
			return env.Errorf(ErrWrongNumOfArgs, "(cond (tst body) ...)", form)
		}
		test := Eval(env, clause.Items[0])
		if test.IsError() {
			return test
		}
		if !test.IsNil() {
			for _, b := range clause.Items[1:] {
				result = Eval(env, b)
				if result.IsError() {
					return result
				}
			}
			break
		}
	}
	return result
}

// specialWhile implements `(while test body...)`.
func specialWhile(env *Env, form *Value) *Value {
	if len(form.Items) < 2 {
		return env.Errorf(ErrWrongNumOfArgs, "(while tst body)", form)
	}
	for {
		test := Eval(env, form.Items[1])
		if test.IsError() || test.IsNil() {
			return test
		}
		for _, b := range form.Items[2:] {
			v := Eval(env, b)
			if v.IsError() {
				return v
			}
		}
	}
}

// specialCatch implements `(catch form handler-form)`.
func specialCatch(env *Env, form *Value) *Value {
	if len(form.Items) != 3 {
		return env.Errorf(ErrWrongNumOfArgs, "(catch form eform)", form)
	}
	value := Eval(env, form.Items[1])
	if !value.IsError() {
		return value
	}
	handled := Eval(env, form.Items[2])
	if handled.IsError() || !handled.IsNil() {
		return handled
	}
	return value
}

// specialDefq implements `(defq sym1 form1 sym2 form2 ...)`, inserting
// into the current frame.
func specialDefq(env *Env, form *Value) *Value {
	return defLoop(env, form, "(defq sym form ...)", func(sym, val *Value) *Value {
		env.Insert(sym, val)
		return nil
	})
}

// specialSetq implements `(setq sym1 form1 ...)`, mutating via lookup.
func specialSetq(env *Env, form *Value) *Value {
	return defLoop(env, form, "(setq sym form ...)", func(sym, val *Value) *Value {
		if !env.Set(sym, val) {
			return env.Errorf(ErrSymbolNotBound, "(setq sym form ...)", sym)
		}
		return nil
	})
}

func defLoop(env *Env, form *Value, hint string, install func(sym, val *Value) *Value) *Value {
	items := form.Items[1:]
	if len(items) < 2 || len(items)%2 != 0 {
		return env.Errorf(ErrWrongTypes, hint, form)
	}
	result := env.Intern(SymNil)
	for i := 0; i < len(items); i += 2 {
		sym := items[i]
		if sym.tag != TSymbol {
			return env.Errorf(ErrWrongTypes, hint, form)
		}
		val := Eval(env, items[i+1])
		if val.IsError() {
			return val
		}
		if lerr := install(sym, val); lerr != nil {
			return lerr
		}
		result = val
	}
	return result
}

// specialDefmacro implements `(defmacro name (params...) body...)`: binds
// name in the current frame to a (macro (params...) body...) list,
// grounded on defmacro (env.cpp), which
// slices off `defmacro` and overwrites the head with the macro marker.
func specialDefmacro(env *Env, form *Value) *Value {
	if len(form.Items) < 4 || form.Items[1].tag != TSymbol || form.Items[2].tag != TList {
		return env.Errorf(ErrWrongTypes, "(defmacro name (params...) body...)", form)
	}
	sym := form.Items[1]
	body := make([]*Value, len(form.Items)-1)
	copy(body, form.Items[1:])
	body[0] = env.Intern(SymMacro)
	env.Insert(sym, List(body...))
	return sym
}

// specialEnv implements `(env)` → the current environment as a value.
func specialEnv(env *Env, form *Value) *Value {
	if len(form.Items) != 1 {
		return env.Errorf(ErrWrongNumOfArgs, "(env)", form)
	}
	return EnvValue(env)
}

// specialQuasiQuote implements `(quasi-quote x)` (spec.md §4.6), grounded
// on qquote/qquote1 (control.cpp): x is
// rewritten into a `(cat ...)` form whose pieces are `(list e)` for each
// `(unquote e)`, `e` directly for each `(unquote-splicing e)`, and a
// recursively reconstructed `(list (quote ...))` for everything else,
// then that reconstruction is evaluated.
func specialQuasiQuote(env *Env, form *Value) *Value {
	if len(form.Items) != 2 {
		return env.Errorf(ErrWrongNumOfArgs, "(quasi-quote form)", form)
	}
	arg := form.Items[1]
	if arg.tag != TList {
		return arg
	}
	catForm := []*Value{env.Intern(SymCat)}
	for _, item := range arg.Items {
		catForm = append(catForm, qquote1(env, item))
	}
	return Eval(env, List(catForm...))
}

func qquote1(env *Env, o *Value) *Value {
	if o.tag == TList && len(o.Items) > 0 {
		head := o.Items[0]
		switch head {
		case env.Intern(SymUnquote):
			return List(env.Intern(SymList), o.Items[1])
		case env.Intern(SymUnquoteSplicing):
			return o.Items[1]
		}
		inner := []*Value{env.Intern(SymCat)}
		for _, item := range o.Items {
			inner = append(inner, qquote1(env, item))
		}
		evaluated := Eval(env, List(inner...))
		return List(env.Intern(SymList), List(env.Intern(SymQuote), evaluated))
	}
	return List(env.Intern(SymList), List(env.Intern(SymQuote), o))
}
