package lisp

// ExpandMacros rewrites o to a fixed point: repeated whole-form passes,
// each one expanding every macro call reachable without descending into
// quoted subforms, until a pass makes zero expansions.
//
// Grounded on repl()/repl_expand() (repl.cpp): `while (repl_expand(obj,
// 0));` drives full tree passes, each pass counting how many macro calls
// it rewrote.
func ExpandMacros(env *Env, o *Value) (*Value, *Value) {
	for {
		next, cnt, lerr := expandPass(env, o)
		if lerr != nil {
			return nil, lerr
		}
		o = next
		if cnt == 0 {
			return o, nil
		}
	}
}

func expandPass(env *Env, o *Value) (*Value, int, *Value) {
	if o.tag != TList || len(o.Items) == 0 {
		return o, 0, nil
	}
	head := o.Items[0]
	if head == env.Intern(SymQuote) {
		return o, 0, nil
	}
	if head.tag == TSymbol {
		bound, ok := env.Find(head)
		if ok && isMacro(env, bound) {
			result, lerr := Apply(env, bound, o.Items[1:])
			if lerr != nil {
				return nil, 0, lerr
			}
			return result, 1, nil
		}
	}
	return descendExpand(env, o)
}

func descendExpand(env *Env, o *Value) (*Value, int, *Value) {
	cnt := 0
	for i, item := range o.Items {
		next, c, lerr := expandPass(env, item)
		if lerr != nil {
			return nil, 0, lerr
		}
		o.Items[i] = next
		cnt += c
	}
	return o, cnt, nil
}

// isMacro reports whether v is a (macro (params...) body...) closure.
func isMacro(env *Env, v *Value) bool {
	return v.tag == TList && len(v.Items) > 0 && v.Items[0] == env.Intern(SymMacro)
}

// isLambda reports whether v is a (lambda (params...) body...) closure.
func isLambda(env *Env, v *Value) bool {
	return v.tag == TList && len(v.Items) > 0 && v.Items[0] == env.Intern(SymLambda)
}
