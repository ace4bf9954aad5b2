package lisp

// Sequence-polymorphic and list-only built-ins (spec.md §4.7), grounded
// on list/push/pop/clear/length/elem/elemset/part/slice/cat/find/rfind/
// merge/split/match/copy (seq.cpp).

func rebase(i, length int64) int64 {
	if i < 0 {
		return i + length + 1
	}
	return i
}

func builtinList(env *Env, args []*Value) *Value {
	return List(append([]*Value{}, args...)...)
}

func builtinLength(env *Env, args []*Value) *Value {
	hint := "(length seq)"
	if len(args) != 1 || !args[0].IsSequence() {
		return env.Errorf(ErrWrongTypes, hint, List(args...))
	}
	return Int64(int64(args[0].SeqLen()))
}

func builtinElem(env *Env, args []*Value) *Value {
	hint := "(elem index seq)"
	if len(args) != 2 || args[0].tag != TInt || !args[1].IsSequence() {
		return env.Errorf(ErrWrongTypes, hint, List(args...))
	}
	seq := args[1]
	i := rebase(args[0].Int, int64(seq.SeqLen()))
	if i < 0 || i >= int64(seq.SeqLen()) {
		return env.Errorf(ErrNotValidIndex, hint, List(args...))
	}
	switch seq.tag {
	case TList:
		return seq.Items[i]
	default:
		return NewString(string(seq.str[i]))
	}
}

func builtinElemSet(env *Env, args []*Value) *Value {
	hint := "(elem-set index list val)"
	if len(args) != 3 || args[0].tag != TInt || args[1].tag != TList {
		return env.Errorf(ErrWrongTypes, hint, List(args...))
	}
	lst := args[1]
	i := rebase(args[0].Int, int64(len(lst.Items)))
	if i < 0 || i >= int64(len(lst.Items)) {
		return env.Errorf(ErrNotValidIndex, hint, List(args...))
	}
	lst.Items[i] = args[2]
	return args[2]
}

func builtinSlice(env *Env, args []*Value) *Value {
	hint := "(slice start end seq)"
	if len(args) != 3 || args[0].tag != TInt || args[1].tag != TInt || !args[2].IsSequence() {
		return env.Errorf(ErrWrongTypes, hint, List(args...))
	}
	seq := args[2]
	length := int64(seq.SeqLen())
	s := rebase(args[0].Int, length)
	e := rebase(args[1].Int, length)
	if s < 0 || e < s || e > length {
		return env.Errorf(ErrNotValidIndex, hint, List(args...))
	}
	if seq.tag == TList {
		items := make([]*Value, e-s)
		copy(items, seq.Items[s:e])
		return List(items...)
	}
	return NewString(seq.str[s:e])
}

func builtinCat(env *Env, args []*Value) *Value {
	hint := "(cat seq ...)"
	if len(args) == 0 || !args[0].IsSequence() {
		return env.Errorf(ErrWrongTypes, hint, List(args...))
	}
	if args[0].tag == TList {
		var items []*Value
		for _, a := range args {
			if a.tag != TList {
				return env.Errorf(ErrNotAllLists, hint, List(args...))
			}
			items = append(items, a.Items...)
		}
		return List(items...)
	}
	var buf []byte
	for _, a := range args {
		if !a.IsSequence() || a.tag == TList {
			return env.Errorf(ErrNotAllStrings, hint, List(args...))
		}
		buf = append(buf, a.str...)
	}
	return NewString(string(buf))
}

func builtinPush(env *Env, args []*Value) *Value {
	hint := "(push array form ...)"
	if len(args) < 2 || args[0].tag != TList {
		return env.Errorf(ErrWrongTypes, hint, List(args...))
	}
	lst := args[0]
	lst.Items = append(lst.Items, args[1:]...)
	return lst
}

func builtinPop(env *Env, args []*Value) *Value {
	hint := "(pop array)"
	if len(args) != 1 || args[0].tag != TList {
		return env.Errorf(ErrWrongTypes, hint, List(args...))
	}
	lst := args[0]
	if len(lst.Items) == 0 {
		return env.Intern(SymNil)
	}
	last := lst.Items[len(lst.Items)-1]
	lst.Items = lst.Items[:len(lst.Items)-1]
	return last
}

func builtinClear(env *Env, args []*Value) *Value {
	hint := "(clear array ...)"
	if len(args) == 0 {
		return env.Errorf(ErrWrongTypes, hint, List(args...))
	}
	for _, a := range args {
		if a.tag != TList {
			return env.Errorf(ErrWrongTypes, hint, List(args...))
		}
	}
	for _, a := range args {
		a.Items = nil
	}
	return args[len(args)-1]
}

// builtinFind implements `find` (spec.md §4.7, §9 Open Question): scan
// forward for elem in seq, returning its index or nil.
func builtinFind(env *Env, args []*Value) *Value {
	return findImpl(env, "(find elem seq)", args, false)
}

// builtinFindRev implements `find-rev`: scan seq from the end.
func builtinFindRev(env *Env, args []*Value) *Value {
	return findImpl(env, "(find-rev elem seq)", args, true)
}

func findImpl(env *Env, hint string, args []*Value, reverse bool) *Value {
	if len(args) != 2 {
		return env.Errorf(ErrWrongNumOfArgs, hint, List(args...))
	}
	elem, seq := args[0], args[1]
	switch seq.tag {
	case TList:
		n := len(seq.Items)
		if reverse {
			for i := n - 1; i >= 0; i-- {
				if Eql(seq.Items[i], elem) {
					return Int64(int64(i))
				}
			}
		} else {
			for i := 0; i < n; i++ {
				if Eql(seq.Items[i], elem) {
					return Int64(int64(i))
				}
			}
		}
		return env.Intern(SymNil)
	case TString, TSymbol:
		if elem.tag != TString && elem.tag != TSymbol || len(elem.str) == 0 {
			return env.Errorf(ErrNotAString, hint, List(args...))
		}
		c := elem.str[0]
		if reverse {
			for i := len(seq.str) - 1; i >= 0; i-- {
				if seq.str[i] == c {
					return Int64(int64(i))
				}
			}
		} else {
			for i := 0; i < len(seq.str); i++ {
				if seq.str[i] == c {
					return Int64(int64(i))
				}
			}
		}
		return env.Intern(SymNil)
	}
	return env.Errorf(ErrNotASequence, hint, List(args...))
}

// builtinMerge appends the unique symbols of list 2 onto list 1
// (spec.md §4.7 "merge"; grounded on merge, registered there as
// merge-sym, seq.cpp).
func builtinMerge(env *Env, args []*Value) *Value {
	hint := "(merge list list)"
	if len(args) != 2 || args[0].tag != TList || args[1].tag != TList {
		return env.Errorf(ErrWrongTypes, hint, List(args...))
	}
	dst, src := args[0], args[1]
	for _, s := range src.Items {
		if s.tag != TSymbol {
			return env.Errorf(ErrWrongTypes, hint, List(args...))
		}
	}
	for _, s := range src.Items {
		found := false
		for _, d := range dst.Items {
			if d == s {
				found = true
				break
			}
		}
		if !found {
			dst.Items = append(dst.Items, s)
		}
	}
	return dst
}

// builtinSplit implements the character-set + quote-aware split (spec.md
// §9's resolved Open Question), grounded on split (seq.cpp): skip a run
// of delimiter characters, then accumulate a
// token up to the next delimiter, except a `"`-quoted run is copied
// through verbatim.
func builtinSplit(env *Env, args []*Value) *Value {
	hint := "(split str chars)"
	if len(args) != 2 || args[0].tag != TString || args[1].tag != TString {
		return env.Errorf(ErrWrongTypes, hint, List(args...))
	}
	s, delims := args[0].str, args[1].str
	isDelim := func(c byte) bool {
		for i := 0; i < len(delims); i++ {
			if delims[i] == c {
				return true
			}
		}
		return false
	}
	var out []*Value
	i := 0
	for i < len(s) {
		for i < len(s) && isDelim(s[i]) {
			i++
		}
		if i >= len(s) {
			break
		}
		start := i
		if s[i] == '"' {
			i++
			for i < len(s) && s[i] != '"' {
				i++
			}
			if i < len(s) {
				i++
			}
		} else {
			for i < len(s) && !isDelim(s[i]) {
				i++
			}
		}
		out = append(out, NewString(s[start:i]))
	}
	return List(out...)
}

// builtinMatch implements `match?` (spec.md §4.7): equal-length lists,
// position-wise identity, with the string "_" matching anything.
func builtinMatch(env *Env, args []*Value) *Value {
	hint := "(match? list list)"
	if len(args) != 2 || args[0].tag != TList || args[1].tag != TList {
		return env.Errorf(ErrWrongTypes, hint, List(args...))
	}
	a, b := args[0].Items, args[1].Items
	if len(a) != len(b) {
		return env.Intern(SymNil)
	}
	for i := range a {
		if a[i] == b[i] {
			continue
		}
		if b[i].tag != TString || b[i].str != "_" {
			return env.Intern(SymNil)
		}
	}
	return env.Intern(SymT)
}

// builtinPartition implements `partition` (spec.md §4.7): a quicksort
// partition step around a pivot, returning the pivot's final index.
// Grounded on part (seq.cpp), there named
// "pivot".
func builtinPartition(env *Env, args []*Value) *Value {
	hint := "(partition lambda list start end)"
	if len(args) != 4 || args[1].tag != TList || args[2].tag != TInt || args[3].tag != TInt {
		return env.Errorf(ErrWrongTypes, hint, List(args...))
	}
	fn := args[0]
	items := args[1].Items
	start, end := args[2].Int, args[3].Int
	length := int64(len(items))
	if start < 0 || start >= end || end > length {
		return env.Errorf(ErrNotValidIndex, hint, List(args...))
	}
	lower := start
	pivot := lower
	for i := start + 1; i < end; i++ {
		v, lerr := Apply(env, fn, []*Value{items[i], items[lower]})
		if lerr != nil {
			return lerr
		}
		result := int64(0)
		if v.tag == TInt {
			result = v.Int
		}
		if result < 0 {
			pivot++
			if pivot != i {
				items[i], items[pivot] = items[pivot], items[i]
			}
		}
	}
	if pivot != lower {
		items[lower], items[pivot] = items[pivot], items[lower]
	}
	return Int64(pivot)
}

// builtinCopy implements `copy` (spec.md §4.7): shallow copy of lists,
// recursively — copying every nested list but leaving non-list leaves
// shared, grounded on copy/copy1 (seq.cpp).
func builtinCopy(env *Env, args []*Value) *Value {
	if len(args) != 1 {
		return env.Errorf(ErrWrongNumOfArgs, "(copy form)", List(args...))
	}
	return copyDeep(args[0])
}

func copyDeep(v *Value) *Value {
	if v.tag != TList {
		return v
	}
	items := make([]*Value, len(v.Items))
	for i, it := range v.Items {
		items[i] = copyDeep(it)
	}
	return List(items...)
}
