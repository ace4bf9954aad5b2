package lisp

// Iteration helpers (spec.md §4.7 "some!"/"each!"), grounded on some/each
// (seq.cpp): both walk `[start, end)`
// across one or more sequences in lock-step, binding the loop index to
// `_` and calling lambda with the elements at that position. `some!`
// short-circuits once the result crosses the `mode` sentinel (nil vs
// non-nil); `each!` always runs to completion. A descending range
// (start > end) walks backward with the usual off-by-one boundary
// adjustment.

// seqLenSentinel mirrors seq.cpp's max_len starting value: with no
// seq-list arguments at all, min never gets updated away from it, which
// resolveRange uses to skip bounds-checking and looping entirely rather
// than validate start/end against a bogus length of 0.
const seqLenSentinel = 1000000

func seqMinLen(env *Env, hint string, seqs []*Value) (int64, *Value) {
	min := int64(seqLenSentinel)
	for _, s := range seqs {
		if !s.IsSequence() {
			return 0, env.Errorf(ErrNotASequence, hint, s)
		}
		if n := int64(s.SeqLen()); n < min {
			min = n
		}
	}
	return min, nil
}

func seqElemAt(s *Value, i int64) *Value {
	if s.tag == TList {
		return s.Items[i]
	}
	return NewString(string(s.str[i]))
}

// resolveRange reports skip=true, with no error, when maxLen is the
// seqLenSentinel (an empty seq-list): seq.cpp's some/each guard the
// entire bounds-check-and-loop with `if (max_len != 1000000)`, so an
// empty seq-list short-circuits to the caller's initial value instead
// of validating start/end against a length of 0.
func resolveRange(env *Env, hint string, startV, endV *Value, maxLen int64) (start, end, dir int64, skip bool, lerr *Value) {
	if maxLen == seqLenSentinel {
		return 0, 0, 0, true, nil
	}
	start = rebase(startV.Int, maxLen)
	end = rebase(endV.Int, maxLen)
	if start < 0 || start > maxLen || end < 0 || end > maxLen {
		return 0, 0, 0, false, env.Errorf(ErrNotValidIndex, hint, List(startV, endV))
	}
	dir = 1
	if start > end {
		dir = -1
		start--
		end--
	}
	return start, end, dir, false, nil
}

// builtinSome implements `(some! start end mode lambda (seq1 seq2 ...))`.
func builtinSome(env *Env, args []*Value) *Value {
	hint := "(some! start end mode lambda (seq ...))"
	if len(args) != 5 || args[0].tag != TInt || args[1].tag != TInt || args[4].tag != TList {
		return env.Errorf(ErrWrongTypes, hint, List(args...))
	}
	seqs := args[4].Items
	mode := args[2]
	fn := args[3]
	value := mode
	maxLen, lerr := seqMinLen(env, hint, seqs)
	if lerr != nil {
		return lerr
	}
	start, end, dir, skip, lerr := resolveRange(env, hint, args[0], args[1], maxLen)
	if lerr != nil {
		return lerr
	}
	if skip {
		return value
	}
	loop := env.Push()
	underscore := loop.Intern("_")
	for start != end {
		loop.Insert(underscore, Int64(start))
		callArgs := make([]*Value, len(seqs))
		for i, s := range seqs {
			callArgs[i] = seqElemAt(s, start)
		}
		result, lerr := Apply(loop, fn, callArgs)
		if lerr != nil {
			return lerr
		}
		value = result
		if value.IsError() {
			break
		}
		if mode.IsNil() && !value.IsNil() {
			break
		}
		if !mode.IsNil() && value.IsNil() {
			break
		}
		start += dir
	}
	return value
}

// builtinEach implements `(each! start end lambda (seq1 seq2 ...))`.
func builtinEach(env *Env, args []*Value) *Value {
	hint := "(each! start end lambda (seq ...))"
	if len(args) != 4 || args[0].tag != TInt || args[1].tag != TInt || args[3].tag != TList {
		return env.Errorf(ErrWrongTypes, hint, List(args...))
	}
	seqs := args[3].Items
	fn := args[2]
	value := env.Intern(SymNil)
	maxLen, lerr := seqMinLen(env, hint, seqs)
	if lerr != nil {
		return lerr
	}
	start, end, dir, skip, lerr := resolveRange(env, hint, args[0], args[1], maxLen)
	if lerr != nil {
		return lerr
	}
	if skip {
		return value
	}
	loop := env.Push()
	underscore := loop.Intern("_")
	for start != end {
		loop.Insert(underscore, Int64(start))
		callArgs := make([]*Value, len(seqs))
		for i, s := range seqs {
			callArgs[i] = seqElemAt(s, start)
		}
		result, lerr := Apply(loop, fn, callArgs)
		if lerr != nil {
			return lerr
		}
		value = result
		if value.IsError() {
			break
		}
		start += dir
	}
	return value
}
