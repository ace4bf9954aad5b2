package lisp

import (
	"os"
	"time"
)

// builtinTime implements `time` (spec.md §4.7): nanoseconds since epoch.
func builtinTime(env *Env, args []*Value) *Value {
	return Int64(time.Now().UnixNano())
}

// builtinAge implements `age path` (spec.md §4.7): the filesystem mtime
// of path in integer seconds, 0 on failure.
func builtinAge(env *Env, args []*Value) *Value {
	hint := "(age path)"
	if len(args) != 1 || args[0].tag != TString {
		return env.Errorf(ErrWrongTypes, hint, List(args...))
	}
	info, err := os.Stat(args[0].str)
	if err != nil {
		return Int64(0)
	}
	return Int64(info.ModTime().Unix())
}
