package lisp

// builtinEntry pairs a name with the native function bound to it, mirroring
// the langBuiltin/langBuiltins table pattern (lisp/builtins.go) — trimmed
// since this core's built-ins perform their own arity/type checks rather
// than declaring a Formals() shape.
type builtinEntry struct {
	name string
	raw  bool
	fn   func(env *Env, args []*Value) *Value
}

var coreBuiltins = []builtinEntry{
	// Control (raw).
	{SymLambda, true, builtinLambdaMarker},
	{SymMacro, true, builtinLambdaMarker},

	// Control (evaluated args).
	{"progn", false, builtinProgn},
	{"eval", false, builtinEval},
	{"apply", false, builtinApply},
	{"sym", false, builtinSym},
	{"gensym", false, builtinGensym},
	{"bind", false, builtinBind},
	{"def", false, builtinDef},
	{"set", false, builtinSet},
	{"def?", false, builtinDefined},
	{"type?", false, builtinType},
	{"throw", false, builtinThrow},

	// Arithmetic.
	{"+", false, builtinAdd},
	{"-", false, builtinSub},
	{"*", false, builtinMul},
	{"/", false, builtinDiv},
	{"%", false, builtinMod},
	{"max", false, builtinMax},
	{"min", false, builtinMin},
	{"fmul", false, builtinFMul},
	{"fdiv", false, builtinFDiv},

	// Bitwise.
	{"logand", false, builtinLogAnd},
	{"logior", false, builtinLogOr},
	{"logxor", false, builtinLogXor},
	{"shl", false, builtinShl},
	{"shr", false, builtinShr},
	{"asr", false, builtinAsr},

	// Comparison.
	{"=", false, builtinNumEq},
	{"/=", false, builtinNumNe},
	{"<", false, builtinLt},
	{">", false, builtinGt},
	{"<=", false, builtinLe},
	{">=", false, builtinGe},
	{"eql", false, builtinEql},

	// Sequence polymorphic ops.
	{"list", false, builtinList},
	{"length", false, builtinLength},
	{"elem", false, builtinElem},
	{"slice", false, builtinSlice},
	{"cat", false, builtinCat},

	// List-only ops.
	{"push", false, builtinPush},
	{"pop", false, builtinPop},
	{"clear", false, builtinClear},
	{"elem-set", false, builtinElemSet},
	{"find", false, builtinFind},
	{"find-rev", false, builtinFindRev},
	{"merge", false, builtinMerge},
	{"split", false, builtinSplit},
	{"match?", false, builtinMatch},
	{"partition", false, builtinPartition},
	{"copy", false, builtinCopy},

	// String ops.
	{"cmp", false, builtinCmp},
	{"code", false, builtinCode},
	{"char", false, builtinChar},
	{"str", false, builtinStr},

	// Streams.
	{"file-stream", false, builtinFileStream},
	{"string-stream", false, builtinStringStream},
	{"read", false, builtinRead},
	{"read-char", false, builtinReadChar},
	{"read-line", false, builtinReadLine},
	{"write", false, builtinWrite},
	{"write-char", false, builtinWriteChar},
	{"save", false, builtinSave},
	{"load", false, builtinLoad},
	{"prin", false, builtinPrin},
	{"print", false, builtinPrint},

	// Iteration helpers.
	{"some!", false, builtinSome},
	{"each!", false, builtinEach},

	// Time.
	{"time", false, builtinTime},
	{"age", false, builtinAge},
}

// InstallBuiltins binds every native function in coreBuiltins into env's
// own frame, mirroring LEnv.AddBuiltins. Called once on a freshly
// constructed root environment.
func InstallBuiltins(env *Env) {
	for _, b := range coreBuiltins {
		env.Insert(env.Intern(b.name), Fun(b.name, b.raw, b.fn))
	}
	env.Insert(env.Intern(SymNil), env.Intern(SymNil))
	env.Insert(env.Intern(SymT), env.Intern(SymT))
}
