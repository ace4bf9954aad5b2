package lisp

import (
	"io"
	"os"
)

// envEntry is one chained bucket slot. Buckets are indexed by the cached
// identity hash of the interned symbol (spec.md §4.4/§4.9): collisions
// within a bucket are resolved by a short linked chain rather than a
// secondary table, which keeps child frames (typically a handful of
// bindings) cheap to allocate and resize.
type envEntry struct {
	sym  *Value
	val  *Value
	next *envEntry
}

// Env is one link in a lexical scope chain: a bucketed symbol table plus an
// optional parent pointer (spec.md §4.4). The parent chain is acyclic by
// construction — Push always allocates a brand-new child, and nothing in
// this package ever reassigns an existing Env's parent.
type Env struct {
	buckets  []*envEntry
	count    int
	parent   *Env
	interner *Interner
	runtime  *Runtime // only ever set on the root; children read it via Root()
}

const rootBucketCount = 64
const childBucketCount = 1

// NewRootEnv returns a fresh root environment with its own symbol
// interner and no parent.
func NewRootEnv() *Env {
	return &Env{
		buckets:  make([]*envEntry, rootBucketCount),
		interner: NewInterner(),
		runtime: &Runtime{
			Stack:  &CallStack{},
			Stderr: os.Stderr,
		},
	}
}

// Push creates a fresh child frame of env. Child frames start with a
// single bucket since they typically hold only a few bindings (spec.md
// §4.9). Insert never resizes a frame; only an explicit Resize call
// changes its bucket count.
func (env *Env) Push() *Env {
	return &Env{
		buckets:  make([]*envEntry, childBucketCount),
		parent:   env,
		interner: env.interner,
	}
}

// Pop returns env's parent frame. Calling Pop on the root frame panics:
// that indicates an unbalanced Push/Pop in the evaluator, an
// implementation bug rather than a user-facing condition.
func (env *Env) Pop() *Env {
	if env.parent == nil {
		panic("lisp: Pop called on the root environment")
	}
	return env.parent
}

// Root returns the root ancestor of env.
func (env *Env) Root() *Env {
	for env.parent != nil {
		env = env.parent
	}
	return env
}

// Intern canonicalizes name through env's shared interner.
func (env *Env) Intern(name string) *Value {
	return env.interner.Intern(name)
}

// Runtime returns the shared Runtime for env's environment tree.
func (env *Env) Runtime() *Runtime {
	return env.Root().runtime
}

// Stack returns the shared call stack used for diagnostics.
func (env *Env) Stack() *CallStack {
	return env.Runtime().Stack
}

// Stderr returns the stream diagnostics should be written to, defaulting
// to os.Stderr if no WithStderr Config was applied.
func (env *Env) Stderr() io.Writer {
	if w := env.Runtime().Stderr; w != nil {
		return w
	}
	return os.Stderr
}

// Stdout returns the stream `prin`/`print` should write to, defaulting to
// os.Stdout if no WithStdout Config was applied.
func (env *Env) Stdout() io.Writer {
	if w := env.Runtime().Stdout; w != nil {
		return w
	}
	return os.Stdout
}

func (env *Env) bucketIndex(sym *Value) int {
	return int(sym.hashBytes() % uint64(len(env.buckets)))
}

// Insert writes sym/val into env's own frame, replacing any prior binding
// of sym in this frame only (spec.md §4.4).
func (env *Env) Insert(sym, val *Value) {
	i := env.bucketIndex(sym)
	for e := env.buckets[i]; e != nil; e = e.next {
		if e.sym == sym {
			e.val = val
			return
		}
	}
	env.buckets[i] = &envEntry{sym: sym, val: val, next: env.buckets[i]}
	env.count++
}

// Find walks env's parent chain looking for sym and returns the bound
// value and true on a hit, or (nil, false) on a miss.
func (env *Env) Find(sym *Value) (*Value, bool) {
	for e := env; e != nil; e = e.parent {
		i := e.bucketIndex(sym)
		for entry := e.buckets[i]; entry != nil; entry = entry.next {
			if entry.sym == sym {
				return entry.val, true
			}
		}
	}
	return nil, false
}

// Get is Find without the success flag: it returns the bound value, or an
// Error of kind ErrSymbolNotBound if sym is unbound anywhere in the chain.
func (env *Env) Get(sym *Value) *Value {
	if v, ok := env.Find(sym); ok {
		return v
	}
	return env.Errorf(ErrSymbolNotBound, "", sym)
}

// Set walks env's parent chain looking for sym; on a hit it replaces the
// binding in place (in whichever frame holds it) and returns true. On a
// miss it returns false and leaves env untouched — callers surface
// ErrSymbolNotBound (spec.md §4.4).
func (env *Env) Set(sym, val *Value) bool {
	for e := env; e != nil; e = e.parent {
		i := e.bucketIndex(sym)
		for entry := e.buckets[i]; entry != nil; entry = entry.next {
			if entry.sym == sym {
				entry.val = val
				return true
			}
		}
	}
	return false
}

// Erase removes sym from env's own frame only.
func (env *Env) Erase(sym *Value) {
	i := env.bucketIndex(sym)
	var prev *envEntry
	for e := env.buckets[i]; e != nil; e = e.next {
		if e.sym == sym {
			if prev == nil {
				env.buckets[i] = e.next
			} else {
				prev.next = e.next
			}
			env.count--
			return
		}
		prev = e
	}
}

// Resize rebuilds env's own bucket array with n buckets, rehashing every
// entry currently held in this frame (spec.md §4.4 "resize(n)").
func (env *Env) Resize(n int) {
	if n < 1 {
		n = 1
	}
	old := env.buckets
	env.buckets = make([]*envEntry, n)
	for _, head := range old {
		for e := head; e != nil; {
			next := e.next
			i := env.bucketIndex(e.sym)
			e.next = env.buckets[i]
			env.buckets[i] = e
			e = next
		}
	}
}

// streamLocation reads the *stream-name*/*stream-line* bindings used to
// stamp Error values with a source location (spec.md §4.3/§4.9). Absent
// bindings (e.g. in a freshly constructed test Env) yield ("", 0).
func (env *Env) streamLocation() (string, int) {
	name := ""
	line := 0
	if v, ok := env.Find(env.Intern(SymStreamName)); ok && v.Tag() == TString {
		name = v.str
	}
	if v, ok := env.Find(env.Intern(SymStreamLine)); ok && v.Tag() == TInt {
		line = int(v.Int)
	}
	return name, line
}

// Bind destructures a parameter pattern (spec.md §4.4 "Bind") against a
// sequence of already-evaluated argument values, inserting bindings into
// env's own frame. It returns nil on success or an Error value.
//
// Grounded on env_bind (env.cpp): parameters are walked left to right,
// with &rest consuming a
// slice of the remaining values and &optional defaulting to nil when
// values run out; a parameter that is itself a list pattern recurses
// against the corresponding value, which must be a list.
func Bind(env *Env, params *Value, values []*Value) *Value {
	state := 0 // 0 normal, 1 after &rest, 2 after &optional
	vi := 0
	restSym := env.Intern(SymRest)
	optSym := env.Intern(SymOptional)
	for pi := 0; pi < len(params.Items); pi++ {
		p := params.Items[pi]
		if p == restSym {
			state = 1
			continue
		}
		if p == optSym {
			state = 2
			continue
		}
		switch p.tag {
		case TSymbol:
			switch state {
			case 1:
				env.Insert(p, List(values[vi:]...))
				vi = len(values)
			case 2:
				if vi < len(values) {
					env.Insert(p, values[vi])
					vi++
				} else {
					env.Insert(p, env.Intern(SymNil))
				}
			default:
				if vi >= len(values) {
					return env.Errorf(ErrWrongNumOfArgs, "(bind (param ...) seq)", params)
				}
				env.Insert(p, values[vi])
				vi++
			}
		case TList:
			if vi >= len(values) {
				return env.Errorf(ErrWrongNumOfArgs, "(bind (param ...) seq)", params)
			}
			v := values[vi]
			if v.tag != TList {
				return env.Errorf(ErrNotAList, "(bind (param ...) seq)", v)
			}
			if lerr := Bind(env, p, v.Items); lerr != nil {
				return lerr
			}
			vi++
		default:
			return env.Errorf(ErrNotASymbol, "(bind (param ...) seq)", p)
		}
	}
	if vi != len(values) {
		return env.Errorf(ErrWrongNumOfArgs, "(bind (param ...) seq)", params)
	}
	return nil
}
