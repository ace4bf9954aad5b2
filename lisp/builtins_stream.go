package lisp

import "io"

// Stream built-ins (spec.md §4.7 "Streams"), grounded on
// filestream/strstream/read/readchar/readline/write/
// writechar/save/load (stream.cpp).

func builtinFileStream(env *Env, args []*Value) *Value {
	hint := "(file-stream path)"
	if len(args) != 1 || args[0].tag != TString {
		return env.Errorf(ErrWrongTypes, hint, List(args...))
	}
	in, lerr := NewFileInStream(args[0].str)
	if lerr != nil {
		return env.Intern(SymNil)
	}
	return IStreamValue(in)
}

// builtinStringStream implements `string-stream` (spec.md §4.3's type
// list: "in-memory-output-stream is an OStream"): an in-memory sink that
// `write`/`write-char` can target and whose accumulated bytes are
// recovered with `str`, grounded on strstream (stream.cpp).
func builtinStringStream(env *Env, args []*Value) *Value {
	hint := "(string-stream str)"
	if len(args) != 1 || args[0].tag != TString {
		return env.Errorf(ErrWrongTypes, hint, List(args...))
	}
	return OStreamValue(NewBufferOutStream("*string*"))
}

// builtinRead implements `read` (spec.md §4.7): reads one form from an
// input stream using the environment's configured Reader.
func builtinRead(env *Env, args []*Value) *Value {
	hint := "(read stream)"
	if len(args) != 1 || args[0].tag != TIStream {
		return env.Errorf(ErrWrongTypes, hint, List(args...))
	}
	reader := env.Runtime().Reader
	if reader == nil {
		return env.Errorf(ErrGeneric, "no reader configured", List(args...))
	}
	form, ok, lerr := reader.ReadForm(env, args[0].In)
	if lerr != nil {
		return lerr
	}
	if !ok {
		return env.Intern(SymNil)
	}
	return form
}

// builtinReadChar implements `read-char [width]` (spec.md §4.7): reads
// 1-8 bytes as one little-endian packed integer.
func builtinReadChar(env *Env, args []*Value) *Value {
	hint := "(read-char stream [width])"
	if len(args) < 1 || len(args) > 2 || args[0].tag != TIStream {
		return env.Errorf(ErrNotAStream, hint, List(args...))
	}
	width := int64(1)
	if len(args) == 2 {
		if args[1].tag != TInt {
			return env.Errorf(ErrNotANumber, hint, List(args...))
		}
		width = ((args[1].Int - 1) & 7) + 1
	}
	var value int64
	for i := int64(0); i < width; i++ {
		b, ok := args[0].In.ReadByte()
		if !ok {
			return env.Intern(SymNil)
		}
		value |= int64(b) << (8 * uint(i))
	}
	return Int64(value)
}

// builtinReadLine implements `read-line` (spec.md §4.7).
func builtinReadLine(env *Env, args []*Value) *Value {
	hint := "(read-line stream)"
	if len(args) != 1 || args[0].tag != TIStream {
		return env.Errorf(ErrWrongTypes, hint, List(args...))
	}
	line, ok := args[0].In.ReadLine()
	if !ok {
		return env.Intern(SymNil)
	}
	return NewString(line)
}

// builtinWrite implements `write stream str` (spec.md §4.7).
func builtinWrite(env *Env, args []*Value) *Value {
	hint := "(write stream str)"
	if len(args) != 2 || args[0].tag != TOStream || args[1].tag != TString {
		return env.Errorf(ErrWrongTypes, hint, List(args...))
	}
	if lerr := args[0].Out.WriteString(args[1].str); lerr != nil {
		return lerr
	}
	if lerr := args[0].Out.WriteString("\n"); lerr != nil {
		return lerr
	}
	return args[0]
}

// builtinWriteChar implements `write-char stream list|num [width]`
// (spec.md §4.7).
func builtinWriteChar(env *Env, args []*Value) *Value {
	hint := "(write-char stream list|num [width])"
	if len(args) < 2 || len(args) > 3 || args[0].tag != TOStream {
		return env.Errorf(ErrNotAStream, hint, List(args...))
	}
	width := int64(1)
	if len(args) == 3 {
		if args[2].tag != TInt {
			return env.Errorf(ErrNotANumber, hint, List(args...))
		}
		width = ((args[2].Int - 1) & 7) + 1
	}
	writeOne := func(n int64) *Value {
		for i := int64(0); i < width; i++ {
			if lerr := args[0].Out.WriteByte(byte(n >> (8 * uint(i)))); lerr != nil {
				return lerr
			}
		}
		return nil
	}
	switch args[1].tag {
	case TList:
		if len(args[1].Items) == 0 {
			return env.Errorf(ErrWrongNumOfArgs, hint, List(args...))
		}
		for _, v := range args[1].Items {
			if v.tag != TInt {
				return env.Errorf(ErrNotANumber, hint, List(args...))
			}
			if lerr := writeOne(v.Int); lerr != nil {
				return lerr
			}
		}
		return args[0]
	case TInt:
		if lerr := writeOne(args[1].Int); lerr != nil {
			return lerr
		}
		return args[0]
	default:
		return env.Errorf(ErrNotANumber, hint, List(args...))
	}
}

// builtinSave implements `save str path` (spec.md §4.7): writes a string
// to a path, creating parent directories if needed.
func builtinSave(env *Env, args []*Value) *Value {
	hint := "(save str path)"
	if len(args) != 2 || args[0].tag != TString || args[1].tag != TString {
		return env.Errorf(ErrWrongTypes, hint, List(args...))
	}
	out, lerr := NewFileOutStream(args[1].str, false)
	if lerr != nil {
		return lerr
	}
	defer out.Close()
	if lerr := out.WriteString(args[0].str); lerr != nil {
		return lerr
	}
	return args[0]
}

// builtinPrin implements `prin` (spec.md §4.7): writes every argument to
// standard output, strings unquoted, everything else in machine form, and
// returns the last argument. Grounded on prin (stream.cpp).
func builtinPrin(env *Env, args []*Value) *Value {
	w := env.Stdout()
	value := env.Intern(SymNil)
	for _, a := range args {
		io.WriteString(w, a.Display())
		value = a
	}
	return value
}

// builtinPrint implements `print`: prin followed by a trailing newline.
func builtinPrint(env *Env, args []*Value) *Value {
	value := builtinPrin(env, args)
	io.WriteString(env.Stdout(), "\n")
	return value
}

// builtinLoad implements `load path` (spec.md §4.7): reads a file's
// contents as a string, nil on failure.
func builtinLoad(env *Env, args []*Value) *Value {
	hint := "(load path)"
	if len(args) != 1 || args[0].tag != TString {
		return env.Errorf(ErrWrongTypes, hint, List(args...))
	}
	in, lerr := NewFileInStream(args[0].str)
	if lerr != nil {
		return env.Intern(SymNil)
	}
	defer in.Close()
	var buf []byte
	for {
		b, ok := in.ReadByte()
		if !ok {
			break
		}
		buf = append(buf, b)
	}
	return NewString(string(buf))
}
