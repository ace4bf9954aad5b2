package lisp

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
)

// InStream is a readable byte source bound to a name for diagnostics
// (spec.md §4.14). It backs files, standard input and in-memory buffers
// uniformly, grounded on the filestream/strstream split in stream.cpp.
type InStream struct {
	Name   string
	Line   int
	r      *bufio.Reader
	closer io.Closer
}

// OutStream is a writable byte sink bound to a name for diagnostics.
type OutStream struct {
	Name   string
	w      *bufio.Writer
	closer io.Closer
	buf    *bytes.Buffer // non-nil only for in-memory sinks
}

// NewFileInStream opens path for reading.
func NewFileInStream(path string) (*InStream, *Value) {
	f, err := os.Open(path)
	if err != nil {
		return nil, NewError(ErrOpenError, err.Error(), "", 0, NewString(path))
	}
	return &InStream{Name: path, Line: 1, r: bufio.NewReader(f), closer: f}, nil
}

// NewStdinInStream wraps os.Stdin as an InStream named "*stdin*".
func NewStdinInStream() *InStream {
	return &InStream{Name: "*stdin*", Line: 1, r: bufio.NewReader(os.Stdin)}
}

// NewInStream wraps an arbitrary io.Reader as a named InStream, used by a
// Reader's batch Read method over a caller-supplied stream.
func NewInStream(name string, r io.Reader) *InStream {
	return &InStream{Name: name, Line: 1, r: bufio.NewReader(r)}
}

// NewBufferInStream returns an InStream over an in-memory string, used by
// the repl package for feeding pasted forms and by tests for deterministic
// input (spec.md §4.14).
func NewBufferInStream(name, data string) *InStream {
	return &InStream{Name: name, Line: 1, r: bufio.NewReader(bytes.NewReader([]byte(data)))}
}

// ReadByte reads a single byte, reporting false at end of stream, and
// advances the stream's line counter across newlines (spec.md §4.3's
// "*stream-line*" binding).
func (s *InStream) ReadByte() (byte, bool) {
	b, err := s.r.ReadByte()
	if err != nil {
		return 0, false
	}
	if b == '\n' {
		s.Line++
	}
	return b, true
}

// UnreadByte pushes the most recently read byte back onto the stream,
// used by the reader to implement one-token lookahead.
func (s *InStream) UnreadByte() {
	_ = s.r.UnreadByte()
}

// Peek returns the next n bytes without consuming them, reporting false if
// fewer than n bytes remain.
func (s *InStream) Peek(n int) ([]byte, bool) {
	b, err := s.r.Peek(n)
	if err != nil {
		return nil, false
	}
	return b, true
}

// ReadLine reads up to and including the next newline, returning the line
// without its trailing newline and false once nothing more is available.
func (s *InStream) ReadLine() (string, bool) {
	line, err := s.r.ReadString('\n')
	if line == "" && err != nil {
		return "", false
	}
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
	}
	return line, true
}

// Close releases any underlying OS resource. Closing a buffer or stdin
// stream is a no-op.
func (s *InStream) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

// NewFileOutStream opens path for writing, creating parent directories as
// needed (spec.md §4.14; grounded on save(),
// which calls rmkdir before writing). append selects append-vs-truncate.
func NewFileOutStream(path string, append bool) (*OutStream, *Value) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, NewError(ErrOpenError, err.Error(), "", 0, NewString(path))
		}
	}
	flags := os.O_CREATE | os.O_WRONLY
	if append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, NewError(ErrOpenError, err.Error(), "", 0, NewString(path))
	}
	return &OutStream{Name: path, w: bufio.NewWriter(f), closer: f}, nil
}

// NewStdoutOutStream wraps os.Stdout.
func NewStdoutOutStream() *OutStream {
	return &OutStream{Name: "*stdout*", w: bufio.NewWriter(os.Stdout)}
}

// NewStderrOutStream wraps os.Stderr.
func NewStderrOutStream() *OutStream {
	return &OutStream{Name: "*stderr*", w: bufio.NewWriter(os.Stderr)}
}

// NewBufferOutStream returns an OutStream that accumulates into memory;
// its contents are retrieved with String(). Used by `string-stream` and by
// tests that capture printed output without a real file (spec.md §4.14).
func NewBufferOutStream(name string) *OutStream {
	buf := &bytes.Buffer{}
	return &OutStream{Name: name, w: bufio.NewWriter(buf), buf: buf}
}

// String returns the accumulated contents of an in-memory OutStream. It
// panics if s was not created with NewBufferOutStream.
func (s *OutStream) String() string {
	if s.buf == nil {
		panic("lisp: String() called on a non-buffer OutStream")
	}
	_ = s.w.Flush()
	return s.buf.String()
}

// WriteString writes s verbatim.
func (s *OutStream) WriteString(str string) *Value {
	if _, err := s.w.WriteString(str); err != nil {
		return NewError(ErrOpenError, err.Error(), "", 0, NewString(s.Name))
	}
	return nil
}

// WriteByte writes a single byte.
func (s *OutStream) WriteByte(b byte) *Value {
	if err := s.w.WriteByte(b); err != nil {
		return NewError(ErrOpenError, err.Error(), "", 0, NewString(s.Name))
	}
	return nil
}

// Flush forces buffered output to the underlying sink.
func (s *OutStream) Flush() *Value {
	if err := s.w.Flush(); err != nil {
		return NewError(ErrOpenError, err.Error(), "", 0, NewString(s.Name))
	}
	return nil
}

// Close flushes and releases any underlying OS resource.
func (s *OutStream) Close() error {
	_ = s.w.Flush()
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

// IStreamValue wraps an InStream as a first-class Value.
func IStreamValue(in *InStream) *Value { return &Value{tag: TIStream, In: in} }

// OStreamValue wraps an OutStream as a first-class Value.
func OStreamValue(out *OutStream) *Value { return &Value{tag: TOStream, Out: out} }
