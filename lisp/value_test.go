package lisp

import "testing"

func TestIsSubtypeRelations(t *testing.T) {
	str := NewString("abc")
	if !str.Is(KindSequence) {
		t.Error("a String must be a Sequence")
	}
	sym := NewInterner().Intern("x")
	if !sym.Is(KindString) || !sym.Is(KindSequence) || !sym.Is(KindSymbol) {
		t.Error("a Symbol must be a String and a Sequence and a Symbol")
	}
	lst := List(Int64(1))
	if !lst.Is(KindSequence) || lst.Is(KindString) {
		t.Error("a List is a Sequence but never a String")
	}
	if lst.Is(KindSymbol) {
		t.Error("a List is never a Symbol")
	}
}

func TestEqlIdentityVsStructural(t *testing.T) {
	a := List(Int64(1), Int64(2))
	b := List(Int64(1), Int64(2))
	if a == b {
		t.Fatal("two freshly built lists must not be the same object")
	}
	if !Eql(a, b) {
		t.Error("Eql must treat equal-shaped lists as structurally equal")
	}
	c := List(Int64(1), Int64(3))
	if Eql(a, c) {
		t.Error("Eql must distinguish lists with different elements")
	}
	if Eql(NewString("ab"), NewString("ac")) {
		t.Error("Eql must distinguish unequal strings")
	}
}

func TestCmpBytesIsUnsignedLexicographic(t *testing.T) {
	if CmpBytes(NewString("a"), NewString("b")) >= 0 {
		t.Error("\"a\" must sort before \"b\"")
	}
	if CmpBytes(NewString("abc"), NewString("abc")) != 0 {
		t.Error("equal strings must compare equal")
	}
}

func TestPrintingStringVsDisplay(t *testing.T) {
	s := NewString("hi")
	if s.String() != `"hi"` {
		t.Errorf("String() must quote a String value, got %q", s.String())
	}
	if s.Display() != "hi" {
		t.Errorf("Display() must not quote a String value, got %q", s.Display())
	}
	lst := List(Int64(1), Int64(2))
	if lst.String() != "(1 2)" {
		t.Errorf("List.String() = %q, want (1 2)", lst.String())
	}
	if lst.Display() != lst.String() {
		t.Error("Display() of a non-String value must match String()")
	}
}
