package lisp

import "testing"

func TestInternCanonicalizesByName(t *testing.T) {
	in := NewInterner()
	a := in.Intern("foo")
	b := in.Intern("foo")
	if a != b {
		t.Fatalf("Intern(%q) returned distinct objects across calls", "foo")
	}
	c := in.Intern("bar")
	if a == c {
		t.Fatalf("Intern returned the same object for two different names")
	}
}

func TestEnvInternSharesIdentityAcrossCalls(t *testing.T) {
	env := NewRootEnv()
	InstallBuiltins(env)
	a := env.Intern("widget")
	b := env.Intern("widget")
	if a != b {
		t.Fatal("two symbols with equal byte sequences must share one object")
	}
}
