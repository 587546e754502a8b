package ratelimit

import "testing"

func TestAllowExhaustsCapacity(t *testing.T) {
	l := New()
	for i := 0; i < 3; i++ {
		if !l.Allow("1.2.3.4", 3, 0) {
			t.Fatalf("request %d should pass", i+1)
		}
	}
	if l.Allow("1.2.3.4", 3, 0) {
		t.Fatal("request over capacity should be rejected")
	}
}

func TestAllowIsPerKey(t *testing.T) {
	l := New()
	if !l.Allow("a", 1, 0) {
		t.Fatal("first request for a should pass")
	}
	if l.Allow("a", 1, 0) {
		t.Fatal("a is exhausted")
	}
	if !l.Allow("b", 1, 0) {
		t.Fatal("b has its own bucket")
	}
}
