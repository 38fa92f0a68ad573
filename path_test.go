package goinspect_test

import (
	"testing"

	"github.com/reoring/goinspect"
)

func TestPath_Pointer(t *testing.T) {
	var root goinspect.Path
	if got := root.Pointer(); got != "/" {
		t.Fatalf("root pointer = %q", got)
	}
	p := root.Child(goinspect.Name("a/b")).Child(goinspect.Index(2)).Child(goinspect.Literal("k~1"))
	if got := p.Pointer(); got != "/a~1b/2/k~01" {
		t.Fatalf("pointer = %q", got)
	}
	if p.Depth() != 3 {
		t.Fatalf("depth = %d", p.Depth())
	}
	if got := goinspect.ParsePath(p.Pointer()).Pointer(); got != p.Pointer() {
		t.Fatalf("ParsePath round trip = %q", got)
	}
	if root.Depth() != 0 {
		t.Fatalf("Child must not modify its receiver")
	}
}
