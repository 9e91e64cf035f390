package renderdirty

import "testing"

func TestMarkClearRoundTrip(t *testing.T) {
	var r RenderDirty
	if r.Dirty() {
		t.Fatalf("expected a fresh RenderDirty to start clean")
	}
	r.Mark()
	if !r.Dirty() {
		t.Fatalf("expected Mark to set dirty")
	}
	r.Clear()
	if r.Dirty() {
		t.Fatalf("expected Clear to reset dirty")
	}
}
