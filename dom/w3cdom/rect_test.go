package w3cdom

import "testing"

func TestRectEdges(t *testing.T) {
	r := DOMRect{X: 10, Y: 20, Width: 30, Height: 40}
	if r.Top() != 20 || r.Left() != 10 || r.Right() != 40 || r.Bottom() != 60 {
		t.Errorf("unexpected edges for %v", r)
	}
	neg := DOMRect{X: 10, Y: 20, Width: -5, Height: -10}
	if neg.Top() != 10 || neg.Left() != 5 || neg.Right() != 10 || neg.Bottom() != 20 {
		t.Errorf("unexpected edges for negative rect %v", neg)
	}
	if r.IsEmpty() {
		t.Errorf("expected %v to have an area", r)
	}
	if !(DOMRect{}).IsEmpty() {
		t.Errorf("expected zero rect to be empty")
	}
}
