package sortedlist

import "testing"

func equal(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestInsertKeepsNonIncreasingOrder(t *testing.T) {
	l := New()
	for _, v := range []int64{5, 1, 9, 5, 7, -2} {
		l.Insert(v)
	}
	want := []int64{9, 7, 5, 5, 1, -2}
	if got := l.Values(); !equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if l.Len() != 6 {
		t.Errorf("expected len 6, got %d", l.Len())
	}
	if front, _ := l.Front(); front != 9 {
		t.Errorf("expected front 9, got %d", front)
	}
	if back, _ := l.Back(); back != -2 {
		t.Errorf("expected back -2, got %d", back)
	}
	if l.String() != "9->7->5->5->1->-2->" {
		t.Errorf("unexpected rendering %q", l.String())
	}
}

func TestAppendIgnoresOrder(t *testing.T) {
	l := New()
	l.Append(1)
	l.Append(3)
	l.Insert(2)
	want := []int64{2, 1, 3}
	if got := l.Values(); !equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestDeleteHeadMiddleTail(t *testing.T) {
	l := New()
	for _, v := range []int64{1, 2, 3, 4} {
		l.Insert(v)
	}
	if !l.Delete(4) || !l.Delete(2) || !l.Delete(1) {
		t.Fatal("expected deletes to succeed")
	}
	if got := l.Values(); !equal(got, []int64{3}) {
		t.Fatalf("expected [3], got %v", got)
	}
	if front, _ := l.Front(); front != 3 {
		t.Error("expected head to move")
	}
	if back, _ := l.Back(); back != 3 {
		t.Error("expected tail to move")
	}
	if !l.Delete(3) || !l.Empty() {
		t.Error("expected empty list")
	}
}

// --- Edge Cases ---

func TestDeleteMissingOrEmpty(t *testing.T) {
	l := New()
	if l.Delete(1) {
		t.Error("expected false deleting from empty list")
	}
	l.Insert(2)
	if l.Delete(7) {
		t.Error("expected false deleting a missing value")
	}
	if _, ok := New().Front(); ok {
		t.Error("expected no front on empty list")
	}
}

func TestClear(t *testing.T) {
	l := New()
	l.Insert(1)
	l.Clear()
	if !l.Empty() || l.Len() != 0 || l.String() != "" {
		t.Error("expected cleared list")
	}
}
