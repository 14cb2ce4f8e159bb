package ring

import "testing"

func TestPushBelowCapacity(t *testing.T) {
	b := New[int](3)
	for i := 1; i <= 3; i++ {
		if _, evicted := b.Push(i); evicted {
			t.Errorf("push %d: unexpected eviction", i)
		}
	}
	if b.Len() != 3 {
		t.Errorf("len = %d, want 3", b.Len())
	}
}

func TestPushEvictsOldest(t *testing.T) {
	b := New[int](3)
	b.Push(1)
	b.Push(2)
	b.Push(3)

	evicted, ok := b.Push(4)
	if !ok {
		t.Fatal("expected eviction at capacity")
	}
	if evicted != 1 {
		t.Errorf("evicted = %d, want 1 (oldest)", evicted)
	}

	got := b.Values()
	want := []int{2, 3, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("values[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestLenNeverExceedsCap(t *testing.T) {
	b := New[int](5)
	for i := 0; i < 100; i++ {
		b.Push(i)
		if b.Len() > b.Cap() {
			t.Fatalf("len %d exceeds cap %d after push %d", b.Len(), b.Cap(), i)
		}
	}
	got := b.Values()
	if got[0] != 95 || got[4] != 99 {
		t.Errorf("values = %v, want [95..99]", got)
	}
}

func TestValuesIsACopy(t *testing.T) {
	b := New[int](2)
	b.Push(1)
	vs := b.Values()
	vs[0] = 42
	if b.Values()[0] != 1 {
		t.Error("mutating Values() result leaked into the buffer")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := New[int](2)
	b.Push(1)
	c := b.Clone()
	c.Push(2)
	c.Push(3)
	if b.Len() != 1 {
		t.Errorf("original len = %d after clone mutation, want 1", b.Len())
	}
}

func TestFromValuesTruncatesToNewest(t *testing.T) {
	b := FromValues(3, []int{1, 2, 3, 4, 5})
	got := b.Values()
	want := []int{3, 4, 5}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("values[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestNewPanicsOnZeroCapacity(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for zero capacity")
		}
	}()
	New[int](0)
}
