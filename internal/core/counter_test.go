package core

import "testing"

func TestCounterFinalizedNoFlags(t *testing.T) {
	c := Counter{Value: 42}
	if got := c.Finalized(2, 4, 100); got != 42 {
		t.Fatalf("want 42, got %v", got)
	}
}

func TestCounterFinalizedRate(t *testing.T) {
	c := Counter{Value: 100, Flags: CounterRate}
	if got := c.Finalized(4, 1, 1); got != 25 {
		t.Fatalf("want 25, got %v", got)
	}
}

func TestCounterFinalizedIterationInvariantAndRate(t *testing.T) {
	// The harness's canonical "events per second assuming cost is per
	// iteration" combination.
	c := Counter{Value: 42, Flags: CounterRate | CounterIterationInvariant}
	got := c.Finalized(2, 1, 100)
	want := 42.0 * 100 / 2
	if got != want {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func TestCounterFinalizedAvgThreads(t *testing.T) {
	c := Counter{Value: 80, Flags: CounterAvgThreads}
	if got := c.Finalized(1, 4, 1); got != 20 {
		t.Fatalf("want 20, got %v", got)
	}
}

func TestCounterFinalizedInvertAppliedLast(t *testing.T) {
	c := Counter{Value: 10, Flags: CounterRate | CounterInvert}
	// rate = 10/2 = 5, invert -> 0.2
	if got := c.Finalized(2, 1, 1); got != 0.2 {
		t.Fatalf("want 0.2, got %v", got)
	}
}

func TestCountersAddAccumulates(t *testing.T) {
	c := NewCounters()
	c.Add("x", 1, CounterRate)
	c.Add("x", 2, CounterRate)
	v, ok := c.Get("x")
	if !ok || v.Value != 3 {
		t.Fatalf("want 3, got %+v ok=%v", v, ok)
	}
}

func TestCountersPreservesInsertionOrder(t *testing.T) {
	c := NewCounters()
	c.Add("b", 1, 0)
	c.Add("a", 1, 0)
	c.Add("c", 1, 0)
	got := c.Names()
	want := []string{"b", "a", "c"}
	for i, n := range want {
		if got[i] != n {
			t.Fatalf("order mismatch: got %v want %v", got, want)
		}
	}
}

func TestCountersMergeAdditive(t *testing.T) {
	a := NewCounters()
	a.Add("x", 1, 0)
	a.Add("y", 5, 0)

	b := NewCounters()
	b.Add("x", 2, 0)
	b.Add("z", 9, 0)

	m := a.Merge(b)
	xv, _ := m.Get("x")
	yv, _ := m.Get("y")
	zv, _ := m.Get("z")
	if xv.Value != 3 || yv.Value != 5 || zv.Value != 9 {
		t.Fatalf("unexpected merge result: x=%v y=%v z=%v", xv, yv, zv)
	}
}
