package ambient

import (
	"testing"
	"time"
)

func TestManualClockOrdering(t *testing.T) {
	c := NewManualClock()
	var got []int
	c.AfterFunc(30*time.Millisecond, func() { got = append(got, 3) })
	c.AfterFunc(10*time.Millisecond, func() {
		got = append(got, 1)
		c.AfterFunc(10*time.Millisecond, func() { got = append(got, 2) })
	})
	stopped := c.AfterFunc(15*time.Millisecond, func() { got = append(got, 99) })
	if !stopped.Stop() {
		t.Fatal("Stop on pending timer returned false")
	}
	if stopped.Stop() {
		t.Fatal("second Stop returned true")
	}

	c.Advance(25 * time.Millisecond)
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("after 25ms got %v, want [1 2]", got)
	}
	if c.Now() != 25*time.Millisecond {
		t.Fatalf("Now() = %v", c.Now())
	}
	c.Advance(5 * time.Millisecond)
	if len(got) != 3 || got[2] != 3 {
		t.Fatalf("after 30ms got %v, want [1 2 3]", got)
	}
	if c.Pending() != 0 {
		t.Fatalf("Pending() = %d, want 0", c.Pending())
	}
}

func TestSystemClockStop(t *testing.T) {
	timer := SystemClock().AfterFunc(time.Hour, func() {})
	if !timer.Stop() {
		t.Fatal("Stop on pending system timer returned false")
	}
}
