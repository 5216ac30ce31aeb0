package sched

import (
	"reflect"
	"testing"
	"time"
)

func TestAdvanceRunsDueTasksInOrder(t *testing.T) {
	q := NewQueue(time.Unix(0, 0))
	var order []string

	q.After(50*time.Millisecond, func() { order = append(order, "b") })
	q.After(10*time.Millisecond, func() { order = append(order, "a") })
	q.After(50*time.Millisecond, func() { order = append(order, "c") })
	q.After(200*time.Millisecond, func() { order = append(order, "d") })

	if ran := q.Advance(100 * time.Millisecond); ran != 3 {
		t.Errorf("Advance ran %d tasks, want 3", ran)
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	if q.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", q.Pending())
	}
	if q.Elapsed() != 100*time.Millisecond {
		t.Errorf("Elapsed() = %v, want 100ms", q.Elapsed())
	}
}

func TestChainedTasksWithinWindow(t *testing.T) {
	q := NewQueue(time.Unix(0, 0))
	var at []time.Duration

	q.After(50*time.Millisecond, func() {
		at = append(at, q.Elapsed())
		q.After(50*time.Millisecond, func() {
			at = append(at, q.Elapsed())
			q.After(0, func() { at = append(at, q.Elapsed()) })
		})
	})

	q.Advance(120 * time.Millisecond)

	want := []time.Duration{50 * time.Millisecond, 100 * time.Millisecond, 100 * time.Millisecond}
	if !reflect.DeepEqual(at, want) {
		t.Errorf("callback times = %v, want %v", at, want)
	}
}

func TestNowFollowsClock(t *testing.T) {
	origin := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	q := NewQueue(origin)
	q.Advance(time.Second)

	if got := q.Now(); !got.Equal(origin.Add(time.Second)) {
		t.Errorf("Now() = %v, want %v", got, origin.Add(time.Second))
	}
}

func TestFlush(t *testing.T) {
	q := NewQueue(time.Unix(0, 0))
	count := 0
	var tick func()
	tick = func() {
		count++
		q.After(time.Millisecond, tick)
	}
	q.After(0, tick)

	if ran := q.Flush(10); ran != 10 {
		t.Errorf("Flush ran %d tasks, want 10", ran)
	}
	if count != 10 {
		t.Errorf("count = %d, want 10", count)
	}
}
