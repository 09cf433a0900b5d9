package watcher

import (
	"sync"
	"testing"
	"time"
)

type collector struct {
	mu     sync.Mutex
	events []Event
	got    chan struct{}
}

func newCollector() *collector {
	return &collector{got: make(chan struct{}, 16)}
}

func (c *collector) fn(ev Event) {
	c.mu.Lock()
	c.events = append(c.events, ev)
	c.mu.Unlock()
	c.got <- struct{}{}
}

func (c *collector) all() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Event(nil), c.events...)
}

func (c *collector) wait(t *testing.T) {
	t.Helper()
	select {
	case <-c.got:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for debounced event")
	}
}

func TestDebouncer_Coalesces(t *testing.T) {
	c := newCollector()
	d := newDebouncer(30*time.Millisecond, c.fn)
	defer d.stop()

	now := time.Now()
	d.add("/a", OpWrite, now)
	d.add("/a", OpWrite, now)
	d.add("/a", OpCreate, now.Add(time.Millisecond))
	if d.count() != 1 {
		t.Errorf("count() = %d, want 1", d.count())
	}

	c.wait(t)

	events := c.all()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Path != "/a" || events[0].Op != OpWrite|OpCreate {
		t.Errorf("event = %+v", events[0])
	}
	if !events[0].Time.Equal(now.Add(time.Millisecond)) {
		t.Errorf("Time = %v, want the last operation time", events[0].Time)
	}
	if d.count() != 0 {
		t.Errorf("count() after fire = %d, want 0", d.count())
	}
}

func TestDebouncer_SeparatePaths(t *testing.T) {
	c := newCollector()
	d := newDebouncer(10*time.Millisecond, c.fn)
	defer d.stop()

	d.add("/a", OpWrite, time.Now())
	d.add("/b", OpRemove, time.Now())
	c.wait(t)
	c.wait(t)

	if len(c.all()) != 2 {
		t.Errorf("got %d events, want 2", len(c.all()))
	}
}

func TestDebouncer_Cancel(t *testing.T) {
	c := newCollector()
	d := newDebouncer(20*time.Millisecond, c.fn)
	defer d.stop()

	d.add("/a", OpWrite, time.Now())
	d.cancel("/a")
	d.cancel("/missing")

	time.Sleep(60 * time.Millisecond)
	if n := len(c.all()); n != 0 {
		t.Errorf("canceled path delivered %d events", n)
	}
}

func TestDebouncer_Stop(t *testing.T) {
	c := newCollector()
	d := newDebouncer(20*time.Millisecond, c.fn)

	d.add("/a", OpWrite, time.Now())
	d.stop()
	d.add("/b", OpWrite, time.Now())

	time.Sleep(60 * time.Millisecond)
	if n := len(c.all()); n != 0 {
		t.Errorf("stopped debouncer delivered %d events", n)
	}
	if d.count() != 0 {
		t.Errorf("count() = %d, want 0", d.count())
	}
}
