package watcher

import (
	"sync"
	"time"
)

// debouncer coalesces operations on a path until the path has been quiet
// for the delay, then hands the merged event to fn.
type debouncer struct {
	delay time.Duration
	fn    func(Event)

	mu      sync.Mutex
	pending map[string]*pendingEvent
	stopped bool
	running sync.WaitGroup
}

type pendingEvent struct {
	event Event
	timer *time.Timer
}

func newDebouncer(delay time.Duration, fn func(Event)) *debouncer {
	return &debouncer{
		delay:   delay,
		fn:      fn,
		pending: make(map[string]*pendingEvent),
	}
}

func (d *debouncer) add(path string, op Op, at time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if p, ok := d.pending[path]; ok {
		p.event.Op |= op
		p.event.Time = at
		p.timer.Reset(d.delay)
		return
	}

	p := &pendingEvent{event: Event{Path: path, Op: op, Time: at}}
	p.timer = time.AfterFunc(d.delay, func() { d.fire(path, p) })
	d.pending[path] = p
}

func (d *debouncer) fire(path string, p *pendingEvent) {
	d.mu.Lock()
	if d.stopped || d.pending[path] != p {
		d.mu.Unlock()
		return
	}
	delete(d.pending, path)
	d.running.Add(1)
	event := p.event
	d.mu.Unlock()

	defer d.running.Done()
	d.fn(event)
}

// cancel drops a pending event for path.
func (d *debouncer) cancel(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if p, ok := d.pending[path]; ok {
		p.timer.Stop()
		delete(d.pending, path)
	}
}

// count returns the number of pending events.
func (d *debouncer) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// stop cancels pending events and waits for callbacks in flight.
func (d *debouncer) stop() {
	d.mu.Lock()
	d.stopped = true
	for path, p := range d.pending {
		p.timer.Stop()
		delete(d.pending, path)
	}
	d.mu.Unlock()

	d.running.Wait()
}
