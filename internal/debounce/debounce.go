// Package debounce delays values until their input has been quiet for a
// fixed window.
package debounce

import (
	"sync"
	"time"
)

const DefaultDelay = 500 * time.Millisecond

type Timer interface {
	Stop() bool
}

type AfterFunc func(d time.Duration, f func()) Timer

type Option func(*options)

type options struct {
	afterFunc AfterFunc
}

func WithAfterFunc(fn AfterFunc) Option {
	return func(o *options) {
		o.afterFunc = fn
	}
}

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Debouncer emits the last pushed value once no new value has arrived for
// the delay. Emissions are serialized and never happen after Stop returns.
type Debouncer[T any] struct {
	emitMu sync.Mutex
	mu     sync.Mutex

	delay     time.Duration
	emit      func(T)
	afterFunc AfterFunc

	timer   Timer
	gen     uint64
	pending bool
	value   T
	stopped bool
}

func New[T any](delay time.Duration, emit func(T), opts ...Option) *Debouncer[T] {
	o := options{afterFunc: realAfterFunc}
	for _, opt := range opts {
		opt(&o)
	}
	if delay <= 0 {
		delay = DefaultDelay
	}

	return &Debouncer[T]{
		delay:     delay,
		emit:      emit,
		afterFunc: o.afterFunc,
	}
}

func (d *Debouncer[T]) Push(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	d.value = v
	d.pending = true

	gen := d.gen
	d.timer = d.afterFunc(d.delay, func() { d.fire(gen) })
}

// Flush emits the pending value now instead of waiting for the window.
func (d *Debouncer[T]) Flush() bool {
	d.mu.Lock()
	if d.stopped || !d.pending {
		d.mu.Unlock()
		return false
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	gen := d.gen
	d.mu.Unlock()

	return d.fire(gen)
}

// Cancel drops the pending value without stopping the debouncer.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	d.pending = false
	var zero T
	d.value = zero
}

func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

func (d *Debouncer[T]) Stop() {
	d.emitMu.Lock()
	defer d.emitMu.Unlock()

	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	var zero T
	d.value = zero
}

func (d *Debouncer[T]) fire(gen uint64) bool {
	d.emitMu.Lock()
	defer d.emitMu.Unlock()

	d.mu.Lock()
	if d.stopped || !d.pending || gen != d.gen {
		d.mu.Unlock()
		return false
	}
	v := d.value
	d.pending = false
	d.timer = nil
	d.mu.Unlock()

	d.emit(v)
	return true
}
