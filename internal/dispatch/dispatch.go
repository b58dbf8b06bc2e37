// Package dispatch delivers state-change notifications in mutation order
// outside the lock that guards the state.
package dispatch

import (
	"slices"
	"sync"
)

// Queue runs queued callbacks in FIFO order. Push is called while the owner
// holds its state lock so the queue order matches the mutation order; Flush
// is called after that lock is released.
type Queue struct {
	mu      sync.Mutex
	pending []func()
	running sync.Mutex
}

// Push appends fn to the queue.
func (q *Queue) Push(fn func()) {
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

// Flush runs queued callbacks until the queue is empty. If another goroutine
// (or an outer Flush on this goroutine) is already draining, Flush returns
// immediately and that drainer delivers the callbacks instead.
func (q *Queue) Flush() {
	for {
		if !q.running.TryLock() {
			return
		}
		for {
			next, ok := q.pop()
			if !ok {
				break
			}
			next()
		}
		q.running.Unlock()

		if q.empty() {
			return
		}
	}
}

func (q *Queue) pop() (func(), bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return nil, false
	}
	next := q.pending[0]
	q.pending[0] = nil
	q.pending = q.pending[1:]
	return next, true
}

func (q *Queue) empty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending) == 0
}

// Listeners is a set of subscribers to values of type T.
type Listeners[T any] struct {
	mu      sync.Mutex
	entries []entry[T]
	nextID  int
}

type entry[T any] struct {
	id int
	fn func(T)
}

// Subscribe registers fn and returns a function that unregisters it.
// Calling the returned function more than once is harmless.
func (l *Listeners[T]) Subscribe(fn func(T)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	id := l.nextID
	l.entries = append(l.entries, entry[T]{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			l.entries = slices.DeleteFunc(l.entries, func(e entry[T]) bool { return e.id == id })
		})
	}
}

// Notify calls every listener with v in subscription order.
func (l *Listeners[T]) Notify(v T) {
	l.mu.Lock()
	entries := slices.Clone(l.entries)
	l.mu.Unlock()

	for _, e := range entries {
		e.fn(v)
	}
}

// Len returns the number of listeners.
func (l *Listeners[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
