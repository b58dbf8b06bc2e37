package dispatch

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueue_FIFO(t *testing.T) {
	var q Queue
	var got []int

	for i := range 3 {
		q.Push(func() { got = append(got, i) })
	}
	q.Flush()

	assert.Equal(t, []int{0, 1, 2}, got)

	q.Flush()
	assert.Len(t, got, 3)
}

func TestQueue_ReentrantPushIsDeliveredAfterCurrent(t *testing.T) {
	var q Queue
	var got []string

	q.Push(func() {
		got = append(got, "outer")
		q.Push(func() { got = append(got, "nested") })
		q.Flush()
		got = append(got, "outer done")
	})
	q.Push(func() { got = append(got, "second") })
	q.Flush()

	assert.Equal(t, []string{"outer", "outer done", "second", "nested"}, got)
}

func TestQueue_ConcurrentFlushDeliversEverything(t *testing.T) {
	var q Queue
	var mu sync.Mutex
	count := 0

	var wg sync.WaitGroup
	for range 100 {
		wg.Go(func() {
			q.Push(func() {
				mu.Lock()
				count++
				mu.Unlock()
			})
			q.Flush()
		})
	}
	wg.Wait()

	assert.Equal(t, 100, count)
}

func TestListeners(t *testing.T) {
	var l Listeners[string]
	var got []string

	unsubA := l.Subscribe(func(s string) { got = append(got, "a:"+s) })
	l.Subscribe(func(s string) { got = append(got, "b:"+s) })
	assert.Equal(t, 2, l.Len())

	l.Notify("x")
	unsubA()
	unsubA()
	l.Notify("y")

	assert.Equal(t, []string{"a:x", "b:x", "b:y"}, got)
	assert.Equal(t, 1, l.Len())
}
