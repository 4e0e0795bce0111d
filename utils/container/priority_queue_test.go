package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/gridcity-sim/utils/container"
)

func TestPriorityQueueInit(t *testing.T) {
	q := container.NewPriorityQueue[string]()
	assert.Equal(t, 0, q.Len())
}

func TestPriorityQueueOrder(t *testing.T) {
	q := container.NewPriorityQueue[string]()

	q.HeapPush("c", 3.0, 0)
	q.HeapPush("a", 1.0, 1)
	q.HeapPush("b", 2.0, 2)
	assert.Equal(t, 3, q.Len())
	assert.Equal(t, "a", q.First())

	// test: pop in priority order

	v, p := q.HeapPop()
	assert.Equal(t, "a", v)
	assert.Equal(t, 1.0, p)
	v, _ = q.HeapPop()
	assert.Equal(t, "b", v)
	v, _ = q.HeapPop()
	assert.Equal(t, "c", v)
	assert.Equal(t, 0, q.Len())
}

func TestPriorityQueueTieBreak(t *testing.T) {
	q := container.NewPriorityQueue[string]()

	// equal priorities pop by ascending order key, not insertion order
	q.HeapPush("second", 1.0, 10)
	q.HeapPush("third", 1.0, 20)
	q.HeapPush("first", 1.0, 5)

	v, _ := q.HeapPop()
	assert.Equal(t, "first", v)
	v, _ = q.HeapPop()
	assert.Equal(t, "second", v)
	v, _ = q.HeapPop()
	assert.Equal(t, "third", v)
}
