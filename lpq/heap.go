package lpq

import "container/heap"

// genHeap is a container/heap.Interface min-heap over an arbitrary element
// type, ordered by a caller-supplied less function. Defined once here and
// reused both for the near-level buckets and for the overflow heap.
type genHeap[T any] struct {
	items []T
	less  func(a, b T) bool
}

func newGenHeap[T any](less func(a, b T) bool) *genHeap[T] {
	h := &genHeap[T]{less: less}
	heap.Init(h)
	return h
}

func (h *genHeap[T]) Len() int            { return len(h.items) }
func (h *genHeap[T]) Less(i, j int) bool  { return h.less(h.items[i], h.items[j]) }
func (h *genHeap[T]) Swap(i, j int)       { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *genHeap[T]) Push(x any)          { h.items = append(h.items, x.(T)) }
func (h *genHeap[T]) Pop() any {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}

// peek returns the minimum element without removing it.
func (h *genHeap[T]) peek() (T, bool) {
	var zero T
	if len(h.items) == 0 {
		return zero, false
	}
	return h.items[0], true
}

// pushItem pushes v onto the heap, maintaining the heap invariant.
func (h *genHeap[T]) pushItem(v T) { heap.Push(h, v) }

// popItem removes and returns the minimum element.
func (h *genHeap[T]) popItem() (T, bool) {
	var zero T
	if len(h.items) == 0 {
		return zero, false
	}
	return heap.Pop(h).(T), true
}
