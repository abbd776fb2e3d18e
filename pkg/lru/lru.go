// Package lru implements a bounded map with least-recently-used eviction.
package lru

import (
	"fmt"

	"github.com/pmkol/rescache/pkg/list"
)

// LRU is a fixed-capacity map. Add and Get mark the key as most recently
// used; once the capacity is reached, Add reuses the least recently used
// slot. Not safe for concurrent use.
type LRU[K comparable, V any] struct {
	capacity int
	onEvict  func(key K, v V)

	// recency order, most recently used at the front
	l *list.List[KV[K, V]]
	m map[K]*list.Elem[KV[K, V]]
}

type KV[K comparable, V any] struct {
	key K
	v   V
}

func New[K comparable, V any](capacity int, onEvict func(key K, v V)) *LRU[K, V] {
	if capacity <= 0 {
		panic(fmt.Sprintf("lru: invalid capacity: %d", capacity))
	}

	return &LRU[K, V]{
		capacity: capacity,
		onEvict:  onEvict,
		l:        list.New[KV[K, V]](),
		m:        make(map[K]*list.Elem[KV[K, V]], capacity),
	}
}

// Add stores v under key, replacing any previous value without invoking
// onEvict for it. If the store is full, the least recently used entry is
// evicted and its element reused.
func (q *LRU[K, V]) Add(key K, v V) {
	if e, ok := q.m[key]; ok {
		e.Value = KV[K, V]{key: key, v: v}
		q.l.MoveToFront(e)
		return
	}

	if q.l.Len() >= q.capacity {
		e := q.l.Back()

		if q.onEvict != nil {
			q.onEvict(e.Value.key, e.Value.v)
		}

		delete(q.m, e.Value.key)

		e.Value = KV[K, V]{key: key, v: v}
		q.m[key] = e
		q.l.MoveToFront(e)
		return
	}

	e := list.NewElem(KV[K, V]{key: key, v: v})
	q.m[key] = e
	q.l.PushFront(e)
}

func (q *LRU[K, V]) Get(key K) (v V, ok bool) {
	e, ok := q.m[key]
	if !ok {
		return
	}
	q.l.MoveToFront(e)
	return e.Value.v, true
}

// Peek returns the value without touching recency.
func (q *LRU[K, V]) Peek(key K) (v V, ok bool) {
	e, ok := q.m[key]
	if !ok {
		return
	}
	return e.Value.v, true
}

func (q *LRU[K, V]) Del(key K) {
	if e, ok := q.m[key]; ok {
		q.removeElem(e)
	}
}

// Clean walks all entries from least to most recently used and removes
// those for which f returns true. onEvict is invoked for each removal.
func (q *LRU[K, V]) Clean(f func(key K, v V) bool) (removed int) {
	e := q.l.Back()
	for e != nil {
		prev := e.Prev()

		if f(e.Value.key, e.Value.v) {
			q.removeElem(e)
			removed++
		}

		e = prev
	}
	return removed
}

// Flush removes every entry without invoking onEvict.
func (q *LRU[K, V]) Flush() {
	q.l = list.New[KV[K, V]]()
	clear(q.m)
}

func (q *LRU[K, V]) Len() int {
	return q.l.Len()
}

func (q *LRU[K, V]) removeElem(e *list.Elem[KV[K, V]]) {
	key, v := e.Value.key, e.Value.v
	q.l.Remove(e)
	delete(q.m, key)

	if q.onEvict != nil {
		q.onEvict(key, v)
	}
}
