// Package list implements an intrusive doubly-linked list.
//
// Unlike container/list, elements are created by the caller and carry
// their own links, so list operations never allocate.
package list

type Elem[V any] struct {
	prev, next *Elem[V]
	list       *List[V]

	Value V
}

func NewElem[V any](v V) *Elem[V] {
	return &Elem[V]{Value: v}
}

// Prev returns the previous element or nil.
func (e *Elem[V]) Prev() *Elem[V] {
	return e.prev
}

// Next returns the next element or nil.
func (e *Elem[V]) Next() *Elem[V] {
	return e.next
}

type List[V any] struct {
	front, back *Elem[V]
	length      int
}

func New[V any]() *List[V] {
	return &List[V]{}
}

func (l *List[V]) Front() *Elem[V] {
	return l.front
}

func (l *List[V]) Back() *Elem[V] {
	return l.back
}

func (l *List[V]) Len() int {
	return l.length
}

// PushFront inserts e at the front. e must not belong to any list.
func (l *List[V]) PushFront(e *Elem[V]) *Elem[V] {
	l.length++
	e.list = l

	if l.front == nil {
		l.front = e
		l.back = e
		return e
	}

	e.next = l.front
	l.front.prev = e
	l.front = e
	return e
}

// MoveToFront moves an existing element to the front in O(1).
// Does not change length.
func (l *List[V]) MoveToFront(e *Elem[V]) {
	if e.list != l {
		panic("list: elem does not belong to this list")
	}

	if l.front == e {
		return
	}

	p, n := e.prev, e.next

	// detach (e is not the front, so prev is never nil)
	p.next = n
	if n != nil {
		n.prev = p
	} else {
		l.back = p
	}

	// attach at front
	e.prev = nil
	e.next = l.front

	l.front.prev = e
	l.front = e
}

// Remove unlinks e and returns it. e must belong to l.
func (l *List[V]) Remove(e *Elem[V]) *Elem[V] {
	if e.list != l {
		panic("list: elem does not belong to this list")
	}

	l.length--

	p, n := e.prev, e.next

	if p != nil {
		p.next = n
	} else {
		l.front = n
	}

	if n != nil {
		n.prev = p
	} else {
		l.back = p
	}

	e.prev = nil
	e.next = nil
	e.list = nil

	return e
}
