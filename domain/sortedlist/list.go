// Package sortedlist implements a doubly linked list of int64 values kept
// in non-increasing order by Insert. Append ignores order.
package sortedlist

import (
	"strconv"
	"strings"
)

type element struct {
	value int64
	next  *element
	prev  *element
}

// List is single-writer. The zero value is an empty list.
type List struct {
	head *element
	tail *element
	n    int
}

func New() *List { return &List{} }

// Insert places v before the first element that is <= v, keeping the list
// in non-increasing order.
func (l *List) Insert(v int64) {
	e := &element{value: v}
	at := l.head
	for at != nil && v < at.value {
		at = at.next
	}
	if at == nil {
		l.pushBack(e)
		return
	}
	l.insertBefore(e, at)
}

// Append adds v at the tail regardless of order.
func (l *List) Append(v int64) {
	l.pushBack(&element{value: v})
}

// Delete unlinks the first element equal to v. It reports whether one was
// found.
func (l *List) Delete(v int64) bool {
	e := l.head
	for e != nil && e.value != v {
		e = e.next
	}
	if e == nil {
		return false
	}
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		l.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		l.tail = e.prev
	}
	e.next, e.prev = nil, nil
	l.n--
	return true
}

func (l *List) Len() int    { return l.n }
func (l *List) Empty() bool { return l.head == nil }
func (l *List) Clear()      { *l = List{} }

// Front returns the first value, false when empty.
func (l *List) Front() (int64, bool) {
	if l.head == nil {
		return 0, false
	}
	return l.head.value, true
}

// Back returns the last value, false when empty.
func (l *List) Back() (int64, bool) {
	if l.tail == nil {
		return 0, false
	}
	return l.tail.value, true
}

// ForEach walks head to tail until fn returns false.
func (l *List) ForEach(fn func(int64) bool) {
	for e := l.head; e != nil; e = e.next {
		if !fn(e.value) {
			return
		}
	}
}

// Values copies the list head to tail.
func (l *List) Values() []int64 {
	out := make([]int64, 0, l.n)
	l.ForEach(func(v int64) bool {
		out = append(out, v)
		return true
	})
	return out
}

// String renders the list as "5->3->1->".
func (l *List) String() string {
	var b strings.Builder
	l.ForEach(func(v int64) bool {
		b.WriteString(strconv.FormatInt(v, 10))
		b.WriteString("->")
		return true
	})
	return b.String()
}

// ---- internal helpers ----

func (l *List) pushBack(e *element) {
	if l.tail == nil {
		l.head = e
		l.tail = e
	} else {
		l.tail.next = e
		e.prev = l.tail
		l.tail = e
	}
	l.n++
}

func (l *List) insertBefore(e, at *element) {
	e.next = at
	e.prev = at.prev
	if at.prev != nil {
		at.prev.next = e
	} else {
		l.head = e
	}
	at.prev = e
	l.n++
}
