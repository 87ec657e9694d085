// SPDX-License-Identifier: Apache-2.0

// Package ilist implements an intrusive doubly-linked list.
//
// The values are the nodes: a type joins a list by embedding a Link field, and the
// list reaches that field through an accessor. A type can sit in several lists at
// once by embedding one Link per list:
//
//	type Box struct {
//		Live    ilist.Link[Box]
//		Dirty   ilist.Link[Box]
//		Name    string
//	}
//
//	live := ilist.New(func(b *Box) *ilist.Link[Box] { return &b.Live })
//	live.Link(box)
//
// Lists never allocate or free. Membership is independent of where the values live,
// so values allocated from a region.Region can be linked just like heap values.
package ilist

import "iter"

// Link is the embedded membership record of a list node. The zero value is unlinked.
type Link[T any] struct {
	prev, next *T
	owner      *List[T]
}

// Linked reports whether the node currently belongs to a list.
func (k *Link[T]) Linked() bool {
	return k.owner != nil
}

// List is a doubly-linked list threaded through the Link fields of its values.
// A List must not be copied after first use.
type List[T any] struct {
	head, tail *T
	n          int
	link       func(*T) *Link[T]
}

// New returns an empty list that reaches node links through link.
func New[T any](link func(*T) *Link[T]) *List[T] {
	return new(List[T]).Init(link)
}

// Init sets the link accessor of a value-embedded list and returns l. Init must only
// be called on an empty list.
func (l *List[T]) Init(link func(*T) *Link[T]) *List[T] {
	if l.n != 0 {
		panic("ilist: Init on a non-empty list")
	}
	l.link = link
	return l
}

// Len returns the number of linked values.
func (l *List[T]) Len() int { return l.n }

// Empty reports whether the list has no values.
func (l *List[T]) Empty() bool { return l.n == 0 }

// Head returns the first value, or nil.
func (l *List[T]) Head() *T { return l.head }

// Tail returns the last value, or nil.
func (l *List[T]) Tail() *T { return l.tail }

// Next returns the value after x, or nil when x is the tail.
func (l *List[T]) Next(x *T) *T {
	return l.member(x).next
}

// Prev returns the value before x, or nil when x is the head.
func (l *List[T]) Prev(x *T) *T {
	return l.member(x).prev
}

// Contains reports whether x is linked into l.
func (l *List[T]) Contains(x *T) bool {
	return x != nil && l.link(x).owner == l
}

// Link appends x at the tail.
func (l *List[T]) Link(x *T) {
	l.insert(x, l.tail, nil)
}

// LinkFront prepends x at the head.
func (l *List[T]) LinkFront(x *T) {
	l.insert(x, nil, l.head)
}

// InsertAfter links x directly after mark, which must be a member of l.
func (l *List[T]) InsertAfter(mark, x *T) {
	l.insert(x, mark, l.member(mark).next)
}

// InsertBefore links x directly before mark, which must be a member of l.
func (l *List[T]) InsertBefore(mark, x *T) {
	l.insert(x, l.member(mark).prev, mark)
}

// Unlink removes x from the list and clears its link. It panics when x is not a
// member of l.
func (l *List[T]) Unlink(x *T) {
	k := l.member(x)
	if k.prev != nil {
		l.link(k.prev).next = k.next
	} else {
		l.head = k.next
	}
	if k.next != nil {
		l.link(k.next).prev = k.prev
	} else {
		l.tail = k.prev
	}
	*k = Link[T]{}
	l.n--
}

// Clear unlinks every value.
func (l *List[T]) Clear() {
	for x := l.head; x != nil; {
		k := l.link(x)
		x = k.next
		*k = Link[T]{}
	}
	l.head, l.tail, l.n = nil, nil, 0
}

// All returns an iterator over the values from head to tail. The value being
// visited may be unlinked during iteration.
func (l *List[T]) All() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for x := l.head; x != nil; {
			next := l.link(x).next
			if !yield(x) {
				return
			}
			x = next
		}
	}
}

// Backward returns an iterator over the values from tail to head. The value being
// visited may be unlinked during iteration.
func (l *List[T]) Backward() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for x := l.tail; x != nil; {
			prev := l.link(x).prev
			if !yield(x) {
				return
			}
			x = prev
		}
	}
}

func (l *List[T]) member(x *T) *Link[T] {
	if x == nil {
		panic("ilist: nil node")
	}
	k := l.link(x)
	if k.owner != l {
		panic("ilist: node is not a member of this list")
	}
	return k
}

// insert links x between prev and next, which must be adjacent in l.
func (l *List[T]) insert(x, prev, next *T) {
	if x == nil {
		panic("ilist: nil node")
	}
	k := l.link(x)
	if k.owner != nil {
		panic("ilist: node is already linked")
	}
	k.prev, k.next, k.owner = prev, next, l
	if prev != nil {
		l.link(prev).next = x
	} else {
		l.head = x
	}
	if next != nil {
		l.link(next).prev = x
	} else {
		l.tail = x
	}
	l.n++
}
