// SPDX-License-Identifier: Apache-2.0

package region

// RetirementLink is embedded in a type to make it recyclable through a RetirementList.
//
//	type Widget struct {
//		region.RetirementLink[Widget]
//		Name string
//	}
type RetirementLink[T any] struct {
	nextRetired *T
}

func (l *RetirementLink[T]) retirementLink() *RetirementLink[T] {
	return l
}

// retirable is satisfied by *T whenever T embeds RetirementLink[T].
type retirable[T any] interface {
	*T
	retirementLink() *RetirementLink[T]
}

// RetirementList is a free list of retired values threaded through their embedded
// RetirementLink. The zero value is an empty list.
type RetirementList[T any] struct {
	head *T
	n    int
}

// Len returns the number of retired values waiting for reuse.
func (l *RetirementList[T]) Len() int {
	return l.n
}

// Empty reports whether the list holds no retired values.
func (l *RetirementList[T]) Empty() bool {
	return l.head == nil
}

// Retire pushes v onto the list. The caller must not use v again until
// AllocateRetired hands it back out.
func Retire[T any, P retirable[T]](l *RetirementList[T], v P) {
	v.retirementLink().nextRetired = l.head
	l.head = (*T)(v)
	l.n++
}

// AllocateRetired pops a retired value if one is available and allocates a fresh one
// from a otherwise. The returned value is zeroed in both cases.
func AllocateRetired[T any, P retirable[T]](a Arena, l *RetirementList[T]) (P, error) {
	if v := l.head; v != nil {
		l.head = P(v).retirementLink().nextRetired
		l.n--
		var zero T
		*v = zero
		return P(v), nil
	}
	v, err := Allocate[T](a)
	if err != nil {
		return nil, err
	}
	return P(v), nil
}
