// Package sets is a minimal implementation of a generic set data structure, used to
// compare the paths of two directory trees.
package sets

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
)

// Set is a minimal set that takes only ordered types: any type that supports the
// operators < <= >= >.
type Set[T cmp.Ordered] struct {
	items map[T]struct{}
}

// New returns an empty set with capacity size. The capacity will grow and shrink as a
// stdlib map.
func New[T cmp.Ordered](size int) *Set[T] {
	return &Set[T]{items: make(map[T]struct{}, size)}
}

// From returns a set from elements.
func From[T cmp.Ordered](elements ...T) *Set[T] {
	s := New[T](len(elements))
	for _, e := range elements {
		s.Add(e)
	}
	return s
}

// Add inserts item in s. Adding an item already present does nothing.
func (s *Set[T]) Add(item T) {
	s.items[item] = struct{}{}
}

// String returns a string representation of s, ordered.
func (s *Set[T]) String() string {
	return fmt.Sprint(s.OrderedList())
}

func (s *Set[T]) Size() int {
	return len(s.items)
}

// OrderedList returns a slice of the elements of s, ordered. An empty set returns an
// empty, non-nil slice.
func (s *Set[T]) OrderedList() []T {
	return append([]T{}, slices.Sorted(maps.Keys(s.items))...)
}

// Contains returns true if s contains item.
func (s *Set[T]) Contains(item T) bool {
	_, found := s.items[item]
	return found
}

// Difference returns a set containing the elements of s that are not in x.
func (s *Set[T]) Difference(x *Set[T]) *Set[T] {
	result := New[T](max(0, s.Size()-x.Size()))
	for item := range s.items {
		if !x.Contains(item) {
			result.Add(item)
		}
	}
	return result
}

// Intersection returns a set containing the elements that are both in s and x.
func (s *Set[T]) Intersection(x *Set[T]) *Set[T] {
	smaller, bigger := s, x
	if smaller.Size() > bigger.Size() {
		smaller, bigger = bigger, smaller
	}
	result := New[T](smaller.Size())
	for item := range smaller.items {
		if bigger.Contains(item) {
			result.Add(item)
		}
	}
	return result
}
