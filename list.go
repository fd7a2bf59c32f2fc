package main

// ListItem is a singly-linked node holding one element of a List.
type ListItem[T any] struct {
	Value T
	next  *ListItem[T]
}

// Next returns the following item, or nil at the tail.
func (i *ListItem[T]) Next() *ListItem[T] { return i.next }

// List is an arena-allocated singly-linked list with head/tail/size,
// matching the reference's list_t: O(1) append via a retained tail
// pointer, forward-only traversal.
type List[T any] struct {
	arena *Arena
	head  *ListItem[T]
	tail  *ListItem[T]
	size  int
}

// NewList creates an empty list backed by arena.
func NewList[T any](arena *Arena) *List[T] {
	return &List[T]{arena: arena}
}

// Append adds value at the tail in O(1).
func (l *List[T]) Append(value T) {
	item := ArenaNew[ListItem[T]](l.arena)
	item.Value = value
	l.size++
	if l.size == 1 {
		l.head = item
		l.tail = item
		return
	}
	l.tail.next = item
	l.tail = item
}

// Get returns the item at index, exiting via fatalInternalf if out
// of range, matching the reference's asserted precondition.
func (l *List[T]) Get(index int) *ListItem[T] {
	if index < 0 || index >= l.size {
		fatalInternalf("List.Get: index %d out of range (size %d)", index, l.size)
	}
	item := l.head
	for index > 0 {
		item = item.next
		index--
	}
	return item
}

// Head returns the first item, or nil if the list is empty.
func (l *List[T]) Head() *ListItem[T] { return l.head }

// Size returns the number of elements.
func (l *List[T]) Size() int { return l.size }

// ToSlice copies the list into a plain Go slice for callers that want
// ordinary range semantics (codegen, the pretty-printer).
func (l *List[T]) ToSlice() []T {
	out := make([]T, 0, l.size)
	for item := l.head; item != nil; item = item.next {
		out = append(out, item.Value)
	}
	return out
}
