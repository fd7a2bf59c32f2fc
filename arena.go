package main

import "unsafe"

// arenaAlignment is the bump-pointer alignment boundary. 8 covers the
// alignment of every value the compiler allocates (pointers, uint64,
// string headers).
const arenaAlignment = 8

// Arena is a bump allocator for every object the compiler pipeline
// creates: AST nodes, types, symbols, scopes, and the backing storage
// of List and Map. Nothing allocated from an Arena is ever freed
// individually; the whole arena is released or freed at once.
//
// Go's garbage collector already owns real memory safety, so Arena does
// not carve values out of a raw byte buffer the way the historical
// implementation does (that would require handing the GC unscanned
// pointers). Instead it tracks capacity and the bump offset exactly as
// the reference does, and hands out ordinary garbage-collected values;
// capacity accounting is what makes overflow and alignment observable
// and testable the way the reference allocator's are.
type Arena struct {
	capacity int
	offset   int
}

// NewArena creates an arena that can account for up to capacity bytes
// before alloc reports overflow.
func NewArena(capacity int) *Arena {
	return &Arena{capacity: capacity}
}

// reserve bumps the offset by size, rounded up to arenaAlignment, and
// reports whether the reservation fit inside capacity.
func (a *Arena) reserve(size int) (offset int, ok bool) {
	if a.offset+size > a.capacity {
		return 0, false
	}
	offset = a.offset
	a.offset = (a.offset + size + arenaAlignment - 1) &^ (arenaAlignment - 1)
	return offset, true
}

// Offset reports the current bump pointer, for tests that check
// alignment behavior directly.
func (a *Arena) Offset() int {
	return a.offset
}

// Release resets the bump pointer to zero without shrinking capacity,
// so the next round of allocations reuses the same accounted space.
func (a *Arena) Release() {
	a.offset = 0
}

// Free drops the arena's capacity entirely; any further allocation
// overflows.
func (a *Arena) Free() {
	a.capacity = 0
	a.offset = 0
}

// ArenaNew allocates a zero-valued T from the arena. It is the
// generic equivalent of arena_alloc(arena, sizeof(T)) followed by an
// in-place initialization of the returned node.
func ArenaNew[T any](a *Arena) *T {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if _, ok := a.reserve(size); !ok {
		fatalResourcef("arena exhausted: cannot allocate %d bytes (capacity %d)", size, a.capacity)
	}
	return new(T)
}

// ArenaNewN allocates n zero-valued T as a contiguous logical
// reservation (used for the map bucket array); returns a freshly made
// slice of length n.
func ArenaNewN[T any](a *Arena, n int) []T {
	var zero T
	size := int(unsafe.Sizeof(zero)) * n
	if _, ok := a.reserve(size); !ok {
		fatalResourcef("arena exhausted: cannot allocate %d bytes (capacity %d)", size, a.capacity)
	}
	return make([]T, n)
}

// ArenaString accounts for len(s)+1 bytes the way the reference's
// arena-backed _strdup does, and returns s itself: Go strings are
// already immutable read-only views into their backing bytes, so no
// copy is needed.
func ArenaString(a *Arena, s string) string {
	if _, ok := a.reserve(len(s) + 1); !ok {
		fatalResourcef("arena exhausted: cannot allocate %d bytes (capacity %d)", len(s)+1, a.capacity)
	}
	return s
}
