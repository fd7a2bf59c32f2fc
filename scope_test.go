package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScopeLookupWalksAncestors(t *testing.T) {
	a := NewArena(1 << 16)
	root := NewScope(a)
	root.Insert(newSymbol(a, "x", newPrimitiveType(a, PrimU32)))

	child := root.Push()
	require.Nil(t, child.lookupLocal("x"))
	sym := child.Lookup("x")
	require.NotNil(t, sym)
	require.Equal(t, "x", sym.ID)
}

func TestScopeInsertShadowsOuter(t *testing.T) {
	a := NewArena(1 << 16)
	root := NewScope(a)
	outer := newSymbol(a, "x", newPrimitiveType(a, PrimU32))
	root.Insert(outer)

	child := root.Push()
	inner := newSymbol(a, "x", newPrimitiveType(a, PrimU8))
	child.Insert(inner)

	require.Same(t, inner, child.Lookup("x"))
	require.Same(t, outer, root.Lookup("x"))
}

func TestScopeOwnSymbolsPreservesInsertionOrder(t *testing.T) {
	a := NewArena(1 << 16)
	root := NewScope(a)
	root.Insert(newSymbol(a, "a", newPrimitiveType(a, PrimU32)))
	root.Insert(newSymbol(a, "b", newPrimitiveType(a, PrimU32)))
	root.Insert(newSymbol(a, "c", newPrimitiveType(a, PrimU32)))

	var ids []string
	for _, s := range root.OwnSymbols() {
		ids = append(ids, s.ID)
	}
	require.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestScopePopReturnsParent(t *testing.T) {
	a := NewArena(1 << 16)
	root := NewScope(a)
	child := root.Push()
	require.Same(t, root, child.Pop())
}

func TestScopePopOnRootIsFatal(t *testing.T) {
	a := NewArena(1 << 16)
	root := NewScope(a)
	withFatalCapture(t, func() {
		root.Pop()
	})
}

func TestScopeLookupMissingReturnsNil(t *testing.T) {
	a := NewArena(1 << 16)
	root := NewScope(a)
	require.Nil(t, root.Lookup("nonexistent"))
}
