package main

import "github.com/dolthub/swiss"

// Symbol is a name/type pair inserted into a Scope by a definition.
// Symbol identity (not value equality) is what Ref/VarAssign/FnCall
// compare against after resolution, exactly like the reference's
// pointer-identity symbols.
type Symbol struct {
	ID   string
	Type *Type

	// Fn is non-nil for a symbol introduced by a function definition;
	// it lets the checker and codegen recover the callee's parameter
	// count and return type from a name, since olang has no function
	// type in its Type sum and functions are never first-class values.
	Fn *FnDef
}

func newSymbol(a *Arena, id string, typ *Type) *Symbol {
	s := ArenaNew[Symbol](a)
	s.ID = id
	s.Type = typ
	return s
}

// Scope is a node in the lexical scope tree: a parent pointer, a
// symbol table, and a list of child scopes. The symbol table is a
// swiss-table map rather than the arena-backed FNV Map used for
// other compiler-internal tables (see Map): scopes are rebuilt fresh
// every compilation and churn heavily during resolution, which is
// exactly the access pattern a swiss table is tuned for, whereas Map
// exists specifically to exercise and be tested against the fixed
// FNV-1a/chaining contract.
type Scope struct {
	arena    *Arena
	Parent   *Scope
	symbols  *swiss.Map[string, *Symbol]
	order    []*Symbol
	Children *List[*Scope]
}

// NewScope creates a root scope (no parent) backed by arena.
func NewScope(arena *Arena) *Scope {
	return &Scope{
		arena:    arena,
		symbols:  swiss.NewMap[string, *Symbol](8),
		Children: NewList[*Scope](arena),
	}
}

// Push creates a child scope of s and records it in s.Children.
func (s *Scope) Push() *Scope {
	child := NewScope(s.arena)
	child.Parent = s
	s.Children.Append(child)
	return child
}

// Pop returns s's parent; s must not be a root scope.
func (s *Scope) Pop() *Scope {
	if s.Parent == nil {
		fatalInternalf("Scope.Pop: called on a root scope")
	}
	return s.Parent
}

// Insert adds symbol to s's own symbol table, shadowing any symbol of
// the same name visible from an enclosing scope.
func (s *Scope) Insert(symbol *Symbol) {
	s.symbols.Put(symbol.ID, symbol)
	s.order = append(s.order, symbol)
}

// OwnSymbols returns the symbols inserted directly into s, in
// insertion order. Codegen's frame-layout pass uses this (rather than
// iterating the swiss-table symbol index, whose order is unspecified)
// so that stack slot assignment is deterministic across runs.
func (s *Scope) OwnSymbols() []*Symbol {
	return s.order
}

// Lookup walks s and its ancestors, returning the nearest symbol named
// id, or nil if none is visible.
func (s *Scope) Lookup(id string) *Symbol {
	for scope := s; scope != nil; scope = scope.Parent {
		if sym, ok := scope.symbols.Get(id); ok {
			return sym
		}
	}
	return nil
}

// lookupLocal returns the symbol named id defined directly in s,
// ignoring ancestors; used to detect redefinition within one scope.
func (s *Scope) lookupLocal(id string) *Symbol {
	sym, _ := s.symbols.Get(id)
	return sym
}
