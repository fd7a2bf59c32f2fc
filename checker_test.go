package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func checkSource(t *testing.T, source string) *TranslationUnit {
	t.Helper()
	a := NewArena(1 << 20)
	unit := NewParser(a, "test.olang", source).ParseTranslationUnit()
	NewChecker(a, "test.olang", source).Check(unit)
	return unit
}

func TestCheckerResolvesPrimitiveTypeNames(t *testing.T) {
	unit := checkSource(t, "fn main(): u32 {\n  return 0\n}\n")
	fn := unit.Decls.ToSlice()[0]
	require.Equal(t, TypePrimitive, fn.ReturnType.Kind)
	require.Equal(t, PrimU32, fn.ReturnType.Primitive)
}

func TestCheckerAllowsForwardReferenceAndRecursion(t *testing.T) {
	checkSource(t, `fn main(): u32 {
  return fact(5)
}
fn fact(n: u32): u32 {
  if n == 0 {
    return 1
  }
  return n * fact(n - 1)
}
`)
}

func TestCheckerRejectsRedefinitionOfFunction(t *testing.T) {
	withFatalCapture(t, func() {
		checkSource(t, `fn f(): u32 {
  return 0
}
fn f(): u32 {
  return 1
}
fn main(): u32 {
  return f()
}
`)
	})
}

func TestCheckerRejectsRedefinitionOfLocal(t *testing.T) {
	withFatalCapture(t, func() {
		checkSource(t, `fn main(): u32 {
  var x: u32 = 1
  var x: u32 = 2
  return x
}
`)
	})
}

func TestCheckerRejectsUnresolvedTypeName(t *testing.T) {
	withFatalCapture(t, func() {
		checkSource(t, "fn main(): notatype {\n  return 0\n}\n")
	})
}

func TestCheckerRejectsUseOfUndefinedIdentifier(t *testing.T) {
	withFatalCapture(t, func() {
		checkSource(t, "fn main(): u32 {\n  return y\n}\n")
	})
}

func TestCheckerRejectsCallArityMismatch(t *testing.T) {
	withFatalCapture(t, func() {
		checkSource(t, `fn f(a: u32): u32 {
  return a
}
fn main(): u32 {
  return f(1, 2)
}
`)
	})
}

func TestCheckerRejectsCallToUndefinedFunction(t *testing.T) {
	withFatalCapture(t, func() {
		checkSource(t, "fn main(): u32 {\n  return g()\n}\n")
	})
}

func TestCheckerRejectsAddrOfNonReference(t *testing.T) {
	withFatalCapture(t, func() {
		checkSource(t, "fn main(): u32 {\n  return &1\n}\n")
	})
}

func TestCheckerAcceptsAddrOfVariable(t *testing.T) {
	checkSource(t, `fn main(): u32 {
  var x: u32 = 1
  var p: u32* = &x
  return x
}
`)
}

func TestCheckerRequiresMainFunction(t *testing.T) {
	withFatalCapture(t, func() {
		checkSource(t, "fn f(): u32 {\n  return 0\n}\n")
	})
}

func TestCheckerRequiresMainReturnsU32(t *testing.T) {
	withFatalCapture(t, func() {
		checkSource(t, "fn main(): u8 {\n  return 0\n}\n")
	})
}

func TestCheckerAttachesScopeToEveryRefAndCall(t *testing.T) {
	unit := checkSource(t, `fn f(): u32 {
  return 0
}
fn main(): u32 {
  var x: u32 = 1
  return f() + x
}
`)
	mainFn := unit.Decls.ToSlice()[1]
	retStmt := mainFn.Body.Nodes.ToSlice()[1].(*ReturnStmt)
	bin := retStmt.Expr.(*BinaryOp)
	call := bin.LHS.(*FnCall)
	ref := bin.RHS.(*Ref)
	require.NotNil(t, call.Scope)
	require.NotNil(t, ref.Scope)
}
