package main

import "fmt"

// Checker is the semantic resolver: a single post-parse tree walk
// that builds the scope tree, inserts symbols for function, parameter,
// and local-variable definitions, resolves every type node in place,
// and attaches the enclosing scope to every Ref, FnCall, and VarDef.
//
// The reference checker stops at "TODO: traverse the ast tree to
// verify semantics" and "FIXME: insert function symbol to scope" —
// function symbols are never inserted there, so direct recursion and
// forward references do not work. This Checker goes past both: it
// inserts every function symbol into the root scope before walking any
// body (enabling recursion and forward references), and it performs
// the semantic checks the reference only sketches: redefinition,
// unresolved type names, unresolved references, argument-count
// agreement at call sites, and the operand shape of '&' and '*'.
type Checker struct {
	arena  *Arena
	path   string
	source string
}

func NewChecker(arena *Arena, path, source string) *Checker {
	return &Checker{arena: arena, path: path, source: source}
}

func (c *Checker) lineAt(loc Loc) string {
	end := loc.Bol
	for end < len(c.source) && c.source[end] != '\n' {
		end++
	}
	return c.source[loc.Bol:end]
}

func (c *Checker) fail(loc Loc, format string, args ...any) {
	err := semanticErrorAt(c.path, loc, c.lineAt(loc), format, args...)
	fmt.Fprintln(stderrWriter, err.Format())
	osExit(1)
}

// resolveTypeName turns a raw identifier (with a trailing count of '*'
// already split off by the parser) into a canonical Type, or reports a
// semantic error for an unknown primitive name.
func (c *Checker) resolveTypeName(loc Loc, unknown *Type) *Type {
	if unknown.Kind == TypePointer {
		unknown.Pointee = c.resolveTypeName(loc, unknown.Pointee)
		return unknown
	}
	if unknown.Kind != TypeUnknown {
		return unknown
	}
	id, ok := primitiveByName[unknown.UnknownID]
	if !ok {
		c.fail(loc, "unknown type '%s'", unknown.UnknownID)
	}
	return newPrimitiveType(c.arena, id)
}

// Check runs the resolver over unit, returning the root scope.
func (c *Checker) Check(unit *TranslationUnit) *Scope {
	root := NewScope(c.arena)

	fnDefs := unit.Decls.ToSlice()
	for _, fn := range fnDefs {
		c.registerFunction(root, fn)
	}

	for _, fn := range fnDefs {
		c.checkFnDef(root, fn)
	}

	if root.Lookup("main") == nil {
		c.fail(Loc{}, "program has no 'main' function")
	}
	mainFn := root.Lookup("main").Fn
	if mainFn.ReturnType.Kind != TypePrimitive || mainFn.ReturnType.Primitive != PrimU32 {
		c.fail(mainFn.Location(), "'main' must return u32, got %s", mainFn.ReturnType)
	}

	return root
}

func (c *Checker) registerFunction(root *Scope, fn *FnDef) {
	if root.Lookup(fn.ID) != nil {
		c.fail(fn.Location(), "redefinition of function '%s'", fn.ID)
	}
	fn.ReturnType = c.resolveTypeName(fn.Location(), fn.ReturnType)
	for _, p := range fn.Params.ToSlice() {
		p.Type = c.resolveTypeName(p.Location(), p.Type)
	}
	sym := newSymbol(c.arena, fn.ID, fn.ReturnType)
	sym.Fn = fn
	root.Insert(sym)
}

func (c *Checker) checkFnDef(root *Scope, fn *FnDef) {
	fnScope := root.Push()
	fn.Scope = fnScope

	for _, p := range fn.Params.ToSlice() {
		if fnScope.Lookup(p.ID) != nil {
			c.fail(p.Location(), "redefinition of parameter '%s'", p.ID)
		}
		fnScope.Insert(newSymbol(c.arena, p.ID, p.Type))
	}

	c.checkBlock(fnScope, fn.Body)
}

func (c *Checker) checkBlock(parent *Scope, block *Block) {
	scope := parent.Push()
	block.Scope = scope
	for _, n := range block.Nodes.ToSlice() {
		c.checkNode(scope, n)
	}
}

func (c *Checker) checkNode(scope *Scope, n Node) {
	switch node := n.(type) {
	case *VarDef:
		node.Type = c.resolveTypeName(node.Location(), node.Type)
		c.checkNode(scope, node.Initializer)
		if scope.lookupLocal(node.ID) != nil {
			c.fail(node.Location(), "redefinition of '%s'", node.ID)
		}
		scope.Insert(newSymbol(c.arena, node.ID, node.Type))
		node.Scope = scope

	case *VarAssign:
		c.checkNode(scope, node.Target)
		c.checkNode(scope, node.Value)

	case *ReturnStmt:
		c.checkNode(scope, node.Expr)

	case *IfStmt:
		c.checkNode(scope, node.Cond)
		c.checkBlock(scope, node.Then)
		if node.Else != nil {
			c.checkNode(scope, node.Else)
		}

	case *WhileStmt:
		c.checkNode(scope, node.Cond)
		c.checkBlock(scope, node.Body)

	case *Block:
		c.checkBlock(scope, node)

	case *FnCall:
		node.Scope = scope
		sym := scope.Lookup(node.ID)
		if sym == nil || sym.Fn == nil {
			c.fail(node.Location(), "call to undefined function '%s'", node.ID)
		}
		args := node.Args.ToSlice()
		if len(args) > 6 {
			c.fail(node.Location(), "call to '%s' has %d arguments, at most 6 are supported", node.ID, len(args))
		}
		if len(args) != sym.Fn.Params.Size() {
			c.fail(node.Location(), "call to '%s' expects %d arguments, got %d", node.ID, sym.Fn.Params.Size(), len(args))
		}
		for _, a := range args {
			c.checkNode(scope, a)
		}

	case *BinaryOp:
		c.checkNode(scope, node.LHS)
		c.checkNode(scope, node.RHS)

	case *UnaryOp:
		if node.Op == UnaryAddrOf {
			if _, ok := node.Operand.(*Ref); !ok {
				c.fail(node.Location(), "'&' requires a variable reference")
			}
		}
		if node.Op == UnaryDeref {
			if _, ok := node.Operand.(*Ref); !ok {
				c.fail(node.Location(), "'*' requires a variable reference")
			}
		}
		c.checkNode(scope, node.Operand)
		if node.Op == UnaryDeref {
			if sym := scope.Lookup(node.Operand.(*Ref).ID); sym.Type.Kind != TypePointer {
				c.fail(node.Location(), "'*' requires a pointer operand, got %s", sym.Type)
			}
		}

	case *Ref:
		node.Scope = scope
		if scope.Lookup(node.ID) == nil {
			c.fail(node.Location(), "use of undefined identifier '%s'", node.ID)
		}

	case *Literal:
		// nothing to resolve

	default:
		fatalInternalf("checkNode: unhandled node kind %T", n)
	}
}
