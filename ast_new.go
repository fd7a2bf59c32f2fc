package main

// Constructors mirror the reference's ast_new_node_* family: allocate
// from the arena, populate fields, return the pointer. Grouped apart
// from the type declarations the way the reference splits ast.h (the
// node shapes) from the construction helpers used exclusively by the
// parser.

func newTranslationUnit(a *Arena, loc Loc) *TranslationUnit {
	n := ArenaNew[TranslationUnit](a)
	n.loc = loc
	n.Decls = NewList[*FnDef](a)
	return n
}

func newFnDef(a *Arena, loc Loc, id string, params *List[*Param], returnType *Type, body *Block) *FnDef {
	n := ArenaNew[FnDef](a)
	n.loc = loc
	n.ID = id
	n.Params = params
	n.ReturnType = returnType
	n.Body = body
	return n
}

func newParam(a *Arena, loc Loc, id string, typ *Type) *Param {
	n := ArenaNew[Param](a)
	n.loc = loc
	n.ID = id
	n.Type = typ
	return n
}

func newBlock(a *Arena, loc Loc) *Block {
	n := ArenaNew[Block](a)
	n.loc = loc
	n.Nodes = NewList[Node](a)
	return n
}

func newVarDef(a *Arena, loc Loc, id string, typ *Type, init Node) *VarDef {
	n := ArenaNew[VarDef](a)
	n.loc = loc
	n.ID = id
	n.Type = typ
	n.Initializer = init
	return n
}

func newVarAssign(a *Arena, loc Loc, target *Ref, value Node) *VarAssign {
	n := ArenaNew[VarAssign](a)
	n.loc = loc
	n.Target = target
	n.Value = value
	return n
}

func newReturnStmt(a *Arena, loc Loc, expr Node) *ReturnStmt {
	n := ArenaNew[ReturnStmt](a)
	n.loc = loc
	n.Expr = expr
	return n
}

func newIfStmt(a *Arena, loc Loc, cond Node, then *Block, els Node) *IfStmt {
	n := ArenaNew[IfStmt](a)
	n.loc = loc
	n.Cond = cond
	n.Then = then
	n.Else = els
	return n
}

func newWhileStmt(a *Arena, loc Loc, cond Node, body *Block) *WhileStmt {
	n := ArenaNew[WhileStmt](a)
	n.loc = loc
	n.Cond = cond
	n.Body = body
	return n
}

func newFnCall(a *Arena, loc Loc, id string, args *List[Node]) *FnCall {
	n := ArenaNew[FnCall](a)
	n.loc = loc
	n.ID = id
	n.Args = args
	return n
}

func newBinaryOp(a *Arena, loc Loc, op BinaryOpKind, lhs, rhs Node) *BinaryOp {
	n := ArenaNew[BinaryOp](a)
	n.loc = loc
	n.Op = op
	n.LHS = lhs
	n.RHS = rhs
	return n
}

func newUnaryOp(a *Arena, loc Loc, op UnaryOpKind, operand Node) *UnaryOp {
	n := ArenaNew[UnaryOp](a)
	n.loc = loc
	n.Op = op
	n.Operand = operand
	return n
}

func newLiteralU32(a *Arena, loc Loc, value uint32) *Literal {
	n := ArenaNew[Literal](a)
	n.loc = loc
	n.Value = value
	return n
}

func newRef(a *Arena, loc Loc, id string) *Ref {
	n := ArenaNew[Ref](a)
	n.loc = loc
	n.ID = id
	return n
}
