package main

import (
	"fmt"
	"strings"
)

// PrettyPrinter renders an AST (resolved or not; --dump-ast prints it
// before the checker runs) as an indented tree for
// --dump-ast, 2 spaces per depth level, grounded on the reference
// pretty-printer's indentation convention.
type PrettyPrinter struct {
	out strings.Builder
}

func NewPrettyPrinter() *PrettyPrinter {
	return &PrettyPrinter{}
}

func (p *PrettyPrinter) line(depth int, format string, args ...any) {
	p.out.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(&p.out, format, args...)
	p.out.WriteByte('\n')
}

// Print renders unit and returns the full tree text.
func (p *PrettyPrinter) Print(unit *TranslationUnit) string {
	p.line(0, "TranslationUnit")
	for _, fn := range unit.Decls.ToSlice() {
		p.printFnDef(1, fn)
	}
	return p.out.String()
}

func (p *PrettyPrinter) printFnDef(depth int, fn *FnDef) {
	p.line(depth, "FnDef %s -> %s", fn.ID, fn.ReturnType)
	for _, param := range fn.Params.ToSlice() {
		p.line(depth+1, "Param %s: %s", param.ID, param.Type)
	}
	p.printBlock(depth+1, fn.Body)
}

func (p *PrettyPrinter) printBlock(depth int, block *Block) {
	p.line(depth, "Block")
	for _, n := range block.Nodes.ToSlice() {
		p.printNode(depth+1, n)
	}
}

func (p *PrettyPrinter) printNode(depth int, n Node) {
	switch node := n.(type) {
	case *VarDef:
		p.line(depth, "VarDef %s: %s", node.ID, node.Type)
		p.printNode(depth+1, node.Initializer)

	case *VarAssign:
		p.line(depth, "VarAssign")
		p.printNode(depth+1, node.Target)
		p.printNode(depth+1, node.Value)

	case *ReturnStmt:
		p.line(depth, "ReturnStmt")
		p.printNode(depth+1, node.Expr)

	case *IfStmt:
		p.line(depth, "IfStmt")
		p.printNode(depth+1, node.Cond)
		p.printBlock(depth+1, node.Then)
		if node.Else != nil {
			p.printNode(depth+1, node.Else)
		}

	case *WhileStmt:
		p.line(depth, "WhileStmt")
		p.printNode(depth+1, node.Cond)
		p.printBlock(depth+1, node.Body)

	case *Block:
		p.printBlock(depth, node)

	case *FnCall:
		p.line(depth, "FnCall %s", node.ID)
		for _, arg := range node.Args.ToSlice() {
			p.printNode(depth+1, arg)
		}

	case *BinaryOp:
		p.line(depth, "BinaryOp %s", node.Op)
		p.printNode(depth+1, node.LHS)
		p.printNode(depth+1, node.RHS)

	case *UnaryOp:
		p.line(depth, "UnaryOp %s", node.Op)
		p.printNode(depth+1, node.Operand)

	case *Literal:
		p.line(depth, "Literal %d", node.Value)

	case *Ref:
		p.line(depth, "Ref %s", node.ID)

	default:
		fatalInternalf("PrettyPrinter: unhandled node kind %T", n)
	}
}
