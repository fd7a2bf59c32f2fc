package main

import (
	"fmt"
	"strings"
)

// X86_64Codegen walks a resolved AST and emits GNU-assembler AT&T
// syntax for the Linux x86_64 System V ABI. It never returns an error:
// every structural invariant it relies on (symbol lookups succeeding,
// assignment targets being Refs, node shapes matching their context)
// was already guaranteed by the Checker, so a violation here is an
// internal compiler bug reported via fatalInternalf.
type X86_64Codegen struct {
	out          strings.Builder
	labelCounter int
	// offsets mirrors the reference codegen's symbols_stack_offset: a
	// map from symbol identity to its assigned stack slot, built by
	// assignOffsets before a function body is emitted.
	offsets *Map
}

func NewX86_64Codegen(arena *Arena) *X86_64Codegen {
	return &X86_64Codegen{offsets: NewMap(arena)}
}

// symKey derives a Map key from a symbol's identity, since Map is
// string-keyed and symbol identity here is pointer identity.
func symKey(sym *Symbol) string {
	return fmt.Sprintf("%p", sym)
}

func (cg *X86_64Codegen) emit(format string, args ...any) {
	fmt.Fprintf(&cg.out, format, args...)
	cg.out.WriteByte('\n')
}

func (cg *X86_64Codegen) newLabel() string {
	label := fmt.Sprintf(".L%d", cg.labelCounter)
	cg.labelCounter++
	return label
}

// Generate lowers the whole translation unit and returns the emitted
// assembly text.
func (cg *X86_64Codegen) Generate(unit *TranslationUnit) string {
	fns := unit.Decls.ToSlice()
	hasMain := false
	for _, fn := range fns {
		if fn.ID == "main" {
			hasMain = true
		}
	}
	if !hasMain {
		fatalInternalf("codegen: translation unit has no 'main' function")
	}

	cg.emit(".text")
	cg.emit(".globl _start")
	cg.emit("_start:")
	cg.emit("    call main")
	cg.emit("    mov %%eax, %%edi")
	cg.emit("    mov $60, %%eax   # SYS_exit")
	cg.emit("    syscall")

	for _, fn := range fns {
		cg.emitFunction(fn)
	}

	return cg.out.String()
}

// assignOffsets recursively assigns -N(%rbp) stack slots to every
// symbol reachable from scope, bump-forward from base, and returns the
// maximum cumulative size observed along any path to a leaf scope.
// Sibling scopes (the two branches of an if, the bodies of two loops
// in a row) are assigned starting from the same base and so
// share the tail of the frame, matching local_size's max-over-children
// recursion.
func (cg *X86_64Codegen) assignOffsets(scope *Scope, base int) int {
	cum := base
	for _, sym := range scope.OwnSymbols() {
		cum += sym.Type.SizeOf()
		cg.offsets.Put(symKey(sym), -(8 + cum))
	}

	maxSize := cum
	for _, child := range scope.Children.ToSlice() {
		if childMax := cg.assignOffsets(child, cum); childMax > maxSize {
			maxSize = childMax
		}
	}
	return maxSize
}

func (cg *X86_64Codegen) offsetOf(sym *Symbol) int {
	val, ok := cg.offsets.Get(symKey(sym))
	if !ok {
		fatalInternalf("codegen: symbol '%s' has no assigned stack slot", sym.ID)
	}
	return val.(int)
}

func (cg *X86_64Codegen) emitFunction(fn *FnDef) {
	localSize := cg.assignOffsets(fn.Scope, 0)
	frameSize := 8 + localSize

	cg.emit(".globl %s", fn.ID)
	cg.emit("%s:", fn.ID)
	cg.emit("    push %%rbp")
	cg.emit("    mov  %%rsp, %%rbp")
	if frameSize > 0 {
		cg.emit("    sub  $%d, %%rsp", frameSize)
	}

	params := fn.Params.ToSlice()
	if len(params) > len(sysvArgRegs) {
		fatalInternalf("codegen: function '%s' has %d parameters, at most %d are supported", fn.ID, len(params), len(sysvArgRegs))
	}
	for i, param := range params {
		sym := fn.Scope.lookupLocal(param.ID)
		size := sym.Type.SizeOf()
		cg.emit("    mov %s, %d(%%rbp)", sysvArgRegs[i].Sized(size), cg.offsetOf(sym))
	}

	for _, stmt := range fn.Body.Nodes.ToSlice() {
		cg.emitStmt(stmt)
	}
}

func (cg *X86_64Codegen) emitStmt(n Node) {
	switch node := n.(type) {
	case *VarDef:
		cg.emitVarDef(node)
	case *VarAssign:
		cg.emitVarAssign(node)
	case *ReturnStmt:
		cg.emitReturn(node)
	case *IfStmt:
		cg.emitIf(node)
	case *WhileStmt:
		cg.emitWhile(node)
	case *Block:
		for _, s := range node.Nodes.ToSlice() {
			cg.emitStmt(s)
		}
	default:
		// A bare expression used as a statement (typically a call kept
		// for its side effect); evaluate it and discard the result.
		cg.emitExpr(n)
	}
}

func (cg *X86_64Codegen) emitVarDef(node *VarDef) {
	sym := node.Scope.lookupLocal(node.ID)
	cg.emitExpr(node.Initializer)
	size := sym.Type.SizeOf()
	cg.emit("    mov %s, %d(%%rbp)", accumulatorReg().Sized(size), cg.offsetOf(sym))
}

func (cg *X86_64Codegen) emitVarAssign(node *VarAssign) {
	sym := node.Target.Scope.Lookup(node.Target.ID)
	if sym == nil {
		fatalInternalf("codegen: assignment target '%s' has no resolved symbol", node.Target.ID)
	}
	cg.emitExpr(node.Value)
	size := sym.Type.SizeOf()
	cg.emit("    mov %s, %d(%%rbp)", accumulatorReg().Sized(size), cg.offsetOf(sym))
}

func (cg *X86_64Codegen) emitReturn(node *ReturnStmt) {
	cg.emitExpr(node.Expr)
	cg.emit("    mov %%rbp, %%rsp")
	cg.emit("    pop %%rbp")
	cg.emit("    ret")
}

func (cg *X86_64Codegen) emitIf(node *IfStmt) {
	endIf := cg.newLabel()
	endElse := cg.newLabel()

	cg.emitExpr(node.Cond)
	cg.emit("    cmp $1, %%rax")
	cg.emit("    jne %s", endIf)
	cg.emitStmt(node.Then)
	cg.emit("    jmp %s", endElse)
	cg.emit("%s:", endIf)

	if node.Else != nil {
		switch els := node.Else.(type) {
		case *IfStmt:
			cg.emitIf(els)
		case *Block:
			cg.emitStmt(els)
		default:
			fatalInternalf("codegen: if-else branch has unexpected node kind %T", els)
		}
	}
	cg.emit("%s:", endElse)
}

func (cg *X86_64Codegen) emitWhile(node *WhileStmt) {
	begin := cg.newLabel()
	end := cg.newLabel()

	cg.emit("%s:", begin)
	cg.emitExpr(node.Cond)
	cg.emit("    cmp $1, %%rax")
	cg.emit("    jne %s", end)
	cg.emitStmt(node.Body)
	cg.emit("    jmp %s", begin)
	cg.emit("%s:", end)
}

// emitExpr lowers n to leave its value in the accumulator sized to the
// byte width it returns.
func (cg *X86_64Codegen) emitExpr(n Node) int {
	switch node := n.(type) {
	case *Literal:
		cg.emit("    mov $%d, %s", node.Value, accumulatorReg().Sized(4))
		return 4

	case *Ref:
		sym := node.Scope.Lookup(node.ID)
		if sym == nil {
			fatalInternalf("codegen: reference to '%s' has no resolved symbol", node.ID)
		}
		size := sym.Type.SizeOf()
		cg.emit("    mov %d(%%rbp), %s", cg.offsetOf(sym), accumulatorReg().Sized(size))
		return size

	case *UnaryOp:
		return cg.emitUnary(node)

	case *BinaryOp:
		return cg.emitBinary(node)

	case *FnCall:
		return cg.emitCall(node)

	default:
		fatalInternalf("codegen: unsupported expression node %T", n)
		return 0
	}
}

func (cg *X86_64Codegen) emitUnary(node *UnaryOp) int {
	switch node.Op {
	case UnaryAddrOf:
		ref, ok := node.Operand.(*Ref)
		if !ok {
			fatalInternalf("codegen: '&' applied to a non-reference operand")
		}
		sym := ref.Scope.Lookup(ref.ID)
		cg.emit("    lea %d(%%rbp), %%rax", cg.offsetOf(sym))
		return 8

	case UnaryDeref:
		ref, ok := node.Operand.(*Ref)
		if !ok {
			fatalInternalf("codegen: '*' applied to a non-reference operand")
		}
		sym := ref.Scope.Lookup(ref.ID)
		size := sym.Type.Pointee.SizeOf()
		cg.emitExpr(node.Operand)
		cg.emit("    mov (%%rax), %s", accumulatorReg().Sized(size))
		return size

	case UnaryPlus:
		return cg.emitExpr(node.Operand)

	case UnaryMinus:
		size := cg.emitExpr(node.Operand)
		cg.emit("    neg %s", accumulatorReg().Sized(size))
		return size

	case UnaryNot:
		size := cg.emitExpr(node.Operand)
		cg.emit("    not %s", accumulatorReg().Sized(size))
		return size

	case UnaryLNot:
		cg.emitExpr(node.Operand)
		cg.emit("    cmp $0, %%rax")
		cg.emit("    sete %%al")
		cg.emit("    movzb %%al, %%eax")
		return 1

	default:
		fatalInternalf("codegen: unhandled unary operator %d", node.Op)
		return 0
	}
}

func (cg *X86_64Codegen) emitBinary(node *BinaryOp) int {
	if node.Op == BinLogicalAnd || node.Op == BinLogicalOr {
		return cg.emitShortCircuit(node)
	}

	rsize := cg.emitExpr(node.RHS)
	cg.emit("    push %%rax")
	lsize := cg.emitExpr(node.LHS)
	cg.emit("    pop %%rcx")

	size := lsize
	if node.Op != BinShl && node.Op != BinShr {
		if rsize > size {
			size = rsize
		}
	}

	a := accumulatorReg().Sized(size)
	c := scratchReg().Sized(size)

	switch node.Op {
	case BinAdd:
		cg.emit("    add %s, %s", c, a)
	case BinSub:
		cg.emit("    sub %s, %s", c, a)
	case BinMul:
		cg.emit("    mul %s", c)
	case BinDiv:
		cg.emit("    xor %%rdx, %%rdx")
		cg.emit("    div %s", c)
	case BinMod:
		cg.emit("    xor %%rdx, %%rdx")
		cg.emit("    div %s", c)
		cg.emit("    mov %s, %s", x86Reg(regRDX).Sized(size), a)
	case BinShl:
		cg.emit("    shl %%cl, %s", a)
	case BinShr:
		cg.emit("    shr %%cl, %s", a)
	case BinAnd:
		cg.emit("    and %s, %s", c, a)
	case BinOr:
		cg.emit("    or  %s, %s", c, a)
	case BinXor:
		cg.emit("    xor %s, %s", c, a)
	case BinEq:
		cg.emit("    cmp %s, %s", c, a)
		cg.emit("    sete %%al")
		cg.emit("    movzb %%al, %s", accumulatorReg().Sized(size))
		return 1
	case BinNeq:
		cg.emit("    cmp %s, %s", c, a)
		cg.emit("    setne %%al")
		cg.emit("    movzb %%al, %s", accumulatorReg().Sized(size))
		return 1
	case BinLt:
		cg.emit("    cmp %s, %s", c, a)
		cg.emit("    setl %%al")
		cg.emit("    movzb %%al, %s", accumulatorReg().Sized(size))
		return 1
	case BinLeq:
		cg.emit("    cmp %s, %s", c, a)
		cg.emit("    setle %%al")
		cg.emit("    movzb %%al, %s", accumulatorReg().Sized(size))
		return 1
	case BinGt:
		cg.emit("    cmp %s, %s", c, a)
		cg.emit("    setg %%al")
		cg.emit("    movzb %%al, %s", accumulatorReg().Sized(size))
		return 1
	case BinGeq:
		cg.emit("    cmp %s, %s", c, a)
		cg.emit("    setge %%al")
		cg.emit("    movzb %%al, %s", accumulatorReg().Sized(size))
		return 1
	default:
		fatalInternalf("codegen: unhandled binary operator %s", node.Op)
	}

	return size
}

// emitShortCircuit lowers && and || via compare-and-branch to a fresh
// end label, so the RHS is never evaluated once the LHS has decided
// the result.
func (cg *X86_64Codegen) emitShortCircuit(node *BinaryOp) int {
	decided := cg.newLabel()
	end := cg.newLabel()

	cg.emitExpr(node.LHS)
	cg.emit("    cmp $1, %%rax")
	if node.Op == BinLogicalAnd {
		cg.emit("    jne %s", decided)
	} else {
		cg.emit("    je %s", decided)
	}

	cg.emitExpr(node.RHS)
	cg.emit("    cmp $1, %%rax")
	if node.Op == BinLogicalAnd {
		cg.emit("    jne %s", decided)
	} else {
		cg.emit("    je %s", decided)
	}

	if node.Op == BinLogicalAnd {
		cg.emit("    mov $1, %%al")
	} else {
		cg.emit("    mov $0, %%al")
	}
	cg.emit("    jmp %s", end)

	cg.emit("%s:", decided)
	if node.Op == BinLogicalAnd {
		cg.emit("    mov $0, %%al")
	} else {
		cg.emit("    mov $1, %%al")
	}
	cg.emit("%s:", end)

	return 1
}

func (cg *X86_64Codegen) emitCall(node *FnCall) int {
	sym := node.Scope.Lookup(node.ID)
	if sym == nil || sym.Fn == nil {
		fatalInternalf("codegen: call to '%s' has no resolved function symbol", node.ID)
	}

	args := node.Args.ToSlice()
	if len(args) > len(sysvArgRegs) {
		fatalInternalf("codegen: call to '%s' has %d arguments, at most %d are supported", node.ID, len(args), len(sysvArgRegs))
	}

	// Evaluate every argument first and push its 8-byte accumulator,
	// then pop into the argument registers right before the call.
	// Assigning an argument register as soon as it is computed would
	// let evaluating a later argument (which also uses %rax/%rcx as
	// scratch) clobber an earlier one, most concretely the fourth
	// argument register under SPEC_FULL's SYSV choice of %rcx, which
	// is also this backend's scratch register.
	for _, arg := range args {
		cg.emitExpr(arg)
		cg.emit("    push %%rax")
	}
	for i := len(args) - 1; i >= 0; i-- {
		paramType := sym.Fn.Params.Get(i).Value.Type
		cg.emit("    pop %s", regRAX.Sized(8))
		cg.emit("    mov %s, %s", accumulatorReg().Sized(paramType.SizeOf()), sysvArgRegs[i].Sized(paramType.SizeOf()))
	}

	cg.emit("    call %s", node.ID)
	return sym.Fn.ReturnType.SizeOf()
}
