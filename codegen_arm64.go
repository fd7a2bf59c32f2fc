package main

import (
	"fmt"
	"strings"
)

// Aarch64Codegen covers the trivial subset of programs whose entire
// behavior is a single integer handed from main's return statement to
// the process exit code: `fn main(): u32 { return N }`, N a literal.
// Wider aarch64 support (locals, calls, branches) needs a real frame
// layout and register allocation pass, which the reference never
// specifies for this architecture either.
type Aarch64Codegen struct {
	out strings.Builder
}

func NewAarch64Codegen() *Aarch64Codegen {
	return &Aarch64Codegen{}
}

func (cg *Aarch64Codegen) emit(format string, args ...any) {
	fmt.Fprintf(&cg.out, format, args...)
	cg.out.WriteByte('\n')
}

// Generate lowers unit's main function to a raw exit(N) syscall.
// unit must already have passed the Checker, so main exists, returns
// u32, and (for this backend) its body is exactly one ReturnStmt over
// a Literal.
func (cg *Aarch64Codegen) Generate(unit *TranslationUnit) string {
	var main *FnDef
	for _, fn := range unit.Decls.ToSlice() {
		if fn.ID == "main" {
			main = fn
		}
	}
	if main == nil {
		fatalInternalf("codegen(arm64): translation unit has no 'main' function")
	}

	stmts := main.Body.Nodes.ToSlice()
	if len(stmts) != 1 {
		fatalInternalf("codegen(arm64): only 'fn main(): u32 { return N }' is supported on this backend")
	}
	ret, ok := stmts[0].(*ReturnStmt)
	if !ok {
		fatalInternalf("codegen(arm64): main's single statement must be a return")
	}
	lit, ok := ret.Expr.(*Literal)
	if !ok {
		fatalInternalf("codegen(arm64): main must return a literal on this backend")
	}

	cg.emit(".text")
	cg.emit(".globl _start")
	cg.emit("_start:")
	cg.emit("    mov %s, #%d", aarch64IntReg(0), lit.Value)
	cg.emit("    mov x8, #93   // SYS_exit")
	cg.emit("    svc #0")

	return cg.out.String()
}
