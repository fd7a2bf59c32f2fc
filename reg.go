package main

import "fmt"

// x86Reg names one general-purpose register family (rax, rcx, ...).
// Sized(n) returns the AT&T-syntax name of the sub-register holding n
// bytes of that family: al/ax/eax/rax and the r8b/r8w/r8d/r8 analogues
// for the extended registers.
type x86Reg int

const (
	regRAX x86Reg = iota
	regRCX
	regRDX
	regRBX
	regRSI
	regRDI
	regRSP
	regRBP
	regR8
	regR9
	regR10
	regR11
	regR12
	regR13
	regR14
	regR15
)

var x86RegNames = map[x86Reg][4]string{
	// [size1, size2, size4, size8]
	regRAX: {"al", "ax", "eax", "rax"},
	regRCX: {"cl", "cx", "ecx", "rcx"},
	regRDX: {"dl", "dx", "edx", "rdx"},
	regRBX: {"bl", "bx", "ebx", "rbx"},
	regRSI: {"sil", "si", "esi", "rsi"},
	regRDI: {"dil", "di", "edi", "rdi"},
	regRSP: {"spl", "sp", "esp", "rsp"},
	regRBP: {"bpl", "bp", "ebp", "rbp"},
	regR8:  {"r8b", "r8w", "r8d", "r8"},
	regR9:  {"r9b", "r9w", "r9d", "r9"},
	regR10: {"r10b", "r10w", "r10d", "r10"},
	regR11: {"r11b", "r11w", "r11d", "r11"},
	regR12: {"r12b", "r12w", "r12d", "r12"},
	regR13: {"r13b", "r13w", "r13d", "r13"},
	regR14: {"r14b", "r14w", "r14d", "r14"},
	regR15: {"r15b", "r15w", "r15d", "r15"},
}

// Sized returns the "%name" AT&T operand for size bytes of this
// register, used throughout the expression lowering to pick the
// correctly-sized accumulator and scratch register.
func (r x86Reg) Sized(size int) string {
	names, ok := x86RegNames[r]
	if !ok {
		fatalInternalf("x86Reg.Sized: unknown register %d", r)
	}
	var idx int
	switch size {
	case 1:
		idx = 0
	case 2:
		idx = 1
	case 4:
		idx = 2
	case 8:
		idx = 3
	default:
		fatalInternalf("x86Reg.Sized: unsupported size %d", size)
	}
	return "%" + names[idx]
}

// sysvArgRegs lists the SYSV integer argument registers in order for
// the first 6 arguments. Per SPEC_FULL's resolution of the reference's
// open question, the fourth slot is %rcx (true SYSV), not the
// reference's %r10.
var sysvArgRegs = []x86Reg{regRDI, regRSI, regRDX, regRCX, regR8, regR9}

func accumulatorReg() x86Reg { return regRAX }
func scratchReg() x86Reg     { return regRCX }

// aarch64IntReg names an AArch64 general-purpose register, x0..x5,
// used for the trivial argument-passing subset this backend covers.
func aarch64IntReg(n int) string {
	if n < 0 || n > 5 {
		fatalInternalf("aarch64IntReg: argument index %d out of the supported x0..x5 range", n)
	}
	return fmt.Sprintf("x%d", n)
}
