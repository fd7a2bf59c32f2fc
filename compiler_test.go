package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// These mirror the end-to-end scenarios a conforming driver must
// handle correctly; since the toolchain is never invoked in this test
// binary, each case checks the generated assembly's structure and
// operand choices instead of an actual process exit code.
func TestCompilerEndToEndScenarios(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   []string
	}{
		{
			name:   "minimal exit code",
			source: "fn main(): u32 {\n  return 69\n}\n",
			want:   []string{"mov $69, %eax"},
		},
		{
			name:   "arithmetic precedence",
			source: "fn main(): u32 {\n  return 1 + 2 * 0\n}\n",
			want:   []string{"mov $1, %eax", "mov $2, %eax", "mov $0, %eax", "mul "},
		},
		{
			name: "if else selects branch",
			source: `fn main(): u32 {
  if 1 == 0 {
    return 3
  } else {
    return 4
  }
}
`,
			want: []string{"sete %al", "cmp $1, %rax", "jne .L"},
		},
		{
			name: "local variable roundtrip",
			source: `fn main(): u32 {
  var x: u32 = 42
  return x
}
`,
			want: []string{"mov $42, %eax", "(%rbp)"},
		},
		{
			name: "recursion",
			source: `fn fact(n: u32): u32 {
  if n == 0 {
    return 1
  }
  return n * fact(n - 1)
}
fn main(): u32 {
  return fact(5)
}
`,
			want: []string{"call fact", "call main"},
		},
		{
			name: "short circuit side effect",
			source: `fn sideeffect(): u32 {
  return 1
}
fn main(): u32 {
  return 0 && sideeffect()
}
`,
			want: []string{"jne .L"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			asm := genX86(t, c.source)
			for _, w := range c.want {
				require.Contains(t, asm, w)
			}
		})
	}
}

func TestCompilerGeneratedAssemblyIsWellFormedText(t *testing.T) {
	asm := genX86(t, "fn main(): u32 {\n  return 0\n}\n")
	require.True(t, strings.HasSuffix(asm, "\n"))
	require.True(t, strings.HasPrefix(asm, ".text\n"))
}
