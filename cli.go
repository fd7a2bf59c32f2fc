package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// Options collects the driver's resolved configuration for one
// compilation, after flag parsing and environment-default resolution.
type Options struct {
	InputPath  string
	OutputPath string
	Arch       string
	Sysroot    string
	SaveTemps  bool
	DumpTokens bool
	DumpAST    bool
}

// Run executes one whole-program compilation per opts: read, lex,
// parse, check, generate assembly, then (unless a dump mode short
// circuits it) hand off to the system assembler and linker. It returns
// a process exit code; it never itself calls os.Exit, so tests can
// drive it directly.
func Run(opts Options) int {
	source, err := os.ReadFile(opts.InputPath)
	if err != nil {
		fmt.Fprintf(stderrWriter, "%s: %s: %v\n", opts.InputPath, CategoryResource, err)
		return 1
	}

	if opts.DumpTokens {
		dumpTokens(opts.InputPath, string(source))
		return 0
	}

	arena := NewArena(64 << 20)
	defer arena.Free()

	parser := NewParser(arena, opts.InputPath, string(source))
	unit := parser.ParseTranslationUnit()

	if opts.DumpAST {
		fmt.Print(NewPrettyPrinter().Print(unit))
		return 0
	}

	checker := NewChecker(arena, opts.InputPath, string(source))
	checker.Check(unit)

	var asmText string
	switch opts.Arch {
	case "x86_64":
		asmText = NewX86_64Codegen(arena).Generate(unit)
	case "aarch64":
		asmText = NewAarch64Codegen().Generate(unit)
	default:
		fmt.Fprintf(stderrWriter, "%s: unsupported --arch '%s' (expected x86_64 or aarch64)\n", LevelFatal, opts.Arch)
		return 1
	}

	return assembleAndLink(asmText, opts)
}

func dumpTokens(path, source string) {
	lexer := NewLexer(source)
	for {
		tok := lexer.Next()
		fmt.Printf("%s:%d:%d: %s\n", path, tok.Loc.Line(), tok.Loc.Column(), tok.Kind)
		if tok.Kind == TokEOF {
			return
		}
	}
}

// assembleAndLink writes asmText to <out>.s and shells out to
// <sysroot>/bin/as and <sysroot>/bin/ld in the exact argument order the
// reference driver uses, preflighting both tools with unix.Access so a
// missing toolchain reports a resource failure instead of a raw exec
// error.
func assembleAndLink(asmText string, opts Options) int {
	asPath, ldPath := toolchainPaths(opts.Sysroot)

	for _, tool := range []string{asPath, ldPath} {
		if err := unix.Access(tool, unix.X_OK); err != nil {
			fmt.Fprintf(stderrWriter, "%s: %s is not executable: %v\n", LevelFatal, tool, err)
			return 1
		}
	}

	outPath := opts.OutputPath
	asmPath := outPath + ".s"
	objPath := outPath + ".o"

	if err := os.WriteFile(asmPath, []byte(asmText), 0o644); err != nil {
		fmt.Fprintf(stderrWriter, "%s: writing %s: %v\n", LevelFatal, asmPath, err)
		return 1
	}
	if !opts.SaveTemps {
		defer os.Remove(asmPath)
	}

	asCmd := exec.Command(asPath, asmPath, "-o", objPath)
	asCmd.Stderr = stderrWriter
	if err := asCmd.Run(); err != nil {
		fmt.Fprintf(stderrWriter, "%s: %s failed: %v\n", LevelFatal, asPath, err)
		return 1
	}
	if !opts.SaveTemps {
		defer os.Remove(objPath)
	}

	ldCmd := exec.Command(ldPath, objPath, "-o", outPath)
	ldCmd.Stderr = stderrWriter
	if err := ldCmd.Run(); err != nil {
		fmt.Fprintf(stderrWriter, "%s: %s failed: %v\n", LevelFatal, ldPath, err)
		return 1
	}

	return 0
}

// toolchainPaths builds the assembler and linker paths from sysroot
// using the literal "<sysroot>/bin/as" / "<sysroot>/bin/ld" template,
// matching the reference CLI's default sysroot of "/": an empty
// sysroot must resolve to the real /bin/as, not a cwd-relative bin/as,
// so this is plain concatenation rather than filepath.Join.
func toolchainPaths(sysroot string) (asPath, ldPath string) {
	return sysroot + "/bin/as", sysroot + "/bin/ld"
}

// defaultOutputPath derives an output executable name from the input
// source path, stripping its extension, matching the reference CLI's
// "basename without extension" convention.
func defaultOutputPath(inputPath string) string {
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
