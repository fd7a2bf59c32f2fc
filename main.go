package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/xyproto/env/v2"
)

func main() {
	var (
		outputFlag     = flag.String("o", "", "output executable path (default: input name without extension)")
		archFlag       = flag.String("arch", env.Str("OLANGC_ARCH", "x86_64"), "target architecture: x86_64 or aarch64")
		sysrootFlag    = flag.String("sysroot", env.Str("OLANGC_SYSROOT", ""), "prefix for bin/as and bin/ld")
		saveTempsFlag  = flag.Bool("save-temps", false, "retain <out>.s and <out>.o")
		dumpTokensFlag = flag.Bool("dump-tokens", false, "print one token per line: <path>:<line>:<col>: <KIND>")
		dumpASTFlag    = flag.Bool("dump-ast", false, "print the pretty-printed AST tree to stdout")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: olangc [flags] <input.olang>")
		flag.PrintDefaults()
		os.Exit(1)
	}
	inputPath := flag.Arg(0)

	outputPath := *outputFlag
	if outputPath == "" {
		outputPath = defaultOutputPath(inputPath)
	}

	opts := Options{
		InputPath:  inputPath,
		OutputPath: outputPath,
		Arch:       *archFlag,
		Sysroot:    *sysrootFlag,
		SaveTemps:  *saveTempsFlag,
		DumpTokens: *dumpTokensFlag,
		DumpAST:    *dumpASTFlag,
	}

	os.Exit(Run(opts))
}
