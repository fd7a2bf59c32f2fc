package main

import (
	"io"
	"os"
)

// stderrWriter and osExit are indirections over os.Stderr/os.Exit so
// that tests exercising fatal paths can substitute a buffer and a
// panic-based exit instead of tearing down the test binary.
var (
	stderrWriter io.Writer = os.Stderr
	osExit                 = os.Exit
)
