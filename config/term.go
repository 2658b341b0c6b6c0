package config

import (
	"io"
	"os"
)

// DefaultTermIO connects terminal io to the standard file descriptors.
var DefaultTermIO = TerminalIO{
	Stdin:  os.Stdin,
	Stdout: os.Stdout,
	Stderr: os.Stderr,
}

// TerminalIO holds the io streams commands read from and write to.
// Tests swap these for buffers.
type TerminalIO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}
