// FILE: lixenwraith/linelog/cmd/linelog/scanner.go
package main

import (
	"bufio"
	"io"
)

// maxStdinLine bounds a single record read from stdin
const maxStdinLine = 1 << 20

func newLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxStdinLine)
	return scanner
}
