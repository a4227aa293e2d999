package main

import (
	"fmt"
	"io"
)

func fprintln(out io.Writer, a ...any) {
	_, _ = fmt.Fprintln(out, a...)
}

func fprintf(out io.Writer, format string, a ...any) {
	_, _ = fmt.Fprintf(out, format, a...)
}
