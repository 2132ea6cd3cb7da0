// Package log provides colored terminal output for cigen.
// Colors are emitted only when the output writer is a terminal.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

// ANSI escape codes for terminal colors.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorCyan   = "\033[0;36m"
	colorWhite  = "\033[1;37m"
)

const sectionLine = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

// OsExit is the function called by Fatal to terminate the process.
// It is a package-level variable so tests can replace it without subprocess overhead.
var OsExit = os.Exit

var (
	mu     sync.Mutex
	out    io.Writer = os.Stdout
	colors           = isTerminal(os.Stdout)
)

// SetOutput redirects all log output to w and returns the previous writer.
// Colors are re-evaluated for the new writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	colors = isTerminal(w)
	return prev
}

// Info prints a white [INFO] message.
func Info(msg string) {
	printf(colorWhite, "[INFO]", msg)
}

// Success prints a green [SUCCESS] message.
func Success(msg string) {
	printf(colorGreen, "[SUCCESS]", msg)
}

// Warning prints a yellow [WARNING] message.
func Warning(msg string) {
	printf(colorYellow, "[WARNING]", msg)
}

// Error prints a red [ERROR] message.
func Error(msg string) {
	printf(colorRed, "[ERROR]", msg)
}

// Fatal prints a red [ERROR] message then exits with status 1.
func Fatal(msg string) {
	Error(msg)
	OsExit(1)
}

// Section prints a cyan box-draw separator with a title.
func Section(title string) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(out, "\n%s\n", paint(colorCyan, sectionLine))
	fmt.Fprintf(out, "%s\n", paint(colorCyan, title))
	fmt.Fprintf(out, "%s\n\n", paint(colorCyan, sectionLine))
}

func printf(color, label, msg string) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(out, "%s %s\n", paint(color, label), msg)
}

func paint(color, s string) string {
	if !colors {
		return s
	}
	return color + s + colorReset
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
