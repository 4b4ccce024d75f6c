package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

var (
	mu     sync.RWMutex
	out    io.Writer = os.Stdout
	errOut io.Writer = os.Stderr
	quiet  bool
	tty    = term.IsTerminal(int(os.Stdout.Fd()))
	color  = tty
)

// Configure sets quiet mode and color output. Color is only ever enabled
// when stdout is a terminal.
func Configure(q, noColor bool) {
	mu.Lock()
	defer mu.Unlock()
	quiet = q
	color = !noColor && tty
}

// SetOutput redirects normal and error output. The new writers are not
// treated as terminals.
func SetOutput(stdout, stderr io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = stdout
	errOut = stderr
	tty = false
	color = false
}

// Interactive reports whether progress lines may be redrawn in place
func Interactive() bool {
	mu.RLock()
	defer mu.RUnlock()
	return tty && !quiet
}

// Quiet reports whether informational output is suppressed
func Quiet() bool {
	mu.RLock()
	defer mu.RUnlock()
	return quiet
}

func writers() (io.Writer, io.Writer) {
	mu.RLock()
	defer mu.RUnlock()
	return out, errOut
}

// Color functions for terminal output
var (
	Cyan    = colorize("\033[36m%s\033[0m")
	Yellow  = colorize("\033[33m%s\033[0m")
	Red     = colorize("\033[31m%s\033[0m")
	Green   = colorize("\033[32m%s\033[0m")
	Magenta = colorize("\033[35m%s\033[0m")
	Dim     = colorize("\033[2m%s\033[0m")
)

// colorize returns a function that wraps text with ANSI color codes when
// color is enabled
func colorize(colorString string) func(string) string {
	return func(text string) string {
		mu.RLock()
		enabled := color
		mu.RUnlock()
		if !enabled {
			return text
		}
		return fmt.Sprintf(colorString, text)
	}
}

// PrintError prints an error message in red. It is shown even in quiet mode.
func PrintError(msg string, args ...interface{}) {
	_, e := writers()
	if len(args) > 0 {
		fmt.Fprintln(e, Red(msg+": "+fmt.Sprintf("%v", args[0])))
	} else {
		fmt.Fprintln(e, Red(msg))
	}
}

// PrintSuccess prints a success message in green
func PrintSuccess(msg string) {
	if Quiet() {
		return
	}
	o, _ := writers()
	fmt.Fprintln(o, Green(msg))
}

// PrintInfo prints a label/value pair
func PrintInfo(label string, value string) {
	if Quiet() {
		return
	}
	o, _ := writers()
	fmt.Fprintf(o, "%s: %s\n", Cyan(label), Yellow(value))
}

// PrintWarning prints a warning message in yellow
func PrintWarning(msg string, args ...interface{}) {
	if Quiet() {
		return
	}
	_, e := writers()
	if len(args) > 0 {
		fmt.Fprintln(e, Yellow(msg+": "+fmt.Sprintf("%v", args[0])))
	} else {
		fmt.Fprintln(e, Yellow(msg))
	}
}

// PrintHighlight prints a highlighted message in magenta
func PrintHighlight(msg string) {
	if Quiet() {
		return
	}
	o, _ := writers()
	fmt.Fprintln(o, Magenta(msg))
}
