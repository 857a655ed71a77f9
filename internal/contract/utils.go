package contract

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Color variables for console output.
var (
	HeadlineColor = color.New(color.FgCyan, color.Bold) // headline figures in the summary table
	WarnColor     = color.New(color.FgYellow)           // degraded but continuing
	PeakColor     = color.New(color.FgMagenta, color.Bold)
)

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "❌ %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning and keeps going.
func LogWarn(msg string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  %s: %v\n", WarnColor.Sprint(msg), err)
		return
	}
	fmt.Fprintf(os.Stderr, "⚠️  %s\n", WarnColor.Sprint(msg))
}

// Statusf prints a progress status line on stderr.
func Statusf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
