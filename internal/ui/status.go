// internal/ui/status.go
package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// StatusLine prints one-line status updates
type StatusLine struct {
	writer io.Writer
}

// NewStatusLineTo creates a status line writing to w
func NewStatusLineTo(w io.Writer) *StatusLine {
	return &StatusLine{writer: w}
}

// Success prints a success status
func (sl *StatusLine) Success(message string) {
	fmt.Fprintf(sl.writer, "%s %s\n", color.GreenString("✓"), message)
}

// Fail prints a failure status
func (sl *StatusLine) Fail(message string) {
	fmt.Fprintf(sl.writer, "%s %s\n", color.RedString("✗"), message)
}

// Warning prints a warning status
func (sl *StatusLine) Warning(message string) {
	fmt.Fprintf(sl.writer, "%s %s\n", color.YellowString("⚠"), message)
}

// Info prints an info status
func (sl *StatusLine) Info(message string) {
	fmt.Fprintf(sl.writer, "%s %s\n", color.BlueString("ℹ"), message)
}

// Detail prints an indented, dimmed key/value line under the previous status
func (sl *StatusLine) Detail(key, value string) {
	fmt.Fprintf(sl.writer, "   %s %s\n", color.HiBlackString(key+":"), value)
}
