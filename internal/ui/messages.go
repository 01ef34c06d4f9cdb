package ui

import (
	"fmt"
	"io"

	"github.com/W1Real/workty/internal/ui/styles"
)

// Error writes "error: msg" and, when hint is non-empty, "hint: hint".
func Error(w io.Writer, msg, hint string) {
	fmt.Fprintf(w, "%s: %s\n", styles.ErrorLabel.Render("error"), msg)
	if hint != "" {
		fmt.Fprintf(w, "%s: %s\n", styles.HintLabel.Render("hint"), hint)
	}
}

// Success writes "success: msg".
func Success(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s: %s\n", styles.SuccessLabel.Render("success"), msg)
}

// Warning writes "warning: msg".
func Warning(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s: %s\n", styles.WarningLabel.Render("warning"), msg)
}

// Info writes msg unadorned.
func Info(w io.Writer, msg string) {
	fmt.Fprintln(w, msg)
}
