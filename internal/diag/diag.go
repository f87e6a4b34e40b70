// Package diag formats compiler diagnostics with source context: line and
// column information plus a caret pointing at the offending rune.
package diag

import (
	"fmt"
	"strings"

	"golang.org/x/text/width"
)

// Severity distinguishes hard errors from advisory warnings (spec §7: "Warnings
// and errors travel on separate channels").
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Position is a 1-based source location.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Diagnostic is a single compiler message with position and source context.
type Diagnostic struct {
	Severity Severity
	Message  string
	Code     string
	Pos      Position
	Source   string
	File     string
}

// New creates a hard-error diagnostic.
func New(pos Position, message, code, source, file string) *Diagnostic {
	return &Diagnostic{Severity: Error, Message: message, Code: code, Pos: pos, Source: source, File: file}
}

// NewWarning creates an advisory diagnostic.
func NewWarning(pos Position, message, code, source, file string) *Diagnostic {
	return &Diagnostic{Severity: Warning, Message: message, Code: code, Pos: pos, Source: source, File: file}
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	return d.Format(false)
}

// Format renders the diagnostic with a source-line-and-caret. When color is
// true ANSI codes highlight the caret and message.
func (d *Diagnostic) Format(color bool) string {
	var sb strings.Builder

	label := "Error"
	if d.Severity == Warning {
		label = "Warning"
	}
	if d.File != "" {
		sb.WriteString(fmt.Sprintf("%s in %s:%s\n", label, d.File, d.Pos))
	} else {
		sb.WriteString(fmt.Sprintf("%s at %s\n", label, d.Pos))
	}

	if line := d.sourceLine(d.Pos.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", d.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+caretOffset(line, d.Pos.Column)))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(d.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

// caretOffset measures the display column of a 1-based rune column,
// accounting for east-asian wide runes so the caret lines up visually even
// when the source line contains non-ASCII identifiers or string literals.
func caretOffset(line string, column int) int {
	offset := 0
	col := 0
	for _, r := range line {
		col++
		if col >= column {
			break
		}
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			offset += 2
		default:
			offset++
		}
	}
	return offset
}

func (d *Diagnostic) sourceLine(lineNum int) string {
	if d.Source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(d.Source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatAll renders a list of diagnostics, aggregating a header when there is
// more than one.
func FormatAll(diags []*Diagnostic, color bool) string {
	if len(diags) == 0 {
		return ""
	}
	if len(diags) == 1 {
		return diags[0].Format(color)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d diagnostic(s):\n\n", len(diags)))
	for i, d := range diags {
		sb.WriteString(fmt.Sprintf("[%d of %d]\n", i+1, len(diags)))
		sb.WriteString(d.Format(color))
		if i < len(diags)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// Errors filters a diagnostic list down to hard errors.
func Errors(diags []*Diagnostic) []*Diagnostic {
	out := make([]*Diagnostic, 0, len(diags))
	for _, d := range diags {
		if d.Severity == Error {
			out = append(out, d)
		}
	}
	return out
}

// Warnings filters a diagnostic list down to warnings.
func Warnings(diags []*Diagnostic) []*Diagnostic {
	out := make([]*Diagnostic, 0, len(diags))
	for _, d := range diags {
		if d.Severity == Warning {
			out = append(out, d)
		}
	}
	return out
}
