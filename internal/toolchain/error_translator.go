package toolchain

import (
	"fmt"
	"regexp"
	"strings"
)

// ErrorTranslator converts packaging toolchain errors to user-friendly messages.
type ErrorTranslator struct{}

// NewErrorTranslator creates a new error translator.
func NewErrorTranslator() *ErrorTranslator {
	return &ErrorTranslator{}
}

var missingModuleRe = regexp.MustCompile(`No module named '?([A-Za-z0-9_.]+)'?`)

// Translate converts raw toolchain output to a user-friendly message.
func (t *ErrorTranslator) Translate(output string) string {
	// Missing package definition
	if strings.Contains(output, "can't open file") || strings.Contains(output, "No such file or directory") {
		return "No package definition found. Check that the build command points at an existing setup script."
	}

	// Missing build dependency
	if matches := missingModuleRe.FindStringSubmatch(output); len(matches) > 1 {
		return fmt.Sprintf("Missing build dependency %q. Install it and re-run.", matches[1])
	}

	// Wheel support not installed
	if strings.Contains(output, "invalid command 'bdist_wheel'") {
		return "Wheel support is not installed. Install the 'wheel' package and re-run."
	}

	// Syntax error in the package definition
	if strings.Contains(output, "SyntaxError") {
		return fmt.Sprintf("The package definition contains a syntax error:\n%s", t.extractErrorDetail(output))
	}

	// Metadata validation failure
	if strings.Contains(output, "error in") && strings.Contains(output, "setup command") {
		return fmt.Sprintf("The package metadata is invalid:\n%s", t.extractErrorDetail(output))
	}

	// Default: return the cleaned tail of the output
	return t.extractErrorDetail(output)
}

// extractErrorDetail returns the last few meaningful lines of toolchain output.
func (t *ErrorTranslator) extractErrorDetail(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")

	var detail []string
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			continue
		}
		detail = append(detail, line)
	}

	const maxLines = 5
	if len(detail) > maxLines {
		detail = detail[len(detail)-maxLines:]
	}

	return strings.Join(detail, "\n")
}
