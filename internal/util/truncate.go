package util

import "fmt"

// DefaultLogFieldLen is the maximum length kept for free-form request
// fields (user agents, error strings) in log output and audit records.
const DefaultLogFieldLen = 256

// Truncate shortens long strings for logging.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + fmt.Sprintf("... [truncated, %d bytes total]", len(s))
}

// TruncateField is a convenience wrapper for Truncate using
// DefaultLogFieldLen.
func TruncateField(s string) string {
	return Truncate(s, DefaultLogFieldLen)
}
