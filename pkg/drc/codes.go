package drc

import (
	"fmt"
	"strings"
)

// ErrorCode enumerates the kinds of violations providers can report.
type ErrorCode int

const (
	CodeOverlappingFootprints ErrorCode = iota + 1
	CodeMissingCourtyard
	CodeMalformedCourtyard
)

type codeInfo struct {
	key      string
	title    string // message catalog key, English text
	severity Severity
}

var codeTable = map[ErrorCode]codeInfo{
	CodeOverlappingFootprints: {key: "courtyards_overlap", title: MsgCourtyardsOverlap, severity: SeverityError},
	CodeMissingCourtyard:      {key: "missing_courtyard", title: MsgMissingCourtyard, severity: SeverityWarning},
	CodeMalformedCourtyard:    {key: "malformed_courtyard", title: MsgMalformedCourtyard, severity: SeverityError},
}

// AllCodes returns every known error code in declaration order.
func AllCodes() []ErrorCode {
	return []ErrorCode{CodeOverlappingFootprints, CodeMissingCourtyard, CodeMalformedCourtyard}
}

// String returns the settings key of the code, e.g. "courtyards_overlap".
func (c ErrorCode) String() string {
	if info, ok := codeTable[c]; ok {
		return info.key
	}
	return fmt.Sprintf("code_%d", int(c))
}

// Title returns the untranslated message template of the code.
func (c ErrorCode) Title() string {
	return codeTable[c].title
}

// DefaultSeverity returns the severity used when none is configured.
func (c ErrorCode) DefaultSeverity() Severity {
	if info, ok := codeTable[c]; ok {
		return info.severity
	}
	return SeverityError
}

// ParseErrorCode looks up a code by its settings key.
func ParseErrorCode(s string) (ErrorCode, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for code, info := range codeTable {
		if info.key == s {
			return code, true
		}
	}
	return 0, false
}

// MarshalText implements encoding.TextMarshaler.
func (c ErrorCode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *ErrorCode) UnmarshalText(text []byte) error {
	v, ok := ParseErrorCode(string(text))
	if !ok {
		return fmt.Errorf("unknown error code %q", text)
	}
	*c = v
	return nil
}

// =============================================================================
// Constraints
// =============================================================================

// ConstraintType names a design rule constraint a provider evaluates.
type ConstraintType string

const (
	ConstraintCourtyardClearance ConstraintType = "courtyard_clearance"
)
