package cardstencil

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyMatch is returned when a matcher reports a zero-width match.
// Replacing a zero-width match would never shrink the template, so the
// render loop refuses to continue.
var ErrEmptyMatch = errors.New("internal error: zero-width template match")

// SyntaxError is reported by a modifier that finds a tag it cannot interpret,
// such as a delimiter change with the wrong number of tokens. A syntax error
// aborts the whole tag pass and the render output becomes
// InvalidTemplateOutput.
type SyntaxError struct {
	Tag     string
	Message string
}

func (e *SyntaxError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("syntax error in tag '%s': %s", e.Tag, e.Message)
	}
	return fmt.Sprintf("syntax error: %s", e.Message)
}

// NewSyntaxError creates a new syntax error
func NewSyntaxError(tag, message string) error {
	return &SyntaxError{
		Tag:     tag,
		Message: message,
	}
}

// UnsupportedSigilError means the tag grammar matched a sigil that has no
// modifier bound to it.
type UnsupportedSigilError struct {
	Sigil Sigil
	Tag   string
}

func (e *UnsupportedSigilError) Error() string {
	return fmt.Sprintf("unsupported tag sigil '%s' in tag '%s'", e.Sigil, e.Tag)
}

// NewUnsupportedSigilError creates a new unsupported sigil error
func NewUnsupportedSigilError(sigil Sigil, tag string) error {
	return &UnsupportedSigilError{
		Sigil: sigil,
		Tag:   tag,
	}
}

// LimitError is returned when a render exceeds one of the configured bounds.
type LimitError struct {
	Limit string
	Max   int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("render limit exceeded: %s > %d", e.Limit, e.Max)
}

// NewLimitError creates a new limit error
func NewLimitError(limit string, max int) error {
	return &LimitError{
		Limit: limit,
		Max:   max,
	}
}

// ValidationIssue represents a single validation problem
type ValidationIssue struct {
	Severity IssueSeverity
	Code     IssueCode
	Tag      string
	Message  string
}

// ValidationError represents multiple validation issues
type ValidationError struct {
	Issues []ValidationIssue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validation error"
	}

	if len(e.Issues) == 1 {
		return fmt.Sprintf("validation error: %s - %s", e.Issues[0].Tag, e.Issues[0].Message)
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("%d validation issues:", len(e.Issues)))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("  %s: %s", issue.Tag, issue.Message))
	}
	return strings.Join(parts, "\n")
}

// ContextError adds context to an existing error
type ContextError struct {
	Operation string
	Context   map[string]interface{}
	Cause     error
}

func (e *ContextError) Error() string {
	var contextParts []string
	for k, v := range e.Context {
		contextParts = append(contextParts, fmt.Sprintf("%s=%v", k, v))
	}

	if len(contextParts) > 0 {
		return fmt.Sprintf("%s [%s]: %v", e.Operation, strings.Join(contextParts, ", "), e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Operation, e.Cause)
}

func (e *ContextError) Unwrap() error {
	return e.Cause
}

// WithContext wraps an error with additional context
func WithContext(err error, operation string, context map[string]interface{}) error {
	if err == nil {
		return nil
	}
	return &ContextError{
		Operation: operation,
		Context:   context,
		Cause:     err,
	}
}

// RecoverError converts a panic recovery value to an error
func RecoverError(r interface{}) error {
	switch v := r.(type) {
	case error:
		return fmt.Errorf("panic recovered: %w", v)
	case string:
		return fmt.Errorf("panic recovered: %s", v)
	default:
		return fmt.Errorf("panic recovered: %v", v)
	}
}

// IsSyntaxError checks if an error is, or wraps, a syntax error
func IsSyntaxError(err error) bool {
	var target *SyntaxError
	return errors.As(err, &target)
}

// IsUnsupportedSigilError checks if an error is, or wraps, an unsupported sigil error
func IsUnsupportedSigilError(err error) bool {
	var target *UnsupportedSigilError
	return errors.As(err, &target)
}

// IsLimitError checks if an error is, or wraps, a limit error
func IsLimitError(err error) bool {
	var target *LimitError
	return errors.As(err, &target)
}
