package cardstencil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorTypes(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{
			name:    "SyntaxError",
			err:     NewSyntaxError("<%", "delimiter change needs exactly two delimiters"),
			wantMsg: "syntax error in tag '<%': delimiter change needs exactly two delimiters",
		},
		{
			name:    "SyntaxError without tag",
			err:     NewSyntaxError("", "bad"),
			wantMsg: "syntax error: bad",
		},
		{
			name:    "UnsupportedSigilError",
			err:     NewUnsupportedSigilError(SigilPartial, "{{>card}}"),
			wantMsg: "unsupported tag sigil '>' in tag '{{>card}}'",
		},
		{
			name:    "LimitError",
			err:     NewLimitError("tag passes", 50),
			wantMsg: "render limit exceeded: tag passes > 50",
		},
		{
			name:    "ContextError",
			err:     WithContext(errors.New("boom"), "render", map[string]interface{}{"template_length": 5}),
			wantMsg: "render [template_length=5]: boom",
		},
		{
			name:    "ContextError without context",
			err:     WithContext(errors.New("boom"), "render", nil),
			wantMsg: "render: boom",
		},
		{
			name:    "ValidationError with one issue",
			err:     &ValidationError{Issues: []ValidationIssue{{Tag: "{{#a}}", Message: "section is never closed"}}},
			wantMsg: "validation error: {{#a}} - section is never closed",
		},
		{
			name: "ValidationError with two issues",
			err: &ValidationError{Issues: []ValidationIssue{
				{Tag: "{{#a}}", Message: "m1"},
				{Tag: "{{&b}}", Message: "m2"},
			}},
			wantMsg: "2 validation issues:\n  {{#a}}: m1\n  {{&b}}: m2",
		},
		{
			name:    "empty ValidationError",
			err:     &ValidationError{},
			wantMsg: "validation error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestErrorPredicates(t *testing.T) {
	syntax := NewSyntaxError("x", "bad")
	sigil := NewUnsupportedSigilError(SigilAmpersand, "{{&x}}")
	limit := NewLimitError("render depth", 3)

	tests := []struct {
		name        string
		err         error
		syntax      bool
		unsupported bool
		limit       bool
	}{
		{name: "syntax", err: syntax, syntax: true},
		{name: "wrapped syntax", err: WithContext(syntax, "expand section", nil), syntax: true},
		{name: "fmt wrapped sigil", err: fmt.Errorf("render: %w", sigil), unsupported: true},
		{name: "limit", err: limit, limit: true},
		{name: "plain", err: errors.New("x")},
		{name: "nil", err: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.syntax, IsSyntaxError(tt.err))
			assert.Equal(t, tt.unsupported, IsUnsupportedSigilError(tt.err))
			assert.Equal(t, tt.limit, IsLimitError(tt.err))
		})
	}
}

func TestWithContext(t *testing.T) {
	assert.Nil(t, WithContext(nil, "op", nil))

	cause := errors.New("cause")
	err := WithContext(cause, "op", nil)
	assert.ErrorIs(t, err, cause)
}

func TestRecoverError(t *testing.T) {
	cause := errors.New("boom")

	assert.ErrorIs(t, RecoverError(cause), cause)
	assert.EqualError(t, RecoverError("text"), "panic recovered: text")
	assert.EqualError(t, RecoverError(42), "panic recovered: 42")
}
