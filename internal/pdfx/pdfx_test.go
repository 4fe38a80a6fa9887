package pdfx

import (
	"reflect"
	"testing"
)

func TestExtractTextFromOperation(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		expected  []string
	}{
		{
			name:      "simple Tj",
			operation: "(Hello World) Tj",
			expected:  []string{"Hello World"},
		},
		{
			name:      "multiple strings in TJ array",
			operation: "[(What) (is) (X?)] TJ",
			expected:  []string{"What", "is", "X?"},
		},
		{
			name:      "escaped parentheses",
			operation: "(marks \\(5\\)) Tj",
			expected:  []string{"marks (5)"},
		},
		{
			name:      "escaped backslash and newline",
			operation: "(line\\nbreak \\\\ slash) Tj",
			expected:  []string{"line\nbreak \\ slash"},
		},
		{
			name:      "whitespace only ignored",
			operation: "(   ) Tj",
			expected:  nil,
		},
		{
			name:      "no text",
			operation: "1 0 0 1 72 720 Tm",
			expected:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ExtractTextFromOperation(tt.operation)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("got %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestDecodeContent(t *testing.T) {
	content := `BT
/F1 12 Tf
72 720 Td
(The question below carries) Tj
(five marks .) Tj
ET`

	got := DecodeContent(content)
	want := "The question below carries five marks."
	if got != want {
		t.Errorf("DecodeContent = %q, want %q", got, want)
	}
}

func TestDecodeContentEmpty(t *testing.T) {
	if got := DecodeContent(""); got != "" {
		t.Errorf("expected empty result, got %q", got)
	}
	// Pure drawing operations carry no text.
	if got := DecodeContent("0 0 100 100 re\nf"); got != "" {
		t.Errorf("expected empty result, got %q", got)
	}
}

func TestCleanupText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "collapses double spaces",
			input:    "a  b    c",
			expected: "a b c",
		},
		{
			name:     "fixes punctuation spacing",
			input:    "end . next , what ?",
			expected: "end. next, what?",
		},
		{
			name:     "known octal escapes",
			input:    "temp 20\\260 and\\240more",
			expected: "temp 20° and more",
		},
		{
			name:     "unknown octal dropped",
			input:    "a\\123b",
			expected: "ab",
		},
		{
			name:     "control characters become spaces",
			input:    "a\x01b",
			expected: "a b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanupText(tt.input); got != tt.expected {
				t.Errorf("CleanupText(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
