package export

import (
	"bytes"
	"strings"
	"testing"
)

func TestMarkdownExporter_Export(t *testing.T) {
	transcript := sampleTranscript(t)

	var buf bytes.Buffer
	if err := (&MarkdownExporter{}).Export(transcript, &buf); err != nil {
		t.Fatalf("MarkdownExporter.Export() error = %v", err)
	}
	output := buf.String()

	want := []string{
		"# Refactor parser",
		"**Session:** ses_1",
		"**Directory:** /home/dev/projects/test-workspace",
		"**Messages:** 2",
		"**user (2024-05-01T10:00:00Z)**",
		"**assistant · anthropic/claude-3 (2024-05-01T10:00:01Z)**",
		"How do I \\*\\*bold\\*\\*?",
		"```\n**kept**\n```",
	}
	for _, w := range want {
		if !strings.Contains(output, w) {
			t.Errorf("output missing %q\n%s", w, output)
		}
	}
	if strings.Count(output, "---") != 2 {
		t.Errorf("expected a rule after the header and between the two messages, got %d", strings.Count(output, "---"))
	}
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"bold", "**x**", "\\*\\*x\\*\\*"},
		{"underscore", "__x__", "\\_\\_x\\_\\_"},
		{"code block preserved", "```go\na**b\n```", "```go\na**b\n```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escapeMarkdown(tt.in); got != tt.want {
				t.Errorf("escapeMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
