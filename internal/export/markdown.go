package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/opencode-chat/internal"
)

// MarkdownExporter exports transcripts as a readable Markdown document
type MarkdownExporter struct{}

// Export writes a header block followed by the messages separated by rules
func (e *MarkdownExporter) Export(transcript *internal.Transcript, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# %s\n\n", transcript.Title)
	_, _ = fmt.Fprintf(w, "**Session:** %s  \n", transcript.ID)
	if transcript.Directory != "" {
		_, _ = fmt.Fprintf(w, "**Directory:** %s  \n", transcript.Directory)
	}
	if transcript.UpdatedAt != "" {
		_, _ = fmt.Fprintf(w, "**Updated:** %s  \n", transcript.UpdatedAt)
	}
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", len(transcript.Messages))
	_, _ = fmt.Fprintf(w, "---\n\n")

	for i, msg := range transcript.Messages {
		heading := msg.Role
		if msg.Model != "" {
			heading += " · " + msg.Model
		}
		if msg.Timestamp != "" {
			heading += fmt.Sprintf(" (%s)", msg.Timestamp)
		}

		_, _ = fmt.Fprintf(w, "**%s**\n\n%s\n\n", heading, escapeMarkdown(msg.Content))

		if i < len(transcript.Messages)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

// escapeMarkdown escapes emphasis markers outside fenced code blocks
func escapeMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	inCodeBlock := false

	for i, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			continue
		}
		if inCodeBlock {
			continue
		}
		line = strings.ReplaceAll(line, "**", "\\*\\*")
		lines[i] = strings.ReplaceAll(line, "__", "\\_\\_")
	}

	return strings.Join(lines, "\n")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
