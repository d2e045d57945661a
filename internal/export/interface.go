package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/opencode-chat/internal"
)

// Exporter writes a transcript in one format
type Exporter interface {
	Export(transcript *internal.Transcript, w io.Writer) error
	Extension() string
}

// formats maps every accepted name to its canonical format, in help order
var formats = []struct {
	name    string
	aliases []string
	build   func() Exporter
}{
	{"jsonl", []string{"ndjson"}, func() Exporter { return &JSONLExporter{} }},
	{"md", []string{"markdown"}, func() Exporter { return &MarkdownExporter{} }},
	{"yaml", []string{"yml"}, func() Exporter { return &YAMLExporter{} }},
	{"json", nil, func() Exporter { return &JSONExporter{} }},
}

// Formats returns the canonical format names
func Formats() []string {
	names := make([]string, 0, len(formats))
	for _, f := range formats {
		names = append(names, f.name)
	}
	return names
}

// NewExporter creates an exporter for a format name or alias. Names are
// case-insensitive and may carry a leading dot, as in a file extension.
func NewExporter(format string) (Exporter, error) {
	name := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(format)), ".")
	for _, f := range formats {
		if name == f.name {
			return f.build(), nil
		}
		for _, alias := range f.aliases {
			if name == alias {
				return f.build(), nil
			}
		}
	}
	return nil, fmt.Errorf("unsupported format %q (supported: %s)", format, strings.Join(Formats(), ", "))
}
