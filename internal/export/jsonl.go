package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/opencode-chat/internal"
)

// JSONLExporter exports transcripts one message per line
type JSONLExporter struct{}

// Export writes each message as a JSON object tagged with its session id
func (e *JSONLExporter) Export(transcript *internal.Transcript, w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, msg := range transcript.Messages {
		line := struct {
			SessionID string `json:"session_id"`
			internal.TranscriptMessage
		}{transcript.ID, msg}

		if err := enc.Encode(line); err != nil {
			return fmt.Errorf("failed to encode message %s: %w", msg.ID, err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
