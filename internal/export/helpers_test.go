package export

import (
	"testing"
	"time"

	"github.com/iksnae/opencode-chat/internal"
)

func sampleTranscript(t *testing.T) *internal.Transcript {
	t.Helper()
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	session := internal.CreateTestSession("ses_1", "Refactor parser")
	user := internal.CreateTestMessage("msg_1", "ses_1", internal.RoleUser, "How do I **bold**?", created)
	reply := internal.CreateTestMessage("msg_2", "ses_1", internal.RoleAssistant, "Use `**text**`.\n```\n**kept**\n```", created.Add(time.Second))
	reply.Info.ProviderID = "anthropic"
	reply.Info.ModelID = "claude-3"
	empty := internal.CreateTestMessage("msg_3", "ses_1", internal.RoleAssistant, "   ", created.Add(2*time.Second))

	transcript, err := internal.NewNormalizer().Normalize(session, []internal.ChatMessage{user, reply, empty})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	return transcript
}
