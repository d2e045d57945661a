package internal

import (
	"testing"
	"time"
)

func TestNormalizer_Normalize(t *testing.T) {
	session := CreateTestSession("ses_1", "Refactor auth")
	session.Time = SessionTime{Created: fixedNow.UnixMilli(), Updated: fixedNow.Add(time.Hour).UnixMilli()}

	reply := CreateTestMessage("m2", "ses_1", RoleAssistant, "Hi there", fixedNow.Add(time.Minute))
	reply.Info.ProviderID = "anthropic"
	reply.Info.ModelID = "claude-3"
	messages := []ChatMessage{
		CreateTestMessage("m1", "ses_1", RoleUser, "Hello", fixedNow),
		{Info: MessageInfo{ID: "m_step", Role: RoleAssistant}, Parts: []Part{{Type: PartStepStart}}},
		reply,
	}

	transcript, err := NewNormalizer().Normalize(session, messages)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if transcript.ID != "ses_1" || transcript.Title != "Refactor auth" {
		t.Errorf("unexpected header: %+v", transcript)
	}
	if transcript.CreatedAt != "2026-03-14T09:30:00Z" || transcript.UpdatedAt != "2026-03-14T10:30:00Z" {
		t.Errorf("timestamps = %s %s", transcript.CreatedAt, transcript.UpdatedAt)
	}
	if len(transcript.Messages) != 2 {
		t.Fatalf("len(Messages) = %d, want 2", len(transcript.Messages))
	}

	first, second := transcript.Messages[0], transcript.Messages[1]
	if first.Role != "user" || first.Content != "Hello" || first.Model != "" {
		t.Errorf("first message = %+v", first)
	}
	if second.Role != "assistant" || second.Model != "anthropic/claude-3" || second.Timestamp != "2026-03-14T09:31:00Z" {
		t.Errorf("second message = %+v", second)
	}
}

func TestNormalizer_NilSession(t *testing.T) {
	if _, err := NewNormalizer().Normalize(nil, nil); err == nil {
		t.Error("Normalize(nil) should fail")
	}
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"zero", time.Time{}, ""},
		{"utc", fixedNow, "2026-03-14T09:30:00Z"},
		{"offset", time.Date(2026, 3, 14, 11, 30, 0, 0, time.FixedZone("CEST", 2*3600)), "2026-03-14T09:30:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatTimestamp(tt.t); got != tt.want {
				t.Errorf("formatTimestamp() = %q, want %q", got, tt.want)
			}
		})
	}
}
