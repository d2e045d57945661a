package internal

import (
	"strings"
	"time"
)

// FormatMessageText joins the non-blank text parts of a message, in server order.
// Reasoning, tool and step parts never contribute to the displayed content.
func FormatMessageText(parts []Part) string {
	var texts []string
	for _, p := range parts {
		if p.Type != PartText || strings.TrimSpace(p.Text) == "" {
			continue
		}
		texts = append(texts, p.Text)
	}
	return strings.TrimSpace(strings.Join(texts, "\n"))
}

// DisplayableMessages drops messages with no text to show
func DisplayableMessages(messages []ChatMessage) []ChatMessage {
	out := make([]ChatMessage, 0, len(messages))
	for _, m := range messages {
		if m.Content() != "" {
			out = append(out, m)
		}
	}
	return out
}

// FormatSessionTime renders a session timestamp relative to now:
// clock time today, "Yesterday", a weekday within a week, else month and day.
func FormatSessionTime(t, now time.Time) string {
	if t.IsZero() {
		return "—"
	}
	t = t.In(now.Location())
	days := int(now.Sub(t).Hours() / 24)
	switch {
	case days <= 0:
		return t.Format("15:04")
	case days == 1:
		return "Yesterday"
	case days < 7:
		return t.Format("Mon")
	default:
		return t.Format("Jan 2")
	}
}
