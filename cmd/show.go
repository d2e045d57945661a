package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/opencode-chat/internal"
	"github.com/spf13/cobra"
)

var (
	limit int
	since string
)

var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show messages for a specific session",
	Long:  `Load a session from the server and display its conversation history.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var sinceTime time.Time
		if since != "" {
			t, err := time.Parse(time.RFC3339, since)
			if err != nil {
				return fmt.Errorf("invalid --since value %q (want RFC3339): %w", since, err)
			}
			sinceTime = t
		}

		coordinator.ResolveSession(cmd.Context(), args[0])
		if err := storeError(); err != nil {
			return err
		}

		st := coordinator.Store().Snapshot()
		out := cmd.OutOrStdout()
		palette := st.Theme.Palette()
		displaySessionHeader(out, st.CurrentSession, st.Messages, palette)

		messages := internal.DisplayableMessages(st.Messages)
		if !sinceTime.IsZero() {
			filtered := make([]internal.ChatMessage, 0, len(messages))
			for _, msg := range messages {
				if !msg.CreatedAt().Before(sinceTime) {
					filtered = append(filtered, msg)
				}
			}
			messages = filtered
		}

		total := len(messages)
		if limit > 0 && limit < total {
			messages = messages[:limit]
		}

		for _, msg := range messages {
			displayMessage(out, msg, palette)
		}

		if limit > 0 && limit < total {
			fmt.Fprintln(out, palette.SecondaryStyle().Italic(true).
				Render(fmt.Sprintf("... (%d more message(s))", total-limit)))
		}
		return nil
	},
}

func displaySessionHeader(out io.Writer, session *internal.Session, messages []internal.ChatMessage, palette internal.Palette) {
	if session == nil {
		return
	}
	fmt.Fprintln(out, palette.TitleStyle().Padding(0, 1).Render(session.DisplayTitle()))

	metaParts := []string{fmt.Sprintf("Session: %s", session.ID)}
	if !session.UpdatedAt().IsZero() {
		metaParts = append(metaParts, fmt.Sprintf("Updated: %s", internal.FormatSessionTime(session.UpdatedAt(), time.Now())))
	}
	metaParts = append(metaParts, fmt.Sprintf("Messages: %d", len(internal.DisplayableMessages(messages))))
	if dir := session.DirectoryName(); dir != "" {
		metaParts = append(metaParts, fmt.Sprintf("Directory: %s", dir))
	}
	fmt.Fprintln(out, palette.SecondaryStyle().Padding(0, 1).Render(strings.Join(metaParts, " • ")))
	fmt.Fprintln(out)
}

// displayMessage renders one message as a bubble; user bubbles are right-aligned
func displayMessage(out io.Writer, msg internal.ChatMessage, palette internal.Palette) {
	label := "You"
	if msg.Info.Role != internal.RoleUser {
		label = "Assistant"
		if msg.Info.ModelID != "" {
			label += " · " + msg.Info.ModelID
		}
	}
	header := palette.AccentStyle().Render(label)
	if t := msg.CreatedAt(); !t.IsZero() {
		header += " " + palette.SecondaryStyle().Render(t.Local().Format("15:04"))
	}
	if msg.IsLocal() {
		header += " " + palette.SecondaryStyle().Italic(true).Render("(sending)")
	}

	bubble := palette.BubbleStyle(msg.Info.Role).Render(wrapText(msg.Content(), 72))
	if msg.Info.Role == internal.RoleUser {
		header = lipgloss.PlaceHorizontal(80, lipgloss.Right, header)
		bubble = lipgloss.PlaceHorizontal(80, lipgloss.Right, bubble)
	}

	fmt.Fprintln(out, header)
	fmt.Fprintln(out, bubble)
	fmt.Fprintln(out)
}

func wrapText(text string, width int) string {
	lines := strings.Split(text, "\n")
	var wrapped []string

	for _, line := range lines {
		if len(line) <= width {
			wrapped = append(wrapped, line)
			continue
		}

		words := strings.Fields(line)
		currentLine := ""
		for _, word := range words {
			if len(currentLine)+len(word)+1 > width {
				if currentLine != "" {
					wrapped = append(wrapped, currentLine)
				}
				currentLine = word
			} else if currentLine == "" {
				currentLine = word
			} else {
				currentLine += " " + word
			}
		}
		if currentLine != "" {
			wrapped = append(wrapped, currentLine)
		}
	}

	return strings.Join(wrapped, "\n")
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntVarP(&limit, "limit", "n", 0, "Limit number of messages to show")
	showCmd.Flags().StringVar(&since, "since", "", "Show messages since timestamp (RFC3339)")
}
