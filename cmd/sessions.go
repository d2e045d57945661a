package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/opencode-chat/internal"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	workspaceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Italic(true)
)

var sessionsCmd = &cobra.Command{
	Use:     "sessions",
	Aliases: []string{"list", "ls"},
	Short:   "List sessions on the server",
	Long:    `List all sessions the opencode server knows about, most recent first.`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		coordinator.LoadSessions(cmd.Context())
		if err := storeError(); err != nil {
			return err
		}
		displaySessions(cmd.OutOrStdout(), coordinator.Store().Snapshot().Sessions, time.Now())
		return nil
	},
}

var newCmd = &cobra.Command{
	Use:   "new [title]",
	Short: "Create a session",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := ""
		if len(args) == 1 {
			title = args[0]
		}
		session, err := coordinator.CreateSession(cmd.Context(), title)
		if err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}
		internal.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Created session %s (%s)", session.ID, session.DisplayTitle()))
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <session-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a session",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := coordinator.DeleteSession(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to delete session %s: %w", args[0], err)
		}
		internal.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Deleted session %s", args[0]))
		return nil
	},
}

func displaySessions(out io.Writer, sessions []internal.Session, now time.Time) {
	if len(sessions) == 0 {
		fmt.Fprintln(out, headerStyle.Render("No sessions found"))
		return
	}

	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("Found %d session(s)", len(sessions))))
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, titleStyle.Render("Title")+"\t"+titleStyle.Render("Updated")+"\t"+titleStyle.Render("Directory")+"\t"+titleStyle.Render("ID")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 90))

	for _, s := range sessions {
		// Truncate by display width so wide runes are never split
		title := runewidth.Truncate(s.DisplayTitle(), 50, "...")

		dir := s.DirectoryName()
		if dir == "" {
			dir = dateStyle.Render("—")
		} else {
			dir = workspaceStyle.Render(runewidth.Truncate(dir, 25, "..."))
		}

		updated := dateStyle.Render(internal.FormatSessionTime(s.UpdatedAt(), now))
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", title, updated, dir, idStyle.Render(s.ID))
	}

	_ = w.Flush()
	fmt.Fprintln(out)
	fmt.Fprintln(out, idStyle.Render("Tip: continue a session with ")+
		lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Render("opencode-chat chat "+sessions[0].ID))
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(deleteCmd)
}
