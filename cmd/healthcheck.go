package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check that the opencode server is reachable",
	Long: `Check the health of the client setup by verifying:
  • Configuration (server URL, timeout, theme)
  • Session listing
  • Provider catalog and the model messages will be routed to

This command is useful for debugging connection issues.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		ctx := cmd.Context()
		store := coordinator.Store()

		fmt.Fprintln(out, sectionStyle.Render("opencode-chat Health Check"))
		fmt.Fprintln(out)

		// Step 1: Configuration
		fmt.Fprintln(out, infoStyle.Render("Step 1: Checking configuration..."))
		fmt.Fprintln(out, successStyle.Render("✅ Configuration loaded"))
		fmt.Fprintf(out, "   Server: %s\n", client.BaseURL())
		if verbose {
			fmt.Fprintf(out, "   Timeout: %s\n", cfg.Timeout)
			fmt.Fprintf(out, "   Theme: %s\n", cfg.ThemeValue())
			if cfg.DefaultModel != "" {
				fmt.Fprintf(out, "   Default model: %s\n", cfg.DefaultModel)
			}
		}
		fmt.Fprintln(out)

		// Step 2: Sessions
		fmt.Fprintln(out, infoStyle.Render("Step 2: Listing sessions..."))
		coordinator.LoadSessions(ctx)
		if err := storeError(); err != nil {
			fmt.Fprintln(out, errorStyle.Render("❌ Server unreachable:"), err)
			printHealthSummary(out, false)
			return fmt.Errorf("server %s is not reachable", client.BaseURL())
		}
		sessions := store.Snapshot().Sessions
		fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Found %d session(s)", len(sessions))))
		if verbose {
			for i, s := range sessions {
				if i == 5 {
					fmt.Fprintf(out, "   ... and %d more\n", len(sessions)-5)
					break
				}
				fmt.Fprintf(out, "   [%d] %s %s\n", i+1, s.ID, s.DisplayTitle())
			}
		}
		fmt.Fprintln(out)

		// Step 3: Providers
		fmt.Fprintln(out, infoStyle.Render("Step 3: Loading provider catalog..."))
		coordinator.LoadProviders(ctx)
		if err := storeError(); err != nil {
			fmt.Fprintln(out, errorStyle.Render("❌ Provider catalog unavailable:"), err)
			printHealthSummary(out, false)
			return err
		}
		st := store.Snapshot()
		active := 0
		for _, p := range st.Providers {
			active += len(p.ActiveModels())
		}
		if active == 0 {
			fmt.Fprintln(out, warningStyle.Render("⚠️  No active models; messages will use the server default"))
		} else {
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ %d provider(s), %d active model(s)", len(st.Providers), active)))
			fmt.Fprintf(out, "   Selected model: %s\n", modelLabel(st))
		}
		fmt.Fprintln(out)

		printHealthSummary(out, true)
		return nil
	},
}

func printHealthSummary(out io.Writer, ok bool) {
	fmt.Fprintln(out, sectionStyle.Render("Summary"))
	if ok {
		fmt.Fprintln(out, successStyle.Render("✅ Ready to chat"))
		return
	}
	fmt.Fprintln(out, errorStyle.Render("❌ Not ready"))
	fmt.Fprintln(out, "   Check that the server is running, or set --server / OPENCODE_API_URL")
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
}
