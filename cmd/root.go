package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/iksnae/opencode-chat/internal"
	"github.com/iksnae/opencode-chat/internal/api"
	"github.com/spf13/cobra"
)

var (
	verbose   bool
	serverURL string
	envFile   string
	timeout   time.Duration
	themeName string
	version   string = "dev"
	commit    string = "unknown"
	date      string = "unknown"
)

var (
	cfg         *internal.Config
	client      *api.Client
	coordinator *internal.Coordinator
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "opencode-chat",
	Short: "Chat with an opencode server from the terminal",
	Long: `A terminal chat client for an opencode server.

It keeps one session active at a time, shows your message immediately while
the server works on a reply, and lets you pick the provider and model every
message is routed to.

Quick Start:
  opencode-chat sessions                 # List sessions
  opencode-chat chat                     # Start a new chat
  opencode-chat chat <session-id>        # Continue a session
  opencode-chat models gpt               # Search models across providers
  opencode-chat export <id> --format md  # Export a transcript

The server address defaults to http://127.0.0.1:4096 and can be set with
--server or OPENCODE_API_URL.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

// setup loads configuration, applies flag overrides and wires the client state
func setup() error {
	loaded, err := internal.LoadConfig(envFile)
	if err != nil {
		return err
	}
	if serverURL != "" {
		loaded.ServerURL = serverURL
	}
	if timeout > 0 {
		loaded.Timeout = timeout
	}
	if themeName != "" {
		loaded.Theme = themeName
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	internal.SetLogLevel(internal.ParseLogLevel(loaded.LogLevel))
	if verbose {
		internal.SetVerbose(true)
	}

	store := internal.NewStore()
	store.SetTheme(loaded.ThemeValue())
	if ref, ok := loaded.DefaultModelRef(); ok {
		store.SetDefaultModel(&internal.Model{ID: ref.ModelID, ProviderID: ref.ProviderID})
	}

	cfg = loaded
	client = api.NewClient(loaded.ServerURL, loaded.Timeout)
	coordinator = internal.NewCoordinator(store, client)
	internal.LogDebug("Using server %s", loaded.ServerURL)
	return nil
}

// storeError turns the store's error field into a command error
func storeError() error {
	if st := coordinator.Store().Snapshot(); st.HasError() {
		return fmt.Errorf("%s", st.Error)
	}
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "opencode server URL (default $OPENCODE_API_URL or http://127.0.0.1:4096)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Load environment variables from this file first")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Request timeout (default $OPENCODE_TIMEOUT or 5m)")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Color theme: light or dark")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
