package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/opencode-chat/internal"
	"github.com/spf13/cobra"
)

var (
	chatMessage string
	chatModel   string
)

var promptStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("62")).
	Bold(true)

const chatHelp = `Commands:
  /models [query]       list providers and models, or search models
  /use model            route messages to provider/model, or the model a search finds
  /default              make the current model the default for /new
  /new [title]          start a new session
  /theme                toggle light and dark
  /refresh              reload the history from the server
  /quit                 leave the chat`

var chatCmd = &cobra.Command{
	Use:   "chat [session-id]",
	Short: "Chat in a session",
	Long: `Open a session and chat with it. Without a session id a new "New Chat"
session is created.

With --message a single message is sent and the reply printed. Otherwise lines
read from stdin are sent one at a time; lines starting with "/" are commands.

` + chatHelp,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store := coordinator.Store()

		coordinator.LoadProviders(ctx)
		if err := storeError(); err != nil {
			internal.PrintWarning(cmd.ErrOrStderr(), err.Error()+"; messages will use the server's default model")
			store.SetError("")
		}
		if chatModel != "" {
			if err := pickModel(store, chatModel, false, nil); err != nil {
				return err
			}
		}

		stop := internal.WatchLoading(store, cmd.ErrOrStderr(), "Working...")
		defer stop()

		sessionID := ""
		if len(args) == 1 {
			sessionID = args[0]
		}
		coordinator.ResolveSession(ctx, sessionID)
		if err := storeError(); err != nil {
			return err
		}

		if chatMessage != "" {
			return sendAndRender(ctx, cmd.OutOrStdout(), chatMessage)
		}
		return runChat(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

// sendAndRender sends text and prints the replies that arrived with it
func sendAndRender(ctx context.Context, out io.Writer, text string) error {
	before := len(coordinator.Store().Snapshot().Messages)
	coordinator.SetDraft(text)
	coordinator.SubmitDraft(ctx)
	if err := storeError(); err != nil {
		return err
	}

	st := coordinator.Store().Snapshot()
	palette := st.Theme.Palette()
	for _, msg := range st.Messages[before:] {
		if msg.IsLocal() || msg.Content() == "" {
			continue
		}
		displayMessage(out, msg, palette)
	}
	return nil
}

func runChat(ctx context.Context, in io.Reader, out io.Writer) error {
	renderHistory(out)
	fmt.Fprintln(out, idStyle.Render(`Type a message, or "/help" for commands.`))

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	printPrompt(out)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
		case strings.HasPrefix(line, "/"):
			quit, err := runChatCommand(ctx, out, line)
			if err != nil {
				internal.PrintError(out, err.Error())
				coordinator.Store().SetError("")
			}
			if quit {
				return nil
			}
		default:
			if err := sendAndRender(ctx, out, line); err != nil {
				internal.PrintError(out, err.Error())
				coordinator.Store().SetError("")
			}
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		printPrompt(out)
	}
	return scanner.Err()
}

func runChatCommand(ctx context.Context, out io.Writer, line string) (bool, error) {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	store := coordinator.Store()

	switch name {
	case "/quit", "/exit", "/q":
		return true, nil

	case "/help":
		fmt.Fprintln(out, chatHelp)

	case "/models":
		selector := internal.NewModelSelector(store, nil)
		selector.Open()
		selector.SetQuery(arg)
		displayPicker(out, selector, store.Snapshot())

	case "/use":
		announce := func() {
			internal.PrintSuccess(out, "Using "+modelLabel(store.Snapshot()))
		}
		if err := pickModel(store, arg, true, announce); err != nil {
			return false, err
		}

	case "/default":
		st := store.Snapshot()
		if st.SelectedModel == nil {
			return false, fmt.Errorf("no model selected")
		}
		if err := coordinator.SetDefaultModel(st.SelectedModel.Ref()); err != nil {
			return false, err
		}
		internal.PrintSuccess(out, "Default model set to "+st.SelectedModel.Ref().String())

	case "/new":
		session, err := coordinator.CreateSession(ctx, arg)
		if err != nil {
			return false, fmt.Errorf("failed to create session: %w", err)
		}
		coordinator.ResolveSession(ctx, session.ID)
		if err := storeError(); err != nil {
			return false, err
		}
		if dm := store.Snapshot().DefaultModel; dm != nil {
			if err := coordinator.UseModel(dm.Ref()); err != nil {
				internal.LogWarn("Default model unavailable: %v", err)
			}
		}
		renderHistory(out)

	case "/theme":
		store.ToggleTheme()
		internal.PrintInfo(out, "Theme: "+string(store.Snapshot().Theme))

	case "/refresh":
		coordinator.RefreshMessages(ctx)
		if err := storeError(); err != nil {
			return false, err
		}
		renderHistory(out)

	default:
		return false, fmt.Errorf("unknown command %s (try /help)", name)
	}
	return false, nil
}

func renderHistory(out io.Writer) {
	st := coordinator.Store().Snapshot()
	palette := st.Theme.Palette()
	displaySessionHeader(out, st.CurrentSession, st.Messages, palette)
	for _, msg := range internal.DisplayableMessages(st.Messages) {
		displayMessage(out, msg, palette)
	}
}

func modelLabel(st internal.State) string {
	if st.SelectedModel == nil {
		return "default model"
	}
	return st.SelectedModel.Ref().String()
}

func printPrompt(out io.Writer) {
	fmt.Fprint(out, promptStyle.Render(modelLabel(coordinator.Store().Snapshot())+" › "))
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringVarP(&chatMessage, "message", "m", "", "Send one message and print the reply")
	chatCmd.Flags().StringVar(&chatModel, "model", "", "Route messages to provider/model")
}
