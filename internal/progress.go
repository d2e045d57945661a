package internal

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	progressStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)
)

var spinnerChars = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// LoadingIndicator shows a spinner on w while the store's loading flag is set
type LoadingIndicator struct {
	w       io.Writer
	message string
	tty     bool

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// WatchLoading subscribes an indicator to the store. Call the returned
// function to unsubscribe and stop any running spinner.
func WatchLoading(store *Store, w io.Writer, message string) func() {
	li := &LoadingIndicator{w: w, message: message, tty: isTerminal(w)}
	unsubscribe := store.Subscribe(func(st State) {
		if st.IsLoading {
			li.start()
		} else {
			li.halt()
		}
	})
	return func() {
		unsubscribe()
		li.halt()
	}
}

func (li *LoadingIndicator) start() {
	li.mu.Lock()
	defer li.mu.Unlock()
	if li.stop != nil {
		return
	}
	if !li.tty {
		LogDebug("%s", li.message)
		return
	}

	li.stop = make(chan struct{})
	li.done = make(chan struct{})
	go func(stop, done chan struct{}) {
		defer close(done)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for i := 0; ; i++ {
			select {
			case <-stop:
				fmt.Fprint(li.w, "\r\033[K")
				return
			case <-ticker.C:
				fmt.Fprintf(li.w, "\r%s %s", progressStyle.Render(spinnerChars[i%len(spinnerChars)]), li.message)
			}
		}
	}(li.stop, li.done)
}

func (li *LoadingIndicator) halt() {
	li.mu.Lock()
	stop, done := li.stop, li.done
	li.stop, li.done = nil, nil
	li.mu.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}
}

// isTerminal checks if the writer is a terminal
func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

// PrintSuccess prints a success message
func PrintSuccess(w io.Writer, message string) {
	if isTerminal(w) {
		fmt.Fprintf(w, "%s %s\n", successStyle.Render("✓"), message)
	} else {
		fmt.Fprintln(w, message)
	}
}

// PrintError prints an error message
func PrintError(w io.Writer, message string) {
	if isTerminal(w) {
		fmt.Fprintf(w, "%s %s\n", errorStyle.Render("✗"), message)
	} else {
		fmt.Fprintf(w, "ERROR: %s\n", message)
	}
}

// PrintInfo prints an info message
func PrintInfo(w io.Writer, message string) {
	if isTerminal(w) {
		fmt.Fprintf(w, "%s %s\n", progressStyle.Render("ℹ"), message)
	} else {
		fmt.Fprintln(w, message)
	}
}

// PrintWarning prints a warning message
func PrintWarning(w io.Writer, message string) {
	if isTerminal(w) {
		fmt.Fprintf(w, "%s %s\n", warningStyle.Render("⚠"), message)
	} else {
		fmt.Fprintf(w, "WARNING: %s\n", message)
	}
}
