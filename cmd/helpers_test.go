package cmd

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/iksnae/opencode-chat/testutil"
)

var fixedTime = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

// resetFlags restores every flag variable, since rootCmd is shared between tests
func resetFlags() {
	verbose, serverURL, envFile, timeout, themeName = false, "", "", 0, ""
	chatMessage, chatModel = "", ""
	limit, since = 0, ""
	format, outputPath = "jsonl", ""
	modelsProvider = ""

	for _, c := range append(rootCmd.Commands(), rootCmd) {
		for _, name := range []string{"help", "version"} {
			if f := c.Flags().Lookup(name); f != nil {
				_ = f.Value.Set("false")
			}
		}
	}
}

// runCommand executes the CLI against srv with stdin and returns stdout
func runCommand(t *testing.T, srv *testutil.FakeServer, stdin string, args ...string) (string, error) {
	t.Helper()
	stdout, _, err := runCommandOutput(t, srv, stdin, args...)
	return stdout, err
}

// runCommandOutput is runCommand that also returns stderr
func runCommandOutput(t *testing.T, srv *testutil.FakeServer, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()
	for _, key := range []string{"OPENCODE_API_URL", "OPENCODE_TIMEOUT", "OPENCODE_THEME", "OPENCODE_DEFAULT_MODEL", "LOG_LEVEL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	url := "http://127.0.0.1:1"
	if srv != nil {
		url = srv.URL
	}
	rootCmd.SetArgs(append([]string{"--server", url, "--timeout", (5 * time.Second).String()}, args...))

	var stdout, stderr bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func assertContains(t *testing.T, output string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q, got:\n%s", want, output)
		}
	}
}

func assertNotContains(t *testing.T, output string, unwanted ...string) {
	t.Helper()
	for _, u := range unwanted {
		if strings.Contains(output, u) {
			t.Errorf("output should not contain %q, got:\n%s", u, output)
		}
	}
}
