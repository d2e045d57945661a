package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iksnae/opencode-chat/internal"
	"github.com/iksnae/opencode-chat/internal/export"
	"github.com/spf13/cobra"
)

var (
	format     string
	outputPath string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <session-id>",
	Short: "Export a session transcript",
	Long: `Export a session's displayable messages to a file (jsonl, md, yaml, json).

The transcript is written to stdout unless --out is given. When --out names a
directory the file is called session_<id>.<ext>.
Use 'opencode-chat sessions' to see available session IDs.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		exporter, err := export.NewExporter(format)
		if err != nil {
			return err
		}

		coordinator.ResolveSession(cmd.Context(), id)
		if err := storeError(); err != nil {
			return fmt.Errorf("%w (use 'opencode-chat sessions' to see available sessions)", err)
		}

		st := coordinator.Store().Snapshot()
		transcript, err := internal.NewNormalizer().Normalize(st.CurrentSession, st.Messages)
		if err != nil {
			return err
		}

		if outputPath == "" || outputPath == "-" {
			if err := exporter.Export(transcript, cmd.OutOrStdout()); err != nil {
				return &internal.ExportError{Format: format, Path: "stdout", Err: err}
			}
			return nil
		}

		path := outputPath
		if info, err := os.Stat(path); (err == nil && info.IsDir()) || strings.HasSuffix(path, string(os.PathSeparator)) {
			path = filepath.Join(path, fmt.Sprintf("session_%s.%s", id, exporter.Extension()))
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		file, err := os.Create(path)
		if err != nil {
			return &internal.ExportError{Format: format, Path: path, Err: err}
		}
		if err := exporter.Export(transcript, file); err != nil {
			_ = file.Close()
			return &internal.ExportError{Format: format, Path: path, Err: err}
		}
		if err := file.Close(); err != nil {
			internal.LogWarn("Failed to close file %s: %v", path, err)
		}

		internal.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Exported %d message(s) to %s", len(transcript.Messages), path))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", "jsonl", "Export format ("+strings.Join(export.Formats(), ", ")+")")
	exportCmd.Flags().StringVarP(&outputPath, "out", "o", "", "Output file or directory (default stdout)")
}
