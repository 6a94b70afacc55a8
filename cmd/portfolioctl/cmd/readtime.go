package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/portfolio/backend/internal/readingtime"
)

func newReadtimeCommand() *cobra.Command {
	var wpm int
	cmd := &cobra.Command{
		Use:   "readtime <file>...",
		Short: "Estimate reading time for text or markdown files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReadtime(cmd.OutOrStdout(), args, wpm)
		},
	}
	cmd.Flags().IntVar(&wpm, "wpm", readingtime.DefaultWordsPerMinute, "reading speed in words per minute")
	return cmd
}

func runReadtime(w io.Writer, paths []string, wpm int) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"File", "Words", "Reading time"})
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		est := readingtime.CalculateReadingTime(string(raw), wpm)
		t.AppendRow(table.Row{path, est.WordCount, readingtime.FormatReadingTime(est.Minutes)})
	}
	t.Render()
	return nil
}
