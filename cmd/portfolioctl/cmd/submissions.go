package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
)

const previewLength = 40

func newSubmissionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "submissions",
		Aliases: []string{"subs"},
		Short:   "Read and triage contact form submissions",
	}
	cmd.AddCommand(newSubmissionsListCommand())
	cmd.AddCommand(newSubmissionsMarkCommand())
	return cmd
}

func newSubmissionsListCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the most recent submissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := openDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			admin := service.NewSubmissionAdminService(repository.NewSQLSubmissionRepository(db), nil)
			subs, err := admin.List(ctx)
			if err != nil {
				return err
			}
			if limit > 0 && limit < len(subs) {
				subs = subs[:limit]
			}
			renderSubmissions(cmd.OutOrStdout(), subs)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum rows to show (at most 100)")
	return cmd
}

func newSubmissionsMarkCommand() *cobra.Command {
	var unread bool
	cmd := &cobra.Command{
		Use:   "mark <id>",
		Short: "Mark a submission as read (or unread with --unread)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid submission id %q", args[0])
			}
			ctx := cmd.Context()
			db, err := openDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			admin := service.NewSubmissionAdminService(repository.NewSQLSubmissionRepository(db), nil)
			if err := admin.SetRead(ctx, model.ReadUpdate{ID: id, Read: !unread}); err != nil {
				return err
			}
			state := "read"
			if unread {
				state = "unread"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "submission %d marked %s\n", id, state)
			return nil
		},
	}
	cmd.Flags().BoolVar(&unread, "unread", false, "clear the read flag instead")
	return cmd
}

// renderSubmissions writes subs as a table to w.
func renderSubmissions(w io.Writer, subs []*model.Submission) {
	if len(subs) == 0 {
		fmt.Fprintln(w, "No submissions")
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Received", "Name", "Email", "Subject", "Message", "Read"})
	for _, s := range subs {
		subject := "-"
		if s.Subject != nil {
			subject = *s.Subject
		}
		read := ""
		if s.Read {
			read = "yes"
		}
		t.AppendRow(table.Row{
			s.ID,
			s.CreatedAt.Format("2006-01-02 15:04"),
			s.Name,
			s.Email,
			subject,
			preview(s.Message),
			read,
		})
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "Total", len(subs)})
	t.Render()
}

func preview(msg string) string {
	msg = strings.Join(strings.Fields(msg), " ")
	r := []rune(msg)
	if len(r) <= previewLength {
		return msg
	}
	return string(r[:previewLength-3]) + "..."
}
