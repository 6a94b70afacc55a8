package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/portfolio/backend/internal/repository"
)

func newMigrateCommand() *cobra.Command {
	var reset bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the submissions table and indexes",
		Long: `Create the submissions table and its indexes if they do not exist.
Running it again is a no-op. With --reset the table is dropped first and all
stored submissions are lost.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := openDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			if reset {
				if err := repository.ResetSchema(ctx, db); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "submissions table dropped and recreated")
				return nil
			}
			if err := repository.EnsureSchema(ctx, db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "drop the submissions table before creating it")
	return cmd
}
