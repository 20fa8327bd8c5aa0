package commands

import (
	"github.com/algoplusmessflow-tech/Messflow-sub001/pkg/database"
	"github.com/spf13/cobra"
)

func newMigrateCommand(migrator Migrator) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or revert schema migrations",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return migrator(database.Up)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revert the most recent migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return migrator(database.Down)
			},
		},
	)
	return cmd
}
