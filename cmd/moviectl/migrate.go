package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"movieCatalog/internal/db"
)

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate [add-email|rollback]",
		Short: "Run schema maintenance tasks",
		Long: `Run schema maintenance tasks.

add-email applies pending embedded migrations before it runs; rollback does not.

Available subcommands:
  add-email  - Add the users.email column and its unique index to a legacy database
  rollback   - Revert the most recently applied migration`,
	}

	addEmail := &cobra.Command{
		Use:   "add-email",
		Short: "Upgrade a legacy users table with an email column",
		Args:  cobra.NoArgs,
		RunE:  addEmailCommand,
	}
	registerDBFlag(addEmail)

	rollback := &cobra.Command{
		Use:   "rollback",
		Short: "Revert the last applied migration",
		Args:  cobra.NoArgs,
		RunE:  rollbackCommand,
	}
	registerDBFlag(rollback)

	cmd.AddCommand(addEmail, rollback)
	return cmd
}

func addEmailCommand(cmd *cobra.Command, _ []string) error {
	conn, err := openDB(cmd)
	if err != nil {
		return err
	}
	defer conn.Close()

	rep, err := db.EnsureUserEmail(cmd.Context(), conn)
	if err != nil {
		return fmt.Errorf("add email column: %w", err)
	}
	return printJSON(cmd.OutOrStdout(), rep)
}

func rollbackCommand(cmd *cobra.Command, _ []string) error {
	path, err := dbPath(cmd)
	if err != nil {
		return err
	}
	// Connect without migrating so repeated rollbacks walk back one version each.
	conn, err := db.Connect(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer conn.Close()

	v, err := db.RollbackLast(conn)
	if err != nil {
		return err
	}
	if v == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no migrations to roll back")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "rolled back migration %04d\n", v)
	return nil
}
