package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"movieCatalog/models"
	"movieCatalog/repository"
)

func newCreateDirectorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-director NAME [NATIONALITY] [BIRTH_YEAR]",
		Short: "Insert a director and print the stored record",
		Args:  cobra.RangeArgs(1, 3),
		RunE:  createDirectorCommand,
	}
	registerDBFlag(cmd)
	return cmd
}

func createDirectorCommand(cmd *cobra.Command, args []string) error {
	d := models.Director{Name: strings.TrimSpace(args[0])}
	if d.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(args) > 1 && strings.TrimSpace(args[1]) != "" {
		nat := strings.TrimSpace(args[1])
		d.Nationality = &nat
	}
	if len(args) > 2 {
		year, err := strconv.Atoi(strings.TrimSpace(args[2]))
		if err != nil {
			return fmt.Errorf("birth year must be an integer: %q", args[2])
		}
		d.BirthYear = &year
	}

	conn, err := openDB(cmd)
	if err != nil {
		return err
	}
	defer conn.Close()

	created, err := repository.NewDirectorRepository(conn).Create(cmd.Context(), &d)
	if err != nil {
		return fmt.Errorf("create director: %w", err)
	}
	return printJSON(cmd.OutOrStdout(), created)
}
