package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"movieCatalog/internal/config"
	"movieCatalog/internal/db"
)

const dbFlag = "db"

// NewRootCommand builds the moviectl command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "moviectl",
		Short: "Maintenance utility for the movie catalog database",
		Long: `Maintenance utility for the movie catalog database.

The database defaults to DB_SOURCE (or movies.db) and can be overridden
with --db on every command.

Examples:
  moviectl create-director "Agnès Varda" French 1928
  moviectl migrate add-email --db ./legacy.db
  moviectl migrate rollback
  moviectl health --addr localhost:50051`,
		SilenceUsage: true,
	}
	root.AddCommand(newCreateDirectorCommand())
	root.AddCommand(newMigrateCommand())
	root.AddCommand(newHealthCommand())
	return root
}

// registerDBFlag adds --db to a leaf command.
func registerDBFlag(cmd *cobra.Command) {
	cobraflags.RegisterMap(cmd, map[string]cobraflags.Flag{
		dbFlag: &cobraflags.StringFlag{
			Name:  dbFlag,
			Value: "",
			Usage: "SQLite database path (overrides DB_SOURCE)",
		},
	})
}

// dbPath returns the database selected by --db or the configuration.
func dbPath(cmd *cobra.Command) (string, error) {
	path, err := cmd.Flags().GetString(dbFlag)
	if err != nil {
		return "", err
	}
	if path != "" {
		return path, nil
	}
	cfg, err := config.LoadWithDefaults()
	if err != nil {
		return "", err
	}
	return cfg.Database.Path, nil
}

// openDB opens the selected database and applies pending migrations.
func openDB(cmd *cobra.Command) (*sql.DB, error) {
	path, err := dbPath(cmd)
	if err != nil {
		return nil, err
	}
	d, err := db.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return d, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
