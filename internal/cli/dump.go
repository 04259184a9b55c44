package cli

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// DumpOptions holds flags for the dump command.
type DumpOptions struct {
	*RootOptions
	Database string
	Table    string
	ID       int64
}

// NewDumpCommand creates the dump command.
func NewDumpCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DumpOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print one stored row by identity",
		Long: `Print the raw column values of a single row, looked up by identity.

Examples:
  stow dump --db ./objects.db --table users --id 1
  stow dump --db ./objects.db --table users --id 1 --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database")
	cmd.Flags().StringVar(&opts.Table, "table", "", "table to read (required)")
	_ = cmd.MarkFlagRequired("table")
	cmd.Flags().Int64Var(&opts.ID, "id", 0, "row identity (required)")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func runDump(opts *DumpOptions, cmd *cobra.Command) error {
	path, err := resolveDatabase(opts.Database, opts.RootOptions)
	if err != nil {
		return err
	}

	db, err := openReadOnly(path)
	if err != nil {
		return err
	}
	defer db.Close()

	columns, err := tableColumns(db, opts.Table)
	if err != nil {
		return err
	}

	query := fmt.Sprintf("SELECT * FROM %q WHERE id = ?", opts.Table)
	raw := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range raw {
		dest[i] = &raw[i]
	}
	err = db.QueryRow(query, opts.ID).Scan(dest...)
	if err == sql.ErrNoRows {
		return NewExitError(ExitFailure, fmt.Sprintf("no row with id=%d in table %q", opts.ID, opts.Table))
	}
	if err != nil {
		return fmt.Errorf("dump %q id=%d: %w", opts.Table, opts.ID, err)
	}

	if opts.Format == "json" {
		obj := make(map[string]any, len(columns))
		for i, col := range columns {
			obj[col] = printable(raw[i])
		}
		out, err := json.MarshalIndent(obj, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(out))
		return nil
	}

	for i, col := range columns {
		cmd.Printf("%s = %v\n", col, printable(raw[i]))
	}
	return nil
}

// tableColumns reads the table's column names in declaration order.
func tableColumns(db *sql.DB, table string) ([]string, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%q)", table))
	if err != nil {
		return nil, fmt.Errorf("describe table %q: %w", table, err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var (
			cid       int
			name      string
			ctype     string
			notNull   int
			dfltValue any
			pk        int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dfltValue, &pk); err != nil {
			return nil, fmt.Errorf("describe table %q: %w", table, err)
		}
		columns = append(columns, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("describe table %q: %w", table, err)
	}
	if len(columns) == 0 {
		return nil, NewExitError(ExitFailure, fmt.Sprintf("table %q does not exist", table))
	}
	return columns, nil
}

// printable renders driver values for output; blobs become their length.
func printable(raw any) any {
	if b, ok := raw.([]byte); ok {
		return fmt.Sprintf("<%d bytes>", len(b))
	}
	return raw
}
