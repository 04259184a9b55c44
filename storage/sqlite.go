package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/roach88/stow/data"
	"github.com/roach88/stow/object"
)

// SQLiteTx adapts one live *sql.Tx on a SQLite connection (mattn/go-sqlite3)
// to the Tx contract. It is single-use: after Commit or Rollback the
// underlying transaction is gone.
type SQLiteTx struct {
	tx *sql.Tx
}

// NewSQLiteTx wraps an open SQLite transaction.
func NewSQLiteTx(tx *sql.Tx) *SQLiteTx {
	return &SQLiteTx{tx: tx}
}

// TableExists implements Tx.
func (s *SQLiteTx) TableExists(table string) (bool, error) {
	var name string
	err := s.tx.QueryRow(
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?",
		table,
	).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("table exists %q: %w", table, translate(err, object.Schema{}))
	}
	return true, nil
}

// CreateTable implements Tx.
func (s *SQLiteTx) CreateTable(schema object.Schema) error {
	query := fmt.Sprintf("CREATE TABLE %s (%s)", schema.TableName, schema.DDL())
	if _, err := s.tx.Exec(query); err != nil {
		return fmt.Errorf("create table %q: %w", schema.TableName, translate(err, schema))
	}
	return nil
}

// InsertRow implements Tx.
func (s *SQLiteTx) InsertRow(schema object.Schema, row data.Row) (data.ObjectID, error) {
	var query string
	if schema.Columns() == 0 {
		// No declared columns: insert just the auto-assigned identity.
		query = fmt.Sprintf("INSERT INTO %s (id) VALUES (NULL)", schema.TableName)
	} else {
		query = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			schema.TableName, schema.ColumnList(", "), placeholders(schema.Columns()))
	}

	res, err := s.tx.Exec(query, bindRow(row)...)
	if err != nil {
		return 0, fmt.Errorf("insert into %q: %w", schema.TableName, translate(err, schema))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert into %q: last insert id: %w", schema.TableName, err)
	}
	return data.ObjectID(id), nil
}

// UpdateRow implements Tx.
func (s *SQLiteTx) UpdateRow(id data.ObjectID, schema object.Schema, row data.Row) error {
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?",
		schema.TableName, schema.UpdateList())
	args := append(bindRow(row), id.Int64())
	if _, err := s.tx.Exec(query, args...); err != nil {
		return fmt.Errorf("update %q id=%s: %w", schema.TableName, id, translate(err, schema))
	}
	return nil
}

// SelectRow implements Tx.
func (s *SQLiteTx) SelectRow(id data.ObjectID, schema object.Schema) (data.Row, error) {
	if schema.Columns() == 0 {
		// Only the identity column exists; probe for the row.
		var got int64
		err := s.tx.QueryRow(
			fmt.Sprintf("SELECT id FROM %s WHERE id = ?", schema.TableName),
			id.Int64(),
		).Scan(&got)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{ID: id, TypeName: schema.TypeName}
		}
		if err != nil {
			return nil, fmt.Errorf("select from %q id=%s: %w", schema.TableName, id, translate(err, schema))
		}
		return data.Row{}, nil
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?",
		schema.ColumnList(", "), schema.TableName)

	raw := make([]any, schema.Columns())
	dest := make([]any, schema.Columns())
	for i := range raw {
		dest[i] = &raw[i]
	}

	err := s.tx.QueryRow(query, id.Int64()).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{ID: id, TypeName: schema.TypeName}
	}
	if err != nil {
		return nil, fmt.Errorf("select from %q id=%s: %w", schema.TableName, id, translate(err, schema))
	}

	row := make(data.Row, 0, schema.Columns())
	for i, cell := range raw {
		v, err := decodeValue(cell, i, schema)
		if err != nil {
			return nil, err
		}
		row = append(row, v)
	}
	return row, nil
}

// DeleteRow implements Tx.
func (s *SQLiteTx) DeleteRow(id data.ObjectID, schema object.Schema) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", schema.TableName)
	if _, err := s.tx.Exec(query, id.Int64()); err != nil {
		return fmt.Errorf("delete from %q id=%s: %w", schema.TableName, id, translate(err, schema))
	}
	return nil
}

// Commit implements Tx.
func (s *SQLiteTx) Commit() error {
	if err := s.tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", translate(err, object.Schema{}))
	}
	return nil
}

// Rollback implements Tx.
func (s *SQLiteTx) Rollback() error {
	if err := s.tx.Rollback(); err != nil {
		return fmt.Errorf("rollback: %w", err)
	}
	return nil
}

// placeholders renders "?, ?, ?" for n bound values.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// bindRow converts a Row into driver-bindable arguments.
func bindRow(row data.Row) []any {
	args := make([]any, 0, len(row))
	for _, v := range row {
		switch v := v.(type) {
		case data.String:
			args = append(args, string(v))
		case data.Bytes:
			args = append(args, []byte(v))
		case data.Int64:
			args = append(args, int64(v))
		case data.Float64:
			args = append(args, float64(v))
		case data.Bool:
			args = append(args, bool(v))
		default:
			panic(fmt.Sprintf("storage: unknown value kind %T", v))
		}
	}
	return args
}

// decodeValue converts the driver's raw column value into the declared Value
// kind for column i. A stored type that disagrees with the declaration yields
// an UnexpectedTypeError.
func decodeValue(raw any, i int, schema object.Schema) (data.Value, error) {
	want := schema.ColumnTypes[i]
	switch want {
	case data.TypeString:
		switch v := raw.(type) {
		case string:
			return data.String(v), nil
		case []byte:
			return data.String(v), nil
		}
	case data.TypeBytes:
		if v, ok := raw.([]byte); ok {
			return data.Bytes(append([]byte(nil), v...)), nil
		}
	case data.TypeInt64:
		if v, ok := raw.(int64); ok {
			return data.Int64(v), nil
		}
	case data.TypeFloat64:
		switch v := raw.(type) {
		case float64:
			return data.Float64(v), nil
		case int64:
			// SQLite stores integral REALs as integers.
			return data.Float64(v), nil
		}
	case data.TypeBool:
		switch v := raw.(type) {
		case bool:
			return data.Bool(v), nil
		case int64:
			return data.Bool(v != 0), nil
		}
	}
	return nil, &UnexpectedTypeError{
		TypeName:   schema.TypeName,
		FieldName:  schema.FieldNames[i],
		TableName:  schema.TableName,
		ColumnName: schema.ColumnNames[i],
		Expected:   want,
		Actual:     storedTypeName(raw),
	}
}

// storedTypeName describes the backend's storage class for diagnostics.
func storedTypeName(raw any) string {
	switch raw.(type) {
	case nil:
		return "NULL"
	case int64, bool:
		return "INTEGER"
	case float64:
		return "REAL"
	case string:
		return "TEXT"
	case []byte:
		return "BLOB"
	default:
		return fmt.Sprintf("%T", raw)
	}
}

// translate maps driver failures the engine must recognize onto the typed
// error taxonomy; everything else passes through opaquely.
func translate(err error, schema object.Schema) error {
	var se sqlite3.Error
	if errors.As(err, &se) {
		if se.Code == sqlite3.ErrBusy || se.Code == sqlite3.ErrLocked {
			return fmt.Errorf("%w: %v", ErrLockConflict, err)
		}
	}
	if msg := err.Error(); hasMissingColumnMsg(msg) {
		return missingColumn(msg, schema)
	}
	return err
}

func hasMissingColumnMsg(msg string) bool {
	return strings.Contains(msg, "no such column") ||
		strings.Contains(msg, "has no column named")
}

// missingColumn resolves the raw column name at the tail of the driver
// message against the schema's declared columns.
func missingColumn(msg string, schema object.Schema) error {
	fields := strings.Fields(msg)
	if len(fields) == 0 {
		return errors.New(msg)
	}
	raw := fields[len(fields)-1]
	column, i, ok := schema.MatchColumn(raw)
	if !ok {
		return fmt.Errorf("unknown column %q not declared by %s: %s", raw, schema.TypeName, msg)
	}
	return &MissingColumnError{
		TypeName:   schema.TypeName,
		FieldName:  schema.FieldNames[i],
		TableName:  schema.TableName,
		ColumnName: column,
	}
}
