package object

import (
	"strings"

	"github.com/roach88/stow/data"
)

// Schema is the immutable per-type description of a mapped type's relational
// layout. It is derived once per type by the code-generation collaborator and
// never mutated afterwards.
//
// FieldNames, ColumnNames, and ColumnTypes are parallel lists: index i
// describes one declared field across all three. Implementations must keep
// them the same length.
type Schema struct {
	// TableName is the SQL table the type persists into.
	TableName string

	// TypeName is the mapped type's name, used in diagnostics only.
	TypeName string

	// FieldNames are the declared field names, used in diagnostics only.
	FieldNames []string

	// ColumnNames are the SQL column names, in declared field order.
	ColumnNames []string

	// ColumnTypes are the declared column kinds, in declared field order.
	ColumnTypes []data.DataType
}

// Columns reports the number of declared columns. The identity column is not
// counted; it is implicit in every table.
func (s Schema) Columns() int {
	return len(s.ColumnTypes)
}

// ColumnList joins the column names with the given separator, for SELECT and
// INSERT column lists.
func (s Schema) ColumnList(sep string) string {
	return strings.Join(s.ColumnNames, sep)
}

// UpdateList renders the SET clause body for an update: "a = ?,b = ?".
func (s Schema) UpdateList() string {
	var b strings.Builder
	for i, col := range s.ColumnNames {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(col)
		b.WriteString(" = ?")
	}
	return b.String()
}

// DDL renders the column-definition body for CREATE TABLE. The
// auto-incrementing identity column always comes first.
func (s Schema) DDL() string {
	var b strings.Builder
	b.WriteString("id INTEGER PRIMARY KEY AUTOINCREMENT")
	for i, col := range s.ColumnNames {
		b.WriteByte(',')
		b.WriteString(col)
		b.WriteByte(' ')
		b.WriteString(s.ColumnTypes[i].SQLType())
	}
	return b.String()
}

// MatchColumn resolves a raw column name reported by the backend against the
// declared column list, using substring containment because drivers may
// qualify the name (e.g. "users.name"). Returns the declared column name and
// its index. Used to translate backend unknown-column errors into typed
// diagnostics.
func (s Schema) MatchColumn(raw string) (column string, index int, ok bool) {
	for i, col := range s.ColumnNames {
		if strings.Contains(col, raw) || strings.Contains(raw, col) {
			return col, i, true
		}
	}
	return "", 0, false
}
