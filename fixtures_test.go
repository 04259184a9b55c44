package stow

import (
	"github.com/roach88/stow/data"
	"github.com/roach88/stow/object"
	"github.com/roach88/stow/storage"
)

// user is the canonical mapped type for engine tests. Its Object
// implementation is shaped exactly like code-generated output.
type user struct {
	Name  string
	Count int64
}

func (u *user) Schema() object.Schema {
	return object.Schema{
		TableName:   "users",
		TypeName:    "user",
		FieldNames:  []string{"Name", "Count"},
		ColumnNames: []string{"name", "count"},
		ColumnTypes: []data.DataType{data.TypeString, data.TypeInt64},
	}
}

func (u *user) Row() data.Row {
	return data.Row{data.String(u.Name), data.Int64(u.Count)}
}

func (u *user) Load(row data.Row) {
	u.Name = data.AsString(row[0])
	u.Count = data.AsInt64(row[1])
}

// gadget shares no schema with user; used to exercise the checked downcast.
type gadget struct {
	Label string
}

func (g *gadget) Schema() object.Schema {
	return object.Schema{
		TableName:   "gadgets",
		TypeName:    "gadget",
		FieldNames:  []string{"Label"},
		ColumnNames: []string{"label"},
		ColumnTypes: []data.DataType{data.TypeString},
	}
}

func (g *gadget) Row() data.Row {
	return data.Row{data.String(g.Label)}
}

func (g *gadget) Load(row data.Row) {
	g.Label = data.AsString(row[0])
}

// recordingTx is an in-memory storage.Tx that counts every operation, for
// asserting exactly which writes a commit produces.
type recordingTx struct {
	tables map[string]bool
	rows   map[data.ObjectID]data.Row
	nextID data.ObjectID

	inserts int
	updates int
	deletes int
	selects int

	commits   int
	rollbacks int

	failUpdate error
	failDelete error
}

func newRecordingTx() *recordingTx {
	return &recordingTx{
		tables: make(map[string]bool),
		rows:   make(map[data.ObjectID]data.Row),
	}
}

func (m *recordingTx) TableExists(table string) (bool, error) {
	return m.tables[table], nil
}

func (m *recordingTx) CreateTable(schema object.Schema) error {
	m.tables[schema.TableName] = true
	return nil
}

func (m *recordingTx) InsertRow(schema object.Schema, row data.Row) (data.ObjectID, error) {
	m.inserts++
	m.nextID++
	m.rows[m.nextID] = row
	return m.nextID, nil
}

func (m *recordingTx) UpdateRow(id data.ObjectID, schema object.Schema, row data.Row) error {
	if m.failUpdate != nil {
		return m.failUpdate
	}
	m.updates++
	m.rows[id] = row
	return nil
}

func (m *recordingTx) SelectRow(id data.ObjectID, schema object.Schema) (data.Row, error) {
	row, ok := m.rows[id]
	if !ok {
		return nil, &storage.NotFoundError{ID: id, TypeName: schema.TypeName}
	}
	m.selects++
	return row, nil
}

func (m *recordingTx) DeleteRow(id data.ObjectID, schema object.Schema) error {
	if m.failDelete != nil {
		return m.failDelete
	}
	m.deletes++
	delete(m.rows, id)
	return nil
}

func (m *recordingTx) Commit() error {
	m.commits++
	return nil
}

func (m *recordingTx) Rollback() error {
	m.rollbacks++
	return nil
}
