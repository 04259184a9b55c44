package object

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/stow/data"
)

// account is a hand-written stand-in for the code-generation collaborator's
// output: one Value per field, in declared order.
type account struct {
	Owner   string
	Balance int64
	Rate    float64
	Frozen  bool
	Note    []byte
}

func (a *account) Schema() Schema {
	return Schema{
		TableName:   "accounts",
		TypeName:    "account",
		FieldNames:  []string{"Owner", "Balance", "Rate", "Frozen", "Note"},
		ColumnNames: []string{"owner", "balance", "rate", "frozen", "note"},
		ColumnTypes: []data.DataType{
			data.TypeString, data.TypeInt64, data.TypeFloat64, data.TypeBool, data.TypeBytes,
		},
	}
}

func (a *account) Row() data.Row {
	return data.Row{
		data.String(a.Owner),
		data.Int64(a.Balance),
		data.Float64(a.Rate),
		data.Bool(a.Frozen),
		data.Bytes(a.Note),
	}
}

func (a *account) Load(row data.Row) {
	a.Owner = data.AsString(row[0])
	a.Balance = data.AsInt64(row[1])
	a.Rate = data.AsFloat64(row[2])
	a.Frozen = data.AsBool(row[3])
	a.Note = data.AsBytes(row[4])
}

func TestObject_RowRoundTrip(t *testing.T) {
	src := &account{
		Owner:   "alice",
		Balance: 1200,
		Rate:    0.015,
		Frozen:  true,
		Note:    []byte{0xde, 0xad},
	}

	var got account
	got.Load(src.Row())

	assert.Equal(t, *src, got)
}

func TestSchema_Columns(t *testing.T) {
	sch := (&account{}).Schema()
	assert.Equal(t, 5, sch.Columns())
	assert.Equal(t, 0, Schema{}.Columns())
}

func TestSchema_ColumnList(t *testing.T) {
	sch := (&account{}).Schema()
	assert.Equal(t, "owner, balance, rate, frozen, note", sch.ColumnList(", "))
	assert.Equal(t, "owner,balance,rate,frozen,note", sch.ColumnList(","))
	assert.Equal(t, "", Schema{}.ColumnList(", "))
}

func TestSchema_UpdateList(t *testing.T) {
	sch := (&account{}).Schema()
	assert.Equal(t, "owner = ?,balance = ?,rate = ?,frozen = ?,note = ?", sch.UpdateList())
	assert.Equal(t, "", Schema{}.UpdateList())
}

func TestSchema_DDL_Golden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	g.Assert(t, "account_ddl", []byte((&account{}).Schema().DDL()))
	g.Assert(t, "empty_ddl", []byte(Schema{}.DDL()))
}

func TestSchema_MatchColumn(t *testing.T) {
	sch := (&account{}).Schema()

	col, i, ok := sch.MatchColumn("balance")
	require.True(t, ok)
	assert.Equal(t, "balance", col)
	assert.Equal(t, 1, i)
	assert.Equal(t, "Balance", sch.FieldNames[i])

	// Drivers may qualify the reported name with the table.
	col, i, ok = sch.MatchColumn("accounts.rate")
	require.True(t, ok)
	assert.Equal(t, "rate", col)
	assert.Equal(t, 2, i)

	_, _, ok = sch.MatchColumn("missing_entirely")
	assert.False(t, ok)
}
