package data

import "fmt"

// DataType enumerates the five primitive column kinds supported by the
// mapping layer.
type DataType int

const (
	TypeString DataType = iota
	TypeBytes
	TypeInt64
	TypeFloat64
	TypeBool
)

// SQLType returns the SQLite column type name used in generated DDL.
func (t DataType) SQLType() string {
	switch t {
	case TypeString:
		return "TEXT"
	case TypeBytes:
		return "BLOB"
	case TypeInt64:
		return "BIGINT"
	case TypeFloat64:
		return "REAL"
	case TypeBool:
		return "TINYINT"
	default:
		panic(fmt.Sprintf("data: unknown DataType %d", int(t)))
	}
}

// GoType returns the canonical Go source type name for the kind. This is the
// reverse-lookup name the code-generation collaborator matches field
// declarations against.
func (t DataType) GoType() string {
	switch t {
	case TypeString:
		return "string"
	case TypeBytes:
		return "[]byte"
	case TypeInt64:
		return "int64"
	case TypeFloat64:
		return "float64"
	case TypeBool:
		return "bool"
	default:
		panic(fmt.Sprintf("data: unknown DataType %d", int(t)))
	}
}

// String implements fmt.Stringer, using the Go source type name.
func (t DataType) String() string {
	return t.GoType()
}

// DataTypeForGoType maps a Go source type name back to its DataType.
// Returns false for types outside the supported set.
func DataTypeForGoType(name string) (DataType, bool) {
	switch name {
	case "string":
		return TypeString, true
	case "[]byte":
		return TypeBytes, true
	case "int64":
		return TypeInt64, true
	case "float64":
		return TypeFloat64, true
	case "bool":
		return TypeBool, true
	default:
		return 0, false
	}
}
