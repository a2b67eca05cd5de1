package models

import "fmt"

// FieldType is the column type of a synced table.
type FieldType int

const (
	FieldInt FieldType = iota
	FieldReal
	FieldText
	FieldBool
	FieldBytes
	FieldAsset
	FieldAssets
)

var fieldTypeNames = [...]string{
	FieldInt:    "int",
	FieldReal:   "real",
	FieldText:   "text",
	FieldBool:   "bool",
	FieldBytes:  "bytes",
	FieldAsset:  "asset",
	FieldAssets: "assets",
}

func (t FieldType) String() string {
	if t < 0 || int(t) >= len(fieldTypeNames) {
		return fmt.Sprintf("FieldType(%d)", int(t))
	}
	return fieldTypeNames[t]
}

// ParseFieldType converts a column type name like "text" into a FieldType.
func ParseFieldType(s string) (FieldType, error) {
	for i, name := range fieldTypeNames {
		if name == s {
			return FieldType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown field type %q", s)
}

// Field describes a table column.
type Field struct {
	Name       string    `json:"name"`
	Type       FieldType `json:"type"`
	PrimaryKey bool      `json:"primary_key"`
	Nullable   bool      `json:"nullable"`
}

// TableSchema describes a synced table.
type TableSchema struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// PrimaryKeys returns primary key column names in declaration order.
func (s *TableSchema) PrimaryKeys() []string {
	var pks []string
	for _, f := range s.Fields {
		if f.PrimaryKey {
			pks = append(pks, f.Name)
		}
	}
	return pks
}

// AssetFields returns names of asset bearing columns.
func (s *TableSchema) AssetFields() []string {
	var out []string
	for _, f := range s.Fields {
		if f.Type == FieldAsset || f.Type == FieldAssets {
			out = append(out, f.Name)
		}
	}
	return out
}

// Compatible reports whether every cloud column exists locally with the same type
// and the primary keys match.
func (s *TableSchema) Compatible(cloud *TableSchema) bool {
	local := make(map[string]Field, len(s.Fields))
	for _, f := range s.Fields {
		local[f.Name] = f
	}
	for _, cf := range cloud.Fields {
		lf, ok := local[cf.Name]
		if !ok || lf.Type != cf.Type || lf.PrimaryKey != cf.PrimaryKey {
			return false
		}
	}
	return len(s.PrimaryKeys()) == len(cloud.PrimaryKeys())
}

// ChangeType is the kind of a change reported to data observers.
type ChangeType int

const (
	ChangeInsert ChangeType = iota
	ChangeUpdate
	ChangeDelete
)

// ChangedData accumulates primary keys of rows changed by a sync batch.
type ChangedData struct {
	Rows   map[ChangeType][][]any
	Table  string
	Fields []string
}

// NewChangedData creates an empty change set for a table.
func NewChangedData(table string, fields []string) *ChangedData {
	return &ChangedData{
		Table:  table,
		Fields: fields,
		Rows:   make(map[ChangeType][][]any),
	}
}

// Add records primary key values of a changed row.
func (c *ChangedData) Add(t ChangeType, values []any) {
	c.Rows[t] = append(c.Rows[t], values)
}

// Empty reports whether no change was recorded.
func (c *ChangedData) Empty() bool {
	for _, rows := range c.Rows {
		if len(rows) > 0 {
			return false
		}
	}
	return true
}

// Count returns the number of recorded changes of the given kind.
func (c *ChangedData) Count(t ChangeType) int {
	return len(c.Rows[t])
}
