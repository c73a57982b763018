// Package schema defines the snapshot a diagram is built from: tables with
// their columns and the foreign keys between them.
//
// Snapshots are produced by whatever retrieves metadata from a live database
// and are read here from JSON or TOML:
//
//	{
//	  "tables": [
//	    {"name": "orders", "columns": [{"name": "id", "type": "int", "key": "PRI"}]}
//	  ],
//	  "foreign_keys": [
//	    {"table": "orders", "column": "customer_id",
//	     "referenced_table": "customers", "referenced_column": "id",
//	     "constraint": "fk_orders_customer"}
//	  ]
//	}
//
// Column records may also be given flat, one per (table, column) pair, under
// "columns"; [Snapshot.Normalize] folds them into their tables.
package schema

import (
	"slices"
	"strings"

	"github.com/matzehuels/schemaview/pkg/errors"
)

// KeyType is the key marker of a column as reported by the database, e.g.
// "PRI" for a primary key column. Only primary keys affect the diagram.
type KeyType string

// Key markers.
const (
	KeyNone    KeyType = ""
	KeyPrimary KeyType = "PRI"
)

// IsPrimary reports whether the marker denotes a primary key column.
// "PRI", "PK" and "PRIMARY" are accepted in any case.
func (k KeyType) IsPrimary() bool {
	switch strings.ToUpper(strings.TrimSpace(string(k))) {
	case "PRI", "PK", "PRIMARY":
		return true
	}
	return false
}

// Column is a single column of a table.
type Column struct {
	Name string  `json:"name" toml:"name"`
	Type string  `json:"type" toml:"type"`
	Key  KeyType `json:"key,omitempty" toml:"key"`
}

// Table is a table and its columns in declaration order.
type Table struct {
	Name    string   `json:"name" toml:"name"`
	Columns []Column `json:"columns,omitempty" toml:"columns"`
}

// ColumnRecord is a flat column record naming its table.
type ColumnRecord struct {
	Table  string  `json:"table" toml:"table"`
	Column string  `json:"column" toml:"column"`
	Type   string  `json:"type" toml:"type"`
	Key    KeyType `json:"key,omitempty" toml:"key"`
}

// ForeignKey references RefTable.RefColumn from Table.Column. Constraint may
// be empty for unnamed constraints.
type ForeignKey struct {
	Table      string `json:"table" toml:"table"`
	Column     string `json:"column" toml:"column"`
	RefTable   string `json:"referenced_table" toml:"referenced_table"`
	RefColumn  string `json:"referenced_column" toml:"referenced_column"`
	Constraint string `json:"constraint,omitempty" toml:"constraint"`
}

// Snapshot is the metadata of one schema at one point in time.
type Snapshot struct {
	Tables      []Table        `json:"tables" toml:"tables"`
	Columns     []ColumnRecord `json:"columns,omitempty" toml:"columns"`
	ForeignKeys []ForeignKey   `json:"foreign_keys,omitempty" toml:"foreign_keys"`
}

// Clone returns a deep copy of s.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Tables:      make([]Table, len(s.Tables)),
		Columns:     slices.Clone(s.Columns),
		ForeignKeys: slices.Clone(s.ForeignKeys),
	}
	for i, t := range s.Tables {
		out.Tables[i] = Table{Name: t.Name, Columns: slices.Clone(t.Columns)}
	}
	return out
}

// Normalize folds flat column records into their tables, in record order
// after any columns already declared on the table. Records naming a table
// that is not in the snapshot are dropped. It returns s for chaining.
func (s *Snapshot) Normalize() *Snapshot {
	if len(s.Columns) == 0 {
		return s
	}
	index := make(map[string]int, len(s.Tables))
	for i, t := range s.Tables {
		if _, dup := index[t.Name]; !dup {
			index[t.Name] = i
		}
	}
	for _, rec := range s.Columns {
		i, ok := index[rec.Table]
		if !ok {
			continue
		}
		s.Tables[i].Columns = append(s.Tables[i].Columns, Column{Name: rec.Column, Type: rec.Type, Key: rec.Key})
	}
	s.Columns = nil
	return s
}

// Validate checks that every table has a name and that names are unique.
// Dangling foreign keys are not an error; the diagram builder drops them.
func (s *Snapshot) Validate() error {
	seen := make(map[string]struct{}, len(s.Tables))
	for i, t := range s.Tables {
		if strings.TrimSpace(t.Name) == "" {
			return errors.New(errors.ErrCodeInvalidSnapshot, "table %d has no name", i)
		}
		if _, dup := seen[t.Name]; dup {
			return errors.New(errors.ErrCodeInvalidSnapshot, "duplicate table %q", t.Name)
		}
		seen[t.Name] = struct{}{}
	}
	return nil
}

// TableNames returns the table names in snapshot order.
func (s *Snapshot) TableNames() []string {
	names := make([]string, len(s.Tables))
	for i, t := range s.Tables {
		names[i] = t.Name
	}
	return names
}

// Table returns the named table. Unknown names yield an UNKNOWN_TABLE error
// with a suggestion when a close match exists.
func (s *Snapshot) Table(name string) (*Table, error) {
	for i := range s.Tables {
		if s.Tables[i].Name == name {
			return &s.Tables[i], nil
		}
	}
	return nil, errors.NotFound(errors.ErrCodeUnknownTable, "table", name, s.TableNames())
}

// Column returns the index of the named column, or -1.
func (t *Table) Column(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}
