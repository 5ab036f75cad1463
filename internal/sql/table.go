/*
 * Copyright (c) 2026 Firefly Software Solutions Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

/*
Package sql contains the table model for memdb.

Data Model:
===========

	Table
	 ├── Name
	 ├── Columns []ColumnInfo   declared order
	 └── Rows    []Row          insertion order

	ColumnInfo
	 ├── Name, Type (int32 | bool | string[N] | bytes[N])
	 ├── Key, Unique, Autoincrement
	 ├── Default                Null when none was declared
	 └── AutoincrementCounter   next value handed out, never decreases

	Row
	 └── Values []Value         one per column, aligned with Columns

A Table is owned by the Database that holds it. SELECT results are separate
tables built with copies of the source columns and values.
*/
package sql

import (
	"math"

	ferrors "memdb/internal/errors"
)

// SelectTableName is the name given to every SELECT result table.
const SelectTableName = "select_table"

// ColumnInfo describes one column of a table.
type ColumnInfo struct {
	Name          string
	Type          ColumnType
	Key           bool
	Unique        bool
	Autoincrement bool
	Default       Value

	// AutoincrementCounter is the value the next insert without an explicit
	// value for this column receives.
	AutoincrementCounter int32
}

// IsUnique reports whether values in the column must be distinct.
func (c *ColumnInfo) IsUnique() bool {
	return c.Key || c.Unique
}

// HasDefault reports whether a default value was declared.
func (c *ColumnInfo) HasDefault() bool {
	return !c.Default.IsNull()
}

// nextAutoincrement returns the value the counter would hand out next,
// without advancing it.
func (c *ColumnInfo) nextAutoincrement() (Value, error) {
	if c.AutoincrementCounter == math.MaxInt32 {
		return Value{}, ferrors.OutOfRange("autoincrement counter of " + c.Name)
	}
	return Int32Value(c.AutoincrementCounter), nil
}

// Row is one record, positionally aligned with its table's columns.
type Row struct {
	Values []Value
}

// Clone returns a deep copy of the row.
func (r Row) Clone() Row {
	values := make([]Value, len(r.Values))
	for i, v := range r.Values {
		values[i] = v.Clone()
	}
	return Row{Values: values}
}

// Table holds a schema and its rows.
type Table struct {
	Name    string
	Columns []ColumnInfo
	Rows    []Row
}

// NewTable creates an empty table.
func NewTable(name string, columns []ColumnInfo) *Table {
	return &Table{Name: name, Columns: columns}
}

// Column resolves a column by name. It returns the column's position and a
// pointer into the table's column list.
func (t *Table) Column(name string) (int, *ColumnInfo, error) {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return i, &t.Columns[i], nil
		}
	}
	return -1, nil, ferrors.ColumnNotFound(name, t.Name)
}

// ColumnNames returns the column names in declared order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Clone returns a deep copy of the table, counters and defaults included.
func (t *Table) Clone() *Table {
	columns := make([]ColumnInfo, len(t.Columns))
	for i, c := range t.Columns {
		c.Default = c.Default.Clone()
		columns[i] = c
	}
	rows := make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = r.Clone()
	}
	return &Table{Name: t.Name, Columns: columns, Rows: rows}
}

// findDuplicate reports whether any row other than skip holds v in column col.
// skip may be -1 to check every row.
func (t *Table) findDuplicate(col int, v Value, skip int) bool {
	for i, row := range t.Rows {
		if i == skip {
			continue
		}
		if row.Values[col].Equal(v) {
			return true
		}
	}
	return false
}
