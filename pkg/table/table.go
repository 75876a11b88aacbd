// Package table holds tabular data with a fixed column schema and renders it as
// width-aware text, CSV, HTML or Markdown.
package table

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// DefaultColumnLimit caps a column's width unless the table or the column says otherwise.
const DefaultColumnLimit = 40

// ErrForeignKey is matched by every *ForeignKeyError.
var ErrForeignKey = errors.New("key not in table schema")

// ForeignKeyError reports a row key, or a column name, that the table does not have.
type ForeignKeyError struct {
	Table string
	Key   string
}

func (e *ForeignKeyError) Error() string {
	return fmt.Sprintf("table %q has no column %q", e.Table, e.Key)
}

func (e *ForeignKeyError) Is(target error) bool {
	return target == ErrForeignKey
}

// Cell is one keyed value of a row.
type Cell struct {
	Key   string
	Value any
}

// Row is an ordered list of cells. Order matters only when the schema is derived from
// rows: keys become columns in first-seen order.
type Row []Cell

// R builds a Row from alternating keys and values: R("name", "x", "size", 3).
// A trailing key without a value gets a nil value.
func R(kv ...any) Row {
	row := make(Row, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		c := Cell{Key: fmt.Sprint(kv[i])}
		if i+1 < len(kv) {
			c.Value = kv[i+1]
		}
		row = append(row, c)
	}
	return row
}

// Table is a named list of rows sharing one column schema.
type Table struct {
	Name string
	// ColumnLimit caps every column without a limit of its own. Zero disables it.
	ColumnLimit int

	columns []string
	index   map[string]int
	limits  map[string]int
	rows    [][]string
}

// New creates an empty table with an explicit schema.
func New(name string, columns ...string) *Table {
	t := &Table{
		Name:        name,
		ColumnLimit: DefaultColumnLimit,
		index:       make(map[string]int, len(columns)),
		limits:      make(map[string]int),
	}
	for _, c := range columns {
		t.addColumn(c)
	}
	return t
}

// FromRows creates a table whose columns are the union of the rows' keys in first-seen
// order. Keys a row lacks render as empty cells.
func FromRows(name string, rows ...Row) *Table {
	t := New(name)
	for _, r := range rows {
		for _, c := range r {
			t.addColumn(c.Key)
		}
	}
	for _, r := range rows {
		// Cannot fail: every key is in the schema.
		_ = t.AddRow(r)
	}
	return t
}

func (t *Table) addColumn(name string) {
	if _, ok := t.index[name]; ok {
		return
	}
	t.index[name] = len(t.columns)
	t.columns = append(t.columns, name)
}

// AddRow appends a row. A key outside the schema fails with *ForeignKeyError and the
// table is left unchanged.
func (t *Table) AddRow(r Row) error {
	vals := make([]string, len(t.columns))
	for _, c := range r {
		i, ok := t.index[c.Key]
		if !ok {
			return &ForeignKeyError{Table: t.Name, Key: c.Key}
		}
		vals[i] = format(c.Value)
	}
	t.rows = append(t.rows, vals)
	return nil
}

// AddValues appends a row given positionally in column order.
func (t *Table) AddValues(values ...any) error {
	if len(values) > len(t.columns) {
		return fmt.Errorf("table %q: %d values for %d columns", t.Name, len(values), len(t.columns))
	}
	vals := make([]string, len(t.columns))
	for i, v := range values {
		vals[i] = format(v)
	}
	t.rows = append(t.rows, vals)
	return nil
}

// SetColumnLimit caps one column's width, overriding ColumnLimit. Zero removes the cap.
func (t *Table) SetColumnLimit(column string, limit int) error {
	if _, ok := t.index[column]; !ok {
		return &ForeignKeyError{Table: t.Name, Key: column}
	}
	t.limits[column] = limit
	return nil
}

func (t *Table) limit(column string) int {
	if l, ok := t.limits[column]; ok {
		return l
	}
	return t.ColumnLimit
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	return slices.Clone(t.columns)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Values returns the formatted cell values of every row, in column order.
func (t *Table) Values() [][]string {
	out := make([][]string, len(t.rows))
	for i, r := range t.rows {
		out[i] = slices.Clone(r)
	}
	return out
}

// format renders a cell value. Nil renders empty; everything else via fmt, so Stringers
// such as file sizes print naturally. Tabs become spaces and carriage returns are dropped.
func format(v any) string {
	if v == nil {
		return ""
	}
	s := fmt.Sprint(v)
	s = strings.ReplaceAll(s, "\t", " ")
	return strings.ReplaceAll(s, "\r", "")
}
