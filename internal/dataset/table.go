package dataset

import "strings"

// Record is one dataset row keyed by column name.
type Record map[string]string

// Table is a parsed dataset. Every row has one value per column.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the index of the column matching name case-insensitively, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if strings.EqualFold(strings.TrimSpace(col), name) {
			return i
		}
	}
	return -1
}

// Values returns the values of column idx in file order.
func (t *Table) Values(idx int) []string {
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[idx]
	}
	return values
}

// LookupColumn returns the values of the first of names present in the table.
func (t *Table) LookupColumn(names ...string) ([]string, string, bool) {
	for _, name := range names {
		if idx := t.ColumnIndex(name); idx >= 0 {
			return t.Values(idx), t.Columns[idx], true
		}
	}
	return nil, "", false
}

// Preview returns at most n rows as records, in file order.
func (t *Table) Preview(n int) []Record {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	records := make([]Record, 0, n)
	for _, row := range t.Rows[:n] {
		record := make(Record, len(t.Columns))
		for i, col := range t.Columns {
			record[col] = row[i]
		}
		records = append(records, record)
	}
	return records
}
