package models

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// UnknownColumnError is returned when a sort key or projection names a
// column that no record has.
type UnknownColumnError struct {
	Column string
}

func (e UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown column %q", e.Column)
}

// Table is a rectangular view over a set of records. Every row has one cell
// per header column.
type Table struct {
	Header []string
	Rows   [][]interface{}
}

// Assemble builds a table whose columns are the sorted union of all field
// names. Missing fields become empty strings.
func Assemble(records []Record) *Table {
	seen := map[string]bool{}
	header := []string{}
	for _, r := range records {
		for k := range r {
			if !seen[k] {
				seen[k] = true
				header = append(header, k)
			}
		}
	}
	sort.Strings(header)

	t := &Table{Header: header, Rows: make([][]interface{}, 0, len(records))}
	for _, r := range records {
		row := make([]interface{}, len(header))
		for i, col := range header {
			v, ok := r[col]
			if !ok {
				v = ""
			}
			row[i] = v
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Index returns the position of col in the header.
func (t *Table) Index(col string) (int, error) {
	for i, h := range t.Header {
		if h == col {
			return i, nil
		}
	}
	return -1, UnknownColumnError{Column: col}
}

// SortBy stably reorders the rows by the given keys. A key prefixed with
// "_" sorts descending. Negative numbers are keyed on 100 times their
// magnitude, so they follow the positives. Booleans count as 1 and 0.
// Other non-numeric cells always come first, whatever the direction.
func (t *Table) SortBy(keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	indices := make([]int, len(keys))
	signs := make([]float64, len(keys))
	for i, k := range keys {
		signs[i] = 1
		if strings.HasPrefix(k, "_") {
			k = k[1:]
			signs[i] = -1
		}
		idx, err := t.Index(k)
		if err != nil {
			return err
		}
		indices[i] = idx
	}

	composite := make([][]float64, len(t.Rows))
	for r, row := range t.Rows {
		key := make([]float64, len(indices))
		for i, idx := range indices {
			key[i] = sortKey(row[idx], signs[i])
		}
		composite[r] = key
	}

	order := make([]int, len(t.Rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return lessTuple(composite[order[a]], composite[order[b]])
	})

	rows := make([][]interface{}, len(t.Rows))
	for i, o := range order {
		rows[i] = t.Rows[o]
	}
	t.Rows = rows
	return nil
}

func sortKey(v interface{}, sign float64) float64 {
	// flags from extra info sort as 1 and 0
	if b, ok := v.(bool); ok {
		if b {
			return sign
		}
		return 0
	}
	x, ok := Numeric(v)
	if !ok || math.IsNaN(x) {
		return math.Inf(-1)
	}
	if x < 0 {
		x = -100 * x
	}
	return sign * x
}

func lessTuple(a, b []float64) bool {
	for i := range a {
		if a[i] < b[i] {
			return true
		}
		if a[i] > b[i] {
			return false
		}
	}
	return false
}

// Project reduces the header and every row to columns, in that order.
func (t *Table) Project(columns []string) error {
	if len(columns) == 0 {
		return nil
	}
	indices := make([]int, len(columns))
	for i, c := range columns {
		idx, err := t.Index(c)
		if err != nil {
			return err
		}
		indices[i] = idx
	}
	t.keep(indices)
	return nil
}

// HidePrefix drops every column whose name starts with prefix.
func (t *Table) HidePrefix(prefix string) {
	indices := []int{}
	for i, h := range t.Header {
		if !strings.HasPrefix(h, prefix) {
			indices = append(indices, i)
		}
	}
	t.keep(indices)
}

func (t *Table) keep(indices []int) {
	header := make([]string, len(indices))
	for i, idx := range indices {
		header[i] = t.Header[idx]
	}
	for r, row := range t.Rows {
		out := make([]interface{}, len(indices))
		for i, idx := range indices {
			out[i] = row[idx]
		}
		t.Rows[r] = out
	}
	t.Header = header
}
