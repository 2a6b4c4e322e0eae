package model

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

type MatrixRow struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type SubColumn struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type ColumnGroup struct {
	ID         string      `json:"id"`
	Label      string      `json:"label"`
	SubColumns []SubColumn `json:"subColumns"`
}

// Matrix is the row and column structure of a side-by-side question.
// Resizing keeps existing entries by position and synthesizes the rest,
// so labels typed before a count change survive it.
type Matrix struct {
	Rows    []MatrixRow   `json:"rows"`
	Columns []ColumnGroup `json:"columns"`
}

func newRow(i int) MatrixRow {
	return MatrixRow{ID: NewID(), Label: fmt.Sprintf("Item %d", i+1)}
}

func newSubColumn(i int) SubColumn {
	return SubColumn{ID: NewID(), Label: fmt.Sprintf("Option %d", i+1)}
}

func newColumnGroup(i, subColumns int) ColumnGroup {
	g := ColumnGroup{ID: NewID(), Label: fmt.Sprintf("Column %d", i+1)}
	for j := 0; j < subColumns; j++ {
		g.SubColumns = append(g.SubColumns, newSubColumn(j))
	}
	return g
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// SetRowCount resizes the row list to n (at least 1).
func (m *Matrix) SetRowCount(n int) []MatrixRow {
	n = atLeastOne(n)
	rows := make([]MatrixRow, n)
	for i := range rows {
		if i < len(m.Rows) {
			rows[i] = m.Rows[i]
		} else {
			rows[i] = newRow(i)
		}
	}
	m.Rows = rows
	return rows
}

// SetColumnGroupCount resizes the group list to n (at least 1). Each new
// group gets a single sub-column.
func (m *Matrix) SetColumnGroupCount(n int) []ColumnGroup {
	n = atLeastOne(n)
	columns := make([]ColumnGroup, n)
	for i := range columns {
		if i < len(m.Columns) {
			columns[i] = m.Columns[i]
		} else {
			columns[i] = newColumnGroup(i, 1)
		}
	}
	m.Columns = columns
	return columns
}

// SetSubColumnCount resizes one group's sub-columns to n (at least 1).
func (m *Matrix) SetSubColumnCount(columnGroupID string, n int) error {
	g, err := m.group(columnGroupID)
	if err != nil {
		return err
	}

	n = atLeastOne(n)
	subColumns := make([]SubColumn, n)
	for i := range subColumns {
		if i < len(g.SubColumns) {
			subColumns[i] = g.SubColumns[i]
		} else {
			subColumns[i] = newSubColumn(i)
		}
	}
	g.SubColumns = subColumns
	return nil
}

func (m *Matrix) SetRowLabel(rowID, label string) error {
	_, i, ok := lo.FindIndexOf(m.Rows, func(r MatrixRow) bool { return r.ID == rowID })
	if !ok {
		return notFound("row", rowID)
	}
	m.Rows[i].Label = label
	return nil
}

func (m *Matrix) SetColumnGroupLabel(columnGroupID, label string) error {
	g, err := m.group(columnGroupID)
	if err != nil {
		return err
	}
	g.Label = label
	return nil
}

func (m *Matrix) SetSubColumnLabel(columnGroupID, subColumnID, label string) error {
	g, err := m.group(columnGroupID)
	if err != nil {
		return err
	}
	_, i, ok := lo.FindIndexOf(g.SubColumns, func(s SubColumn) bool { return s.ID == subColumnID })
	if !ok {
		return notFound("sub-column", subColumnID)
	}
	g.SubColumns[i].Label = label
	return nil
}

func (m *Matrix) group(id string) (*ColumnGroup, error) {
	_, i, ok := lo.FindIndexOf(m.Columns, func(g ColumnGroup) bool { return g.ID == id })
	if !ok {
		return nil, notFound("column group", id)
	}
	return &m.Columns[i], nil
}

func (m *Matrix) HasRow(rowID string) bool {
	return lo.ContainsBy(m.Rows, func(r MatrixRow) bool { return r.ID == rowID })
}

// HasCell reports whether rowID and subColumnID both exist in the matrix.
func (m *Matrix) HasCell(rowID, subColumnID string) bool {
	if !m.HasRow(rowID) {
		return false
	}
	return lo.ContainsBy(m.Columns, func(g ColumnGroup) bool {
		return lo.ContainsBy(g.SubColumns, func(s SubColumn) bool { return s.ID == subColumnID })
	})
}

func (m *Matrix) RowIDs() []string {
	return lo.Map(m.Rows, func(r MatrixRow, _ int) string { return r.ID })
}

func (m *Matrix) Clone() *Matrix {
	c := &Matrix{}
	if m.Rows != nil {
		c.Rows = append([]MatrixRow{}, m.Rows...)
	}
	if m.Columns != nil {
		c.Columns = make([]ColumnGroup, len(m.Columns))
		for i, g := range m.Columns {
			c.Columns[i] = g
			if g.SubColumns != nil {
				c.Columns[i].SubColumns = append([]SubColumn{}, g.SubColumns...)
			}
		}
	}
	return c
}

// validate keeps every cell token unambiguous: row and sub-column ids are
// unique, non-empty and colon-free.
func (m *Matrix) validate() error {
	rows := make(map[string]bool, len(m.Rows))
	for _, r := range m.Rows {
		if err := checkCellID("row", r.ID, rows); err != nil {
			return err
		}
	}
	groups := make(map[string]bool, len(m.Columns))
	subColumns := map[string]bool{}
	for _, g := range m.Columns {
		if g.ID == "" || groups[g.ID] {
			return fmt.Errorf("column group id %q missing or repeated: %w", g.ID, ErrInvalidConfig)
		}
		groups[g.ID] = true
		if len(g.SubColumns) == 0 {
			return fmt.Errorf("column group %q has no sub-columns: %w", g.ID, ErrInvalidConfig)
		}
		for _, sc := range g.SubColumns {
			if err := checkCellID("sub-column", sc.ID, subColumns); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkCellID(kind, id string, seen map[string]bool) error {
	if id == "" || strings.Contains(id, ":") || seen[id] {
		return fmt.Errorf("%s id %q is empty, repeated or contains ':': %w", kind, id, ErrInvalidConfig)
	}
	seen[id] = true
	return nil
}
