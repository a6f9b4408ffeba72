package data

import (
	"fmt"
	"math"
)

// BarItem is one bar value. Rotation is in degrees about the vertical axis.
type BarItem struct {
	Value    float64
	Rotation float64
}

type BarRow []BarItem

// BarProxy owns the rows of a bar series.
type BarProxy struct {
	changeSet
	rows         []BarRow
	rowLabels    []string
	columnLabels []string
}

func NewBarProxy() *BarProxy {
	return &BarProxy{}
}

// NewBarProxyFromValues builds a proxy from plain values without rotation.
func NewBarProxyFromValues(values [][]float64) *BarProxy {
	p := NewBarProxy()
	rows := make([]BarRow, len(values))
	for i, vs := range values {
		rows[i] = make(BarRow, len(vs))
		for j, v := range vs {
			rows[i][j].Value = v
		}
	}
	p.ResetArray(rows, nil, nil)
	return p
}

func (p *BarProxy) RowCount() int { return len(p.rows) }

// ColumnCount is the length of the longest row.
func (p *BarProxy) ColumnCount() int {
	n := 0
	for _, r := range p.rows {
		if len(r) > n {
			n = len(r)
		}
	}
	return n
}

func (p *BarProxy) ItemCount() int {
	n := 0
	for _, r := range p.rows {
		n += len(r)
	}
	return n
}

func (p *BarProxy) Rows() []BarRow { return p.rows }

func (p *BarProxy) Row(i int) BarRow {
	if i < 0 || i >= len(p.rows) {
		return nil
	}
	return p.rows[i]
}

func (p *BarProxy) ItemAt(row, col int) (BarItem, bool) {
	r := p.Row(row)
	if col < 0 || col >= len(r) {
		return BarItem{}, false
	}
	return r[col], true
}

func (p *BarProxy) RowLabels() []string    { return p.rowLabels }
func (p *BarProxy) ColumnLabels() []string { return p.columnLabels }

func (p *BarProxy) SetRowLabels(labels []string) {
	p.rowLabels = append([]string(nil), labels...)
}

func (p *BarProxy) SetColumnLabels(labels []string) {
	p.columnLabels = append([]string(nil), labels...)
}

// ResetArray replaces the whole data set. Labels are kept when nil.
func (p *BarProxy) ResetArray(rows []BarRow, rowLabels, columnLabels []string) {
	before := p.counts()
	p.rows = copyRows(rows)
	if rowLabels != nil {
		p.SetRowLabels(rowLabels)
	}
	if columnLabels != nil {
		p.SetColumnLabels(columnLabels)
	}
	p.mark(ChangeArrayReset)
	p.markCounts(before)
}

func (p *BarProxy) AddRow(row BarRow, label string) int {
	before := p.counts()
	p.rows = append(p.rows, append(BarRow(nil), row...))
	if label != "" {
		p.setRowLabel(len(p.rows)-1, label)
	}
	p.mark(ChangeRowsAdded)
	p.markCounts(before)
	return len(p.rows) - 1
}

func (p *BarProxy) InsertRow(index int, row BarRow, label string) error {
	if index < 0 || index > len(p.rows) {
		return fmt.Errorf("insert row %d: %w", index, ErrIndexOutOfRange)
	}
	before := p.counts()
	p.rows = append(p.rows, nil)
	copy(p.rows[index+1:], p.rows[index:])
	p.rows[index] = append(BarRow(nil), row...)
	if label != "" && index < len(p.rowLabels) {
		p.rowLabels = append(p.rowLabels, "")
		copy(p.rowLabels[index+1:], p.rowLabels[index:])
		p.rowLabels[index] = label
	} else if label != "" {
		p.setRowLabel(index, label)
	}
	p.mark(ChangeRowsInserted)
	p.markCounts(before)
	return nil
}

func (p *BarProxy) SetRow(index int, row BarRow) error {
	if index < 0 || index >= len(p.rows) {
		return fmt.Errorf("set row %d: %w", index, ErrIndexOutOfRange)
	}
	before := p.counts()
	p.rows[index] = append(BarRow(nil), row...)
	p.mark(ChangeRowsChanged)
	p.markCounts(before)
	return nil
}

func (p *BarProxy) SetItem(row, col int, item BarItem) error {
	r := p.Row(row)
	if col < 0 || col >= len(r) {
		return fmt.Errorf("set item (%d,%d): %w", row, col, ErrIndexOutOfRange)
	}
	r[col] = item
	p.mark(ChangeItemChanged)
	return nil
}

// RemoveRows removes up to count rows starting at index, with their labels.
func (p *BarProxy) RemoveRows(index, count int) error {
	if index < 0 || index >= len(p.rows) || count < 1 {
		return fmt.Errorf("remove rows %d+%d: %w", index, count, ErrIndexOutOfRange)
	}
	end := min(index+count, len(p.rows))
	before := p.counts()
	p.rows = append(p.rows[:index], p.rows[end:]...)
	if index < len(p.rowLabels) {
		p.rowLabels = append(p.rowLabels[:index], p.rowLabels[min(end, len(p.rowLabels)):]...)
	}
	p.mark(ChangeRowsRemoved)
	p.markCounts(before)
	return nil
}

// Limits returns the smallest and largest value, ok is false when empty.
func (p *BarProxy) Limits() (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, r := range p.rows {
		for _, it := range r {
			lo = math.Min(lo, it.Value)
			hi = math.Max(hi, it.Value)
			ok = true
		}
	}
	if !ok {
		return 0, 0, false
	}
	return lo, hi, true
}

type barCounts struct{ rows, cols, items int }

func (p *BarProxy) counts() barCounts {
	return barCounts{p.RowCount(), p.ColumnCount(), p.ItemCount()}
}

func (p *BarProxy) markCounts(before barCounts) {
	after := p.counts()
	if after.rows != before.rows {
		p.mark(ChangeRowCount)
	}
	if after.cols != before.cols {
		p.mark(ChangeColumnCount)
	}
	if after.items != before.items {
		p.mark(ChangeItemCount)
	}
}

func (p *BarProxy) setRowLabel(i int, label string) {
	for len(p.rowLabels) <= i {
		p.rowLabels = append(p.rowLabels, "")
	}
	p.rowLabels[i] = label
}

func copyRows(rows []BarRow) []BarRow {
	out := make([]BarRow, len(rows))
	for i, r := range rows {
		out[i] = append(BarRow(nil), r...)
	}
	return out
}
