package data

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/datavis3d/internal/logging"
)

// SurfaceItem is one grid vertex.
type SurfaceItem struct {
	X, Y, Z float64
}

func (s SurfaceItem) Vec3() mgl64.Vec3 { return mgl64.Vec3{s.X, s.Y, s.Z} }

type SurfaceRow []SurfaceItem

// SurfaceProxy owns a rectangular grid: every row has the length of row 0.
type SurfaceProxy struct {
	changeSet
	rows []SurfaceRow
}

func NewSurfaceProxy() *SurfaceProxy {
	return &SurfaceProxy{}
}

func (p *SurfaceProxy) RowCount() int      { return len(p.rows) }
func (p *SurfaceProxy) Rows() []SurfaceRow { return p.rows }

func (p *SurfaceProxy) ColumnCount() int {
	if len(p.rows) == 0 {
		return 0
	}
	return len(p.rows[0])
}

func (p *SurfaceProxy) ItemAt(row, col int) (SurfaceItem, bool) {
	if row < 0 || row >= len(p.rows) || col < 0 || col >= len(p.rows[row]) {
		return SurfaceItem{}, false
	}
	return p.rows[row][col], true
}

// ResetArray replaces the grid. Every row must have the length of row 0;
// a ragged array is rejected and the current grid is kept.
func (p *SurfaceProxy) ResetArray(rows []SurfaceRow) error {
	for i, r := range rows {
		if len(r) != len(rows[0]) {
			logging.Logger().Warn("ragged surface array rejected", "row", i, "length", len(r), "columns", len(rows[0]))
			return fmt.Errorf("row %d has %d items, row 0 has %d: %w", i, len(r), len(rows[0]), ErrRaggedRows)
		}
	}
	before := p.shape()
	out := make([]SurfaceRow, len(rows))
	for i, r := range rows {
		out[i] = append(SurfaceRow(nil), r...)
	}
	p.rows = out
	p.mark(ChangeArrayReset)
	p.markShape(before)
	return nil
}

func (p *SurfaceProxy) AddRow(row SurfaceRow) (int, error) {
	if err := p.checkWidth(row); err != nil {
		return -1, err
	}
	before := p.shape()
	p.rows = append(p.rows, append(SurfaceRow(nil), row...))
	p.mark(ChangeRowsAdded)
	p.markShape(before)
	return len(p.rows) - 1, nil
}

func (p *SurfaceProxy) InsertRow(index int, row SurfaceRow) error {
	if index < 0 || index > len(p.rows) {
		return fmt.Errorf("insert row %d: %w", index, ErrIndexOutOfRange)
	}
	if err := p.checkWidth(row); err != nil {
		return err
	}
	before := p.shape()
	p.rows = append(p.rows, nil)
	copy(p.rows[index+1:], p.rows[index:])
	p.rows[index] = append(SurfaceRow(nil), row...)
	p.mark(ChangeRowsInserted)
	p.markShape(before)
	return nil
}

func (p *SurfaceProxy) SetRow(index int, row SurfaceRow) error {
	if index < 0 || index >= len(p.rows) {
		return fmt.Errorf("set row %d: %w", index, ErrIndexOutOfRange)
	}
	if len(row) != p.ColumnCount() {
		return fmt.Errorf("set row %d with %d items: %w", index, len(row), ErrRaggedRows)
	}
	copy(p.rows[index], row)
	p.mark(ChangeRowsChanged)
	return nil
}

func (p *SurfaceProxy) SetItem(row, col int, item SurfaceItem) error {
	if _, ok := p.ItemAt(row, col); !ok {
		return fmt.Errorf("set item (%d,%d): %w", row, col, ErrIndexOutOfRange)
	}
	p.rows[row][col] = item
	p.mark(ChangeItemChanged)
	return nil
}

func (p *SurfaceProxy) RemoveRows(index, count int) error {
	if index < 0 || index >= len(p.rows) || count < 1 {
		return fmt.Errorf("remove rows %d+%d: %w", index, count, ErrIndexOutOfRange)
	}
	before := p.shape()
	end := min(index+count, len(p.rows))
	p.rows = append(p.rows[:index], p.rows[end:]...)
	p.mark(ChangeRowsRemoved)
	p.markShape(before)
	return nil
}

// Limits returns the per axis bounds of the grid.
func (p *SurfaceProxy) Limits() (lo, hi mgl64.Vec3, ok bool) {
	if p.RowCount() == 0 || p.ColumnCount() == 0 {
		return lo, hi, false
	}
	lo = mgl64.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi = mgl64.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, r := range p.rows {
		for _, it := range r {
			v := it.Vec3()
			for k := 0; k < 3; k++ {
				lo[k] = math.Min(lo[k], v[k])
				hi[k] = math.Max(hi[k], v[k])
			}
		}
	}
	return lo, hi, true
}

func (p *SurfaceProxy) checkWidth(row SurfaceRow) error {
	if len(p.rows) > 0 && len(row) != p.ColumnCount() {
		return fmt.Errorf("row with %d items in %d column grid: %w", len(row), p.ColumnCount(), ErrRaggedRows)
	}
	return nil
}

type surfaceShape struct{ rows, cols int }

func (p *SurfaceProxy) shape() surfaceShape {
	return surfaceShape{p.RowCount(), p.ColumnCount()}
}

func (p *SurfaceProxy) markShape(before surfaceShape) {
	after := p.shape()
	if after.rows != before.rows {
		p.mark(ChangeRowCount)
	}
	if after.cols != before.cols {
		p.mark(ChangeColumnCount)
	}
	if after.rows*after.cols != before.rows*before.cols {
		p.mark(ChangeItemCount)
	}
}
