package graph

import (
	"github.com/san-kum/datavis3d/internal/axis"
	"github.com/san-kum/datavis3d/internal/selection"
	"github.com/san-kum/datavis3d/internal/series"
)

// Slice is the 2D cross section through the selected row or column of a
// bar or surface graph.
type Slice struct {
	// Row is set when the slice runs along the selected row; otherwise it
	// runs along the selected column.
	Row   bool
	Index int
	Label string
	// Axis is the axis the slice runs along.
	Axis   axis.Orientation
	Series []SliceSeries
}

// SliceSeries is one series cut by the slice. Selected indexes Values and
// is -1 when the series holds no selected item.
type SliceSeries struct {
	Name      string    `json:"name"`
	Positions []float64 `json:"positions"`
	Values    []float64 `json:"values"`
	Labels    []string  `json:"labels,omitempty"`
	Selected  int       `json:"selected"`
}

// slice builds the cross section for the current selection, or nil when
// nothing is sliced.
func (g *Graph) slice() *Slice {
	if !g.resolver.Slicing() {
		return nil
	}
	sel := g.resolver.Selected()
	mode := g.resolver.Mode()
	sl := &Slice{Row: mode.Has(selection.ModeRow)}
	if sl.Row {
		sl.Index, sl.Axis = sel.Coord.Row, axis.OrientationX
	} else {
		sl.Index, sl.Axis = sel.Coord.Col, axis.OrientationZ
	}

	switch g.opts.Kind {
	case series.KindBar:
		cats := g.axes[2]
		if !sl.Row {
			cats = g.axes[0]
		}
		if l := cats.Labels(); sl.Index < len(l) {
			sl.Label = l[sl.Index]
		}
		for _, s := range g.series {
			b := s.(*series.Bar)
			if !b.Visible() {
				continue
			}
			mine := s == sel.Series || mode.Has(selection.ModeMultiSeries)
			sl.Series = append(sl.Series, barSlice(b, sl, g.axes[int(sl.Axis)], mine, sel.Coord))
		}
	case series.KindSurface:
		for _, s := range g.series {
			sf := s.(*series.Surface)
			if !sf.Visible() || (s != sel.Series && !mode.Has(selection.ModeMultiSeries)) {
				continue
			}
			ss, ok := surfaceSlice(sf, sl, sel.Coord)
			if ok {
				sl.Series = append(sl.Series, ss)
			}
		}
		if it, ok := sel.Series.(*series.Surface).Proxy.ItemAt(sel.Coord.Row, sel.Coord.Col); ok {
			if sl.Row {
				sl.Label = axis.FormatValue(g.axes[2].LabelFormat, it.Z)
			} else {
				sl.Label = axis.FormatValue(g.axes[0].LabelFormat, it.X)
			}
		}
	default:
		return nil
	}
	return sl
}

func barSlice(b *series.Bar, sl *Slice, along *axis.Axis, mine bool, at series.Coord) SliceSeries {
	p := b.Proxy
	out := SliceSeries{Name: b.Name(), Selected: -1}
	labels := along.Labels()
	n := p.ColumnCount()
	if !sl.Row {
		n = p.RowCount()
	}
	for i := 0; i < n; i++ {
		row, col := sl.Index, i
		if !sl.Row {
			row, col = i, sl.Index
		}
		it, ok := p.ItemAt(row, col)
		if !ok {
			continue
		}
		if mine && row == at.Row && col == at.Col {
			out.Selected = len(out.Values)
		}
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		out.Positions = append(out.Positions, float64(i))
		out.Values = append(out.Values, it.Value)
		out.Labels = append(out.Labels, label)
	}
	return out
}

func surfaceSlice(s *series.Surface, sl *Slice, at series.Coord) (SliceSeries, bool) {
	p := s.Proxy
	out := SliceSeries{Name: s.Name(), Selected: -1}
	if sl.Row {
		if sl.Index >= p.RowCount() {
			return out, false
		}
		for i, it := range p.Rows()[sl.Index] {
			out.Positions = append(out.Positions, it.X)
			out.Values = append(out.Values, it.Y)
			if i == at.Col {
				out.Selected = i
			}
		}
		return out, true
	}
	if sl.Index >= p.ColumnCount() {
		return out, false
	}
	for i, row := range p.Rows() {
		it := row[sl.Index]
		out.Positions = append(out.Positions, it.Z)
		out.Values = append(out.Values, it.Y)
		if i == at.Row {
			out.Selected = i
		}
	}
	return out, true
}
