package viz

import (
	"fmt"

	"github.com/san-kum/datavis3d/internal/graph"
	"github.com/san-kum/datavis3d/internal/selection"
	"github.com/san-kum/datavis3d/internal/series"
)

// profileWindow is how many scatter items around the selection are shown.
const profileWindow = 40

// Describe names the selected item and its value.
func Describe(t selection.Target) string {
	if !t.Valid() {
		return "none"
	}
	c := t.Coord
	switch s := t.Series.(type) {
	case *series.Bar:
		if it, ok := s.Proxy.ItemAt(c.Row, c.Col); ok {
			return fmt.Sprintf("%s %s = %.3g", s.Name(), c, it.Value)
		}
	case *series.Scatter:
		if it, ok := s.Proxy.ItemAt(c.Col); ok {
			p := it.Position
			return fmt.Sprintf("%s #%d (%.3g, %.3g, %.3g)", s.Name(), c.Col, p[0], p[1], p[2])
		}
	case *series.Surface:
		if it, ok := s.Proxy.ItemAt(c.Row, c.Col); ok {
			return fmt.Sprintf("%s %s y = %.3g", s.Name(), c, it.Y)
		}
	}
	return "none"
}

// Profile returns the values around the selection: the selected row of a
// bar or surface series, or the heights of neighbouring scatter items.
func Profile(t selection.Target) []float64 {
	if !t.Valid() {
		return nil
	}
	c := t.Coord
	var out []float64
	switch s := t.Series.(type) {
	case *series.Bar:
		for _, it := range s.Proxy.Row(c.Row) {
			out = append(out, it.Value)
		}
	case *series.Scatter:
		items := s.Proxy.Items()
		lo := max(0, c.Col-profileWindow/2)
		hi := min(len(items), lo+profileWindow)
		for _, it := range items[lo:hi] {
			out = append(out, it.Position[1])
		}
	case *series.Surface:
		if c.Row < s.Proxy.RowCount() {
			for _, it := range s.Proxy.Rows()[c.Row] {
				out = append(out, it.Y)
			}
		}
	}
	return out
}

// SliceValues are the values of the first series cut by sl.
func SliceValues(sl *graph.Slice) []float64 {
	if sl == nil || len(sl.Series) == 0 {
		return nil
	}
	return sl.Series[0].Values
}

// SliceCaption names the row or column a slice runs through.
func SliceCaption(sl *graph.Slice) string {
	what := "Column"
	if sl.Row {
		what = "Row"
	}
	if sl.Label != "" {
		return fmt.Sprintf("%s %s", what, sl.Label)
	}
	return fmt.Sprintf("%s %d", what, sl.Index)
}
