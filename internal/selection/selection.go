// Package selection tracks the selected item of a graph and decides how
// every other item is highlighted relative to it.
package selection

import (
	"strings"

	"github.com/san-kum/datavis3d/internal/logging"
	"github.com/san-kum/datavis3d/internal/scene"
	"github.com/san-kum/datavis3d/internal/series"
)

// Mode is a set of selection behaviours.
type Mode uint8

const (
	ModeItem Mode = 1 << iota
	ModeRow
	ModeColumn
	// ModeMultiSeries highlights the same coordinate in every series.
	ModeMultiSeries
	// ModeSlice shows a cross section through the selected row or column.
	// It needs exactly one of ModeRow and ModeColumn.
	ModeSlice

	ModeNone             Mode = 0
	ModeItemAndRow            = ModeItem | ModeRow
	ModeItemAndColumn         = ModeItem | ModeColumn
	ModeItemRowAndColumn      = ModeItem | ModeRow | ModeColumn
)

var modeNames = []struct {
	m    Mode
	name string
}{
	{ModeItem, "item"},
	{ModeRow, "row"},
	{ModeColumn, "column"},
	{ModeMultiSeries, "multiseries"},
	{ModeSlice, "slice"},
}

func (m Mode) Has(f Mode) bool { return m&f == f }

// Valid reports whether m is a usable combination. Slicing needs exactly
// one of row and column.
func (m Mode) Valid() bool {
	if !m.Has(ModeSlice) {
		return true
	}
	return m.Has(ModeRow) != m.Has(ModeColumn)
}

func (m Mode) String() string {
	if m == ModeNone {
		return "none"
	}
	var parts []string
	for _, n := range modeNames {
		if m.Has(n.m) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseMode reads a '|' separated list of mode names.
func ParseMode(s string) (Mode, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "none" {
		return ModeNone, true
	}
	var m Mode
outer:
	for _, part := range strings.Split(s, "|") {
		part = strings.TrimSpace(part)
		for _, n := range modeNames {
			if n.name == part {
				m |= n.m
				continue outer
			}
		}
		return ModeNone, false
	}
	return m, m.Valid()
}

// State is how one item relates to the selection.
type State int

const (
	StateNone State = iota
	StateItem
	StateRow
	StateColumn
)

func (s State) String() string {
	switch s {
	case StateItem:
		return "item"
	case StateRow:
		return "row"
	case StateColumn:
		return "column"
	}
	return "none"
}

// Role is the colour role an item in state s is drawn with.
func (s State) Role() series.Role {
	switch s {
	case StateItem:
		return series.RoleSingleHighlight
	case StateRow, StateColumn:
		return series.RoleMultiHighlight
	}
	return series.RoleBase
}

// Target is a selected item. Scatter points use Coord.Col as their index.
type Target struct {
	Series series.Series
	Coord  series.Coord
}

func (t Target) Valid() bool { return t.Series != nil && t.Coord.Valid() }

// PointTarget addresses scatter item i of s.
func PointTarget(s series.Series, i int) Target {
	if i < 0 {
		return Target{Series: s, Coord: series.InvalidCoord}
	}
	return Target{Series: s, Coord: series.Coord{Row: 0, Col: i}}
}

// Lookup maps a pick hit to the item it landed on.
type Lookup func(scene.Hit) (Target, bool)

// Resolver holds the single selection of a graph.
type Resolver struct {
	mode    Mode
	sel     Target
	changed bool
}

func NewResolver(m Mode) *Resolver {
	return &Resolver{mode: m, sel: Target{Coord: series.InvalidCoord}}
}

func (r *Resolver) Mode() Mode { return r.mode }

// SetMode changes the behaviour and reports whether m was accepted. An
// invalid combination leaves the mode unchanged. Turning selection off
// clears it.
func (r *Resolver) SetMode(m Mode) bool {
	if !m.Valid() {
		logging.Logger().Warn("slice selection needs exactly one of row and column", "mode", m.String())
		return false
	}
	if m == r.mode {
		return true
	}
	r.mode = m
	r.changed = true
	if m&ModeItemRowAndColumn == 0 {
		r.Clear()
	}
	return true
}

func (r *Resolver) Selected() Target { return r.sel }

// Slicing reports whether a cross section is shown: the mode asks for one
// and something is selected.
func (r *Resolver) Slicing() bool { return r.mode.Has(ModeSlice) && r.sel.Valid() }

// Select makes t the selection. Invalid targets and a mode without any
// selection behaviour clear it. It reports whether anything changed.
func (r *Resolver) Select(t Target) bool {
	if !t.Valid() || r.mode&ModeItemRowAndColumn == 0 {
		return r.Clear()
	}
	if t == r.sel {
		return false
	}
	r.sel = t
	r.changed = true
	return true
}

func (r *Resolver) Clear() bool {
	if !r.sel.Valid() {
		return false
	}
	r.sel = Target{Coord: series.InvalidCoord}
	r.changed = true
	return true
}

// Resolve selects the first hit the lookup recognises, front to back. A
// pick that lands on nothing known clears the selection.
func (r *Resolver) Resolve(hits []scene.Hit, lookup Lookup) Target {
	for _, h := range hits {
		if t, ok := lookup(h); ok {
			r.Select(t)
			return r.sel
		}
	}
	r.Clear()
	return r.sel
}

// SeriesRemoved drops a selection that belonged to s.
func (r *Resolver) SeriesRemoved(s series.Series) {
	if r.sel.Series == s {
		r.Clear()
	}
}

// TakeChanged reports and resets whether the selection or mode changed
// since the last call.
func (r *Resolver) TakeChanged() bool {
	c := r.changed
	r.changed = false
	return c
}

// StateOf classifies the item at c of s against the selection.
func (r *Resolver) StateOf(s series.Series, c series.Coord) State {
	if !r.sel.Valid() || !c.Valid() {
		return StateNone
	}
	if s != r.sel.Series && !r.mode.Has(ModeMultiSeries) {
		return StateNone
	}
	if r.sel.Series.Kind() != s.Kind() {
		return StateNone
	}
	sc := r.sel.Coord
	switch {
	case r.mode.Has(ModeItem) && c == sc:
		return StateItem
	case r.mode.Has(ModeRow) && c.Row == sc.Row:
		return StateRow
	case r.mode.Has(ModeColumn) && c.Col == sc.Col:
		return StateColumn
	}
	return StateNone
}

// BarRole adapts StateOf to bar colouring.
func (r *Resolver) BarRole(s *series.Bar, c series.Coord) series.Role {
	return r.StateOf(s, c).Role()
}
