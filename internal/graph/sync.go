package graph

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/datavis3d/internal/axis"
	"github.com/san-kum/datavis3d/internal/bars"
	"github.com/san-kum/datavis3d/internal/data"
	"github.com/san-kum/datavis3d/internal/gridlayout"
	"github.com/san-kum/datavis3d/internal/logging"
	"github.com/san-kum/datavis3d/internal/scaling"
	"github.com/san-kum/datavis3d/internal/scatter"
	"github.com/san-kum/datavis3d/internal/series"
	"github.com/san-kum/datavis3d/internal/surface"
)

// Sync applies every change since the previous pass: proxy edits, series
// and axis changes, scaling, item primitives, grid layout and selection
// colouring, in that order. A closed graph returns an empty frame.
func (g *Graph) Sync() (Frame, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return Frame{}, nil
	}

	g.consumeSeries()
	if g.resolver.TakeChanged() {
		g.dirty |= DirtySelection
	}

	var (
		in  gridlayout.Input
		err error
	)
	switch g.opts.Kind {
	case series.KindBar:
		in, err = g.syncBars()
	case series.KindScatter:
		in, err = g.syncScatter()
	case series.KindSurface:
		in, err = g.syncSurface()
	}
	if err != nil {
		return Frame{}, err
	}

	if err := g.syncCustom(); err != nil {
		return Frame{}, err
	}

	if g.resolver.TakeChanged() {
		g.dirty |= DirtySelection
	}
	if err := g.applySelection(); err != nil {
		return Frame{}, err
	}

	in.X, in.Y, in.Z = g.axes[0], g.axes[1], g.axes[2]
	in.Camera = g.camera
	g.sequence++
	f := Frame{
		Sequence:  g.sequence,
		Kind:      g.opts.Kind,
		Camera:    g.camera,
		Layout:    gridlayout.Compute(in),
		Selection: g.resolver.Selected(),
		Mode:      g.resolver.Mode(),
		Slice:     g.slice(),
		Synced:    g.dirty,

		CustomLabels:    g.placedLabels,
		CustomSelection: g.selectedItem,
	}
	g.dirty = 0
	return f, nil
}

// consumeSeries takes the pending proxy and series changes and forwards
// them to the generator.
func (g *Graph) consumeSeries() {
	for _, s := range g.series {
		if dc := s.TakeDataChanges(); dc != 0 {
			g.dirty |= DirtyData
			if dc&data.ChangeArrayReset != 0 {
				g.resolver.SeriesRemoved(s)
			}
			g.dataChanged(s, dc)
		}
		if sc := s.TakeChanges(); sc != 0 {
			g.seriesChanged(s, sc)
		}
	}
	if sel := g.resolver.Selected(); sel.Valid() && !exists(sel) {
		logging.Logger().Debug("selected item no longer exists", "series", sel.Series.Name(), "coord", sel.Coord.String())
		g.resolver.Clear()
	}
}

func (g *Graph) dataChanged(s series.Series, dc data.Change) {
	switch v := s.(type) {
	case *series.Bar:
		if dc.Structural() {
			g.bars.Regenerate(v)
		}
	case *series.Scatter:
		g.scatter.MarkDirty(v)
	case *series.Surface:
		g.surface.MarkDirty(v)
	}
}

func (g *Graph) seriesChanged(s series.Series, sc series.Change) {
	if sc&series.ChangeVisibility != 0 {
		g.dirty |= DirtyData | DirtySeriesVisuals
	}
	if sc&(series.ChangeVisuals|series.ChangeMesh) != 0 {
		g.dirty |= DirtySeriesVisuals
	}
	switch v := s.(type) {
	case *series.Bar:
		switch {
		case sc&series.ChangeMesh != 0:
			g.bars.Regenerate(v)
		case sc&series.ChangeVisuals != 0:
			g.bars.Restyle(v)
		}
	case *series.Scatter:
		switch {
		case sc&series.ChangeMesh != 0:
			g.scatter.Remove(v)
			g.dirty |= DirtySelection
		case sc&series.ChangeVisuals != 0:
			g.scatter.Restyle(v)
		}
		if sc&series.ChangeVisibility != 0 {
			g.scatter.MarkAllDirty()
		}
	case *series.Surface:
		g.surface.MarkDirty(v)
	}
}

// consumeAxes folds the pending axis changes into the dirty flags. It runs
// after auto ranging so the adjusted ranges land in the same pass.
func (g *Graph) consumeAxes() {
	for _, a := range g.axes {
		c := a.TakeChanges()
		if c&(axis.ChangeRange|axis.ChangeSegments|axis.ChangeReversed|axis.ChangeLabels) != 0 {
			g.dirty |= DirtyAxisRange
		}
		if c&axis.ChangeFormatter != 0 {
			g.dirty |= DirtyAxisFormatter
		}
	}
}

func (g *Graph) barSeries() []*series.Bar {
	out := make([]*series.Bar, 0, len(g.series))
	for _, s := range g.series {
		out = append(out, s.(*series.Bar))
	}
	return out
}

func (g *Graph) syncBars() (gridlayout.Input, error) {
	list := g.barSeries()
	rows, cols := 0, 0
	var (
		lo, hi               float64
		have                 bool
		rowLabels, colLabels []string
	)
	for _, s := range list {
		p := s.Proxy
		rows = max(rows, p.RowCount())
		cols = max(cols, p.ColumnCount())
		if rowLabels == nil && len(p.RowLabels()) > 0 {
			rowLabels = p.RowLabels()
		}
		if colLabels == nil && len(p.ColumnLabels()) > 0 {
			colLabels = p.ColumnLabels()
		}
		if !s.Visible() {
			continue
		}
		if l, h, ok := p.Limits(); ok {
			if !have {
				lo, hi, have = l, h, true
			}
			lo, hi = min(lo, l), max(hi, h)
		}
	}
	adjustCategories(g.axes[0], cols, colLabels)
	adjustCategories(g.axes[2], rows, rowLabels)
	if have {
		g.axes[1].AdjustRange(axis.BarRange(lo, hi, g.opts.FloorLevel))
	}
	g.consumeAxes()

	g.barScaling.SetInput(scaling.BarInput{
		Rows:            rows,
		Columns:         cols,
		Spec:            g.opts.BarSpec,
		SeriesMargin:    g.opts.SeriesMargin,
		MaxSceneSize:    g.opts.MaxSceneSize,
		RequestedMargin: g.opts.Margin,
	})
	st := g.barScaling.State()
	y := g.axes[1]
	g.height = scaling.ComputeHeight(y.Min(), y.Max(), g.opts.FloorLevel, y.Reversed())
	g.helpers[0].Scale, g.helpers[0].Translate = st.Scale[0]*2, -st.Scale[0]
	g.helpers[1].Scale, g.helpers[1].Translate = 2, -1
	g.helpers[2].Scale, g.helpers[2].Translate = -st.Scale[2]*2, st.Scale[2]

	switch {
	case g.dirty.Has(geometry):
		p := bars.Params{
			Scaling:      st,
			Height:       g.height,
			Y:            g.helpers[1],
			SeriesMargin: g.opts.SeriesMargin,
			Uniform:      g.opts.UniformSeries,
		}
		if err := g.bars.Sync(list, p, g.resolver.BarRole); err != nil {
			return gridlayout.Input{}, err
		}
	case g.dirty.Has(DirtySelection):
		g.bars.Recolor(g.resolver.BarRole)
	}

	return gridlayout.Input{
		Scale:      st.Scale,
		Margin:     st.ScaleWithBackground.Sub(st.Scale),
		Categories: gridlayout.NewCategories(rows, cols, st, g.height),
	}, nil
}

// adjustCategories sizes an auto adjusting category axis to n slots and
// takes the proxy labels when there are any.
func adjustCategories(a *axis.Axis, n int, labels []string) {
	if a.Kind != axis.KindCategory || !a.AutoAdjust {
		return
	}
	if n > 0 {
		a.AdjustRange(0, float64(n-1))
	}
	if len(labels) > 0 && !slices.Equal(a.Labels(), labels) {
		a.SetLabels(labels)
	}
}

// valueScaling maps the axes of scatter and surface graphs into the scene.
func (g *Graph) valueScaling(maxItemSize float64) {
	x, z := g.axes[0], g.axes[2]
	g.value = scaling.ComputeValue(scaling.ValueInput{
		XSpan:            x.Max() - x.Min(),
		ZSpan:            z.Max() - z.Min(),
		Aspect:           g.opts.AspectRatio,
		HorizontalAspect: g.opts.HorizontalAspectRatio,
		RequestedMargin:  g.opts.Margin,
		MaxItemSize:      maxItemSize,
	})
	for i, h := range g.helpers {
		h.Scale, h.Translate = g.value.Scale[i], g.value.Translate[i]
	}
}

func (g *Graph) valueInput() gridlayout.Input {
	h, v := g.value.HBackgroundMargin, g.value.VBackgroundMargin
	return gridlayout.Input{
		Scale:         g.value.ScaleWithBackground,
		Margin:        mgl64.Vec3{h, v, h},
		VerticalLines: true,
	}
}

// limits merges the bounds of several proxies.
type limits struct {
	lo, hi mgl64.Vec3
	ok     bool
}

func (l *limits) add(lo, hi mgl64.Vec3, ok bool) {
	if !ok {
		return
	}
	if !l.ok {
		l.lo, l.hi, l.ok = lo, hi, true
		return
	}
	for i := 0; i < 3; i++ {
		l.lo[i] = min(l.lo[i], lo[i])
		l.hi[i] = max(l.hi[i], hi[i])
	}
}

func (g *Graph) adjustValueAxes(l limits, rng func(lo, hi float64) (float64, float64)) {
	if !l.ok {
		return
	}
	for i, a := range g.axes {
		a.AdjustRange(rng(l.lo[i], l.hi[i]))
	}
}

func (g *Graph) syncScatter() (gridlayout.Input, error) {
	list := make([]*series.Scatter, 0, len(g.series))
	var (
		l       limits
		points  int
		maxSize float64
	)
	for _, s := range g.series {
		sc := s.(*series.Scatter)
		list = append(list, sc)
		if !sc.Visible() {
			continue
		}
		l.add(sc.Proxy.Limits())
		points += sc.Proxy.ItemCount()
		maxSize = max(maxSize, sc.Style().ItemSize)
	}
	g.adjustValueAxes(l, axis.ScatterRange)
	g.consumeAxes()
	g.valueScaling(maxSize)

	if g.dirty.Has(DirtyAxisRange|DirtyAxisFormatter|DirtyScaling) || points != g.points {
		g.scatter.MarkAllDirty()
	}
	g.points = points
	p := scatter.Params{
		X:      g.helpers[0],
		Y:      g.helpers[1],
		Z:      g.helpers[2],
		ScaleY: g.value.ScaleWithBackground[1],
		Points: points,
	}
	if err := g.scatter.Sync(list, p); err != nil {
		return gridlayout.Input{}, err
	}
	return g.valueInput(), nil
}

func (g *Graph) surfaceHelpers() surface.Helpers {
	return surface.Helpers{X: g.helpers[0], Y: g.helpers[1], Z: g.helpers[2]}
}

func (g *Graph) syncSurface() (gridlayout.Input, error) {
	list := make([]*series.Surface, 0, len(g.series))
	var l limits
	for _, s := range g.series {
		sf := s.(*series.Surface)
		list = append(list, sf)
		if sf.Visible() {
			l.add(sf.Proxy.Limits())
		}
	}
	g.adjustValueAxes(l, axis.SurfaceRange)
	g.consumeAxes()
	g.valueScaling(0)

	if g.dirty.Has(DirtyAxisRange | DirtyAxisFormatter | DirtyScaling) {
		g.surface.MarkAllDirty()
	}
	if err := g.surface.Sync(list, g.surfaceHelpers()); err != nil {
		return gridlayout.Input{}, err
	}
	return g.valueInput(), nil
}

// applySelection mirrors the resolver into the series and the selection
// visuals of the generator.
func (g *Graph) applySelection() error {
	if !g.dirty.Has(DirtySelection | geometry) {
		return nil
	}
	sel := g.resolver.Selected()
	for _, s := range g.series {
		mine := sel.Valid() && sel.Series == s
		switch v := s.(type) {
		case *series.Bar:
			if mine {
				v.SetSelected(sel.Coord)
			} else {
				v.SetSelected(series.InvalidCoord)
			}
		case *series.Scatter:
			if mine {
				v.SetSelected(sel.Coord.Col)
			} else {
				v.SetSelected(series.InvalidIndex)
			}
		case *series.Surface:
			if mine {
				v.SetSelected(sel.Coord)
			} else {
				v.SetSelected(series.InvalidCoord)
			}
		}
	}

	switch g.opts.Kind {
	case series.KindScatter:
		if s, ok := sel.Series.(*series.Scatter); ok && sel.Valid() {
			g.scatter.SetSelection(s, sel.Coord.Col)
		} else {
			g.scatter.SetSelection(nil, series.InvalidIndex)
		}
	case series.KindSurface:
		s, _ := sel.Series.(*series.Surface)
		if !sel.Valid() {
			s = nil
		}
		if err := g.surface.SetSelection(s, sel.Coord, g.surfaceHelpers()); err != nil {
			return err
		}
	}
	return nil
}
