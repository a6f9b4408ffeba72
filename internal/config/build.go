package config

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/datavis3d/internal/axis"
	"github.com/san-kum/datavis3d/internal/custom"
	"github.com/san-kum/datavis3d/internal/data"
	"github.com/san-kum/datavis3d/internal/generate"
	"github.com/san-kum/datavis3d/internal/gradient"
	"github.com/san-kum/datavis3d/internal/graph"
	"github.com/san-kum/datavis3d/internal/gridlayout"
	"github.com/san-kum/datavis3d/internal/scaling"
	"github.com/san-kum/datavis3d/internal/scene"
	"github.com/san-kum/datavis3d/internal/selection"
	"github.com/san-kum/datavis3d/internal/series"
)

var generators = generate.NewRegistry()

// Options translates the scene into graph options. Unknown optimization
// and selection names fall back to the defaults.
func (s *Scene) Options() (graph.Options, error) {
	kind, ok := series.ParseKind(s.Kind)
	if !ok {
		return graph.Options{}, fmt.Errorf("%w: %q", ErrUnknownKind, s.Kind)
	}
	o := graph.DefaultOptions(kind)
	if opt, ok := graph.ParseOptimization(s.Optimization); ok {
		o.Optimization = opt
	}
	if m, ok := selection.ParseMode(s.Selection); ok {
		o.SelectionMode = m
	}
	o.Margin = s.Margin
	o.BarSpec = scaling.BarSpec{
		ThicknessRatio: s.Bars.ThicknessRatio,
		Spacing:        scaling.Size{W: s.Bars.SpacingX, H: s.Bars.SpacingZ},
		Relative:       s.Bars.Relative,
	}
	o.SeriesMargin = scaling.Size{W: s.Bars.SeriesMarginX, H: s.Bars.SeriesMarginZ}
	o.FloorLevel = s.Bars.FloorLevel
	o.MaxSceneSize = s.Bars.MaxSceneSize
	o.UniformSeries = s.Bars.Uniform
	o.AspectRatio = s.Value.AspectRatio
	o.HorizontalAspectRatio = s.Value.HorizontalAspectRatio
	return o, nil
}

// Build creates a graph on b with every axis and series of the scene.
func (s *Scene) Build(b scene.Backend) (*graph.Graph, error) {
	opts, err := s.Options()
	if err != nil {
		return nil, err
	}
	g := graph.New(b, opts)
	g.SetCamera(gridlayout.Camera{
		XRotation: s.Camera.XRotation,
		YRotation: s.Camera.YRotation,
		Zoom:      s.Camera.Zoom,
	})
	s.Axes.X.apply(g.AxisX())
	s.Axes.Y.apply(g.AxisY())
	s.Axes.Z.apply(g.AxisZ())

	for i, sc := range s.Series {
		ser, err := sc.build(opts.Kind)
		if err != nil {
			g.Close()
			return nil, fmt.Errorf("series %d: %w", i, err)
		}
		if err := g.AddSeries(ser); err != nil {
			g.Close()
			return nil, err
		}
	}
	for i, c := range s.CustomItems {
		it, err := c.build()
		if err != nil {
			g.Close()
			return nil, fmt.Errorf("custom item %d: %w", i, err)
		}
		g.AddCustomItem(it)
	}
	for i, c := range s.CustomLabels {
		l := custom.NewLabel(c.Text, c.Position)
		l.SetPositionAbsolute(c.Absolute)
		if c.Color != "" {
			col, err := gradient.ParseHex(c.Color)
			if err != nil {
				g.Close()
				return nil, fmt.Errorf("custom label %d: %w", i, err)
			}
			l.SetColor(col)
		}
		g.AddCustomLabel(l)
	}
	return g, nil
}

func (c CustomItemConfig) build() (*custom.Item, error) {
	m, ok := scene.ParseMesh(c.Mesh)
	if !ok {
		return nil, fmt.Errorf("unknown mesh %q", c.Mesh)
	}
	it := custom.NewItem(m, c.Position)
	it.SetPositionAbsolute(c.Absolute)
	it.SetScalingAbsolute(!c.RelativeScale)
	switch len(c.Scale) {
	case 0:
	case 1:
		it.SetScaling(mgl64.Vec3{c.Scale[0], c.Scale[0], c.Scale[0]})
	case 3:
		it.SetScaling(mgl64.Vec3{c.Scale[0], c.Scale[1], c.Scale[2]})
	default:
		return nil, fmt.Errorf("scale needs 1 or 3 values, got %d", len(c.Scale))
	}
	if c.Rotation != 0 {
		it.SetRotationAxisAndAngle(mgl64.Vec3{0, 1, 0}, c.Rotation)
	}
	if c.Color != "" {
		col, err := gradient.ParseHex(c.Color)
		if err != nil {
			return nil, err
		}
		it.SetColor(col)
	}
	return it, nil
}

func (c AxisConfig) apply(a *axis.Axis) {
	if c.Title != "" {
		a.Title = c.Title
		a.TitleVisible = true
	}
	if c.Min != nil && c.Max != nil {
		a.SetRange(*c.Min, *c.Max)
	}
	if c.Segments > 0 {
		a.SetSegments(c.Segments)
	}
	if c.SubSegments > 0 {
		a.SetSubSegments(c.SubSegments)
	}
	a.SetReversed(c.Reversed)
	if c.Format != "" {
		a.LabelFormat = c.Format
	}
	if c.LogBase != 0 && a.Kind == axis.KindValue {
		a.SetFormatter(axis.NewLogFormatter(c.LogBase))
	}
	if len(c.Labels) > 0 {
		a.SetLabels(c.Labels)
		a.AutoAdjust = false
	}
}

func (c SeriesConfig) build(kind series.Kind) (series.Series, error) {
	var ser series.Series
	var err error
	switch kind {
	case series.KindBar:
		ser, err = c.buildBar()
	case series.KindScatter:
		ser, err = c.buildScatter()
	case series.KindSurface:
		ser, err = c.buildSurface()
	}
	if err != nil {
		return nil, err
	}
	style, err := c.style(ser.Style())
	if err != nil {
		return nil, err
	}
	ser.SetStyle(style)
	ser.SetVisible(!c.Hidden)
	return ser, nil
}

func (c SeriesConfig) size() generate.Size {
	sz := generate.Size{Rows: c.Rows, Columns: c.Columns, Items: c.Items, Seed: c.Seed}
	if sz.Rows == 0 {
		sz.Rows = DefaultRows
	}
	if sz.Columns == 0 {
		sz.Columns = DefaultColumns
	}
	if sz.Items == 0 {
		sz.Items = DefaultItems
	}
	return sz
}

func (c SeriesConfig) buildBar() (*series.Bar, error) {
	values := c.Values
	if c.Generator != "" {
		v, err := generators.Bars(c.Generator, c.size())
		if err != nil {
			return nil, err
		}
		values = v
	}
	p := data.NewBarProxyFromValues(values)
	p.SetRowLabels(c.RowLabels)
	p.SetColumnLabels(c.ColumnLabels)
	return series.NewBar(c.Name, p), nil
}

func (c SeriesConfig) buildScatter() (*series.Scatter, error) {
	p := data.NewScatterProxy()
	if c.Generator != "" {
		items, err := generators.Scatter(c.Generator, c.size())
		if err != nil {
			return nil, err
		}
		p.ResetArray(items)
	} else {
		items := make([]data.ScatterItem, len(c.Points))
		for i, pt := range c.Points {
			items[i] = data.NewScatterItem(pt[0], pt[1], pt[2])
		}
		p.ResetArray(items)
	}
	s := series.NewScatter(c.Name, p)
	return s, nil
}

func (c SeriesConfig) buildSurface() (*series.Surface, error) {
	p := data.NewSurfaceProxy()
	var rows []data.SurfaceRow
	switch {
	case c.HeightMap != nil:
		hm := data.HeightMap{
			MinX: c.HeightMap.MinX, MaxX: c.HeightMap.MaxX,
			MinZ: c.HeightMap.MinZ, MaxZ: c.HeightMap.MaxZ,
			MinY: c.HeightMap.MinY, MaxY: c.HeightMap.MaxY,
			AutoScaleY: c.HeightMap.AutoScale,
		}
		if hm.MaxX == hm.MinX && hm.MaxZ == hm.MinZ && hm.MaxY == hm.MinY {
			hm = data.DefaultHeightMap()
			hm.AutoScaleY = c.HeightMap.AutoScale
		}
		if err := hm.Load(c.HeightMap.Path, p); err != nil {
			return nil, err
		}
	case c.Generator != "":
		r, err := generators.Surface(c.Generator, c.size())
		if err != nil {
			return nil, err
		}
		rows = r
	default:
		rows = make([]data.SurfaceRow, len(c.Grid))
		for i, gr := range c.Grid {
			rows[i] = make(data.SurfaceRow, len(gr))
			for j, v := range gr {
				rows[i][j] = data.SurfaceItem{X: v[0], Y: v[1], Z: v[2]}
			}
		}
	}
	if rows != nil {
		if err := p.ResetArray(rows); err != nil {
			return nil, err
		}
	}
	s := series.NewSurface(c.Name, p)
	s.SetFlatShading(c.FlatShading)
	if m, ok := series.ParseDrawMode(c.DrawMode); ok {
		s.DrawMode = m
	}
	return s, nil
}

// style overlays the configured look on the kind's default style.
func (c SeriesConfig) style(st series.Style) (series.Style, error) {
	if c.Mesh != "" {
		m, ok := scene.ParseMesh(c.Mesh)
		if !ok {
			return st, fmt.Errorf("unknown mesh %q", c.Mesh)
		}
		st.Mesh = m
	}
	st.MeshSmooth = c.Smooth
	if c.ColorStyle != "" {
		cs, ok := series.ParseColorStyle(c.ColorStyle)
		if !ok {
			return st, fmt.Errorf("unknown color style %q", c.ColorStyle)
		}
		st.ColorStyle = cs
	}
	if c.BaseColor != "" {
		col, err := gradient.ParseHex(c.BaseColor)
		if err != nil {
			return st, err
		}
		st.BaseColor = col
	}
	if len(c.Gradient) > 0 {
		stops := make([]gradient.Stop, len(c.Gradient))
		for i, hex := range c.Gradient {
			col, err := gradient.ParseHex(hex)
			if err != nil {
				return st, err
			}
			pos := 0.0
			if len(c.Gradient) > 1 {
				pos = float64(i) / float64(len(c.Gradient)-1)
			}
			stops[i] = gradient.Stop{Position: pos, Color: col}
		}
		st.BaseGradient = gradient.New(stops...)
	}
	if c.ItemSize > 0 {
		st.ItemSize = c.ItemSize
	}
	return st, nil
}
