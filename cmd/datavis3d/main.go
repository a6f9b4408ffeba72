package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/datavis3d/internal/axis"
	"github.com/san-kum/datavis3d/internal/config"
	"github.com/san-kum/datavis3d/internal/data"
	"github.com/san-kum/datavis3d/internal/export"
	"github.com/san-kum/datavis3d/internal/generate"
	"github.com/san-kum/datavis3d/internal/graph"
	"github.com/san-kum/datavis3d/internal/logging"
	"github.com/san-kum/datavis3d/internal/scene"
	"github.com/san-kum/datavis3d/internal/selection"
	"github.com/san-kum/datavis3d/internal/series"
	"github.com/san-kum/datavis3d/internal/storage"
	"github.com/san-kum/datavis3d/internal/viz"
)

var (
	dataDir    string
	verbose    bool
	theme      string
	configFile string

	// camera overrides apply only when the flag is set
	xRotation float64
	yRotation float64
	zoom      float64
	width     int
	height    int

	format    string
	outPath   string
	outDir    string
	all       bool
	frames    int
	cellSize  int
	colorOut  bool
	pickFirst bool

	row      int
	column   int
	axisName string

	snapName   string
	recordPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "datavis3d",
		Short: "3d bar, scatter and surface graphs in the terminal",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, nil)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".datavis3d", "snapshot directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log geometry updates to stderr")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "scene file path (yaml)")

	sceneFlags := func(c *cobra.Command) {
		c.Flags().Float64Var(&xRotation, "x-rotation", 0, "camera orbit in degrees")
		c.Flags().Float64Var(&yRotation, "y-rotation", 0, "camera tilt in degrees")
		c.Flags().Float64Var(&zoom, "zoom", 0, "camera zoom in percent")
		c.Flags().IntVar(&width, "width", 80, "canvas width in cells")
		c.Flags().IntVar(&height, "height", 24, "canvas height in cells")
	}

	viewCmd := &cobra.Command{
		Use:   "view [kind] [preset]",
		Short: "open the interactive viewer",
		Args:  cobra.MaximumNArgs(2),
		RunE:  runView,
	}
	viewCmd.Flags().StringVar(&recordPath, "record", "datavis3d.gif", "gif recording path")
	sceneFlags(viewCmd)

	renderCmd := &cobra.Command{
		Use:   "render [kind] [preset]",
		Short: "render one frame to stdout",
		Args:  cobra.MaximumNArgs(2),
		RunE:  runRender,
	}
	sceneFlags(renderCmd)
	renderCmd.Flags().BoolVar(&colorOut, "color", false, "colorize the output")
	renderCmd.Flags().BoolVar(&pickFirst, "pick", false, "select the item under the centre first")

	exportCmd := &cobra.Command{
		Use:   "export [kind] [preset]",
		Short: "export a frame as svg, json, an image or an orbit gif",
		Args:  cobra.MaximumNArgs(2),
		RunE:  runExport,
	}
	sceneFlags(exportCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", "svg", "svg, json, png, bmp, tiff, gif or orbit")
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default derived from the scene)")
	exportCmd.Flags().StringVar(&outDir, "dir", "export", "output directory for --all")
	exportCmd.Flags().BoolVar(&all, "all", false, "export every preset")
	exportCmd.Flags().IntVar(&frames, "frames", 36, "frames per orbit")
	exportCmd.Flags().IntVar(&cellSize, "cell", 8, "pixels per cell for images")

	profileCmd := &cobra.Command{
		Use:   "profile [kind] [preset]",
		Short: "plot a row, a column or an axis mapping",
		Args:  cobra.MaximumNArgs(2),
		RunE:  runProfile,
	}
	profileCmd.Flags().IntVar(&row, "row", -1, "row to plot")
	profileCmd.Flags().IntVar(&column, "column", -1, "column to plot")
	profileCmd.Flags().StringVar(&axisName, "axis", "", "plot the normalized mapping of axis x, y or z")

	presetsCmd := &cobra.Command{
		Use:   "presets [kind]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := config.ListKinds()
			if len(args) > 0 {
				kinds = args
			}
			for _, k := range kinds {
				presets := config.ListPresets(k)
				if len(presets) == 0 {
					fmt.Printf("no presets for kind: %s\n", k)
					continue
				}
				fmt.Printf("presets for %s:\n", k)
				for _, p := range presets {
					fmt.Printf("  %s\n", p)
				}
			}
			return nil
		},
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [kind] [preset]",
		Short: "store the synced frame",
		Args:  cobra.MaximumNArgs(2),
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().StringVar(&snapName, "name", "snapshot", "snapshot name")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list snapshots",
		RunE:  listSnapshots,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [kind]",
		Short: "time full and camera only sync passes",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBench,
	}

	rootCmd.AddCommand(viewCmd, renderCmd, exportCmd, profileCmd, presetsCmd, snapshotCmd, listCmd, benchCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// loadScene resolves the scene from --config or from the kind and preset
// arguments. Without a preset the kind's default scene is used.
func loadScene(args []string) (*config.Scene, string, error) {
	if configFile != "" {
		sc, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load scene: %w", err)
		}
		return sc, strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile)), nil
	}
	kind := "bar"
	if len(args) > 0 {
		kind = args[0]
	}
	if len(args) > 1 {
		sc, err := config.GetPreset(kind, args[1])
		if err != nil {
			return nil, "", fmt.Errorf("%w (available: %v)", err, config.ListPresets(kind))
		}
		return sc, kind + "-" + args[1], nil
	}
	sc := config.DefaultScene(kind)
	if err := sc.Validate(); err != nil {
		return nil, "", err
	}
	return sc, kind, nil
}

// applyFlags lets command line flags override the scene.
func applyFlags(cmd *cobra.Command, sc *config.Scene) {
	if cmd.Flags().Changed("x-rotation") {
		sc.Camera.XRotation = xRotation
	}
	if cmd.Flags().Changed("y-rotation") {
		sc.Camera.YRotation = yRotation
	}
	if cmd.Flags().Changed("zoom") {
		sc.Camera.Zoom = zoom
	}
	if theme != "" {
		sc.Theme = theme
	}
}

// built is a synced graph ready to draw.
type built struct {
	scene    *config.Scene
	name     string
	graph    *graph.Graph
	rec      *scene.Recorder
	renderer *viz.Renderer
	frame    graph.Frame
}

func build(sc *config.Scene, name string, w, h int) (*built, error) {
	rec := scene.NewRecorder()
	g, err := sc.Build(rec)
	if err != nil {
		return nil, err
	}
	r := viz.NewRenderer(viz.NewCanvas(w, h), viz.GetTheme(sc.Theme))
	rec.SetProjector(r.Camera)
	f, err := g.Sync()
	if err != nil {
		g.Close()
		return nil, err
	}
	r.Draw(rec, f)
	return &built{scene: sc, name: name, graph: g, rec: rec, renderer: r, frame: f}, nil
}

func (b *built) redraw() error {
	f, err := b.graph.Sync()
	if err != nil {
		return err
	}
	b.frame = f
	b.renderer.Draw(b.rec, f)
	return nil
}

func runView(cmd *cobra.Command, args []string) error {
	sc, name, err := loadScene(args)
	if err != nil {
		return err
	}
	applyFlags(cmd, sc)
	rec := scene.NewRecorder()
	g, err := sc.Build(rec)
	if err != nil {
		return err
	}
	defer g.Close()
	if recordPath == "" {
		recordPath = "datavis3d.gif"
	}
	return viz.Run(g, rec, viz.ViewerOptions{Title: name, Theme: sc.Theme, RecordPath: recordPath})
}

func runRender(cmd *cobra.Command, args []string) error {
	sc, name, err := loadScene(args)
	if err != nil {
		return err
	}
	applyFlags(cmd, sc)
	b, err := build(sc, name, width, height)
	if err != nil {
		return err
	}
	defer b.graph.Close()

	if pickFirst {
		x, y := b.renderer.Camera.Centre()
		if _, err := b.graph.Pick(x, y); err != nil {
			return err
		}
		if err := b.redraw(); err != nil {
			return err
		}
	}
	if colorOut {
		fmt.Print(b.renderer.Canvas.Styled())
	} else {
		fmt.Print(b.renderer.Canvas.String())
	}
	fmt.Printf("%s  mode %s  selected %s\n", name, b.frame.Mode, viz.Describe(b.frame.Selection))
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	if all {
		return exportAll(cmd.Context())
	}
	sc, name, err := loadScene(args)
	if err != nil {
		return err
	}
	applyFlags(cmd, sc)
	path := outPath
	if path == "" {
		path = name + extension(format)
	}
	if err := exportScene(cmd.Context(), sc, name, format, path); err != nil {
		return err
	}
	fmt.Printf("exported %s\n", path)
	return nil
}

func extension(f string) string {
	switch f {
	case "orbit":
		return "-orbit.gif"
	case "tiff":
		return ".tif"
	}
	return "." + f
}

func exportScene(ctx context.Context, sc *config.Scene, name, f, path string) error {
	b, err := build(sc, name, width, height)
	if err != nil {
		return err
	}
	defer b.graph.Close()

	switch f {
	case "svg":
		svg := export.CanvasToSVG(b.renderer.Canvas, 4, viz.ToRGBA(b.renderer.Theme.Background))
		return os.WriteFile(path, []byte(svg), 0644)
	case "json":
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		defer file.Close()
		return export.WriteJSON(file, export.NewDocument(b.graph, b.rec, b.frame))
	case "orbit":
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		defer file.Close()
		return export.Orbit(ctx, file, b.graph, b.rec, b.renderer, frames)
	case "png", "bmp", "tiff", "gif":
		img := export.RenderImage(b.renderer.Canvas, cellSize, b.renderer.Theme, name)
		return export.WriteImage(path, img)
	}
	return fmt.Errorf("unknown format: %s", f)
}

// exportAll writes every preset into outDir concurrently. Each preset
// gets its own recorder and graph.
func exportAll(ctx context.Context) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, kind := range config.ListKinds() {
		for _, p := range config.ListPresets(kind) {
			g.Go(func() error {
				sc, err := config.GetPreset(kind, p)
				if err != nil {
					return err
				}
				if theme != "" {
					sc.Theme = theme
				}
				name := kind + "-" + p
				path := filepath.Join(outDir, name+extension(format))
				if err := exportScene(ctx, sc, name, format, path); err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
				fmt.Printf("exported %s\n", path)
				return nil
			})
		}
	}
	return g.Wait()
}

func runProfile(cmd *cobra.Command, args []string) error {
	sc, name, err := loadScene(args)
	if err != nil {
		return err
	}
	rec := scene.NewRecorder()
	g, err := sc.Build(rec)
	if err != nil {
		return err
	}
	defer g.Close()
	if _, err := g.Sync(); err != nil {
		return err
	}

	var values []float64
	var caption string
	switch {
	case axisName != "":
		a, err := pickAxis(g, axisName)
		if err != nil {
			return err
		}
		values = sampleAxis(a, 80)
		caption = fmt.Sprintf("%s axis position over [%g, %g]", axisName, a.Min(), a.Max())
	case row >= 0 || column >= 0:
		if len(g.Series()) == 0 {
			return fmt.Errorf("%s has no series", name)
		}
		s := g.Series()[0]
		values = seriesProfile(s, row, column)
		if row >= 0 {
			caption = fmt.Sprintf("%s row %d", s.Name(), row)
		} else {
			caption = fmt.Sprintf("%s column %d", s.Name(), column)
		}
	default:
		return fmt.Errorf("one of --row, --column or --axis is required")
	}
	if len(values) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("scene: %s\n", name)
	fmt.Printf("samples: %d\n\n", len(values))
	plot := asciigraph.Plot(values,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	fmt.Println(plot)
	return nil
}

func pickAxis(g *graph.Graph, name string) (*axis.Axis, error) {
	switch strings.ToLower(name) {
	case "x":
		return g.AxisX(), nil
	case "y":
		return g.AxisY(), nil
	case "z":
		return g.AxisZ(), nil
	}
	return nil, fmt.Errorf("unknown axis: %s", name)
}

// sampleAxis is the normalized position of n evenly spaced values across
// the axis range; a straight line for linear axes.
func sampleAxis(a *axis.Axis, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		v := a.Min() + (a.Max()-a.Min())*float64(i)/float64(n-1)
		out[i] = a.PositionAt(v)
	}
	return out
}

func seriesProfile(s series.Series, r, c int) []float64 {
	var out []float64
	switch v := s.(type) {
	case *series.Bar:
		for i, rw := range v.Proxy.Rows() {
			switch {
			case r >= 0 && i == r:
				for _, it := range rw {
					out = append(out, it.Value)
				}
			case r < 0 && c < len(rw):
				out = append(out, rw[c].Value)
			}
		}
	case *series.Surface:
		for i, rw := range v.Proxy.Rows() {
			switch {
			case r >= 0 && i == r:
				for _, it := range rw {
					out = append(out, it.Y)
				}
			case r < 0 && c < len(rw):
				out = append(out, rw[c].Y)
			}
		}
	case *series.Scatter:
		for _, it := range v.Proxy.Items() {
			out = append(out, it.Position[1])
		}
	}
	return out
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	sc, _, err := loadScene(args)
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	rec := scene.NewRecorder()
	g, err := sc.Build(rec)
	if err != nil {
		return err
	}
	defer g.Close()
	f, err := g.Sync()
	if err != nil {
		return err
	}
	id, err := st.Save(snapName, sc, g, rec, f)
	if err != nil {
		return err
	}
	fmt.Printf("saved snapshot %s (%d primitives)\n", id, rec.Len())
	return nil
}

func listSnapshots(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	snaps, err := st.List()
	if err != nil {
		return err
	}

	if len(snaps) == 0 {
		fmt.Println("no snapshots found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tTIME\tSERIES\tPRIMITIVES\tSELECTION")
	for _, s := range snaps {
		sel := s.Selection
		if sel == "" {
			sel = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			s.ID,
			s.Kind,
			s.Timestamp.Format("2006-01-02 15:04:05"),
			s.Series,
			s.Primitives,
			sel,
		)
	}
	return w.Flush()
}

func runBench(cmd *cobra.Command, args []string) error {
	graphs := graph.NewRegistry()
	kinds := graphs.List()
	if len(args) > 0 {
		kinds = args
	}
	generators := generate.NewRegistry()
	sizes := []int{8, 32, 64}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tSIZE\tPRIMITIVES\tFULL\tCAMERA\tPICK")
	for _, kind := range kinds {
		for _, n := range sizes {
			rec := scene.NewRecorder()
			g, err := graphs.Get(kind, rec)
			if err != nil {
				return err
			}
			s, err := benchSeries(generators, g.Kind(), n)
			if err != nil {
				return err
			}
			if err := g.AddSeries(s); err != nil {
				return err
			}
			rec.SetProjector(scene.Orthographic{})

			start := time.Now()
			if _, err := g.Sync(); err != nil {
				return err
			}
			full := time.Since(start)

			cam := g.Camera()
			cam.XRotation += 90
			g.SetCamera(cam)
			start = time.Now()
			if _, err := g.Sync(); err != nil {
				return err
			}
			camera := time.Since(start)

			g.SetSelectionMode(selection.ModeItemRowAndColumn)
			start = time.Now()
			if _, err := g.Pick(0, 0); err != nil {
				return err
			}
			pick := time.Since(start)

			fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%v\t%v\n", kind, n, rec.Len(), full, camera, pick)
			g.Close()
		}
	}
	return w.Flush()
}

func benchSeries(r *generate.Registry, k series.Kind, n int) (series.Series, error) {
	size := generate.Size{Rows: n, Columns: n, Items: n * n, Seed: 1}
	switch k {
	case series.KindBar:
		v, err := r.Bars("wave", size)
		if err != nil {
			return nil, err
		}
		return series.NewBar("bench", data.NewBarProxyFromValues(v)), nil
	case series.KindScatter:
		items, err := r.Scatter("cloud", size)
		if err != nil {
			return nil, err
		}
		p := data.NewScatterProxy()
		p.ResetArray(items)
		return series.NewScatter("bench", p), nil
	}
	rows, err := r.Surface("sinc", size)
	if err != nil {
		return nil, err
	}
	p := data.NewSurfaceProxy()
	if err := p.ResetArray(rows); err != nil {
		return nil, err
	}
	return series.NewSurface("bench", p), nil
}
