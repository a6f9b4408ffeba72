package viz

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/datavis3d/internal/graph"
	"github.com/san-kum/datavis3d/internal/scene"
	"github.com/san-kum/datavis3d/internal/selection"
)

const (
	canvasWidth  = 80
	canvasHeight = 24
	// panelWidth is the side panel width including its border.
	panelWidth = 48
	orbitStep  = 5.0
)

// selectionModes is the order tab cycles through.
var selectionModes = []selection.Mode{
	selection.ModeItem,
	selection.ModeItemAndRow,
	selection.ModeItemAndColumn,
	selection.ModeItemRowAndColumn,
	selection.ModeItem | selection.ModeMultiSeries,
	selection.ModeRow,
	selection.ModeColumn,
	selection.ModeItemAndRow | selection.ModeSlice,
	selection.ModeItemAndColumn | selection.ModeSlice,
	selection.ModeNone,
}

// ViewerOptions configure Run.
type ViewerOptions struct {
	Title      string
	Theme      string
	// RecordPath is where g writes the GIF recording.
	RecordPath string
}

// Viewer is the interactive terminal model around one graph. The graph
// must be backed by rec.
type Viewer struct {
	graph    *graph.Graph
	rec      *scene.Recorder
	renderer *Renderer
	clip     *Recording
	styles   styles

	opts      ViewerOptions
	theme     int
	frame     graph.Frame
	err       error
	status    string
	recording bool
}

func NewViewer(g *graph.Graph, rec *scene.Recorder, opts ViewerOptions) Viewer {
	if opts.RecordPath == "" {
		opts.RecordPath = "datavis3d.gif"
	}
	th := themeIndex(opts.Theme)
	r := NewRenderer(NewCanvas(canvasWidth, canvasHeight), Themes[th])
	r.Camera.Orbit = g.Camera()
	rec.SetProjector(r.Camera)
	rec.SetPickSlack(1)
	v := Viewer{
		graph:    g,
		rec:      rec,
		renderer: r,
		clip:     NewRecording(),
		styles:   newStyles(Themes[th]),
		opts:     opts,
		theme:    th,
	}
	v.redraw()
	return v
}

func (v Viewer) Init() tea.Cmd { return nil }

func (v Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKey(msg)
	case tea.WindowSizeMsg:
		w := max(20, msg.Width-panelWidth-4)
		h := max(8, msg.Height-4)
		v.resize(w, h)
		v.redraw()
	}
	return v, nil
}

func (v Viewer) handleKey(msg tea.KeyMsg) (Viewer, tea.Cmd) {
	cam := v.renderer.Camera
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		if v.recording {
			v.stopRecording()
		}
		return v, tea.Quit
	case "left", "h":
		cam.Rotate(-orbitStep, 0)
	case "right", "l":
		cam.Rotate(orbitStep, 0)
	case "up", "k":
		cam.Rotate(0, orbitStep)
	case "down", "j":
		cam.Rotate(0, -orbitStep)
	case "+", "=":
		cam.ZoomIn()
	case "-", "_":
		cam.ZoomOut()
	case "tab":
		v.graph.SetSelectionMode(nextMode(v.graph.SelectionMode()))
	case "enter", " ":
		x, y := cam.Centre()
		if _, err := v.graph.Pick(x, y); err != nil {
			v.err = err
		}
	case "c":
		v.graph.ClearSelection()
	case "t":
		v.theme = (v.theme + 1) % len(Themes)
		v.renderer.Theme = Themes[v.theme]
		v.styles = newStyles(Themes[v.theme])
	case "g":
		if v.recording {
			v.stopRecording()
		} else {
			v.recording = true
			v.clip.Reset()
			v.status = "recording"
		}
	case "L":
		v.renderer.Labels = !v.renderer.Labels
	}
	v.graph.SetCamera(cam.Orbit)
	v.redraw()
	return v, nil
}

func nextMode(m selection.Mode) selection.Mode {
	for i, c := range selectionModes {
		if c == m {
			return selectionModes[(i+1)%len(selectionModes)]
		}
	}
	return selectionModes[0]
}

func (v *Viewer) resize(w, h int) {
	c := NewCanvas(w, h)
	v.renderer.Canvas = c
	v.renderer.Camera.Width, v.renderer.Camera.Height = c.Dots()
}

// redraw syncs the graph and repaints the canvas.
func (v *Viewer) redraw() {
	f, err := v.graph.Sync()
	if err != nil {
		v.err = err
		return
	}
	v.frame = f
	v.renderer.Draw(v.rec, f)
	if v.recording {
		v.clip.Capture(v.renderer.Canvas, v.renderer.Theme)
	}
}

func (v *Viewer) stopRecording() {
	v.recording = false
	f, err := os.Create(v.opts.RecordPath)
	if err != nil {
		v.err = err
		return
	}
	defer f.Close()
	if err := v.clip.Encode(f); err != nil {
		v.err = err
		return
	}
	v.status = fmt.Sprintf("saved %d frames to %s", v.clip.Len(), v.opts.RecordPath)
}

func (v Viewer) View() string {
	s := v.styles
	canvasView := s.canvas.Render(v.renderer.Canvas.Styled())

	var b strings.Builder
	th := Themes[v.theme]
	title := v.opts.Title
	if title == "" {
		title = v.frame.Kind.String() + " graph"
	}
	b.WriteString(GradientText(strings.ToUpper(title), th.Primary, th.Secondary) + "\n\n")

	row := func(label, value string) {
		b.WriteString(s.label.Render(label) + s.value.Render(value) + "\n")
	}
	row("Series", fmt.Sprint(len(v.graph.Series())))
	row("Mode", v.frame.Mode.String())
	row("Selected", Describe(v.frame.Selection))
	if i := v.frame.CustomSelection; i >= 0 {
		row("Custom", fmt.Sprintf("item %d", i))
	}
	cam := v.frame.Camera
	row("Camera", fmt.Sprintf("%.0f° %.0f° %.0f%%", cam.XRotation, cam.YRotation, cam.Zoom))
	row("Theme", th.Name)
	row("Frame", fmt.Sprint(v.frame.Sequence))

	if sl := v.frame.Slice; sl != nil {
		if p := SliceValues(sl); len(p) > 1 {
			chart := asciigraph.Plot(p, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption(SliceCaption(sl)))
			b.WriteString(s.chart.Render(chart) + "\n")
		}
	} else if p := Profile(v.frame.Selection); len(p) > 1 {
		chart := asciigraph.Plot(p, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("Profile"))
		b.WriteString(s.chart.Render(chart) + "\n")
	}
	if v.recording {
		b.WriteString(s.alert.Render(fmt.Sprintf("● REC %d", v.clip.Len())) + "\n")
	} else if v.status != "" {
		b.WriteString(s.active.Render(v.status) + "\n")
	}
	if v.err != nil {
		b.WriteString(s.alert.Render("error: "+v.err.Error()) + "\n")
	}
	b.WriteString("\n" + s.keyHints("←→↑↓", "orbit", "+/-", "zoom", "tab", "mode") + "\n")
	b.WriteString(s.keyHints("enter", "pick", "c", "clear", "t", "theme") + "\n")
	b.WriteString(s.keyHints("g", "record", "L", "labels", "q", "quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, s.panel.Render(b.String()))
}

// Run opens the viewer full screen until the user quits.
func Run(g *graph.Graph, rec *scene.Recorder, opts ViewerOptions) error {
	_, err := tea.NewProgram(NewViewer(g, rec, opts), tea.WithAltScreen()).Run()
	return err
}
