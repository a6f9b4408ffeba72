package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/datavis3d/internal/axis"
	"github.com/san-kum/datavis3d/internal/graph"
	"github.com/san-kum/datavis3d/internal/scene"
)

// Document is the JSON form of one synced frame.
type Document struct {
	Kind       string          `json:"kind"`
	Sequence   int             `json:"sequence"`
	Camera     [3]float64      `json:"camera"`
	Mode       string          `json:"selection_mode"`
	Selection  *Selection      `json:"selection,omitempty"`
	Axes       [3]AxisDoc      `json:"axes"`
	Lines      [][2][3]float64 `json:"grid_lines"`
	Labels     []LabelDoc      `json:"labels"`
	Primitives []Primitive     `json:"primitives"`

	CustomLabels []LabelDoc `json:"custom_labels,omitempty"`
	CustomItem   *int       `json:"custom_item,omitempty"`
	Slice        *SliceDoc  `json:"slice,omitempty"`
}

// SliceDoc is the cross section through the selected row or column.
type SliceDoc struct {
	Row    bool                `json:"row"`
	Index  int                 `json:"index"`
	Label  string              `json:"label,omitempty"`
	Series []graph.SliceSeries `json:"series"`
}

type Selection struct {
	Series string `json:"series"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
}

type AxisDoc struct {
	Title    string   `json:"title,omitempty"`
	Min      float64  `json:"min"`
	Max      float64  `json:"max"`
	Reversed bool     `json:"reversed,omitempty"`
	Labels   []string `json:"labels"`
}

type LabelDoc struct {
	Axis     string     `json:"axis"`
	Text     string     `json:"text"`
	Position [3]float64 `json:"position"`
}

// Primitive is one backend entry. Instanced and surface entries report
// their instance and vertex counts instead of the full geometry.
type Primitive struct {
	Handle    string     `json:"handle"`
	Kind      string     `json:"kind"`
	Mesh      string     `json:"mesh"`
	Position  [3]float64 `json:"position"`
	Scale     [3]float64 `json:"scale"`
	Color     string     `json:"color"`
	Visible   bool       `json:"visible"`
	Pickable  bool       `json:"pickable"`
	Instances int        `json:"instances,omitempty"`
	Vertices  int        `json:"vertices,omitempty"`
}

func NewDocument(g *graph.Graph, rec *scene.Recorder, f graph.Frame) Document {
	doc := Document{
		Kind:     f.Kind.String(),
		Sequence: f.Sequence,
		Camera:   [3]float64{f.Camera.XRotation, f.Camera.YRotation, f.Camera.Zoom},
		Mode:     f.Mode.String(),
	}
	if t := f.Selection; t.Valid() {
		doc.Selection = &Selection{Series: t.Series.Name(), Row: t.Coord.Row, Col: t.Coord.Col}
	}
	for i, a := range []*axis.Axis{g.AxisX(), g.AxisY(), g.AxisZ()} {
		doc.Axes[i] = AxisDoc{
			Title:    a.Title,
			Min:      a.Min(),
			Max:      a.Max(),
			Reversed: a.Reversed(),
			Labels:   a.Labels(),
		}
	}
	for _, l := range f.Layout.Lines {
		doc.Lines = append(doc.Lines, [2][3]float64{l.Start, l.End})
	}
	for _, l := range f.Layout.Labels {
		doc.Labels = append(doc.Labels, LabelDoc{Axis: l.Axis.String(), Text: l.Text, Position: l.Position})
	}
	for _, l := range f.CustomLabels {
		doc.CustomLabels = append(doc.CustomLabels, LabelDoc{Axis: "custom", Text: l.Text, Position: l.Position})
	}
	if i := f.CustomSelection; i >= 0 {
		doc.CustomItem = &i
	}
	if sl := f.Slice; sl != nil {
		doc.Slice = &SliceDoc{Row: sl.Row, Index: sl.Index, Label: sl.Label, Series: sl.Series}
	}
	for _, e := range rec.Entries() {
		p := Primitive{
			Handle:    e.Handle.String(),
			Kind:      e.Kind.String(),
			Mesh:      e.Mesh.String(),
			Position:  e.Transform.Position,
			Scale:     e.Transform.Scale,
			Color:     hex(e.Material.Color),
			Visible:   e.Visible,
			Pickable:  e.Pickable,
			Instances: len(e.Instances),
		}
		if e.MeshData != nil {
			p.Vertices = len(e.MeshData.Vertices)
		}
		doc.Primitives = append(doc.Primitives, p)
	}
	return doc
}

func WriteJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
