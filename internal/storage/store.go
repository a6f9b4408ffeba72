// Package storage keeps scene snapshots on disk. Each snapshot directory
// holds the scene description, a metadata file and the primitive table
// of the synced frame.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/datavis3d/internal/config"
	"github.com/san-kum/datavis3d/internal/graph"
	"github.com/san-kum/datavis3d/internal/scene"
)

const (
	metadataFile   = "metadata.json"
	sceneFile      = "scene.yaml"
	primitivesFile = "primitives.csv"
)

var ErrNotFound = errors.New("storage: snapshot not found")

var primitiveHeader = []string{"handle", "kind", "mesh", "x", "y", "z", "sx", "sy", "sz", "r", "g", "b", "visible", "instances"}

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type Metadata struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Kind       string    `json:"kind"`
	Timestamp  time.Time `json:"timestamp"`
	Series     int       `json:"series"`
	Primitives int       `json:"primitives"`
	Sequence   int       `json:"sequence"`
	Selection  string    `json:"selection,omitempty"`
}

// PrimitiveRow is one line of the primitive table.
type PrimitiveRow struct {
	Handle    string
	Kind      string
	Mesh      string
	Position  [3]float64
	Scale     [3]float64
	Color     [3]uint8
	Visible   bool
	Instances int
}

// Save writes a snapshot of the synced frame f of g, built from sc.
func (s *Store) Save(name string, sc *config.Scene, g *graph.Graph, rec *scene.Recorder, f graph.Frame) (string, error) {
	ts := s.now()
	id := fmt.Sprintf("%s_%s_%d", name, sc.Kind, ts.UnixNano())
	dir := filepath.Join(s.baseDir, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	if err := config.Save(filepath.Join(dir, sceneFile), sc); err != nil {
		return "", err
	}

	entries := rec.Entries()
	meta := Metadata{
		ID:         id,
		Name:       name,
		Kind:       sc.Kind,
		Timestamp:  ts,
		Series:     len(g.Series()),
		Primitives: len(entries),
		Sequence:   f.Sequence,
	}
	if t := f.Selection; t.Valid() {
		meta.Selection = fmt.Sprintf("%s %s", t.Series.Name(), t.Coord)
	}
	if err := writeJSON(filepath.Join(dir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writePrimitives(filepath.Join(dir, primitivesFile), entries); err != nil {
		return "", err
	}
	return id, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writePrimitives(path string, entries []scene.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(primitiveHeader); err != nil {
		return err
	}
	ff := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	for _, e := range entries {
		t, c := e.Transform, e.Material.Color
		row := []string{
			e.Handle.String(), e.Kind.String(), e.Mesh.String(),
			ff(t.Position[0]), ff(t.Position[1]), ff(t.Position[2]),
			ff(t.Scale[0]), ff(t.Scale[1]), ff(t.Scale[2]),
			strconv.Itoa(int(c.R)), strconv.Itoa(int(c.G)), strconv.Itoa(int(c.B)),
			strconv.FormatBool(e.Visible), strconv.Itoa(len(e.Instances)),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable snapshot, oldest first.
func (s *Store) List() ([]Metadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Metadata{}, nil
		}
		return nil, err
	}

	snaps := make([]Metadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		snaps = append(snaps, *meta)
	}
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].Timestamp.Before(snaps[j].Timestamp) })
	return snaps, nil
}

func (s *Store) Load(id string) (*Metadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadScene returns the scene a snapshot was built from.
func (s *Store) LoadScene(id string) (*config.Scene, error) {
	path := filepath.Join(s.baseDir, id, sceneFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return config.Load(path)
}

func (s *Store) LoadPrimitives(id string) ([]PrimitiveRow, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, primitivesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(primitiveHeader)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []PrimitiveRow{}, nil
	}

	rows := make([]PrimitiveRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := PrimitiveRow{Handle: rec[0], Kind: rec[1], Mesh: rec[2]}
		var nums [6]float64
		for i := range nums {
			if nums[i], err = strconv.ParseFloat(rec[3+i], 64); err != nil {
				return nil, fmt.Errorf("%s: %w", row.Handle, err)
			}
		}
		copy(row.Position[:], nums[:3])
		copy(row.Scale[:], nums[3:])
		for i := range row.Color {
			v, err := strconv.ParseUint(rec[9+i], 10, 8)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", row.Handle, err)
			}
			row.Color[i] = uint8(v)
		}
		if row.Visible, err = strconv.ParseBool(rec[12]); err != nil {
			return nil, fmt.Errorf("%s: %w", row.Handle, err)
		}
		if row.Instances, err = strconv.Atoi(rec[13]); err != nil {
			return nil, fmt.Errorf("%s: %w", row.Handle, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Delete removes a snapshot directory.
func (s *Store) Delete(id string) error {
	dir := filepath.Join(s.baseDir, id)
	if _, err := os.Stat(filepath.Join(dir, metadataFile)); err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return os.RemoveAll(dir)
}
