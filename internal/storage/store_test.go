package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/datavis3d/internal/config"
	"github.com/san-kum/datavis3d/internal/scene"
)

func snapshot(t *testing.T, st *Store, name, kind, preset string) string {
	t.Helper()
	sc, err := config.GetPreset(kind, preset)
	if err != nil {
		t.Fatal(err)
	}
	rec := scene.NewRecorder()
	g, err := sc.Build(rec)
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()
	f, err := g.Sync()
	if err != nil {
		t.Fatal(err)
	}
	id, err := st.Save(name, sc, g, rec, f)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	return id
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	id := snapshot(t, st, "test", "bar", "stacked")
	if id == "" {
		t.Error("expected non-empty snapshot id")
	}

	meta, err := st.Load(id)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Kind != "bar" || meta.Name != "test" {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Series != 2 {
		t.Errorf("expected 2 series, got %d", meta.Series)
	}

	rows, err := st.LoadPrimitives(id)
	if err != nil {
		t.Fatalf("load primitives failed: %v", err)
	}
	if len(rows) != meta.Primitives || len(rows) == 0 {
		t.Errorf("expected %d primitives, got %d", meta.Primitives, len(rows))
	}

	sc, err := st.LoadScene(id)
	if err != nil {
		t.Fatalf("load scene failed: %v", err)
	}
	if len(sc.Series) != 2 || sc.Selection != "item|multiseries" {
		t.Errorf("unexpected scene %+v", sc)
	}
}

func TestStorePrimitiveValues(t *testing.T) {
	st := New(t.TempDir())
	rec := scene.NewRecorder()
	sc, _ := config.GetPreset("scatter", "cloud")
	g, err := sc.Build(rec)
	if err != nil {
		t.Fatal(err)
	}
	f, _ := g.Sync()

	id, err := st.Save("cloud", sc, g, rec, f)
	if err != nil {
		t.Fatal(err)
	}
	rows, err := st.LoadPrimitives(id)
	if err != nil {
		t.Fatal(err)
	}
	for i, e := range rec.Entries() {
		r := rows[i]
		if r.Handle != e.Handle.String() || r.Instances != len(e.Instances) {
			t.Errorf("row %d: expected %s with %d instances, got %+v", i, e.Handle, len(e.Instances), r)
		}
		if r.Color != [3]uint8{e.Material.Color.R, e.Material.Color.G, e.Material.Color.B} {
			t.Errorf("row %d: colour mismatch %v", i, r.Color)
		}
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	snaps, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(snaps) != 0 {
		t.Errorf("expected 0 snapshots, got %d", len(snaps))
	}

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	step := 0
	st.now = func() time.Time {
		step++
		return base.Add(-time.Duration(step) * time.Hour)
	}
	first := snapshot(t, st, "a", "surface", "sinc")
	second := snapshot(t, st, "b", "surface", "ripple")

	snaps, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(snaps))
	}
	if snaps[0].ID != second || snaps[1].ID != first {
		t.Errorf("expected oldest first, got %s then %s", snaps[0].ID, snaps[1].ID)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	id := snapshot(t, st, "test", "scatter", "helix")
	for _, name := range []string{"metadata.json", "scene.yaml", "primitives.csv"} {
		if _, err := os.Stat(filepath.Join(tmpDir, id, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}

	if err := st.Delete(id); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := st.Load(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := st.Delete(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for a second delete, got %v", err)
	}
}
