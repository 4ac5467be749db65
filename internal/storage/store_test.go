package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/orbitsim/internal/sim"
)

func testTrajectory() *sim.Trajectory {
	return &sim.Trajectory{
		Names: []string{"Earth", "Sun"},
		Times: []float64{0, 86400, 172800.5},
		Frames: [][]r2.Vec{
			{{X: 0, Y: 1.495978707e11}, {}},
			{{X: 2.57472e9, Y: 1.4957571e11}, {X: -12.5, Y: 3}},
			{{X: 5.1487e9, Y: 1.4951e11}, {X: -25, Y: 6.25}},
		},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	meta := RunMetadata{
		Source:     "sun_earth",
		Integrator: "leapfrog",
		BaseDt:     86400,
		Factor:     1,
		Ticks:      2,
		Metrics:    map[string]float64{"energy_drift": 1.5e-5},
	}
	traj := testTrajectory()

	runID, err := st.Save(meta, traj)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	loaded, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.ID != runID {
		t.Errorf("expected id %s, got %s", runID, loaded.ID)
	}
	if loaded.Integrator != "leapfrog" {
		t.Errorf("expected integrator 'leapfrog', got '%s'", loaded.Integrator)
	}
	if loaded.Metrics["energy_drift"] != 1.5e-5 {
		t.Errorf("expected drift 1.5e-5, got %g", loaded.Metrics["energy_drift"])
	}
	if len(loaded.Bodies) != 2 || loaded.Bodies[0] != "Earth" {
		t.Errorf("expected body names from trajectory, got %v", loaded.Bodies)
	}
	if loaded.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}

	got, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("load trajectory failed: %v", err)
	}
	if got.Len() != traj.Len() {
		t.Fatalf("expected %d frames, got %d", traj.Len(), got.Len())
	}
	for i := range traj.Frames {
		if got.Times[i] != traj.Times[i] {
			t.Errorf("frame %d: time %g, want %g", i, got.Times[i], traj.Times[i])
		}
		for k := range traj.Frames[i] {
			if got.Frames[i][k] != traj.Frames[i][k] {
				t.Errorf("frame %d body %d: %v, want %v", i, k, got.Frames[i][k], traj.Frames[i][k])
			}
		}
	}
	if got.Names[1] != "Sun" {
		t.Errorf("expected names to survive, got %v", got.Names)
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	first, err := st.Save(RunMetadata{Source: "inner"}, testTrajectory())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	second, err := st.Save(RunMetadata{Source: "inner"}, testTrajectory())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if first == second {
		t.Fatalf("run ids collide: %s", first)
	}

	if err := os.Mkdir(filepath.Join(tmpDir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runID, err := st.Save(RunMetadata{ID: "fixed"}, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID != "fixed" {
		t.Errorf("expected run id 'fixed', got %s", runID)
	}

	runDir := filepath.Join(tmpDir, runID)
	for _, name := range []string{"metadata.json", "trajectory.csv"} {
		if _, err := os.Stat(filepath.Join(runDir, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}

	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("load trajectory failed: %v", err)
	}
	if traj.Len() != 0 {
		t.Errorf("expected empty trajectory, got %d frames", traj.Len())
	}

	if _, err := st.Load("missing"); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	meta := RunMetadata{ID: "x", Integrator: "euler"}
	if err := ExportJSON(&buf, meta, testTrajectory()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var out struct {
		ID         string         `json:"id"`
		Integrator string         `json:"integrator"`
		Times      []float64      `json:"times"`
		Frames     [][][2]float64 `json:"frames"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if out.ID != "x" || out.Integrator != "euler" {
		t.Errorf("metadata not embedded: %+v", out)
	}
	if len(out.Frames) != 3 || out.Frames[0][0][1] != 1.495978707e11 {
		t.Errorf("unexpected frames: %v", out.Frames)
	}
}
