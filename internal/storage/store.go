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
	"strings"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/orbitsim/internal/sim"
)

const (
	metaFile       = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Source     string             `json:"source"`
	Timestamp  time.Time          `json:"timestamp"`
	Integrator string             `json:"integrator"`
	BaseDt     float64            `json:"base_dt"`
	Factor     float64            `json:"factor"`
	Ticks      int                `json:"ticks"`
	Steps      int                `json:"steps"`
	SimTime    float64            `json:"sim_time"`
	Bodies     []string           `json:"bodies"`
	Metrics    map[string]float64 `json:"metrics"`
	Error      string             `json:"error,omitempty"`
}

// Save writes a run directory and returns its ID. ID, Timestamp and Bodies
// are filled in when empty.
func (s *Store) Save(meta RunMetadata, traj *sim.Trajectory) (string, error) {
	now := time.Now()
	if meta.Timestamp.IsZero() {
		meta.Timestamp = now
	}
	if len(meta.Bodies) == 0 && traj != nil {
		meta.Bodies = traj.Names
	}

	runDir, runID, err := s.makeRunDir(meta.ID, meta.Source, now)
	if err != nil {
		return "", err
	}
	meta.ID = runID

	if err := writeJSON(filepath.Join(runDir, metaFile), meta); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(runDir, trajectoryFile))
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if traj != nil {
		if err := writeTrajectory(w, traj); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) makeRunDir(id, source string, now time.Time) (string, string, error) {
	if err := s.Init(); err != nil {
		return "", "", err
	}
	if id == "" {
		if source == "" {
			source = "run"
		}
		id = fmt.Sprintf("%s_%d", sanitize(source), now.Unix())
	}

	runID := id
	for n := 2; ; n++ {
		dir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return dir, runID, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", "", err
		}
		runID = fmt.Sprintf("%s_%d", id, n)
	}
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ' ', ':':
			return '_'
		}
		return r
	}, s)
}

func writeJSON(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTrajectory(w *csv.Writer, traj *sim.Trajectory) error {
	header := []string{"time"}
	for _, name := range traj.Names {
		header = append(header, name+".x", name+".y")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, frame := range traj.Frames {
		row := []string{strconv.FormatFloat(traj.Times[i], 'g', -1, 64)}
		for _, p := range frame {
			row = append(row,
				strconv.FormatFloat(p.X, 'g', -1, 64),
				strconv.FormatFloat(p.Y, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// List returns every readable run, oldest first. Directories without valid
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metaFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadTrajectory(runID string) (*sim.Trajectory, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	traj := &sim.Trajectory{}
	if len(records) == 0 {
		return traj, nil
	}

	header := records[0]
	if len(header) < 1 || header[0] != "time" || len(header)%2 != 1 {
		return nil, fmt.Errorf("run %s: malformed trajectory header", runID)
	}
	for i := 1; i < len(header); i += 2 {
		traj.Names = append(traj.Names, strings.TrimSuffix(header[i], ".x"))
	}

	for line, rec := range records[1:] {
		vals := make([]float64, len(rec))
		for j, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("run %s: line %d: %w", runID, line+2, err)
			}
			vals[j] = v
		}

		frame := make([]r2.Vec, len(traj.Names))
		for k := range frame {
			frame[k] = r2.Vec{X: vals[1+2*k], Y: vals[2+2*k]}
		}
		traj.Times = append(traj.Times, vals[0])
		traj.Frames = append(traj.Frames, frame)
	}
	return traj, nil
}
