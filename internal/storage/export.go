package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/orbitsim/internal/sim"
)

type ExportData struct {
	RunMetadata
	Times  []float64      `json:"times"`
	Frames [][][2]float64 `json:"frames"`
}

// ExportJSON writes a run and its trajectory as one indented document.
func ExportJSON(w io.Writer, meta RunMetadata, traj *sim.Trajectory) error {
	data := ExportData{RunMetadata: meta}
	if traj != nil {
		data.Times = traj.Times
		data.Frames = make([][][2]float64, len(traj.Frames))
		for i, frame := range traj.Frames {
			data.Frames[i] = make([][2]float64, len(frame))
			for k, p := range frame {
				data.Frames[i][k] = [2]float64{p.X, p.Y}
			}
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
