// Package loader turns body datasets into validated body sets. Every loader
// ends in dynamo.NewBodies, so the simulator never sees an empty or partially
// parsed set.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

// SunMass is used for the optional central body.
const SunMass = 1.988416e30

type Options struct {
	// IncludeSun prepends a Sun at rest at the origin.
	IncludeSun bool
	// Only keeps the named bodies, in dataset order. Matching ignores case.
	Only []string
}

func Sun() dynamo.Body {
	return dynamo.Body{Name: "Sun", Pos: r2.Vec{}, Vel: r2.Vec{}, Mass: SunMass}
}

// LoadFile picks a format by file extension.
func LoadFile(path string, opts Options) (dynamo.Bodies, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(f, opts)
	case ".json":
		return ReadJSON(f, opts)
	default:
		return nil, fmt.Errorf("unsupported body file %q: want .csv or .json", path)
	}
}

func finish(bodies []dynamo.Body, opts Options) (dynamo.Bodies, error) {
	if len(opts.Only) > 0 {
		keep := make(map[string]bool, len(opts.Only))
		for _, name := range opts.Only {
			keep[strings.ToLower(name)] = true
		}
		filtered := bodies[:0]
		for _, b := range bodies {
			if keep[strings.ToLower(b.Name)] {
				filtered = append(filtered, b)
			}
		}
		bodies = filtered
	}
	if opts.IncludeSun {
		bodies = append([]dynamo.Body{Sun()}, bodies...)
	}
	return dynamo.NewBodies(bodies...)
}
