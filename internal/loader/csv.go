package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

// Column names of the planetary dataset. Other columns are ignored.
const (
	ColName     = "Planet"
	ColMass     = "Mass (10^24kg)"
	ColDistance = "Distance from Sun (10^6 km)"
	ColVelocity = "Orbital Velocity (km/s)"
)

// ErrMissingColumn indicates a dataset without one of the required columns.
var ErrMissingColumn = errors.New("loader: missing column")

// ReadCSV reads the planetary dataset. Each planet is placed on the +y axis at
// its mean distance from the Sun, moving along +x at its mean orbital speed.
func ReadCSV(r io.Reader, opts Options) (dynamo.Bodies, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, dynamo.ErrNoBodies
		}
		return nil, err
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	for _, col := range []string{ColName, ColMass, ColDistance, ColVelocity} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	var bodies []dynamo.Body
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		b, err := parseRecord(rec, idx)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		bodies = append(bodies, b)
	}

	return finish(bodies, opts)
}

func parseRecord(rec []string, idx map[string]int) (dynamo.Body, error) {
	field := func(col string) (float64, error) {
		i := idx[col]
		if i >= len(rec) {
			return 0, fmt.Errorf("%s: missing value", col)
		}
		v, err := parseNumber(rec[i])
		if err != nil {
			return 0, fmt.Errorf("%s: %w", col, err)
		}
		return v, nil
	}

	mass, err := field(ColMass)
	if err != nil {
		return dynamo.Body{}, err
	}
	dist, err := field(ColDistance)
	if err != nil {
		return dynamo.Body{}, err
	}
	speed, err := field(ColVelocity)
	if err != nil {
		return dynamo.Body{}, err
	}

	return dynamo.Body{
		Name: strings.TrimSpace(rec[idx[ColName]]),
		Pos:  r2.Vec{Y: dist * 1e9},
		Vel:  r2.Vec{X: speed * 1e3},
		Mass: mass * 1e24,
	}, nil
}

// parseNumber accepts thousands separators ("4,331").
func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 64)
}
