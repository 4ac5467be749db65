package loader

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

//go:embed bodies.schema.json
var bodiesSchema string

var schema = jsonschema.MustCompileString("bodies.schema.json", bodiesSchema)

type bodyFile struct {
	Bodies []struct {
		Name     string     `json:"name"`
		Position [2]float64 `json:"position"`
		Velocity [2]float64 `json:"velocity"`
		Mass     float64    `json:"mass"`
	} `json:"bodies"`
}

// ReadJSON validates the document against the body schema before decoding it.
func ReadJSON(r io.Reader, opts Options) (dynamo.Bodies, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode body file: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("body file validation failed: %w", err)
	}

	var f bodyFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unmarshal body file: %w", err)
	}

	bodies := make([]dynamo.Body, len(f.Bodies))
	for i, b := range f.Bodies {
		bodies[i] = dynamo.Body{
			Name: b.Name,
			Pos:  r2.Vec{X: b.Position[0], Y: b.Position[1]},
			Vel:  r2.Vec{X: b.Velocity[0], Y: b.Velocity[1]},
			Mass: b.Mass,
		}
	}
	return finish(bodies, opts)
}
