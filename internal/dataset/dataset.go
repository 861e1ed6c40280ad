// Package dataset loads input/output maps and splits them into training patterns.
package dataset

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	pineda "github.com/stuartwilson/Pineda"
)

// Map is a flattened dataset: the input values of every pattern back to back, and
// likewise the output values
type Map struct {
	In  []float64 `json:"In"`
	Out []float64 `json:"Out"`
}

// Load reads a JSON map file with "In" and "Out" arrays
func Load(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Map{}, errors.Wrap(err, "reading map")
	}
	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return Map{}, errors.Wrapf(err, "decoding map %s", path)
	}
	return m, nil
}

// Patterns splits the map into patterns of nIn inputs and nOut outputs
func (m Map) Patterns(nIn, nOut int) ([]pineda.Pattern, error) {
	return Reshape(m.In, m.Out, nIn, nOut)
}

// Reshape splits flattened row-major input and output values into patterns of nIn
// inputs and nOut outputs. Both arrays must describe the same number of patterns.
func Reshape(in, out []float64, nIn, nOut int) ([]pineda.Pattern, error) {
	if nIn < 1 || nOut < 1 {
		return nil, errors.Wrapf(pineda.ErrConfig, "pattern widths must be positive (%d, %d)", nIn, nOut)
	}
	if len(in)%nIn != 0 {
		return nil, errors.Wrapf(pineda.ErrConfig, "%d input values do not split into rows of %d", len(in), nIn)
	}
	if len(out)%nOut != 0 {
		return nil, errors.Wrapf(pineda.ErrConfig, "%d output values do not split into rows of %d", len(out), nOut)
	}
	nPoint := len(in) / nIn
	if nPoint != len(out)/nOut {
		return nil, errors.Wrapf(pineda.ErrConfig, "map input/output dims don't match (%d inputs, %d outputs)", nPoint, len(out)/nOut)
	}
	res := make([]pineda.Pattern, nPoint)
	for i := range res {
		res[i] = pineda.Pattern{
			Input:  append([]float64(nil), in[i*nIn:(i+1)*nIn]...),
			Output: append([]float64(nil), out[i*nOut:(i+1)*nOut]...),
		}
	}
	return res, nil
}
