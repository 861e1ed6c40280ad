// Package config loads the JSON parameter file of a training run.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	pineda "github.com/stuartwilson/Pineda"
)

// Config holds the parameters, topology and dataset location of a training run
type Config struct {
	DT                float64 `json:"dt"`
	TauX              float64 `json:"tauX"`
	TauY              float64 `json:"tauY"`
	TauW              float64 `json:"tauW"`
	WeightMin         float64 `json:"weightMin"`
	WeightMax         float64 `json:"weightMax"`
	DivThresh         float64 `json:"divThresh"`
	MaxSteps          int     `json:"maxSteps"`
	ErrorSamplePeriod int     `json:"errorSamplePeriod"`
	T                 int     `json:"T"` // the number of training epochs
	Activation        string  `json:"activation"`
	ResetAllAdjoint   bool    `json:"resetAllAdjoint"`

	Pre         []int  `json:"pre"`
	Post        []int  `json:"post"`
	InputNodes  []int  `json:"inputNodes"`
	OutputNodes []int  `json:"outputNodes"`
	MapFileName string `json:"mapFileName"`
}

// Default returns the configuration used for every field a file leaves out
func Default() Config {
	return Config{
		DT:                1.0,
		TauX:              1.0,
		TauY:              1.0,
		TauW:              32.0,
		WeightMin:         -1.0,
		WeightMax:         1.0,
		DivThresh:         1e-6,
		MaxSteps:          400,
		ErrorSamplePeriod: 1000,
		T:                 100000,
		Activation:        pineda.Logistic.Name,
		MapFileName:       "unknown map",
	}
}

// Load reads the configuration file at path on top of the defaults. A relative
// mapFileName is resolved against the directory of the configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "reading config")
	}
	c, err := Parse(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	if c.MapFileName != "" && !filepath.IsAbs(c.MapFileName) {
		c.MapFileName = filepath.Join(filepath.Dir(path), c.MapFileName)
	}
	return c, nil
}

// Parse decodes and validates a JSON configuration on top of the defaults
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, errors.Wrap(err, "decoding config")
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the structure of the configuration. Node ranges are checked once
// the network size is known.
func (c Config) Validate() error {
	if len(c.Pre) != len(c.Post) {
		return errors.Wrapf(pineda.ErrConfig, "pre and post vectors have different sizes (%d != %d)", len(c.Pre), len(c.Post))
	}
	if len(c.InputNodes) == 0 || len(c.OutputNodes) == 0 {
		return errors.Wrap(pineda.ErrConfig, "inputNodes and outputNodes must not be empty")
	}
	if c.ErrorSamplePeriod < 1 {
		return errors.Wrapf(pineda.ErrParams, "errorSamplePeriod must be at least 1 (%d)", c.ErrorSamplePeriod)
	}
	if c.T < 0 {
		return errors.Wrapf(pineda.ErrParams, "negative epoch count T=%d", c.T)
	}
	if _, ok := pineda.ActivationByName(c.Activation); !ok {
		return errors.Wrapf(pineda.ErrParams, "unknown activation %q", c.Activation)
	}
	return nil
}

// Params returns the network parameters of the configuration
func (c Config) Params() pineda.Params {
	act, _ := pineda.ActivationByName(c.Activation)
	return pineda.Params{
		DT:         c.DT,
		TauX:       c.TauX,
		TauY:       c.TauY,
		TauW:       c.TauW,
		DivThresh:  c.DivThresh,
		MaxSteps:   c.MaxSteps,
		Activation: act,
	}
}

// Build creates the network described by the topology of the configuration, with
// every edge weight zero. The bias unit is added by finalizing.
func (c Config) Build() (*pineda.Network, error) {
	n, err := pineda.NumNodes(c.Pre, c.Post)
	if err != nil {
		return nil, err
	}
	b, err := pineda.NewBuilder(n, c.Params())
	if err != nil {
		return nil, err
	}
	if err := b.ConnectAll(c.Pre, c.Post); err != nil {
		return nil, err
	}
	net, err := b.Finalize()
	if err != nil {
		return nil, err
	}
	net.ResetAllAdjoint = c.ResetAllAdjoint
	return net, nil
}
