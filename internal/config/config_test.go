package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pineda "github.com/stuartwilson/Pineda"
)

const minimal = `{"pre": [0, 1], "post": [1, 2], "inputNodes": [0], "outputNodes": [2]}`

func TestParseDefaults(t *testing.T) {
	c, err := Parse([]byte(minimal))
	require.NoError(t, err)

	want := Default()
	want.Pre = []int{0, 1}
	want.Post = []int{1, 2}
	want.InputNodes = []int{0}
	want.OutputNodes = []int{2}
	assert.Equal(t, want, c)

	p := c.Params()
	assert.Equal(t, 32.0, p.TauW)
	assert.Equal(t, 400, p.MaxSteps)
	assert.Equal(t, 1e-6, p.DivThresh)
	assert.Equal(t, pineda.Logistic.Name, p.Activation.Name)
}

func TestParseOverrides(t *testing.T) {
	c, err := Parse([]byte(`{"pre": [0], "post": [1], "inputNodes": [0], "outputNodes": [1],
		"tauW": 4, "maxSteps": 50, "T": 2000, "errorSamplePeriod": 100, "activation": "fastlogistic"}`))
	require.NoError(t, err)
	assert.Equal(t, 4.0, c.TauW)
	assert.Equal(t, 50, c.MaxSteps)
	assert.Equal(t, 2000, c.T)
	assert.Equal(t, 100, c.ErrorSamplePeriod)
	assert.Equal(t, pineda.FastLogistic.Name, c.Params().Activation.Name)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`{"pre": [0, 1], "post": [1], "inputNodes": [0], "outputNodes": [1]}`))
	assert.ErrorIs(t, err, pineda.ErrConfig)

	_, err = Parse([]byte(`{"pre": [0], "post": [1], "outputNodes": [1]}`))
	assert.ErrorIs(t, err, pineda.ErrConfig)

	_, err = Parse([]byte(`{"pre": [0], "post": [1], "inputNodes": [0], "outputNodes": [1], "activation": "tanh"}`))
	assert.ErrorIs(t, err, pineda.ErrParams)

	_, err = Parse([]byte(`{"pre": [0], "post": [1], "inputNodes": [0], "outputNodes": [1], "errorSamplePeriod": 0}`))
	assert.ErrorIs(t, err, pineda.ErrParams)

	_, err = Parse([]byte(`{"pre": [0], `))
	assert.Error(t, err)
}

func TestBuild(t *testing.T) {
	c, err := Parse([]byte(minimal))
	require.NoError(t, err)
	c.ResetAllAdjoint = true
	net, err := c.Build()
	require.NoError(t, err)
	assert.Equal(t, 3, net.NumNodes())
	// 2 edges plus 3 bias edges
	assert.Equal(t, 5, net.NumEdges())
	assert.True(t, net.ResetAllAdjoint)

	c.TauX = 0
	_, err = c.Build()
	assert.ErrorIs(t, err, pineda.ErrParams)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"pre": [0], "post": [1], "inputNodes": [0], "outputNodes": [1], "mapFileName": "map.json"}`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "map.json"), c.MapFileName)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestLoadXORExample(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "examples", "xor", "config.json"))
	require.NoError(t, err)
	net, err := c.Build()
	require.NoError(t, err)
	assert.Equal(t, 5, net.NumNodes())
	assert.Equal(t, 9+5, net.NumEdges())
	assert.Equal(t, []int{0, 1}, c.InputNodes)
	assert.Equal(t, []int{3}, c.OutputNodes)
}
