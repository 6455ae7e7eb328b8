package chart

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"capital-engine/internal/simulation"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestRender_PNG(t *testing.T) {
	ens := simulation.Ensemble{
		{100, 120, 130, 90},
		{100, 80, 60, 0},
		{100, 140, 180, 210},
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, ens, DefaultOptions()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestRender_SVGWithoutMedian(t *testing.T) {
	opts := DefaultOptions()
	opts.Format = "svg"
	opts.Median = false

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, simulation.Ensemble{{1, 2, 3}}, opts))
	assert.Contains(t, buf.String(), "<svg")
}

func TestRender_FillsZeroOptions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, simulation.Ensemble{{1, 2}}, Options{}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestRender_Errors(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, Render(&buf, nil, DefaultOptions()), ErrEmptyEnsemble)

	opts := DefaultOptions()
	opts.Format = "bmp"
	assert.Error(t, Render(&buf, simulation.Ensemble{{1, 2}}, opts))
}
