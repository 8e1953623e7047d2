package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"masterplan/internal/geom"
)

func TestConvertSVG(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "plan.svg")
	require.NoError(t, os.WriteFile(in, []byte(`<svg viewBox="0 0 200 100">
		<rect id="V_1" x="10" y="10" width="40" height="30"/>
		<polygon id="CLUBHOUSE" points="100,10 150,10 150,60"/>
	</svg>`), 0o644))

	var out bytes.Buffer
	require.NoError(t, convert([]string{in}, &out))
	pl, err := geom.DecodePlan(out.Bytes())
	require.NoError(t, err)
	assert.Equal(t, geom.BBox{MaxX: 200, MaxY: 100}, pl.ViewBox)
	require.Len(t, pl.Shapes, 2)
	assert.Equal(t, "V_1", pl.Shapes[0].ID)
	assert.Equal(t, "CLUBHOUSE", pl.Shapes[1].ID)

	dst := filepath.Join(dir, "plan.json")
	require.NoError(t, convert([]string{in, dst}, &out))
	loaded, err := geom.LoadPlan(dst)
	require.NoError(t, err)
	assert.Equal(t, pl, loaded)
}

func TestConvertUsage(t *testing.T) {
	assert.Error(t, convert(nil, &bytes.Buffer{}))
	assert.Error(t, convert([]string{"a", "b", "c"}, &bytes.Buffer{}))
	assert.Error(t, convert([]string{filepath.Join(t.TempDir(), "missing.svg")}, &bytes.Buffer{}))
}

type failingClose struct {
	bytes.Buffer
	closed bool
}

var errDiskFull = errors.New("disk full")

func (f *failingClose) Close() error {
	f.closed = true
	return errDiskFull
}

func TestConvertReportsCloseError(t *testing.T) {
	pl := geom.Plan{ViewBox: geom.BBox{MaxX: 10, MaxY: 10}}
	out := &failingClose{}
	err := writeAndClose(out, pl)
	require.ErrorIs(t, err, errDiskFull)
	assert.True(t, out.closed)
	assert.NotZero(t, out.Len())

	// an unwritable destination fails before anything is encoded
	in := filepath.Join(t.TempDir(), "plan.svg")
	require.NoError(t, os.WriteFile(in, []byte(`<svg viewBox="0 0 10 10"><rect id="V_1" x="1" y="1" width="4" height="4"/></svg>`), 0o644))
	assert.Error(t, convert([]string{in, filepath.Join(t.TempDir(), "missing", "out.json")}, &bytes.Buffer{}))
}
