package vcamera

import (
	"bytes"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleImage(t *testing.T) {
	data := SampleImage()

	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 16, img.Bounds().Dy())

	data[0] = 0
	assert.NotEqual(t, byte(0), SampleImage()[0], "callers get their own copy")
}

func TestSetEnv(t *testing.T) {
	t.Setenv(EnvDir, "")
	assert.False(t, Configured())

	dir := t.TempDir()
	require.NoError(t, SetEnv(dir))
	assert.Equal(t, dir, Dir())
	assert.True(t, Configured())

	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	assert.Error(t, SetEnv(file))
	assert.Error(t, SetEnv(filepath.Join(dir, "missing")))
}
