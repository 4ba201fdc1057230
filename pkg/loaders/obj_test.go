package loaders

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempOBJ(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "mesh.obj")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadOBJ_TriangleFace(t *testing.T) {
	path := writeTempOBJ(t, `
# a single triangle
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`)
	data, err := LoadOBJ(path)
	require.NoError(t, err)
	assert.Len(t, data.Vertices, 3)
	assert.Equal(t, []int{0, 1, 2}, data.Faces)
}

func TestLoadOBJ_FanTriangulatesQuad(t *testing.T) {
	path := writeTempOBJ(t, `
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`)
	data, err := LoadOBJ(path)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 0, 2, 3}, data.Faces)
}

func TestLoadOBJ_FaceWithTextureAndNormalIndices(t *testing.T) {
	path := writeTempOBJ(t, `
v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vn 0 0 1
f 1/1/1 2/1/1 3/1/1
`)
	data, err := LoadOBJ(path)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, data.Faces)
}

func TestLoadOBJ_NegativeRelativeIndices(t *testing.T) {
	path := writeTempOBJ(t, `
v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`)
	data, err := LoadOBJ(path)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, data.Faces)
}

func TestLoadOBJ_MissingFileReturnsError(t *testing.T) {
	_, err := LoadOBJ("/nonexistent/path/mesh.obj")
	assert.Error(t, err)
}
