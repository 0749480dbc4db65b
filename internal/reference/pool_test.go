package reference

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeIndex(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.json"), []byte(content), 0644))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeIndex(t, dir, `{
		"examples": [
			{"id": "ex1", "source_context": "a transformer encoder", "caption": "architecture overview", "image_path": "images/ex1.png", "category": "architecture"},
			{"id": "ex2", "source_context": "training curves", "caption": "loss over epochs", "image_path": "/abs/ex2.png"},
			{"id": "ex3", "source_context": "no image here", "caption": "text only"}
		]
	}`)

	examples, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, examples, 3)

	assert.Equal(t, "ex1", examples[0].ID)
	assert.Equal(t, filepath.Join(dir, "images/ex1.png"), examples[0].ImagePath)
	assert.Equal(t, "architecture", examples[0].Category)

	// absolute paths are left alone
	assert.Equal(t, "/abs/ex2.png", examples[1].ImagePath)
	assert.Empty(t, examples[2].ImagePath)
}

func TestLoadMissingIndex(t *testing.T) {
	examples, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, examples)
}

func TestLoadNoDir(t *testing.T) {
	examples, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, examples)
}

func TestLoadMalformedIndex(t *testing.T) {
	dir := t.TempDir()
	writeIndex(t, dir, `{"examples": [`)

	_, err := Load(dir)
	assert.Error(t, err)
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "filter.lua")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestFilterKeepsMatching(t *testing.T) {
	pool := []Example{
		{ID: "a", Category: "architecture"},
		{ID: "b", Category: "results"},
		{ID: "c", Category: "architecture"},
	}
	script := writeScript(t, `
function keep(example)
    return example.category == "architecture"
end
`)

	kept, err := Filter(pool, script)
	require.NoError(t, err)
	require.Len(t, kept, 2)
	assert.Equal(t, "a", kept[0].ID)
	assert.Equal(t, "c", kept[1].ID)
}

func TestFilterMissingKeepFunction(t *testing.T) {
	script := writeScript(t, `local x = 1`)

	_, err := Filter([]Example{{ID: "a"}}, script)
	assert.ErrorContains(t, err, "keep")
}

func TestFilterMissingScript(t *testing.T) {
	_, err := Filter([]Example{{ID: "a"}}, filepath.Join(t.TempDir(), "nope.lua"))
	assert.Error(t, err)
}

func TestFilterSandboxBlocksIO(t *testing.T) {
	script := writeScript(t, `
function keep(example)
    io.open("/etc/passwd")
    return true
end
`)

	_, err := Filter([]Example{{ID: "a"}}, script)
	assert.Error(t, err)
}

func TestFilterSandboxBlocksRandom(t *testing.T) {
	script := writeScript(t, `
function keep(example)
    return math.random() > 0.5
end
`)

	_, err := Filter([]Example{{ID: "a"}}, script)
	assert.Error(t, err)
}
