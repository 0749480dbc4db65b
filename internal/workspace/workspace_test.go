package workspace

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRunIDFormat(t *testing.T) {
	ws, err := Create(t.TempDir())
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^run_\d{8}_\d{6}_[0-9a-f]{6}$`), ws.RunID)
	info, err := os.Stat(ws.Path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCreateNeverSharesDirectory(t *testing.T) {
	root := t.TempDir()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		ws, err := Create(root)
		require.NoError(t, err)
		assert.False(t, seen[ws.Path], "workspace path reused: %s", ws.Path)
		seen[ws.Path] = true
	}
}

func TestLayoutPaths(t *testing.T) {
	ws := &Workspace{RunID: "run_x", Path: "/tmp/run_x"}

	assert.Equal(t, "/tmp/run_x/planning.json", ws.PlanningPath())
	assert.Equal(t, "/tmp/run_x/iter_2.png", ws.IterArtifactPath(2))
	assert.Equal(t, "/tmp/run_x/iter_2_details.json", ws.IterDetailsPath(2))
	assert.Equal(t, "/tmp/run_x/iter_2.py", ws.CodePath(2))
	assert.Equal(t, "/tmp/run_x/final_output.png", ws.FinalPath())
}

func TestWritePlanningAndIterationDetails(t *testing.T) {
	ws, err := Create(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, ws.WritePlanning(&PlanningRecord{
		RetrievedExamples:  []string{"ex1", "ex2"},
		InitialDescription: "a diagram",
	}))
	require.NoError(t, ws.WriteIterationDetails(1, &IterationRecord{
		Description:       "a diagram",
		CriticSuggestions: []string{"fix arrows"},
	}))

	data, err := os.ReadFile(ws.PlanningPath())
	require.NoError(t, err)
	var plan PlanningRecord
	require.NoError(t, json.Unmarshal(data, &plan))
	assert.Equal(t, []string{"ex1", "ex2"}, plan.RetrievedExamples)

	data, err = os.ReadFile(ws.IterDetailsPath(1))
	require.NoError(t, err)
	var iter IterationRecord
	require.NoError(t, json.Unmarshal(data, &iter))
	assert.Equal(t, 1, iter.Iteration)
	assert.Equal(t, []string{"fix arrows"}, iter.CriticSuggestions)
}

func TestCopyFinal(t *testing.T) {
	ws, err := Create(t.TempDir())
	require.NoError(t, err)

	src := filepath.Join(ws.Path, "iter_3.png")
	require.NoError(t, os.WriteFile(src, []byte("png-bytes"), 0644))

	require.NoError(t, ws.CopyFinal(src))

	data, err := os.ReadFile(ws.FinalPath())
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(t.TempDir(), "run_nope")
	assert.Error(t, err)
}
