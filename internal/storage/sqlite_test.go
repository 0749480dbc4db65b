package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpataki/figgen/internal/models"
)

func openTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRunRoundTrip(t *testing.T) {
	s := openTestStorage(t)

	id, err := s.CreateRun(&models.Run{
		RunID:   "run_20260101_120000_abc123",
		Mode:    models.ModeDiagram,
		Status:  models.RunStatusPending,
		WorkDir: "/tmp/run_x",
		Context: "methodology text",
		Intent:  "figure 1 overview",
	})
	require.NoError(t, err)

	require.NoError(t, s.UpdateRunStatus(id, models.RunStatusRunning))
	require.NoError(t, s.CompleteRun(id, 2, "/tmp/run_x/final_output.png"))

	run, err := s.GetRun("run_20260101_120000_abc123")
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusComplete, run.Status)
	assert.Equal(t, 2, run.Iterations)
	require.NotNil(t, run.FinalPath)
	assert.Equal(t, "/tmp/run_x/final_output.png", *run.FinalPath)
	require.NotNil(t, run.CompletedAt)
	assert.Nil(t, run.Error)
}

func TestFailRun(t *testing.T) {
	s := openTestStorage(t)

	id, err := s.CreateRun(&models.Run{
		RunID: "run_fail", Mode: models.ModePlot,
		Status: models.RunStatusPending, WorkDir: "/tmp/r",
	})
	require.NoError(t, err)
	require.NoError(t, s.FailRun(id, 1, "image generation failed"))

	run, err := s.GetRun("run_fail")
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusFailed, run.Status)
	require.NotNil(t, run.Error)
	assert.Equal(t, "image generation failed", *run.Error)
}

func TestIterationsRoundTrip(t *testing.T) {
	s := openTestStorage(t)

	id, err := s.CreateRun(&models.Run{
		RunID: "run_iters", Mode: models.ModeDiagram,
		Status: models.RunStatusRunning, WorkDir: "/tmp/r",
	})
	require.NoError(t, err)

	_, err = s.AddIteration(&models.Iteration{
		RunID: id, Index: 1, ArtifactPath: "/tmp/r/iter_1.png",
		Suggestions: []string{"fix label", "lighten fill"},
		Revised:     true, DurationMS: 1234,
	})
	require.NoError(t, err)
	_, err = s.AddIteration(&models.Iteration{
		RunID: id, Index: 2, ArtifactPath: "/tmp/r/iter_2.png",
	})
	require.NoError(t, err)

	iters, err := s.ListIterations(id)
	require.NoError(t, err)
	require.Len(t, iters, 2)
	assert.Equal(t, []string{"fix label", "lighten fill"}, iters[0].Suggestions)
	assert.True(t, iters[0].Revised)
	assert.Equal(t, int64(1234), iters[0].DurationMS)
	assert.Empty(t, iters[1].Suggestions)
}

func TestListRunsNewestFirst(t *testing.T) {
	s := openTestStorage(t)

	for _, rid := range []string{"run_a", "run_b"} {
		_, err := s.CreateRun(&models.Run{
			RunID: rid, Mode: models.ModeDiagram,
			Status: models.RunStatusPending, WorkDir: "/tmp/" + rid,
		})
		require.NoError(t, err)
	}

	runs, err := s.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
}

func TestDeleteRunCascades(t *testing.T) {
	s := openTestStorage(t)

	id, err := s.CreateRun(&models.Run{
		RunID: "run_del", Mode: models.ModeDiagram,
		Status: models.RunStatusComplete, WorkDir: "/tmp/r",
	})
	require.NoError(t, err)
	_, err = s.AddIteration(&models.Iteration{RunID: id, Index: 1, ArtifactPath: "/tmp/r/iter_1.png"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteRun("run_del"))

	_, err = s.GetRun("run_del")
	assert.Error(t, err)
	iters, err := s.ListIterations(id)
	require.NoError(t, err)
	assert.Empty(t, iters)
}
