package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mpataki/figgen/internal/models"
	"github.com/mpataki/figgen/internal/reference"
	"github.com/mpataki/figgen/internal/render"
	"github.com/mpataki/figgen/internal/storage"
	"github.com/mpataki/figgen/internal/workspace"
)

// fakeRenderer writes a marker artifact and records the description used for
// each render.
type fakeRenderer struct {
	descriptions []string
	err          error
}

func (f *fakeRenderer) Render(ctx context.Context, description, outPath string) error {
	if f.err != nil {
		return f.err
	}
	f.descriptions = append(f.descriptions, description)
	return os.WriteFile(outPath, []byte("artifact"), 0644)
}

func newTestOrchestrator(t *testing.T, client *fakeClient, renderer render.Renderer) (*Orchestrator, *storage.Storage) {
	t.Helper()
	store, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	o := New(client, store, zap.NewNop())
	o.newRenderer = func(models.Request, Options) render.Renderer { return renderer }
	return o, store
}

const (
	planned = "planned description"
	styled  = "styled description"
)

func critiqueJSON(suggestions []string, revised string) string {
	resp := map[string]any{"critic_suggestions": suggestions}
	if revised != "" {
		resp["revised_description"] = revised
	} else {
		resp["revised_description"] = nil
	}
	data, _ := json.Marshal(resp)
	return string(data)
}

func TestRunThreeIterationsStoppingAtCap(t *testing.T) {
	client := &fakeClient{responses: []string{
		planned,
		styled,
		critiqueJSON([]string{"issue 1"}, "revised once"),
		critiqueJSON([]string{"issue 2"}, ""),
		critiqueJSON(nil, ""),
	}}
	renderer := &fakeRenderer{}
	o, store := newTestOrchestrator(t, client, renderer)

	run, err := o.Run(context.Background(), diagramReq, makePool(3), Options{
		Iterations: 3,
		OutputDir:  t.TempDir(),
	})
	require.NoError(t, err)

	assert.Equal(t, models.RunStatusComplete, run.Status)
	assert.Equal(t, 3, run.Iterations)

	// exactly 3 artifacts, descriptions evolve only when a revision arrives
	require.Len(t, renderer.descriptions, 3)
	assert.Equal(t, styled, renderer.descriptions[0])
	assert.Equal(t, "revised once", renderer.descriptions[1])
	assert.Equal(t, "revised once", renderer.descriptions[2], "no revision at iteration 2 keeps the description")

	for i := 1; i <= 3; i++ {
		assert.FileExists(t, filepath.Join(run.WorkDir, fmt.Sprintf("iter_%d.png", i)))
		assert.FileExists(t, filepath.Join(run.WorkDir, fmt.Sprintf("iter_%d_details.json", i)))
	}
	assert.FileExists(t, filepath.Join(run.WorkDir, "planning.json"))
	assert.FileExists(t, filepath.Join(run.WorkDir, "final_output.png"))
	assert.FileExists(t, filepath.Join(run.WorkDir, "report.html"))

	iters, err := store.ListIterations(run.ID)
	require.NoError(t, err)
	require.Len(t, iters, 3)
	assert.True(t, iters[0].Revised)
	assert.False(t, iters[1].Revised)
}

func TestRunTerminatesAtCapWithOutstandingSuggestions(t *testing.T) {
	client := &fakeClient{responses: []string{
		planned,
		styled,
		critiqueJSON([]string{"issue"}, "rev 1"),
		critiqueJSON([]string{"issue"}, "rev 2"),
	}}
	renderer := &fakeRenderer{}
	o, _ := newTestOrchestrator(t, client, renderer)

	run, err := o.Run(context.Background(), diagramReq, nil, Options{
		Iterations: 2,
		OutputDir:  t.TempDir(),
	})
	require.NoError(t, err)

	assert.Equal(t, models.RunStatusComplete, run.Status)
	assert.Equal(t, 2, run.Iterations)
	assert.Len(t, renderer.descriptions, 2)
}

func TestRunStopsEarlyOnCleanCritique(t *testing.T) {
	client := &fakeClient{responses: []string{
		planned,
		styled,
		critiqueJSON(nil, ""),
	}}
	renderer := &fakeRenderer{}
	o, _ := newTestOrchestrator(t, client, renderer)

	run, err := o.Run(context.Background(), diagramReq, makePool(2), Options{
		Iterations: 3,
		OutputDir:  t.TempDir(),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, run.Iterations)
	assert.Len(t, renderer.descriptions, 1)
}

func TestRunIgnoresRevisionWithoutSuggestions(t *testing.T) {
	client := &fakeClient{responses: []string{
		planned,
		styled,
		critiqueJSON(nil, "sneaky rewrite"),
	}}
	renderer := &fakeRenderer{}
	o, _ := newTestOrchestrator(t, client, renderer)

	run, err := o.Run(context.Background(), diagramReq, makePool(2), Options{
		Iterations: 3,
		OutputDir:  t.TempDir(),
	})
	require.NoError(t, err)

	// empty suggestions terminate the loop; the revision is never adopted
	assert.Equal(t, 1, run.Iterations)
	assert.Equal(t, []string{styled}, renderer.descriptions)
}

func TestRunEmptyPoolStillIterates(t *testing.T) {
	client := &fakeClient{responses: []string{
		planned,
		styled,
		critiqueJSON(nil, ""),
	}}
	renderer := &fakeRenderer{}
	o, _ := newTestOrchestrator(t, client, renderer)

	run, err := o.Run(context.Background(), diagramReq, nil, Options{OutputDir: t.TempDir()})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, run.Iterations, 1)

	data, err := os.ReadFile(filepath.Join(run.WorkDir, "planning.json"))
	require.NoError(t, err)
	var plan workspace.PlanningRecord
	require.NoError(t, json.Unmarshal(data, &plan))
	assert.Empty(t, plan.RetrievedExamples)
	assert.Equal(t, styled, plan.InitialDescription)
}

func TestRunsNeverShareWorkDir(t *testing.T) {
	outputDir := t.TempDir()

	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		client := &fakeClient{responses: []string{planned, styled, critiqueJSON(nil, "")}}
		o, _ := newTestOrchestrator(t, client, &fakeRenderer{})

		run, err := o.Run(context.Background(), diagramReq, nil, Options{OutputDir: outputDir})
		require.NoError(t, err)
		assert.False(t, seen[run.WorkDir], "work dir reused: %s", run.WorkDir)
		seen[run.WorkDir] = true
	}
}

func TestRunRenderFailureFailsRun(t *testing.T) {
	client := &fakeClient{responses: []string{planned, styled}}
	o, store := newTestOrchestrator(t, client, &fakeRenderer{err: fmt.Errorf("no image payload")})

	run, err := o.Run(context.Background(), diagramReq, nil, Options{OutputDir: t.TempDir()})
	require.Error(t, err)
	assert.Equal(t, models.RunStatusFailed, run.Status)

	stored, err := store.GetRun(run.RunID)
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusFailed, stored.Status)
	require.NotNil(t, stored.Error)
	assert.Contains(t, *stored.Error, "no image payload")
}

func TestRunCancelledContextFailsRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := &fakeClient{responses: []string{planned, styled, critiqueJSON(nil, "")}}
	o, _ := newTestOrchestrator(t, client, &fakeRenderer{})

	run, err := o.Run(ctx, diagramReq, nil, Options{OutputDir: t.TempDir()})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, models.RunStatusFailed, run.Status)
}

func TestRunPassesPoolUntouched(t *testing.T) {
	pool := makePool(3)
	var poolCopy []reference.Example
	poolCopy = append(poolCopy, pool...)

	client := &fakeClient{responses: []string{planned, styled, critiqueJSON(nil, "")}}
	o, _ := newTestOrchestrator(t, client, &fakeRenderer{})

	_, err := o.Run(context.Background(), diagramReq, pool, Options{OutputDir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, poolCopy, pool)
}
