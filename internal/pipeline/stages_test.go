package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mpataki/figgen/internal/gateway"
	"github.com/mpataki/figgen/internal/models"
	"github.com/mpataki/figgen/internal/reference"
)

// fakeClient replays scripted text responses in order and records every
// request it sees.
type fakeClient struct {
	responses []string
	err       error
	requests  []gateway.TextRequest
}

func (f *fakeClient) GenerateText(ctx context.Context, req gateway.TextRequest) (string, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", fmt.Errorf("fakeClient: no scripted response left")
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

func (f *fakeClient) GenerateImage(ctx context.Context, req gateway.ImageRequest) ([]byte, error) {
	return nil, gateway.ErrNoImage
}

func makePool(n int) []reference.Example {
	pool := make([]reference.Example, n)
	for i := range pool {
		pool[i] = reference.Example{
			ID:      fmt.Sprintf("ref_%d", i),
			Context: fmt.Sprintf("context %d", i),
			Caption: fmt.Sprintf("caption %d", i),
		}
	}
	return pool
}

var diagramReq = models.Request{
	Context: "We propose a two-stage encoder.",
	Intent:  "Figure 1: architecture overview",
	Mode:    models.ModeDiagram,
}

func TestSelectPassThroughUnderCap(t *testing.T) {
	client := &fakeClient{}
	r := NewRetriever(client, zap.NewNop())

	pool := makePool(5)
	selected, err := r.Select(context.Background(), diagramReq, pool, 10)
	require.NoError(t, err)

	assert.Equal(t, pool, selected)
	assert.Empty(t, client.requests, "pass-through must not call the model")
}

func TestSelectExactlyAtCap(t *testing.T) {
	client := &fakeClient{}
	r := NewRetriever(client, zap.NewNop())

	pool := makePool(10)
	selected, err := r.Select(context.Background(), diagramReq, pool, 10)
	require.NoError(t, err)
	assert.Equal(t, pool, selected)
	assert.Empty(t, client.requests)
}

func TestSelectEmptyPool(t *testing.T) {
	r := NewRetriever(&fakeClient{}, zap.NewNop())
	selected, err := r.Select(context.Background(), diagramReq, nil, 10)
	require.NoError(t, err)
	assert.Empty(t, selected)
}

func TestSelectHonorsModelOrderAndDropsUnknownIDs(t *testing.T) {
	client := &fakeClient{responses: []string{
		`{"selected_ids": ["ref_7", "ref_999", "ref_2", "ref_0"]}`,
	}}
	r := NewRetriever(client, zap.NewNop())

	selected, err := r.Select(context.Background(), diagramReq, makePool(12), 3)
	require.NoError(t, err)

	require.Len(t, selected, 3)
	assert.Equal(t, "ref_7", selected[0].ID)
	assert.Equal(t, "ref_2", selected[1].ID)
	assert.Equal(t, "ref_0", selected[2].ID)

	require.Len(t, client.requests, 1)
	assert.True(t, client.requests[0].JSON)
}

func TestSelectCapsResultLength(t *testing.T) {
	client := &fakeClient{responses: []string{
		`{"selected_ids": ["ref_0", "ref_1", "ref_2", "ref_3", "ref_4"]}`,
	}}
	r := NewRetriever(client, zap.NewNop())

	selected, err := r.Select(context.Background(), diagramReq, makePool(20), 2)
	require.NoError(t, err)
	assert.Len(t, selected, 2)
}

func TestSelectUnparsableResponseFallsBack(t *testing.T) {
	client := &fakeClient{responses: []string{`not json at all`}}
	r := NewRetriever(client, zap.NewNop())

	pool := makePool(15)
	selected, err := r.Select(context.Background(), diagramReq, pool, 10)
	require.NoError(t, err)
	assert.Equal(t, pool[:10], selected)
}

func TestSelectMissingKeyFallsBack(t *testing.T) {
	client := &fakeClient{responses: []string{`{"top_papers": ["ref_1"]}`}}
	r := NewRetriever(client, zap.NewNop())

	pool := makePool(15)
	selected, err := r.Select(context.Background(), diagramReq, pool, 10)
	require.NoError(t, err)
	assert.Equal(t, pool[:10], selected)
}

func TestSelectGatewayErrorPropagates(t *testing.T) {
	client := &fakeClient{err: errors.New("rate limited")}
	r := NewRetriever(client, zap.NewNop())

	_, err := r.Select(context.Background(), diagramReq, makePool(15), 10)
	assert.Error(t, err)
}

func TestPlanZeroShot(t *testing.T) {
	client := &fakeClient{responses: []string{"a detailed description"}}
	p := NewPlanner(client, zap.NewNop())

	description, err := p.Plan(context.Background(), diagramReq, nil)
	require.NoError(t, err)
	assert.Equal(t, "a detailed description", description)

	require.Len(t, client.requests, 1)
	assert.Contains(t, client.requests[0].Prompt, "No reference examples available")
	assert.Empty(t, client.requests[0].Images)
}

func TestPlanAttachesReadableImages(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "ex1.png")
	require.NoError(t, os.WriteFile(imgPath, []byte("png-bytes"), 0644))

	examples := []reference.Example{
		{ID: "ex1", Caption: "c1", Context: "ctx1", ImagePath: imgPath},
		{ID: "ex2", Caption: "c2", Context: "ctx2", ImagePath: filepath.Join(dir, "missing.png")},
		{ID: "ex3", Caption: "c3", Context: "ctx3"},
	}

	client := &fakeClient{responses: []string{"description"}}
	p := NewPlanner(client, zap.NewNop())

	_, err := p.Plan(context.Background(), diagramReq, examples)
	require.NoError(t, err)

	require.Len(t, client.requests, 1)
	require.Len(t, client.requests[0].Images, 1)
	assert.Equal(t, []byte("png-bytes"), client.requests[0].Images[0].Data)
	assert.Contains(t, client.requests[0].Prompt, "[See reference image 1 above]")
}

func TestStyleCarriesGuidelinesAndDescription(t *testing.T) {
	client := &fakeClient{responses: []string{"polished description"}}
	s := NewStylist(client, zap.NewNop())

	refined, err := s.Style(context.Background(), diagramReq, "rough description")
	require.NoError(t, err)
	assert.Equal(t, "polished description", refined)

	require.Len(t, client.requests, 1)
	assert.Contains(t, client.requests[0].Prompt, "rough description")
	assert.Contains(t, client.requests[0].Prompt, diagramReq.Context)
}

func writeArtifact(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "iter_1.png")
	require.NoError(t, os.WriteFile(path, []byte("png-bytes"), 0644))
	return path
}

func TestReviewParsesSchema(t *testing.T) {
	client := &fakeClient{responses: []string{
		`{"critic_suggestions": ["fix arrows", "lighten fill"], "revised_description": "better description"}`,
	}}
	c := NewCritic(client, zap.NewNop())

	critique, err := c.Review(context.Background(), diagramReq, writeArtifact(t), "description")
	require.NoError(t, err)

	assert.Equal(t, []string{"fix arrows", "lighten fill"}, critique.Suggestions)
	assert.Equal(t, "better description", critique.RevisedDescription)
	assert.True(t, critique.NeedsRevision())

	require.Len(t, client.requests, 1)
	assert.True(t, client.requests[0].JSON)
	require.Len(t, client.requests[0].Images, 1)
}

func TestReviewNullRevision(t *testing.T) {
	client := &fakeClient{responses: []string{
		`{"critic_suggestions": [], "revised_description": null}`,
	}}
	c := NewCritic(client, zap.NewNop())

	critique, err := c.Review(context.Background(), diagramReq, writeArtifact(t), "description")
	require.NoError(t, err)
	assert.False(t, critique.NeedsRevision())
	assert.Empty(t, critique.RevisedDescription)
}

func TestReviewMissingSuggestionsKeyMeansNoIssues(t *testing.T) {
	client := &fakeClient{responses: []string{`{"revised_description": "whatever"}`}}
	c := NewCritic(client, zap.NewNop())

	critique, err := c.Review(context.Background(), diagramReq, writeArtifact(t), "description")
	require.NoError(t, err)
	assert.False(t, critique.NeedsRevision())
}

func TestReviewUnparsableResponseBiasesTermination(t *testing.T) {
	client := &fakeClient{responses: []string{`I think the diagram looks great!`}}
	c := NewCritic(client, zap.NewNop())

	critique, err := c.Review(context.Background(), diagramReq, writeArtifact(t), "description")
	require.NoError(t, err)
	assert.Empty(t, critique.Suggestions)
	assert.Empty(t, critique.RevisedDescription)
}

func TestReviewMissingArtifactIsError(t *testing.T) {
	c := NewCritic(&fakeClient{}, zap.NewNop())

	_, err := c.Review(context.Background(), diagramReq, filepath.Join(t.TempDir(), "nope.png"), "d")
	assert.Error(t, err)
}
