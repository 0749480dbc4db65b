package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mpataki/figgen/internal/gateway"
	"github.com/mpataki/figgen/internal/models"
	"github.com/mpataki/figgen/internal/reference"
	"github.com/mpataki/figgen/internal/render"
	"github.com/mpataki/figgen/internal/report"
	"github.com/mpataki/figgen/internal/storage"
	"github.com/mpataki/figgen/internal/workspace"
)

// Options are the per-invocation knobs. Zero values take the compiled
// defaults matching config.New.
type Options struct {
	Iterations    int
	RetrievalCap  int
	Width         int
	Height        int
	RenderTimeout time.Duration
	Python        string
	OutputDir     string
}

func (o *Options) applyDefaults() {
	if o.Iterations <= 0 {
		o.Iterations = 3
	}
	if o.RetrievalCap <= 0 {
		o.RetrievalCap = 10
	}
	if o.Width <= 0 {
		o.Width = 1792
	}
	if o.Height <= 0 {
		o.Height = 1024
	}
	if o.RenderTimeout <= 0 {
		o.RenderTimeout = 60 * time.Second
	}
	if o.Python == "" {
		o.Python = "python3"
	}
	if o.OutputDir == "" {
		o.OutputDir = "outputs"
	}
}

// Orchestrator drives the two-phase pipeline: linear planning, then the
// bounded render/critique/decide loop. All model traffic goes through the
// injected gateway client; the run terminates after at most
// Options.Iterations renders.
type Orchestrator struct {
	client gateway.Client
	store  *storage.Storage
	logger *zap.Logger

	retriever *Retriever
	planner   *Planner
	stylist   *Stylist
	critic    *Critic

	// newRenderer is swapped out by tests
	newRenderer func(req models.Request, opts Options) render.Renderer
}

func New(client gateway.Client, store *storage.Storage, logger *zap.Logger) *Orchestrator {
	o := &Orchestrator{
		client:    client,
		store:     store,
		logger:    logger,
		retriever: NewRetriever(client, logger),
		planner:   NewPlanner(client, logger),
		stylist:   NewStylist(client, logger),
		critic:    NewCritic(client, logger),
	}
	o.newRenderer = func(req models.Request, opts Options) render.Renderer {
		if req.Mode == models.ModePlot {
			return render.NewPlot(client, req.RawData, opts.Python, opts.RenderTimeout, logger)
		}
		return render.NewDiagram(client, opts.Width, opts.Height, logger)
	}
	return o
}

// Run executes one full pipeline invocation over the supplied reference pool
// and returns the closed run record. The pool is read, never mutated.
func (o *Orchestrator) Run(ctx context.Context, req models.Request, pool []reference.Example, opts Options) (*models.Run, error) {
	opts.applyDefaults()

	ws, err := workspace.Create(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	run := &models.Run{
		RunID:   ws.RunID,
		Mode:    req.Mode,
		Status:  models.RunStatusPending,
		WorkDir: ws.Path,
		Context: req.Context,
		Intent:  req.Intent,
	}
	run.ID, err = o.store.CreateRun(run)
	if err != nil {
		return nil, fmt.Errorf("failed to create run record: %w", err)
	}

	o.logger.Info("run started",
		zap.String("run_id", run.RunID),
		zap.String("mode", string(req.Mode)),
		zap.String("work_dir", ws.Path))

	run.Status = models.RunStatusRunning
	if err := o.store.UpdateRunStatus(run.ID, run.Status); err != nil {
		return nil, fmt.Errorf("failed to update run status: %w", err)
	}

	finalRun, err := o.execute(ctx, run, req, pool, ws, opts)
	if err != nil {
		o.store.FailRun(run.ID, run.Iterations, err.Error())
		run.Status = models.RunStatusFailed
		return run, err
	}
	return finalRun, nil
}

func (o *Orchestrator) execute(ctx context.Context, run *models.Run, req models.Request, pool []reference.Example, ws *workspace.Workspace, opts Options) (*models.Run, error) {
	// Phase 1: linear planning, each stage exactly once

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	examples, err := o.retriever.Select(ctx, req, pool, opts.RetrievalCap)
	if err != nil {
		return nil, fmt.Errorf("retrieval failed: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	description, err := o.planner.Plan(ctx, req, examples)
	if err != nil {
		return nil, fmt.Errorf("planning failed: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	description, err = o.stylist.Style(ctx, req, description)
	if err != nil {
		return nil, fmt.Errorf("styling failed: %w", err)
	}

	selectedIDs := make([]string, 0, len(examples))
	for _, ex := range examples {
		selectedIDs = append(selectedIDs, ex.ID)
	}
	if err := ws.WritePlanning(&workspace.PlanningRecord{
		RetrievedExamples:  selectedIDs,
		InitialDescription: description,
	}); err != nil {
		return nil, err
	}

	// Phase 2: bounded refinement loop

	renderer := o.newRenderer(req, opts)
	var records []report.IterationSummary
	lastArtifact := ""

	for i := 1; i <= opts.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		o.logger.Info("iteration started",
			zap.String("run_id", run.RunID),
			zap.Int("iteration", i))

		started := time.Now()
		artifactPath := ws.IterArtifactPath(i)
		if err := renderer.Render(ctx, description, artifactPath); err != nil {
			return nil, fmt.Errorf("render failed at iteration %d: %w", i, err)
		}
		lastArtifact = artifactPath

		if err := ctx.Err(); err != nil {
			return nil, err
		}
		critique, err := o.critic.Review(ctx, req, artifactPath, description)
		if err != nil {
			return nil, fmt.Errorf("critique failed at iteration %d: %w", i, err)
		}

		revised := critique.NeedsRevision() && critique.RevisedDescription != ""
		if err := ws.WriteIterationDetails(i, &workspace.IterationRecord{
			Description:        description,
			CriticSuggestions:  critique.Suggestions,
			RevisedDescription: critique.RevisedDescription,
		}); err != nil {
			return nil, err
		}

		run.Iterations = i
		if _, err := o.store.AddIteration(&models.Iteration{
			RunID:        run.ID,
			Index:        i,
			ArtifactPath: artifactPath,
			Suggestions:  critique.Suggestions,
			Revised:      revised,
			DurationMS:   time.Since(started).Milliseconds(),
		}); err != nil {
			return nil, fmt.Errorf("failed to record iteration: %w", err)
		}

		records = append(records, report.IterationSummary{
			Index:       i,
			Description: description,
			Suggestions: critique.Suggestions,
			Revised:     revised,
			Duration:    time.Since(started),
		})

		if !critique.NeedsRevision() {
			o.logger.Info("no further revision needed, stopping early",
				zap.String("run_id", run.RunID),
				zap.Int("iteration", i))
			break
		}
		// Revision only adopted alongside non-empty suggestions
		if revised {
			description = critique.RevisedDescription
		}
	}

	// Done: materialize the final artifact and close the run

	if err := ws.CopyFinal(lastArtifact); err != nil {
		return nil, err
	}
	finalPath := ws.FinalPath()
	if err := o.store.CompleteRun(run.ID, run.Iterations, finalPath); err != nil {
		return nil, fmt.Errorf("failed to complete run: %w", err)
	}
	run.Status = models.RunStatusComplete
	run.FinalPath = &finalPath

	if err := report.Write(ws.ReportPath(), report.Data{
		Run:         run,
		SelectedIDs: selectedIDs,
		Iterations:  records,
	}); err != nil {
		// Audit artifact, not pipeline state
		o.logger.Warn("failed to write run report", zap.Error(err))
	}

	o.logger.Info("run complete",
		zap.String("run_id", run.RunID),
		zap.Int("iterations", run.Iterations),
		zap.String("final_output", finalPath))

	return run, nil
}
