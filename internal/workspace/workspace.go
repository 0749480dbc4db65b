package workspace

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Workspace is one run's working directory. Every artifact and record the
// pipeline produces lands here; nothing outside the directory is touched.
type Workspace struct {
	RunID string
	Path  string
}

// PlanningRecord is persisted as planning.json after Phase 1.
type PlanningRecord struct {
	RetrievedExamples  []string `json:"retrieved_examples"`
	InitialDescription string   `json:"initial_description"`
}

// IterationRecord is persisted as iter_<n>_details.json after each critique.
type IterationRecord struct {
	Iteration          int      `json:"iteration"`
	Description        string   `json:"description"`
	CriticSuggestions  []string `json:"critic_suggestions"`
	RevisedDescription string   `json:"revised_description,omitempty"`
}

// Create allocates a fresh run directory under root. The run id combines a
// timestamp with a random suffix so concurrent runs never collide; on the
// off chance a directory already exists, a new suffix is drawn.
func Create(root string) (*Workspace, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output root: %w", err)
	}

	ts := time.Now().Format("20060102_150405")
	for attempt := 0; attempt < 10; attempt++ {
		runID := fmt.Sprintf("run_%s_%s", ts, uuid.New().String()[:6])
		path := filepath.Join(root, runID)

		err := os.Mkdir(path, 0755)
		if err == nil {
			return &Workspace{RunID: runID, Path: path}, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to create run directory: %w", err)
		}
	}

	return nil, fmt.Errorf("failed to allocate a unique run directory under %s", root)
}

// Open returns a handle to an existing run directory.
func Open(root, runID string) (*Workspace, error) {
	path := filepath.Join(root, runID)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("workspace for run %s does not exist", runID)
	}
	return &Workspace{RunID: runID, Path: path}, nil
}

func (w *Workspace) PlanningPath() string {
	return filepath.Join(w.Path, "planning.json")
}

func (w *Workspace) IterArtifactPath(i int) string {
	return filepath.Join(w.Path, fmt.Sprintf("iter_%d.png", i))
}

func (w *Workspace) IterDetailsPath(i int) string {
	return filepath.Join(w.Path, fmt.Sprintf("iter_%d_details.json", i))
}

func (w *Workspace) CodePath(i int) string {
	return filepath.Join(w.Path, fmt.Sprintf("iter_%d.py", i))
}

func (w *Workspace) FinalPath() string {
	return filepath.Join(w.Path, "final_output.png")
}

func (w *Workspace) ReportPath() string {
	return filepath.Join(w.Path, "report.html")
}

func (w *Workspace) WritePlanning(rec *PlanningRecord) error {
	return w.writeJSON(w.PlanningPath(), rec)
}

func (w *Workspace) WriteIterationDetails(i int, rec *IterationRecord) error {
	rec.Iteration = i
	return w.writeJSON(w.IterDetailsPath(i), rec)
}

func (w *Workspace) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// CopyFinal materializes the last rendered artifact at the canonical final
// path.
func (w *Workspace) CopyFinal(srcPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("failed to open artifact: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(w.FinalPath())
	if err != nil {
		return fmt.Errorf("failed to create final output: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to copy final output: %w", err)
	}
	return nil
}
