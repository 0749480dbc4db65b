package models

import "time"

type Mode string

const (
	ModeDiagram Mode = "diagram"
	ModePlot    Mode = "plot"
)

type RunStatus string

const (
	RunStatusPending  RunStatus = "pending"
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

type Run struct {
	ID          int64
	RunID       string
	Mode        Mode
	Status      RunStatus
	WorkDir     string
	Context     string
	Intent      string
	Iterations  int
	FinalPath   *string
	Error       *string
	CreatedAt   time.Time
	CompletedAt *time.Time
}
