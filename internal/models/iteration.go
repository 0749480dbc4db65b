package models

import "time"

type Iteration struct {
	ID           int64
	RunID        int64
	Index        int
	ArtifactPath string
	Suggestions  []string
	Revised      bool
	DurationMS   int64
	CreatedAt    time.Time
}
