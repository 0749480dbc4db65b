package models

// Critique is the judge's verdict on one rendered artifact. An empty
// Suggestions slice means the artifact passed. RevisedDescription is only
// meaningful when suggestions are present.
type Critique struct {
	Suggestions        []string
	RevisedDescription string
}

func (c Critique) NeedsRevision() bool {
	return len(c.Suggestions) > 0
}
