package report

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/mpataki/figgen/internal/models"
)

// Data is everything the run report summarizes.
type Data struct {
	Run         *models.Run
	SelectedIDs []string
	Iterations  []IterationSummary
}

type IterationSummary struct {
	Index       int
	Description string
	Suggestions []string
	Revised     bool
	Duration    time.Duration
}

// Write renders the run summary as HTML at path. The report is an audit
// artifact; callers treat a write failure as a warning, not a run failure.
func Write(path string, data Data) error {
	md := buildMarkdown(data)

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func buildMarkdown(data Data) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Run %s\n\n", data.Run.RunID)
	fmt.Fprintf(&b, "- **Mode**: %s\n", data.Run.Mode)
	fmt.Fprintf(&b, "- **Status**: %s\n", data.Run.Status)
	fmt.Fprintf(&b, "- **Intent**: %s\n", data.Run.Intent)
	fmt.Fprintf(&b, "- **Iterations**: %d\n", data.Run.Iterations)
	if data.Run.FinalPath != nil {
		fmt.Fprintf(&b, "- **Final output**: %s\n", *data.Run.FinalPath)
	}
	b.WriteString("\n")

	b.WriteString("## Selected references\n\n")
	if len(data.SelectedIDs) == 0 {
		b.WriteString("None (zero-shot planning).\n\n")
	} else {
		for _, id := range data.SelectedIDs {
			fmt.Fprintf(&b, "- %s\n", id)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Iterations\n\n")
	b.WriteString("| # | Suggestions | Revised | Duration |\n")
	b.WriteString("|---|-------------|---------|----------|\n")
	for _, it := range data.Iterations {
		fmt.Fprintf(&b, "| %d | %d | %v | %s |\n",
			it.Index, len(it.Suggestions), it.Revised, it.Duration.Round(time.Millisecond))
	}
	b.WriteString("\n")

	for _, it := range data.Iterations {
		if len(it.Suggestions) == 0 {
			continue
		}
		fmt.Fprintf(&b, "### Iteration %d critique\n\n", it.Index)
		for _, s := range it.Suggestions {
			fmt.Fprintf(&b, "- %s\n", s)
		}
		b.WriteString("\n")
	}

	return b.String()
}
