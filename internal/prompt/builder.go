package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mpataki/figgen/internal/models"
	"github.com/mpataki/figgen/internal/reference"
)

const (
	candidateExcerptLen = 300
	exampleExcerptLen   = 500

	zeroShotExamples = "(No reference examples available. Generate based on source context alone.)"
)

// Retrieval builds the selection prompt over the full candidate pool. Each
// candidate is presented as a truncated view: id, caption, and a bounded
// context excerpt.
func Retrieval(req models.Request, candidates []reference.Example, limit int) string {
	lines := make([]string, 0, len(candidates))
	for i, c := range candidates {
		lines = append(lines, fmt.Sprintf(
			"Candidate Paper %d:\n- **Paper ID:** %s\n- **Caption:** %s\n- **Methodology section:** %s...\n",
			i+1, c.ID, c.Caption, excerpt(c.Context, candidateExcerptLen)))
	}

	tmpl := diagramRetrieverTemplate
	if req.Mode == models.ModePlot {
		tmpl = plotRetrieverTemplate
	}

	return strings.NewReplacer(
		"{num_examples}", strconv.Itoa(limit),
		"{caption}", req.Intent,
		"{source_context}", req.Context,
		"{candidates}", strings.Join(lines, "\n"),
	).Replace(tmpl)
}

// Planning builds the description prompt. hasImage marks which examples have
// a loaded reference image attached alongside the prompt, so the text can
// point at them by position. With no examples the zero-shot variant is used.
func Planning(req models.Request, examples []reference.Example, hasImage []bool) string {
	examplesText := zeroShotExamples
	if len(examples) > 0 {
		lines := make([]string, 0, len(examples))
		imgIndex := 0
		for i, ex := range examples {
			imageRef := ""
			if i < len(hasImage) && hasImage[i] {
				imgIndex++
				imageRef = fmt.Sprintf("\n**Diagram**: [See reference image %d above]", imgIndex)
			}
			lines = append(lines, fmt.Sprintf(
				"### Example %d\n**Caption**: %s\n**Source Context**: %s%s\n",
				i+1, ex.Caption, excerpt(ex.Context, exampleExcerptLen), imageRef))
		}
		examplesText = strings.Join(lines, "\n")
	}

	tmpl := diagramPlannerTemplate
	if req.Mode == models.ModePlot {
		tmpl = plotPlannerTemplate
	}

	return strings.NewReplacer(
		"{source_context}", req.Context,
		"{caption}", req.Intent,
		"{examples}", examplesText,
	).Replace(tmpl)
}

// Styling builds the refinement prompt around the mode's guideline corpus.
func Styling(req models.Request, description string) string {
	tmpl := diagramStylistTemplate
	if req.Mode == models.ModePlot {
		tmpl = plotStylistTemplate
	}

	return strings.NewReplacer(
		"{guidelines}", GuidelinesFor(req.Mode),
		"{source_context}", req.Context,
		"{caption}", req.Intent,
		"{description}", description,
	).Replace(tmpl)
}

// DiagramRender wraps a description into the image-synthesis prompt.
func DiagramRender(description string) string {
	return strings.NewReplacer("{description}", description).Replace(diagramRenderTemplate)
}

// PlotCode builds the code-generation prompt. rawData, when present, is
// appended to the description as a fenced block so the program has every
// data point available verbatim.
func PlotCode(description, rawData string) string {
	full := description
	if rawData != "" {
		full += "\n\n## Raw Data\n```json\n" + rawData + "\n```"
	}
	return strings.NewReplacer("{description}", full).Replace(plotCodeTemplate)
}

// Critique builds the judge prompt; the artifact image travels alongside it.
func Critique(req models.Request, description string) string {
	tmpl := diagramCriticTemplate
	if req.Mode == models.ModePlot {
		tmpl = plotCriticTemplate
	}

	return strings.NewReplacer(
		"{source_context}", req.Context,
		"{caption}", req.Intent,
		"{description}", description,
	).Replace(tmpl)
}

func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
