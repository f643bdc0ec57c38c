// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/askasha/asha-agent/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintParams outputs a human-readable summary of extracted search params.
func (p *Printer) PrintParams(params *types.JobSearchParams) {
	if params == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Keyword:   %s\n", params.Keyword))
	if params.LocationName != "" {
		sb.WriteString(fmt.Sprintf("Location:  %s\n", params.LocationName))
	}
	if params.WorkMode != "" {
		sb.WriteString(fmt.Sprintf("Work mode: %s\n", params.WorkMode))
	}
	if params.JobSkills != "" {
		sb.WriteString(fmt.Sprintf("Skills:    %s\n", params.JobSkills))
	}
	sb.WriteString(fmt.Sprintf("Platforms: %s", strings.Join(params.Platforms, ", ")))

	p.printBox("EXTRACTED SEARCH PARAMS", sb.String())
}

// PrintPostings outputs the top job results with platform and score.
func (p *Printer) PrintPostings(result *types.JobSearchResult) {
	if result == nil || len(result.Postings) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total postings: %d\n\n", len(result.Postings)))

	count := min(len(result.Postings), maxItemsToShow)
	for i := 0; i < count; i++ {
		posting := result.Postings[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, posting.Title))
		sb.WriteString(fmt.Sprintf("    %s · %s", posting.CompanyName, posting.Platform))
		if posting.SkillMatchScore > 0 {
			sb.WriteString(fmt.Sprintf(" · %.2f", posting.SkillMatchScore))
		}
		sb.WriteString("\n")
	}
	if len(result.Postings) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(result.Postings)-maxItemsToShow))
	}
	for _, msg := range result.ErrorMessages {
		sb.WriteString(fmt.Sprintf("! %s\n", msg))
	}

	p.printBox("JOB RESULTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRoadmap outputs the generated roadmap steps.
func (p *Printer) PrintRoadmap(topic string, steps []types.RoadmapStep) {
	if len(steps) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Topic: %s\n\n", topic))
	for i, step := range steps {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, step.Title))
		sb.WriteString(fmt.Sprintf("   %s\n", step.Link))
	}

	p.printBox("ROADMAP", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintEnvelope outputs the final response envelope summary.
func (p *Printer) PrintEnvelope(env *types.ResponseEnvelope) {
	if env == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Canvas: %s\n\n", env.CanvasType))
	sb.WriteString(env.Text)

	p.printBox("RESPONSE", sb.String())
}
