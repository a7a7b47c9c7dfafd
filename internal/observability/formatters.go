// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/talent-intel/internal/types"
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

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJobRecord outputs a human-readable summary of the parsed job record.
func (p *Printer) PrintJobRecord(job *types.JobRecord) {
	if job == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Title:     %s\n", job.Title))
	if job.Seniority != types.SeniorityUnknown {
		sb.WriteString(fmt.Sprintf("Seniority: %s\n", job.Seniority))
	}
	if job.Domain != "" {
		sb.WriteString(fmt.Sprintf("Domain:    %s\n", job.Domain))
	}
	sb.WriteString("\n")

	if len(job.RequiredSkills) > 0 {
		sb.WriteString("Required Skills:\n")
		count := min(len(job.RequiredSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", job.RequiredSkills[i]))
		}
		if len(job.RequiredSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(job.RequiredSkills)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(job.NiceToHaveSkills) > 0 {
		sb.WriteString("Nice-to-haves:\n")
		count := min(len(job.NiceToHaveSkills), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", job.NiceToHaveSkills[i]))
		}
		if len(job.NiceToHaveSkills) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(job.NiceToHaveSkills)-3))
		}
	}

	p.printBox("PARSED JOB RECORD", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRankedResults outputs the ranked candidates with scores, component
// signals, and matched skills.
func (p *Printer) PrintRankedResults(results []types.ScoreResult) {
	if len(results) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total candidates scored: %d\n\n", len(results)))

	count := min(len(results), maxItemsToShow)
	for i := 0; i < count; i++ {
		result := results[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, result.Ref))
		sb.WriteString(fmt.Sprintf("    Score: %.1f", result.Score))
		if result.AIPct > 0 {
			sb.WriteString(fmt.Sprintf(" (AI: %.0f%%)", result.AIPct))
		}
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("    exp %.2f  skills %.2f  traj %.2f\n",
			result.ExpSim, result.SkillOverlap, result.Trajectory))
		if len(result.MatchedSkills) > 0 {
			skills := strings.Join(result.MatchedSkills, ", ")
			if len(skills) > 40 {
				skills = skills[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("    Skills: %s\n", skills))
		}
		if len(result.Flags) > 0 {
			sb.WriteString(fmt.Sprintf("    ⚠ %s\n", strings.Join(result.Flags, " ")))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(results) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(results)-maxItemsToShow))
	}

	p.printBox("RANKED CANDIDATES", sb.String())
}

// PrintWeights outputs the current weight vector.
func (p *Printer) PrintWeights(weights types.WeightVector) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Experience: %.3f\n", weights.Experience))
	sb.WriteString(fmt.Sprintf("Skills:     %.3f\n", weights.Skills))
	sb.WriteString(fmt.Sprintf("Trajectory: %.3f", weights.Trajectory))

	p.printBox("SCORING WEIGHTS", sb.String())
}

// PrintResultDetail outputs the full breakdown for a single candidate.
func (p *Printer) PrintResultDetail(result *types.ScoreResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidate: %s\n", result.Ref))
	sb.WriteString(fmt.Sprintf("Score:     %.1f\n", result.Score))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Experience similarity: %.3f\n", result.ExpSim))
	sb.WriteString(fmt.Sprintf("Skill overlap:         %.3f\n", result.SkillOverlap))
	sb.WriteString(fmt.Sprintf("Trajectory alignment:  %.3f\n", result.Trajectory))
	if result.AIPct > 0 {
		sb.WriteString(fmt.Sprintf("AI likelihood:         %.0f%%\n", result.AIPct))
	}
	if result.DomainBonus > 0 {
		sb.WriteString(fmt.Sprintf("Domain bonus:          +%.2f\n", result.DomainBonus))
	}

	if len(result.MatchedNiceToHaves) > 0 {
		sb.WriteString("\nMatched nice-to-haves:\n")
		count := min(len(result.MatchedNiceToHaves), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", result.MatchedNiceToHaves[i]))
		}
		if len(result.MatchedNiceToHaves) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.MatchedNiceToHaves)-3))
		}
	}

	if len(result.Flags) > 0 {
		sb.WriteString("\nFlags:\n")
		for _, flag := range result.Flags {
			sb.WriteString(fmt.Sprintf("  ⚠ %s\n", flag))
		}
	}

	p.printBox("CANDIDATE DETAIL", strings.TrimSuffix(sb.String(), "\n"))
}
