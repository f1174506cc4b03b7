package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shangobashi/NoteSquared-C/internal/model"
)

// DemoGenerator renders the three lesson documents from the extraction
// record. Content is deterministic for a given record; only the type coverage
// is contractual.
type DemoGenerator struct {
	now func() time.Time
}

func NewDemoGenerator() *DemoGenerator {
	return &DemoGenerator{now: time.Now}
}

func (g *DemoGenerator) Generate(_ context.Context, extraction model.Extraction, studentName, instrument string) (map[model.OutputType]string, error) {
	today := g.now()

	return map[model.OutputType]string{
		model.OutputTypeStudentRecap: g.studentRecap(extraction, today),
		model.OutputTypePracticePlan: g.practicePlan(extraction, today),
		model.OutputTypeParentEmail:  g.parentEmail(extraction, studentName, instrument, today),
	}, nil
}

func (g *DemoGenerator) studentRecap(extraction model.Extraction, today time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Lesson Recap - %s\n\n", today.Format("January 2"))

	b.WriteString("## What Went Well\n\n")
	for _, item := range extraction.PositiveFeedback {
		fmt.Fprintf(&b, "- %s\n", item)
	}

	b.WriteString("\n## Areas to Focus On\n\n")
	for _, piece := range extraction.Repertoire {
		for i, issue := range piece.Issues {
			line := fmt.Sprintf("- %s (mm. %s): %s", piece.Piece, piece.FocusMeasures, issue)
			if i < len(piece.Solutions) {
				line += " - " + piece.Solutions[i]
			}
			b.WriteString(line + "\n")
		}
	}

	b.WriteString("\n## Teacher's Note\n\n")
	b.WriteString("Really proud of your progress this week! Keep up the great practice habits and you'll be ready to increase the tempo soon.\n")
	return b.String()
}

func (g *DemoGenerator) practicePlan(extraction model.Extraction, today time.Time) string {
	var b strings.Builder
	weekEnd := today.AddDate(0, 0, 6)
	fmt.Fprintf(&b, "# Practice Plan - %s to %s\n", today.Format("January 2"), weekEnd.Format("January 2"))

	for day := 1; day <= 6; day++ {
		fmt.Fprintf(&b, "\n## Day %d\n", day)
		for _, assignment := range extraction.Assignments {
			fmt.Fprintf(&b, "- [ ] %s: %s (%d min)\n",
				assignment.Task, assignment.Details, assignment.DurationMinutes)
		}
	}

	b.WriteString("\n## Day 7 (Light Review)\n")
	b.WriteString("- [ ] Play through all pieces once, noting any trouble spots\n")
	b.WriteString("- [ ] Review any memorized sections\n")

	if len(extraction.Assignments) > 0 {
		fmt.Fprintf(&b, "\n**Weekly Goal**: %s - %s\n",
			extraction.Assignments[0].Task, extraction.Assignments[0].Details)
	}
	return b.String()
}

func (g *DemoGenerator) parentEmail(extraction model.Extraction, studentName, instrument string, today time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Subject**: %s's %s Lesson - %s\n\n", studentName, instrument, today.Format("January 2"))
	b.WriteString("Dear Parent,\n\n")
	fmt.Fprintf(&b, "%s had a wonderful lesson today! Here are the highlights:\n\n", studentName)

	b.WriteString("**Progress This Week:**\n")
	for _, item := range extraction.PositiveFeedback {
		fmt.Fprintf(&b, "- %s\n", item)
	}

	b.WriteString("\n**Focus Areas:**\n")
	for _, item := range extraction.AreasForImprovement {
		fmt.Fprintf(&b, "- %s\n", item)
	}

	b.WriteString("\n**Practice Reminders:**\n")
	for _, assignment := range extraction.Assignments {
		fmt.Fprintf(&b, "- %s: %s (%d minutes)\n",
			assignment.Task, assignment.Details, assignment.DurationMinutes)
	}

	fmt.Fprintf(&b, "\nPlease encourage %s to practice daily - short, focused sessions work best!\n\n", studentName)
	b.WriteString("I've attached a detailed practice plan for the week. Let me know if you have any questions.\n\n")
	b.WriteString("Best regards,\nYour Teacher\n")
	return b.String()
}
