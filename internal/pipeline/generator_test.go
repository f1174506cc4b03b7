package pipeline

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shangobashi/NoteSquared-C/internal/model"
)

func testExtraction() model.Extraction {
	return model.Extraction{
		StudentName: "Emma",
		Instrument:  "Piano",
		Repertoire: []model.RepertoireItem{
			{
				Piece:         "Bach Minuet in G",
				FocusMeasures: "12-16",
				Issues:        []string{"left hand rushing"},
				Solutions:     []string{"count out loud while playing"},
			},
		},
		Assignments: []model.Assignment{
			{Task: "C major scale", Details: "hands separate at 60 BPM", DurationMinutes: 10},
			{Task: "Bach Minuet mm. 12-16", Details: "left hand only, then together", DurationMinutes: 15},
		},
		PositiveFeedback:    []string{"Scale evenness improved a lot"},
		AreasForImprovement: []string{"Dynamic contrast in the Sonatina"},
	}
}

func TestGenerateCoversAllTypes(t *testing.T) {
	g := NewDemoGenerator()

	generated, err := g.Generate(context.Background(), testExtraction(), "Emma", "Piano")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(generated) != len(model.AllOutputTypes) {
		t.Fatalf("got %d output types, want %d", len(generated), len(model.AllOutputTypes))
	}
	for _, outputType := range model.AllOutputTypes {
		content, ok := generated[outputType]
		if !ok {
			t.Fatalf("missing output type %s", outputType)
		}
		if content == "" {
			t.Fatalf("empty content for %s", outputType)
		}
	}
}

func TestGenerateContent(t *testing.T) {
	g := NewDemoGenerator()
	g.now = func() time.Time { return time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC) }

	generated, err := g.Generate(context.Background(), testExtraction(), "Emma", "Piano")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	recap := generated[model.OutputTypeStudentRecap]
	if !strings.Contains(recap, "March 10") {
		t.Fatalf("recap missing lesson date:\n%s", recap)
	}
	if !strings.Contains(recap, "Scale evenness improved a lot") {
		t.Fatalf("recap missing positive feedback:\n%s", recap)
	}
	if !strings.Contains(recap, "Bach Minuet in G (mm. 12-16)") {
		t.Fatalf("recap missing repertoire focus:\n%s", recap)
	}

	plan := generated[model.OutputTypePracticePlan]
	if !strings.Contains(plan, "March 10 to March 16") {
		t.Fatalf("plan missing week range:\n%s", plan)
	}
	for day := 1; day <= 6; day++ {
		if !strings.Contains(plan, "## Day "+string(rune('0'+day))) {
			t.Fatalf("plan missing day %d:\n%s", day, plan)
		}
	}
	if !strings.Contains(plan, "Day 7 (Light Review)") {
		t.Fatalf("plan missing review day:\n%s", plan)
	}
	if !strings.Contains(plan, "C major scale: hands separate at 60 BPM (10 min)") {
		t.Fatalf("plan missing assignment:\n%s", plan)
	}

	email := generated[model.OutputTypeParentEmail]
	if !strings.Contains(email, "Emma's Piano Lesson - March 10") {
		t.Fatalf("email missing subject line:\n%s", email)
	}
	if !strings.Contains(email, "Dynamic contrast in the Sonatina") {
		t.Fatalf("email missing focus area:\n%s", email)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	g := NewDemoGenerator()
	fixed := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return fixed }

	first, err := g.Generate(context.Background(), testExtraction(), "Emma", "Piano")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	second, err := g.Generate(context.Background(), testExtraction(), "Emma", "Piano")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	for _, outputType := range model.AllOutputTypes {
		if first[outputType] != second[outputType] {
			t.Fatalf("content for %s differs between runs", outputType)
		}
	}
}

func TestExtractorEmbedsStudentContext(t *testing.T) {
	e := NewDemoExtractor()

	extraction, err := e.Extract(context.Background(), "transcript", "Emma", "Piano")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if extraction.StudentName != "Emma" || extraction.Instrument != "Piano" {
		t.Fatalf("extraction context = %s/%s, want Emma/Piano", extraction.StudentName, extraction.Instrument)
	}
	if len(extraction.Assignments) == 0 {
		t.Fatal("extraction has no assignments")
	}
	if len(extraction.PositiveFeedback) == 0 {
		t.Fatal("extraction has no positive feedback")
	}
}
