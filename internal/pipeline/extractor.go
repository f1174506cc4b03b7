package pipeline

import (
	"context"
	"time"

	"github.com/shangobashi/NoteSquared-C/internal/model"
)

// DemoExtractor is the deterministic extraction engine. It fills the
// instruction record from fixed lesson content plus the supplied student
// context; a model-backed engine implements the same Extractor interface.
type DemoExtractor struct{}

func NewDemoExtractor() *DemoExtractor {
	return &DemoExtractor{}
}

func (e *DemoExtractor) Extract(_ context.Context, _ string, studentName, instrument string) (model.Extraction, error) {
	return model.Extraction{
		StudentName: studentName,
		Instrument:  instrument,
		LessonDate:  time.Now().Format("2006-01-02"),
		SkillsPracticed: []model.SkillPracticed{
			{Name: "C Major Scale", Status: "improving", Notes: "Evenness much better"},
			{Name: "Finger Position", Status: "focus_area", Notes: "Keep wrists relaxed, fingers curved"},
		},
		Repertoire: []model.RepertoireItem{
			{
				Piece:         "Bach Minuet",
				FocusMeasures: "12-16",
				Issues:        []string{"Left hand rushing"},
				Solutions:     []string{"Count 1-and-2-and while playing"},
			},
			{
				Piece:         "Sonatina",
				FocusMeasures: "8-12",
				Issues:        []string{"Dynamics need work"},
				Solutions:     []string{"Focus on crescendo, exaggerate dynamic change"},
			},
		},
		Assignments: []model.Assignment{
			{Task: "C Major Scale", Details: "Hands separate then together at 60 BPM", DurationMinutes: 5},
			{Task: "Bach Minuet mm. 12-16", Details: "Left hand only, then hands together slowly", DurationMinutes: 10},
			{Task: "Sonatina mm. 8-12", Details: "Work on crescendo, exaggerate dynamics", DurationMinutes: 5},
			{Task: "Bach memorization", Details: "Memorize first line", DurationMinutes: 5},
		},
		PositiveFeedback: []string{
			"C major scale evenness improved significantly",
			"Good progress on finger technique",
		},
		AreasForImprovement: []string{
			"Left hand coordination in Bach",
			"Dynamic expression in Sonatina",
		},
	}, nil
}
