package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Extraction is the structured instruction record produced by the extraction
// engine and consumed whole by the generation engine. The orchestrator treats
// it as opaque; its shape is the contract between the two engines.
type Extraction struct {
	StudentName         string           `json:"student_name"`
	Instrument          string           `json:"instrument"`
	LessonDate          string           `json:"lesson_date"`
	SkillsPracticed     []SkillPracticed `json:"skills_practiced"`
	Repertoire          []RepertoireItem `json:"repertoire"`
	Assignments         []Assignment     `json:"assignments"`
	PositiveFeedback    []string         `json:"positive_feedback"`
	AreasForImprovement []string         `json:"areas_for_improvement"`
}

type SkillPracticed struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

type RepertoireItem struct {
	Piece         string   `json:"piece"`
	FocusMeasures string   `json:"focus_measures"`
	Issues        []string `json:"issues"`
	Solutions     []string `json:"solutions"`
}

type Assignment struct {
	Task            string `json:"task"`
	Details         string `json:"details"`
	DurationMinutes int    `json:"duration_minutes"`
}

// Value serializes the record to JSON for the lessons.extraction column.
func (e Extraction) Value() (driver.Value, error) {
	return json.Marshal(e)
}

func (e *Extraction) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, e)
	case string:
		return json.Unmarshal([]byte(v), e)
	case nil:
		return nil
	default:
		return fmt.Errorf("cannot scan extraction from %T", src)
	}
}
