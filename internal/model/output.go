package model

import (
	"sort"
	"time"
)

type OutputType string

const (
	OutputTypeStudentRecap OutputType = "STUDENT_RECAP"
	OutputTypePracticePlan OutputType = "PRACTICE_PLAN"
	OutputTypeParentEmail  OutputType = "PARENT_EMAIL"
)

// AllOutputTypes is the closed set every generation run must cover, in
// display order.
var AllOutputTypes = []OutputType{
	OutputTypeStudentRecap,
	OutputTypePracticePlan,
	OutputTypeParentEmail,
}

func (t OutputType) displayRank() int {
	for i, known := range AllOutputTypes {
		if t == known {
			return i
		}
	}
	return len(AllOutputTypes) // unrecognized types sort last
}

// SortOutputs orders outputs for display: recap, plan, email, then anything
// unrecognized.
func SortOutputs(outputs []Output) {
	sort.SliceStable(outputs, func(i, j int) bool {
		return outputs[i].OutputType.displayRank() < outputs[j].OutputType.displayRank()
	})
}

// ApplyEdit replaces the content, capturing the first-generated text into
// OriginalContent exactly once, on the first edit.
func (o *Output) ApplyEdit(content string) {
	if !o.IsEdited && o.OriginalContent == nil {
		original := o.Content
		o.OriginalContent = &original
	}
	o.Content = content
	o.IsEdited = true
}

// Revert restores the first-captured original content and clears the edited
// flag. It fails when the output was never edited.
func (o *Output) Revert() bool {
	if o.OriginalContent == nil {
		return false
	}
	o.Content = *o.OriginalContent
	o.IsEdited = false
	return true
}

type Output struct {
	ID              string     `json:"id" db:"id"`
	LessonID        string     `json:"lesson_id" db:"lesson_id"`
	OutputType      OutputType `json:"output_type" db:"output_type"`
	Content         string     `json:"content" db:"content"`
	OriginalContent *string    `json:"original_content,omitempty" db:"original_content"`
	IsEdited        bool       `json:"is_edited" db:"is_edited"`
	IsShared        bool       `json:"is_shared" db:"is_shared"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}
