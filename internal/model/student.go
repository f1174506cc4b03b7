package model

import "time"

type StudentLevel string

const (
	StudentLevelBeginner     StudentLevel = "BEGINNER"
	StudentLevelIntermediate StudentLevel = "INTERMEDIATE"
	StudentLevelAdvanced     StudentLevel = "ADVANCED"
)

func (l StudentLevel) Valid() bool {
	switch l {
	case StudentLevelBeginner, StudentLevelIntermediate, StudentLevelAdvanced:
		return true
	}
	return false
}

// Instruments offered when creating a student.
var Instruments = []string{
	"Piano", "Violin", "Viola", "Cello", "Guitar", "Voice",
	"Flute", "Clarinet", "Saxophone", "Trumpet", "Drums", "Other",
}

type Student struct {
	ID          string       `json:"id" db:"id"`
	OwnerID     string       `json:"owner_id" db:"owner_id"`
	FullName    string       `json:"full_name" db:"full_name"`
	Instrument  string       `json:"instrument" db:"instrument"`
	Level       StudentLevel `json:"level" db:"level"`
	ParentEmail *string      `json:"parent_email,omitempty" db:"parent_email"`
	ParentName  *string      `json:"parent_name,omitempty" db:"parent_name"`
	Notes       *string      `json:"notes,omitempty" db:"notes"`
	IsArchived  bool         `json:"is_archived" db:"is_archived"`
	LessonCount int          `json:"lesson_count" db:"-"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}
