package roster

import (
	"context"
	"regexp"

	"github.com/shangobashi/NoteSquared-C/internal/model"
	"github.com/shangobashi/NoteSquared-C/pkg/errors"
)

type Validator struct {
	emailRegex *regexp.Regexp
}

func NewValidator() *Validator {
	return &Validator{
		emailRegex: regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`),
	}
}

func (v *Validator) Validate(ctx context.Context, rows []Row) error {
	if len(rows) == 0 {
		return errors.ErrSchemaValidation
	}

	for _, row := range rows {
		if err := v.validateRow(row); err != nil {
			return err
		}
	}

	return nil
}

func (v *Validator) validateRow(row Row) error {
	if len(row.FullName) == 0 || len(row.FullName) > 100 {
		return errors.ValidationError{
			Field:   "full_name",
			Value:   row.FullName,
			Message: "must be 1-100 characters",
		}
	}

	if len(row.Instrument) == 0 || len(row.Instrument) > 50 {
		return errors.ValidationError{
			Field:   "instrument",
			Value:   row.Instrument,
			Message: "must be 1-50 characters",
		}
	}

	if row.Level != "" && !model.StudentLevel(row.Level).Valid() {
		return errors.ValidationError{
			Field:   "level",
			Value:   row.Level,
			Message: "must be BEGINNER, INTERMEDIATE or ADVANCED",
		}
	}

	if row.ParentEmail != "" && !v.emailRegex.MatchString(row.ParentEmail) {
		return errors.ValidationError{
			Field:   "parent_email",
			Value:   row.ParentEmail,
			Message: "must be a valid email address",
		}
	}

	return nil
}
