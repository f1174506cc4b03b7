package db

import (
	"context"

	"github.com/shangobashi/NoteSquared-C/internal/model"
)

const outputColumns = `o.id, o.lesson_id, o.output_type, o.content, o.original_content,
	o.is_edited, o.is_shared, o.created_at, o.updated_at`

func (r *repository) GetOutputForOwner(ctx context.Context, ownerID, outputID string) (*model.Output, error) {
	query := `SELECT ` + outputColumns + `
			  FROM outputs o
			  JOIN lessons l ON l.id = o.lesson_id
			  WHERE o.id = ? AND l.owner_id = ?`

	var output model.Output
	err := r.db.QueryRowContext(ctx, query, outputID, ownerID).Scan(
		&output.ID, &output.LessonID, &output.OutputType, &output.Content,
		&output.OriginalContent, &output.IsEdited, &output.IsShared,
		&output.CreatedAt, &output.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &output, nil
}

func (r *repository) ListOutputsByLesson(ctx context.Context, lessonID string) ([]model.Output, error) {
	query := `SELECT ` + outputColumns + ` FROM outputs o WHERE o.lesson_id = ?`

	rows, err := r.db.QueryContext(ctx, query, lessonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outputs []model.Output
	for rows.Next() {
		var output model.Output
		err := rows.Scan(&output.ID, &output.LessonID, &output.OutputType, &output.Content,
			&output.OriginalContent, &output.IsEdited, &output.IsShared,
			&output.CreatedAt, &output.UpdatedAt)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, output)
	}

	model.SortOutputs(outputs)
	return outputs, rows.Err()
}

func (r *repository) UpdateOutput(ctx context.Context, output *model.Output) error {
	query := `UPDATE outputs SET content = ?, original_content = ?, is_edited = ?, is_shared = ?, updated_at = NOW()
			  WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		output.Content, output.OriginalContent, output.IsEdited, output.IsShared, output.ID)
	return err
}
