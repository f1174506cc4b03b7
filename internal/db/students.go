package db

import (
	"context"

	"github.com/shangobashi/NoteSquared-C/internal/model"
)

const studentColumns = `s.id, s.owner_id, s.full_name, s.instrument, s.level, s.parent_email,
	s.parent_name, s.notes, s.is_archived, s.created_at, s.updated_at`

func (r *repository) CreateStudent(ctx context.Context, student *model.Student) error {
	query := `INSERT INTO students (id, owner_id, full_name, instrument, level, parent_email, parent_name, notes, is_archived, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`
	_, err := r.db.ExecContext(ctx, query,
		student.ID, student.OwnerID, student.FullName, student.Instrument, student.Level,
		student.ParentEmail, student.ParentName, student.Notes, student.IsArchived)
	return err
}

func (r *repository) CreateStudents(ctx context.Context, students []model.Student) error {
	if len(students) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO students (id, owner_id, full_name, instrument, level, parent_email, parent_name, notes, is_archived, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`

	for _, student := range students {
		_, err := tx.ExecContext(ctx, query,
			student.ID, student.OwnerID, student.FullName, student.Instrument, student.Level,
			student.ParentEmail, student.ParentName, student.Notes, student.IsArchived)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *repository) ListStudents(ctx context.Context, ownerID string, includeArchived bool) ([]model.Student, error) {
	query := `SELECT ` + studentColumns + `, COUNT(l.id)
			  FROM students s
			  LEFT JOIN lessons l ON l.student_id = s.id
			  WHERE s.owner_id = ?`
	if !includeArchived {
		query += ` AND s.is_archived = FALSE`
	}
	query += ` GROUP BY s.id ORDER BY s.full_name`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []model.Student
	for rows.Next() {
		var student model.Student
		err := rows.Scan(&student.ID, &student.OwnerID, &student.FullName, &student.Instrument,
			&student.Level, &student.ParentEmail, &student.ParentName, &student.Notes,
			&student.IsArchived, &student.CreatedAt, &student.UpdatedAt, &student.LessonCount)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	return students, rows.Err()
}

func (r *repository) GetStudent(ctx context.Context, ownerID, studentID string) (*model.Student, error) {
	query := `SELECT ` + studentColumns + `, COUNT(l.id)
			  FROM students s
			  LEFT JOIN lessons l ON l.student_id = s.id
			  WHERE s.id = ? AND s.owner_id = ?
			  GROUP BY s.id`

	var student model.Student
	err := r.db.QueryRowContext(ctx, query, studentID, ownerID).Scan(
		&student.ID, &student.OwnerID, &student.FullName, &student.Instrument,
		&student.Level, &student.ParentEmail, &student.ParentName, &student.Notes,
		&student.IsArchived, &student.CreatedAt, &student.UpdatedAt, &student.LessonCount,
	)
	if err != nil {
		return nil, err
	}

	return &student, nil
}

func (r *repository) UpdateStudent(ctx context.Context, student *model.Student) error {
	query := `UPDATE students SET full_name = ?, instrument = ?, level = ?, parent_email = ?,
			  parent_name = ?, notes = ?, updated_at = NOW()
			  WHERE id = ? AND owner_id = ?`
	_, err := r.db.ExecContext(ctx, query,
		student.FullName, student.Instrument, student.Level, student.ParentEmail,
		student.ParentName, student.Notes, student.ID, student.OwnerID)
	return err
}

func (r *repository) SetStudentArchived(ctx context.Context, ownerID, studentID string, archived bool) error {
	query := `UPDATE students SET is_archived = ?, updated_at = NOW() WHERE id = ? AND owner_id = ?`
	_, err := r.db.ExecContext(ctx, query, archived, studentID, ownerID)
	return err
}
