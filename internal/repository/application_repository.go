package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jortega-dev/job-board-api/internal/model"
)

// ErrApplicationExists is returned when a student applies twice to the
// same offer; the pair (job_offer_id, student_id) is unique.
var ErrApplicationExists = errors.New("application already exists")

// ApplicationRepo encapsulates all queries against `job_applications`.
type ApplicationRepo struct {
	db *sql.DB
}

func NewApplicationRepo(db *sql.DB) *ApplicationRepo { return &ApplicationRepo{db: db} }

// Create inserts an application in SUBMITTED state and re-reads the
// stored row.
func (r *ApplicationRepo) Create(ctx context.Context, a *model.JobApplication) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO job_applications (job_offer_id, student_id, status, cover_letter)
		 VALUES (?,?,?,?)`,
		a.JobOfferID, a.StudentID, model.AppSubmitted, a.CoverLetter)
	if err != nil {
		if isDuplicate(err) {
			return ErrApplicationExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		`SELECT id, job_offer_id, student_id, status, cover_letter, applied_at, updated_at
		 FROM job_applications WHERE id = ?`, a.ID).
		Scan(&a.ID, &a.JobOfferID, &a.StudentID, &a.Status, &a.CoverLetter, &a.AppliedAt, &a.UpdatedAt)
}

// ListByStudent returns a student's applications with the offer title,
// newest first, as a snapshot read.
func (r *ApplicationRepo) ListByStudent(ctx context.Context, studentID uint64, skip, take int) ([]model.ApplicationRow, int64, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var total int64
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM job_applications WHERE student_id = ?", studentID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT a.id, a.job_offer_id, a.student_id, a.status, a.cover_letter,
		        a.applied_at, a.updated_at, o.title
		 FROM job_applications a
		 JOIN job_offers o ON o.id = a.job_offer_id
		 WHERE a.student_id = ?
		 ORDER BY a.applied_at DESC
		 LIMIT ? OFFSET ?`, studentID, take, skip)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.ApplicationRow, 0, take)
	for rows.Next() {
		var a model.ApplicationRow
		if err := rows.Scan(&a.ID, &a.JobOfferID, &a.StudentID, &a.Status, &a.CoverLetter,
			&a.AppliedAt, &a.UpdatedAt, &a.OfferTitle); err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, tx.Commit()
}

// ListByOffer returns the applications for one offer including the
// applicant's public view, oldest first, as a snapshot read.
func (r *ApplicationRepo) ListByOffer(ctx context.Context, offerID uint64, skip, take int) ([]model.ApplicationRow, int64, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var total int64
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM job_applications WHERE job_offer_id = ?", offerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT a.id, a.job_offer_id, a.student_id, a.status, a.cover_letter,
		        a.applied_at, a.updated_at, o.title,
		        u.id, u.name, u.email, u.role, u.created_at
		 FROM job_applications a
		 JOIN job_offers o ON o.id = a.job_offer_id
		 JOIN users u      ON u.id = a.student_id
		 WHERE a.job_offer_id = ?
		 ORDER BY a.applied_at ASC
		 LIMIT ? OFFSET ?`, offerID, take, skip)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.ApplicationRow, 0, take)
	for rows.Next() {
		var a model.ApplicationRow
		var u model.User
		if err := rows.Scan(&a.ID, &a.JobOfferID, &a.StudentID, &a.Status, &a.CoverLetter,
			&a.AppliedAt, &a.UpdatedAt, &a.OfferTitle,
			&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt); err != nil {
			return nil, 0, err
		}
		pv := u.Public()
		a.Student = &pv
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, tx.Commit()
}
