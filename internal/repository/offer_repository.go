package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jortega-dev/job-board-api/internal/model"
)

// ErrOfferNotFound is returned when a job offer cannot be found.
var ErrOfferNotFound = errors.New("job offer not found")

// OfferRepo encapsulates all queries against the `job_offers` table and
// its skill join table.
type OfferRepo struct {
	db *sql.DB
}

func NewOfferRepo(db *sql.DB) *OfferRepo { return &OfferRepo{db: db} }

const offerColumns = `o.id, o.title, o.description, o.company_id, o.posted_by_id,
	o.job_type, o.location, o.is_remote, o.salary_min, o.salary_max,
	o.salary_currency, o.status, o.is_featured, o.created_at, o.updated_at`

func scanOffer(o *model.JobOffer, s interface{ Scan(...any) error }, extra ...any) error {
	fields := []any{&o.ID, &o.Title, &o.Description, &o.CompanyID, &o.PostedByID,
		&o.JobType, &o.Location, &o.IsRemote, &o.SalaryMin, &o.SalaryMax,
		&o.SalaryCurrency, &o.Status, &o.IsFeatured, &o.CreatedAt, &o.UpdatedAt}
	return s.Scan(append(fields, extra...)...)
}

// Create inserts the offer and attaches its skills inside one
// transaction, then re-reads the stored row. Skill ids are assumed
// pre-validated by the service.
func (r *OfferRepo) Create(ctx context.Context, o *model.JobOffer, skillIDs []uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO job_offers (title, description, company_id, posted_by_id,
		 job_type, location, is_remote, salary_min, salary_max, salary_currency,
		 status, is_featured)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		o.Title, o.Description, o.CompanyID, o.PostedByID,
		o.JobType, o.Location, o.IsRemote, o.SalaryMin, o.SalaryMax,
		o.SalaryCurrency, o.Status, o.IsFeatured)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	o.ID = uint64(id)

	if err := insertOfferSkills(ctx, tx, o.ID, skillIDs); err != nil {
		return err
	}
	if err := scanOffer(o, tx.QueryRowContext(ctx,
		"SELECT "+offerColumns+" FROM job_offers o WHERE o.id = ?", o.ID)); err != nil {
		return err
	}
	return tx.Commit()
}

func insertOfferSkills(ctx context.Context, tx *sql.Tx, offerID uint64, skillIDs []uint64) error {
	if len(skillIDs) == 0 {
		return nil
	}
	values := strings.TrimSuffix(strings.Repeat("(?,?),", len(skillIDs)), ",")
	args := make([]any, 0, len(skillIDs)*2)
	for _, sid := range skillIDs {
		args = append(args, offerID, sid)
	}
	_, err := tx.ExecContext(ctx,
		"INSERT INTO job_offer_skills (job_offer_id, skill_id) VALUES "+values, args...)
	return err
}

// OfferOwnership is the minimal projection used by update/remove to run
// the existence check and the ownership gate before any mutation.
type OfferOwnership struct {
	ID         uint64
	CompanyID  uint64
	PostedByID uint64
	Status     string
}

// OwnerCompanyID implements the authz resource contract.
func (o OfferOwnership) OwnerCompanyID() (uint64, bool) { return o.CompanyID, true }

// OwnerUserID implements the authz resource contract.
func (o OfferOwnership) OwnerUserID() (uint64, bool) { return o.PostedByID, true }

// GetOwnership loads the ownership projection of an offer.
func (r *OfferRepo) GetOwnership(ctx context.Context, id uint64) (OfferOwnership, error) {
	var o OfferOwnership
	err := r.db.QueryRowContext(ctx,
		"SELECT id, company_id, posted_by_id, status FROM job_offers WHERE id = ?", id).
		Scan(&o.ID, &o.CompanyID, &o.PostedByID, &o.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return OfferOwnership{}, ErrOfferNotFound
	}
	return o, err
}

// GetByID fetches the full detail view of an offer: row, company
// reference, required skills and the poster's public view.
func (r *OfferRepo) GetByID(ctx context.Context, id uint64) (model.JobOfferRow, error) {
	var row model.JobOfferRow
	var poster model.User
	err := scanOffer(&row.JobOffer, r.db.QueryRowContext(ctx,
		`SELECT `+offerColumns+`, c.id, c.name, c.logo_url, c.location,
		        u.id, u.name, u.email, u.role, u.created_at
		 FROM job_offers o
		 JOIN companies c ON c.id = o.company_id
		 JOIN users u     ON u.id = o.posted_by_id
		 WHERE o.id = ?`, id),
		&row.Company.ID, &row.Company.Name, &row.Company.LogoURL, &row.Company.Location,
		&poster.ID, &poster.Name, &poster.Email, &poster.Role, &poster.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.JobOfferRow{}, ErrOfferNotFound
	}
	if err != nil {
		return model.JobOfferRow{}, err
	}
	pv := poster.Public()
	row.PostedBy = &pv

	skills, err := r.skillsForOffers(ctx, r.db, []uint64{id})
	if err != nil {
		return model.JobOfferRow{}, err
	}
	row.RequiredSkills = skills[id]
	if row.RequiredSkills == nil {
		row.RequiredSkills = []model.Skill{}
	}
	return row, nil
}

// OfferUpdate carries the PATCH payload; nil fields are left untouched.
// Skills is non-nil when the caller wants a full set-replace of the
// offer's required skills.
type OfferUpdate struct {
	Title          *string
	Description    *string
	CompanyID      *uint64
	JobType        *string
	Location       *string
	IsRemote       *bool
	SalaryMin      *int64
	SalaryMax      *int64
	SalaryCurrency *string
	Status         *string
	IsFeatured     *bool
	Skills         *[]uint64
}

// Update applies the non-nil fields and, when Skills is present, replaces
// the offer's skill set in the same transaction (set-replace, not merge).
func (r *OfferRepo) Update(ctx context.Context, id uint64, u OfferUpdate) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	set := []string{}
	args := []any{}
	add := func(col string, v any) {
		set = append(set, col+" = ?")
		args = append(args, v)
	}
	if u.Title != nil {
		add("title", *u.Title)
	}
	if u.Description != nil {
		add("description", *u.Description)
	}
	if u.CompanyID != nil {
		add("company_id", *u.CompanyID)
	}
	if u.JobType != nil {
		add("job_type", *u.JobType)
	}
	if u.Location != nil {
		add("location", *u.Location)
	}
	if u.IsRemote != nil {
		add("is_remote", *u.IsRemote)
	}
	if u.SalaryMin != nil {
		add("salary_min", *u.SalaryMin)
	}
	if u.SalaryMax != nil {
		add("salary_max", *u.SalaryMax)
	}
	if u.SalaryCurrency != nil {
		add("salary_currency", *u.SalaryCurrency)
	}
	if u.Status != nil {
		add("status", *u.Status)
	}
	if u.IsFeatured != nil {
		add("is_featured", *u.IsFeatured)
	}

	if len(set) > 0 {
		set = append(set, "updated_at = CURRENT_TIMESTAMP")
		res, err := tx.ExecContext(ctx,
			"UPDATE job_offers SET "+strings.Join(set, ", ")+" WHERE id = ?",
			append(args, id)...)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			var one int
			if err := tx.QueryRowContext(ctx,
				"SELECT 1 FROM job_offers WHERE id = ?", id).Scan(&one); errors.Is(err, sql.ErrNoRows) {
				return ErrOfferNotFound
			} else if err != nil {
				return err
			}
		}
	}

	if u.Skills != nil {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM job_offer_skills WHERE job_offer_id = ?", id); err != nil {
			return err
		}
		if err := insertOfferSkills(ctx, tx, id, *u.Skills); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Delete removes an offer, its skill links and its applications.
func (r *OfferRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM job_offer_skills WHERE job_offer_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM job_applications WHERE job_offer_id = ?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM job_offers WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrOfferNotFound
	}
	return tx.Commit()
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// skillsForOffers loads the required skills for a batch of offer ids in
// one query, keyed by offer id.
func (r *OfferRepo) skillsForOffers(ctx context.Context, q querier, offerIDs []uint64) (map[uint64][]model.Skill, error) {
	out := map[uint64][]model.Skill{}
	if len(offerIDs) == 0 {
		return out, nil
	}
	args := make([]any, len(offerIDs))
	for i, id := range offerIDs {
		args[i] = id
	}
	rows, err := q.QueryContext(ctx,
		`SELECT js.job_offer_id, s.id, s.name
		 FROM job_offer_skills js
		 JOIN skills s ON s.id = js.skill_id
		 WHERE js.job_offer_id IN (?`+strings.Repeat(",?", len(offerIDs)-1)+`)
		 ORDER BY s.name`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var offerID uint64
		var s model.Skill
		if err := rows.Scan(&offerID, &s.ID, &s.Name); err != nil {
			return nil, err
		}
		out[offerID] = append(out[offerID], s)
	}
	return out, rows.Err()
}
