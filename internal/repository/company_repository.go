package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jortega-dev/job-board-api/internal/model"
)

// ErrCompanyNotFound is returned when a company cannot be found.
var ErrCompanyNotFound = errors.New("company not found")

// CompanyRepo encapsulates all queries against the `companies` table.
type CompanyRepo struct {
	db *sql.DB
}

func NewCompanyRepo(db *sql.DB) *CompanyRepo { return &CompanyRepo{db: db} }

const companyColumns = `id, name, industry, location, size, contact_email,
	website_url, logo_url, description, is_verified, created_at, updated_at`

func scanCompanyFields(dest *model.Company, s interface{ Scan(...any) error }, extra ...any) error {
	fields := []any{&dest.ID, &dest.Name, &dest.Industry, &dest.Location, &dest.Size,
		&dest.ContactEmail, &dest.WebsiteURL, &dest.LogoURL, &dest.Description,
		&dest.IsVerified, &dest.CreatedAt, &dest.UpdatedAt}
	return s.Scan(append(fields, extra...)...)
}

// Create inserts a company and re-reads the stored row so the caller
// receives DB-generated timestamps. Unique violations (contact email)
// surface as ErrDuplicate.
func (r *CompanyRepo) Create(ctx context.Context, c *model.Company) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO companies (name, industry, location, size, contact_email,
		 website_url, logo_url, description, is_verified)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		c.Name, c.Industry, c.Location, c.Size, c.ContactEmail,
		c.WebsiteURL, c.LogoURL, c.Description, c.IsVerified)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return scanCompanyFields(c, r.db.QueryRowContext(ctx,
		"SELECT "+companyColumns+" FROM companies WHERE id = ?", c.ID))
}

// CompanyFilter carries the findAll filters and pagination.
type CompanyFilter struct {
	Name       string
	Location   string
	IsVerified *bool
	Skip       int
	Take       int
}

// buildCompanyWhere translates a filter into a WHERE condition and its
// arguments. Partial matches are case-insensitive.
func buildCompanyWhere(f CompanyFilter) (string, []any) {
	where := []string{}
	args := []any{}
	if f.Name != "" {
		where = append(where, "LOWER(name) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.Name)+"%")
	}
	if f.Location != "" {
		where = append(where, "LOWER(location) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.Location)+"%")
	}
	if f.IsVerified != nil {
		where = append(where, "is_verified = ?")
		args = append(args, *f.IsVerified)
	}
	if len(where) == 0 {
		return "1=1", args
	}
	return strings.Join(where, " AND "), args
}

// Search runs the filtered list plus the matching count inside a single
// transaction, so concurrent writes cannot skew the total against the
// returned page.
func (r *CompanyRepo) Search(ctx context.Context, f CompanyFilter) ([]model.CompanyWithStats, int64, error) {
	cond, args := buildCompanyWhere(f)

	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var total int64
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM companies WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := `SELECT ` + companyColumns + `,
		(SELECT COUNT(*) FROM job_offers jo WHERE jo.company_id = companies.id) AS job_offers_count
		FROM companies
		WHERE ` + cond + `
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`
	rows, err := tx.QueryContext(ctx, dataSQL, append(append([]any{}, args...), f.Take, f.Skip)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.CompanyWithStats, 0, f.Take)
	for rows.Next() {
		var c model.CompanyWithStats
		if err := scanCompanyFields(&c.Company, rows, &c.JobOffersCount); err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, tx.Commit()
}

// GetByID fetches a company with its offer count. Returns
// ErrCompanyNotFound when absent.
func (r *CompanyRepo) GetByID(ctx context.Context, id uint64) (model.CompanyWithStats, error) {
	var c model.CompanyWithStats
	err := scanCompanyFields(&c.Company, r.db.QueryRowContext(ctx,
		`SELECT `+companyColumns+`,
		 (SELECT COUNT(*) FROM job_offers jo WHERE jo.company_id = companies.id)
		 FROM companies WHERE id = ?`, id), &c.JobOffersCount)
	if errors.Is(err, sql.ErrNoRows) {
		return model.CompanyWithStats{}, ErrCompanyNotFound
	}
	return c, err
}

// Exists reports whether a company row exists.
func (r *CompanyRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM companies WHERE id = ? LIMIT 1", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// CompanyUpdate carries the PATCH payload; nil fields are left untouched.
type CompanyUpdate struct {
	Name         *string
	Industry     *string
	Location     *string
	Size         *string
	ContactEmail *string
	WebsiteURL   *string
	LogoURL      *string
	Description  *string
	IsVerified   *bool
}

// Update applies the non-nil fields of u to the company row. Unique
// violations surface as ErrDuplicate; a missing row as
// ErrCompanyNotFound.
func (r *CompanyRepo) Update(ctx context.Context, id uint64, u CompanyUpdate) error {
	set := []string{}
	args := []any{}
	add := func(col string, v any) {
		set = append(set, col+" = ?")
		args = append(args, v)
	}
	if u.Name != nil {
		add("name", *u.Name)
	}
	if u.Industry != nil {
		add("industry", *u.Industry)
	}
	if u.Location != nil {
		add("location", *u.Location)
	}
	if u.Size != nil {
		add("size", *u.Size)
	}
	if u.ContactEmail != nil {
		add("contact_email", *u.ContactEmail)
	}
	if u.WebsiteURL != nil {
		add("website_url", *u.WebsiteURL)
	}
	if u.LogoURL != nil {
		add("logo_url", *u.LogoURL)
	}
	if u.Description != nil {
		add("description", *u.Description)
	}
	if u.IsVerified != nil {
		add("is_verified", *u.IsVerified)
	}
	if len(set) == 0 {
		return nil
	}
	set = append(set, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	res, err := r.db.ExecContext(ctx,
		"UPDATE companies SET "+strings.Join(set, ", ")+" WHERE id = ?", args...)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Row may exist with identical values; distinguish from absence.
		ok, err := r.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrCompanyNotFound
		}
	}
	return nil
}

// Delete removes a company row. Returns ErrCompanyNotFound when no row
// was deleted.
func (r *CompanyRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM companies WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCompanyNotFound
	}
	return nil
}
