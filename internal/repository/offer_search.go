package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jortega-dev/job-board-api/internal/model"
)

// OfferFilter defines the filter grammar shared by the public, owner and
// admin offer listings. Zero values mean "not filtered"; Status is left
// to the service, which applies the ACTIVE default for public browsing
// only. SkillIDs uses match-all semantics: an offer qualifies only when
// its skill set is a superset of the requested ids.
type OfferFilter struct {
	Title      string
	CompanyID  uint64
	JobType    string
	Location   string
	IsRemote   *bool
	MinSalary  *int64
	Status     string
	IsFeatured *bool
	SkillIDs   []uint64
	PostedByID uint64

	OrderKey  string
	OrderDesc bool
	Skip      int
	Take      int

	// WithApplicationCounts and WithPoster enrich owner/admin listings.
	WithApplicationCounts bool
	WithPoster            bool
}

// orderColumns maps the allow-listed sort keys to SQL expressions. The
// dotted company.name key sorts on the joined company row and is offered
// on the admin listing only; the allow-listing itself happens in the
// service layer.
var orderColumns = map[string]string{
	"createdAt":    "o.created_at",
	"updatedAt":    "o.updated_at",
	"title":        "o.title",
	"location":     "o.location",
	"salaryMin":    "o.salary_min",
	"status":       "o.status",
	"company.name": "c.name",
}

func orderClause(f OfferFilter) string {
	col, ok := orderColumns[f.OrderKey]
	if !ok {
		return "o.created_at DESC"
	}
	if f.OrderDesc {
		return col + " DESC"
	}
	return col + " ASC"
}

// buildOfferWhere translates a filter into a WHERE condition over the
// aliased job_offers table `o` plus its arguments.
func buildOfferWhere(f OfferFilter) (string, []any) {
	where := []string{}
	args := []any{}

	if f.Status != "" {
		where = append(where, "o.status = ?")
		args = append(args, f.Status)
	}
	if f.Title != "" {
		where = append(where, "LOWER(o.title) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.Title)+"%")
	}
	if f.CompanyID != 0 {
		where = append(where, "o.company_id = ?")
		args = append(args, f.CompanyID)
	}
	if f.JobType != "" {
		where = append(where, "o.job_type = ?")
		args = append(args, f.JobType)
	}
	if f.Location != "" {
		where = append(where, "LOWER(o.location) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.Location)+"%")
	}
	if f.IsRemote != nil {
		where = append(where, "o.is_remote = ?")
		args = append(args, *f.IsRemote)
	}
	if f.MinSalary != nil {
		where = append(where, "o.salary_min >= ?")
		args = append(args, *f.MinSalary)
	}
	if f.IsFeatured != nil {
		where = append(where, "o.is_featured = ?")
		args = append(args, *f.IsFeatured)
	}
	if f.PostedByID != 0 {
		where = append(where, "o.posted_by_id = ?")
		args = append(args, f.PostedByID)
	}
	if len(f.SkillIDs) > 0 {
		// Match-all: the offer must carry every requested skill.
		sub := `o.id IN (SELECT job_offer_id FROM job_offer_skills
			WHERE skill_id IN (?` + strings.Repeat(",?", len(f.SkillIDs)-1) + `)
			GROUP BY job_offer_id
			HAVING COUNT(DISTINCT skill_id) = ?)`
		where = append(where, sub)
		for _, id := range f.SkillIDs {
			args = append(args, id)
		}
		args = append(args, len(f.SkillIDs))
	}

	if len(where) == 0 {
		return "1=1", args
	}
	return strings.Join(where, " AND "), args
}

// Search runs the filtered offer listing plus the matching count inside
// one read-only transaction (snapshot read), then batch-loads the skills
// for the returned page.
func (r *OfferRepo) Search(ctx context.Context, f OfferFilter) ([]model.JobOfferRow, int64, error) {
	cond, args := buildOfferWhere(f)

	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var total int64
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM job_offers o WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	cols := offerColumns + ", c.id, c.name, c.logo_url, c.location"
	joins := " JOIN companies c ON c.id = o.company_id"
	if f.WithPoster {
		cols += ", u.id, u.name, u.email, u.role, u.created_at"
		joins += " JOIN users u ON u.id = o.posted_by_id"
	}
	if f.WithApplicationCounts {
		cols += ", (SELECT COUNT(*) FROM job_applications a WHERE a.job_offer_id = o.id)"
	}

	dataSQL := "SELECT " + cols + " FROM job_offers o" + joins +
		" WHERE " + cond +
		" ORDER BY " + orderClause(f) +
		" LIMIT ? OFFSET ?"
	rows, err := tx.QueryContext(ctx, dataSQL, append(append([]any{}, args...), f.Take, f.Skip)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.JobOfferRow, 0, f.Take)
	ids := make([]uint64, 0, f.Take)
	for rows.Next() {
		var row model.JobOfferRow
		extra := []any{&row.Company.ID, &row.Company.Name, &row.Company.LogoURL, &row.Company.Location}
		var poster model.User
		if f.WithPoster {
			extra = append(extra, &poster.ID, &poster.Name, &poster.Email, &poster.Role, &poster.CreatedAt)
		}
		var appCount int64
		if f.WithApplicationCounts {
			extra = append(extra, &appCount)
		}
		if err := scanOffer(&row.JobOffer, rows, extra...); err != nil {
			return nil, 0, err
		}
		if f.WithPoster {
			pv := poster.Public()
			row.PostedBy = &pv
		}
		if f.WithApplicationCounts {
			n := appCount
			row.ApplicationsCount = &n
		}
		row.RequiredSkills = []model.Skill{}
		out = append(out, row)
		ids = append(ids, row.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	skills, err := r.skillsForOffers(ctx, tx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range out {
		if s, ok := skills[out[i].ID]; ok {
			out[i].RequiredSkills = s
		}
	}
	return out, total, tx.Commit()
}
