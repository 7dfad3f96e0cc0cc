package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jortega-dev/job-board-api/internal/model"
)

// SkillRepo encapsulates all queries against the `skills` table.
type SkillRepo struct {
	db *sql.DB
}

func NewSkillRepo(db *sql.DB) *SkillRepo { return &SkillRepo{db: db} }

// List returns every skill ordered by name.
func (r *SkillRepo) List(ctx context.Context) ([]model.Skill, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM skills ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Skill{}
	for rows.Next() {
		var s model.Skill
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// CountExisting returns how many of the given ids resolve to a skill row.
// Offer create/update compare the result against len(ids) to pre-validate
// referenced skills before touching the offer.
func (r *SkillRepo) CountExisting(ctx context.Context, ids []uint64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	q := "SELECT COUNT(DISTINCT id) FROM skills WHERE id IN (?" +
		strings.Repeat(",?", len(ids)-1) + ")"
	var n int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
