package repository

import (
	"strings"
	"testing"
)

func TestBuildOfferWhere_Empty(t *testing.T) {
	cond, args := buildOfferWhere(OfferFilter{})
	if cond != "1=1" {
		t.Errorf("cond = %q, want 1=1", cond)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}
}

func TestBuildOfferWhere_CaseInsensitivePartials(t *testing.T) {
	cond, args := buildOfferWhere(OfferFilter{Title: "BackEnd", Location: "LIMA"})
	if !strings.Contains(cond, "LOWER(o.title) LIKE ?") {
		t.Errorf("cond missing title clause: %q", cond)
	}
	if !strings.Contains(cond, "LOWER(o.location) LIKE ?") {
		t.Errorf("cond missing location clause: %q", cond)
	}
	if args[0] != "%backend%" || args[1] != "%lima%" {
		t.Errorf("args = %v, want lower-cased wildcards", args)
	}
}

func TestBuildOfferWhere_MatchAllSkills(t *testing.T) {
	cond, args := buildOfferWhere(OfferFilter{SkillIDs: []uint64{5, 9}})
	if !strings.Contains(cond, "HAVING COUNT(DISTINCT skill_id) = ?") {
		t.Errorf("cond missing match-all HAVING clause: %q", cond)
	}
	if !strings.Contains(cond, "skill_id IN (?,?)") {
		t.Errorf("cond missing IN placeholders: %q", cond)
	}
	// Arguments: the two skill ids then the required distinct count.
	if len(args) != 3 || args[0] != uint64(5) || args[1] != uint64(9) || args[2] != 2 {
		t.Errorf("args = %v, want [5 9 2]", args)
	}
}

func TestBuildOfferWhere_StatusAndOwner(t *testing.T) {
	cond, args := buildOfferWhere(OfferFilter{Status: "ACTIVE", PostedByID: 7})
	if !strings.Contains(cond, "o.status = ?") || !strings.Contains(cond, "o.posted_by_id = ?") {
		t.Errorf("cond = %q", cond)
	}
	if len(args) != 2 {
		t.Errorf("args = %v, want 2 entries", args)
	}
}

func TestBuildOfferWhere_MinSalaryIsGte(t *testing.T) {
	min := int64(2500)
	cond, args := buildOfferWhere(OfferFilter{MinSalary: &min})
	if !strings.Contains(cond, "o.salary_min >= ?") {
		t.Errorf("cond = %q, want salary_min >= clause", cond)
	}
	if len(args) != 1 || args[0] != int64(2500) {
		t.Errorf("args = %v", args)
	}
}

func TestOrderClause(t *testing.T) {
	cases := []struct {
		f    OfferFilter
		want string
	}{
		{OfferFilter{}, "o.created_at DESC"},
		{OfferFilter{OrderKey: "title"}, "o.title ASC"},
		{OfferFilter{OrderKey: "salaryMin", OrderDesc: true}, "o.salary_min DESC"},
		{OfferFilter{OrderKey: "company.name"}, "c.name ASC"},
		{OfferFilter{OrderKey: "drop table"}, "o.created_at DESC"},
	}
	for _, c := range cases {
		if got := orderClause(c.f); got != c.want {
			t.Errorf("orderClause(%q desc=%v) = %q, want %q", c.f.OrderKey, c.f.OrderDesc, got, c.want)
		}
	}
}

func TestBuildCompanyWhere(t *testing.T) {
	v := true
	cond, args := buildCompanyWhere(CompanyFilter{Name: "Tech", Location: "Cusco", IsVerified: &v})
	if !strings.Contains(cond, "LOWER(name) LIKE ?") ||
		!strings.Contains(cond, "LOWER(location) LIKE ?") ||
		!strings.Contains(cond, "is_verified = ?") {
		t.Errorf("cond = %q", cond)
	}
	if len(args) != 3 || args[0] != "%tech%" || args[1] != "%cusco%" {
		t.Errorf("args = %v", args)
	}

	cond, args = buildCompanyWhere(CompanyFilter{})
	if cond != "1=1" || len(args) != 0 {
		t.Errorf("empty filter: cond=%q args=%v", cond, args)
	}
}
