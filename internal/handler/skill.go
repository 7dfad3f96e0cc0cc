package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jortega-dev/job-board-api/internal/repository"
)

// SkillHandler serves the skill catalog used when composing offers.
type SkillHandler struct {
	Skills *repository.SkillRepo
}

func NewSkillHandler(skills *repository.SkillRepo) *SkillHandler {
	return &SkillHandler{Skills: skills}
}

// List returns every known skill, sorted by name.
func (h *SkillHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	skills, err := h.Skills.List(ctx)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, skills)
}
