package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nschafer/dugout/internal/assembler"
	"github.com/nschafer/dugout/internal/models"
	"github.com/nschafer/dugout/pkg/utils"
	"github.com/sirupsen/logrus"
)

// TeamSource supplies franchise season lines.
type TeamSource interface {
	TeamSeason(name string, year int) (*models.TeamSeason, error)
}

type TeamHandler struct {
	teams  TeamSource
	season func() int
	logger *logrus.Logger
}

func NewTeamHandler(teams TeamSource, season func() int, logger *logrus.Logger) *TeamHandler {
	return &TeamHandler{
		teams:  teams,
		season: season,
		logger: logger,
	}
}

// GetTeam handles GET /api/v1/team?name=&year=
func (h *TeamHandler) GetTeam(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		utils.SendValidationError(c, "Team name is required", "provide a name query parameter")
		return
	}

	year := h.season() - 1
	if yearParam := c.Query("year"); yearParam != "" {
		parsed, err := strconv.Atoi(yearParam)
		if err != nil {
			utils.SendValidationError(c, "Invalid year", "year must be a number")
			return
		}
		year = parsed
	}

	team, err := h.teams.TeamSeason(name, year)
	if err != nil {
		h.logger.Errorf("Team lookup failed for %q in %d: %v", name, year, err)
		utils.SendInternalError(c, "Team lookup failed")
		return
	}
	if team == nil {
		utils.SendNotFound(c, "Team not found for that season")
		return
	}

	winPct := 0.0
	if team.W+team.L > 0 {
		winPct = float64(team.W) / float64(team.W+team.L)
	}

	utils.SendSuccess(c, gin.H{
		"name":         team.Name,
		"year":         team.YearID,
		"team_id":      team.TeamID,
		"franchise_id": team.FranchID,
		"games":        team.G,
		"wins":         team.W,
		"losses":       team.L,
		"win_pct":      winPct,
		"runs_scored":  team.R,
		"runs_allowed": team.RA,
		"run_diff":     team.R - team.RA,
		"logo_url":     assembler.LogoURL(team.FranchID),
	})
}
