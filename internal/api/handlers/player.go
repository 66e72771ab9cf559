package handlers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/nschafer/dugout/internal/assembler"
	"github.com/nschafer/dugout/internal/classifier"
	"github.com/nschafer/dugout/internal/merger"
	"github.com/nschafer/dugout/internal/resolver"
	"github.com/nschafer/dugout/internal/stats"
	"github.com/nschafer/dugout/pkg/utils"
	"github.com/sirupsen/logrus"
)

type PlayerHandler struct {
	resolver   *resolver.Resolver
	classifier *classifier.Classifier
	merger     *merger.Merger
	calculator *stats.Calculator
	assembler  *assembler.Assembler
	season     func() int
	logger     *logrus.Logger
}

func NewPlayerHandler(
	res *resolver.Resolver,
	cls *classifier.Classifier,
	mrg *merger.Merger,
	calc *stats.Calculator,
	asm *assembler.Assembler,
	season func() int,
	logger *logrus.Logger,
) *PlayerHandler {
	return &PlayerHandler{
		resolver:   res,
		classifier: cls,
		merger:     mrg,
		calculator: calc,
		assembler:  asm,
		season:     season,
		logger:     logger,
	}
}

// GetPlayer handles GET /api/v1/player?name=&mode=&type=
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		utils.SendValidationError(c, "Player name is required", "provide a name query parameter")
		return
	}

	mode, err := stats.ParseMode(c.DefaultQuery("mode", string(stats.ModeCareer)))
	if err != nil {
		utils.SendValidationError(c, "Invalid mode", "mode must be one of career, season, live, combined")
		return
	}

	ident, suggestions, err := h.resolver.Resolve(name)
	if err != nil {
		if errors.Is(err, resolver.ErrInvalidName) {
			utils.SendValidationError(c, "Please enter the player's full name", "first and last name are both required")
			return
		}
		h.logger.Errorf("Resolve failed for %q: %v", name, err)
		utils.SendInternalError(c, "Player lookup failed")
		return
	}
	if len(suggestions) > 0 {
		utils.SendAmbiguous(c, fmt.Sprintf("Multiple players named %s", name), suggestions)
		return
	}
	if ident == nil {
		utils.SendNotFound(c, "Player not found")
		return
	}

	role, err := h.resolveRole(c, ident.PlayerID)
	if err != nil {
		// resolveRole has already written the response.
		return
	}

	merged := h.merger.Merge(c.Request.Context(), ident, role, h.season())

	result, err := h.calculator.Compute(mode, role, merged, ident.PlayerID)
	if err != nil {
		switch {
		case errors.Is(err, stats.ErrNoStats):
			if role == classifier.RolePitcher {
				utils.SendNotFound(c, "No pitching stats found for this player")
			} else {
				utils.SendNotFound(c, "No batting stats found for this player")
			}
		case errors.Is(err, stats.ErrNoLiveStats):
			utils.SendNotFound(c, "No live stats found for the current season")
		case errors.Is(err, stats.ErrInvalidMode):
			utils.SendValidationError(c, "Invalid mode", "mode must be one of career, season, live, combined")
		default:
			h.logger.Errorf("Stat computation failed for %s: %v", ident.PlayerID, err)
			utils.SendInternalError(c, "Stat computation failed")
		}
		return
	}

	facts := h.assembler.Collect(ident.PlayerID)

	payload := gin.H{
		"name":           fmt.Sprintf("%s %s", ident.NameFirst, ident.NameLast),
		"player_id":      ident.PlayerID,
		"mode":           result.Mode,
		"player_type":    result.PlayerType,
		"photo_url":      facts.PhotoURL,
		"awards":         facts.Awards,
		"all_star_games": facts.AllStarGames,
		"championships":  facts.Championships,
	}
	if result.Totals != nil {
		payload["totals"] = result.Totals
	}
	if result.Stats != nil {
		payload["stats"] = result.Stats
	}

	utils.SendSuccess(c, payload)
}

// resolveRole applies the explicit type parameter when present, or
// classifies the identity. A two-way verdict without an explicit type
// asks the caller to choose; this function writes the error response
// itself and returns a non-nil error to signal the handler to stop.
func (h *PlayerHandler) resolveRole(c *gin.Context, playerID string) (classifier.Role, error) {
	if typeParam := c.Query("type"); typeParam != "" {
		if !classifier.Valid(typeParam) {
			utils.SendValidationError(c, "Invalid player type", "type must be pitcher or hitter")
			return "", errors.New("invalid type parameter")
		}
		return classifier.Role(typeParam), nil
	}

	role, err := h.classifier.Classify(playerID)
	if err != nil {
		h.logger.Errorf("Classification failed for %s: %v", playerID, err)
		utils.SendInternalError(c, "Player classification failed")
		return "", err
	}
	if role == classifier.RoleTwoWay {
		utils.SendRoleChoice(c, "This player has both batting and pitching careers; pick one with the type parameter")
		return "", errors.New("role choice required")
	}
	return role, nil
}
