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

type CompareHandler struct {
	resolver   *resolver.Resolver
	classifier *classifier.Classifier
	merger     *merger.Merger
	calculator *stats.Calculator
	assembler  *assembler.Assembler
	season     func() int
	logger     *logrus.Logger
}

func NewCompareHandler(
	res *resolver.Resolver,
	cls *classifier.Classifier,
	mrg *merger.Merger,
	calc *stats.Calculator,
	asm *assembler.Assembler,
	season func() int,
	logger *logrus.Logger,
) *CompareHandler {
	return &CompareHandler{
		resolver:   res,
		classifier: cls,
		merger:     mrg,
		calculator: calc,
		assembler:  asm,
		season:     season,
		logger:     logger,
	}
}

// ComparePlayers handles GET /api/v1/compare?a=&b= and returns career
// totals side by side. Ambiguous names pick the earliest debut; two-way
// players compare as hitters unless a_type or b_type says otherwise.
func (h *CompareHandler) ComparePlayers(c *gin.Context) {
	nameA := c.Query("a")
	nameB := c.Query("b")
	if nameA == "" || nameB == "" {
		utils.SendValidationError(c, "Two player names are required", "provide a and b query parameters")
		return
	}

	sideA, err := h.comparisonSide(c, nameA, c.Query("a_type"))
	if err != nil {
		return
	}
	sideB, err := h.comparisonSide(c, nameB, c.Query("b_type"))
	if err != nil {
		return
	}

	utils.SendSuccess(c, gin.H{
		"a": sideA,
		"b": sideB,
	})
}

// comparisonSide builds one player's half of the comparison. It writes
// the error response itself and returns a non-nil error to signal the
// handler to stop.
func (h *CompareHandler) comparisonSide(c *gin.Context, name, typeParam string) (gin.H, error) {
	ident, suggestions, err := h.resolver.Resolve(name)
	if err != nil {
		if errors.Is(err, resolver.ErrInvalidName) {
			utils.SendValidationError(c, fmt.Sprintf("Please enter %s's full name", name), "first and last name are both required")
			return nil, err
		}
		h.logger.Errorf("Resolve failed for %q: %v", name, err)
		utils.SendInternalError(c, "Player lookup failed")
		return nil, err
	}
	if len(suggestions) > 0 {
		// The earliest debut (first suggestion) stands in; the single
		// lookup endpoint is the place for disambiguation.
		ident = &resolver.Identity{
			PlayerID:  suggestions[0].PlayerID,
			DebutYear: suggestions[0].DebutYear,
			BirthYear: suggestions[0].BirthYear,
		}
		first, last, _ := resolver.SplitName(name)
		ident.NameFirst = first
		ident.NameLast = last
	}
	if ident == nil {
		utils.SendNotFound(c, fmt.Sprintf("Player %q not found", name))
		return nil, errors.New("player not found")
	}

	var role classifier.Role
	if typeParam != "" && classifier.Valid(typeParam) {
		role = classifier.Role(typeParam)
	} else {
		role, err = h.classifier.Classify(ident.PlayerID)
		if err != nil || role == classifier.RoleTwoWay {
			role = classifier.RoleHitter
		}
	}

	merged := h.merger.Merge(c.Request.Context(), ident, role, h.season())
	result, err := h.calculator.Compute(stats.ModeCareer, role, merged, ident.PlayerID)
	if err != nil {
		if errors.Is(err, stats.ErrNoStats) {
			utils.SendNotFound(c, fmt.Sprintf("No stats found for %s", name))
			return nil, err
		}
		h.logger.Errorf("Stat computation failed for %s: %v", ident.PlayerID, err)
		utils.SendInternalError(c, "Stat computation failed")
		return nil, err
	}

	facts := h.assembler.Collect(ident.PlayerID)

	return gin.H{
		"name":        fmt.Sprintf("%s %s", ident.NameFirst, ident.NameLast),
		"player_id":   ident.PlayerID,
		"player_type": result.PlayerType,
		"totals":      result.Totals,
		"photo_url":   facts.PhotoURL,
	}, nil
}
