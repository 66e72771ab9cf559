package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/nschafer/dugout/internal/models"
	"github.com/nschafer/dugout/internal/resolver"
	"github.com/nschafer/dugout/pkg/utils"
	"github.com/sirupsen/logrus"
)

// PlayerLister supplies the full roster of identities with recorded
// seasons.
type PlayerLister interface {
	AllPlayerNames() ([]models.Person, error)
}

type SearchHandler struct {
	resolver *resolver.Resolver
	lister   PlayerLister
	logger   *logrus.Logger
}

func NewSearchHandler(res *resolver.Resolver, lister PlayerLister, logger *logrus.Logger) *SearchHandler {
	return &SearchHandler{
		resolver: res,
		lister:   lister,
		logger:   logger,
	}
}

// SearchPlayers handles GET /api/v1/search-players?q= and returns plain
// names, for autocomplete inputs that only need strings.
func (h *SearchHandler) SearchPlayers(c *gin.Context) {
	q := c.Query("q")

	results, err := h.resolver.Search(q, resolver.DefaultSearchLimit)
	if err != nil {
		h.logger.Errorf("Player search failed for %q: %v", q, err)
		utils.SendInternalError(c, "Player search failed")
		return
	}

	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, r.Name)
	}
	utils.SendSuccess(c, names)
}

// SearchPlayersDetailed handles GET /api/v1/search-players-detailed?q=
// and returns hits with IDs and debut years for disambiguating pickers.
func (h *SearchHandler) SearchPlayersDetailed(c *gin.Context) {
	q := c.Query("q")

	results, err := h.resolver.Search(q, 12)
	if err != nil {
		h.logger.Errorf("Player search failed for %q: %v", q, err)
		utils.SendInternalError(c, "Player search failed")
		return
	}
	utils.SendSuccess(c, results)
}

// popularPlayers is the static starter list shown before the user types.
var popularPlayers = []string{
	"Shohei Ohtani",
	"Aaron Judge",
	"Mike Trout",
	"Mookie Betts",
	"Ronald Acuna",
	"Juan Soto",
	"Freddie Freeman",
	"Jose Altuve",
	"Bryce Harper",
	"Vladimir Guerrero",
	"Fernando Tatis",
	"Bobby Witt",
}

// PopularPlayers handles GET /api/v1/popular-players
func (h *SearchHandler) PopularPlayers(c *gin.Context) {
	utils.SendSuccess(c, popularPlayers)
}

// AllPlayers handles GET /api/v1/all-players and returns every name
// with at least one recorded season.
func (h *SearchHandler) AllPlayers(c *gin.Context) {
	people, err := h.lister.AllPlayerNames()
	if err != nil {
		h.logger.Errorf("Player list failed: %v", err)
		utils.SendInternalError(c, "Player list failed")
		return
	}

	names := make([]string, 0, len(people))
	for _, p := range people {
		names = append(names, fmt.Sprintf("%s %s", p.NameFirst, p.NameLast))
	}
	utils.SendSuccess(c, names)
}
