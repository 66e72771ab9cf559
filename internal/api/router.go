package api

import (
	"github.com/gin-gonic/gin"
	"github.com/nschafer/dugout/internal/api/handlers"
	"github.com/nschafer/dugout/internal/assembler"
	"github.com/nschafer/dugout/internal/classifier"
	"github.com/nschafer/dugout/internal/merger"
	"github.com/nschafer/dugout/internal/resolver"
	"github.com/nschafer/dugout/internal/stats"
	"github.com/nschafer/dugout/internal/store"
	"github.com/nschafer/dugout/pkg/config"
	"github.com/sirupsen/logrus"
)

// SetupRoutes configures all API routes on the given router group
func SetupRoutes(group *gin.RouterGroup, repo *store.Repository, live merger.LiveSource, cfg *config.Config, logger *logrus.Logger) {
	// Initialize the lookup pipeline
	res := resolver.New(repo, logger)
	cls := classifier.New(repo, classifier.DefaultTwoWayIDs(), logger)
	mrg := merger.New(repo, live, merger.DefaultLiveNameOverrides(), logger)
	calc := stats.New(repo, logger)
	asm := assembler.New(repo, assembler.DefaultPhotoOverrides(), logger)

	// Initialize handlers
	playerHandler := handlers.NewPlayerHandler(res, cls, mrg, calc, asm, cfg.Season, logger)
	searchHandler := handlers.NewSearchHandler(res, repo, logger)
	teamHandler := handlers.NewTeamHandler(repo, cfg.Season, logger)
	compareHandler := handlers.NewCompareHandler(res, cls, mrg, calc, asm, cfg.Season, logger)

	// Player endpoints
	group.GET("/player", playerHandler.GetPlayer)
	group.GET("/compare", compareHandler.ComparePlayers)

	// Search endpoints
	group.GET("/search-players", searchHandler.SearchPlayers)
	group.GET("/search-players-detailed", searchHandler.SearchPlayersDetailed)
	group.GET("/popular-players", searchHandler.PopularPlayers)
	group.GET("/all-players", searchHandler.AllPlayers)

	// Team endpoints
	group.GET("/team", teamHandler.GetTeam)
}
