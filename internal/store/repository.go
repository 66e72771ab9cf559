package store

import (
	"strings"

	"github.com/nschafer/dugout/internal/classifier"
	"github.com/nschafer/dugout/internal/models"
	"github.com/nschafer/dugout/pkg/database"
	"gorm.io/gorm"
)

// Repository is the single ledger access layer. It satisfies the source
// interfaces declared by the resolver, classifier, merger, stats, and
// assembler packages.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db.DB}
}

// --- resolver.PeopleSource ---

func (r *Repository) FindByName(first, last string) ([]models.Person, error) {
	var people []models.Person
	err := r.db.
		Where("LOWER(namefirst) = ? AND LOWER(namelast) = ?", strings.ToLower(first), strings.ToLower(last)).
		Order("playerid").
		Find(&people).Error
	return people, err
}

func (r *Repository) SearchCandidates(q string, limit int) ([]models.Person, error) {
	pattern := "%" + strings.ToLower(q) + "%"
	var people []models.Person
	err := r.db.
		Where("LOWER(namefirst || ' ' || namelast) LIKE ? OR LOWER(namelast) LIKE ? OR LOWER(namefirst) LIKE ?",
			pattern, pattern, pattern).
		Order("namelast, namefirst").
		Limit(limit).
		Find(&people).Error
	return people, err
}

func (r *Repository) FuzzyCandidates(first, last string, limit int) ([]models.Person, error) {
	var people []models.Person
	err := r.db.
		Where("LOWER(namelast) LIKE ? OR LOWER(namefirst) LIKE ?",
			"%"+strings.ToLower(last)+"%", "%"+strings.ToLower(first)+"%").
		Order("namelast, namefirst").
		Limit(limit).
		Find(&people).Error
	return people, err
}

// --- classifier.CountSource ---

func (r *Repository) CareerCounts(playerID string) (classifier.CareerCounts, error) {
	var counts classifier.CareerCounts

	var pitch struct {
		Seasons int
		Games   int
		Starts  int
	}
	err := r.db.Model(&models.PitchingSeason{}).
		Select("COUNT(DISTINCT yearid) AS seasons, COALESCE(SUM(g), 0) AS games, COALESCE(SUM(gs), 0) AS starts").
		Where("playerid = ?", playerID).
		Scan(&pitch).Error
	if err != nil {
		return counts, err
	}

	var bat struct {
		Seasons int
		Games   int
		AtBats  int
	}
	err = r.db.Model(&models.BattingSeason{}).
		Select("COUNT(DISTINCT yearid) AS seasons, COALESCE(SUM(g), 0) AS games, COALESCE(SUM(ab), 0) AS at_bats").
		Where("playerid = ?", playerID).
		Scan(&bat).Error
	if err != nil {
		return counts, err
	}

	counts.PitchSeasons = pitch.Seasons
	counts.GamesPitched = pitch.Games
	counts.Starts = pitch.Starts
	counts.BatSeasons = bat.Seasons
	counts.GamesBatted = bat.Games
	counts.AtBats = bat.AtBats
	return counts, nil
}

// --- merger.SeasonSource ---

func (r *Repository) BattingSeasons(playerID string) ([]models.BattingSeason, error) {
	var seasons []models.BattingSeason
	err := r.db.
		Where("playerid = ?", playerID).
		Order("yearid, teamid").
		Find(&seasons).Error
	return seasons, err
}

func (r *Repository) PitchingSeasons(playerID string) ([]models.PitchingSeason, error) {
	var seasons []models.PitchingSeason
	err := r.db.
		Where("playerid = ?", playerID).
		Order("yearid, teamid").
		Find(&seasons).Error
	return seasons, err
}

// --- stats.WarSource ---
//
// The WAR ledger is keyed by bbref ID, which matches the Lahman
// playerid for modern players.

func (r *Repository) CareerWAR(playerID string) (float64, error) {
	var total float64
	err := r.db.Model(&models.WarSeason{}).
		Select("COALESCE(SUM(war162), 0)").
		Where("key_bbref = ?", playerID).
		Scan(&total).Error
	return total, err
}

func (r *Repository) WARByYear(playerID string) (map[int]float64, error) {
	var rows []models.WarSeason
	err := r.db.
		Select("year_id, SUM(war162) AS war162").
		Where("key_bbref = ?", playerID).
		Group("year_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	byYear := make(map[int]float64, len(rows))
	for _, row := range rows {
		byYear[row.YearID] = row.WAR162
	}
	return byYear, nil
}

// --- assembler.Source ---

func (r *Repository) MLBAMID(playerID string) (int, error) {
	var row models.RegisterRow
	err := r.db.
		Where("key_lahman = ? AND key_mlbam > 0", playerID).
		First(&row).Error
	if err != nil {
		return 0, err
	}
	return row.KeyMLBAM, nil
}

func (r *Repository) Awards(playerID string) ([]models.AwardRow, error) {
	var awards []models.AwardRow
	err := r.db.
		Where("playerid = ?", playerID).
		Order("yearid, awardid").
		Find(&awards).Error
	return awards, err
}

func (r *Repository) AllStarCount(playerID string) (int, error) {
	var count int64
	err := r.db.Model(&models.AllStarRow{}).
		Where("playerid = ?", playerID).
		Distinct("yearid").
		Count(&count).Error
	return int(count), err
}

// ChampionshipYears returns the years the player's team of record won
// the final postseason round.
func (r *Repository) ChampionshipYears(playerID string) ([]int, error) {
	var years []int
	err := r.db.Raw(`
		SELECT DISTINCT sp.yearid
		FROM lahman_seriespost sp
		JOIN (
			SELECT yearid, teamid FROM lahman_batting WHERE playerid = ?
			UNION
			SELECT yearid, teamid FROM lahman_pitching WHERE playerid = ?
		) pt ON pt.yearid = sp.yearid AND pt.teamid = sp.teamidwinner
		WHERE sp.round = 'WS'
		ORDER BY sp.yearid`, playerID, playerID).
		Scan(&years).Error
	return years, err
}

// AwardYears is the fallback when the postseason join cannot run: years
// the player won the named award.
func (r *Repository) AwardYears(playerID, awardID string) ([]int, error) {
	var years []int
	err := r.db.Model(&models.AwardRow{}).
		Where("playerid = ? AND awardid = ?", playerID, awardID).
		Order("yearid").
		Distinct().
		Pluck("yearid", &years).Error
	return years, err
}

// --- team and roster lookups ---

func (r *Repository) TeamSeason(name string, year int) (*models.TeamSeason, error) {
	var team models.TeamSeason
	err := r.db.
		Where("LOWER(name) LIKE ? AND yearid = ?", "%"+strings.ToLower(name)+"%", year).
		First(&team).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

// AllPlayerNames lists every identity with at least one recorded season,
// in name order.
func (r *Repository) AllPlayerNames() ([]models.Person, error) {
	var people []models.Person
	err := r.db.
		Where(`EXISTS (SELECT 1 FROM lahman_batting b WHERE b.playerid = lahman_people.playerid)
			OR EXISTS (SELECT 1 FROM lahman_pitching p WHERE p.playerid = lahman_people.playerid)`).
		Order("namelast, namefirst").
		Find(&people).Error
	return people, err
}
