package assembler

import (
	"fmt"

	"github.com/nschafer/dugout/internal/models"
	"github.com/sirupsen/logrus"
)

// Source is the slice of ledger access the assembler needs for the
// biographical extras attached to every player payload.
type Source interface {
	MLBAMID(playerID string) (int, error)
	Awards(playerID string) ([]models.AwardRow, error)
	AllStarCount(playerID string) (int, error)
	ChampionshipYears(playerID string) ([]int, error)
	AwardYears(playerID, awardID string) ([]int, error)
}

// AwardSummary is one award line in the payload: display name plus the
// years it was won.
type AwardSummary struct {
	Name  string `json:"name"`
	Years []int  `json:"years"`
}

// Facts carries the non-statistical extras of a player payload.
type Facts struct {
	PhotoURL      string         `json:"photo_url"`
	Awards        []AwardSummary `json:"awards"`
	AllStarGames  int            `json:"all_star_games"`
	Championships []int          `json:"championships"`
}

// awardNames maps ledger award IDs to display names. Awards not listed
// pass through under their ledger ID.
var awardNames = map[string]string{
	"Most Valuable Player":                "MVP",
	"Cy Young Award":                      "Cy Young",
	"Rookie of the Year":                  "Rookie of the Year",
	"Gold Glove":                          "Gold Glove",
	"Silver Slugger":                      "Silver Slugger",
	"World Series MVP":                    "World Series MVP",
	"ALCS MVP":                            "ALCS MVP",
	"NLCS MVP":                            "NLCS MVP",
	"All-Star Game MVP":                   "All-Star Game MVP",
	"Hank Aaron Award":                    "Hank Aaron Award",
	"Triple Crown":                        "Triple Crown",
	"Pitching Triple Crown":               "Pitching Triple Crown",
	"Rolaids Relief Man Award":            "Reliever of the Year",
	"TSN Major League Player of the Year": "Player of the Year",
}

// DefaultPhotoOverrides pins photo IDs for identities whose register
// row is missing or stale.
func DefaultPhotoOverrides() map[string]int {
	return map[string]int{
		"guerrvl02": 665489,
		"tatisfe02": 665487,
		"ohtansh01": 660271,
		"wittbo02":  677951,
	}
}

// teamLogoIDs maps Lahman franchise IDs to the numeric team IDs the
// logo provider uses.
var teamLogoIDs = map[string]int{
	"ANA": 108, "ARI": 109, "ATL": 144, "BAL": 110, "BOS": 111,
	"CHC": 112, "CHW": 145, "CIN": 113, "CLE": 114, "COL": 115,
	"DET": 116, "FLA": 146, "HOU": 117, "KCR": 118, "LAD": 119,
	"MIL": 158, "MIN": 142, "NYM": 121, "NYY": 147, "OAK": 133,
	"PHI": 143, "PIT": 134, "SDP": 135, "SEA": 136, "SFG": 137,
	"STL": 138, "TBD": 139, "TEX": 140, "TOR": 141, "WSN": 120,
}

type Assembler struct {
	source         Source
	photoOverrides map[string]int
	logger         *logrus.Logger
}

func New(source Source, photoOverrides map[string]int, logger *logrus.Logger) *Assembler {
	return &Assembler{
		source:         source,
		photoOverrides: photoOverrides,
		logger:         logger,
	}
}

// Collect gathers the biographical extras for one identity. Every
// lookup degrades to a zero value on error; the payload always carries
// a complete Facts block.
func (a *Assembler) Collect(playerID string) Facts {
	facts := Facts{
		Awards:        []AwardSummary{},
		Championships: []int{},
	}

	facts.PhotoURL = a.photoURL(playerID)

	awards, err := a.source.Awards(playerID)
	if err != nil {
		a.logger.Warnf("Awards lookup failed for %s: %v", playerID, err)
	} else {
		facts.Awards = summarizeAwards(awards)
	}

	allStar, err := a.source.AllStarCount(playerID)
	if err != nil {
		a.logger.Warnf("All-Star lookup failed for %s: %v", playerID, err)
	} else {
		facts.AllStarGames = allStar
	}

	years, err := a.source.ChampionshipYears(playerID)
	if err != nil {
		a.logger.Warnf("Championship lookup failed for %s, falling back to award years: %v", playerID, err)
		years, err = a.source.AwardYears(playerID, "World Series MVP")
		if err != nil {
			a.logger.Warnf("Championship fallback failed for %s: %v", playerID, err)
			years = nil
		}
	}
	if years != nil {
		facts.Championships = years
	}

	return facts
}

func (a *Assembler) photoURL(playerID string) string {
	mlbamID, ok := a.photoOverrides[playerID]
	if !ok {
		id, err := a.source.MLBAMID(playerID)
		if err != nil || id == 0 {
			if err != nil {
				a.logger.Debugf("Photo ID lookup failed for %s: %v", playerID, err)
			}
			return ""
		}
		mlbamID = id
	}
	return fmt.Sprintf("https://img.mlbstatic.com/mlb-photos/image/upload/v1/people/%d/headshot/67/current.jpg", mlbamID)
}

// LogoURL returns the logo URL for a franchise, or empty when the
// franchise is unknown.
func LogoURL(franchID string) string {
	id, ok := teamLogoIDs[franchID]
	if !ok {
		return ""
	}
	return fmt.Sprintf("https://www.mlbstatic.com/team-logos/%d.svg", id)
}

// summarizeAwards folds per-year award rows into one line per award,
// ordered by first win.
func summarizeAwards(rows []models.AwardRow) []AwardSummary {
	order := make([]string, 0)
	byAward := make(map[string][]int)
	for _, row := range rows {
		if _, seen := byAward[row.AwardID]; !seen {
			order = append(order, row.AwardID)
		}
		byAward[row.AwardID] = append(byAward[row.AwardID], row.YearID)
	}

	summaries := make([]AwardSummary, 0, len(order))
	for _, awardID := range order {
		name := awardID
		if display, ok := awardNames[awardID]; ok {
			name = display
		}
		summaries = append(summaries, AwardSummary{
			Name:  name,
			Years: byAward[awardID],
		})
	}
	return summaries
}
