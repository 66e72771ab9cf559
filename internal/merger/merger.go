package merger

import (
	"context"
	"strings"

	"github.com/nschafer/dugout/internal/classifier"
	"github.com/nschafer/dugout/internal/models"
	"github.com/nschafer/dugout/internal/providers"
	"github.com/nschafer/dugout/internal/resolver"
	"github.com/sirupsen/logrus"
)

// SeasonSource supplies historical season rows for one identity.
type SeasonSource interface {
	BattingSeasons(playerID string) ([]models.BattingSeason, error)
	PitchingSeasons(playerID string) ([]models.PitchingSeason, error)
}

// LiveSource supplies the current-season leaderboard for a category.
type LiveSource interface {
	Leaderboard(ctx context.Context, category providers.Category, year int) ([]providers.LiveRow, error)
}

// Merged carries both sides of a lookup: the historical ledger rows for
// the role's category, and the live row when one matched. Live is nil
// when the snapshot fetch failed or no name variant matched; downstream
// views degrade or fail per mode, never here.
type Merged struct {
	Batting  []models.BattingSeason
	Pitching []models.PitchingSeason
	Live     *providers.LiveRow
}

type Merger struct {
	seasons SeasonSource
	live    LiveSource
	// liveNameOverrides maps a player ID straight to its live display
	// name, for the small set of Jr./Sr. pairs where variant matching
	// picks the wrong active player.
	liveNameOverrides map[string]string
	logger            *logrus.Logger
}

func New(seasons SeasonSource, live LiveSource, liveNameOverrides map[string]string, logger *logrus.Logger) *Merger {
	if liveNameOverrides == nil {
		liveNameOverrides = map[string]string{}
	}
	return &Merger{
		seasons:           seasons,
		live:              live,
		liveNameOverrides: liveNameOverrides,
		logger:            logger,
	}
}

// DefaultLiveNameOverrides is the shipped Jr./Sr. override table.
func DefaultLiveNameOverrides() map[string]string {
	return map[string]string{
		"guerrvl02": "vladimir guerrero jr.",
		"tatisfe02": "fernando tatis jr.",
		"wittbo02":  "bobby witt jr.",
		"acunaro01": "ronald acuna jr.",
	}
}

// Merge fetches the historical rows for the identity's role and tries to
// attach the live current-season row. The two sources share no key, so
// the live match runs through name variants; a failed fetch or match
// leaves Live nil.
func (m *Merger) Merge(ctx context.Context, ident *resolver.Identity, role classifier.Role, year int) *Merged {
	merged := &Merged{}

	category := providers.CategoryBatting
	if role == classifier.RolePitcher {
		category = providers.CategoryPitching
		seasons, err := m.seasons.PitchingSeasons(ident.PlayerID)
		if err != nil {
			m.logger.Warnf("Pitching seasons unavailable for %s: %v", ident.PlayerID, err)
		}
		merged.Pitching = seasons
	} else {
		seasons, err := m.seasons.BattingSeasons(ident.PlayerID)
		if err != nil {
			m.logger.Warnf("Batting seasons unavailable for %s: %v", ident.PlayerID, err)
		}
		merged.Batting = seasons
	}

	rows, err := m.live.Leaderboard(ctx, category, year)
	if err != nil {
		// Live data is best-effort; log for the operator and move on.
		m.logger.Warnf("Live %s leaderboard unavailable: %v", category, err)
		return merged
	}

	merged.Live = MatchLive(rows, ident.NameFirst, ident.NameLast, m.liveNameOverrides[ident.PlayerID])
	return merged
}

// MatchLive finds the leaderboard row for a player by display name.
// Variants run in order, exact equality first, then substring
// containment, then last-name rows confirmed by first name or initial,
// and finally the first bare last-name hit. That terminal fallback can
// attribute a same-surnamed teammate's row to the wrong identity; that
// is a known limitation of keying the live source by display name, and
// no tie-break signal exists to fix it here.
func MatchLive(rows []providers.LiveRow, first, last, override string) *providers.LiveRow {
	firstLower := strings.ToLower(strings.TrimSpace(first))
	lastLower := strings.ToLower(strings.TrimSpace(last))
	if lastLower == "" {
		return nil
	}

	normalized := make([]string, len(rows))
	for i, row := range rows {
		normalized[i] = strings.ToLower(strings.TrimSpace(row.Name))
	}

	if override != "" {
		for i := range rows {
			if normalized[i] == override {
				return &rows[i]
			}
		}
	}

	variants := []string{
		firstLower + " " + lastLower,
		lastLower + ", " + firstLower,
		firstLower + "." + lastLower,
		lastLower,
	}
	if firstLower != "" {
		variants = append(variants, firstLower[:1]+"."+lastLower)
	}

	for _, variant := range variants {
		for i := range rows {
			if normalized[i] == variant {
				return &rows[i]
			}
		}
	}

	// Substring pass: rows containing the last name, confirmed by the
	// first name or its initial.
	var lastNameHits []int
	for i := range rows {
		if strings.Contains(normalized[i], lastLower) {
			lastNameHits = append(lastNameHits, i)
		}
	}
	if len(lastNameHits) == 0 {
		return nil
	}
	for _, i := range lastNameHits {
		if firstLower != "" && strings.Contains(normalized[i], firstLower) {
			return &rows[i]
		}
	}
	if firstLower != "" {
		for _, i := range lastNameHits {
			if strings.HasPrefix(normalized[i], firstLower[:1]+".") {
				return &rows[i]
			}
		}
	}

	// Last resort: first last-name hit wins.
	return &rows[lastNameHits[0]]
}
