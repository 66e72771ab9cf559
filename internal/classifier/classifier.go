package classifier

import (
	"github.com/sirupsen/logrus"
)

// Role is a player's statistical category.
type Role string

const (
	RolePitcher Role = "pitcher"
	RoleHitter  Role = "hitter"
	RoleTwoWay  Role = "two-way"
)

// Valid reports whether s names a selectable role. Two-way is a
// classifier verdict, never a caller selection.
func Valid(s string) bool {
	return s == string(RolePitcher) || s == string(RoleHitter)
}

// CareerCounts are the aggregates the classification thresholds inspect.
type CareerCounts struct {
	PitchSeasons int
	GamesPitched int
	Starts       int
	BatSeasons   int
	GamesBatted  int
	AtBats       int
}

// CountSource supplies career aggregates from the historical ledger.
type CountSource interface {
	CareerCounts(playerID string) (CareerCounts, error)
}

type Classifier struct {
	counts CountSource
	twoWay map[string]bool
	logger *logrus.Logger
}

// New builds a classifier. twoWayIDs is the fixed allow-list of
// identities with materially significant careers on both sides; it is
// injected rather than read from a package global so tests can vary it.
func New(counts CountSource, twoWayIDs []string, logger *logrus.Logger) *Classifier {
	allow := make(map[string]bool, len(twoWayIDs))
	for _, id := range twoWayIDs {
		allow[id] = true
	}
	return &Classifier{
		counts: counts,
		twoWay: allow,
		logger: logger,
	}
}

// DefaultTwoWayIDs is the shipped allow-list.
func DefaultTwoWayIDs() []string {
	return []string{
		"ohtansh01", // Shohei Ohtani
		"ruthba01",  // Babe Ruth
	}
}

// Classify labels an identity pitcher, hitter, or two-way. The allow-list
// wins unconditionally; otherwise thresholds run in order and the first
// match decides. Marginal careers can be misclassified; the thresholds
// are tuned, not authoritative.
func (c *Classifier) Classify(playerID string) (Role, error) {
	if c.twoWay[playerID] {
		return RoleTwoWay, nil
	}

	counts, err := c.counts.CareerCounts(playerID)
	if err != nil {
		// Treat storage failures as an empty career; the hitter default
		// matches a player with no pitching rows at all.
		c.logger.Warnf("Career counts unavailable for %s: %v", playerID, err)
		return RoleHitter, nil
	}

	if counts.PitchSeasons >= 3 || counts.GamesPitched >= 50 || counts.Starts >= 10 {
		return RolePitcher, nil
	}
	if counts.BatSeasons >= 3 || counts.AtBats >= 300 {
		return RoleHitter, nil
	}
	if counts.PitchSeasons > 0 {
		return RolePitcher, nil
	}
	return RoleHitter, nil
}
