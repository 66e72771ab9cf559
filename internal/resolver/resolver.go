package resolver

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/nschafer/dugout/internal/models"
	"github.com/sirupsen/logrus"
)

// ErrInvalidName is returned when the input lacks a first and last token.
var ErrInvalidName = errors.New("full name required")

// DefaultSearchLimit caps search-as-you-type results.
const DefaultSearchLimit = 15

// Identity is a resolved historical player.
type Identity struct {
	PlayerID  string `json:"player_id"`
	NameFirst string `json:"name_first"`
	NameLast  string `json:"name_last"`
	DebutYear int    `json:"debut_year"`
	BirthYear int    `json:"birth_year"`
}

// Suggestion is a disambiguation candidate for a name shared by several
// identities.
type Suggestion struct {
	Label     string `json:"label"`
	PlayerID  string `json:"player_id"`
	Suffix    string `json:"suffix"`
	DebutYear int    `json:"debut_year"`
	BirthYear int    `json:"birth_year"`
}

// SearchResult is one search-as-you-type hit.
type SearchResult struct {
	Name      string `json:"name"`
	Display   string `json:"display"`
	PlayerID  string `json:"playerid"`
	DebutYear string `json:"debut_year"`
}

// PeopleSource is the slice of ledger access the resolver needs.
type PeopleSource interface {
	// FindByName returns all identities matching (first, last)
	// case-insensitively.
	FindByName(first, last string) ([]models.Person, error)
	// SearchCandidates returns identities whose full, last, or first name
	// contains q (lowercased substring match), in stable name order.
	SearchCandidates(q string, limit int) ([]models.Person, error)
	// FuzzyCandidates returns identities whose last or first name contains
	// the respective token.
	FuzzyCandidates(first, last string, limit int) ([]models.Person, error)
}

type Resolver struct {
	people PeopleSource
	logger *logrus.Logger
}

func New(people PeopleSource, logger *logrus.Logger) *Resolver {
	return &Resolver{
		people: people,
		logger: logger,
	}
}

// canonical suffix spellings keyed by normalized input token
var suffixTokens = map[string]string{
	"jr":     "Jr.",
	"junior": "Jr.",
	"2nd":    "Jr.",
	"ii":     "Jr.",
	"sr":     "Sr.",
	"senior": "Sr.",
	"1st":    "Sr.",
	"iii":    "III",
	"3rd":    "III",
	"iv":     "(4)",
	"4th":    "(4)",
}

// SplitName breaks a free-text name into first, last, and a canonical
// suffix. The last token is treated as a suffix only when it matches a
// known suffix spelling, so "Jon Lester" is untouched.
func SplitName(name string) (first, last, suffix string) {
	tokens := strings.Fields(strings.TrimSpace(name))
	if len(tokens) >= 2 {
		trimmed := strings.ToLower(strings.TrimRight(tokens[len(tokens)-1], "."))
		if canonical, ok := suffixTokens[trimmed]; ok && len(tokens) >= 3 {
			suffix = canonical
			tokens = tokens[:len(tokens)-1]
		}
	}
	if len(tokens) < 2 {
		if len(tokens) == 1 {
			first = tokens[0]
		}
		return first, "", suffix
	}
	return tokens[0], strings.Join(tokens[1:], " "), suffix
}

// Resolve maps a free-text name to a unique identity. With several
// matches it orders them by debut and assigns ordinal suffixes; a suffix
// in the input picks the corresponding candidate, otherwise suggestions
// come back for the caller to choose from. The assignment is a
// best-effort heuristic: debut order usually, but not always, tracks the
// real Sr./Jr. relationship.
func (r *Resolver) Resolve(name string) (*Identity, []Suggestion, error) {
	first, last, suffix := SplitName(name)
	if last == "" {
		return nil, nil, ErrInvalidName
	}

	people, err := r.people.FindByName(strings.ToLower(first), strings.ToLower(last))
	if err != nil {
		r.logger.Warnf("Identity lookup failed for %q: %v", name, err)
		return nil, nil, nil
	}

	switch len(people) {
	case 0:
		return nil, nil, nil
	case 1:
		return identityOf(people[0]), nil, nil
	}

	// Same full name, distinct identifiers: order by debut date ascending.
	sort.SliceStable(people, func(i, j int) bool {
		return people[i].Debut < people[j].Debut
	})

	suggestions := make([]Suggestion, 0, len(people))
	for i, p := range people {
		assigned := ordinalSuffix(i, len(people))
		if suffix != "" && suffix == assigned {
			return identityOf(p), nil, nil
		}
		suggestions = append(suggestions, Suggestion{
			Label:     fmt.Sprintf("%s %s %s", p.NameFirst, p.NameLast, assigned),
			PlayerID:  p.PlayerID,
			Suffix:    assigned,
			DebutYear: debutYear(p),
			BirthYear: p.BirthYear,
		})
	}
	return nil, suggestions, nil
}

// ResolveFirst returns the single best identifier for a name, or ""
// when nothing matches. Exact match first, then a ranked fuzzy fallback.
// Callers that can surface disambiguation should use Resolve instead.
func (r *Resolver) ResolveFirst(name string) string {
	first, last, _ := SplitName(name)
	if last == "" {
		return ""
	}
	firstLower := strings.ToLower(first)
	lastLower := strings.ToLower(last)

	people, err := r.people.FindByName(firstLower, lastLower)
	if err == nil && len(people) > 0 {
		return people[0].PlayerID
	}

	candidates, err := r.people.FuzzyCandidates(firstLower, lastLower, 50)
	if err != nil || len(candidates) == 0 {
		return ""
	}

	best := ""
	bestRank := 5
	for _, p := range candidates {
		rank := fuzzyRank(p, firstLower, lastLower)
		if rank < bestRank {
			bestRank = rank
			best = p.PlayerID
		}
	}
	return best
}

func fuzzyRank(p models.Person, first, last string) int {
	pFirst := strings.ToLower(p.NameFirst)
	pLast := strings.ToLower(p.NameLast)
	switch {
	case pLast == last:
		return 1
	case pFirst == first:
		return 2
	case strings.Contains(pLast, last):
		return 3
	case strings.Contains(pFirst, first):
		return 4
	}
	return 5
}

// Search matches a partial query against full, last, and first names.
// Prefix matches rank ahead of substring matches; ties break
// alphabetically. Queries under two characters return nothing.
func (r *Resolver) Search(query string, limit int) ([]SearchResult, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if len(q) < 2 {
		return []SearchResult{}, nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	// Over-fetch so prefix matches buried deep in name order still win.
	candidates, err := r.people.SearchCandidates(q, limit*10)
	if err != nil {
		return nil, err
	}

	type ranked struct {
		person   models.Person
		priority int
	}
	rankedResults := make([]ranked, 0, len(candidates))
	for _, p := range candidates {
		priority := searchPriority(p, q)
		if priority == 0 {
			continue
		}
		rankedResults = append(rankedResults, ranked{person: p, priority: priority})
	}

	sort.SliceStable(rankedResults, func(i, j int) bool {
		if rankedResults[i].priority != rankedResults[j].priority {
			return rankedResults[i].priority < rankedResults[j].priority
		}
		if rankedResults[i].person.NameLast != rankedResults[j].person.NameLast {
			return rankedResults[i].person.NameLast < rankedResults[j].person.NameLast
		}
		return rankedResults[i].person.NameFirst < rankedResults[j].person.NameFirst
	})

	if len(rankedResults) > limit {
		rankedResults = rankedResults[:limit]
	}

	results := make([]SearchResult, 0, len(rankedResults))
	for _, rr := range rankedResults {
		p := rr.person
		fullName := p.NameFirst + " " + p.NameLast
		debut := debutLabel(p)
		results = append(results, SearchResult{
			Name:      fullName,
			Display:   fmt.Sprintf("%s (%s)", fullName, debut),
			PlayerID:  p.PlayerID,
			DebutYear: debut,
		})
	}
	return results, nil
}

// searchPriority mirrors the lookup ranking: full-name prefix, then
// last-name prefix, then first-name prefix, then any substring hit.
func searchPriority(p models.Person, q string) int {
	full := strings.ToLower(p.NameFirst + " " + p.NameLast)
	last := strings.ToLower(p.NameLast)
	first := strings.ToLower(p.NameFirst)
	switch {
	case strings.HasPrefix(full, q):
		return 1
	case strings.HasPrefix(last, q):
		return 2
	case strings.HasPrefix(first, q):
		return 3
	case strings.Contains(full, q) || strings.Contains(last, q) || strings.Contains(first, q):
		return 4
	}
	return 0
}

func ordinalSuffix(index, total int) string {
	if total == 2 {
		return []string{"Sr.", "Jr."}[index]
	}
	if total == 3 {
		return []string{"Sr.", "Jr.", "III"}[index]
	}
	return fmt.Sprintf("(%d)", index+1)
}

func identityOf(p models.Person) *Identity {
	return &Identity{
		PlayerID:  p.PlayerID,
		NameFirst: p.NameFirst,
		NameLast:  p.NameLast,
		DebutYear: debutYear(p),
		BirthYear: p.BirthYear,
	}
}

func debutYear(p models.Person) int {
	if len(p.Debut) < 4 {
		return 0
	}
	year, err := strconv.Atoi(p.Debut[:4])
	if err != nil {
		return 0
	}
	return year
}

func debutLabel(p models.Person) string {
	if len(p.Debut) >= 4 {
		return p.Debut[:4]
	}
	return "Unknown"
}
