package providers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// Category selects which leaderboard to fetch.
type Category string

const (
	CategoryBatting  Category = "batting"
	CategoryPitching Category = "pitching"
)

const maxBodyBytes = 4 << 20

// LiveRow is one leaderboard line, keyed by the provider's own column
// names. The same statistic can appear under different names across
// categories and site versions, so consumers probe candidate keys
// rather than assuming one spelling. Rows are transient; they are never
// written to the ledger.
type LiveRow struct {
	Name string            `json:"name"`
	Cols map[string]string `json:"cols"`
}

// Get returns the first non-empty value among the candidate column
// names, probing both header labels and data-stat keys.
func (r LiveRow) Get(candidates ...string) (string, bool) {
	for _, key := range candidates {
		if v, ok := r.Cols[key]; ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// LeaderboardClient scrapes the current-season leaderboard pages.
type LeaderboardClient struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	logger     *logrus.Logger
}

// NewLeaderboardClient builds a polite client: one outbound request at a
// time, rate limited, with a breaker that trips after the configured
// number of consecutive failures.
func NewLeaderboardClient(baseURL, userAgent string, timeout time.Duration, rps float64, breakerThreshold int, logger *logrus.Logger) *LeaderboardClient {
	if rps <= 0 {
		rps = 0.5
	}
	if breakerThreshold <= 0 {
		breakerThreshold = 5
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "live-leaderboard",
		Timeout: time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(breakerThreshold)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warnf("Circuit breaker %s: %s -> %s", name, from, to)
		},
	})
	return &LeaderboardClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		limiter:   rate.NewLimiter(rate.Limit(rps), 1),
		breaker:   breaker,
		logger:    logger,
	}
}

// Leaderboard fetches and parses the full season leaderboard for one
// category. Failures are returned to the caller, which treats them as
// "no live data" rather than a fatal condition.
func (c *LeaderboardClient) Leaderboard(ctx context.Context, category Category, year int) ([]LiveRow, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	url := fmt.Sprintf("%s/leagues/majors/%d-standard-%s.shtml", c.baseURL, year, category)

	body, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetch(ctx, url)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch leaderboard %s %d: %w", category, year, err)
	}

	rows, err := ParseLeaderboard(body.(string))
	if err != nil {
		return nil, fmt.Errorf("parse leaderboard %s %d: %w", category, year, err)
	}
	c.logger.Debugf("Fetched %d live %s rows for %d", len(rows), category, year)
	return rows, nil
}

func (c *LeaderboardClient) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ParseLeaderboard extracts player rows from a leaderboard page. Stats
// sites ship some tables inside HTML comments, so comments are stripped
// before parsing. Each cell lands in the row under both its data-stat
// key and its visible header label.
func ParseLeaderboard(html string) ([]LiveRow, error) {
	clean := strings.ReplaceAll(html, "<!--", "")
	clean = strings.ReplaceAll(clean, "-->", "")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(clean))
	if err != nil {
		return nil, err
	}

	var rows []LiveRow
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		if len(rows) > 0 {
			return
		}

		// Header labels by data-stat key, for label-based probing.
		labels := map[string]string{}
		table.Find("thead th").Each(func(_ int, th *goquery.Selection) {
			stat := strings.TrimSpace(th.AttrOr("data-stat", ""))
			if stat == "" {
				return
			}
			labels[stat] = strings.TrimSpace(th.Text())
		})

		table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
			if strings.Contains(tr.AttrOr("class", ""), "thead") {
				return
			}
			nameCell := tr.Find(`th[data-stat="player"], td[data-stat="player"], td[data-stat="name_display"]`).First()
			// Handedness and HOF markers trail the display name on some pages.
			name := strings.TrimRight(collapseWhitespace(nameCell.Text()), "*#+")
			if name == "" {
				return
			}

			cols := map[string]string{}
			tr.Find("th, td").Each(func(_ int, td *goquery.Selection) {
				stat := strings.TrimSpace(td.AttrOr("data-stat", ""))
				if stat == "" {
					return
				}
				value := collapseWhitespace(td.Text())
				cols[stat] = value
				if label, ok := labels[stat]; ok && label != "" {
					cols[label] = value
				}
			})
			rows = append(rows, LiveRow{Name: name, Cols: cols})
		})
	})

	if len(rows) == 0 {
		return nil, fmt.Errorf("no player rows found")
	}
	return rows, nil
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(strings.TrimSpace(s)), " ")
}
