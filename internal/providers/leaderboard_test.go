package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const battingPage = `
<html><body>
<div id="content">
<!--
<table id="players_standard_batting">
<thead>
<tr>
<th data-stat="player">Player</th>
<th data-stat="b_war">WAR</th>
<th data-stat="b_games">G</th>
<th data-stat="b_ab">AB</th>
<th data-stat="b_batting_avg">BA</th>
</tr>
</thead>
<tbody>
<tr>
<td data-stat="player">Aaron Judge*</td>
<td data-stat="b_war">8.4</td>
<td data-stat="b_games">110</td>
<td data-stat="b_ab">400</td>
<td data-stat="b_batting_avg">.320</td>
</tr>
<tr class="thead">
<td data-stat="player">Player</td>
</tr>
<tr>
<td data-stat="player">Mike  Trout#</td>
<td data-stat="b_war">3.5</td>
<td data-stat="b_games">80</td>
<td data-stat="b_ab">300</td>
<td data-stat="b_batting_avg">.280</td>
</tr>
</tbody>
</table>
-->
</div>
</body></html>`

func TestParseLeaderboard(t *testing.T) {
	rows, err := ParseLeaderboard(battingPage)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Trailing handedness markers are stripped from names.
	assert.Equal(t, "Aaron Judge", rows[0].Name)
	assert.Equal(t, "Mike Trout", rows[1].Name)

	// Cells are stored under both the data-stat key and the header label.
	assert.Equal(t, "8.4", rows[0].Cols["b_war"])
	assert.Equal(t, "8.4", rows[0].Cols["WAR"])
	assert.Equal(t, ".320", rows[0].Cols["BA"])
	assert.Equal(t, "300", rows[1].Cols["AB"])
}

func TestParseLeaderboardNoRows(t *testing.T) {
	_, err := ParseLeaderboard("<html><body><p>maintenance</p></body></html>")
	assert.Error(t, err)

	_, err = ParseLeaderboard("<html><table><tbody><tr><td data-stat=\"b_war\">1.0</td></tr></tbody></table></html>")
	assert.Error(t, err)
}

func TestLeaderboardClientFetch(t *testing.T) {
	var gotPath, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(battingPage))
	}))
	defer server.Close()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	client := NewLeaderboardClient(server.URL, "test-agent", 5*time.Second, 100, 5, logger)

	rows, err := client.Leaderboard(context.Background(), CategoryBatting, 2025)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "/leagues/majors/2025-standard-batting.shtml", gotPath)
	assert.Equal(t, "test-agent", gotUA)
}

func TestLeaderboardClientBreakerTrips(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	client := NewLeaderboardClient(server.URL, "test-agent", 5*time.Second, 1000, 2, logger)

	for i := 0; i < 2; i++ {
		_, err := client.Leaderboard(context.Background(), CategoryBatting, 2025)
		require.Error(t, err)
	}

	// The breaker is open now; no request reaches the server.
	_, err := client.Leaderboard(context.Background(), CategoryBatting, 2025)
	assert.Error(t, err)
}

func TestLiveRowGet(t *testing.T) {
	row := LiveRow{Cols: map[string]string{"b_war": "3.5", "WAR": "3.5"}}

	v, ok := row.Get("war", "WAR", "b_war")
	assert.True(t, ok)
	assert.Equal(t, "3.5", v)

	_, ok = row.Get("nope")
	assert.False(t, ok)
}
