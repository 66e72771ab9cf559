package classifier

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCounts struct {
	counts CareerCounts
	err    error
}

func (f *fakeCounts) CareerCounts(playerID string) (CareerCounts, error) {
	return f.counts, f.err
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("pitcher"))
	assert.True(t, Valid("hitter"))
	assert.False(t, Valid("two-way"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("catcher"))
}

func TestClassifyThresholds(t *testing.T) {
	tests := []struct {
		name   string
		counts CareerCounts
		want   Role
	}{
		{
			name:   "career pitcher by seasons",
			counts: CareerCounts{PitchSeasons: 3, GamesPitched: 40},
			want:   RolePitcher,
		},
		{
			name:   "reliever by appearances",
			counts: CareerCounts{PitchSeasons: 2, GamesPitched: 50},
			want:   RolePitcher,
		},
		{
			name:   "starter by starts",
			counts: CareerCounts{PitchSeasons: 1, Starts: 10},
			want:   RolePitcher,
		},
		{
			name:   "career hitter by seasons",
			counts: CareerCounts{BatSeasons: 3, AtBats: 120},
			want:   RoleHitter,
		},
		{
			name:   "hitter by at bats",
			counts: CareerCounts{BatSeasons: 1, AtBats: 300},
			want:   RoleHitter,
		},
		{
			name: "pitcher who also batted reads pitcher",
			// National League pitchers bat, so real pitching counts win
			// over incidental batting counts.
			counts: CareerCounts{PitchSeasons: 3, GamesPitched: 60, BatSeasons: 3, AtBats: 150},
			want:   RolePitcher,
		},
		{
			name:   "marginal career with any pitching",
			counts: CareerCounts{PitchSeasons: 1, GamesPitched: 2, BatSeasons: 1, AtBats: 10},
			want:   RolePitcher,
		},
		{
			name:   "empty career",
			counts: CareerCounts{},
			want:   RoleHitter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(&fakeCounts{counts: tt.counts}, nil, testLogger())
			role, err := c.Classify("someplayer01")
			require.NoError(t, err)
			assert.Equal(t, tt.want, role)
		})
	}
}

func TestClassifyAllowListWins(t *testing.T) {
	// Allow-listed identities are two-way no matter what the counts say.
	counts := &fakeCounts{counts: CareerCounts{PitchSeasons: 10, GamesPitched: 300}}
	c := New(counts, DefaultTwoWayIDs(), testLogger())

	role, err := c.Classify("ohtansh01")
	require.NoError(t, err)
	assert.Equal(t, RoleTwoWay, role)

	role, err = c.Classify("ruthba01")
	require.NoError(t, err)
	assert.Equal(t, RoleTwoWay, role)
}

func TestClassifyStorageErrorDefaultsToHitter(t *testing.T) {
	c := New(&fakeCounts{err: errors.New("db closed")}, nil, testLogger())

	role, err := c.Classify("someplayer01")
	require.NoError(t, err)
	assert.Equal(t, RoleHitter, role)
}
