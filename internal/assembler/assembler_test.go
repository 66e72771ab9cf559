package assembler

import (
	"errors"
	"testing"

	"github.com/nschafer/dugout/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mlbamID       int
	mlbamErr      error
	awards        []models.AwardRow
	awardsErr     error
	allStar       int
	allStarErr    error
	champYears    []int
	champErr      error
	awardYears    []int
	awardYearsErr error
}

func (f *fakeSource) MLBAMID(playerID string) (int, error) {
	return f.mlbamID, f.mlbamErr
}

func (f *fakeSource) Awards(playerID string) ([]models.AwardRow, error) {
	return f.awards, f.awardsErr
}

func (f *fakeSource) AllStarCount(playerID string) (int, error) {
	return f.allStar, f.allStarErr
}

func (f *fakeSource) ChampionshipYears(playerID string) ([]int, error) {
	return f.champYears, f.champErr
}

func (f *fakeSource) AwardYears(playerID, awardID string) ([]int, error) {
	return f.awardYears, f.awardYearsErr
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestCollect(t *testing.T) {
	source := &fakeSource{
		mlbamID: 545361,
		awards: []models.AwardRow{
			{PlayerID: "troutmi01", AwardID: "Most Valuable Player", YearID: 2014},
			{PlayerID: "troutmi01", AwardID: "Silver Slugger", YearID: 2014},
			{PlayerID: "troutmi01", AwardID: "Most Valuable Player", YearID: 2016},
		},
		allStar:    11,
		champYears: []int{2011},
	}
	a := New(source, DefaultPhotoOverrides(), testLogger())

	facts := a.Collect("troutmi01")

	assert.Equal(t, "https://img.mlbstatic.com/mlb-photos/image/upload/v1/people/545361/headshot/67/current.jpg", facts.PhotoURL)
	assert.Equal(t, 11, facts.AllStarGames)
	assert.Equal(t, []int{2011}, facts.Championships)

	require.Len(t, facts.Awards, 2)
	assert.Equal(t, "MVP", facts.Awards[0].Name)
	assert.Equal(t, []int{2014, 2016}, facts.Awards[0].Years)
	assert.Equal(t, "Silver Slugger", facts.Awards[1].Name)
}

func TestCollectDegradesOnErrors(t *testing.T) {
	source := &fakeSource{
		mlbamErr:      errors.New("no register row"),
		awardsErr:     errors.New("db closed"),
		allStarErr:    errors.New("db closed"),
		champErr:      errors.New("join failed"),
		awardYearsErr: errors.New("db closed"),
	}
	a := New(source, DefaultPhotoOverrides(), testLogger())

	facts := a.Collect("obscureguy01")

	assert.Equal(t, "", facts.PhotoURL)
	assert.Empty(t, facts.Awards)
	assert.Zero(t, facts.AllStarGames)
	assert.Empty(t, facts.Championships)
}

func TestCollectChampionshipFallback(t *testing.T) {
	source := &fakeSource{
		champErr:   errors.New("join failed"),
		awardYears: []int{1988},
	}
	a := New(source, DefaultPhotoOverrides(), testLogger())

	facts := a.Collect("someplayer01")
	assert.Equal(t, []int{1988}, facts.Championships)
}

func TestPhotoOverrideBeatsRegister(t *testing.T) {
	source := &fakeSource{mlbamID: 111111}
	a := New(source, DefaultPhotoOverrides(), testLogger())

	facts := a.Collect("guerrvl02")
	assert.Contains(t, facts.PhotoURL, "665489")
}

func TestUnknownAwardPassesThrough(t *testing.T) {
	source := &fakeSource{
		awards: []models.AwardRow{{AwardID: "Comeback Player of the Year", YearID: 2021}},
	}
	a := New(source, DefaultPhotoOverrides(), testLogger())

	facts := a.Collect("someplayer01")
	require.Len(t, facts.Awards, 1)
	assert.Equal(t, "Comeback Player of the Year", facts.Awards[0].Name)
}

func TestLogoURL(t *testing.T) {
	assert.Equal(t, "https://www.mlbstatic.com/team-logos/138.svg", LogoURL("STL"))
	assert.Equal(t, "https://www.mlbstatic.com/team-logos/147.svg", LogoURL("NYY"))
	assert.Equal(t, "", LogoURL("XXX"))
}
