package resolver

import (
	"errors"
	"strings"
	"testing"

	"github.com/nschafer/dugout/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePeople is an in-memory PeopleSource.
type fakePeople struct {
	people  []models.Person
	findErr error
}

func (f *fakePeople) FindByName(first, last string) ([]models.Person, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var matches []models.Person
	for _, p := range f.people {
		if strings.EqualFold(p.NameFirst, first) && strings.EqualFold(p.NameLast, last) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

func (f *fakePeople) SearchCandidates(q string, limit int) ([]models.Person, error) {
	var matches []models.Person
	for _, p := range f.people {
		full := strings.ToLower(p.NameFirst + " " + p.NameLast)
		if strings.Contains(full, q) {
			matches = append(matches, p)
		}
		if len(matches) >= limit {
			break
		}
	}
	return matches, nil
}

func (f *fakePeople) FuzzyCandidates(first, last string, limit int) ([]models.Person, error) {
	var matches []models.Person
	for _, p := range f.people {
		if strings.Contains(strings.ToLower(p.NameLast), last) ||
			strings.Contains(strings.ToLower(p.NameFirst), first) {
			matches = append(matches, p)
		}
		if len(matches) >= limit {
			break
		}
	}
	return matches, nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		first  string
		last   string
		suffix string
	}{
		{"plain", "Mike Trout", "Mike", "Trout", ""},
		{"jr suffix", "Cal Ripken Jr", "Cal", "Ripken", "Jr."},
		{"jr with period", "Cal Ripken Jr.", "Cal", "Ripken", "Jr."},
		{"senior spelled out", "Ken Griffey Senior", "Ken", "Griffey", "Sr."},
		{"roman numeral", "Pete Rose III", "Pete", "Rose", "III"},
		{"ordinal", "Some Player 2nd", "Some", "Player", "Jr."},
		{"two tokens never strip suffix", "Jon Lester", "Jon", "Lester", ""},
		{"first only", "Ichiro", "Ichiro", "", ""},
		{"empty", "", "", "", ""},
		{"multiword last name", "Hyun Jin Ryu", "Hyun", "Jin Ryu", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last, suffix := SplitName(tt.input)
			assert.Equal(t, tt.first, first)
			assert.Equal(t, tt.last, last)
			assert.Equal(t, tt.suffix, suffix)
		})
	}
}

func TestResolveSingleMatch(t *testing.T) {
	source := &fakePeople{people: []models.Person{
		{PlayerID: "troutmi01", NameFirst: "Mike", NameLast: "Trout", Debut: "2011-07-08", BirthYear: 1991},
	}}
	r := New(source, testLogger())

	ident, suggestions, err := r.Resolve("Mike Trout")
	require.NoError(t, err)
	require.NotNil(t, ident)
	assert.Empty(t, suggestions)
	assert.Equal(t, "troutmi01", ident.PlayerID)
	assert.Equal(t, 2011, ident.DebutYear)
}

func TestResolveNoMatch(t *testing.T) {
	r := New(&fakePeople{}, testLogger())

	ident, suggestions, err := r.Resolve("Nobody Here")
	require.NoError(t, err)
	assert.Nil(t, ident)
	assert.Empty(t, suggestions)
}

func TestResolveRejectsPartialName(t *testing.T) {
	r := New(&fakePeople{}, testLogger())

	_, _, err := r.Resolve("Trout")
	assert.ErrorIs(t, err, ErrInvalidName)

	_, _, err = r.Resolve("   ")
	assert.ErrorIs(t, err, ErrInvalidName)
}

func sharedNamePair() *fakePeople {
	return &fakePeople{people: []models.Person{
		{PlayerID: "smithjo02", NameFirst: "John", NameLast: "Smith", Debut: "1980-04-10", BirthYear: 1958},
		{PlayerID: "smithjo01", NameFirst: "John", NameLast: "Smith", Debut: "1950-05-01", BirthYear: 1928},
	}}
}

func TestResolveAmbiguousNameSuggests(t *testing.T) {
	r := New(sharedNamePair(), testLogger())

	ident, suggestions, err := r.Resolve("John Smith")
	require.NoError(t, err)
	assert.Nil(t, ident)
	require.Len(t, suggestions, 2)

	// Earliest debut is labeled Sr., latest Jr.
	assert.Equal(t, "smithjo01", suggestions[0].PlayerID)
	assert.Equal(t, "Sr.", suggestions[0].Suffix)
	assert.Equal(t, 1950, suggestions[0].DebutYear)
	assert.Equal(t, "smithjo02", suggestions[1].PlayerID)
	assert.Equal(t, "Jr.", suggestions[1].Suffix)
	assert.Equal(t, "John Smith Jr.", suggestions[1].Label)
}

func TestResolveSuffixSelectsCandidate(t *testing.T) {
	r := New(sharedNamePair(), testLogger())

	ident, suggestions, err := r.Resolve("John Smith Jr")
	require.NoError(t, err)
	require.NotNil(t, ident)
	assert.Empty(t, suggestions)
	assert.Equal(t, "smithjo02", ident.PlayerID)

	ident, _, err = r.Resolve("John Smith Sr.")
	require.NoError(t, err)
	require.NotNil(t, ident)
	assert.Equal(t, "smithjo01", ident.PlayerID)
}

func TestResolveThreeWaySuffixes(t *testing.T) {
	source := &fakePeople{people: []models.Person{
		{PlayerID: "a", NameFirst: "Joe", NameLast: "Doe", Debut: "1990-01-01"},
		{PlayerID: "b", NameFirst: "Joe", NameLast: "Doe", Debut: "1960-01-01"},
		{PlayerID: "c", NameFirst: "Joe", NameLast: "Doe", Debut: "2015-01-01"},
	}}
	r := New(source, testLogger())

	ident, _, err := r.Resolve("Joe Doe III")
	require.NoError(t, err)
	require.NotNil(t, ident)
	assert.Equal(t, "c", ident.PlayerID)
}

func TestResolveStorageErrorReadsAsNotFound(t *testing.T) {
	r := New(&fakePeople{findErr: errors.New("db closed")}, testLogger())

	ident, suggestions, err := r.Resolve("Mike Trout")
	require.NoError(t, err)
	assert.Nil(t, ident)
	assert.Empty(t, suggestions)
}

func TestResolveFirstExactBeatsFuzzy(t *testing.T) {
	source := &fakePeople{people: []models.Person{
		{PlayerID: "troutmi01", NameFirst: "Mike", NameLast: "Trout", Debut: "2011-07-08"},
		{PlayerID: "jonessa01", NameFirst: "Sam", NameLast: "Jones", Debut: "1995-04-01"},
		{PlayerID: "petrovmi01", NameFirst: "Mike", NameLast: "Petrov", Debut: "2001-05-01"},
	}}
	r := New(source, testLogger())

	assert.Equal(t, "troutmi01", r.ResolveFirst("Mike Trout"))
	// Last-name exact outranks first-name exact in the fuzzy fallback.
	assert.Equal(t, "petrovmi01", r.ResolveFirst("Sam Petrov"))
	assert.Equal(t, "", r.ResolveFirst("Trout"))
}

func TestSearchRanking(t *testing.T) {
	source := &fakePeople{people: []models.Person{
		{PlayerID: "petrovmi01", NameFirst: "Mike", NameLast: "Petrov", Debut: "2001-05-01"},
		{PlayerID: "troutmi01", NameFirst: "Mike", NameLast: "Trout", Debut: "2011-07-08"},
	}}
	r := New(source, testLogger())

	results, err := r.Search("tro", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Last-name prefix outranks mid-name substring.
	assert.Equal(t, "troutmi01", results[0].PlayerID)
	assert.Equal(t, "Mike Trout", results[0].Name)
	assert.Equal(t, "Mike Trout (2011)", results[0].Display)
	assert.Equal(t, "petrovmi01", results[1].PlayerID)
}

func TestSearchShortQueryReturnsNothing(t *testing.T) {
	r := New(&fakePeople{people: []models.Person{
		{PlayerID: "troutmi01", NameFirst: "Mike", NameLast: "Trout"},
	}}, testLogger())

	results, err := r.Search("t", 10)
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = r.Search("  ", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchLimit(t *testing.T) {
	source := &fakePeople{}
	for i := 0; i < 30; i++ {
		source.people = append(source.people, models.Person{
			PlayerID:  string(rune('a' + i%26)),
			NameFirst: "Bob",
			NameLast:  "Martinez",
			Debut:     "2000-01-01",
		})
	}
	r := New(source, testLogger())

	results, err := r.Search("martinez", 5)
	require.NoError(t, err)
	assert.Len(t, results, 5)
}
