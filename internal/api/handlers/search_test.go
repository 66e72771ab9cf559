package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nschafer/dugout/internal/models"
	"github.com/nschafer/dugout/internal/resolver"
	"github.com/nschafer/dugout/pkg/utils"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fakeLedger) AllPlayerNames() ([]models.Person, error) {
	return f.people, nil
}

func searchRouter(ledger *fakeLedger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	res := resolver.New(ledger, logger)
	handler := NewSearchHandler(res, ledger, logger)

	router := gin.New()
	router.GET("/api/v1/search-players", handler.SearchPlayers)
	router.GET("/api/v1/search-players-detailed", handler.SearchPlayersDetailed)
	router.GET("/api/v1/popular-players", handler.PopularPlayers)
	router.GET("/api/v1/all-players", handler.AllPlayers)
	return router
}

func searchRequest(t *testing.T, router *gin.Engine, path string) (*httptest.ResponseRecorder, utils.Response) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)

	var body utils.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestSearchPlayersReturnsNames(t *testing.T) {
	router := searchRouter(testFixture())

	w, body := searchRequest(t, router, "/api/v1/search-players?q=trout")
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, body.Success)

	names, ok := body.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, names, 1)
	assert.Equal(t, "Mike Trout", names[0])
}

func TestSearchPlayersShortQuery(t *testing.T) {
	router := searchRouter(testFixture())

	w, body := searchRequest(t, router, "/api/v1/search-players?q=t")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body.Data)
}

func TestSearchPlayersDetailed(t *testing.T) {
	router := searchRouter(testFixture())

	w, body := searchRequest(t, router, "/api/v1/search-players-detailed?q=smith")
	require.Equal(t, http.StatusOK, w.Code)

	hits, ok := body.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, hits, 2)

	first, ok := hits[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "John Smith", first["name"])
	assert.Contains(t, first["display"], "(")
	assert.NotEmpty(t, first["playerid"])
}

func TestPopularPlayers(t *testing.T) {
	router := searchRouter(testFixture())

	w, body := searchRequest(t, router, "/api/v1/popular-players")
	require.Equal(t, http.StatusOK, w.Code)

	names, ok := body.Data.([]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, names)
	assert.Contains(t, names, "Shohei Ohtani")
}

func TestAllPlayers(t *testing.T) {
	router := searchRouter(testFixture())

	w, body := searchRequest(t, router, "/api/v1/all-players")
	require.Equal(t, http.StatusOK, w.Code)

	names, ok := body.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, names, 5)
	assert.Contains(t, names, "Gerrit Cole")
}
