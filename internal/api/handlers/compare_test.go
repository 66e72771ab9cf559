package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nschafer/dugout/internal/assembler"
	"github.com/nschafer/dugout/internal/classifier"
	"github.com/nschafer/dugout/internal/merger"
	"github.com/nschafer/dugout/internal/resolver"
	"github.com/nschafer/dugout/internal/stats"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compareRouter(ledger *fakeLedger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	res := resolver.New(ledger, logger)
	cls := classifier.New(ledger, classifier.DefaultTwoWayIDs(), logger)
	mrg := merger.New(ledger, ledger, merger.DefaultLiveNameOverrides(), logger)
	calc := stats.New(ledger, logger)
	asm := assembler.New(ledger, assembler.DefaultPhotoOverrides(), logger)

	handler := NewCompareHandler(res, cls, mrg, calc, asm, func() int { return 2025 }, logger)

	router := gin.New()
	router.GET("/api/v1/compare", handler.ComparePlayers)
	return router
}

func TestComparePlayers(t *testing.T) {
	router := compareRouter(testFixture())

	w, body := doRequest(t, router, "/api/v1/compare?a=Mike+Trout&b=Gerrit+Cole")
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, body.Success)

	payload, ok := body.Data.(map[string]interface{})
	require.True(t, ok)

	sideA, ok := payload["a"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Mike Trout", sideA["name"])
	assert.Equal(t, "hitter", sideA["player_type"])

	sideB := payload["b"].(map[string]interface{})
	assert.Equal(t, "pitcher", sideB["player_type"])
}

func TestCompareMissingParam(t *testing.T) {
	router := compareRouter(testFixture())

	w, _ := doRequest(t, router, "/api/v1/compare?a=Mike+Trout")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestComparePlayerNotFound(t *testing.T) {
	router := compareRouter(testFixture())

	w, _ := doRequest(t, router, "/api/v1/compare?a=Mike+Trout&b=Nobody+Here")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCompareTwoWayDefaultsToHitter(t *testing.T) {
	router := compareRouter(testFixture())

	w, body := doRequest(t, router, "/api/v1/compare?a=Shohei+Ohtani&b=Mike+Trout")
	require.Equal(t, http.StatusOK, w.Code)

	payload := body.Data.(map[string]interface{})
	sideA := payload["a"].(map[string]interface{})
	assert.Equal(t, "hitter", sideA["player_type"])
}

func TestCompareTwoWayExplicitType(t *testing.T) {
	router := compareRouter(testFixture())

	w, body := doRequest(t, router, "/api/v1/compare?a=Shohei+Ohtani&a_type=pitcher&b=Mike+Trout")
	require.Equal(t, http.StatusOK, w.Code)

	payload := body.Data.(map[string]interface{})
	sideA := payload["a"].(map[string]interface{})
	assert.Equal(t, "pitcher", sideA["player_type"])
}
