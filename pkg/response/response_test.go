package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	appErrors "github.com/shidoukh/shidoukh/pkg/errors"
)

func testContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	return c, rec
}

func TestSuccessEnvelope(t *testing.T) {
	c, rec := testContext(t)

	Success(c, http.StatusOK, gin.H{"id": "42"})

	require.Equal(t, http.StatusOK, rec.Code)

	var payload Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.True(t, payload.Success)
	require.Nil(t, payload.Error)
}

func TestMessageEnvelope(t *testing.T) {
	c, rec := testContext(t)

	Message(c, http.StatusOK, "Connexion réussie")

	var payload Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.True(t, payload.Success)
	require.Equal(t, "Connexion réussie", payload.Message)
}

func TestErrorEnvelope(t *testing.T) {
	c, rec := testContext(t)

	Error(c, appErrors.New("auth.invalid_token", "Lien invalide ou expiré", http.StatusBadRequest))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var payload Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.False(t, payload.Success)
	require.Equal(t, "auth.invalid_token", payload.Error.Code)
	require.Equal(t, "Lien invalide ou expiré", payload.Error.Message)
}

func TestErrorEnvelopeHidesInternalDetail(t *testing.T) {
	c, rec := testContext(t)

	Error(c, errors.New("pq: connection refused"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "connection refused")
}
