package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"malaria-intake/internal/models"
	"malaria-intake/pkg/utils"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func newAdminRouter(h *AdminHandler) *gin.Engine {
	r := gin.New()
	r.POST("/login", h.Login)
	r.GET("/submissions", h.ListSubmissions)
	r.GET("/submissions/:id", h.GetSubmission)
	return r
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminLogin(t *testing.T) {
	hash, err := utils.HashPassword("s3nha-forte")
	require.NoError(t, err)
	h := NewAdminHandler(newFakeStore(), "segredo", time.Hour, "admin@example.com", hash)
	r := newAdminRouter(h)

	t.Run("valid credentials", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/login", `{"email":"ADMIN@example.com","password":"s3nha-forte"}`)
		require.Equal(t, http.StatusOK, w.Code)

		env := decodeEnvelope(t, w)
		var data struct {
			Token     string `json:"token"`
			ExpiresIn int64  `json:"expires_in"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, int64(3600), data.ExpiresIn)

		token, err := utils.ValidateToken("segredo", data.Token)
		require.NoError(t, err)
		assert.True(t, token.Valid)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/login", `{"email":"admin@example.com","password":"errada"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/login", `{"email":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAdminLogin_NotConfigured(t *testing.T) {
	r := newAdminRouter(NewAdminHandler(newFakeStore(), "", time.Hour, "", ""))

	w := doJSON(r, http.MethodPost, "/login", `{"email":"admin@example.com","password":"x"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAdminListSubmissions(t *testing.T) {
	st := newFakeStore()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, st.Save(context.Background(), &models.Submission{UID: id}))
	}
	r := newAdminRouter(NewAdminHandler(st, "segredo", time.Hour, "a@b.c", "x"))

	w := doJSON(r, http.MethodGet, "/submissions?limit=2", "")
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Collection string               `json:"collection"`
		Count      int                  `json:"count"`
		Items      []*models.Submission `json:"items"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &data))
	assert.Equal(t, "artifacts/testapp/users", data.Collection)
	assert.Equal(t, 2, data.Count)
	require.Len(t, data.Items, 2)
	assert.Equal(t, "c", data.Items[0].UID)
	assert.Equal(t, "b", data.Items[1].UID)
}

func TestAdminListSubmissions_StoreError(t *testing.T) {
	st := newFakeStore()
	st.ListFunc = func(ctx context.Context, limit int) ([]*models.Submission, error) {
		return nil, errors.New("deadline exceeded")
	}
	r := newAdminRouter(NewAdminHandler(st, "segredo", time.Hour, "a@b.c", "x"))

	w := doJSON(r, http.MethodGet, "/submissions", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "deadline")
}

func TestAdminGetSubmission(t *testing.T) {
	st := newFakeStore()
	require.NoError(t, st.Save(context.Background(), &models.Submission{
		UID:                "abc",
		NomeCompleto:       "Ana",
		RecebeuOrientacoes: models.TriTrue,
	}))
	r := newAdminRouter(NewAdminHandler(st, "segredo", time.Hour, "a@b.c", "x"))

	w := doJSON(r, http.MethodGet, "/submissions/abc", "")
	require.Equal(t, http.StatusOK, w.Code)
	var sub models.Submission
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &sub))
	assert.Equal(t, "Ana", sub.NomeCompleto)
	assert.Equal(t, models.TriTrue, sub.RecebeuOrientacoes)
	assert.Equal(t, models.TriUnknown, sub.ViajouAreaRisco)

	w = doJSON(r, http.MethodGet, "/submissions/nao-existe", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
