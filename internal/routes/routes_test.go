package routes

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"malaria-intake/internal/config"
	"malaria-intake/internal/handlers"
	"malaria-intake/internal/models"
	"malaria-intake/internal/store"
	"malaria-intake/pkg/utils"
)

type memoryStore struct {
	docs map[string]*models.Submission
}

func (m *memoryStore) Save(ctx context.Context, sub *models.Submission) error {
	m.docs[sub.UID] = sub
	return nil
}

func (m *memoryStore) Get(ctx context.Context, uid string) (*models.Submission, error) {
	if sub, ok := m.docs[uid]; ok {
		return sub, nil
	}
	return nil, store.ErrNotFound
}

func (m *memoryStore) List(ctx context.Context, limit int) ([]*models.Submission, error) {
	out := []*models.Submission{}
	for _, sub := range m.docs {
		out = append(out, sub)
	}
	return out, nil
}

func (m *memoryStore) CollectionPath() string { return "artifacts/meuappsaude/users" }

func newTestRouter(t *testing.T) (*gin.Engine, *memoryStore, *config.Config) {
	t.Helper()
	return newTestRouterWith(t, nil)
}

func newTestRouterWith(t *testing.T, tweak func(*config.Config)) (*gin.Engine, *memoryStore, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		AppID:             "meuappsaude",
		JWTSecret:         "segredo",
		JWTTTL:            time.Hour,
		RateLimitRPS:      100,
		RateLimitBurst:    100,
		CORSAllowedOrigin: "*",
	}
	if tweak != nil {
		tweak(cfg)
	}
	st := &memoryStore{docs: map[string]*models.Submission{}}

	r, err := NewRouter(cfg, Handlers{
		Form:   handlers.NewFormHandler(st, utils.IDGeneratorFunc(func() string { return "doc-1" }), nil),
		Admin:  handlers.NewAdminHandler(st, cfg.JWTSecret, cfg.JWTTTL, "admin@example.com", "hash"),
		Gemini: handlers.NewGeminiHandler(nil),
	})
	require.NoError(t, err)
	return r, st, cfg
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_FormFlow(t *testing.T) {
	r, st, _ := newTestRouter(t)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	form := url.Values{"nomeCompleto": {"José"}, "viajouAreaRisco": {"sim"}}
	req := httptest.NewRequest(http.MethodPost, "/submit_form", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = serve(r, req)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/success?name=Jos%C3%A9", w.Header().Get("Location"))
	assert.Equal(t, "doc-1", st.docs["doc-1"].UID)

	w = serve(r, httptest.NewRequest(http.MethodGet, w.Header().Get("Location"), nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "José")
	assert.Contains(t, w.Body.String(), "artifacts/meuappsaude/users")
}

func TestRouter_NoEditOrDeleteRoutes(t *testing.T) {
	r, _, _ := newTestRouter(t)

	for _, method := range []string{http.MethodPut, http.MethodPatch, http.MethodDelete} {
		w := serve(r, httptest.NewRequest(method, "/api/v1/admin/submissions/doc-1", nil))
		assert.Equal(t, http.StatusNotFound, w.Code, method)
	}
}

func TestRouter_AdminRequiresToken(t *testing.T) {
	r, _, cfg := newTestRouter(t)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/admin/submissions", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := utils.GenerateToken(cfg.JWTSecret, "admin@example.com", "admin", time.Hour)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/submissions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_GeminiPreflightAndMethod(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := serve(r, httptest.NewRequest(http.MethodOptions, "/api/v1/gemini", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/gemini", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodPost, "/api/v1/gemini", strings.NewReader(`{"prompt":"oi"}`)))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRouter_Ping(t *testing.T) {
	r, _, _ := newTestRouter(t)
	w := serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func submitFrom(r http.Handler, remoteAddr, forwardedFor string) int {
	req := httptest.NewRequest(http.MethodPost, "/submit_form", strings.NewReader("nomeCompleto=Ana"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Forwarded-For", forwardedFor)
	req.RemoteAddr = remoteAddr
	return serve(r, req).Code
}

func TestRouter_RateLimitIgnoresSpoofedForwardedFor(t *testing.T) {
	r, _, _ := newTestRouterWith(t, func(cfg *config.Config) {
		cfg.RateLimitRPS = 0.001
		cfg.RateLimitBurst = 3
	})

	codes := map[int]int{}
	for i := 0; i < 10; i++ {
		codes[submitFrom(r, "203.0.113.7:4000", fmt.Sprintf("198.51.100.%d", i+1))]++
	}

	assert.Equal(t, 3, codes[http.StatusFound])
	assert.Equal(t, 7, codes[http.StatusTooManyRequests])
}

func TestRouter_TrustedProxyForwardsClientIP(t *testing.T) {
	r, _, _ := newTestRouterWith(t, func(cfg *config.Config) {
		cfg.RateLimitRPS = 0.001
		cfg.RateLimitBurst = 1
		cfg.TrustedProxies = []string{"10.0.0.0/8"}
	})

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusFound, submitFrom(r, "10.1.2.3:4000", fmt.Sprintf("198.51.100.%d", i+1)))
	}
	assert.Equal(t, http.StatusTooManyRequests, submitFrom(r, "10.1.2.3:4000", "198.51.100.1"))
}
