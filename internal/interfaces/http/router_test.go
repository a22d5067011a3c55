package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	giftapp "github.com/wishwell/wishwell/internal/application/gift"
	domain "github.com/wishwell/wishwell/internal/domain/gift"
	"github.com/wishwell/wishwell/internal/infrastructure/monitoring/logging"
	"github.com/wishwell/wishwell/internal/interfaces/http/handlers"
	"github.com/wishwell/wishwell/internal/interfaces/http/middleware"
)

type memLimitStore struct {
	records map[string]*domain.RateLimitRecord
}

func (m *memLimitStore) GetRateLimit(_ context.Context, accountID string) (*domain.RateLimitRecord, error) {
	return m.records[accountID], nil
}

func (m *memLimitStore) SetRateLimit(_ context.Context, accountID string, record domain.RateLimitRecord) error {
	m.records[accountID] = &record
	return nil
}

type stubTextGen struct{ reply string }

func (s *stubTextGen) Complete(context.Context, string) (string, error) {
	return s.reply, nil
}

func newTestRouter() http.Handler {
	store := &memLimitStore{records: map[string]*domain.RateLimitRecord{}}
	limiter := giftapp.NewLimiter(store, 10, 24*time.Hour)
	svc := giftapp.NewService(limiter, &stubTextGen{reply: "[]"}, nil, logging.NewNopLogger(), "")

	return NewRouter(RouterConfig{
		GiftHandler:    handlers.NewGiftHandler(svc),
		HealthHandler:  handlers.NewHealthHandler(nil),
		AuthMiddleware: middleware.NewAuthMiddleware(map[string]string{"secret-token": "a1"}, logging.NewNopLogger()),
	})
}

func TestRouterHealthEndpointsArePublic(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterAPIRequiresAuth(t *testing.T) {
	router := newTestRouter()
	body := `{"name": "Alice"}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/gifts/suggestions", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/gifts/suggestions", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer wrong-token")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/gifts/suggestions", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer secret-token")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"suggestions"`)
}

func TestRouterUnknownRoute(t *testing.T) {
	router := newTestRouter()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
