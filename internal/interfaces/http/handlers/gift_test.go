package handlers

import (
	"context"
	"encoding/json"
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
	"github.com/wishwell/wishwell/pkg/errors"
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

type stubTextGen struct {
	reply string
	err   error
}

func (s *stubTextGen) Complete(context.Context, string) (string, error) {
	return s.reply, s.err
}

func newHandler(gen *stubTextGen, max int) *GiftHandler {
	store := &memLimitStore{records: map[string]*domain.RateLimitRecord{}}
	limiter := giftapp.NewLimiter(store, max, 24*time.Hour)
	svc := giftapp.NewService(limiter, gen, nil, logging.NewNopLogger(), "")
	return NewGiftHandler(svc)
}

func postSuggestions(h *GiftHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/gifts/suggestions", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Suggest(rec, req)
	return rec
}

func TestGiftHandlerSuggest(t *testing.T) {
	gen := &stubTextGen{reply: `[{"name": "Lego Set", "description": "Bricks.", "estimatedPrice": "A$50"}]`}
	h := newHandler(gen, 10)

	rec := postSuggestions(h, `{"name": "Alice", "relationship": "friend"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SuggestionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Suggestions, 1)
	assert.Equal(t, "Lego Set", resp.Suggestions[0].Name)
	assert.Equal(t, "https://www.amazon.com.au/s?k=Lego%20Set", resp.Suggestions[0].PurchaseURL)
}

func TestGiftHandlerMalformedBody(t *testing.T) {
	h := newHandler(&stubTextGen{reply: "[]"}, 10)

	rec := postSuggestions(h, "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, errors.TagInvalidArgument, resp.Error)
}

func TestGiftHandlerValidationError(t *testing.T) {
	h := newHandler(&stubTextGen{reply: "[]"}, 10)

	rec := postSuggestions(h, `{"name": ""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGiftHandlerRateLimited(t *testing.T) {
	h := newHandler(&stubTextGen{reply: "[]"}, 1)

	require.Equal(t, http.StatusOK, postSuggestions(h, `{"name": "Alice"}`).Code)
	rec := postSuggestions(h, `{"name": "Alice"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, errors.TagResourceExhausted, resp.Error)
}

func TestGiftHandlerParseFailure(t *testing.T) {
	h := newHandler(&stubTextGen{reply: "no ideas, sorry"}, 10)

	rec := postSuggestions(h, `{"name": "Alice"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, errors.ErrCodeGiftParseFailed, resp.Code)
}

func TestGiftHandlerUpstreamBusy(t *testing.T) {
	h := newHandler(&stubTextGen{err: errors.New(errors.ErrCodeTextGenBusy, "overloaded")}, 10)

	rec := postSuggestions(h, `{"name": "Alice"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, errors.TagUnavailable, resp.Error)
}
