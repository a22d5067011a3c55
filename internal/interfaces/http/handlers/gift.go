package handlers

import (
	"encoding/json"
	"net/http"

	giftapp "github.com/wishwell/wishwell/internal/application/gift"
	domain "github.com/wishwell/wishwell/internal/domain/gift"
	"github.com/wishwell/wishwell/pkg/errors"
)

// GiftHandler serves the suggestion endpoint.
type GiftHandler struct {
	service *giftapp.Service
}

// NewGiftHandler builds the handler.
func NewGiftHandler(service *giftapp.Service) *GiftHandler {
	return &GiftHandler{service: service}
}

// SuggestionsResponse is the success body of POST /api/v1/gifts/suggestions.
type SuggestionsResponse struct {
	Suggestions []domain.Suggestion `json:"suggestions"`
}

// Suggest handles POST /api/v1/gifts/suggestions.
func (h *GiftHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req domain.SuggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAppError(w, errors.InvalidArgument("request body is not valid JSON"))
		return
	}
	req.AccountID = getAccountID(r)

	suggestions, err := h.service.Suggest(r.Context(), req)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SuggestionsResponse{Suggestions: suggestions})
}
