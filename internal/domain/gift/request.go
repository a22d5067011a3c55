// Package gift holds the gift-suggestion domain: the request and suggestion
// models, input validation, country knowledge, and the rate-limit contract.
package gift

import (
	"strings"
	"unicode/utf8"

	"github.com/wishwell/wishwell/internal/domain/birthday"
	"github.com/wishwell/wishwell/pkg/errors"
)

const (
	maxNameLen      = 100
	maxAge          = 150
	maxInterests    = 20
	maxGiftIdeas    = 20
	maxPastGifts    = 50
	maxNotesLen     = 1000
	minGiftYear     = 1
	maxGiftYear     = 2100
	minRating       = 1
	maxRating       = 5
	countryCodeLen  = 2
	SuggestionCount = 3
)

// SuggestionRequest describes the person a caller wants gift ideas for.
// Age is nil when the birth year is unknown.
type SuggestionRequest struct {
	AccountID    string              `json:"-"`
	Name         string              `json:"name"`
	Age          *int                `json:"age,omitempty"`
	Relationship string              `json:"relationship,omitempty"`
	Interests    []string            `json:"interests,omitempty"`
	GiftIdeas    []string            `json:"giftIdeas,omitempty"`
	PastGifts    []birthday.PastGift `json:"pastGifts,omitempty"`
	Notes        string              `json:"notes,omitempty"`
	Country      string              `json:"country,omitempty"`
}

// Suggestion is one generated gift idea.  PurchaseURL always points at a
// retailer search for the suggestion name, never at a model-invented link.
type Suggestion struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	EstimatedPrice string `json:"estimatedPrice"`
	PurchaseURL    string `json:"purchaseUrl"`
}

// Normalize trims the name and uppercases the country code in place.
func (r *SuggestionRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Country = strings.ToUpper(strings.TrimSpace(r.Country))
}

// Validate checks field bounds and returns an invalid-argument error naming
// the first offending field.
func (r *SuggestionRequest) Validate() error {
	if r.Name == "" {
		return errors.InvalidArgument("name is required")
	}
	if utf8.RuneCountInString(r.Name) > maxNameLen {
		return errors.InvalidArgument("name exceeds 100 characters")
	}
	if r.Age != nil && (*r.Age < 0 || *r.Age > maxAge) {
		return errors.InvalidArgument("age out of range")
	}
	if len(r.Interests) > maxInterests {
		return errors.InvalidArgument("too many interests")
	}
	if len(r.GiftIdeas) > maxGiftIdeas {
		return errors.InvalidArgument("too many gift ideas")
	}
	if len(r.PastGifts) > maxPastGifts {
		return errors.InvalidArgument("too many past gifts")
	}
	for _, pg := range r.PastGifts {
		if pg.Year < minGiftYear || pg.Year > maxGiftYear {
			return errors.InvalidArgument("past gift year out of range")
		}
		if pg.Rating != nil && (*pg.Rating < minRating || *pg.Rating > maxRating) {
			return errors.InvalidArgument("past gift rating out of range")
		}
	}
	if utf8.RuneCountInString(r.Notes) > maxNotesLen {
		return errors.InvalidArgument("notes exceed 1000 characters")
	}
	if r.Country != "" && len(r.Country) != countryCodeLen {
		return errors.InvalidArgument("country must be a 2-letter code")
	}
	return nil
}
