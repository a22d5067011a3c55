package gift

import (
	"testing"

	"github.com/wishwell/wishwell/pkg/errors"
)

const sampleArray = `[
  {"name": "Trail Shoes", "description": "Sturdy shoes.", "estimatedPrice": "A$120-A$150"},
  {"name": "Camera Strap", "description": "Leather strap.", "estimatedPrice": "A$40-A$60"}
]`

func TestExtractSuggestions(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "bare array", text: sampleArray},
		{name: "fenced with language tag", text: "```json\n" + sampleArray + "\n```"},
		{name: "fenced without language tag", text: "```\n" + sampleArray + "\n```"},
		{name: "prose wrapped", text: "Here are some ideas:\n" + sampleArray + "\nHope that helps!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractSuggestions(tt.text, "AU")
			if err != nil {
				t.Fatalf("ExtractSuggestions failed: %v", err)
			}
			if len(got) != 2 {
				t.Fatalf("got %d suggestions, want 2", len(got))
			}
			if got[0].Name != "Trail Shoes" || got[0].EstimatedPrice != "A$120-A$150" {
				t.Errorf("first suggestion = %+v", got[0])
			}
			if got[1].Description != "Leather strap." {
				t.Errorf("second description = %q", got[1].Description)
			}
		})
	}
}

func TestExtractSuggestionsOverridesPurchaseURL(t *testing.T) {
	text := `[{"name": "Kids' Book & Puzzle", "description": "d", "estimatedPrice": "$20", "purchaseUrl": "https://evil.example/buy"}]`
	got, err := ExtractSuggestions(text, "US")
	if err != nil {
		t.Fatalf("ExtractSuggestions failed: %v", err)
	}
	want := "https://www.amazon.com/s?k=Kids'%20Book%20%26%20Puzzle"
	if got[0].PurchaseURL != want {
		t.Errorf("PurchaseURL = %q, want %q", got[0].PurchaseURL, want)
	}
}

func TestExtractSuggestionsCoercesFields(t *testing.T) {
	text := `[{"name": 42, "estimatedPrice": 19.99}]`
	got, err := ExtractSuggestions(text, "AU")
	if err != nil {
		t.Fatalf("ExtractSuggestions failed: %v", err)
	}
	if got[0].Name != "42" {
		t.Errorf("Name = %q, want %q", got[0].Name, "42")
	}
	if got[0].Description != "" {
		t.Errorf("missing description = %q, want empty", got[0].Description)
	}
	if got[0].EstimatedPrice != "19.99" {
		t.Errorf("EstimatedPrice = %q, want %q", got[0].EstimatedPrice, "19.99")
	}
}

func TestExtractSuggestionsParseFailure(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "plain prose", text: "I'm sorry, I can't help with that."},
		{name: "object not array", text: `{"name": "x"}`},
		{name: "empty", text: ""},
		{name: "fenced prose", text: "```\nnot json\n```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractSuggestions(tt.text, "AU")
			if err == nil {
				t.Fatal("ExtractSuggestions succeeded, want error")
			}
			if !errors.IsCode(err, errors.ErrCodeGiftParseFailed) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeGiftParseFailed)
			}
		})
	}
}

func TestExtractSuggestionsEmptyArray(t *testing.T) {
	got, err := ExtractSuggestions("[]", "AU")
	if err != nil {
		t.Fatalf("ExtractSuggestions failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d suggestions, want 0", len(got))
	}
}
