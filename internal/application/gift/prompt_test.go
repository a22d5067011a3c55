package gift

import (
	"strings"
	"testing"

	"github.com/wishwell/wishwell/internal/domain/birthday"
	domain "github.com/wishwell/wishwell/internal/domain/gift"
)

func intPtr(v int) *int { return &v }

func TestBuildPromptFullProfile(t *testing.T) {
	req := domain.SuggestionRequest{
		Name:         "Alice",
		Age:          intPtr(30),
		Relationship: "sister",
		Interests:    []string{"hiking", "photography"},
		GiftIdeas:    []string{"camera strap"},
		PastGifts: []birthday.PastGift{
			{Year: 2024, Description: "Trail shoes", Rating: intPtr(5)},
			{Year: 2025, Description: "Scarf"},
		},
		Notes:   "prefers handmade things",
		Country: "GB",
	}

	prompt := BuildPrompt(req)

	for _, want := range []string{
		"suggest exactly 3 thoughtful, purchasable gift ideas",
		"Return ONLY a JSON array",
		`"estimatedPrice": price range as a string (e.g. "£20-£30")`,
		"- Name: Alice",
		"- Age: 30",
		"- Relationship: sister",
		"- Country: United Kingdom",
		"- Interests: hiking, photography",
		"- Past gifts:",
		"  - 2024: Trail shoes (rated 5/5)",
		"  - 2025: Scarf",
		"- Notes/preferences: prefers handmade things",
		"- Existing gift ideas to consider: camera strap",
		"Use prices in £.",
		`Do NOT include a "purchaseUrl" field`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPromptOmitsEmptySections(t *testing.T) {
	req := domain.SuggestionRequest{Name: "Bob", Relationship: "friend", Country: "US"}
	prompt := BuildPrompt(req)

	for _, absent := range []string{"- Age:", "- Interests:", "- Past gifts:", "- Notes/preferences:", "- Existing gift ideas"} {
		if strings.Contains(prompt, absent) {
			t.Errorf("prompt contains %q for an empty field", absent)
		}
	}
	if !strings.Contains(prompt, "- Country: United States") {
		t.Error("country section missing")
	}
}

func TestBuildPromptUnknownCountryFallsBack(t *testing.T) {
	req := domain.SuggestionRequest{Name: "Bob", Country: "ZZ"}
	prompt := BuildPrompt(req)
	if !strings.Contains(prompt, "- Country: Australia") {
		t.Error("unknown country did not fall back to the default")
	}
	if !strings.Contains(prompt, "A$20-A$30") {
		t.Error("price example not in default currency")
	}
}

func TestBuildPromptDeterministic(t *testing.T) {
	req := domain.SuggestionRequest{
		Name:      "Alice",
		Interests: []string{"chess"},
		Country:   "CA",
	}
	if BuildPrompt(req) != BuildPrompt(req) {
		t.Error("identical requests produced different prompts")
	}
}
