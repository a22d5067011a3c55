// Package gift implements the suggestion pipeline: validate the request,
// admit it through the sliding-window limiter, build a country-aware
// prompt, call the text-generation service, and extract sanitised
// suggestions from its free-form reply.
package gift

import (
	"fmt"
	"strings"

	domain "github.com/wishwell/wishwell/internal/domain/gift"
)

// BuildPrompt renders the deterministic suggestion prompt.  Optional
// sections are omitted entirely rather than rendered empty, so two
// requests with the same fields always produce byte-identical prompts.
func BuildPrompt(req domain.SuggestionRequest) string {
	country := domain.ResolveCountry(req.Country)

	var b strings.Builder
	fmt.Fprintf(&b, `You are a gift recommendation expert. Based on the following information about a person, suggest exactly %d thoughtful, purchasable gift ideas. Return ONLY a JSON array with no other text, no markdown fences, no explanation.

Each gift object must have these exact fields:
- "name": short, specific product name (e.g. "Sony WH-1000XM5 Headphones" not just "Headphones")
- "description": 2-3 sentence description of why this gift suits the person
- "estimatedPrice": price range as a string (e.g. "%s20-%s30")

Person details:
- Name: %s`, domain.SuggestionCount, country.Currency, country.Currency, req.Name)

	if req.Age != nil {
		fmt.Fprintf(&b, "\n- Age: %d", *req.Age)
	}
	fmt.Fprintf(&b, "\n- Relationship: %s", req.Relationship)
	fmt.Fprintf(&b, "\n- Country: %s", country.Name)

	if len(req.Interests) > 0 {
		fmt.Fprintf(&b, "\n- Interests: %s", strings.Join(req.Interests, ", "))
	}
	if len(req.PastGifts) > 0 {
		b.WriteString("\n- Past gifts:")
		for _, g := range req.PastGifts {
			fmt.Fprintf(&b, "\n  - %d: %s", g.Year, g.Description)
			if g.Rating != nil {
				fmt.Fprintf(&b, " (rated %d/5)", *g.Rating)
			}
		}
	}
	if req.Notes != "" {
		fmt.Fprintf(&b, "\n- Notes/preferences: %s", req.Notes)
	}
	if len(req.GiftIdeas) > 0 {
		fmt.Fprintf(&b, "\n- Existing gift ideas to consider: %s", strings.Join(req.GiftIdeas, ", "))
	}

	fmt.Fprintf(&b, "\n\nIMPORTANT: Suggest gifts that are different from past gifts. If a past gift had a high rating, use it as a signal of what they like. Use prices in %s. Do NOT include a \"purchaseUrl\" field, search links are generated automatically. Return ONLY valid JSON array - no markdown, no explanation.", country.Currency)

	return b.String()
}
