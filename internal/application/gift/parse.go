package gift

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	domain "github.com/wishwell/wishwell/internal/domain/gift"
	"github.com/wishwell/wishwell/pkg/errors"
)

// rawItem is one suggestion as the model emitted it, before coercion.
type rawItem map[string]any

// extractor attempts to pull a suggestion array out of a reply.  A false
// return means this strategy does not apply; the next one is tried.
type extractor struct {
	name string
	fn   func(text string) ([]rawItem, bool)
}

var (
	fenceRe   = regexp.MustCompile("```(?:json)?\\s*((?s:.*?))```")
	bracketRe = regexp.MustCompile(`(?s)\[.*\]`)
)

// extractors are tried in order: a bare JSON array, an array inside a
// fenced block (with or without a language tag), then the widest bracketed
// span amid surrounding prose.
var extractors = []extractor{
	{name: "direct", fn: func(text string) ([]rawItem, bool) {
		return tryUnmarshal(text)
	}},
	{name: "fenced", fn: func(text string) ([]rawItem, bool) {
		m := fenceRe.FindStringSubmatch(text)
		if m == nil {
			return nil, false
		}
		return tryUnmarshal(strings.TrimSpace(m[1]))
	}},
	{name: "bracket", fn: func(text string) ([]rawItem, bool) {
		m := bracketRe.FindString(text)
		if m == "" {
			return nil, false
		}
		return tryUnmarshal(m)
	}},
}

func tryUnmarshal(s string) ([]rawItem, bool) {
	var items []rawItem
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return nil, false
	}
	return items, true
}

// ExtractSuggestions parses a text-generation reply into sanitised
// suggestions.  Every purchase URL is derived from the suggestion name and
// the request country; anything the model put there is discarded.
func ExtractSuggestions(text, country string) ([]domain.Suggestion, error) {
	var items []rawItem
	found := false
	for _, e := range extractors {
		if parsed, ok := e.fn(text); ok {
			items = parsed
			found = true
			break
		}
	}
	if !found {
		return nil, errors.New(errors.ErrCodeGiftParseFailed, "could not parse gift suggestions from reply")
	}

	out := make([]domain.Suggestion, 0, len(items))
	for _, item := range items {
		name := coerceString(item["name"])
		out = append(out, domain.Suggestion{
			Name:           name,
			Description:    coerceString(item["description"]),
			EstimatedPrice: coerceString(item["estimatedPrice"]),
			PurchaseURL:    domain.BuildSearchURL(name, country),
		})
	}
	return out, nil
}

// coerceString renders any JSON value as a string, with nil and missing
// fields becoming the empty string.
func coerceString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}
