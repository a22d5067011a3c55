package gift

import "strings"

// BuildSearchURL derives a marketplace search link for a gift name in the
// given country, falling back to the default country's marketplace for
// unrecognised codes.  The query is the sole search parameter.
func BuildSearchURL(query, countryCode string) string {
	return ResolveCountry(countryCode).SearchURL + encodeQueryComponent(query)
}

// encodeQueryComponent percent-encodes a query the way browsers encode URI
// components: spaces become %20 (never "+"), '&' becomes %26, while
// apostrophes and the other component-safe marks stay literal.
func encodeQueryComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, c := range []byte(s) {
		if isComponentSafe(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0f])
	}
	return b.String()
}

const upperhex = "0123456789ABCDEF"

func isComponentSafe(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
