// Package extract holds the ad hoc text patterns used to pull tool parameters
// out of raw user queries. Each function is pure and reports a miss instead of
// erroring, so callers can degrade to defaults.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	priceDollarRe = regexp.MustCompile(`\$(\d+)`)
	priceWordRe   = regexp.MustCompile(`(\d+)\s*dollars`)
	zipRe         = regexp.MustCompile(`\b\d{5,6}\b`)
	orderIDRe     = regexp.MustCompile(`[A-Z]\d+`)
	emailRe       = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
)

// MaxPrice extracts a price ceiling written as "$120" or "120 dollars".
func MaxPrice(text string) (float64, bool) {
	m := priceDollarRe.FindStringSubmatch(text)
	if m == nil {
		m = priceWordRe.FindStringSubmatch(text)
	}
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return float64(n), true
}

// Zip extracts the first standalone 5-6 digit token.
func Zip(text string) (string, bool) {
	m := zipRe.FindString(text)
	return m, m != ""
}

// OrderID extracts the first token shaped like an order id: one uppercase
// letter followed by digits.
func OrderID(text string) (string, bool) {
	m := orderIDRe.FindString(text)
	return m, m != ""
}

// Email extracts the first email address.
func Email(text string) (string, bool) {
	m := emailRe.FindString(text)
	return m, m != ""
}

// knownTags are the only occasion tags the selector looks for. Matching is a
// literal word check, no stemming.
var knownTags = []string{"wedding", "party", "daywear"}

// Tags returns the occasion tags literally present in the text,
// case-insensitive, in the fixed wedding/party/daywear order.
func Tags(text string) []string {
	lower := strings.ToLower(text)
	var tags []string
	for _, t := range knownTags {
		if strings.Contains(lower, t) {
			tags = append(tags, t)
		}
	}
	return tags
}
