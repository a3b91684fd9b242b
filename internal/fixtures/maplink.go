package fixtures

import (
	"net/url"
	"regexp"
	"strings"
)

// Directional qualifiers in parentheses hurt map search accuracy,
// e.g. "Oval Ground (Near Metro Station)" -> "Oval Ground".
var venueQualifier = regexp.MustCompile(`(?i)\s*\((near|behind|opp|opposite|next to)\s+[^)]+\)`)

// MapLink builds a Google Maps search URL for a venue. Returns "" when the
// venue is empty, "TBD" or marked unknown. contextLocation is appended to
// the query unless the venue already mentions it.
func MapLink(venue, contextLocation string) string {
	v := strings.TrimSpace(venue)
	if v == "" {
		return ""
	}
	lower := strings.ToLower(v)
	if lower == "tbd" || strings.Contains(lower, "unknown") {
		return ""
	}

	query := strings.TrimSpace(venueQualifier.ReplaceAllString(v, ""))
	if contextLocation != "" && !strings.Contains(strings.ToLower(query), strings.ToLower(contextLocation)) {
		query = query + ", " + contextLocation
	}
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(query)
}
