package fixtures

import (
	"sort"

	"github.com/google/uuid"
)

// NormalizeOptions carries extraction context into normalization.
type NormalizeOptions struct {
	// Location is appended to map queries when the venue doesn't mention it.
	Location string
	// FallbackTeam fills home_team when the record has none.
	FallbackTeam string
}

// Normalize turns raw extracted records into session Matches: fresh ids
// (records that already carry one keep it), derived map links, a stable
// ascending date sort with unparseable dates at the end, and a default
// selection on the first resulting match. Records missing fields are kept
// as-is; display-level validation is not this layer's job.
func Normalize(raw []RawMatch, opts NormalizeOptions) []Match {
	out := make([]Match, 0, len(raw))
	for _, r := range raw {
		id := r.ID
		if id == "" {
			id = uuid.NewString()
		}
		home := r.HomeTeam
		if home == "" {
			home = opts.FallbackTeam
		}
		out = append(out, Match{
			ID:       id,
			Date:     r.Date,
			Time:     r.Time,
			Opponent: r.Opponent,
			HomeTeam: home,
			Venue:    r.Venue,
			MapLink:  MapLink(r.Venue, opts.Location),
			MatchURL: r.MatchURL,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		di, erri := ParseDate(out[i].Date)
		dj, errj := ParseDate(out[j].Date)
		if erri != nil {
			return false
		}
		if errj != nil {
			return true
		}
		return di.Before(dj)
	})

	if len(out) > 0 {
		out[0].Selected = true
	}
	return out
}
