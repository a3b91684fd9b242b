package fixtures

// Match is one fixture for the user's team. Instances are created by
// Normalize and live only for the session.
type Match struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Opponent string `json:"opponent"`
	HomeTeam string `json:"homeTeam,omitempty"`
	Venue    string `json:"venue"`
	MapLink  string `json:"mapLink,omitempty"`
	MatchURL string `json:"matchUrl,omitempty"`
	Selected bool   `json:"selected"`
}

// RawMatch is a loosely-typed record as returned by an extraction source.
// Every field is optional until Normalize has seen it; the field names are
// the wire contract with the extraction prompt.
type RawMatch struct {
	ID       string `json:"id,omitempty"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	HomeTeam string `json:"home_team"`
	Opponent string `json:"opponent"`
	Venue    string `json:"venue"`
	MatchURL string `json:"match_url"`
}

// Source is a web citation returned by a search-grounded extraction.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// ExtractionResult is the output of one extraction flow.
type ExtractionResult struct {
	Matches []Match  `json:"matches"`
	Sources []Source `json:"sources"`
}
