package fixtures

import "sync"

// MatchPatch is a partial update to one match; nil fields are left alone.
type MatchPatch struct {
	Date     *string `json:"date"`
	Time     *string `json:"time"`
	Opponent *string `json:"opponent"`
	HomeTeam *string `json:"homeTeam"`
	Venue    *string `json:"venue"`
	MatchURL *string `json:"matchUrl"`
	Selected *bool   `json:"selected"`
}

// Store is the session's working set of fixtures. Lifetime is the process;
// nothing here touches disk. State changes only through the named
// operations below.
type Store struct {
	mu      sync.RWMutex
	matches []Match
	sources []Source
}

func NewStore() *Store { return &Store{} }

// List returns a copy of the current match list in order.
func (s *Store) List() []Match {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Match, len(s.matches))
	copy(out, s.matches)
	return out
}

// Sources returns the citations from the most recent extraction.
func (s *Store) Sources() []Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Source, len(s.sources))
	copy(out, s.sources)
	return out
}

// Selected returns the matches currently marked for content generation.
func (s *Store) Selected() []Match {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Match
	for _, m := range s.matches {
		if m.Selected {
			out = append(out, m)
		}
	}
	return out
}

// Append adds an extraction batch to the session. Sources are replaced,
// not accumulated: they describe the latest extraction only.
func (s *Store) Append(res ExtractionResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches = append(s.matches, res.Matches...)
	s.sources = res.Sources
}

// Update applies a patch to one match. The map link is recomputed when the
// venue changes.
func (s *Store) Update(id string, patch MatchPatch) (Match, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.matches {
		if s.matches[i].ID != id {
			continue
		}
		m := &s.matches[i]
		set := func(dst *string, src *string) {
			if src != nil {
				*dst = *src
			}
		}
		set(&m.Date, patch.Date)
		set(&m.Time, patch.Time)
		set(&m.Opponent, patch.Opponent)
		set(&m.HomeTeam, patch.HomeTeam)
		set(&m.MatchURL, patch.MatchURL)
		if patch.Venue != nil {
			m.Venue = *patch.Venue
			m.MapLink = MapLink(m.Venue, "")
		}
		if patch.Selected != nil {
			m.Selected = *patch.Selected
		}
		return *m, true
	}
	return Match{}, false
}

// Delete removes one match.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.matches {
		if s.matches[i].ID == id {
			s.matches = append(s.matches[:i], s.matches[i+1:]...)
			return true
		}
	}
	return false
}

// Clear drops all matches and sources.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches = nil
	s.sources = nil
}

// Share marks exactly the given match as selected, deselecting every other
// match, and returns it. This is the only operation that enforces a
// singleton selection.
func (s *Store) Share(id string) (Match, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var target *Match
	for i := range s.matches {
		if s.matches[i].ID == id {
			target = &s.matches[i]
		}
	}
	if target == nil {
		return Match{}, false
	}
	for i := range s.matches {
		s.matches[i].Selected = false
	}
	target.Selected = true
	return *target, true
}
