package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nrao/cricsync/internal/config"
	"github.com/nrao/cricsync/internal/fixtures"
	"github.com/nrao/cricsync/internal/gemini"
)

// Collaborator is the slice of the AI client the orchestrator depends on.
type Collaborator interface {
	GenerateText(ctx context.Context, model, prompt string) (string, error)
	GenerateWithSearch(ctx context.Context, model, prompt string) (gemini.SearchResult, error)
	GenerateVision(ctx context.Context, model, prompt string, image []byte, mimeType string) (string, error)
}

// Sink receives one human-readable progress line per stage, in order.
// It is the flow's only observability channel.
type Sink func(string)

// SearchQuery identifies the team whose fixtures to look up.
type SearchQuery struct {
	// SearchType is "details" (name + location + captain) or "link".
	SearchType  string `json:"search_type"`
	TeamName    string `json:"team_name"`
	Location    string `json:"location"`
	CaptainName string `json:"captain_name"`
	TeamLink    string `json:"team_link"`
}

// Validate rejects queries before any collaborator call is made.
func (q SearchQuery) Validate() error {
	switch q.SearchType {
	case "link":
		if strings.TrimSpace(q.TeamLink) == "" {
			return errors.New("team link is required")
		}
	case "details":
		if strings.TrimSpace(q.TeamName) == "" {
			return errors.New("team name is required")
		}
	default:
		return fmt.Errorf("unknown search type %q", q.SearchType)
	}
	return nil
}

// Service drives the three extraction modes against the collaborator and
// maps replies through the fixtures pipeline.
type Service struct {
	ai     Collaborator
	models config.Models
	log    *zap.Logger
	now    func() time.Time
}

func NewService(ai Collaborator, models config.Models, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{ai: ai, models: models, log: log, now: time.Now}
}

// tee forwards flow lines to the caller's sink and to the debug log.
func (s *Service) tee(sink Sink) Sink {
	return func(line string) {
		s.log.Debug(line)
		if sink != nil {
			sink(line)
		}
	}
}

// Search looks up upcoming fixtures on the web, filters them to the
// current-week window and normalizes the survivors. The caller treats an
// empty result as "no matches found" guidance, not as a failure.
func (s *Service) Search(ctx context.Context, q SearchQuery, sink Sink) (fixtures.ExtractionResult, error) {
	log := s.tee(sink)
	model := s.models.Search
	log("[Flow Start] Initiating match extraction using " + model)

	var searchContext, fallbackTeam string
	if q.SearchType == "link" {
		link := strings.TrimSpace(q.TeamLink)
		log("[Context] Target link: " + link)
		searchContext = fmt.Sprintf("the cricket team associated with this profile link: %q.", link)
	} else {
		log(fmt.Sprintf("[Context] Target team: %s (%s)", q.TeamName, q.Location))
		searchContext = fmt.Sprintf("the team %q located in %q captained by %q.", q.TeamName, q.Location, q.CaptainName)
		fallbackTeam = q.TeamName
	}

	log("[Step 1] Sending prompt to " + model + "...")
	log(`> Instruction: "Search for upcoming fixtures for this team"`)
	log("> Tool: Google Search (Grounding)")
	res, err := s.ai.GenerateWithSearch(ctx, model, searchPrompt(searchContext))
	if err != nil {
		log("[Critical Error] " + gemini.UserMessage(err))
		return fixtures.ExtractionResult{}, err
	}
	log("[Step 2] Response received from AI model.")

	if len(res.Queries) > 0 || len(res.Citations) > 0 {
		log("--- GOOGLE SEARCH RESPONSE DATA ---")
		if len(res.Queries) > 0 {
			log(fmt.Sprintf("> Queries executed: %v", res.Queries))
		}
		log(fmt.Sprintf("> Search results found: %d", len(res.Citations)))
		for i, cit := range res.Citations {
			log(fmt.Sprintf("  [%d] %s", i+1, cit.Title))
			log("      " + cit.URI)
		}
		log("-----------------------------------")
	}
	logRaw(log, res.Text)

	log("[Step 3] Parsing JSON payload...")
	raw, perr := ParseRecords(res.Text)
	if perr != nil {
		// Non-fatal: an unparseable reply yields zero records.
		log("[Error] " + perr.Error())
	} else {
		log(fmt.Sprintf("> Found %d total matches in response.", len(raw)))
	}

	start, end := fixtures.Window(s.now())
	log("[Step 4] Applying date filter (IST base)")
	log(fmt.Sprintf("> Filter range: %s to %s", start.Format("Mon Jan 2 2006"), end.Format("Mon Jan 2 2006")))
	kept := fixtures.FilterUpcoming(raw, s.now(), log)

	log("[Step 5] Finalizing data...")
	matches := fixtures.Normalize(kept, fixtures.NormalizeOptions{
		Location:     q.Location,
		FallbackTeam: fallbackTeam,
	})

	sources := make([]fixtures.Source, 0, len(res.Citations))
	for _, cit := range res.Citations {
		sources = append(sources, fixtures.Source{Title: cit.Title, URI: cit.URI})
	}
	if len(sources) > 0 {
		log("[Step 6] Verifying sources:")
		for _, src := range sources {
			log("> Source: " + src.URI)
		}
	}

	log(fmt.Sprintf("[Flow Complete] Returning %d validated matches.", len(matches)))
	for _, m := range matches {
		if m.MapLink != "" {
			log("> Generated map: " + m.MapLink)
		}
		if m.MatchURL != "" {
			log("> Match link: " + m.MatchURL)
		}
	}
	return fixtures.ExtractionResult{Matches: matches, Sources: sources}, nil
}

// Text extracts fixtures from freeform or structured manual-entry text.
// No window filtering: whatever parses is kept.
func (s *Service) Text(ctx context.Context, input string, sink Sink) (fixtures.ExtractionResult, error) {
	log := s.tee(sink)
	model := s.models.Fast
	log("[Flow Start] Initializing text mode using " + model + "...")

	log("[Step 1] Sending content to " + model + "...")
	text, err := s.ai.GenerateText(ctx, model, textPrompt(input))
	if err != nil {
		log("[Error] " + gemini.UserMessage(err))
		return fixtures.ExtractionResult{}, err
	}
	log("[Step 2] Response received.")

	return s.finishPlain(log, text)
}

// Image extracts fixtures from a screenshot.
func (s *Service) Image(ctx context.Context, image []byte, mimeType string, sink Sink) (fixtures.ExtractionResult, error) {
	log := s.tee(sink)
	model := s.models.Fast
	log("[Flow Start] Initializing image mode using " + model + "...")

	log("[Step 1] Sending content to " + model + "...")
	text, err := s.ai.GenerateVision(ctx, model, imagePrompt(), image, mimeType)
	if err != nil {
		log("[Error] " + gemini.UserMessage(err))
		return fixtures.ExtractionResult{}, err
	}
	log("[Step 2] Response received.")

	return s.finishPlain(log, text)
}

// finishPlain is the shared tail of the text and image modes: parse,
// normalize, report the count.
func (s *Service) finishPlain(log Sink, text string) (fixtures.ExtractionResult, error) {
	log("[Step 3] Parsing JSON data...")
	raw, perr := ParseRecords(text)
	if perr != nil {
		log("[Error] " + perr.Error())
	}
	log(fmt.Sprintf("[Flow Complete] Found %d matches.", len(raw)))

	matches := fixtures.Normalize(raw, fixtures.NormalizeOptions{})
	return fixtures.ExtractionResult{Matches: matches, Sources: []fixtures.Source{}}, nil
}

// logRaw echoes the model's reply into the flow log, truncated.
func logRaw(log Sink, text string) {
	log("--- RAW AI OUTPUT START ---")
	if len(text) > 500 {
		log(text[:500] + "... (truncated)")
	} else {
		log(text)
	}
	log("--- RAW AI OUTPUT END ---")
}
