package extract

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nrao/cricsync/internal/config"
	"github.com/nrao/cricsync/internal/fixtures"
	"github.com/nrao/cricsync/internal/gemini"
)

type fakeAI struct {
	searchRes gemini.SearchResult
	searchErr error
	textRes   string
	textErr   error

	lastPrompt string
	lastModel  string
	lastImage  []byte
	lastMime   string
}

func (f *fakeAI) GenerateText(_ context.Context, model, prompt string) (string, error) {
	f.lastModel, f.lastPrompt = model, prompt
	return f.textRes, f.textErr
}

func (f *fakeAI) GenerateWithSearch(_ context.Context, model, prompt string) (gemini.SearchResult, error) {
	f.lastModel, f.lastPrompt = model, prompt
	return f.searchRes, f.searchErr
}

func (f *fakeAI) GenerateVision(_ context.Context, model, prompt string, image []byte, mimeType string) (string, error) {
	f.lastModel, f.lastPrompt = model, prompt
	f.lastImage, f.lastMime = image, mimeType
	return f.textRes, f.textErr
}

var testModels = config.Models{
	Search: "search-model",
	Fast:   "fast-model",
	Image:  "image-model",
}

func newTestService(ai *fakeAI) *Service {
	svc := NewService(ai, testModels, nil)
	// 2025-12-06 is a Saturday; the window runs through Sunday 2025-12-07.
	svc.now = func() time.Time {
		return time.Date(2025, 12, 6, 12, 0, 0, 0, fixtures.IST)
	}
	return svc
}

func collect(lines *[]string) Sink {
	return func(s string) { *lines = append(*lines, s) }
}

func TestSearchQuery_Validate(t *testing.T) {
	assert.NoError(t, SearchQuery{SearchType: "details", TeamName: "Smashers"}.Validate())
	assert.NoError(t, SearchQuery{SearchType: "link", TeamLink: "https://example.com/t"}.Validate())
	assert.Error(t, SearchQuery{SearchType: "details"}.Validate())
	assert.Error(t, SearchQuery{SearchType: "link"}.Validate())
	assert.Error(t, SearchQuery{SearchType: "magic"}.Validate())
}

func TestSearch_KeepsOnlyCurrentWindow(t *testing.T) {
	ai := &fakeAI{searchRes: gemini.SearchResult{
		Text: "```json\n[" +
			`{"date":"2025-12-06","time":"6:30 PM","opponent":"Titans","venue":"Oval Ground"},` +
			`{"date":"2025-12-20","time":"10:00 AM","opponent":"Strikers","venue":"City Ground"}` +
			"]\n```",
		Citations: []gemini.Citation{{Title: "League site", URI: "https://league.example.com"}},
		Queries:   []string{"Smashers Mumbai upcoming cricket fixtures"},
	}}
	svc := newTestService(ai)

	var lines []string
	res, err := svc.Search(context.Background(), SearchQuery{
		SearchType: "details", TeamName: "Smashers", Location: "Mumbai",
	}, collect(&lines))
	require.NoError(t, err)

	require.Len(t, res.Matches, 1)
	m := res.Matches[0]
	assert.Equal(t, "Titans", m.Opponent)
	assert.Equal(t, "Smashers", m.HomeTeam, "details mode fills the home team")
	assert.True(t, m.Selected)
	assert.Contains(t, m.MapLink, "Mumbai", "map link carries the location context")

	require.Len(t, res.Sources, 1)
	assert.Equal(t, "League site", res.Sources[0].Title)

	assert.Equal(t, "search-model", ai.lastModel)
	assert.Contains(t, ai.lastPrompt, `the team "Smashers"`)
}

func TestSearch_AllOutsideWindowYieldsNothing(t *testing.T) {
	ai := &fakeAI{searchRes: gemini.SearchResult{
		Text: `[{"date":"2025-12-05","opponent":"A"},{"date":"2025-12-09","opponent":"B"},{"date":"2025-12-15","opponent":"C"}]`,
	}}
	svc := newTestService(ai)

	var lines []string
	res, err := svc.Search(context.Background(), SearchQuery{
		SearchType: "details", TeamName: "Smashers",
	}, collect(&lines))
	require.NoError(t, err)
	assert.Empty(t, res.Matches)

	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "[Flow Complete] Returning 0 validated matches.")
}

func TestSearch_LinkModeOmitsFallbackTeam(t *testing.T) {
	ai := &fakeAI{searchRes: gemini.SearchResult{
		Text: `[{"date":"2025-12-06","opponent":"Titans"}]`,
	}}
	svc := newTestService(ai)

	res, err := svc.Search(context.Background(), SearchQuery{
		SearchType: "link", TeamLink: "https://example.com/team/42",
	}, nil)
	require.NoError(t, err)
	require.Len(t, res.Matches, 1)
	assert.Empty(t, res.Matches[0].HomeTeam)
	assert.Contains(t, ai.lastPrompt, "https://example.com/team/42")
}

func TestSearch_QuotaErrorSurfacesQuotaMessage(t *testing.T) {
	ai := &fakeAI{searchErr: gemini.Classify(errors.New("googleapi: Error 429: RESOURCE_EXHAUSTED"))}
	svc := newTestService(ai)

	var lines []string
	_, err := svc.Search(context.Background(), SearchQuery{
		SearchType: "details", TeamName: "Smashers",
	}, collect(&lines))
	require.Error(t, err)
	assert.Equal(t, "AI quota exceeded. Please wait 1-2 minutes before trying again.", gemini.UserMessage(err))

	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "[Critical Error] AI quota exceeded")
}

func TestSearch_UnparseableReplyIsZeroMatchesNotError(t *testing.T) {
	ai := &fakeAI{searchRes: gemini.SearchResult{
		Text: "I could not find any scheduled matches for this team.",
	}}
	svc := newTestService(ai)

	var lines []string
	res, err := svc.Search(context.Background(), SearchQuery{
		SearchType: "details", TeamName: "Smashers",
	}, collect(&lines))
	require.NoError(t, err)
	assert.Empty(t, res.Matches)
	assert.Contains(t, strings.Join(lines, "\n"), "no JSON array found")
}

func TestSearch_FlowLinesInOrder(t *testing.T) {
	ai := &fakeAI{searchRes: gemini.SearchResult{
		Text:      `[{"date":"2025-12-06","opponent":"Titans","venue":"Oval Ground"}]`,
		Citations: []gemini.Citation{{Title: "Source", URI: "https://example.com"}},
	}}
	svc := newTestService(ai)

	var lines []string
	_, err := svc.Search(context.Background(), SearchQuery{
		SearchType: "details", TeamName: "Smashers", Location: "Mumbai",
	}, collect(&lines))
	require.NoError(t, err)

	want := []string{
		"[Flow Start]",
		"[Step 1]",
		"[Step 2]",
		"[Step 3]",
		"[Step 4]",
		"[Step 5]",
		"[Step 6]",
		"[Flow Complete]",
	}
	i := 0
	for _, line := range lines {
		if i < len(want) && strings.Contains(line, want[i]) {
			i++
		}
	}
	assert.Equal(t, len(want), i, "flow markers out of order or missing: %v", lines)
}

func TestText_ExtractsWithoutWindowFilter(t *testing.T) {
	// A date far outside the current week survives text mode.
	ai := &fakeAI{textRes: "```json\n[{\"date\":\"2026-03-15\",\"opponent\":\"Titans\"}]\n```"}
	svc := newTestService(ai)

	res, err := svc.Text(context.Background(), "Sun 15 Mar vs Titans", nil)
	require.NoError(t, err)
	require.Len(t, res.Matches, 1)
	assert.Equal(t, "Titans", res.Matches[0].Opponent)
	assert.True(t, res.Matches[0].Selected)
	assert.Equal(t, "fast-model", ai.lastModel)
	assert.Contains(t, ai.lastPrompt, "Sun 15 Mar vs Titans")
}

func TestText_ErrorPassesThrough(t *testing.T) {
	ai := &fakeAI{textErr: gemini.Classify(errors.New("503 UNAVAILABLE: model overloaded"))}
	svc := newTestService(ai)

	_, err := svc.Text(context.Background(), "anything", nil)
	require.Error(t, err)
	assert.Equal(t, "AI service overloaded. Please try again in a moment.", gemini.UserMessage(err))
}

func TestImage_ForwardsBytesAndMime(t *testing.T) {
	ai := &fakeAI{textRes: `[{"date":"2025-12-07","opponent":"Strikers"}]`}
	svc := newTestService(ai)

	img := []byte{0x89, 0x50, 0x4e, 0x47}
	res, err := svc.Image(context.Background(), img, "image/png", nil)
	require.NoError(t, err)
	require.Len(t, res.Matches, 1)
	assert.Equal(t, img, ai.lastImage)
	assert.Equal(t, "image/png", ai.lastMime)
	assert.Equal(t, "fast-model", ai.lastModel)
}

func TestLogRaw_TruncatesLongReplies(t *testing.T) {
	var lines []string
	logRaw(collect(&lines), strings.Repeat("x", 600))
	require.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(lines[1], "... (truncated)"))
	assert.Len(t, lines[1], 500+len("... (truncated)"))
}
