package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecords_FencedJSON(t *testing.T) {
	text := "Here are the matches:\n```json\n[{\"opponent\":\"Titans\",\"date\":\"2025-12-06\"}]\n```\nDone."
	got, err := ParseRecords(text)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Titans", got[0].Opponent)
	assert.Equal(t, "2025-12-06", got[0].Date)
}

func TestParseRecords_BareArray(t *testing.T) {
	text := `The fixtures are [{"opponent":"Strikers","venue":"Oval Ground"}] as requested.`
	got, err := ParseRecords(text)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Strikers", got[0].Opponent)
	assert.Equal(t, "Oval Ground", got[0].Venue)
}

func TestParseRecords_FencePreferredOverBareArray(t *testing.T) {
	text := "```json\n[{\"opponent\":\"A\"}]\n```\nIgnore [{\"opponent\":\"B\"}] too."
	got, err := ParseRecords(text)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Opponent)
}

func TestParseRecords_SnakeCaseFields(t *testing.T) {
	text := `[{"home_team":"Smashers","opponent":"Titans","match_url":"https://example.com/1"}]`
	got, err := ParseRecords(text)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Smashers", got[0].HomeTeam)
	assert.Equal(t, "https://example.com/1", got[0].MatchURL)
}

func TestParseRecords_EmptyArray(t *testing.T) {
	got, err := ParseRecords("[]")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseRecords_NoArray(t *testing.T) {
	_, err := ParseRecords("I could not find any upcoming matches for this team.")
	assert.Error(t, err)
}

func TestParseRecords_MalformedJSON(t *testing.T) {
	_, err := ParseRecords("```json\n[{\"opponent\": }]\n```")
	assert.Error(t, err)
}
