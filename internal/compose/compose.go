package compose

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nrao/cricsync/internal/config"
	"github.com/nrao/cricsync/internal/fixtures"
)

// Collaborator is the slice of the AI client content generation needs.
type Collaborator interface {
	GenerateText(ctx context.Context, model, prompt string) (string, error)
	GenerateImage(ctx context.Context, model, prompt, aspectRatio string) ([]byte, string, error)
}

// Options parameterize the WhatsApp availability message. Empty fields
// fall back to explicit placeholder tokens in the template.
type Options struct {
	Fees      string `json:"fees"`
	PayTo     string `json:"pay_to"`
	BallColor string `json:"ball_color"`
	Header    string `json:"header"`
}

// InstagramOptions select the content type and tone.
type InstagramOptions struct {
	// Type is "caption" or "story".
	Type string `json:"type"`
	// Vibe is "hype", "serious" or "fun".
	Vibe string `json:"vibe"`
}

// Composer builds generation requests from the selected matches and
// forwards them to the collaborator. Every method is a no-op returning ""
// when no match is selected.
type Composer struct {
	ai     Collaborator
	models config.Models
}

func NewComposer(ai Collaborator, models config.Models) *Composer {
	return &Composer{ai: ai, models: models}
}

func selectedOf(matches []fixtures.Match) []fixtures.Match {
	var out []fixtures.Match
	for _, m := range matches {
		if m.Selected {
			out = append(out, m)
		}
	}
	return out
}

// WhatsApp composes the availability message for the selected matches.
// The contract here is the completeness and fixed order of the template
// fields, not the wording of the output.
func (c *Composer) WhatsApp(ctx context.Context, matches []fixtures.Match, notes string, opts Options) (string, error) {
	selected := selectedOf(matches)
	if len(selected) == 0 {
		return "", nil
	}

	header := opts.Header
	if header == "" {
		header = "Upcoming Match"
	}
	ballColor := opts.BallColor
	if ballColor == "" {
		ballColor = "White"
	}
	fees := opts.Fees
	if fees == "" {
		fees = "[Amount]"
	}
	payTo := opts.PayTo
	if payTo == "" {
		payTo = "[Number]"
	}

	data, err := json.Marshal(selected)
	if err != nil {
		return "", fmt.Errorf("marshal matches: %w", err)
	}

	prompt := fmt.Sprintf(`Create a WhatsApp availability message for a cricket team following this EXACT template structure:

%s
Date - [Date in format: 6th Dec Saturday]
Reporting Time - [30 mins before match time]
Ball - %s
Match fees - %s
Pay to - %s
Venue - [Venue Name] [Google Map Link]

Availability Pool
1.
2.
3.
4.
5.
6.
7.
8.
9.
10.
11.

Instructions:
- Use the match data provided below to fill in the Date, Time, and Venue.
- Match Data: %s
- Extra Notes: %s
- IMPORTANT: Date format must be like "6th Dec Saturday" (Day of month + Month Short + Day Name).
- IMPORTANT: Ensure times are mentioned in IST (Indian Standard Time).
- If there are multiple matches selected, repeat the match details section (Date/Time/Venue) or summarize them if it's the same day.
- For the "Venue" line, explicitly include the URL from the 'mapLink' field in the data next to the venue name (separated by space).
- Leave the numbered list under "Availability Pool" empty (or with placeholder numbering 1-11) for players to fill in.
- Do NOT include markdown symbols like ** or ##. Keep it clean plain text.
- If "Match fees" or "Pay to" were not provided, keep the placeholders as shown.`,
		header, ballColor, fees, payTo, string(data), notes)

	return c.ai.GenerateText(ctx, c.models.Fast, prompt)
}

// Instagram composes a caption or a story overlay for the selected matches.
func (c *Composer) Instagram(ctx context.Context, matches []fixtures.Match, opts InstagramOptions) (string, error) {
	selected := selectedOf(matches)
	if len(selected) == 0 {
		return "", nil
	}

	kind := "text for an Instagram Story overlay"
	if opts.Type == "caption" {
		kind = "an Instagram Caption (with 10-15 relevant hashtags)"
	}

	data, err := json.Marshal(selected)
	if err != nil {
		return "", fmt.Errorf("marshal matches: %w", err)
	}

	prompt := fmt.Sprintf(`You are a social media manager for a cricket team.
Generate %s for the upcoming match.

Match Details: %s
Vibe: %s

Instructions:
- Ensure times are mentioned in IST (Indian Standard Time).
- If 'caption': Write a catchy hook, list the match details clearly (Date, Time, Venue, Opponent), and end with a Call to Action (e.g., "Cheer for us!"). Include cricket emojis.
- If 'story': Keep it very short and punchy. Focus on "Next Match", "vs Opponent", and "Time/Venue". Designed to be placed on a photo.
- Do not use markdown formatting like **bold** if it makes the text look messy when pasted directly.`,
		kind, string(data), opts.Vibe)

	return c.ai.GenerateText(ctx, c.models.Fast, prompt)
}

// Poster asks the image model for a 9:16 match-day poster for the first
// selected match and returns it as a data URI. An empty result (no image
// part in the reply) is "" with no error; the caller shows a retry hint.
func (c *Composer) Poster(ctx context.Context, matches []fixtures.Match) (string, error) {
	selected := selectedOf(matches)
	if len(selected) == 0 {
		return "", nil
	}
	m := selected[0]

	home := m.HomeTeam
	if home == "" {
		home = "My Team"
	}
	venue := strings.TrimSpace(strings.SplitN(m.Venue, ",", 2)[0])

	prompt := fmt.Sprintf(`Generate a professional, high-quality 9:16 vertical poster for a cricket match for Instagram Story.

Theme: Cricket, Sports, Energy, Stadium Atmosphere.

Visual Elements:
- Background: A lit cricket stadium at night or a dynamic cricket ground.
- Style: Modern sports graphic design, 3D style, vibrant lighting.
- Focus: A "VERSUS" concept.

Text Integration (Render this text in the image):
- "%s"
- "VS"
- "%s"
- "%s"
- "%s"

Make it look like an official match day poster. Return only the image.`,
		home, m.Opponent, m.Date, venue)

	data, mimeType, err := c.ai.GenerateImage(ctx, c.models.Image, prompt, "9:16")
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", nil
	}
	if mimeType == "" {
		mimeType = "image/png"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
