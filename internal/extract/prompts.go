package extract

import "fmt"

const jsonFence = "```"

// searchPrompt asks for all upcoming fixtures without date filtering; the
// window filter runs locally afterwards. The JSON field list is the wire
// contract consumed by ParseRecords.
func searchPrompt(searchContext string) string {
	return fmt.Sprintf(`You can access web pages. Fetch this info: %s

Task: Extract **only the upcoming matches** for the team (do not include past or completed matches).

Instructions:
1. Find the list of upcoming matches or fixtures for this team.
2. IGNORE "Completed", "Results", or "Past" matches.
3. EXTRACT ALL UPCOMING MATCHES listed on the page. Do not filter them by date yet. I will filter them in the next step.
4. TIMEZONE: Convert all match times to **Indian Standard Time (IST)**.

For each upcoming match return a JSON array where each item has these fields:
- "date": string (YYYY-MM-DD, assume current year if missing)
- "time": string (HH:mm AM/PM). Ensure this is in IST. If strictly not available, use "TBD".
- "home_team": string (Name of the team being searched for)
- "opponent": string (Opponent team name)
- "venue": string (Venue name and city)
- "match_url": string (The specific URL for this match/scorecard if available)

OUTPUT FORMAT:
Return a JSON array of objects inside a markdown code block (e.g., %sjson [...] %s).`,
		searchContext, jsonFence, jsonFence)
}

func textPrompt(input string) string {
	return fmt.Sprintf(`Extract cricket match details from this text: "%s". Return JSON array with date (YYYY-MM-DD), time (IST), home_team, opponent, venue. Output JSON inside %sjson%s block.`,
		input, jsonFence, jsonFence)
}

func imagePrompt() string {
	return fmt.Sprintf(`Extract cricket match details from this image. Return JSON array with date (YYYY-MM-DD), time (IST), home_team, opponent, venue. Output JSON inside %sjson%s block.`,
		jsonFence, jsonFence)
}
