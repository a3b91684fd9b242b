package extract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/nrao/cricsync/internal/fixtures"
)

var (
	fencedJSON = regexp.MustCompile("(?s)```json\\s*(.*?)```")
	bareArray  = regexp.MustCompile(`(?s)\[.*\]`)
)

// ParseRecords pulls the first JSON array out of a model response, either
// inside a ```json fence or bare. A missing or malformed array is an
// error the caller treats as zero records, never as a hard failure.
func ParseRecords(text string) ([]fixtures.RawMatch, error) {
	var payload string
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		payload = m[1]
	} else if m := bareArray.FindString(text); m != "" {
		payload = m
	} else {
		return nil, fmt.Errorf("no JSON array found in response")
	}

	var out []fixtures.RawMatch
	if err := json.Unmarshal([]byte(strings.TrimSpace(payload)), &out); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}
	return out, nil
}
