package gemini

import (
	"errors"
	"strings"
)

// Kind classifies a collaborator failure for user-facing messaging.
type Kind int

const (
	KindUnknown Kind = iota
	KindQuota
	KindOverloaded
)

// Error wraps a raw API failure with its category. No retries happen
// anywhere in this package; retry is a user action.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// UserMessage is the short guidance shown to the user for this failure.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindQuota:
		return "AI quota exceeded. Please wait 1-2 minutes before trying again."
	case KindOverloaded:
		return "AI service overloaded. Please try again in a moment."
	default:
		return "An error occurred while processing. Please try again."
	}
}

// Classify wraps an API error with its failure category, matching on the
// error text the way the service surfaces these conditions.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	s := err.Error()
	lower := strings.ToLower(s)
	switch {
	case strings.Contains(s, "429"), strings.Contains(s, "RESOURCE_EXHAUSTED"), strings.Contains(lower, "quota"):
		return &Error{Kind: KindQuota, Err: err}
	case strings.Contains(s, "503"), strings.Contains(s, "UNAVAILABLE"), strings.Contains(lower, "overloaded"):
		return &Error{Kind: KindOverloaded, Err: err}
	default:
		return &Error{Kind: KindUnknown, Err: err}
	}
}

// UserMessage resolves the user-facing text for any error coming back from
// this package, falling back to the generic retry prompt.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.UserMessage()
	}
	return (&Error{Kind: KindUnknown, Err: err}).UserMessage()
}
