package fixtures

import (
	"strings"
	"testing"
)

func TestMapLink_DegenerateVenues(t *testing.T) {
	for _, v := range []string{"", "TBD", "tbd", "Tbd", "Unknown Ground", "venue unknown"} {
		if got := MapLink(v, ""); got != "" {
			t.Errorf("MapLink(%q) = %q, want empty", v, got)
		}
	}
}

func TestMapLink_StripsDirectionalQualifiers(t *testing.T) {
	cases := []string{
		"Oval Ground (Near Metro Station)",
		"Oval Ground (behind the mall)",
		"Oval Ground (opp City Hospital)",
		"Oval Ground (opposite City Hospital)",
		"Oval Ground (next to the lake)",
	}
	for _, v := range cases {
		got := MapLink(v, "")
		if got == "" {
			t.Fatalf("MapLink(%q) unexpectedly empty", v)
		}
		if strings.Contains(got, "Metro") || strings.Contains(got, "mall") ||
			strings.Contains(got, "Hospital") || strings.Contains(got, "lake") {
			t.Errorf("MapLink(%q) = %q, qualifier not stripped", v, got)
		}
		if !strings.Contains(got, "Oval+Ground") {
			t.Errorf("MapLink(%q) = %q, venue missing", v, got)
		}
	}
}

func TestMapLink_KeepsOtherParentheticals(t *testing.T) {
	got := MapLink("Eden Gardens (Gate 3)", "")
	if !strings.Contains(got, "Gate+3") {
		t.Errorf("non-directional parenthetical should survive: %q", got)
	}
}

func TestMapLink_AppendsContextLocation(t *testing.T) {
	got := MapLink("Oval Ground", "Mumbai")
	if !strings.Contains(got, "Oval+Ground%2C+Mumbai") {
		t.Errorf("context location not appended: %q", got)
	}
}

func TestMapLink_SkipsContextWhenAlreadyPresent(t *testing.T) {
	got := MapLink("Oval Ground, Mumbai", "mumbai")
	if strings.Count(strings.ToLower(got), "mumbai") != 1 {
		t.Errorf("context location duplicated: %q", got)
	}
}

func TestMapLink_Deterministic(t *testing.T) {
	a := MapLink("Oval Ground (near gate)", "Pune")
	b := MapLink("Oval Ground (near gate)", "Pune")
	assertEq(t, a, b)
}
