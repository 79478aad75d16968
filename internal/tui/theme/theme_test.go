package theme

import "testing"

func TestByName_FallsBackToDefault(t *testing.T) {
	if got := ByName("no-such-theme"); got.Name != FlexokiDark.Name {
		t.Errorf("ByName(unknown) = %q, want %q", got.Name, FlexokiDark.Name)
	}
	if got := ByName("tokyo-night"); got.Name != "tokyo-night" {
		t.Errorf("ByName(tokyo-night) = %q", got.Name)
	}
}

func TestSetActive(t *testing.T) {
	defer SetActive(FlexokiDark.Name)

	SetActive("terminal")
	if Active.Name != "terminal" {
		t.Errorf("Active = %q, want terminal", Active.Name)
	}
}

func TestNamesMatchExists(t *testing.T) {
	names := Names()
	if len(names) != len(All) {
		t.Fatalf("Names() = %d entries, want %d", len(names), len(All))
	}
	for _, n := range names {
		if !Exists(n) {
			t.Errorf("Exists(%q) = false", n)
		}
	}
	if Exists("neon") {
		t.Error("Exists(neon) = true")
	}
}

func TestSchemeTheme_MapsRoles(t *testing.T) {
	th := Scheme{
		Name:     "test",
		Neutrals: [8]string{"0", "1", "2", "3", "4", "5", "6", "7"},
		Accent:   "a",
		Green:    "g",
	}.Theme()

	if th.Background != "0" || th.Surface != "1" || th.TextPrimary != "7" {
		t.Errorf("neutrals mapped to %q %q %q", th.Background, th.Surface, th.TextPrimary)
	}
	if th.BorderAccent != th.Accent {
		t.Errorf("BorderAccent = %q, want the accent %q", th.BorderAccent, th.Accent)
	}
	if th.Green != "g" {
		t.Errorf("Green = %q, want g", th.Green)
	}
}

func TestLightThemeHasLightBackground(t *testing.T) {
	if FlexokiLight.Background == FlexokiDark.Background {
		t.Error("light and dark themes share a background")
	}
	if FlexokiLight.TextPrimary != FlexokiDark.Background {
		t.Errorf("light TextPrimary = %q, want the dark ink %q", FlexokiLight.TextPrimary, FlexokiDark.Background)
	}
}
