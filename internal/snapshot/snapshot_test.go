package snapshot

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/planifica/internal/model"
)

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func sampleState() model.PlanState {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return model.PlanState{
		PlanID:          "0d9c",
		PerPeriodTarget: decimal.RequireFromString("2500"),
		TotalTarget:     decimal.RequireFromString("15000"),
		Periods: []model.Period{
			{Index: 1, SavedAmount: decimal.RequireFromString("2500")},
			{Index: 2, SavedAmount: decimal.RequireFromString("120.5"), Evidence: &model.Evidence{
				Name: "r.pdf", Ref: "sha256:ab", MediaType: "application/pdf", SizeBytes: 10, AttachedAt: at,
			}},
		},
		PeriodCount: 2,
		UpdatedAt:   at,
	}
}

func TestRoundTrip(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(f), func(t *testing.T) {
			want := sampleState()
			var buf bytes.Buffer
			if err := Encode(&buf, want, f); err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if !strings.Contains(buf.String(), "120.50") {
				t.Errorf("amounts not written with two decimals:\n%s", buf.String())
			}
			got, err := Decode(&buf, f)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if diff := cmp.Diff(want, got, decimalEqual); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecode_AcceptsBareNumbers(t *testing.T) {
	in := `{"version":1,"per_period_target":2500,"total_target":"5,000","period_count":2,
		"periods":[{"index":1,"saved_amount":12.5},{"index":2,"saved_amount":"bogus"}]}`
	s, err := Decode(strings.NewReader(in), FormatJSON)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !s.PerPeriodTarget.Equal(decimal.NewFromInt(2500)) || !s.TotalTarget.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("targets = %s/%s", s.PerPeriodTarget, s.TotalTarget)
	}
	if !s.Periods[0].SavedAmount.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("period 1 = %s, want 12.5", s.Periods[0].SavedAmount)
	}
	if !s.Periods[1].SavedAmount.IsZero() {
		t.Errorf("invalid amount decoded as %s, want 0", s.Periods[1].SavedAmount)
	}
}

func TestDecode_YAMLNumbers(t *testing.T) {
	in := "version: 1\nper_period_target: 100\ntotal_target: 200\nperiods:\n  - index: 1\n    saved_amount: 50\n"
	s, err := Decode(strings.NewReader(in), FormatYAML)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(s.Periods) != 1 || !s.Periods[0].SavedAmount.Equal(decimal.NewFromInt(50)) {
		t.Errorf("periods = %+v", s.Periods)
	}
}

func TestDecode_RejectsNewerVersion(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"version":99}`), FormatJSON)
	if err == nil {
		t.Fatal("Decode accepted a newer snapshot version")
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatJSON, "JSON": FormatJSON, "yml": FormatYAML, "yaml": FormatYAML} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) returned nil error")
	}
	if FormatForPath("plan.YML") != FormatYAML || FormatForPath("plan.json") != FormatJSON {
		t.Error("FormatForPath picked the wrong format")
	}
}
