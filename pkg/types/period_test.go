package types

import (
	"errors"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		in    string
		canon string
		label string
		token string
	}{
		{"30/11/2025", "30/11/2025", "NOV/25", "NOV-25"},
		{"01/02/2024", "29/02/2024", "FEV/24", "FEV-24"},
		{"28/02/2025", "28/02/2025", "FEV/25", "FEV-25"},
		{"31/12/2009", "31/12/2009", "DEZ/09", "DEZ-09"},
	}
	for _, tt := range tests {
		p, err := ParsePeriod(tt.in)
		if err != nil {
			t.Fatalf("ParsePeriod(%q): %v", tt.in, err)
		}
		if got := p.String(); got != tt.canon {
			t.Errorf("String() = %q, want %q", got, tt.canon)
		}
		if got := p.Label(); got != tt.label {
			t.Errorf("Label() = %q, want %q", got, tt.label)
		}
		if got := p.Token(); got != tt.token {
			t.Errorf("Token() = %q, want %q", got, tt.token)
		}
	}
}

func TestParsePeriod_Invalid(t *testing.T) {
	for _, in := range []string{"", "2025-11-30", "31/11/2025", "11/2025"} {
		if _, err := ParsePeriod(in); !errors.Is(err, ErrInvalidPeriod) {
			t.Errorf("ParsePeriod(%q) error = %v, want ErrInvalidPeriod", in, err)
		}
	}
}

func TestDefaultPeriod(t *testing.T) {
	now := time.Date(2026, time.January, 15, 10, 0, 0, 0, time.UTC)
	got := DefaultPeriod(now)
	if got.Year != 2025 || got.Month != time.December {
		t.Errorf("DefaultPeriod = %+v, want 2025-12", got)
	}
}

func TestPeriodsOfYear(t *testing.T) {
	ps := PeriodsOfYear(2025)
	if len(ps) != 12 {
		t.Fatalf("got %d periods, want 12", len(ps))
	}
	if ps[0].String() != "31/01/2025" || ps[1].String() != "28/02/2025" {
		t.Errorf("unexpected first periods: %s %s", ps[0], ps[1])
	}
	for i := 1; i < len(ps); i++ {
		if !ps[i-1].Before(ps[i]) {
			t.Errorf("%s should be before %s", ps[i-1], ps[i])
		}
	}
}

func TestProperty_PeriodCanonicalRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("canonical text parses back to the same month", prop.ForAll(
		func(year, month, day int) bool {
			d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
			p := PeriodOf(d)
			back, err := ParsePeriod(p.String())
			if err != nil {
				return false
			}
			return back == p && back.LastDay().AddDate(0, 0, 1).Day() == 1
		},
		gen.IntRange(2000, 2099),
		gen.IntRange(1, 12),
		gen.IntRange(1, 28),
	))

	properties.TestingRun(t)
}

func TestParseOrigin(t *testing.T) {
	tests := map[string]Origin{
		"ADMINISTRAÇÃO": OriginAdministration,
		"adm":           OriginAdministration,
		"SUPRIMENTOS":   OriginSupplies,
		"sup":           OriginSupplies,
	}
	for in, want := range tests {
		got, err := ParseOrigin(in)
		if err != nil || got != want {
			t.Errorf("ParseOrigin(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseOrigin("outro"); !errors.Is(err, ErrInvalidOrigin) {
		t.Errorf("expected ErrInvalidOrigin, got %v", err)
	}
	if OriginSupplies.Collection() != "avaliacoes" || OriginAdministration.Collection() != "avaliacoes_adm" {
		t.Error("unexpected collection mapping")
	}
}

func TestScore(t *testing.T) {
	for answer, want := range map[string]int{AnswerFully: 3, AnswerPartially: 2, AnswerNot: 1, AnswerNotApplicable: 0} {
		got, ok := Score(answer)
		if !ok || got != want {
			t.Errorf("Score(%q) = %d, %v; want %d", answer, got, ok, want)
		}
	}
	if _, ok := Score("talvez"); ok {
		t.Error("unknown answer should not score")
	}
}

func TestSubmissionKey_Normalized(t *testing.T) {
	k := SubmissionKey{Supplier: " Acme ", Unit: "CSA-BH\t", Period: "30/11/2025", Origin: OriginAdministration}
	got := k.Normalized()
	want := SubmissionKey{Supplier: "Acme", Unit: "CSA-BH", Period: "30/11/2025", Origin: OriginAdministration}
	if got != want {
		t.Errorf("Normalized = %+v, want %+v", got, want)
	}
	if NormalizeName("  Beta Ltda ") != "Beta Ltda" {
		t.Errorf("NormalizeName kept the padding")
	}
}
