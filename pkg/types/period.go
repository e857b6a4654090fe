package types

import (
	"fmt"
	"strings"
	"time"
)

// monthAbbrev is the Portuguese month table used in labels and file names.
var monthAbbrev = [12]string{"JAN", "FEV", "MAR", "ABR", "MAI", "JUN", "JUL", "AGO", "SET", "OUT", "NOV", "DEZ"}

// PeriodLayout is the canonical DD/MM/YYYY text form.
const PeriodLayout = "02/01/2006"

// Period is a calendar month. Its canonical form is the month's last day.
type Period struct {
	Year  int
	Month time.Month
}

// ParsePeriod parses a DD/MM/YYYY date and returns the month it falls in.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse(PeriodLayout, strings.TrimSpace(s))
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	return PeriodOf(t), nil
}

// PeriodOf returns the month containing t.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// DefaultPeriod is the month preceding now, preselected for new evaluations.
func DefaultPeriod(now time.Time) Period {
	return PeriodOf(now).Previous()
}

// PeriodsOfYear lists the twelve periods of a year in order.
func PeriodsOfYear(year int) []Period {
	out := make([]Period, 0, 12)
	for m := time.January; m <= time.December; m++ {
		out = append(out, Period{Year: year, Month: m})
	}
	return out
}

// LastDay returns the last calendar day of the month at midnight UTC.
func (p Period) LastDay() time.Time {
	return time.Date(p.Year, p.Month+1, 0, 0, 0, 0, 0, time.UTC)
}

// String returns the canonical DD/MM/YYYY form.
func (p Period) String() string {
	return p.LastDay().Format(PeriodLayout)
}

// Label returns the display form, e.g. NOV/25.
func (p Period) Label() string {
	return fmt.Sprintf("%s/%02d", p.abbrev(), p.Year%100)
}

// Token returns the file-name form, e.g. NOV-25.
func (p Period) Token() string {
	return fmt.Sprintf("%s-%02d", p.abbrev(), p.Year%100)
}

// Previous returns the preceding month.
func (p Period) Previous() Period {
	return PeriodOf(time.Date(p.Year, p.Month-1, 1, 0, 0, 0, 0, time.UTC))
}

// Before reports whether p is earlier than q.
func (p Period) Before(q Period) bool {
	if p.Year != q.Year {
		return p.Year < q.Year
	}
	return p.Month < q.Month
}

func (p Period) abbrev() string {
	return monthAbbrev[p.Month-1]
}
