// Package report aggregates evaluation records into dashboard figures.
package report

import (
	"context"
	"sort"

	"github.com/avaliafor/avaliafor/pkg/types"
)

// Reader is the evaluation read path used by the dashboard.
type Reader interface {
	ReadAll(ctx context.Context, origin *types.Origin) ([]types.Record, error)
}

// Filter narrows the records. An empty list matches everything.
type Filter struct {
	Origin    *types.Origin
	Periods   []string
	Units     []string
	Suppliers []string
}

// SupplierScore is the mean score of one supplier.
type SupplierScore struct {
	Supplier string  `json:"supplier"`
	Mean     float64 `json:"mean"`
	Answers  int     `json:"answers"`
}

// AnswerCount counts one answer option.
type AnswerCount struct {
	Answer   string `json:"answer"`
	Supplier string `json:"supplier,omitempty"`
	Count    int    `json:"count"`
}

// PeriodScore is the mean score of a supplier in one period.
type PeriodScore struct {
	Period   string  `json:"period"`
	Label    string  `json:"label"`
	Supplier string  `json:"supplier"`
	Mean     float64 `json:"mean"`
}

// Options are the filter values present in the unfiltered data.
type Options struct {
	Periods   []string `json:"periods"`
	Units     []string `json:"units"`
	Suppliers []string `json:"suppliers"`
}

// Dashboard holds every aggregate shown on the dashboard.
type Dashboard struct {
	Records        int             `json:"records"`
	Scores         []SupplierScore `json:"scores"`
	Distribution   []AnswerCount   `json:"distribution"`
	BySupplier     []AnswerCount   `json:"by_supplier"`
	Evolution      []PeriodScore   `json:"evolution"`
	Options        Options         `json:"options"`
	FilteredOrigin *types.Origin   `json:"origin,omitempty"`
}

// Service builds dashboards from stored evaluations.
type Service struct {
	reader Reader
}

// NewService creates a dashboard service over r.
func NewService(r Reader) *Service {
	return &Service{reader: r}
}

// Dashboard reads the records selected by f.Origin and aggregates them.
func (s *Service) Dashboard(ctx context.Context, f Filter) (*Dashboard, error) {
	records, err := s.reader.ReadAll(ctx, f.Origin)
	if err != nil {
		return nil, err
	}
	d := Build(records, f)
	d.FilteredOrigin = f.Origin
	return d, nil
}

// Build aggregates records. Scores use the 3/2/1/0 answer mapping;
// suppliers whose mean is not above zero are left out of Scores, and
// unknown answers are ignored by every score.
func Build(records []types.Record, f Filter) *Dashboard {
	d := &Dashboard{Options: options(records)}
	periods, units, suppliers := set(f.Periods), set(f.Units), set(f.Suppliers)

	type acc struct {
		sum, n int
	}
	bySupplier := make(map[string]*acc)
	byPeriod := make(map[[2]string]*acc)
	answers := make(map[string]int)
	answersBySupplier := make(map[[2]string]int)

	for _, r := range records {
		if !match(periods, r.Period) || !match(units, r.Unit) || !match(suppliers, r.Supplier) {
			continue
		}
		d.Records++
		answers[r.Answer]++
		answersBySupplier[[2]string{r.Answer, r.Supplier}]++

		score, ok := types.Score(r.Answer)
		if !ok {
			continue
		}
		if bySupplier[r.Supplier] == nil {
			bySupplier[r.Supplier] = &acc{}
		}
		bySupplier[r.Supplier].sum += score
		bySupplier[r.Supplier].n++

		k := [2]string{r.Period, r.Supplier}
		if byPeriod[k] == nil {
			byPeriod[k] = &acc{}
		}
		byPeriod[k].sum += score
		byPeriod[k].n++
	}

	for supplier, a := range bySupplier {
		mean := float64(a.sum) / float64(a.n)
		if mean <= 0 {
			continue
		}
		d.Scores = append(d.Scores, SupplierScore{Supplier: supplier, Mean: mean, Answers: a.n})
	}
	sort.Slice(d.Scores, func(i, j int) bool {
		if d.Scores[i].Mean != d.Scores[j].Mean {
			return d.Scores[i].Mean > d.Scores[j].Mean
		}
		return d.Scores[i].Supplier < d.Scores[j].Supplier
	})

	for _, opt := range types.AnswerOptions() {
		if n := answers[opt]; n > 0 {
			d.Distribution = append(d.Distribution, AnswerCount{Answer: opt, Count: n})
		}
	}
	for k, n := range answersBySupplier {
		d.BySupplier = append(d.BySupplier, AnswerCount{Answer: k[0], Supplier: k[1], Count: n})
	}
	sort.Slice(d.BySupplier, func(i, j int) bool {
		a, b := d.BySupplier[i], d.BySupplier[j]
		if a.Supplier != b.Supplier {
			return a.Supplier < b.Supplier
		}
		return answerRank(a.Answer) < answerRank(b.Answer)
	})

	for k, a := range byPeriod {
		ps := PeriodScore{Period: k[0], Supplier: k[1], Mean: float64(a.sum) / float64(a.n)}
		if p, err := types.ParsePeriod(k[0]); err == nil {
			ps.Label = p.Label()
		}
		d.Evolution = append(d.Evolution, ps)
	}
	sort.Slice(d.Evolution, func(i, j int) bool {
		a, b := d.Evolution[i], d.Evolution[j]
		if a.Period != b.Period {
			return periodBefore(a.Period, b.Period)
		}
		return a.Supplier < b.Supplier
	})
	return d
}

// periodBefore orders periods chronologically; unparsable ones sort last.
func periodBefore(a, b string) bool {
	pa, errA := types.ParsePeriod(a)
	pb, errB := types.ParsePeriod(b)
	switch {
	case errA != nil && errB != nil:
		return a < b
	case errA != nil:
		return false
	case errB != nil:
		return true
	}
	return pa.Before(pb)
}

func answerRank(answer string) int {
	for i, opt := range types.AnswerOptions() {
		if opt == answer {
			return i
		}
	}
	return len(types.AnswerOptions())
}

func options(records []types.Record) Options {
	periods, units, suppliers := map[string]bool{}, map[string]bool{}, map[string]bool{}
	for _, r := range records {
		periods[r.Period] = true
		units[r.Unit] = true
		suppliers[r.Supplier] = true
	}
	o := Options{Periods: keys(periods), Units: keys(units), Suppliers: keys(suppliers)}
	sort.SliceStable(o.Periods, func(i, j int) bool { return periodBefore(o.Periods[i], o.Periods[j]) })
	return o
}

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func set(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	m := make(map[string]bool, len(values))
	for _, v := range values {
		m[v] = true
	}
	return m
}

func match(m map[string]bool, v string) bool {
	return m == nil || m[v]
}
