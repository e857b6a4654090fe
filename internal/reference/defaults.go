package reference

import (
	"fmt"
	"sort"

	"github.com/spaolacci/murmur3"

	"github.com/avaliafor/avaliafor/pkg/types"
)

type supplierSeed struct {
	name  string
	units []string
}

type questionSeed struct {
	supplier string
	category types.Category
	texts    []string
}

// DefaultUnits returns a copy of the built-in unit list.
func DefaultUnits() []string {
	return append([]string(nil), defaultUnits...)
}

// DefaultSuppliers returns a copy of the built-in supplier → units mapping.
func DefaultSuppliers() map[string][]string {
	out := make(map[string][]string, len(defaultSuppliers))
	for _, s := range defaultSuppliers {
		out[s.name] = append([]string{}, s.units...)
	}
	return out
}

// DefaultQuestions returns a copy of the built-in questionnaire.
func DefaultQuestions() map[string]map[types.Category][]string {
	out := make(map[string]map[types.Category][]string)
	for _, q := range defaultQuestions {
		if out[q.supplier] == nil {
			out[q.supplier] = make(map[types.Category][]string)
		}
		out[q.supplier][q.category] = append([]string(nil), q.texts...)
	}
	return out
}

// defaultQuestionList flattens the questionnaire into Question values with
// deterministic ids, so reseeding yields identical identifiers.
func defaultQuestionList() []Question {
	var out []Question
	for _, q := range defaultQuestions {
		for i, text := range q.texts {
			out = append(out, Question{
				ID:       seedQuestionID(q.supplier, q.category, i, text),
				Supplier: q.supplier,
				Category: q.category,
				Text:     text,
				Order:    int64(i),
			})
		}
	}
	return out
}

func seedQuestionID(supplier string, category types.Category, order int, text string) string {
	key := fmt.Sprintf("%s\x00%s\x00%d\x00%s", supplier, category, order, text)
	return fmt.Sprintf("q-%016x", murmur3.Sum64([]byte(key)))
}

// suppliersServing lists the sorted supplier names from m that serve unit.
func suppliersServing(m map[string][]string, unit string) []string {
	var out []string
	for name, units := range m {
		for _, u := range units {
			if u == unit {
				out = append(out, name)
				break
			}
		}
	}
	sort.Strings(out)
	return out
}
