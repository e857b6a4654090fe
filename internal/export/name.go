// Package export derives artifact names and encodes evaluation records into
// spreadsheets and ZIP bundles.
package export

import (
	"strings"
	"unicode"

	apperrors "github.com/avaliafor/avaliafor/internal/errors"
	"github.com/avaliafor/avaliafor/pkg/types"
)

// Extension of every generated artifact.
const Extension = ".xlsx"

// suppliesSuffix marks artifacts of the supplies workflow.
const suppliesSuffix = "_SUP"

// DeriveName returns the artifact name for one submission:
//
//	<supplier>_<MON>-<YY>[_<unit>][_SUP].xlsx
//
// The supplier keeps letters, digits, '_' and '-'; the unit keeps letters and
// digits only, so "CSA-BH" becomes "CSABH". Every write, existence check,
// deletion and regeneration goes through this function.
func DeriveName(supplier, period, unit string, origin types.Origin) (string, error) {
	p, err := types.ParsePeriod(period)
	if err != nil {
		return "", apperrors.NewValidationError(apperrors.CodeInvalidInput, err.Error())
	}
	if !origin.Valid() {
		return "", apperrors.NewValidationError(apperrors.CodeInvalidInput, types.ErrInvalidOrigin.Error()+": "+string(origin))
	}

	name := Sanitize(supplier)
	if name == "" {
		return "", apperrors.NewValidationError(apperrors.CodeInvalidInput, "supplier name has no usable characters")
	}

	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('_')
	b.WriteString(p.Token())
	if u := sanitizeUnit(unit); u != "" {
		b.WriteByte('_')
		b.WriteString(u)
	}
	if origin == types.OriginSupplies {
		b.WriteString(suppliesSuffix)
	}
	b.WriteString(Extension)
	return b.String(), nil
}

// NameFor derives the artifact name of a submission key.
func NameFor(key types.SubmissionKey) (string, error) {
	return DeriveName(key.Supplier, key.Period, key.Unit, key.Origin)
}

// Sanitize drops every rune that is not a letter, digit, '_' or '-'.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' {
			return r
		}
		return -1
	}, s)
}

func sanitizeUnit(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
