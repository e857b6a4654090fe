package export

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/xuri/excelize/v2"

	apperrors "github.com/avaliafor/avaliafor/internal/errors"
	"github.com/avaliafor/avaliafor/pkg/types"
)

func TestDeriveName(t *testing.T) {
	tests := []struct {
		supplier, period, unit string
		origin                 types.Origin
		want                   string
	}{
		{"Acme", "30/11/2025", "CSA-BH", types.OriginAdministration, "Acme_NOV-25_CSABH.xlsx"},
		{"Acme", "30/11/2025", "CSA BH", types.OriginAdministration, "Acme_NOV-25_CSABH.xlsx"},
		{"Acme", "30/11/2025", "CSA-BH", types.OriginSupplies, "Acme_NOV-25_CSABH_SUP.xlsx"},
		{"Acme_Serv-1", "30/11/2025", "csa_bh", types.OriginSupplies, "Acme_Serv-1_NOV-25_csabh_SUP.xlsx"},
		{"EXPRESSA TURISMO LTDA", "31/01/2024", "EPSA", types.OriginSupplies, "EXPRESSATURISMOLTDA_JAN-24_EPSA_SUP.xlsx"},
		{"OTIMIZA VIGILÂNCIA E SEG. PATRIMONIAL", "28/02/2025", "ESA", types.OriginAdministration, "OTIMIZAVIGILÂNCIAESEGPATRIMONIAL_FEV-25_ESA.xlsx"},
		{"Acme", "31/12/2025", " - ", types.OriginAdministration, "Acme_DEZ-25.xlsx"},
		{"AC TRANSPORTES - ACTUR", "31/08/2025", "SIC SEDE", types.OriginSupplies, "ACTRANSPORTES-ACTUR_AGO-25_SICSEDE_SUP.xlsx"},
	}
	for _, tt := range tests {
		got, err := DeriveName(tt.supplier, tt.period, tt.unit, tt.origin)
		if err != nil {
			t.Errorf("DeriveName(%q, %q, %q, %s): %v", tt.supplier, tt.period, tt.unit, tt.origin, err)
			continue
		}
		if got != tt.want {
			t.Errorf("DeriveName(%q, %q, %q, %s) = %q, want %q", tt.supplier, tt.period, tt.unit, tt.origin, got, tt.want)
		}
	}
}

func TestDeriveName_Invalid(t *testing.T) {
	cases := []struct {
		supplier, period string
		origin           types.Origin
	}{
		{"Acme", "2025-11-30", types.OriginSupplies},
		{"Acme", "", types.OriginSupplies},
		{"Acme", "30/11/2025", types.Origin("OUTRA")},
		{"!!!", "30/11/2025", types.OriginSupplies},
	}
	for _, c := range cases {
		if _, err := DeriveName(c.supplier, c.period, "CSA-BH", c.origin); !apperrors.IsValidation(err) {
			t.Errorf("DeriveName(%q, %q, %s): expected validation error, got %v", c.supplier, c.period, c.origin, err)
		}
	}
}

// The same inputs always give the same name and every name follows the
// documented grammar.
func TestDeriveName_Properties(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())
	grammar := regexp.MustCompile(`^[\p{L}\p{N}_-]+_(JAN|FEV|MAR|ABR|MAI|JUN|JUL|AGO|SET|OUT|NOV|DEZ)-\d{2}(_[\p{L}\p{N}]+)?(_SUP)?\.xlsx$`)

	periodGen := gen.IntRange(0, 100*12-1).Map(func(i int) string {
		return types.Period{Year: 2000 + i/12, Month: time.Month(i%12 + 1)}.String()
	})

	properties.Property("deterministic and well formed", prop.ForAll(
		func(supplier, unit, period string) bool {
			if Sanitize(supplier) == "" {
				_, err := DeriveName(supplier, period, unit, types.OriginSupplies)
				return apperrors.IsValidation(err)
			}
			sup, err := DeriveName(supplier, period, unit, types.OriginSupplies)
			if err != nil {
				return false
			}
			again, _ := DeriveName(supplier, period, unit, types.OriginSupplies)
			adm, err := DeriveName(supplier, period, unit, types.OriginAdministration)
			if err != nil {
				return false
			}
			return sup == again &&
				grammar.MatchString(sup) && grammar.MatchString(adm) &&
				strings.HasSuffix(sup, "_SUP.xlsx") &&
				strings.TrimSuffix(sup, "_SUP.xlsx")+Extension == adm
		},
		gen.AnyString(),
		gen.AnyString(),
		periodGen,
	))

	properties.TestingRun(t)
}

func TestXLSXEncoder(t *testing.T) {
	records := []types.Record{
		{Unit: "CSA-BH", Period: "30/11/2025", Supplier: "Acme", Category: types.CategoryDocumentation,
			Question: "q1", Answer: types.AnswerFully, AnsweredAt: "2025-12-05 10:00:00", Origin: types.OriginSupplies},
		{Unit: "CSA-BH", Period: "30/11/2025", Supplier: "Acme", Category: types.CategoryDocumentation,
			Question: "q2", Answer: types.AnswerNot, AnsweredAt: "2025-12-05 10:00:00"},
	}
	data, err := NewXLSXEncoder().Encode(records)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	for i, c := range Columns {
		if rows[0][i] != c {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], c)
		}
	}
	if len(rows[1]) != len(Columns) {
		t.Errorf("origin leaked into the sheet: %v", rows[1])
	}
	if rows[2][4] != "q2" || rows[2][5] != types.AnswerNot {
		t.Errorf("row 2 = %v", rows[2])
	}
}

func TestSubmissionBundle(t *testing.T) {
	rec := func(supplier, unit string, origin types.Origin) types.Record {
		return types.Record{Unit: unit, Period: "30/11/2025", Supplier: supplier, Category: types.CategoryQuality,
			Question: "q", Answer: types.AnswerFully, AnsweredAt: "2025-12-01 08:00:00", Origin: origin}
	}
	records := []types.Record{
		rec("Acme", "CSA-BH", types.OriginAdministration),
		rec("Acme", "CSA-BH", types.OriginAdministration),
		rec("Acme", "CSA-BH", types.OriginSupplies),
		rec("Beta", "EPSA", types.OriginSupplies),
	}
	now := time.Date(2025, 12, 2, 14, 30, 5, 0, time.UTC)

	res, err := SubmissionBundle(context.Background(), records, NewXLSXEncoder(), PrefixAll, now)
	if err != nil {
		t.Fatalf("SubmissionBundle: %v", err)
	}
	if res.Name != "todas_avaliacoes_individuais_20251202_143005.zip" {
		t.Errorf("Name = %q", res.Name)
	}
	if len(res.Files) != 3 {
		t.Fatalf("Files = %v", res.Files)
	}

	zr, err := zip.NewReader(bytes.NewReader(res.Data), int64(len(res.Data)))
	if err != nil {
		t.Fatalf("zip.NewReader: %v", err)
	}
	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}
	for _, want := range []string{"Acme_NOV-25_CSABH.xlsx", "Acme_NOV-25_CSABH_SUP.xlsx", "Beta_NOV-25_EPSA_SUP.xlsx"} {
		if !names[want] {
			t.Errorf("bundle missing %s (have %v)", want, names)
		}
	}
}

func TestPrefixFor(t *testing.T) {
	sup := types.OriginSupplies
	adm := types.OriginAdministration
	if PrefixFor(nil, true) != PrefixFiltered || PrefixFor(nil, false) != PrefixAll ||
		PrefixFor(&sup, false) != PrefixSupplies || PrefixFor(&adm, false) != PrefixAdministration {
		t.Error("unexpected prefix mapping")
	}
}
