package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/avaliafor/avaliafor/pkg/types"
)

// SheetName is the single worksheet of every artifact.
const SheetName = "Avaliação"

// Columns is the header row, in order.
var Columns = []string{
	types.FieldUnit,
	types.FieldPeriod,
	types.FieldSupplier,
	types.FieldCategory,
	types.FieldQuestion,
	types.FieldAnswer,
	types.FieldAnsweredAt,
}

// Encoder turns records into artifact bytes.
type Encoder interface {
	Encode(records []types.Record) ([]byte, error)
}

// XLSXEncoder writes records as an Excel workbook. The origin is never
// written; it is implied by the artifact's folder and suffix.
type XLSXEncoder struct{}

// NewXLSXEncoder creates an xlsx encoder.
func NewXLSXEncoder() *XLSXEncoder {
	return &XLSXEncoder{}
}

// Encode implements Encoder.
func (XLSXEncoder) Encode(records []types.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return nil, fmt.Errorf("stream writer: %w", err)
	}

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{r.Unit, r.Period, r.Supplier, string(r.Category), r.Question, r.Answer, r.AnsweredAt}
		if err := sw.SetRow(cell, row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return nil, fmt.Errorf("flush sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
