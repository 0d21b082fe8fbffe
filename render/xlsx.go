package render

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/carbocation/variantatlas/variant"
)

// SheetName is the worksheet WriteXLSX fills.
const SheetName = "variants"

// XLSXHeader is the first row of the exported sheet.
func XLSXHeader() []string {
	out := []string{
		"row",
		variant.ColumnRSID,
		variant.ColumnGeneSymbol,
		variant.ColumnName,
		variant.ColumnPhenotypeList,
		variant.ColumnClinicalSignificance,
	}

	return append(out, variant.FrequencyColumns()...)
}

// WriteXLSX writes at most limit rows of t (all rows if limit <= 0) as a
// single-sheet workbook. Missing values are left blank. The row column is
// the selection index of each record within t.
func WriteXLSX(w io.Writer, t *variant.Table, limit int) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return err
	}

	header := XLSXHeader()
	if err := writeRow(f, 1, stringsToCells(header)); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		return err
	}

	if limit > 0 {
		t = t.Head(limit)
	}

	var rowErr error
	t.Each(func(i int, r *variant.Record) bool {
		rowErr = writeRow(f, i+2, recordCells(i, r))
		return rowErr == nil
	})
	if rowErr != nil {
		return rowErr
	}

	if err := f.SetColWidth(SheetName, "D", "E", 48); err != nil {
		return err
	}

	return f.Write(w)
}

func writeRow(f *excelize.File, row int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}

	return f.SetSheetRow(SheetName, cell, &cells)
}

func stringsToCells(in []string) []interface{} {
	out := make([]interface{}, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

func recordCells(i int, r *variant.Record) []interface{} {
	out := []interface{}{
		i,
		blankOr(r.RSID.Valid, r.RSID.Display()),
		r.GeneSymbol.ValueOrZero(),
		r.Name.ValueOrZero(),
		r.PhenotypeList.ValueOrZero(),
		r.ClinicalSignificance.ValueOrZero(),
	}

	for _, p := range variant.Populations() {
		freq := r.Frequency(p)
		if freq.Valid {
			out = append(out, freq.Float64)
		} else {
			out = append(out, "")
		}
	}

	return out
}

func blankOr(ok bool, v string) string {
	if !ok {
		return ""
	}
	return v
}
