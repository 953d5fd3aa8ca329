package pipeline

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"skuqty/internal"
	"skuqty/internal/util"
)

const (
	resultsSheet = "results"
	statsSheet   = "stats"
)

// ExportRowsToXLSX writes one row per description plus a summary sheet.
func ExportRowsToXLSX(rows []internal.ResultExportRow, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName(f.GetSheetName(0), resultsSheet); err != nil {
		return err
	}

	headers := []string{
		"description_id", "source", "text", "parsed",
		"weight", "weight_unit", "pieces_per_pack", "packs_per_case", "container_type",
		"rule_id", "method", "confidence",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(resultsSheet, cell, h)
	}

	results := make([]internal.ParsedQuantity, 0, len(rows))
	for i, row := range rows {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(resultsSheet, cell, value)
		}

		set(1, row.DescriptionID)
		set(2, row.SourceID)
		set(3, row.Text)
		set(4, row.Parsed)
		set(5, derefFloat(row.Weight))
		set(6, derefString(row.WeightUnit))
		set(7, derefInt(row.PiecesPerPack))
		set(8, derefInt(row.PacksPerCase))
		set(9, derefString(row.ContainerType))
		set(10, derefString(row.RuleID))
		set(11, row.Method)
		set(12, row.Confidence)

		results = append(results, quantityFromRow(row))
	}

	if _, err := f.NewSheet(statsSheet); err != nil {
		return err
	}
	writeStats(f, Summarize(results))

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func writeStats(f *excelize.File, s Stats) {
	r := 1
	put := func(a, b, c any) {
		for col, v := range []any{a, b, c} {
			cell, _ := excelize.CoordinatesToCellName(col+1, r)
			_ = f.SetCellValue(statsSheet, cell, v)
		}
		r++
	}
	put("metric", "key", "value")
	put("total", "", s.Total)
	put("parsed", "", s.Parsed)
	put("failed", "", s.Failed)
	put("success_rate", "", s.SuccessRate)
	for _, l := range s.lines() {
		put(l.Group, l.Key, l.Count)
	}
}

// ResultRows pairs parsed results with their descriptions for export when
// nothing was stored.
func ResultRows(descs []internal.ProductDescription, results []internal.ParsedQuantity) []internal.ResultExportRow {
	out := make([]internal.ResultExportRow, 0, len(results))
	for i, q := range results {
		if i >= len(descs) {
			break
		}
		row := internal.ResultExportRow{
			DescriptionID: i + 1,
			SourceID:      descs[i].SourceID,
			Text:          descs[i].Text,
			Parsed:        q.Parsed,
			Method:        string(q.Method),
			Confidence:    q.Confidence,
		}
		if q.Parsed {
			row.Weight = util.FloatPtr(q.Weight)
			row.WeightUnit = util.StringPtr(string(q.WeightUnit))
			row.PiecesPerPack = util.IntPtr(q.PiecesPerPack)
			row.PacksPerCase = util.IntPtr(q.PacksPerCase)
			row.ContainerType = util.StringPtr(string(q.ContainerType))
		}
		if q.MatchedRuleID != "" {
			row.RuleID = util.StringPtr(q.MatchedRuleID)
		}
		out = append(out, row)
	}
	return out
}

func quantityFromRow(row internal.ResultExportRow) internal.ParsedQuantity {
	q := internal.ParsedQuantity{
		Parsed:        row.Parsed,
		Method:        internal.ParseMethod(row.Method),
		Confidence:    row.Confidence,
		MatchedRuleID: derefString(row.RuleID),
		ContainerType: internal.ContainerUnknown,
	}
	if row.Weight != nil {
		q.Weight = *row.Weight
	}
	if row.WeightUnit != nil {
		q.WeightUnit = internal.WeightUnit(*row.WeightUnit)
	}
	if row.PiecesPerPack != nil {
		q.PiecesPerPack = *row.PiecesPerPack
	}
	if row.PacksPerCase != nil {
		q.PacksPerCase = *row.PacksPerCase
	}
	if row.ContainerType != nil {
		q.ContainerType = internal.ParseContainerType(*row.ContainerType)
	}
	return q
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func derefFloat(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

func derefInt(v *int) any {
	if v == nil {
		return ""
	}
	return *v
}
