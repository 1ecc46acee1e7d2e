package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateQuoteExcel creates a quote workbook and returns the file contents.
func GenerateQuoteExcel(data QuoteExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := sheetNameFor("Cotización " + data.Number)
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F"}
	lastCol := columns[len(columns)-1]

	widths := []float64{6, 46, 10, 10, 18, 18}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	styles, err := newWorkbookStyles(f)
	if err != nil {
		return nil, err
	}

	// ── Header rows ─────────────────────────────────────────────────────

	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell("Cotización "+data.Number))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", styles.title)

	f.MergeCell(sheetName, "A2", lastCol+"2")
	f.SetCellValue(sheetName, "A2", sanitizeExcelCell(fmt.Sprintf("Obra: %s    Cliente: %s", data.ProjectName, data.ClientName)))
	f.SetCellStyle(sheetName, "A2", lastCol+"2", styles.subtitle)

	f.MergeCell(sheetName, "A3", lastCol+"3")
	f.SetCellValue(sheetName, "A3", "Fecha: "+data.CreatedDate)
	f.SetCellStyle(sheetName, "A3", lastCol+"3", styles.subtitle)

	// ── Column headers (row 5) ──────────────────────────────────────────

	headers := []string{"#", "Descripción", "Cant.", "Und", "Vr. Unitario", "Vr. Total"}
	for i, h := range headers {
		f.SetCellValue(sheetName, fmt.Sprintf("%s5", columns[i]), h)
	}
	f.SetCellStyle(sheetName, "A5", lastCol+"5", styles.header)

	// ── Data rows ───────────────────────────────────────────────────────

	row := 6
	for _, r := range data.Rows {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+rowStr, r.Index)
		f.SetCellValue(sheetName, "B"+rowStr, sanitizeExcelCell(r.Description))
		f.SetCellValue(sheetName, "C"+rowStr, r.Qty)
		f.SetCellValue(sheetName, "D"+rowStr, sanitizeExcelCell(r.Unit))
		f.SetCellValue(sheetName, "E"+rowStr, FormatCOP(r.UnitPrice))
		f.SetCellValue(sheetName, "F"+rowStr, FormatCOP(r.LineTotal))
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, styles.cell)
		row++
	}

	// ── Summary rows ────────────────────────────────────────────────────

	row++
	for _, line := range []struct {
		label string
		value float64
	}{
		{"Subtotal:", data.Totals.Subtotal},
		{fmt.Sprintf("AIU (%.0f%%):", AIURate*100), data.Totals.AdminSurcharge},
		{"IVA sobre AIU:", data.Totals.Tax},
		{"Total:", data.Totals.Total},
	} {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "E"+rowStr, line.label)
		f.SetCellStyle(sheetName, "E"+rowStr, "E"+rowStr, styles.summaryLabel)
		f.SetCellValue(sheetName, "F"+rowStr, FormatCOP(line.value))
		f.SetCellStyle(sheetName, "F"+rowStr, "F"+rowStr, styles.summaryValue)
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateExecutionExcel creates the execution matrix workbook: one row per
// contracted item, one quantity column per acta, then executed/remaining/
// over-delivered columns and the overall progress. Orphan lines land in a
// flagged block under the scope rows.
func GenerateExecutionExcel(data ExecutionData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := sheetNameFor("Ejecución " + data.ProjectName)
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	styles, err := newWorkbookStyles(f)
	if err != nil {
		return nil, err
	}

	// Fixed columns A-D, one per acta, then three derived columns.
	headers := []string{"#", "Descripción", "Und", "Contratado"}
	for _, acta := range data.Actas {
		headers = append(headers, fmt.Sprintf("Acta %d", acta.Sequence))
	}
	headers = append(headers, "Ejecutado", "Saldo", "Exceso")

	colNames := make([]string, len(headers))
	for i := range headers {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("column name %d: %w", i+1, err)
		}
		colNames[i] = name
	}
	lastCol := colNames[len(colNames)-1]

	f.SetColWidth(sheetName, "A", "A", 6)
	f.SetColWidth(sheetName, "B", "B", 46)
	f.SetColWidth(sheetName, "C", lastCol, 12)

	f.MergeCell(sheetName, "A1", lastCol+"1")
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell("Ejecución de obra: "+data.ProjectName))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", styles.title)

	f.MergeCell(sheetName, "A2", lastCol+"2")
	f.SetCellValue(sheetName, "A2", sanitizeExcelCell("Cotización: "+data.QuoteNumber))
	f.SetCellStyle(sheetName, "A2", lastCol+"2", styles.subtitle)

	for i, h := range headers {
		f.SetCellValue(sheetName, fmt.Sprintf("%s4", colNames[i]), h)
	}
	f.SetCellStyle(sheetName, "A4", lastCol+"4", styles.header)

	row := 5
	writeRow := func(index string, r ExecutionRow) {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+rowStr, index)
		f.SetCellValue(sheetName, "B"+rowStr, sanitizeExcelCell(r.Description))
		f.SetCellValue(sheetName, "C"+rowStr, sanitizeExcelCell(r.Unit))
		f.SetCellValue(sheetName, "D"+rowStr, r.Contracted)
		for i, acta := range data.Actas {
			if qty, ok := r.PerActa[acta.ID]; ok && qty != 0 {
				f.SetCellValue(sheetName, colNames[4+i]+rowStr, qty)
			}
		}
		base := 4 + len(data.Actas)
		f.SetCellValue(sheetName, colNames[base]+rowStr, r.ExecutedTotal)
		f.SetCellValue(sheetName, colNames[base+1]+rowStr, r.Remaining)
		f.SetCellValue(sheetName, colNames[base+2]+rowStr, r.OverDelivered)
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, styles.cell)
		row++
	}

	for i, r := range data.Rows {
		writeRow(fmt.Sprintf("%d", i+1), r)
	}

	if len(data.Orphans) > 0 {
		row++
		rowStr := fmt.Sprintf("%d", row)
		f.MergeCell(sheetName, "A"+rowStr, lastCol+rowStr)
		f.SetCellValue(sheetName, "A"+rowStr, "Ejecutado sin ítem contratado")
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, styles.summaryLabel)
		row++
		for i, r := range data.Orphans {
			writeRow(fmt.Sprintf("S%d", i+1), r)
		}
	}

	row++
	rowStr := fmt.Sprintf("%d", row)
	f.SetCellValue(sheetName, "B"+rowStr, "Avance de obra:")
	f.SetCellStyle(sheetName, "B"+rowStr, "B"+rowStr, styles.summaryLabel)
	f.SetCellValue(sheetName, "C"+rowStr, FormatPercent(data.ProgressPercent))
	f.SetCellStyle(sheetName, "C"+rowStr, "C"+rowStr, styles.summaryValue)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

type workbookStyles struct {
	title        int
	subtitle     int
	header       int
	cell         int
	summaryLabel int
	summaryValue int
}

func newWorkbookStyles(f *excelize.File) (workbookStyles, error) {
	var s workbookStyles
	var err error

	s.title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return s, fmt.Errorf("create title style: %w", err)
	}

	s.subtitle, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return s, fmt.Errorf("create subtitle style: %w", err)
	}

	s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return s, fmt.Errorf("create header style: %w", err)
	}

	s.cell, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return s, fmt.Errorf("create cell style: %w", err)
	}

	s.summaryLabel, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return s, fmt.Errorf("create summary label style: %w", err)
	}

	s.summaryValue, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return s, fmt.Errorf("create summary value style: %w", err)
	}

	return s, nil
}

func thinBorders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "#CCCCCC", Style: 1},
		{Type: "right", Color: "#CCCCCC", Style: 1},
		{Type: "top", Color: "#CCCCCC", Style: 1},
		{Type: "bottom", Color: "#CCCCCC", Style: 1},
	}
}

// sheetNameFor trims a title to Excel's 31 character sheet name limit.
func sheetNameFor(title string) string {
	if title == "" {
		return "Documento"
	}
	runes := []rune(title)
	if len(runes) > 31 {
		return string(runes[:31])
	}
	return title
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +,
// -, @, \t or \r as formulas.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
