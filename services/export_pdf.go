package services

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateQuotePDF creates the quote document using maroto/v2 and returns the
// raw PDF bytes.
func GenerateQuotePDF(data QuoteExportData) ([]byte, error) {
	m := newDocument()

	addDocumentHeader(m, "Cotización "+data.Number, data.ProjectName, data.ClientName, data.CreatedDate)
	addPricedTableHeader(m)
	for _, r := range data.Rows {
		addPricedTableRow(m, r)
	}
	addTotalsSummary(m, data.Totals)
	addGeneratedFooter(m)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate quote pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

// GenerateCortePDF creates the corte document: the billable line set for the
// included actas, its totals, and the amount billed on earlier cortes.
func GenerateCortePDF(data CorteExportData) ([]byte, error) {
	m := newDocument()

	addDocumentHeader(m, "Corte de obra "+data.Number, data.ProjectName, data.ClientName, data.CreatedDate)

	if len(data.ActaSequences) > 0 {
		label := "Actas incluidas:"
		for i, seq := range data.ActaSequences {
			if i > 0 {
				label += ","
			}
			label += fmt.Sprintf(" %d", seq)
		}
		m.AddRows(
			row.New(6).Add(
				col.New(12).Add(
					text.New(label, props.Text{
						Size:  9,
						Align: align.Left,
						Color: &props.Color{Red: 80, Green: 80, Blue: 80},
					}),
				),
			),
		)
		m.AddRows(row.New(2))
	}

	addPricedTableHeader(m)
	for _, r := range data.Rows {
		addPricedTableRow(m, r)
	}
	addTotalsSummary(m, data.Totals)

	if data.BilledBefore > 0 {
		m.AddRows(
			row.New(6).Add(
				col.New(9).Add(
					text.New("Facturado en cortes anteriores:", props.Text{
						Size:  9,
						Align: align.Right,
					}),
				),
				col.New(3).Add(
					text.New(FormatCOP(data.BilledBefore), props.Text{
						Size:  9,
						Align: align.Right,
					}),
				),
			),
		)
	}

	addGeneratedFooter(m)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate corte pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func newDocument() core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.Letter).
		WithLeftMargin(12).
		WithTopMargin(12).
		WithRightMargin(12).
		WithPageNumber(props.PageNumber{
			Pattern: "Página {current} de {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	return maroto.New(cfg)
}

func addDocumentHeader(m core.Maroto, title, projectName, clientName, date string) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	grey := &props.Color{Red: 80, Green: 80, Blue: 80}
	m.AddRows(
		row.New(6).Add(
			col.New(6).Add(
				text.New("Obra: "+projectName, props.Text{Size: 9, Align: align.Left, Color: grey}),
			),
			col.New(6).Add(
				text.New("Fecha: "+date, props.Text{Size: 9, Align: align.Right, Color: grey}),
			),
		),
		row.New(6).Add(
			col.New(12).Add(
				text.New("Cliente: "+clientName, props.Text{Size: 9, Align: align.Left, Color: grey}),
			),
		),
	)

	m.AddRows(row.New(4))
}

func addPricedTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("#", headerText)).WithStyle(&headerCell),
			col.New(5).Add(text.New("Descripción", headerTextLeft)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Cant.", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Und", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Vr. Unitario", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Vr. Total", headerText)).WithStyle(&headerCell),
		),
	)
}

func addPricedTableRow(m core.Maroto, r PricedRow) {
	cell := props.Text{Size: 8, Align: align.Center}
	cellLeft := cell
	cellLeft.Align = align.Left
	cellRight := cell
	cellRight.Align = align.Right

	m.AddRows(
		row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", r.Index), cell)),
			col.New(5).Add(text.New(r.Description, cellLeft)),
			col.New(1).Add(text.New(FormatQty(r.Qty), cell)),
			col.New(1).Add(text.New(r.Unit, cell)),
			col.New(2).Add(text.New(FormatCOP(r.UnitPrice), cellRight)),
			col.New(2).Add(text.New(FormatCOP(r.LineTotal), cellRight)),
		),
	)
}

func addTotalsSummary(m core.Maroto, totals Totals) {
	m.AddRows(row.New(3))

	summaryLine := func(label string, value float64, bold bool) {
		style := fontstyle.Normal
		if bold {
			style = fontstyle.Bold
		}
		m.AddRows(
			row.New(6).Add(
				col.New(9).Add(
					text.New(label, props.Text{Size: 9, Style: style, Align: align.Right}),
				),
				col.New(3).Add(
					text.New(FormatCOP(value), props.Text{Size: 9, Style: style, Align: align.Right}),
				),
			),
		)
	}

	summaryLine("Subtotal:", totals.Subtotal, false)
	summaryLine(fmt.Sprintf("AIU (%.0f%%):", AIURate*100), totals.AdminSurcharge, false)
	summaryLine("IVA sobre AIU:", totals.Tax, false)
	summaryLine("Total:", totals.Total, true)
}

func addGeneratedFooter(m core.Maroto) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(5).Add(
			col.New(12).Add(
				text.New("Generado el "+time.Now().Format("02 Jan 2006 15:04"), props.Text{
					Size:  7,
					Align: align.Left,
					Color: &props.Color{Red: 140, Green: 140, Blue: 140},
				}),
			),
		),
	)
}
