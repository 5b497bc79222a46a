// Package export renders an invoice.Document as PDF, XLSX or plain text.
package export

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/designaurora/quotecalc/internal/invoice"
)

var (
	charcoal  = &props.Color{Red: 33, Green: 37, Blue: 41}
	muted     = &props.Color{Red: 100, Green: 100, Blue: 100}
	white     = &props.Color{Red: 255, Green: 255, Blue: 255}
	lightGray = &props.Color{Red: 245, Green: 245, Blue: 245}
	altRow    = &props.Color{Red: 248, Green: 249, Blue: 250}
)

// The core PDF fonts are cp1252 and have no rupee glyph.
var pdfReplacer = strings.NewReplacer("₹", "Rs.")

func pdfText(value string, ps props.Text) core.Component {
	return text.New(pdfReplacer.Replace(value), ps)
}

// PDF renders doc as an A4 portrait PDF. The package banner, when present,
// starts on its own page.
func PDF(doc invoice.Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).
		WithTopMargin(12).
		WithRightMargin(12).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addHeader(m, doc)
	addItems(m, doc)
	addTotals(m, doc)
	addNotes(m, doc)
	addTerms(m, doc)
	if doc.Banner != nil {
		addBanner(m, doc.Brand, *doc.Banner)
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	return out.GetBytes(), nil
}

func addHeader(m core.Maroto, doc invoice.Document) {
	m.AddRows(
		row.New(12).Add(
			col.New(6).Add(
				pdfText(doc.Brand, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Left,
					Color: charcoal,
				}),
			),
			col.New(6).Add(
				pdfText("INVOICE", props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: charcoal,
				}),
			),
		),
	)

	info := props.Text{Size: 9, Align: align.Left, Color: muted}
	infoRight := info
	infoRight.Align = align.Right

	m.AddRows(
		row.New(6).Add(
			col.New(6).Add(pdfText(doc.Project, info)),
			col.New(6).Add(pdfText(doc.InvoiceID, infoRight)),
		),
		row.New(6).Add(
			col.New(6).Add(pdfText(doc.Client, info)),
			col.New(6).Add(pdfText("Date: "+doc.Date, infoRight)),
		),
		row.New(4),
	)
}

func addItems(m core.Maroto, doc invoice.Document) {
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Right,
		Color: white,
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left
	headerCell := &props.Cell{BackgroundColor: charcoal}

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(pdfText("Description", headerTextLeft)).WithStyle(headerCell),
			col.New(2).Add(pdfText("Area / Qty", headerText)).WithStyle(headerCell),
			col.New(2).Add(pdfText("Rate", headerText)).WithStyle(headerCell),
			col.New(2).Add(pdfText("Amount", headerText)).WithStyle(headerCell),
		),
	)

	if doc.Empty() {
		m.AddRows(
			row.New(8).Add(
				col.New(12).Add(pdfText(invoice.EmptyMessage, props.Text{
					Size:  8,
					Style: fontstyle.Italic,
					Align: align.Center,
					Color: muted,
				})),
			),
		)
		return
	}

	body := props.Text{Size: 8, Align: align.Right}
	bodyLeft := body
	bodyLeft.Align = align.Left

	for i, r := range doc.Rows {
		cDesc := col.New(6).Add(pdfText(r.Description, bodyLeft))
		cArea := col.New(2).Add(pdfText(r.Area, body))
		cRate := col.New(2).Add(pdfText(r.Rate, body))
		cAmount := col.New(2).Add(pdfText(r.Amount, body))

		if i%2 == 1 {
			cell := &props.Cell{BackgroundColor: altRow}
			cDesc = cDesc.WithStyle(cell)
			cArea = cArea.WithStyle(cell)
			cRate = cRate.WithStyle(cell)
			cAmount = cAmount.WithStyle(cell)
		}

		m.AddRows(row.New(7).Add(cDesc, cArea, cRate, cAmount))
	}
}

func addTotals(m core.Maroto, doc invoice.Document) {
	m.AddRows(row.New(4))

	label := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	value := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	summaryCell := &props.Cell{BackgroundColor: lightGray}

	addSummaryRow := func(name, amount string, cell *props.Cell, l, v props.Text) {
		m.AddRows(
			row.New(8).Add(
				col.New(6),
				col.New(3).Add(pdfText(name, l)).WithStyle(cell),
				col.New(3).Add(pdfText(amount, v)).WithStyle(cell),
			),
		)
	}

	addSummaryRow("Subtotal", doc.Subtotal, summaryCell, label, value)
	addSummaryRow("Discount", doc.Discount, summaryCell, label, value)

	grandLabel := label
	grandLabel.Color = white
	grandValue := value
	grandValue.Color = white
	addSummaryRow("Total", doc.Total, &props.Cell{BackgroundColor: charcoal}, grandLabel, grandValue)
}

func addNotes(m core.Maroto, doc invoice.Document) {
	if doc.Notes == "" {
		return
	}
	m.AddRows(
		row.New(4),
		row.New(6).Add(
			col.New(12).Add(pdfText(doc.Notes, props.Text{Size: 8, Align: align.Left, Color: muted})),
		),
	)
}

func addTerms(m core.Maroto, doc invoice.Document) {
	title := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Left}
	item := props.Text{Size: 8, Align: align.Left, Left: 3}

	for _, section := range doc.Terms {
		m.AddRows(
			row.New(4),
			row.New(6).Add(col.New(12).Add(pdfText(section.Title, title))),
		)
		for _, term := range section.Items {
			m.AddRows(row.New(5).Add(col.New(12).Add(pdfText("• "+term, item))))
		}
	}
}

func addBanner(m core.Maroto, brand string, b invoice.Banner) {
	m.AddPages(bannerPage(brand, b))
}

func bannerPage(brand string, b invoice.Banner) core.Page {
	p := page.New()

	heading := props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Left, Color: charcoal}
	label := props.Text{Size: 8, Align: align.Left, Color: muted}
	value := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Left}
	badge := &props.Cell{BackgroundColor: charcoal}

	p.Add(
		row.New(16).Add(
			col.New(12).Add(pdfText(b.PackageName, props.Text{
				Size:  18,
				Style: fontstyle.Bold,
				Align: align.Center,
				Color: white,
				Top:   3,
			})).WithStyle(badge),
		),
		row.New(6).Add(col.New(12).Add(pdfText(brand, props.Text{Size: 8, Align: align.Center, Color: muted}))),
		row.New(4),
		row.New(5).Add(
			col.New(4).Add(pdfText("Client Name", label)),
			col.New(4).Add(pdfText("Project Name", label)),
			col.New(4).Add(pdfText("Date", label)),
		),
		row.New(7).Add(
			col.New(4).Add(pdfText(b.ClientName, value)),
			col.New(4).Add(pdfText(b.ProjectName, value)),
			col.New(4).Add(pdfText(b.Date, value)),
		),
		row.New(4),
		row.New(8).Add(col.New(12).Add(pdfText("Package Details", heading))),
	)

	details := [][2]string{{"Interior Rate", b.InteriorRate}}
	if b.ElevationRate != "" {
		details = append(details, [2]string{"Elevation Rate", b.ElevationRate})
	}
	details = append(details,
		[2]string{"Site Area", b.SiteArea},
		[2]string{"Discount Range", b.DiscountRange},
	)
	for _, d := range details {
		p.Add(row.New(6).Add(
			col.New(4).Add(pdfText(d[0], label)),
			col.New(8).Add(pdfText(d[1], value)),
		))
	}

	summaryCell := &props.Cell{BackgroundColor: lightGray}
	priceLabel := props.Text{Size: 9, Align: align.Left}
	priceValue := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	p.Add(
		row.New(4),
		row.New(8).Add(col.New(12).Add(pdfText("Investment Summary", heading))),
		row.New(7).Add(
			col.New(8).Add(pdfText("Subtotal", priceLabel)).WithStyle(summaryCell),
			col.New(4).Add(pdfText(b.Subtotal, priceValue)).WithStyle(summaryCell),
		),
		row.New(7).Add(
			col.New(8).Add(pdfText(b.DiscountLabel, priceLabel)).WithStyle(summaryCell),
			col.New(4).Add(pdfText(b.Discount, priceValue)).WithStyle(summaryCell),
		),
	)
	totalLabel := priceLabel
	totalLabel.Style = fontstyle.Bold
	totalLabel.Color = white
	totalValue := priceValue
	totalValue.Color = white
	p.Add(row.New(8).Add(
		col.New(8).Add(pdfText("Total Investment", totalLabel)).WithStyle(badge),
		col.New(4).Add(pdfText(b.Total, totalValue)).WithStyle(badge),
	))

	item := props.Text{Size: 8, Align: align.Left, Left: 3}
	p.Add(row.New(4), row.New(8).Add(col.New(12).Add(pdfText("What's Included", heading))))
	for _, feature := range b.Features {
		p.Add(row.New(5).Add(col.New(12).Add(pdfText("+ "+feature, item))))
	}

	p.Add(row.New(4), row.New(8).Add(col.New(12).Add(pdfText("Package Terms", heading))))
	for _, rule := range b.Rules {
		p.Add(row.New(5).Add(col.New(12).Add(pdfText("• "+rule, item))))
	}

	return p
}
