package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf/v2"

	"faktura-backend/internal/invoice"
	"faktura-backend/internal/models"
	"faktura-backend/internal/timeutil"
)

// Geometry in millimetres on an A4 portrait page
const (
	pageMargin    = 15.0
	headerHeight  = 28.0
	postHeaderY   = 36.0
	lineHeight    = 5.0
	sectionGap    = 6.0
	qrSize        = 42.0
	qrLabelHeight = 6.0
	minRowHeight  = 8.0
	rowPadding    = 3.0
	footerOffset  = 12.0
)

// Region is a rectangle already claimed on the page. Later sections start
// below any region that overlaps their column.
type Region struct {
	X, Y, W, H float64
}

func (r Region) Bottom() float64 {
	return r.Y + r.H
}

type labels struct {
	invoiceTitle  string
	invoiceNumber string
	issueDate     string
	from          string
	billTo        string
	description   string
	quantity      string
	unitRate      string
	amount        string
	subtotal      string
	tax           string
	total         string
	note          string
	terms         string
	scanToPay     string
	qrUnavailable string
	generatedAt   string
}

func labelsFor(locale string) labels {
	if locale == "sr-RS" {
		return labels{
			invoiceTitle:  "FAKTURA",
			invoiceNumber: "Broj fakture",
			issueDate:     "Datum izdavanja",
			from:          "Izdavalac",
			billTo:        "Primalac",
			description:   "Opis",
			quantity:      "Kol.",
			unitRate:      "Cena",
			amount:        "Iznos",
			subtotal:      "Osnovica",
			tax:           "PDV",
			total:         "Ukupno",
			note:          "Napomena",
			terms:         "Uslovi plaćanja",
			scanToPay:     "Skeniraj i plati",
			qrUnavailable: "QR kod nije dostupan",
			generatedAt:   "Generisano",
		}
	}
	return labels{
		invoiceTitle:  "INVOICE",
		invoiceNumber: "Invoice No",
		issueDate:     "Issue Date",
		from:          "From",
		billTo:        "Bill To",
		description:   "Description",
		quantity:      "Qty",
		unitRate:      "Rate",
		amount:        "Amount",
		subtotal:      "Subtotal",
		tax:           "Tax",
		total:         "Total",
		note:          "Note",
		terms:         "Payment Terms",
		scanToPay:     "Scan to pay",
		qrUnavailable: "QR code unavailable",
		generatedAt:   "Generated",
	}
}

// Layout places invoice sections on a single gofpdf page. Vertical flow is an
// explicit cursor: each placement takes the Y it may start at and returns the
// Y the next section may use. The QR block is anchored top-right outside the
// flow and records its footprint in reserved.
type Layout struct {
	doc      *gofpdf.Fpdf
	family   string
	nf       *invoice.Formatter
	meas     Measurer
	lbl      labels
	reserved Region
	pageW    float64
	pageH    float64
}

func NewLayout(doc *gofpdf.Fpdf, family string, nf *invoice.Formatter, locale string) *Layout {
	w, h := doc.GetPageSize()
	return &Layout{
		doc:    doc,
		family: family,
		nf:     nf,
		meas:   NewMeasurer(doc),
		lbl:    labelsFor(locale),
		pageW:  w,
		pageH:  h,
	}
}

func (l *Layout) contentWidth() float64 {
	return l.pageW - 2*pageMargin
}

// HeaderBand draws the filled title band across the top of the page
func (l *Layout) HeaderBand(data *models.InvoiceData) float64 {
	l.doc.SetFillColor(38, 50, 72)
	l.doc.Rect(0, 0, l.pageW, headerHeight, "F")

	l.doc.SetTextColor(255, 255, 255)
	l.doc.SetFont(l.family, "B", 20)
	l.doc.Text(pageMargin, 17, l.lbl.invoiceTitle)

	l.doc.SetFont(l.family, "", 10)
	right := l.pageW - pageMargin
	num := fmt.Sprintf("%s: %s", l.lbl.invoiceNumber, data.InvoiceNumber)
	l.doc.Text(right-l.meas.StringWidth(num), 13, num)
	if data.IssueDate != "" {
		date := fmt.Sprintf("%s: %s", l.lbl.issueDate, displayDate(data.IssueDate))
		l.doc.Text(right-l.meas.StringWidth(date), 19, date)
	}
	l.doc.SetTextColor(0, 0, 0)

	return postHeaderY
}

// displayDate rewrites an ISO issue date into the dd.mm.yyyy form used on
// Serbian invoices. Free-form dates pass through as typed.
func displayDate(raw string) string {
	t, err := timeutil.ParseLocal(timeutil.DateLayout, raw)
	if err != nil {
		return raw
	}
	return t.Format(timeutil.DisplayDateLayout)
}

// QRBlock anchors the payment code in the top-right corner under the header
// band. A nil png means generation failed; a placeholder frame takes the same
// footprint so the flow below is unaffected.
func (l *Layout) QRBlock(png []byte) {
	x := l.pageW - pageMargin - qrSize
	y := postHeaderY

	if png != nil {
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		l.doc.RegisterImageOptionsReader("payment-qr", opts, bytes.NewReader(png))
		l.doc.ImageOptions("payment-qr", x, y, qrSize, qrSize, false, opts, 0, "")
		l.doc.SetFont(l.family, "", 8)
		l.doc.Text(x+centerOffset(l.meas, l.lbl.scanToPay, qrSize), y+qrSize+4, l.lbl.scanToPay)
	} else {
		l.doc.SetDrawColor(180, 180, 180)
		l.doc.Rect(x, y, qrSize, qrSize, "D")
		l.doc.SetFont(l.family, "", 8)
		l.doc.Text(x+centerOffset(l.meas, l.lbl.qrUnavailable, qrSize), y+qrSize/2, l.lbl.qrUnavailable)
		l.doc.SetDrawColor(0, 0, 0)
	}

	l.reserved = Region{X: x, Y: y, W: qrSize, H: qrSize + qrLabelHeight}
}

func centerOffset(m Measurer, s string, w float64) float64 {
	tw := m.StringWidth(s)
	if tw >= w {
		return 0
	}
	return (w - tw) / 2
}

// InfoBlock renders a labelled party block (issuer or recipient) in the left
// column. hint is where the caller would like it to start; the block never
// overlaps the reserved QR footprint when it spans the right column, so full
// width blocks start below it.
func (l *Layout) InfoBlock(label, name string, lines []string, hint float64) float64 {
	y := hint
	if rb := l.reserved.Bottom(); rb > y && l.reserved.H > 0 {
		y = rb + sectionGap
	}

	colW := l.contentWidth() * 0.55

	l.doc.SetFont(l.family, "B", 9)
	l.doc.SetTextColor(110, 110, 110)
	l.doc.Text(pageMargin, y, label)
	l.doc.SetTextColor(0, 0, 0)
	y += lineHeight

	l.doc.SetFont(l.family, "B", 11)
	for _, ln := range Wrap(l.meas, name, colW) {
		l.doc.Text(pageMargin, y, ln)
		y += lineHeight
	}

	l.doc.SetFont(l.family, "", 10)
	for _, raw := range lines {
		if raw == "" {
			continue
		}
		for _, ln := range Wrap(l.meas, raw, colW) {
			l.doc.Text(pageMargin, y, ln)
			y += lineHeight
		}
	}

	return y + sectionGap
}

// ItemsTable renders the line items starting at startY and returns the cursor
// below the last row. Descriptions wrap; each row grows to fit its tallest
// cell. Quantity and rate columns appear only when some item carries them.
func (l *Layout) ItemsTable(data *models.InvoiceData, startY float64) float64 {
	l.doc.SetXY(pageMargin, startY)

	cw := l.contentWidth()
	currency := data.DisplayCurrency()
	withQty := data.HasQuantityColumns()

	var descW, qtyW, rateW, amtW float64
	if withQty {
		qtyW, rateW, amtW = 18.0, 30.0, 32.0
		descW = cw - qtyW - rateW - amtW
	} else {
		amtW = 36.0
		descW = cw - amtW
	}

	l.doc.SetFont(l.family, "B", 10)
	l.doc.SetFillColor(38, 50, 72)
	l.doc.SetTextColor(255, 255, 255)
	l.doc.CellFormat(descW, minRowHeight, l.lbl.description, "1", 0, "L", true, 0, "")
	if withQty {
		l.doc.CellFormat(qtyW, minRowHeight, l.lbl.quantity, "1", 0, "C", true, 0, "")
		l.doc.CellFormat(rateW, minRowHeight, l.lbl.unitRate, "1", 0, "R", true, 0, "")
	}
	l.doc.CellFormat(amtW, minRowHeight, l.lbl.amount, "1", 1, "R", true, 0, "")
	l.doc.SetTextColor(0, 0, 0)

	l.doc.SetFont(l.family, "", 10)
	for i, item := range data.Items {
		lines := Wrap(l.meas, item.Description, descW-4)
		rowH := float64(len(lines))*lineHeight + rowPadding
		if rowH < minRowHeight {
			rowH = minRowHeight
		}

		x := pageMargin
		y := l.doc.GetY()

		fill := i%2 == 1
		if fill {
			l.doc.SetFillColor(243, 245, 249)
		}

		l.doc.Rect(x, y, descW, rowH, boxStyle(fill))
		for j, ln := range lines {
			l.doc.Text(x+2, y+lineHeight*float64(j+1), ln)
		}
		x += descW

		if withQty {
			l.doc.Rect(x, y, qtyW, rowH, boxStyle(fill))
			if item.HasQuantity() {
				qty := l.nf.Format(item.Quantity)
				l.doc.Text(x+qtyW-2-l.meas.StringWidth(qty), y+lineHeight, qty)
			}
			x += qtyW

			l.doc.Rect(x, y, rateW, rowH, boxStyle(fill))
			if item.HasQuantity() {
				rate := l.nf.Format(item.UnitRate)
				l.doc.Text(x+rateW-2-l.meas.StringWidth(rate), y+lineHeight, rate)
			}
			x += rateW
		}

		amt := fmt.Sprintf("%s %s", l.nf.Format(item.Total()), currency)
		l.doc.Rect(x, y, amtW, rowH, boxStyle(fill))
		l.doc.Text(x+amtW-2-l.meas.StringWidth(amt), y+lineHeight, amt)

		l.doc.SetXY(pageMargin, y+rowH)
	}

	return l.doc.GetY() + sectionGap
}

func boxStyle(fill bool) string {
	if fill {
		return "FD"
	}
	return "D"
}

// TotalsBox renders subtotal, tax and grand total right-aligned under the
// table and returns the cursor below it
func (l *Layout) TotalsBox(data *models.InvoiceData, y float64) float64 {
	boxW := 70.0
	x := l.pageW - pageMargin - boxW
	currency := data.DisplayCurrency()

	row := func(label, value string, bold bool) {
		style := ""
		size := 10.0
		if bold {
			style = "B"
			size = 11
		}
		l.doc.SetFont(l.family, style, size)
		l.doc.SetXY(x, y)
		l.doc.CellFormat(boxW/2, lineHeight+1, label, "", 0, "L", false, 0, "")
		l.doc.CellFormat(boxW/2, lineHeight+1, value, "", 1, "R", false, 0, "")
		y += lineHeight + 1
	}

	row(l.lbl.subtotal, fmt.Sprintf("%s %s", l.nf.Format(data.Subtotal()), currency), false)
	if data.TaxRate > 0 {
		taxLabel := fmt.Sprintf("%s (%s%%)", l.lbl.tax, l.nf.Format(data.TaxRate))
		taxAmount := data.Total() - data.Subtotal()
		row(taxLabel, fmt.Sprintf("%s %s", l.nf.Format(taxAmount), currency), false)
	}

	l.doc.SetDrawColor(38, 50, 72)
	l.doc.Line(x, y, x+boxW, y)
	l.doc.SetDrawColor(0, 0, 0)
	y += 1.5
	row(l.lbl.total, fmt.Sprintf("%s %s", l.nf.Format(data.Total()), currency), true)

	return y + sectionGap
}

// TextSection renders a titled free-text block (note, payment terms). Blank
// body means no section and the cursor passes through untouched.
func (l *Layout) TextSection(title, body string, y float64) float64 {
	if strings.TrimSpace(body) == "" {
		return y
	}

	l.doc.SetFont(l.family, "B", 9)
	l.doc.SetTextColor(110, 110, 110)
	l.doc.Text(pageMargin, y, title)
	l.doc.SetTextColor(0, 0, 0)
	y += lineHeight

	l.doc.SetFont(l.family, "", 9)
	for _, ln := range Wrap(l.meas, body, l.contentWidth()) {
		l.doc.Text(pageMargin, y, ln)
		y += lineHeight
	}

	return y + sectionGap
}

// Footer is pinned near the bottom edge regardless of where the flow ended
func (l *Layout) Footer() {
	y := l.pageH - footerOffset
	l.doc.SetDrawColor(200, 200, 200)
	l.doc.Line(pageMargin, y-3, l.pageW-pageMargin, y-3)
	l.doc.SetDrawColor(0, 0, 0)

	l.doc.SetFont(l.family, "", 7)
	l.doc.SetTextColor(140, 140, 140)
	stamp := fmt.Sprintf("%s: %s", l.lbl.generatedAt, timeutil.Now().Format(timeutil.DisplayLayout))
	l.doc.Text(pageMargin, y, stamp)
	l.doc.SetTextColor(0, 0, 0)
}

// Overflows reports whether the flow cursor has run past the footer area
func (l *Layout) Overflows(y float64) bool {
	return y > l.pageH-footerOffset-sectionGap
}
