package pdf

import (
	"context"
	"testing"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faktura-backend/internal/invoice"
	"faktura-backend/internal/models"
)

func newTestLayout(t *testing.T, locale string) (*gofpdf.Fpdf, *Layout) {
	t.Helper()
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	family, err := NewFontRegistry(nil).Register(context.Background(), doc, DefaultFamily)
	require.NoError(t, err)

	return doc, NewLayout(doc, family, invoice.NewFormatter(locale), locale)
}

func TestLabelsForLocales(t *testing.T) {
	assert.Equal(t, "FAKTURA", labelsFor("sr-RS").invoiceTitle)
	assert.Equal(t, "INVOICE", labelsFor("en-US").invoiceTitle)
	assert.Equal(t, "INVOICE", labelsFor("").invoiceTitle)
}

func TestHeaderBandReturnsFlowStart(t *testing.T) {
	_, layout := newTestLayout(t, "en-US")

	y := layout.HeaderBand(&models.InvoiceData{InvoiceNumber: "2025-001", IssueDate: "2025-06-01"})

	assert.Equal(t, postHeaderY, y)
	assert.Greater(t, y, headerHeight)
}

func TestQRBlockReservesFootprint(t *testing.T) {
	_, layout := newTestLayout(t, "sr-RS")

	layout.QRBlock(nil)

	assert.Equal(t, postHeaderY, layout.reserved.Y)
	assert.Equal(t, qrSize, layout.reserved.W)
	assert.Equal(t, postHeaderY+qrSize+qrLabelHeight, layout.reserved.Bottom())
}

func TestInfoBlockStartsBelowReservedRegion(t *testing.T) {
	_, layout := newTestLayout(t, "en-US")
	layout.QRBlock(nil)

	next := layout.InfoBlock("From", "Acme LLC", []string{"Main Street 1"}, postHeaderY)

	assert.Greater(t, next, layout.reserved.Bottom())
}

func TestInfoBlockHonoursLaterHint(t *testing.T) {
	_, layout := newTestLayout(t, "en-US")
	layout.QRBlock(nil)

	hint := layout.reserved.Bottom() + 40
	next := layout.InfoBlock("Bill To", "Client", nil, hint)

	assert.Greater(t, next, hint)
}

func TestItemsTableAdvancesCursorPerRow(t *testing.T) {
	_, layout := newTestLayout(t, "en-US")

	one := &models.InvoiceData{Items: []models.LineItem{{Description: "Consulting", Amount: 100}}}
	three := &models.InvoiceData{Items: []models.LineItem{
		{Description: "Consulting", Amount: 100},
		{Description: "Support", Amount: 50},
		{Description: "Hosting", Amount: 25},
	}}

	start := 80.0
	afterOne := layout.ItemsTable(one, start)
	afterThree := layout.ItemsTable(three, start)

	assert.Greater(t, afterOne, start)
	assert.Greater(t, afterThree, afterOne)
}

func TestItemsTableGrowsRowForWrappedDescription(t *testing.T) {
	_, layout := newTestLayout(t, "en-US")

	short := &models.InvoiceData{Items: []models.LineItem{{Description: "Kratko", Amount: 10}}}
	long := &models.InvoiceData{Items: []models.LineItem{{
		Description: "Detailed engineering services covering architecture review, implementation of the payment integration and two rounds of acceptance testing on staging",
		Amount:      10,
	}}}

	start := 80.0
	assert.Greater(t, layout.ItemsTable(long, start), layout.ItemsTable(short, start))
}

func TestTotalsBoxAddsTaxRowOnlyWhenTaxed(t *testing.T) {
	_, layout := newTestLayout(t, "en-US")

	flat := &models.InvoiceData{Items: []models.LineItem{{Description: "A", Amount: 100}}}
	taxed := &models.InvoiceData{Items: []models.LineItem{{Description: "A", Amount: 100}}, TaxRate: 20}

	start := 150.0
	assert.Greater(t, layout.TotalsBox(taxed, start), layout.TotalsBox(flat, start))
}

func TestDisplayDate(t *testing.T) {
	assert.Equal(t, "07.03.2025", displayDate("2025-03-07"))
	assert.Equal(t, "7. mart 2025.", displayDate("7. mart 2025."))
	assert.Equal(t, "", displayDate(""))
}

func TestTextSectionSkipsBlankBody(t *testing.T) {
	_, layout := newTestLayout(t, "en-US")

	y := 200.0
	assert.Equal(t, y, layout.TextSection("Note", "", y))
	assert.Equal(t, y, layout.TextSection("Note", "   \n  ", y))
	assert.Equal(t, y, layout.TextSection("Note", "\t\n\t", y))
	assert.Greater(t, layout.TextSection("Note", "Payable within 15 days.", y), y)
}

func TestOverflows(t *testing.T) {
	_, layout := newTestLayout(t, "en-US")

	assert.False(t, layout.Overflows(200))
	assert.True(t, layout.Overflows(layout.pageH))
}
