package pdf

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jung-kurt/gofpdf/v2"

	"faktura-backend/internal/invoice"
	"faktura-backend/internal/models"
)

// RenderError is returned when the document could not be produced at all
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("invoice render failed: %v", e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Document is a finished invoice PDF
type Document struct {
	Bytes    []byte
	Filename string

	// QRDegraded marks that QR generation failed and the document carries
	// the placeholder frame instead of a scannable code
	QRDegraded bool
}

// Renderer produces single-page invoice PDFs. Font loading is fatal; QR
// generation degrades to a placeholder.
type Renderer struct {
	fonts FontSource
	qr    QRProvider
}

func NewRenderer(fonts FontSource, qr QRProvider) *Renderer {
	if qr == nil {
		qr = &QREncoder{}
	}
	return &Renderer{fonts: fonts, qr: qr}
}

// Render lays out the invoice and returns the finished document. The input
// must already be validated.
func (r *Renderer) Render(ctx context.Context, data *models.InvoiceData) (*Document, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	registry := NewFontRegistry(r.fonts)
	family, err := registry.Register(ctx, doc, DefaultFamily)
	if err != nil {
		return nil, &RenderError{Err: err}
	}

	nf := invoice.NewFormatter(data.DisplayLocale())
	layout := NewLayout(doc, family, nf, data.DisplayLocale())

	y := layout.HeaderBand(data)

	degraded := false
	payload := invoice.EncodeIPS(data, data.Total())
	png, qrErr := r.qr.Render(payload)
	if qrErr != nil {
		log.Printf("[Renderer] QR generation failed for invoice %s, using placeholder: %v", data.InvoiceNumber, qrErr)
		png = nil
		degraded = true
	}
	layout.QRBlock(png)

	y = layout.InfoBlock(layout.lbl.from, data.Issuer.LegalName, issuerLines(&data.Issuer), y)
	y = layout.InfoBlock(layout.lbl.billTo, data.Recipient.LegalName, partyLines(&data.Recipient), y)
	y = layout.ItemsTable(data, y)
	y = layout.TotalsBox(data, y)
	y = layout.TextSection(layout.lbl.note, data.Note, y)
	y = layout.TextSection(layout.lbl.terms, data.Terms, y)
	layout.Footer()

	if layout.Overflows(y) {
		log.Printf("[Renderer] invoice %s content overflows the page, output may be clipped", data.InvoiceNumber)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, &RenderError{Err: err}
	}

	return &Document{
		Bytes:      buf.Bytes(),
		Filename:   FilenameFor(data),
		QRDegraded: degraded,
	}, nil
}

func issuerLines(p *models.Issuer) []string {
	lines := partyLines(&p.Party)
	if p.ContactEmail != "" {
		lines = append(lines, p.ContactEmail)
	}
	if p.BankAccount != "" {
		lines = append(lines, p.BankAccount)
	}
	return lines
}

func partyLines(p *models.Party) []string {
	var lines []string
	if p.Address != "" {
		lines = append(lines, p.Address)
	}
	if p.TaxID != "" {
		lines = append(lines, "PIB: "+p.TaxID)
	}
	if p.RegistrationID != "" {
		lines = append(lines, "MB: "+p.RegistrationID)
	}
	return lines
}

// FilenameFor derives the download name for an invoice: faktura-<n>.pdf for
// Serbian documents, invoice-<n>.pdf otherwise, with unsafe characters in the
// number replaced
func FilenameFor(data *models.InvoiceData) string {
	prefix := "invoice"
	if data.DisplayLocale() == "sr-RS" {
		prefix = "faktura"
	}
	num := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, data.InvoiceNumber)
	return fmt.Sprintf("%s-%s.pdf", prefix, num)
}
