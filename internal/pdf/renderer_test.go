package pdf

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faktura-backend/internal/models"
)

type failingFontSource struct{}

func (failingFontSource) Regular(ctx context.Context) ([]byte, error) {
	return nil, errors.New("bucket unreachable")
}

func (failingFontSource) Bold(ctx context.Context) ([]byte, error) {
	return nil, errors.New("bucket unreachable")
}

type failingQRProvider struct{}

func (failingQRProvider) Render(payload string) ([]byte, error) {
	return nil, &QRGenerationError{Err: errors.New("encode failed")}
}

func sampleInvoice() *models.InvoiceData {
	return &models.InvoiceData{
		Issuer: models.Issuer{
			Party: models.Party{
				LegalName: "Test doo",
				Address:   "Bulevar oslobodjenja 1, Beograd",
				TaxID:     "123456789",
			},
			ContactEmail: "office@test.rs",
			BankAccount:  "160-123456789-10",
		},
		Recipient: models.Party{
			LegalName: "Klijent doo",
			Address:   "Nemanjina 4, Beograd",
		},
		InvoiceNumber: "2025-017",
		IssueDate:     "2025-06-01",
		Items: []models.LineItem{
			{Description: "Razvoj softvera", Quantity: 10, UnitRate: 120},
			{Description: "Odrzavanje", Amount: 300},
		},
		TaxRate: 20,
		Note:    "Obveznik nije u sistemu PDV-a.",
	}
}

func TestRenderProducesPDF(t *testing.T) {
	r := NewRenderer(nil, nil)

	doc, err := r.Render(context.Background(), sampleInvoice())
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.True(t, len(doc.Bytes) > 4)
	assert.Equal(t, "%PDF", string(doc.Bytes[:4]))
	assert.False(t, doc.QRDegraded)
}

func TestRenderFilenameFollowsLocale(t *testing.T) {
	r := NewRenderer(nil, nil)

	sr := sampleInvoice()
	doc, err := r.Render(context.Background(), sr)
	require.NoError(t, err)
	assert.Equal(t, "faktura-2025-017.pdf", doc.Filename)

	en := sampleInvoice()
	en.Locale = "en-US"
	doc, err = r.Render(context.Background(), en)
	require.NoError(t, err)
	assert.Equal(t, "invoice-2025-017.pdf", doc.Filename)
}

func TestRenderSanitizesFilename(t *testing.T) {
	r := NewRenderer(nil, nil)

	data := sampleInvoice()
	data.InvoiceNumber = "17/2025"
	doc, err := r.Render(context.Background(), data)
	require.NoError(t, err)

	assert.Equal(t, "faktura-17-2025.pdf", doc.Filename)
}

func TestRenderFontFailureIsFatal(t *testing.T) {
	r := NewRenderer(failingFontSource{}, nil)

	doc, err := r.Render(context.Background(), sampleInvoice())
	require.Error(t, err)
	assert.Nil(t, doc)

	var re *RenderError
	require.ErrorAs(t, err, &re)
	var fe *FontLoadError
	assert.ErrorAs(t, err, &fe)
}

func TestRenderQRFailureDegrades(t *testing.T) {
	r := NewRenderer(nil, failingQRProvider{})

	doc, err := r.Render(context.Background(), sampleInvoice())
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.True(t, doc.QRDegraded)
	assert.Equal(t, "%PDF", string(doc.Bytes[:4]))
}

func TestQREncoderRendersPNG(t *testing.T) {
	e := &QREncoder{}

	png, err := e.Render("K:PR|V:01|C:1|R:160123456789|N:Test doo|I:RSD1440,00|SF:221")
	require.NoError(t, err)

	require.True(t, len(png) > 8)
	assert.Equal(t, "\x89PNG", string(png[:4]))
}
