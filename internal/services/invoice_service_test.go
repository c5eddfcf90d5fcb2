package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faktura-backend/internal/models"
	"faktura-backend/internal/pdf"
)

func validInvoice() *models.InvoiceData {
	return &models.InvoiceData{
		Issuer: models.Issuer{
			Party:       models.Party{LegalName: "Test doo"},
			BankAccount: "160-123456789-10",
		},
		Recipient:     models.Party{LegalName: "Klijent doo"},
		InvoiceNumber: "2025-001",
		Items:         []models.LineItem{{Description: "Usluge", Amount: 1000}},
	}
}

func TestGenerateReturnsDocument(t *testing.T) {
	s := NewInvoiceService(pdf.NewRenderer(nil, nil), nil)

	doc, err := s.Generate(context.Background(), validInvoice())
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, "faktura-2025-001.pdf", doc.Filename)
	assert.Equal(t, "%PDF", string(doc.Bytes[:4]))
}

func TestGenerateRejectsInvalidInput(t *testing.T) {
	s := NewInvoiceService(pdf.NewRenderer(nil, nil), nil)

	data := validInvoice()
	data.Items = nil

	doc, err := s.Generate(context.Background(), data)
	require.Error(t, err)
	assert.Nil(t, doc)

	var ve *models.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestGenerateRejectsBadPaymentCode(t *testing.T) {
	s := NewInvoiceService(pdf.NewRenderer(nil, nil), nil)

	data := validInvoice()
	data.PaymentCode = "ABC"

	_, err := s.Generate(context.Background(), data)
	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
}
