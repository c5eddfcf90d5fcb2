package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faktura-backend/internal/middleware"
	"faktura-backend/internal/models"
	"faktura-backend/internal/pdf"
	"faktura-backend/internal/services"
)

func newTestInvoiceHandler() *InvoiceHandler {
	return NewInvoiceHandler(services.NewInvoiceService(pdf.NewRenderer(nil, nil), nil))
}

func generateRequest(t *testing.T, data *models.InvoiceData) *http.Request {
	t.Helper()
	body, err := json.Marshal(data)
	require.NoError(t, err)
	return httptest.NewRequest(http.MethodPost, "/api/invoices/generate", bytes.NewReader(body))
}

func TestGenerateStreamsPDFAttachment(t *testing.T) {
	h := newTestInvoiceHandler()

	data := &models.InvoiceData{
		Issuer:        models.Issuer{Party: models.Party{LegalName: "Test doo"}, BankAccount: "160-1-10"},
		Recipient:     models.Party{LegalName: "Klijent doo"},
		InvoiceNumber: "2025-044",
		Items:         []models.LineItem{{Description: "Usluge", Amount: 500}},
	}

	rec := httptest.NewRecorder()
	h.Generate(rec, generateRequest(t, data))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "faktura-2025-044.pdf")
	assert.Equal(t, "%PDF", rec.Body.String()[:4])
}

func TestGenerateRejectsMalformedBody(t *testing.T) {
	h := newTestInvoiceHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/invoices/generate", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateRejectsInvalidInvoice(t *testing.T) {
	h := newTestInvoiceHandler()

	data := &models.InvoiceData{
		Issuer:        models.Issuer{Party: models.Party{LegalName: "Test doo"}},
		Recipient:     models.Party{LegalName: "Klijent doo"},
		InvoiceNumber: "2025-045",
		// no items
	}

	rec := httptest.NewRecorder()
	h.Generate(rec, generateRequest(t, data))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "line item")
}

func TestFlushRenderCache(t *testing.T) {
	h := newTestInvoiceHandler()

	req := httptest.NewRequest(http.MethodDelete, "/api/invoices/cache", nil)
	ctx := context.WithValue(req.Context(), middleware.UsernameKey, "admin")

	rec := httptest.NewRecorder()
	h.FlushRenderCache(rec, req.WithContext(ctx))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "flushed", resp["status"])
}
