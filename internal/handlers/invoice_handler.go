package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"faktura-backend/internal/cache"
	"faktura-backend/internal/middleware"
	"faktura-backend/internal/models"
	"faktura-backend/internal/pdf"
	"faktura-backend/internal/services"
	"faktura-backend/pkg/utils"
)

type InvoiceHandler struct {
	Service *services.InvoiceService
}

func NewInvoiceHandler(s *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{Service: s}
}

// Generate renders an invoice PDF and streams it back as an attachment
func (h *InvoiceHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var data models.InvoiceData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc, err := h.Service.Generate(r.Context(), &data)
	if err != nil {
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			utils.Error(w, http.StatusBadRequest, ve.Error())
			return
		}
		var fe *pdf.FontLoadError
		if errors.As(err, &fe) {
			utils.Error(w, http.StatusServiceUnavailable, "Document typeface unavailable")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "Failed to render invoice")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, doc.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Bytes)))
	if doc.QRDegraded {
		w.Header().Set("X-QR-Degraded", "true")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(doc.Bytes)
}

// ListArchive returns archived invoice metadata, newest first
func (h *InvoiceHandler) ListArchive(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}

	records, total, err := h.Service.ListArchive(r.Context(), limit, offset)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to list invoices")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"invoices": records,
		"total":    total,
	})
}

// FlushRenderCache drops every cached document. Needed after the font assets
// or branding change, since cached PDFs embed the old typeface.
func (h *InvoiceHandler) FlushRenderCache(w http.ResponseWriter, r *http.Request) {
	cache.InvalidateRenderCache(r.Context())

	operator := "unknown"
	if username, ok := middleware.GetUsernameFromContext(r.Context()); ok {
		operator = username
	}
	log.Printf("[InvoiceHandler] render cache flushed by %s", operator)

	utils.JSON(w, http.StatusOK, map[string]string{"status": "flushed"})
}
