package services

import (
	"context"
	"log"
	"time"

	"faktura-backend/internal/cache"
	"faktura-backend/internal/metrics"
	"faktura-backend/internal/models"
	"faktura-backend/internal/pdf"
	"faktura-backend/internal/repositories"
)

// InvoiceService runs the render pipeline behind the HTTP surface: cache
// lookup, render, archive row, cache fill.
type InvoiceService struct {
	Renderer *pdf.Renderer
	Repo     *repositories.InvoiceRepository
}

func NewInvoiceService(renderer *pdf.Renderer, repo *repositories.InvoiceRepository) *InvoiceService {
	return &InvoiceService{Renderer: renderer, Repo: repo}
}

// Generate validates the input, renders the document and records the archive
// row. Identical inputs are served from the render cache without touching the
// archive again.
func (s *InvoiceService) Generate(ctx context.Context, data *models.InvoiceData) (*pdf.Document, error) {
	if err := data.Validate(); err != nil {
		return nil, &models.ValidationError{Err: err}
	}

	key, keyOK := cache.RenderKey(data)
	if keyOK {
		if cached, ok := cache.GetCachedRender(ctx, key); ok {
			metrics.CacheHitsTotal.WithLabelValues("render", "hit").Inc()
			metrics.RendersTotal.WithLabelValues("cached").Inc()
			return &pdf.Document{Bytes: cached, Filename: cachedFilename(data)}, nil
		}
		metrics.CacheHitsTotal.WithLabelValues("render", "miss").Inc()
	}

	start := time.Now()
	doc, err := s.Renderer.Render(ctx, data)
	if err != nil {
		metrics.RendersTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.RenderDuration.Observe(time.Since(start).Seconds())
	metrics.RendersTotal.WithLabelValues("ok").Inc()
	if doc.QRDegraded {
		metrics.QRFallbacksTotal.Inc()
	}

	if s.Repo != nil {
		rec := &models.InvoiceRecord{
			InvoiceNumber: data.InvoiceNumber,
			IssuerName:    data.Issuer.LegalName,
			RecipientName: data.Recipient.LegalName,
			Subtotal:      data.Subtotal(),
			TaxRate:       data.TaxRate,
			Total:         data.Total(),
			Currency:      data.DisplayCurrency(),
			Filename:      doc.Filename,
		}
		if err := s.Repo.Record(ctx, rec); err != nil {
			// The caller still gets their document; the archive row is lost
			log.Printf("[InvoiceService] failed to archive invoice %s: %v", data.InvoiceNumber, err)
		}
	}

	// Degraded documents are not cached so a later render can pick up a
	// working QR encoder
	if keyOK && !doc.QRDegraded {
		cache.CacheRender(ctx, key, doc.Bytes)
	}

	return doc, nil
}

// ListArchive returns archived invoice rows, newest first
func (s *InvoiceService) ListArchive(ctx context.Context, limit, offset int) ([]*models.InvoiceRecord, int, error) {
	records, err := s.Repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// cachedFilename rebuilds the download name for a cache hit, where no
// Document was produced by the renderer
func cachedFilename(data *models.InvoiceData) string {
	return pdf.FilenameFor(data)
}
