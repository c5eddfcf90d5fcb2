package repositories

import (
	"context"

	"faktura-backend/internal/models"
	"faktura-backend/internal/timeutil"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InvoiceRepository archives generated invoice metadata
type InvoiceRepository struct {
	DB *pgxpool.Pool
}

func NewInvoiceRepository(db *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{DB: db}
}

// Record stores the archive row for a rendered invoice
func (r *InvoiceRepository) Record(ctx context.Context, rec *models.InvoiceRecord) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO invoices(invoice_number, issuer_name, recipient_name, subtotal, tax_rate, total, currency, filename)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		rec.InvoiceNumber, rec.IssuerName, rec.RecipientName,
		rec.Subtotal, rec.TaxRate, rec.Total, rec.Currency, rec.Filename,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return err
	}
	rec.CreatedAt = timeutil.ToLocal(rec.CreatedAt)
	return nil
}

// List returns archive rows, newest first
func (r *InvoiceRepository) List(ctx context.Context, limit, offset int) ([]*models.InvoiceRecord, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	rows, err := r.DB.Query(ctx,
		`SELECT id, invoice_number, issuer_name, recipient_name, subtotal, tax_rate, total, currency, filename, created_at
		 FROM invoices
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.InvoiceRecord
	for rows.Next() {
		var rec models.InvoiceRecord
		if err := rows.Scan(&rec.ID, &rec.InvoiceNumber, &rec.IssuerName, &rec.RecipientName,
			&rec.Subtotal, &rec.TaxRate, &rec.Total, &rec.Currency, &rec.Filename, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.CreatedAt = timeutil.ToLocal(rec.CreatedAt)
		records = append(records, &rec)
	}

	return records, rows.Err()
}

// Count returns the total number of archived invoices
func (r *InvoiceRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx, "SELECT COUNT(*) FROM invoices").Scan(&n)
	return n, err
}
