package repositories

import (
	"context"
	"errors"

	"faktura-backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrTemplateNotFound is returned when no template matches the requested id
var ErrTemplateNotFound = errors.New("template not found")

// TemplateRepository stores reusable issuer and recipient profiles
type TemplateRepository struct {
	DB *pgxpool.Pool
}

func NewTemplateRepository(db *pgxpool.Pool) *TemplateRepository {
	return &TemplateRepository{DB: db}
}

// SaveCompany upserts an issuer profile by name
func (r *TemplateRepository) SaveCompany(ctx context.Context, t *models.CompanyTemplate) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO company_templates(name, legal_name, address, tax_id, registration_id, contact_email, bank_account)
		 VALUES($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (name) DO UPDATE SET
		   legal_name = EXCLUDED.legal_name,
		   address = EXCLUDED.address,
		   tax_id = EXCLUDED.tax_id,
		   registration_id = EXCLUDED.registration_id,
		   contact_email = EXCLUDED.contact_email,
		   bank_account = EXCLUDED.bank_account,
		   updated_at = NOW()
		 RETURNING id, created_at`,
		t.Name, t.LegalName, t.Address, t.TaxID, t.RegistrationID, t.ContactEmail, t.BankAccount,
	).Scan(&t.ID, &t.CreatedAt)
}

// ListCompany returns all issuer profiles ordered by name
func (r *TemplateRepository) ListCompany(ctx context.Context) ([]*models.CompanyTemplate, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, legal_name, address, tax_id, registration_id, contact_email, bank_account, created_at
		 FROM company_templates ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []*models.CompanyTemplate
	for rows.Next() {
		var t models.CompanyTemplate
		if err := rows.Scan(&t.ID, &t.Name, &t.LegalName, &t.Address, &t.TaxID,
			&t.RegistrationID, &t.ContactEmail, &t.BankAccount, &t.CreatedAt); err != nil {
			return nil, err
		}
		templates = append(templates, &t)
	}

	return templates, rows.Err()
}

// GetCompany returns one issuer profile
func (r *TemplateRepository) GetCompany(ctx context.Context, id int) (*models.CompanyTemplate, error) {
	var t models.CompanyTemplate
	err := r.DB.QueryRow(ctx,
		`SELECT id, name, legal_name, address, tax_id, registration_id, contact_email, bank_account, created_at
		 FROM company_templates WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name, &t.LegalName, &t.Address, &t.TaxID,
		&t.RegistrationID, &t.ContactEmail, &t.BankAccount, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateCompany rewrites an issuer profile in place
func (r *TemplateRepository) UpdateCompany(ctx context.Context, t *models.CompanyTemplate) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE company_templates
		 SET name = $2, legal_name = $3, address = $4, tax_id = $5,
		     registration_id = $6, contact_email = $7, bank_account = $8, updated_at = NOW()
		 WHERE id = $1`,
		t.ID, t.Name, t.LegalName, t.Address, t.TaxID, t.RegistrationID, t.ContactEmail, t.BankAccount)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

// DeleteCompany removes an issuer profile
func (r *TemplateRepository) DeleteCompany(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, "DELETE FROM company_templates WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

// SaveClient upserts a recipient profile by name
func (r *TemplateRepository) SaveClient(ctx context.Context, t *models.ClientTemplate) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO client_templates(name, legal_name, address, tax_id, registration_id)
		 VALUES($1, $2, $3, $4, $5)
		 ON CONFLICT (name) DO UPDATE SET
		   legal_name = EXCLUDED.legal_name,
		   address = EXCLUDED.address,
		   tax_id = EXCLUDED.tax_id,
		   registration_id = EXCLUDED.registration_id,
		   updated_at = NOW()
		 RETURNING id, created_at`,
		t.Name, t.LegalName, t.Address, t.TaxID, t.RegistrationID,
	).Scan(&t.ID, &t.CreatedAt)
}

// ListClient returns all recipient profiles ordered by name
func (r *TemplateRepository) ListClient(ctx context.Context) ([]*models.ClientTemplate, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, legal_name, address, tax_id, registration_id, created_at
		 FROM client_templates ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []*models.ClientTemplate
	for rows.Next() {
		var t models.ClientTemplate
		if err := rows.Scan(&t.ID, &t.Name, &t.LegalName, &t.Address, &t.TaxID,
			&t.RegistrationID, &t.CreatedAt); err != nil {
			return nil, err
		}
		templates = append(templates, &t)
	}

	return templates, rows.Err()
}

// GetClient returns one recipient profile
func (r *TemplateRepository) GetClient(ctx context.Context, id int) (*models.ClientTemplate, error) {
	var t models.ClientTemplate
	err := r.DB.QueryRow(ctx,
		`SELECT id, name, legal_name, address, tax_id, registration_id, created_at
		 FROM client_templates WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name, &t.LegalName, &t.Address, &t.TaxID, &t.RegistrationID, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateClient rewrites a recipient profile in place
func (r *TemplateRepository) UpdateClient(ctx context.Context, t *models.ClientTemplate) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE client_templates
		 SET name = $2, legal_name = $3, address = $4, tax_id = $5,
		     registration_id = $6, updated_at = NOW()
		 WHERE id = $1`,
		t.ID, t.Name, t.LegalName, t.Address, t.TaxID, t.RegistrationID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

// DeleteClient removes a recipient profile
func (r *TemplateRepository) DeleteClient(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, "DELETE FROM client_templates WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

// ImportAll replaces nothing and upserts every profile in the export envelope
// inside one transaction
func (r *TemplateRepository) ImportAll(ctx context.Context, export *models.TemplateExport) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, t := range export.Company {
		if err := tx.QueryRow(ctx,
			`INSERT INTO company_templates(name, legal_name, address, tax_id, registration_id, contact_email, bank_account)
			 VALUES($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (name) DO UPDATE SET
			   legal_name = EXCLUDED.legal_name,
			   address = EXCLUDED.address,
			   tax_id = EXCLUDED.tax_id,
			   registration_id = EXCLUDED.registration_id,
			   contact_email = EXCLUDED.contact_email,
			   bank_account = EXCLUDED.bank_account,
			   updated_at = NOW()
			 RETURNING id, created_at`,
			t.Name, t.LegalName, t.Address, t.TaxID, t.RegistrationID, t.ContactEmail, t.BankAccount,
		).Scan(&t.ID, &t.CreatedAt); err != nil {
			return err
		}
	}

	for _, t := range export.Client {
		if err := tx.QueryRow(ctx,
			`INSERT INTO client_templates(name, legal_name, address, tax_id, registration_id)
			 VALUES($1, $2, $3, $4, $5)
			 ON CONFLICT (name) DO UPDATE SET
			   legal_name = EXCLUDED.legal_name,
			   address = EXCLUDED.address,
			   tax_id = EXCLUDED.tax_id,
			   registration_id = EXCLUDED.registration_id,
			   updated_at = NOW()
			 RETURNING id, created_at`,
			t.Name, t.LegalName, t.Address, t.TaxID, t.RegistrationID,
		).Scan(&t.ID, &t.CreatedAt); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
