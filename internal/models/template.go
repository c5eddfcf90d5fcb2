package models

import "time"

// CompanyTemplate is a reusable issuer profile
type CompanyTemplate struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	LegalName      string    `json:"legal_name"`
	Address        string    `json:"address"`
	TaxID          string    `json:"tax_id"`
	RegistrationID string    `json:"registration_id"`
	ContactEmail   string    `json:"contact_email"`
	BankAccount    string    `json:"bank_account"`
	CreatedAt      time.Time `json:"created_at"`
}

// ClientTemplate is a reusable recipient profile
type ClientTemplate struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	LegalName      string    `json:"legal_name"`
	Address        string    `json:"address"`
	TaxID          string    `json:"tax_id"`
	RegistrationID string    `json:"registration_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// TemplateExport is the envelope used by the export/import endpoints
type TemplateExport struct {
	Company []*CompanyTemplate `json:"company_templates"`
	Client  []*ClientTemplate  `json:"client_templates"`
}
