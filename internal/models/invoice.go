package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Party identifies one side of an invoice (issuer or recipient)
type Party struct {
	LegalName      string `json:"legal_name"`
	Address        string `json:"address"`
	TaxID          string `json:"tax_id"`
	RegistrationID string `json:"registration_id"`
}

// Issuer is the invoicing party, with payment details
type Issuer struct {
	Party
	ContactEmail string `json:"contact_email"`
	BankAccount  string `json:"bank_account"`
}

// LineItem is a single billed position. Either Quantity/UnitRate are set
// (line total = quantity x rate) or Amount carries a flat line total.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity,omitempty"`
	UnitRate    float64 `json:"unit_rate,omitempty"`
	Amount      float64 `json:"amount,omitempty"`
}

// Total returns the line total for this item
func (li LineItem) Total() float64 {
	if li.Quantity != 0 || li.UnitRate != 0 {
		return li.Quantity * li.UnitRate
	}
	return li.Amount
}

// HasQuantity reports whether this item uses the quantity x rate form
func (li LineItem) HasQuantity() bool {
	return li.Quantity != 0 || li.UnitRate != 0
}

// InvoiceData is the validated input to the document pipeline.
// Producers (form layer, API clients) are responsible for field-level
// validation; Validate only enforces the pipeline preconditions.
type InvoiceData struct {
	Issuer        Issuer     `json:"issuer"`
	Recipient     Party      `json:"recipient"`
	InvoiceNumber string     `json:"invoice_number"`
	IssueDate     string     `json:"issue_date"`
	Items         []LineItem `json:"items"`
	TaxRate       float64    `json:"tax_rate,omitempty"`
	Note          string     `json:"note,omitempty"`
	Terms         string     `json:"terms,omitempty"`
	PaymentCode   string     `json:"payment_code,omitempty"`
	Currency      string     `json:"currency,omitempty"`
	Locale        string     `json:"locale,omitempty"`
}

// DefaultPaymentCode is the NBS IPS payment classification code used
// when the client does not supply one.
const DefaultPaymentCode = "221"

// Subtotal returns the sum of all line totals
func (d *InvoiceData) Subtotal() float64 {
	var sum float64
	for _, item := range d.Items {
		sum += item.Total()
	}
	return sum
}

// Total returns the invoice total including tax, if any
func (d *InvoiceData) Total() float64 {
	return d.Subtotal() * (1 + d.TaxRate/100)
}

// RoutingCode returns the payment classification code for the QR payload
func (d *InvoiceData) RoutingCode() string {
	if d.PaymentCode == "" {
		return DefaultPaymentCode
	}
	return d.PaymentCode
}

// DisplayLocale returns the locale used for number/date presentation
func (d *InvoiceData) DisplayLocale() string {
	if d.Locale == "" {
		return "sr-RS"
	}
	return d.Locale
}

// DisplayCurrency returns the currency label printed on the document
func (d *InvoiceData) DisplayCurrency() string {
	if d.Currency != "" {
		return d.Currency
	}
	if strings.HasPrefix(d.DisplayLocale(), "sr") {
		return "RSD"
	}
	return "USD"
}

// HasQuantityColumns reports whether any item uses the quantity x rate form,
// which switches the items table to the five-column layout
func (d *InvoiceData) HasQuantityColumns() bool {
	for _, item := range d.Items {
		if item.HasQuantity() {
			return true
		}
	}
	return false
}

// Validate checks the pipeline preconditions for a render
// ValidationError marks input the pipeline refuses to render, as opposed to
// failures inside the pipeline itself
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func (d *InvoiceData) Validate() error {
	if strings.TrimSpace(d.Issuer.LegalName) == "" {
		return errors.New("issuer legal name is required")
	}
	if strings.TrimSpace(d.Recipient.LegalName) == "" {
		return errors.New("recipient legal name is required")
	}
	if strings.TrimSpace(d.InvoiceNumber) == "" {
		return errors.New("invoice number is required")
	}
	if len(d.Items) == 0 {
		return errors.New("at least one line item is required")
	}
	for i, item := range d.Items {
		if strings.TrimSpace(item.Description) == "" {
			return fmt.Errorf("item %d: description is required", i+1)
		}
		if item.Quantity < 0 || item.UnitRate < 0 || item.Amount < 0 {
			return fmt.Errorf("item %d: amounts must not be negative", i+1)
		}
		if item.Total() < 0 {
			return fmt.Errorf("item %d: line total must not be negative", i+1)
		}
	}
	if d.TaxRate < 0 || d.TaxRate > 100 {
		return errors.New("tax rate must be between 0 and 100")
	}
	for _, r := range d.RoutingCode() {
		if r < '0' || r > '9' {
			return errors.New("payment code must contain digits only")
		}
	}
	return nil
}

// InvoiceRecord is an archive row for a generated invoice. The PDF itself is
// not persisted, only the metadata needed for the listing.
type InvoiceRecord struct {
	ID            int       `json:"id"`
	InvoiceNumber string    `json:"invoice_number"`
	IssuerName    string    `json:"issuer_name"`
	RecipientName string    `json:"recipient_name"`
	Subtotal      float64   `json:"subtotal"`
	TaxRate       float64   `json:"tax_rate"`
	Total         float64   `json:"total"`
	Currency      string    `json:"currency"`
	Filename      string    `json:"filename"`
	CreatedAt     time.Time `json:"created_at"`
}
