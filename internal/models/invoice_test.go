package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInvoice() *InvoiceData {
	return &InvoiceData{
		Issuer: Issuer{
			Party: Party{
				LegalName: "Test d.o.o.",
				Address:   "Bulevar oslobodjenja 1\n21000 Novi Sad",
				TaxID:     "123456789",
			},
			ContactEmail: "office@test.rs",
			BankAccount:  "160-1234567-89",
		},
		Recipient: Party{
			LegalName: "Klijent d.o.o.",
			Address:   "Glavna 2\n11000 Beograd",
		},
		InvoiceNumber: "2025-001",
		IssueDate:     "2025-09-01",
		Items: []LineItem{
			{Description: "Usluga", Amount: 1000},
		},
	}
}

func TestSubtotalSumsFlatAmounts(t *testing.T) {
	d := validInvoice()
	d.Items = []LineItem{
		{Description: "a", Amount: 100.5},
		{Description: "b", Amount: 200},
		{Description: "c", Amount: 0},
	}
	assert.InDelta(t, 300.5, d.Subtotal(), 1e-9)
	assert.InDelta(t, 300.5, d.Total(), 1e-9)
}

func TestSubtotalIsOrderIndependent(t *testing.T) {
	d := validInvoice()
	d.Items = []LineItem{
		{Description: "a", Amount: 12.34},
		{Description: "b", Quantity: 3, UnitRate: 25},
		{Description: "c", Amount: 0.01},
	}
	want := d.Subtotal()

	d.Items[0], d.Items[2] = d.Items[2], d.Items[0]
	assert.InDelta(t, want, d.Subtotal(), 1e-9)
}

func TestQuantityRateLineTotal(t *testing.T) {
	item := LineItem{Description: "dev", Quantity: 2.5, UnitRate: 40}
	assert.InDelta(t, 100, item.Total(), 1e-9)
	assert.True(t, item.HasQuantity())

	flat := LineItem{Description: "fee", Amount: 55}
	assert.InDelta(t, 55, flat.Total(), 1e-9)
	assert.False(t, flat.HasQuantity())
}

func TestTotalAppliesTaxRate(t *testing.T) {
	d := validInvoice()
	d.Items = []LineItem{{Description: "a", Quantity: 10, UnitRate: 100}}
	d.TaxRate = 20
	assert.InDelta(t, 1000, d.Subtotal(), 1e-9)
	assert.InDelta(t, 1200, d.Total(), 1e-9)
}

func TestValidate(t *testing.T) {
	require.NoError(t, validInvoice().Validate())

	tests := []struct {
		name   string
		mutate func(*InvoiceData)
	}{
		{"missing issuer name", func(d *InvoiceData) { d.Issuer.LegalName = " " }},
		{"missing recipient name", func(d *InvoiceData) { d.Recipient.LegalName = "" }},
		{"missing invoice number", func(d *InvoiceData) { d.InvoiceNumber = "" }},
		{"no items", func(d *InvoiceData) { d.Items = nil }},
		{"blank description", func(d *InvoiceData) { d.Items[0].Description = "  " }},
		{"negative amount", func(d *InvoiceData) { d.Items[0].Amount = -1 }},
		{"negative rate", func(d *InvoiceData) { d.Items[0] = LineItem{Description: "x", Quantity: 1, UnitRate: -5} }},
		{"tax rate out of range", func(d *InvoiceData) { d.TaxRate = 120 }},
		{"non-digit payment code", func(d *InvoiceData) { d.PaymentCode = "22a" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validInvoice()
			tt.mutate(d)
			assert.Error(t, d.Validate())
		})
	}
}

func TestDefaults(t *testing.T) {
	d := validInvoice()
	assert.Equal(t, "221", d.RoutingCode())
	assert.Equal(t, "sr-RS", d.DisplayLocale())
	assert.Equal(t, "RSD", d.DisplayCurrency())

	d.Locale = "en-US"
	assert.Equal(t, "USD", d.DisplayCurrency())

	d.Currency = "EUR"
	assert.Equal(t, "EUR", d.DisplayCurrency())
}
