package invoice

import (
	"strings"
	"testing"

	"faktura-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestEncodeIPSLiteral(t *testing.T) {
	data := &models.InvoiceData{
		Issuer: models.Issuer{
			Party:       models.Party{LegalName: "Test d.o.o."},
			BankAccount: "160-1234567-89",
		},
		InvoiceNumber: "1",
		Items:         []models.LineItem{{Description: "Usluga", Amount: 1000}},
	}

	got := EncodeIPS(data, data.Total())
	assert.Equal(t, "K:PR|V:01|C:1|R:160123456789|N:Test doo|I:RSD1000,00|SF:221", got)
}

func TestEncodeIPSTotalUsesCommaDecimal(t *testing.T) {
	data := &models.InvoiceData{
		Issuer: models.Issuer{
			Party:       models.Party{LegalName: "Test"},
			BankAccount: "265000000123456789",
		},
		Locale: "en-US", // display locale must not leak into the payload
	}

	got := EncodeIPS(data, 2300.2)
	assert.Contains(t, got, "|I:RSD2300,20|")
}

func TestEncodeIPSCustomRoutingCode(t *testing.T) {
	data := &models.InvoiceData{
		Issuer:      models.Issuer{Party: models.Party{LegalName: "X"}},
		PaymentCode: "289",
	}
	assert.True(t, strings.HasSuffix(EncodeIPS(data, 1), "|SF:289"))
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Test d.o.o.", "Test doo"},
		{"Ša&banović d.o.o.!!", "Šabanović doo"},
		{"Pekara ĐURĐEVIĆ", "Pekara ĐURĐEVIĆ"},
		{"A--B", "A-B"},
		{"--Firma--", "Firma"},
		{"  Firma  ", "Firma"},
		{"a - ", "a"},
		{"@#$%", ""},
		{"Čačak-Žitište 12", "Čačak-Žitište 12"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeName(tt.in), "input %q", tt.in)
	}
}

func TestEncodeIPSEmptyNameKeepsField(t *testing.T) {
	data := &models.InvoiceData{
		Issuer: models.Issuer{
			Party:       models.Party{LegalName: "!!!"},
			BankAccount: "160-1",
		},
	}
	got := EncodeIPS(data, 5)
	assert.Contains(t, got, "|N:|")
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "160123456789", digitsOnly("160-1234567-89"))
	assert.Equal(t, "160123456789", digitsOnly("160 1234567 89"))
	assert.Equal(t, "", digitsOnly("no digits"))
}
