package invoice

import (
	"fmt"
	"strings"

	"faktura-backend/internal/models"
)

// The NBS IPS scan-to-pay payload is a fixed pipe-delimited key-value string.
// Banking apps reject payloads that deviate from it, so every field below is
// normalized independently of the document's display locale.

// permitted Serbian Latin letters outside ASCII
var serbianLatin = map[rune]bool{
	'č': true, 'ć': true, 'đ': true, 'š': true, 'ž': true,
	'Č': true, 'Ć': true, 'Đ': true, 'Š': true, 'Ž': true,
}

// EncodeIPS builds the payment payload for an invoice and its computed total.
// It never fails: a name that sanitizes away completely produces an empty N
// field, which the standard allows.
func EncodeIPS(data *models.InvoiceData, total float64) string {
	return fmt.Sprintf("K:PR|V:01|C:1|R:%s|N:%s|I:RSD%s|SF:%s",
		digitsOnly(data.Issuer.BankAccount),
		SanitizeName(data.Issuer.LegalName),
		amountRSD(total),
		data.RoutingCode(),
	)
}

// SanitizeName restricts free text to the character set the payload format
// allows: ASCII letters, digits, spaces, hyphens and Serbian Latin letters.
// Disallowed characters are removed, hyphen runs collapse to one, and edge
// hyphens/whitespace are trimmed.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-':
			b.WriteRune(r)
		case serbianLatin[r]:
			b.WriteRune(r)
		}
	}
	out := b.String()
	for strings.Contains(out, "--") {
		out = strings.ReplaceAll(out, "--", "-")
	}
	out = strings.TrimSpace(out)
	out = strings.Trim(out, "-")
	return strings.TrimSpace(out)
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// amountRSD renders the total with exactly two decimals and a comma decimal
// separator, regardless of display locale
func amountRSD(total float64) string {
	return strings.Replace(fmt.Sprintf("%.2f", total), ".", ",", 1)
}
