package payment

import (
	"errors"
	"strings"
	"unicode"
)

// ErrInvalidCard is returned when the card details fail local
// validation before the simulated payment even starts.
var ErrInvalidCard = errors.New("payment: invalid card details")

// Card carries the payment form fields.  Only shape is validated
// here: 16 digits, MM/YY expiry, 3-digit CVV, non-empty holder name.
type Card struct {
	Number     string
	Expiry     string
	CVV        string
	HolderName string
}

// Validate checks the card fields and returns ErrInvalidCard when any
// of them is malformed.
func (c Card) Validate() error {
	if len(digits(c.Number)) != 16 {
		return ErrInvalidCard
	}
	if !validExpiry(c.Expiry) {
		return ErrInvalidCard
	}
	if len(digits(c.CVV)) != 3 || digits(c.CVV) != c.CVV {
		return ErrInvalidCard
	}
	if strings.TrimSpace(c.HolderName) == "" {
		return ErrInvalidCard
	}
	return nil
}

// FormatCardNumber groups the digits of a card number in blocks of
// four for display, dropping everything that is not a digit.
func FormatCardNumber(input string) string {
	d := digits(input)
	var groups []string
	for i := 0; i < len(d); i += 4 {
		end := i + 4
		if end > len(d) {
			end = len(d)
		}
		groups = append(groups, d[i:end])
	}
	return strings.Join(groups, " ")
}

// FormatExpiry renders digit input as MM/YY.
func FormatExpiry(input string) string {
	d := digits(input)
	if len(d) <= 2 {
		return d
	}
	if len(d) > 4 {
		d = d[:4]
	}
	return d[:2] + "/" + d[2:]
}

func validExpiry(s string) bool {
	if len(s) != 5 || s[2] != '/' {
		return false
	}
	mm, yy := s[:2], s[3:]
	if digits(mm) != mm || digits(yy) != yy {
		return false
	}
	month := int(mm[0]-'0')*10 + int(mm[1]-'0')
	return month >= 1 && month <= 12
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
