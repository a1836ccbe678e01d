// File: internal/signup/validation.go
package signup

import (
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf16"
)

// MinPasswordLength is the shortest password the identity provider accepts.
const MinPasswordLength = 6

const (
	minCardNumberLength = 12
	minCVCLength        = 3
)

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	expiryPattern = regexp.MustCompile(`^\d{2}/\d{2}$`)
)

// User-facing validation messages.
const (
	MsgNamesRequired    = "Fyll inn fornavn og etternavn."
	MsgInvalidEmail     = "Bruk en gyldig e-postadresse."
	MsgPasswordTooShort = "Passord må være minst 6 tegn."
	MsgPasswordMismatch = "Passordene matcher ikke."
	MsgPlanRequired     = "Velg en plan."
	MsgMissingDraft     = "Manglende registreringsdata. Start på nytt."
	MsgMissingPayData   = "Manglende data. Gå tilbake og prøv igjen."
	MsgInvalidExpiry    = "Utløpsdato må være MM/ÅÅ."
	MsgInvalidCard      = "Skriv inn et gyldig kortnummer."
	MsgInvalidCVC       = "Skriv inn en gyldig CVC."
	MsgCardholderName   = "Fyll inn navn på kortet."
)

// Form field names reported with a ValidationError.
const (
	FieldName           = "name"
	FieldEmail          = "email"
	FieldPassword       = "password"
	FieldConfirm        = "confirm_password"
	FieldPlan           = "plan"
	FieldDraft          = "draft"
	FieldExpiry         = "expiry"
	FieldCardNumber     = "card_number"
	FieldCVC            = "cvc"
	FieldCardholderName = "cardholder_name"
)

// ValidationError is a local, recoverable form error. Only the first failed check is reported.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidEmail reports whether s looks like local@domain.tld.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// length counts UTF-16 code units, the unit the identity provider measures passwords in.
func length(s string) int {
	return len(utf16.Encode([]rune(s)))
}

// ValidateIdentity checks the identity form in fixed precedence:
// names, email, password length, confirmation.
func ValidateIdentity(in IdentityInput) error {
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return invalid(FieldName, MsgNamesRequired)
	}
	if !IsValidEmail(in.Email) {
		return invalid(FieldEmail, MsgInvalidEmail)
	}
	if length(in.Password) < MinPasswordLength {
		return invalid(FieldPassword, MsgPasswordTooShort)
	}
	if in.ConfirmPassword != in.Password {
		return invalid(FieldConfirm, MsgPasswordMismatch)
	}
	return nil
}

// stripSpaces removes every whitespace rune, as card numbers are typed in groups.
func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// ValidatePayment checks the checkout form. Expiry is checked first so a
// malformed expiry is always the reported error.
func ValidatePayment(in PaymentInput) error {
	if !expiryPattern.MatchString(in.Expiry) {
		return invalid(FieldExpiry, MsgInvalidExpiry)
	}
	if length(stripSpaces(in.CardNumber)) < minCardNumberLength {
		return invalid(FieldCardNumber, MsgInvalidCard)
	}
	if length(in.CVC) < minCVCLength {
		return invalid(FieldCVC, MsgInvalidCVC)
	}
	if strings.TrimSpace(in.CardholderName) == "" {
		return invalid(FieldCardholderName, MsgCardholderName)
	}
	return nil
}

var strengthLabels = [...]string{"Svært svakt", "Svakt", "OK", "Sterkt", "Veldig sterkt"}

// PasswordScore rates a password from 0 to 4. It feeds the strength meter only.
func PasswordScore(password string) int {
	score := 0
	n := length(password)
	if n >= MinPasswordLength {
		score++
	}
	if n >= 10 {
		score++
	}
	var upper, digitOrSymbol bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case !(r >= 'a' && r <= 'z'):
			digitOrSymbol = true
		}
	}
	if upper {
		score++
	}
	if digitOrSymbol {
		score++
	}
	if score > 4 {
		score = 4
	}
	return score
}

// ComputeProgress counts the five independent identity conditions. It gates nothing.
func ComputeProgress(in IdentityInput) Progress {
	conds := []bool{
		strings.TrimSpace(in.FirstName) != "",
		strings.TrimSpace(in.LastName) != "",
		IsValidEmail(in.Email),
		length(in.Password) >= MinPasswordLength,
		in.ConfirmPassword != "" && in.ConfirmPassword == in.Password,
	}
	satisfied := 0
	for _, ok := range conds {
		if ok {
			satisfied++
		}
	}
	pct := int(math.Round(float64(satisfied) / float64(len(conds)) * 100))
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	score := PasswordScore(in.Password)
	return Progress{
		Percent:          pct,
		PasswordScore:    score,
		PasswordStrength: strengthLabels[score],
	}
}
