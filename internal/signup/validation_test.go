package signup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validIdentity() IdentityInput {
	return IdentityInput{FirstName: "A", LastName: "B", Email: "a@b.co", Password: "abcdef", ConfirmPassword: "abcdef"}
}

func validPayment() PaymentInput {
	return PaymentInput{CardNumber: "4111 1111 1111", Expiry: "12/29", CVC: "123", CardholderName: "A B"}
}

func requireValidationError(t *testing.T, err error, field, message string) {
	t.Helper()
	require.Error(t, err)
	ve, ok := err.(*ValidationError)
	require.True(t, ok, "expected *ValidationError, got %T", err)
	assert.Equal(t, field, ve.Field)
	assert.Equal(t, message, ve.Message)
}

func TestIsValidEmail(t *testing.T) {
	for _, s := range []string{"a@b.co", "first.last@skole.no", "x+y@sub.domain.org"} {
		assert.True(t, IsValidEmail(s), s)
	}
	for _, s := range []string{"", "a@b", "ab.co", "a b@c.de", "a@b c.de", "@b.co", "a@.co x"} {
		assert.False(t, IsValidEmail(s), s)
	}
}

func TestValidateIdentity_Accepts(t *testing.T) {
	assert.NoError(t, ValidateIdentity(validIdentity()))
}

func TestValidateIdentity_Precedence(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*IdentityInput)
		field   string
		message string
	}{
		{"blank first name beats everything", func(in *IdentityInput) {
			in.FirstName = "   "
			in.Email = "bad"
			in.Password = "1"
			in.ConfirmPassword = "2"
		}, FieldName, MsgNamesRequired},
		{"blank last name", func(in *IdentityInput) { in.LastName = "" }, FieldName, MsgNamesRequired},
		{"email before password", func(in *IdentityInput) {
			in.Email = "a@b"
			in.Password = "1"
		}, FieldEmail, MsgInvalidEmail},
		{"password length before confirmation", func(in *IdentityInput) {
			in.Password = "abcde"
			in.ConfirmPassword = "zzz"
		}, FieldPassword, MsgPasswordTooShort},
		{"confirmation mismatch", func(in *IdentityInput) { in.ConfirmPassword = "abcdeg" }, FieldConfirm, MsgPasswordMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validIdentity()
			tt.mutate(&in)
			requireValidationError(t, ValidateIdentity(in), tt.field, tt.message)
		})
	}
}

func TestValidateIdentity_PasswordCountsCharacters(t *testing.T) {
	in := validIdentity()
	in.Password = "æøåæøå"
	in.ConfirmPassword = in.Password
	assert.NoError(t, ValidateIdentity(in))
}

func TestValidateIdentity_PasswordCountsUTF16Units(t *testing.T) {
	in := validIdentity()
	in.Password = "😀😀😀"
	in.ConfirmPassword = in.Password
	assert.NoError(t, ValidateIdentity(in))

	in.Password = "😀😀a"
	in.ConfirmPassword = in.Password
	requireValidationError(t, ValidateIdentity(in), FieldPassword, MsgPasswordTooShort)
}

func TestPaymentRequest_Last4(t *testing.T) {
	assert.Equal(t, "1111", PaymentRequest{CardNumber: "4111 1111 1111"}.Last4())
	assert.Equal(t, "12", PaymentRequest{CardNumber: "1 2"}.Last4())
	assert.Equal(t, "øøøø", PaymentRequest{CardNumber: "4111øøøø"}.Last4())
}

func TestValidatePayment_Accepts(t *testing.T) {
	assert.NoError(t, ValidatePayment(validPayment()))
}

func TestValidatePayment_ExpiryWithoutSlash(t *testing.T) {
	in := validPayment()
	in.Expiry = "1229"
	requireValidationError(t, ValidatePayment(in), FieldExpiry, MsgInvalidExpiry)

	// Still the expiry error when every other field is invalid too.
	requireValidationError(t, ValidatePayment(PaymentInput{Expiry: "1229"}), FieldExpiry, MsgInvalidExpiry)
}

func TestValidatePayment_Precedence(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*PaymentInput)
		field   string
		message string
	}{
		{"short card", func(in *PaymentInput) { in.CardNumber = "4111 1111 111" }, FieldCardNumber, MsgInvalidCard},
		{"card spaces do not count", func(in *PaymentInput) { in.CardNumber = "4111        " }, FieldCardNumber, MsgInvalidCard},
		{"card before cvc", func(in *PaymentInput) {
			in.CardNumber = ""
			in.CVC = ""
		}, FieldCardNumber, MsgInvalidCard},
		{"short cvc", func(in *PaymentInput) { in.CVC = "12" }, FieldCVC, MsgInvalidCVC},
		{"cvc before name", func(in *PaymentInput) {
			in.CVC = "1"
			in.CardholderName = ""
		}, FieldCVC, MsgInvalidCVC},
		{"blank name", func(in *PaymentInput) { in.CardholderName = "  " }, FieldCardholderName, MsgCardholderName},
		{"expiry with letters", func(in *PaymentInput) { in.Expiry = "ab/cd" }, FieldExpiry, MsgInvalidExpiry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validPayment()
			tt.mutate(&in)
			requireValidationError(t, ValidatePayment(in), tt.field, tt.message)
		})
	}
}

func TestComputeProgress(t *testing.T) {
	tests := []struct {
		name string
		in   IdentityInput
		want int
	}{
		{"empty", IdentityInput{}, 0},
		{"first name only", IdentityInput{FirstName: "A"}, 20},
		{"blank names do not count", IdentityInput{FirstName: " ", LastName: "\t"}, 0},
		{"names and email", IdentityInput{FirstName: "A", LastName: "B", Email: "a@b.co"}, 60},
		{"empty confirm never matches", IdentityInput{Password: "", ConfirmPassword: ""}, 0},
		{"short password but matching confirm", IdentityInput{Password: "abc", ConfirmPassword: "abc"}, 20},
		{"everything", validIdentity(), 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ComputeProgress(tt.in)
			assert.Equal(t, tt.want, p.Percent)
			assert.GreaterOrEqual(t, p.Percent, 0)
			assert.LessOrEqual(t, p.Percent, 100)
		})
	}
}

func TestPasswordScore(t *testing.T) {
	tests := []struct {
		password string
		score    int
	}{
		{"", 0},
		{"abc", 0},
		{"abcdef", 1},
		{"abcdefghij", 2},
		{"Abcdefghij", 3},
		{"Abcdefghi1", 4},
		{"abc1", 1},
		{"Ab1!" + strings.Repeat("x", 20), 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.score, PasswordScore(tt.password), tt.password)
	}
	assert.Equal(t, "Veldig sterkt", ComputeProgress(IdentityInput{Password: "Abcdefghi1"}).PasswordStrength)
	assert.Equal(t, "Svært svakt", ComputeProgress(IdentityInput{}).PasswordStrength)
}
