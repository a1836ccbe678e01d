// File: internal/signup/errors.go
package signup

import (
	"errors"
	"net/http"
	"strings"

	"studybuddy_backend/internal/common"
	"studybuddy_backend/internal/shared"
)

var (
	ErrFlowNotFound       = common.NewAPIError(http.StatusNotFound, "FLOW_NOT_FOUND", "Registreringen finnes ikke eller er utløpt. Start på nytt.")
	ErrSubmissionInFlight = common.NewAPIError(http.StatusConflict, "SUBMISSION_IN_FLIGHT", "Forespørselen behandles allerede.")
	ErrInvalidTransition  = common.NewAPIError(http.StatusConflict, "INVALID_TRANSITION", "Dette steget er ikke tilgjengelig nå.")
	ErrPaymentDeclined    = common.NewAPIError(http.StatusPaymentRequired, "PAYMENT_DECLINED", "Betaling feilet")
	ErrSignupFailed       = common.NewAPIError(http.StatusUnprocessableEntity, "SIGNUP_FAILED", MsgSignupFallback)
)

// MsgSignupFallback is shown for provider codes the table does not know.
const MsgSignupFallback = "Kunne ikke opprette konto. Prøv igjen."

// Provider codes the error table recognises.
const (
	CodeEmailInUse          = shared.CodeEmailInUse
	CodeInvalidEmail        = shared.CodeInvalidEmail
	CodeWeakPassword        = shared.CodeWeakPassword
	CodeOperationNotAllowed = shared.CodeOperationNotAllowed
	CodeNetworkFailed       = shared.CodeNetworkFailed
	CodeInvalidAPIKey       = shared.CodeInvalidAPIKey
)

type authMessage struct {
	code    string
	message string
	status  int
}

// Order matters: the first code contained in the provider code wins.
var authMessages = []authMessage{
	{CodeEmailInUse, "E-posten er allerede i bruk.", http.StatusConflict},
	{CodeInvalidEmail, "Ugyldig e-postadresse.", http.StatusUnprocessableEntity},
	{CodeWeakPassword, "Passordet er for svakt (minst 6 tegn).", http.StatusUnprocessableEntity},
	{CodeOperationNotAllowed, "E-post/passord er ikke aktivert i Firebase-prosjektet.", http.StatusUnprocessableEntity},
	{CodeNetworkFailed, "Nettverksfeil. Sjekk tilkoblingen.", http.StatusServiceUnavailable},
	{CodeInvalidAPIKey, "Ugyldig Firebase API-nøkkel i konfig.", http.StatusUnprocessableEntity},
}

// ProviderCode extracts the provider code from err, or "" when err carries none.
func ProviderCode(err error) string {
	var pe *shared.ProviderError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// MapAuthError turns a credential-creation failure into the user-facing message.
func MapAuthError(err error) string {
	msg, _ := lookupAuthMessage(ProviderCode(err))
	return msg
}

func lookupAuthMessage(code string) (string, int) {
	if code != "" {
		for _, m := range authMessages {
			if strings.Contains(code, m.code) {
				return m.message, m.status
			}
		}
	}
	return MsgSignupFallback, http.StatusUnprocessableEntity
}

// accountCreationError wraps a fatal identity failure as an API error.
func accountCreationError(err error) *common.APIError {
	code := ProviderCode(err)
	msg, status := lookupAuthMessage(code)
	apiErr := ErrSignupFailed.WithMessage(msg)
	apiErr.StatusCode = status
	return apiErr.WithDetails(map[string]string{"provider_code": code})
}

// DeclinedError is a payment the authorizer refused. The user may fix the card and retry.
type DeclinedError struct {
	Reason string
}

func (e *DeclinedError) Error() string {
	return "payment declined: " + e.Reason
}

// toAPIError maps domain errors of this package onto API errors.
func toAPIError(err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return common.NewValidationAPIError(map[string]string{"field": ve.Field}).WithMessage(ve.Message)
	}
	var de *DeclinedError
	if errors.As(err, &de) {
		return ErrPaymentDeclined.WithDetails(map[string]string{"reason": de.Reason})
	}
	return err
}
