// File: internal/signup/payment.go
package signup

import (
	"context"
	"strings"
	"time"

	"studybuddy_backend/internal/plan"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentRequest is what an authorizer needs to charge for a plan.
type PaymentRequest struct {
	Email          string
	Plan           plan.ID
	Amount         int
	Currency       string
	CardNumber     string
	Expiry         string
	CVC            string
	CardholderName string
	BillingAddress string
}

// Last4 returns the last four digits of the card for logging.
func (r PaymentRequest) Last4() string {
	n := []rune(stripSpaces(r.CardNumber))
	if len(n) <= 4 {
		return string(n)
	}
	return string(n[len(n)-4:])
}

// Authorization is a successful payment authorization.
type Authorization struct {
	ID           string
	AuthorizedAt time.Time
}

// PaymentAuthorizer is the seam where a real payment processor plugs in.
// Authorize returns *DeclinedError for a card the processor refused.
type PaymentAuthorizer interface {
	Authorize(ctx context.Context, req PaymentRequest) (*Authorization, error)
	Void(ctx context.Context, auth *Authorization) error
}

// SimulatedAuthorizer authorizes every request without contacting anyone.
type SimulatedAuthorizer struct {
	logger *zap.Logger
	now    func() time.Time
}

var _ PaymentAuthorizer = (*SimulatedAuthorizer)(nil)

// NewSimulatedAuthorizer creates the placeholder authorizer.
func NewSimulatedAuthorizer(logger *zap.Logger) *SimulatedAuthorizer {
	return &SimulatedAuthorizer{logger: logger.Named("SimulatedAuthorizer"), now: time.Now}
}

func (a *SimulatedAuthorizer) Authorize(ctx context.Context, req PaymentRequest) (*Authorization, error) {
	auth := &Authorization{
		ID:           "sim_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		AuthorizedAt: a.now(),
	}
	a.logger.Info("Simulated payment authorized",
		zap.String("authorizationID", auth.ID),
		zap.String("plan", string(req.Plan)),
		zap.Int("amount", req.Amount),
		zap.String("cardLast4", req.Last4()),
	)
	return auth, nil
}

func (a *SimulatedAuthorizer) Void(ctx context.Context, auth *Authorization) error {
	if auth != nil {
		a.logger.Info("Simulated payment voided", zap.String("authorizationID", auth.ID))
	}
	return nil
}
