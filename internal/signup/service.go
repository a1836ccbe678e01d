// File: internal/signup/service.go
package signup

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"studybuddy_backend/internal/notification"
	"studybuddy_backend/internal/plan"
	"studybuddy_backend/internal/profile"
	"studybuddy_backend/internal/shared"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service drives signup flows and performs the account-creation side effects.
type Service interface {
	Start(ctx context.Context) StepResult
	Get(ctx context.Context, flowID uuid.UUID) (Snapshot, error)
	Progress(in IdentityInput) Progress
	SubmitIdentity(ctx context.Context, flowID uuid.UUID, in IdentityInput) (StepResult, error)
	SelectPlan(ctx context.Context, flowID uuid.UUID, id plan.ID) (StepResult, error)
	SubmitPayment(ctx context.Context, flowID uuid.UUID, in PaymentInput) (StepResult, error)
	Back(ctx context.Context, flowID uuid.UUID) (StepResult, error)
}

// Controller is the default Service.
type Controller struct {
	store      Store
	identity   shared.IdentityProvider
	profiles   profile.Store
	gaps       profile.GapRepository
	authorizer PaymentAuthorizer
	mailer     notification.Mailer
	logger     *zap.Logger
	now        func() time.Time
}

var _ Service = (*Controller)(nil)

// NewController creates the signup flow controller.
func NewController(
	store Store,
	identity shared.IdentityProvider,
	profiles profile.Store,
	gaps profile.GapRepository,
	authorizer PaymentAuthorizer,
	mailer notification.Mailer,
	logger *zap.Logger,
) *Controller {
	return &Controller{
		store:      store,
		identity:   identity,
		profiles:   profiles,
		gaps:       gaps,
		authorizer: authorizer,
		mailer:     mailer,
		logger:     logger.Named("SignupController"),
		now:        time.Now,
	}
}

func (c *Controller) flow(id uuid.UUID) (*Flow, error) {
	f, ok := c.store.Get(id)
	if !ok {
		return nil, ErrFlowNotFound
	}
	return f, nil
}

// Start opens a new flow in CollectIdentity.
func (c *Controller) Start(ctx context.Context) StepResult {
	f := NewFlow(c.now())
	c.store.Save(f)
	c.logger.Debug("Signup flow started", zap.String("flowID", f.ID().String()))
	return f.result(NavForward, ScreenSignupInfo)
}

func (c *Controller) Get(ctx context.Context, flowID uuid.UUID) (Snapshot, error) {
	f, err := c.flow(flowID)
	if err != nil {
		return Snapshot{}, err
	}
	return f.Snapshot(), nil
}

// Progress computes the identity screen indicator without touching any flow.
func (c *Controller) Progress(in IdentityInput) Progress {
	return ComputeProgress(in)
}

func (c *Controller) SubmitIdentity(ctx context.Context, flowID uuid.UUID, in IdentityInput) (StepResult, error) {
	f, err := c.flow(flowID)
	if err != nil {
		return StepResult{}, err
	}
	res, err := f.SubmitIdentity(in)
	if err != nil {
		return StepResult{}, err
	}
	c.store.Save(f)
	return res, nil
}

// SelectPlan records the plan. The free plan creates the account right away
// and never passes through CollectPayment.
func (c *Controller) SelectPlan(ctx context.Context, flowID uuid.UUID, id plan.ID) (StepResult, error) {
	f, err := c.flow(flowID)
	if err != nil {
		return StepResult{}, err
	}
	res, err := f.SelectPlan(id)
	if err != nil {
		return StepResult{}, err
	}
	c.store.Save(f)
	if plan.IsPaid(id) {
		c.logger.Info("Paid plan selected; continuing to checkout",
			zap.String("flowID", flowID.String()), zap.String("plan", string(id)), zap.Int("price", *res.Price))
		return res, nil
	}

	acc, err := c.createAccount(ctx, f.Draft())
	if err != nil {
		f.Abort(StateSelectPlan)
		return StepResult{}, err
	}
	return c.finish(f, acc), nil
}

// SubmitPayment validates the card, runs the authorizer and then creates the account.
func (c *Controller) SubmitPayment(ctx context.Context, flowID uuid.UUID, in PaymentInput) (StepResult, error) {
	f, err := c.flow(flowID)
	if err != nil {
		return StepResult{}, err
	}
	draft, in, err := f.BeginPayment(in)
	if err != nil {
		return StepResult{}, err
	}
	c.store.Save(f)

	// Started calls run to completion even if the client goes away.
	ctx = context.WithoutCancel(ctx)

	auth, err := c.authorizer.Authorize(ctx, PaymentRequest{
		Email:          draft.Email,
		Plan:           draft.Plan,
		Amount:         draft.Price,
		Currency:       plan.Currency,
		CardNumber:     in.CardNumber,
		Expiry:         in.Expiry,
		CVC:            in.CVC,
		CardholderName: in.CardholderName,
		BillingAddress: in.BillingAddress,
	})
	if err != nil {
		f.Abort(StateCollectPayment)
		var declined *DeclinedError
		if errors.As(err, &declined) {
			c.logger.Info("Payment declined", zap.String("flowID", flowID.String()), zap.String("reason", declined.Reason))
			return StepResult{}, err
		}
		c.logger.Error("Payment authorization failed", zap.String("flowID", flowID.String()), zap.Error(err))
		return StepResult{}, ErrPaymentDeclined.WithMessage("Noe gikk galt under betalingen.")
	}

	f.EnterAccountCreation()
	acc, err := c.createAccount(ctx, draft)
	if err != nil {
		if voidErr := c.authorizer.Void(ctx, auth); voidErr != nil {
			c.logger.Error("Failed to void payment after account creation failure",
				zap.String("flowID", flowID.String()), zap.String("authorizationID", auth.ID), zap.Error(voidErr))
		}
		f.Abort(StateCollectPayment)
		return StepResult{}, err
	}
	return c.finish(f, acc), nil
}

func (c *Controller) Back(ctx context.Context, flowID uuid.UUID) (StepResult, error) {
	f, err := c.flow(flowID)
	if err != nil {
		return StepResult{}, err
	}
	res, err := f.Back()
	if err != nil {
		return StepResult{}, err
	}
	if res.Navigation.Screen == ScreenLogin {
		c.store.Delete(flowID)
		return res, nil
	}
	c.store.Save(f)
	return res, nil
}

func (c *Controller) finish(f *Flow, acc *Account) StepResult {
	res := f.Complete(acc)
	c.store.Delete(f.ID())
	c.logger.Info("Signup completed",
		zap.String("flowID", f.ID().String()), zap.String("uid", acc.UID), zap.String("plan", string(acc.Plan)))
	return res
}

// createAccount creates the credential (fatal on failure) and then runs the
// best-effort steps: display name, profile document, welcome mail.
func (c *Controller) createAccount(ctx context.Context, d Draft) (*Account, error) {
	ctx = context.WithoutCancel(ctx)
	email := strings.TrimSpace(d.Email)

	cred, err := c.identity.CreateAccount(ctx, email, d.Password)
	if err != nil {
		c.logger.Warn("Account creation failed",
			zap.String("email", email), zap.String("providerCode", ProviderCode(err)), zap.Error(err))
		return nil, accountCreationError(err)
	}
	if cred.Email != "" {
		email = cred.Email
	}

	if name := d.DisplayName(); name != "" {
		if err := c.identity.SetDisplayName(ctx, cred, name); err != nil {
			c.logger.Warn("Failed to set display name", zap.String("uid", cred.UID), zap.Error(err))
		}
	}

	createdAt := c.now().UTC()
	doc := profile.Document{
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Email:     email,
		Plan:      d.Plan,
	}
	if err := c.profiles.WriteProfile(ctx, cred.UID, doc); err != nil {
		c.logger.Error("Failed to write profile document; account exists without profile",
			zap.String("uid", cred.UID), zap.Error(err))
		c.recordGap(ctx, cred.UID, email, d.Plan, err)
	}

	if err := c.mailer.SendWelcome(ctx, notification.Welcome{
		Email: email, FirstName: d.FirstName, LastName: d.LastName, Plan: d.Plan,
	}); err != nil {
		c.logger.Warn("Failed to send welcome mail", zap.String("uid", cred.UID), zap.Error(err))
	}

	return &Account{
		UID:       cred.UID,
		Email:     email,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Plan:      d.Plan,
		CreatedAt: createdAt,
	}, nil
}

func (c *Controller) recordGap(ctx context.Context, uid, email string, id plan.ID, cause error) {
	gap := &profile.Gap{UID: uid, Email: email, Plan: string(id), Reason: cause.Error()}
	if err := c.gaps.Record(ctx, gap); err != nil {
		c.logger.Error("Failed to record profile gap", zap.String("uid", uid), zap.Error(fmt.Errorf("%w (original: %v)", err, cause)))
	}
}
