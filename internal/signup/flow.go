// File: internal/signup/flow.go
package signup

import (
	"strings"
	"sync"
	"time"

	"studybuddy_backend/internal/plan"

	"github.com/google/uuid"
)

// Flow is the draft accumulator of one signup. Its methods are the only way
// to move between states; each checks the current state and the processing
// flag under the flow's lock.
type Flow struct {
	mu         sync.Mutex
	id         uuid.UUID
	state      State
	draft      Draft
	processing bool
	startedAt  time.Time
}

// NewFlow starts a flow in CollectIdentity.
func NewFlow(now time.Time) *Flow {
	return &Flow{
		id:        uuid.New(),
		state:     StateCollectIdentity,
		startedAt: now,
	}
}

func (f *Flow) ID() uuid.UUID { return f.id }

// State returns the current state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Draft returns a copy of the accumulated answers.
func (f *Flow) Draft() Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Processing reports whether an external call is outstanding for this flow.
func (f *Flow) Processing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.processing
}

// Snapshot returns the flow without the password.
func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := Snapshot{
		FlowID:    f.id.String(),
		State:     f.state,
		FirstName: f.draft.FirstName,
		LastName:  f.draft.LastName,
		Email:     f.draft.Email,
		Plan:      f.draft.Plan,
		StartedAt: f.startedAt,
	}
	if f.draft.Plan != "" {
		price := f.draft.Price
		s.Price = &price
	}
	return s
}

// guard must be called with f.mu held.
func (f *Flow) guard(allowed ...State) error {
	if f.processing {
		return ErrSubmissionInFlight
	}
	for _, s := range allowed {
		if f.state == s {
			return nil
		}
	}
	return ErrInvalidTransition.WithDetails(map[string]string{"state": string(f.state)})
}

func (f *Flow) result(nav NavAction, screen string) StepResult {
	return StepResult{
		FlowID:     f.id.String(),
		State:      f.state,
		Navigation: Navigation{Action: nav, Screen: screen},
	}
}

// SubmitIdentity validates the identity form and moves to SelectPlan.
// The draft receives the fields exactly as typed.
func (f *Flow) SubmitIdentity(in IdentityInput) (StepResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.guard(StateCollectIdentity); err != nil {
		return StepResult{}, err
	}
	if err := ValidateIdentity(in); err != nil {
		return StepResult{}, err
	}

	f.draft = Draft{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  in.Password,
	}
	f.state = StateSelectPlan

	res := f.result(NavForward, ScreenSignupPlan)
	progress := ComputeProgress(in)
	res.Progress = &progress
	return res, nil
}

// SelectPlan records the chosen plan. A paid plan moves to CollectPayment.
// The free plan moves straight to CreateAccount with the processing flag
// raised; the caller must finish with Complete or Abort.
func (f *Flow) SelectPlan(id plan.ID) (StepResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.guard(StateSelectPlan); err != nil {
		return StepResult{}, err
	}
	if !id.Valid() {
		return StepResult{}, invalid(FieldPlan, MsgPlanRequired)
	}
	if f.draft.Email == "" || f.draft.Password == "" {
		return StepResult{}, invalid(FieldDraft, MsgMissingDraft)
	}

	f.draft.Plan = id
	f.draft.Price = plan.PriceOf(id)

	if plan.IsPaid(id) {
		f.state = StateCollectPayment
		res := f.result(NavForward, ScreenCheckout)
		price := f.draft.Price
		res.Plan = id
		res.Price = &price
		return res, nil
	}

	f.state = StateCreateAccount
	f.processing = true
	res := f.result(NavForward, ScreenDashboard)
	res.Plan = id
	return res, nil
}

// BeginPayment validates the checkout form and raises the processing flag.
// It returns the draft and the normalized form for the authorizer.
func (f *Flow) BeginPayment(in PaymentInput) (Draft, PaymentInput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.guard(StateCollectPayment); err != nil {
		return Draft{}, PaymentInput{}, err
	}
	if f.draft.Email == "" || f.draft.Password == "" || !plan.IsPaid(f.draft.Plan) {
		return Draft{}, PaymentInput{}, invalid(FieldDraft, MsgMissingPayData)
	}
	if strings.TrimSpace(in.CardholderName) == "" {
		in.CardholderName = f.draft.DisplayName()
	}
	if err := ValidatePayment(in); err != nil {
		return Draft{}, PaymentInput{}, err
	}

	f.processing = true
	return f.draft, in, nil
}

// EnterAccountCreation marks that payment is authorized and the account is being created.
func (f *Flow) EnterAccountCreation() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = StateCreateAccount
}

// Abort lowers the processing flag and returns the flow to an editable state.
// The draft is left intact.
func (f *Flow) Abort(to State) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.processing = false
	f.state = to
}

// Complete finishes the flow and asks the navigator to replace the stack with the dashboard.
func (f *Flow) Complete(acc *Account) StepResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.processing = false
	f.state = StateComplete
	f.draft.Password = ""

	res := f.result(NavReplace, ScreenDashboard)
	res.Plan = acc.Plan
	res.Account = acc
	return res
}

// Back steps one screen back. Leaving CollectIdentity abandons the flow.
func (f *Flow) Back() (StepResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.guard(StateCollectIdentity, StateSelectPlan, StateCollectPayment); err != nil {
		return StepResult{}, err
	}

	switch f.state {
	case StateCollectPayment:
		f.draft.Plan = ""
		f.draft.Price = 0
		f.state = StateSelectPlan
		return f.result(NavBack, ScreenSignupPlan), nil
	case StateSelectPlan:
		f.state = StateCollectIdentity
		return f.result(NavBack, ScreenSignupInfo), nil
	default:
		return f.result(NavBack, ScreenLogin), nil
	}
}
