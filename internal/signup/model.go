// File: internal/signup/model.go
package signup

import (
	"strings"
	"time"

	"studybuddy_backend/internal/plan"
)

// State is a step of the signup flow.
type State string

const (
	StateCollectIdentity State = "collect_identity"
	StateSelectPlan      State = "select_plan"
	StateCollectPayment  State = "collect_payment"
	StateCreateAccount   State = "create_account"
	StateComplete        State = "complete"
)

// Screen names the client navigator understands.
const (
	ScreenSignupInfo = "SignupInfo"
	ScreenSignupPlan = "SignupPlan"
	ScreenCheckout   = "Checkout"
	ScreenDashboard  = "Dashboard"
	ScreenLogin      = "Signup"
)

// NavAction is the kind of transition the client navigator should perform.
type NavAction string

const (
	NavForward NavAction = "forward"
	NavReplace NavAction = "replace"
	NavBack    NavAction = "back"
)

// Navigation is a named transition request. The server owns no screen stack.
type Navigation struct {
	Action NavAction `json:"action"`
	Screen string    `json:"screen"`
}

// Draft accumulates the user's answers across the flow.
type Draft struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Plan      plan.ID
	Price     int
}

// DisplayName is "first last" with surrounding blanks removed.
func (d Draft) DisplayName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

// IdentityInput is the form of the first signup screen.
type IdentityInput struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// PaymentInput is the checkout form.
type PaymentInput struct {
	CardNumber     string `json:"card_number"`
	Expiry         string `json:"expiry"`
	CVC            string `json:"cvc"`
	CardholderName string `json:"cardholder_name"`
	BillingAddress string `json:"billing_address,omitempty"`
}

// Progress is the display-only completion indicator of the identity screen.
type Progress struct {
	Percent          int    `json:"percent"`
	PasswordScore    int    `json:"password_score"`
	PasswordStrength string `json:"password_strength"`
}

// Account is the result of a completed flow.
type Account struct {
	UID       string    `json:"uid"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Plan      plan.ID   `json:"plan"`
	CreatedAt time.Time `json:"created_at"`
}

// StepResult is what a successful step hands back: the new state and where to go next.
type StepResult struct {
	FlowID     string     `json:"flow_id"`
	State      State      `json:"state"`
	Navigation Navigation `json:"navigation"`
	Progress   *Progress  `json:"progress,omitempty"`
	Plan       plan.ID    `json:"plan,omitempty"`
	Price      *int       `json:"price,omitempty"`
	Account    *Account   `json:"account,omitempty"`
}

// Snapshot is the non-secret view of a flow.
type Snapshot struct {
	FlowID    string    `json:"flow_id"`
	State     State     `json:"state"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	Email     string    `json:"email,omitempty"`
	Plan      plan.ID   `json:"plan,omitempty"`
	Price     *int      `json:"price,omitempty"`
	StartedAt time.Time `json:"started_at"`
}
