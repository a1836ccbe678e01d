package signup

import (
	"errors"
	"testing"
	"time"

	"studybuddy_backend/internal/plan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flowInPlanSelection(t *testing.T) *Flow {
	t.Helper()
	f := NewFlow(time.Now())
	_, err := f.SubmitIdentity(validIdentity())
	require.NoError(t, err)
	return f
}

func TestFlow_SubmitIdentityForwardsExactDraft(t *testing.T) {
	f := NewFlow(time.Now())
	assert.Equal(t, StateCollectIdentity, f.State())

	res, err := f.SubmitIdentity(validIdentity())
	require.NoError(t, err)

	assert.Equal(t, StateSelectPlan, res.State)
	assert.Equal(t, Navigation{Action: NavForward, Screen: ScreenSignupPlan}, res.Navigation)
	require.NotNil(t, res.Progress)
	assert.Equal(t, 100, res.Progress.Percent)
	assert.Equal(t, Draft{FirstName: "A", LastName: "B", Email: "a@b.co", Password: "abcdef"}, f.Draft())
}

func TestFlow_SubmitIdentityFailureKeepsState(t *testing.T) {
	f := NewFlow(time.Now())
	in := validIdentity()
	in.ConfirmPassword = "nope"

	_, err := f.SubmitIdentity(in)
	requireValidationError(t, err, FieldConfirm, MsgPasswordMismatch)
	assert.Equal(t, StateCollectIdentity, f.State())
	assert.Equal(t, Draft{}, f.Draft())
}

func TestFlow_SubmitIdentityOnlyOnce(t *testing.T) {
	f := flowInPlanSelection(t)
	_, err := f.SubmitIdentity(validIdentity())
	assert.True(t, errors.Is(err, ErrInvalidTransition))
}

func TestFlow_SelectPlanRequiresPlan(t *testing.T) {
	f := flowInPlanSelection(t)

	_, err := f.SelectPlan("")
	requireValidationError(t, err, FieldPlan, MsgPlanRequired)
	assert.Equal(t, StateSelectPlan, f.State())
}

func TestFlow_SelectPaidPlanForwardsPrice(t *testing.T) {
	for id, price := range map[plan.ID]int{plan.Medium: 50, plan.Premium: 200} {
		t.Run(string(id), func(t *testing.T) {
			f := flowInPlanSelection(t)

			res, err := f.SelectPlan(id)
			require.NoError(t, err)

			assert.Equal(t, StateCollectPayment, res.State)
			assert.Equal(t, Navigation{Action: NavForward, Screen: ScreenCheckout}, res.Navigation)
			require.NotNil(t, res.Price)
			assert.Equal(t, price, *res.Price)
			assert.Equal(t, price, f.Draft().Price)
			assert.False(t, f.Processing())
		})
	}
}

func TestFlow_SelectFreePlanSkipsPayment(t *testing.T) {
	f := flowInPlanSelection(t)

	res, err := f.SelectPlan(plan.Free)
	require.NoError(t, err)

	assert.Equal(t, StateCreateAccount, res.State)
	assert.NotEqual(t, ScreenCheckout, res.Navigation.Screen)
	assert.True(t, f.Processing())

	_, _, err = f.BeginPayment(validPayment())
	assert.True(t, errors.Is(err, ErrSubmissionInFlight))
}

func TestFlow_SelectPlanWhileProcessing(t *testing.T) {
	f := flowInPlanSelection(t)
	_, err := f.SelectPlan(plan.Free)
	require.NoError(t, err)

	_, err = f.SelectPlan(plan.Free)
	assert.True(t, errors.Is(err, ErrSubmissionInFlight))

	f.Abort(StateSelectPlan)
	assert.False(t, f.Processing())
	_, err = f.SelectPlan(plan.Medium)
	assert.NoError(t, err, "last selection wins after an aborted attempt")
	assert.Equal(t, plan.Medium, f.Draft().Plan)
}

func TestFlow_BeginPaymentDefaultsCardholderName(t *testing.T) {
	f := flowInPlanSelection(t)
	_, err := f.SelectPlan(plan.Premium)
	require.NoError(t, err)

	in := validPayment()
	in.CardholderName = ""
	draft, normalized, err := f.BeginPayment(in)
	require.NoError(t, err)

	assert.Equal(t, "A B", normalized.CardholderName)
	assert.Equal(t, plan.Premium, draft.Plan)
	assert.Equal(t, 200, draft.Price)
	assert.True(t, f.Processing())
}

func TestFlow_BeginPaymentValidation(t *testing.T) {
	f := flowInPlanSelection(t)
	_, err := f.SelectPlan(plan.Medium)
	require.NoError(t, err)

	in := validPayment()
	in.Expiry = "1229"
	_, _, err = f.BeginPayment(in)
	requireValidationError(t, err, FieldExpiry, MsgInvalidExpiry)
	assert.False(t, f.Processing())
	assert.Equal(t, StateCollectPayment, f.State())
}

func TestFlow_BeginPaymentOnlyFromCheckout(t *testing.T) {
	f := flowInPlanSelection(t)
	_, _, err := f.BeginPayment(validPayment())
	assert.True(t, errors.Is(err, ErrInvalidTransition))
}

func TestFlow_Complete(t *testing.T) {
	f := flowInPlanSelection(t)
	_, err := f.SelectPlan(plan.Free)
	require.NoError(t, err)

	res := f.Complete(&Account{UID: "uid-1", Plan: plan.Free})

	assert.Equal(t, StateComplete, res.State)
	assert.Equal(t, Navigation{Action: NavReplace, Screen: ScreenDashboard}, res.Navigation)
	assert.Equal(t, "uid-1", res.Account.UID)
	assert.False(t, f.Processing())
	assert.Empty(t, f.Draft().Password)

	_, err = f.Back()
	assert.True(t, errors.Is(err, ErrInvalidTransition))
}

func TestFlow_Back(t *testing.T) {
	f := flowInPlanSelection(t)
	_, err := f.SelectPlan(plan.Premium)
	require.NoError(t, err)

	res, err := f.Back()
	require.NoError(t, err)
	assert.Equal(t, Navigation{Action: NavBack, Screen: ScreenSignupPlan}, res.Navigation)
	assert.Equal(t, StateSelectPlan, f.State())
	assert.Empty(t, f.Draft().Plan)
	assert.Zero(t, f.Draft().Price)

	res, err = f.Back()
	require.NoError(t, err)
	assert.Equal(t, Navigation{Action: NavBack, Screen: ScreenSignupInfo}, res.Navigation)
	assert.Equal(t, StateCollectIdentity, f.State())
	assert.Equal(t, "a@b.co", f.Draft().Email, "fields stay for re-editing")

	in := validIdentity()
	in.FirstName = "C"
	_, err = f.SubmitIdentity(in)
	require.NoError(t, err)
	assert.Equal(t, "C", f.Draft().FirstName)

	f2 := NewFlow(time.Now())
	res, err = f2.Back()
	require.NoError(t, err)
	assert.Equal(t, ScreenLogin, res.Navigation.Screen)
}

func TestFlow_SnapshotHidesPassword(t *testing.T) {
	f := flowInPlanSelection(t)
	_, err := f.SelectPlan(plan.Medium)
	require.NoError(t, err)

	snap := f.Snapshot()
	assert.Equal(t, f.ID().String(), snap.FlowID)
	assert.Equal(t, StateCollectPayment, snap.State)
	assert.Equal(t, "a@b.co", snap.Email)
	require.NotNil(t, snap.Price)
	assert.Equal(t, 50, *snap.Price)
}
