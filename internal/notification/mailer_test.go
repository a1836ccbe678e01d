package notification

import (
	"context"
	"errors"
	"testing"

	"studybuddy_backend/internal/config"
	"studybuddy_backend/internal/plan"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(email *mail.SGMailV3) (*rest.Response, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rest.Response), args.Error(1)
}

func newTestMailer(s sender) *SendGridMailer {
	return &SendGridMailer{client: s, fromName: "StudyBuddy", fromAddr: "hei@studybuddy.no", logger: zap.NewNop()}
}

func TestNewMailer_NoKeyGivesNoop(t *testing.T) {
	m := NewMailer(&config.Config{}, zap.NewNop())
	_, ok := m.(*NoopMailer)
	require.True(t, ok)
	assert.NoError(t, m.SendWelcome(context.Background(), Welcome{Email: "a@b.co"}))
}

func TestNewMailer_WithKeyGivesSendGrid(t *testing.T) {
	m := NewMailer(&config.Config{SendGridAPIKey: "SG.test"}, zap.NewNop())
	_, ok := m.(*SendGridMailer)
	assert.True(t, ok)
}

func TestSendGridMailer_SendWelcome(t *testing.T) {
	s := new(mockSender)
	s.On("Send", mock.MatchedBy(func(m *mail.SGMailV3) bool {
		return m.Subject == "Velkommen til StudyBuddy" &&
			len(m.Personalizations) == 1 &&
			m.Personalizations[0].To[0].Address == "a@b.co"
	})).Return(&rest.Response{StatusCode: 202}, nil)

	err := newTestMailer(s).SendWelcome(context.Background(), Welcome{Email: "a@b.co", FirstName: "A", LastName: "B", Plan: plan.Premium})

	assert.NoError(t, err)
	s.AssertExpectations(t)
}

func TestSendGridMailer_Errors(t *testing.T) {
	s := new(mockSender)
	s.On("Send", mock.Anything).Return(nil, errors.New("dial tcp")).Once()
	s.On("Send", mock.Anything).Return(&rest.Response{StatusCode: 401}, nil).Once()
	m := newTestMailer(s)

	assert.Error(t, m.SendWelcome(context.Background(), Welcome{Email: "a@b.co"}))
	assert.Error(t, m.SendWelcome(context.Background(), Welcome{Email: "a@b.co"}))
	s.AssertExpectations(t)
}

func TestRenderWelcome(t *testing.T) {
	subject, text, body := renderWelcome(Welcome{Email: "a@b.co", Plan: plan.Medium})
	assert.Equal(t, "Velkommen til StudyBuddy", subject)
	assert.Contains(t, text, "Hei a@b.co!")
	assert.Contains(t, text, "Medium")
	assert.Contains(t, body, "<strong>Medium</strong>")
}

func TestRenderWelcome_EscapesMarkupInName(t *testing.T) {
	_, _, body := renderWelcome(Welcome{
		Email:     "a@b.co",
		FirstName: `<a href="https://evil.example">Klikk</a>`,
		Plan:      plan.Free,
	})
	assert.NotContains(t, body, "<a href")
	assert.Contains(t, body, "Hei &lt;a href=&#34;https://evil.example&#34;&gt;Klikk&lt;/a&gt;!")
}
