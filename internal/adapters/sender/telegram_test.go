package sender

import (
	"context"
	"errors"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBot struct {
	mock.Mock
}

func (m *MockBot) SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	args := m.Called(ctx, params)

	msg, _ := args.Get(0).(*models.Message)

	return msg, args.Error(1)
}

func TestTelegram_SendMessage(t *testing.T) {
	mb := new(MockBot)
	mb.On("SendMessage", mock.Anything, mock.MatchedBy(func(params *bot.SendMessageParams) bool {
		return params.ChatID == int64(7) && params.Text == "hello"
	})).Return(&models.Message{}, nil).Once()

	s := NewTelegram(mb)

	require.NoError(t, s.SendMessage(t.Context(), 7, "hello"))
	mb.AssertExpectations(t)
}

func TestTelegram_SendMessageError(t *testing.T) {
	mb := new(MockBot)
	mb.On("SendMessage", mock.Anything, mock.Anything).
		Return(nil, errors.New("forbidden: bot was blocked")).Once()

	s := NewTelegram(mb)

	err := s.SendMessage(t.Context(), 7, "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocked")
}

func TestTelegram_SendPrivateMessageUsesUserID(t *testing.T) {
	mb := new(MockBot)
	mb.On("SendMessage", mock.Anything, mock.MatchedBy(func(params *bot.SendMessageParams) bool {
		return params.ChatID == int64(42)
	})).Return(&models.Message{}, nil).Once()

	s := NewTelegram(mb)

	require.NoError(t, s.SendPrivateMessage(t.Context(), 42, "psst"))
	mb.AssertExpectations(t)
}

func TestTelegram_SendMessageCancelledContext(t *testing.T) {
	s := NewTelegram(new(MockBot))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	require.Error(t, s.SendMessage(ctx, 7, "hello"))
}
