package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"gabbot/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendMessage(ctx context.Context, chatID int64, text string) error {
	args := m.Called(ctx, chatID, text)
	return args.Error(0)
}

func (m *MockSender) SendPrivateMessage(ctx context.Context, userID int64, text string) error {
	args := m.Called(ctx, userID, text)
	return args.Error(0)
}

func TestSafeSender_Send(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		surround  string
		wantSends int
		wantErr   error
	}{
		{
			name:      "short text sends once",
			text:      "hello",
			surround:  "```",
			wantSends: 1,
		},
		{
			name:      "text above the limit is chunked",
			text:      strings.Repeat("x", 250),
			surround:  "",
			wantSends: 3,
		},
		{
			name:      "wrapper shrinks the effective limit",
			text:      strings.Repeat("x", 97),
			surround:  "``",
			wantSends: 2,
		},
		{
			name:     "text above the ceiling is refused",
			text:     strings.Repeat("x", 1001),
			surround: "```",
			wantErr:  domain.ErrMessageTooLong,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ms := new(MockSender)

			var sent []string
			ms.On("SendMessage", mock.Anything, int64(5), mock.Anything).
				Run(func(args mock.Arguments) {
					sent = append(sent, args.String(2))
				}).
				Return(nil)

			s := NewSafeSender(ms, 100, 1000)

			err := s.Send(t.Context(), 5, tc.text, tc.surround)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				ms.AssertNumberOfCalls(t, "SendMessage", 0)
				return
			}

			require.NoError(t, err)
			ms.AssertNumberOfCalls(t, "SendMessage", tc.wantSends)

			// Stripping the wrapper and reassembling must reproduce the text.
			var rebuilt strings.Builder
			for _, chunk := range sent {
				assert.LessOrEqual(t, len(chunk), 100)
				assert.True(t, strings.HasPrefix(chunk, tc.surround))
				assert.True(t, strings.HasSuffix(chunk, tc.surround))
				rebuilt.WriteString(strings.TrimSuffix(strings.TrimPrefix(chunk, tc.surround), tc.surround))
			}
			assert.Equal(t, tc.text, rebuilt.String())
		})
	}
}

func TestSafeSender_SendKeepsRuneBoundaries(t *testing.T) {
	ms := new(MockSender)

	var sent []string
	ms.On("SendMessage", mock.Anything, int64(5), mock.Anything).
		Run(func(args mock.Arguments) {
			sent = append(sent, args.String(2))
		}).
		Return(nil)

	// 40 three-byte runes: the 100-byte limit lands mid-rune and must back
	// off to byte 99.
	text := strings.Repeat("€", 40)
	s := NewSafeSender(ms, 100, 1000)

	require.NoError(t, s.Send(t.Context(), 5, text, ""))

	require.Len(t, sent, 2)

	var rebuilt strings.Builder
	for _, chunk := range sent {
		assert.True(t, utf8.ValidString(chunk))
		rebuilt.WriteString(chunk)
	}
	assert.Equal(t, text, rebuilt.String())
}

func TestSafeSender_SendFailureStopsChunking(t *testing.T) {
	ms := new(MockSender)
	ms.On("SendMessage", mock.Anything, int64(5), mock.Anything).
		Return(errors.New("network down")).Once()

	s := NewSafeSender(ms, 100, 1000)

	err := s.Send(t.Context(), 5, strings.Repeat("x", 250), "")
	require.Error(t, err)
	ms.AssertNumberOfCalls(t, "SendMessage", 1)
}
