package handler

import (
	"context"
	"strings"
	"testing"
	"time"

	"gabbot/internal/core/command"
	"gabbot/internal/core/domain"
	"gabbot/internal/core/port"
	"gabbot/internal/core/service"

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

type memoryStore struct {
	values map[int64]map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: make(map[int64]map[string]string)}
}

func (s *memoryStore) Get(_ context.Context, channelID int64, variable string) (string, error) {
	return s.values[channelID][variable], nil
}

func (s *memoryStore) Set(_ context.Context, channelID int64, variable string, value string) error {
	if s.values[channelID] == nil {
		s.values[channelID] = make(map[string]string)
	}

	s.values[channelID][variable] = value

	return nil
}

type staticDefaults map[string]string

func (d staticDefaults) Default(variable string) string {
	return d[variable]
}

type stubAdmins map[int64]bool

func (a stubAdmins) IsAdmin(_ context.Context, _ int64, userID int64) bool {
	return a[userID]
}

type stubConsumer struct {
	consume  bool
	received []*domain.Message
}

func (c *stubConsumer) HandlePrivate(_ context.Context, msg *domain.Message) bool {
	c.received = append(c.received, msg)
	return c.consume
}

type fixture struct {
	handler  *Message
	sender   *MockSender
	store    *memoryStore
	consumer *stubConsumer
	sent     []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		sender:   new(MockSender),
		store:    newMemoryStore(),
		consumer: &stubConsumer{},
	}

	f.sender.On("SendMessage", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			f.sent = append(f.sent, args.String(2))
		}).
		Return(nil)

	registry := command.NewRegistry()
	require.NoError(t, registry.Register(&command.Definition{
		Name:        "echo",
		Description: "Echoes its argument.",
		Params:      []command.Param{{Name: "text", Types: []command.ParamType{command.TypeString}, Description: "the text"}},
		Handler: func(_ context.Context, inv *domain.Invocation, _ domain.Sink) (domain.Result, error) {
			return domain.TextResult(inv.Args[0].String()), nil
		},
	}))
	require.NoError(t, registry.Register(&command.Definition{
		Name:        "admecho",
		Description: "Echoes, for administrators.",
		Params:      []command.Param{{Name: "text", Types: []command.ParamType{command.TypeString}}},
		Permission:  domain.PermissionAdmin,
		Handler: func(_ context.Context, inv *domain.Invocation, _ domain.Sink) (domain.Result, error) {
			return domain.TextResult(inv.Args[0].String()), nil
		},
	}))

	defaults := staticDefaults{port.VarPrefix: "~"}
	vars := service.NewVarCache(f.store, defaults)

	f.handler = NewMessage(Config{
		Tokenizer: command.NewTokenizer(registry, vars),
		Executor:  command.NewExecutor(registry, vars, 99),
		Vars:      vars,
		Safe:      service.NewSafeSender(f.sender, 100, 1000),
		Sender:    f.sender,
		Store:     f.store,
		Defaults:  defaults,
		Private:   f.consumer,
		Admins:    stubAdmins{50: true},
		OwnerID:   99,
		Timeout:   time.Second,
	})

	return f
}

func message(text string) *domain.Message {
	return &domain.Message{ChatID: 1, UserID: 10, Username: "alice", Text: text, Date: time.Now()}
}

func TestMessage_DispatchRunsCommand(t *testing.T) {
	f := newFixture(t)

	f.handler.dispatch(message("~echo hello"))

	require.Len(t, f.sent, 1)
	assert.Equal(t, "```hello```", f.sent[0])
}

func TestMessage_NonPrefixedTextIgnored(t *testing.T) {
	f := newFixture(t)

	f.handler.dispatch(message("just chatting"))

	assert.Empty(t, f.sent)
}

func TestMessage_UnknownCommandReported(t *testing.T) {
	f := newFixture(t)

	f.handler.dispatch(message("~ghost"))

	require.Len(t, f.sent, 1)
	assert.Equal(t, `Undefined command name "ghost"`, f.sent[0])
}

func TestMessage_MasterShowPrefix(t *testing.T) {
	f := newFixture(t)

	f.handler.dispatch(message("showprefix"))

	require.Len(t, f.sent, 1)
	assert.Equal(t, "Command prefix currently in use: ~", f.sent[0])
}

func TestMessage_MasterShowPrefixAfterChange(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Set(t.Context(), 1, port.VarPrefix, "!"))

	f.handler.dispatch(message("showprefix"))

	require.Len(t, f.sent, 1)
	assert.Equal(t, "Command prefix currently in use: !", f.sent[0])
}

func TestMessage_MasterResetPrefix(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Set(t.Context(), 1, port.VarPrefix, "!"))

	t.Run("regular user cannot reset", func(t *testing.T) {
		f.handler.dispatch(message("resetprefix"))
		assert.Empty(t, f.sent)
	})

	t.Run("admin resets to the default", func(t *testing.T) {
		msg := message("resetprefix")
		msg.UserID = 50

		f.handler.dispatch(msg)

		require.Len(t, f.sent, 1)
		assert.Equal(t, "Command prefix reset to ~", f.sent[0])
		assert.Equal(t, "~", f.store.values[1][port.VarPrefix])
	})
}

func TestMessage_ChangedPrefixGatesCommands(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Set(t.Context(), 1, port.VarPrefix, "!"))

	f.handler.dispatch(message("~echo hello"))
	assert.Empty(t, f.sent)

	f.handler.dispatch(message("!echo hello"))
	require.Len(t, f.sent, 1)
	assert.Equal(t, "```hello```", f.sent[0])
}

func TestMessage_AdminResolutionFeedsExecutor(t *testing.T) {
	f := newFixture(t)

	f.handler.dispatch(message("~admecho hi"))
	require.Len(t, f.sent, 1)
	assert.Equal(t, "```The command admecho requires administrator privileges.```", f.sent[0])

	f.sent = nil
	msg := message("~admecho hi")
	msg.UserID = 50

	f.handler.dispatch(msg)
	require.Len(t, f.sent, 1)
	assert.Equal(t, "```hi```", f.sent[0])
}

func TestMessage_PrivateMessagesAreAdmin(t *testing.T) {
	f := newFixture(t)

	msg := message("~admecho hi")
	msg.IsPrivate = true

	f.handler.dispatch(msg)
	require.Len(t, f.sent, 1)
	assert.Equal(t, "```hi```", f.sent[0])
}

func TestMessage_PrivateConsumerGetsFirstRefusal(t *testing.T) {
	f := newFixture(t)
	f.consumer.consume = true

	msg := message("~echo hello")
	msg.IsPrivate = true

	f.handler.dispatch(msg)

	assert.Len(t, f.consumer.received, 1)
	assert.Empty(t, f.sent)
}

func TestMessage_UnconsumedPrivateMessageRunsPipeline(t *testing.T) {
	f := newFixture(t)
	f.consumer.consume = false

	msg := message("~echo hello")
	msg.IsPrivate = true

	f.handler.dispatch(msg)

	assert.Len(t, f.consumer.received, 1)
	require.Len(t, f.sent, 1)
	assert.Equal(t, "```hello```", f.sent[0])
}

func TestMessage_LongOutputIsChunked(t *testing.T) {
	f := newFixture(t)

	f.handler.dispatch(message("~echo " + strings.Repeat("x", 200)))

	assert.Len(t, f.sent, 3)
}

func TestMessage_OversizedOutputRefused(t *testing.T) {
	f := newFixture(t)

	f.handler.dispatch(message("~echo " + strings.Repeat("x", 1500)))

	require.Len(t, f.sent, 1)
	assert.Equal(t, "Outbound message length greater than 1000 character limit.", f.sent[0])
}
