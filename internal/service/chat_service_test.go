package service

import (
	"context"
	"testing"
	"time"

	"github.com/Fusion-Mind-co/worklog-system/internal/dto"
	"github.com/Fusion-Mind-co/worklog-system/internal/entity"
	"github.com/Fusion-Mind-co/worklog-system/internal/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatService(env *testEnv) IChatService {
	return NewChatService(env.factory, env.notify)
}

// seedPair inserts both directions of a chat permission, the way AddPair does.
func (e *testEnv) seedPair(a, b uuid.UUID) {
	ctx := context.Background()
	_ = e.factory.Permissions.Create(ctx, &entity.ChatPermission{Id: uuid.New(), UserId: a, PartnerId: b})
	_ = e.factory.Permissions.Create(ctx, &entity.ChatPermission{Id: uuid.New(), UserId: b, PartnerId: a})
}

func TestSendMessageWithoutPermission(t *testing.T) {
	env := newTestEnv()
	svc := newChatService(env)
	alice := env.seedUser("emp001", "Alice", 1, nil)
	bob := env.seedUser("emp002", "Bob", 1, nil)

	_, err := svc.SendMessage(context.Background(), alice.Id, &dto.SendMessageRequest{
		ReceiverId: bob.Id,
		Message:    "hello",
	})
	var forbiddenErr *apperrors.ForbiddenError
	require.ErrorAs(t, err, &forbiddenErr)
}

func TestSendMessageNotifiesReceiver(t *testing.T) {
	env := newTestEnv()
	svc := newChatService(env)
	alice := env.seedUser("emp001", "Alice", 1, nil)
	bob := env.seedUser("emp002", "Bob", 1, nil)
	env.seedPair(alice.Id, bob.Id)

	view, err := svc.SendMessage(context.Background(), alice.Id, &dto.SendMessageRequest{
		ReceiverId: bob.Id,
		Message:    "hello",
	})
	require.NoError(t, err)
	require.Len(t, view.Messages, 1)
	assert.Equal(t, "hello", view.Messages[0].Message)
	assert.False(t, view.Messages[0].IsRead)

	updates := env.delivery.sentTo(bob.Id, dto.EventChatUpdated)
	require.Len(t, updates, 1)
	payload := updates[0].Data.(dto.ChatMessagesUpdatedEvent)
	assert.Equal(t, alice.Id.String(), payload.ChatPartnerId)
	require.Len(t, payload.Messages, 1)

	unreads := env.delivery.sentTo(bob.Id, dto.EventUnreadCountUpdated)
	require.Len(t, unreads, 1)
	assert.Equal(t, int64(1), unreads[0].Data.(dto.UnreadCountUpdatedEvent).UnreadCount)
}

func TestGetConversationMarksReadAndPushesReceipt(t *testing.T) {
	env := newTestEnv()
	svc := newChatService(env)
	alice := env.seedUser("emp001", "Alice", 1, nil)
	bob := env.seedUser("emp002", "Bob", 1, nil)
	env.seedPair(alice.Id, bob.Id)

	_, err := svc.SendMessage(context.Background(), alice.Id, &dto.SendMessageRequest{ReceiverId: bob.Id, Message: "hello"})
	require.NoError(t, err)

	// Bob opens the conversation, so Alice's message flips to read and she
	// gets a live receipt.
	view, err := svc.GetConversation(context.Background(), bob.Id, alice.Id)
	require.NoError(t, err)
	require.Len(t, view.Messages, 1)
	assert.True(t, view.Messages[0].IsRead)

	receipts := env.delivery.sentTo(alice.Id, dto.EventChatUpdated)
	require.Len(t, receipts, 1)
	payload := receipts[0].Data.(dto.ChatMessagesUpdatedEvent)
	assert.Equal(t, bob.Id.String(), payload.ChatPartnerId)

	// Opening again marks nothing, so no second receipt goes out.
	_, err = svc.GetConversation(context.Background(), bob.Id, alice.Id)
	require.NoError(t, err)
	assert.Len(t, env.delivery.sentTo(alice.Id, dto.EventChatUpdated), 1)
}

func TestUpdateMessageOwnerOnly(t *testing.T) {
	env := newTestEnv()
	svc := newChatService(env)
	alice := env.seedUser("emp001", "Alice", 1, nil)
	bob := env.seedUser("emp002", "Bob", 1, nil)
	env.seedPair(alice.Id, bob.Id)

	sent, err := svc.SendMessage(context.Background(), alice.Id, &dto.SendMessageRequest{ReceiverId: bob.Id, Message: "helo"})
	require.NoError(t, err)
	messageId := sent.Messages[0].Id

	_, err = svc.UpdateMessage(context.Background(), bob.Id, &dto.UpdateMessageRequest{Id: messageId, Message: "hijacked"})
	var forbiddenErr *apperrors.ForbiddenError
	require.ErrorAs(t, err, &forbiddenErr)

	view, err := svc.UpdateMessage(context.Background(), alice.Id, &dto.UpdateMessageRequest{Id: messageId, Message: "hello"})
	require.NoError(t, err)
	require.Len(t, view.Messages, 1)
	assert.Equal(t, "hello", view.Messages[0].Message)
	assert.True(t, view.Messages[0].IsEdited)
	require.NotNil(t, view.Messages[0].UpdatedAt)
}

func TestDeleteMessage(t *testing.T) {
	env := newTestEnv()
	svc := newChatService(env)
	alice := env.seedUser("emp001", "Alice", 1, nil)
	bob := env.seedUser("emp002", "Bob", 1, nil)
	env.seedPair(alice.Id, bob.Id)

	sent, err := svc.SendMessage(context.Background(), alice.Id, &dto.SendMessageRequest{ReceiverId: bob.Id, Message: "oops"})
	require.NoError(t, err)
	messageId := sent.Messages[0].Id

	_, err = svc.DeleteMessage(context.Background(), bob.Id, messageId)
	var forbiddenErr *apperrors.ForbiddenError
	require.ErrorAs(t, err, &forbiddenErr)

	view, err := svc.DeleteMessage(context.Background(), alice.Id, messageId)
	require.NoError(t, err)
	assert.Empty(t, view.Messages)

	// Bob's unread badge drops back to zero.
	unreads := env.delivery.sentTo(bob.Id, dto.EventUnreadCountUpdated)
	require.NotEmpty(t, unreads)
	last := unreads[len(unreads)-1].Data.(dto.UnreadCountUpdatedEvent)
	assert.Equal(t, int64(0), last.UnreadCount)
}

func TestDeleteMessageUnknownId(t *testing.T) {
	env := newTestEnv()
	svc := newChatService(env)
	alice := env.seedUser("emp001", "Alice", 1, nil)

	_, err := svc.DeleteMessage(context.Background(), alice.Id, uuid.New())
	var notFoundErr *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}

func TestThreadsSortedByLatestMessage(t *testing.T) {
	env := newTestEnv()
	svc := newChatService(env)
	alice := env.seedUser("emp001", "Alice", 1, nil)
	bob := env.seedUser("emp002", "Bob", 1, nil)
	carol := env.seedUser("emp003", "Carol", 1, nil)
	env.seedPair(alice.Id, bob.Id)
	env.seedPair(alice.Id, carol.Id)

	ctx := context.Background()
	base := time.Now().Add(-time.Hour)
	seedMessage := func(from, to uuid.UUID, text string, at time.Time) {
		_ = env.factory.Messages.Create(ctx, &entity.ChatMessage{
			Id: uuid.New(), SenderId: from, ReceiverId: to, Message: text, CreatedAt: at,
		})
	}
	seedMessage(bob.Id, alice.Id, "from bob", base)
	seedMessage(carol.Id, alice.Id, "from carol", base.Add(time.Minute))
	seedMessage(carol.Id, alice.Id, "again", base.Add(2*time.Minute))

	threads, err := svc.Threads(ctx, alice.Id)
	require.NoError(t, err)
	require.Len(t, threads, 2)

	assert.Equal(t, carol.Id, threads[0].Id)
	assert.Equal(t, int64(2), threads[0].Unread)
	require.NotNil(t, threads[0].LastMessage)
	assert.Equal(t, "again", *threads[0].LastMessage)

	assert.Equal(t, bob.Id, threads[1].Id)
	assert.Equal(t, int64(1), threads[1].Unread)
	assert.Equal(t, "Bob", threads[1].Name)
}

func TestThreadsWithoutMessages(t *testing.T) {
	env := newTestEnv()
	svc := newChatService(env)
	alice := env.seedUser("emp001", "Alice", 1, nil)
	bob := env.seedUser("emp002", "Bob", 1, nil)
	env.seedPair(alice.Id, bob.Id)

	threads, err := svc.Threads(context.Background(), alice.Id)
	require.NoError(t, err)
	require.Len(t, threads, 1)
	assert.Equal(t, bob.Id, threads[0].Id)
	assert.Equal(t, int64(0), threads[0].Unread)
	assert.Nil(t, threads[0].LastMessage)
}

func TestUnreadCount(t *testing.T) {
	env := newTestEnv()
	svc := newChatService(env)
	alice := env.seedUser("emp001", "Alice", 1, nil)
	bob := env.seedUser("emp002", "Bob", 1, nil)
	env.seedPair(alice.Id, bob.Id)

	ctx := context.Background()
	_, err := svc.SendMessage(ctx, alice.Id, &dto.SendMessageRequest{ReceiverId: bob.Id, Message: "one"})
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, alice.Id, &dto.SendMessageRequest{ReceiverId: bob.Id, Message: "two"})
	require.NoError(t, err)

	res, err := svc.UnreadCount(ctx, bob.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.UnreadCount)

	require.NoError(t, svc.MarkRead(ctx, bob.Id, alice.Id))

	res, err = svc.UnreadCount(ctx, bob.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.UnreadCount)
}

func TestAddPairGrantsBothDirections(t *testing.T) {
	env := newTestEnv()
	svc := newChatService(env)
	alice := env.seedUser("emp001", "Alice", 1, nil)
	bob := env.seedUser("emp002", "Bob", 1, nil)

	ctx := context.Background()
	require.NoError(t, svc.AddPair(ctx, &dto.ChatPairRequest{UserId: alice.Id, PartnerId: bob.Id}))

	pairs, err := svc.ListPairs(ctx)
	require.NoError(t, err)
	assert.Len(t, pairs, 2)

	// Either side can start the conversation afterwards.
	_, err = svc.SendMessage(ctx, bob.Id, &dto.SendMessageRequest{ReceiverId: alice.Id, Message: "hi"})
	require.NoError(t, err)

	// Granting the same pair again, in either order, changes nothing.
	require.NoError(t, svc.AddPair(ctx, &dto.ChatPairRequest{UserId: bob.Id, PartnerId: alice.Id}))
	pairs, err = svc.ListPairs(ctx)
	require.NoError(t, err)
	assert.Len(t, pairs, 2)
}

func TestAddPairRejectsSelf(t *testing.T) {
	env := newTestEnv()
	svc := newChatService(env)
	alice := env.seedUser("emp001", "Alice", 1, nil)

	err := svc.AddPair(context.Background(), &dto.ChatPairRequest{UserId: alice.Id, PartnerId: alice.Id})
	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestAddPairUnknownUser(t *testing.T) {
	env := newTestEnv()
	svc := newChatService(env)
	alice := env.seedUser("emp001", "Alice", 1, nil)

	err := svc.AddPair(context.Background(), &dto.ChatPairRequest{UserId: alice.Id, PartnerId: uuid.New()})
	var notFoundErr *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}

func TestRemovePair(t *testing.T) {
	env := newTestEnv()
	svc := newChatService(env)
	alice := env.seedUser("emp001", "Alice", 1, nil)
	bob := env.seedUser("emp002", "Bob", 1, nil)
	env.seedPair(alice.Id, bob.Id)

	ctx := context.Background()
	require.NoError(t, svc.RemovePair(ctx, &dto.ChatPairRequest{UserId: bob.Id, PartnerId: alice.Id}))

	pairs, err := svc.ListPairs(ctx)
	require.NoError(t, err)
	assert.Empty(t, pairs)

	_, err = svc.SendMessage(ctx, alice.Id, &dto.SendMessageRequest{ReceiverId: bob.Id, Message: "hello?"})
	var forbiddenErr *apperrors.ForbiddenError
	require.ErrorAs(t, err, &forbiddenErr)
}
