package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/peergrouptools/peergroup-api/internal/domain/entities"
	usecaseErrors "github.com/peergrouptools/peergroup-api/internal/usecase/errors"
	"github.com/peergrouptools/peergroup-api/pkg/ai"
)

const secret = "hume-secret"

type memChats struct {
	sessions  map[string]*entities.ChatSession
	messages  map[string]*entities.ChatMessage
	refreshes int
	failSave  bool
}

func newMemChats() *memChats {
	return &memChats{sessions: map[string]*entities.ChatSession{}, messages: map[string]*entities.ChatMessage{}}
}

func (m *memChats) FindOrCreateSession(_ context.Context, chatID string) (*entities.ChatSession, error) {
	if s, ok := m.sessions[chatID]; ok {
		cp := *s
		return &cp, nil
	}
	s := &entities.ChatSession{ID: uuid.New(), ChatID: chatID, Status: entities.ChatStatusPending}
	m.sessions[chatID] = s
	cp := *s
	return &cp, nil
}

func (m *memChats) SaveSession(_ context.Context, s *entities.ChatSession) error {
	if m.failSave {
		return errors.New("db down")
	}
	cp := *s
	m.sessions[s.ChatID] = &cp
	return nil
}

func (m *memChats) InsertMessage(_ context.Context, msg *entities.ChatMessage) (bool, error) {
	if _, ok := m.messages[msg.HumeMessageID]; ok {
		return false, nil
	}
	m.messages[msg.HumeMessageID] = msg
	return true, nil
}

func (m *memChats) ListMessages(context.Context, string) ([]*entities.ChatMessage, error) {
	return nil, nil
}

func (m *memChats) RefreshTranscripts(context.Context) error {
	m.refreshes++
	return nil
}

func (m *memChats) FindTranscript(_ context.Context, chatID string) (*entities.ChatTranscript, error) {
	if _, ok := m.sessions[chatID]; !ok {
		return nil, entities.ErrChatSessionNotFound
	}
	return &entities.ChatTranscript{ChatID: chatID}, nil
}

type memGuard struct {
	seen map[string]bool
}

func (g *memGuard) Claim(_ context.Context, d string) (bool, error) {
	if g.seen[d] {
		return false, nil
	}
	g.seen[d] = true
	return true, nil
}

func (g *memGuard) Release(_ context.Context, d string) error {
	delete(g.seen, d)
	return nil
}

func signed(body string) Delivery {
	ts := "1760700000"
	return Delivery{Body: []byte(body), Timestamp: ts, Signature: ai.SignHMAC(secret, []byte(body+ts))}
}

func newService(chats *memChats) (*ChatService, *memGuard) {
	guard := &memGuard{seen: map[string]bool{}}
	return NewChatService(chats, guard, secret, nil), guard
}

func TestIngestLifecycle(t *testing.T) {
	chats := newMemChats()
	svc, _ := newService(chats)
	ctx := context.Background()

	_, err := svc.Ingest(ctx, signed(`{"event_name": "chat_started", "chat_id": "c1", "created_at": "2025-10-17T10:00:00Z"}`))
	require.NoError(t, err)
	assert.Equal(t, entities.ChatStatusStarted, chats.sessions["c1"].Status)

	out, err := svc.Ingest(ctx, signed(`{"event_name": "user_message", "data": {"chat_id": "c1", "message": {
		"id": "m1", "role": "user", "content": "hi there", "created_at": "2025-10-17T10:00:05Z",
		"models": {"prosody": {"scores": {"Joy": 0.7}}}}}}`))
	require.NoError(t, err)
	assert.True(t, out.Inserted)

	msg := chats.messages["m1"]
	require.NotNil(t, msg)
	assert.Equal(t, "user", msg.Role)
	assert.Equal(t, "hi there", msg.Content)
	assert.Equal(t, time.Date(2025, 10, 17, 10, 0, 5, 0, time.UTC), msg.OccurredAt)
	assert.Equal(t, 0.7, gjson.GetBytes(msg.Meta, "models.prosody.scores.Joy").Float())
	assert.False(t, gjson.GetBytes(msg.Meta, "content").Exists())

	_, err = svc.Ingest(ctx, signed(`{"event_name": "chat_ended", "chat_id": "c1", "created_at": "2025-10-17T10:02:00Z"}`))
	require.NoError(t, err)
	ended := chats.sessions["c1"]
	assert.Equal(t, entities.ChatStatusEnded, ended.Status)
	require.NotNil(t, ended.DurationSeconds)
	assert.Equal(t, 120, *ended.DurationSeconds)
	assert.Equal(t, 1, chats.refreshes)
}

func TestIngestMessageDefaults(t *testing.T) {
	chats := newMemChats()
	svc, _ := newService(chats)

	out, err := svc.Ingest(context.Background(), signed(`{"event_name": "assistant_message", "chat_id": "c2", "message": {"content": "hello"}}`))
	require.NoError(t, err)
	assert.True(t, out.Inserted)
	require.Len(t, chats.messages, 1)
	for id, msg := range chats.messages {
		assert.Len(t, id, 64)
		assert.Equal(t, "assistant", msg.Role)
	}
}

func TestIngestRejectsBadSignature(t *testing.T) {
	chats := newMemChats()
	svc, _ := newService(chats)

	d := signed(`{"event_name": "chat_started", "chat_id": "c1"}`)
	d.Signature = "00"
	_, err := svc.Ingest(context.Background(), d)
	assert.ErrorIs(t, err, usecaseErrors.ErrInvalidSignature)

	d = signed(`{"event_name": "chat_started", "chat_id": "c1"}`)
	d.Timestamp = ""
	_, err = svc.Ingest(context.Background(), d)
	assert.ErrorIs(t, err, usecaseErrors.ErrInvalidSignature)
	assert.Empty(t, chats.sessions)
}

func TestIngestRequiresChatID(t *testing.T) {
	svc, _ := newService(newMemChats())
	_, err := svc.Ingest(context.Background(), signed(`{"event_name": "chat_started"}`))
	assert.ErrorIs(t, err, entities.ErrMissingChatID)
}

func TestIngestDeduplicatesRedelivery(t *testing.T) {
	chats := newMemChats()
	svc, _ := newService(chats)
	d := signed(`{"event_name": "chat_ended", "chat_id": "c1"}`)

	first, err := svc.Ingest(context.Background(), d)
	require.NoError(t, err)
	assert.False(t, first.Duplicate)

	again, err := svc.Ingest(context.Background(), d)
	require.NoError(t, err)
	assert.True(t, again.Duplicate)
	assert.Equal(t, 1, chats.refreshes)
}

func TestIngestReleasesFailedDelivery(t *testing.T) {
	chats := newMemChats()
	chats.failSave = true
	svc, guard := newService(chats)
	d := signed(`{"event_name": "chat_started", "chat_id": "c1"}`)

	_, err := svc.Ingest(context.Background(), d)
	require.Error(t, err)
	assert.Empty(t, guard.seen)

	chats.failSave = false
	out, err := svc.Ingest(context.Background(), d)
	require.NoError(t, err)
	assert.False(t, out.Duplicate)
}

func TestIngestIgnoresUnknownEvents(t *testing.T) {
	svc, _ := newService(newMemChats())
	out, err := svc.Ingest(context.Background(), signed(`{"event_name": "tool_call", "chat_id": "c1"}`))
	require.NoError(t, err)
	assert.True(t, out.Ignored)
}

func TestParseTime(t *testing.T) {
	fixed := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := &ChatService{now: func() time.Time { return fixed }}

	assert.Equal(t, time.Date(2025, 10, 17, 10, 0, 0, 0, time.UTC), svc.parseTime(gjson.Parse(`"2025-10-17T12:00:00+02:00"`)))
	assert.Equal(t, time.UnixMilli(1760700000123).UTC(), svc.parseTime(gjson.Parse(`1760700000123`)))
	assert.Equal(t, time.Unix(1760700000, 0).UTC(), svc.parseTime(gjson.Parse(`1760700000`)))
	assert.Equal(t, fixed, svc.parseTime(gjson.Parse(`"yesterday"`)))
	assert.Equal(t, fixed, svc.parseTime(gjson.Result{}))
}

func TestTranscript(t *testing.T) {
	chats := newMemChats()
	svc, _ := newService(chats)

	_, err := svc.Transcript(context.Background(), "missing")
	assert.ErrorIs(t, err, entities.ErrChatSessionNotFound)

	_, err = svc.Transcript(context.Background(), " ")
	assert.ErrorIs(t, err, entities.ErrMissingChatID)
}
