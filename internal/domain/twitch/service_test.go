package twitch

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	events  []WebhookEvent
	creates int
}

func (r *fakeRepo) FindByMessageID(_ context.Context, messageID string) (*WebhookEvent, error) {
	for i := range r.events {
		if r.events[i].MessageID == messageID {
			e := r.events[i]
			return &e, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) Create(_ context.Context, event *WebhookEvent) error {
	r.creates++
	r.events = append(r.events, *event)
	return nil
}

func (r *fakeRepo) ListRecent(_ context.Context, limit, offset int) ([]WebhookEvent, error) {
	if offset >= len(r.events) {
		return nil, nil
	}
	rows := r.events[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows, nil
}

func sign(secret, messageID, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(messageID))
	mac.Write([]byte(timestamp))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	secret := "s3cret"
	messageID := "befa7b53-d79d-478f-86b9-120f112b044e"
	timestamp := "2026-08-28T14:00:00Z"
	body := []byte(`{"subscription":{"type":"channel.follow"}}`)

	good := sign(secret, messageID, timestamp, body)
	assert.True(t, VerifySignature(secret, messageID, timestamp, body, good))

	assert.False(t, VerifySignature("wrong", messageID, timestamp, body, good))
	assert.False(t, VerifySignature(secret, "other-id", timestamp, body, good))
	assert.False(t, VerifySignature(secret, messageID, "2026-08-28T14:00:01Z", body, good))
	assert.False(t, VerifySignature(secret, messageID, timestamp, []byte(`{}`), good))
	assert.False(t, VerifySignature(secret, messageID, timestamp, body, ""))
	assert.False(t, VerifySignature("", messageID, timestamp, body, good))

	// The header must carry the sha256= prefix.
	bare := good[len("sha256="):]
	assert.False(t, VerifySignature(secret, messageID, timestamp, body, bare))
}

func TestIngest(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, "s3cret")
	ctx := context.Background()

	body := []byte(`{"event":{"user_login":"nexou31"}}`)
	sig := sign("s3cret", "msg-1", "ts-1", body)

	event, err := svc.Ingest(ctx, "msg-1", "ts-1", "channel.follow", body, sig)
	require.NoError(t, err)
	assert.Equal(t, "msg-1", event.MessageID)
	assert.Equal(t, "channel.follow", event.Type)
	assert.Equal(t, string(body), event.Payload)
	assert.Equal(t, 1, repo.creates)
}

func TestIngestRedelivery(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, "s3cret")
	ctx := context.Background()

	body := []byte(`{}`)
	sig := sign("s3cret", "msg-1", "ts-1", body)

	first, err := svc.Ingest(ctx, "msg-1", "ts-1", "channel.follow", body, sig)
	require.NoError(t, err)

	// Same MessageID: no second row, the stored one comes back.
	second, err := svc.Ingest(ctx, "msg-1", "ts-1", "channel.follow", body, sig)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, repo.creates)
}

func TestIngestBadSignature(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, "s3cret")

	body := []byte(`{}`)
	sig := sign("other-secret", "msg-1", "ts-1", body)

	_, err := svc.Ingest(context.Background(), "msg-1", "ts-1", "channel.follow", body, sig)
	assert.ErrorIs(t, err, ErrBadSignature)
	assert.Equal(t, 0, repo.creates)
}

func TestIngestWithoutSecret(t *testing.T) {
	svc := NewService(&fakeRepo{}, "")

	_, err := svc.Ingest(context.Background(), "msg-1", "ts-1", "channel.follow", []byte(`{}`), "sha256=anything")
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestRecentClampsPage(t *testing.T) {
	repo := &fakeRepo{}
	for i := 0; i < 3; i++ {
		repo.events = append(repo.events, WebhookEvent{MessageID: string(rune('a' + i))})
	}
	svc := NewService(repo, "s3cret")

	rows, err := svc.Recent(context.Background(), -5, -5)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}
