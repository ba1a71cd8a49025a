package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tenf-admin-go/pkg/logger"
)

func newTestClient(t *testing.T) (Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return New(rdb, "tenf", logger.NewNop()), mr
}

type payload struct {
	Login string `json:"login"`
	Score int    `json:"score"`
}

func TestKey(t *testing.T) {
	assert.Equal(t, "members:active:limit=50", Key("members", "active", "limit=50"))
	assert.Equal(t, "members:all", Key("members", "", "all", ""))
	assert.Equal(t, "", Key("", ""))

	// Identical parts must land on identical keys.
	assert.Equal(t, Key("events", "by-id", "42"), Key("events", "by-id", "42"))
}

func TestGetSetRoundTrip(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	in := payload{Login: "nexou31", Score: 87}
	c.Set(ctx, "members:by-login:nexou31", in, time.Minute)

	var out payload
	require.True(t, c.Get(ctx, "members:by-login:nexou31", &out))
	assert.Equal(t, in, out)
}

func TestGetMiss(t *testing.T) {
	c, _ := newTestClient(t)

	var out payload
	assert.False(t, c.Get(context.Background(), "members:by-login:ghost", &out))
}

func TestGetAfterExpiry(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	c.Set(ctx, "events:all", payload{Login: "x"}, 30*time.Second)

	var out payload
	require.True(t, c.Get(ctx, "events:all", &out))

	mr.FastForward(time.Minute)
	assert.False(t, c.Get(ctx, "events:all", &out))
}

func TestGetRawStringFallback(t *testing.T) {
	c, mr := newTestClient(t)

	// Payloads written outside this layer may be bare strings, not JSON.
	require.NoError(t, mr.Set("tenf:greeting", "hello there"))

	var s string
	require.True(t, c.Get(context.Background(), "greeting", &s))
	assert.Equal(t, "hello there", s)

	var out payload
	assert.False(t, c.Get(context.Background(), "greeting", &out))
}

func TestDelete(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	c.Set(ctx, "members:all", payload{Login: "a"}, time.Minute)
	c.Delete(ctx, "members:all")

	var out payload
	assert.False(t, c.Get(ctx, "members:all", &out))
}

func TestInvalidateNamespace(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	c.SetWithNamespace(ctx, "members", "members:all", []payload{{Login: "a"}}, time.Minute)
	c.SetWithNamespace(ctx, "members", "members:active", []payload{{Login: "a"}}, time.Minute)
	c.SetWithNamespace(ctx, "events", "events:all", []payload{{Login: "b"}}, time.Minute)

	c.InvalidateNamespace(ctx, "members")

	var out []payload
	assert.False(t, c.Get(ctx, "members:all", &out))
	assert.False(t, c.Get(ctx, "members:active", &out))

	// Other namespaces are untouched.
	require.True(t, c.Get(ctx, "events:all", &out))

	// The tracking set is gone too.
	assert.False(t, mr.Exists("tenf:members:keys"))
}

func TestInvalidateAbsentNamespace(t *testing.T) {
	c, _ := newTestClient(t)

	// Must be a silent no-op.
	c.InvalidateNamespace(context.Background(), "members")
}

func TestTransportFailureDegradesToMiss(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	c.Set(ctx, "members:all", payload{Login: "a"}, time.Minute)
	mr.Close()

	var out payload
	assert.False(t, c.Get(ctx, "members:all", &out))

	// Writes and invalidations against a dead backend must not panic or
	// surface errors either.
	c.Set(ctx, "members:all", payload{Login: "b"}, time.Minute)
	c.SetWithNamespace(ctx, "members", "members:active", payload{Login: "b"}, time.Minute)
	c.Delete(ctx, "members:all")
	c.InvalidateNamespace(ctx, "members")
}

func TestNoop(t *testing.T) {
	var c Client = Noop{}
	ctx := context.Background()

	assert.False(t, c.Enabled())

	c.Set(ctx, "members:all", payload{Login: "a"}, time.Minute)
	var out payload
	assert.False(t, c.Get(ctx, "members:all", &out))

	c.SetWithNamespace(ctx, "members", "members:all", payload{Login: "a"}, time.Minute)
	c.Delete(ctx, "members:all")
	c.InvalidateNamespace(ctx, "members")
}

func TestNewWithNilConnection(t *testing.T) {
	c := New(nil, "tenf", logger.NewNop())
	assert.False(t, c.Enabled())
}
