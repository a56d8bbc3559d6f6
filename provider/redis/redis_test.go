package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, mr *miniredis.Miniredis) *goredis.Client {
	t.Helper()
	c := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNewRequiresClient(t *testing.T) {
	_, err := New(Config{})
	assert.ErrorIs(t, err, ErrNilClient)
}

func TestPingChecksPrimary(t *testing.T) {
	mr := miniredis.RunT(t)
	p, err := New(Config{Client: newClient(t, mr), OpTimeout: time.Second})
	require.NoError(t, err)

	require.NoError(t, p.Ping(context.Background()))
	mr.SetError("ERR primary down")
	assert.Error(t, p.Ping(context.Background()))
}

func TestGetSetTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	p, err := New(Config{Client: newClient(t, mr), OpTimeout: time.Second})
	require.NoError(t, err)
	ctx := context.Background()

	_, ok, err := p.Get(ctx, "films:1")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = p.Set(ctx, "films:1", []byte(`"{}"`), 300*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 300*time.Second, mr.TTL("films:1"))

	b, ok, err := p.Get(ctx, "films:1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `"{}"`, string(b))

	mr.FastForward(301 * time.Second)
	_, ok, err = p.Get(ctx, "films:1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReadsPreferReplica(t *testing.T) {
	primary := miniredis.RunT(t)
	replica := miniredis.RunT(t)
	require.NoError(t, replica.Set("genres:list", "[]"))

	p, err := New(Config{Client: newClient(t, primary), Replica: newClient(t, replica)})
	require.NoError(t, err)

	b, ok, err := p.Get(context.Background(), "genres:list")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[]", string(b))

	// A replica miss is an answer, not a failure.
	require.NoError(t, primary.Set("genres:1", "x"))
	_, ok, err = p.Get(context.Background(), "genres:1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReplicaFailureFallsBackToPrimary(t *testing.T) {
	primary := miniredis.RunT(t)
	replica := miniredis.RunT(t)
	require.NoError(t, primary.Set("persons:1", `"{}"`))
	replica.SetError("ERR replica unavailable")

	var fallbacks int
	p, err := New(Config{
		Client:         newClient(t, primary),
		Replica:        newClient(t, replica),
		OnReplicaError: func(error) { fallbacks++ },
	})
	require.NoError(t, err)

	b, ok, err := p.Get(context.Background(), "persons:1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `"{}"`, string(b))
	assert.Equal(t, 1, fallbacks)
}

func TestWritesGoToPrimary(t *testing.T) {
	primary := miniredis.RunT(t)
	replica := miniredis.RunT(t)
	p, err := New(Config{Client: newClient(t, primary), Replica: newClient(t, replica)})
	require.NoError(t, err)

	_, err = p.Set(context.Background(), "films:2", []byte("v"), time.Minute)
	require.NoError(t, err)
	assert.True(t, primary.Exists("films:2"))
	assert.False(t, replica.Exists("films:2"))

	require.NoError(t, p.Del(context.Background(), "films:2"))
	assert.False(t, primary.Exists("films:2"))
}

func TestCloseOwnedClients(t *testing.T) {
	mr := miniredis.RunT(t)
	c := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	p, err := New(Config{Client: c, CloseClient: true})
	require.NoError(t, err)

	require.NoError(t, p.Close(context.Background()))
	require.NoError(t, p.Close(context.Background()))
	assert.Error(t, c.Ping(context.Background()).Err())
}
