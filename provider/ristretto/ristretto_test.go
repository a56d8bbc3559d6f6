package ristretto

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidConfig(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestSetGetDel(t *testing.T) {
	p, err := New(Config{MaxBytes: 1 << 20, Metrics: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close(context.Background()) })
	ctx := context.Background()

	in := []byte(`[]`)
	ok, err := p.Set(ctx, "genres:list", in, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	p.Wait()
	in[0] = 'x'

	b, hit, err := p.Get(ctx, "genres:list")
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, `[]`, string(b))
	assert.EqualValues(t, 1, p.Metrics().Hits())

	require.NoError(t, p.Del(ctx, "genres:list"))
	_, hit, _ = p.Get(ctx, "genres:list")
	assert.False(t, hit)
}
