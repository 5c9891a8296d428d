package service_test

import (
	"context"
	"testing"
	"time"

	"content-admin/internal/service"
	"content-admin/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBlacklist(t *testing.T) {
	client, mr := testutil.NewRedis(t)
	blacklist := service.NewTokenBlacklist(client)
	ctx := context.Background()

	added, err := blacklist.Add(ctx, "jti-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = blacklist.Add(ctx, "jti-1", time.Minute)
	require.NoError(t, err)
	assert.False(t, added)

	found, err := blacklist.Contains(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, found)

	mr.FastForward(2 * time.Minute)
	found, err = blacklist.Contains(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, found)
}
