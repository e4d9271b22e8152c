package inmemory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regkit/usernamer/model"
)

func TestRegistry_CheckUsername(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry("alice")

	require.NoError(t, r.CheckUsername(ctx, "bob"))
	assert.ErrorIs(t, r.CheckUsername(ctx, "alice"), model.ErrUsernameInUse)
}

func TestRegistry_Reserve(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry()

	require.NoError(t, r.Reserve(ctx, "alice"))
	assert.ErrorIs(t, r.Reserve(ctx, "alice"), model.ErrUsernameInUse)
	assert.ErrorIs(t, r.CheckUsername(ctx, "alice"), model.ErrUsernameInUse)
}
