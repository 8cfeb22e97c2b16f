package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipe-lpz/piupiuwer/internal/domain"
)

func TestPiuService_Create(t *testing.T) {
	users, pius := newServices()
	ctx := context.Background()

	user, err := users.Create(ctx, validCreateParams())
	require.NoError(t, err)

	piu, err := pius.Create(ctx, user.ID, "meu primeiro piu")
	require.NoError(t, err)

	assert.Equal(t, user.ID, piu.UserID)
	assert.Equal(t, "meu primeiro piu", piu.Text)
	assert.Equal(t, 0, piu.Likes)
}

func TestPiuService_CreateEmptyText(t *testing.T) {
	users, pius := newServices()
	ctx := context.Background()

	user, err := users.Create(ctx, validCreateParams())
	require.NoError(t, err)

	_, err = pius.Create(ctx, user.ID, "")
	assert.ErrorIs(t, err, domain.ErrPiuTextRequired)
}

func TestPiuService_CreateTextTooLong(t *testing.T) {
	users, pius := newServices()
	ctx := context.Background()

	user, err := users.Create(ctx, validCreateParams())
	require.NoError(t, err)

	_, err = pius.Create(ctx, user.ID, strings.Repeat("a", 141))
	assert.ErrorIs(t, err, domain.ErrPiuTextTooLong)

	// Exactly 140 characters is allowed; the limit counts characters,
	// not bytes.
	_, err = pius.Create(ctx, user.ID, strings.Repeat("ã", 140))
	assert.NoError(t, err)
}

func TestPiuService_CreateUnknownOwner(t *testing.T) {
	_, pius := newServices()

	_, err := pius.Create(context.Background(), uuid.New(), "sem dono")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestPiuService_ListByUser(t *testing.T) {
	users, pius := newServices()
	ctx := context.Background()

	user, err := users.Create(ctx, validCreateParams())
	require.NoError(t, err)

	_, err = pius.Create(ctx, user.ID, "um")
	require.NoError(t, err)
	_, err = pius.Create(ctx, user.ID, "dois")
	require.NoError(t, err)

	owned, err := pius.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, owned, 2)

	// Unknown user is an empty list, not an error.
	none, err := pius.ListByUser(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPiuService_Search(t *testing.T) {
	users, pius := newServices()
	ctx := context.Background()

	user, err := users.Create(ctx, validCreateParams())
	require.NoError(t, err)

	_, err = pius.Create(ctx, user.ID, "Hello, world!")
	require.NoError(t, err)
	_, err = pius.Create(ctx, user.ID, "Goodbye")
	require.NoError(t, err)

	found, err := pius.Search(ctx, "hello")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Hello, world!", found[0].Text)

	// Empty query matches everything.
	all, err := pius.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	none, err := pius.Search(ctx, "xyzzy")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPiuService_Trending(t *testing.T) {
	users, pius := newServices()
	ctx := context.Background()

	user, err := users.Create(ctx, validCreateParams())
	require.NoError(t, err)

	created := make(map[uuid.UUID]bool)
	for _, text := range []string{"um", "dois", "três", "quatro", "cinco"} {
		piu, err := pius.Create(ctx, user.ID, text)
		require.NoError(t, err)
		created[piu.ID] = true
	}

	// Fewer than the population: exactly n results, all distinct, all
	// from the population.
	sample, err := pius.Trending(ctx, 3)
	require.NoError(t, err)
	require.Len(t, sample, 3)
	seen := make(map[uuid.UUID]bool)
	for _, piu := range sample {
		assert.True(t, created[piu.ID])
		assert.False(t, seen[piu.ID], "duplicate piu in sample")
		seen[piu.ID] = true
	}

	// Request larger than the population returns everything.
	all, err := pius.Trending(ctx, 50)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	zero, err := pius.Trending(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, zero)
}

func TestPiuService_Delete(t *testing.T) {
	users, pius := newServices()
	ctx := context.Background()

	user, err := users.Create(ctx, validCreateParams())
	require.NoError(t, err)

	piu, err := pius.Create(ctx, user.ID, "para apagar")
	require.NoError(t, err)

	require.NoError(t, pius.Delete(ctx, piu.ID))

	_, err = pius.FindByID(ctx, piu.ID)
	assert.ErrorIs(t, err, domain.ErrPiuNotFound)

	assert.ErrorIs(t, pius.Delete(ctx, piu.ID), domain.ErrPiuNotFound)
}
