package repositorytest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duynhne/weather-service/internal/core/domain"
)

func TestCityRepository_OwnerScoping(t *testing.T) {
	repo := NewCityRepository()
	ctx := context.Background()

	c, err := repo.Create(ctx, "u-1", "London", "GB", nil, nil)
	require.NoError(t, err)

	_, err = repo.Create(ctx, "u-1", "London", "GB", nil, nil)
	require.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = repo.Create(ctx, "u-2", "London", "GB", nil, nil)
	require.NoError(t, err)

	got, err := repo.ToggleFavorite(ctx, "u-2", c.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	deleted, err := repo.Delete(ctx, "u-2", c.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = repo.Delete(ctx, "u-1", c.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}
