package badger

import (
	"context"
	"fmt"
	"testing"

	"github.com/poiesic/shortlist/core"
	"github.com/poiesic/shortlist/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrFloat(v float64) *float64 { return &v }

func sample(n int) []*core.Restaurant {
	out := make([]*core.Restaurant, n)
	for i := range out {
		out[i] = &core.Restaurant{
			Name:     fmt.Sprintf("Restaurant %d", i),
			Location: "Koramangala",
			Cuisines: "Cafe",
			Rate:     4.0,
			Cost:     ptrFloat(float64(100 * (i + 1))),
		}
	}
	return out
}

func collect(t *testing.T, repo storage.RestaurantRepository) []*core.Restaurant {
	t.Helper()
	var out []*core.Restaurant
	for r, err := range repo.AllRestaurants(context.Background()) {
		require.NoError(t, err)
		out = append(out, r)
	}
	return out
}

func TestAddRestaurants(t *testing.T) {
	repo, err := NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	stored, err := repo.AddRestaurants(ctx, sample(3)...)
	require.NoError(t, err)
	require.Len(t, stored, 3)

	for i, r := range stored {
		assert.NotZero(t, r.Id)
		if i > 0 {
			assert.Greater(t, r.Id, stored[i-1].Id)
		}
	}

	got, err := repo.GetRestaurant(ctx, stored[1].Id)
	require.NoError(t, err)
	assert.Equal(t, *stored[1], *got)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestAddRestaurants_ExplicitIDOverwrites(t *testing.T) {
	repo, err := NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	stored, err := repo.AddRestaurants(ctx, sample(1)...)
	require.NoError(t, err)

	updated := *stored[0]
	updated.Name = "Renamed"
	_, err = repo.AddRestaurants(ctx, &updated)
	require.NoError(t, err)

	all := collect(t, repo)
	require.Len(t, all, 1)
	assert.Equal(t, "Renamed", all[0].Name)
}

func TestGetRestaurant_NotFound(t *testing.T) {
	repo, err := NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()

	_, err = repo.GetRestaurant(context.Background(), core.ID(99))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestAllRestaurants_InsertionOrder(t *testing.T) {
	repo, err := NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	// More than the sequence bandwidth and more than one byte of ID.
	_, err = repo.AddRestaurants(ctx, sample(150)...)
	require.NoError(t, err)
	_, err = repo.AddRestaurants(ctx, sample(150)...)
	require.NoError(t, err)

	all := collect(t, repo)
	require.Len(t, all, 300)
	for i, r := range all {
		assert.Equal(t, fmt.Sprintf("Restaurant %d", i%150), r.Name)
	}
}

func TestAllRestaurants_EarlyBreak(t *testing.T) {
	repo, err := NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()

	_, err = repo.AddRestaurants(context.Background(), sample(10)...)
	require.NoError(t, err)

	seen := 0
	for _, err := range repo.AllRestaurants(context.Background()) {
		require.NoError(t, err)
		seen++
		if seen == 3 {
			break
		}
	}
	assert.Equal(t, 3, seen)
}

func TestAllRestaurants_Cancelled(t *testing.T) {
	repo, err := NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()

	_, err = repo.AddRestaurants(context.Background(), sample(2)...)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var lastErr error
	for r, err := range repo.AllRestaurants(ctx) {
		assert.Nil(t, r)
		lastErr = err
	}
	assert.ErrorIs(t, lastErr, context.Canceled)
}

func TestDeleteAll(t *testing.T) {
	repo, err := NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	first, err := repo.AddRestaurants(ctx, sample(5)...)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteAll(ctx))
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	second, err := repo.AddRestaurants(ctx, sample(2)...)
	require.NoError(t, err)
	assert.Greater(t, second[0].Id, first[4].Id)

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestDeleteRange(t *testing.T) {
	repo, err := NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	records, err := repo.AddRestaurants(ctx, sample(6)...)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteRange(ctx, 0, records[2].Id))
	all := collect(t, repo)
	require.Len(t, all, 4)
	assert.Equal(t, "Restaurant 2", all[0].Name)

	require.NoError(t, repo.DeleteRange(ctx, records[4].Id, 0))
	all = collect(t, repo)
	require.Len(t, all, 2)
	assert.Equal(t, "Restaurant 2", all[0].Name)
	assert.Equal(t, "Restaurant 3", all[1].Name)

	// Empty range is a no-op.
	require.NoError(t, repo.DeleteRange(ctx, records[3].Id, records[3].Id))
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestRepository_Persistence(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	repo, err := NewRepository(dir)
	require.NoError(t, err)
	_, err = repo.AddRestaurants(ctx, sample(4)...)
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	reopened, err := NewRepository(dir)
	require.NoError(t, err)
	defer reopened.Close()

	all := collect(t, reopened)
	require.Len(t, all, 4)
	assert.Equal(t, "Restaurant 0", all[0].Name)
	assert.Equal(t, "Restaurant 3", all[3].Name)
}

func TestRepository_ClosedBackend(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	repo, err := NewRestaurantRepository(backend)
	require.NoError(t, err)
	require.NoError(t, repo.Close())
	require.NoError(t, backend.Close())

	_, err = repo.AddRestaurants(context.Background(), sample(1)...)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	assert.ErrorIs(t, repo.DeleteRange(context.Background(), 0, 0), storage.ErrStorageClosed)
}
