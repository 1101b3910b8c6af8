package repositories

import (
	"context"
	"github.com/maxaizer/hh-sync/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func Test_Employers_Upsert_IsIdempotentAndKeepsKey(t *testing.T) {
	ctx := context.Background()
	employers := NewEmployersRepository(newTestDb(t).DB)

	firstKey, err := employers.Upsert(ctx, models.Employer{RemoteID: "3529", Name: "Sber", URL: "https://hh.ru/employer/3529"})
	require.NoError(t, err)
	assert.NotZero(t, firstKey)

	secondKey, err := employers.Upsert(ctx, models.Employer{RemoteID: "3529", Name: "СБЕР", URL: "https://hh.ru/employer/3529?new"})
	require.NoError(t, err)
	assert.Equal(t, firstKey, secondKey)

	count, err := employers.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	stored, err := employers.GetByRemoteID(ctx, "3529")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "СБЕР", stored.Name)
	assert.Equal(t, "https://hh.ru/employer/3529?new", stored.URL)
}

func Test_Employers_Upsert_DistinctRemoteIDsGetDistinctKeys(t *testing.T) {
	ctx := context.Background()
	employers := NewEmployersRepository(newTestDb(t).DB)

	first, err := employers.Upsert(ctx, models.Employer{RemoteID: "1", Name: "A", URL: "a"})
	require.NoError(t, err)
	second, err := employers.Upsert(ctx, models.Employer{RemoteID: "2", Name: "B", URL: "b"})
	require.NoError(t, err)
	again, err := employers.Upsert(ctx, models.Employer{RemoteID: "1", Name: "A2", URL: "a2"})
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, first, again)
}

func Test_Employers_KeyByRemoteID_Missing(t *testing.T) {
	employers := NewEmployersRepository(newTestDb(t).DB)

	_, err := employers.KeyByRemoteID(context.Background(), "404")
	assert.True(t, errors.Is(err, ErrEmployerKeyNotResolved))

	employer, err := employers.GetByRemoteID(context.Background(), "404")
	assert.NoError(t, err)
	assert.Nil(t, employer)
}

func Test_SyncStore_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	dbContext := newTestDb(t)
	store := NewSyncStore(dbContext.DB)

	err := store.WithinTransaction(ctx, func(writer GroupWriter) error {
		key, err := writer.UpsertEmployer(ctx, models.Employer{RemoteID: "7", Name: "Doomed", URL: "u"})
		require.NoError(t, err)
		return writer.InsertListing(ctx, &models.Listing{EmployerID: key + 100, Title: "Broken", Location: "X"})
	})
	assert.Error(t, err)

	count, err := NewEmployersRepository(dbContext.DB).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
