package kvstore_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techhub/storefront/internal/kvstore"
)

type testData struct {
	Field1 string `json:"field1"`
	Field2 int    `json:"field2"`
}

func setupRedis(t *testing.T) (kvstore.Store, redismock.ClientMock) {
	t.Helper()

	client, mock := redismock.NewClientMock()
	store := kvstore.NewRedisStore(client, "storefront")

	return store, mock
}

func TestRedisStoreGet(t *testing.T) {
	ctx := context.Background()
	testValue := testData{Field1: "value1", Field2: 123}
	jsonData, err := json.Marshal(testValue)
	require.NoError(t, err)

	t.Run("Success - Key Found", func(t *testing.T) {
		store, mock := setupRedis(t)

		var result testData

		mock.ExpectGet("storefront:cart").SetVal(string(jsonData))

		found, err := store.Get(ctx, "cart", &result)

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, testValue, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Key Not Found", func(t *testing.T) {
		store, mock := setupRedis(t)

		var result testData

		mock.ExpectGet("storefront:cart").SetErr(redis.Nil)

		found, err := store.Get(ctx, "cart", &result)

		require.NoError(t, err, "a missing key is not an error")
		assert.False(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		store, mock := setupRedis(t)

		var result testData

		mock.ExpectGet("storefront:cart").SetErr(errors.New("connection refused"))

		found, err := store.Get(ctx, "cart", &result)

		assert.Error(t, err)
		assert.False(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Corrupt Payload", func(t *testing.T) {
		store, mock := setupRedis(t)

		var result testData

		mock.ExpectGet("storefront:cart").SetVal("{not-json")

		found, err := store.Get(ctx, "cart", &result)

		assert.Error(t, err)
		assert.False(t, found)
	})
}

func TestRedisStoreSet(t *testing.T) {
	ctx := context.Background()
	testValue := testData{Field1: "value1", Field2: 123}
	jsonData, err := json.Marshal(testValue)
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		store, mock := setupRedis(t)

		mock.ExpectSet("storefront:cart", jsonData, 0).SetVal("OK")

		err := store.Set(ctx, "cart", testValue)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		store, mock := setupRedis(t)

		mock.ExpectSet("storefront:cart", jsonData, 0).SetErr(errors.New("write failed"))

		err := store.Set(ctx, "cart", testValue)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisStoreDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		store, mock := setupRedis(t)

		mock.ExpectDel("storefront:token").SetVal(1)

		err := store.Delete(ctx, "token")

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		store, mock := setupRedis(t)

		mock.ExpectDel("storefront:token").SetErr(errors.New("delete failed"))

		err := store.Delete(ctx, "token")

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
