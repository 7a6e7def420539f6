package checks

import (
	"context"
	"testing"

	"wish-archive/core/storage/mocks"
	"wish-archive/feature/catalog"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func objectChannel(keys ...string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(keys))
	for _, k := range keys {
		ch <- minio.ObjectInfo{Key: k}
	}
	close(ch)
	return ch
}

func withPrefix(prefix string) any {
	return mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
		return opts.Prefix == prefix
	})
}

func TestCheckCatalog(t *testing.T) {
	t.Run("AllPresent", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "bucket").Return(true, nil)
		for _, name := range catalog.RequiredObjects {
			key := catalog.ObjectPath("metadata", name)
			client.On("ListObjects", mock.Anything, "bucket", withPrefix(key)).Return(objectChannel(key)).Once()
		}

		missing, err := CheckCatalog(context.Background(), client, "bucket", "metadata")
		require.NoError(t, err)
		assert.Empty(t, missing)
		client.AssertExpectations(t)
	})

	t.Run("WeaponMissing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "bucket").Return(true, nil)
		for _, name := range catalog.RequiredObjects {
			key := catalog.ObjectPath("metadata", name)
			if name == catalog.WeaponObject {
				// a longer key sharing the prefix is not a match
				client.On("ListObjects", mock.Anything, "bucket", withPrefix(key)).Return(objectChannel(key + ".bak")).Once()
				continue
			}
			client.On("ListObjects", mock.Anything, "bucket", withPrefix(key)).Return(objectChannel(key)).Once()
		}

		missing, err := CheckCatalog(context.Background(), client, "bucket", "metadata")
		require.NoError(t, err)
		assert.Equal(t, []string{catalog.WeaponObject}, missing)
	})

	t.Run("BucketMissing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "bucket").Return(false, nil)

		missing, err := CheckCatalog(context.Background(), client, "bucket", "metadata")
		assert.Error(t, err)
		assert.Nil(t, missing)
		client.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("BucketError", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "bucket").Return(false, assert.AnError)

		_, err := CheckCatalog(context.Background(), client, "bucket", "metadata")
		assert.ErrorIs(t, err, assert.AnError)
	})
}
