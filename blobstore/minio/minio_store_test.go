package minio

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/hupe1980/stabgo/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinKey(t *testing.T) {
	assert.Equal(t, "snap", joinKey("", "snap"))
	assert.Equal(t, "root/snap", joinKey("root", "snap"))
	assert.Equal(t, "root/", joinKey("root", ""))

	s := NewStore(nil, "bucket", "root/")
	assert.Equal(t, "root/CURRENT", s.key("CURRENT"))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NoSuchKey"}))
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NotFound"}))
	assert.False(t, isNotFound(minio.ErrorResponse{Code: "AccessDenied"}))
	assert.False(t, isNotFound(errors.New("boom")))
}

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	endpoint := "localhost:9000"
	accessKey := "minioadmin"
	secretKey := "minioadmin"
	bucket := "test-stabgo"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()

	if _, err = client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	store := NewStore(client, bucket, "test-prefix/")

	data := []byte("hello minio world")
	require.NoError(t, store.Put(ctx, "test.stab", data))

	blob, err := store.Open(ctx, "test.stab")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), blob.Size())

	part := make([]byte, 5)
	n, err := blob.ReadAt(ctx, part, 6)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "minio", string(part))

	tail := make([]byte, 10)
	n, err = blob.ReadAt(ctx, tail, int64(len(data))-5)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "world", string(tail[:n]))
	require.NoError(t, blob.Close())

	got, err := blobstore.ReadAll(ctx, store, "test.stab")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "test.stab")

	require.NoError(t, store.Delete(ctx, "test.stab"))

	_, err = store.Open(ctx, "test.stab")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
