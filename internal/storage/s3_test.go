package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectStorageType(t *testing.T) {
	require.Equal(t, StorageTypeR2, detectStorageType("https://abc.r2.cloudflarestorage.com"))
	require.Equal(t, StorageTypeS3, detectStorageType("s3.eu-west-1.amazonaws.com"))
	require.Equal(t, StorageTypeS3Compatible, detectStorageType("localhost:9000"))
}

func TestNormalizeEndpoint(t *testing.T) {
	require.Equal(t, "localhost:9000", normalizeEndpoint("http://localhost:9000/bucket"))
	require.Equal(t, "s3.amazonaws.com", normalizeEndpoint("https://s3.amazonaws.com"))
	require.Equal(t, "minio:9000", normalizeEndpoint("minio:9000"))
}

func TestGetURL(t *testing.T) {
	ctx := context.Background()

	s, err := NewStorage(ctx, &S3Config{
		Endpoint:  "http://localhost:9000",
		AccessKey: "key",
		SecretKey: "secret",
		Bucket:    "dogo",
	})
	require.NoError(t, err)
	require.Equal(t, "http://localhost:9000/dogo/ab/abcd.jpg", s.GetURL("ab/abcd.jpg"))

	s, err = NewStorage(ctx, &S3Config{
		Endpoint:  "abc.r2.cloudflarestorage.com",
		UseSSL:    true,
		AccessKey: "key",
		SecretKey: "secret",
		Bucket:    "dogo",
		PublicURL: "https://cdn.example.com/",
	})
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com/ab/abcd.jpg", s.GetURL("ab/abcd.jpg"))
}
