// Package mocks provides a testify double for the object store that holds
// parsed documents and mismatch reports.
package mocks

import (
	"context"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/mock"
)

// Client stands in for storage.Client in document store and reconcile tests.
// Expectations are keyed by bucket and object key, e.g. "parsed/PO/P-1.json".
type Client struct {
	mock.Mock
}

// BucketExists reports whether the documents bucket is present.
func (m *Client) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

func (m *Client) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	args := m.Called(ctx, bucketName, opts)
	return args.Error(0)
}

// PutObject records a document or report upload.
func (m *Client) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, opts)
	return args.Get(0).(minio.UploadInfo), args.Error(1)
}

// GetObject returns the configured body; a nil body yields only the error,
// which lets tests simulate a missing document with minio.ErrorResponse.
func (m *Client) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	args := m.Called(ctx, bucketName, objectName, opts)
	if obj, ok := args.Get(0).(io.ReadCloser); ok {
		return obj, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListObjects returns the configured listing, or a closed channel when none is set.
func (m *Client) ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	args := m.Called(ctx, bucketName, opts)
	if ch, ok := args.Get(0).(<-chan minio.ObjectInfo); ok {
		return ch
	}
	ch := make(chan minio.ObjectInfo)
	close(ch)
	return ch
}

// RemoveObject records a document deletion.
func (m *Client) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	args := m.Called(ctx, bucketName, objectName, opts)
	return args.Error(0)
}

// ExpectDocument makes the next GetObject on key return body.
func (m *Client) ExpectDocument(bucketName, key, body string) *mock.Call {
	return m.On("GetObject", mock.Anything, bucketName, key, mock.Anything).
		Return(io.NopCloser(strings.NewReader(body)), nil).Once()
}

// ExpectMissing makes every GetObject on key fail with NoSuchKey.
func (m *Client) ExpectMissing(bucketName, key string) *mock.Call {
	return m.On("GetObject", mock.Anything, bucketName, key, mock.Anything).
		Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})
}
