// Package storage wraps the MinIO client behind a small interface for object
// storage on MinIO or S3.
//
// The parsed-document store and the report writer use it to read and write
// JSON objects. The Client interface is mocked in core/storage/mocks.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
//	    return err
//	}
package storage
