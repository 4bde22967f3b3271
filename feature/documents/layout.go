package documents

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"invoice-reconciler/core/documents"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// LayoutTypes lists the document folders expected under the document prefix.
var LayoutTypes = []documents.DocType{documents.TypeInvoice, documents.TypePO, documents.TypeContract}

// LayoutReport lists the folders missing from the bucket.
type LayoutReport struct {
	Bucket  string   `json:"bucket"`
	Missing []string `json:"missing"`
}

// folders returns the expected folder prefixes, each ending in a slash.
func (s *Store) folders() []string {
	folders := make([]string, 0, len(LayoutTypes)+1)
	for _, doc := range LayoutTypes {
		folders = append(folders, path.Join(s.prefix, string(doc))+"/")
	}
	return append(folders, s.reportPrefix+"/")
}

// CheckLayout reports which document and report folders hold no objects.
func (s *Store) CheckLayout(ctx context.Context) (*LayoutReport, error) {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", s.bucket)
	}

	report := &LayoutReport{Bucket: s.bucket, Missing: []string{}}
	for _, folder := range s.folders() {
		found, err := s.hasObjects(ctx, folder)
		if err != nil {
			return nil, err
		}
		if !found {
			report.Missing = append(report.Missing, folder)
		}
	}
	return report, nil
}

func (s *Store) hasObjects(ctx context.Context, prefix string) (bool, error) {
	// Cancelling stops the listing goroutine once the first object is seen.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, MaxKeys: 1}) {
		if obj.Err != nil {
			return false, fmt.Errorf("failed to list %s: %w", prefix, obj.Err)
		}
		return true, nil
	}
	return false, nil
}

// FixLayout creates an empty folder marker for every missing folder.
func (s *Store) FixLayout(ctx context.Context, missing []string, logger *zap.Logger) error {
	for _, folder := range missing {
		if _, err := s.client.PutObject(ctx, s.bucket, folder, bytes.NewReader(nil), 0, minio.PutObjectOptions{}); err != nil {
			logger.Error("Failed to create folder", zap.String("folder", folder), zap.Error(err))
			return fmt.Errorf("failed to create %s: %w", folder, err)
		}
		logger.Info("Created missing folder", zap.String("folder", folder))
	}
	return nil
}
