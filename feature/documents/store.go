package documents

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"invoice-reconciler/core/documents"
	"invoice-reconciler/core/storage"

	"github.com/minio/minio-go/v7"
	"golang.org/x/sync/singleflight"
)

const jsonExt = ".json"

var (
	// ErrNotFound is returned when a stored document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidName is returned for names that would escape their type folder.
	ErrInvalidName = errors.New("invalid document name")
)

// Store keeps parsed documents as JSON objects at <prefix>/<type>/<name>.json
// and reconciliation reports at <reportPrefix>/<name>.json.
// Loaded documents are cached for ttl; concurrent loads of one key share a
// single storage read.
type Store struct {
	client       storage.Client
	bucket       string
	prefix       string
	reportPrefix string
	ttl          time.Duration

	mu    sync.RWMutex
	cache map[string]cachedObject
	sf    singleflight.Group
	now   func() time.Time
}

type cachedObject struct {
	data   []byte
	loaded time.Time
}

// NewStore creates a document store on bucket. A zero ttl disables caching.
func NewStore(client storage.Client, bucket, prefix, reportPrefix string, ttl time.Duration) *Store {
	return &Store{
		client:       client,
		bucket:       bucket,
		prefix:       prefix,
		reportPrefix: reportPrefix,
		ttl:          ttl,
		cache:        make(map[string]cachedObject),
		now:          time.Now,
	}
}

// Key returns the object name of a stored document.
func (s *Store) Key(doc documents.DocType, name string) string {
	return path.Join(s.prefix, string(doc), name+jsonExt)
}

// ReportKey returns the object name of a stored report.
func (s *Store) ReportKey(name string) string {
	return path.Join(s.reportPrefix, name+jsonExt)
}

// Get returns the raw JSON of a stored document.
func (s *Store) Get(ctx context.Context, doc documents.DocType, name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	key := s.Key(doc, name)

	if data, ok := s.cached(key); ok {
		return data, nil
	}

	result, err, _ := s.sf.Do(key, func() (any, error) {
		if data, ok := s.cached(key); ok {
			return data, nil
		}

		data, err := s.read(ctx, key)
		if err != nil {
			return nil, err
		}

		if s.ttl > 0 {
			s.mu.Lock()
			s.cache[key] = cachedObject{data: data, loaded: s.now()}
			s.mu.Unlock()
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

// Invoice loads and validates a stored invoice.
func (s *Store) Invoice(ctx context.Context, name string) (*documents.Invoice, error) {
	data, err := s.Get(ctx, documents.TypeInvoice, name)
	if err != nil {
		return nil, err
	}
	return documents.DecodeInvoice(bytes.NewReader(data))
}

// PO loads and validates a stored purchase order.
func (s *Store) PO(ctx context.Context, name string) (*documents.PO, error) {
	data, err := s.Get(ctx, documents.TypePO, name)
	if err != nil {
		return nil, err
	}
	return documents.DecodePO(bytes.NewReader(data))
}

// Contract loads and validates a stored contract.
func (s *Store) Contract(ctx context.Context, name string) (*documents.Contract, error) {
	data, err := s.Get(ctx, documents.TypeContract, name)
	if err != nil {
		return nil, err
	}
	return documents.DecodeContract(bytes.NewReader(data))
}

// Put validates data as a document of type doc and stores it under name.
func (s *Store) Put(ctx context.Context, doc documents.DocType, name string, data []byte) error {
	if err := checkName(name); err != nil {
		return err
	}
	if _, err := documents.Decode(doc, bytes.NewReader(data)); err != nil {
		return err
	}

	key := s.Key(doc, name)
	if err := s.write(ctx, key, data); err != nil {
		return err
	}
	s.Invalidate(key)
	return nil
}

// Delete removes a stored document.
func (s *Store) Delete(ctx context.Context, doc documents.DocType, name string) error {
	if err := checkName(name); err != nil {
		return err
	}

	key := s.Key(doc, name)
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	s.Invalidate(key)
	return nil
}

// List returns the names of the stored documents of one type, sorted.
func (s *Store) List(ctx context.Context, doc documents.DocType) ([]string, error) {
	dir := path.Join(s.prefix, string(doc)) + "/"

	names := []string{}
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: dir, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", dir, obj.Err)
		}
		name := strings.TrimPrefix(obj.Key, dir)
		if !strings.HasSuffix(name, jsonExt) || strings.Contains(name, "/") {
			continue
		}
		names = append(names, strings.TrimSuffix(name, jsonExt))
	}

	sort.Strings(names)
	return names, nil
}

// PutReport writes v as indented JSON under the report prefix.
func (s *Store) PutReport(ctx context.Context, name string, v any) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	key := s.ReportKey(name)
	if err := s.write(ctx, key, data); err != nil {
		return "", err
	}
	return key, nil
}

// Invalidate drops a cached object.
func (s *Store) Invalidate(key string) {
	s.mu.Lock()
	delete(s.cache, key)
	s.mu.Unlock()
}

func (s *Store) cached(key string) ([]byte, bool) {
	if s.ttl <= 0 {
		return nil, false
	}

	s.mu.RLock()
	obj, ok := s.cache[key]
	s.mu.RUnlock()

	if !ok || s.now().Sub(obj.loaded) > s.ttl {
		return nil, false
	}
	return obj.data, true
}

func (s *Store) read(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, wrapReadErr(key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, wrapReadErr(key, err)
	}
	return data, nil
}

func (s *Store) write(ctx context.Context, key string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

func wrapReadErr(key string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return fmt.Errorf("failed to read %s: %w", key, err)
}

func checkName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
