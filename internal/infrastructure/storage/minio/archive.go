package minio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	miniogo "github.com/minio/minio-go/v7"

	"github.com/turtacn/WellNodal/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/WellNodal/pkg/errors"
)

// ArchiveStore stores analysis request payloads keyed by run ID.  The key
// returned by ArchivePayload is persisted on the run so the exact engine
// input can be retrieved later.
type ArchiveStore interface {
	ArchivePayload(ctx context.Context, runID string, payload interface{}) (string, error)
	FetchPayload(ctx context.Context, key string) ([]byte, error)
	PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// Archive is the MinIO-backed ArchiveStore.
type Archive struct {
	client *Client
	logger logging.Logger
}

// NewArchive builds an Archive on top of the client.
func NewArchive(client *Client, log logging.Logger) *Archive {
	return &Archive{client: client, logger: log}
}

func payloadKey(runID string) string {
	return fmt.Sprintf("payloads/%s.json", runID)
}

// ArchivePayload serializes payload as JSON and stores it under
// payloads/{runID}.json, returning the object key.
func (a *Archive) ArchivePayload(ctx context.Context, runID string, payload interface{}) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode archive payload")
	}

	key := payloadKey(runID)
	_, err = a.client.Minio().PutObject(ctx, a.client.Bucket(), key,
		bytes.NewReader(raw), int64(len(raw)),
		miniogo.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeExternalService, "failed to archive payload")
	}

	a.logger.Debug("archived analysis payload",
		logging.String("key", key),
		logging.Int("bytes", len(raw)),
	)
	return key, nil
}

// FetchPayload retrieves a previously archived payload.
func (a *Archive) FetchPayload(ctx context.Context, key string) ([]byte, error) {
	obj, err := a.client.Minio().GetObject(ctx, a.client.Bucket(), key, miniogo.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeExternalService, "failed to fetch archived payload")
	}
	defer obj.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(obj); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeExternalService, "failed to read archived payload")
	}
	return buf.Bytes(), nil
}

// PresignedURL returns a time-limited download URL for an archived payload.
func (a *Archive) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := a.client.Minio().PresignedGetObject(ctx, a.client.Bucket(), key, expiry, url.Values{})
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeExternalService, "failed to presign payload URL")
	}
	return u.String(), nil
}

// NopArchive satisfies ArchiveStore when archiving is disabled; it stores
// nothing and returns empty keys.
type NopArchive struct{}

func (NopArchive) ArchivePayload(context.Context, string, interface{}) (string, error) {
	return "", nil
}

func (NopArchive) FetchPayload(context.Context, string) ([]byte, error) {
	return nil, errors.New(errors.ErrCodeNotFound, "payload archiving is disabled")
}

func (NopArchive) PresignedURL(context.Context, string, time.Duration) (string, error) {
	return "", errors.New(errors.ErrCodeNotFound, "payload archiving is disabled")
}
