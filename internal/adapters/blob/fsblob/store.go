// Package fsblob stores media payloads as plain files under the data
// directory, one payload file plus one metadata sidecar per blob. It is the
// strategy that needs no external services.
package fsblob

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/moodreel/moodreel_app/internal/apperrors"
	"github.com/moodreel/moodreel_app/internal/core/domain"
	portsrepo "github.com/moodreel/moodreel_app/internal/core/ports/repositories"
)

// MediaURLPath is the route under which stored payloads are served back.
const MediaURLPath = "/api/v1/media/"

type blobMeta struct {
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store is the filesystem blob storage strategy.
type Store struct {
	dir     string
	baseURL string // prepended to minted playback URLs, may be empty
}

func NewStore(dataDir, publicBaseURL string) (*Store, error) {
	dir := filepath.Join(dataDir, "blobs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob dir %s: %w", dir, err)
	}
	return &Store{dir: dir, baseURL: strings.TrimSuffix(publicBaseURL, "/")}, nil
}

// Ensure Store implements portsrepo.BlobRepositoryFacade
var _ portsrepo.BlobRepositoryFacade = (*Store)(nil)

func (s *Store) SaveBlob(_ context.Context, blob domain.Blob) error {
	if !validBlobID(blob.BlobID) {
		return fmt.Errorf("%w: invalid blob id %q", apperrors.ErrValidation, blob.BlobID)
	}

	if err := writeAtomic(s.payloadPath(blob.BlobID), blob.Payload); err != nil {
		return fmt.Errorf("%w: failed to write blob %s: %v", apperrors.ErrPersistence, blob.BlobID, err)
	}

	meta := blobMeta{ContentType: blob.ContentType, Size: blob.Size, CreatedAt: blob.CreatedAt}
	raw, err := json.Marshal(meta)
	if err != nil {
		os.Remove(s.payloadPath(blob.BlobID))
		return fmt.Errorf("%w: failed to serialize blob metadata: %v", apperrors.ErrPersistence, err)
	}
	if err := writeAtomic(s.metaPath(blob.BlobID), raw); err != nil {
		os.Remove(s.payloadPath(blob.BlobID))
		return fmt.Errorf("%w: failed to write blob metadata %s: %v", apperrors.ErrPersistence, blob.BlobID, err)
	}
	return nil
}

func (s *Store) FindBlobByID(_ context.Context, blobID string) (*domain.Blob, error) {
	if !validBlobID(blobID) {
		return nil, apperrors.ErrNotFound
	}

	rawMeta, err := os.ReadFile(s.metaPath(blobID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read blob metadata %s: %w", blobID, err)
	}
	var meta blobMeta
	if err := json.Unmarshal(rawMeta, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse blob metadata %s: %w", blobID, err)
	}

	payload, err := os.ReadFile(s.payloadPath(blobID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read blob payload %s: %w", blobID, err)
	}

	return &domain.Blob{
		BlobID:      blobID,
		Payload:     payload,
		ContentType: meta.ContentType,
		Size:        meta.Size,
		CreatedAt:   meta.CreatedAt,
	}, nil
}

func (s *Store) DeleteBlob(_ context.Context, blobID string) error {
	if !validBlobID(blobID) {
		return nil
	}
	for _, path := range []string{s.payloadPath(blobID), s.metaPath(blobID)} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("%w: failed to delete blob file %s: %v", apperrors.ErrPersistence, path, err)
		}
	}
	return nil
}

func (s *Store) ResolveURL(_ context.Context, blobID string) (string, error) {
	if !validBlobID(blobID) {
		return "", apperrors.ErrNotFound
	}
	if _, err := os.Stat(s.payloadPath(blobID)); err != nil {
		if os.IsNotExist(err) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to stat blob %s: %w", blobID, err)
	}
	return s.baseURL + MediaURLPath + blobID, nil
}

func (s *Store) payloadPath(blobID string) string {
	return filepath.Join(s.dir, blobID+".bin")
}

func (s *Store) metaPath(blobID string) string {
	return filepath.Join(s.dir, blobID+".meta.json")
}

// validBlobID rejects anything that could escape the blob directory. Ids are
// UUIDs when minted by us, but they also arrive from URL parameters.
func validBlobID(blobID string) bool {
	if blobID == "" || blobID == "." || blobID == ".." {
		return false
	}
	return !strings.ContainsAny(blobID, "/\\")
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".blob-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
