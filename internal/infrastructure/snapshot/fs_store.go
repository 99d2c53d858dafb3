// Package snapshot implements the filesystem artifact store: a directory of
// immutable <id>.json files, each a self-contained export of every collection
// with an embedded provenance header.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/staffhub/workforce-system/internal/core/domain"
	"github.com/staffhub/workforce-system/internal/core/ports"
)

const artifactExt = ".json"

// artifactMeta is the provenance header embedded at the top of every
// artifact file. Origin is persisted here explicitly rather than inferred
// from the file name.
type artifactMeta struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	Origin    string `json:"origin"`
}

// artifactFile is the on-disk layout of one snapshot artifact.
type artifactFile struct {
	Meta        artifactMeta                `json:"meta"`
	Collections map[string][]map[string]any `json:"collections"`
}

// FSStore persists snapshot artifacts under a single directory.
type FSStore struct {
	dir string
}

// NewFSStore creates the artifact directory if needed and returns the store.
func NewFSStore(dir string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &FSStore{dir: dir}, nil
}

// Write serializes the artifact to a temp file and renames it into place, so
// a partially written file is never visible under the artifact name. On any
// failure the partial temp file is removed.
func (s *FSStore) Write(ctx context.Context, artifact ports.ArtifactWrite) (int64, error) {
	if err := validateID(artifact.ID); err != nil {
		return 0, err
	}

	payload := artifactFile{
		Meta: artifactMeta{
			ID:        artifact.ID,
			CreatedAt: artifact.CreatedAt.UTC().Format(time.RFC3339Nano),
			Origin:    string(artifact.Origin),
		},
		Collections: artifact.Collections,
	}

	final := s.path(artifact.ID)
	tmp, err := os.CreateTemp(s.dir, artifact.ID+".tmp-*")
	if err != nil {
		return 0, fmt.Errorf("create temp artifact: %w", err)
	}
	tmpName := tmp.Name()

	enc := json.NewEncoder(tmp)
	if err := enc.Encode(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return 0, fmt.Errorf("encode artifact: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return 0, fmt.Errorf("sync artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return 0, fmt.Errorf("close artifact: %w", err)
	}
	if err := os.Rename(tmpName, final); err != nil {
		os.Remove(tmpName)
		return 0, fmt.Errorf("publish artifact: %w", err)
	}

	info, err := os.Stat(final)
	if err != nil {
		return 0, fmt.Errorf("stat artifact: %w", err)
	}
	return info.Size(), nil
}

// List returns metadata for every artifact, newest first. An empty or
// freshly created directory yields an empty slice.
func (s *FSStore) List(ctx context.Context) ([]domain.SnapshotArtifact, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read snapshot dir: %w", err)
	}

	artifacts := make([]domain.SnapshotArtifact, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, artifactExt) || strings.Contains(name, ".tmp-") {
			continue
		}

		id := strings.TrimSuffix(name, artifactExt)
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", name, err)
		}

		meta, err := s.readMeta(id)
		if err != nil {
			// Unreadable artifact: surface it as failed rather than hiding it.
			artifacts = append(artifacts, domain.SnapshotArtifact{
				ID:        id,
				CreatedAt: info.ModTime().UTC(),
				SizeBytes: info.Size(),
				Status:    domain.SnapshotStatusFailed,
			})
			continue
		}

		createdAt, err := time.Parse(time.RFC3339Nano, meta.CreatedAt)
		if err != nil {
			createdAt = info.ModTime().UTC()
		}

		artifacts = append(artifacts, domain.SnapshotArtifact{
			ID:        id,
			CreatedAt: createdAt,
			Origin:    domain.SnapshotOrigin(meta.Origin),
			SizeBytes: info.Size(),
			Status:    domain.SnapshotStatusSuccess,
		})
	}

	sort.Slice(artifacts, func(i, j int) bool {
		return artifacts[i].CreatedAt.After(artifacts[j].CreatedAt)
	})
	return artifacts, nil
}

// Delete removes exactly the named artifact file. A missing id is reported
// as domain.ErrArtifactNotFound.
func (s *FSStore) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	if err := os.Remove(s.path(id)); err != nil {
		if os.IsNotExist(err) {
			return domain.ErrArtifactNotFound
		}
		return fmt.Errorf("delete artifact: %w", err)
	}
	return nil
}

func (s *FSStore) path(id string) string {
	return filepath.Join(s.dir, id+artifactExt)
}

func (s *FSStore) readMeta(id string) (*artifactMeta, error) {
	f, err := os.Open(s.path(id))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var payload struct {
		Meta artifactMeta `json:"meta"`
	}
	if err := json.NewDecoder(f).Decode(&payload); err != nil {
		return nil, err
	}
	return &payload.Meta, nil
}

// validateID rejects ids that could escape the artifact directory.
func validateID(id string) error {
	if id == "" || strings.ContainsAny(id, "/\\") || strings.Contains(id, "..") {
		return domain.ErrArtifactNotFound
	}
	return nil
}
