package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/staffhub/workforce-system/internal/core/domain"
	"github.com/staffhub/workforce-system/internal/core/ports"
)

// CatalogService enumerates and deletes snapshot artifacts. It never creates
// artifacts; only the engine writes them.
type CatalogService struct {
	artifacts ports.ArtifactStore
	log       zerolog.Logger
}

func NewCatalogService(artifacts ports.ArtifactStore, log zerolog.Logger) *CatalogService {
	return &CatalogService{artifacts: artifacts, log: log}
}

// List returns artifact metadata newest first. An empty store yields an empty
// slice, not an error.
func (s *CatalogService) List(ctx context.Context) ([]domain.SnapshotArtifact, error) {
	return s.artifacts.List(ctx)
}

// Delete removes exactly the named artifact. A missing id is reported as
// domain.ErrArtifactNotFound rather than silently succeeding.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.artifacts.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("artifact_id", id).Msg("snapshot artifact deleted")
	return nil
}
