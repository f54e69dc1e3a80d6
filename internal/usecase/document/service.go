// Package document handles record ingestion into schemaless collections.
package document

import (
	"context"
	"fmt"
	"regexp"

	"github.com/kailas-cloud/fieldprobe/internal/domain"
	"github.com/kailas-cloud/fieldprobe/internal/domain/record"
)

var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Service handles document ingestion.
type Service struct {
	repo Repository
}

// New creates a document service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Upsert validates and stores a raw record. Returns true if created.
func (s *Service) Upsert(ctx context.Context, collection, id string, rec record.Record) (bool, error) {
	if err := validateName("collection", collection); err != nil {
		return false, fmt.Errorf("%w: %w", domain.ErrInvalidDocument, err)
	}
	if err := validateName("document ID", id); err != nil {
		return false, fmt.Errorf("%w: %w", domain.ErrInvalidDocument, err)
	}
	if len(rec) == 0 {
		return false, fmt.Errorf("%w: record is empty", domain.ErrInvalidDocument)
	}

	created, err := s.repo.Upsert(ctx, collection, id, rec)
	if err != nil {
		return false, fmt.Errorf("upsert document: %w", err)
	}
	return created, nil
}

// Get retrieves a stored record.
func (s *Service) Get(ctx context.Context, collection, id string) (record.Record, error) {
	rec, err := s.repo.Get(ctx, collection, id)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return rec, nil
}

// Delete removes a document.
func (s *Service) Delete(ctx context.Context, collection, id string) error {
	if err := s.repo.Delete(ctx, collection, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

func validateName(what, name string) error {
	if name == "" {
		return fmt.Errorf("%s is required", what)
	}
	if len(name) > 64 {
		return fmt.Errorf("%s too long (max 64)", what)
	}
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("%s must be alphanumeric with underscores and hyphens", what)
	}
	return nil
}
