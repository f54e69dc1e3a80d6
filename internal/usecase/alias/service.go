// Package alias manages collection aliases: names that resolve to an
// ordered list of underlying collections.
package alias

import (
	"context"
	"fmt"
	"regexp"

	"github.com/kailas-cloud/fieldprobe/internal/domain"
)

var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Service handles alias management.
type Service struct {
	repo Repository
}

// New creates an alias service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Set validates and stores an alias over one or more target collections.
func (s *Service) Set(ctx context.Context, alias string, targets []string) error {
	if err := validateName(alias); err != nil {
		return fmt.Errorf("%w: alias %w", domain.ErrInvalidAlias, err)
	}
	if len(targets) == 0 {
		return fmt.Errorf("%w: at least one target is required", domain.ErrInvalidAlias)
	}
	for _, t := range targets {
		if err := validateName(t); err != nil {
			return fmt.Errorf("%w: target %w", domain.ErrInvalidAlias, err)
		}
		if t == alias {
			return fmt.Errorf("%w: alias cannot target itself", domain.ErrInvalidAlias)
		}
	}

	if err := s.repo.SetAlias(ctx, alias, targets); err != nil {
		return fmt.Errorf("set alias: %w", err)
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > 64 {
		return fmt.Errorf("name too long (max 64)")
	}
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("name must be alphanumeric with underscores and hyphens")
	}
	return nil
}
