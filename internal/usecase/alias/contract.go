package alias

import "context"

// Repository defines the storage contract for collection aliases.
type Repository interface {
	SetAlias(ctx context.Context, alias string, targets []string) error
}
