// Package store persists ruler guides per workspace so they outlive a
// single editing session.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/inamate/snapkit/internal/config"
	"github.com/inamate/snapkit/internal/designer"
)

var ErrNotFound = errors.New("guide not found")

type RulerStore interface {
	// List returns the guides of a workspace in insertion order.
	List(ctx context.Context, workspaceID string) ([]designer.Guide, error)
	// Save inserts or replaces a guide by id.
	Save(ctx context.Context, workspaceID string, g designer.Guide) error
	// Delete removes a guide; ErrNotFound when it does not exist.
	Delete(ctx context.Context, workspaceID, guideID string) error
	Close()
}

// Open builds the store selected by cfg.RulerStore.
func Open(ctx context.Context, cfg *config.Config) (RulerStore, error) {
	switch cfg.RulerStore {
	case config.StorePostgres:
		return NewPostgres(ctx, cfg.DatabaseURL)
	case config.StoreRedis:
		return NewRedis(ctx, cfg.RedisURL)
	case config.StoreMemory, "":
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("open ruler store: unknown backend %q", cfg.RulerStore)
}
