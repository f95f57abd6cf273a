package customization

import (
	"context"
	"maps"

	"skintone-studio/logger"
	"skintone-studio/models"
)

// Store is the persistence port for customization snapshots, keyed by product id
type Store interface {
	Load(ctx context.Context, productID string) (models.MaterialValues, error)
	Save(ctx context.Context, productID string, values models.MaterialValues) error
	Clear(ctx context.Context, productID string) error
}

// Persister guards a Store: an empty snapshot never overwrites a stored non-empty one,
// an empty restore never clobbers a populated state and storage failures are logged and
// swallowed
type Persister struct {
	store Store
	log   *logger.Logger
}

// NewPersister creates a new Persister
func NewPersister(store Store, log *logger.Logger) *Persister {
	return &Persister{store: store, log: log}
}

// Save writes the snapshot of state for productID. Returns true when it was written
func (p *Persister) Save(ctx context.Context, productID string, state *State) bool {
	values := state.Values()
	if len(values) == 0 {
		stored, err := p.store.Load(ctx, productID)
		if err != nil {
			p.log.Warn("⚠️ Failed to read customization snapshot before save", "productId", productID, "error", err)
			return false
		}
		if len(stored) > 0 {
			p.log.Warn("⚠️ Refusing to overwrite stored customization with an empty snapshot",
				"productId", productID, "stored", len(stored))
			return false
		}
	}
	if err := p.store.Save(ctx, productID, values); err != nil {
		p.log.Warn("⚠️ Failed to save customization snapshot", "productId", productID, "error", err)
		return false
	}
	return true
}

// Restore loads the stored snapshot into state. Returns true when state was replaced
func (p *Persister) Restore(ctx context.Context, productID string, state *State) bool {
	stored, err := p.store.Load(ctx, productID)
	if err != nil {
		p.log.Warn("⚠️ Failed to load customization snapshot", "productId", productID, "error", err)
		return false
	}
	if len(stored) == 0 && state.Len() > 0 {
		p.log.Debug("Skipping empty customization restore over populated state", "productId", productID)
		return false
	}
	state.Replace(stored)
	return true
}

// Sync brings state up to date with the stored snapshot. seen is the snapshot state was
// last synced with; state is only replaced when the store moved on since then, and an
// empty snapshot never clobbers a populated state. Returns the new seen snapshot and false
// when the store could not be read
func (p *Persister) Sync(ctx context.Context, productID string, state *State, seen models.MaterialValues) (models.MaterialValues, bool) {
	stored, err := p.store.Load(ctx, productID)
	if err != nil {
		p.log.Warn("⚠️ Failed to load customization snapshot", "productId", productID, "error", err)
		return seen, false
	}
	if maps.Equal(stored, seen) {
		return seen, true
	}
	if len(stored) == 0 && state.Len() > 0 {
		p.log.Debug("Skipping empty customization restore over populated state", "productId", productID)
		return stored, true
	}
	state.Replace(stored)
	return stored, true
}

// Clear removes the stored snapshot. This is the only way to empty a stored snapshot
func (p *Persister) Clear(ctx context.Context, productID string) {
	if err := p.store.Clear(ctx, productID); err != nil {
		p.log.Warn("⚠️ Failed to clear customization snapshot", "productId", productID, "error", err)
	}
}
