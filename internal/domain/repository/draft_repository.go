package repository

import "github.com/babilsoft/babil-erp/internal/domain/entity"

// DraftRepository is the persistence port for drafts and their items.
type DraftRepository interface {
	Create(draft *entity.Draft) error
	// Update persists the draft header (status, customer, totals, payment,
	// links). Items are replaced separately via ReplaceItems.
	Update(draft *entity.Draft) error
	// ReplaceItems deletes and rewrites the draft's items as a unit
	// (autosave is a full replace).
	ReplaceItems(draftID string, items []*entity.DraftItem) error
	// GetByID returns the draft with its items, or nil when absent.
	GetByID(id string) (*entity.Draft, error)
	// GetForUpdate locks the draft row for the enclosing transaction.
	GetForUpdate(id string) (*entity.Draft, error)
	ListByStatus(status string, limit, offset int) ([]*entity.Draft, error)
}
