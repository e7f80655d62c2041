package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/babilsoft/babil-erp/internal/domain"
	"github.com/babilsoft/babil-erp/internal/domain/billing"
	"github.com/babilsoft/babil-erp/internal/domain/entity"
	"github.com/babilsoft/babil-erp/internal/domain/repository"
	"github.com/babilsoft/babil-erp/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DraftUseCase manages the mutable stage of the order lifecycle: creating
// drafts, autosaving edits and cancelling. Totals are always recomputed
// server-side from the items; client-supplied totals are never trusted.
type DraftUseCase struct {
	txRunner    TxRunner
	drafts      repository.DraftRepository
	products    repository.ProductRepository
	motorcycles repository.MotorcycleRepository
	customers   repository.CustomerRepository
	log         *logger.Logger
}

// NewDraftUseCase builds the use case.
func NewDraftUseCase(
	txRunner TxRunner,
	drafts repository.DraftRepository,
	products repository.ProductRepository,
	motorcycles repository.MotorcycleRepository,
	customers repository.CustomerRepository,
	log *logger.Logger,
) *DraftUseCase {
	return &DraftUseCase{
		txRunner:    txRunner,
		drafts:      drafts,
		products:    products,
		motorcycles: motorcycles,
		customers:   customers,
		log:         log,
	}
}

// DraftItemInput is one line as sent by the client.
type DraftItemInput struct {
	Kind        string
	ItemID      string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal // zero means "use the catalog price"
	DiscountPct decimal.Decimal
	TaxRatePct  decimal.Decimal
}

// CreateDraftInput creates a new draft.
type CreateDraftInput struct {
	SaleType   string
	CustomerID *string
	Currency   string // empty: USD when any motorcycle line is present, else IQD
	Items      []DraftItemInput
	Discount   decimal.Decimal
	Notes      string
}

// UpdateDraftInput is one autosave: a full replace of items and editable
// header fields.
type UpdateDraftInput struct {
	DraftID    string
	CustomerID *string
	Items      []DraftItemInput
	Discount   decimal.Decimal
	Notes      string
	MarkReady  bool // client signals the draft is complete
}

// resolveItems validates each line against the catalog and snapshots name and
// price. Validation is read-only and runs outside the write transaction.
func (uc *DraftUseCase) resolveItems(items []DraftItemInput) ([]*entity.DraftItem, error) {
	out := make([]*entity.DraftItem, 0, len(items))
	for i, in := range items {
		if !entity.ValidLineKind(in.Kind) {
			return nil, fmt.Errorf("%w: item %d has unknown kind %q", domain.ErrInvalidInput, i+1, in.Kind)
		}
		if in.Quantity.LessThan(decimal.Zero) || in.UnitPrice.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: item %d has negative quantity or price", domain.ErrInvalidInput, i+1)
		}

		line := entity.Line{
			Kind: in.Kind, ItemID: in.ItemID,
			Quantity: in.Quantity, UnitPrice: in.UnitPrice,
			DiscountPct: in.DiscountPct, TaxRatePct: in.TaxRatePct,
		}
		if in.Kind == entity.LineKindMotorcycle {
			m, err := uc.motorcycles.GetByID(in.ItemID)
			if err != nil {
				return nil, err
			}
			if m == nil {
				return nil, fmt.Errorf("motorcycle %s: %w", in.ItemID, domain.ErrNotFound)
			}
			line.Name = m.Brand + " " + m.Model
			if line.UnitPrice.IsZero() {
				line.UnitPrice = m.Price
			}
		} else {
			p, err := uc.products.GetByID(in.ItemID)
			if err != nil {
				return nil, err
			}
			if p == nil {
				return nil, fmt.Errorf("product %s: %w", in.ItemID, domain.ErrNotFound)
			}
			line.Name = p.Name
			if line.UnitPrice.IsZero() {
				line.UnitPrice = p.Price
			}
			if line.TaxRatePct.IsZero() {
				line.TaxRatePct = p.TaxRate
			}
		}

		out = append(out, &entity.DraftItem{
			ID:        uuid.New().String(),
			Line:      line,
			LineTotal: billing.LineTotal(line.Quantity, line.UnitPrice, line.DiscountPct, line.TaxRatePct),
			SortOrder: i,
		})
	}
	return out, nil
}

func defaultCurrency(items []*entity.DraftItem) string {
	for _, it := range items {
		if it.Kind == entity.LineKindMotorcycle {
			return entity.CurrencyUSD
		}
	}
	return entity.CurrencyIQD
}

func applyTotals(d *entity.Draft) {
	lines := make([]entity.Line, 0, len(d.Items))
	for _, it := range d.Items {
		lines = append(lines, it.Line)
	}
	totals := billing.AggregateTotals(lines, d.Discount)
	d.Subtotal = totals.Subtotal
	d.TaxAmount = totals.TaxAmount
	d.Total = totals.Total
}

// Create builds and persists a new draft in CREATED status.
func (uc *DraftUseCase) Create(ctx context.Context, userID string, in CreateDraftInput) (*entity.Draft, error) {
	if in.SaleType != entity.SaleTypeWholesale && in.SaleType != entity.SaleTypeRetail {
		return nil, fmt.Errorf("%w: unknown sale type %q", domain.ErrInvalidInput, in.SaleType)
	}
	if in.CustomerID != nil {
		c, err := uc.customers.GetByID(*in.CustomerID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, fmt.Errorf("customer %s: %w", *in.CustomerID, domain.ErrNotFound)
		}
	}
	items, err := uc.resolveItems(in.Items)
	if err != nil {
		return nil, err
	}

	currency := in.Currency
	if currency == "" {
		currency = defaultCurrency(items)
	}
	if !entity.ValidCurrency(currency) {
		return nil, fmt.Errorf("%w: unknown currency %q", domain.ErrInvalidInput, currency)
	}

	now := time.Now()
	draft := &entity.Draft{
		ID:         uuid.New().String(),
		SaleType:   in.SaleType,
		Status:     entity.DraftStatusCreated,
		CustomerID: in.CustomerID,
		Currency:   currency,
		Items:      items,
		Discount:   in.Discount,
		Notes:      in.Notes,
		CreatedBy:  userID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, it := range items {
		it.DraftID = draft.ID
	}
	applyTotals(draft)

	err = uc.txRunner.Run(ctx, func(r TxRepos) error {
		if err := r.Drafts.Create(draft); err != nil {
			return err
		}
		return r.Drafts.ReplaceItems(draft.ID, draft.Items)
	})
	if err != nil {
		return nil, err
	}
	return draft, nil
}

// Update is one autosave call: independently transactional, idempotent at
// the draft-row level (full replace of items).
func (uc *DraftUseCase) Update(ctx context.Context, in UpdateDraftInput) (*entity.Draft, error) {
	if in.CustomerID != nil {
		c, err := uc.customers.GetByID(*in.CustomerID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, fmt.Errorf("customer %s: %w", *in.CustomerID, domain.ErrNotFound)
		}
	}
	items, err := uc.resolveItems(in.Items)
	if err != nil {
		return nil, err
	}

	var out *entity.Draft
	err = uc.txRunner.Run(ctx, func(r TxRepos) error {
		draft, err := r.Drafts.GetForUpdate(in.DraftID)
		if err != nil {
			return err
		}
		if draft == nil {
			return fmt.Errorf("draft %s: %w", in.DraftID, domain.ErrNotFound)
		}
		if !billing.CanEdit(draft) {
			return fmt.Errorf("draft %s status %s: %w", draft.ID, draft.Status, domain.ErrConflict)
		}

		status := entity.DraftStatusAutosaving
		if in.MarkReady {
			status = entity.DraftStatusReady
		}
		if !billing.CanTransition(draft.Status, status) {
			return fmt.Errorf("draft %s: %s -> %s: %w", draft.ID, draft.Status, status, domain.ErrConflict)
		}

		for _, it := range items {
			it.DraftID = draft.ID
		}
		draft.Status = status
		draft.CustomerID = in.CustomerID
		draft.Items = items
		draft.Discount = in.Discount
		draft.Notes = in.Notes
		draft.UpdatedAt = time.Now()
		applyTotals(draft)

		if err := r.Drafts.Update(draft); err != nil {
			return err
		}
		if err := r.Drafts.ReplaceItems(draft.ID, items); err != nil {
			return err
		}
		out = draft
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Cancel moves an editable draft to the terminal CANCELLED status.
func (uc *DraftUseCase) Cancel(ctx context.Context, draftID string) error {
	return uc.txRunner.Run(ctx, func(r TxRepos) error {
		draft, err := r.Drafts.GetForUpdate(draftID)
		if err != nil {
			return err
		}
		if draft == nil {
			return fmt.Errorf("draft %s: %w", draftID, domain.ErrNotFound)
		}
		if !billing.CanTransition(draft.Status, entity.DraftStatusCancelled) {
			return fmt.Errorf("draft %s status %s: %w", draft.ID, draft.Status, domain.ErrConflict)
		}
		draft.Status = entity.DraftStatusCancelled
		draft.UpdatedAt = time.Now()
		return r.Drafts.Update(draft)
	})
}

// Get returns a draft with its items.
func (uc *DraftUseCase) Get(ctx context.Context, draftID string) (*entity.Draft, error) {
	draft, err := uc.drafts.GetByID(draftID)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, domain.ErrNotFound
	}
	return draft, nil
}

// ListByStatus pages drafts by status.
func (uc *DraftUseCase) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.Draft, error) {
	return uc.drafts.ListByStatus(status, limit, offset)
}
