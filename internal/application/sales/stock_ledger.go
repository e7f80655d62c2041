package sales

import (
	"fmt"
	"time"

	"github.com/babilsoft/babil-erp/internal/domain"
	"github.com/babilsoft/babil-erp/internal/domain/entity"
	"github.com/babilsoft/babil-erp/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockLedger applies and reverses inventory quantity changes for catalog
// products and serialized motorcycles. All methods operate on repositories
// bound to the caller's transaction; a returned error must roll it back.
type StockLedger struct {
	log *logger.Logger
}

// NewStockLedger builds the ledger.
func NewStockLedger(log *logger.Logger) *StockLedger {
	return &StockLedger{log: log}
}

// stockDelta is the net quantity for one catalog item across all lines.
type stockDelta struct {
	kind     string
	itemID   string
	quantity decimal.Decimal
}

// aggregateDeltas sums quantities per (kind, id) before any catalog row is
// touched. Duplicate lines referencing the same item must collapse into one
// delta: applying row by row would read stale quantities inside the same
// transaction. First-seen order is preserved so lock acquisition is stable.
func aggregateDeltas(items []entity.Line) ([]stockDelta, error) {
	index := make(map[string]int, len(items))
	var deltas []stockDelta
	for _, l := range items {
		if !entity.ValidLineKind(l.Kind) {
			return nil, fmt.Errorf("%w: unknown line kind %q", domain.ErrInvalidInput, l.Kind)
		}
		if l.ItemID == "" {
			return nil, fmt.Errorf("%w: line item id is empty", domain.ErrInvalidInput)
		}
		key := l.Kind + ":" + l.ItemID
		if i, ok := index[key]; ok {
			deltas[i].quantity = deltas[i].quantity.Add(l.Quantity)
			continue
		}
		index[key] = len(deltas)
		deltas = append(deltas, stockDelta{kind: l.Kind, itemID: l.ItemID, quantity: l.Quantity})
	}
	return deltas, nil
}

// Reserve checks availability without mutating anything and returns every
// shortfall, not just the first.
func (s *StockLedger) Reserve(r TxRepos, items []entity.Line) []*domain.InsufficientStockError {
	deltas, err := aggregateDeltas(items)
	if err != nil {
		return nil
	}
	var shortfalls []*domain.InsufficientStockError
	for _, d := range deltas {
		available, name, err := s.currentQuantity(r, d.kind, d.itemID)
		if err != nil {
			continue
		}
		if available.LessThan(d.quantity) {
			shortfalls = append(shortfalls, &domain.InsufficientStockError{
				Kind: d.kind, ItemID: d.itemID, Name: name,
				Available: available, Requested: d.quantity,
			})
		}
	}
	return shortfalls
}

func (s *StockLedger) currentQuantity(r TxRepos, kind, itemID string) (decimal.Decimal, string, error) {
	if kind == entity.LineKindMotorcycle {
		m, err := r.Motorcycles.GetByID(itemID)
		if err != nil || m == nil {
			return decimal.Zero, "", domain.ErrNotFound
		}
		return m.StockQuantity, m.Brand + " " + m.Model, nil
	}
	p, err := r.Products.GetByID(itemID)
	if err != nil || p == nil {
		return decimal.Zero, "", domain.ErrNotFound
	}
	return p.StockQuantity, p.Name, nil
}

// Apply deducts the aggregated quantities of items from the catalog and
// writes one StockMovement audit row per distinct product (net signed delta
// and resulting balance). Motorcycles only get their quantity updated.
// Insufficient stock fails the whole operation before any partial reduction
// of that item; the caller's transaction rolls back the rest.
func (s *StockLedger) Apply(r TxRepos, invoiceID string, items []entity.Line, userID string, now time.Time) error {
	deltas, err := aggregateDeltas(items)
	if err != nil {
		return err
	}
	for _, d := range deltas {
		if d.kind == entity.LineKindMotorcycle {
			m, err := r.Motorcycles.GetForUpdate(d.itemID)
			if err != nil {
				return err
			}
			if m == nil {
				return fmt.Errorf("motorcycle %s: %w", d.itemID, domain.ErrNotFound)
			}
			if m.StockQuantity.LessThan(d.quantity) {
				return &domain.InsufficientStockError{
					Kind: d.kind, ItemID: d.itemID, Name: m.Brand + " " + m.Model,
					Available: m.StockQuantity, Requested: d.quantity,
				}
			}
			if err := r.Motorcycles.UpdateStockQuantity(d.itemID, m.StockQuantity.Sub(d.quantity)); err != nil {
				return err
			}
			continue
		}

		p, err := r.Products.GetForUpdate(d.itemID)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("product %s: %w", d.itemID, domain.ErrNotFound)
		}
		if p.StockQuantity.LessThan(d.quantity) {
			return &domain.InsufficientStockError{
				Kind: d.kind, ItemID: d.itemID, Name: p.Name,
				Available: p.StockQuantity, Requested: d.quantity,
			}
		}
		newQty := p.StockQuantity.Sub(d.quantity)
		if err := r.Products.UpdateStockQuantity(d.itemID, newQty); err != nil {
			return err
		}
		mov := &entity.StockMovement{
			ID:           uuid.New().String(),
			ProductID:    d.itemID,
			InvoiceID:    invoiceID,
			Type:         entity.MovementTypeSale,
			Quantity:     d.quantity.Neg(),
			BalanceAfter: newQty,
			CreatedBy:    userID,
			CreatedAt:    now,
		}
		if err := r.Movements.Create(mov); err != nil {
			return err
		}
	}
	return nil
}

// Reverse restores exactly what the given invoice previously removed: its
// movement audit rows are deleted and the aggregated quantities of items
// (the invoice's original items) are added back to the catalog. Catalog
// records that no longer exist are skipped with a warning; historical data
// may already be inconsistent and reversal must not fail on it.
func (s *StockLedger) Reverse(r TxRepos, invoiceID string, items []entity.Line) error {
	if err := r.Movements.DeleteByInvoiceID(invoiceID); err != nil {
		return err
	}
	deltas, err := aggregateDeltas(items)
	if err != nil {
		return err
	}
	for _, d := range deltas {
		if d.kind == entity.LineKindMotorcycle {
			m, err := r.Motorcycles.GetForUpdate(d.itemID)
			if err != nil {
				return err
			}
			if m == nil {
				s.log.Warn().Str("invoice_id", invoiceID).Str("motorcycle_id", d.itemID).
					Msg("reverse stock: motorcycle no longer exists, skipping")
				continue
			}
			if err := r.Motorcycles.UpdateStockQuantity(d.itemID, m.StockQuantity.Add(d.quantity)); err != nil {
				return err
			}
			continue
		}

		p, err := r.Products.GetForUpdate(d.itemID)
		if err != nil {
			return err
		}
		if p == nil {
			s.log.Warn().Str("invoice_id", invoiceID).Str("product_id", d.itemID).
				Msg("reverse stock: product no longer exists, skipping")
			continue
		}
		if err := r.Products.UpdateStockQuantity(d.itemID, p.StockQuantity.Add(d.quantity)); err != nil {
			return err
		}
	}
	return nil
}
