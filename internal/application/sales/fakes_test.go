package sales_test

import (
	"context"

	"github.com/babilsoft/babil-erp/internal/application/sales"
	"github.com/babilsoft/babil-erp/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// memStore is an in-memory stand-in for the database, shared by the fake
// repositories below.
type memStore struct {
	drafts     map[string]*entity.Draft
	draftItems map[string][]*entity.DraftItem
	sales      map[string]*entity.Sale
	saleItems  map[string][]*entity.SaleItem
	invoices   map[string]*entity.Invoice
	invItems   map[string][]*entity.InvoiceItem
	customers  map[string]*entity.Customer
	balances   []*entity.CustomerBalance
	products   map[string]*entity.Product
	motos      map[string]*entity.Motorcycle
	movements  []*entity.StockMovement
}

func newMemStore() *memStore {
	return &memStore{
		drafts:     map[string]*entity.Draft{},
		draftItems: map[string][]*entity.DraftItem{},
		sales:      map[string]*entity.Sale{},
		saleItems:  map[string][]*entity.SaleItem{},
		invoices:   map[string]*entity.Invoice{},
		invItems:   map[string][]*entity.InvoiceItem{},
		customers:  map[string]*entity.Customer{},
		products:   map[string]*entity.Product{},
		motos:      map[string]*entity.Motorcycle{},
	}
}

func cloneMap[T any](src map[string]*T) map[string]*T {
	dst := make(map[string]*T, len(src))
	for k, v := range src {
		c := *v
		dst[k] = &c
	}
	return dst
}

func cloneSliceMap[T any](src map[string][]*T) map[string][]*T {
	dst := make(map[string][]*T, len(src))
	for k, vs := range src {
		out := make([]*T, 0, len(vs))
		for _, v := range vs {
			c := *v
			out = append(out, &c)
		}
		dst[k] = out
	}
	return dst
}

func cloneSlice[T any](src []*T) []*T {
	out := make([]*T, 0, len(src))
	for _, v := range src {
		c := *v
		out = append(out, &c)
	}
	return out
}

func (s *memStore) clone() *memStore {
	return &memStore{
		drafts:     cloneMap(s.drafts),
		draftItems: cloneSliceMap(s.draftItems),
		sales:      cloneMap(s.sales),
		saleItems:  cloneSliceMap(s.saleItems),
		invoices:   cloneMap(s.invoices),
		invItems:   cloneSliceMap(s.invItems),
		customers:  cloneMap(s.customers),
		balances:   cloneSlice(s.balances),
		products:   cloneMap(s.products),
		motos:      cloneMap(s.motos),
		movements:  cloneSlice(s.movements),
	}
}

func reposFor(s *memStore) sales.TxRepos {
	return sales.TxRepos{
		Drafts:      &memDraftRepo{s},
		Sales:       &memSaleRepo{s},
		Invoices:    &memInvoiceRepo{s},
		Customers:   &memCustomerRepo{s},
		Balances:    &memBalanceRepo{s},
		Products:    &memProductRepo{s},
		Motorcycles: &memMotoRepo{s},
		Movements:   &memMovementRepo{s},
	}
}

// memTxRunner mimics transactional all-or-nothing commit: the callback works
// on a deep copy of the store, which only replaces the live store on success.
type memTxRunner struct{ s *memStore }

func (t *memTxRunner) Run(_ context.Context, fn func(r sales.TxRepos) error) error {
	work := t.s.clone()
	if err := fn(reposFor(work)); err != nil {
		return err
	}
	*t.s = *work
	return nil
}

type memDraftRepo struct{ s *memStore }

func (r *memDraftRepo) Create(d *entity.Draft) error {
	c := *d
	r.s.drafts[d.ID] = &c
	return nil
}

func (r *memDraftRepo) Update(d *entity.Draft) error {
	c := *d
	r.s.drafts[d.ID] = &c
	return nil
}

func (r *memDraftRepo) ReplaceItems(draftID string, items []*entity.DraftItem) error {
	r.s.draftItems[draftID] = cloneSlice(items)
	return nil
}

func (r *memDraftRepo) GetByID(id string) (*entity.Draft, error) {
	d, ok := r.s.drafts[id]
	if !ok {
		return nil, nil
	}
	c := *d
	c.Items = cloneSlice(r.s.draftItems[id])
	return &c, nil
}

func (r *memDraftRepo) GetForUpdate(id string) (*entity.Draft, error) { return r.GetByID(id) }

func (r *memDraftRepo) ListByStatus(status string, limit, offset int) ([]*entity.Draft, error) {
	var out []*entity.Draft
	for _, d := range r.s.drafts {
		if d.Status == status {
			c := *d
			out = append(out, &c)
		}
	}
	return out, nil
}

type memSaleRepo struct{ s *memStore }

func (r *memSaleRepo) Create(sl *entity.Sale) error {
	c := *sl
	r.s.sales[sl.ID] = &c
	return nil
}

func (r *memSaleRepo) Update(sl *entity.Sale) error {
	c := *sl
	r.s.sales[sl.ID] = &c
	return nil
}

func (r *memSaleRepo) ReplaceItems(saleID string, items []*entity.SaleItem) error {
	r.s.saleItems[saleID] = cloneSlice(items)
	return nil
}

func (r *memSaleRepo) GetByID(id string) (*entity.Sale, error) {
	sl, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	c := *sl
	return &c, nil
}

func (r *memSaleRepo) GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error) {
	return cloneSlice(r.s.saleItems[saleID]), nil
}

type memInvoiceRepo struct{ s *memStore }

func (r *memInvoiceRepo) Create(inv *entity.Invoice) error {
	c := *inv
	r.s.invoices[inv.ID] = &c
	return nil
}

func (r *memInvoiceRepo) Update(inv *entity.Invoice) error {
	c := *inv
	r.s.invoices[inv.ID] = &c
	return nil
}

func (r *memInvoiceRepo) ReplaceItems(invoiceID string, items []*entity.InvoiceItem) error {
	r.s.invItems[invoiceID] = cloneSlice(items)
	return nil
}

func (r *memInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	c := *inv
	return &c, nil
}

func (r *memInvoiceRepo) GetForUpdate(id string) (*entity.Invoice, error) { return r.GetByID(id) }

func (r *memInvoiceRepo) GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error) {
	return cloneSlice(r.s.invItems[invoiceID]), nil
}

func (r *memInvoiceRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.s.invoices {
		if inv.CustomerID != nil && *inv.CustomerID == customerID {
			c := *inv
			out = append(out, &c)
		}
	}
	return out, nil
}

type memCustomerRepo struct{ s *memStore }

func (r *memCustomerRepo) Create(c *entity.Customer) error {
	cc := *c
	r.s.customers[c.ID] = &cc
	return nil
}

func (r *memCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	cc := *c
	return &cc, nil
}

func (r *memCustomerRepo) GetForUpdate(id string) (*entity.Customer, error) { return r.GetByID(id) }

func (r *memCustomerRepo) UpdateDebts(c *entity.Customer) error { return r.Create(c) }

func (r *memCustomerRepo) Update(c *entity.Customer) error { return r.Create(c) }

func (r *memCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.s.customers {
		cc := *c
		out = append(out, &cc)
	}
	return out, nil
}

func (r *memCustomerRepo) ListDebtors(limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.s.customers {
		if c.HasDebt() {
			cc := *c
			out = append(out, &cc)
		}
	}
	return out, nil
}

type memBalanceRepo struct{ s *memStore }

func (r *memBalanceRepo) Create(row *entity.CustomerBalance) error {
	c := *row
	r.s.balances = append(r.s.balances, &c)
	return nil
}

func (r *memBalanceRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.CustomerBalance, error) {
	var out []*entity.CustomerBalance
	for _, b := range r.s.balances {
		if b.CustomerID == customerID {
			c := *b
			out = append(out, &c)
		}
	}
	return out, nil
}

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(p *entity.Product) error {
	c := *p
	r.s.products[p.ID] = &c
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }

func (r *memProductRepo) UpdateStockQuantity(id string, quantity decimal.Decimal) error {
	if p, ok := r.s.products[id]; ok {
		p.StockQuantity = quantity
	}
	return nil
}

func (r *memProductRepo) Update(p *entity.Product) error { return r.Create(p) }

func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		c := *p
		out = append(out, &c)
	}
	return out, nil
}

type memMotoRepo struct{ s *memStore }

func (r *memMotoRepo) Create(m *entity.Motorcycle) error {
	c := *m
	r.s.motos[m.ID] = &c
	return nil
}

func (r *memMotoRepo) GetByID(id string) (*entity.Motorcycle, error) {
	m, ok := r.s.motos[id]
	if !ok {
		return nil, nil
	}
	c := *m
	return &c, nil
}

func (r *memMotoRepo) GetForUpdate(id string) (*entity.Motorcycle, error) { return r.GetByID(id) }

func (r *memMotoRepo) UpdateStockQuantity(id string, quantity decimal.Decimal) error {
	if m, ok := r.s.motos[id]; ok {
		m.StockQuantity = quantity
	}
	return nil
}

func (r *memMotoRepo) Update(m *entity.Motorcycle) error { return r.Create(m) }

func (r *memMotoRepo) List(limit, offset int) ([]*entity.Motorcycle, error) {
	var out []*entity.Motorcycle
	for _, m := range r.s.motos {
		c := *m
		out = append(out, &c)
	}
	return out, nil
}

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(m *entity.StockMovement) error {
	c := *m
	r.s.movements = append(r.s.movements, &c)
	return nil
}

func (r *memMovementRepo) DeleteByInvoiceID(invoiceID string) error {
	var kept []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.InvoiceID != invoiceID {
			kept = append(kept, m)
		}
	}
	r.s.movements = kept
	return nil
}

func (r *memMovementRepo) ListByInvoice(invoiceID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.InvoiceID == invoiceID {
			c := *m
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			c := *m
			out = append(out, &c)
		}
	}
	return out, nil
}
