package sales

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespoint/internal/core/apperror"
	appctx "salespoint/internal/core/context"
	"salespoint/internal/core/id"
	"salespoint/internal/core/location"
	"salespoint/internal/core/types"
	"salespoint/internal/domain/catalogs/product"
	"salespoint/internal/domain/catalogs/store"
	"salespoint/internal/domain/inventory"
	"salespoint/internal/domain/invoice"
)

// --- fakes -----------------------------------------------------------------
//
// The fake transaction manager snapshots every participating fake before
// running the unit of work and restores the snapshots on error, mimicking
// a database rollback.

type snapshotter interface {
	snapshot() any
	restore(any)
}

type fakeTxManager struct {
	mu    sync.Mutex
	parts []snapshotter
}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	saves := make([]any, len(m.parts))
	for i, p := range m.parts {
		saves[i] = p.snapshot()
	}
	if err := fn(ctx); err != nil {
		for i, p := range m.parts {
			p.restore(saves[i])
		}
		return err
	}
	return nil
}

type invRecord struct {
	id       id.ID
	product  id.ID
	location string
	quantity int64
}

type fakeInventoryRepo struct {
	mu      sync.Mutex
	records map[string]*invRecord // productID|locationKey
	byID    map[id.ID]*invRecord
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{
		records: make(map[string]*invRecord),
		byID:    make(map[id.ID]*invRecord),
	}
}

func invKey(productID id.ID, loc location.Location) string {
	return productID.String() + "|" + loc.Key()
}

func (f *fakeInventoryRepo) put(productID id.ID, loc location.Location, qty int64) *invRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := &invRecord{id: id.New(), product: productID, location: loc.Key(), quantity: qty}
	f.records[invKey(productID, loc)] = rec
	f.byID[rec.id] = rec
	return rec
}

func (f *fakeInventoryRepo) quantity(productID id.ID, loc location.Location) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rec, ok := f.records[invKey(productID, loc)]; ok {
		return rec.quantity
	}
	return 0
}

func (f *fakeInventoryRepo) GetByProductAndLocation(_ context.Context, productID id.ID, loc location.Location) (*inventory.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[invKey(productID, loc)]
	if !ok {
		return nil, apperror.NewNotFound("inventory record", productID)
	}
	return &inventory.Record{ID: rec.id, ProductID: rec.product, Location: loc, Quantity: rec.quantity}, nil
}

func (f *fakeInventoryRepo) Debit(_ context.Context, productID id.ID, loc location.Location, qty int64) (id.ID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[invKey(productID, loc)]
	if !ok {
		return id.Nil(), apperror.NewNoInventoryRecord(productID.String(), loc.Key())
	}
	if rec.quantity < qty {
		return id.Nil(), apperror.NewInsufficientStock(productID.String(), qty, rec.quantity)
	}
	rec.quantity -= qty
	return rec.id, nil
}

func (f *fakeInventoryRepo) Credit(_ context.Context, productID id.ID, loc location.Location, qty int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rec, ok := f.records[invKey(productID, loc)]; ok {
		rec.quantity += qty
		return nil
	}
	rec := &invRecord{id: id.New(), product: productID, location: loc.Key(), quantity: qty}
	f.records[invKey(productID, loc)] = rec
	f.byID[rec.id] = rec
	return nil
}

func (f *fakeInventoryRepo) CreditRecord(_ context.Context, recordID id.ID, qty int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.byID[recordID]
	if !ok {
		return apperror.NewNotFound("inventory record", recordID)
	}
	rec.quantity += qty
	return nil
}

func (f *fakeInventoryRepo) ListByLocation(context.Context, location.Location) ([]inventory.Record, error) {
	return nil, nil
}

func (f *fakeInventoryRepo) LowStock(context.Context) ([]inventory.LowStockItem, error) {
	return nil, nil
}

func (f *fakeInventoryRepo) snapshot() any {
	f.mu.Lock()
	defer f.mu.Unlock()
	save := make(map[id.ID]int64, len(f.byID))
	for rid, rec := range f.byID {
		save[rid] = rec.quantity
	}
	return save
}

func (f *fakeInventoryRepo) restore(v any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	save := v.(map[id.ID]int64)
	for rid, rec := range f.byID {
		if qty, ok := save[rid]; ok {
			rec.quantity = qty
		} else {
			delete(f.byID, rid)
			delete(f.records, invKey(rec.product, mustParseLoc(rec.location)))
		}
	}
}

func mustParseLoc(key string) location.Location {
	loc, err := location.ParseKey(key)
	if err != nil {
		panic(err)
	}
	return loc
}

type fakeSalesRepo struct {
	mu        sync.Mutex
	byID      map[id.ID]*Transaction
	createErr error
}

func newFakeSalesRepo() *fakeSalesRepo {
	return &fakeSalesRepo{byID: make(map[id.ID]*Transaction)}
}

func (f *fakeSalesRepo) Create(_ context.Context, t *Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return apperror.NewDatabase(f.createErr)
	}
	stored := *t
	stored.Items = append([]TransactionItem(nil), t.Items...)
	f.byID[t.ID] = &stored
	return nil
}

func (f *fakeSalesRepo) GetByID(_ context.Context, txID id.ID) (*Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.byID[txID]
	if !ok {
		return nil, apperror.NewNotFound("sales transaction", txID)
	}
	out := *t
	out.Items = append([]TransactionItem(nil), t.Items...)
	return &out, nil
}

func (f *fakeSalesRepo) UpdateStatus(_ context.Context, txID id.ID, from, to Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.byID[txID]
	if !ok {
		return apperror.NewNotFound("sales transaction", txID)
	}
	if t.Status != from {
		return apperror.NewInvalidStateTransition(string(t.Status), string(to))
	}
	t.Status = to
	t.UpdatedAt = time.Now().UTC()
	return nil
}

func (f *fakeSalesRepo) SetRefundedAmount(_ context.Context, txID id.ID, amount int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.byID[txID]
	if !ok {
		return apperror.NewNotFound("sales transaction", txID)
	}
	t.RefundedAmount = types.MinorUnits(amount)
	return nil
}

func (f *fakeSalesRepo) List(context.Context, Filter) ([]Transaction, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Transaction, 0, len(f.byID))
	for _, t := range f.byID {
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func (f *fakeSalesRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID)
}

func (f *fakeSalesRepo) snapshot() any {
	f.mu.Lock()
	defer f.mu.Unlock()
	save := make(map[id.ID]Transaction, len(f.byID))
	for tid, t := range f.byID {
		cp := *t
		cp.Items = append([]TransactionItem(nil), t.Items...)
		save[tid] = cp
	}
	return save
}

func (f *fakeSalesRepo) restore(v any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	save := v.(map[id.ID]Transaction)
	f.byID = make(map[id.ID]*Transaction, len(save))
	for tid, t := range save {
		cp := t
		f.byID[tid] = &cp
	}
}

type fakeActionStore struct {
	mu      sync.Mutex
	actions []Action
}

func (f *fakeActionStore) Append(_ context.Context, a *Action) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions = append(f.actions, *a)
	return nil
}

func (f *fakeActionStore) ListByTransaction(_ context.Context, txID id.ID) ([]Action, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Action
	for _, a := range f.actions {
		if a.TransactionID == txID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeActionStore) byType(txID id.ID, kind ActionType) []Action {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Action
	for _, a := range f.actions {
		if a.TransactionID == txID && a.Type == kind {
			out = append(out, a)
		}
	}
	return out
}

func (f *fakeActionStore) snapshot() any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.actions)
}

func (f *fakeActionStore) restore(v any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions = f.actions[:v.(int)]
}

type fakeSequencer struct {
	mu       sync.Mutex
	counters map[string]int64
}

func newFakeSequencer() *fakeSequencer {
	return &fakeSequencer{counters: make(map[string]int64)}
}

func (f *fakeSequencer) Next(_ context.Context, key string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counters[key]++
	return f.counters[key], nil
}

func (f *fakeSequencer) current(key string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counters[key]
}

func (f *fakeSequencer) snapshot() any {
	f.mu.Lock()
	defer f.mu.Unlock()
	save := make(map[string]int64, len(f.counters))
	for k, v := range f.counters {
		save[k] = v
	}
	return save
}

func (f *fakeSequencer) restore(v any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counters = v.(map[string]int64)
}

type fakeProducts struct {
	byID   map[id.ID]*product.Product
	failOn id.ID
}

func (f *fakeProducts) GetByID(_ context.Context, productID id.ID) (*product.Product, error) {
	if productID == f.failOn {
		return nil, apperror.NewDatabase(errors.New("connection reset"))
	}
	p, ok := f.byID[productID]
	if !ok {
		return nil, apperror.NewNotFound("product", productID)
	}
	return p, nil
}

type fakeStores struct {
	byID map[id.ID]*store.Store
}

func (f *fakeStores) GetByID(_ context.Context, storeID id.ID) (*store.Store, error) {
	st, ok := f.byID[storeID]
	if !ok {
		return nil, apperror.NewNotFound("store", storeID)
	}
	return st, nil
}

// --- harness ---------------------------------------------------------------

type harness struct {
	svc       *Service
	invRepo   *fakeInventoryRepo
	salesRepo *fakeSalesRepo
	actions   *fakeActionStore
	seq       *fakeSequencer
	products  *fakeProducts
	stores    *fakeStores

	cashierID id.ID
	storeID   id.ID
	productA  id.ID // 10.00
	productB  id.ID // 5.50
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		invRepo:   newFakeInventoryRepo(),
		salesRepo: newFakeSalesRepo(),
		actions:   &fakeActionStore{},
		seq:       newFakeSequencer(),
		cashierID: id.New(),
		storeID:   id.New(),
		productA:  id.New(),
		productB:  id.New(),
	}

	h.products = &fakeProducts{byID: map[id.ID]*product.Product{
		h.productA: {ID: h.productA, Name: "Americano", SKU: "AM-01", UnitPrice: 1000},
		h.productB: {ID: h.productB, Name: "Bagel", SKU: "BG-01", UnitPrice: 550},
	}}
	h.stores = &fakeStores{byID: map[id.ID]*store.Store{
		h.storeID: {ID: h.storeID, Code: "MAIN", Name: "Main Street", Active: true},
	}}

	txm := &fakeTxManager{parts: []snapshotter{h.invRepo, h.salesRepo, h.actions, h.seq}}
	h.svc = NewService(
		DefaultConfig(),
		h.salesRepo,
		h.actions,
		inventory.NewService(h.invRepo),
		invoice.NewIssuer(h.seq),
		h.products,
		h.stores,
		txm,
	)
	h.svc.now = func() time.Time {
		return time.Date(2026, 1, 14, 12, 0, 0, 0, time.UTC)
	}
	return h
}

func (h *harness) ctx() context.Context {
	return appctx.WithUser(context.Background(), &appctx.UserContext{
		UserID:   h.cashierID.String(),
		Username: "jdoe",
		FullName: "Jane Doe",
		Roles:    []string{"cashier"},
	})
}

func (h *harness) storeLoc() location.Location {
	return location.Store(h.storeID)
}

// --- checkout --------------------------------------------------------------

func TestCheckout_ComputesTotalsAndSnapshots(t *testing.T) {
	h := newHarness(t)
	h.invRepo.put(h.productA, h.storeLoc(), 10)

	result, err := h.svc.Checkout(h.ctx(), CheckoutInput{
		Items:         []CartItem{{ProductID: h.productA, Quantity: 2}},
		PaymentMethod: PaymentCash,
		StoreID:       &h.storeID,
	})
	require.NoError(t, err)

	// 2 x 10.00 = 20.00 subtotal, 10% tax = 2.00, total 22.00.
	assert.Equal(t, types.MinorUnits(2000), result.Subtotal)
	assert.Equal(t, types.MinorUnits(200), result.Tax)
	assert.Equal(t, types.MinorUnits(2200), result.Total)

	assert.Equal(t, "MAIN-20260114-0001", result.InvoiceNumber)
	assert.Equal(t, TypeStoreSale, result.Type)
	assert.Equal(t, StatusCompleted, result.Status)
	assert.Equal(t, "Jane Doe", result.CashierName)
	assert.Equal(t, "Main Street", result.StoreName)

	require.Len(t, result.Items, 1)
	item := result.Items[0]
	assert.Equal(t, "Americano", item.ProductName)
	assert.Equal(t, types.MinorUnits(1000), item.UnitPrice)
	assert.Equal(t, types.MinorUnits(2000), item.LineTotal)
	assert.False(t, id.IsNil(item.InventoryRecordID))

	assert.Equal(t, int64(8), h.invRepo.quantity(h.productA, h.storeLoc()))
	assert.Len(t, h.actions.byType(result.ID, ActionCreated), 1)
}

func TestCheckout_EmptyCart(t *testing.T) {
	h := newHarness(t)

	_, err := h.svc.Checkout(h.ctx(), CheckoutInput{
		PaymentMethod: PaymentCash,
		StoreID:       &h.storeID,
	})
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeEmptyCart))

	// Rejected before any storage mutation.
	assert.Equal(t, 0, h.salesRepo.count())
	assert.Equal(t, int64(0), h.seq.current(h.storeLoc().Key()))
}

func TestCheckout_RejectsOversizedQuantity(t *testing.T) {
	h := newHarness(t)
	h.invRepo.put(h.productA, h.storeLoc(), 10)

	_, err := h.svc.Checkout(h.ctx(), CheckoutInput{
		Items:         []CartItem{{ProductID: h.productA, Quantity: MaxLineQuantity + 1}},
		PaymentMethod: PaymentCash,
		StoreID:       &h.storeID,
	})
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))

	// Rejected before any storage mutation.
	assert.Equal(t, int64(10), h.invRepo.quantity(h.productA, h.storeLoc()))
	assert.Equal(t, 0, h.salesRepo.count())
	assert.Equal(t, int64(0), h.seq.current(h.storeLoc().Key()))
}

func TestCheckout_InsufficientStock(t *testing.T) {
	h := newHarness(t)
	h.invRepo.put(h.productA, h.storeLoc(), 2)

	_, err := h.svc.Checkout(h.ctx(), CheckoutInput{
		Items:         []CartItem{{ProductID: h.productA, Quantity: 3}},
		PaymentMethod: PaymentCard,
		StoreID:       &h.storeID,
	})
	require.Error(t, err)
	require.True(t, apperror.IsInsufficientStock(err))

	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, h.productA.String(), appErr.Details["product_id"])
	assert.Equal(t, int64(3), appErr.Details["requested"])
	assert.Equal(t, int64(2), appErr.Details["available"])

	// Nothing changed: stock, transactions, invoice counter.
	assert.Equal(t, int64(2), h.invRepo.quantity(h.productA, h.storeLoc()))
	assert.Equal(t, 0, h.salesRepo.count())
	assert.Equal(t, int64(0), h.seq.current(h.storeLoc().Key()))
}

func TestCheckout_NoInventoryRecord(t *testing.T) {
	h := newHarness(t)

	_, err := h.svc.Checkout(h.ctx(), CheckoutInput{
		Items:         []CartItem{{ProductID: h.productA, Quantity: 1}},
		PaymentMethod: PaymentCash,
		StoreID:       &h.storeID,
	})
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeNoInventoryRecord))
}

func TestCheckout_MultiLineRollbackOnInsufficientStock(t *testing.T) {
	h := newHarness(t)
	h.invRepo.put(h.productA, h.storeLoc(), 10)
	h.invRepo.put(h.productB, h.storeLoc(), 1)

	_, err := h.svc.Checkout(h.ctx(), CheckoutInput{
		Items: []CartItem{
			{ProductID: h.productA, Quantity: 5},
			{ProductID: h.productB, Quantity: 2}, // only 1 available
		},
		PaymentMethod: PaymentCash,
		StoreID:       &h.storeID,
	})
	require.Error(t, err)
	require.True(t, apperror.IsInsufficientStock(err))

	// The successful debit of product A must be rolled back with the rest.
	assert.Equal(t, int64(10), h.invRepo.quantity(h.productA, h.storeLoc()))
	assert.Equal(t, int64(1), h.invRepo.quantity(h.productB, h.storeLoc()))
	assert.Equal(t, 0, h.salesRepo.count())
}

func TestCheckout_RollbackOnStorageFailure(t *testing.T) {
	h := newHarness(t)
	h.invRepo.put(h.productA, h.storeLoc(), 10)
	h.salesRepo.createErr = errors.New("disk full")

	_, err := h.svc.Checkout(h.ctx(), CheckoutInput{
		Items:         []CartItem{{ProductID: h.productA, Quantity: 4}},
		PaymentMethod: PaymentDigital,
		StoreID:       &h.storeID,
	})
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeDatabase))

	// Debits and the consumed invoice number both roll back.
	assert.Equal(t, int64(10), h.invRepo.quantity(h.productA, h.storeLoc()))
	assert.Equal(t, int64(0), h.seq.current(h.storeLoc().Key()))
}

func TestCheckout_ConcurrentLastUnit(t *testing.T) {
	h := newHarness(t)
	h.invRepo.put(h.productA, h.storeLoc(), 1)

	input := CheckoutInput{
		Items:         []CartItem{{ProductID: h.productA, Quantity: 1}},
		PaymentMethod: PaymentCash,
		StoreID:       &h.storeID,
	}

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = h.svc.Checkout(h.ctx(), input)
		}(i)
	}
	wg.Wait()

	var succeeded, failed int
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.True(t, apperror.IsInsufficientStock(err))
			failed++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, failed)
	assert.Equal(t, int64(0), h.invRepo.quantity(h.productA, h.storeLoc()))
}

func TestCheckout_DistributionCenterSale(t *testing.T) {
	h := newHarness(t)
	dc := location.DistributionCenter()
	h.invRepo.put(h.productB, dc, 100)

	result, err := h.svc.Checkout(h.ctx(), CheckoutInput{
		Items:         []CartItem{{ProductID: h.productB, Quantity: 10}},
		PaymentMethod: PaymentDigital,
	})
	require.NoError(t, err)

	assert.Equal(t, TypeDCSale, result.Type)
	assert.Equal(t, "DC-20260114-0001", result.InvoiceNumber)
	assert.False(t, result.Location.IsStore())
	assert.Equal(t, int64(90), h.invRepo.quantity(h.productB, dc))
}

func TestCheckout_DistinctInvoiceNumbersPerLocation(t *testing.T) {
	h := newHarness(t)
	h.invRepo.put(h.productA, h.storeLoc(), 100)

	input := CheckoutInput{
		Items:         []CartItem{{ProductID: h.productA, Quantity: 1}},
		PaymentMethod: PaymentCash,
		StoreID:       &h.storeID,
	}

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		result, err := h.svc.Checkout(h.ctx(), input)
		require.NoError(t, err)
		assert.False(t, seen[result.InvoiceNumber], "duplicate invoice number %s", result.InvoiceNumber)
		seen[result.InvoiceNumber] = true
	}
	assert.Equal(t, int64(5), h.seq.current(h.storeLoc().Key()))
}

func TestCheckout_RequiresCashierIdentity(t *testing.T) {
	h := newHarness(t)
	h.invRepo.put(h.productA, h.storeLoc(), 10)

	_, err := h.svc.Checkout(context.Background(), CheckoutInput{
		Items:         []CartItem{{ProductID: h.productA, Quantity: 1}},
		PaymentMethod: PaymentCash,
		StoreID:       &h.storeID,
	})
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeUnauthorized))
}

// --- reversal --------------------------------------------------------------

func TestCancel_RestoresInventory(t *testing.T) {
	h := newHarness(t)
	h.invRepo.put(h.productA, h.storeLoc(), 10)
	h.invRepo.put(h.productB, h.storeLoc(), 5)

	result, err := h.svc.Checkout(h.ctx(), CheckoutInput{
		Items: []CartItem{
			{ProductID: h.productA, Quantity: 3},
			{ProductID: h.productB, Quantity: 2},
		},
		PaymentMethod: PaymentCash,
		StoreID:       &h.storeID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), h.invRepo.quantity(h.productA, h.storeLoc()))
	assert.Equal(t, int64(3), h.invRepo.quantity(h.productB, h.storeLoc()))

	cancelled, err := h.svc.Cancel(h.ctx(), result.ID, "customer changed mind")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)

	// Every touched row is back at its pre-checkout quantity.
	assert.Equal(t, int64(10), h.invRepo.quantity(h.productA, h.storeLoc()))
	assert.Equal(t, int64(5), h.invRepo.quantity(h.productB, h.storeLoc()))

	actions := h.actions.byType(result.ID, ActionCancelled)
	require.Len(t, actions, 1)
	assert.Equal(t, "customer changed mind", actions[0].Data["reason"])
}

func TestCancel_TwiceFails(t *testing.T) {
	h := newHarness(t)
	h.invRepo.put(h.productA, h.storeLoc(), 10)

	result, err := h.svc.Checkout(h.ctx(), CheckoutInput{
		Items:         []CartItem{{ProductID: h.productA, Quantity: 1}},
		PaymentMethod: PaymentCash,
		StoreID:       &h.storeID,
	})
	require.NoError(t, err)

	_, err = h.svc.Cancel(h.ctx(), result.ID, "first")
	require.NoError(t, err)

	_, err = h.svc.Cancel(h.ctx(), result.ID, "second")
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidStateTransition))

	// The double credit must not have happened.
	assert.Equal(t, int64(10), h.invRepo.quantity(h.productA, h.storeLoc()))
}

func TestRefund_FullByDefault(t *testing.T) {
	h := newHarness(t)
	h.invRepo.put(h.productA, h.storeLoc(), 10)

	result, err := h.svc.Checkout(h.ctx(), CheckoutInput{
		Items:         []CartItem{{ProductID: h.productA, Quantity: 2}},
		PaymentMethod: PaymentCard,
		StoreID:       &h.storeID,
	})
	require.NoError(t, err)

	refunded, err := h.svc.Refund(h.ctx(), result.ID, nil, "defective")
	require.NoError(t, err)
	assert.Equal(t, StatusRefunded, refunded.Status)
	assert.Equal(t, result.Total, refunded.RefundedAmount)

	// Refunds are monetary only; stock stays sold.
	assert.Equal(t, int64(8), h.invRepo.quantity(h.productA, h.storeLoc()))

	actions := h.actions.byType(result.ID, ActionRefunded)
	require.Len(t, actions, 1)
	assert.Equal(t, int64(result.Total), actions[0].Data["amount"])
}

func TestRefund_PartialAmount(t *testing.T) {
	h := newHarness(t)
	h.invRepo.put(h.productA, h.storeLoc(), 10)

	result, err := h.svc.Checkout(h.ctx(), CheckoutInput{
		Items:         []CartItem{{ProductID: h.productA, Quantity: 2}},
		PaymentMethod: PaymentCard,
		StoreID:       &h.storeID,
	})
	require.NoError(t, err)

	amount := int64(500)
	refunded, err := h.svc.Refund(h.ctx(), result.ID, &amount, "partial damage")
	require.NoError(t, err)
	assert.Equal(t, types.MinorUnits(500), refunded.RefundedAmount)
}

func TestRefund_AmountExceedsTotal(t *testing.T) {
	h := newHarness(t)
	h.invRepo.put(h.productA, h.storeLoc(), 10)

	result, err := h.svc.Checkout(h.ctx(), CheckoutInput{
		Items:         []CartItem{{ProductID: h.productA, Quantity: 1}},
		PaymentMethod: PaymentCard,
		StoreID:       &h.storeID,
	})
	require.NoError(t, err)

	amount := int64(result.Total) + 1
	_, err = h.svc.Refund(h.ctx(), result.ID, &amount, "oops")
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidRefundAmount))

	reloaded, err := h.svc.GetByID(h.ctx(), result.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, reloaded.Status)
}

func TestRefund_CancelledTransactionFails(t *testing.T) {
	h := newHarness(t)
	h.invRepo.put(h.productA, h.storeLoc(), 10)

	result, err := h.svc.Checkout(h.ctx(), CheckoutInput{
		Items:         []CartItem{{ProductID: h.productA, Quantity: 1}},
		PaymentMethod: PaymentCash,
		StoreID:       &h.storeID,
	})
	require.NoError(t, err)

	_, err = h.svc.Cancel(h.ctx(), result.ID, "cancel first")
	require.NoError(t, err)

	_, err = h.svc.Refund(h.ctx(), result.ID, nil, "then refund")
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidStateTransition))
}
