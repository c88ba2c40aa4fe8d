package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespoint/internal/core/apperror"
	"salespoint/internal/core/id"
	"salespoint/internal/core/location"
)

type fakeRepo struct {
	records map[string]*Record // key: productID|locationKey
	byID    map[id.ID]*Record
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		records: make(map[string]*Record),
		byID:    make(map[id.ID]*Record),
	}
}

func (f *fakeRepo) key(productID id.ID, loc location.Location) string {
	return productID.String() + "|" + loc.Key()
}

func (f *fakeRepo) put(productID id.ID, loc location.Location, qty int64) *Record {
	rec := &Record{
		ID:        id.New(),
		ProductID: productID,
		Location:  loc,
		Quantity:  qty,
	}
	f.records[f.key(productID, loc)] = rec
	f.byID[rec.ID] = rec
	return rec
}

func (f *fakeRepo) GetByProductAndLocation(_ context.Context, productID id.ID, loc location.Location) (*Record, error) {
	rec, ok := f.records[f.key(productID, loc)]
	if !ok {
		return nil, apperror.NewNotFound("inventory record", productID)
	}
	return rec, nil
}

func (f *fakeRepo) Debit(_ context.Context, productID id.ID, loc location.Location, qty int64) (id.ID, error) {
	rec, ok := f.records[f.key(productID, loc)]
	if !ok {
		return id.Nil(), apperror.NewNoInventoryRecord(productID.String(), loc.Key())
	}
	if rec.Quantity < qty {
		return id.Nil(), apperror.NewInsufficientStock(productID.String(), qty, rec.Quantity)
	}
	rec.Quantity -= qty
	return rec.ID, nil
}

func (f *fakeRepo) Credit(_ context.Context, productID id.ID, loc location.Location, qty int64) error {
	rec, ok := f.records[f.key(productID, loc)]
	if !ok {
		f.put(productID, loc, qty)
		return nil
	}
	rec.Quantity += qty
	return nil
}

func (f *fakeRepo) CreditRecord(_ context.Context, recordID id.ID, qty int64) error {
	rec, ok := f.byID[recordID]
	if !ok {
		return apperror.NewNotFound("inventory record", recordID)
	}
	rec.Quantity += qty
	return nil
}

func (f *fakeRepo) ListByLocation(_ context.Context, loc location.Location) ([]Record, error) {
	var out []Record
	for _, rec := range f.records {
		if rec.Location.Key() == loc.Key() {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (f *fakeRepo) LowStock(_ context.Context) ([]LowStockItem, error) {
	return nil, nil
}

func TestService_GetAvailable(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	productID := id.New()
	loc := location.DistributionCenter()

	// Missing record reads as zero, not an error.
	qty, err := svc.GetAvailable(ctx, productID, loc)
	require.NoError(t, err)
	assert.Equal(t, int64(0), qty)

	repo.put(productID, loc, 42)

	qty, err = svc.GetAvailable(ctx, productID, loc)
	require.NoError(t, err)
	assert.Equal(t, int64(42), qty)
}

func TestService_Debit(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	productID := id.New()
	loc := location.Store(id.New())
	rec := repo.put(productID, loc, 10)

	recordID, err := svc.Debit(ctx, productID, loc, 4)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, recordID)
	assert.Equal(t, int64(6), rec.Quantity)

	// Exact drain to zero is allowed.
	_, err = svc.Debit(ctx, productID, loc, 6)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rec.Quantity)

	// Past zero is not.
	_, err = svc.Debit(ctx, productID, loc, 1)
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))
	assert.Equal(t, int64(0), rec.Quantity)
}

func TestService_Debit_NoRecord(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Debit(context.Background(), id.New(), location.DistributionCenter(), 1)
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeNoInventoryRecord))
}

func TestService_Debit_RejectsNonPositiveQuantity(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Debit(context.Background(), id.New(), location.DistributionCenter(), 0)
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))

	_, err = svc.Debit(context.Background(), id.New(), location.DistributionCenter(), -5)
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
}

func TestService_CreditCreatesRecord(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	productID := id.New()
	loc := location.Store(id.New())

	require.NoError(t, svc.Credit(ctx, productID, loc, 15))

	qty, err := svc.GetAvailable(ctx, productID, loc)
	require.NoError(t, err)
	assert.Equal(t, int64(15), qty)

	require.NoError(t, svc.Credit(ctx, productID, loc, 5))

	qty, err = svc.GetAvailable(ctx, productID, loc)
	require.NoError(t, err)
	assert.Equal(t, int64(20), qty)
}

func TestService_CreditRecord_RestoresDebitedRow(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	productID := id.New()
	loc := location.Store(id.New())
	repo.put(productID, loc, 10)

	recordID, err := svc.Debit(ctx, productID, loc, 7)
	require.NoError(t, err)

	require.NoError(t, svc.CreditRecord(ctx, recordID, 7))

	qty, err := svc.GetAvailable(ctx, productID, loc)
	require.NoError(t, err)
	assert.Equal(t, int64(10), qty)
}
