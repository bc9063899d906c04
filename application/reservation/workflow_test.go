package reservation_test

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"
	appproduct "github.com/muhammadheryan/community-market/application/product"
	appreservation "github.com/muhammadheryan/community-market/application/reservation"
	"github.com/muhammadheryan/community-market/constant"
	"github.com/muhammadheryan/community-market/model"
	cerr "github.com/muhammadheryan/community-market/utils/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory product/reservation store. Transactions are
// serialized on txLock, standing in for the row locks MySQL takes on
// SELECT ... FOR UPDATE, and roll back by restoring a snapshot.
type memStore struct {
	txLock sync.Mutex

	mu           sync.Mutex
	products     map[uint64]model.ProductEntity
	reservations map[uint64]model.ReservationEntity
	nextID       uint64
	snapshots    map[*sqlx.Tx]snapshot
}

type snapshot struct {
	products     map[uint64]model.ProductEntity
	reservations map[uint64]model.ReservationEntity
}

func newMemStore() *memStore {
	return &memStore{
		products:     map[uint64]model.ProductEntity{},
		reservations: map[uint64]model.ReservationEntity{},
		snapshots:    map[*sqlx.Tx]snapshot{},
	}
}

func (m *memStore) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	m.txLock.Lock()
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &sqlx.Tx{}
	snap := snapshot{products: map[uint64]model.ProductEntity{}, reservations: map[uint64]model.ReservationEntity{}}
	for k, v := range m.products {
		snap.products[k] = v
	}
	for k, v := range m.reservations {
		snap.reservations[k] = v
	}
	m.snapshots[tx] = snap
	return tx, nil
}

func (m *memStore) CommitTx(tx *sqlx.Tx) error {
	m.mu.Lock()
	delete(m.snapshots, tx)
	m.mu.Unlock()
	m.txLock.Unlock()
	return nil
}

func (m *memStore) RollbackTx(tx *sqlx.Tx) error {
	m.mu.Lock()
	if snap, ok := m.snapshots[tx]; ok {
		m.products = snap.products
		m.reservations = snap.reservations
		delete(m.snapshots, tx)
	}
	m.mu.Unlock()
	m.txLock.Unlock()
	return nil
}

func (m *memStore) stock(id uint64) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.products[id].StockQuantity
}

func (m *memStore) status(id uint64) constant.ReservationStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reservations[id].Status
}

func (m *memStore) detail(r model.ReservationEntity) *model.ReservationDetail {
	p := m.products[r.ProductID]
	return &model.ReservationDetail{ReservationEntity: r, ProductTitle: p.Title, ProductOwnerID: p.UserID}
}

type memProducts struct{ *memStore }

func (m memProducts) Create(ctx context.Context, data *model.ProductEntity) (*model.ProductEntity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	data.ID = m.nextID
	m.products[data.ID] = *data
	return data, nil
}

func (m memProducts) GetByID(ctx context.Context, id uint64) (*model.ProductDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	return &model.ProductDetail{ProductEntity: p}, nil
}

func (m memProducts) List(ctx context.Context, filter *model.ProductFilter) ([]model.ProductDetail, int64, error) {
	return nil, 0, nil
}

// Update keeps the stored stock, like the SQL update
func (m memProducts) Update(ctx context.Context, data *model.ProductEntity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[data.ID]
	if !ok {
		return sql.ErrNoRows
	}
	stock := p.StockQuantity
	p = *data
	p.StockQuantity = stock
	m.products[data.ID] = p
	return nil
}

func (m memProducts) UpdateStock(ctx context.Context, id uint64, stock int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return sql.ErrNoRows
	}
	p.StockQuantity = stock
	m.products[id] = p
	return nil
}

func (m memProducts) Delete(ctx context.Context, id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.products, id)
	return nil
}

func (m memProducts) GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.ProductStock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	return &model.ProductStock{ID: p.ID, UserID: p.UserID, StockQuantity: p.StockQuantity}, nil
}

func (m memProducts) DecrementStockTx(ctx context.Context, tx *sqlx.Tx, id uint64, quantity int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.products[id]
	if p.StockQuantity < quantity {
		return cerr.SetCustomError(constant.ErrInsufficientStock)
	}
	p.StockQuantity -= quantity
	m.products[id] = p
	return nil
}

type memReservations struct{ *memStore }

func (m memReservations) Create(ctx context.Context, data *model.ReservationEntity) (*model.ReservationEntity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	data.ID = m.nextID
	m.reservations[data.ID] = *data
	return data, nil
}

func (m memReservations) GetByID(ctx context.Context, id uint64) (*model.ReservationDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reservations[id]
	if !ok {
		return nil, nil
	}
	return m.detail(r), nil
}

func (m memReservations) List(ctx context.Context, filter *model.ReservationFilter) ([]model.ReservationDetail, int64, error) {
	return nil, 0, nil
}

func (m memReservations) CountByStatus(ctx context.Context, filter *model.ReservationFilter) ([]model.StatusCount, error) {
	return nil, nil
}

func (m memReservations) UpdatePending(ctx context.Context, data *model.ReservationEntity) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.reservations[data.ID].Status != constant.ReservationStatusPending {
		return false, nil
	}
	m.reservations[data.ID] = *data
	return true, nil
}

func (m memReservations) CancelPending(ctx context.Context, id uint64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.reservations[id]
	if r.Status != constant.ReservationStatusPending {
		return false, nil
	}
	r.Status = constant.ReservationStatusCancelled
	m.reservations[id] = r
	return true, nil
}

func (m memReservations) UpdateStatus(ctx context.Context, id uint64, status constant.ReservationStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reservations[id]
	if !ok {
		return sql.ErrNoRows
	}
	r.Status = status
	m.reservations[id] = r
	return nil
}

func (m memReservations) Delete(ctx context.Context, id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.reservations, id)
	return nil
}

func (m memReservations) GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.ReservationDetail, error) {
	return m.GetByID(ctx, id)
}

func (m memReservations) UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id uint64, status constant.ReservationStatus) error {
	return m.UpdateStatus(ctx, id, status)
}

func newWorkflow(t *testing.T, stock int64) (*memStore, appreservation.ReservationApp, uint64) {
	t.Helper()
	store := newMemStore()
	p, err := memProducts{store}.Create(context.Background(), &model.ProductEntity{UserID: ownerID, Title: "honey jar", StockQuantity: stock})
	require.NoError(t, err)
	app := appreservation.NewReservationApp(nil, store, memReservations{store}, memProducts{store}, nil, nil, nil)
	return store, app, p.ID
}

func reserve(t *testing.T, app appreservation.ReservationApp, customer, productID uint64, qty int64) uint64 {
	t.Helper()
	r, err := app.CreateReservation(context.Background(), customer, &model.CreateReservationRequest{ProductID: productID, Quantity: qty})
	require.NoError(t, err)
	return r.ID
}

func errCode(err error) string {
	var ce cerr.CustomError
	if errors.As(err, &ce) {
		return ce.ErrorCode()
	}
	return ""
}

func TestWorkflow_SecondConfirmationExceedsStock(t *testing.T) {
	store, app, productID := newWorkflow(t, 3)
	owner := model.Principal{UserID: ownerID}

	a := reserve(t, app, customerID, productID, 2)
	b := reserve(t, app, strangerID, productID, 2)

	_, err := app.ConfirmReservation(context.Background(), a, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(1), store.stock(productID))

	_, err = app.ConfirmReservation(context.Background(), b, owner)
	assert.Equal(t, constant.ErrorTypeCode[constant.ErrInsufficientStock], errCode(err))
	assert.Equal(t, int64(1), store.stock(productID))
	assert.Equal(t, constant.ReservationStatusPending, store.status(b))
}

func TestWorkflow_ConfirmThenCancelOther(t *testing.T) {
	store, app, productID := newWorkflow(t, 10)
	owner := model.Principal{UserID: ownerID}

	a := reserve(t, app, customerID, productID, 2)
	b := reserve(t, app, strangerID, productID, 3)

	got, err := app.ConfirmReservation(context.Background(), a, owner)
	require.NoError(t, err)
	assert.Equal(t, constant.ReservationStatusConfirmed, got.Status)
	assert.Equal(t, int64(8), store.stock(productID))

	_, err = app.CancelReservation(context.Background(), b, model.Principal{UserID: strangerID})
	require.NoError(t, err)
	assert.Equal(t, int64(8), store.stock(productID))

	// terminal states stay terminal
	_, err = app.ConfirmReservation(context.Background(), a, owner)
	assert.Equal(t, constant.ErrorTypeCode[constant.ErrConfirmNotPending], errCode(err))
	_, err = app.CancelReservation(context.Background(), a, owner)
	assert.Equal(t, constant.ErrorTypeCode[constant.ErrCancelNotPending], errCode(err))
	_, err = app.ConfirmReservation(context.Background(), b, owner)
	assert.Equal(t, constant.ErrorTypeCode[constant.ErrConfirmNotPending], errCode(err))
	assert.Equal(t, int64(8), store.stock(productID))
}

func TestWorkflow_NonOwnerConfirmLeavesState(t *testing.T) {
	store, app, productID := newWorkflow(t, 5)
	id := reserve(t, app, customerID, productID, 1)

	_, err := app.ConfirmReservation(context.Background(), id, model.Principal{UserID: strangerID})
	assert.Equal(t, constant.ErrorTypeCode[constant.ErrForbidden], errCode(err))
	assert.Equal(t, int64(5), store.stock(productID))
	assert.Equal(t, constant.ReservationStatusPending, store.status(id))
}

func TestWorkflow_ConcurrentConfirmationsNeverOversell(t *testing.T) {
	const stock = 7
	quantities := []int64{3, 1, 2, 4, 2, 1, 3, 2}

	store, app, productID := newWorkflow(t, stock)
	ids := make([]uint64, len(quantities))
	for i, q := range quantities {
		ids[i] = reserve(t, app, customerID, productID, q)
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded []uint64
		failed    []uint64
	)
	for _, id := range ids {
		id := id
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := app.ConfirmReservation(context.Background(), id, model.Principal{UserID: ownerID})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded = append(succeeded, id)
				return
			}
			if errCode(err) != constant.ErrorTypeCode[constant.ErrInsufficientStock] {
				t.Errorf("confirm %d: unexpected error %v", id, err)
			}
			failed = append(failed, id)
		}()
	}
	wg.Wait()

	var confirmed int64
	sort.Slice(succeeded, func(i, j int) bool { return succeeded[i] < succeeded[j] })
	for _, id := range succeeded {
		assert.Equal(t, constant.ReservationStatusConfirmed, store.status(id))
		confirmed += quantities[id-ids[0]]
	}

	assert.Equal(t, len(quantities), len(succeeded)+len(failed))
	assert.LessOrEqual(t, confirmed, int64(stock))
	remaining := store.stock(productID)
	assert.Equal(t, int64(stock)-confirmed, remaining)
	assert.GreaterOrEqual(t, remaining, int64(0))

	// Stock only shrinks, so a rejected confirmation must still not fit in
	// what is left.
	for _, id := range failed {
		assert.Greater(t, quantities[id-ids[0]], remaining, "reservation %d was rejected but fits", id)
		assert.Equal(t, constant.ReservationStatusPending, store.status(id))
	}
}

func TestWorkflow_SelfReservationIgnoresStock(t *testing.T) {
	_, app, productID := newWorkflow(t, 0)

	_, err := app.CreateReservation(context.Background(), ownerID, &model.CreateReservationRequest{ProductID: productID, Quantity: 1})
	assert.Equal(t, constant.ErrorTypeCode[constant.ErrSelfReservation], errCode(err))
}

// afterRead runs hook once, right after the first product read returns
type afterRead struct {
	memProducts
	once *sync.Once
	hook func()
}

func (a afterRead) GetByID(ctx context.Context, id uint64) (*model.ProductDetail, error) {
	p, err := a.memProducts.GetByID(ctx, id)
	a.once.Do(a.hook)
	return p, err
}

func TestWorkflow_ProductEditKeepsConfirmedStock(t *testing.T) {
	store, app, productID := newWorkflow(t, 5)
	owner := model.Principal{UserID: ownerID}
	r := reserve(t, app, customerID, productID, 2)

	products := afterRead{
		memProducts: memProducts{store},
		once:        &sync.Once{},
		hook: func() {
			_, err := app.ConfirmReservation(context.Background(), r, owner)
			require.NoError(t, err)
		},
	}
	title := "raw honey jar"

	got, err := appproduct.NewProductApp(products).UpdateProduct(context.Background(), productID, owner, &model.UpdateProductRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, got.Title)

	assert.Equal(t, int64(3), store.stock(productID))
	assert.Equal(t, constant.ReservationStatusConfirmed, store.status(r))
	p, err := memProducts{store}.GetByID(context.Background(), productID)
	require.NoError(t, err)
	assert.Equal(t, title, p.Title)
}
