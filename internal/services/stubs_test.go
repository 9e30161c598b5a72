package services

import (
	"context"
	"io"
	"sync"
	"time"

	"gomarket/internal/models"
	"gomarket/internal/repositories/interfaces"
	"gomarket/internal/utils"
	"gomarket/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testLogger() *logger.Logger {
	log, _ := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel})
	log.SetOutput(io.Discard)
	return log
}

// Stub repositories delegate to function fields; anything a test does not
// set panics via the embedded nil interface, which is the point.

type stubCodeRepo struct {
	interfaces.PickupCodeRepository
	createFn          func(ctx context.Context, code *models.PickupCode) error
	getActiveByCodeFn func(ctx context.Context, code string) (*models.PickupCode, error)
	getForMerchantFn  func(ctx context.Context, id, merchantID primitive.ObjectID) (*models.PickupCode, error)
	countByProductFn  func(ctx context.Context, productID primitive.ObjectID) (int64, error)
	incrementUsageFn  func(ctx context.Context, id primitive.ObjectID) (*models.PickupCode, error)
	decrementUsageFn  func(ctx context.Context, id primitive.ObjectID) error
	softDeleteFn      func(ctx context.Context, id primitive.ObjectID) error
	updateFn          func(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	listByProductFn   func(ctx context.Context, productID, merchantID primitive.ObjectID) ([]*models.PickupCode, error)
}

func (s *stubCodeRepo) Create(ctx context.Context, code *models.PickupCode) error {
	return s.createFn(ctx, code)
}

func (s *stubCodeRepo) GetActiveByCode(ctx context.Context, code string) (*models.PickupCode, error) {
	return s.getActiveByCodeFn(ctx, code)
}

func (s *stubCodeRepo) GetByIDForMerchant(ctx context.Context, id, merchantID primitive.ObjectID) (*models.PickupCode, error) {
	return s.getForMerchantFn(ctx, id, merchantID)
}

func (s *stubCodeRepo) CountByProduct(ctx context.Context, productID primitive.ObjectID) (int64, error) {
	return s.countByProductFn(ctx, productID)
}

func (s *stubCodeRepo) IncrementUsage(ctx context.Context, id primitive.ObjectID) (*models.PickupCode, error) {
	return s.incrementUsageFn(ctx, id)
}

func (s *stubCodeRepo) DecrementUsage(ctx context.Context, id primitive.ObjectID) error {
	return s.decrementUsageFn(ctx, id)
}

func (s *stubCodeRepo) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	return s.softDeleteFn(ctx, id)
}

func (s *stubCodeRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return s.updateFn(ctx, id, updates)
}

func (s *stubCodeRepo) ListByProduct(ctx context.Context, productID, merchantID primitive.ObjectID) ([]*models.PickupCode, error) {
	return s.listByProductFn(ctx, productID, merchantID)
}

type stubRecordRepo struct {
	interfaces.PickupRecordRepository
	createFn      func(ctx context.Context, record *models.PickupRecord) error
	hasRedeemedFn func(ctx context.Context, codeID, userID primitive.ObjectID) (bool, error)
	listByUserFn  func(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.PickupRecord, int64, error)
}

func (s *stubRecordRepo) Create(ctx context.Context, record *models.PickupRecord) error {
	return s.createFn(ctx, record)
}

func (s *stubRecordRepo) HasRedeemed(ctx context.Context, codeID, userID primitive.ObjectID) (bool, error) {
	return s.hasRedeemedFn(ctx, codeID, userID)
}

func (s *stubRecordRepo) ListByUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.PickupRecord, int64, error) {
	return s.listByUserFn(ctx, userID, params)
}

type stubOrderRepo struct {
	interfaces.OrderRepository
	createFn           func(ctx context.Context, order *models.Order) error
	getByIDFn          func(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	getByOrderNumberFn func(ctx context.Context, orderNumber string) (*models.Order, error)
	getPendingByKeyFn  func(ctx context.Context, pickupKey string, now time.Time) (*models.Order, error)
	markDeliveredFn    func(ctx context.Context, pickupKey string, now time.Time, info *models.CustomerInfo) (*models.Order, error)
	markCancelledFn    func(ctx context.Context, id, merchantID primitive.ObjectID) (*models.Order, error)
}

func (s *stubOrderRepo) Create(ctx context.Context, order *models.Order) error {
	return s.createFn(ctx, order)
}

func (s *stubOrderRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubOrderRepo) GetByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	return s.getByOrderNumberFn(ctx, orderNumber)
}

func (s *stubOrderRepo) GetPendingByKey(ctx context.Context, pickupKey string, now time.Time) (*models.Order, error) {
	return s.getPendingByKeyFn(ctx, pickupKey, now)
}

func (s *stubOrderRepo) MarkDelivered(ctx context.Context, pickupKey string, now time.Time, info *models.CustomerInfo) (*models.Order, error) {
	return s.markDeliveredFn(ctx, pickupKey, now, info)
}

func (s *stubOrderRepo) MarkCancelled(ctx context.Context, id, merchantID primitive.ObjectID) (*models.Order, error) {
	return s.markCancelledFn(ctx, id, merchantID)
}

type stubProductRepo struct {
	interfaces.ProductRepository
	getByIDFn        func(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	getForMerchantFn func(ctx context.Context, id, merchantID primitive.ObjectID) (*models.Product, error)
	updateFn         func(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	incrementSalesFn func(ctx context.Context, id primitive.ObjectID, quantity int) error
	createFn         func(ctx context.Context, product *models.Product) error
	listByMerchantFn func(ctx context.Context, merchantID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Product, int64, error)
}

func (s *stubProductRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubProductRepo) GetByIDForMerchant(ctx context.Context, id, merchantID primitive.ObjectID) (*models.Product, error) {
	return s.getForMerchantFn(ctx, id, merchantID)
}

func (s *stubProductRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return s.updateFn(ctx, id, updates)
}

func (s *stubProductRepo) IncrementSales(ctx context.Context, id primitive.ObjectID, quantity int) error {
	return s.incrementSalesFn(ctx, id, quantity)
}

func (s *stubProductRepo) Create(ctx context.Context, product *models.Product) error {
	return s.createFn(ctx, product)
}

func (s *stubProductRepo) ListByMerchant(ctx context.Context, merchantID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Product, int64, error) {
	return s.listByMerchantFn(ctx, merchantID, params)
}

type stubUserRepo struct {
	interfaces.UserRepository
	createFn        func(ctx context.Context, user *models.User) error
	getByIDFn       func(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*models.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*models.User, error)
	updateFn        func(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}

func (s *stubUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}

func (s *stubUserRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return s.updateFn(ctx, id, updates)
}

// memoryCodeState emulates the store's atomic conditional increment plus the
// unique ledger index, so the commit protocol can be exercised under real
// goroutine concurrency.
type memoryCodeState struct {
	mu     sync.Mutex
	code   models.PickupCode
	ledger map[string]bool
}

func newMemoryCodeState(code models.PickupCode) *memoryCodeState {
	return &memoryCodeState{code: code, ledger: make(map[string]bool)}
}

func (m *memoryCodeState) incrementUsage(primitive.ObjectID) (*models.PickupCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.code.UsageLimit != nil && m.code.UsedCount >= *m.code.UsageLimit {
		return nil, interfaces.ErrQuotaExceeded
	}
	m.code.UsedCount++
	snapshot := m.code
	return &snapshot, nil
}

func (m *memoryCodeState) decrementUsage(primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.code.UsedCount--
	return nil
}

func (m *memoryCodeState) insertRecord(record *models.PickupRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := record.PickupCodeID.Hex() + "/" + record.UserID.Hex()
	if m.ledger[key] {
		return interfaces.ErrDuplicate
	}
	m.ledger[key] = true
	return nil
}

func (m *memoryCodeState) usedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.code.UsedCount
}

func (m *memoryCodeState) ledgerSize() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ledger)
}
