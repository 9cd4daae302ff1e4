package dao

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"iso-settlement-api/internal/dal"
	settlemodel "iso-settlement-api/internal/model/settlement"
	"iso-settlement-api/internal/shard"
)

// Order cycle table bases.
const (
	OrderBase    = "iso_merchant_settlement_order"
	PixOrderBase = "iso_merchant_pix_settlement_order"
)

type OrderDao struct {
	DB *gorm.DB
}

func NewOrderDao() *OrderDao {
	if dal.SettleDB == nil {
		log.Panic("[FATAL] dal.SettleDB is nil - database not initialized")
	}
	return &OrderDao{DB: dal.SettleDB}
}

func NewOrderDaoWithDB(db *gorm.DB) *OrderDao {
	if db == nil {
		log.Panic("[FATAL] db cannot be nil")
	}
	return &OrderDao{DB: db}
}

func (r *OrderDao) checkDB() error {
	if r == nil {
		return errors.New("OrderDao is nil")
	}
	if r.DB == nil {
		return errors.New("DB connection is nil")
	}
	return nil
}

// GetOrderForSettlement returns the existing card order for a merchant
// settlement, locked or not.
func (r *OrderDao) GetOrderForSettlement(msID uint64, date time.Time) (*settlemodel.MerchantSettlementOrder, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get order failed: %w", err)
	}
	table := shard.CycleTable(OrderBase, date)
	var m settlemodel.MerchantSettlementOrder
	err := r.DB.Table(table).
		Where("id_merchant_settlement = ? AND active = ?", msID, true).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

// GetPixOrderForSettlement returns the existing PIX order for a merchant
// settlement.
func (r *OrderDao) GetPixOrderForSettlement(msID uint64, date time.Time) (*settlemodel.MerchantPixSettlementOrder, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get pix order failed: %w", err)
	}
	table := shard.CycleTable(PixOrderBase, date)
	var m settlemodel.MerchantPixSettlementOrder
	err := r.DB.Table(table).
		Where("id_merchant_settlement = ? AND active = ?", msID, true).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

// CreateOrder inserts a card order. The row is born locked: dispatch writes
// downstream instructions right after, and only the disbursement
// collaborator releases the lock.
func (r *OrderDao) CreateOrder(o *settlemodel.MerchantSettlementOrder, date time.Time) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("create order failed: %w", err)
	}
	return r.DB.Table(shard.CycleTable(OrderBase, date)).Create(o).Error
}

// CreatePixOrder inserts a PIX order, also born locked.
func (r *OrderDao) CreatePixOrder(o *settlemodel.MerchantPixSettlementOrder, date time.Time) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("create pix order failed: %w", err)
	}
	return r.DB.Table(shard.CycleTable(PixOrderBase, date)).Create(o).Error
}

// TryLockOrder acquires the cooperative lock on an unlocked card order,
// refreshing the amount from the current settlement balance in the same
// statement so a re-armed order never carries a stale figure. Returns false
// when another dispatch cycle got there first.
func (r *OrderDao) TryLockOrder(orderID uint64, amount decimal.Decimal, date time.Time) (bool, error) {
	if err := r.checkDB(); err != nil {
		return false, fmt.Errorf("lock order failed: %w", err)
	}
	res := r.DB.Table(shard.CycleTable(OrderBase, date)).
		Where("id = ? AND `lock` = ? AND active = ?", orderID, false, true).
		Updates(map[string]interface{}{"lock": true, "amount": amount})
	if res.Error != nil {
		return false, fmt.Errorf("update failed: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

// TryLockPixOrder acquires the cooperative lock on an unlocked PIX order,
// refreshing amount and transaction count alongside the flag.
func (r *OrderDao) TryLockPixOrder(orderID uint64, amount decimal.Decimal, txCount int64, date time.Time) (bool, error) {
	if err := r.checkDB(); err != nil {
		return false, fmt.Errorf("lock pix order failed: %w", err)
	}
	res := r.DB.Table(shard.CycleTable(PixOrderBase, date)).
		Where("id = ? AND `lock` = ? AND active = ?", orderID, false, true).
		Updates(map[string]interface{}{"lock": true, "amount": amount, "transaction_count": txCount})
	if res.Error != nil {
		return false, fmt.Errorf("update failed: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}
