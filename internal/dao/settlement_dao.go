package dao

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"iso-settlement-api/internal/dal"
	"iso-settlement-api/internal/idgen"
	settlemodel "iso-settlement-api/internal/model/settlement"
	"iso-settlement-api/internal/shard"
)

// ErrVersionConflict signals a lost optimistic-concurrency race. The caller
// retries the whole apply with the same payload.
var ErrVersionConflict = errors.New("settlement version conflict")

// Cycle table bases. One table per month keeps a cycle's rows together.
const (
	SettlementBase         = "iso_settlement"
	MerchantSettlementBase = "iso_merchant_settlement"
	AppliedTxBase          = "iso_applied_tx"
)

type SettlementDao struct {
	DB *gorm.DB
}

func NewSettlementDao() *SettlementDao {
	if dal.SettleDB == nil {
		log.Panic("[FATAL] dal.SettleDB is nil - database not initialized")
	}
	return &SettlementDao{DB: dal.SettleDB}
}

func NewSettlementDaoWithDB(db *gorm.DB) *SettlementDao {
	if db == nil {
		log.Panic("[FATAL] db cannot be nil")
	}
	return &SettlementDao{DB: db}
}

func (r *SettlementDao) checkDB() error {
	if r == nil {
		return errors.New("SettlementDao is nil")
	}
	if r.DB == nil {
		return errors.New("DB connection is nil")
	}
	return nil
}

// GetOrCreate returns the settlement scope for (customer, date), creating
// an empty one when the cycle has not started yet.
func (r *SettlementDao) GetOrCreate(customerID uint64, date time.Time) (*settlemodel.Settlement, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get or create settlement failed: %w", err)
	}
	table := shard.CycleTable(SettlementBase, date)

	var m settlemodel.Settlement
	err := r.DB.Table(table).
		Where("id_customer = ? AND settlement_date = ? AND active = ?", customerID, date.Format("2006-01-02"), true).
		First(&m).Error
	if err == nil {
		return &m, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("query failed: %w", err)
	}

	m = settlemodel.Settlement{
		ID:             idgen.New(),
		IDCustomer:     customerID,
		SettlementDate: date,
		Active:         true,
	}
	if err := r.DB.Table(table).Create(&m).Error; err != nil {
		// unique key may have raced with a concurrent creator
		var again settlemodel.Settlement
		if err2 := r.DB.Table(table).
			Where("id_customer = ? AND settlement_date = ? AND active = ?", customerID, date.Format("2006-01-02"), true).
			First(&again).Error; err2 == nil {
			return &again, nil
		}
		return nil, fmt.Errorf("create failed: %w", err)
	}
	return &m, nil
}

// GetByID fetches a settlement by ID within its cycle.
func (r *SettlementDao) GetByID(id uint64, date time.Time) (*settlemodel.Settlement, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get settlement failed: %w", err)
	}
	table := shard.CycleTable(SettlementBase, date)
	var m settlemodel.Settlement
	err := r.DB.Table(table).Where("id = ? AND active = ?", id, true).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

// ListMerchantSettlements returns every merchant row under a settlement.
func (r *SettlementDao) ListMerchantSettlements(settlementID uint64, date time.Time) ([]settlemodel.MerchantSettlement, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("list merchant settlements failed: %w", err)
	}
	table := shard.CycleTable(MerchantSettlementBase, date)
	var out []settlemodel.MerchantSettlement
	err := r.DB.Table(table).
		Where("id_settlement = ? AND active = ?", settlementID, true).
		Order("id ASC").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return out, nil
}

// GetMerchantSettlement fetches one merchant scope within a settlement.
func (r *SettlementDao) GetMerchantSettlement(id uint64, date time.Time) (*settlemodel.MerchantSettlement, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get merchant settlement failed: %w", err)
	}
	table := shard.CycleTable(MerchantSettlementBase, date)
	var m settlemodel.MerchantSettlement
	err := r.DB.Table(table).Where("id = ? AND active = ?", id, true).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

// FilterApplied returns which of the given slugs were already applied into
// the settlement. The unique key on (id_settlement, tx_slug) is the
// authoritative idempotency record.
func (r *SettlementDao) FilterApplied(settlementID uint64, date time.Time, slugs []string) (map[string]bool, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("filter applied failed: %w", err)
	}
	out := make(map[string]bool, len(slugs))
	if len(slugs) == 0 {
		return out, nil
	}
	table := shard.CycleTable(AppliedTxBase, date)
	var found []string
	err := r.DB.Table(table).
		Where("id_settlement = ? AND tx_slug IN (?)", settlementID, slugs).
		Pluck("tx_slug", &found).Error
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	for _, s := range found {
		out[s] = true
	}
	return out, nil
}

// PersistApply writes one aggregation step atomically: the settlement CAS
// update, every touched merchant row, and the applied-slug ledger. A failed
// CAS rolls the whole step back and surfaces ErrVersionConflict.
func (r *SettlementDao) PersistApply(
	date time.Time,
	s *settlemodel.Settlement,
	updated []*settlemodel.MerchantSettlement,
	created []*settlemodel.MerchantSettlement,
	applied []settlemodel.AppliedTransaction,
) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("persist apply failed: %w", err)
	}
	sTable := shard.CycleTable(SettlementBase, date)
	msTable := shard.CycleTable(MerchantSettlementBase, date)
	atTable := shard.CycleTable(AppliedTxBase, date)

	return r.DB.Transaction(func(tx *gorm.DB) error {
		oldVersion := s.Version
		s.Version = oldVersion + 1
		res := tx.Table(sTable).
			Where("id = ? AND version = ?", s.ID, oldVersion).
			Select("*").Omit("id", "create_time").Updates(s)
		if res.Error != nil {
			return fmt.Errorf("update settlement failed: %w", res.Error)
		}
		if res.RowsAffected != 1 {
			return ErrVersionConflict
		}

		for _, ms := range updated {
			msOld := ms.Version
			ms.Version = msOld + 1
			res := tx.Table(msTable).
				Where("id = ? AND version = ?", ms.ID, msOld).
				Select("*").Omit("id", "create_time").Updates(ms)
			if res.Error != nil {
				return fmt.Errorf("update merchant settlement failed: %w", res.Error)
			}
			if res.RowsAffected != 1 {
				return ErrVersionConflict
			}
		}
		for _, ms := range created {
			if err := tx.Table(msTable).Create(ms).Error; err != nil {
				return fmt.Errorf("create merchant settlement failed: %w", err)
			}
		}
		for i := range applied {
			if err := tx.Table(atTable).Create(&applied[i]).Error; err != nil {
				return fmt.Errorf("create applied tx failed: %w", err)
			}
		}
		return nil
	})
}
