package dao

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"iso-settlement-api/internal/dal"
	mainmodel "iso-settlement-api/internal/model/main"
)

type MainDao struct {
	DB *gorm.DB
}

func NewMainDao() *MainDao {
	if dal.MainDB == nil {
		log.Panic("[FATAL] dal.MainDB is nil - database not initialized")
	}
	return &MainDao{DB: dal.MainDB}
}

func NewMainDaoWithDB(db *gorm.DB) *MainDao {
	if db == nil {
		log.Panic("[FATAL] db cannot be nil")
	}
	return &MainDao{DB: db}
}

func (r *MainDao) checkDB() error {
	if r == nil {
		return errors.New("MainDao is nil")
	}
	if r.DB == nil {
		return errors.New("DB connection is nil")
	}
	return nil
}

func (r *MainDao) GetCustomer(id uint64) (*mainmodel.Customer, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get customer failed: %w", err)
	}
	var m mainmodel.Customer
	err := r.DB.Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

func (r *MainDao) GetMerchant(id uint64) (*mainmodel.Merchant, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get merchant failed: %w", err)
	}
	var m mainmodel.Merchant
	err := r.DB.Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

// GetMerchantPricingRoot resolves the merchant's effective fee root:
// the directly assigned price first, then the category's CNAE default.
func (r *MainDao) GetMerchantPricingRoot(merchantID uint64) (uint64, error) {
	if err := r.checkDB(); err != nil {
		return 0, fmt.Errorf("get pricing root failed: %w", err)
	}
	m, err := r.GetMerchant(merchantID)
	if err != nil {
		return 0, err
	}
	if m == nil || !m.IsActive {
		return 0, nil
	}
	if m.IDMerchantPrice != nil {
		return *m.IDMerchantPrice, nil
	}
	if m.IDCategory == nil {
		return 0, nil
	}
	var cat mainmodel.MerchantCategory
	err = r.DB.Where("id = ? AND is_active = ?", *m.IDCategory, true).First(&cat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("query category failed: %w", err)
	}
	if cat.IDFee == nil {
		return 0, nil
	}
	return *cat.IDFee, nil
}

// GetRouting returns the customer's active payment institution routing.
func (r *MainDao) GetRouting(customerID uint64) (*mainmodel.InstitutionRouting, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get routing failed: %w", err)
	}
	var m mainmodel.InstitutionRouting
	err := r.DB.Where("id_customer = ? AND is_active = ?", customerID, true).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

// ListMerchantsByCustomer lists active merchants under a customer.
func (r *MainDao) ListMerchantsByCustomer(customerID uint64) ([]mainmodel.Merchant, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("list merchants failed: %w", err)
	}
	var out []mainmodel.Merchant
	err := r.DB.Where("id_customer = ? AND is_active = ?", customerID, true).Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return out, nil
}
