package dao

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"iso-settlement-api/internal/dal"
	feemodel "iso-settlement-api/internal/model/fee"
)

// FeeDao owns the production fee tree. Trees are edited wholesale through
// the approval flow, so updates are replace-on-write: delete every child row
// under the root and re-insert the new subtree in one transaction.
type FeeDao struct {
	DB *gorm.DB
}

func NewFeeDao() *FeeDao {
	if dal.MainDB == nil {
		log.Panic("[FATAL] dal.MainDB is nil - database not initialized")
	}
	return &FeeDao{DB: dal.MainDB}
}

func NewFeeDaoWithDB(db *gorm.DB) *FeeDao {
	if db == nil {
		log.Panic("[FATAL] db cannot be nil")
	}
	return &FeeDao{DB: db}
}

func (r *FeeDao) checkDB() error {
	if r == nil {
		return errors.New("FeeDao is nil")
	}
	if r.DB == nil {
		return errors.New("DB connection is nil")
	}
	return nil
}

// GetRoot fetches the fee root row only.
func (r *FeeDao) GetRoot(rootID uint64) (*feemodel.Fee, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get fee root failed: %w", err)
	}
	var m feemodel.Fee
	err := r.DB.Where("id = ?", rootID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

// LoadTree loads the full tree inside one transaction so a concurrent
// replace can never hand the resolver a half-swapped tree. Rows come back
// ordered by primary key; that order is the documented tie-break for
// overlapping installment ranges.
func (r *FeeDao) LoadTree(rootID uint64) (*feemodel.Tree, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("load fee tree failed: %w", err)
	}

	var tree *feemodel.Tree
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var root feemodel.Fee
		err := tx.Where("id = ? AND active = ?", rootID, true).First(&root).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("query root failed: %w", err)
		}

		var brands []feemodel.FeeBrand
		if err := tx.Where("id_fee = ? AND active = ?", rootID, true).
			Order("id ASC").Find(&brands).Error; err != nil {
			return fmt.Errorf("query brands failed: %w", err)
		}

		t := &feemodel.Tree{Fee: root}
		for _, b := range brands {
			var pts []feemodel.FeeBrandProductType
			if err := tx.Where("id_fee_brand = ? AND active = ?", b.ID, true).
				Order("id ASC").Find(&pts).Error; err != nil {
				return fmt.Errorf("query product types failed: %w", err)
			}
			bt := feemodel.BrandTree{FeeBrand: b}
			for _, pt := range pts {
				var credits []feemodel.FeeCredit
				if err := tx.Where("id_fee_brand_product_type = ? AND active = ?", pt.ID, true).
					Order("installment_number ASC").Find(&credits).Error; err != nil {
					return fmt.Errorf("query credits failed: %w", err)
				}
				bt.ProductTypes = append(bt.ProductTypes, feemodel.ProductTypeTree{
					FeeBrandProductType: pt,
					Credits:             credits,
				})
			}
			t.Brands = append(t.Brands, bt)
		}
		tree = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tree, nil
}

// InsertTree creates a fresh root plus its full subtree in one pass.
// Numeric normalization happened at the DTO boundary already.
func (r *FeeDao) InsertTree(root *feemodel.Fee, brands []feemodel.BrandTree) (uint64, error) {
	if err := r.checkDB(); err != nil {
		return 0, fmt.Errorf("insert fee tree failed: %w", err)
	}
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		root.Active = true
		if err := tx.Create(root).Error; err != nil {
			return fmt.Errorf("create root failed: %w", err)
		}
		return insertFeeChildren(tx, root.ID, brands)
	})
	if err != nil {
		return 0, err
	}
	return root.ID, nil
}

// ReplaceTree deletes every child row under the root and re-inserts the new
// subtree. Child IDs are not preserved: this is a replace, not a merge.
func (r *FeeDao) ReplaceTree(rootID uint64, brands []feemodel.BrandTree) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("replace fee tree failed: %w", err)
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var brandIDs []uint64
		if err := tx.Model(&feemodel.FeeBrand{}).
			Where("id_fee = ?", rootID).Pluck("id", &brandIDs).Error; err != nil {
			return fmt.Errorf("pluck brands failed: %w", err)
		}
		if len(brandIDs) > 0 {
			var ptIDs []uint64
			if err := tx.Model(&feemodel.FeeBrandProductType{}).
				Where("id_fee_brand IN (?)", brandIDs).Pluck("id", &ptIDs).Error; err != nil {
				return fmt.Errorf("pluck product types failed: %w", err)
			}
			if len(ptIDs) > 0 {
				if err := tx.Where("id_fee_brand_product_type IN (?)", ptIDs).
					Delete(&feemodel.FeeCredit{}).Error; err != nil {
					return fmt.Errorf("delete credits failed: %w", err)
				}
			}
			if err := tx.Where("id_fee_brand IN (?)", brandIDs).
				Delete(&feemodel.FeeBrandProductType{}).Error; err != nil {
				return fmt.Errorf("delete product types failed: %w", err)
			}
			if err := tx.Where("id_fee = ?", rootID).
				Delete(&feemodel.FeeBrand{}).Error; err != nil {
				return fmt.Errorf("delete brands failed: %w", err)
			}
		}
		return insertFeeChildren(tx, rootID, brands)
	})
}

// UpdateRoot mutates the scalar fields on the fee root. Select("*") forces
// zero values (cleared flags, emptied MCC/CNAE) through; a plain struct
// update would skip them.
func (r *FeeDao) UpdateRoot(root *feemodel.Fee) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("update fee root failed: %w", err)
	}
	return r.DB.Model(&feemodel.Fee{}).Where("id = ?", root.ID).
		Select("*").Omit("id", "create_time").Updates(root).Error
}

// UpdateCredit updates one installment leaf in place; installment-level
// repricing is the only fee-tree edit that is not a full replace.
func (r *FeeDao) UpdateCredit(credit *feemodel.FeeCredit) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("update fee credit failed: %w", err)
	}
	return r.DB.Model(&feemodel.FeeCredit{}).Where("id = ?", credit.ID).
		Select("*").Omit("id").Updates(credit).Error
}

func insertFeeChildren(tx *gorm.DB, rootID uint64, brands []feemodel.BrandTree) error {
	for i := range brands {
		b := brands[i].FeeBrand
		b.ID = 0
		b.IDFee = rootID
		b.Active = true
		if err := tx.Create(&b).Error; err != nil {
			return fmt.Errorf("create brand failed: %w", err)
		}
		for j := range brands[i].ProductTypes {
			pt := brands[i].ProductTypes[j].FeeBrandProductType
			pt.ID = 0
			pt.IDFeeBrand = b.ID
			pt.Active = true
			if err := tx.Create(&pt).Error; err != nil {
				return fmt.Errorf("create product type failed: %w", err)
			}
			for k := range brands[i].ProductTypes[j].Credits {
				c := brands[i].ProductTypes[j].Credits[k]
				c.ID = 0
				c.IDFeeBrandProductType = pt.ID
				c.Active = true
				if err := tx.Create(&c).Error; err != nil {
					return fmt.Errorf("create credit failed: %w", err)
				}
			}
		}
	}
	return nil
}
