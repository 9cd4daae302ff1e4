package dao

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"iso-settlement-api/internal/dal"
	feemodel "iso-settlement-api/internal/model/fee"
)

// SolicitationDao owns the proposal-side fee tree. Same replace-on-write
// discipline as FeeDao.
type SolicitationDao struct {
	DB *gorm.DB
}

func NewSolicitationDao() *SolicitationDao {
	if dal.SettleDB == nil {
		log.Panic("[FATAL] dal.SettleDB is nil - database not initialized")
	}
	return &SolicitationDao{DB: dal.SettleDB}
}

func NewSolicitationDaoWithDB(db *gorm.DB) *SolicitationDao {
	if db == nil {
		log.Panic("[FATAL] db cannot be nil")
	}
	return &SolicitationDao{DB: db}
}

func (r *SolicitationDao) checkDB() error {
	if r == nil {
		return errors.New("SolicitationDao is nil")
	}
	if r.DB == nil {
		return errors.New("DB connection is nil")
	}
	return nil
}

func (r *SolicitationDao) GetByID(id uint64) (*feemodel.SolicitationFee, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get solicitation failed: %w", err)
	}
	var m feemodel.SolicitationFee
	err := r.DB.Where("id = ? AND active = ?", id, true).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

// InsertTree creates the solicitation row plus its full brand subtree.
func (r *SolicitationDao) InsertTree(s *feemodel.SolicitationFee, brands []feemodel.SolicitationBrandTree) (uint64, error) {
	if err := r.checkDB(); err != nil {
		return 0, fmt.Errorf("insert solicitation tree failed: %w", err)
	}
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		s.Active = true
		if err := tx.Create(s).Error; err != nil {
			return fmt.Errorf("create solicitation failed: %w", err)
		}
		return insertSolicitationChildren(tx, s.ID, brands)
	})
	if err != nil {
		return 0, err
	}
	return s.ID, nil
}

// ReplaceTree swaps the whole brand subtree under a solicitation, updating
// the scalar fields in the same transaction.
func (r *SolicitationDao) ReplaceTree(s *feemodel.SolicitationFee, brands []feemodel.SolicitationBrandTree) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("replace solicitation tree failed: %w", err)
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&feemodel.SolicitationFee{}).
			Where("id = ?", s.ID).
			Select("*").Omit("id", "create_time").Updates(s).Error; err != nil {
			return fmt.Errorf("update solicitation failed: %w", err)
		}
		var brandIDs []uint64
		if err := tx.Model(&feemodel.SolicitationFeeBrand{}).
			Where("id_solicitation = ?", s.ID).Pluck("id", &brandIDs).Error; err != nil {
			return fmt.Errorf("pluck brands failed: %w", err)
		}
		if len(brandIDs) > 0 {
			if err := tx.Where("id_solicitation_fee_brand IN (?)", brandIDs).
				Delete(&feemodel.SolicitationBrandProductType{}).Error; err != nil {
				return fmt.Errorf("delete product types failed: %w", err)
			}
			if err := tx.Where("id_solicitation = ?", s.ID).
				Delete(&feemodel.SolicitationFeeBrand{}).Error; err != nil {
				return fmt.Errorf("delete brands failed: %w", err)
			}
		}
		return insertSolicitationChildren(tx, s.ID, brands)
	})
}

// TransitionStatus moves a solicitation from one status to another with a
// compare-and-swap on the current status. Returns false when the row was
// not in the expected status (lost race or invalid call).
func (r *SolicitationDao) TransitionStatus(id uint64, from, to, description string, touchDescription bool) (bool, error) {
	if err := r.checkDB(); err != nil {
		return false, fmt.Errorf("transition status failed: %w", err)
	}
	updates := map[string]interface{}{"status": to}
	if touchDescription {
		updates["description"] = description
	}
	res := r.DB.Model(&feemodel.SolicitationFee{}).
		Where("id = ? AND status = ? AND active = ?", id, from, true).
		Updates(updates)
	if res.Error != nil {
		return false, fmt.Errorf("update failed: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

// LoadTree loads the whole solicitation tree in one transaction.
func (r *SolicitationDao) LoadTree(id uint64) (*feemodel.SolicitationTree, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("load solicitation tree failed: %w", err)
	}
	var tree *feemodel.SolicitationTree
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var root feemodel.SolicitationFee
		err := tx.Where("id = ? AND active = ?", id, true).First(&root).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("query root failed: %w", err)
		}
		var brands []feemodel.SolicitationFeeBrand
		if err := tx.Where("id_solicitation = ? AND active = ?", id, true).
			Order("id ASC").Find(&brands).Error; err != nil {
			return fmt.Errorf("query brands failed: %w", err)
		}
		t := &feemodel.SolicitationTree{SolicitationFee: root}
		for _, b := range brands {
			var pts []feemodel.SolicitationBrandProductType
			if err := tx.Where("id_solicitation_fee_brand = ? AND active = ?", b.ID, true).
				Order("id ASC").Find(&pts).Error; err != nil {
				return fmt.Errorf("query product types failed: %w", err)
			}
			t.Brands = append(t.Brands, feemodel.SolicitationBrandTree{
				SolicitationFeeBrand: b,
				ProductTypes:         pts,
			})
		}
		tree = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tree, nil
}

// CountBrands returns the number of active brand rows under a solicitation.
func (r *SolicitationDao) CountBrands(id uint64) (int64, error) {
	if err := r.checkDB(); err != nil {
		return 0, fmt.Errorf("count brands failed: %w", err)
	}
	var n int64
	err := r.DB.Model(&feemodel.SolicitationFeeBrand{}).
		Where("id_solicitation = ? AND active = ?", id, true).Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count failed: %w", err)
	}
	return n, nil
}

func insertSolicitationChildren(tx *gorm.DB, solicitationID uint64, brands []feemodel.SolicitationBrandTree) error {
	for i := range brands {
		b := brands[i].SolicitationFeeBrand
		b.ID = 0
		b.IDSolicitation = solicitationID
		b.Active = true
		if err := tx.Create(&b).Error; err != nil {
			return fmt.Errorf("create brand failed: %w", err)
		}
		for j := range brands[i].ProductTypes {
			pt := brands[i].ProductTypes[j]
			pt.ID = 0
			pt.IDSolicitationFeeBrand = b.ID
			pt.Active = true
			if err := tx.Create(&pt).Error; err != nil {
				return fmt.Errorf("create product type failed: %w", err)
			}
		}
	}
	return nil
}
