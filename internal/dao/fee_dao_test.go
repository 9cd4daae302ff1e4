package dao

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	feemodel "iso-settlement-api/internal/model/fee"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "dao.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	return db
}

func openFeeDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := openTestDB(t)
	if err := db.AutoMigrate(
		&feemodel.Fee{},
		&feemodel.FeeBrand{},
		&feemodel.FeeBrandProductType{},
		&feemodel.FeeCredit{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestUpdateRootWritesZeroValues(t *testing.T) {
	db := openFeeDB(t)
	dao := NewFeeDaoWithDB(db)

	id, err := dao.InsertTree(&feemodel.Fee{
		Name:                   "tabela ouro",
		TableType:              feemodel.TableTypeTiered,
		AnticipationType:       feemodel.AnticipationCompulsory,
		CompulsoryAnticipation: true,
		CardPixMdr:             decimal.RequireFromString("0.99"),
		MCC:                    "1234",
		CNAE:                   "4712100",
	}, nil)
	if err != nil {
		t.Fatalf("insert tree: %v", err)
	}

	root, err := dao.GetRoot(id)
	if err != nil || root == nil {
		t.Fatalf("get root: %v %v", root, err)
	}
	root.CompulsoryAnticipation = false
	root.AnticipationType = feemodel.AnticipationNone
	root.MCC = ""
	root.CNAE = ""
	if err := dao.UpdateRoot(root); err != nil {
		t.Fatalf("update root: %v", err)
	}

	got, err := dao.GetRoot(id)
	if err != nil || got == nil {
		t.Fatalf("reload root: %v %v", got, err)
	}
	if got.CompulsoryAnticipation {
		t.Error("CompulsoryAnticipation still true after clearing")
	}
	if got.AnticipationType != feemodel.AnticipationNone {
		t.Errorf("AnticipationType = %q, want NONE", got.AnticipationType)
	}
	if got.MCC != "" || got.CNAE != "" {
		t.Errorf("MCC/CNAE not cleared: %q %q", got.MCC, got.CNAE)
	}
	if got.Name != "tabela ouro" {
		t.Errorf("Name changed: %q", got.Name)
	}
	if !got.CardPixMdr.Equal(decimal.RequireFromString("0.99")) {
		t.Errorf("CardPixMdr changed: %s", got.CardPixMdr)
	}
}

func TestUpdateCreditWritesZeroValues(t *testing.T) {
	db := openFeeDB(t)
	dao := NewFeeDaoWithDB(db)

	credit := feemodel.FeeCredit{
		IDFeeBrandProductType: 100,
		InstallmentNumber:     3,
		MdrPercent:            decimal.RequireFromString("2.0"),
		NoFee:                 true,
		Active:                true,
	}
	if err := db.Create(&credit).Error; err != nil {
		t.Fatalf("create credit: %v", err)
	}

	credit.NoFee = false
	credit.MdrPercent = decimal.Zero
	if err := dao.UpdateCredit(&credit); err != nil {
		t.Fatalf("update credit: %v", err)
	}

	var got feemodel.FeeCredit
	if err := db.First(&got, credit.ID).Error; err != nil {
		t.Fatalf("reload credit: %v", err)
	}
	if got.NoFee {
		t.Error("NoFee still true after clearing")
	}
	if !got.MdrPercent.IsZero() {
		t.Errorf("MdrPercent = %s, want 0", got.MdrPercent)
	}
}
