package dao

import (
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	feemodel "iso-settlement-api/internal/model/fee"
)

func openSolicitationDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := openTestDB(t)
	if err := db.AutoMigrate(
		&feemodel.SolicitationFee{},
		&feemodel.SolicitationFeeBrand{},
		&feemodel.SolicitationBrandProductType{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func sampleSolicitation() *feemodel.SolicitationFee {
	return &feemodel.SolicitationFee{
		IDCustomer:             7,
		Name:                   "proposta loja centro",
		TableType:              feemodel.TableTypeSimple,
		AnticipationType:       feemodel.AnticipationEventual,
		CompulsoryAnticipation: true,
		Status:                 feemodel.SolicitationPending,
		Description:            "first draft",
		CnaeInUse:              "4712100",
	}
}

func solicitationBrands(names ...string) []feemodel.SolicitationBrandTree {
	out := make([]feemodel.SolicitationBrandTree, 0, len(names))
	for i, n := range names {
		out = append(out, feemodel.SolicitationBrandTree{
			SolicitationFeeBrand: feemodel.SolicitationFeeBrand{Brand: n, GroupOrdinal: i + 1},
			ProductTypes: []feemodel.SolicitationBrandProductType{
				{
					ProductType:                    "CREDIT",
					InstallmentTransactionFeeStart: 1,
					InstallmentTransactionFeeEnd:   6,
					CustomerMdrPercent:             decimal.RequireFromString("2.5"),
				},
			},
		})
	}
	return out
}

func TestReplaceTreeWritesZeroScalars(t *testing.T) {
	db := openSolicitationDB(t)
	dao := NewSolicitationDaoWithDB(db)

	id, err := dao.InsertTree(sampleSolicitation(), solicitationBrands("VISA"))
	if err != nil {
		t.Fatalf("insert tree: %v", err)
	}

	cur, err := dao.GetByID(id)
	if err != nil || cur == nil {
		t.Fatalf("get: %v %v", cur, err)
	}
	cur.Description = ""
	cur.CompulsoryAnticipation = false
	cur.CnaeInUse = ""
	if err := dao.ReplaceTree(cur, solicitationBrands("VISA", "MASTER")); err != nil {
		t.Fatalf("replace tree: %v", err)
	}

	got, err := dao.GetByID(id)
	if err != nil || got == nil {
		t.Fatalf("reload: %v %v", got, err)
	}
	if got.Description != "" {
		t.Errorf("Description = %q, want empty", got.Description)
	}
	if got.CompulsoryAnticipation {
		t.Error("CompulsoryAnticipation still true after clearing")
	}
	if got.CnaeInUse != "" {
		t.Errorf("CnaeInUse = %q, want empty", got.CnaeInUse)
	}
}

func TestReplaceTreeSwapsWholeSubtree(t *testing.T) {
	db := openSolicitationDB(t)
	dao := NewSolicitationDaoWithDB(db)

	id, err := dao.InsertTree(sampleSolicitation(), solicitationBrands("VISA", "ELO", "AMEX"))
	if err != nil {
		t.Fatalf("insert tree: %v", err)
	}
	var oldIDs []uint64
	if err := db.Model(&feemodel.SolicitationFeeBrand{}).
		Where("id_solicitation = ?", id).Pluck("id", &oldIDs).Error; err != nil {
		t.Fatalf("pluck: %v", err)
	}

	cur, _ := dao.GetByID(id)
	if err := dao.ReplaceTree(cur, solicitationBrands("VISA", "MASTER")); err != nil {
		t.Fatalf("replace tree: %v", err)
	}

	n, err := dao.CountBrands(id)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Errorf("brand count = %d, want 2", n)
	}
	var survivors int64
	if err := db.Model(&feemodel.SolicitationFeeBrand{}).
		Where("id IN (?)", oldIDs).Count(&survivors).Error; err != nil {
		t.Fatalf("count old: %v", err)
	}
	if survivors != 0 {
		t.Errorf("%d pre-replace brand rows survived", survivors)
	}
}

func TestTransitionStatusCAS(t *testing.T) {
	db := openSolicitationDB(t)
	dao := NewSolicitationDaoWithDB(db)

	id, err := dao.InsertTree(sampleSolicitation(), solicitationBrands("VISA"))
	if err != nil {
		t.Fatalf("insert tree: %v", err)
	}

	ok, err := dao.TransitionStatus(id, feemodel.SolicitationPending, feemodel.SolicitationApproved, "", false)
	if err != nil || !ok {
		t.Fatalf("transition: ok=%v err=%v", ok, err)
	}
	// same move again loses the compare-and-swap
	ok, err = dao.TransitionStatus(id, feemodel.SolicitationPending, feemodel.SolicitationApproved, "", false)
	if err != nil {
		t.Fatalf("transition: %v", err)
	}
	if ok {
		t.Error("stale transition reported success")
	}

	got, _ := dao.GetByID(id)
	if got.Description != "first draft" {
		t.Errorf("description touched without touchDescription: %q", got.Description)
	}
	ok, err = dao.TransitionStatus(id, feemodel.SolicitationApproved, feemodel.SolicitationCanceled, "CANCELED: pricing out of policy", true)
	if err != nil || !ok {
		t.Fatalf("cancel: ok=%v err=%v", ok, err)
	}
	got, _ = dao.GetByID(id)
	if got.Description != "CANCELED: pricing out of policy" {
		t.Errorf("description = %q", got.Description)
	}
}
