package dao

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	settlemodel "iso-settlement-api/internal/model/settlement"
	"iso-settlement-api/internal/shard"
)

var orderTestDate = time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

func openOrderDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := openTestDB(t)
	if err := db.Table(shard.CycleTable(OrderBase, orderTestDate)).
		AutoMigrate(&settlemodel.MerchantSettlementOrder{}); err != nil {
		t.Fatalf("migrate order table: %v", err)
	}
	if err := db.Table(shard.CycleTable(PixOrderBase, orderTestDate)).
		AutoMigrate(&settlemodel.MerchantPixSettlementOrder{}); err != nil {
		t.Fatalf("migrate pix order table: %v", err)
	}
	return db
}

func TestTryLockOrderRefreshesAmount(t *testing.T) {
	db := openOrderDB(t)
	dao := NewOrderDaoWithDB(db)

	order := &settlemodel.MerchantSettlementOrder{
		ID:                   501,
		IDMerchantSettlement: 42,
		IDPaymentInstitution: 9,
		CompeCode:            "341",
		BankBranchNumber:     "0001",
		AccountNumber:        "123456",
		Amount:               decimal.RequireFromString("100.00"),
		Lock:                 false,
		Active:               true,
	}
	if err := dao.CreateOrder(order, orderTestDate); err != nil {
		t.Fatalf("create order: %v", err)
	}

	ok, err := dao.TryLockOrder(order.ID, decimal.RequireFromString("250.50"), orderTestDate)
	if err != nil || !ok {
		t.Fatalf("lock: ok=%v err=%v", ok, err)
	}

	got, err := dao.GetOrderForSettlement(42, orderTestDate)
	if err != nil || got == nil {
		t.Fatalf("reload: %v %v", got, err)
	}
	if !got.Lock {
		t.Error("order not locked")
	}
	if !got.Amount.Equal(decimal.RequireFromString("250.50")) {
		t.Errorf("amount = %s, want 250.50 after re-arm", got.Amount)
	}

	// a locked order never locks twice
	ok, err = dao.TryLockOrder(order.ID, decimal.RequireFromString("999.99"), orderTestDate)
	if err != nil {
		t.Fatalf("relock: %v", err)
	}
	if ok {
		t.Error("locked order locked again")
	}
}

func TestTryLockPixOrderRefreshesAmountAndCount(t *testing.T) {
	db := openOrderDB(t)
	dao := NewOrderDaoWithDB(db)

	order := &settlemodel.MerchantPixSettlementOrder{
		ID:                   601,
		IDMerchantSettlement: 42,
		IDPaymentInstitution: 9,
		PixKey:               "loja@exemplo.com.br",
		Amount:               decimal.RequireFromString("80.00"),
		TransactionCount:     3,
		ProtocolNumber:       777001,
		Guid:                 "a1b2c3d4-0000-0000-0000-000000000000",
		Lock:                 false,
		Active:               true,
	}
	if err := dao.CreatePixOrder(order, orderTestDate); err != nil {
		t.Fatalf("create pix order: %v", err)
	}

	ok, err := dao.TryLockPixOrder(order.ID, decimal.RequireFromString("120.75"), 5, orderTestDate)
	if err != nil || !ok {
		t.Fatalf("lock: ok=%v err=%v", ok, err)
	}

	got, err := dao.GetPixOrderForSettlement(42, orderTestDate)
	if err != nil || got == nil {
		t.Fatalf("reload: %v %v", got, err)
	}
	if !got.Lock {
		t.Error("pix order not locked")
	}
	if !got.Amount.Equal(decimal.RequireFromString("120.75")) {
		t.Errorf("amount = %s, want 120.75 after re-arm", got.Amount)
	}
	if got.TransactionCount != 5 {
		t.Errorf("transaction count = %d, want 5", got.TransactionCount)
	}
	if got.ProtocolNumber != 777001 {
		t.Errorf("protocol number changed: %d", got.ProtocolNumber)
	}
}
