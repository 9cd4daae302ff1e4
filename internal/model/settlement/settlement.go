package settlemodel

import (
	"time"

	"github.com/shopspring/decimal"
)

// Leg statuses. Settled and Failed are terminal; a settlement whose four
// legs are all terminal is frozen and accepts no further applies.
const (
	LegOpen       int8 = 0
	LegProcessing int8 = 1
	LegSettled    int8 = 2
	LegFailed     int8 = 3
)

// LegTerminal reports whether a leg status accepts no further movement.
func LegTerminal(s int8) bool { return s == LegSettled || s == LegFailed }

// Totals is the running-counter block shared by Settlement and
// MerchantSettlement. Money columns are decimal(18,2); RestRoundingAmount
// absorbs per-transaction rounding remainders and OutstandingAmount carries
// them in its balance, so both need the wider scale for the conservation
// identity to survive a round-trip through the database.
type Totals struct {
	BatchAmount            decimal.Decimal `gorm:"column:batch_amount;type:decimal(18,2);not null" json:"batchAmount"`
	NetSettlementAmount    decimal.Decimal `gorm:"column:net_settlement_amount;type:decimal(18,2);not null" json:"netSettlementAmount"`
	TotalFeeAmount         decimal.Decimal `gorm:"column:total_fee_amount;type:decimal(18,2);not null" json:"totalFeeAmount"`
	TotalCostAmount        decimal.Decimal `gorm:"column:total_cost_amount;type:decimal(18,2);not null" json:"totalCostAmount"`
	PixAmount              decimal.Decimal `gorm:"column:pix_amount;type:decimal(18,2);not null" json:"pixAmount"`
	PixNetAmount           decimal.Decimal `gorm:"column:pix_net_amount;type:decimal(18,2);not null" json:"pixNetAmount"`
	PixFeeAmount           decimal.Decimal `gorm:"column:pix_fee_amount;type:decimal(18,2);not null" json:"pixFeeAmount"`
	PixCostAmount          decimal.Decimal `gorm:"column:pix_cost_amount;type:decimal(18,2);not null" json:"pixCostAmount"`
	AnticipationAmount     decimal.Decimal `gorm:"column:anticipation_amount;type:decimal(18,2);not null" json:"anticipationAmount"`
	AnticipationFeeAmount  decimal.Decimal `gorm:"column:anticipation_fee_amount;type:decimal(18,2);not null" json:"anticipationFeeAmount"`
	RestitutionAmount      decimal.Decimal `gorm:"column:restitution_amount;type:decimal(18,2);not null" json:"restitutionAmount"`
	CreditAdjustmentAmount decimal.Decimal `gorm:"column:credit_adjustment_amount;type:decimal(18,2);not null" json:"creditAdjustmentAmount"`
	DebitAdjustmentAmount  decimal.Decimal `gorm:"column:debit_adjustment_amount;type:decimal(18,2);not null" json:"debitAdjustmentAmount"`
	OutstandingAmount      decimal.Decimal `gorm:"column:outstanding_amount;type:decimal(18,10);not null" json:"outstandingAmount"`
	RestRoundingAmount     decimal.Decimal `gorm:"column:rest_rounding_amount;type:decimal(18,10);not null" json:"restRoundingAmount"`
	TransactionCount       int64           `gorm:"column:transaction_count;not null" json:"transactionCount"`
}

// Settlement is one aggregation scope per Customer per settlement date.
// Version backs the optimistic-concurrency check on every apply.
type Settlement struct {
	ID             uint64    `gorm:"column:id;primaryKey" json:"id"`
	IDCustomer     uint64    `gorm:"column:id_customer;not null;uniqueIndex:uk_customer_date" json:"idCustomer"`
	SettlementDate time.Time `gorm:"column:settlement_date;type:date;not null;uniqueIndex:uk_customer_date" json:"settlementDate"`
	Totals
	CreditStatus       int8       `gorm:"column:credit_status;type:tinyint(1);not null" json:"creditStatus"`
	DebitStatus        int8       `gorm:"column:debit_status;type:tinyint(1);not null" json:"debitStatus"`
	AnticipationStatus int8       `gorm:"column:anticipation_status;type:tinyint(1);not null" json:"anticipationStatus"`
	PixStatus          int8       `gorm:"column:pix_status;type:tinyint(1);not null" json:"pixStatus"`
	Version            int64      `gorm:"column:version;not null" json:"version"`
	Active             bool       `gorm:"column:active;not null;default:true" json:"active"`
	CreateTime         *time.Time `gorm:"column:create_time;autoCreateTime" json:"createTime"`
	UpdateTime         *time.Time `gorm:"column:update_time;autoUpdateTime" json:"updateTime"`
}

// Frozen reports whether every leg reached a terminal status.
func (s *Settlement) Frozen() bool {
	return LegTerminal(s.CreditStatus) && LegTerminal(s.DebitStatus) &&
		LegTerminal(s.AnticipationStatus) && LegTerminal(s.PixStatus)
}

// MerchantSettlement scopes the same totals to one merchant within one
// settlement.
type MerchantSettlement struct {
	ID           uint64 `gorm:"column:id;primaryKey" json:"id"`
	IDSettlement uint64 `gorm:"column:id_settlement;not null;uniqueIndex:uk_settlement_merchant" json:"idSettlement"`
	IDMerchant   uint64 `gorm:"column:id_merchant;not null;uniqueIndex:uk_settlement_merchant" json:"idMerchant"`
	Totals
	Version    int64      `gorm:"column:version;not null" json:"version"`
	Active     bool       `gorm:"column:active;not null;default:true" json:"active"`
	CreateTime *time.Time `gorm:"column:create_time;autoCreateTime" json:"createTime"`
	UpdateTime *time.Time `gorm:"column:update_time;autoUpdateTime" json:"updateTime"`
}
