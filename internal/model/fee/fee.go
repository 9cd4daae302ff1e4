package feemodel

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fee table types.
const (
	TableTypeSimple = "SIMPLE"
	TableTypeTiered = "TIERED"
)

// Anticipation policy types.
const (
	AnticipationNone       = "NONE"
	AnticipationEventual   = "EVENTUAL"
	AnticipationCompulsory = "COMPULSORY"
)

// Fee is a pricing table root. Amount columns are decimal(18,2); percentage
// columns keep the looser decimal(18,6) the source schema uses.
type Fee struct {
	ID                      uint64          `gorm:"column:id;primaryKey" json:"id"`
	Name                    string          `gorm:"column:name;type:varchar(100);not null" json:"name"`
	TableType               string          `gorm:"column:table_type;type:varchar(10);not null" json:"tableType"` // SIMPLE | TIERED
	AnticipationType        string          `gorm:"column:anticipation_type;type:varchar(12);not null" json:"anticipationType"`
	CompulsoryAnticipation  bool            `gorm:"column:compulsory_anticipation;not null" json:"compulsoryAnticipation"`
	EventualAnticipationFee decimal.Decimal `gorm:"column:eventual_anticipation_fee;type:decimal(18,6);not null" json:"eventualAnticipationFee"`
	CardPixMdr              decimal.Decimal `gorm:"column:card_pix_mdr;type:decimal(18,6);not null" json:"cardPixMdr"`
	NonCardPixMdr           decimal.Decimal `gorm:"column:non_card_pix_mdr;type:decimal(18,6);not null" json:"nonCardPixMdr"`
	PixCeilingFee           decimal.Decimal `gorm:"column:pix_ceiling_fee;type:decimal(18,2);not null" json:"pixCeilingFee"`
	PixMinimumCostFee       decimal.Decimal `gorm:"column:pix_minimum_cost_fee;type:decimal(18,2);not null" json:"pixMinimumCostFee"`
	MCC                     string          `gorm:"column:mcc;type:varchar(4)" json:"mcc"`
	CNAE                    string          `gorm:"column:cnae;type:varchar(10)" json:"cnae"`
	Active                  bool            `gorm:"column:active;not null;default:true" json:"active"`
	CreateTime              *time.Time      `gorm:"column:create_time;autoCreateTime" json:"createTime"`
	UpdateTime              *time.Time      `gorm:"column:update_time;autoUpdateTime" json:"updateTime"`
}

func (Fee) TableName() string { return "iso_fee" }

// FeeBrand is one card brand under a Fee.
type FeeBrand struct {
	ID           uint64 `gorm:"column:id;primaryKey" json:"id"`
	IDFee        uint64 `gorm:"column:id_fee;not null;index" json:"idFee"`
	Brand        string `gorm:"column:brand;type:varchar(20);not null" json:"brand"` // VISA, MASTER, ELO, ...
	GroupOrdinal int    `gorm:"column:group_ordinal;not null" json:"groupOrdinal"`
	Active       bool   `gorm:"column:active;not null;default:true" json:"active"`
}

func (FeeBrand) TableName() string { return "iso_fee_brand" }

// FeeBrandProductType is one product type under a brand, bounded by an
// installment range. Ranges are allowed to overlap in the source schema;
// resolution takes the first row by insertion order.
type FeeBrandProductType struct {
	ID                             uint64          `gorm:"column:id;primaryKey" json:"id"`
	IDFeeBrand                     uint64          `gorm:"column:id_fee_brand;not null;index" json:"idFeeBrand"`
	ProductType                    string          `gorm:"column:product_type;type:varchar(20);not null" json:"productType"` // CREDIT, DEBIT, ...
	InstallmentTransactionFeeStart int             `gorm:"column:installment_transaction_fee_start;not null" json:"installmentTransactionFeeStart"`
	InstallmentTransactionFeeEnd   int             `gorm:"column:installment_transaction_fee_end;not null" json:"installmentTransactionFeeEnd"`
	TransactionFeeAmount           decimal.Decimal `gorm:"column:transaction_fee_amount;type:decimal(18,2);not null" json:"transactionFeeAmount"`
	MdrPercent                     decimal.Decimal `gorm:"column:mdr_percent;type:decimal(18,6);not null" json:"mdrPercent"`
	NonCardTransactionFeeAmount    decimal.Decimal `gorm:"column:non_card_transaction_fee_amount;type:decimal(18,2);not null" json:"nonCardTransactionFeeAmount"`
	NonCardMdrPercent              decimal.Decimal `gorm:"column:non_card_mdr_percent;type:decimal(18,6);not null" json:"nonCardMdrPercent"`
	Active                         bool            `gorm:"column:active;not null;default:true" json:"active"`
}

func (FeeBrandProductType) TableName() string { return "iso_fee_brand_product_type" }

// FeeCredit is the per-installment leaf. InstallmentNumber is unique within
// its parent product type; its rate overrides the range-level MDR.
type FeeCredit struct {
	ID                         uint64          `gorm:"column:id;primaryKey" json:"id"`
	IDFeeBrandProductType      uint64          `gorm:"column:id_fee_brand_product_type;not null;uniqueIndex:uk_pt_installment" json:"idFeeBrandProductType"`
	InstallmentNumber          int             `gorm:"column:installment_number;not null;uniqueIndex:uk_pt_installment" json:"installmentNumber"`
	MdrPercent                 decimal.Decimal `gorm:"column:mdr_percent;type:decimal(18,6);not null" json:"mdrPercent"`
	CompulsoryAnticipationRate decimal.Decimal `gorm:"column:compulsory_anticipation_rate;type:decimal(18,6);not null" json:"compulsoryAnticipationRate"`
	NonCardMdrPercent          decimal.Decimal `gorm:"column:non_card_mdr_percent;type:decimal(18,6);not null" json:"nonCardMdrPercent"`
	TransactionFeeAmount       decimal.Decimal `gorm:"column:transaction_fee_amount;type:decimal(18,2);not null" json:"transactionFeeAmount"`
	NoFee                      bool            `gorm:"column:no_fee;not null" json:"noFee"`
	Active                     bool            `gorm:"column:active;not null;default:true" json:"active"`
}

func (FeeCredit) TableName() string { return "iso_fee_credit" }
