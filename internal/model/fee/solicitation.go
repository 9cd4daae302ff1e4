package feemodel

import (
	"time"

	"github.com/shopspring/decimal"
)

// Solicitation statuses.
const (
	SolicitationPending       = "PENDING"
	SolicitationSendDocuments = "SEND_DOCUMENTS"
	SolicitationApproved      = "APPROVED"
	SolicitationCompleted     = "COMPLETED"
	SolicitationCanceled      = "CANCELED"
)

// SolicitationFee mirrors Fee for a proposed pricing change awaiting
// approval. Description doubles as the audit trail: reject overwrites it
// with "CANCELED: <reason>".
type SolicitationFee struct {
	ID                      uint64          `gorm:"column:id;primaryKey" json:"id"`
	IDCustomer              uint64          `gorm:"column:id_customer;not null;index" json:"idCustomer"`
	IDMerchant              *uint64         `gorm:"column:id_merchant" json:"idMerchant"`
	Name                    string          `gorm:"column:name;type:varchar(100);not null" json:"name"`
	TableType               string          `gorm:"column:table_type;type:varchar(10);not null" json:"tableType"`
	AnticipationType        string          `gorm:"column:anticipation_type;type:varchar(12);not null" json:"anticipationType"`
	CompulsoryAnticipation  bool            `gorm:"column:compulsory_anticipation;not null" json:"compulsoryAnticipation"`
	EventualAnticipationFee decimal.Decimal `gorm:"column:eventual_anticipation_fee;type:decimal(18,6);not null" json:"eventualAnticipationFee"`
	CardPixMdr              decimal.Decimal `gorm:"column:card_pix_mdr;type:decimal(18,6);not null" json:"cardPixMdr"`
	NonCardPixMdr           decimal.Decimal `gorm:"column:non_card_pix_mdr;type:decimal(18,6);not null" json:"nonCardPixMdr"`
	Status                  string          `gorm:"column:status;type:varchar(20);not null;index" json:"status"`
	Description             string          `gorm:"column:description;type:varchar(500)" json:"description"`
	CnaeInUse               string          `gorm:"column:cnae_in_use;type:varchar(200)" json:"cnaeInUse"`
	Active                  bool            `gorm:"column:active;not null;default:true" json:"active"`
	CreateTime              *time.Time      `gorm:"column:create_time;autoCreateTime" json:"createTime"`
	UpdateTime              *time.Time      `gorm:"column:update_time;autoUpdateTime" json:"updateTime"`
}

func (SolicitationFee) TableName() string { return "iso_solicitation_fee" }

// SolicitationFeeBrand mirrors FeeBrand under a solicitation.
type SolicitationFeeBrand struct {
	ID             uint64 `gorm:"column:id;primaryKey" json:"id"`
	IDSolicitation uint64 `gorm:"column:id_solicitation;not null;index" json:"idSolicitation"`
	Brand          string `gorm:"column:brand;type:varchar(20);not null" json:"brand"`
	GroupOrdinal   int    `gorm:"column:group_ordinal;not null" json:"groupOrdinal"`
	Active         bool   `gorm:"column:active;not null;default:true" json:"active"`
}

func (SolicitationFeeBrand) TableName() string { return "iso_solicitation_fee_brand" }

// SolicitationBrandProductType carries three fee variants per tier: the
// customer-facing price, the admin reference price and the dock (processor)
// cost.
type SolicitationBrandProductType struct {
	ID                             uint64          `gorm:"column:id;primaryKey" json:"id"`
	IDSolicitationFeeBrand         uint64          `gorm:"column:id_solicitation_fee_brand;not null;index" json:"idSolicitationFeeBrand"`
	ProductType                    string          `gorm:"column:product_type;type:varchar(20);not null" json:"productType"`
	InstallmentTransactionFeeStart int             `gorm:"column:installment_transaction_fee_start;not null" json:"installmentTransactionFeeStart"`
	InstallmentTransactionFeeEnd   int             `gorm:"column:installment_transaction_fee_end;not null" json:"installmentTransactionFeeEnd"`
	CustomerMdrPercent             decimal.Decimal `gorm:"column:customer_mdr_percent;type:decimal(18,6);not null" json:"customerMdrPercent"`
	AdminMdrPercent                decimal.Decimal `gorm:"column:admin_mdr_percent;type:decimal(18,6);not null" json:"adminMdrPercent"`
	DockMdrPercent                 decimal.Decimal `gorm:"column:dock_mdr_percent;type:decimal(18,6);not null" json:"dockMdrPercent"`
	CustomerFeeAmount              decimal.Decimal `gorm:"column:customer_fee_amount;type:decimal(18,2);not null" json:"customerFeeAmount"`
	AdminFeeAmount                 decimal.Decimal `gorm:"column:admin_fee_amount;type:decimal(18,2);not null" json:"adminFeeAmount"`
	DockFeeAmount                  decimal.Decimal `gorm:"column:dock_fee_amount;type:decimal(18,2);not null" json:"dockFeeAmount"`
	Active                         bool            `gorm:"column:active;not null;default:true" json:"active"`
}

func (SolicitationBrandProductType) TableName() string { return "iso_solicitation_brand_product_type" }
