package settlemodel

import (
	"time"

	"github.com/shopspring/decimal"
)

// MerchantSettlementOrder is a disbursement instruction addressed to one
// payment institution, derived from one MerchantSettlement. Lock is the
// cooperative dispatch flag: a locked order is never dispatched again;
// releasing it belongs to the disbursement collaborator.
type MerchantSettlementOrder struct {
	ID                   uint64          `gorm:"column:id;primaryKey" json:"id"`
	IDMerchantSettlement uint64          `gorm:"column:id_merchant_settlement;not null;index" json:"idMerchantSettlement"`
	IDPaymentInstitution uint64          `gorm:"column:id_payment_institution;not null" json:"idPaymentInstitution"`
	CompeCode            string          `gorm:"column:compe_code;type:varchar(3);not null" json:"compeCode"`
	BankBranchNumber     string          `gorm:"column:bank_branch_number;type:varchar(10);not null" json:"bankBranchNumber"`
	AccountNumber        string          `gorm:"column:account_number;type:varchar(20);not null" json:"accountNumber"`
	AccountDigit         string          `gorm:"column:account_digit;type:varchar(2)" json:"accountDigit"`
	Amount               decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	Lock                 bool            `gorm:"column:lock;not null" json:"lock"`
	Active               bool            `gorm:"column:active;not null;default:true" json:"active"`
	CreateTime           *time.Time      `gorm:"column:create_time;autoCreateTime" json:"createTime"`
	UpdateTime           *time.Time      `gorm:"column:update_time;autoUpdateTime" json:"updateTime"`
}

// MerchantPixSettlementOrder is the PIX disbursement counterpart, carrying
// protocol/guid identifiers for traceability.
type MerchantPixSettlementOrder struct {
	ID                   uint64          `gorm:"column:id;primaryKey" json:"id"`
	IDMerchantSettlement uint64          `gorm:"column:id_merchant_settlement;not null;index" json:"idMerchantSettlement"`
	IDPaymentInstitution uint64          `gorm:"column:id_payment_institution;not null" json:"idPaymentInstitution"`
	PixKey               string          `gorm:"column:pix_key;type:varchar(80)" json:"pixKey"`
	Amount               decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	TransactionCount     int64           `gorm:"column:transaction_count;not null" json:"transactionCount"`
	ProtocolNumber       uint64          `gorm:"column:protocol_number;not null" json:"protocolNumber"`
	Guid                 string          `gorm:"column:guid;type:varchar(36);not null" json:"guid"`
	Lock                 bool            `gorm:"column:lock;not null" json:"lock"`
	Active               bool            `gorm:"column:active;not null;default:true" json:"active"`
	CreateTime           *time.Time      `gorm:"column:create_time;autoCreateTime" json:"createTime"`
	UpdateTime           *time.Time      `gorm:"column:update_time;autoUpdateTime" json:"updateTime"`
}
