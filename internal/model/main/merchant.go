package mainmodel

import "time"

// Merchant belongs to exactly one Customer. Pricing is resolved through
// IDMerchantPrice when set, otherwise through the category's CNAE default.
type Merchant struct {
	ID              uint64     `gorm:"column:id;primaryKey" json:"id"`
	IDCustomer      uint64     `gorm:"column:id_customer;not null;index" json:"idCustomer"`
	Name            string     `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Document        string     `gorm:"column:document;type:varchar(20)" json:"document"`
	IDMerchantPrice *uint64    `gorm:"column:id_merchant_price" json:"idMerchantPrice"` // fee tree root assigned directly
	IDCategory      *uint64    `gorm:"column:id_category" json:"idCategory"`            // CNAE-based default pricing
	CNAE            string     `gorm:"column:cnae;type:varchar(10)" json:"cnae"`
	MCC             string     `gorm:"column:mcc;type:varchar(4)" json:"mcc"`
	IsActive        bool       `gorm:"column:is_active;not null;default:true" json:"isActive"`
	CreateTime      *time.Time `gorm:"column:create_time;autoCreateTime" json:"createTime"`
	UpdateTime      *time.Time `gorm:"column:update_time;autoUpdateTime" json:"updateTime"`
}

func (Merchant) TableName() string { return "iso_merchant" }

// MerchantCategory maps a CNAE/MCC pair to its default fee tree.
type MerchantCategory struct {
	ID       uint64  `gorm:"column:id;primaryKey" json:"id"`
	Name     string  `gorm:"column:name;type:varchar(100);not null" json:"name"`
	CNAE     string  `gorm:"column:cnae;type:varchar(10)" json:"cnae"`
	MCC      string  `gorm:"column:mcc;type:varchar(4)" json:"mcc"`
	IDFee    *uint64 `gorm:"column:id_fee" json:"idFee"` // default fee root for the category
	IsActive bool    `gorm:"column:is_active;not null;default:true" json:"isActive"`
}

func (MerchantCategory) TableName() string { return "iso_merchant_category" }
