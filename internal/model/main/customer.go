package mainmodel

import "time"

// Customer is an ISO tenant. Sub-ISOs hang off IDParent.
type Customer struct {
	ID                       uint64     `gorm:"column:id;primaryKey" json:"id"`
	Name                     string     `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Document                 string     `gorm:"column:document;type:varchar(20)" json:"document"`
	IDParent                 *uint64    `gorm:"column:id_parent" json:"idParent"`
	SettlementManagementType string     `gorm:"column:settlement_management_type;type:varchar(20)" json:"settlementManagementType"`
	IsActive                 bool       `gorm:"column:is_active;not null;default:true" json:"isActive"`
	CreateTime               *time.Time `gorm:"column:create_time;autoCreateTime" json:"createTime"`
	UpdateTime               *time.Time `gorm:"column:update_time;autoUpdateTime" json:"updateTime"`
}

func (Customer) TableName() string { return "iso_customer" }
