package settlemodel

import "time"

// AppliedTransaction is the idempotency ledger: one row per transaction slug
// applied into a settlement. The unique key is authoritative; the Redis set
// in front of it is only a fast path.
type AppliedTransaction struct {
	ID           uint64     `gorm:"column:id;primaryKey" json:"id"`
	IDSettlement uint64     `gorm:"column:id_settlement;not null;uniqueIndex:uk_settlement_slug" json:"idSettlement"`
	TxSlug       string     `gorm:"column:tx_slug;type:varchar(64);not null;uniqueIndex:uk_settlement_slug" json:"txSlug"`
	AppliedAt    *time.Time `gorm:"column:applied_at;autoCreateTime" json:"appliedAt"`
}
