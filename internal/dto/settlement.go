package dto

import (
	settlemodel "iso-settlement-api/internal/model/settlement"
)

// ApplyBatchReq applies one batch of feed transactions into the cycle
// identified by Run. The same payload is safe to retry wholesale.
type ApplyBatchReq struct {
	Run          JobRun        `json:"run" binding:"required"`
	Transactions []Transaction `json:"transactions" binding:"required"`
}

// ApplyBatchResp reports what the batch did. Rejected transactions are also
// published on the events exchange.
type ApplyBatchResp struct {
	SettlementID uint64                `json:"settlementId"`
	Applied      int                   `json:"applied"`
	Duplicates   int                   `json:"duplicates"`
	Rejected     []RejectedTransaction `json:"rejected,omitempty"`
}

// SettlementView is a settlement with its merchant breakdown.
type SettlementView struct {
	Settlement settlemodel.Settlement           `json:"settlement"`
	Merchants  []settlemodel.MerchantSettlement `json:"merchants"`
}

// DispatchResp reports the orders created by one dispatch call.
type DispatchResp struct {
	OrderID    *uint64 `json:"orderId,omitempty"`
	PixOrderID *uint64 `json:"pixOrderId,omitempty"`
}
