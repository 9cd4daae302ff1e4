package dto

import "github.com/shopspring/decimal"

// ResolveFeeReq asks for the effective pricing of one transaction shape.
type ResolveFeeReq struct {
	MerchantID   uint64 `json:"merchantId" binding:"required"`
	Brand        string `json:"brand"`
	ProductType  string `json:"productType"`
	Installments int    `json:"installments"`
	CardPresent  bool   `json:"cardPresent"`
	IsPix        bool   `json:"isPix"`
}

// ResolvedFee is the effective pricing for one transaction shape.
type ResolvedFee struct {
	Mdr              decimal.Decimal `json:"mdr"`
	FlatFee          decimal.Decimal `json:"flatFee"`
	CeilingFee       decimal.Decimal `json:"ceilingFee"`
	MinimumCostFee   decimal.Decimal `json:"minimumCostFee"`
	AnticipationRate decimal.Decimal `json:"anticipationRate"`
	NoFee            bool            `json:"noFee"`
}
