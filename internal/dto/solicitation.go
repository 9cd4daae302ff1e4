package dto

// Brand tree payloads come from user-entered forms, so every numeric field
// arrives as text and goes through utils.ParseMoney (zero on garbage).

// ProductTypeVo is one product-type tier inside a brand.
type ProductTypeVo struct {
	ProductType      string `json:"productType" binding:"required"`
	InstallmentStart int    `json:"installmentStart"`
	InstallmentEnd   int    `json:"installmentEnd"`
	CustomerMdr      string `json:"customerMdr"`
	AdminMdr         string `json:"adminMdr"`
	DockMdr          string `json:"dockMdr"`
	CustomerFee      string `json:"customerFee"`
	AdminFee         string `json:"adminFee"`
	DockFee          string `json:"dockFee"`
}

// BrandVo is one card brand with its product-type tiers.
type BrandVo struct {
	Brand        string          `json:"brand" binding:"required"`
	GroupOrdinal int             `json:"groupOrdinal"`
	ProductTypes []ProductTypeVo `json:"productTypes"`
}

// CreateSolicitationReq opens a pricing-change proposal in PENDING with its
// full brand subtree.
type CreateSolicitationReq struct {
	IDCustomer              uint64    `json:"idCustomer" binding:"required"`
	IDMerchant              *uint64   `json:"idMerchant"`
	Name                    string    `json:"name" binding:"required"`
	TableType               string    `json:"tableType"`
	AnticipationType        string    `json:"anticipationType"`
	CompulsoryAnticipation  bool      `json:"compulsoryAnticipation"`
	EventualAnticipationFee string    `json:"eventualAnticipationFee"`
	CardPixMdr              string    `json:"cardPixMdr"`
	NonCardPixMdr           string    `json:"nonCardPixMdr"`
	Description             string    `json:"description"`
	CnaeInUse               string    `json:"cnaeInUse"`
	Brands                  []BrandVo `json:"brands" binding:"required"`
}

// UpdateSolicitationReq reworks a proposal while documents are pending. The
// brand tree is replaced wholesale, never merged.
type UpdateSolicitationReq struct {
	Name                    string    `json:"name"`
	TableType               string    `json:"tableType"`
	AnticipationType        string    `json:"anticipationType"`
	CompulsoryAnticipation  bool      `json:"compulsoryAnticipation"`
	EventualAnticipationFee string    `json:"eventualAnticipationFee"`
	CardPixMdr              string    `json:"cardPixMdr"`
	NonCardPixMdr           string    `json:"nonCardPixMdr"`
	Description             string    `json:"description"`
	CnaeInUse               string    `json:"cnaeInUse"`
	Brands                  []BrandVo `json:"brands" binding:"required"`
}

// RejectSolicitationReq carries the optional free-text reason.
type RejectSolicitationReq struct {
	Reason string `json:"reason"`
}

// PromoteSolicitationReq points an approved proposal at the production fee
// root it replaces.
type PromoteSolicitationReq struct {
	TargetFeeRootID uint64 `json:"targetFeeRootId" binding:"required"`
}
