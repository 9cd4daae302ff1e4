package feemodel

// In-memory fee tree aggregates, loaded in one transaction so resolution
// never sees a partially replaced tree.

type ProductTypeTree struct {
	FeeBrandProductType
	Credits []FeeCredit
}

type BrandTree struct {
	FeeBrand
	ProductTypes []ProductTypeTree
}

type Tree struct {
	Fee
	Brands []BrandTree
}

// SolicitationTree is the proposal-side aggregate.
type SolicitationTree struct {
	SolicitationFee
	Brands []SolicitationBrandTree
}

type SolicitationBrandTree struct {
	SolicitationFeeBrand
	ProductTypes []SolicitationBrandProductType
}
