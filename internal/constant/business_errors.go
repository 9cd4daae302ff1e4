package constant

// Business-level error codes (2xxx)

// Fee resolution
const (
	CodeFeeRootNotFound    = 2000 // merchant has no resolvable fee tree
	CodeUnknownBrand       = 2001 // no FeeBrand row matches the requested brand
	CodeUnknownProductType = 2002 // no product-type range covers the installment count
	CodeAmbiguousRange     = 2003 // overlapping installment ranges, first row won
	CodeFeeTreeInactive    = 2004 // fee root exists but is soft-deleted
	CodeMalformedFeeValue  = 2005 // non-numeric fee input, defaulted to zero
	CodeMerchantNotFound   = 2006
	CodeMerchantInactive   = 2007
	CodeCustomerNotFound   = 2008
	CodeCustomerInactive   = 2009
)

// Settlement aggregation
const (
	CodeAggregationConflict  = 2100 // optimistic concurrency check failed, retry the batch
	CodeSettlementNotFound   = 2101
	CodeSettlementFrozen     = 2102 // all legs terminal, no further applies accepted
	CodeTransactionRejected  = 2103 // transaction could not be aggregated, see rejects
	CodeDuplicateTransaction = 2104 // slug already applied in this cycle
)

// Order dispatch
const (
	CodeOrderLocked         = 2200 // outstanding order already dispatched
	CodeRoutingNotFound     = 2201 // customer has no payment institution routing
	CodeOrderNotFound       = 2202
	CodeNothingToDispatch   = 2203 // settlement legs carry a zero balance
	CodeInstitutionNotFound = 2204
)

// Pricing solicitation
const (
	CodeSolicitationNotFound = 2300
	CodeInvalidTransition    = 2301 // transition not allowed from the current status
	CodeSolicitationTerminal = 2302 // COMPLETED/CANCELED accept no further calls
	CodeEmptyBrandTree       = 2303 // solicitation must carry at least one brand
)
