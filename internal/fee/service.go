package fee

import (
	"iso-settlement-api/internal/dto"
	feemodel "iso-settlement-api/internal/model/fee"
)

// PricingRootLookup resolves a merchant to its effective fee root. Owned by
// the merchant-management side; MainDao provides the default implementation.
type PricingRootLookup interface {
	GetMerchantPricingRoot(merchantID uint64) (uint64, error)
}

// TreeLoader loads a fee tree in one consistent snapshot.
type TreeLoader interface {
	LoadTree(rootID uint64) (*feemodel.Tree, error)
}

// Service ties merchant lookup, tree loading and resolution together.
type Service struct {
	lookup   PricingRootLookup
	loader   TreeLoader
	resolver *Resolver
}

func NewService(lookup PricingRootLookup, loader TreeLoader, resolver *Resolver) *Service {
	return &Service{lookup: lookup, loader: loader, resolver: resolver}
}

// ResolveForMerchant resolves pricing for one transaction shape against the
// merchant's effective fee tree.
func (s *Service) ResolveForMerchant(in dto.ResolveFeeReq) (dto.ResolvedFee, error) {
	rootID, err := s.lookup.GetMerchantPricingRoot(in.MerchantID)
	if err != nil {
		return dto.ResolvedFee{}, err
	}
	if rootID == 0 {
		return dto.ResolvedFee{}, ErrFeeRootNotFound
	}
	tree, err := s.loader.LoadTree(rootID)
	if err != nil {
		return dto.ResolvedFee{}, err
	}
	return s.resolver.Resolve(tree, in)
}

// LoadTreeForMerchant hands the aggregator a tree snapshot it can resolve
// a whole batch against.
func (s *Service) LoadTreeForMerchant(merchantID uint64) (*feemodel.Tree, error) {
	rootID, err := s.lookup.GetMerchantPricingRoot(merchantID)
	if err != nil {
		return nil, err
	}
	if rootID == 0 {
		return nil, ErrFeeRootNotFound
	}
	return s.loader.LoadTree(rootID)
}

// Resolver exposes the underlying pure resolver.
func (s *Service) Resolver() *Resolver {
	return s.resolver
}
