package fee

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"iso-settlement-api/internal/dto"
	feemodel "iso-settlement-api/internal/model/fee"
)

// Resolution failures. Callers check with errors.Is and do not aggregate the
// transaction.
var (
	ErrFeeRootNotFound    = errors.New("fee root not found")
	ErrUnknownBrand       = errors.New("unknown brand")
	ErrUnknownProductType = errors.New("unknown product type")
)

// Resolver walks a loaded fee tree. It is a pure function of the tree and
// the input: identical calls against an unchanged tree return identical
// output.
type Resolver struct {
	warn *logrus.Logger
}

func NewResolver(warn *logrus.Logger) *Resolver {
	return &Resolver{warn: warn}
}

// Resolve returns the effective pricing for one transaction shape.
//
// PIX bypasses the brand/product tiers entirely and reads the root-level
// rates. Card resolution matches brand exactly (case-sensitive), then the
// first product-type row whose installment range contains the count, then
// lets an exact FeeCredit row override the range-level MDR.
func (r *Resolver) Resolve(tree *feemodel.Tree, in dto.ResolveFeeReq) (dto.ResolvedFee, error) {
	if tree == nil {
		return dto.ResolvedFee{}, ErrFeeRootNotFound
	}

	if in.IsPix {
		return r.resolvePix(tree, in), nil
	}

	brand := findBrand(tree, in.Brand)
	if brand == nil {
		return dto.ResolvedFee{}, fmt.Errorf("%w: %s", ErrUnknownBrand, in.Brand)
	}

	pt := r.findProductType(tree, brand, in)
	if pt == nil {
		return dto.ResolvedFee{}, fmt.Errorf("%w: %s x%d", ErrUnknownProductType, in.ProductType, in.Installments)
	}

	out := dto.ResolvedFee{}
	if in.CardPresent {
		out.Mdr = pt.MdrPercent
		out.FlatFee = pt.TransactionFeeAmount
	} else {
		out.Mdr = pt.NonCardMdrPercent
		out.FlatFee = pt.NonCardTransactionFeeAmount
	}

	if credit := findCredit(pt, in.Installments); credit != nil {
		if credit.NoFee {
			out.Mdr = decimal.Zero
			out.FlatFee = decimal.Zero
			out.NoFee = true
		} else {
			if in.CardPresent {
				out.Mdr = credit.MdrPercent
			} else {
				out.Mdr = credit.NonCardMdrPercent
			}
			out.FlatFee = credit.TransactionFeeAmount
		}
		if tree.CompulsoryAnticipation {
			out.AnticipationRate = credit.CompulsoryAnticipationRate
		}
	}

	if out.AnticipationRate.IsZero() && tree.AnticipationType == feemodel.AnticipationEventual {
		out.AnticipationRate = tree.EventualAnticipationFee
	}

	return out, nil
}

func (r *Resolver) resolvePix(tree *feemodel.Tree, in dto.ResolveFeeReq) dto.ResolvedFee {
	mdr := tree.NonCardPixMdr
	if in.CardPresent {
		mdr = tree.CardPixMdr
	}
	return dto.ResolvedFee{
		Mdr:            mdr,
		CeilingFee:     tree.PixCeilingFee,
		MinimumCostFee: tree.PixMinimumCostFee,
	}
}

func findBrand(tree *feemodel.Tree, brand string) *feemodel.BrandTree {
	for i := range tree.Brands {
		if tree.Brands[i].Brand == brand {
			return &tree.Brands[i]
		}
	}
	return nil
}

// findProductType returns the first row by insertion order whose range
// contains the installment count. The schema allows ranges to overlap; the
// tie-break is deterministic but flagged as a data-quality warning, never
// fixed silently.
func (r *Resolver) findProductType(tree *feemodel.Tree, brand *feemodel.BrandTree, in dto.ResolveFeeReq) *feemodel.ProductTypeTree {
	var matches []*feemodel.ProductTypeTree
	for i := range brand.ProductTypes {
		pt := &brand.ProductTypes[i]
		if pt.ProductType != in.ProductType {
			continue
		}
		if in.Installments >= pt.InstallmentTransactionFeeStart && in.Installments <= pt.InstallmentTransactionFeeEnd {
			matches = append(matches, pt)
		}
	}
	if len(matches) == 0 {
		return nil
	}
	if len(matches) > 1 && r.warn != nil {
		ids := make([]uint64, len(matches))
		for i, m := range matches {
			ids[i] = m.ID
		}
		r.warn.WithFields(logrus.Fields{
			"fee_root":     tree.ID,
			"brand":        brand.Brand,
			"product_type": in.ProductType,
			"installments": in.Installments,
			"row_ids":      ids,
		}).Warn("ambiguous installment range, first row wins")
	}
	return matches[0]
}

func findCredit(pt *feemodel.ProductTypeTree, installments int) *feemodel.FeeCredit {
	for i := range pt.Credits {
		if pt.Credits[i].InstallmentNumber == installments {
			return &pt.Credits[i]
		}
	}
	return nil
}
