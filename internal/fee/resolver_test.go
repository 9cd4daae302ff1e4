package fee

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"iso-settlement-api/internal/dto"
	feemodel "iso-settlement-api/internal/model/fee"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testTree() *feemodel.Tree {
	return &feemodel.Tree{
		Fee: feemodel.Fee{
			ID:                1,
			Name:              "padrao",
			TableType:         feemodel.TableTypeTiered,
			AnticipationType:  feemodel.AnticipationNone,
			CardPixMdr:        dec("0.99"),
			NonCardPixMdr:     dec("1.19"),
			PixCeilingFee:     dec("5.00"),
			PixMinimumCostFee: dec("0.05"),
			Active:            true,
		},
		Brands: []feemodel.BrandTree{
			{
				FeeBrand: feemodel.FeeBrand{ID: 10, IDFee: 1, Brand: "VISA", GroupOrdinal: 1, Active: true},
				ProductTypes: []feemodel.ProductTypeTree{
					{
						FeeBrandProductType: feemodel.FeeBrandProductType{
							ID: 100, IDFeeBrand: 10, ProductType: "CREDIT",
							InstallmentTransactionFeeStart: 1,
							InstallmentTransactionFeeEnd:   6,
							TransactionFeeAmount:           dec("0.30"),
							MdrPercent:                     dec("2.5"),
							NonCardMdrPercent:              dec("2.9"),
							NonCardTransactionFeeAmount:    dec("0.40"),
							Active:                         true,
						},
						Credits: []feemodel.FeeCredit{
							{
								ID: 1000, IDFeeBrandProductType: 100, InstallmentNumber: 3,
								MdrPercent:           dec("2.0"),
								NonCardMdrPercent:    dec("2.4"),
								TransactionFeeAmount: dec("0.25"),
								Active:               true,
							},
						},
					},
					{
						FeeBrandProductType: feemodel.FeeBrandProductType{
							ID: 101, IDFeeBrand: 10, ProductType: "DEBIT",
							InstallmentTransactionFeeStart: 1,
							InstallmentTransactionFeeEnd:   1,
							MdrPercent:                     dec("1.5"),
							NonCardMdrPercent:              dec("1.9"),
							Active:                         true,
						},
					},
				},
			},
		},
	}
}

func TestResolveCreditInstallmentOverride(t *testing.T) {
	r := NewResolver(nil)
	tree := testTree()

	// installment 3 has a FeeCredit override
	got, err := r.Resolve(tree, dto.ResolveFeeReq{
		MerchantID: 1, Brand: "VISA", ProductType: "CREDIT", Installments: 3, CardPresent: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Mdr.String() != "2" {
		t.Errorf("mdr = %s, want 2", got.Mdr)
	}
	if got.FlatFee.String() != "0.25" {
		t.Errorf("flatFee = %s, want 0.25", got.FlatFee)
	}

	// installment 5 falls back to the range-level MDR
	got, err = r.Resolve(tree, dto.ResolveFeeReq{
		MerchantID: 1, Brand: "VISA", ProductType: "CREDIT", Installments: 5, CardPresent: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Mdr.String() != "2.5" {
		t.Errorf("mdr = %s, want 2.5", got.Mdr)
	}
}

func TestResolveNoRangeCovers(t *testing.T) {
	r := NewResolver(nil)
	_, err := r.Resolve(testTree(), dto.ResolveFeeReq{
		MerchantID: 1, Brand: "VISA", ProductType: "CREDIT", Installments: 9, CardPresent: true,
	})
	if !errors.Is(err, ErrUnknownProductType) {
		t.Errorf("err = %v, want ErrUnknownProductType", err)
	}
}

func TestResolveUnknownBrand(t *testing.T) {
	r := NewResolver(nil)
	_, err := r.Resolve(testTree(), dto.ResolveFeeReq{
		MerchantID: 1, Brand: "AMEX", ProductType: "CREDIT", Installments: 1, CardPresent: true,
	})
	if !errors.Is(err, ErrUnknownBrand) {
		t.Errorf("err = %v, want ErrUnknownBrand", err)
	}

	// brand match is case-sensitive
	_, err = r.Resolve(testTree(), dto.ResolveFeeReq{
		MerchantID: 1, Brand: "visa", ProductType: "CREDIT", Installments: 1, CardPresent: true,
	})
	if !errors.Is(err, ErrUnknownBrand) {
		t.Errorf("err = %v, want ErrUnknownBrand for lowercase brand", err)
	}
}

func TestResolveNonCardVariant(t *testing.T) {
	r := NewResolver(nil)
	got, err := r.Resolve(testTree(), dto.ResolveFeeReq{
		MerchantID: 1, Brand: "VISA", ProductType: "CREDIT", Installments: 5, CardPresent: false,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Mdr.String() != "2.9" {
		t.Errorf("mdr = %s, want 2.9", got.Mdr)
	}
	if got.FlatFee.String() != "0.4" {
		t.Errorf("flatFee = %s, want 0.4", got.FlatFee)
	}
}

func TestResolvePixBypassesTiers(t *testing.T) {
	r := NewResolver(nil)
	tree := testTree()

	got, err := r.Resolve(tree, dto.ResolveFeeReq{MerchantID: 1, IsPix: true, CardPresent: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Mdr.String() != "0.99" {
		t.Errorf("card pix mdr = %s, want 0.99", got.Mdr)
	}
	if got.CeilingFee.String() != "5" {
		t.Errorf("ceiling = %s, want 5", got.CeilingFee)
	}
	if got.MinimumCostFee.String() != "0.05" {
		t.Errorf("min cost = %s, want 0.05", got.MinimumCostFee)
	}

	got, err = r.Resolve(tree, dto.ResolveFeeReq{MerchantID: 1, IsPix: true, CardPresent: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Mdr.String() != "1.19" {
		t.Errorf("non-card pix mdr = %s, want 1.19", got.Mdr)
	}
}

func TestResolveOverlappingRangeFirstWins(t *testing.T) {
	r := NewResolver(nil)
	tree := testTree()
	// second CREDIT range overlapping 1..6; insertion order must win
	tree.Brands[0].ProductTypes = append(tree.Brands[0].ProductTypes, feemodel.ProductTypeTree{
		FeeBrandProductType: feemodel.FeeBrandProductType{
			ID: 102, IDFeeBrand: 10, ProductType: "CREDIT",
			InstallmentTransactionFeeStart: 4,
			InstallmentTransactionFeeEnd:   12,
			MdrPercent:                     dec("3.9"),
			Active:                         true,
		},
	})

	got, err := r.Resolve(tree, dto.ResolveFeeReq{
		MerchantID: 1, Brand: "VISA", ProductType: "CREDIT", Installments: 5, CardPresent: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Mdr.String() != "2.5" {
		t.Errorf("mdr = %s, want first-row 2.5", got.Mdr)
	}

	// 9 only fits the second range
	got, err = r.Resolve(tree, dto.ResolveFeeReq{
		MerchantID: 1, Brand: "VISA", ProductType: "CREDIT", Installments: 9, CardPresent: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Mdr.String() != "3.9" {
		t.Errorf("mdr = %s, want 3.9", got.Mdr)
	}
}

func TestResolveDeterminism(t *testing.T) {
	r := NewResolver(nil)
	tree := testTree()
	in := dto.ResolveFeeReq{MerchantID: 1, Brand: "VISA", ProductType: "CREDIT", Installments: 3, CardPresent: true}
	a, err := r.Resolve(tree, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := r.Resolve(tree, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.Mdr.Equal(b.Mdr) || !a.FlatFee.Equal(b.FlatFee) || !a.AnticipationRate.Equal(b.AnticipationRate) {
		t.Errorf("resolution not deterministic: %+v vs %+v", a, b)
	}
}

func TestResolveNoFeeCredit(t *testing.T) {
	r := NewResolver(nil)
	tree := testTree()
	tree.Brands[0].ProductTypes[0].Credits = append(tree.Brands[0].ProductTypes[0].Credits, feemodel.FeeCredit{
		ID: 1001, IDFeeBrandProductType: 100, InstallmentNumber: 6, NoFee: true, Active: true,
	})
	got, err := r.Resolve(tree, dto.ResolveFeeReq{
		MerchantID: 1, Brand: "VISA", ProductType: "CREDIT", Installments: 6, CardPresent: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.NoFee || !got.Mdr.IsZero() || !got.FlatFee.IsZero() {
		t.Errorf("no-fee credit not honored: %+v", got)
	}
}
