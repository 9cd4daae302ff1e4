package settlement

import (
	"testing"

	"github.com/shopspring/decimal"

	"iso-settlement-api/internal/dto"
	settlemodel "iso-settlement-api/internal/model/settlement"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleEntries() []Entry {
	return []Entry{
		{
			Tx:  dto.Transaction{Slug: "t1", MerchantID: 1, Type: dto.TxSale, Amount: dec("100.00"), CardPresent: true},
			Fee: dto.ResolvedFee{Mdr: dec("2.467"), FlatFee: dec("0.30")},
		},
		{
			Tx:  dto.Transaction{Slug: "t2", MerchantID: 1, Type: dto.TxSale, Amount: dec("1000.00"), IsPix: true},
			Fee: dto.ResolvedFee{Mdr: dec("0.99"), CeilingFee: dec("5.00"), MinimumCostFee: dec("0.05")},
		},
		{
			Tx:  dto.Transaction{Slug: "t3", MerchantID: 2, Type: dto.TxSale, Amount: dec("250.00"), CardPresent: true},
			Fee: dto.ResolvedFee{Mdr: dec("2.00"), AnticipationRate: dec("1.333")},
		},
		{
			Tx:  dto.Transaction{Slug: "t4", MerchantID: 2, Type: dto.TxAnticipation, Amount: dec("500.00")},
			Fee: dto.ResolvedFee{AnticipationRate: dec("1.90")},
		},
		{
			Tx: dto.Transaction{Slug: "t5", MerchantID: 1, Type: dto.TxCreditAdjustment, Amount: dec("12.34")},
		},
		{
			Tx: dto.Transaction{Slug: "t6", MerchantID: 2, Type: dto.TxDebitAdjustment, Amount: dec("3.21")},
		},
		{
			Tx: dto.Transaction{Slug: "t7", MerchantID: 1, Type: dto.TxRestitution, Amount: dec("40.00")},
		},
	}
}

func emptyState() CycleState {
	return CycleState{Merchants: map[uint64]settlemodel.Totals{}}
}

func checkConservation(t *testing.T, name string, tot settlemodel.Totals) {
	t.Helper()
	want := tot.BatchAmount.
		Sub(tot.NetSettlementAmount).
		Sub(tot.TotalFeeAmount).
		Add(tot.CreditAdjustmentAmount).
		Sub(tot.DebitAdjustmentAmount).
		Sub(tot.AnticipationFeeAmount).
		Add(tot.RestRoundingAmount)
	if !tot.OutstandingAmount.Equal(want) {
		t.Errorf("%s: outstanding = %s, conservation says %s", name, tot.OutstandingAmount, want)
	}
}

func TestApplyConservation(t *testing.T) {
	state := Apply(emptyState(), sampleEntries())
	checkConservation(t, "settlement", state.Settlement)
	for id, tot := range state.Merchants {
		checkConservation(t, "merchant", tot)
		_ = id
	}
}

func TestApplyAggregationConsistency(t *testing.T) {
	state := Apply(emptyState(), sampleEntries())
	sum := SumMerchants(state)

	pairs := []struct {
		name string
		a, b decimal.Decimal
	}{
		{"batch", state.Settlement.BatchAmount, sum.BatchAmount},
		{"net", state.Settlement.NetSettlementAmount, sum.NetSettlementAmount},
		{"fee", state.Settlement.TotalFeeAmount, sum.TotalFeeAmount},
		{"cost", state.Settlement.TotalCostAmount, sum.TotalCostAmount},
		{"pix", state.Settlement.PixAmount, sum.PixAmount},
		{"pixNet", state.Settlement.PixNetAmount, sum.PixNetAmount},
		{"pixFee", state.Settlement.PixFeeAmount, sum.PixFeeAmount},
		{"pixCost", state.Settlement.PixCostAmount, sum.PixCostAmount},
		{"anticipation", state.Settlement.AnticipationAmount, sum.AnticipationAmount},
		{"anticipationFee", state.Settlement.AnticipationFeeAmount, sum.AnticipationFeeAmount},
		{"restitution", state.Settlement.RestitutionAmount, sum.RestitutionAmount},
		{"creditAdj", state.Settlement.CreditAdjustmentAmount, sum.CreditAdjustmentAmount},
		{"debitAdj", state.Settlement.DebitAdjustmentAmount, sum.DebitAdjustmentAmount},
		{"outstanding", state.Settlement.OutstandingAmount, sum.OutstandingAmount},
		{"rounding", state.Settlement.RestRoundingAmount, sum.RestRoundingAmount},
	}
	for _, p := range pairs {
		if !p.a.Equal(p.b) {
			t.Errorf("%s: settlement %s != merchant sum %s", p.name, p.a, p.b)
		}
	}
	if state.Settlement.TransactionCount != sum.TransactionCount {
		t.Errorf("count: %d != %d", state.Settlement.TransactionCount, sum.TransactionCount)
	}
}

func TestApplyEmptyBatchIsIdentity(t *testing.T) {
	state := Apply(emptyState(), sampleEntries())
	again := Apply(state, nil)
	if !again.Settlement.BatchAmount.Equal(state.Settlement.BatchAmount) ||
		!again.Settlement.OutstandingAmount.Equal(state.Settlement.OutstandingAmount) ||
		again.Settlement.TransactionCount != state.Settlement.TransactionCount {
		t.Errorf("empty batch changed state: %+v vs %+v", again.Settlement, state.Settlement)
	}
}

func TestApplyCardSaleMath(t *testing.T) {
	state := Apply(emptyState(), sampleEntries()[:1])
	tot := state.Settlement

	// fee: 100.00 * 2.467% + 0.30 = 2.767 -> 2.77; net: 97.233 -> 97.23
	if tot.TotalFeeAmount.String() != "2.77" {
		t.Errorf("fee = %s, want 2.77", tot.TotalFeeAmount)
	}
	if tot.NetSettlementAmount.String() != "97.23" {
		t.Errorf("net = %s, want 97.23", tot.NetSettlementAmount)
	}
	// fee rounds up by what net rounds down, so the residue cancels
	if !tot.RestRoundingAmount.IsZero() {
		t.Errorf("rounding = %s, want 0", tot.RestRoundingAmount)
	}
	// batch = net + fee - rounding exactly, and a fully allocated sale
	// leaves nothing outstanding
	back := tot.NetSettlementAmount.Add(tot.TotalFeeAmount).Sub(tot.RestRoundingAmount)
	if !back.Equal(tot.BatchAmount) {
		t.Errorf("net+fee-rounding = %s, want %s", back, tot.BatchAmount)
	}
	if !tot.OutstandingAmount.IsZero() {
		t.Errorf("outstanding = %s, want 0", tot.OutstandingAmount)
	}
}

func TestApplyRoundingResidueCarried(t *testing.T) {
	// 100.00 * 2.675% = 2.675 -> fee 2.68; net 97.325 -> 97.33: both legs
	// round up, the extra cent lands in the rounding counter
	entries := []Entry{{
		Tx:  dto.Transaction{Slug: "r1", MerchantID: 3, Type: dto.TxSale, Amount: dec("100.00"), CardPresent: true},
		Fee: dto.ResolvedFee{Mdr: dec("2.675")},
	}}
	state := Apply(emptyState(), entries)
	tot := state.Settlement

	if tot.TotalFeeAmount.String() != "2.68" {
		t.Errorf("fee = %s, want 2.68", tot.TotalFeeAmount)
	}
	if tot.NetSettlementAmount.String() != "97.33" {
		t.Errorf("net = %s, want 97.33", tot.NetSettlementAmount)
	}
	if tot.RestRoundingAmount.String() != "0.01" {
		t.Errorf("rounding = %s, want 0.01", tot.RestRoundingAmount)
	}
	if !tot.OutstandingAmount.IsZero() {
		t.Errorf("outstanding = %s, want 0", tot.OutstandingAmount)
	}
	checkConservation(t, "residue sale", tot)
}

func TestApplyPixCeiling(t *testing.T) {
	state := Apply(emptyState(), sampleEntries()[1:2])
	tot := state.Settlement

	// 1000 * 0.99% = 9.90, capped by the 5.00 ceiling
	if tot.PixFeeAmount.String() != "5" {
		t.Errorf("pix fee = %s, want 5", tot.PixFeeAmount)
	}
	if tot.PixNetAmount.String() != "995" {
		t.Errorf("pix net = %s, want 995", tot.PixNetAmount)
	}
	if tot.PixCostAmount.String() != "0.05" {
		t.Errorf("pix cost = %s, want 0.05", tot.PixCostAmount)
	}
	if !tot.PixAmount.Equal(tot.BatchAmount) {
		t.Errorf("pix leg should equal batch for a pix-only batch")
	}
}

func TestApplyCompulsoryAnticipationOnSale(t *testing.T) {
	state := Apply(emptyState(), sampleEntries()[2:3])
	tot := state.Settlement

	// fee 250*2% = 5.00; anticipation 250*1.333% = 3.3325 -> 3.33 rem 0.0025
	if tot.TotalFeeAmount.String() != "5" {
		t.Errorf("fee = %s, want 5", tot.TotalFeeAmount)
	}
	if tot.AnticipationFeeAmount.String() != "3.33" {
		t.Errorf("anticipation fee = %s, want 3.33", tot.AnticipationFeeAmount)
	}
	if tot.AnticipationAmount.String() != "250" {
		t.Errorf("anticipation principal = %s, want 250", tot.AnticipationAmount)
	}
	if tot.NetSettlementAmount.String() != "241.67" {
		t.Errorf("net = %s, want 241.67", tot.NetSettlementAmount)
	}
	checkConservation(t, "sale+anticipation", tot)
}

func TestApplyAdjustmentsMoveOutstanding(t *testing.T) {
	entries := []Entry{
		{Tx: dto.Transaction{Slug: "c", MerchantID: 9, Type: dto.TxCreditAdjustment, Amount: dec("10.00")}},
		{Tx: dto.Transaction{Slug: "d", MerchantID: 9, Type: dto.TxDebitAdjustment, Amount: dec("4.00")}},
	}
	state := Apply(emptyState(), entries)
	if state.Settlement.OutstandingAmount.String() != "6" {
		t.Errorf("outstanding = %s, want 6", state.Settlement.OutstandingAmount)
	}
}

func TestApplyIncremental(t *testing.T) {
	// applying in two steps equals applying at once
	all := sampleEntries()
	oneShot := Apply(emptyState(), all)
	stepped := Apply(Apply(emptyState(), all[:3]), all[3:])

	if !oneShot.Settlement.OutstandingAmount.Equal(stepped.Settlement.OutstandingAmount) ||
		!oneShot.Settlement.BatchAmount.Equal(stepped.Settlement.BatchAmount) ||
		!oneShot.Settlement.RestRoundingAmount.Equal(stepped.Settlement.RestRoundingAmount) {
		t.Errorf("incremental apply diverged: %+v vs %+v", oneShot.Settlement, stepped.Settlement)
	}
}
