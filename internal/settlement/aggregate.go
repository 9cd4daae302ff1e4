package settlement

import (
	"iso-settlement-api/internal/dto"
	settlemodel "iso-settlement-api/internal/model/settlement"
	"iso-settlement-api/internal/utils"
)

// Entry is one feed transaction paired with its resolved pricing. Fee
// resolution happens before Apply so the core stays a pure function of
// (current state, batch).
type Entry struct {
	Tx  dto.Transaction
	Fee dto.ResolvedFee
}

// CycleState is the in-memory image of one settlement cycle: the
// customer-level totals and the per-merchant breakdown.
type CycleState struct {
	Settlement settlemodel.Totals
	Merchants  map[uint64]settlemodel.Totals
}

// Apply folds a batch of entries into the cycle state and returns the new
// state. Deduplication happened before this point; every entry counts once.
// The settlement totals stay the exact sum of the merchant totals because
// both scopes receive the identical contribution.
func Apply(state CycleState, entries []Entry) CycleState {
	out := CycleState{
		Settlement: state.Settlement,
		Merchants:  make(map[uint64]settlemodel.Totals, len(state.Merchants)),
	}
	for k, v := range state.Merchants {
		out.Merchants[k] = v
	}

	for _, e := range entries {
		delta := contribution(e)
		out.Settlement = addTotals(out.Settlement, delta)
		out.Merchants[e.Tx.MerchantID] = addTotals(out.Merchants[e.Tx.MerchantID], delta)
	}

	out.Settlement = recomputeOutstanding(out.Settlement)
	for k, v := range out.Merchants {
		out.Merchants[k] = recomputeOutstanding(v)
	}
	return out
}

// contribution computes the counter delta for one transaction. Every leg is
// stored rounded to the cent; RestRoundingAmount accumulates rounded minus
// raw across the legs, so a sale always allocates its batch amount exactly
// and nothing is silently dropped.
func contribution(e Entry) settlemodel.Totals {
	var d settlemodel.Totals
	d.TransactionCount = 1
	amt := e.Tx.Amount

	switch e.Tx.Type {
	case dto.TxAnticipation:
		raw := utils.Percent(amt, e.Fee.AnticipationRate)
		fee, _ := utils.RoundAmount(raw)
		d.AnticipationAmount = amt
		d.AnticipationFeeAmount = fee
		d.RestRoundingAmount = fee.Sub(raw)
		return d
	case dto.TxRestitution:
		// charged back to the merchant, so it rides the debit leg
		d.RestitutionAmount = amt
		d.DebitAdjustmentAmount = amt
		return d
	case dto.TxCreditAdjustment:
		d.CreditAdjustmentAmount = amt
		return d
	case dto.TxDebitAdjustment:
		d.DebitAdjustmentAmount = amt
		return d
	}

	// SALE
	if e.Tx.IsPix {
		feeRaw := utils.Percent(amt, e.Fee.Mdr)
		if e.Fee.CeilingFee.IsPositive() {
			feeRaw = utils.MinDecimal(feeRaw, e.Fee.CeilingFee)
		}
		fee, _ := utils.RoundAmount(feeRaw)
		net, _ := utils.RoundAmount(amt.Sub(feeRaw))
		cost := e.Fee.MinimumCostFee

		d.BatchAmount = amt
		d.NetSettlementAmount = net
		d.TotalFeeAmount = fee
		d.TotalCostAmount = cost
		d.PixAmount = amt
		d.PixNetAmount = net
		d.PixFeeAmount = fee
		d.PixCostAmount = cost
		d.RestRoundingAmount = net.Add(fee).Sub(amt)
		return d
	}

	feeRaw := utils.Percent(amt, e.Fee.Mdr).Add(e.Fee.FlatFee)
	antRaw := utils.Percent(amt, e.Fee.AnticipationRate)
	fee, _ := utils.RoundAmount(feeRaw)
	antFee, _ := utils.RoundAmount(antRaw)
	net, _ := utils.RoundAmount(amt.Sub(feeRaw).Sub(antRaw))

	d.BatchAmount = amt
	d.NetSettlementAmount = net
	d.TotalFeeAmount = fee
	if e.Fee.AnticipationRate.IsPositive() {
		d.AnticipationAmount = amt
		d.AnticipationFeeAmount = antFee
	}
	d.RestRoundingAmount = net.Add(fee).Add(antFee).Sub(amt)
	return d
}

func addTotals(a, b settlemodel.Totals) settlemodel.Totals {
	return settlemodel.Totals{
		BatchAmount:            a.BatchAmount.Add(b.BatchAmount),
		NetSettlementAmount:    a.NetSettlementAmount.Add(b.NetSettlementAmount),
		TotalFeeAmount:         a.TotalFeeAmount.Add(b.TotalFeeAmount),
		TotalCostAmount:        a.TotalCostAmount.Add(b.TotalCostAmount),
		PixAmount:              a.PixAmount.Add(b.PixAmount),
		PixNetAmount:           a.PixNetAmount.Add(b.PixNetAmount),
		PixFeeAmount:           a.PixFeeAmount.Add(b.PixFeeAmount),
		PixCostAmount:          a.PixCostAmount.Add(b.PixCostAmount),
		AnticipationAmount:     a.AnticipationAmount.Add(b.AnticipationAmount),
		AnticipationFeeAmount:  a.AnticipationFeeAmount.Add(b.AnticipationFeeAmount),
		RestitutionAmount:      a.RestitutionAmount.Add(b.RestitutionAmount),
		CreditAdjustmentAmount: a.CreditAdjustmentAmount.Add(b.CreditAdjustmentAmount),
		DebitAdjustmentAmount:  a.DebitAdjustmentAmount.Add(b.DebitAdjustmentAmount),
		OutstandingAmount:      a.OutstandingAmount, // recomputed after the fold
		RestRoundingAmount:     a.RestRoundingAmount.Add(b.RestRoundingAmount),
		TransactionCount:       a.TransactionCount + b.TransactionCount,
	}
}

// recomputeOutstanding derives the outstanding balance from the other
// counters, which is what makes the conservation identity hold by
// construction:
//
//	outstanding = batch - net - totalFee + creditAdj - debitAdj
//	              - anticipationFee + restRounding
func recomputeOutstanding(t settlemodel.Totals) settlemodel.Totals {
	t.OutstandingAmount = t.BatchAmount.
		Sub(t.NetSettlementAmount).
		Sub(t.TotalFeeAmount).
		Add(t.CreditAdjustmentAmount).
		Sub(t.DebitAdjustmentAmount).
		Sub(t.AnticipationFeeAmount).
		Add(t.RestRoundingAmount)
	return t
}

// SumMerchants re-derives customer-level totals from the merchant rows.
// Used by reconciliation checks; must always equal state.Settlement.
func SumMerchants(state CycleState) settlemodel.Totals {
	var sum settlemodel.Totals
	for _, v := range state.Merchants {
		sum = addTotals(sum, v)
	}
	return recomputeOutstanding(sum)
}
