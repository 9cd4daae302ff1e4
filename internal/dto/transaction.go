package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction kinds on the feed. SALE moves the card/PIX legs; the others
// move their dedicated counters.
const (
	TxSale             = "SALE"
	TxAnticipation     = "ANTICIPATION"
	TxRestitution      = "RESTITUTION"
	TxCreditAdjustment = "CREDIT_ADJUSTMENT"
	TxDebitAdjustment  = "DEBIT_ADJUSTMENT"
)

// Transaction is one record off the at-least-once transaction feed. Slug is
// the idempotency key: replaying the same slug never double-counts.
type Transaction struct {
	Slug         string          `json:"slug" binding:"required"`
	MerchantID   uint64          `json:"merchantId" binding:"required"`
	Type         string          `json:"type"` // defaults to SALE
	Brand        string          `json:"brand"`
	ProductType  string          `json:"productType"`
	Installments int             `json:"installments"`
	Amount       decimal.Decimal `json:"amount"`
	CardPresent  bool            `json:"cardPresent"`
	IsPix        bool            `json:"isPix"`
}

// JobRun identifies the aggregation invocation. Passed by value into the
// aggregator; the engine never reads ambient job state.
type JobRun struct {
	RunID          string    `json:"runId"`
	IDCustomer     uint64    `json:"idCustomer"`
	SettlementDate time.Time `json:"settlementDate"`
	StartedAt      time.Time `json:"startedAt"`
}

// RejectedTransaction reports a transaction that could not be aggregated.
// Carries the slug so the feed can be replayed after the fee tree is fixed.
type RejectedTransaction struct {
	Slug       string `json:"slug"`
	MerchantID uint64 `json:"merchantId"`
	Code       int    `json:"code"`
	Reason     string `json:"reason"`
}
