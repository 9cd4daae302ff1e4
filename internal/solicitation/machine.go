package solicitation

import (
	"errors"
	"fmt"

	feemodel "iso-settlement-api/internal/model/fee"
)

// ErrInvalidTransition rejects out-of-order lifecycle calls. No partial
// mutation happens on a rejected call.
var ErrInvalidTransition = errors.New("invalid transition")

// transitions is the whole lifecycle. CANCELED is reachable from any
// non-terminal state through Reject; COMPLETED and CANCELED accept nothing.
var transitions = map[string]map[string]bool{
	feemodel.SolicitationPending: {
		feemodel.SolicitationSendDocuments: true,
		feemodel.SolicitationApproved:      true,
		feemodel.SolicitationCanceled:      true,
	},
	feemodel.SolicitationSendDocuments: {
		feemodel.SolicitationPending:  true, // update() re-enters review
		feemodel.SolicitationCanceled: true,
	},
	feemodel.SolicitationApproved: {
		feemodel.SolicitationCompleted: true,
		feemodel.SolicitationCanceled:  true,
	},
	feemodel.SolicitationCompleted: {},
	feemodel.SolicitationCanceled:  {},
}

// Terminal reports whether a status accepts no further transitions.
func Terminal(status string) bool {
	return status == feemodel.SolicitationCompleted || status == feemodel.SolicitationCanceled
}

// CheckTransition validates a status move against the lifecycle table.
func CheckTransition(from, to string) error {
	allowed, known := transitions[from]
	if !known {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, from)
	}
	if !allowed[to] {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}
