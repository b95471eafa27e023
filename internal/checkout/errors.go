package checkout

import "errors"

var IllegalTransitionError = errors.New("illegal transition of checkout status")

const (
	outcomeCommitted = "committed"
	outcomeDeclined  = "declined"
	outcomeFailed    = "failed"
	outcomeRejected  = "rejected"
)
