package domain

// transitionTable is the closed adjacency table of the escrow lifecycle.
// A transition is legal iff the target appears under the current status.
// Cancellation is reachable from every pre-payment state; disputes branch
// off payment_verified and inspection_period only.
var transitionTable = map[TransactionStatus][]TransactionStatus{
	StatusDraft:                {StatusPending, StatusCancelled},
	StatusPending:              {StatusContractGenerated, StatusCancelled},
	StatusContractGenerated:    {StatusContractSigned, StatusCancelled},
	StatusContractSigned:       {StatusAwaitingBankTransfer, StatusCancelled},
	StatusAwaitingBankTransfer: {StatusPaymentSubmitted, StatusCancelled},
	StatusPaymentSubmitted:     {StatusPaymentVerified, StatusAwaitingBankTransfer, StatusCancelled},
	StatusPaymentVerified:      {StatusInspectionPeriod, StatusDisputed, StatusCancelled},
	StatusInspectionPeriod:     {StatusCompleted, StatusDisputed, StatusCancelled},
	StatusDisputed:             {StatusCompleted, StatusCancelled},
	StatusCompleted:            {},
	StatusCancelled:            {},
}

func CanTransition(from, to TransactionStatus) bool {
	for _, allowed := range transitionTable[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func IsTerminal(status TransactionStatus) bool {
	targets, known := transitionTable[status]
	return known && len(targets) == 0
}

func IsKnownStatus(status TransactionStatus) bool {
	_, known := transitionTable[status]
	return known
}

func AllowedTargets(from TransactionStatus) []TransactionStatus {
	targets := transitionTable[from]
	out := make([]TransactionStatus, len(targets))
	copy(out, targets)
	return out
}
