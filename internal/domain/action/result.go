package action

import "github.com/ClinicaVitaBR/crm-followup/internal/httperr"

// ===============================
// Action Result
// ===============================

type Result string

const (
	ResultPending    Result = "pending"
	ResultYes        Result = "yes"
	ResultNo         Result = "no"
	ResultNoResponse Result = "no_response"
	ResultScheduled  Result = "scheduled"
	ResultPurchased  Result = "purchased"
)

const (
	TypeMessage = "message"
	TypeCall    = "call"
)

func InitialResult() Result {
	return ResultPending
}

func IsValidResult(r Result) bool {
	switch r {
	case ResultPending, ResultYes, ResultNo, ResultNoResponse, ResultScheduled, ResultPurchased:
		return true
	}
	return false
}

// ===============================
// Validations
// ===============================

// Committed outcomes never go back to pending.
func isCommitted(r Result) bool {
	return r == ResultPurchased || r == ResultScheduled
}

// CanRecord decides whether current → next is a legal transition.
func CanRecord(current, next Result) error {
	if !IsValidResult(next) {
		return httperr.ErrBusiness("invalid_result")
	}
	if isCommitted(current) && next == ResultPending {
		return httperr.ErrBusiness("illegal_transition")
	}
	return nil
}
