package action

import (
	"time"

	"github.com/ClinicaVitaBR/crm-followup/internal/httperr"
	"github.com/ClinicaVitaBR/crm-followup/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Record applies a result to the action after checking the transition.
func Record(ap *models.Action, next Result) error {
	if err := CanRecord(Result(ap.Result), next); err != nil {
		return err
	}

	ap.Result = string(next)
	return nil
}

// MaxFutureOccurrence bounds how far ahead an action may be stamped.
const MaxFutureOccurrence = time.Hour

func ValidateOccurrence(occurredAt, now time.Time) error {
	if occurredAt.After(now.Add(MaxFutureOccurrence)) {
		return httperr.ErrValidation("occurred_at", "occurrence_too_far_ahead")
	}
	return nil
}
