package action

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/ClinicaVitaBR/crm-followup/internal/domain/action"
	domain "github.com/ClinicaVitaBR/crm-followup/internal/domain/followup"
	"github.com/ClinicaVitaBR/crm-followup/internal/httperr"
	"github.com/ClinicaVitaBR/crm-followup/internal/models"
)

type RecordResult struct {
	repo domain.Repository
}

func NewRecordResult(repo domain.Repository) *RecordResult {
	return &RecordResult{repo: repo}
}

func (uc *RecordResult) Execute(
	ctx context.Context,
	actionID uint,
	newResult action.Result,
) (*models.Action, error) {

	ap, err := uc.repo.GetAction(ctx, actionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("action_not_found")
		}
		return nil, err
	}

	prev := action.Result(ap.Result)

	if err := action.Record(ap, newResult); err != nil {
		return nil, err
	}

	if err := uc.repo.FinishAction(ctx, ap, prev); err != nil {
		return nil, err
	}

	// Advisory only: a purchase logged against a message looks odd but is
	// not rejected.
	if newResult == action.ResultPurchased && ap.Type != action.TypeCall {
		log.Printf("advisory: purchased recorded on %s action %d", ap.Type, ap.ID)
	}

	return ap, nil
}
