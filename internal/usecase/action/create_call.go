package action

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ClinicaVitaBR/crm-followup/internal/domain/action"
	domain "github.com/ClinicaVitaBR/crm-followup/internal/domain/followup"
	"github.com/ClinicaVitaBR/crm-followup/internal/httperr"
	"github.com/ClinicaVitaBR/crm-followup/internal/models"
	"github.com/ClinicaVitaBR/crm-followup/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateCallInput struct {
	ClientID   uint
	Content    string
	OccurredAt *time.Time
}

// ======================================================
// USE CASE
// ======================================================

// CreateCall registers a manual call task from the task list.
type CreateCall struct {
	repo domain.Repository
	tz   string
}

func NewCreateCall(repo domain.Repository, tz string) *CreateCall {
	return &CreateCall{repo: repo, tz: tz}
}

func (uc *CreateCall) Execute(
	ctx context.Context,
	in CreateCallInput,
) (*models.Action, error) {

	if _, err := uc.repo.GetClientByID(ctx, in.ClientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("client_not_found")
		}
		return nil, err
	}

	now := timezone.NowIn(uc.tz)

	occurred := now
	if in.OccurredAt != nil {
		occurred = *in.OccurredAt
	}

	if err := action.ValidateOccurrence(occurred, now); err != nil {
		return nil, err
	}

	ap := &models.Action{
		ClientID:   in.ClientID,
		Type:       action.TypeCall,
		Content:    in.Content,
		OccurredAt: occurred,
		Result:     string(action.InitialResult()),
	}

	if err := uc.repo.CreateAction(ctx, ap); err != nil {
		return nil, err
	}

	return ap, nil
}
