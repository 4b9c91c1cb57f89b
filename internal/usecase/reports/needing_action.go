package reports

import (
	"context"

	domain "github.com/ClinicaVitaBR/crm-followup/internal/domain/followup"
	"github.com/ClinicaVitaBR/crm-followup/internal/dto"
	"github.com/ClinicaVitaBR/crm-followup/internal/timezone"
)

type ListClientsNeedingAction struct {
	repo domain.Repository
	tz   string
}

func NewListClientsNeedingAction(repo domain.Repository, tz string) *ListClientsNeedingAction {
	return &ListClientsNeedingAction{repo: repo, tz: tz}
}

func (uc *ListClientsNeedingAction) Execute(ctx context.Context) ([]dto.ClientNeedingActionDTO, error) {
	return uc.repo.ClientsNeedingAction(ctx, timezone.NowIn(uc.tz))
}
