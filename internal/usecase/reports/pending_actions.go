package reports

import (
	"context"

	domain "github.com/ClinicaVitaBR/crm-followup/internal/domain/followup"
	"github.com/ClinicaVitaBR/crm-followup/internal/dto"
)

// ListPendingActions backs the task list: every action still waiting for a
// result, earliest due first.
type ListPendingActions struct {
	repo domain.Repository
}

func NewListPendingActions(repo domain.Repository) *ListPendingActions {
	return &ListPendingActions{repo: repo}
}

func (uc *ListPendingActions) Execute(ctx context.Context) ([]dto.PendingActionDTO, error) {
	return uc.repo.PendingActions(ctx)
}
