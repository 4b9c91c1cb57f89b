package reports

import (
	"context"

	domain "github.com/ClinicaVitaBR/crm-followup/internal/domain/followup"
	"github.com/ClinicaVitaBR/crm-followup/internal/dto"
)

type GetStatistics struct {
	repo domain.Repository
}

func NewGetStatistics(repo domain.Repository) *GetStatistics {
	return &GetStatistics{repo: repo}
}

func (uc *GetStatistics) Execute(ctx context.Context) (*dto.ActionStatsDTO, error) {
	return uc.repo.ActionStatistics(ctx)
}
