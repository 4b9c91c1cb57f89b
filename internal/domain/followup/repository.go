package followup

import (
	"context"
	"time"

	"github.com/ClinicaVitaBR/crm-followup/internal/domain/action"
	"github.com/ClinicaVitaBR/crm-followup/internal/dto"
	"github.com/ClinicaVitaBR/crm-followup/internal/models"
)

type Repository interface {
	// -------- Client --------
	CreateClient(
		ctx context.Context,
		client *models.Client,
	) error

	GetClientByID(
		ctx context.Context,
		id uint,
	) (*models.Client, error)

	ListClients(
		ctx context.Context,
		query string,
	) ([]models.Client, error)

	// -------- Scheduling scan --------
	DueClients(
		ctx context.Context,
		now time.Time,
	) ([]models.Client, error)

	CountFollowUps(
		ctx context.Context,
		clientID uint,
	) (int, error)

	// ScheduleFollowUp creates the action and advances the client's
	// next_action in one transaction. The advance is guarded by the
	// client's committed next_action so an overlapping run cannot
	// double-book.
	ScheduleFollowUp(
		ctx context.Context,
		ap *models.Action,
		now time.Time,
		next *time.Time,
	) error

	// SetNextAction seeds next_action without creating an action
	// (initial scheduling of a client whose first offset is still ahead).
	SetNextAction(
		ctx context.Context,
		clientID uint,
		now time.Time,
		next *time.Time,
	) error

	// -------- Action (result recording) --------
	GetAction(
		ctx context.Context,
		id uint,
	) (*models.Action, error)

	CreateAction(
		ctx context.Context,
		ap *models.Action,
	) error

	// FinishAction persists the already-validated result transition. The
	// update is guarded by the previously read result, serializing
	// concurrent operators on the same row; when the new result is
	// non-pending the owning client's last_action is stamped in the same
	// transaction.
	FinishAction(
		ctx context.Context,
		ap *models.Action,
		prev action.Result,
	) error

	// -------- Views --------
	PendingActions(ctx context.Context) ([]dto.PendingActionDTO, error)

	ActionStatistics(ctx context.Context) (*dto.ActionStatsDTO, error)

	ClientsNeedingAction(
		ctx context.Context,
		now time.Time,
	) ([]dto.ClientNeedingActionDTO, error)
}
