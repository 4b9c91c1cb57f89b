package repository

import (
	"context"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/ClinicaVitaBR/crm-followup/internal/domain/action"
	domain "github.com/ClinicaVitaBR/crm-followup/internal/domain/followup"
	"github.com/ClinicaVitaBR/crm-followup/internal/dto"
	"github.com/ClinicaVitaBR/crm-followup/internal/httperr"
	"github.com/ClinicaVitaBR/crm-followup/internal/models"
)

type FollowUpGormRepository struct {
	db *gorm.DB
}

func NewFollowUpGormRepository(db *gorm.DB) *FollowUpGormRepository {
	return &FollowUpGormRepository{db: db}
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *FollowUpGormRepository) CreateClient(
	ctx context.Context,
	client *models.Client,
) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *FollowUpGormRepository) GetClientByID(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *FollowUpGormRepository) ListClients(
	ctx context.Context,
	query string,
) ([]models.Client, error) {

	q := r.db.WithContext(ctx)

	query = strings.ToLower(strings.TrimSpace(query))
	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("created_at DESC").
		Find(&clients).Error; err != nil {
		return nil, err
	}

	return clients, nil
}

// --------------------------------------------------
// Scheduling scan
// --------------------------------------------------

func (r *FollowUpGormRepository) DueClients(
	ctx context.Context,
	now time.Time,
) ([]models.Client, error) {

	var clients []models.Client
	if err := r.db.WithContext(ctx).
		Where(
			`(next_action IS NOT NULL AND next_action <= ?)
			 OR (next_action IS NULL AND first_purchase_date IS NOT NULL
			     AND NOT EXISTS (
			         SELECT 1 FROM actions
			         WHERE actions.client_id = clients.id
			           AND actions.type = 'message'))`,
			now,
		).
		Order("id ASC").
		Find(&clients).Error; err != nil {
		return nil, err
	}

	return clients, nil
}

func (r *FollowUpGormRepository) CountFollowUps(
	ctx context.Context,
	clientID uint,
) (int, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Action{}).
		Where("client_id = ? AND type = ?", clientID, action.TypeMessage).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return int(count), nil
}

func (r *FollowUpGormRepository) ScheduleFollowUp(
	ctx context.Context,
	ap *models.Action,
	now time.Time,
	next *time.Time,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var client models.Client
		if err := tx.First(&client, ap.ClientID).Error; err != nil {
			return err
		}

		// Guarded by committed state: an overlapping run that already
		// advanced next_action makes this a no-op rejection instead of a
		// duplicate action.
		res := tx.Model(&client).
			Where("next_action IS NULL OR next_action <= ?", now).
			Update("next_action", next)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness("already_scheduled")
		}

		return tx.Create(ap).Error
	})
}

func (r *FollowUpGormRepository) SetNextAction(
	ctx context.Context,
	clientID uint,
	now time.Time,
	next *time.Time,
) error {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, clientID).Error; err != nil {
		return err
	}

	res := r.db.WithContext(ctx).
		Model(&client).
		Where("next_action IS NULL OR next_action <= ?", now).
		Update("next_action", next)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("already_scheduled")
	}

	return nil
}

// --------------------------------------------------
// Action (result recording)
// --------------------------------------------------

func (r *FollowUpGormRepository) GetAction(
	ctx context.Context,
	id uint,
) (*models.Action, error) {

	var ap models.Action
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *FollowUpGormRepository) CreateAction(
	ctx context.Context,
	ap *models.Action,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *FollowUpGormRepository) FinishAction(
	ctx context.Context,
	ap *models.Action,
	prev action.Result,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// Compare-and-swap on the result read by the caller. Two
		// operators racing on the same action: one wins, the other sees
		// zero rows and is rejected with the row untouched.
		res := tx.Model(ap).
			Where("result = ?", string(prev)).
			Update("result", ap.Result)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness("result_conflict")
		}

		if ap.Result != string(action.ResultPending) {
			var client models.Client
			if err := tx.First(&client, ap.ClientID).Error; err != nil {
				return err
			}
			if err := tx.Model(&client).
				Update("last_action", ap.OccurredAt).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// --------------------------------------------------
// Views
// --------------------------------------------------

func (r *FollowUpGormRepository) PendingActions(
	ctx context.Context,
) ([]dto.PendingActionDTO, error) {

	var items []dto.PendingActionDTO
	if err := r.db.WithContext(ctx).
		Table("actions").
		Select(`actions.id,
			actions.client_id,
			clients.name AS client_name,
			clients.phone AS client_phone,
			actions.type,
			actions.content,
			actions.occurred_at`).
		Joins("JOIN clients ON clients.id = actions.client_id").
		Where("actions.result = ?", string(action.ResultPending)).
		Order("actions.occurred_at ASC").
		Scan(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

func (r *FollowUpGormRepository) ActionStatistics(
	ctx context.Context,
) (*dto.ActionStatsDTO, error) {

	var stats dto.ActionStatsDTO
	if err := r.db.WithContext(ctx).
		Model(&models.Action{}).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN result = 'pending' THEN 1 ELSE 0 END), 0) AS pending,
			COALESCE(SUM(CASE WHEN result = 'yes' THEN 1 ELSE 0 END), 0) AS yes,
			COALESCE(SUM(CASE WHEN result = 'no' THEN 1 ELSE 0 END), 0) AS no,
			COALESCE(SUM(CASE WHEN result = 'no_response' THEN 1 ELSE 0 END), 0) AS no_response,
			COALESCE(SUM(CASE WHEN result = 'scheduled' THEN 1 ELSE 0 END), 0) AS scheduled,
			COALESCE(SUM(CASE WHEN result = 'purchased' THEN 1 ELSE 0 END), 0) AS purchased,
			COALESCE(SUM(CASE WHEN type = 'message' THEN 1 ELSE 0 END), 0) AS messages,
			COALESCE(SUM(CASE WHEN type = 'call' THEN 1 ELSE 0 END), 0) AS calls`).
		Scan(&stats).Error; err != nil {
		return nil, err
	}

	if stats.Total > 0 {
		rate := float64(stats.Purchased) / float64(stats.Total) * 100
		stats.ConversionRate = math.Round(rate*100) / 100
	}

	return &stats, nil
}

func (r *FollowUpGormRepository) ClientsNeedingAction(
	ctx context.Context,
	now time.Time,
) ([]dto.ClientNeedingActionDTO, error) {

	var clients []models.Client
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&clients).Error; err != nil {
		return nil, err
	}

	var withCalls []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Action{}).
		Distinct("client_id").
		Where("type = ? AND result = ?", action.TypeCall, string(action.ResultPending)).
		Pluck("client_id", &withCalls).Error; err != nil {
		return nil, err
	}

	pendingCall := make(map[uint]bool, len(withCalls))
	for _, id := range withCalls {
		pendingCall[id] = true
	}

	items := make([]dto.ClientNeedingActionDTO, 0, len(clients))
	for _, cl := range clients {
		items = append(items, dto.ClientNeedingActionDTO{
			ClientID:       cl.ID,
			Name:           cl.Name,
			Phone:          cl.Phone,
			NextAction:     cl.NextAction,
			DueToday:       cl.NextAction != nil && !cl.NextAction.After(now),
			HasPendingCall: pendingCall[cl.ID],
		})
	}

	return items, nil
}

// Compile-time check
var _ domain.Repository = (*FollowUpGormRepository)(nil)
