package action

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ClinicaVitaBR/crm-followup/internal/domain/action"
	"github.com/ClinicaVitaBR/crm-followup/internal/httperr"
	"github.com/ClinicaVitaBR/crm-followup/internal/infra/repository"
	"github.com/ClinicaVitaBR/crm-followup/internal/models"
)

func TestCreateCall_DefaultsOccurrenceToNow(t *testing.T) {
	_, db := newResultTest(t)
	uc := NewCreateCall(repository.NewFollowUpGormRepository(db), "UTC")

	cl := models.Client{Name: "Maria", Phone: "11987654321"}
	require.NoError(t, db.Create(&cl).Error)

	ap, err := uc.Execute(context.Background(), CreateCallInput{
		ClientID: cl.ID,
		Content:  "ligar para confirmar retorno",
	})
	require.NoError(t, err)

	assert.Equal(t, action.TypeCall, ap.Type)
	assert.Equal(t, "pending", ap.Result)
	assert.WithinDuration(t, time.Now().UTC(), ap.OccurredAt, time.Minute)
}

func TestCreateCall_UnknownClient(t *testing.T) {
	_, db := newResultTest(t)
	uc := NewCreateCall(repository.NewFollowUpGormRepository(db), "UTC")

	_, err := uc.Execute(context.Background(), CreateCallInput{ClientID: 42})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "client_not_found"))
}

func TestCreateCall_RejectsFarFutureOccurrence(t *testing.T) {
	_, db := newResultTest(t)
	uc := NewCreateCall(repository.NewFollowUpGormRepository(db), "UTC")

	cl := models.Client{Name: "Maria", Phone: "11987654321"}
	require.NoError(t, db.Create(&cl).Error)

	future := time.Now().UTC().Add(2 * time.Hour)
	_, err := uc.Execute(context.Background(), CreateCallInput{
		ClientID:   cl.ID,
		OccurredAt: &future,
	})
	require.Error(t, err)

	var ve httperr.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "occurred_at", ve.Field)
}
