package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ClinicaVitaBR/crm-followup/internal/audit"
	"github.com/ClinicaVitaBR/crm-followup/internal/httperr"
	"github.com/ClinicaVitaBR/crm-followup/internal/infra/repository"
	"github.com/ClinicaVitaBR/crm-followup/internal/models"
)

func newIntakeTest(t *testing.T) (*Intake, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Client{},
		&models.Action{},
		&models.AuditLog{},
	))
	require.NoError(t, audit.Register(db))

	return NewIntake(repository.NewFollowUpGormRepository(db), "UTC"), db
}

func validationCode(t *testing.T, err error) (field, code string) {
	t.Helper()

	var ve httperr.ValidationError
	require.True(t, errors.As(err, &ve))
	return ve.Field, ve.Code
}

func TestIntake_CreatesSanitizedClient(t *testing.T) {
	uc, db := newIntakeTest(t)

	amount := 350.0
	cl, err := uc.Execute(context.Background(), IntakeInput{
		Name:              "Maria Silva",
		Phone:             "5511987654321",
		Email:             "  Maria.Silva@Example.COM ",
		TaxID:             "123.456.789-01",
		FirstPurchaseDate: "2025-01-01",
		Procedure:         "limpeza de pele",
		AmountPaid:        &amount,
	})
	require.NoError(t, err)

	assert.Equal(t, "11987654321", cl.Phone)
	assert.Equal(t, "maria.silva@example.com", cl.Email)
	require.NotNil(t, cl.TaxID)
	assert.Equal(t, "12345678901", *cl.TaxID)
	require.NotNil(t, cl.FirstPurchaseDate)
	assert.True(t, cl.FirstPurchaseDate.Equal(
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Nil(t, cl.NextAction)

	var stored models.Client
	require.NoError(t, db.First(&stored, cl.ID).Error)
	assert.Equal(t, "Maria Silva", stored.Name)
}

func TestIntake_OptionalFieldsEmpty(t *testing.T) {
	uc, _ := newIntakeTest(t)

	cl, err := uc.Execute(context.Background(), IntakeInput{
		Name:  "João",
		Phone: "21998877665",
	})
	require.NoError(t, err)

	assert.Nil(t, cl.TaxID)
	assert.Nil(t, cl.FirstPurchaseDate)
	assert.Nil(t, cl.AmountPaid)
	assert.Empty(t, cl.Email)
}

func TestIntake_Rejections(t *testing.T) {
	uc, _ := newIntakeTest(t)
	negative := -1.0

	tests := []struct {
		name      string
		in        IntakeInput
		wantField string
		wantCode  string
	}{
		{
			name:      "bad phone",
			in:        IntakeInput{Name: "X", Phone: "123"},
			wantField: "phone",
			wantCode:  "invalid_phone",
		},
		{
			name:      "bad email",
			in:        IntakeInput{Name: "X", Phone: "11987654321", Email: "not-an-email"},
			wantField: "email",
			wantCode:  "invalid_email",
		},
		{
			name:      "bad cpf",
			in:        IntakeInput{Name: "X", Phone: "11987654321", TaxID: "123"},
			wantField: "tax_id",
			wantCode:  "invalid_cpf",
		},
		{
			name:      "unparseable date",
			in:        IntakeInput{Name: "X", Phone: "11987654321", FirstPurchaseDate: "01/05/2025"},
			wantField: "first_purchase_date",
			wantCode:  "invalid_date",
		},
		{
			name:      "future purchase",
			in:        IntakeInput{Name: "X", Phone: "11987654321", FirstPurchaseDate: "2999-01-01"},
			wantField: "first_purchase_date",
			wantCode:  "purchase_date_in_future",
		},
		{
			name:      "negative amount",
			in:        IntakeInput{Name: "X", Phone: "11987654321", AmountPaid: &negative},
			wantField: "amount_paid",
			wantCode:  "negative_amount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.in)
			require.Error(t, err)
			field, code := validationCode(t, err)
			assert.Equal(t, tt.wantField, field)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}
