package client

import (
	"context"
	"time"

	domain "github.com/ClinicaVitaBR/crm-followup/internal/domain/followup"
	"github.com/ClinicaVitaBR/crm-followup/internal/httperr"
	"github.com/ClinicaVitaBR/crm-followup/internal/models"
	"github.com/ClinicaVitaBR/crm-followup/internal/timezone"
	"github.com/ClinicaVitaBR/crm-followup/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type IntakeInput struct {
	Name  string
	Phone string
	Email string
	TaxID string

	FirstPurchaseDate string // 2006-01-02
	Procedure         string
	AmountPaid        *float64
	Notes             string
}

// ======================================================
// USE CASE
// ======================================================

// Intake turns an already format-validated webhook payload into a Client.
// Only business rules live here: purchase date not in the future, amount
// not negative.
type Intake struct {
	repo domain.Repository
	tz   string
}

func NewIntake(repo domain.Repository, tz string) *Intake {
	return &Intake{repo: repo, tz: tz}
}

func (uc *Intake) Execute(
	ctx context.Context,
	in IntakeInput,
) (*models.Client, error) {

	if err := validators.ValidatePhone(in.Phone); err != nil {
		return nil, httperr.ErrValidation("phone", "invalid_phone")
	}

	email := validators.SanitizeEmail(in.Email)
	if err := validators.ValidateEmail(email); err != nil {
		return nil, httperr.ErrValidation("email", "invalid_email")
	}

	if err := validators.ValidateCPF(in.TaxID); err != nil {
		return nil, httperr.ErrValidation("tax_id", "invalid_cpf")
	}

	now := timezone.NowIn(uc.tz)

	var firstPurchase *time.Time
	if in.FirstPurchaseDate != "" {
		parsed, err := time.ParseInLocation(
			"2006-01-02",
			in.FirstPurchaseDate,
			timezone.Location(uc.tz),
		)
		if err != nil {
			return nil, httperr.ErrValidation("first_purchase_date", "invalid_date")
		}
		if parsed.After(now) {
			return nil, httperr.ErrValidation("first_purchase_date", "purchase_date_in_future")
		}
		firstPurchase = &parsed
	}

	if in.AmountPaid != nil && *in.AmountPaid < 0 {
		return nil, httperr.ErrValidation("amount_paid", "negative_amount")
	}

	cl := &models.Client{
		Name:              in.Name,
		Phone:             validators.SanitizePhone(in.Phone),
		Email:             email,
		FirstPurchaseDate: firstPurchase,
		Procedure:         in.Procedure,
		AmountPaid:        in.AmountPaid,
		Notes:             in.Notes,
	}

	if cpf := validators.SanitizeCPF(in.TaxID); cpf != "" {
		cl.TaxID = &cpf
	}

	if err := uc.repo.CreateClient(ctx, cl); err != nil {
		return nil, err
	}

	return cl, nil
}
