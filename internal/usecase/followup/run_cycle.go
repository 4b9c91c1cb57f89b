package followup

import (
	"context"
	"fmt"
	"time"

	"github.com/ClinicaVitaBR/crm-followup/internal/audit"
	"github.com/ClinicaVitaBR/crm-followup/internal/domain/action"
	domain "github.com/ClinicaVitaBR/crm-followup/internal/domain/followup"
	"github.com/ClinicaVitaBR/crm-followup/internal/httperr"
	"github.com/ClinicaVitaBR/crm-followup/internal/messaging"
	"github.com/ClinicaVitaBR/crm-followup/internal/models"
)

// Notifier hands created messages to the delivery channel. Delivery
// outcome never blocks or fails the cycle.
type Notifier interface {
	Dispatch(msg messaging.Message)
}

// ======================================================
// SUMMARY
// ======================================================

type CycleError struct {
	ClientID uint   `json:"client_id"`
	Reason   string `json:"reason"`
}

type CycleSummary struct {
	Scheduled int          `json:"scheduled"`
	Seeded    int          `json:"seeded"`
	Exhausted int          `json:"exhausted"`
	Skipped   int          `json:"skipped"`
	Failed    int          `json:"failed"`
	Errors    []CycleError `json:"errors,omitempty"`
}

// ======================================================
// USE CASE
// ======================================================

type RunCycle struct {
	repo     domain.Repository
	cadence  domain.Cadence
	notifier Notifier
}

func NewRunCycle(
	repo domain.Repository,
	cadence domain.Cadence,
	notifier Notifier,
) *RunCycle {
	return &RunCycle{
		repo:     repo,
		cadence:  cadence,
		notifier: notifier,
	}
}

type outcome int

const (
	outcomeScheduled outcome = iota
	outcomeSeeded
	outcomeExhausted
)

// Execute runs one follow-up cycle. Each client is an independent atomic
// unit: a failure is collected into the summary and the scan moves on, and
// cancelling the context stops cleanly between clients.
func (uc *RunCycle) Execute(ctx context.Context, now time.Time) (*CycleSummary, error) {

	ctx = audit.WithActor(ctx, audit.Actor{Name: "scheduler"})

	clients, err := uc.repo.DueClients(ctx, now)
	if err != nil {
		return nil, err
	}

	summary := &CycleSummary{}

	for i := range clients {
		if ctx.Err() != nil {
			break
		}

		out, err := uc.processClient(ctx, now, &clients[i])
		if err != nil {
			if httperr.IsBusiness(err, "already_scheduled") {
				// an overlapping run got there first
				summary.Skipped++
				continue
			}
			summary.Failed++
			summary.Errors = append(summary.Errors, CycleError{
				ClientID: clients[i].ID,
				Reason:   err.Error(),
			})
			continue
		}

		switch out {
		case outcomeScheduled:
			summary.Scheduled++
		case outcomeSeeded:
			summary.Seeded++
		case outcomeExhausted:
			summary.Exhausted++
		}
	}

	return summary, nil
}

func (uc *RunCycle) processClient(
	ctx context.Context,
	now time.Time,
	client *models.Client,
) (outcome, error) {

	if client.FirstPurchaseDate == nil {
		return 0, fmt.Errorf("client %d has no first purchase date", client.ID)
	}

	// The cadence position is derived from committed state, never from
	// scheduler memory.
	step, err := uc.repo.CountFollowUps(ctx, client.ID)
	if err != nil {
		return 0, err
	}

	due, ok := uc.cadence.Due(*client.FirstPurchaseDate, step)
	if !ok {
		// no further automatic actions for this client
		if err := uc.repo.SetNextAction(ctx, client.ID, now, nil); err != nil {
			return 0, err
		}
		return outcomeExhausted, nil
	}

	if due.After(now) {
		// first offset still ahead: remember when, create nothing yet
		if err := uc.repo.SetNextAction(ctx, client.ID, now, &due); err != nil {
			return 0, err
		}
		return outcomeSeeded, nil
	}

	content := followUpMessage(client.Name)

	ap := &models.Action{
		ClientID:   client.ID,
		Type:       action.TypeMessage,
		Content:    content,
		OccurredAt: due,
		Result:     string(action.InitialResult()),
	}

	var next *time.Time
	if n, ok := uc.cadence.Due(*client.FirstPurchaseDate, step+1); ok {
		// a client registered long after the purchase catches up one step
		// per cycle; next_action still never drops below created_at
		if n.Before(client.CreatedAt) {
			n = client.CreatedAt
		}
		next = &n
	}

	if err := uc.repo.ScheduleFollowUp(ctx, ap, now, next); err != nil {
		return 0, err
	}

	uc.notifier.Dispatch(messaging.Message{
		ClientName: client.Name,
		Phone:      client.Phone,
		Body:       content,
	})

	return outcomeScheduled, nil
}

func followUpMessage(name string) string {
	return fmt.Sprintf(
		"Olá %s! Obrigado por se tornar nosso cliente. Estamos aqui para ajudar!",
		name,
	)
}
