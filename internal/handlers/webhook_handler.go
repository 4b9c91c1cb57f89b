package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ClinicaVitaBR/crm-followup/internal/httperr"
	ucClient "github.com/ClinicaVitaBR/crm-followup/internal/usecase/client"
)

type WebhookHandler struct {
	intake *ucClient.Intake
}

func NewWebhookHandler(intake *ucClient.Intake) *WebhookHandler {
	return &WebhookHandler{intake: intake}
}

// --------- Request ---------

type WebhookRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email"`
	TaxID string `json:"tax_id"`

	FirstPurchaseDate string   `json:"first_purchase_date"`
	Procedure         string   `json:"procedure"`
	AmountPaid        *float64 `json:"amount_paid"`
	Notes             string   `json:"notes"`
}

// --------- Handler ---------

func (h *WebhookHandler) Receive(c *gin.Context) {
	var req WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	cl, err := h.intake.Execute(c.Request.Context(), ucClient.IntakeInput{
		Name:              req.Name,
		Phone:             req.Phone,
		Email:             req.Email,
		TaxID:             req.TaxID,
		FirstPurchaseDate: req.FirstPurchaseDate,
		Procedure:         req.Procedure,
		AmountPaid:        req.AmountPaid,
		Notes:             req.Notes,
	})
	if err != nil {
		var ve httperr.ValidationError
		if errors.As(err, &ve) {
			httperr.BadRequest(c, ve.Code, "Campo inválido: "+ve.Field)
			return
		}
		httperr.Internal(c, "intake_failed", "Falha ao salvar o cliente.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Cliente recebido com sucesso!",
		"client_id": cl.ID,
	})
}
