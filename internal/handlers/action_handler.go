package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ClinicaVitaBR/crm-followup/internal/domain/action"
	"github.com/ClinicaVitaBR/crm-followup/internal/httperr"
	ucAction "github.com/ClinicaVitaBR/crm-followup/internal/usecase/action"
)

type ActionHandler struct {
	recordResultUC *ucAction.RecordResult
	createCallUC   *ucAction.CreateCall
}

func NewActionHandler(
	recordResultUC *ucAction.RecordResult,
	createCallUC *ucAction.CreateCall,
) *ActionHandler {
	return &ActionHandler{
		recordResultUC: recordResultUC,
		createCallUC:   createCallUC,
	}
}

// --------- Requests ---------

type CreateCallRequest struct {
	ClientID   uint       `json:"client_id" binding:"required"`
	Content    string     `json:"content"`
	OccurredAt *time.Time `json:"occurred_at"`
}

type RecordResultRequest struct {
	Result string `json:"result" binding:"required"`
}

// ======================================================
// CREATE CALL (tarefa manual)
// ======================================================
func (h *ActionHandler) CreateCall(c *gin.Context) {
	var req CreateCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	ap, err := h.createCallUC.Execute(c.Request.Context(), ucAction.CreateCallInput{
		ClientID:   req.ClientID,
		Content:    req.Content,
		OccurredAt: req.OccurredAt,
	})
	if err != nil {
		writeActionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// RECORD RESULT
// ======================================================
func (h *ActionHandler) RecordResult(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_action_id", "ID inválido.")
		return
	}

	var req RecordResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	ap, err := h.recordResultUC.Execute(
		c.Request.Context(),
		uint(id),
		action.Result(req.Result),
	)
	if err != nil {
		writeActionError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// --------------------------------------------------

func writeActionError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "action_not_found"):
		httperr.NotFound(c, "action_not_found", "Ação não encontrada.")
	case httperr.IsBusiness(err, "client_not_found"):
		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
	case httperr.IsBusiness(err, "invalid_result"):
		httperr.BadRequest(c, "invalid_result", "Resultado inválido.")
	case httperr.IsBusiness(err, "illegal_transition"):
		httperr.Conflict(c, "illegal_transition", "Resultado já confirmado não volta para pendente.")
	case httperr.IsBusiness(err, "result_conflict"):
		httperr.Conflict(c, "result_conflict", "A ação foi atualizada por outro operador.")
	case httperr.IsValidation(err):
		httperr.BadRequest(c, err.Error(), "Dados inválidos.")
	default:
		httperr.Internal(c, "action_failed", "Erro ao processar a ação.")
	}
}
