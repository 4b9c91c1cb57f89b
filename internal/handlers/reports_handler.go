package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ClinicaVitaBR/crm-followup/internal/httperr"
	"github.com/ClinicaVitaBR/crm-followup/internal/httpresp"
	ucReports "github.com/ClinicaVitaBR/crm-followup/internal/usecase/reports"
)

type ReportsHandler struct {
	pendingUC    *ucReports.ListPendingActions
	statsUC      *ucReports.GetStatistics
	needActionUC *ucReports.ListClientsNeedingAction
}

func NewReportsHandler(
	pendingUC *ucReports.ListPendingActions,
	statsUC *ucReports.GetStatistics,
	needActionUC *ucReports.ListClientsNeedingAction,
) *ReportsHandler {
	return &ReportsHandler{
		pendingUC:    pendingUC,
		statsUC:      statsUC,
		needActionUC: needActionUC,
	}
}

func (h *ReportsHandler) PendingActions(c *gin.Context) {
	items, err := h.pendingUC.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "pending_actions_failed", "Erro ao listar ações pendentes.")
		return
	}

	httpresp.List(c, items)
}

func (h *ReportsHandler) Statistics(c *gin.Context) {
	stats, err := h.statsUC.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "statistics_failed", "Erro ao calcular estatísticas.")
		return
	}

	httpresp.OK(c, stats)
}

func (h *ReportsHandler) ClientsNeedingAction(c *gin.Context) {
	items, err := h.needActionUC.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "needing_action_failed", "Erro ao listar clientes.")
		return
	}

	httpresp.List(c, items)
}
