package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ClinicaVitaBR/crm-followup/internal/config"
	"github.com/ClinicaVitaBR/crm-followup/internal/httperr"
	"github.com/ClinicaVitaBR/crm-followup/internal/timezone"
	ucFollowup "github.com/ClinicaVitaBR/crm-followup/internal/usecase/followup"
)

// FollowUpHandler exposes a manual trigger for the daily cycle, useful for
// operations and for catching up after downtime.
type FollowUpHandler struct {
	runCycleUC *ucFollowup.RunCycle
	config     *config.Config
}

func NewFollowUpHandler(runCycleUC *ucFollowup.RunCycle, cfg *config.Config) *FollowUpHandler {
	return &FollowUpHandler{runCycleUC: runCycleUC, config: cfg}
}

func (h *FollowUpHandler) RunNow(c *gin.Context) {
	summary, err := h.runCycleUC.Execute(
		c.Request.Context(),
		timezone.NowIn(h.config.Timezone),
	)
	if err != nil {
		httperr.Internal(c, "cycle_failed", "Erro ao executar o ciclo de follow-up.")
		return
	}

	c.JSON(http.StatusOK, summary)
}
