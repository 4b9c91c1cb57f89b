package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ClinicaVitaBR/crm-followup/internal/config"
	domain "github.com/ClinicaVitaBR/crm-followup/internal/domain/followup"
	"github.com/ClinicaVitaBR/crm-followup/internal/handlers"
	"github.com/ClinicaVitaBR/crm-followup/internal/middleware"
	ucAction "github.com/ClinicaVitaBR/crm-followup/internal/usecase/action"
	ucClient "github.com/ClinicaVitaBR/crm-followup/internal/usecase/client"
	ucFollowup "github.com/ClinicaVitaBR/crm-followup/internal/usecase/followup"
	ucReports "github.com/ClinicaVitaBR/crm-followup/internal/usecase/reports"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	repo domain.Repository,
	runCycleUC *ucFollowup.RunCycle,
) {

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	intakeUC := ucClient.NewIntake(repo, cfg.Timezone)

	recordResultUC := ucAction.NewRecordResult(repo)
	createCallUC := ucAction.NewCreateCall(repo, cfg.Timezone)

	pendingUC := ucReports.NewListPendingActions(repo)
	statsUC := ucReports.NewGetStatistics(repo)
	needActionUC := ucReports.NewListClientsNeedingAction(repo, cfg.Timezone)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	webhookHandler := handlers.NewWebhookHandler(intakeUC)
	clientHandler := handlers.NewClientHandler(repo)
	actionHandler := handlers.NewActionHandler(recordResultUC, createCallUC)
	reportsHandler := handlers.NewReportsHandler(pendingUC, statsUC, needActionUC)
	followUpHandler := handlers.NewFollowUpHandler(runCycleUC, cfg)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 📥 ENTRADA DE CLIENTES
		// ------------------------------
		webhook := api.Group("/")
		webhook.Use(middleware.WebhookAuthMiddleware(cfg))
		{
			webhook.POST("/webhook", webhookHandler.Receive)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA (painel / lista de tarefas)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/clients", clientHandler.List)
			secured.GET("/me/clients/:id", clientHandler.Get)

			// ------------------------------
			// ACTIONS
			// ------------------------------
			secured.POST("/me/actions", actionHandler.CreateCall)
			secured.PATCH("/me/actions/:id/result", actionHandler.RecordResult)

			// ------------------------------
			// VIEWS
			// ------------------------------
			secured.GET("/me/actions/pending", reportsHandler.PendingActions)
			secured.GET("/me/reports/statistics", reportsHandler.Statistics)
			secured.GET("/me/reports/needing-action", reportsHandler.ClientsNeedingAction)

			secured.POST("/me/followups/run", followUpHandler.RunNow)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
