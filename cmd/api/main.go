package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ClinicaVitaBR/crm-followup/internal/config"
	dbpkg "github.com/ClinicaVitaBR/crm-followup/internal/db"
	domain "github.com/ClinicaVitaBR/crm-followup/internal/domain/followup"
	infraRepo "github.com/ClinicaVitaBR/crm-followup/internal/infra/repository"
	"github.com/ClinicaVitaBR/crm-followup/internal/messaging"
	"github.com/ClinicaVitaBR/crm-followup/internal/middleware"
	"github.com/ClinicaVitaBR/crm-followup/internal/routes"
	"github.com/ClinicaVitaBR/crm-followup/internal/scheduler"
	ucFollowup "github.com/ClinicaVitaBR/crm-followup/internal/usecase/followup"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	repo := infraRepo.NewFollowUpGormRepository(db)

	var sender messaging.Sender
	if cfg.WhatsAppMockMode {
		sender = messaging.MockSender{}
	} else {
		sender = messaging.NewWhatsAppSender(cfg.WhatsAppAPIURL, cfg.WhatsAppAPIToken)
	}
	dispatcher := messaging.NewDispatcher(sender)

	runCycleUC := ucFollowup.NewRunCycle(
		repo,
		domain.Cadence(cfg.CadenceDays),
		dispatcher,
	)

	daily, err := scheduler.NewDaily(cfg.SchedulerCron, runCycleUC, cfg.Timezone)
	if err != nil {
		log.Fatalf("failed to create scheduler: %v", err)
	}
	daily.Start()
	defer daily.Stop()

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestIDMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, repo, runCycleUC)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
