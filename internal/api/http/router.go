package http

import (
	"github.com/gin-gonic/gin"
	"github.com/presenceops/presence-cloud/internal/agenthealth"
	"github.com/presenceops/presence-cloud/internal/api/http/handler"
	"github.com/presenceops/presence-cloud/internal/api/http/middleware"
	"github.com/presenceops/presence-cloud/internal/auth"
	"github.com/presenceops/presence-cloud/internal/downtime"
	"github.com/presenceops/presence-cloud/internal/presence"
	"github.com/presenceops/presence-cloud/internal/report"
	"github.com/presenceops/presence-cloud/internal/status"
)

type Services struct {
	Auth        *auth.Service
	Status      *status.Service
	Presence    *presence.Service
	AgentHealth *agenthealth.Service
	Downtime    *downtime.Service
	Report      *report.Service
}

func SetupRoute(engine *gin.Engine, srvs *Services, config Config) {
	engine.Use(middleware.RequestLogger())

	healthHandler := handler.NewHealthHandler()
	engine.GET("/health", healthHandler.Check)

	api := engine.Group("/api")

	authHandler := handler.NewAuthHandler(srvs.Auth)
	api.POST("/auth/login", authHandler.Login)

	// agent ingestion, shared-token gated
	heartbeatHandler := handler.NewHeartbeatHandler(srvs.Status, srvs.AgentHealth)
	presenceHandler := handler.NewPresenceHandler(srvs.Presence, srvs.Downtime)
	ingest := api.Group("", middleware.AgentTokenAuth(config.AgentToken))
	ingest.POST("/heartbeat", heartbeatHandler.Receive)
	ingest.POST("/presence", presenceHandler.Receive)

	// viewer reads; auth only changes name fidelity
	reportHandler := handler.NewReportHandler(srvs.Report)
	reports := api.Group("", middleware.OptionalAuth(srvs.Auth))
	reports.GET("/current", reportHandler.CurrentStatus)
	reports.GET("/daily", reportHandler.Daily)
	reports.GET("/monthly", reportHandler.Monthly)
	reports.GET("/employee/:employeeId/monthly", reportHandler.EmployeeMonthlyDetail)

	downtimeHandler := handler.NewDowntimeHandler(srvs.Downtime)
	api.GET("/downtimes", downtimeHandler.ListForDay)

	agentHealthHandler := handler.NewAgentHealthHandler(srvs.AgentHealth, config.AgentStaleAfter)
	api.GET("/agent-health", agentHealthHandler.List)
}
