package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/presenceops/presence-cloud/internal/agenthealth"
	"github.com/presenceops/presence-cloud/internal/api/http/dto"
)

type AgentHealthHandler struct {
	agentHealth *agenthealth.Service
	staleAfter  time.Duration
}

func NewAgentHealthHandler(agentHealthSvc *agenthealth.Service, staleAfter time.Duration) *AgentHealthHandler {
	return &AgentHealthHandler{agentHealth: agentHealthSvc, staleAfter: staleAfter}
}

// List returns every site's last heartbeat. Liveness is judged here at read
// time; the tracker itself only stores timestamps.
func (h *AgentHealthHandler) List(c *gin.Context) {
	healths, err := h.agentHealth.ListAll(c.Request.Context())
	if err != nil {
		slog.Error("Failed to read agent health", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to read agent health"})
		return
	}

	now := time.Now()
	result := make([]dto.AgentHealthResponse, len(healths))
	for i, health := range healths {
		result[i] = dto.AgentHealthResponse{
			SiteID:        health.SiteID,
			LastHeartbeat: health.LastHeartbeat.Format("2006-01-02T15:04:05"),
			Alive:         health.Alive(now, h.staleAfter),
		}
	}
	c.JSON(http.StatusOK, result)
}
