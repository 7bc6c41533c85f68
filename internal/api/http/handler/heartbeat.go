package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/presenceops/presence-cloud/internal/agenthealth"
	"github.com/presenceops/presence-cloud/internal/api/http/dto"
	"github.com/presenceops/presence-cloud/internal/status"
)

type HeartbeatHandler struct {
	status      *status.Service
	agentHealth *agenthealth.Service
}

func NewHeartbeatHandler(statusSvc *status.Service, agentHealthSvc *agenthealth.Service) *HeartbeatHandler {
	return &HeartbeatHandler{status: statusSvc, agentHealth: agentHealthSvc}
}

// Receive applies one heartbeat batch: every listed employee is upserted in
// the live status view, and the originating site's health row is refreshed.
func (h *HeartbeatHandler) Receive(c *gin.Context) {
	var req dto.HeartbeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	observedAt, err := parseAgentTimestamp(req.Timestamp)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	observations := make([]status.Observation, len(req.DevicesOnline))
	for i, device := range req.DevicesOnline {
		observations[i] = status.Observation{
			EmployeeID:   device.EmployeeID,
			EmployeeName: device.EmployeeName,
			FakeName:     device.FakeName,
			Area:         device.Area,
			IsPresent:    device.IsPresent,
		}
	}

	accepted, rejected, err := h.status.ApplyHeartbeat(c.Request.Context(), observedAt, observations)
	if err != nil {
		slog.Error("Failed to apply heartbeat", "site_id", req.SiteID, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to store heartbeat"})
		return
	}

	if err := h.agentHealth.RecordHeartbeat(c.Request.Context(), req.SiteID, observedAt); err != nil {
		slog.Error("Failed to record agent health", "site_id", req.SiteID, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to store heartbeat"})
		return
	}

	c.JSON(http.StatusOK, dto.IngestResponse{
		Message:  "Heartbeat received",
		Accepted: accepted,
		Rejected: rejected,
	})
}

// parseAgentTimestamp reads an agent timestamp as naive local wall clock.
// Agents serialize with a UTC marker even though values are site-local; the
// marker is stripped, never applied. An empty timestamp falls back to the
// receive time.
func parseAgentTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}

	trimmed := strings.TrimSuffix(strings.TrimSuffix(s, "Z"), "+00:00")
	for _, layout := range []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
	} {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}
