package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/presenceops/presence-cloud/internal/api/http/dto"
	"github.com/presenceops/presence-cloud/internal/downtime"
	"github.com/presenceops/presence-cloud/internal/presence"
)

type PresenceHandler struct {
	presence *presence.Service
	downtime *downtime.Service
}

func NewPresenceHandler(presenceSvc *presence.Service, downtimeSvc *downtime.Service) *PresenceHandler {
	return &PresenceHandler{presence: presenceSvc, downtime: downtimeSvc}
}

// Receive merges a presence-summary batch. Items are isolated: a malformed
// sample or window is counted and skipped, the rest of the batch still
// lands. A store failure aborts with a transient error so the agent retries
// the batch.
func (h *PresenceHandler) Receive(c *gin.Context) {
	var req dto.PresenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accepted, rejected := 0, 0

	for _, data := range req.AgentDowntimes {
		_, err := h.downtime.RecordWindow(c.Request.Context(), data.DowntimeStart, data.DowntimeEnd)
		if err != nil {
			if errors.Is(err, downtime.ErrInvalidWindow) {
				slog.Warn("Rejected downtime window", "site_id", req.SiteID, "error", err)
				rejected++
				continue
			}
			slog.Error("Failed to store downtime window", "site_id", req.SiteID, "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to store presence data"})
			return
		}
		accepted++
	}

	for _, data := range req.PresenceData {
		sample, err := sampleFromDTO(data)
		if err == nil {
			err = h.presence.MergeSample(c.Request.Context(), sample)
		}
		if err != nil {
			if isSampleValidationError(err) {
				slog.Warn("Rejected presence sample",
					"site_id", req.SiteID, "employee_id", data.EmployeeID, "error", err)
				rejected++
				continue
			}
			slog.Error("Failed to merge presence sample",
				"site_id", req.SiteID, "employee_id", data.EmployeeID, "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to store presence data"})
			return
		}
		accepted++
	}

	c.JSON(http.StatusOK, dto.IngestResponse{
		Message:  "Presence data received",
		Accepted: accepted,
		Rejected: rejected,
	})
}

func sampleFromDTO(data dto.PresenceData) (presence.Sample, error) {
	date, err := time.Parse(time.DateOnly, data.Date)
	if err != nil {
		return presence.Sample{}, presence.ErrInvalidSample
	}
	firstSeen, err := presence.ParseTimeOfDay(data.FirstSeen)
	if err != nil {
		return presence.Sample{}, err
	}
	lastSeen, err := presence.ParseTimeOfDay(data.LastSeen)
	if err != nil {
		return presence.Sample{}, err
	}

	return presence.Sample{
		EmployeeID:    data.EmployeeID,
		EmployeeName:  data.EmployeeName,
		FakeName:      data.FakeName,
		Date:          date,
		FirstSeen:     firstSeen,
		LastSeen:      lastSeen,
		MinutesOnline: data.MinutesOnline,
	}, nil
}

func isSampleValidationError(err error) bool {
	return errors.Is(err, presence.ErrInvalidSample) || errors.Is(err, presence.ErrInvalidTimeOfDay)
}
