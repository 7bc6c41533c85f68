package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/presenceops/presence-cloud/internal/api/http/dto"
	"github.com/presenceops/presence-cloud/internal/downtime"
)

type DowntimeHandler struct {
	downtime *downtime.Service
}

func NewDowntimeHandler(downtimeSvc *downtime.Service) *DowntimeHandler {
	return &DowntimeHandler{downtime: downtimeSvc}
}

func (h *DowntimeHandler) ListForDay(c *gin.Context) {
	date, err := time.Parse(time.DateOnly, c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	windows, err := h.downtime.WindowsForDay(c.Request.Context(), date)
	if err != nil {
		slog.Error("Failed to read downtime windows", "date", c.Query("date"), "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to read downtimes"})
		return
	}

	result := make([]dto.DowntimeResponse, len(windows))
	for i, w := range windows {
		result[i] = dto.DowntimeResponse{
			ID:            w.ID,
			DowntimeStart: w.DowntimeStart.Format("2006-01-02T15:04:05"),
			DowntimeEnd:   w.DowntimeEnd.Format("2006-01-02T15:04:05"),
			CreatedAt:     w.CreatedAt.Format("2006-01-02T15:04:05"),
		}
	}
	c.JSON(http.StatusOK, result)
}
