package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/presenceops/presence-cloud/internal/api/http/dto"
	"github.com/presenceops/presence-cloud/internal/api/http/middleware"
	"github.com/presenceops/presence-cloud/internal/presence"
	"github.com/presenceops/presence-cloud/internal/report"
)

type ReportHandler struct {
	report *report.Service
}

func NewReportHandler(reportSvc *report.Service) *ReportHandler {
	return &ReportHandler{report: reportSvc}
}

func (h *ReportHandler) CurrentStatus(c *gin.Context) {
	views, err := h.report.CurrentStatus(c.Request.Context(), middleware.IsAuthenticated(c))
	if err != nil {
		slog.Error("Failed to read current status", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to read current status"})
		return
	}

	result := make([]dto.EmployeeStatusResponse, len(views))
	for i, view := range views {
		result[i] = dto.EmployeeStatusResponse{
			EmployeeID:   view.EmployeeID,
			EmployeeName: view.EmployeeName,
			IsPresent:    view.IsPresent,
			CurrentArea:  view.CurrentArea,
			LastSeen:     view.LastSeen.Format(time.RFC3339),
		}
	}
	c.JSON(http.StatusOK, result)
}

func (h *ReportHandler) Daily(c *gin.Context) {
	date, err := time.Parse(time.DateOnly, c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	entries, err := h.report.Daily(c.Request.Context(), date, middleware.IsAuthenticated(c))
	if err != nil {
		slog.Error("Failed to build daily report", "date", c.Query("date"), "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to read daily report"})
		return
	}

	result := make([]dto.DailyPresenceResponse, len(entries))
	for i, entry := range entries {
		result[i] = dto.DailyPresenceResponse{
			EmployeeID:   entry.EmployeeID,
			EmployeeName: entry.EmployeeName,
			Date:         entry.Date.Format(time.DateOnly),
			FirstSeen:    formatTimeOfDay(entry.FirstSeen),
			LastSeen:     formatTimeOfDay(entry.LastSeen),
			TotalMinutes: entry.TotalMinutes,
			HoursPresent: entry.HoursPresent,
		}
	}
	c.JSON(http.StatusOK, result)
}

func (h *ReportHandler) Monthly(c *gin.Context) {
	year, month, ok := yearMonthParams(c)
	if !ok {
		return
	}

	summaries, err := h.report.Monthly(c.Request.Context(), year, month, middleware.IsAuthenticated(c))
	if err != nil {
		slog.Error("Failed to build monthly report", "year", year, "month", int(month), "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to read monthly report"})
		return
	}

	result := make([]dto.MonthlyPresenceResponse, len(summaries))
	for i, summary := range summaries {
		result[i] = dto.MonthlyPresenceResponse{
			EmployeeID:     summary.EmployeeID,
			EmployeeName:   summary.EmployeeName,
			TotalHours:     summary.TotalHours,
			DaysPresent:    summary.DaysPresent,
			AvgHoursPerDay: summary.AvgHoursPerDay,
		}
	}
	c.JSON(http.StatusOK, result)
}

func (h *ReportHandler) EmployeeMonthlyDetail(c *gin.Context) {
	employeeID, err := strconv.Atoi(c.Param("employeeId"))
	if err != nil || employeeID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee id"})
		return
	}

	year, month, ok := yearMonthParams(c)
	if !ok {
		return
	}

	detail, err := h.report.EmployeeMonthlyDetail(c.Request.Context(), employeeID, year, month, middleware.IsAuthenticated(c))
	if err != nil {
		slog.Error("Failed to build employee monthly detail",
			"employee_id", employeeID, "year", year, "month", int(month), "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to read employee detail"})
		return
	}

	days := make([]dto.DailyDetailResponse, len(detail.Days))
	for i, day := range detail.Days {
		days[i] = dto.DailyDetailResponse{
			Date:      day.Date.Format(time.DateOnly),
			DayOfWeek: day.DayOfWeek,
			FirstSeen: formatTimeOfDay(day.FirstSeen),
			LastSeen:  formatTimeOfDay(day.LastSeen),
			Hours:     day.Hours,
			Status:    day.Status,
		}
	}

	c.JSON(http.StatusOK, dto.EmployeeMonthlyDetailResponse{
		EmployeeID:   detail.EmployeeID,
		EmployeeName: detail.EmployeeName,
		Year:         detail.Year,
		Month:        int(detail.Month),
		DailyRecords: days,
		TotalHours:   detail.TotalHours,
		DaysPresent:  detail.DaysPresent,
	})
}

func yearMonthParams(c *gin.Context) (int, time.Month, bool) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2200 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return 0, 0, false
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return 0, 0, false
	}
	return year, time.Month(month), true
}

func formatTimeOfDay(t *presence.TimeOfDay) *string {
	if t == nil {
		return nil
	}
	s := t.String()
	return &s
}
