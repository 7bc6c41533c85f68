package tests

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presenceops/presence-cloud/internal/api/http/dto"
)

func TestMonthlyReports(t *testing.T, router *gin.Engine, agentToken string) {
	// April 1, 2026 is a Wednesday; April 4 a Saturday.
	seed := dto.PresenceRequest{
		SiteID: "site-a",
		PresenceData: []dto.PresenceData{
			{EmployeeID: 201, EmployeeName: "Grace", FakeName: "Kestrel", Date: "2026-04-01", FirstSeen: "09:00", LastSeen: "17:30", MinutesOnline: 510},
			{EmployeeID: 201, EmployeeName: "Grace", FakeName: "Kestrel", Date: "2026-04-02", FirstSeen: "10:00", LastSeen: "13:00", MinutesOnline: 180},
			{EmployeeID: 202, EmployeeName: "Henry", FakeName: "Sparrow", Date: "2026-04-02", FirstSeen: "08:30", LastSeen: "16:30", MinutesOnline: 480},
		},
	}
	rr := doJSONWithAuth(router, "POST", "/api/presence", seed, agentToken)
	require.Equal(t, http.StatusOK, rr.Code)

	t.Run("monthly summary", func(t *testing.T) {
		rr := doJSON(router, "GET", "/api/monthly?year=2026&month=4", nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var summaries []dto.MonthlyPresenceResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &summaries))
		require.Len(t, summaries, 2)

		assert.Equal(t, 201, summaries[0].EmployeeID)
		assert.Equal(t, "Kestrel", summaries[0].EmployeeName)
		assert.InDelta(t, 11.5, summaries[0].TotalHours, 1e-9)
		assert.Equal(t, 2, summaries[0].DaysPresent)
		assert.InDelta(t, 5.75, summaries[0].AvgHoursPerDay, 1e-9)

		assert.Equal(t, 202, summaries[1].EmployeeID)
		assert.InDelta(t, 8.0, summaries[1].TotalHours, 1e-9)
		assert.Equal(t, 1, summaries[1].DaysPresent)
	})

	t.Run("employee monthly detail", func(t *testing.T) {
		rr := doJSON(router, "GET", "/api/employee/201/monthly?year=2026&month=4", nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var detail dto.EmployeeMonthlyDetailResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &detail))
		assert.Equal(t, 201, detail.EmployeeID)
		assert.Equal(t, "Kestrel", detail.EmployeeName)
		assert.Equal(t, 2026, detail.Year)
		assert.Equal(t, 4, detail.Month)
		require.Len(t, detail.DailyRecords, 30)

		assert.Equal(t, "Wednesday", detail.DailyRecords[0].DayOfWeek)
		assert.Equal(t, "Full day", detail.DailyRecords[0].Status)
		assert.InDelta(t, 8.5, detail.DailyRecords[0].Hours, 1e-9)

		assert.Equal(t, "Partial", detail.DailyRecords[1].Status)
		assert.InDelta(t, 3.0, detail.DailyRecords[1].Hours, 1e-9)

		assert.Equal(t, "Absent", detail.DailyRecords[2].Status)
		assert.Equal(t, "Weekend", detail.DailyRecords[3].Status)

		assert.InDelta(t, 11.5, detail.TotalHours, 1e-9)
		assert.Equal(t, 2, detail.DaysPresent)
	})

	t.Run("unknown employee gets a fully classified month", func(t *testing.T) {
		rr := doJSON(router, "GET", "/api/employee/999/monthly?year=2026&month=4", nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var detail dto.EmployeeMonthlyDetailResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &detail))
		assert.Equal(t, "Unknown", detail.EmployeeName)
		assert.Len(t, detail.DailyRecords, 30)
		assert.Zero(t, detail.TotalHours)
	})

	t.Run("month out of range", func(t *testing.T) {
		rr := doJSON(router, "GET", "/api/monthly?year=2026&month=0", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestDowntimes(t *testing.T, router *gin.Engine, agentToken string) {
	seed := dto.PresenceRequest{
		SiteID: "site-a",
		AgentDowntimes: []dto.AgentDowntime{
			{DowntimeStart: "2026-05-10T03:00:00Z", DowntimeEnd: "2026-05-10T03:12:00Z"},
			{DowntimeStart: "2026-05-11T01:00:00+00:00", DowntimeEnd: "2026-05-11T01:05:00+00:00"},
		},
	}
	rr := doJSONWithAuth(router, "POST", "/api/presence", seed, agentToken)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(router, "GET", "/api/downtimes?date=2026-05-10", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var windows []dto.DowntimeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &windows))
	require.Len(t, windows, 1)
	assert.NotEmpty(t, windows[0].ID)
	assert.Equal(t, "2026-05-10T03:00:00", windows[0].DowntimeStart)
	assert.Equal(t, "2026-05-10T03:12:00", windows[0].DowntimeEnd)
}

func TestAgentHealth(t *testing.T, router *gin.Engine, agentToken string) {
	fresh := dto.HeartbeatRequest{
		SiteID:    "site-fresh",
		Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05"),
	}
	rr := doJSONWithAuth(router, "POST", "/api/heartbeat", fresh, agentToken)
	require.Equal(t, http.StatusOK, rr.Code)

	stale := dto.HeartbeatRequest{
		SiteID:    "site-stale",
		Timestamp: "2020-01-01T00:00:00Z",
	}
	rr = doJSONWithAuth(router, "POST", "/api/heartbeat", stale, agentToken)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(router, "GET", "/api/agent-health", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var healths []dto.AgentHealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &healths))

	byID := make(map[string]dto.AgentHealthResponse, len(healths))
	for _, h := range healths {
		byID[h.SiteID] = h
	}
	require.Contains(t, byID, "site-fresh")
	assert.True(t, byID["site-fresh"].Alive)
	assert.Equal(t, fresh.Timestamp, byID["site-fresh"].LastHeartbeat)
	require.Contains(t, byID, "site-stale")
	assert.False(t, byID["site-stale"].Alive)
}
