package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presenceops/presence-cloud/internal/api/http/dto"
)

func TestPresenceIngestion(t *testing.T, router *gin.Engine, agentToken string) {
	t.Run("rejected without agent token", func(t *testing.T) {
		body := dto.PresenceRequest{SiteID: "site-a"}
		rr := doJSON(router, "POST", "/api/presence", body)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)

		rr = doJSONWithAuth(router, "POST", "/api/presence", body, "not-the-token")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("overlapping samples merge into one record", func(t *testing.T) {
		body := dto.PresenceRequest{
			SiteID: "site-a",
			PresenceData: []dto.PresenceData{
				{EmployeeID: 101, EmployeeName: "Alice", FakeName: "Falcon", Date: "2026-03-02", FirstSeen: "09:00", LastSeen: "12:00", MinutesOnline: 180},
				{EmployeeID: 101, EmployeeName: "Alice", FakeName: "Falcon", Date: "2026-03-02", FirstSeen: "11:00", LastSeen: "17:00", MinutesOnline: 360},
			},
		}
		rr := doJSONWithAuth(router, "POST", "/api/presence", body, agentToken)
		require.Equal(t, http.StatusOK, rr.Code)

		var resp dto.IngestResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Accepted)
		assert.Zero(t, resp.Rejected)

		rr = doJSON(router, "GET", "/api/daily?date=2026-03-02", nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var entries []dto.DailyPresenceResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
		require.Len(t, entries, 1)
		assert.Equal(t, 101, entries[0].EmployeeID)
		assert.Equal(t, "Falcon", entries[0].EmployeeName)
		assert.Equal(t, 540, entries[0].TotalMinutes)
		require.NotNil(t, entries[0].FirstSeen)
		require.NotNil(t, entries[0].LastSeen)
		assert.Equal(t, "09:00", *entries[0].FirstSeen)
		assert.Equal(t, "17:00", *entries[0].LastSeen)
		assert.InDelta(t, 8.0, entries[0].HoursPresent, 1e-9)
	})

	t.Run("malformed item does not block the batch", func(t *testing.T) {
		body := dto.PresenceRequest{
			SiteID: "site-a",
			PresenceData: []dto.PresenceData{
				{EmployeeID: 102, EmployeeName: "Bob", FakeName: "Heron", Date: "2026-03-02", FirstSeen: "10:00", LastSeen: "11:30", MinutesOnline: 90},
				{EmployeeID: 103, EmployeeName: "Carol", FakeName: "Wren", Date: "not-a-date", FirstSeen: "10:00", LastSeen: "11:00", MinutesOnline: 60},
				{EmployeeID: 104, EmployeeName: "Dave", FakeName: "Crane", Date: "2026-03-02", FirstSeen: "14:00", LastSeen: "09:00", MinutesOnline: 60},
			},
		}
		rr := doJSONWithAuth(router, "POST", "/api/presence", body, agentToken)
		require.Equal(t, http.StatusOK, rr.Code)

		var resp dto.IngestResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Accepted)
		assert.Equal(t, 2, resp.Rejected)

		rr = doJSON(router, "GET", "/api/daily?date=2026-03-02", nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var entries []dto.DailyPresenceResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
		assert.Len(t, entries, 2)
	})

	t.Run("empty day yields an empty list", func(t *testing.T) {
		rr := doJSON(router, "GET", "/api/daily?date=1999-01-04", nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var entries []dto.DailyPresenceResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
		assert.Empty(t, entries)
	})

	t.Run("bad date parameter", func(t *testing.T) {
		rr := doJSON(router, "GET", "/api/daily?date=yesterday", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestHeartbeatAndCurrentStatus(t *testing.T, router *gin.Engine, agentToken, username, password string) {
	body := dto.HeartbeatRequest{
		SiteID:    "site-a",
		Timestamp: "2026-03-02T10:00:00Z",
		DevicesOnline: []dto.DeviceOnline{
			{EmployeeID: 110, EmployeeName: "Erin", FakeName: "Osprey", Area: "office", IsPresent: true},
			{EmployeeID: 111, EmployeeName: "Frank", FakeName: "Plover", Area: "", IsPresent: false},
		},
	}
	rr := doJSONWithAuth(router, "POST", "/api/heartbeat", body, agentToken)
	require.Equal(t, http.StatusOK, rr.Code)

	t.Run("anonymous viewer sees pseudonyms", func(t *testing.T) {
		rr := doJSON(router, "GET", "/api/current", nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var statuses []dto.EmployeeStatusResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &statuses))

		byID := statusesByID(statuses)
		require.Contains(t, byID, 110)
		assert.Equal(t, "Osprey", byID[110].EmployeeName)
		assert.True(t, byID[110].IsPresent)
		assert.Equal(t, "office", byID[110].CurrentArea)
		require.Contains(t, byID, 111)
		assert.False(t, byID[111].IsPresent)
	})

	t.Run("authenticated viewer sees real names", func(t *testing.T) {
		token := login(t, router, username, password)

		rr := doJSONWithAuth(router, "GET", "/api/current", nil, token)
		require.Equal(t, http.StatusOK, rr.Code)

		var statuses []dto.EmployeeStatusResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &statuses))

		byID := statusesByID(statuses)
		require.Contains(t, byID, 110)
		assert.Equal(t, "Erin", byID[110].EmployeeName)
	})

	t.Run("garbage bearer token is treated as anonymous", func(t *testing.T) {
		rr := doJSONWithAuth(router, "GET", "/api/current", nil, "not-a-jwt")
		require.Equal(t, http.StatusOK, rr.Code)

		var statuses []dto.EmployeeStatusResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &statuses))

		byID := statusesByID(statuses)
		require.Contains(t, byID, 110)
		assert.Equal(t, "Osprey", byID[110].EmployeeName)
	})

	t.Run("unparseable timestamp", func(t *testing.T) {
		bad := dto.HeartbeatRequest{SiteID: "site-a", Timestamp: "ten o'clock"}
		rr := doJSONWithAuth(router, "POST", "/api/heartbeat", bad, agentToken)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func statusesByID(statuses []dto.EmployeeStatusResponse) map[int]dto.EmployeeStatusResponse {
	byID := make(map[int]dto.EmployeeStatusResponse, len(statuses))
	for _, st := range statuses {
		byID[st.EmployeeID] = st
	}
	return byID
}
