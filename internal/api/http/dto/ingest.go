package dto

// HeartbeatRequest is the agent's periodic "who is online right now" push.
type HeartbeatRequest struct {
	SiteID        string         `json:"siteId" binding:"required"`
	Timestamp     string         `json:"timestamp"`
	DevicesOnline []DeviceOnline `json:"devicesOnline"`
}

type DeviceOnline struct {
	EmployeeID   int    `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
	FakeName     string `json:"fakeName"`
	Area         string `json:"area"`
	IsPresent    bool   `json:"isPresent"`
}

// PresenceRequest is the agent's summary push: per-employee presence samples
// plus any downtime windows observed since the last push.
type PresenceRequest struct {
	SiteID         string          `json:"siteId" binding:"required"`
	Timestamp      string          `json:"timestamp"`
	PresenceData   []PresenceData  `json:"presenceData"`
	AgentDowntimes []AgentDowntime `json:"agentDowntimes"`
}

type PresenceData struct {
	EmployeeID    int    `json:"employeeId"`
	EmployeeName  string `json:"employeeName"`
	FakeName      string `json:"fakeName"`
	Date          string `json:"date"`
	Hour          int    `json:"hour"`
	FirstSeen     string `json:"firstSeen"`
	LastSeen      string `json:"lastSeen"`
	MinutesOnline int    `json:"minutesOnline"`
}

type AgentDowntime struct {
	DowntimeStart string `json:"downtimeStart"`
	DowntimeEnd   string `json:"downtimeEnd"`
}

// IngestResponse reports per-item outcomes; a rejected item never blocks the
// rest of the batch.
type IngestResponse struct {
	Message  string `json:"message"`
	Accepted int    `json:"accepted"`
	Rejected int    `json:"rejected,omitempty"`
}
