package dto

type EmployeeStatusResponse struct {
	EmployeeID   int    `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
	IsPresent    bool   `json:"isPresent"`
	CurrentArea  string `json:"currentArea"`
	LastSeen     string `json:"lastSeen"`
}

type DailyPresenceResponse struct {
	EmployeeID   int     `json:"employeeId"`
	EmployeeName string  `json:"employeeName"`
	Date         string  `json:"date"`
	FirstSeen    *string `json:"firstSeen"`
	LastSeen     *string `json:"lastSeen"`
	TotalMinutes int     `json:"totalMinutes"`
	HoursPresent float64 `json:"hoursPresent"`
}

type MonthlyPresenceResponse struct {
	EmployeeID     int     `json:"employeeId"`
	EmployeeName   string  `json:"employeeName"`
	TotalHours     float64 `json:"totalHours"`
	DaysPresent    int     `json:"daysPresent"`
	AvgHoursPerDay float64 `json:"avgHoursPerDay"`
}

type DailyDetailResponse struct {
	Date      string  `json:"date"`
	DayOfWeek string  `json:"dayOfWeek"`
	FirstSeen *string `json:"firstSeen"`
	LastSeen  *string `json:"lastSeen"`
	Hours     float64 `json:"hours"`
	Status    string  `json:"status"`
}

type EmployeeMonthlyDetailResponse struct {
	EmployeeID   int                   `json:"employeeId"`
	EmployeeName string                `json:"employeeName"`
	Year         int                   `json:"year"`
	Month        int                   `json:"month"`
	DailyRecords []DailyDetailResponse `json:"dailyRecords"`
	TotalHours   float64               `json:"totalHours"`
	DaysPresent  int                   `json:"daysPresent"`
}

type DowntimeResponse struct {
	ID            string `json:"id"`
	DowntimeStart string `json:"downtimeStart"`
	DowntimeEnd   string `json:"downtimeEnd"`
	CreatedAt     string `json:"createdAt"`
}

type AgentHealthResponse struct {
	SiteID        string `json:"siteId"`
	LastHeartbeat string `json:"lastHeartbeat"`
	Alive         bool   `json:"alive"`
}
