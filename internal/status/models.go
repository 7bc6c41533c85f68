package status

import "time"

// EmployeeStatus is the live presence row for one employee. Absence is a
// flag, never a deletion; rows outlive the employees they describe.
type EmployeeStatus struct {
	EmployeeID   int
	EmployeeName string
	FakeName     string
	IsPresent    bool
	CurrentArea  string
	LastSeen     time.Time
	UpdatedAt    time.Time
}

// Observation is one employee entry from a heartbeat batch.
type Observation struct {
	EmployeeID   int
	EmployeeName string
	FakeName     string
	Area         string
	IsPresent    bool
}
