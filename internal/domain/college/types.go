// Package college describes the registration state of a college as seen by
// the system administrator who approves it.
package college

import "strings"

// Status is the approval state of a registered college.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// ParseStatus accepts a status in any case.
func ParseStatus(raw string) (Status, bool) {
	switch s := Status(strings.ToUpper(strings.TrimSpace(raw))); s {
	case StatusPending, StatusApproved, StatusRejected:
		return s, true
	default:
		return "", false
	}
}

// College is one registered institution.
type College struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	OfficialDomain string `json:"official_domain,omitempty"`
	City           string `json:"city,omitempty"`
	State          string `json:"state,omitempty"`
	Status         Status `json:"status"`
}

// Counts tallies colleges by status.
type Counts struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// Count tallies colleges. Unknown statuses count towards Total only.
func Count(colleges []College) Counts {
	c := Counts{Total: len(colleges)}
	for _, col := range colleges {
		switch col.Status {
		case StatusPending:
			c.Pending++
		case StatusApproved:
			c.Approved++
		case StatusRejected:
			c.Rejected++
		}
	}
	return c
}
