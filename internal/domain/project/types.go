package project

// Package project holds the review lifecycle of a submitted project: statuses,
// legal transitions and the submission draft. The backend remains the system
// of record; these types describe what the gateway may ask it to do.

import (
	"io"
	"strings"
	"time"
)

// Status is the closed set of project states.
type Status string

const (
	StatusPending          Status = "PENDING"
	StatusFacultyRequested Status = "FACULTY_REQUESTED"
	StatusApproved         Status = "APPROVED"
	StatusInProgress       Status = "IN_PROGRESS"
	StatusRejected         Status = "REJECTED"
	// StatusCompleted records final acceptance.
	StatusCompleted Status = "COMPLETED"
)

// ParseStatus maps a backend status string onto Status. The backend has used
// ACCEPTED for an in-flight accepted project; it is read as IN_PROGRESS.
func ParseStatus(raw string) (Status, bool) {
	switch s := Status(strings.ToUpper(strings.TrimSpace(raw))); s {
	case StatusPending, StatusFacultyRequested, StatusApproved, StatusInProgress, StatusRejected, StatusCompleted:
		return s, true
	case "ACCEPTED":
		return StatusInProgress, true
	default:
		return "", false
	}
}

// Terminal reports whether no further transition is permitted.
func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusCompleted
}

// AwaitingDecision reports whether a faculty ACCEPT or REJECT can still move
// the project.
func (s Status) AwaitingDecision() bool {
	return s == StatusPending || s == StatusFacultyRequested
}

// Outcome is a faculty verdict.
type Outcome string

const (
	OutcomeAccept Outcome = "ACCEPT"
	OutcomeReject Outcome = "REJECT"
)

// ParseOutcome accepts ACCEPT/REJECT in any case as well as the boolean form
// used by the backend's accept query parameter.
func ParseOutcome(raw string) (Outcome, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "ACCEPT", "TRUE":
		return OutcomeAccept, true
	case "REJECT", "FALSE":
		return OutcomeReject, true
	default:
		return "", false
	}
}

// Accept reports whether the outcome is ACCEPT.
func (o Outcome) Accept() bool { return o == OutcomeAccept }

// Project is the gateway's read view of a backend project.
type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OwnerID     string    `json:"owner_id"`
	CollegeID   string    `json:"college_id"`
	FacultyID   string    `json:"faculty_id"`
	FacultyName string    `json:"faculty_name,omitempty"`
	Status      Status    `json:"status"`
	Progress    int       `json:"progress"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Decision is a faculty-issued verdict on a project.
type Decision struct {
	ProjectID string    `json:"project_id"`
	Outcome   Outcome   `json:"outcome"`
	IssuedAt  time.Time `json:"issued_at"`
}

// Draft is the submission payload of a new project.
type Draft struct {
	Title         string `json:"title"          validate:"required,max=200"`
	Description   string `json:"description"    validate:"required,max=5000"`
	CollegeID     string `json:"college_id"     validate:"required"`
	FacultyID     string `json:"faculty_id"     validate:"required"`
	TechStack     string `json:"tech_stack,omitempty"     validate:"omitempty,max=500"`
	RepositoryURL string `json:"repository_url,omitempty" validate:"omitempty,url"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (d Draft) Trimmed() Draft {
	return Draft{
		Title:         strings.TrimSpace(d.Title),
		Description:   strings.TrimSpace(d.Description),
		CollegeID:     strings.TrimSpace(d.CollegeID),
		FacultyID:     strings.TrimSpace(d.FacultyID),
		TechStack:     strings.TrimSpace(d.TechStack),
		RepositoryURL: strings.TrimSpace(d.RepositoryURL),
	}
}

// MaxArchiveBytes caps an uploaded project archive.
const MaxArchiveBytes int64 = 100 << 20

// Archive is the optional source bundle sent with a submission. Its content is
// passed through to the backend unread.
type Archive struct {
	Filename string
	Body     io.Reader
}

// Summary is the per-role dashboard counter set derived from a listing.
type Summary struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Accepted   int `json:"accepted"`
	Rejected   int `json:"rejected"`
	InProgress int `json:"in_progress"`
}

// Summarize counts projects by state. Accepted covers every project a
// faculty member accepted: in progress or completed.
func Summarize(projects []Project) Summary {
	var s Summary
	for _, p := range projects {
		s.Total++
		switch p.Status {
		case StatusPending, StatusFacultyRequested, StatusApproved:
			s.Pending++
		case StatusInProgress:
			s.InProgress++
			s.Accepted++
		case StatusCompleted:
			s.Accepted++
		case StatusRejected:
			s.Rejected++
		}
	}
	return s
}
