package project

import (
	"fmt"

	"github.com/Dinesh02121/project-portal/internal/domain/auth"
	apperrors "github.com/Dinesh02121/project-portal/internal/errors"
)

// Command names a lifecycle operation.
type Command string

const (
	CommandSubmit         Command = "submit"
	CommandRequestFaculty Command = "request_faculty"
	CommandApprove        Command = "approve"
	CommandDecide         Command = "decide"
	CommandStart          Command = "start"
	CommandProgress       Command = "progress"
	CommandFinalize       Command = "finalize"
	CommandDelete         Command = "delete"
)

var commandRoles = map[Command]auth.RoleSet{
	CommandSubmit:         auth.NewRoleSet(auth.RoleStudent),
	CommandRequestFaculty: auth.NewRoleSet(auth.RoleCollegeAdmin, auth.RoleSystemAdmin),
	CommandApprove:        auth.NewRoleSet(auth.RoleCollegeAdmin, auth.RoleSystemAdmin),
	CommandDecide:         auth.NewRoleSet(auth.RoleFaculty),
	CommandStart:          auth.NewRoleSet(auth.RoleFaculty),
	CommandProgress:       auth.NewRoleSet(auth.RoleFaculty),
	CommandFinalize:       auth.NewRoleSet(auth.RoleFaculty),
	CommandDelete:         auth.AnyRole(),
}

// AllowedRoles returns the roles that may issue cmd. Delete is additionally
// subject to ownership; see CheckDelete.
func AllowedRoles(cmd Command) auth.RoleSet {
	return commandRoles[cmd]
}

// deleteOverrideRoles may delete projects they do not own.
var deleteOverrideRoles = auth.NewRoleSet(auth.RoleFaculty, auth.RoleCollegeAdmin, auth.RoleSystemAdmin)

// Transition is the planned effect of a command on a project.
// NoOp means the project already reflects the command and the backend must
// not be called again.
type Transition struct {
	Command  Command
	From     Status
	To       Status
	Progress int
	NoOp     bool
}

// Apply returns p as it looks after t.
func (t Transition) Apply(p Project) Project {
	p.Status = t.To
	p.Progress = t.Progress
	return p
}

func noop(cmd Command, p Project) Transition {
	return Transition{Command: cmd, From: p.Status, To: p.Status, Progress: p.Progress, NoOp: true}
}

func illegal(cmd Command, from Status) error {
	return apperrors.ValidationField("status", fmt.Sprintf("cannot %s a project in status %s", cmd, from))
}

// ValidateProgress checks the 0..100 bound.
func ValidateProgress(value int) error {
	if value < 0 || value > 100 {
		return apperrors.ValidationField("progress", fmt.Sprintf("progress must be between 0 and 100, got %d", value))
	}
	return nil
}

// PlanDecide plans a faculty decision. A terminal project, or an accepted one
// receiving ACCEPT again, is returned unchanged.
func PlanDecide(p Project, outcome Outcome) (Transition, error) {
	if outcome != OutcomeAccept && outcome != OutcomeReject {
		return Transition{}, apperrors.ValidationField("outcome", fmt.Sprintf("unknown outcome %q", outcome))
	}
	switch {
	case p.Status.Terminal():
		return noop(CommandDecide, p), nil
	case p.Status == StatusInProgress && outcome == OutcomeAccept:
		return noop(CommandDecide, p), nil
	case p.Status.AwaitingDecision():
		if outcome == OutcomeAccept {
			return Transition{Command: CommandDecide, From: p.Status, To: StatusInProgress, Progress: 0}, nil
		}
		return Transition{Command: CommandDecide, From: p.Status, To: StatusRejected, Progress: p.Progress}, nil
	default:
		return Transition{}, illegal(CommandDecide, p.Status)
	}
}

// PlanRequestFaculty moves a pending project to FACULTY_REQUESTED.
func PlanRequestFaculty(p Project) (Transition, error) {
	switch p.Status {
	case StatusFacultyRequested:
		return noop(CommandRequestFaculty, p), nil
	case StatusPending:
		return Transition{Command: CommandRequestFaculty, From: p.Status, To: StatusFacultyRequested, Progress: p.Progress}, nil
	default:
		return Transition{}, illegal(CommandRequestFaculty, p.Status)
	}
}

// PlanApprove moves a pending project to APPROVED.
func PlanApprove(p Project) (Transition, error) {
	switch p.Status {
	case StatusApproved:
		return noop(CommandApprove, p), nil
	case StatusPending:
		return Transition{Command: CommandApprove, From: p.Status, To: StatusApproved, Progress: p.Progress}, nil
	default:
		return Transition{}, illegal(CommandApprove, p.Status)
	}
}

// PlanStart begins work on an approved project at zero progress.
func PlanStart(p Project) (Transition, error) {
	switch p.Status {
	case StatusInProgress:
		return noop(CommandStart, p), nil
	case StatusApproved:
		return Transition{Command: CommandStart, From: p.Status, To: StatusInProgress, Progress: 0}, nil
	default:
		return Transition{}, illegal(CommandStart, p.Status)
	}
}

// PlanProgress sets the progress of an in-progress project. Progress may move
// in either direction.
func PlanProgress(p Project, value int) (Transition, error) {
	if err := ValidateProgress(value); err != nil {
		return Transition{}, err
	}
	if p.Status != StatusInProgress {
		return Transition{}, illegal(CommandProgress, p.Status)
	}
	if p.Progress == value {
		return noop(CommandProgress, p), nil
	}
	return Transition{Command: CommandProgress, From: p.Status, To: StatusInProgress, Progress: value}, nil
}

// PlanFinalize records the final verdict on an in-progress project.
// Re-finalizing a terminal project returns it unchanged.
func PlanFinalize(p Project, outcome Outcome) (Transition, error) {
	if outcome != OutcomeAccept && outcome != OutcomeReject {
		return Transition{}, apperrors.ValidationField("outcome", fmt.Sprintf("unknown outcome %q", outcome))
	}
	switch {
	case p.Status.Terminal():
		return noop(CommandFinalize, p), nil
	case p.Status == StatusInProgress && outcome == OutcomeAccept:
		return Transition{Command: CommandFinalize, From: p.Status, To: StatusCompleted, Progress: p.Progress}, nil
	case p.Status == StatusInProgress:
		return Transition{Command: CommandFinalize, From: p.Status, To: StatusRejected, Progress: p.Progress}, nil
	default:
		return Transition{}, illegal(CommandFinalize, p.Status)
	}
}

// CheckDelete enforces that terminal projects are kept and that only the owner
// or a reviewing role may delete.
func CheckDelete(p Project, id auth.Identity) error {
	if p.Status.Terminal() {
		return illegal(CommandDelete, p.Status)
	}
	if p.OwnerID != "" && p.OwnerID == id.Subject {
		return nil
	}
	if deleteOverrideRoles.Contains(id.Role) {
		return nil
	}
	return apperrors.Authorizationf("project %s is not owned by the caller", p.ID)
}
