package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dinesh02121/project-portal/internal/domain/auth"
	apperrors "github.com/Dinesh02121/project-portal/internal/errors"
)

func proj(status Status, progress int) Project {
	return Project{ID: "p1", OwnerID: "stu-1", Status: status, Progress: progress}
}

func TestPlanDecide(t *testing.T) {
	tests := []struct {
		name     string
		from     Project
		outcome  Outcome
		to       Status
		progress int
		noop     bool
		wantErr  bool
	}{
		{name: "accept pending", from: proj(StatusPending, 0), outcome: OutcomeAccept, to: StatusInProgress},
		{name: "accept faculty requested", from: proj(StatusFacultyRequested, 0), outcome: OutcomeAccept, to: StatusInProgress},
		{name: "reject pending", from: proj(StatusPending, 0), outcome: OutcomeReject, to: StatusRejected},
		{name: "accept in progress is noop", from: proj(StatusInProgress, 0), outcome: OutcomeAccept, to: StatusInProgress, noop: true},
		{name: "reject rejected is noop", from: proj(StatusRejected, 0), outcome: OutcomeReject, to: StatusRejected, noop: true},
		{name: "accept rejected returns terminal", from: proj(StatusRejected, 0), outcome: OutcomeAccept, to: StatusRejected, noop: true},
		{name: "decide completed is noop", from: proj(StatusCompleted, 100), outcome: OutcomeAccept, to: StatusCompleted, progress: 100, noop: true},
		{name: "reject in progress is illegal", from: proj(StatusInProgress, 40), outcome: OutcomeReject, wantErr: true},
		{name: "decide approved is illegal", from: proj(StatusApproved, 0), outcome: OutcomeAccept, wantErr: true},
		{name: "unknown outcome", from: proj(StatusPending, 0), outcome: "MAYBE", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := PlanDecide(tt.from, tt.outcome)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, tr.To)
			assert.Equal(t, tt.progress, tr.Progress)
			assert.Equal(t, tt.noop, tr.NoOp)
		})
	}
}

func TestPlanDecide_AcceptTwice(t *testing.T) {
	p := proj(StatusPending, 0)
	first, err := PlanDecide(p, OutcomeAccept)
	require.NoError(t, err)
	p = first.Apply(p)

	second, err := PlanDecide(p, OutcomeAccept)
	require.NoError(t, err)
	assert.True(t, second.NoOp)
	assert.Equal(t, StatusInProgress, second.Apply(p).Status)
	assert.Equal(t, 0, second.Apply(p).Progress)
}

func TestPlanProgress(t *testing.T) {
	for _, v := range []int{150, -5, 101, -1} {
		_, err := PlanProgress(proj(StatusInProgress, 10), v)
		require.Error(t, err, v)
		assert.True(t, apperrors.IsValidation(err))
		assert.Equal(t, "progress", apperrors.GetField(err))
	}

	for _, v := range []int{0, 1, 50, 99, 100} {
		tr, err := PlanProgress(proj(StatusInProgress, 10), v)
		require.NoError(t, err, v)
		assert.Equal(t, v, tr.Progress)
	}

	down, err := PlanProgress(proj(StatusInProgress, 80), 30)
	require.NoError(t, err)
	assert.False(t, down.NoOp)
	assert.Equal(t, 30, down.Progress)

	same, err := PlanProgress(proj(StatusInProgress, 30), 30)
	require.NoError(t, err)
	assert.True(t, same.NoOp)

	_, err = PlanProgress(proj(StatusRejected, 30), 40)
	assert.Equal(t, "status", apperrors.GetField(err))
	_, err = PlanProgress(proj(StatusCompleted, 100), 90)
	assert.True(t, apperrors.IsValidation(err))
}

func TestPlanSupplementedTransitions(t *testing.T) {
	tr, err := PlanRequestFaculty(proj(StatusPending, 0))
	require.NoError(t, err)
	assert.Equal(t, StatusFacultyRequested, tr.To)

	tr, err = PlanRequestFaculty(proj(StatusFacultyRequested, 0))
	require.NoError(t, err)
	assert.True(t, tr.NoOp)

	_, err = PlanRequestFaculty(proj(StatusApproved, 0))
	assert.True(t, apperrors.IsValidation(err))

	tr, err = PlanApprove(proj(StatusPending, 0))
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, tr.To)

	tr, err = PlanStart(proj(StatusApproved, 0))
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, tr.To)
	assert.Equal(t, 0, tr.Progress)

	_, err = PlanStart(proj(StatusPending, 0))
	assert.True(t, apperrors.IsValidation(err))

	tr, err = PlanFinalize(proj(StatusInProgress, 90), OutcomeAccept)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, tr.To)
	assert.Equal(t, 90, tr.Progress)

	tr, err = PlanFinalize(proj(StatusInProgress, 90), OutcomeReject)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, tr.To)

	tr, err = PlanFinalize(proj(StatusCompleted, 90), OutcomeReject)
	require.NoError(t, err)
	assert.True(t, tr.NoOp)
	assert.Equal(t, StatusCompleted, tr.To)

	_, err = PlanFinalize(proj(StatusPending, 0), OutcomeAccept)
	assert.True(t, apperrors.IsValidation(err))
}

func TestCheckDelete(t *testing.T) {
	owner := auth.Identity{Subject: "stu-1", Role: auth.RoleStudent}
	stranger := auth.Identity{Subject: "stu-2", Role: auth.RoleStudent}
	faculty := auth.Identity{Subject: "fac-1", Role: auth.RoleFaculty}
	admin := auth.Identity{Subject: "adm-1", Role: auth.RoleSystemAdmin}

	assert.NoError(t, CheckDelete(proj(StatusPending, 0), owner))
	assert.NoError(t, CheckDelete(proj(StatusInProgress, 20), faculty))
	assert.NoError(t, CheckDelete(proj(StatusApproved, 0), admin))

	err := CheckDelete(proj(StatusPending, 0), stranger)
	assert.True(t, apperrors.IsAuthorization(err))

	err = CheckDelete(proj(StatusRejected, 0), owner)
	assert.True(t, apperrors.IsValidation(err))

	unowned := Project{ID: "p2", Status: StatusPending}
	assert.True(t, apperrors.IsAuthorization(CheckDelete(unowned, auth.Identity{Role: auth.RoleStudent})))
}

func TestAllowedRoles(t *testing.T) {
	assert.True(t, AllowedRoles(CommandSubmit).Contains(auth.RoleStudent))
	assert.False(t, AllowedRoles(CommandSubmit).Contains(auth.RoleFaculty))
	assert.True(t, AllowedRoles(CommandDecide).Contains(auth.RoleFaculty))
	assert.False(t, AllowedRoles(CommandDecide).Contains(auth.RoleSystemAdmin))
	assert.True(t, AllowedRoles(CommandApprove).Contains(auth.RoleCollegeAdmin))
	assert.Equal(t, 4, AllowedRoles(CommandDelete).Len())
}
