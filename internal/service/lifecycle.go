package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	domainauth "github.com/Dinesh02121/project-portal/internal/domain/auth"
	"github.com/Dinesh02121/project-portal/internal/domain/project"
	apperrors "github.com/Dinesh02121/project-portal/internal/errors"
	"github.com/Dinesh02121/project-portal/internal/observability/metrics"
	"github.com/Dinesh02121/project-portal/internal/observability/notify"
	"github.com/Dinesh02121/project-portal/internal/observability/statsd"
	"github.com/Dinesh02121/project-portal/internal/ports"
)

// DefaultCommandTimeout bounds one lifecycle command, including its read of
// the current project state.
const DefaultCommandTimeout = 10 * time.Second

// Caller is a verified identity together with the credential it was verified
// from. The credential is forwarded to the backend on every command.
type Caller struct {
	Identity   domainauth.Identity
	Credential domainauth.Credential
}

// LifecycleServiceOptions groups dependencies for LifecycleService.
type LifecycleServiceOptions struct {
	Backend        ports.ProjectBackend
	Notifier       notify.Sink
	CommandTimeout time.Duration
	Metrics        statsd.Sink
	Logger         *slog.Logger
	Now            func() time.Time
}

// LifecycleService validates and issues project lifecycle commands.
type LifecycleService struct {
	backend  ports.ProjectBackend
	notifier notify.Sink
	timeout  time.Duration
	metrics  statsd.Sink
	logger   *slog.Logger
	now      func() time.Time

	group singleflight.Group
}

// NewLifecycleService constructs a LifecycleService.
func NewLifecycleService(opts LifecycleServiceOptions) *LifecycleService {
	timeout := opts.CommandTimeout
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.Nop
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &LifecycleService{
		backend:  opts.Backend,
		notifier: notifier,
		timeout:  timeout,
		metrics:  opts.Metrics,
		logger:   logger.With("component", "lifecycle"),
		now:      now,
	}
}

type commandResult struct {
	project project.Project
	noop    bool
}

// command describes one state-changing lifecycle operation.
type command struct {
	name    project.Command
	id      string
	arg     string
	plan    func(project.Project) (project.Transition, error)
	apply   func(ctx context.Context, cred domainauth.Credential) error
	outcome project.Outcome
}

// Submit creates a project in PENDING. The draft is validated before any
// network call.
func (s *LifecycleService) Submit(ctx context.Context, caller Caller, draft project.Draft, archive *project.Archive) (project.Project, error) {
	start := time.Now()
	p, err := s.submit(ctx, caller, draft, archive)
	s.emit(project.CommandSubmit, start, false, err)
	return p, err
}

func (s *LifecycleService) submit(ctx context.Context, caller Caller, draft project.Draft, archive *project.Archive) (project.Project, error) {
	if err := authorizeCommand(caller, project.CommandSubmit); err != nil {
		return project.Project{}, err
	}
	clean, err := project.ValidateDraft(draft)
	if err != nil {
		return project.Project{}, err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	p, err := s.backend.CreateProject(callCtx, caller.Credential, clean, archive)
	if err != nil {
		return project.Project{}, timeoutAsTransient(callCtx, err, project.CommandSubmit)
	}
	if p.OwnerID == "" {
		p.OwnerID = caller.Identity.Subject
	}
	s.logger.Info("project submitted", "project_id", p.ID, "subject", caller.Identity.Subject)
	return p, nil
}

// Decide records a faculty ACCEPT or REJECT. Repeating a decision on a
// project that already reflects it returns the project without a backend call.
func (s *LifecycleService) Decide(ctx context.Context, caller Caller, id string, outcome project.Outcome) (project.Project, error) {
	return s.run(ctx, caller, command{
		name: project.CommandDecide,
		id:   id,
		arg:  string(outcome),
		plan: func(p project.Project) (project.Transition, error) { return project.PlanDecide(p, outcome) },
		apply: func(ctx context.Context, cred domainauth.Credential) error {
			return s.backend.Decide(ctx, cred, id, outcome.Accept())
		},
		outcome: outcome,
	}, validOutcome(outcome))
}

// UpdateProgress sets an in-progress project's progress. Values outside
// 0..100 fail before any network call; lowering progress is allowed.
func (s *LifecycleService) UpdateProgress(ctx context.Context, caller Caller, id string, value int) (project.Project, error) {
	return s.run(ctx, caller, command{
		name: project.CommandProgress,
		id:   id,
		arg:  strconv.Itoa(value),
		plan: func(p project.Project) (project.Transition, error) { return project.PlanProgress(p, value) },
		apply: func(ctx context.Context, cred domainauth.Credential) error {
			return s.backend.UpdateProgress(ctx, cred, id, value)
		},
	}, project.ValidateProgress(value))
}

// Finalize records the final verdict on an in-progress project.
func (s *LifecycleService) Finalize(ctx context.Context, caller Caller, id string, outcome project.Outcome) (project.Project, error) {
	return s.run(ctx, caller, command{
		name: project.CommandFinalize,
		id:   id,
		arg:  string(outcome),
		plan: func(p project.Project) (project.Transition, error) { return project.PlanFinalize(p, outcome) },
		apply: func(ctx context.Context, cred domainauth.Credential) error {
			return s.backend.Finalize(ctx, cred, id, outcome.Accept())
		},
		outcome: outcome,
	}, validOutcome(outcome))
}

// Start begins work on an approved project.
func (s *LifecycleService) Start(ctx context.Context, caller Caller, id string) (project.Project, error) {
	return s.run(ctx, caller, command{
		name:  project.CommandStart,
		id:    id,
		plan:  project.PlanStart,
		apply: func(ctx context.Context, cred domainauth.Credential) error { return s.backend.Start(ctx, cred, id) },
	}, nil)
}

// Approve marks a pending project approved.
func (s *LifecycleService) Approve(ctx context.Context, caller Caller, id string) (project.Project, error) {
	return s.run(ctx, caller, command{
		name:  project.CommandApprove,
		id:    id,
		plan:  project.PlanApprove,
		apply: func(ctx context.Context, cred domainauth.Credential) error { return s.backend.Approve(ctx, cred, id) },
	}, nil)
}

// RequestFaculty asks the assigned faculty member to review a pending project.
func (s *LifecycleService) RequestFaculty(ctx context.Context, caller Caller, id string) (project.Project, error) {
	return s.run(ctx, caller, command{
		name:  project.CommandRequestFaculty,
		id:    id,
		plan:  project.PlanRequestFaculty,
		apply: func(ctx context.Context, cred domainauth.Credential) error { return s.backend.RequestFaculty(ctx, cred, id) },
	}, nil)
}

// Delete removes a non-terminal project. The caller must own it or hold a
// reviewing role; anything else is an authorization error.
func (s *LifecycleService) Delete(ctx context.Context, caller Caller, id string) error {
	start := time.Now()
	res, err := s.coalesce(ctx, caller, project.CommandDelete, id, "", func(ctx context.Context) (commandResult, error) {
		p, err := s.load(ctx, caller, id)
		if err != nil {
			return commandResult{}, err
		}
		if err := project.CheckDelete(p, caller.Identity); err != nil {
			return commandResult{}, err
		}
		if err := s.backend.DeleteProject(ctx, caller.Credential, id); err != nil {
			return commandResult{}, err
		}
		s.logger.Info("project deleted", "project_id", id, "subject", caller.Identity.Subject)
		return commandResult{project: p}, nil
	}, nil)
	s.emit(project.CommandDelete, start, res.noop, err)
	return err
}

// Get loads one project.
func (s *LifecycleService) Get(ctx context.Context, caller Caller, id string) (project.Project, error) {
	if err := validProjectID(id); err != nil {
		return project.Project{}, err
	}
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	p, err := s.load(callCtx, caller, id)
	if err != nil {
		return project.Project{}, timeoutAsTransient(callCtx, err, "get")
	}
	return p, nil
}

// load reads one project through the caller's own view. A student's view is
// their listing, which is owner-scoped, so an unattributed entry is theirs.
func (s *LifecycleService) load(ctx context.Context, caller Caller, id string) (project.Project, error) {
	p, err := s.backend.GetProject(ctx, caller.Credential, caller.Identity.Role, id)
	if err != nil {
		return project.Project{}, err
	}
	if p.OwnerID == "" && caller.Identity.Role == domainauth.RoleStudent {
		p.OwnerID = caller.Identity.Subject
	}
	return p, nil
}

// List returns the projects visible to the caller.
func (s *LifecycleService) List(ctx context.Context, caller Caller) ([]project.Project, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	projects, err := s.backend.ListProjects(callCtx, caller.Credential, caller.Identity.Role)
	if err != nil {
		return nil, timeoutAsTransient(callCtx, err, "list")
	}
	return projects, nil
}

// ReviewQueue returns the faculty member's projects still waiting for an
// ACCEPT or REJECT, in backend order.
func (s *LifecycleService) ReviewQueue(ctx context.Context, caller Caller) ([]project.Project, error) {
	if caller.Identity.Role != domainauth.RoleFaculty {
		return nil, apperrors.Authorizationf("role %q has no review queue", caller.Identity.Role)
	}
	projects, err := s.List(ctx, caller)
	if err != nil {
		return nil, err
	}
	queue := make([]project.Project, 0, len(projects))
	for _, p := range projects {
		if p.Status.AwaitingDecision() {
			queue = append(queue, p)
		}
	}
	return queue, nil
}

// Summary returns dashboard counters over the caller's projects.
func (s *LifecycleService) Summary(ctx context.Context, caller Caller) (project.Summary, error) {
	projects, err := s.List(ctx, caller)
	if err != nil {
		return project.Summary{}, err
	}
	return project.Summarize(projects), nil
}

// run authorizes and validates locally, then executes c once per identical
// concurrent request.
func (s *LifecycleService) run(ctx context.Context, caller Caller, c command, argErr error) (project.Project, error) {
	start := time.Now()
	res, err := s.coalesce(ctx, caller, c.name, c.id, c.arg, func(ctx context.Context) (commandResult, error) {
		return s.execute(ctx, caller, c)
	}, argErr)
	s.emit(c.name, start, res.noop, err)
	if err != nil {
		return project.Project{}, err
	}
	return res.project, nil
}

func (s *LifecycleService) coalesce(
	ctx context.Context,
	caller Caller,
	cmd project.Command,
	id, arg string,
	fn func(context.Context) (commandResult, error),
	argErr error,
) (commandResult, error) {
	if err := authorizeCommand(caller, cmd); err != nil {
		return commandResult{}, err
	}
	if err := validProjectID(id); err != nil {
		return commandResult{}, err
	}
	if argErr != nil {
		return commandResult{}, argErr
	}

	key := strings.Join([]string{string(cmd), caller.Credential.Fingerprint(), id, arg}, ":")
	ch := s.group.DoChan(key, func() (any, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		res, err := fn(callCtx)
		if err != nil {
			return commandResult{}, timeoutAsTransient(callCtx, err, cmd)
		}
		return res, nil
	})

	select {
	case <-ctx.Done():
		return commandResult{}, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return commandResult{}, r.Err
		}
		return r.Val.(commandResult), nil
	}
}

func (s *LifecycleService) execute(ctx context.Context, caller Caller, c command) (commandResult, error) {
	current, err := s.load(ctx, caller, c.id)
	if err != nil {
		return commandResult{}, err
	}
	t, err := c.plan(current)
	if err != nil {
		return commandResult{}, err
	}
	if t.NoOp {
		s.logger.Debug("command already applied",
			"command", c.name,
			"project_id", c.id,
			"status", current.Status)
		return commandResult{project: t.Apply(current), noop: true}, nil
	}

	if err := c.apply(ctx, caller.Credential); err != nil {
		return commandResult{}, err
	}
	updated := t.Apply(current)
	s.logger.Info("project transitioned",
		"command", c.name,
		"project_id", c.id,
		"from", t.From,
		"to", t.To,
		"progress", t.Progress)

	if c.outcome != "" {
		s.notifyDecision(ctx, caller, c.name, updated, t, project.Decision{
			ProjectID: c.id,
			Outcome:   c.outcome,
			IssuedAt:  s.now().UTC(),
		})
	}
	return commandResult{project: updated}, nil
}

// notifyDecision is best effort; a delivery failure never fails the command.
func (s *LifecycleService) notifyDecision(ctx context.Context, caller Caller, cmd project.Command, p project.Project, t project.Transition, d project.Decision) {
	err := s.notifier.SendDecision(ctx, notify.DecisionPayload{
		ProjectID:    d.ProjectID,
		ProjectTitle: p.Title,
		Command:      string(cmd),
		Outcome:      string(d.Outcome),
		Status:       string(p.Status),
		ActorEmail:   caller.Identity.Email,
		ActorRole:    string(caller.Identity.Role),
		OccurredAt:   d.IssuedAt,
		Metadata:     map[string]string{"previous_status": string(t.From)},
	})
	if err != nil {
		s.logger.Warn("decision notification failed", "project_id", d.ProjectID, "error", err)
		metrics.EmitNotification(s.metrics, metrics.ResultError, err)
		return
	}
	metrics.EmitNotification(s.metrics, metrics.ResultSuccess, nil)
}

func (s *LifecycleService) emit(cmd project.Command, start time.Time, noop bool, err error) {
	result := metrics.ResultSuccess
	switch {
	case err != nil:
		result = metrics.ResultError
	case noop:
		result = metrics.ResultNoop
	}
	metrics.EmitCommand(s.metrics, metrics.CommandMetric{
		Command:  string(cmd),
		Result:   result,
		Duration: time.Since(start),
		Err:      err,
	})
}

func authorizeCommand(caller Caller, cmd project.Command) error {
	if !project.AllowedRoles(cmd).Contains(caller.Identity.Role) {
		return apperrors.Authorizationf("role %q may not %s projects", caller.Identity.Role, cmd)
	}
	return nil
}

func validProjectID(id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.ValidationField("project_id", "project id is required")
	}
	return nil
}

func validOutcome(o project.Outcome) error {
	if o != project.OutcomeAccept && o != project.OutcomeReject {
		return apperrors.ValidationField("outcome", "outcome must be ACCEPT or REJECT")
	}
	return nil
}

// timeoutAsTransient reports an expired command budget as a transient error.
func timeoutAsTransient[T ~string](ctx context.Context, err error, op T) error {
	if apperrors.GetCode(err) != "" {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apperrors.Wrapf(err, apperrors.ErrCodeTransient, "%s timed out", string(op))
	}
	return err
}
