package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	domainauth "github.com/Dinesh02121/project-portal/internal/domain/auth"
	"github.com/Dinesh02121/project-portal/internal/domain/college"
	apperrors "github.com/Dinesh02121/project-portal/internal/errors"
	"github.com/Dinesh02121/project-portal/internal/ports"
)

// CollegeServiceOptions groups dependencies for CollegeService.
type CollegeServiceOptions struct {
	Registry ports.CollegeRegistry
	Timeout  time.Duration
	Logger   *slog.Logger
}

// CollegeService lets a system administrator review college registrations.
type CollegeService struct {
	registry ports.CollegeRegistry
	timeout  time.Duration
	logger   *slog.Logger
}

// NewCollegeService constructs a CollegeService.
func NewCollegeService(opts CollegeServiceOptions) *CollegeService {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &CollegeService{registry: opts.Registry, timeout: timeout, logger: logger.With("component", "colleges")}
}

// List returns every registered college.
func (s *CollegeService) List(ctx context.Context, caller Caller) ([]college.College, error) {
	if err := requireSystemAdmin(caller); err != nil {
		return nil, err
	}
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	colleges, err := s.registry.ListColleges(callCtx, caller.Credential)
	if err != nil {
		return nil, timeoutAsTransient(callCtx, err, "list colleges")
	}
	return colleges, nil
}

// SetStatus moves the named college to rawStatus. A college already in that
// status is returned without a backend write.
func (s *CollegeService) SetStatus(ctx context.Context, caller Caller, name, rawStatus string) (college.College, error) {
	if err := requireSystemAdmin(caller); err != nil {
		return college.College{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return college.College{}, apperrors.ValidationField("name", "college name is required")
	}
	status, ok := college.ParseStatus(rawStatus)
	if !ok {
		return college.College{}, apperrors.ValidationField("status", "status must be PENDING, APPROVED or REJECTED")
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	colleges, err := s.registry.ListColleges(callCtx, caller.Credential)
	if err != nil {
		return college.College{}, timeoutAsTransient(callCtx, err, "set college status")
	}
	current, found := findCollege(colleges, name)
	if !found {
		return college.College{}, apperrors.NotFoundf("college %q not found", name)
	}
	if current.Status == status {
		return current, nil
	}

	if err := s.registry.SetCollegeStatus(callCtx, caller.Credential, current.Name, status); err != nil {
		return college.College{}, timeoutAsTransient(callCtx, err, "set college status")
	}
	s.logger.Info("college status changed",
		"college", current.Name,
		"from", current.Status,
		"to", status,
		"subject", caller.Identity.Subject)
	current.Status = status
	return current, nil
}

func findCollege(colleges []college.College, name string) (college.College, bool) {
	for _, c := range colleges {
		if strings.EqualFold(strings.TrimSpace(c.Name), name) {
			return c, true
		}
	}
	return college.College{}, false
}

func requireSystemAdmin(caller Caller) error {
	if caller.Identity.Role != domainauth.RoleSystemAdmin {
		return apperrors.Authorizationf("role %q may not manage colleges", caller.Identity.Role)
	}
	return nil
}
