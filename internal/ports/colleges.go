package ports

import (
	"context"

	domainauth "github.com/Dinesh02121/project-portal/internal/domain/auth"
	"github.com/Dinesh02121/project-portal/internal/domain/college"
)

// CollegeRegistry reads and moderates college registrations. Only system
// administrators hold a credential the backend accepts here.
type CollegeRegistry interface {
	ListColleges(ctx context.Context, cred domainauth.Credential) ([]college.College, error)
	SetCollegeStatus(ctx context.Context, cred domainauth.Credential, name string, status college.Status) error
}
