package httpx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/Dinesh02121/project-portal/internal/domain/auth"
	"github.com/Dinesh02121/project-portal/internal/service"
)

func TestCallerFromContext(t *testing.T) {
	// No caller
	_, ok := CallerFromContext(context.Background())
	assert.False(t, ok)

	// With caller
	caller := service.Caller{
		Identity:   domainauth.Identity{Subject: "u1", Role: domainauth.RoleStudent},
		Credential: domainauth.Credential{Kind: domainauth.CredentialCookie, Value: "tok"},
	}
	got, ok := CallerFromContext(SetCallerInContext(context.Background(), caller))
	assert.True(t, ok)
	assert.Equal(t, caller, got)

	// A caller without a role is never stored
	_, ok = CallerFromContext(SetCallerInContext(context.Background(), service.Caller{}))
	assert.False(t, ok)
}

func TestRequestIDFromContext(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(context.Background()))
	assert.Equal(t, "req-1", RequestIDFromContext(SetRequestIDInContext(context.Background(), "req-1")))
	assert.Empty(t, RequestIDFromContext(SetRequestIDInContext(context.Background(), "")))
}
