package backend

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/Dinesh02121/project-portal/internal/domain/auth"
	"github.com/Dinesh02121/project-portal/internal/domain/college"
	apperrors "github.com/Dinesh02121/project-portal/internal/errors"
)

func TestListColleges(t *testing.T) {
	c := newTestClient(t, domainauth.CredentialBearer, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/admin/colleges", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `[
			{"collegeId":4,"collegeName":"Acme Institute","officialDomain":"acme.edu","city":"Pune","state":"MH","status":"pending"},
			{"collegeId":"5","collegeName":"Beta College","status":"APPROVED"}
		]`)
	}))

	got, err := c.ListColleges(context.Background(), bearerCred)
	require.NoError(t, err)
	assert.Equal(t, []college.College{
		{ID: "4", Name: "Acme Institute", OfficialDomain: "acme.edu", City: "Pune", State: "MH", Status: college.StatusPending},
		{ID: "5", Name: "Beta College", Status: college.StatusApproved},
	}, got)
}

func TestSetCollegeStatus(t *testing.T) {
	var gotPath, gotRawPath, gotBody, gotType string
	c := newTestClient(t, domainauth.CredentialBearer, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		gotPath, gotRawPath = r.URL.Path, r.URL.EscapedPath()
		gotType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		if r.URL.Path == "/auth/admin/approve/Missing College" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, "College not found")
			return
		}
		_, _ = io.WriteString(w, "College status updated")
	}))
	ctx := context.Background()

	require.NoError(t, c.SetCollegeStatus(ctx, bearerCred, "Acme Institute", college.StatusApproved))
	assert.Equal(t, "/auth/admin/approve/Acme Institute", gotPath)
	assert.Equal(t, "/auth/admin/approve/Acme%20Institute", gotRawPath)
	assert.Equal(t, `"APPROVED"`, gotBody)
	assert.Equal(t, "application/json", gotType)

	err := c.SetCollegeStatus(ctx, bearerCred, "Missing College", college.StatusRejected)
	assert.True(t, apperrors.IsNotFound(err))
}
