package backend

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	domainauth "github.com/Dinesh02121/project-portal/internal/domain/auth"
	"github.com/Dinesh02121/project-portal/internal/domain/college"
)

const adminPrefix = "/auth/admin"

type collegeWire struct {
	CollegeID      flexID `json:"collegeId"`
	ID             flexID `json:"id"`
	CollegeName    string `json:"collegeName"`
	OfficialDomain string `json:"officialDomain"`
	City           string `json:"city"`
	State          string `json:"state"`
	Status         string `json:"status"`
}

func (w collegeWire) toDomain() college.College {
	status, ok := college.ParseStatus(w.Status)
	if !ok {
		status = college.Status(strings.ToUpper(strings.TrimSpace(w.Status)))
	}
	return college.College{
		ID:             firstID(w.CollegeID, w.ID),
		Name:           w.CollegeName,
		OfficialDomain: w.OfficialDomain,
		City:           w.City,
		State:          w.State,
		Status:         status,
	}
}

// ListColleges returns every registered college with its approval state.
func (c *Client) ListColleges(ctx context.Context, cred domainauth.Credential) ([]college.College, error) {
	var out []collegeWire
	if err := c.call(ctx, request{op: "list colleges", method: http.MethodGet, path: adminPrefix + "/colleges", cred: &cred}, &out); err != nil {
		return nil, err
	}
	colleges := make([]college.College, 0, len(out))
	for _, w := range out {
		colleges = append(colleges, w.toDomain())
	}
	return colleges, nil
}

// SetCollegeStatus moves a college to status. The backend keys colleges by
// name and takes the status as a bare JSON string.
func (c *Client) SetCollegeStatus(ctx context.Context, cred domainauth.Credential, name string, status college.Status) error {
	body, err := jsonBody(string(status))
	if err != nil {
		return err
	}
	return c.call(ctx, request{
		op:          "set college status",
		method:      http.MethodPut,
		path:        adminPrefix + "/approve/" + url.PathEscape(name),
		body:        body,
		contentType: "application/json",
		cred:        &cred,
	}, nil)
}
