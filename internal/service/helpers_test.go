package service

import (
	"io"
	"log/slog"
	"time"

	domainauth "github.com/Dinesh02121/project-portal/internal/domain/auth"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func cookie(value string) domainauth.Credential {
	return domainauth.Credential{Kind: domainauth.CredentialCookie, Value: value}
}

func callerAs(role domainauth.Role, subject string) Caller {
	return Caller{
		Identity:   domainauth.Identity{Subject: subject, Role: role, Email: subject + "@example.edu"},
		Credential: cookie("tok-" + subject),
	}
}

var fixedNow = time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }
