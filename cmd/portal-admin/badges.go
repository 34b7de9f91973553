package main

import (
	"errors"
	"fmt"

	"github.com/Dinesh02121/project-portal/internal/bootstrap"
	domainauth "github.com/Dinesh02121/project-portal/internal/domain/auth"
	apperrors "github.com/Dinesh02121/project-portal/internal/errors"
	"github.com/Dinesh02121/project-portal/internal/ports"
)

type clearBadgeOptions struct {
	sessionFlags
	DryRun bool
}

func parseClearBadgeFlags(args []string) (clearBadgeOptions, error) {
	var opts clearBadgeOptions
	fs := newFlagSet("clear-badge", &opts.sessionFlags)
	fs.BoolVar(&opts.DryRun, "dry-run", false, "Show the cached badge without deleting it")
	if err := fs.Parse(args); err != nil {
		return clearBadgeOptions{}, err
	}
	return opts, nil
}

// runClearBadge drops a cached badge without contacting the backend, so it
// works for credentials the backend already revoked.
func runClearBadge(cmdCtx *commandContext, args []string) error {
	opts, err := parseClearBadgeFlags(args)
	if err != nil {
		return err
	}
	if !cmdCtx.Config.Redis.Enabled {
		return errors.New("badge cache is disabled (REDIS_ENABLED=false)")
	}
	kind := domainauth.CredentialCookie
	if cmdCtx.Config.Auth.IsBearer() {
		kind = domainauth.CredentialBearer
	}
	cred, err := opts.credential(kind)
	if err != nil {
		return err
	}

	client, err := bootstrap.ConnectRedis(cmdCtx.Ctx, bootstrap.RedisOptions{
		Config: cmdCtx.Config.Redis,
		Logger: cmdCtx.Logger,
	})
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer func() {
		if cerr := client.Close(); cerr != nil {
			cmdCtx.Logger.Error("close redis failed", "error", cerr)
		}
	}()

	return clearBadge(cmdCtx, bootstrap.NewAdvisoryCache(client, cmdCtx.Config.Redis), cred, opts.DryRun)
}

func clearBadge(cmdCtx *commandContext, cache ports.AdvisoryCache, cred domainauth.Credential, dryRun bool) error {
	fp := cred.Fingerprint()
	badge, err := cache.Get(cmdCtx.Ctx, fp)
	switch {
	case apperrors.IsNotFound(err):
		return writef(cmdCtx.Out, "No badge cached for %s\n", cred.ShortFingerprint())
	case err != nil:
		return fmt.Errorf("read badge: %w", err)
	}

	if dryRun {
		return writef(cmdCtx.Out, "Would clear %s badge for %s\n", badge.Role, cred.ShortFingerprint())
	}
	if err := cache.Delete(cmdCtx.Ctx, fp); err != nil {
		return fmt.Errorf("delete badge: %w", err)
	}
	return writef(cmdCtx.Out, "Cleared %s badge for %s\n", badge.Role, cred.ShortFingerprint())
}
