package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/Dinesh02121/project-portal/config"
	"github.com/Dinesh02121/project-portal/internal/bootstrap"
	domainauth "github.com/Dinesh02121/project-portal/internal/domain/auth"
	"github.com/Dinesh02121/project-portal/internal/service"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
	Out    io.Writer
}

// tokenEnv supplies the session credential when --token is omitted.
const tokenEnv = "PORTAL_TOKEN"

const defaultCommandTimeout = 5 * time.Minute

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		if err := printUsage(os.Stdout); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(os.Stdout); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultCommandTimeout)
	defer cancel()

	cmdCtx := &commandContext{
		Ctx:    ctx,
		Logger: logger,
		Config: cfg,
		Out:    os.Stdout,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		cancel()
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"verify": {
			name:        "verify",
			description: "Verify a session credential and print the identity behind it",
			run:         runVerify,
		},
		"list-projects": {
			name:        "list-projects",
			description: "List the projects visible to the credential's owner",
			run:         runListProjects,
		},
		"get-project": {
			name:        "get-project",
			description: "Show one project's details",
			run:         runGetProject,
		},
		"decide": {
			name:        "decide",
			description: "Accept or reject a pending project (faculty)",
			run:         runDecide,
		},
		"progress": {
			name:        "progress",
			description: "Record progress on an in-progress project (faculty)",
			run:         runProgress,
		},
		"finalize": {
			name:        "finalize",
			description: "Accept or reject a completed project (faculty)",
			run:         runFinalize,
		},
		"start": {
			name:        "start",
			description: "Start work on an accepted project (faculty)",
			run:         runStart,
		},
		"approve": {
			name:        "approve",
			description: "Approve a submitted project (college admin)",
			run:         runApprove,
		},
		"request-faculty": {
			name:        "request-faculty",
			description: "Ask for faculty assignment on a project (college admin)",
			run:         runRequestFaculty,
		},
		"review-queue": {
			name:        "review-queue",
			description: "List projects waiting for your decision (faculty)",
			run:         runReviewQueue,
		},
		"colleges": {
			name:        "colleges",
			description: "List registered colleges and their approval status (system admin)",
			run:         runListColleges,
		},
		"set-college-status": {
			name:        "set-college-status",
			description: "Approve, reject or reset a college registration (system admin)",
			run:         runSetCollegeStatus,
		},
		"files": {
			name:        "files",
			description: "List a directory of a submitted project",
			run:         runFiles,
		},
		"analyze": {
			name:        "analyze",
			description: "Request an AI analysis report for a project",
			run:         runAnalyze,
		},
		"clear-badge": {
			name:        "clear-badge",
			description: "Remove the cached role badge for a credential from Redis",
			run:         runClearBadge,
		},
	}
}

func printUsage(w io.Writer) error {
	if err := writef(w, "Usage: portal-admin <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(w, "Available commands:\n"); err != nil {
		return err
	}
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writef(w, "  %-18s %s\n", name, cmds[name].description); err != nil {
			return err
		}
	}
	return writef(w, "\nThe credential is read from --token or $%s.\n", tokenEnv)
}

// sessionFlags are shared by every command that acts as a portal user.
type sessionFlags struct {
	Token string
	JSON  bool
}

func newFlagSet(name string, sf *sessionFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.StringVar(&sf.Token, "token", "", "Session credential (defaults to $"+tokenEnv+")")
	fs.BoolVar(&sf.JSON, "json", false, "Print raw JSON")
	return fs
}

func (sf *sessionFlags) credential(kind domainauth.CredentialKind) (domainauth.Credential, error) {
	token := strings.TrimSpace(sf.Token)
	if token == "" {
		token = strings.TrimSpace(os.Getenv(tokenEnv))
	}
	if token == "" {
		return domainauth.Credential{}, fmt.Errorf("a session credential is required (--token or $%s)", tokenEnv)
	}
	return domainauth.Credential{Kind: kind, Value: token}, nil
}

// session builds the services and verifies the caller once.
func (cmdCtx *commandContext) session(sf *sessionFlags) (bootstrap.ServiceContainer, service.Caller, error) {
	svcs, err := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config: &cmdCtx.Config,
		Logger: cmdCtx.Logger,
	})
	if err != nil {
		return bootstrap.ServiceContainer{}, service.Caller{}, err
	}
	cred, err := sf.credential(svcs.Verifier.Strategy())
	if err != nil {
		return bootstrap.ServiceContainer{}, service.Caller{}, err
	}
	id, err := svcs.Verifier.Verify(cmdCtx.Ctx, cred)
	if err != nil {
		return bootstrap.ServiceContainer{}, service.Caller{}, fmt.Errorf("verify credential: %w", err)
	}
	return svcs, service.Caller{Identity: id, Credential: cred}, nil
}

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("--id is required")
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}
