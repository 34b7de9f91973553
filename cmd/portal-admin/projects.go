package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Dinesh02121/project-portal/internal/domain/project"
	"github.com/Dinesh02121/project-portal/internal/service"
)

type projectOptions struct {
	sessionFlags
	ID      string
	Outcome string
	Value   int
	Path    string
}

func parseProjectFlags(name string, args []string, needID bool) (projectOptions, error) {
	var opts projectOptions
	fs := newFlagSet(name, &opts.sessionFlags)
	fs.StringVar(&opts.ID, "id", "", "Project ID")
	fs.StringVar(&opts.Outcome, "outcome", "", "Decision outcome: accept or reject")
	fs.IntVar(&opts.Value, "value", -1, "Progress percentage (0-100)")
	fs.StringVar(&opts.Path, "path", "", "Directory path inside the project archive")

	if err := fs.Parse(args); err != nil {
		return projectOptions{}, err
	}
	if needID {
		if err := requireID(opts.ID); err != nil {
			return projectOptions{}, err
		}
	}
	return opts, nil
}

func (o projectOptions) outcome() (project.Outcome, error) {
	outcome, ok := project.ParseOutcome(o.Outcome)
	if !ok {
		return "", fmt.Errorf("--outcome must be accept or reject, got %q", o.Outcome)
	}
	return outcome, nil
}

func runVerify(cmdCtx *commandContext, args []string) error {
	var sf sessionFlags
	fs := newFlagSet("verify", &sf)
	if err := fs.Parse(args); err != nil {
		return err
	}
	_, caller, err := cmdCtx.session(&sf)
	if err != nil {
		return err
	}
	if sf.JSON {
		return printJSON(cmdCtx.Out, caller.Identity)
	}

	w := tabwriter.NewWriter(cmdCtx.Out, 0, 4, 2, ' ', 0)
	if err := writef(w, "Subject\t%s\n", caller.Identity.Subject); err != nil {
		return err
	}
	if err := writef(w, "Role\t%s\n", caller.Identity.Role); err != nil {
		return err
	}
	if err := writef(w, "Email\t%s\n", caller.Identity.Email); err != nil {
		return err
	}
	if err := writef(w, "Credential\t%s (%s)\n", caller.Credential.Kind, caller.Credential.ShortFingerprint()); err != nil {
		return err
	}
	return w.Flush()
}

func runListProjects(cmdCtx *commandContext, args []string) error {
	opts, err := parseProjectFlags("list-projects", args, false)
	if err != nil {
		return err
	}
	svcs, caller, err := cmdCtx.session(&opts.sessionFlags)
	if err != nil {
		return err
	}
	projects, err := svcs.Projects.List(cmdCtx.Ctx, caller)
	if err != nil {
		return err
	}
	if opts.JSON {
		return printJSON(cmdCtx.Out, projects)
	}
	return printProjects(cmdCtx.Out, projects)
}

func runGetProject(cmdCtx *commandContext, args []string) error {
	opts, err := parseProjectFlags("get-project", args, true)
	if err != nil {
		return err
	}
	svcs, caller, err := cmdCtx.session(&opts.sessionFlags)
	if err != nil {
		return err
	}
	p, err := svcs.Projects.Get(cmdCtx.Ctx, caller, opts.ID)
	if err != nil {
		return err
	}
	return printProject(cmdCtx.Out, p, opts.JSON)
}

func runDecide(cmdCtx *commandContext, args []string) error {
	return runOutcomeCommand(cmdCtx, "decide", args, (*service.LifecycleService).Decide)
}

func runFinalize(cmdCtx *commandContext, args []string) error {
	return runOutcomeCommand(cmdCtx, "finalize", args, (*service.LifecycleService).Finalize)
}

func runStart(cmdCtx *commandContext, args []string) error {
	return runIDCommand(cmdCtx, "start", args, (*service.LifecycleService).Start)
}

func runApprove(cmdCtx *commandContext, args []string) error {
	return runIDCommand(cmdCtx, "approve", args, (*service.LifecycleService).Approve)
}

func runRequestFaculty(cmdCtx *commandContext, args []string) error {
	return runIDCommand(cmdCtx, "request-faculty", args, (*service.LifecycleService).RequestFaculty)
}

type outcomeFn func(*service.LifecycleService, context.Context, service.Caller, string, project.Outcome) (project.Project, error)

type idFn func(*service.LifecycleService, context.Context, service.Caller, string) (project.Project, error)

func runOutcomeCommand(cmdCtx *commandContext, name string, args []string, fn outcomeFn) error {
	opts, err := parseProjectFlags(name, args, true)
	if err != nil {
		return err
	}
	outcome, err := opts.outcome()
	if err != nil {
		return err
	}
	svcs, caller, err := cmdCtx.session(&opts.sessionFlags)
	if err != nil {
		return err
	}
	p, err := fn(svcs.Projects, cmdCtx.Ctx, caller, opts.ID, outcome)
	if err != nil {
		return err
	}
	return printProject(cmdCtx.Out, p, opts.JSON)
}

func runIDCommand(cmdCtx *commandContext, name string, args []string, fn idFn) error {
	opts, err := parseProjectFlags(name, args, true)
	if err != nil {
		return err
	}
	svcs, caller, err := cmdCtx.session(&opts.sessionFlags)
	if err != nil {
		return err
	}
	p, err := fn(svcs.Projects, cmdCtx.Ctx, caller, opts.ID)
	if err != nil {
		return err
	}
	return printProject(cmdCtx.Out, p, opts.JSON)
}

func runProgress(cmdCtx *commandContext, args []string) error {
	opts, err := parseProjectFlags("progress", args, true)
	if err != nil {
		return err
	}
	if opts.Value < 0 {
		return errors.New("--value is required")
	}
	svcs, caller, err := cmdCtx.session(&opts.sessionFlags)
	if err != nil {
		return err
	}
	p, err := svcs.Projects.UpdateProgress(cmdCtx.Ctx, caller, opts.ID, opts.Value)
	if err != nil {
		return err
	}
	return printProject(cmdCtx.Out, p, opts.JSON)
}

func runFiles(cmdCtx *commandContext, args []string) error {
	opts, err := parseProjectFlags("files", args, true)
	if err != nil {
		return err
	}
	svcs, caller, err := cmdCtx.session(&opts.sessionFlags)
	if err != nil {
		return err
	}
	listing, err := svcs.Files.List(cmdCtx.Ctx, caller, opts.ID, opts.Path)
	if err != nil {
		return err
	}
	if opts.JSON {
		return printJSON(cmdCtx.Out, listing)
	}

	dir := listing.Path
	if listing.AtRoot {
		dir = "/"
	}
	if err := writef(cmdCtx.Out, "%s\n", dir); err != nil {
		return err
	}
	w := tabwriter.NewWriter(cmdCtx.Out, 0, 4, 2, ' ', 0)
	for _, e := range listing.Entries {
		kind := "file"
		if e.IsDirectory {
			kind = "dir"
		}
		if err := writef(w, "%s\t%s\t%d\n", kind, e.Path, e.Size); err != nil {
			return err
		}
	}
	return w.Flush()
}

func runAnalyze(cmdCtx *commandContext, args []string) error {
	opts, err := parseProjectFlags("analyze", args, true)
	if err != nil {
		return err
	}
	svcs, caller, err := cmdCtx.session(&opts.sessionFlags)
	if err != nil {
		return err
	}
	report, err := svcs.Analysis.Analyze(cmdCtx.Ctx, caller, opts.ID)
	if err != nil {
		return err
	}
	if opts.JSON {
		return printJSON(cmdCtx.Out, report)
	}

	w := tabwriter.NewWriter(cmdCtx.Out, 0, 4, 2, ' ', 0)
	rows := []struct{ label, value string }{
		{"Grade", report.OverallGrade},
		{"Quality", fmt.Sprintf("%.1f/10", report.CodeQualityScore)},
		{"Stack", strings.Join(report.DetectedTechStack, ", ")},
		{"Strengths", strings.Join(report.Strengths, "; ")},
		{"Weaknesses", strings.Join(report.Weaknesses, "; ")},
		{"Recommendations", strings.Join(report.Recommendations, "; ")},
	}
	for _, r := range rows {
		if err := writef(w, "%s\t%s\n", r.label, r.value); err != nil {
			return err
		}
	}
	return w.Flush()
}

func printProjects(out io.Writer, projects []project.Project) error {
	if err := printProjectTable(out, projects); err != nil {
		return err
	}
	sum := project.Summarize(projects)
	return writef(out, "\nTotal %d  Pending %d  Accepted %d  Rejected %d  In progress %d\n",
		sum.Total, sum.Pending, sum.Accepted, sum.Rejected, sum.InProgress)
}

func printProjectTable(out io.Writer, projects []project.Project) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	if err := writeln(w, "ID\tTitle\tStatus\tProgress\tFaculty\tSubmitted"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, p := range projects {
		if err := writef(w, "%s\t%s\t%s\t%d%%\t%s\t%s\n",
			p.ID, p.Title, p.Status, p.Progress, dash(p.FacultyName), formatTime(p.SubmittedAt)); err != nil {
			return err
		}
	}
	return w.Flush()
}

func printProject(out io.Writer, p project.Project, raw bool) error {
	if raw {
		return printJSON(out, p)
	}
	return printProjectTable(out, []project.Project{p})
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
