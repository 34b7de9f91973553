package main

import (
	"errors"
	"strings"
	"text/tabwriter"

	"github.com/Dinesh02121/project-portal/internal/domain/college"
)

func runReviewQueue(cmdCtx *commandContext, args []string) error {
	opts, err := parseProjectFlags("review-queue", args, false)
	if err != nil {
		return err
	}
	svcs, caller, err := cmdCtx.session(&opts.sessionFlags)
	if err != nil {
		return err
	}
	queue, err := svcs.Projects.ReviewQueue(cmdCtx.Ctx, caller)
	if err != nil {
		return err
	}
	if opts.JSON {
		return printJSON(cmdCtx.Out, queue)
	}
	return printProjectTable(cmdCtx.Out, queue)
}

func runListColleges(cmdCtx *commandContext, args []string) error {
	var sf sessionFlags
	fs := newFlagSet("colleges", &sf)
	if err := fs.Parse(args); err != nil {
		return err
	}
	svcs, caller, err := cmdCtx.session(&sf)
	if err != nil {
		return err
	}
	colleges, err := svcs.Colleges.List(cmdCtx.Ctx, caller)
	if err != nil {
		return err
	}
	if sf.JSON {
		return printJSON(cmdCtx.Out, colleges)
	}

	w := tabwriter.NewWriter(cmdCtx.Out, 0, 4, 2, ' ', 0)
	if err := writeln(w, "ID\tName\tDomain\tCity\tStatus"); err != nil {
		return err
	}
	for _, c := range colleges {
		if err := writef(w, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Name, dash(c.OfficialDomain), dash(c.City), c.Status); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	n := college.Count(colleges)
	return writef(cmdCtx.Out, "\nTotal %d  Pending %d  Approved %d  Rejected %d\n", n.Total, n.Pending, n.Approved, n.Rejected)
}

func runSetCollegeStatus(cmdCtx *commandContext, args []string) error {
	var (
		sf     sessionFlags
		name   string
		status string
	)
	fs := newFlagSet("set-college-status", &sf)
	fs.StringVar(&name, "name", "", "College name as registered")
	fs.StringVar(&status, "status", "", "New status: approved, rejected or pending")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return errors.New("--name is required")
	}
	svcs, caller, err := cmdCtx.session(&sf)
	if err != nil {
		return err
	}
	c, err := svcs.Colleges.SetStatus(cmdCtx.Ctx, caller, name, status)
	if err != nil {
		return err
	}
	if sf.JSON {
		return printJSON(cmdCtx.Out, c)
	}
	return writef(cmdCtx.Out, "%s\t%s\n", c.Name, c.Status)
}
