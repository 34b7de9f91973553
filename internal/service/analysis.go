package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/Dinesh02121/project-portal/internal/domain/review"
	apperrors "github.com/Dinesh02121/project-portal/internal/errors"
	"github.com/Dinesh02121/project-portal/internal/ports"
)

// DefaultAnalysisTimeout is the latency budget of the analysis oracle.
const DefaultAnalysisTimeout = 3 * time.Minute

// JMESPathEvaluator abstracts JMESPath operations for testability.
type JMESPathEvaluator interface {
	Validate(expr string) error
	Evaluate(expr string, data any) (any, error)
}

// jmespathLibEvaluator implements JMESPathEvaluator using go-jmespath.
type jmespathLibEvaluator struct{}

func (jmespathLibEvaluator) Validate(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	_, err := jmespath.Compile(expr)
	return err
}

func (jmespathLibEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

// AnalysisFields locates each report field in the oracle's response.
// An empty expression leaves the field unset.
type AnalysisFields struct {
	OverallGrade      string
	CodeQualityScore  string
	DetectedTechStack string
	Strengths         string
	Weaknesses        string
	Recommendations   string
	DetailedAnalysis  string
}

// DefaultAnalysisFields matches the oracle's flat snake_case report.
func DefaultAnalysisFields() AnalysisFields {
	return AnalysisFields{
		OverallGrade:      "overall_grade",
		CodeQualityScore:  "code_quality_score",
		DetectedTechStack: "detected_tech_stack",
		Strengths:         "strengths",
		Weaknesses:        "weaknesses",
		Recommendations:   "recommendations",
		DetailedAnalysis:  "detailed_analysis",
	}
}

func (f AnalysisFields) exprs() map[string]string {
	return map[string]string{
		"overall_grade":       f.OverallGrade,
		"code_quality_score":  f.CodeQualityScore,
		"detected_tech_stack": f.DetectedTechStack,
		"strengths":           f.Strengths,
		"weaknesses":          f.Weaknesses,
		"recommendations":     f.Recommendations,
		"detailed_analysis":   f.DetailedAnalysis,
	}
}

// AnalysisServiceOptions groups dependencies for AnalysisService.
type AnalysisServiceOptions struct {
	Oracle    ports.AnalysisOracle
	Evaluator JMESPathEvaluator
	// Fields defaults to DefaultAnalysisFields when zero.
	Fields  AnalysisFields
	Timeout time.Duration
	Logger  *slog.Logger
}

// AnalysisService requests a code analysis report for a project.
type AnalysisService struct {
	oracle  ports.AnalysisOracle
	jems    JMESPathEvaluator
	fields  AnalysisFields
	timeout time.Duration
	logger  *slog.Logger
}

// NewAnalysisService constructs an AnalysisService. Every configured field
// expression must compile.
func NewAnalysisService(opts AnalysisServiceOptions) (*AnalysisService, error) {
	jems := opts.Evaluator
	if jems == nil {
		jems = jmespathLibEvaluator{}
	}
	fields := opts.Fields
	if fields == (AnalysisFields{}) {
		fields = DefaultAnalysisFields()
	}
	for name, expr := range fields.exprs() {
		if err := jems.Validate(expr); err != nil {
			return nil, fmt.Errorf("invalid JMESPath for %s: %w", name, err)
		}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultAnalysisTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisService{
		oracle:  opts.Oracle,
		jems:    jems,
		fields:  fields,
		timeout: timeout,
		logger:  logger.With("component", "analysis"),
	}, nil
}

// Analyze runs the oracle for projectID. If ctx ends first, ctx.Err() is
// returned and no partial report is produced.
func (s *AnalysisService) Analyze(ctx context.Context, caller Caller, projectID string) (review.AnalysisReport, error) {
	if !reviewRoles.Contains(caller.Identity.Role) {
		return review.AnalysisReport{}, apperrors.Authorizationf("role %q may not analyze projects", caller.Identity.Role)
	}
	if err := validProjectID(projectID); err != nil {
		return review.AnalysisReport{}, err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	raw, err := s.oracle.Analyze(callCtx, caller.Credential, projectID)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return review.AnalysisReport{}, ctxErr
	}
	if err != nil {
		return review.AnalysisReport{}, timeoutAsTransient(callCtx, err, "analysis")
	}

	report, err := s.extract(raw)
	if err != nil {
		return review.AnalysisReport{}, err
	}
	s.logger.Info("analysis completed",
		"project_id", projectID,
		"grade", report.OverallGrade,
		"duration", time.Since(start))
	return report, nil
}

func (s *AnalysisService) extract(raw json.RawMessage) (review.AnalysisReport, error) {
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return review.AnalysisReport{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "decode analysis report")
	}

	var evalErr error
	eval := func(expr string) any {
		if evalErr != nil || strings.TrimSpace(expr) == "" {
			return nil
		}
		v, err := s.jems.Evaluate(expr, data)
		if err != nil {
			evalErr = apperrors.Wrapf(err, apperrors.ErrCodeInternal, "evaluate %q", expr)
		}
		return v
	}

	report := review.AnalysisReport{
		OverallGrade:      asString(eval(s.fields.OverallGrade)),
		CodeQualityScore:  asFloat(eval(s.fields.CodeQualityScore)),
		DetectedTechStack: asStrings(eval(s.fields.DetectedTechStack)),
		Strengths:         asStrings(eval(s.fields.Strengths)),
		Weaknesses:        asStrings(eval(s.fields.Weaknesses)),
		Recommendations:   asStrings(eval(s.fields.Recommendations)),
		DetailedAnalysis:  asStringMap(eval(s.fields.DetailedAnalysis)),
	}
	if evalErr != nil {
		return review.AnalysisReport{}, evalErr
	}
	return report, nil
}

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

func asFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// asStrings flattens lists and category maps ({"backend": ["Go"]}) into one
// list. Map values are taken in key order.
func asStrings(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			out = append(out, asStrings(item)...)
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var out []string
		for _, k := range keys {
			out = append(out, asStrings(t[k])...)
		}
		return out
	default:
		if s := asString(t); s != "" {
			return []string{s}
		}
		return nil
	}
}

func asStringMap(v any) map[string]string {
	m, ok := v.(map[string]any)
	if !ok || len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, val := range m {
		out[k] = asString(val)
	}
	return out
}
