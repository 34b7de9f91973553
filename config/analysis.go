package config

import (
	"strings"
	"time"
)

const defaultAnalysisTimeout = 3 * time.Minute

// AnalysisConfig controls AI analysis requests and how report fields are
// pulled out of the oracle response. Field values are JMESPath expressions;
// empty values fall back to the flat snake_case report layout.
type AnalysisConfig struct {
	Timeout time.Duration `env:"TIMEOUT" envDefault:"3m"`

	OverallGrade      string `env:"FIELD_OVERALL_GRADE"`
	CodeQualityScore  string `env:"FIELD_CODE_QUALITY_SCORE"`
	DetectedTechStack string `env:"FIELD_DETECTED_TECH_STACK"`
	Strengths         string `env:"FIELD_STRENGTHS"`
	Weaknesses        string `env:"FIELD_WEAKNESSES"`
	Recommendations   string `env:"FIELD_RECOMMENDATIONS"`
	DetailedAnalysis  string `env:"FIELD_DETAILED_ANALYSIS"`
}

// Sanitize applies guardrails to analysis configuration values.
func (a *AnalysisConfig) Sanitize() {
	if a.Timeout <= 0 {
		a.Timeout = defaultAnalysisTimeout
	}
	for _, f := range []*string{
		&a.OverallGrade, &a.CodeQualityScore, &a.DetectedTechStack,
		&a.Strengths, &a.Weaknesses, &a.Recommendations, &a.DetailedAnalysis,
	} {
		*f = strings.TrimSpace(*f)
	}
}
