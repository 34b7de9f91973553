package review

// Package review holds the inputs a faculty member looks at before deciding:
// the project's file tree and the analysis report from the scoring oracle.

import (
	"path"
	"strings"

	apperrors "github.com/Dinesh02121/project-portal/internal/errors"
)

// FileEntry is one item of a directory listing.
type FileEntry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	IsDirectory bool   `json:"is_directory"`
	Size        int64  `json:"size"`
}

// FileContent is the text content of one file.
type FileContent struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// AnalysisReport is the structured verdict of the code analysis oracle.
type AnalysisReport struct {
	OverallGrade      string   `json:"overall_grade"`
	CodeQualityScore  float64  `json:"code_quality_score"`
	DetectedTechStack []string `json:"detected_tech_stack"`
	Strengths         []string `json:"strengths"`
	Weaknesses        []string `json:"weaknesses"`
	Recommendations   []string `json:"recommendations"`
	// DetailedAnalysis holds free-form per-aspect commentary.
	DetailedAnalysis map[string]string `json:"detailed_analysis,omitempty"`
}

// CleanPath normalizes a path relative to the project root. The root is "".
// Absolute paths and paths escaping the root are rejected.
func CleanPath(raw string) (string, error) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, "\\", "/"))
	if raw == "" || raw == "." || raw == "/" {
		return "", nil
	}
	if strings.HasPrefix(raw, "/") {
		return "", apperrors.ValidationField("path", "path must be relative to the project root")
	}
	for _, seg := range strings.Split(raw, "/") {
		if seg == ".." {
			return "", apperrors.ValidationField("path", "path must not leave the project root")
		}
	}
	cleaned := path.Clean(raw)
	if cleaned == "." {
		return "", nil
	}
	return cleaned, nil
}

// ParentPath returns the directory containing p, or "" at the root.
func ParentPath(p string) string {
	p = strings.Trim(p, "/")
	i := strings.LastIndex(p, "/")
	if i < 0 {
		return ""
	}
	return p[:i]
}
