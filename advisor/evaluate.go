package advisor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/boilerplan/boilerplan/db"
)

// TranscriptEntry is caller-supplied coursework. An empty Grade means the
// course is in progress and carries no recorded grade yet.
type TranscriptEntry struct {
	CourseId string `json:"course_id"`
	Grade    string `json:"grade"`
}

type ValidationResult struct {
	CourseId             string   `json:"course_id"`
	Valid                bool     `json:"valid"`
	MissingPrerequisites []string `json:"missing_prerequisites"`
	InsufficientGrades   []string `json:"insufficient_grades"`
	DetailedIssues       []string `json:"detailed_issues"`
	GradeWarnings        []string `json:"grade_warnings,omitempty"`
}

type evaluation struct {
	transcript   map[string]string
	missing      map[string]bool
	insufficient map[string]bool
	warnings     []string
}

// Validate checks every stored prerequisite rule for courseId against the
// transcript. A course with no rules is trivially valid. An unknown course
// id yields a CourseNotFoundError, never an empty success.
func Validate(catalog *Catalog, courseId string, transcript []TranscriptEntry) (ValidationResult, error) {
	course, okay := catalog.Course(courseId)
	if !okay {
		return ValidationResult{}, &CourseNotFoundError{CourseId: courseId}
	}

	eval := &evaluation{
		transcript:   make(map[string]string, len(transcript)),
		missing:      make(map[string]bool),
		insufficient: make(map[string]bool),
	}
	for _, entry := range transcript {
		eval.transcript[NormalizeCourseId(entry.CourseId)] = entry.Grade
	}

	result := ValidationResult{CourseId: course.Id, Valid: true}

	rules := catalog.PrereqsFor(courseId)
	allOfRules := 0
	allOfUnsatisfied := false
	for _, rule := range rules {
		satisfied := eval.node(rule, rule.Expr)
		if rule.Kind == db.PrereqKindAllOf {
			allOfRules++
			if !satisfied {
				allOfUnsatisfied = true
			}
		}
		if !satisfied {
			result.Valid = false
			result.DetailedIssues = append(result.DetailedIssues, describeRule(course.Id, rule))
		}
	}

	// Two or more independent allof rules are jointly required; surface
	// that as one combined line on top of the per-course entries.
	if allOfRules >= 2 && allOfUnsatisfied {
		var parts []string
		for _, rule := range rules {
			if rule.Kind == db.PrereqKindAllOf {
				parts = append(parts, strings.Join(rule.Expr.Leaves(), " AND "))
			}
		}
		line := fmt.Sprintf("%v requires BOTH %v", course.Id, strings.Join(parts, " AND "))
		result.DetailedIssues = append(result.DetailedIssues, line)
	}

	result.MissingPrerequisites = sortedKeys(eval.missing)
	result.InsufficientGrades = sortedKeys(eval.insufficient)
	result.GradeWarnings = eval.warnings
	return result, nil
}

// node evaluates one expression node. AND nodes never short-circuit, so
// every unsatisfied child is recorded and the caller sees the full gap.
func (e *evaluation) node(rule PrereqRule, node ExprNode) bool {
	switch node.Type {
	case NodeValue:
		return e.leaf(rule, node.CourseId)
	case NodeAnd:
		satisfied := true
		for _, child := range node.Children {
			if !e.node(rule, child) {
				satisfied = false
			}
		}
		return satisfied
	case NodeOr:
		for _, child := range node.Children {
			if e.satisfiedQuietly(rule, child) {
				return true
			}
		}
		// No alternative holds: report every leaf so the caller can
		// pick one.
		for _, child := range node.Children {
			e.node(rule, child)
		}
		return false
	}
	return false
}

// satisfiedQuietly checks a node without recording any gaps.
func (e *evaluation) satisfiedQuietly(rule PrereqRule, node ExprNode) bool {
	probe := &evaluation{
		transcript:   e.transcript,
		missing:      make(map[string]bool),
		insufficient: make(map[string]bool),
	}
	return probe.node(rule, node)
}

func (e *evaluation) leaf(rule PrereqRule, courseId string) bool {
	grade, present := e.transcript[NormalizeCourseId(courseId)]

	// Corequisites accept concurrent enrollment: presence is enough and
	// no grade threshold applies.
	if rule.Kind == db.PrereqKindCoreq {
		if !present {
			e.missing[courseId] = true
		}
		return present
	}

	if !present || grade == "" {
		e.missing[courseId] = true
		return false
	}

	meets, okay := MeetsGradeRequirement(grade, rule.MinGrade)
	if !okay {
		if !ValidGrade(grade) {
			e.warnings = append(e.warnings, fmt.Sprintf("transcript grade %q for %v is not a recognized letter grade", grade, courseId))
		}
		if !ValidGrade(rule.MinGrade) {
			e.warnings = append(e.warnings, fmt.Sprintf("stored minimum grade %q for %v is not a recognized letter grade", rule.MinGrade, rule.DstCourse))
		}
		e.missing[courseId] = true
		return false
	}
	if !meets {
		e.insufficient[courseId] = true
		return false
	}
	return true
}

func describeRule(dstCourse string, rule PrereqRule) string {
	leaves := rule.Expr.Leaves()
	switch rule.Kind {
	case db.PrereqKindOneOf:
		return fmt.Sprintf("%v requires one of %v (min grade %v)", dstCourse, strings.Join(leaves, ", "), rule.MinGrade)
	case db.PrereqKindCoreq:
		return fmt.Sprintf("%v requires prior or concurrent enrollment in %v", dstCourse, strings.Join(leaves, ", "))
	}
	return fmt.Sprintf("%v requires %v (min grade %v)", dstCourse, strings.Join(leaves, " AND "), rule.MinGrade)
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
