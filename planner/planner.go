// Package planner suggests when a course can first be taken: the
// earliest term, in term-key order, whose offering pattern matches and
// whose prerequisites the transcript already satisfies.
package planner

import (
	"fmt"
	"strings"

	"github.com/boilerplan/boilerplan/advisor"
)

type Suggestion struct {
	CourseId string `json:"course_id"`
	Term     string `json:"term,omitempty"`
	Feasible bool   `json:"feasible"`
	Reason   string `json:"reason,omitempty"`
}

// defaultHorizon bounds the term walk so a never-offered course cannot
// loop forever.
const defaultHorizon = 12

func Suggest(catalog *advisor.Catalog, courseId string, transcript []advisor.TranscriptEntry, fromTerm string, horizon int) (Suggestion, error) {
	course, okay := catalog.Course(courseId)
	if !okay {
		return Suggestion{}, &advisor.CourseNotFoundError{CourseId: courseId}
	}
	suggestion := Suggestion{CourseId: course.Id}

	result, err := advisor.Validate(catalog, courseId, transcript)
	if err != nil {
		return Suggestion{}, err
	}
	if !result.Valid {
		suggestion.Reason = fmt.Sprintf("prerequisites not yet satisfied: missing %v", strings.Join(append(result.MissingPrerequisites, result.InsufficientGrades...), ", "))
		return suggestion, nil
	}

	patterns := catalog.Offerings[advisor.NormalizeCourseId(courseId)]
	if len(patterns) == 0 {
		suggestion.Reason = "no recorded offerings for this course"
		return suggestion, nil
	}

	if !advisor.TermToSortKey(fromTerm).Valid() {
		suggestion.Reason = fmt.Sprintf("unrecognized starting term %q", fromTerm)
		return suggestion, nil
	}
	if horizon <= 0 {
		horizon = defaultHorizon
	}

	term := fromTerm
	for i := 0; i < horizon; i++ {
		for _, pattern := range patterns {
			if patternMatchesTerm(pattern, term) {
				suggestion.Term = term
				suggestion.Feasible = true
				return suggestion, nil
			}
		}
		term = nextTerm(term)
	}

	suggestion.Reason = fmt.Sprintf("not offered within %v terms of %v", horizon, fromTerm)
	return suggestion, nil
}

// patternMatchesTerm accepts "*" (every term), bare season codes ("F",
// "S", comma-separated), and exact term labels ("F2024"). Anything else
// matches nothing rather than guessing.
func patternMatchesTerm(pattern, term string) bool {
	season := term[:1]
	for _, part := range strings.Split(pattern, ",") {
		part = strings.TrimSpace(part)
		if part == "*" || part == season || part == term {
			return true
		}
	}
	return false
}

func nextTerm(term string) string {
	key := advisor.TermToSortKey(term)
	if key.SeasonRank == 1 {
		return fmt.Sprintf("F%04d", key.Year)
	}
	return fmt.Sprintf("S%04d", key.Year+1)
}
