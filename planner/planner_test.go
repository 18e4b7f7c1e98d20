package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boilerplan/boilerplan/advisor"
	"github.com/boilerplan/boilerplan/db"
)

func testCatalog(t *testing.T) *advisor.Catalog {
	t.Helper()

	courses := []db.Course{
		{Id: "CS18200", MajorId: "CS", Title: "Foundations of Computer Science", Credits: 3},
		{Id: "CS24000", MajorId: "CS", Title: "Programming in C", Credits: 3},
		{Id: "CS25100", MajorId: "CS", Title: "Data Structures and Algorithms", Credits: 3},
		{Id: "CS35200", MajorId: "CS", Title: "Compilers", Credits: 3},
		{Id: "CS49000", MajorId: "CS", Title: "Topics", Credits: 1},
	}
	prereqs := []db.Prereq{
		{Id: 1, MajorId: "CS", DstCourse: "CS25100", Kind: db.PrereqKindAllOf, Expr: []byte(`{"course_id": "CS 18200"}`), MinGrade: "C"},
		{Id: 2, MajorId: "CS", DstCourse: "CS25100", Kind: db.PrereqKindAllOf, Expr: []byte(`{"course_id": "CS 24000"}`), MinGrade: "C"},
	}
	offerings := []db.Offering{
		{Id: 1, CourseId: "CS25100", TermPattern: "F"},
		{Id: 2, CourseId: "CS35200", TermPattern: "*"},
		{Id: 3, CourseId: "CS18200", TermPattern: "F2026"},
	}

	catalog, err := advisor.BuildCatalog("CS", courses, prereqs, offerings, nil, nil, nil)
	require.NoError(t, err)
	return catalog
}

var completed = []advisor.TranscriptEntry{
	{CourseId: "CS 18200", Grade: "B"},
	{CourseId: "CS 24000", Grade: "B"},
}

func TestSuggestEarliestOfferedTerm(t *testing.T) {
	catalog := testCatalog(t)

	// Fall-only course asked from a spring term.
	suggestion, err := Suggest(catalog, "CS25100", completed, "S2025", 0)
	require.NoError(t, err)
	assert.True(t, suggestion.Feasible)
	assert.Equal(t, "F2025", suggestion.Term)

	// Offered every term: the starting term itself.
	suggestion, err = Suggest(catalog, "CS35200", nil, "S2025", 0)
	require.NoError(t, err)
	assert.True(t, suggestion.Feasible)
	assert.Equal(t, "S2025", suggestion.Term)

	// Exact-label pattern.
	suggestion, err = Suggest(catalog, "CS18200", nil, "S2025", 0)
	require.NoError(t, err)
	assert.True(t, suggestion.Feasible)
	assert.Equal(t, "F2026", suggestion.Term)
}

func TestSuggestBlockedByPrerequisites(t *testing.T) {
	catalog := testCatalog(t)

	suggestion, err := Suggest(catalog, "CS25100", []advisor.TranscriptEntry{{CourseId: "CS 18200", Grade: "B"}}, "S2025", 0)
	require.NoError(t, err)
	assert.False(t, suggestion.Feasible)
	assert.Contains(t, suggestion.Reason, "CS 24000")
}

func TestSuggestNoOfferings(t *testing.T) {
	catalog := testCatalog(t)

	suggestion, err := Suggest(catalog, "CS49000", nil, "S2025", 0)
	require.NoError(t, err)
	assert.False(t, suggestion.Feasible)
	assert.Contains(t, suggestion.Reason, "no recorded offerings")
}

func TestSuggestMalformedStartTerm(t *testing.T) {
	catalog := testCatalog(t)

	suggestion, err := Suggest(catalog, "CS35200", nil, "Fall 2025", 0)
	require.NoError(t, err)
	assert.False(t, suggestion.Feasible)
	assert.Contains(t, suggestion.Reason, "Fall 2025")
}

func TestSuggestUnknownCourse(t *testing.T) {
	catalog := testCatalog(t)

	_, err := Suggest(catalog, "CS11111", nil, "S2025", 0)
	var notFound *advisor.CourseNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "CS11111", notFound.CourseId)
}

func TestSuggestHorizonBound(t *testing.T) {
	catalog := testCatalog(t)

	// CS18200 is only offered F2026; two terms from S2025 cannot reach it.
	suggestion, err := Suggest(catalog, "CS18200", nil, "S2025", 2)
	require.NoError(t, err)
	assert.False(t, suggestion.Feasible)
	assert.Contains(t, suggestion.Reason, "not offered within 2 terms")
}
