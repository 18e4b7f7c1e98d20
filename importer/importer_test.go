package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/boilerplan/boilerplan/advisor"
	"github.com/boilerplan/boilerplan/db"
	"github.com/boilerplan/boilerplan/logger"
)

func testImporter() *Importer {
	return New(&logger.Logger{SugaredLogger: zap.NewNop().Sugar()}, "CS")
}

const catalogPage = `<html><body>
<table class="course-list"><tbody>
<tr class="course">
  <td class="code">CS 18000</td><td class="title">Problem Solving &amp; OOP</td>
  <td class="credits">4</td><td class="level">100</td>
  <td class="requisites">none</td><td class="offered">F,S</td>
</tr>
<tr class="course">
  <td class="code">CS 25100</td><td class="title">Data Structures</td>
  <td class="credits">3</td><td class="level">200</td>
  <td class="requisites">CS 18200; CS 24000</td><td class="offered">F,S</td>
</tr>
<tr class="course">
  <td class="code">CS 18200</td><td class="title">Foundations</td>
  <td class="credits">3</td><td class="level"></td>
  <td class="requisites">MA 16100 or MA 16200 (min grade B-)</td><td class="offered">F</td>
</tr>
<tr class="course">
  <td class="code">CS 25000</td><td class="title">Architecture</td>
  <td class="credits">4</td><td class="level">200</td>
  <td class="requisites">coreq: CS 24000</td><td class="offered"></td>
</tr>
</tbody></table>
</body></html>`

func TestParseCatalogPage(t *testing.T) {
	data, err := testImporter().ParseCatalogPage(strings.NewReader(catalogPage))
	require.NoError(t, err)

	require.Len(t, data.Courses, 4)
	first := data.Courses[0]
	assert.Equal(t, "CS18000", first.Id)
	assert.Equal(t, "Problem Solving & OOP", first.Title)
	assert.Equal(t, 4.0, first.Credits)
	require.NotNil(t, first.Level)
	assert.Equal(t, 100, *first.Level)
	assert.Nil(t, data.Courses[2].Level)

	require.Len(t, data.Offerings, 3)
	assert.Equal(t, "CS18000", data.Offerings[0].CourseId)
	assert.Equal(t, "F,S", data.Offerings[0].TermPattern)
}

func TestParseCatalogPagePrereqRows(t *testing.T) {
	data, err := testImporter().ParseCatalogPage(strings.NewReader(catalogPage))
	require.NoError(t, err)

	byDst := map[string][]db.Prereq{}
	for _, prereq := range data.Prereqs {
		byDst[prereq.DstCourse] = append(byDst[prereq.DstCourse], prereq)
	}

	// Semicolon-separated clauses become independent allof rows.
	require.Len(t, byDst["CS25100"], 2)
	for _, prereq := range byDst["CS25100"] {
		assert.Equal(t, db.PrereqKindAllOf, prereq.Kind)
		assert.Equal(t, "C", prereq.MinGrade)
	}

	require.Len(t, byDst["CS18200"], 1)
	oneOf := byDst["CS18200"][0]
	assert.Equal(t, db.PrereqKindOneOf, oneOf.Kind)
	assert.Equal(t, "B-", oneOf.MinGrade)
	expr, err := advisor.DecodeExpr(oneOf.Expr)
	require.NoError(t, err)
	assert.Equal(t, advisor.NodeOr, expr.Type)
	assert.Equal(t, []string{"MA16100", "MA16200"}, expr.Leaves())

	require.Len(t, byDst["CS25000"], 1)
	assert.Equal(t, db.PrereqKindCoreq, byDst["CS25000"][0].Kind)

	// "none" produces no rows.
	assert.Empty(t, byDst["CS18000"])
}

func TestParseRequisiteClauseMixedOperatorsSkipped(t *testing.T) {
	_, okay := testImporter().parseRequisiteClause("CS30700", "CS 18200 and CS 24000 or CS 24200")
	assert.False(t, okay)
}

func TestParseRequisiteClauseSingleCourse(t *testing.T) {
	prereq, okay := testImporter().parseRequisiteClause("CS35200", "CS 25100")
	require.True(t, okay)
	assert.Equal(t, db.PrereqKindAllOf, prereq.Kind)

	expr, err := advisor.DecodeExpr(prereq.Expr)
	require.NoError(t, err)
	assert.Equal(t, advisor.ExprNode{Type: advisor.NodeValue, CourseId: "CS25100"}, expr)
}
