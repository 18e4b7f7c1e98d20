package advisor

import (
	"context"
	"fmt"

	"github.com/boilerplan/boilerplan/db"
)

// One vetted template per attribute. The target course is always bound
// as a parameter; no query text ever comes from the question itself.
const queryDescription = `SELECT id, title, credits, level FROM courses WHERE id = $1`
const queryPrerequisites = `SELECT dst_course, kind, expr, min_grade FROM prereqs WHERE dst_course = $1 ORDER BY id`
const queryCredits = `SELECT id, credits FROM courses WHERE id = $1`
const queryOfferings = `SELECT course_id, term_pattern FROM offerings WHERE course_id = $1 ORDER BY id`

var queryTemplates = map[Attribute]string{
	AttributeDescription:   queryDescription,
	AttributePrerequisites: queryPrerequisites,
	AttributeCredits:       queryCredits,
	AttributeOfferings:     queryOfferings,
	AttributeScheduleTypes: queryOfferings,
}

type Row struct {
	Columns []string `json:"columns"`
	Values  []any    `json:"values"`
}

// ExecuteQuery runs the descriptor's template against the catalog store.
// A well-formed course id that is absent from the store yields zero rows,
// not an error; the caller shapes that into a clarifying message.
func ExecuteQuery(ctx context.Context, database *db.Database, descriptor QueryDescriptor) ([]Row, error) {
	template, okay := queryTemplates[descriptor.RequestedAttribute]
	if !okay {
		return nil, fmt.Errorf("no query template for attribute %v", descriptor.RequestedAttribute)
	}

	rows, err := database.Pool.Query(ctx, template, descriptor.TargetCourse)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	defer rows.Close()

	var columns []string
	for _, field := range rows.FieldDescriptions() {
		columns = append(columns, field.Name)
	}

	results := []Row{}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		results = append(results, Row{Columns: columns, Values: values})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
