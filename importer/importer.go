// Package importer parses exported catalog HTML pages into store rows.
// A page carries one table.course-list whose rows hold the course code,
// title, credits, level, requisite text, and offered seasons.
package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/boilerplan/boilerplan/advisor"
	"github.com/boilerplan/boilerplan/db"
	"github.com/boilerplan/boilerplan/logger"
)

type CatalogData struct {
	Courses   []db.Course
	Prereqs   []db.Prereq
	Offerings []db.Offering
}

type Importer struct {
	log     *logger.Logger
	majorId string
}

func New(log *logger.Logger, majorId string) *Importer {
	return &Importer{log: log.With("component", "importer"), majorId: majorId}
}

func (imp *Importer) ParseCatalogPage(reader io.Reader) (CatalogData, error) {
	document, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return CatalogData{}, fmt.Errorf("parse catalog page: %w", err)
	}

	var data CatalogData

	courseRows := document.Find("table.course-list").Find("tbody").Find("tr.course")
	for _, root := range courseRows.Nodes {
		courseRow := goquery.NewDocumentFromNode(root)

		code := cellText(courseRow, "td.code")
		if code == "" {
			imp.log.Warn("course row without a code, skipping")
			continue
		}
		courseId := advisor.NormalizeCourseId(code)

		credits, err := strconv.ParseFloat(cellText(courseRow, "td.credits"), 64)
		if err != nil {
			imp.log.Warn("unreadable credits, assuming 0", "course", courseId, "error", err)
			credits = 0
		}

		course := db.Course{
			Id:      courseId,
			MajorId: imp.majorId,
			Title:   cellText(courseRow, "td.title"),
			Credits: credits,
		}
		if levelText := cellText(courseRow, "td.level"); levelText != "" {
			if level, err := strconv.Atoi(levelText); err == nil {
				course.Level = &level
			}
		}
		data.Courses = append(data.Courses, course)

		for _, clause := range strings.Split(cellText(courseRow, "td.requisites"), ";") {
			prereq, okay := imp.parseRequisiteClause(courseId, clause)
			if okay {
				data.Prereqs = append(data.Prereqs, prereq)
			}
		}

		if offered := cellText(courseRow, "td.offered"); offered != "" {
			data.Offerings = append(data.Offerings, db.Offering{CourseId: courseId, TermPattern: offered})
		}
	}

	return data, nil
}

// parseRequisiteClause converts legacy requisite text into one stored
// rule. "CS 18200 and CS 24000" becomes an allof AND tree, "or" an
// oneof OR set, and a "coreq:" prefix marks concurrent enrollment.
// A "(min grade X)" suffix overrides the default threshold.
func (imp *Importer) parseRequisiteClause(dstCourse, clause string) (db.Prereq, bool) {
	clause = strings.TrimSpace(clause)
	if clause == "" || strings.EqualFold(clause, "none") {
		return db.Prereq{}, false
	}

	kind := db.PrereqKindAllOf
	if rest, found := strings.CutPrefix(strings.ToLower(clause), "coreq:"); found {
		kind = db.PrereqKindCoreq
		clause = strings.TrimSpace(clause[len(clause)-len(rest):])
	}

	minGrade := string(db.GradeC)
	if open := strings.Index(clause, "(min grade "); open >= 0 {
		end := strings.Index(clause[open:], ")")
		if end > 0 {
			minGrade = strings.TrimSpace(clause[open+len("(min grade ") : open+end])
			clause = strings.TrimSpace(clause[:open] + clause[open+end+1:])
		}
	}

	lowered := strings.ToLower(clause)
	if strings.Contains(lowered, " and ") && strings.Contains(lowered, " or ") {
		imp.log.Warn("mixed and/or requisite clause not supported, skipping", "course", dstCourse, "clause", clause)
		return db.Prereq{}, false
	}

	separator := " and "
	nodeType := advisor.NodeAnd
	if strings.Contains(lowered, " or ") {
		separator = " or "
		nodeType = advisor.NodeOr
		if kind != db.PrereqKindCoreq {
			kind = db.PrereqKindOneOf
		}
	}

	var leaves []advisor.ExprNode
	for _, part := range splitFold(clause, separator) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		leaves = append(leaves, advisor.ExprNode{Type: advisor.NodeValue, CourseId: advisor.NormalizeCourseId(part)})
	}
	if len(leaves) == 0 {
		return db.Prereq{}, false
	}

	expr := leaves[0]
	if len(leaves) > 1 {
		expr = advisor.ExprNode{Type: nodeType, Children: leaves}
	}
	raw, err := advisor.EncodeExpr(expr)
	if err != nil {
		imp.log.Warn("unable to encode requisite expression, skipping", "course", dstCourse, "error", err)
		return db.Prereq{}, false
	}

	return db.Prereq{
		MajorId:   imp.majorId,
		DstCourse: dstCourse,
		Kind:      kind,
		Expr:      raw,
		MinGrade:  minGrade,
	}, true
}

func cellText(row *goquery.Document, selector string) string {
	raw, err := row.Find(selector).Html()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(raw))
}

// splitFold splits case-insensitively on separator.
func splitFold(text, separator string) []string {
	var parts []string
	lowered := strings.ToLower(text)
	for {
		index := strings.Index(lowered, separator)
		if index < 0 {
			parts = append(parts, text)
			return parts
		}
		parts = append(parts, text[:index])
		text = text[index+len(separator):]
		lowered = lowered[index+len(separator):]
	}
}
