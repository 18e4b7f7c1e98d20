package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/boilerplan/boilerplan/db"
)

// PrereqRule is one stored prerequisite row with its expression decoded.
type PrereqRule struct {
	Id        int64
	DstCourse string
	Kind      db.PrereqKind
	Expr      ExprNode
	MinGrade  string
}

type TrackGroup struct {
	Key     string
	Need    int
	Courses []string
}

type Track struct {
	Id     int64
	Name   string
	Groups []TrackGroup
}

// Catalog is an immutable snapshot of one major's course data. It is built
// once per load and never mutated afterwards, so concurrent readers need
// no locking.
type Catalog struct {
	MajorId   string
	Courses   map[string]db.Course    // keyed by normalized course id
	Prereqs   map[string][]PrereqRule // keyed by normalized destination id
	Offerings map[string][]string     // normalized course id -> term patterns
	Tracks    []Track
	Policy    *db.Policy
}

// NormalizeCourseId maps casing/spacing variants of a course code onto the
// stored form: "cs 251" and "CS251" both become "CS251".
func NormalizeCourseId(id string) string {
	return strings.ToUpper(strings.Join(strings.Fields(id), ""))
}

func (c *Catalog) Course(id string) (db.Course, bool) {
	course, okay := c.Courses[NormalizeCourseId(id)]
	return course, okay
}

func (c *Catalog) PrereqsFor(courseId string) []PrereqRule {
	return c.Prereqs[NormalizeCourseId(courseId)]
}

func BuildCatalog(majorId string, courses []db.Course, prereqs []db.Prereq, offerings []db.Offering, tracks []db.Track, trackGroups []db.TrackGroup, policy *db.Policy) (*Catalog, error) {
	catalog := &Catalog{
		MajorId:   majorId,
		Courses:   make(map[string]db.Course, len(courses)),
		Prereqs:   make(map[string][]PrereqRule),
		Offerings: make(map[string][]string),
		Policy:    policy,
	}

	for _, course := range courses {
		catalog.Courses[NormalizeCourseId(course.Id)] = course
	}

	for _, prereq := range prereqs {
		dst := NormalizeCourseId(prereq.DstCourse)
		if _, okay := catalog.Courses[dst]; !okay {
			return nil, fmt.Errorf("prereq %v: destination course %v does not exist", prereq.Id, prereq.DstCourse)
		}

		expr, err := DecodeExpr(prereq.Expr)
		if err != nil {
			return nil, fmt.Errorf("prereq %v for %v: %w", prereq.Id, prereq.DstCourse, err)
		}
		for _, leaf := range expr.Leaves() {
			if _, okay := catalog.Courses[NormalizeCourseId(leaf)]; !okay {
				return nil, fmt.Errorf("prereq %v for %v: leaf course %v does not exist", prereq.Id, prereq.DstCourse, leaf)
			}
		}

		minGrade := prereq.MinGrade
		if minGrade == "" {
			minGrade = string(db.GradeC)
		}

		catalog.Prereqs[dst] = append(catalog.Prereqs[dst], PrereqRule{
			Id:        prereq.Id,
			DstCourse: prereq.DstCourse,
			Kind:      prereq.Kind,
			Expr:      expr,
			MinGrade:  minGrade,
		})
	}

	for _, offering := range offerings {
		courseId := NormalizeCourseId(offering.CourseId)
		if _, okay := catalog.Courses[courseId]; !okay {
			return nil, fmt.Errorf("offering %v: course %v does not exist", offering.Id, offering.CourseId)
		}
		catalog.Offerings[courseId] = append(catalog.Offerings[courseId], offering.TermPattern)
	}

	groupsByTrack := make(map[int64][]TrackGroup)
	for _, trackGroup := range trackGroups {
		var courseList []string
		if err := json.Unmarshal(trackGroup.CourseList, &courseList); err != nil {
			return nil, fmt.Errorf("track group %v: decode course list: %w", trackGroup.Id, err)
		}
		for _, courseId := range courseList {
			if _, okay := catalog.Courses[NormalizeCourseId(courseId)]; !okay {
				return nil, fmt.Errorf("track group %v: course %v does not exist", trackGroup.Id, courseId)
			}
		}
		if trackGroup.Need > len(courseList) {
			return nil, fmt.Errorf("track group %v: need %v exceeds %v listed courses", trackGroup.Id, trackGroup.Need, len(courseList))
		}
		groupsByTrack[trackGroup.TrackId] = append(groupsByTrack[trackGroup.TrackId], TrackGroup{
			Key:     trackGroup.Key,
			Need:    trackGroup.Need,
			Courses: courseList,
		})
	}
	for _, track := range tracks {
		catalog.Tracks = append(catalog.Tracks, Track{Id: track.Id, Name: track.Name, Groups: groupsByTrack[track.Id]})
	}

	return catalog, nil
}

// LoadCatalog reads one major's rows and builds an immutable snapshot.
// Any failure wraps ErrCatalogUnavailable: no partial catalog is returned.
func LoadCatalog(ctx context.Context, database *db.Database, majorId string) (*Catalog, error) {
	courses, err := database.ListCourses(ctx, majorId)
	if err != nil {
		return nil, fmt.Errorf("%w: list courses: %v", ErrCatalogUnavailable, err)
	}
	prereqs, err := database.ListPrereqs(ctx, majorId)
	if err != nil {
		return nil, fmt.Errorf("%w: list prereqs: %v", ErrCatalogUnavailable, err)
	}
	offerings, err := database.ListOfferings(ctx, majorId)
	if err != nil {
		return nil, fmt.Errorf("%w: list offerings: %v", ErrCatalogUnavailable, err)
	}
	tracks, err := database.ListTracks(ctx, majorId)
	if err != nil {
		return nil, fmt.Errorf("%w: list tracks: %v", ErrCatalogUnavailable, err)
	}
	trackGroups, err := database.ListTrackGroups(ctx, majorId)
	if err != nil {
		return nil, fmt.Errorf("%w: list track groups: %v", ErrCatalogUnavailable, err)
	}
	policy, err := database.GetPolicy(ctx, majorId)
	if err != nil {
		return nil, fmt.Errorf("%w: get policy: %v", ErrCatalogUnavailable, err)
	}

	catalog, err := BuildCatalog(majorId, courses, prereqs, offerings, tracks, trackGroups, policy)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	return catalog, nil
}
