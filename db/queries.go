package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// One statement per entry: pgx's extended protocol rejects
// multi-statement strings.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS majors (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	version TEXT NOT NULL DEFAULT '',
	active BOOLEAN NOT NULL DEFAULT TRUE
)`,
	`CREATE TABLE IF NOT EXISTS courses (
	id TEXT PRIMARY KEY,
	major_id TEXT NOT NULL REFERENCES majors(id),
	title TEXT NOT NULL,
	credits NUMERIC NOT NULL DEFAULT 0,
	level INTEGER
)`,
	`CREATE TABLE IF NOT EXISTS prereqs (
	id BIGSERIAL PRIMARY KEY,
	major_id TEXT NOT NULL REFERENCES majors(id),
	dst_course TEXT NOT NULL REFERENCES courses(id),
	kind TEXT NOT NULL CHECK (kind IN ('allof', 'oneof', 'coreq')),
	expr JSONB NOT NULL,
	min_grade TEXT NOT NULL DEFAULT 'C'
)`,
	`CREATE TABLE IF NOT EXISTS requirements (
	id BIGSERIAL PRIMARY KEY,
	major_id TEXT NOT NULL REFERENCES majors(id),
	key TEXT NOT NULL,
	rule JSONB NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS offerings (
	id BIGSERIAL PRIMARY KEY,
	course_id TEXT NOT NULL REFERENCES courses(id),
	term_pattern TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS tracks (
	id BIGSERIAL PRIMARY KEY,
	major_id TEXT NOT NULL REFERENCES majors(id),
	name TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS track_groups (
	id BIGSERIAL PRIMARY KEY,
	track_id BIGINT NOT NULL REFERENCES tracks(id),
	key TEXT NOT NULL,
	need INTEGER NOT NULL,
	course_list JSONB NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS policies (
	major_id TEXT PRIMARY KEY REFERENCES majors(id),
	max_credits_per_term NUMERIC NOT NULL,
	summer_allowed_default BOOLEAN NOT NULL,
	min_grade_default TEXT NOT NULL DEFAULT 'C',
	overload_requires_approval BOOLEAN NOT NULL
)`,
}

const listCourses = `SELECT id, major_id, title, credits, level FROM courses WHERE major_id = $1 ORDER BY id`
const listPrereqs = `SELECT id, major_id, dst_course, kind, expr, min_grade FROM prereqs WHERE major_id = $1 ORDER BY id`
const listOfferings = `SELECT offerings.id, offerings.course_id, offerings.term_pattern FROM offerings JOIN courses ON offerings.course_id = courses.id WHERE courses.major_id = $1 ORDER BY offerings.id`
const listTracks = `SELECT id, major_id, name FROM tracks WHERE major_id = $1 ORDER BY id`
const listTrackGroups = `SELECT track_groups.id, track_groups.track_id, track_groups.key, track_groups.need, track_groups.course_list FROM track_groups JOIN tracks ON track_groups.track_id = tracks.id WHERE tracks.major_id = $1 ORDER BY track_groups.id`
const getPolicy = `SELECT major_id, max_credits_per_term, summer_allowed_default, min_grade_default, overload_requires_approval FROM policies WHERE major_id = $1`

const insertMajor = `INSERT INTO majors (id, name, version, active) VALUES ($1, $2, $3, $4) ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name, version=EXCLUDED.version, active=EXCLUDED.active`
const insertCourse = `INSERT INTO courses (id, major_id, title, credits, level) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, credits=EXCLUDED.credits, level=EXCLUDED.level`
const insertPrereq = `INSERT INTO prereqs (major_id, dst_course, kind, expr, min_grade) VALUES ($1, $2, $3, $4, $5)`
const insertOffering = `INSERT INTO offerings (course_id, term_pattern) VALUES ($1, $2)`
const insertTrack = `INSERT INTO tracks (major_id, name) VALUES ($1, $2) RETURNING id`
const insertTrackGroup = `INSERT INTO track_groups (track_id, key, need, course_list) VALUES ($1, $2, $3, $4)`
const upsertPolicy = `INSERT INTO policies (major_id, max_credits_per_term, summer_allowed_default, min_grade_default, overload_requires_approval) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (major_id) DO UPDATE SET max_credits_per_term=EXCLUDED.max_credits_per_term, summer_allowed_default=EXCLUDED.summer_allowed_default, min_grade_default=EXCLUDED.min_grade_default, overload_requires_approval=EXCLUDED.overload_requires_approval`

func insertCallback(ct pgconn.CommandTag) error {
	return nil
}

func (d *Database) CreateSchema(ctx context.Context) error {
	for _, statement := range schemaStatements {
		if _, err := d.Pool.Exec(ctx, statement); err != nil {
			return err
		}
	}
	return nil
}

func (d *Database) InsertMajor(ctx context.Context, major Major) error {
	_, err := d.Pool.Exec(ctx, insertMajor, major.Id, major.Name, major.Version, major.Active)
	return err
}

func (d *Database) ListCourses(ctx context.Context, majorId string) ([]Course, error) {
	rows, err := d.Pool.Query(ctx, listCourses, majorId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []Course
	for rows.Next() {
		var course Course
		if err := rows.Scan(&course.Id, &course.MajorId, &course.Title, &course.Credits, &course.Level); err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

func (d *Database) InsertCourses(ctx context.Context, courses []Course) error {
	if len(courses) == 0 {
		return nil
	}

	batch := pgx.Batch{}
	var queuedQueries []*pgx.QueuedQuery

	for _, course := range courses {
		queuedQueries = append(queuedQueries, batch.Queue(insertCourse, course.Id, course.MajorId, course.Title, course.Credits, course.Level))
	}

	for _, queuedQuery := range queuedQueries {
		queuedQuery.Exec(insertCallback)
	}

	if err := d.Pool.SendBatch(ctx, &batch).Close(); err != nil {
		return err
	}

	return nil
}

func (d *Database) ListPrereqs(ctx context.Context, majorId string) ([]Prereq, error) {
	rows, err := d.Pool.Query(ctx, listPrereqs, majorId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prereqs []Prereq
	for rows.Next() {
		var prereq Prereq
		if err := rows.Scan(&prereq.Id, &prereq.MajorId, &prereq.DstCourse, &prereq.Kind, &prereq.Expr, &prereq.MinGrade); err != nil {
			return nil, err
		}
		prereqs = append(prereqs, prereq)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return prereqs, nil
}

func (d *Database) InsertPrereqs(ctx context.Context, prereqs []Prereq) error {
	if len(prereqs) == 0 {
		return nil
	}

	batch := pgx.Batch{}
	var queuedQueries []*pgx.QueuedQuery

	for _, prereq := range prereqs {
		queuedQueries = append(queuedQueries, batch.Queue(insertPrereq, prereq.MajorId, prereq.DstCourse, prereq.Kind, prereq.Expr, prereq.MinGrade))
	}

	for _, queuedQuery := range queuedQueries {
		queuedQuery.Exec(insertCallback)
	}

	if err := d.Pool.SendBatch(ctx, &batch).Close(); err != nil {
		return err
	}

	return nil
}

func (d *Database) ListOfferings(ctx context.Context, majorId string) ([]Offering, error) {
	rows, err := d.Pool.Query(ctx, listOfferings, majorId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offerings []Offering
	for rows.Next() {
		var offering Offering
		if err := rows.Scan(&offering.Id, &offering.CourseId, &offering.TermPattern); err != nil {
			return nil, err
		}
		offerings = append(offerings, offering)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return offerings, nil
}

func (d *Database) InsertOfferings(ctx context.Context, offerings []Offering) error {
	if len(offerings) == 0 {
		return nil
	}

	batch := pgx.Batch{}
	var queuedQueries []*pgx.QueuedQuery

	for _, offering := range offerings {
		queuedQueries = append(queuedQueries, batch.Queue(insertOffering, offering.CourseId, offering.TermPattern))
	}

	for _, queuedQuery := range queuedQueries {
		queuedQuery.Exec(insertCallback)
	}

	if err := d.Pool.SendBatch(ctx, &batch).Close(); err != nil {
		return err
	}

	return nil
}

func (d *Database) ListTracks(ctx context.Context, majorId string) ([]Track, error) {
	rows, err := d.Pool.Query(ctx, listTracks, majorId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []Track
	for rows.Next() {
		var track Track
		if err := rows.Scan(&track.Id, &track.MajorId, &track.Name); err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tracks, nil
}

func (d *Database) InsertTrack(ctx context.Context, track Track) (int64, error) {
	var id int64
	if err := d.Pool.QueryRow(ctx, insertTrack, track.MajorId, track.Name).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (d *Database) ListTrackGroups(ctx context.Context, majorId string) ([]TrackGroup, error) {
	rows, err := d.Pool.Query(ctx, listTrackGroups, majorId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trackGroups []TrackGroup
	for rows.Next() {
		var trackGroup TrackGroup
		if err := rows.Scan(&trackGroup.Id, &trackGroup.TrackId, &trackGroup.Key, &trackGroup.Need, &trackGroup.CourseList); err != nil {
			return nil, err
		}
		trackGroups = append(trackGroups, trackGroup)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return trackGroups, nil
}

func (d *Database) InsertTrackGroups(ctx context.Context, trackGroups []TrackGroup) error {
	if len(trackGroups) == 0 {
		return nil
	}

	batch := pgx.Batch{}
	var queuedQueries []*pgx.QueuedQuery

	for _, trackGroup := range trackGroups {
		queuedQueries = append(queuedQueries, batch.Queue(insertTrackGroup, trackGroup.TrackId, trackGroup.Key, trackGroup.Need, trackGroup.CourseList))
	}

	for _, queuedQuery := range queuedQueries {
		queuedQuery.Exec(insertCallback)
	}

	if err := d.Pool.SendBatch(ctx, &batch).Close(); err != nil {
		return err
	}

	return nil
}

func (d *Database) GetPolicy(ctx context.Context, majorId string) (*Policy, error) {
	var policy Policy
	err := d.Pool.QueryRow(ctx, getPolicy, majorId).Scan(&policy.MajorId, &policy.MaxCreditsPerTerm, &policy.SummerAllowedDefault, &policy.MinGradeDefault, &policy.OverloadRequiresApproval)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &policy, nil
}

func (d *Database) UpsertPolicy(ctx context.Context, policy Policy) error {
	_, err := d.Pool.Exec(ctx, upsertPolicy, policy.MajorId, policy.MaxCreditsPerTerm, policy.SummerAllowedDefault, policy.MinGradeDefault, policy.OverloadRequiresApproval)
	return err
}
