package advisor

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/boilerplan/boilerplan/db"
	"github.com/boilerplan/boilerplan/logger"
)

// Service is the explicitly constructed entry point to the kernel:
// construct once, inject everywhere. The catalog snapshot is swapped
// atomically on Reload, so concurrent readers always see either the old
// or the new catalog in full.
type Service struct {
	database *db.Database
	log      *logger.Logger
	majorId  string
	catalog  atomic.Pointer[Catalog]
}

func NewService(ctx context.Context, database *db.Database, log *logger.Logger, majorId string) (*Service, error) {
	service := &Service{
		database: database,
		log:      log.With("service", "advisor"),
		majorId:  majorId,
	}
	if err := service.Reload(ctx); err != nil {
		return nil, err
	}
	return service, nil
}

func (s *Service) Snapshot() *Catalog {
	return s.catalog.Load()
}

// Reload rebuilds the snapshot from the store and swaps it in atomically.
// On failure the previous snapshot stays in place.
func (s *Service) Reload(ctx context.Context) error {
	catalog, err := LoadCatalog(ctx, s.database, s.majorId)
	if err != nil {
		s.log.Error("catalog reload failed", "major_id", s.majorId, "error", err)
		return err
	}
	s.catalog.Store(catalog)
	s.log.Info("catalog loaded", "major_id", s.majorId, "courses", len(catalog.Courses), "prereq_rules", len(catalog.Prereqs))
	return nil
}

func (s *Service) Validate(courseId string, transcript []TranscriptEntry) (ValidationResult, error) {
	return Validate(s.Snapshot(), courseId, transcript)
}

func (s *Service) Classify(question string) Intent {
	return Classify(question)
}

// Answer is the routed outcome of one question. Rows and Descriptor are
// set for t2sql; planner and general_chat hand back to the caller.
type Answer struct {
	Mode       Intent           `json:"mode"`
	Descriptor *QueryDescriptor `json:"descriptor,omitempty"`
	Rows       []Row            `json:"rows,omitempty"`
	Message    string           `json:"message,omitempty"`
}

// Ask classifies the question and, for catalog lookups, extracts a
// descriptor and executes it. An unparsable question degrades to
// general_chat instead of failing.
func (s *Service) Ask(ctx context.Context, question string) (Answer, error) {
	mode := Classify(question)
	if mode != IntentT2SQL {
		return Answer{Mode: mode}, nil
	}

	descriptor, err := Extract(question)
	if errors.Is(err, ErrUnparsable) {
		s.log.Debug("question not parsable, degrading to general chat", "question", question)
		return Answer{Mode: IntentGeneralChat}, nil
	}
	if err != nil {
		return Answer{}, err
	}

	rows, err := ExecuteQuery(ctx, s.database, descriptor)
	if err != nil {
		return Answer{}, err
	}

	answer := Answer{Mode: IntentT2SQL, Descriptor: &descriptor, Rows: rows}
	if len(rows) == 0 {
		answer.Message = "No catalog entry found for " + descriptor.TargetCourse + ". Check the course code and try again."
	}
	return answer, nil
}
