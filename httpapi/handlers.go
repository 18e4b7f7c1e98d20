package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/boilerplan/boilerplan/advisor"
	"github.com/boilerplan/boilerplan/logger"
	"github.com/boilerplan/boilerplan/planner"
)

// Service is what the handlers need from the advisor kernel. The
// concrete *advisor.Service satisfies it.
type Service interface {
	Ask(ctx context.Context, question string) (advisor.Answer, error)
	Validate(courseId string, transcript []advisor.TranscriptEntry) (advisor.ValidationResult, error)
	Reload(ctx context.Context) error
	Snapshot() *advisor.Catalog
}

type AdvisorHandler struct {
	log     *logger.Logger
	service Service
}

func NewAdvisorHandler(log *logger.Logger, service Service) *AdvisorHandler {
	return &AdvisorHandler{
		log:     log.With("handler", "AdvisorHandler"),
		service: service,
	}
}

func (h *AdvisorHandler) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

type askRequest struct {
	Question   string                    `json:"question" binding:"required"`
	Transcript []advisor.TranscriptEntry `json:"transcript"`
	FromTerm   string                    `json:"from_term"`
}

type askResponse struct {
	advisor.Answer
	Suggestion *planner.Suggestion `json:"suggestion,omitempty"`
}

// POST /api/ask
func (h *AdvisorHandler) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	answer, err := h.service.Ask(c.Request.Context(), req.Question)
	if err != nil {
		h.log.Error("ask failed", "error", err, "request_id", c.GetString("request_id"))
		c.JSON(statusFor(err), gin.H{"error": "catalog lookup failed"})
		return
	}

	resp := askResponse{Answer: answer}
	switch answer.Mode {
	case advisor.IntentGeneralChat:
		if resp.Message == "" {
			resp.Message = "I can answer catalog questions like prerequisites, credits, and offerings. Try naming a course."
		}
	case advisor.IntentPlanner:
		resp.Suggestion = h.suggest(req)
	}

	c.JSON(http.StatusOK, resp)
}

// suggest runs the scheduling collaborator when the planner intent fires
// and the question names a course. Without one there is nothing to plan
// against, so the response carries a clarifying message instead.
func (h *AdvisorHandler) suggest(req askRequest) *planner.Suggestion {
	descriptor, err := advisor.Extract(req.Question)
	if errors.Is(err, advisor.ErrUnparsable) {
		return &planner.Suggestion{Reason: "name the course you want to schedule, e.g. \"when should I take CS 25100\""}
	}

	fromTerm := req.FromTerm
	if fromTerm == "" {
		fromTerm = "F2025"
	}
	suggestion, err := planner.Suggest(h.service.Snapshot(), descriptor.TargetCourse, req.Transcript, fromTerm, 0)
	if err != nil {
		var notFound *advisor.CourseNotFoundError
		if errors.As(err, &notFound) {
			return &planner.Suggestion{CourseId: notFound.CourseId, Reason: "course not found in catalog"}
		}
		h.log.Error("planner suggestion failed", "error", err)
		return nil
	}
	return &suggestion
}

type validateRequest struct {
	CourseId   string                    `json:"course_id" binding:"required"`
	Transcript []advisor.TranscriptEntry `json:"transcript"`
}

// POST /api/validate
func (h *AdvisorHandler) Validate(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "course_id is required"})
		return
	}

	result, err := h.service.Validate(req.CourseId, req.Transcript)
	if err != nil {
		var notFound *advisor.CourseNotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error(), "course_id": notFound.CourseId})
			return
		}
		h.log.Error("validate failed", "error", err, "course_id", req.CourseId)
		c.JSON(statusFor(err), gin.H{"error": "validation failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// POST /api/reload
func (h *AdvisorHandler) Reload(c *gin.Context) {
	if err := h.service.Reload(c.Request.Context()); err != nil {
		c.JSON(statusFor(err), gin.H{"error": "catalog reload failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reloaded"})
}

func statusFor(err error) int {
	if errors.Is(err, advisor.ErrCatalogUnavailable) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
