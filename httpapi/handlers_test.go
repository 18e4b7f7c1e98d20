package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/boilerplan/boilerplan/advisor"
	"github.com/boilerplan/boilerplan/db"
	"github.com/boilerplan/boilerplan/logger"
)

type fakeService struct {
	askAnswer      advisor.Answer
	askErr         error
	validateResult advisor.ValidationResult
	validateErr    error
	reloadErr      error
	catalog        *advisor.Catalog
}

func (f *fakeService) Ask(ctx context.Context, question string) (advisor.Answer, error) {
	return f.askAnswer, f.askErr
}

func (f *fakeService) Validate(courseId string, transcript []advisor.TranscriptEntry) (advisor.ValidationResult, error) {
	return f.validateResult, f.validateErr
}

func (f *fakeService) Reload(ctx context.Context) error {
	return f.reloadErr
}

func (f *fakeService) Snapshot() *advisor.Catalog {
	return f.catalog
}

func testRouter(t *testing.T, service Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
	return NewRouter(RouterConfig{Log: log, AdvisorHandler: NewAdvisorHandler(log, service)})
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestHealthCheck(t *testing.T) {
	router := testRouter(t, &fakeService{})
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "ok", recorder.Body.String())
	assert.NotEmpty(t, recorder.Header().Get("X-Request-Id"))
}

func TestAskRequiresQuestion(t *testing.T) {
	router := testRouter(t, &fakeService{})
	recorder := postJSON(t, router, "/api/ask", gin.H{})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestAskGeneralChatGetsDeferralMessage(t *testing.T) {
	service := &fakeService{askAnswer: advisor.Answer{Mode: advisor.IntentGeneralChat}}
	router := testRouter(t, service)

	recorder := postJSON(t, router, "/api/ask", gin.H{"question": "hello how are you"})
	require.Equal(t, http.StatusOK, recorder.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, "general_chat", resp["mode"])
	assert.NotEmpty(t, resp["message"])
}

func TestAskT2SQLPassesRowsThrough(t *testing.T) {
	service := &fakeService{askAnswer: advisor.Answer{
		Mode:       advisor.IntentT2SQL,
		Descriptor: &advisor.QueryDescriptor{TargetCourse: "CS251", RequestedAttribute: advisor.AttributeCredits},
		Rows:       []advisor.Row{{Columns: []string{"id", "credits"}, Values: []any{"CS251", 3}}},
	}}
	router := testRouter(t, service)

	recorder := postJSON(t, router, "/api/ask", gin.H{"question": "how many credits is cs251"})
	require.Equal(t, http.StatusOK, recorder.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, "t2sql", resp["mode"])
	assert.Len(t, resp["rows"], 1)
}

func TestAskPlannerReturnsSuggestion(t *testing.T) {
	catalog, err := advisor.BuildCatalog("CS",
		[]db.Course{{Id: "CS25100", MajorId: "CS", Title: "Data Structures", Credits: 3}},
		nil,
		[]db.Offering{{Id: 1, CourseId: "CS25100", TermPattern: "F"}},
		nil, nil, nil)
	require.NoError(t, err)

	service := &fakeService{
		askAnswer: advisor.Answer{Mode: advisor.IntentPlanner},
		catalog:   catalog,
	}
	router := testRouter(t, service)

	recorder := postJSON(t, router, "/api/ask", gin.H{
		"question":  "when should I take CS 25100",
		"from_term": "S2025",
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var resp struct {
		Mode       string `json:"mode"`
		Suggestion *struct {
			Term     string `json:"term"`
			Feasible bool   `json:"feasible"`
		} `json:"suggestion"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, "planner", resp.Mode)
	require.NotNil(t, resp.Suggestion)
	assert.True(t, resp.Suggestion.Feasible)
	assert.Equal(t, "F2025", resp.Suggestion.Term)
}

func TestValidateUnknownCourseIs404(t *testing.T) {
	service := &fakeService{validateErr: &advisor.CourseNotFoundError{CourseId: "CS99999"}}
	router := testRouter(t, service)

	recorder := postJSON(t, router, "/api/validate", gin.H{"course_id": "CS99999"})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestValidateReturnsResult(t *testing.T) {
	service := &fakeService{validateResult: advisor.ValidationResult{
		CourseId:             "CS25100",
		Valid:                false,
		MissingPrerequisites: []string{"CS 24000"},
		InsufficientGrades:   []string{},
		DetailedIssues:       []string{"CS25100 requires BOTH CS 18200 AND CS 24000"},
	}}
	router := testRouter(t, service)

	recorder := postJSON(t, router, "/api/validate", gin.H{
		"course_id":  "CS25100",
		"transcript": []gin.H{{"course_id": "CS 18200", "grade": "B"}},
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var result advisor.ValidationResult
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
	assert.False(t, result.Valid)
	assert.Equal(t, []string{"CS 24000"}, result.MissingPrerequisites)
}

func TestReloadFailureIs503(t *testing.T) {
	service := &fakeService{reloadErr: advisor.ErrCatalogUnavailable}
	router := testRouter(t, service)

	recorder := postJSON(t, router, "/api/reload", gin.H{})
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
}
