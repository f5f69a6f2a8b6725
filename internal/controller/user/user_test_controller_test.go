package user

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/lawdesk/internal/apperror"
	"github.com/lshigami/lawdesk/internal/auth"
	"github.com/lshigami/lawdesk/internal/middleware"
	"github.com/lshigami/lawdesk/internal/model"
	"github.com/lshigami/lawdesk/internal/practice"
	"github.com/lshigami/lawdesk/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string                `json:"code"`
		Details []apperror.FieldError `json:"details"`
	} `json:"error"`
}

// newPracticeRouter wires real services without repositories. Practice tests
// never reach the store, so any persisted path would panic here.
func newPracticeRouter(t *testing.T, principal *auth.Principal) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	apperror.InitValidators()

	catalog, err := practice.Load("")
	require.NoError(t, err)
	ctrl := NewUserTestController(
		catalog,
		service.NewTestDeliveryService(nil, nil, catalog),
		service.NewTestSubmissionService(nil, nil),
		service.NewResultService(nil, nil),
		service.NewCertificateService(nil, nil, nil),
	)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if principal != nil {
			auth.SetPrincipal(c, principal)
		}
		c.Next()
	})
	tests := r.Group("/tests", middleware.AuthRequired())
	tests.GET("/:id", ctrl.GetTest)
	tests.POST("/:id", ctrl.TestAction)
	tests.POST("/:id/submit", ctrl.SubmitAttempt)
	tests.GET("/:id/results", ctrl.GetResults)
	tests.GET("/:id/results/certificate", ctrl.GetCertificate)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

var student = &auth.Principal{UserID: 7, Email: "student@example.com", Role: model.RoleUser}

func TestPracticeFlowOverHTTP(t *testing.T) {
	r := newPracticeRouter(t, student)

	w, env := do(t, r, http.MethodGet, "/tests/mock-contract-formation", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.NotContains(t, string(env.Data), "correctAnswer")

	w, env = do(t, r, http.MethodPost, "/tests/mock-contract-formation", `{"action":"start"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"attemptId":"mock-attempt-contract-formation"`)

	w, env = do(t, r, http.MethodPost, "/tests/mock-contract-formation/submit", `{"answers":{"q1":{"selectedAnswer":"A"}},"timeSpent":30}`)
	require.Equal(t, http.StatusOK, w.Code)
	var score struct {
		TotalQuestions int    `json:"totalQuestions"`
		TestAttemptID  string `json:"testAttemptId"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &score))
	assert.Equal(t, 4, score.TotalQuestions)
	assert.Equal(t, "mock-attempt-contract-formation", score.TestAttemptID)

	w, env = do(t, r, http.MethodGet, "/tests/mock-contract-formation/results", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"isPractice":true`)
}

func TestTestRoutesErrors(t *testing.T) {
	tests := []struct {
		name      string
		principal *auth.Principal
		method    string
		path      string
		body      string
		status    int
		code      string
	}{
		{"anonymous", nil, http.MethodGet, "/tests/mock-contract-formation", "", http.StatusUnauthorized, apperror.CodeAuthRequired},
		{"unknown practice slug", student, http.MethodGet, "/tests/mock-nope", "", http.StatusNotFound, apperror.CodeNotFound},
		{"non numeric id", student, http.MethodGet, "/tests/abc", "", http.StatusNotFound, apperror.CodeNotFound},
		{"unknown action", student, http.MethodPost, "/tests/mock-contract-formation", `{"action":"finish"}`, http.StatusBadRequest, apperror.CodeInvalidAction},
		{"missing action", student, http.MethodPost, "/tests/mock-contract-formation", `{}`, http.StatusBadRequest, apperror.CodeValidation},
		{"malformed body", student, http.MethodPost, "/tests/mock-contract-formation/submit", `{"answers":`, http.StatusBadRequest, apperror.CodeValidation},
		{"practice certificate", student, http.MethodGet, "/tests/mock-contract-formation/results/certificate", "", http.StatusNotFound, apperror.CodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := do(t, newPracticeRouter(t, tt.principal), tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func TestSubmitValidationListsEveryField(t *testing.T) {
	r := newPracticeRouter(t, student)
	body := `{"answers":{"q1":{"selectedAnswer":"E"},"q2":{}},"timeSpent":-5}`

	w, env := do(t, r, http.MethodPost, "/tests/mock-contract-formation/submit", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, apperror.CodeValidation, env.Error.Code)

	fields := make([]string, 0, len(env.Error.Details))
	for _, f := range env.Error.Details {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"answers[q1].selectedAnswer", "answers[q2].selectedAnswer", "timeSpent"}, fields)
}
