package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestFromStore(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantKind   Kind
		wantCode   string
		wantStatus int
	}{
		{
			name:       "record not found",
			err:        gorm.ErrRecordNotFound,
			wantKind:   KindNotFound,
			wantCode:   CodeNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "postgres foreign key violation",
			err:        fmt.Errorf("insert attempt: %w", &pgconn.PgError{Code: "23503"}),
			wantKind:   KindConstraint,
			wantCode:   CodeForeignKey,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "translated foreign key violation",
			err:        gorm.ErrForeignKeyViolated,
			wantKind:   KindConstraint,
			wantCode:   CodeForeignKey,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unique violation",
			err:        &pgconn.PgError{Code: "23505"},
			wantKind:   KindConstraint,
			wantCode:   CodeUnique,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "other postgres error",
			err:        &pgconn.PgError{Code: "57014"},
			wantKind:   KindInternal,
			wantCode:   CodeInternal,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "plain error",
			err:        errors.New("connection reset"),
			wantKind:   KindInternal,
			wantCode:   CodeInternal,
			wantStatus: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := As(FromStore(tt.err, "TestAttempt"))
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantStatus, got.Status())
		})
	}
}

func TestFromStoreKeepsClassifiedErrors(t *testing.T) {
	orig := Forbidden(CodeTestNotPublished, "Test is not published")
	got := FromStore(fmt.Errorf("wrapped: %w", orig), "Test")
	assert.Same(t, orig, got)
	assert.Nil(t, FromStore(nil, "Test"))
}

func TestInternalHidesCause(t *testing.T) {
	err := Internal(errors.New("pq: password authentication failed"))
	assert.Equal(t, "Internal server error", err.Message)
	assert.Nil(t, err.Details)
	assert.ErrorContains(t, err, "password authentication failed")
}

type submitBody struct {
	Answers   map[string]answerBody `json:"answers" binding:"required,dive"`
	TimeSpent *int                  `json:"timeSpent" binding:"omitempty,min=0"`
}

type answerBody struct {
	SelectedAnswer string `json:"selectedAnswer" binding:"required,oneof=A B C D"`
}

func TestFromBindingListsEveryField(t *testing.T) {
	InitValidators()
	negative := -3
	body := submitBody{
		Answers: map[string]answerBody{
			"1": {SelectedAnswer: "E"},
			"2": {SelectedAnswer: ""},
		},
		TimeSpent: &negative,
	}

	err := binding.Validator.ValidateStruct(&body)
	require.Error(t, err)

	appErr := FromBinding(err)
	assert.Equal(t, CodeValidation, appErr.Code)
	fields, ok := appErr.Details.([]FieldError)
	require.True(t, ok)
	require.Len(t, fields, 3)

	var names []string
	for _, f := range fields {
		names = append(names, f.Field)
		assert.NotEmpty(t, f.Error)
	}
	assert.ElementsMatch(t, []string{"answers[1].selectedAnswer", "answers[2].selectedAnswer", "timeSpent"}, names)
}
