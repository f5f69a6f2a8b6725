package auth

import (
	"testing"

	"github.com/lshigami/lawdesk/internal/apperror"
	"github.com/lshigami/lawdesk/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name      string
		principal *Principal
		allowed   RoleSet
		wantCode  string
	}{
		{name: "no principal", principal: nil, allowed: AnyUser, wantCode: apperror.CodeAuthRequired},
		{name: "user on user route", principal: &Principal{UserID: 1, Role: model.RoleUser}, allowed: AnyUser},
		{name: "user on staff route", principal: &Principal{UserID: 1, Role: model.RoleUser}, allowed: Staff, wantCode: apperror.CodeForbidden},
		{name: "admin on staff route", principal: &Principal{UserID: 2, Role: model.RoleAdmin}, allowed: Staff},
		{name: "admin on owner route", principal: &Principal{UserID: 2, Role: model.RoleAdmin}, allowed: Owners, wantCode: apperror.CodeForbidden},
		{name: "owner on owner route", principal: &Principal{UserID: 3, Role: model.RoleOwner}, allowed: Owners},
		{name: "unknown role", principal: &Principal{UserID: 4, Role: "GUEST"}, allowed: AnyUser, wantCode: apperror.CodeForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireRole(tt.principal, tt.allowed)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantCode, apperror.As(err).Code)
		})
	}
}

func TestRoleSetString(t *testing.T) {
	assert.Equal(t, "ADMIN,OWNER", Staff.String())
	assert.Equal(t, "", Roles().String())
}
