package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/lawdesk/internal/apperror"
	"github.com/lshigami/lawdesk/internal/model"
)

const (
	// SessionUserKey is the session field holding the logged in user id.
	SessionUserKey = "userID"

	principalContextKey = "principal"
)

// Principal is the authenticated actor behind a request.
type Principal struct {
	UserID uint
	Email  string
	Role   model.Role
}

func PrincipalFor(u *model.User) *Principal {
	return &Principal{UserID: u.ID, Email: u.Email, Role: u.Role}
}

// RoleSet is the set of roles allowed to perform an operation.
type RoleSet map[model.Role]struct{}

func Roles(roles ...model.Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

var (
	AnyUser = Roles(model.RoleUser, model.RoleAdmin, model.RoleOwner)
	Staff   = Roles(model.RoleAdmin, model.RoleOwner)
	Owners  = Roles(model.RoleOwner)
)

func (s RoleSet) Has(role model.Role) bool {
	_, ok := s[role]
	return ok
}

func (s RoleSet) String() string {
	names := make([]string, 0, len(s))
	for _, r := range model.AllRoles {
		if s.Has(r) {
			names = append(names, string(r))
		}
	}
	return strings.Join(names, ",")
}

// RequireRole is the single authorization check used across the API.
func RequireRole(p *Principal, allowed RoleSet) error {
	if p == nil {
		return apperror.Unauthenticated()
	}
	if !allowed.Has(p.Role) {
		return apperror.Forbidden(apperror.CodeForbidden, "Requires role "+allowed.String())
	}
	return nil
}

func (p *Principal) IsStaff() bool {
	return p != nil && Staff.Has(p.Role)
}

func SetPrincipal(c *gin.Context, p *Principal) {
	c.Set(principalContextKey, p)
}

// FromContext returns the principal loaded for this request, or nil.
func FromContext(c *gin.Context) *Principal {
	v, ok := c.Get(principalContextKey)
	if !ok {
		return nil
	}
	p, _ := v.(*Principal)
	return p
}
