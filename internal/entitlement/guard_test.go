package entitlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name    string
		role    Role
		perm    Permission
		wantErr error
	}{
		{name: "любой аутентифицированный проходит", role: RoleUser, perm: PermAnyAuthenticated},
		{name: "admin проходит admin-only", role: RoleAdmin, perm: PermAdminOnly},
		{name: "user не проходит admin-only", role: RoleUser, perm: PermAdminOnly, wantErr: ErrForbidden},
		{name: "premium не проходит admin-only", role: RolePremium, perm: PermAdminOnly, wantErr: ErrForbidden},
		{name: "premium проходит premium-only", role: RolePremium, perm: PermPremiumOnly},
		{name: "user не проходит premium-only", role: RoleUser, perm: PermPremiumOnly, wantErr: ErrForbidden},
		{name: "admin без подписки не проходит premium-only", role: RoleAdmin, perm: PermPremiumOnly, wantErr: ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.role, tt.perm)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthorizeSelf(t *testing.T) {
	assert.NoError(t, AuthorizeSelf("a@example.com", "a@example.com"))
	assert.ErrorIs(t, AuthorizeSelf("a@example.com", "b@example.com"), ErrForbidden)
}

func TestAuthorizeOwnerOrAdmin(t *testing.T) {
	assert.NoError(t, AuthorizeOwnerOrAdmin(RoleUser, "a@example.com", "a@example.com"))
	assert.NoError(t, AuthorizeOwnerOrAdmin(RoleAdmin, "admin@example.com", "a@example.com"))
	assert.ErrorIs(t, AuthorizeOwnerOrAdmin(RoleUser, "b@example.com", "a@example.com"), ErrForbidden)
	assert.ErrorIs(t, AuthorizeOwnerOrAdmin(RolePremium, "b@example.com", "a@example.com"), ErrForbidden)
}
