package security

import (
	"errors"
	"testing"

	"storefront/api/internal/models"
)

func TestAuthorize_Hierarchy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		role     models.Role
		required models.Role
		want     error
	}{
		{"user meets user", models.RoleUser, models.RoleUser, nil},
		{"admin meets user", models.RoleAdmin, models.RoleUser, nil},
		{"admin meets admin", models.RoleAdmin, models.RoleAdmin, nil},
		{"user denied admin", models.RoleUser, models.RoleAdmin, ErrForbidden},
		{"guest denied user", models.RoleGuest, models.RoleUser, ErrUnauthenticated},
		{"guest denied admin", models.RoleGuest, models.RoleAdmin, ErrUnauthenticated},
		{"unknown role denied", models.Role("root"), models.RoleUser, ErrUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Authorize(tt.role, tt.required)
			if !errors.Is(got, tt.want) && got != tt.want {
				t.Fatalf("Authorize(%q, %q) = %v, want %v", tt.role, tt.required, got, tt.want)
			}
		})
	}
}

func TestAuthorizeDelete_AdminTargetAlwaysDenied(t *testing.T) {
	t.Parallel()

	adminAccount := models.User{ID: "a-1", Role: models.RoleAdmin}

	for _, caller := range []models.Role{models.RoleGuest, models.RoleUser, models.RoleAdmin} {
		if err := AuthorizeDelete(caller, adminAccount); err == nil {
			t.Fatalf("caller %q deleted an admin account", caller)
		}
	}
}

func TestAuthorizeDelete_UserTarget(t *testing.T) {
	t.Parallel()

	target := models.User{ID: "u-1", Role: models.RoleUser}

	if err := AuthorizeDelete(models.RoleAdmin, target); err != nil {
		t.Fatalf("admin could not delete user account: %v", err)
	}
	if err := AuthorizeDelete(models.RoleUser, target); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for user caller, got %v", err)
	}
	if err := AuthorizeDelete(models.RoleGuest, target); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for guest caller, got %v", err)
	}
}
