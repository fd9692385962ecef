package session

import (
	"os"
	"path/filepath"
	"testing"

	"storefront/api/internal/models"
)

func TestGuard_LoadingUntilResolved(t *testing.T) {
	t.Parallel()

	guard := NewGuard(NewMemoryStore())

	// Before Resolve, every view renders the neutral placeholder; the
	// protected content must never flash.
	if got := guard.Check(Requirement{}); got != OutcomeLoading {
		t.Fatalf("pre-resolve outcome = %v, want loading", got)
	}
	if got := guard.Check(Requirement{MinRole: models.RoleAdmin}); got != OutcomeLoading {
		t.Fatalf("pre-resolve admin outcome = %v, want loading", got)
	}
}

func TestGuard_DecisionTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mirror *Mirror
		req    Requirement
		want   Outcome
	}{
		{"absent, no requirement", nil, Requirement{}, OutcomeRedirectLogin},
		{"absent, min role", nil, Requirement{MinRole: models.RoleUser}, OutcomeRedirectLogin},
		{"absent, role set", nil, Requirement{AllowedRoles: []models.Role{models.RoleAdmin}}, OutcomeRedirectLogin},
		{"present, no requirement", &Mirror{ID: "u1", Role: models.RoleUser}, Requirement{}, OutcomeRender},
		{"user meets user", &Mirror{ID: "u1", Role: models.RoleUser}, Requirement{MinRole: models.RoleUser}, OutcomeRender},
		{"admin meets user", &Mirror{ID: "a1", Role: models.RoleAdmin}, Requirement{MinRole: models.RoleUser}, OutcomeRender},
		{"user fails admin", &Mirror{ID: "u1", Role: models.RoleUser}, Requirement{MinRole: models.RoleAdmin}, OutcomeRedirectHome},
		{"admin meets admin", &Mirror{ID: "a1", Role: models.RoleAdmin}, Requirement{MinRole: models.RoleAdmin}, OutcomeRender},
		{"explicit set, member", &Mirror{ID: "u1", Role: models.RoleUser}, Requirement{AllowedRoles: []models.Role{models.RoleUser}}, OutcomeRender},
		{"explicit set, not member", &Mirror{ID: "a1", Role: models.RoleAdmin}, Requirement{AllowedRoles: []models.Role{models.RoleUser}}, OutcomeRedirectHome},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStore()
			if tt.mirror != nil {
				if err := store.Save(*tt.mirror); err != nil {
					t.Fatalf("Save error: %v", err)
				}
			}

			guard := NewGuard(store)
			guard.Resolve()

			if got := guard.Check(tt.req); got != tt.want {
				t.Fatalf("Check = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGuard_RedirectIsIdempotent(t *testing.T) {
	t.Parallel()

	guard := NewGuard(NewMemoryStore())
	var targets []string
	guard.Navigate = func(target string) { targets = append(targets, target) }

	guard.Resolve()

	// Re-checking must keep returning the same decision and the repeated
	// navigation must stay harmless.
	for i := 0; i < 3; i++ {
		if got := guard.Check(Requirement{}); got != OutcomeRedirectLogin {
			t.Fatalf("check %d = %v, want redirect to login", i, got)
		}
	}
	for _, target := range targets {
		if target != "/login" {
			t.Fatalf("navigated to %q", target)
		}
	}
}

func TestGuard_SetAndClearSession(t *testing.T) {
	t.Parallel()

	guard := NewGuard(NewMemoryStore())
	guard.Resolve()

	if err := guard.SetSession(Mirror{ID: "u1", Email: "a@b.com", Role: models.RoleUser, Name: "Ada"}); err != nil {
		t.Fatalf("SetSession error: %v", err)
	}
	if got := guard.Check(Requirement{MinRole: models.RoleUser}); got != OutcomeRender {
		t.Fatalf("after login outcome = %v, want render", got)
	}

	if err := guard.ClearSession(); err != nil {
		t.Fatalf("ClearSession error: %v", err)
	}
	if got := guard.Check(Requirement{}); got != OutcomeRedirectLogin {
		t.Fatalf("after logout outcome = %v, want redirect to login", got)
	}
}

func TestFileStore_RoundTripAndMalformed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)

	mirror := Mirror{ID: "u1", Email: "a@b.com", Role: models.RoleAdmin, Name: "Ada", Address: "1 Main St"}
	if err := store.Save(mirror); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded != mirror {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}

	// A corrupted local store degrades to "no session", never a crash.
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("corrupt write: %v", err)
	}
	guard := NewGuard(store)
	guard.Resolve()
	if got := guard.Check(Requirement{}); got != OutcomeRedirectLogin {
		t.Fatalf("corrupted store outcome = %v, want redirect to login", got)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if _, err := store.Load(); err != ErrNoSession {
		t.Fatalf("after clear Load error = %v, want ErrNoSession", err)
	}
}
