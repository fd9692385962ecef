package session

import (
	"storefront/api/internal/models"
)

// Outcome is a view-gating decision.
type Outcome int

const (
	// OutcomeLoading renders the neutral placeholder. Until Resolve has
	// run, protected content must never appear, not even for a frame.
	OutcomeLoading Outcome = iota
	OutcomeRender
	OutcomeRedirectLogin
	OutcomeRedirectHome
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLoading:
		return "loading"
	case OutcomeRender:
		return "render"
	case OutcomeRedirectLogin:
		return "redirect:login"
	case OutcomeRedirectHome:
		return "redirect:home"
	}
	return "unknown"
}

// Requirement describes what a guarded view demands. Zero value means
// any present session may render. AllowedRoles, when set, wins over
// MinRole.
type Requirement struct {
	MinRole      models.Role
	AllowedRoles []models.Role
}

// Guard resolves the session mirror once and then answers gating
// decisions for every guarded view. It runs on the client's cooperative
// scheduler, so Resolve is a plain synchronous call and no locking is
// needed around resolved state.
type Guard struct {
	store    Store
	resolved bool
	mirror   *Mirror

	// Navigate performs the redirect side effect. Redirect outcomes are
	// stable for a given state, so firing it more than once is harmless.
	Navigate func(target string)
}

func NewGuard(store Store) *Guard {
	return &Guard{store: store}
}

// Resolve loads the mirror from the local store. A missing or malformed
// mirror resolves to "no session" rather than an error; the guard then
// redirects to login instead of crashing the view.
func (g *Guard) Resolve() {
	g.resolved = true
	mirror, err := g.store.Load()
	if err != nil {
		g.mirror = nil
		return
	}
	g.mirror = &mirror
}

// Check applies the decision table for one guarded view and fires the
// redirect side effect when one is due.
func (g *Guard) Check(req Requirement) Outcome {
	outcome := g.decide(req)
	switch outcome {
	case OutcomeRedirectLogin:
		g.navigate("/login")
	case OutcomeRedirectHome:
		g.navigate("/")
	}
	return outcome
}

func (g *Guard) decide(req Requirement) Outcome {
	if !g.resolved {
		return OutcomeLoading
	}
	if g.mirror == nil {
		return OutcomeRedirectLogin
	}

	if len(req.AllowedRoles) > 0 {
		for _, role := range req.AllowedRoles {
			if g.mirror.Role == role {
				return OutcomeRender
			}
		}
		return OutcomeRedirectHome
	}

	if req.MinRole == "" || req.MinRole == models.RoleGuest {
		return OutcomeRender
	}
	if g.mirror.Role.AtLeast(req.MinRole) {
		return OutcomeRender
	}
	return OutcomeRedirectHome
}

// Current returns the resolved mirror, if any.
func (g *Guard) Current() (Mirror, bool) {
	if !g.resolved || g.mirror == nil {
		return Mirror{}, false
	}
	return *g.mirror, true
}

// SetSession stores a fresh mirror after login, registration or a
// profile update and re-resolves in place.
func (g *Guard) SetSession(m Mirror) error {
	if err := g.store.Save(m); err != nil {
		return err
	}
	g.mirror = &m
	g.resolved = true
	return nil
}

// ClearSession drops the mirror at logout.
func (g *Guard) ClearSession() error {
	if err := g.store.Clear(); err != nil {
		return err
	}
	g.mirror = nil
	g.resolved = true
	return nil
}

func (g *Guard) navigate(target string) {
	if g.Navigate != nil {
		g.Navigate(target)
	}
}
