package board

import "github.com/mbenali/jobboard/internal/types"

// RoleGate is the single place where role checks happen on the board side.
// Views ask the gate; they never inspect the session role themselves, so a
// policy change lands in exactly one spot.
type RoleGate struct {
	session *types.Session
}

// NewRoleGate creates a gate for the given session. A nil session means an
// anonymous visitor.
func NewRoleGate(session *types.Session) *RoleGate {
	return &RoleGate{session: session}
}

// SignedIn reports whether any account is in session.
func (g *RoleGate) SignedIn() bool { return g.session != nil }

// IsAdmin reports whether the session belongs to an administrator. Admin
// controls (posting management, application review, dashboards) render only
// when this is true.
func (g *RoleGate) IsAdmin() bool {
	return g.session != nil && g.session.IsAdmin()
}

// CanApply reports whether the session may submit applications. Admins browse
// and review; they do not apply.
func (g *RoleGate) CanApply() bool {
	return g.session != nil && !g.session.IsAdmin()
}

// Session returns the gated session, or nil for anonymous visitors.
func (g *RoleGate) Session() *types.Session { return g.session }

// Denied describes why access to a view was refused, so the caller can route
// to a sign-in prompt or an access-denied page.
type Denied struct {
	// NeedsLogin is true when the visitor is anonymous; false means the
	// account is signed in but lacks the role.
	NeedsLogin bool
	Message    string
}

// CheckAdmin gates an admin view. It returns nil when the session may enter.
func (g *RoleGate) CheckAdmin() *Denied {
	if g.session == nil {
		return &Denied{NeedsLogin: true, Message: "Please sign in to continue"}
	}
	if !g.session.IsAdmin() {
		return &Denied{Message: "Access denied"}
	}
	return nil
}

// CheckSignedIn gates a view that merely requires a session.
func (g *RoleGate) CheckSignedIn() *Denied {
	if g.session == nil {
		return &Denied{NeedsLogin: true, Message: "Please sign in to continue"}
	}
	return nil
}
