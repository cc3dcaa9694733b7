// Package guard decides which page a navigation request resolves to, given
// the current session status. The decision is pure: it never consults
// anything but its arguments, so every transition is table-testable.
package guard

import "fairway/internal/domain/entity"

// Page paths the application serves.
const (
	PathLogin     = "/login"
	PathDashboard = "/dashboard"
	PathHistory   = "/history"
	PathAddRound  = "/add-round"
	PathProfile   = "/profile"
)

// Decision is the outcome of a navigation check.
type Decision struct {
	// Path is the page that should be rendered.
	Path string
	// Redirect reports whether the requested path was rewritten.
	Redirect bool
}

// knownPages is the set of navigable pages. Anything else falls through to
// the dashboard catch-all.
var knownPages = map[string]bool{
	PathLogin:     true,
	PathDashboard: true,
	PathHistory:   true,
	PathAddRound:  true,
	PathProfile:   true,
}

// Decide resolves a requested path against the session status.
//
// The authentication check runs before the unknown-path catch-all: a signed
// out visitor on a garbage path lands on the login page, not the dashboard.
// A signed-in visitor on the login page is bounced to the dashboard; during
// profile loading they count as signed in, the page shows its own loading
// state.
func Decide(path string, status entity.SessionStatus) Decision {
	authenticated := status.Authenticated()

	if !authenticated {
		if path == PathLogin {
			return Decision{Path: PathLogin}
		}

		return Decision{Path: PathLogin, Redirect: true}
	}

	if path == PathLogin {
		return Decision{Path: PathDashboard, Redirect: true}
	}

	if !knownPages[path] {
		return Decision{Path: PathDashboard, Redirect: true}
	}

	return Decision{Path: path}
}
