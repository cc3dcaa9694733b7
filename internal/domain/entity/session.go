package entity

// SessionStatus is the session store's state machine position.
//
// Unknown is the initial state before the first auth-state notification.
// Anonymous means the backend reported no identity. Authenticating covers an
// in-flight sign-in. ProfileLoading and Ready are the two sub-states of
// "authenticated": identity present with the profile fetch still in flight,
// or identity and profile both resolved.
type SessionStatus int

const (
	SessionUnknown SessionStatus = iota
	SessionAnonymous
	SessionAuthenticating
	SessionProfileLoading
	SessionReady
)

// Authenticated reports whether an identity is established, regardless of
// whether the profile has finished loading.
func (s SessionStatus) Authenticated() bool {
	return s == SessionProfileLoading || s == SessionReady
}

func (s SessionStatus) String() string {
	switch s {
	case SessionUnknown:
		return "unknown"
	case SessionAnonymous:
		return "anonymous"
	case SessionAuthenticating:
		return "authenticating"
	case SessionProfileLoading:
		return "profile_loading"
	case SessionReady:
		return "ready"
	default:
		return "invalid"
	}
}

// SessionSnapshot is the immutable view of the session store published to
// observers: who is signed in, their profile, and the machine status.
type SessionSnapshot struct {
	Status   SessionStatus `json:"status"`
	Identity *Identity     `json:"identity,omitempty"`
	Profile  *Profile      `json:"profile,omitempty"`
}
